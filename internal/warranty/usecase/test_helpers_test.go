package usecase

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"warranty-tracker/internal/ranker"
	"warranty-tracker/internal/warranty"
	"warranty-tracker/internal/warranty/repository"
	"warranty-tracker/internal/warranty/repository/memory"
	"warranty-tracker/pkg/datemath"
	"warranty-tracker/pkg/gcalendar"
)

var _ warranty.UseCase = (*implUseCase)(nil)

// Mock logger for testing
type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Debugf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Info(ctx context.Context, arg ...any)                     {}
func (m *mockLogger) Infof(ctx context.Context, template string, arg ...any)   {}
func (m *mockLogger) Warn(ctx context.Context, arg ...any)                     {}
func (m *mockLogger) Warnf(ctx context.Context, template string, arg ...any)   {}
func (m *mockLogger) Error(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Errorf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Fatal(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Fatalf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) DPanic(ctx context.Context, arg ...any)                   {}
func (m *mockLogger) DPanicf(ctx context.Context, template string, arg ...any) {}
func (m *mockLogger) Panic(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Panicf(ctx context.Context, template string, arg ...any)  {}

// Mock thumbnail store
type mockThumbs struct {
	name  string
	err   error
	calls int
}

func (m *mockThumbs) Save(r io.Reader, originalName string) (string, error) {
	m.calls++
	if _, err := io.ReadAll(r); err != nil {
		return "", err
	}
	return m.name, m.err
}

// Mock calendar
type mockCalendar struct {
	mu   sync.Mutex
	reqs []gcalendar.CreateEventRequest
	err  error
}

func (m *mockCalendar) CreateEvent(ctx context.Context, req gcalendar.CreateEventRequest) (*gcalendar.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	m.reqs = append(m.reqs, req)
	return &gcalendar.Event{ID: "evt-1", HtmlLink: "https://calendar.example/evt-1", StartTime: req.StartTime, EndTime: req.EndTime}, nil
}

// failingRepo fails every call with err.
type failingRepo struct {
	err error
}

func (f failingRepo) CreateItem(ctx context.Context, opt repository.CreateItemOptions) (warranty.Item, error) {
	return warranty.Item{}, f.err
}
func (f failingRepo) GetItem(ctx context.Context, id int64) (warranty.Item, error) {
	return warranty.Item{}, f.err
}
func (f failingRepo) ListItems(ctx context.Context, opt repository.ListItemsOptions) ([]warranty.Item, int, error) {
	return nil, 0, f.err
}
func (f failingRepo) UpdateItem(ctx context.Context, opt repository.UpdateItemOptions) (warranty.Item, error) {
	return warranty.Item{}, f.err
}
func (f failingRepo) DeleteItem(ctx context.Context, id int64) (bool, error) { return false, f.err }
func (f failingRepo) DeleteAllItems(ctx context.Context) (int64, error)     { return 0, f.err }

var errStorage = errors.New("storage down")

var listAll = repository.ListItemsOptions{}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// fixedNow is 2023-07-15 10:00 UTC.
func fixedNow() time.Time {
	return time.Date(2023, 7, 15, 10, 0, 0, 0, time.UTC)
}

type fixture struct {
	uc       *implUseCase
	repo     repository.Repository
	thumbs   *mockThumbs
	calendar *mockCalendar
}

func newFixture(t *testing.T, mutate ...func(*Options)) fixture {
	t.Helper()
	parser, err := datemath.NewParser("UTC")
	if err != nil {
		t.Fatalf("NewParser: %v", err)
	}

	repo := memory.New()
	thumbs := &mockThumbs{name: "thumb.png"}
	cal := &mockCalendar{}
	opts := Options{
		Thumbnails: thumbs,
		Calendar:   cal,
		Now:        fixedNow,
		Reminder:   ReminderOptions{CalendarID: "primary", Hour: 9},
	}
	for _, m := range mutate {
		m(&opts)
	}

	rk := ranker.New(ranker.Options{ThumbnailURLPrefix: "/thumbnails", DefaultThumbnail: "default_product.png"})
	return fixture{
		uc:       New(&mockLogger{}, repo, rk, parser, opts),
		repo:     repo,
		thumbs:   thumbs,
		calendar: cal,
	}
}

func (f fixture) mustCreate(t *testing.T, name string, bought time.Time, duration int, unit datemath.Unit) warranty.EnrichedItem {
	t.Helper()
	out, err := f.uc.Create(context.Background(), warranty.CreateItemInput{
		Name:             name,
		WarrantyDuration: duration,
		DurationUnit:     unit,
		DateBought:       bought,
	})
	if err != nil {
		t.Fatalf("Create(%s): %v", name, err)
	}
	return out.Item
}
