package usecase

import (
	"context"
	"io"
	"time"

	"warranty-tracker/internal/ranker"
	"warranty-tracker/internal/warranty/repository"
	"warranty-tracker/pkg/datemath"
	"warranty-tracker/pkg/gcalendar"
	"warranty-tracker/pkg/log"
)

const (
	DefaultClosestLimit = 5
	DefaultRecentLimit  = 5
	DefaultReminderHour = 9
	DefaultColorID      = "6"
)

// DefaultReminderLead is how long before expiration a reminder is placed.
var DefaultReminderLead = datemath.Duration{Amount: 1, Unit: datemath.UnitMonths}

// ThumbnailStore saves uploaded images and returns the stored name.
type ThumbnailStore interface {
	Save(r io.Reader, originalName string) (string, error)
}

// Calendar creates reminder events.
type Calendar interface {
	CreateEvent(ctx context.Context, req gcalendar.CreateEventRequest) (*gcalendar.Event, error)
}

// ReminderOptions configures calendar reminders.
type ReminderOptions struct {
	CalendarID string
	Lead       datemath.Duration
	Hour       int
	ColorID    string
}

// Options holds the optional collaborators and tunables of the use case.
// Zero values fall back to the package defaults; a nil Calendar disables
// reminders.
type Options struct {
	Thumbnails   ThumbnailStore
	Calendar     Calendar
	ClosestLimit int
	RecentLimit  int
	Reminder     ReminderOptions
	Now          func() time.Time
}

// implUseCase is the private implementation of warranty.UseCase.
type implUseCase struct {
	repo     repository.Repository
	ranker   ranker.Ranker
	parser   *datemath.Parser
	l        log.Logger
	thumbs   ThumbnailStore
	calendar Calendar
	closest  int
	recent   int
	reminder ReminderOptions
	now      func() time.Time
}

// New creates a new warranty UseCase implementation.
func New(l log.Logger, repo repository.Repository, rk ranker.Ranker, parser *datemath.Parser, opts Options) *implUseCase {
	uc := &implUseCase{
		repo:     repo,
		ranker:   rk,
		parser:   parser,
		l:        l,
		thumbs:   opts.Thumbnails,
		calendar: opts.Calendar,
		closest:  opts.ClosestLimit,
		recent:   opts.RecentLimit,
		reminder: opts.Reminder,
		now:      opts.Now,
	}

	if uc.closest <= 0 {
		uc.closest = DefaultClosestLimit
	}
	if uc.recent <= 0 {
		uc.recent = DefaultRecentLimit
	}
	if uc.reminder.Lead.Amount <= 0 {
		uc.reminder.Lead = DefaultReminderLead
	}
	if uc.reminder.Hour < 0 || uc.reminder.Hour > 23 {
		uc.reminder.Hour = DefaultReminderHour
	}
	if uc.reminder.ColorID == "" {
		uc.reminder.ColorID = DefaultColorID
	}
	if uc.now == nil {
		uc.now = time.Now
	}

	return uc
}
