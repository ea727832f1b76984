package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"warranty-tracker/internal/middleware"
	"warranty-tracker/internal/warranty"
	"warranty-tracker/pkg/datemath"
	pkgErrors "warranty-tracker/pkg/errors"
	"warranty-tracker/pkg/log"
	"warranty-tracker/pkg/thumbnail"
)

// mockUseCase records the last input and returns canned results.
type mockUseCase struct {
	err error

	createIn   warranty.CreateItemInput
	uploadBody string
	listIn     warranty.ListItemsInput
	detailID   int64
	updateIn   warranty.UpdateItemInput
	replaceIn  warranty.ReplaceThumbnailInput
	deleteID   int64
	viewIn     warranty.ViewInput
	reminderIn warranty.ScheduleReminderInput
	calls      int

	thumbErr error
}

func (m *mockUseCase) readUpload(up *warranty.Upload) {
	if up == nil {
		return
	}
	b, _ := io.ReadAll(up.Reader)
	m.uploadBody = string(b)
}

func (m *mockUseCase) Create(ctx context.Context, in warranty.CreateItemInput) (warranty.CreateItemOutput, error) {
	m.calls++
	m.createIn = in
	m.readUpload(in.Thumbnail)
	if m.err != nil {
		return warranty.CreateItemOutput{}, m.err
	}
	return warranty.CreateItemOutput{Item: sampleItem(), ThumbnailError: m.thumbErr}, nil
}

func (m *mockUseCase) List(ctx context.Context, in warranty.ListItemsInput) (warranty.ListItemsOutput, error) {
	m.calls++
	m.listIn = in
	if m.err != nil {
		return warranty.ListItemsOutput{}, m.err
	}
	return warranty.ListItemsOutput{Items: []warranty.EnrichedItem{sampleItem()}, Total: 1, Limit: in.Limit, Offset: in.Offset}, nil
}

func (m *mockUseCase) Detail(ctx context.Context, id int64) (warranty.DetailItemOutput, error) {
	m.calls++
	m.detailID = id
	if m.err != nil {
		return warranty.DetailItemOutput{}, m.err
	}
	return warranty.DetailItemOutput{Item: sampleItem()}, nil
}

func (m *mockUseCase) Update(ctx context.Context, in warranty.UpdateItemInput) (warranty.UpdateItemOutput, error) {
	m.calls++
	m.updateIn = in
	m.readUpload(in.Thumbnail)
	if m.err != nil {
		return warranty.UpdateItemOutput{}, m.err
	}
	return warranty.UpdateItemOutput{Item: sampleItem(), ThumbnailError: m.thumbErr}, nil
}

func (m *mockUseCase) ReplaceThumbnail(ctx context.Context, in warranty.ReplaceThumbnailInput) (warranty.DetailItemOutput, error) {
	m.calls++
	m.replaceIn = in
	m.readUpload(&in.Thumbnail)
	if m.err != nil {
		return warranty.DetailItemOutput{}, m.err
	}
	return warranty.DetailItemOutput{Item: sampleItem()}, nil
}

func (m *mockUseCase) Delete(ctx context.Context, id int64) error {
	m.calls++
	m.deleteID = id
	return m.err
}

func (m *mockUseCase) DeleteAll(ctx context.Context) (warranty.DeleteAllOutput, error) {
	m.calls++
	if m.err != nil {
		return warranty.DeleteAllOutput{}, m.err
	}
	return warranty.DeleteAllOutput{Deleted: 3}, nil
}

func (m *mockUseCase) ClosestToExpiry(ctx context.Context, in warranty.ViewInput) (warranty.ViewOutput, error) {
	m.calls++
	m.viewIn = in
	if m.err != nil {
		return warranty.ViewOutput{}, m.err
	}
	return warranty.ViewOutput{Today: day(2023, 7, 15), Items: []warranty.EnrichedItem{sampleItem()}}, nil
}

func (m *mockUseCase) RecentlyAdded(ctx context.Context, in warranty.ViewInput) (warranty.ViewOutput, error) {
	m.calls++
	m.viewIn = in
	if m.err != nil {
		return warranty.ViewOutput{}, m.err
	}
	return warranty.ViewOutput{Today: day(2023, 7, 15), Items: []warranty.EnrichedItem{}}, nil
}

func (m *mockUseCase) Dashboard(ctx context.Context) (warranty.DashboardOutput, error) {
	m.calls++
	if m.err != nil {
		return warranty.DashboardOutput{}, m.err
	}
	return warranty.DashboardOutput{
		Today:   day(2023, 7, 15),
		Closest: []warranty.EnrichedItem{sampleItem()},
		Recent:  []warranty.EnrichedItem{},
	}, nil
}

func (m *mockUseCase) ScheduleReminder(ctx context.Context, in warranty.ScheduleReminderInput) (warranty.ScheduleReminderOutput, error) {
	m.calls++
	m.reminderIn = in
	if m.err != nil {
		return warranty.ScheduleReminderOutput{}, m.err
	}
	start := time.Date(2023, 12, 15, 9, 0, 0, 0, time.UTC)
	return warranty.ScheduleReminderOutput{EventID: "evt", EventLink: "https://calendar.example/evt", Start: start, End: start.Add(time.Hour)}, nil
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func sampleItem() warranty.EnrichedItem {
	return warranty.EnrichedItem{
		Item: warranty.Item{
			ID:               7,
			Name:             "Dishwasher",
			WarrantyDuration: 12,
			DurationUnit:     datemath.UnitMonths,
			DateBought:       day(2023, 1, 15),
			ExpirationDate:   day(2024, 1, 15),
		},
		DaysRemaining:    184,
		ProgressFraction: 0.4959,
		ThumbnailURL:     "/thumbnails/default_product.png",
	}
}

type envelope struct {
	ErrorCode int             `json:"error_code"`
	Message   string          `json:"message"`
	Data      json.RawMessage `json:"data"`
}

func init() {
	gin.SetMode(gin.TestMode)
}

func setup(t *testing.T) (*gin.Engine, *mockUseCase) {
	t.Helper()
	parser, err := datemath.NewParser("UTC")
	if err != nil {
		t.Fatalf("NewParser: %v", err)
	}
	uc := &mockUseCase{}
	l := log.NewNop()
	h := New(l, uc, parser, 1<<20)

	r := gin.New()
	RegisterRoutes(r.Group("/api/v1"), h, middleware.New(l, middleware.Config{}))
	return r, uc
}

func do(r http.Handler, method, path, contentType string, body io.Reader) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func doJSON(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	return do(r, method, path, "application/json", strings.NewReader(body))
}

func decode(t *testing.T, w *httptest.ResponseRecorder, data any) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	if data != nil {
		if err := json.Unmarshal(env.Data, data); err != nil {
			t.Fatalf("decode data %q: %v", env.Data, err)
		}
	}
	return env
}

func multipartBody(t *testing.T, fields map[string]string, fileName, fileContent string) (string, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatal(err)
		}
	}
	if fileName != "" {
		fw, err := mw.CreateFormFile("thumbnail", fileName)
		if err != nil {
			t.Fatal(err)
		}
		fw.Write([]byte(fileContent))
	}
	mw.Close()
	return mw.FormDataContentType(), &buf
}

func TestCreateJSON(t *testing.T) {
	r, uc := setup(t)

	w := doJSON(r, http.MethodPost, "/api/v1/items",
		`{"name":"Dishwasher","warranty_duration":12,"duration_unit":"month","date_bought":"2023-01-15"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", w.Code, w.Body)
	}

	want := warranty.CreateItemInput{Name: "Dishwasher", WarrantyDuration: 12, DurationUnit: datemath.UnitMonths, DateBought: day(2023, 1, 15)}
	if uc.createIn != want {
		t.Errorf("input = %+v, want %+v", uc.createIn, want)
	}

	var resp createResp
	decode(t, w, &resp)
	if resp.Item.ID != 7 || resp.Item.DaysRemaining != 184 || resp.Item.ProgressPercent != 50 {
		t.Errorf("unexpected item: %+v", resp.Item)
	}
	if resp.Item.Warranty != "12 months" {
		t.Errorf("warranty = %q", resp.Item.Warranty)
	}
	if !strings.Contains(w.Body.String(), `"expiration_date":"2024-01-15"`) {
		t.Errorf("expiration date not rendered as a civil date: %s", w.Body)
	}
	if strings.Contains(w.Body.String(), "thumbnail_error") {
		t.Errorf("thumbnail_error should be omitted: %s", w.Body)
	}
}

func TestCreateWarrantyShorthand(t *testing.T) {
	tests := []struct {
		shorthand string
		want      datemath.Duration
	}{
		{"2 years", datemath.Duration{Amount: 24, Unit: datemath.UnitMonths}},
		{"90 days", datemath.Duration{Amount: 90, Unit: datemath.UnitDays}},
		{"1 week", datemath.Duration{Amount: 7, Unit: datemath.UnitDays}},
	}

	for _, tt := range tests {
		t.Run(tt.shorthand, func(t *testing.T) {
			r, uc := setup(t)
			body := fmt.Sprintf(`{"name":"TV","warranty":%q,"date_bought":"2023-01-15"}`, tt.shorthand)
			if w := doJSON(r, http.MethodPost, "/api/v1/items", body); w.Code != http.StatusCreated {
				t.Fatalf("status = %d, body %s", w.Code, w.Body)
			}
			got := datemath.Duration{Amount: uc.createIn.WarrantyDuration, Unit: uc.createIn.DurationUnit}
			if got != tt.want {
				t.Errorf("duration = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestCreateBadRequest(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"Malformed JSON", `{"name":`},
		{"Missing name", `{"warranty_duration":12,"date_bought":"2023-01-15"}`},
		{"Missing date", `{"name":"TV","warranty_duration":12}`},
		{"Bad date", `{"name":"TV","warranty_duration":12,"date_bought":"15/01/2023"}`},
		{"Missing duration", `{"name":"TV","date_bought":"2023-01-15"}`},
		{"Negative duration", `{"name":"TV","warranty_duration":-1,"date_bought":"2023-01-15"}`},
		{"Unknown unit", `{"name":"TV","warranty_duration":1,"duration_unit":"fortnight","date_bought":"2023-01-15"}`},
		{"Bad shorthand", `{"name":"TV","warranty":"forever","date_bought":"2023-01-15"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, uc := setup(t)
			w := doJSON(r, http.MethodPost, "/api/v1/items", tt.body)
			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400 (body %s)", w.Code, w.Body)
			}
			if uc.calls != 0 {
				t.Error("use case should not be called")
			}
		})
	}
}

func TestCreateMultipart(t *testing.T) {
	r, uc := setup(t)
	uc.thumbErr = thumbnail.ErrUnsupportedFormat

	ct, body := multipartBody(t, map[string]string{
		"name":              "Camera",
		"warranty_duration": "24",
		"date_bought":       "2023-03-01",
	}, "cam.gif", "GIF89a")

	w := do(r, http.MethodPost, "/api/v1/items", ct, body)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", w.Code, w.Body)
	}
	if uc.createIn.Name != "Camera" || uc.createIn.WarrantyDuration != 24 || uc.createIn.DurationUnit != datemath.UnitMonths {
		t.Errorf("input = %+v", uc.createIn)
	}
	if uc.createIn.Thumbnail == nil || uc.createIn.Thumbnail.Filename != "cam.gif" || uc.uploadBody != "GIF89a" {
		t.Errorf("upload not passed through: %+v body %q", uc.createIn.Thumbnail, uc.uploadBody)
	}

	var resp createResp
	decode(t, w, &resp)
	if resp.ThumbnailError != thumbnail.ErrUnsupportedFormat.Error() {
		t.Errorf("thumbnail_error = %q", resp.ThumbnailError)
	}
}

func TestCreateMultipartWithoutFile(t *testing.T) {
	r, uc := setup(t)
	ct, body := multipartBody(t, map[string]string{"name": "Kettle", "warranty": "6 months", "date_bought": "2023-03-01"}, "", "")

	if w := do(r, http.MethodPost, "/api/v1/items", ct, body); w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", w.Code, w.Body)
	}
	if uc.createIn.Thumbnail != nil {
		t.Error("expected no upload")
	}
}

func TestCreateUploadTooLarge(t *testing.T) {
	r, uc := setup(t)
	ct, body := multipartBody(t, map[string]string{"name": "Big", "warranty": "1 month", "date_bought": "2023-03-01"},
		"big.png", strings.Repeat("x", 2<<20))

	w := do(r, http.MethodPost, "/api/v1/items", ct, body)
	if w.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("status = %d, want 413", w.Code)
	}
	if uc.calls != 0 {
		t.Error("use case should not be called")
	}
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"Not found", warranty.ErrItemNotFound, http.StatusNotFound},
		{"Future date", fmt.Errorf("%w: 2030-01-01", warranty.ErrDateBoughtInFuture), http.StatusBadRequest},
		{"Empty name", warranty.ErrEmptyName, http.StatusBadRequest},
		{"Invalid sort", warranty.ErrInvalidSort, http.StatusBadRequest},
		{"Reminder in past", warranty.ErrReminderInPast, http.StatusBadRequest},
		{"Invalid duration", datemath.ErrInvalidDuration, http.StatusBadRequest},
		{"Unsupported image", thumbnail.ErrUnsupportedFormat, http.StatusBadRequest},
		{"Calendar disabled", warranty.ErrCalendarDisabled, http.StatusServiceUnavailable},
		{"Storage failure", errors.New("disk full"), http.StatusInternalServerError},
	}

	h := &handler{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var httpErr *pkgErrors.HTTPError
			if !errors.As(h.mapError(tt.err), &httpErr) {
				t.Fatalf("mapError(%v) is not an HTTPError", tt.err)
			}
			if httpErr.Code != tt.wantStatus {
				t.Errorf("code = %d, want %d", httpErr.Code, tt.wantStatus)
			}
		})
	}
}

func TestInternalErrorHidesDetails(t *testing.T) {
	r, uc := setup(t)
	uc.err = errors.New("database is locked")

	w := do(r, http.MethodGet, "/api/v1/items/7", "", nil)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", w.Code)
	}
	if strings.Contains(w.Body.String(), "locked") {
		t.Errorf("internal error leaked: %s", w.Body)
	}
}

func TestList(t *testing.T) {
	r, uc := setup(t)

	w := do(r, http.MethodGet, "/api/v1/items?sort=-expiration&limit=10&offset=5", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body)
	}
	if want := (warranty.ListItemsInput{Sort: "-expiration", Limit: 10, Offset: 5}); uc.listIn != want {
		t.Errorf("input = %+v, want %+v", uc.listIn, want)
	}

	var resp listResp
	decode(t, w, &resp)
	if resp.Total != 1 || len(resp.Items) != 1 || resp.Items[0].Name != "Dishwasher" {
		t.Errorf("unexpected response: %+v", resp)
	}

	w = do(r, http.MethodGet, "/api/v1/items?limit=-1", "", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("negative limit status = %d, want 400", w.Code)
	}
	var fields map[string]string
	decode(t, w, &fields)
	if fields["Limit"] != "min" {
		t.Errorf("field details = %v, want Limit: min", fields)
	}

	uc.err = fmt.Errorf("%w: %q", warranty.ErrInvalidSort, "price")
	if w := do(r, http.MethodGet, "/api/v1/items?sort=price", "", nil); w.Code != http.StatusBadRequest {
		t.Errorf("invalid sort status = %d, want 400", w.Code)
	}
}

func TestDetail(t *testing.T) {
	r, uc := setup(t)

	w := do(r, http.MethodGet, "/api/v1/items/7", "", nil)
	if w.Code != http.StatusOK || uc.detailID != 7 {
		t.Fatalf("status = %d, id = %d", w.Code, uc.detailID)
	}

	for _, id := range []string{"abc", "0", "-3"} {
		if w := do(r, http.MethodGet, "/api/v1/items/"+id, "", nil); w.Code != http.StatusBadRequest {
			t.Errorf("id %q status = %d, want 400", id, w.Code)
		}
	}

	uc.err = warranty.ErrItemNotFound
	w = do(r, http.MethodGet, "/api/v1/items/99", "", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
	if env := decode(t, w, nil); env.Message != warranty.ErrItemNotFound.Error() {
		t.Errorf("message = %q", env.Message)
	}
}

func TestUpdate(t *testing.T) {
	t.Run("Partial JSON", func(t *testing.T) {
		r, uc := setup(t)
		w := doJSON(r, http.MethodPut, "/api/v1/items/7", `{"name":"Dish washer"}`)
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, body %s", w.Code, w.Body)
		}
		if want := (warranty.UpdateItemInput{ID: 7, Name: "Dish washer"}); uc.updateIn != want {
			t.Errorf("input = %+v, want %+v", uc.updateIn, want)
		}
	})

	t.Run("Unit only", func(t *testing.T) {
		r, uc := setup(t)
		if w := doJSON(r, http.MethodPut, "/api/v1/items/7", `{"duration_unit":"days"}`); w.Code != http.StatusOK {
			t.Fatalf("status = %d, body %s", w.Code, w.Body)
		}
		if uc.updateIn.WarrantyDuration != 0 || uc.updateIn.DurationUnit != datemath.UnitDays {
			t.Errorf("input = %+v", uc.updateIn)
		}
	})

	t.Run("Dates and shorthand", func(t *testing.T) {
		r, uc := setup(t)
		w := doJSON(r, http.MethodPut, "/api/v1/items/7", `{"warranty":"3 years","date_bought":"2022-02-02"}`)
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, body %s", w.Code, w.Body)
		}
		if uc.updateIn.WarrantyDuration != 36 || !uc.updateIn.DateBought.Equal(day(2022, 2, 2)) {
			t.Errorf("input = %+v", uc.updateIn)
		}
	})

	t.Run("Multipart thumbnail", func(t *testing.T) {
		r, uc := setup(t)
		ct, body := multipartBody(t, map[string]string{"name": "TV"}, "tv.png", "PNG")
		if w := do(r, http.MethodPut, "/api/v1/items/7", ct, body); w.Code != http.StatusOK {
			t.Fatalf("status = %d, body %s", w.Code, w.Body)
		}
		if uc.updateIn.Thumbnail == nil || uc.uploadBody != "PNG" {
			t.Errorf("upload not passed through: %+v", uc.updateIn)
		}
	})

	t.Run("Whitespace name", func(t *testing.T) {
		r, uc := setup(t)
		if w := doJSON(r, http.MethodPut, "/api/v1/items/7", `{"name":"   "}`); w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", w.Code)
		}
		if uc.calls != 0 {
			t.Error("use case should not be called")
		}
	})

	t.Run("Not found", func(t *testing.T) {
		r, uc := setup(t)
		uc.err = warranty.ErrItemNotFound
		if w := doJSON(r, http.MethodPut, "/api/v1/items/7", `{"name":"x"}`); w.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", w.Code)
		}
	})
}

func TestReplaceThumbnail(t *testing.T) {
	r, uc := setup(t)

	ct, body := multipartBody(t, nil, "new.jpg", "JPEG")
	w := do(r, http.MethodPut, "/api/v1/items/7/thumbnail", ct, body)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body)
	}
	if uc.replaceIn.ID != 7 || uc.replaceIn.Thumbnail.Filename != "new.jpg" || uc.uploadBody != "JPEG" {
		t.Errorf("input = %+v body %q", uc.replaceIn, uc.uploadBody)
	}

	ct, body = multipartBody(t, map[string]string{"name": "x"}, "", "")
	if w := do(r, http.MethodPut, "/api/v1/items/7/thumbnail", ct, body); w.Code != http.StatusBadRequest {
		t.Errorf("missing file status = %d, want 400", w.Code)
	}
	if w := doJSON(r, http.MethodPut, "/api/v1/items/7/thumbnail", `{}`); w.Code != http.StatusBadRequest {
		t.Errorf("json body status = %d, want 400", w.Code)
	}

	uc.err = thumbnail.ErrUnsupportedFormat
	ct, body = multipartBody(t, nil, "new.gif", "GIF")
	if w := do(r, http.MethodPut, "/api/v1/items/7/thumbnail", ct, body); w.Code != http.StatusBadRequest {
		t.Errorf("unsupported format status = %d, want 400", w.Code)
	}
}

func TestDelete(t *testing.T) {
	r, uc := setup(t)

	if w := do(r, http.MethodDelete, "/api/v1/items/7", "", nil); w.Code != http.StatusOK || uc.deleteID != 7 {
		t.Errorf("status = %d, id = %d", w.Code, uc.deleteID)
	}

	uc.err = warranty.ErrItemNotFound
	if w := do(r, http.MethodDelete, "/api/v1/items/7", "", nil); w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestDeleteAll(t *testing.T) {
	r, _ := setup(t)

	w := do(r, http.MethodDelete, "/api/v1/items", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var resp deleteAllResp
	decode(t, w, &resp)
	if resp.Deleted != 3 {
		t.Errorf("deleted = %d, want 3", resp.Deleted)
	}
}

func TestViews(t *testing.T) {
	r, uc := setup(t)

	w := do(r, http.MethodGet, "/api/v1/items/closest?limit=3", "", nil)
	if w.Code != http.StatusOK || uc.viewIn.Limit != 3 {
		t.Fatalf("status = %d, limit = %d", w.Code, uc.viewIn.Limit)
	}
	if !strings.Contains(w.Body.String(), `"today":"2023-07-15"`) {
		t.Errorf("today not rendered: %s", w.Body)
	}

	w = do(r, http.MethodGet, "/api/v1/items/recent", "", nil)
	if w.Code != http.StatusOK || uc.viewIn.Limit != 0 {
		t.Fatalf("status = %d, limit = %d", w.Code, uc.viewIn.Limit)
	}
	var view viewResp
	decode(t, w, &view)
	if view.Items == nil {
		t.Error("empty view should render as []")
	}

	w = do(r, http.MethodGet, "/api/v1/dashboard", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"recent":[]`) || !strings.Contains(w.Body.String(), `"closest":[{`) {
		t.Errorf("unexpected dashboard: %s", w.Body)
	}
}

func TestScheduleReminder(t *testing.T) {
	t.Run("Default lead", func(t *testing.T) {
		r, uc := setup(t)
		w := do(r, http.MethodPost, "/api/v1/items/7/reminder", "", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, body %s", w.Code, w.Body)
		}
		if uc.reminderIn != (warranty.ScheduleReminderInput{ID: 7}) {
			t.Errorf("input = %+v", uc.reminderIn)
		}
		var resp reminderResp
		decode(t, w, &resp)
		if resp.EventLink == "" || !resp.End.Equal(resp.Start.Add(time.Hour)) {
			t.Errorf("unexpected response: %+v", resp)
		}
	})

	t.Run("Custom lead", func(t *testing.T) {
		r, uc := setup(t)
		if w := doJSON(r, http.MethodPost, "/api/v1/items/7/reminder", `{"lead":"2 weeks"}`); w.Code != http.StatusOK {
			t.Fatalf("status = %d, body %s", w.Code, w.Body)
		}
		if want := (datemath.Duration{Amount: 14, Unit: datemath.UnitDays}); uc.reminderIn.Lead != want {
			t.Errorf("lead = %+v, want %+v", uc.reminderIn.Lead, want)
		}
	})

	t.Run("Bad lead", func(t *testing.T) {
		r, uc := setup(t)
		if w := doJSON(r, http.MethodPost, "/api/v1/items/7/reminder", `{"lead":"soon"}`); w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", w.Code)
		}
		if uc.calls != 0 {
			t.Error("use case should not be called")
		}
	})

	t.Run("Calendar disabled", func(t *testing.T) {
		r, uc := setup(t)
		uc.err = warranty.ErrCalendarDisabled
		if w := do(r, http.MethodPost, "/api/v1/items/7/reminder", "", nil); w.Code != http.StatusServiceUnavailable {
			t.Errorf("status = %d, want 503", w.Code)
		}
	})
}
