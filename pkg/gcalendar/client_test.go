package gcalendar_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"golang.org/x/oauth2"

	"warranty-tracker/pkg/gcalendar"
)

type rewriteTransport struct {
	Transport http.RoundTripper
	Host      string
}

func (t *rewriteTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.URL.Scheme = "http"
	req.URL.Host = t.Host
	return t.Transport.RoundTrip(req)
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *gcalendar.Client {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	tsClient := ts.Client()
	tsClient.Transport = &rewriteTransport{
		Transport: tsClient.Transport,
		Host:      strings.TrimPrefix(ts.URL, "http://"),
	}

	client, err := gcalendar.NewClientFromHTTP(context.Background(), tsClient)
	if err != nil {
		t.Fatalf("unexpected error creating client: %v", err)
	}
	return client
}

func TestCalendarClient(t *testing.T) {
	mockCreds := `{
		"installed": {
			"client_id": "test-client-id.apps.googleusercontent.com",
			"project_id": "test-project",
			"auth_uri": "https://accounts.google.com/o/oauth2/auth",
			"token_uri": "https://oauth2.googleapis.com/token",
			"client_secret": "test-secret",
			"redirect_uris": ["http://localhost"]
		}
	}`

	t.Run("Initialize with broken JWT/OAuth config", func(t *testing.T) {
		_, err := gcalendar.NewClientFromCredentialsJSON(context.Background(), []byte(`{"broken":true}`), "")
		if err == nil {
			t.Errorf("expected decoding failure")
		}
	})

	t.Run("Initialize from installed app config", func(t *testing.T) {
		tokenPath := filepath.Join(t.TempDir(), "token.json")
		os.WriteFile(tokenPath, []byte(`{"access_token": "dummy", "token_type": "Bearer", "expiry": "2030-01-01T00:00:00Z"}`), 0o600)

		_, err := gcalendar.NewClientFromCredentialsJSON(context.Background(), []byte(mockCreds), tokenPath)
		if err != nil {
			t.Fatalf("expected parsing to succeed: %v", err)
		}
	})

	t.Run("Initialize from installed app config missing token", func(t *testing.T) {
		_, err := gcalendar.NewClientFromCredentialsJSON(context.Background(), []byte(mockCreds), filepath.Join(t.TempDir(), "none.json"))
		if err == nil {
			t.Fatalf("expected failure without token")
		}
	})

	t.Run("Initialize from installed app config bad token", func(t *testing.T) {
		tokenPath := filepath.Join(t.TempDir(), "token.json")
		os.WriteFile(tokenPath, []byte(`{"broken": true`), 0o600)

		_, err := gcalendar.NewClientFromCredentialsJSON(context.Background(), []byte(mockCreds), tokenPath)
		if err == nil {
			t.Fatalf("expected parsing to fail on bad token")
		}
	})

	t.Run("Initialize from File", func(t *testing.T) {
		credsPath := filepath.Join(t.TempDir(), "creds.json")
		os.WriteFile(credsPath, []byte(`{"broken":true}`), 0o600)

		_, err := gcalendar.NewClientFromCredentialsFile(context.Background(), credsPath, "token.json")
		if err == nil {
			t.Errorf("expected failure loading broken file")
		}

		_, err = gcalendar.NewClientFromCredentialsFile(context.Background(), "non-existent-file-path-12345.json", "token.json")
		if err == nil {
			t.Errorf("expected reading file error")
		}
	})
}

func TestTokenRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token.json")
	want := &oauth2.Token{AccessToken: "abc", TokenType: "Bearer", RefreshToken: "refresh"}

	if err := gcalendar.WriteToken(path, want); err != nil {
		t.Fatalf("WriteToken: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("token permissions = %o, want 600", perm)
	}

	got, err := gcalendar.ReadToken(path)
	if err != nil {
		t.Fatalf("ReadToken: %v", err)
	}
	if got.AccessToken != want.AccessToken || got.RefreshToken != want.RefreshToken {
		t.Errorf("token mismatch: got %+v", got)
	}
}

func TestCreateEvent(t *testing.T) {
	start := time.Date(2023, 12, 15, 9, 0, 0, 0, time.UTC)
	var body map[string]any

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/calendar/v3/calendars/primary/events" || r.Method != http.MethodPost {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		raw, _ := io.ReadAll(r.Body)
		json.Unmarshal(raw, &body)
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{
			"id": "event-123",
			"summary": "Warranty check: Dishwasher",
			"htmlLink": "https://calendar.google.com/event-uri",
			"status": "confirmed"
		}`))
	})

	event, err := client.CreateEvent(context.Background(), gcalendar.CreateEventRequest{
		Summary:         "Warranty check: Dishwasher",
		Description:     "Desc",
		StartTime:       start,
		EndTime:         start.Add(time.Hour),
		Timezone:        "UTC",
		ColorID:         "6",
		ReminderMinutes: 60,
	})
	if err != nil {
		t.Fatalf("failed to create event: %v", err)
	}
	if event.ID != "event-123" || event.HtmlLink != "https://calendar.google.com/event-uri" {
		t.Errorf("unexpected event: %+v", event)
	}
	if !event.StartTime.Equal(start) {
		t.Errorf("StartTime = %v, want %v", event.StartTime, start)
	}

	if body["colorId"] != "6" {
		t.Errorf("colorId = %v, want 6", body["colorId"])
	}
	startBody, _ := body["start"].(map[string]any)
	if startBody["dateTime"] != "2023-12-15T09:00:00Z" {
		t.Errorf("start.dateTime = %v", startBody["dateTime"])
	}
	reminders, _ := body["reminders"].(map[string]any)
	if reminders["useDefault"] != false {
		t.Errorf("reminders.useDefault = %v, want false", reminders["useDefault"])
	}
}

func TestCreateEventError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.CreateEvent(context.Background(), gcalendar.CreateEventRequest{
		CalendarID: "primary",
	})
	if err == nil {
		t.Fatalf("expected create event error")
	}
}
