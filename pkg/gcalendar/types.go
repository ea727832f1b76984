package gcalendar

import "time"

// CreateEventRequest is the input for creating a Google Calendar event.
type CreateEventRequest struct {
	CalendarID  string
	Summary     string
	Description string
	StartTime   time.Time
	EndTime     time.Time
	Timezone    string // e.g. "Asia/Jerusalem"
	ColorID     string // Google Calendar event color, "1" to "11"
	// ReminderMinutes adds a popup reminder this many minutes before start.
	// Zero keeps the calendar's default reminders.
	ReminderMinutes int64
}

// Event is a simplified representation of a Google Calendar event.
type Event struct {
	ID          string
	Summary     string
	Description string
	HtmlLink    string
	StartTime   time.Time
	EndTime     time.Time
}
