package usecase

import (
	"context"
	"fmt"
	"time"

	"warranty-tracker/internal/warranty"
	"warranty-tracker/pkg/datemath"
	"warranty-tracker/pkg/gcalendar"
)

const reminderDescription = "Warranty will expire in %d days at %s. We recommend to check %s for issues and use warranty if necessary."

// ScheduleReminder places a one-hour calendar event ahead of an item's
// expiration. Returns ErrCalendarDisabled when no calendar is configured and
// ErrReminderInPast when the reminder date has already gone by.
func (uc *implUseCase) ScheduleReminder(ctx context.Context, input warranty.ScheduleReminderInput) (warranty.ScheduleReminderOutput, error) {
	if uc.calendar == nil {
		return warranty.ScheduleReminderOutput{}, warranty.ErrCalendarDisabled
	}

	item, err := uc.getItem(ctx, "ScheduleReminder", input.ID)
	if err != nil {
		return warranty.ScheduleReminderOutput{}, err
	}

	lead := input.Lead
	if lead.Amount == 0 {
		lead = uc.reminder.Lead
	}
	remindOn, err := datemath.ReminderDate(item.ExpirationDate, lead)
	if err != nil {
		return warranty.ScheduleReminderOutput{}, err
	}
	if remindOn.Before(uc.today()) {
		return warranty.ScheduleReminderOutput{}, fmt.Errorf("%w: %s", warranty.ErrReminderInPast, remindOn.Format(datemath.DateLayout))
	}

	start := uc.parser.At(remindOn, uc.reminder.Hour)
	end := start.Add(time.Hour)

	event, err := uc.calendar.CreateEvent(ctx, gcalendar.CreateEventRequest{
		CalendarID: uc.reminder.CalendarID,
		Summary:    "Warranty check: " + item.Name,
		Description: fmt.Sprintf(reminderDescription,
			datemath.DaysUntil(item.ExpirationDate, remindOn),
			item.ExpirationDate.Format(datemath.DateLayout),
			item.Name,
		),
		StartTime: start,
		EndTime:   end,
		Timezone:  uc.parser.Location().String(),
		ColorID:   uc.reminder.ColorID,
	})
	if err != nil {
		uc.l.Errorf(ctx, "uc.ScheduleReminder CreateEvent: %v", err)
		return warranty.ScheduleReminderOutput{}, err
	}

	uc.l.Infof(ctx, "uc.ScheduleReminder: item %d reminder %s on %s", item.ID, event.ID, remindOn.Format(datemath.DateLayout))
	return warranty.ScheduleReminderOutput{
		EventID:   event.ID,
		EventLink: event.HtmlLink,
		Start:     start,
		End:       end,
	}, nil
}
