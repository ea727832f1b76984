package datemath

import (
	"fmt"
	"time"
)

const secondsPerDay = 24 * 60 * 60

// Results must stay within the four-digit years of the YYYY-MM-DD layout.
const (
	minYear   = 1
	maxYear   = 9999
	maxMonths = (maxYear - minYear + 1) * 12
	maxDays   = (maxYear - minYear + 1) * 366
)

// ComputeExpiration returns dateBought advanced by duration units.
//
// Month arithmetic clamps to the last day of the target month, so Jan 31 plus
// one month is Feb 28 (or Feb 29 in a leap year) rather than early March.
func ComputeExpiration(dateBought time.Time, duration int, unit Unit) (time.Time, error) {
	if duration <= 0 {
		return time.Time{}, fmt.Errorf("%w: got %d", ErrInvalidDuration, duration)
	}
	return shift(Date(dateBought), duration, unit)
}

// DaysUntil returns target - today in whole civil days. The result is
// negative once target has passed. Counted on Unix seconds, since
// time.Duration saturates after about 292 years.
func DaysUntil(target, today time.Time) int {
	return int((Date(target).Unix() - Date(today).Unix()) / secondsPerDay)
}

// ProgressFraction returns the signed share of the warranty window that has
// elapsed by today. Values below 0 or above 1 are returned as-is so callers can
// tell "not started" and "expired" apart from "on track".
func ProgressFraction(dateBought, expiration, today time.Time) (float64, error) {
	total := DaysUntil(expiration, dateBought)
	if total == 0 {
		return 0, ErrDegenerateRange
	}
	return 1 - float64(DaysUntil(expiration, today))/float64(total), nil
}

// ReminderDate returns the civil date lead before expiration.
func ReminderDate(expiration time.Time, lead Duration) (time.Time, error) {
	if lead.Amount <= 0 {
		return time.Time{}, fmt.Errorf("%w: reminder lead %d", ErrInvalidDuration, lead.Amount)
	}
	return shift(Date(expiration), -lead.Amount, lead.Unit)
}

func shift(d time.Time, amount int, unit Unit) (time.Time, error) {
	var out time.Time
	switch unit {
	case UnitDays:
		if amount > maxDays || amount < -maxDays {
			return time.Time{}, fmt.Errorf("%w: %d days is out of range", ErrInvalidDuration, amount)
		}
		out = d.AddDate(0, 0, amount)
	case UnitMonths:
		if amount > maxMonths || amount < -maxMonths {
			return time.Time{}, fmt.Errorf("%w: %d months is out of range", ErrInvalidDuration, amount)
		}
		out = addMonths(d, amount)
	default:
		return time.Time{}, fmt.Errorf("%w: %q", ErrUnknownUnit, unit)
	}

	if y := out.Year(); y < minYear || y > maxYear {
		return time.Time{}, fmt.Errorf("%w: %d %s lands in year %d", ErrInvalidDuration, amount, unit, y)
	}
	return out, nil
}

// addMonths adds calendar months to a civil date. time.AddDate normalizes
// overflowing days into the next month, which is not what a warranty means.
func addMonths(d time.Time, months int) time.Time {
	y, m, dd := d.Date()
	first := time.Date(y, m+time.Month(months), 1, 0, 0, 0, 0, time.UTC)
	if last := daysIn(first); dd > last {
		dd = last
	}
	return time.Date(first.Year(), first.Month(), dd, 0, 0, 0, 0, time.UTC)
}

func daysIn(firstOfMonth time.Time) int {
	return time.Date(firstOfMonth.Year(), firstOfMonth.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
