package datemath

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the wire and storage format for civil dates.
const DateLayout = "2006-01-02"

// Unit is the calendar unit a duration is counted in.
type Unit string

const (
	UnitDays   Unit = "days"
	UnitMonths Unit = "months"
)

// Valid reports whether u is one of the supported units.
func (u Unit) Valid() bool {
	return u == UnitDays || u == UnitMonths
}

// Duration is an amount of calendar time, e.g. 12 months or 90 days.
type Duration struct {
	Amount int
	Unit   Unit
}

// String renders the duration the way ParseDuration accepts it.
func (d Duration) String() string {
	unit := string(d.Unit)
	if d.Amount == 1 {
		unit = strings.TrimSuffix(unit, "s")
	}
	return fmt.Sprintf("%d %s", d.Amount, unit)
}

// Date returns the civil date of t, represented as midnight UTC.
func Date(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
