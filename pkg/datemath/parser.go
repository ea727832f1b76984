package datemath

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var durationPattern = regexp.MustCompile(`^(\d+)\s*(day|days|week|weeks|month|months|year|years)$`)

// Parser resolves civil dates against a fixed timezone.
type Parser struct {
	location *time.Location
}

// NewParser creates a new date parser for the given IANA timezone string.
// e.g. "Asia/Jerusalem"
func NewParser(timezone string) (*Parser, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return &Parser{location: loc}, nil
}

// Location returns the parser's timezone.
func (p *Parser) Location() *time.Location {
	return p.location
}

// Today returns the civil date of now as seen in the parser's timezone.
func (p *Parser) Today(now time.Time) time.Time {
	return Date(now.In(p.location))
}

// ParseDate parses a YYYY-MM-DD string into a civil date.
func (p *Parser) ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return Date(t), nil
}

// At returns the instant at the given hour of a civil date in the parser's timezone.
func (p *Parser) At(date time.Time, hour int) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, hour, 0, 0, 0, p.location)
}

// EndOfDay returns 23:59:59 at the end of the given start-of-day time.
func (p *Parser) EndOfDay(startOfDay time.Time) time.Time {
	return startOfDay.Add(23*time.Hour + 59*time.Minute + 59*time.Second)
}

// ParseDuration handles patterns like "90 days", "2 weeks", "12 months", "1 year".
// Weeks are folded into days and years into months.
func ParseDuration(s string) (Duration, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	matches := durationPattern.FindStringSubmatch(s)
	if len(matches) != 3 {
		return Duration{}, fmt.Errorf("invalid duration format: %q", s)
	}

	amount, err := strconv.Atoi(matches[1])
	if err != nil {
		return Duration{}, fmt.Errorf("invalid duration amount %q: %w", matches[1], err)
	}
	if amount <= 0 {
		return Duration{}, fmt.Errorf("%w: got %d", ErrInvalidDuration, amount)
	}

	unit := matches[2]
	switch {
	case strings.HasPrefix(unit, "day"):
		return Duration{Amount: amount, Unit: UnitDays}, nil
	case strings.HasPrefix(unit, "week"):
		return Duration{Amount: amount * 7, Unit: UnitDays}, nil
	case strings.HasPrefix(unit, "month"):
		return Duration{Amount: amount, Unit: UnitMonths}, nil
	case strings.HasPrefix(unit, "year"):
		return Duration{Amount: amount * 12, Unit: UnitMonths}, nil
	}

	return Duration{}, fmt.Errorf("%w: %q", ErrUnknownUnit, unit)
}

// ParseUnit parses "day(s)" or "month(s)".
func ParseUnit(s string) (Unit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "day", "days":
		return UnitDays, nil
	case "month", "months":
		return UnitMonths, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownUnit, s)
}
