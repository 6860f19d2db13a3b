package catalog

import (
	"fmt"
	"strings"
	"time"
)

// ClosedLabel marks a day without opening hours.
const ClosedLabel = "Closed"

const clockLayout = "3:04 PM"

// WeeklyHours holds the human-readable opening hours per weekday, e.g. "10:00 AM - 10:00 PM".
type WeeklyHours struct {
	Monday    string `json:"monday"`
	Tuesday   string `json:"tuesday"`
	Wednesday string `json:"wednesday"`
	Thursday  string `json:"thursday"`
	Friday    string `json:"friday"`
	Saturday  string `json:"saturday"`
	Sunday    string `json:"sunday"`
}

// On returns the hours string for the given weekday.
func (w WeeklyHours) On(day time.Weekday) string {
	switch day {
	case time.Monday:
		return w.Monday
	case time.Tuesday:
		return w.Tuesday
	case time.Wednesday:
		return w.Wednesday
	case time.Thursday:
		return w.Thursday
	case time.Friday:
		return w.Friday
	case time.Saturday:
		return w.Saturday
	default:
		return w.Sunday
	}
}

// Validate reports the first day whose hours cannot be parsed.
func (w WeeklyHours) Validate() error {
	for day := time.Sunday; day <= time.Saturday; day++ {
		if _, _, err := parseSpan(w.On(day)); err != nil {
			return fmt.Errorf("%s: %w", strings.ToLower(day.String()), err)
		}
	}
	return nil
}

// openingSpan is a parsed hours string expressed as minutes since midnight.
// close <= open means the span runs past midnight into the next day.
type openingSpan struct {
	open, close int
	allDay      bool
}

func (s openingSpan) overnight() bool { return !s.allDay && s.close <= s.open }

// parseSpan parses "10:00 AM - 10:00 PM". It reports ok=false for "Closed".
func parseSpan(hours string) (openingSpan, bool, error) {
	hours = strings.TrimSpace(hours)
	switch {
	case hours == "" || strings.EqualFold(hours, ClosedLabel):
		return openingSpan{}, false, nil
	case strings.EqualFold(hours, "open 24 hours"), strings.EqualFold(hours, "24 hours"):
		return openingSpan{allDay: true}, true, nil
	}
	from, to, found := strings.Cut(hours, "-")
	if !found {
		return openingSpan{}, false, fmt.Errorf("hours %q: missing range separator", hours)
	}
	open, err := parseClock(from)
	if err != nil {
		return openingSpan{}, false, fmt.Errorf("hours %q: %w", hours, err)
	}
	closing, err := parseClock(to)
	if err != nil {
		return openingSpan{}, false, fmt.Errorf("hours %q: %w", hours, err)
	}
	return openingSpan{open: open, close: closing}, true, nil
}

func parseClock(s string) (int, error) {
	t, err := time.Parse(clockLayout, strings.ToUpper(strings.TrimSpace(s)))
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

// IsOpenAt reports whether a store with the given hours is open at instant now in loc.
// Unparseable hours count as closed. A span that crosses midnight keeps the store open
// into the early hours of the following day.
func IsOpenAt(hours WeeklyHours, now time.Time, loc *time.Location) bool {
	local := now.In(loc)
	minute := local.Hour()*60 + local.Minute()

	if span, ok, err := parseSpan(hours.On(local.Weekday())); err == nil && ok {
		switch {
		case span.allDay:
			return true
		case span.overnight():
			if minute >= span.open {
				return true
			}
		case minute >= span.open && minute < span.close:
			return true
		}
	}

	yesterday := local.AddDate(0, 0, -1).Weekday()
	if span, ok, err := parseSpan(hours.On(yesterday)); err == nil && ok && span.overnight() {
		return minute < span.close
	}
	return false
}

// HoursOn returns the hours string for the local weekday of now in loc.
func HoursOn(hours WeeklyHours, now time.Time, loc *time.Location) string {
	return hours.On(now.In(loc).Weekday())
}

// ResolveLocation loads an IANA zone, falling back when the name is empty or unknown.
func ResolveLocation(name string, fallback *time.Location) *time.Location {
	if fallback == nil {
		fallback = time.UTC
	}
	if name == "" {
		return fallback
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return fallback
	}
	return loc
}
