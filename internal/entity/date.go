package entity

import "time"

const (
	// DateLayout is the only accepted input form of a calendar date.
	DateLayout = "2006-01-02"
	// DisplayLayout is the form dates are rendered in responses, e.g. "Mon Jan 01 2024".
	DisplayLayout = "Mon Jan 02 2006"
)

// ParseDate parses s as a strict YYYY-MM-DD calendar date.
// The returned date is midnight UTC of that day.
func ParseDate(s string) (time.Time, bool) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// DateOf truncates t to the calendar date it falls on in its own location,
// returned as midnight UTC.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// FormatDate renders a calendar date in DisplayLayout.
func FormatDate(t time.Time) string {
	return t.Format(DisplayLayout)
}
