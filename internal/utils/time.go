package utils

import "time"

// FormatTime normalizes a timestamp to RFC3339. A nil input stays nil so
// that absent source dates are never serialized as a fabricated value.
func FormatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}

// StartOfMonth returns the first instant of the calendar month containing t,
// in t's location.
func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}
