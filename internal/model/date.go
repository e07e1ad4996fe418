package model

import (
	"fmt"
	"time"
)

// DateLayout is the date-only wire format used by snapshots and command
// input.
const DateLayout = "2006-01-02"

// DateOf truncates an instant to midnight of its calendar day, keeping the
// location so midnight boundaries follow the caller's wall clock.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// SameDay reports whether two instants fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// ParseDate parses a YYYY-MM-DD value. An empty string parses to the zero
// time, meaning "no date".
func ParseDate(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	return time.Parse(DateLayout, raw)
}

// FormatDate renders a date-only value; the zero time renders empty.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}

// FormatClock renders accumulated seconds as MM:SS under one hour and
// HH:MM:SS at or above it.
func FormatClock(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	if h > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}

// FormatWork renders the "daily (total)" pair shown next to a task.
func FormatWork(daily, total int64) string {
	return fmt.Sprintf("%s (%s)", FormatClock(daily), FormatClock(total))
}
