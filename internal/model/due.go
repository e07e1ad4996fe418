package model

import "time"

type DueStatus string

const (
	DueStatusNone     DueStatus = "None"
	DueStatusOverdue  DueStatus = "Overdue"
	DueStatusToday    DueStatus = "Today"
	DueStatusUpcoming DueStatus = "Upcoming"
)

// DueStatusOf classifies a task's due date against the current day.
// Completed tasks are never overdue.
func DueStatusOf(t *Task, now time.Time) DueStatus {
	if t.Due.IsZero() {
		return DueStatusNone
	}
	if t.Completed {
		return DueStatusNone
	}
	due := DateOf(t.Due)
	today := DateOf(now)
	switch {
	case due.Before(today):
		return DueStatusOverdue
	case due.Equal(today):
		return DueStatusToday
	default:
		return DueStatusUpcoming
	}
}
