package model

import (
	"errors"
	"strings"
	"time"
)

var ErrBlankTitle = errors.New("model: task title is required")

// UntitledTitle replaces a blank title found in a loaded snapshot.
const UntitledTitle = "(untitled)"

// RestoredProgress is what a completed task's progress falls back to when it
// is un-completed. A restored task is never shown as 100% incomplete.
const RestoredProgress = 99

// Task is a single unit of work with progress/completion coupling and
// start/stop time tracking. All time-dependent operations take the current
// instant explicitly so that rollover and elapsed math stay deterministic
// under test.
type Task struct {
	ID    string
	Title string
	Memo  string
	Due   time.Time

	Progress  int
	Completed bool

	TotalWorkSeconds int64
	DailyWorkSeconds int64
	DailyDate        time.Time

	trackingSince time.Time
	onChange      func(*Task)
}

// NewTask rejects a whitespace-only title; every other field is clamped into
// range. The daily counter starts at zero for today's date.
func NewTask(id, title, memo string, due time.Time, progress int, now time.Time) (*Task, error) {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return nil, ErrBlankTitle
	}
	t := &Task{
		ID:        id,
		Title:     trimmed,
		Memo:      strings.TrimSpace(memo),
		Due:       due,
		DailyDate: DateOf(now),
	}
	t.SetProgress(progress, now)
	return t, nil
}

// SetOnChange registers the completion-flag listener. Only one listener is
// supported; the partition manager owns it.
func (t *Task) SetOnChange(fn func(*Task)) {
	t.onChange = fn
}

func (t *Task) SetTitle(title string) {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return
	}
	t.Title = trimmed
}

func (t *Task) SetMemo(memo string) {
	t.Memo = strings.TrimSpace(memo)
}

func (t *Task) SetDue(due time.Time) {
	t.Due = due
}

// SetProgress clamps to [0,100] and derives the completion flag: 100 means
// completed (and stops any running tracking session), anything lower means
// not completed. Out-of-range input is absorbed, never reported.
func (t *Task) SetProgress(value int, now time.Time) {
	wasCompleted := t.Completed
	t.Progress = clampProgress(value)
	if t.Progress == 100 {
		t.Completed = true
		t.StopTracking(now)
	} else {
		t.Completed = false
	}
	if t.Completed != wasCompleted {
		t.fireChanged()
	}
}

// SetCompleted derives progress symmetrically: completing raises progress to
// 100 and stops tracking; restoring a task sitting at 100 lowers it to
// RestoredProgress.
func (t *Task) SetCompleted(done bool, now time.Time) {
	wasCompleted := t.Completed
	if done {
		t.Progress = 100
		t.StopTracking(now)
	} else if t.Progress == 100 {
		t.Progress = RestoredProgress
	}
	t.Completed = done
	if t.Completed != wasCompleted {
		t.fireChanged()
	}
}

// Tracking reports whether a tracking session is open.
func (t *Task) Tracking() bool {
	return !t.trackingSince.IsZero()
}

// StartTracking opens a tracking session. No-op when one is already open.
func (t *Task) StartTracking(now time.Time) {
	t.rollover(now)
	if t.Tracking() {
		return
	}
	t.trackingSince = now
}

// StopTracking closes the open session and credits its elapsed seconds to
// the counters. Only the portion of the session at or after midnight of
// now's day counts toward the daily counter. No-op when idle.
func (t *Task) StopTracking(now time.Time) {
	if !t.Tracking() {
		return
	}
	since := t.trackingSince
	t.trackingSince = time.Time{}
	t.rollover(now)

	elapsed := secondsBetween(since, now)
	t.TotalWorkSeconds += elapsed

	from := since
	if dayStart := DateOf(now); from.Before(dayStart) {
		from = dayStart
	}
	daily := secondsBetween(from, now)
	if daily > elapsed {
		daily = elapsed
	}
	t.DailyWorkSeconds += daily
}

// TotalElapsedSeconds returns the total counter plus the live in-progress
// span. It never mutates state; display polling must not perturb counters.
func (t *Task) TotalElapsedSeconds(now time.Time) int64 {
	total := t.TotalWorkSeconds
	if t.Tracking() {
		total += secondsBetween(t.trackingSince, now)
	}
	return total
}

// DailyElapsedSeconds returns today's counter plus the live portion of the
// open session that falls on today. A stale DailyDate reads as zero without
// resetting anything; the reset happens on the next start/stop.
func (t *Task) DailyElapsedSeconds(now time.Time) int64 {
	daily := t.DailyWorkSeconds
	if !SameDay(t.DailyDate, now) {
		daily = 0
	}
	if t.Tracking() {
		from := t.trackingSince
		if dayStart := DateOf(now); from.Before(dayStart) {
			from = dayStart
		}
		daily += secondsBetween(from, now)
	}
	return daily
}

// Normalize repairs a task materialized from a snapshot: a start instant
// captured in a previous process run cannot be trusted, so tracking is
// forced idle, and progress is authoritative over the completed flag.
// Idempotent.
func (t *Task) Normalize(now time.Time) {
	t.Title = strings.TrimSpace(t.Title)
	if t.Title == "" {
		t.Title = UntitledTitle
	}
	t.Memo = strings.TrimSpace(t.Memo)
	t.Progress = clampProgress(t.Progress)
	t.Completed = t.Progress == 100
	if t.TotalWorkSeconds < 0 {
		t.TotalWorkSeconds = 0
	}
	if t.DailyWorkSeconds < 0 {
		t.DailyWorkSeconds = 0
	}
	t.trackingSince = time.Time{}
	t.rollover(now)
}

func (t *Task) rollover(now time.Time) {
	today := DateOf(now)
	if !t.DailyDate.Equal(today) {
		t.DailyWorkSeconds = 0
		t.DailyDate = today
	}
}

func (t *Task) fireChanged() {
	if t.onChange != nil {
		t.onChange(t)
	}
}

func clampProgress(value int) int {
	if value < 0 {
		return 0
	}
	if value > 100 {
		return 100
	}
	return value
}

func secondsBetween(from, to time.Time) int64 {
	sec := int64(to.Sub(from) / time.Second)
	if sec < 0 {
		return 0
	}
	return sec
}
