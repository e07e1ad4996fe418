// Package board keeps the task set partitioned into an active and a
// completed collection, consistent with each task's completion flag.
package board

import (
	"time"

	"github.com/manikdv/stint/internal/model"
)

// Stats summarizes the full task set for the status line.
type Stats struct {
	Total           int
	Active          int
	Completed       int
	AverageProgress float64
}

// Board owns the two ordered collections. Insertion order is display order:
// added and moved tasks append to the end of their destination. Execution is
// single-threaded, so re-entrant change notifications are gated with a plain
// boolean rather than a lock.
type Board struct {
	active    []*model.Task
	completed []*model.Task

	moving   bool
	batching bool
	onMutate func()
}

func New() *Board {
	return &Board{
		active:    make([]*model.Task, 0),
		completed: make([]*model.Task, 0),
	}
}

// SetOnMutate registers the hook fired after every state-changing operation,
// including moves triggered by direct field edits. The caller typically
// writes a snapshot here.
func (b *Board) SetOnMutate(fn func()) {
	b.onMutate = fn
}

// Batch runs fn with the mutation hook deferred, then fires it once. Used
// for bulk loads so a snapshot restore does not write a snapshot per record.
func (b *Board) Batch(fn func()) {
	if b.batching {
		fn()
		return
	}
	b.batching = true
	fn()
	b.batching = false
	b.fireMutated()
}

// Add inserts the task into the collection matching its completion flag and
// subscribes to its change notifications. Adding a task whose ID is already
// present is a no-op.
func (b *Board) Add(t *model.Task) {
	if t == nil {
		return
	}
	if _, ok := b.Find(t.ID); ok {
		return
	}
	t.SetOnChange(b.handleTaskChange)
	if t.Completed {
		b.completed = append(b.completed, t)
	} else {
		b.active = append(b.active, t)
	}
	b.fireMutated()
}

// Complete moves a task from active to completed, stopping its tracking
// session. No-op when the task is not in active, so completing an
// already-completed task never duplicates it.
func (b *Board) Complete(t *model.Task, now time.Time) {
	idx := indexOf(b.active, t)
	if idx < 0 {
		return
	}
	b.moving = true
	t.SetCompleted(true, now)
	b.moving = false

	b.active = removeAt(b.active, idx)
	b.completed = append(b.completed, t)
	b.fireMutated()
}

// Restore moves a task from completed back to active, lowering its progress
// below 100. No-op when the task is not in completed.
func (b *Board) Restore(t *model.Task, now time.Time) {
	idx := indexOf(b.completed, t)
	if idx < 0 {
		return
	}
	b.moving = true
	t.SetCompleted(false, now)
	b.moving = false

	b.completed = removeAt(b.completed, idx)
	b.active = append(b.active, t)
	b.fireMutated()
}

// Delete stops the task's tracking, detaches its change subscription and
// removes it from whichever collection holds it. A dangling subscription
// would fire into a board no longer tracking the task.
func (b *Board) Delete(t *model.Task, now time.Time) {
	if t == nil {
		return
	}
	t.StopTracking(now)
	t.SetOnChange(nil)
	if idx := indexOf(b.active, t); idx >= 0 {
		b.active = removeAt(b.active, idx)
		b.fireMutated()
		return
	}
	if idx := indexOf(b.completed, t); idx >= 0 {
		b.completed = removeAt(b.completed, idx)
		b.fireMutated()
	}
}

// Find locates a task by its stable ID across both collections.
func (b *Board) Find(id string) (*model.Task, bool) {
	for _, t := range b.active {
		if t.ID == id {
			return t, true
		}
	}
	for _, t := range b.completed {
		if t.ID == id {
			return t, true
		}
	}
	return nil, false
}

// Active returns the active collection in display order. The slice is a
// copy; the tasks are shared.
func (b *Board) Active() []*model.Task {
	out := make([]*model.Task, len(b.active))
	copy(out, b.active)
	return out
}

// Completed returns the completed collection in display order.
func (b *Board) Completed() []*model.Task {
	out := make([]*model.Task, len(b.completed))
	copy(out, b.completed)
	return out
}

func (b *Board) Stats() Stats {
	total := len(b.active) + len(b.completed)
	stats := Stats{
		Total:     total,
		Active:    len(b.active),
		Completed: len(b.completed),
	}
	if total == 0 {
		return stats
	}
	sum := 0
	for _, t := range b.active {
		sum += t.Progress
	}
	for _, t := range b.completed {
		sum += t.Progress
	}
	stats.AverageProgress = float64(sum) / float64(total)
	return stats
}

// HasTracking reports whether any task has an open tracking session.
func (b *Board) HasTracking() bool {
	for _, t := range b.active {
		if t.Tracking() {
			return true
		}
	}
	return false
}

// StopAll closes every open tracking session. Called before the process may
// become inactive so no session start instant leaks into a snapshot write.
func (b *Board) StopAll(now time.Time) {
	stopped := false
	for _, t := range b.active {
		if t.Tracking() {
			t.StopTracking(now)
			stopped = true
		}
	}
	if stopped {
		b.fireMutated()
	}
}

// handleTaskChange relocates a task whose completion flag flipped outside
// Complete/Restore, e.g. a direct progress edit to 100. The moving guard
// keeps the board's own moves from re-entering here.
func (b *Board) handleTaskChange(t *model.Task) {
	if b.moving {
		return
	}
	b.moving = true
	defer func() { b.moving = false }()

	if t.Completed {
		if idx := indexOf(b.active, t); idx >= 0 {
			b.active = removeAt(b.active, idx)
			b.completed = append(b.completed, t)
			b.fireMutated()
		}
		return
	}
	if idx := indexOf(b.completed, t); idx >= 0 {
		b.completed = removeAt(b.completed, idx)
		b.active = append(b.active, t)
		b.fireMutated()
	}
}

func (b *Board) fireMutated() {
	if b.batching || b.onMutate == nil {
		return
	}
	b.onMutate()
}

func indexOf(items []*model.Task, target *model.Task) int {
	if target == nil {
		return -1
	}
	for i, t := range items {
		if t.ID == target.ID {
			return i
		}
	}
	return -1
}

func removeAt(items []*model.Task, idx int) []*model.Task {
	return append(items[:idx], items[idx+1:]...)
}
