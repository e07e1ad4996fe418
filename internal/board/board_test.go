package board

import (
	"testing"
	"time"

	"github.com/manikdv/stint/internal/model"
)

func mkTask(t *testing.T, id, title string, progress int, now time.Time) *model.Task {
	t.Helper()
	task, err := model.NewTask(id, title, "", time.Time{}, progress, now)
	if err != nil {
		t.Fatalf("new task: %v", err)
	}
	return task
}

func ids(tasks []*model.Task) []string {
	out := make([]string, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.ID)
	}
	return out
}

func assertPartition(t *testing.T, b *Board) {
	t.Helper()
	seen := make(map[string]bool)
	for _, task := range b.Active() {
		if task.Completed {
			t.Fatalf("completed task %s in active collection", task.ID)
		}
		if seen[task.ID] {
			t.Fatalf("task %s appears twice", task.ID)
		}
		seen[task.ID] = true
	}
	for _, task := range b.Completed() {
		if !task.Completed {
			t.Fatalf("incomplete task %s in completed collection", task.ID)
		}
		if seen[task.ID] {
			t.Fatalf("task %s appears twice", task.ID)
		}
		seen[task.ID] = true
	}
}

func TestAddPartitionsByCompletionFlag(t *testing.T) {
	now := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	b := New()

	open := mkTask(t, "task-1", "Open", 40, now)
	done := mkTask(t, "task-2", "Done", 100, now)
	b.Add(open)
	b.Add(done)

	if got := ids(b.Active()); len(got) != 1 || got[0] != "task-1" {
		t.Fatalf("unexpected active collection: %v", got)
	}
	if got := ids(b.Completed()); len(got) != 1 || got[0] != "task-2" {
		t.Fatalf("unexpected completed collection: %v", got)
	}
	assertPartition(t, b)

	// Re-adding the same ID is a no-op.
	b.Add(open)
	if len(b.Active()) != 1 {
		t.Fatalf("expected duplicate add ignored, got %v", ids(b.Active()))
	}
}

func TestCompleteMovesAndStopsTracking(t *testing.T) {
	now := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	b := New()
	task := mkTask(t, "task-1", "Work", 40, now)
	b.Add(task)
	task.StartTracking(now)

	b.Complete(task, now.Add(time.Minute))
	if task.Tracking() {
		t.Fatal("expected tracking stopped on complete")
	}
	if !task.Completed || task.Progress != 100 {
		t.Fatalf("unexpected task state: progress=%d completed=%v", task.Progress, task.Completed)
	}
	if task.TotalWorkSeconds != 60 {
		t.Fatalf("expected 60 tracked seconds, got %d", task.TotalWorkSeconds)
	}
	if len(b.Active()) != 0 || len(b.Completed()) != 1 {
		t.Fatalf("unexpected collections: active=%v completed=%v", ids(b.Active()), ids(b.Completed()))
	}
	assertPartition(t, b)
}

func TestCompleteIsIdempotent(t *testing.T) {
	now := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	b := New()
	task := mkTask(t, "task-1", "Once", 40, now)
	b.Add(task)

	b.Complete(task, now)
	b.Complete(task, now)
	if len(b.Completed()) != 1 {
		t.Fatalf("expected single completed entry, got %v", ids(b.Completed()))
	}
	assertPartition(t, b)
}

func TestRestoreClampsProgressTo99(t *testing.T) {
	now := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	b := New()
	task := mkTask(t, "task-1", "Back", 100, now)
	b.Add(task)

	b.Restore(task, now)
	if task.Completed {
		t.Fatal("expected completed false after restore")
	}
	if task.Progress != model.RestoredProgress {
		t.Fatalf("expected progress %d, got %d", model.RestoredProgress, task.Progress)
	}
	if len(b.Active()) != 1 || len(b.Completed()) != 0 {
		t.Fatalf("unexpected collections: active=%v completed=%v", ids(b.Active()), ids(b.Completed()))
	}
	assertPartition(t, b)
}

func TestReactiveMoveOnDirectProgressEdit(t *testing.T) {
	now := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	b := New()
	first := mkTask(t, "task-1", "First", 10, now)
	second := mkTask(t, "task-2", "Second", 20, now)
	b.Add(first)
	b.Add(second)

	// A direct field edit behaves exactly like the complete action.
	first.SetProgress(100, now)
	if got := ids(b.Completed()); len(got) != 1 || got[0] != "task-1" {
		t.Fatalf("expected task-1 moved to completed, got %v", got)
	}
	if got := ids(b.Active()); len(got) != 1 || got[0] != "task-2" {
		t.Fatalf("expected task-2 left in active, got %v", got)
	}

	// And back again through a direct restore edit.
	first.SetCompleted(false, now)
	if got := ids(b.Active()); len(got) != 2 || got[1] != "task-1" {
		t.Fatalf("expected task-1 appended to active, got %v", got)
	}
	assertPartition(t, b)
}

func TestMoveOrderingAppendsToDestination(t *testing.T) {
	now := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	b := New()
	a := mkTask(t, "task-a", "A", 0, now)
	c := mkTask(t, "task-b", "B", 0, now)
	d := mkTask(t, "task-c", "C", 0, now)
	b.Add(a)
	b.Add(c)
	b.Add(d)

	b.Complete(c, now)
	b.Complete(a, now)
	if got := ids(b.Completed()); got[0] != "task-b" || got[1] != "task-a" {
		t.Fatalf("expected completion order preserved, got %v", got)
	}
	if got := ids(b.Active()); len(got) != 1 || got[0] != "task-c" {
		t.Fatalf("unexpected active order: %v", got)
	}

	b.Restore(c, now)
	if got := ids(b.Active()); got[len(got)-1] != "task-b" {
		t.Fatalf("expected restored task appended, got %v", got)
	}
}

func TestDeleteDetachesSubscription(t *testing.T) {
	now := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	b := New()
	task := mkTask(t, "task-1", "Gone", 10, now)
	b.Add(task)
	task.StartTracking(now)

	b.Delete(task, now.Add(30*time.Second))
	if task.Tracking() {
		t.Fatal("expected tracking stopped on delete")
	}
	if len(b.Active()) != 0 || len(b.Completed()) != 0 {
		t.Fatal("expected empty board after delete")
	}

	// A detached task's edits must not fire back into the board.
	task.SetProgress(100, now)
	if len(b.Completed()) != 0 {
		t.Fatalf("expected deleted task to stay out, got %v", ids(b.Completed()))
	}
}

func TestStatsAverageProgress(t *testing.T) {
	now := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	b := New()
	if got := b.Stats(); got.AverageProgress != 0 || got.Total != 0 {
		t.Fatalf("expected zero stats on empty board, got %+v", got)
	}

	b.Add(mkTask(t, "task-1", "A", 40, now))
	b.Add(mkTask(t, "task-2", "B", 100, now))
	b.Add(mkTask(t, "task-3", "C", 10, now))

	got := b.Stats()
	if got.Total != 3 || got.Active != 2 || got.Completed != 1 {
		t.Fatalf("unexpected counts: %+v", got)
	}
	if got.AverageProgress != 50 {
		t.Fatalf("expected average 50, got %v", got.AverageProgress)
	}
}

func TestOnMutateFiresAndBatchDefers(t *testing.T) {
	now := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	b := New()
	fired := 0
	b.SetOnMutate(func() { fired++ })

	task := mkTask(t, "task-1", "Hook", 10, now)
	b.Add(task)
	if fired != 1 {
		t.Fatalf("expected mutation hook on add, got %d", fired)
	}

	task.SetProgress(100, now)
	if fired != 2 {
		t.Fatalf("expected mutation hook on reactive move, got %d", fired)
	}

	fired = 0
	b.Batch(func() {
		for _, id := range []string{"task-2", "task-3", "task-4"} {
			b.Add(mkTask(t, id, "Bulk", 0, now))
		}
	})
	if fired != 1 {
		t.Fatalf("expected one deferred hook after batch, got %d", fired)
	}
}

func TestStopAllClosesOpenSessions(t *testing.T) {
	now := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	b := New()
	one := mkTask(t, "task-1", "One", 0, now)
	two := mkTask(t, "task-2", "Two", 0, now)
	b.Add(one)
	b.Add(two)
	one.StartTracking(now)

	if !b.HasTracking() {
		t.Fatal("expected open session detected")
	}
	b.StopAll(now.Add(45 * time.Second))
	if b.HasTracking() {
		t.Fatal("expected all sessions closed")
	}
	if one.TotalWorkSeconds != 45 {
		t.Fatalf("expected 45 seconds credited, got %d", one.TotalWorkSeconds)
	}
	if two.TotalWorkSeconds != 0 {
		t.Fatalf("expected idle task untouched, got %d", two.TotalWorkSeconds)
	}
}
