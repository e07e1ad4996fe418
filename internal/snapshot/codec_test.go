package snapshot

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/manikdv/stint/internal/model"
)

func mkTask(t *testing.T, id, title string, progress int, total int64, now time.Time) *model.Task {
	t.Helper()
	task, err := model.NewTask(id, title, "", time.Time{}, progress, now)
	if err != nil {
		t.Fatalf("new task: %v", err)
	}
	task.TotalWorkSeconds = total
	return task
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	now := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	a := mkTask(t, "task-1", "A", 40, 120, now)
	a.DailyWorkSeconds = 60
	b := mkTask(t, "task-2", "B", 100, 500, now)

	raw, err := Encode([]*model.Task{a}, []*model.Task{b})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	records, err := Decode(raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}

	// Active records come first, in collection order.
	if records[0].Title != "A" || records[0].Completed {
		t.Fatalf("unexpected first record: %+v", records[0])
	}
	if records[0].Progress != 40 || records[0].TotalWorkSeconds != 120 || records[0].DailyWorkSeconds != 60 {
		t.Fatalf("unexpected first record fields: %+v", records[0])
	}
	if records[1].Title != "B" || !records[1].Completed || records[1].Progress != 100 || records[1].TotalWorkSeconds != 500 {
		t.Fatalf("unexpected second record: %+v", records[1])
	}
}

func TestRoundTripMaterializesIdleNormalizedTasks(t *testing.T) {
	saved := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	a := mkTask(t, "task-1", "A", 40, 120, saved)
	a.StartTracking(saved)
	a.StopTracking(saved.Add(60 * time.Second))

	raw, err := Encode([]*model.Task{a}, nil)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	records, err := Decode(raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	// Reload on the same day keeps the daily counter.
	sameDay := saved.Add(2 * time.Hour)
	loaded := records[0].Task("task-1", sameDay)
	if loaded.Tracking() {
		t.Fatal("expected tracking idle after load")
	}
	if loaded.DailyWorkSeconds != 60 || loaded.TotalWorkSeconds != 180 {
		t.Fatalf("unexpected counters: daily=%d total=%d", loaded.DailyWorkSeconds, loaded.TotalWorkSeconds)
	}

	// Reload the next day resets the daily counter and advances its date.
	nextDay := time.Date(2026, 2, 10, 8, 0, 0, 0, time.UTC)
	stale := records[0].Task("task-1", nextDay)
	if stale.DailyWorkSeconds != 0 {
		t.Fatalf("expected stale daily counter reset, got %d", stale.DailyWorkSeconds)
	}
	if !stale.DailyDate.Equal(model.DateOf(nextDay)) {
		t.Fatalf("expected daily date advanced, got %s", stale.DailyDate)
	}
	if stale.TotalWorkSeconds != 180 {
		t.Fatalf("expected total preserved, got %d", stale.TotalWorkSeconds)
	}
}

func TestDecodeMalformedBytesIsFormatFailure(t *testing.T) {
	_, err := Decode([]byte(`{"tasks": [{`))
	if !errors.Is(err, ErrFormat) {
		t.Fatalf("expected ErrFormat, got: %v", err)
	}

	_, err = Decode([]byte(`"not a document"`))
	if !errors.Is(err, ErrFormat) {
		t.Fatalf("expected ErrFormat for wrong shape, got: %v", err)
	}
}

func TestDecodeEmptyInputYieldsNoRecords(t *testing.T) {
	for _, raw := range [][]byte{nil, []byte(""), []byte("  \n")} {
		records, err := Decode(raw)
		if err != nil || records != nil {
			t.Fatalf("expected empty decode for %q, got %v %v", raw, records, err)
		}
	}
}

func TestRecordTaskRepairsSoftIssues(t *testing.T) {
	now := time.Date(2026, 2, 10, 8, 0, 0, 0, time.UTC)
	rec := Record{
		Title:            "  ",
		Memo:             " note ",
		DueDate:          "garbage",
		Progress:         300,
		Completed:        false,
		TotalWorkSeconds: -4,
		DailyWorkSeconds: 50,
		DailyDate:        "2026-02-09",
	}
	task := rec.Task("task-9", now)
	if task.Title != model.UntitledTitle {
		t.Fatalf("expected untitled fallback, got %q", task.Title)
	}
	if task.Memo != "note" {
		t.Fatalf("expected trimmed memo, got %q", task.Memo)
	}
	if !task.Due.IsZero() {
		t.Fatalf("expected unparseable due date dropped, got %s", task.Due)
	}
	if task.Progress != 100 || !task.Completed {
		t.Fatalf("expected clamped progress to force completion, got progress=%d completed=%v", task.Progress, task.Completed)
	}
	if task.TotalWorkSeconds != 0 {
		t.Fatalf("expected negative total clamped, got %d", task.TotalWorkSeconds)
	}
	if task.DailyWorkSeconds != 0 {
		t.Fatalf("expected stale daily reset, got %d", task.DailyWorkSeconds)
	}
}

func TestEncodeEmitsTrailingNewlineAndStableShape(t *testing.T) {
	raw, err := Encode(nil, nil)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	text := string(raw)
	if !strings.HasSuffix(text, "\n") {
		t.Fatal("expected trailing newline")
	}
	if !strings.Contains(text, `"tasks"`) {
		t.Fatalf("expected tasks key in output: %q", text)
	}
}
