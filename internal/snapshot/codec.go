// Package snapshot converts the in-memory task set to and from its
// restartable persisted form. Tracking state is never persisted; every
// loaded record is normalized before use since a snapshot may reference
// "today" from a previous run.
package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/manikdv/stint/internal/model"
)

var (
	// ErrFormat marks snapshot bytes that do not parse as the expected
	// structure. The whole load fails; records are never dropped one by one.
	ErrFormat = errors.New("snapshot: malformed snapshot")
	// ErrIO marks a failed read or write of the underlying file.
	ErrIO = errors.New("snapshot: snapshot io")
)

// Record is one persisted task. Field-level problems (out-of-range progress,
// blank title, stale dates) survive decoding and are repaired by Normalize
// when the record is materialized.
type Record struct {
	Title            string `json:"title"`
	Memo             string `json:"memo,omitempty"`
	DueDate          string `json:"due_date,omitempty"`
	Progress         int    `json:"progress"`
	Completed        bool   `json:"completed"`
	TotalWorkSeconds int64  `json:"total_work_seconds"`
	DailyWorkSeconds int64  `json:"daily_work_seconds"`
	DailyDate        string `json:"daily_date,omitempty"`
}

type document struct {
	Tasks []Record `json:"tasks"`
}

// Encode produces one ordered record sequence: active tasks first in their
// collection order, then completed tasks in theirs.
func Encode(active, completed []*model.Task) ([]byte, error) {
	doc := document{Tasks: make([]Record, 0, len(active)+len(completed))}
	for _, t := range active {
		doc.Tasks = append(doc.Tasks, recordFromTask(t))
	}
	for _, t := range completed {
		doc.Tasks = append(doc.Tasks, recordFromTask(t))
	}
	payload, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormat, err)
	}
	return append(payload, '\n'), nil
}

// Decode parses snapshot bytes into the persisted record sequence. Empty
// input yields no records; malformed input is a hard failure.
func Decode(raw []byte) ([]Record, error) {
	if strings.TrimSpace(string(raw)) == "" {
		return nil, nil
	}
	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormat, err)
	}
	return doc.Tasks, nil
}

// Task materializes a normalized task from the record. Unparseable dates are
// treated as absent and left to Normalize to repair.
func (r Record) Task(id string, now time.Time) *model.Task {
	due, err := model.ParseDate(r.DueDate)
	if err != nil {
		due = time.Time{}
	}
	daily, err := model.ParseDate(r.DailyDate)
	if err != nil {
		daily = time.Time{}
	}
	t := &model.Task{
		ID:               id,
		Title:            r.Title,
		Memo:             r.Memo,
		Due:              due,
		Progress:         r.Progress,
		Completed:        r.Completed,
		TotalWorkSeconds: r.TotalWorkSeconds,
		DailyWorkSeconds: r.DailyWorkSeconds,
		DailyDate:        daily,
	}
	t.Normalize(now)
	return t
}

func recordFromTask(t *model.Task) Record {
	return Record{
		Title:            t.Title,
		Memo:             t.Memo,
		DueDate:          model.FormatDate(t.Due),
		Progress:         t.Progress,
		Completed:        t.Completed,
		TotalWorkSeconds: t.TotalWorkSeconds,
		DailyWorkSeconds: t.DailyWorkSeconds,
		DailyDate:        model.FormatDate(t.DailyDate),
	}
}
