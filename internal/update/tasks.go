package update

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/manikdv/stint/internal/model"
)

func (m Model) handleActiveKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		m.ActiveCursor++
		m.syncSelectedTask()
	case "k", "up":
		m.ActiveCursor--
		m.syncSelectedTask()
	case "a":
		m.CaptureMode = true
		m.quickAddInput.SetValue("")
		m.quickAddInput.Focus()
		m.Status = StatusBar{Text: "quick add: type a title, enter to save, esc to cancel"}
	case " ":
		return m.toggleTracking()
	case "c":
		if task, ok := m.Board.Find(m.SelectedTaskID); ok {
			m.Board.Complete(task, m.clock())
			m.reportSaveResult()
			m.syncSelectedTask()
			m.Status = StatusBar{Text: fmt.Sprintf("completed: %s", task.Title)}
		}
	case "d":
		m = m.deleteSelected()
	case "+", "=":
		m = m.bumpProgress(m.progressStep)
	case "-":
		m = m.bumpProgress(-m.progressStep)
	case "e":
		if task, ok := m.Board.Find(m.SelectedTaskID); ok {
			m.MemoEditing = true
			m.memoArea.SetValue(task.Memo)
			m.memoArea.Focus()
		}
	}
	return m, nil
}

func (m Model) handleCompletedKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		m.CompletedCursor++
		m.syncSelectedTask()
	case "k", "up":
		m.CompletedCursor--
		m.syncSelectedTask()
	case "u":
		if task, ok := m.Board.Find(m.SelectedTaskID); ok {
			m.Board.Restore(task, m.clock())
			m.reportSaveResult()
			m.syncSelectedTask()
			m.Status = StatusBar{Text: fmt.Sprintf("restored: %s (%d%%)", task.Title, task.Progress)}
		}
	case "d":
		m = m.deleteSelected()
	}
	return m, nil
}

func (m Model) handleCaptureKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m.CaptureMode = false
		m.quickAddInput.Blur()
		m.Status = StatusBar{Text: "quick add cancelled"}
		return m
	case "enter":
		title := m.quickAddInput.Value()
		m.CaptureMode = false
		m.quickAddInput.Blur()
		return m.addTask(title)
	}
	m.quickAddInput, _ = m.quickAddInput.Update(msg)
	return m
}

func (m Model) handleMemoEditKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		if task, ok := m.Board.Find(m.SelectedTaskID); ok {
			task.SetMemo(m.memoArea.Value())
			m.saver.save()
			m.reportSaveResult()
			m.Status = StatusBar{Text: fmt.Sprintf("memo saved: %s", task.Title)}
		}
		m.MemoEditing = false
		m.memoArea.Blur()
		return m
	}
	m.memoArea, _ = m.memoArea.Update(msg)
	return m
}

// addTask creates a task at the next sequential ID and appends it to the
// active list. A blank title is rejected rather than silently dropped.
func (m Model) addTask(title string) Model {
	id := fmt.Sprintf("task-%d", m.nextTaskID)
	task, err := model.NewTask(id, title, "", time.Time{}, 0, m.clock())
	if err != nil {
		m.LastError = err
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m
	}
	m.nextTaskID++
	m.Board.Add(task)
	m.reportSaveResult()
	m.CurrentView = ViewActive
	m.ActiveCursor = len(m.Board.Active()) - 1
	m.syncSelectedTask()
	m.Status = StatusBar{Text: fmt.Sprintf("added: %s", task.Title)}
	return m
}

// toggleTracking starts or stops the selected task's session. Starting arms
// the one-second display tick unless one is already in flight.
func (m Model) toggleTracking() (tea.Model, tea.Cmd) {
	task, ok := m.Board.Find(m.SelectedTaskID)
	if !ok {
		return m, nil
	}
	now := m.clock()
	if task.Tracking() {
		task.StopTracking(now)
		m.saver.save()
		m.reportSaveResult()
		m.Status = StatusBar{Text: fmt.Sprintf("stopped: %s (%s today)", task.Title, model.FormatClock(task.DailyElapsedSeconds(now)))}
		return m, nil
	}
	task.StartTracking(now)
	m.saver.save()
	m.reportSaveResult()
	m.Status = StatusBar{Text: fmt.Sprintf("tracking: %s", task.Title)}
	if m.ticking {
		return m, nil
	}
	m.ticking = true
	return m, displayTickCmd()
}

func (m Model) bumpProgress(delta int) Model {
	task, ok := m.Board.Find(m.SelectedTaskID)
	if !ok {
		return m
	}
	task.SetProgress(task.Progress+delta, m.clock())
	m.saver.save()
	m.reportSaveResult()
	m.syncSelectedTask()
	m.Status = StatusBar{Text: fmt.Sprintf("progress: %s %d%%", task.Title, task.Progress)}
	return m
}

func (m Model) deleteSelected() Model {
	task, ok := m.Board.Find(m.SelectedTaskID)
	if !ok {
		return m
	}
	m.Board.Delete(task, m.clock())
	m.reportSaveResult()
	m.syncSelectedTask()
	m.Status = StatusBar{Text: fmt.Sprintf("deleted: %s", task.Title)}
	return m
}
