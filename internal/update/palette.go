package update

import (
	"fmt"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/manikdv/stint/internal/commands"
	"github.com/manikdv/stint/internal/model"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.Palette = CommandPaletteState{}
		m.commandInput.Blur()
		m.Status = StatusBar{Text: "command cancelled"}
		return m, nil
	case "enter":
		input := m.Palette.Input
		m.Palette = CommandPaletteState{}
		m.commandInput.Blur()
		return m.executePaletteCommand(input)
	}
	m.commandInput, _ = m.commandInput.Update(msg)
	m.Palette.Input = m.commandInput.Value()
	return m, nil
}

func (m Model) executePaletteCommand(input string) (tea.Model, tea.Cmd) {
	cmd, err := commands.Parse("/" + input)
	if err != nil {
		m.LastError = err
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m, nil
	}

	result, err := commands.Execute(cmd, m.paletteHandlers())
	if err != nil {
		m.LastError = err
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m, nil
	}
	m.reportSaveResult()
	m.syncSelectedTask()
	if !m.Status.IsError && result.Message != "" {
		m.Status = StatusBar{Text: result.Message}
	}
	if m.Board.HasTracking() && !m.ticking {
		m.ticking = true
		return m, displayTickCmd()
	}
	return m, nil
}

// paletteHandlers binds the command grammar to the board. The handlers close
// over the model so quick-add ID sequencing survives the call.
func (m *Model) paletteHandlers() commands.Handlers {
	now := m.clock()
	return commands.Handlers{
		Add: func(a commands.AddArgs) (commands.Result, error) {
			*m = m.addTask(a.Title)
			return commands.Result{Message: fmt.Sprintf("added: %s", a.Title)}, nil
		},
		Start: func(a commands.TargetArgs) (commands.Result, error) {
			task, err := m.resolveTarget(a.Target)
			if err != nil {
				return commands.Result{}, err
			}
			task.StartTracking(now)
			m.saver.save()
			return commands.Result{Message: fmt.Sprintf("tracking: %s", task.Title)}, nil
		},
		Stop: func(a commands.TargetArgs) (commands.Result, error) {
			task, err := m.resolveTarget(a.Target)
			if err != nil {
				return commands.Result{}, err
			}
			task.StopTracking(now)
			m.saver.save()
			return commands.Result{Message: fmt.Sprintf("stopped: %s (%s today)", task.Title, model.FormatClock(task.DailyElapsedSeconds(now)))}, nil
		},
		Done: func(a commands.TargetArgs) (commands.Result, error) {
			task, err := m.resolveTarget(a.Target)
			if err != nil {
				return commands.Result{}, err
			}
			m.Board.Complete(task, now)
			return commands.Result{Message: fmt.Sprintf("completed: %s", task.Title)}, nil
		},
		Restore: func(a commands.TargetArgs) (commands.Result, error) {
			task, err := m.resolveTarget(a.Target)
			if err != nil {
				return commands.Result{}, err
			}
			m.Board.Restore(task, now)
			return commands.Result{Message: fmt.Sprintf("restored: %s (%d%%)", task.Title, task.Progress)}, nil
		},
		Delete: func(a commands.TargetArgs) (commands.Result, error) {
			task, err := m.resolveTarget(a.Target)
			if err != nil {
				return commands.Result{}, err
			}
			m.Board.Delete(task, now)
			return commands.Result{Message: fmt.Sprintf("deleted: %s", task.Title)}, nil
		},
		Progress: func(a commands.ProgressArgs) (commands.Result, error) {
			task, err := m.resolveTarget(a.Target)
			if err != nil {
				return commands.Result{}, err
			}
			task.SetProgress(a.Value, now)
			m.saver.save()
			return commands.Result{Message: fmt.Sprintf("progress: %s %d%%", task.Title, task.Progress)}, nil
		},
		Due: func(a commands.DueArgs) (commands.Result, error) {
			task, err := m.resolveTarget(a.Target)
			if err != nil {
				return commands.Result{}, err
			}
			due, err := model.ParseDate(a.Date)
			if err != nil {
				return commands.Result{}, &commands.CommandError{
					Code:    commands.ErrCodeInvalidArgument,
					Message: fmt.Sprintf("due date must be YYYY-MM-DD: %s", a.Date),
				}
			}
			task.SetDue(due)
			m.saver.save()
			return commands.Result{Message: fmt.Sprintf("due: %s %s", task.Title, a.Date)}, nil
		},
	}
}

// resolveTarget maps "selected" or a 1-based position in the current view's
// list to a task.
func (m *Model) resolveTarget(target string) (*model.Task, error) {
	if target == "selected" {
		task, ok := m.Board.Find(m.SelectedTaskID)
		if !ok {
			return nil, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "no task selected"}
		}
		return task, nil
	}

	pos, err := strconv.Atoi(target)
	if err != nil || pos < 1 {
		return nil, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("bad target: %s", target)}
	}
	list := m.Board.Active()
	if m.CurrentView == ViewCompleted {
		list = m.Board.Completed()
	}
	if pos > len(list) {
		return nil, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("no task at position %d", pos)}
	}
	return list[pos-1], nil
}
