package update

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/manikdv/stint/internal/model"
	"github.com/manikdv/stint/internal/views"
)

func (m Model) Init() tea.Cmd {
	if m.Board.HasTracking() {
		return displayTickCmd()
	}
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		if m.Palette.Active {
			return m.handlePaletteKey(typed)
		}
		if m.MemoEditing {
			return m.handleMemoEditKey(typed), nil
		}
		if m.Notes.Editing {
			return m.handleNoteEditKey(typed), nil
		}
		if m.CaptureMode {
			return m.handleCaptureKey(typed), nil
		}

		switch typed.String() {
		case "/":
			m.Palette.Active = true
			m.Palette.Input = ""
			m.commandInput.SetValue("")
			m.commandInput.Focus()
			m.Status = StatusBar{Text: "command palette active", IsError: false}
			return m, nil
		case m.Keys.Active:
			m.CurrentView = ViewActive
			m.syncSelectedTask()
			return m, nil
		case m.Keys.Completed:
			m.CurrentView = ViewCompleted
			m.syncSelectedTask()
			return m, nil
		case m.Keys.Notes:
			m.CurrentView = ViewNotes
			return m.ensureNotesLoaded(), nil
		case m.Keys.Help:
			m.HelpVisible = !m.HelpVisible
			return m, nil
		case "ctrl+c", m.Keys.Quit:
			return m.quit()
		}

		switch m.CurrentView {
		case ViewActive:
			return m.handleActiveKey(typed)
		case ViewCompleted:
			return m.handleCompletedKey(typed)
		case ViewNotes:
			return m.handleNotesKey(typed), nil
		}
	case SwitchViewMsg:
		if isKnownView(typed.View) {
			m.CurrentView = typed.View
			if typed.View == ViewNotes {
				return m.ensureNotesLoaded(), nil
			}
			m.syncSelectedTask()
		}
		return m, nil
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		m.LastError = typed.Err
		if typed.Err != nil {
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
		}
		return m, nil
	case QuickAddTaskMsg:
		return m.addTask(typed.Title), nil
	case DisplayTickMsg:
		// Read-only refresh: re-arm while a session is open so the live
		// elapsed display keeps moving. Never touches the counters.
		if m.Board.HasTracking() {
			return m, displayTickCmd()
		}
		m.ticking = false
		return m, nil
	}

	return m, nil
}

func (m Model) View() string {
	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = fmt.Sprintf("status: error: %s", m.Status.Text)
		} else {
			status = fmt.Sprintf("status: %s", m.Status.Text)
		}
	}

	leftPane := ""
	rightPane := ""
	switch m.CurrentView {
	case ViewActive:
		leftPane = m.renderTaskList(ViewActive)
		rightPane = m.renderTaskMetadataPane() + m.renderCommandPalette() + m.renderHelpIfVisible()
	case ViewCompleted:
		leftPane = m.renderTaskList(ViewCompleted)
		rightPane = m.renderTaskMetadataPane() + m.renderCommandPalette() + m.renderHelpIfVisible()
	case ViewNotes:
		leftPane = m.renderNotesView()
		rightPane = m.renderCommandPalette() + m.renderHelpIfVisible()
	}

	return views.RenderApp(views.AppData{
		Header:     fmt.Sprintf("stint | view: %s | selected: %s", m.CurrentView, m.SelectedTaskID),
		LeftPane:   leftPane,
		RightPane:  rightPane,
		StatusLine: status,
		Footer:     fmt.Sprintf("keys: %s active | %s completed | %s notes | / cmd | %s help | %s quit", m.Keys.Active, m.Keys.Completed, m.Keys.Notes, m.Keys.Help, m.Keys.Quit),
	})
}

// quit is the shutdown hook: open tracking sessions are closed and the final
// snapshot flushed before the process goes away.
func (m Model) quit() (tea.Model, tea.Cmd) {
	m.Board.StopAll(m.clock())
	m.saver.save()
	m.reportSaveResult()
	m.Quitting = true
	return m, tea.Quit
}

func (m Model) renderTaskList(view View) string {
	now := m.clock()
	tasks := m.Board.Active()
	heading := "active"
	actions := "[a]add [space]track [c]complete [d]delete [+/-]progress [e]memo [j/k]move"
	if view == ViewCompleted {
		tasks = m.Board.Completed()
		heading = "completed"
		actions = "[u]restore [d]delete [j/k]move"
	}

	rows := make([]views.TaskRowData, 0, len(tasks))
	for _, t := range tasks {
		rows = append(rows, views.TaskRowData{
			ID:        t.ID,
			Title:     t.Title,
			Progress:  t.Progress,
			DueDate:   model.FormatDate(t.Due),
			DueStatus: string(model.DueStatusOf(t, now)),
			Tracking:  t.Tracking(),
			Work:      model.FormatWork(t.DailyElapsedSeconds(now), t.TotalElapsedSeconds(now)),
		})
	}

	quickAdd := ""
	if view == ViewActive && m.CaptureMode {
		quickAdd = m.quickAddInput.View()
	}

	stats := m.Board.Stats()
	summary := fmt.Sprintf("%d tasks | %d active | %d completed | avg progress %.0f%%",
		stats.Total, stats.Active, stats.Completed, stats.AverageProgress)

	return views.RenderTaskPanel(views.TaskPanelData{
		Heading:      heading,
		Actions:      actions,
		QuickAddView: quickAdd,
		Rows:         rows,
		SelectedID:   m.SelectedTaskID,
		Summary:      summary,
	})
}

func (m Model) renderTaskMetadataPane() string {
	task, ok := m.Board.Find(m.SelectedTaskID)
	if !ok {
		return views.RenderTaskMetadataPane(views.TaskMetadataData{})
	}
	now := m.clock()
	memoView := m.memoViewport
	memoView.SetContent(views.RenderMarkdown(task.Memo))
	return views.RenderTaskMetadataPane(views.TaskMetadataData{
		SelectedID:       task.ID,
		Due:              model.FormatDate(task.Due),
		Progress:         task.Progress,
		ProgressView:     m.taskProgress.ViewAs(float64(task.Progress) / 100),
		Work:             model.FormatWork(task.DailyElapsedSeconds(now), task.TotalElapsedSeconds(now)),
		Tracking:         task.Tracking(),
		MemoEditorView:   m.memoArea.View(),
		MarkdownMemoView: memoView.View(),
		Editing:          m.MemoEditing,
	})
}

func (m Model) renderCommandPalette() string {
	if !m.Palette.Active {
		return ""
	}
	return "\n" + views.RenderCommandPalette(true, m.Palette.Input)
}

func (m Model) renderHelpIfVisible() string {
	if !m.HelpVisible {
		return ""
	}
	return "\n" + views.RenderHelpPanel(views.HelpPanelData{
		CurrentView: string(m.CurrentView),
		Bindings:    m.viewBindings(),
		HelpView:    m.helpModel.View(helpKeyMap{bindings: m.helpBindings()}),
	})
}

func displayTickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg { return DisplayTickMsg{} })
}
