package update

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/manikdv/stint/internal/board"
	"github.com/manikdv/stint/internal/notes"
	"github.com/manikdv/stint/internal/snapshot"
)

type View string

const (
	ViewActive    View = "Active"
	ViewCompleted View = "Completed"
	ViewNotes     View = "Notes"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Active    string
	Completed string
	Notes     string
	Help      string
	Quit      string
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

type NotesState struct {
	Items   []notes.Note
	Cursor  int
	Editing bool
	Capture bool
	Loaded  bool
}

// autosaver writes a snapshot whenever the board reports a mutation. It is
// shared by every copy of the bubbletea model so the board's hook keeps
// working as the model value is replaced on each update.
type autosaver struct {
	board   *board.Board
	store   *snapshot.Store
	lastErr error
	saves   int
}

func (a *autosaver) save() {
	if a.store == nil {
		return
	}
	raw, err := snapshot.Encode(a.board.Active(), a.board.Completed())
	if err == nil {
		err = a.store.Save(raw)
	}
	a.lastErr = err
	a.saves++
}

type Model struct {
	CurrentView     View
	Board           *board.Board
	NotesRepo       notes.Repository
	SelectedTaskID  string
	ActiveCursor    int
	CompletedCursor int
	CaptureMode     bool
	MemoEditing     bool
	Notes           NotesState
	Palette         CommandPaletteState
	HelpVisible     bool
	Status          StatusBar
	Keys            GlobalKeyMap
	Quitting        bool
	LastError       error

	saver        *autosaver
	clock        func() time.Time
	nextTaskID   int
	ticking      bool
	progressStep int

	// Bubble components used for rich TUI controls
	quickAddInput textinput.Model
	commandInput  textinput.Model
	memoArea      textarea.Model
	taskProgress  progress.Model
	helpModel     help.Model
	memoViewport  viewport.Model
}

type SwitchViewMsg struct {
	View View
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

type QuickAddTaskMsg struct {
	Title string
}

// DisplayTickMsg only triggers a re-render of live elapsed time; its handler
// performs no mutation.
type DisplayTickMsg struct{}

func NewModel() Model {
	return NewModelWithConfig(board.New(), nil, nil, DefaultRuntimeConfig())
}

func NewModelWithBoard(b *board.Board) Model {
	return NewModelWithConfig(b, nil, nil, DefaultRuntimeConfig())
}

func NewModelWithConfig(b *board.Board, store *snapshot.Store, repo notes.Repository, cfg RuntimeConfig) Model {
	if b == nil {
		b = board.New()
	}
	m := Model{
		CurrentView: ViewActive,
		Board:       b,
		NotesRepo:   repo,
		Keys: GlobalKeyMap{
			Active:    "1",
			Completed: "2",
			Notes:     "3",
			Help:      "?",
			Quit:      "q",
		},
		saver:        &autosaver{board: b, store: store},
		clock:        time.Now,
		nextTaskID:   maxTaskNumber(b) + 1,
		progressStep: cfg.ProgressStep,
	}
	if m.progressStep <= 0 {
		m.progressStep = DefaultRuntimeConfig().ProgressStep
	}
	b.SetOnMutate(m.saver.save)
	m.initBubbleComponents()
	m.syncSelectedTask()
	return m
}

func (m *Model) initBubbleComponents() {
	m.quickAddInput = textinput.New()
	m.quickAddInput.Prompt = "add> "
	m.quickAddInput.CharLimit = 256
	m.quickAddInput.Width = 42

	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 48

	m.memoArea = textarea.New()
	m.memoArea.SetWidth(54)
	m.memoArea.SetHeight(8)
	m.memoArea.ShowLineNumbers = false
	m.memoArea.Placeholder = "Task memo (markdown)"

	m.taskProgress = progress.New(progress.WithDefaultGradient())
	m.helpModel = help.New()
	m.memoViewport = viewport.New(54, 12)
}

// syncSelectedTask keeps the selection pinned to the cursor of the current
// view, clamping cursors after deletions and moves.
func (m *Model) syncSelectedTask() {
	switch m.CurrentView {
	case ViewCompleted:
		tasks := m.Board.Completed()
		m.CompletedCursor = clampCursor(m.CompletedCursor, len(tasks))
		if len(tasks) == 0 {
			m.SelectedTaskID = ""
			return
		}
		m.SelectedTaskID = tasks[m.CompletedCursor].ID
	default:
		tasks := m.Board.Active()
		m.ActiveCursor = clampCursor(m.ActiveCursor, len(tasks))
		if len(tasks) == 0 {
			m.SelectedTaskID = ""
			return
		}
		m.SelectedTaskID = tasks[m.ActiveCursor].ID
	}
}

// reportSaveResult surfaces the autosaver's most recent failure in the
// status bar; a snapshot write failure never rolls back in-memory state.
func (m *Model) reportSaveResult() {
	if m.saver.lastErr == nil {
		return
	}
	m.LastError = m.saver.lastErr
	m.Status = StatusBar{Text: fmt.Sprintf("snapshot write failed: %v", m.saver.lastErr), IsError: true}
	m.saver.lastErr = nil
}

func maxTaskNumber(b *board.Board) int {
	max := 0
	for _, t := range append(b.Active(), b.Completed()...) {
		raw, ok := strings.CutPrefix(t.ID, "task-")
		if !ok {
			continue
		}
		if n, err := strconv.Atoi(raw); err == nil && n > max {
			max = n
		}
	}
	return max
}

func clampCursor(cursor, length int) int {
	if cursor >= length {
		cursor = length - 1
	}
	if cursor < 0 {
		cursor = 0
	}
	return cursor
}

func isKnownView(v View) bool {
	switch v {
	case ViewActive, ViewCompleted, ViewNotes:
		return true
	default:
		return false
	}
}
