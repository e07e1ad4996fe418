package update

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/manikdv/stint/internal/notes"
	"github.com/manikdv/stint/internal/views"
)

// ensureNotesLoaded lazily pulls the note list the first time the notes view
// is opened. Without a repository the view stays empty but usable.
func (m Model) ensureNotesLoaded() Model {
	if m.Notes.Loaded || m.NotesRepo == nil {
		return m
	}
	return m.reloadNotes()
}

func (m Model) reloadNotes() Model {
	if m.NotesRepo == nil {
		return m
	}
	items, err := m.NotesRepo.ListNotes(context.Background(), notes.NoteListFilter{})
	if err != nil {
		m.LastError = err
		m.Status = StatusBar{Text: fmt.Sprintf("notes load failed: %v", err), IsError: true}
		return m
	}
	m.Notes.Items = items
	m.Notes.Loaded = true
	m.Notes.Cursor = clampCursor(m.Notes.Cursor, len(items))
	return m
}

func (m Model) handleNotesKey(msg tea.KeyMsg) Model {
	if m.NotesRepo == nil {
		m.Status = StatusBar{Text: "notes storage unavailable", IsError: true}
		return m
	}
	switch msg.String() {
	case "j", "down":
		m.Notes.Cursor = clampCursor(m.Notes.Cursor+1, len(m.Notes.Items))
	case "k", "up":
		m.Notes.Cursor = clampCursor(m.Notes.Cursor-1, len(m.Notes.Items))
	case "n":
		note := notes.Note{
			ID:        fmt.Sprintf("note-%d", m.clock().UnixNano()),
			Title:     "Untitled note",
			CreatedAt: m.clock(),
		}
		if err := m.NotesRepo.CreateNote(context.Background(), note); err != nil {
			m.LastError = err
			m.Status = StatusBar{Text: fmt.Sprintf("note create failed: %v", err), IsError: true}
			return m
		}
		m = m.reloadNotes()
		m.Notes.Cursor = len(m.Notes.Items) - 1
		m.Status = StatusBar{Text: "note created"}
	case "e":
		if note, ok := m.selectedNote(); ok {
			m.Notes.Editing = true
			m.memoArea.SetValue(note.Body)
			m.memoArea.Focus()
		}
	case "d":
		if note, ok := m.selectedNote(); ok {
			if err := m.NotesRepo.DeleteNote(context.Background(), note.ID); err != nil {
				m.LastError = err
				m.Status = StatusBar{Text: fmt.Sprintf("note delete failed: %v", err), IsError: true}
				return m
			}
			m = m.reloadNotes()
			m.Status = StatusBar{Text: fmt.Sprintf("note deleted: %s", note.Title)}
		}
	}
	return m
}

func (m Model) handleNoteEditKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		if note, ok := m.selectedNote(); ok {
			note.Body = m.memoArea.Value()
			now := m.clock()
			note.UpdatedAt = &now
			if err := m.NotesRepo.UpdateNote(context.Background(), note); err != nil {
				m.LastError = err
				m.Status = StatusBar{Text: fmt.Sprintf("note save failed: %v", err), IsError: true}
			} else {
				m = m.reloadNotes()
				m.Status = StatusBar{Text: fmt.Sprintf("note saved: %s", note.Title)}
			}
		}
		m.Notes.Editing = false
		m.memoArea.Blur()
		return m
	}
	m.memoArea, _ = m.memoArea.Update(msg)
	return m
}

func (m Model) selectedNote() (notes.Note, bool) {
	if len(m.Notes.Items) == 0 {
		return notes.Note{}, false
	}
	idx := clampCursor(m.Notes.Cursor, len(m.Notes.Items))
	return m.Notes.Items[idx], true
}

func (m Model) renderNotesView() string {
	rows := make([]views.NoteRowData, 0, len(m.Notes.Items))
	selectedID := ""
	if note, ok := m.selectedNote(); ok {
		selectedID = note.ID
	}
	for _, note := range m.Notes.Items {
		rows = append(rows, views.NoteRowData{
			ID:     note.ID,
			Title:  note.Title,
			Folder: note.FolderID,
		})
	}

	preview := ""
	if note, ok := m.selectedNote(); ok {
		preview = views.RenderMarkdown(note.Body)
	}
	return views.RenderNotesPanel(views.NotesPanelData{
		Rows:       rows,
		SelectedID: selectedID,
		EditorView: m.memoArea.View(),
		Preview:    preview,
		Editing:    m.Notes.Editing,
	})
}
