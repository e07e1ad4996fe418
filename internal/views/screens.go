package views

import (
	"fmt"
	"strings"
)

type TaskRowData struct {
	ID        string
	Title     string
	Progress  int
	DueDate   string
	DueStatus string
	Tracking  bool
	Work      string
}

type TaskPanelData struct {
	Heading      string
	Actions      string
	QuickAddView string
	Rows         []TaskRowData
	SelectedID   string
	Summary      string
}

type TaskMetadataData struct {
	SelectedID       string
	Due              string
	Progress         int
	ProgressView     string
	Work             string
	Tracking         bool
	MemoEditorView   string
	MarkdownMemoView string
	Editing          bool
}

type NoteRowData struct {
	ID     string
	Title  string
	Folder string
}

type NotesPanelData struct {
	Rows       []NoteRowData
	SelectedID string
	EditorView string
	Preview    string
	Editing    bool
}

type HelpPanelData struct {
	CurrentView string
	Bindings    []string
	HelpView    string
}

func RenderTaskPanel(data TaskPanelData) string {
	var b strings.Builder
	b.WriteString(data.Heading + ":\n")
	if data.Actions != "" {
		b.WriteString("actions: " + data.Actions + "\n")
	}
	if data.QuickAddView != "" {
		b.WriteString(data.QuickAddView + "\n")
	}
	if len(data.Rows) == 0 {
		b.WriteString("  (none)\n")
	}
	for i, row := range data.Rows {
		cursor := " "
		if data.SelectedID == row.ID {
			cursor = ">"
		}
		marker := " "
		if row.Tracking {
			marker = "*"
		}
		b.WriteString(fmt.Sprintf("%s%s %d. %s %s %d%%", cursor, marker, i+1, dueBadge(row.DueStatus), row.Title, row.Progress))
		if row.DueDate != "" {
			b.WriteString(fmt.Sprintf(" due:%s", row.DueDate))
		}
		if row.Work != "" {
			b.WriteString(fmt.Sprintf(" work:%s", row.Work))
		}
		b.WriteString("\n")
	}
	if data.Summary != "" {
		b.WriteString("\nsummary: " + data.Summary)
	}
	return strings.TrimSpace(b.String())
}

func RenderTaskMetadataPane(data TaskMetadataData) string {
	if strings.TrimSpace(data.SelectedID) == "" {
		return "metadata:\n(no selection)"
	}
	var b strings.Builder
	b.WriteString("metadata:\n")
	b.WriteString(fmt.Sprintf("id: %s\n", data.SelectedID))
	b.WriteString(fmt.Sprintf("due: %s\n", orNone(data.Due)))
	b.WriteString(fmt.Sprintf("progress: %s %d%%\n", data.ProgressView, data.Progress))
	if data.Tracking {
		b.WriteString(fmt.Sprintf("work: %s [tracking]\n", data.Work))
	} else {
		b.WriteString(fmt.Sprintf("work: %s\n", data.Work))
	}
	if data.Editing {
		b.WriteString("\nmemo-editor:\n" + data.MemoEditorView + "\n")
	}
	b.WriteString("\nmemo-preview:\n" + orNone(data.MarkdownMemoView))
	return strings.TrimSpace(b.String())
}

func RenderNotesPanel(data NotesPanelData) string {
	var b strings.Builder
	b.WriteString("notes:\n")
	b.WriteString("actions: [n]new [e]edit [d]delete [j/k]move\n")
	if len(data.Rows) == 0 {
		b.WriteString("  (none)\n")
	}
	for i, row := range data.Rows {
		cursor := " "
		if data.SelectedID == row.ID {
			cursor = ">"
		}
		b.WriteString(fmt.Sprintf("%s %d. %s", cursor, i+1, row.Title))
		if row.Folder != "" {
			b.WriteString(fmt.Sprintf(" [%s]", row.Folder))
		}
		b.WriteString("\n")
	}
	if data.Editing {
		b.WriteString("\nnote-editor:\n" + data.EditorView + "\n")
	}
	if data.Preview != "" {
		b.WriteString("\nnote-preview:\n" + data.Preview)
	}
	return strings.TrimSpace(b.String())
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command: /%s", input)
}

func RenderHelpPanel(data HelpPanelData) string {
	return fmt.Sprintf("help:\nglobal:\n%s view:\n%s\n%s",
		strings.ToLower(data.CurrentView),
		strings.Join(data.Bindings, "\n"),
		data.HelpView,
	)
}

func dueBadge(status string) string {
	switch status {
	case "Overdue":
		return "[RED]"
	case "Today":
		return "[YELLOW]"
	case "Upcoming":
		return "[GREEN]"
	default:
		return "[ - ]"
	}
}

func orNone(v string) string {
	if strings.TrimSpace(v) == "" {
		return "(none)"
	}
	return v
}
