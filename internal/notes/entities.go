package notes

import "time"

type Folder struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

type Note struct {
	ID        string
	FolderID  string
	Title     string
	Body      string
	CreatedAt time.Time
	UpdatedAt *time.Time
}

type NoteListFilter struct {
	FolderID string
	Limit    int
	Offset   int
}

type FolderListFilter struct {
	Limit  int
	Offset int
}
