package notes

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("notes: not found")

type Repository interface {
	CreateNote(ctx context.Context, in Note) error
	GetNote(ctx context.Context, id string) (Note, error)
	UpdateNote(ctx context.Context, in Note) error
	DeleteNote(ctx context.Context, id string) error
	ListNotes(ctx context.Context, filter NoteListFilter) ([]Note, error)

	CreateFolder(ctx context.Context, in Folder) error
	GetFolder(ctx context.Context, id string) (Folder, error)
	UpdateFolder(ctx context.Context, in Folder) error
	DeleteFolder(ctx context.Context, id string) error
	ListFolders(ctx context.Context, filter FolderListFilter) ([]Folder, error)
}
