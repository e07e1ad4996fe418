package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/manikdv/stint/internal/board"
	"github.com/manikdv/stint/internal/notes"
	"github.com/manikdv/stint/internal/snapshot"
	"github.com/manikdv/stint/internal/update"
)

func main() {
	cfg := update.RuntimeConfigFromEnv(update.DefaultRuntimeConfig())
	now := time.Now()

	store := snapshot.NewStore(cfg.SnapshotPath)
	b, err := loadBoard(store, now)
	if err != nil {
		// A broken or unreadable snapshot never blocks startup; the session
		// runs on an empty board and the bad file stays on disk untouched
		// until the first mutation overwrites it.
		fmt.Fprintf(os.Stderr, "stint: starting with empty board: %v\n", err)
		b = board.New()
	}

	var repo notes.Repository
	if cfg.NotesEnabled {
		sqlRepo, err := openNotes(cfg.NotesDBPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "stint: notes disabled: %v\n", err)
		} else {
			defer sqlRepo.Close()
			repo = sqlRepo
		}
	}

	program := tea.NewProgram(update.NewModelWithConfig(b, store, repo, cfg))
	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "stint failed: %v\n", err)
		os.Exit(1)
	}
}

// loadBoard materializes the snapshot into a board. Records keep their file
// order within each collection; IDs are assigned by position across the whole
// sequence. The bulk load is batched so it does not write a snapshot per task.
func loadBoard(store *snapshot.Store, now time.Time) (*board.Board, error) {
	raw, err := store.Load()
	if err != nil {
		return nil, err
	}
	records, err := snapshot.Decode(raw)
	if err != nil {
		return nil, err
	}

	b := board.New()
	b.Batch(func() {
		for i, rec := range records {
			b.Add(rec.Task(fmt.Sprintf("task-%d", i+1), now))
		}
	})
	return b, nil
}

func openNotes(path string) (*notes.SQLiteRepository, error) {
	repo, err := notes.OpenSQLite(path)
	if err != nil {
		return nil, err
	}
	if err := notes.MigrateUp(repo.DB()); err != nil {
		closeErr := repo.Close()
		return nil, errors.Join(err, closeErr)
	}
	return repo, nil
}
