package snapshot

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestStoreSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "tasks.json")
	store := NewStore(path)

	raw, err := store.Load()
	if err != nil || raw != nil {
		t.Fatalf("expected empty load for missing snapshot, got %q %v", raw, err)
	}

	if err := store.Save([]byte(`{"tasks": []}` + "\n")); err != nil {
		t.Fatalf("save: %v", err)
	}
	raw, err = store.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(raw) != `{"tasks": []}`+"\n" {
		t.Fatalf("unexpected load result: %q", raw)
	}

	// The temp file never survives a successful save.
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Fatalf("expected temp file removed, got: %v", err)
	}
}

func TestStoreLoadIOFailure(t *testing.T) {
	dir := t.TempDir()
	// A directory at the snapshot path forces a read failure that is not
	// a missing file.
	store := NewStore(dir)
	_, err := store.Load()
	if !errors.Is(err, ErrIO) {
		t.Fatalf("expected ErrIO, got: %v", err)
	}
}

func TestStoreWithEmptyPathIsInert(t *testing.T) {
	store := NewStore("   ")
	if err := store.Save([]byte("data")); err != nil {
		t.Fatalf("expected no-op save, got: %v", err)
	}
	raw, err := store.Load()
	if raw != nil || err != nil {
		t.Fatalf("expected no-op load, got %q %v", raw, err)
	}
}
