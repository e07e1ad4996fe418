package notes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const sqliteTimeLayout = time.RFC3339Nano

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) (*SQLiteRepository, error) {
	if db == nil {
		return nil, errors.New("notes: nil db")
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	return &SQLiteRepository{db: db}, nil
}

func OpenSQLite(path string) (*SQLiteRepository, error) {
	// The DSN parameter applies to every pooled connection; the constructor's
	// PRAGMA only covers the one it runs on.
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	repo, err := NewSQLiteRepository(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return repo, nil
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteRepository) DB() *sql.DB {
	return r.db
}

func (r *SQLiteRepository) CreateNote(ctx context.Context, in Note) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO notes (id, folder_id, title, body, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		in.ID, nullString(in.FolderID), in.Title, in.Body, mustTime(in.CreatedAt), nullTime(in.UpdatedAt),
	)
	return err
}

func (r *SQLiteRepository) GetNote(ctx context.Context, id string) (Note, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, folder_id, title, body, created_at, updated_at
		FROM notes WHERE id = ?`, id)
	note, err := scanNote(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Note{}, ErrNotFound
		}
		return Note{}, err
	}
	return note, nil
}

func (r *SQLiteRepository) UpdateNote(ctx context.Context, in Note) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE notes
		SET folder_id = ?, title = ?, body = ?, updated_at = ?
		WHERE id = ?`,
		nullString(in.FolderID), in.Title, in.Body, nullTime(in.UpdatedAt), in.ID,
	)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) DeleteNote(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM notes WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) ListNotes(ctx context.Context, filter NoteListFilter) ([]Note, error) {
	query := `SELECT id, folder_id, title, body, created_at, updated_at FROM notes`
	args := make([]any, 0, 3)
	if filter.FolderID != "" {
		query += ` WHERE folder_id = ?`
		args = append(args, filter.FolderID)
	}
	query += ` ORDER BY created_at ASC`
	query += applyPagination(&args, filter.Limit, filter.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Note, 0)
	for rows.Next() {
		note, scanErr := scanNote(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, note)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) CreateFolder(ctx context.Context, in Folder) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO folders (id, name, created_at)
		VALUES (?, ?, ?)`,
		in.ID, in.Name, mustTime(in.CreatedAt),
	)
	return err
}

func (r *SQLiteRepository) GetFolder(ctx context.Context, id string) (Folder, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, name, created_at FROM folders WHERE id = ?`, id)
	folder, err := scanFolder(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Folder{}, ErrNotFound
		}
		return Folder{}, err
	}
	return folder, nil
}

func (r *SQLiteRepository) UpdateFolder(ctx context.Context, in Folder) error {
	res, err := r.db.ExecContext(ctx, `UPDATE folders SET name = ? WHERE id = ?`, in.Name, in.ID)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) DeleteFolder(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM folders WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) ListFolders(ctx context.Context, filter FolderListFilter) ([]Folder, error) {
	args := make([]any, 0, 2)
	query := `SELECT id, name, created_at FROM folders ORDER BY name ASC` + applyPagination(&args, filter.Limit, filter.Offset)
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Folder, 0)
	for rows.Next() {
		folder, scanErr := scanFolder(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, folder)
	}
	return out, rows.Err()
}

func nullString(v string) any {
	if v == "" {
		return nil
	}
	return v
}

func nullTime(v *time.Time) any {
	if v == nil {
		return nil
	}
	return v.UTC().Format(sqliteTimeLayout)
}

func mustTime(v time.Time) string {
	return v.UTC().Format(sqliteTimeLayout)
}

func parseNullableTime(v sql.NullString) (*time.Time, error) {
	if !v.Valid || v.String == "" {
		return nil, nil
	}
	tm, err := time.Parse(sqliteTimeLayout, v.String)
	if err != nil {
		return nil, err
	}
	return &tm, nil
}

func applyPagination(args *[]any, limit, offset int) string {
	sql := ""
	if limit > 0 {
		sql += " LIMIT ?"
		*args = append(*args, limit)
	}
	if offset > 0 {
		sql += " OFFSET ?"
		*args = append(*args, offset)
	}
	return sql
}

type scanner interface {
	Scan(dest ...any) error
}

func scanNote(s scanner) (Note, error) {
	var out Note
	var folder sql.NullString
	var created string
	var updated sql.NullString
	if err := s.Scan(&out.ID, &folder, &out.Title, &out.Body, &created, &updated); err != nil {
		return Note{}, err
	}
	createdAt, err := time.Parse(sqliteTimeLayout, created)
	if err != nil {
		return Note{}, err
	}
	updatedAt, err := parseNullableTime(updated)
	if err != nil {
		return Note{}, err
	}
	out.FolderID = folder.String
	out.CreatedAt = createdAt
	out.UpdatedAt = updatedAt
	return out, nil
}

func scanFolder(s scanner) (Folder, error) {
	var out Folder
	var created string
	if err := s.Scan(&out.ID, &out.Name, &created); err != nil {
		return Folder{}, err
	}
	createdAt, err := time.Parse(sqliteTimeLayout, created)
	if err != nil {
		return Folder{}, err
	}
	out.CreatedAt = createdAt
	return out, nil
}

func checkRowsAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
