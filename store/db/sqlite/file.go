package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/craftdeck/craftdeck/store"
)

func (d *DB) CreateFile(ctx context.Context, create *store.File) (*store.File, error) {
	fields := []string{"id", "project_id", "name", "path", "file_type", "content", "created_ts", "updated_ts"}
	args := []any{create.ID, create.ProjectID, create.Name, create.Path, string(create.FileType), create.Content, create.CreatedTs, create.UpdatedTs}

	stmt := `INSERT INTO file (` + strings.Join(fields, ", ") + `)
		VALUES (` + placeholders(len(args)) + `)`
	if _, err := d.db.ExecContext(ctx, stmt, args...); err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}

	return create, nil
}

func (d *DB) ListFiles(ctx context.Context, find *store.FindFile) ([]*store.File, error) {
	where, args := []string{"1 = 1"}, []any{}

	if find.ID != nil {
		where, args = append(where, "id = "+placeholder(len(args)+1)), append(args, *find.ID)
	}
	if find.ProjectID != nil {
		where, args = append(where, "project_id = "+placeholder(len(args)+1)), append(args, *find.ProjectID)
	}

	query := `SELECT id, project_id, name, path, file_type, content, created_ts, updated_ts
		FROM file WHERE ` + strings.Join(where, " AND ") + ` ORDER BY row_id`
	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list files: %w", err)
	}
	defer rows.Close()

	list := make([]*store.File, 0)
	for rows.Next() {
		f := &store.File{}
		if err := rows.Scan(&f.ID, &f.ProjectID, &f.Name, &f.Path, &f.FileType, &f.Content, &f.CreatedTs, &f.UpdatedTs); err != nil {
			return nil, fmt.Errorf("failed to scan file: %w", err)
		}
		list = append(list, f)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate files: %w", err)
	}

	return list, nil
}

func (d *DB) UpdateFile(ctx context.Context, update *store.UpdateFile) (*store.File, error) {
	set, args := []string{}, []any{}

	if update.Name != nil {
		set, args = append(set, "name = "+placeholder(len(args)+1)), append(args, *update.Name)
	}
	if update.Path != nil {
		set, args = append(set, "path = "+placeholder(len(args)+1)), append(args, *update.Path)
	}
	if update.FileType != nil {
		set, args = append(set, "file_type = "+placeholder(len(args)+1)), append(args, string(*update.FileType))
	}
	if update.Content != nil {
		set, args = append(set, "content = "+placeholder(len(args)+1)), append(args, *update.Content)
	}
	if update.UpdatedTs != nil {
		set, args = append(set, "updated_ts = "+placeholder(len(args)+1)), append(args, *update.UpdatedTs)
	}

	if len(set) == 0 {
		return nil, fmt.Errorf("no fields to update")
	}

	args = append(args, update.ID)
	stmt := `UPDATE file SET ` + strings.Join(set, ", ") + ` WHERE id = ` + placeholder(len(args)) + `
		RETURNING id, project_id, name, path, file_type, content, created_ts, updated_ts`
	result := &store.File{}
	err := d.db.QueryRowContext(ctx, stmt, args...).Scan(
		&result.ID, &result.ProjectID, &result.Name, &result.Path, &result.FileType, &result.Content, &result.CreatedTs, &result.UpdatedTs,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("file not found")
		}
		return nil, fmt.Errorf("failed to update file: %w", err)
	}

	return result, nil
}

func (d *DB) DeleteFile(ctx context.Context, delete *store.DeleteFile) error {
	result, err := d.db.ExecContext(ctx, `DELETE FROM file WHERE id = `+placeholder(1), delete.ID)
	if err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("file not found")
	}

	return nil
}
