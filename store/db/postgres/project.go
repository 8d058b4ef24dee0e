package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/craftdeck/craftdeck/store"
)

func (d *DB) CreateProject(ctx context.Context, create *store.Project) (*store.Project, error) {
	fields := []string{"id", "name", "description", "owner_id", "manifest", "row_status", "created_ts", "updated_ts"}
	args := []any{create.ID, create.Name, create.Description, create.OwnerID, create.Manifest, create.RowStatus.String(), create.CreatedTs, create.UpdatedTs}

	stmt := `INSERT INTO project (` + strings.Join(fields, ", ") + `)
		VALUES (` + placeholders(len(args)) + `)`
	if _, err := d.db.ExecContext(ctx, stmt, args...); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	return create, nil
}

func (d *DB) ListProjects(ctx context.Context, find *store.FindProject) ([]*store.Project, error) {
	where, args := []string{"1 = 1"}, []any{}

	if find.ID != nil {
		where, args = append(where, "id = "+placeholder(len(args)+1)), append(args, *find.ID)
	}
	if find.OwnerID != nil {
		where, args = append(where, "owner_id = "+placeholder(len(args)+1)), append(args, *find.OwnerID)
	}
	if find.RowStatus != nil {
		where, args = append(where, "row_status = "+placeholder(len(args)+1)), append(args, find.RowStatus.String())
	}

	query := `SELECT id, name, description, owner_id, manifest, row_status, created_ts, updated_ts
		FROM project WHERE ` + strings.Join(where, " AND ") + ` ORDER BY row_id`
	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	list := make([]*store.Project, 0)
	for rows.Next() {
		p := &store.Project{}
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.OwnerID, &p.Manifest, &p.RowStatus, &p.CreatedTs, &p.UpdatedTs); err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		list = append(list, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate projects: %w", err)
	}

	return list, nil
}

func (d *DB) UpdateProject(ctx context.Context, update *store.UpdateProject) (*store.Project, error) {
	set, args := []string{}, []any{}

	if update.Name != nil {
		set, args = append(set, "name = "+placeholder(len(args)+1)), append(args, *update.Name)
	}
	if update.Description != nil {
		set, args = append(set, "description = "+placeholder(len(args)+1)), append(args, *update.Description)
	}
	if update.Manifest != nil {
		set, args = append(set, "manifest = "+placeholder(len(args)+1)), append(args, *update.Manifest)
	}
	if update.RowStatus != nil {
		set, args = append(set, "row_status = "+placeholder(len(args)+1)), append(args, update.RowStatus.String())
	}
	if update.UpdatedTs != nil {
		set, args = append(set, "updated_ts = "+placeholder(len(args)+1)), append(args, *update.UpdatedTs)
	}

	if len(set) == 0 {
		return nil, fmt.Errorf("no fields to update")
	}

	args = append(args, update.ID)
	stmt := `UPDATE project SET ` + strings.Join(set, ", ") + ` WHERE id = ` + placeholder(len(args)) + `
		RETURNING id, name, description, owner_id, manifest, row_status, created_ts, updated_ts`
	result := &store.Project{}
	err := d.db.QueryRowContext(ctx, stmt, args...).Scan(
		&result.ID, &result.Name, &result.Description, &result.OwnerID, &result.Manifest, &result.RowStatus, &result.CreatedTs, &result.UpdatedTs,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("project not found")
		}
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	return result, nil
}

func (d *DB) DeleteProject(ctx context.Context, delete *store.DeleteProject) error {
	// Children go first; the project row itself is only archived.
	if _, err := d.db.ExecContext(ctx, `DELETE FROM message WHERE conversation_id IN (SELECT id FROM conversation WHERE project_id = `+placeholder(1)+`)`, delete.ID); err != nil {
		return fmt.Errorf("failed to delete messages: %w", err)
	}
	if _, err := d.db.ExecContext(ctx, `DELETE FROM conversation WHERE project_id = `+placeholder(1), delete.ID); err != nil {
		return fmt.Errorf("failed to delete conversations: %w", err)
	}
	if _, err := d.db.ExecContext(ctx, `DELETE FROM file WHERE project_id = `+placeholder(1), delete.ID); err != nil {
		return fmt.Errorf("failed to delete files: %w", err)
	}
	if _, err := d.db.ExecContext(ctx, `DELETE FROM setting WHERE project_id = `+placeholder(1), delete.ID); err != nil {
		return fmt.Errorf("failed to delete settings: %w", err)
	}

	result, err := d.db.ExecContext(ctx, `UPDATE project SET row_status = 'ARCHIVED' WHERE id = `+placeholder(1), delete.ID)
	if err != nil {
		return fmt.Errorf("failed to archive project: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("project not found")
	}

	return nil
}
