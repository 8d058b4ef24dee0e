package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/craftdeck/craftdeck/store"
)

func (d *DB) UpsertSetting(ctx context.Context, upsert *store.Setting) (*store.Setting, error) {
	stmt := `INSERT INTO setting (project_id, key, value)
		VALUES (` + placeholders(3) + `)
		ON CONFLICT (project_id, key) DO UPDATE SET value = EXCLUDED.value`
	if _, err := d.db.ExecContext(ctx, stmt, upsert.ProjectID, upsert.Key, upsert.Value); err != nil {
		return nil, fmt.Errorf("failed to upsert setting: %w", err)
	}

	return upsert, nil
}

func (d *DB) ListSettings(ctx context.Context, find *store.FindSetting) ([]*store.Setting, error) {
	where, args := []string{"1 = 1"}, []any{}

	if find.ProjectID != nil {
		where, args = append(where, "project_id = "+placeholder(len(args)+1)), append(args, *find.ProjectID)
	}
	if find.Key != nil {
		where, args = append(where, "key = "+placeholder(len(args)+1)), append(args, *find.Key)
	}

	query := `SELECT project_id, key, value FROM setting WHERE ` + strings.Join(where, " AND ") + ` ORDER BY key`
	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list settings: %w", err)
	}
	defer rows.Close()

	list := make([]*store.Setting, 0)
	for rows.Next() {
		s := &store.Setting{}
		if err := rows.Scan(&s.ProjectID, &s.Key, &s.Value); err != nil {
			return nil, fmt.Errorf("failed to scan setting: %w", err)
		}
		list = append(list, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate settings: %w", err)
	}

	return list, nil
}
