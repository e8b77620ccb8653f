package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// Position is an independent lookup table. Candidates reference it weakly:
// deleting a position leaves their position_id dangling, and lookups treat
// a dangling id as "no position". Name uniqueness is a convention the
// settings UI keeps, not a constraint.
type Position struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
}

type PositionPatch struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"isActive"`
}

func (d *DB) CreatePosition(ctx context.Context, p Position) (int64, error) {
	if strings.TrimSpace(p.Name) == "" {
		return 0, fmt.Errorf("%w: position name is required", ErrValidation)
	}
	p.CreatedAt = time.Now().UTC().Truncate(time.Second)

	res, err := d.Pool.ExecContext(ctx, `
INSERT INTO positions (name, description, is_active, created_at)
VALUES (?,?,?,?);`,
		p.Name, p.Description, p.IsActive, p.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return 0, fmt.Errorf("insert position: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert position id: %w", err)
	}
	return id, nil
}

func scanPosition(row interface{ Scan(...any) error }) (Position, error) {
	var (
		p          Position
		createdStr string
	)
	if err := row.Scan(&p.ID, &p.Name, &p.Description, &p.IsActive, &createdStr); err != nil {
		return Position{}, err
	}
	p.CreatedAt, _ = time.Parse(time.RFC3339, createdStr)
	return p, nil
}

func (d *DB) GetPosition(ctx context.Context, id int64) (Position, error) {
	row := d.Pool.QueryRowContext(ctx, `
SELECT id, name, description, is_active, created_at FROM positions WHERE id = ?;`, id)
	p, err := scanPosition(row)
	if err == sql.ErrNoRows {
		return Position{}, fmt.Errorf("%w: position %d", ErrNotFound, id)
	}
	if err != nil {
		return Position{}, fmt.Errorf("get position: %w", err)
	}
	return p, nil
}

// ListPositions returns positions newest first, the order the settings
// screen shows them.
func (d *DB) ListPositions(ctx context.Context) ([]Position, error) {
	return d.listPositions(ctx, `ORDER BY created_at DESC, id DESC`)
}

// ListActivePositions returns only positions with is_active set, for the
// candidate form's position picker.
func (d *DB) ListActivePositions(ctx context.Context) ([]Position, error) {
	return d.listPositions(ctx, `WHERE is_active = 1 ORDER BY created_at DESC, id DESC`)
}

func (d *DB) listPositions(ctx context.Context, tail string) ([]Position, error) {
	rows, err := d.Pool.QueryContext(ctx, `
SELECT id, name, description, is_active, created_at FROM positions `+tail+`;`)
	if err != nil {
		return nil, fmt.Errorf("list positions: %w", err)
	}
	defer rows.Close()

	var out []Position
	for rows.Next() {
		p, err := scanPosition(rows)
		if err != nil {
			return nil, fmt.Errorf("scan position: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list positions: %w", err)
	}
	return out, nil
}

func (d *DB) UpdatePosition(ctx context.Context, id int64, patch PositionPatch) error {
	p, err := d.GetPosition(ctx, id)
	if err != nil {
		return err
	}
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.IsActive != nil {
		p.IsActive = *patch.IsActive
	}
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: position name is required", ErrValidation)
	}

	_, err = d.Pool.ExecContext(ctx, `
UPDATE positions SET name = ?, description = ?, is_active = ? WHERE id = ?;`,
		p.Name, p.Description, p.IsActive, id,
	)
	if err != nil {
		return fmt.Errorf("update position: %w", err)
	}
	return nil
}

// DeletePosition does not touch candidates pointing at the position; their
// position_id simply stops resolving.
func (d *DB) DeletePosition(ctx context.Context, id int64) error {
	res, err := d.Pool.ExecContext(ctx, `DELETE FROM positions WHERE id = ?;`, id)
	if err != nil {
		return fmt.Errorf("delete position: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: position %d", ErrNotFound, id)
	}
	return nil
}
