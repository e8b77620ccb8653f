package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// ApprovalNote is a read-mostly record written from the approval screen.
// Zero or many per candidate.
type ApprovalNote struct {
	ID             int64     `json:"id"`
	CandidateID    int64     `json:"candidateId"`
	ApprovalDate   string    `json:"approvalDate"`
	ApprovalStatus string    `json:"approvalStatus"`
	Notes          string    `json:"notes"`
	CreatedAt      time.Time `json:"createdAt"`
}

type ApprovalNotePatch struct {
	ApprovalDate   *string `json:"approvalDate"`
	ApprovalStatus *string `json:"approvalStatus"`
	Notes          *string `json:"notes"`
}

func (d *DB) CreateApprovalNote(ctx context.Context, a ApprovalNote) (int64, error) {
	if a.CandidateID <= 0 {
		return 0, fmt.Errorf("%w: candidateId is required", ErrValidation)
	}
	now := time.Now().UTC().Truncate(time.Second)
	res, err := d.Pool.ExecContext(ctx, `
INSERT INTO approval_notes (candidate_id, approval_date, approval_status, notes, created_at)
VALUES (?,?,?,?,?);`,
		a.CandidateID, a.ApprovalDate, a.ApprovalStatus, a.Notes, now.Format(time.RFC3339),
	)
	if err != nil {
		return 0, fmt.Errorf("insert approval note: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert approval note id: %w", err)
	}
	return id, nil
}

func scanApprovalNote(row interface{ Scan(...any) error }) (ApprovalNote, error) {
	var (
		a          ApprovalNote
		createdStr string
	)
	err := row.Scan(&a.ID, &a.CandidateID, &a.ApprovalDate, &a.ApprovalStatus, &a.Notes, &createdStr)
	if err != nil {
		return ApprovalNote{}, err
	}
	a.CreatedAt, _ = time.Parse(time.RFC3339, createdStr)
	return a, nil
}

func (d *DB) GetApprovalNote(ctx context.Context, id int64) (ApprovalNote, error) {
	row := d.Pool.QueryRowContext(ctx, `
SELECT id, candidate_id, approval_date, approval_status, notes, created_at
FROM approval_notes WHERE id = ?;`, id)
	a, err := scanApprovalNote(row)
	if err == sql.ErrNoRows {
		return ApprovalNote{}, fmt.Errorf("%w: approval note %d", ErrNotFound, id)
	}
	if err != nil {
		return ApprovalNote{}, fmt.Errorf("get approval note: %w", err)
	}
	return a, nil
}

// UpdateApprovalNote merges the patch over the existing row.
func (d *DB) UpdateApprovalNote(ctx context.Context, id int64, p ApprovalNotePatch) error {
	cur, err := d.GetApprovalNote(ctx, id)
	if err != nil {
		return err
	}

	if p.ApprovalDate != nil {
		cur.ApprovalDate = *p.ApprovalDate
	}
	if p.ApprovalStatus != nil {
		cur.ApprovalStatus = *p.ApprovalStatus
	}
	if p.Notes != nil {
		cur.Notes = *p.Notes
	}

	_, err = d.Pool.ExecContext(ctx, `
UPDATE approval_notes SET approval_date = ?, approval_status = ?, notes = ? WHERE id = ?;`,
		cur.ApprovalDate, cur.ApprovalStatus, cur.Notes, id,
	)
	if err != nil {
		return fmt.Errorf("update approval note: %w", err)
	}
	return nil
}

func (d *DB) ListApprovalNotes(ctx context.Context) ([]ApprovalNote, error) {
	return d.listApprovalNotes(ctx, `ORDER BY created_at, id`)
}

func (d *DB) ListApprovalNotesByCandidate(ctx context.Context, candidateID int64) ([]ApprovalNote, error) {
	return d.listApprovalNotes(ctx, `WHERE candidate_id = ? ORDER BY created_at, id`, candidateID)
}

func (d *DB) listApprovalNotes(ctx context.Context, tail string, args ...any) ([]ApprovalNote, error) {
	rows, err := d.Pool.QueryContext(ctx, `
SELECT id, candidate_id, approval_date, approval_status, notes, created_at
FROM approval_notes `+tail+`;`, args...)
	if err != nil {
		return nil, fmt.Errorf("list approval notes: %w", err)
	}
	defer rows.Close()

	var out []ApprovalNote
	for rows.Next() {
		a, err := scanApprovalNote(rows)
		if err != nil {
			return nil, fmt.Errorf("scan approval note: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list approval notes: %w", err)
	}
	return out, nil
}

func (d *DB) DeleteApprovalNote(ctx context.Context, id int64) error {
	res, err := d.Pool.ExecContext(ctx, `DELETE FROM approval_notes WHERE id = ?;`, id)
	if err != nil {
		return fmt.Errorf("delete approval note: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: approval note %d", ErrNotFound, id)
	}
	return nil
}
