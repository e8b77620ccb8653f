package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Reference is one reference check for a candidate. A candidate may have
// any number; the reference form edits the first one via upsert.
type Reference struct {
	ID                          int64     `json:"id"`
	CandidateID                 int64     `json:"candidateId"`
	ReferrerName                string    `json:"referrerName"`
	ReferrerCurrentCompany      string    `json:"referrerCurrentCompany"`
	WorkedTogetherCompany       string    `json:"workedTogetherCompany"`
	YearsWorkedTogether         string    `json:"yearsWorkedTogether"`
	CandidatePositionAtReferrer string    `json:"candidatePositionAtReferrer"`
	ReasonForLeaving            string    `json:"reasonForLeaving"`
	ReferrerPosition            string    `json:"referrerPosition"`
	ReferenceResult             string    `json:"referenceResult"`
	ReferenceDate               string    `json:"referenceDate"`
	ReferenceNotes              string    `json:"referenceNotes"`
	CreatedAt                   time.Time `json:"createdAt"`
}

type ReferencePatch struct {
	ReferrerName                *string `json:"referrerName"`
	ReferrerCurrentCompany      *string `json:"referrerCurrentCompany"`
	WorkedTogetherCompany       *string `json:"workedTogetherCompany"`
	YearsWorkedTogether         *string `json:"yearsWorkedTogether"`
	CandidatePositionAtReferrer *string `json:"candidatePositionAtReferrer"`
	ReasonForLeaving            *string `json:"reasonForLeaving"`
	ReferrerPosition            *string `json:"referrerPosition"`
	ReferenceResult             *string `json:"referenceResult"`
	ReferenceDate               *string `json:"referenceDate"`
	ReferenceNotes              *string `json:"referenceNotes"`
}

func (d *DB) CreateReference(ctx context.Context, r Reference) (int64, error) {
	if r.CandidateID <= 0 {
		return 0, fmt.Errorf("%w: candidateId is required", ErrValidation)
	}
	now := time.Now().UTC().Truncate(time.Second)
	res, err := d.Pool.ExecContext(ctx, `
INSERT INTO reference_checks (
  candidate_id, referrer_name, referrer_current_company, worked_together_company,
  years_worked_together, candidate_position_at_referrer, reason_for_leaving,
  referrer_position, reference_result, reference_date, reference_notes, created_at
) VALUES (?,?,?,?,?,?,?,?,?,?,?,?);`,
		r.CandidateID, r.ReferrerName, r.ReferrerCurrentCompany, r.WorkedTogetherCompany,
		r.YearsWorkedTogether, r.CandidatePositionAtReferrer, r.ReasonForLeaving,
		r.ReferrerPosition, r.ReferenceResult, r.ReferenceDate, r.ReferenceNotes,
		now.Format(time.RFC3339),
	)
	if err != nil {
		return 0, fmt.Errorf("insert reference: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert reference id: %w", err)
	}
	return id, nil
}

const referenceCols = `
id, candidate_id, referrer_name, referrer_current_company, worked_together_company,
years_worked_together, candidate_position_at_referrer, reason_for_leaving,
referrer_position, reference_result, reference_date, reference_notes, created_at`

func scanReference(row interface{ Scan(...any) error }) (Reference, error) {
	var (
		r          Reference
		createdStr string
	)
	err := row.Scan(
		&r.ID, &r.CandidateID, &r.ReferrerName, &r.ReferrerCurrentCompany, &r.WorkedTogetherCompany,
		&r.YearsWorkedTogether, &r.CandidatePositionAtReferrer, &r.ReasonForLeaving,
		&r.ReferrerPosition, &r.ReferenceResult, &r.ReferenceDate, &r.ReferenceNotes, &createdStr,
	)
	if err != nil {
		return Reference{}, err
	}
	r.CreatedAt, _ = time.Parse(time.RFC3339, createdStr)
	return r, nil
}

func (d *DB) GetReference(ctx context.Context, id int64) (Reference, error) {
	row := d.Pool.QueryRowContext(ctx, `SELECT`+referenceCols+` FROM reference_checks WHERE id = ?;`, id)
	r, err := scanReference(row)
	if err == sql.ErrNoRows {
		return Reference{}, fmt.Errorf("%w: reference %d", ErrNotFound, id)
	}
	if err != nil {
		return Reference{}, fmt.Errorf("get reference: %w", err)
	}
	return r, nil
}

func (d *DB) ListReferences(ctx context.Context) ([]Reference, error) {
	return d.listReferences(ctx, `ORDER BY created_at, id`)
}

func (d *DB) ListReferencesByCandidate(ctx context.Context, candidateID int64) ([]Reference, error) {
	return d.listReferences(ctx, `WHERE candidate_id = ? ORDER BY created_at, id`, candidateID)
}

func (d *DB) listReferences(ctx context.Context, tail string, args ...any) ([]Reference, error) {
	rows, err := d.Pool.QueryContext(ctx, `SELECT`+referenceCols+` FROM reference_checks `+tail+`;`, args...)
	if err != nil {
		return nil, fmt.Errorf("list references: %w", err)
	}
	defer rows.Close()

	var out []Reference
	for rows.Next() {
		r, err := scanReference(rows)
		if err != nil {
			return nil, fmt.Errorf("scan reference: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list references: %w", err)
	}
	return out, nil
}

// UpdateReference merges the patch over the existing row.
func (d *DB) UpdateReference(ctx context.Context, id int64, p ReferencePatch) error {
	cur, err := d.GetReference(ctx, id)
	if err != nil {
		return err
	}

	if p.ReferrerName != nil {
		cur.ReferrerName = *p.ReferrerName
	}
	if p.ReferrerCurrentCompany != nil {
		cur.ReferrerCurrentCompany = *p.ReferrerCurrentCompany
	}
	if p.WorkedTogetherCompany != nil {
		cur.WorkedTogetherCompany = *p.WorkedTogetherCompany
	}
	if p.YearsWorkedTogether != nil {
		cur.YearsWorkedTogether = *p.YearsWorkedTogether
	}
	if p.CandidatePositionAtReferrer != nil {
		cur.CandidatePositionAtReferrer = *p.CandidatePositionAtReferrer
	}
	if p.ReasonForLeaving != nil {
		cur.ReasonForLeaving = *p.ReasonForLeaving
	}
	if p.ReferrerPosition != nil {
		cur.ReferrerPosition = *p.ReferrerPosition
	}
	if p.ReferenceResult != nil {
		cur.ReferenceResult = *p.ReferenceResult
	}
	if p.ReferenceDate != nil {
		cur.ReferenceDate = *p.ReferenceDate
	}
	if p.ReferenceNotes != nil {
		cur.ReferenceNotes = *p.ReferenceNotes
	}

	return d.writeReference(ctx, cur)
}

func (d *DB) writeReference(ctx context.Context, r Reference) error {
	_, err := d.Pool.ExecContext(ctx, `
UPDATE reference_checks SET
  referrer_name = ?, referrer_current_company = ?, worked_together_company = ?,
  years_worked_together = ?, candidate_position_at_referrer = ?, reason_for_leaving = ?,
  referrer_position = ?, reference_result = ?, reference_date = ?, reference_notes = ?
WHERE id = ?;`,
		r.ReferrerName, r.ReferrerCurrentCompany, r.WorkedTogetherCompany,
		r.YearsWorkedTogether, r.CandidatePositionAtReferrer, r.ReasonForLeaving,
		r.ReferrerPosition, r.ReferenceResult, r.ReferenceDate, r.ReferenceNotes, r.ID,
	)
	if err != nil {
		return fmt.Errorf("update reference: %w", err)
	}
	return nil
}

// UpsertReferenceByCandidate updates the candidate's first reference check
// or creates one. Additional checks for the same candidate go through
// CreateReference directly.
func (d *DB) UpsertReferenceByCandidate(ctx context.Context, r Reference) (int64, error) {
	if r.CandidateID <= 0 {
		return 0, fmt.Errorf("%w: candidateId is required", ErrValidation)
	}
	existing, err := d.ListReferencesByCandidate(ctx, r.CandidateID)
	if err != nil {
		return 0, err
	}
	if len(existing) == 0 {
		return d.CreateReference(ctx, r)
	}

	r.ID = existing[0].ID
	if err := d.writeReference(ctx, r); err != nil {
		return 0, err
	}
	return r.ID, nil
}

func (d *DB) DeleteReference(ctx context.Context, id int64) error {
	res, err := d.Pool.ExecContext(ctx, `DELETE FROM reference_checks WHERE id = ?;`, id)
	if err != nil {
		return fmt.Errorf("delete reference: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: reference %d", ErrNotFound, id)
	}
	return nil
}
