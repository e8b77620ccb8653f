package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Interview holds the interview sheet for one candidate. One per candidate
// is upheld by UpsertInterviewByCandidate, not by a unique index; the UI's
// single in-flight request model makes the unguarded window acceptable.
type Interview struct {
	ID                   int64     `json:"id"`
	CandidateID          int64     `json:"candidateId"`
	Education            string    `json:"education"`
	OfferedSalary        float64   `json:"offeredSalary"`
	HasRelativeInCompany bool      `json:"hasRelativeInCompany"`
	ApplicationSource    string    `json:"applicationSource"`
	FirstManager         string    `json:"firstManager"`
	CVReference          *string   `json:"cvReference"`
	CreatedAt            time.Time `json:"createdAt"`
	UpdatedAt            time.Time `json:"updatedAt"`
}

type InterviewPatch struct {
	Education            *string   `json:"education"`
	OfferedSalary        *float64  `json:"offeredSalary"`
	HasRelativeInCompany *bool     `json:"hasRelativeInCompany"`
	ApplicationSource    *string   `json:"applicationSource"`
	FirstManager         *string   `json:"firstManager"`
	CVReference          OptString `json:"-"`
}

func validateInterview(iv Interview) error {
	if iv.CandidateID <= 0 {
		return fmt.Errorf("%w: candidateId is required", ErrValidation)
	}
	if iv.OfferedSalary < 0 {
		return fmt.Errorf("%w: offeredSalary must be >= 0", ErrValidation)
	}
	return nil
}

func (d *DB) CreateInterview(ctx context.Context, iv Interview) (int64, error) {
	if err := validateInterview(iv); err != nil {
		return 0, err
	}
	now := time.Now().UTC().Truncate(time.Second)
	res, err := d.Pool.ExecContext(ctx, `
INSERT INTO interviews (
  candidate_id, education, offered_salary, has_relative_in_company,
  application_source, first_manager, cv_reference, created_at, updated_at
) VALUES (?,?,?,?,?,?,?,?,?);`,
		iv.CandidateID, iv.Education, iv.OfferedSalary, iv.HasRelativeInCompany,
		iv.ApplicationSource, iv.FirstManager, nullStr(iv.CVReference),
		now.Format(time.RFC3339), now.Format(time.RFC3339),
	)
	if err != nil {
		return 0, fmt.Errorf("insert interview: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert interview id: %w", err)
	}
	return id, nil
}

const interviewCols = `
id, candidate_id, education, offered_salary, has_relative_in_company,
application_source, first_manager, cv_reference, created_at, updated_at`

func scanInterview(row interface{ Scan(...any) error }) (Interview, error) {
	var (
		iv                     Interview
		cv                     sql.NullString
		createdStr, updatedStr string
	)
	err := row.Scan(
		&iv.ID, &iv.CandidateID, &iv.Education, &iv.OfferedSalary, &iv.HasRelativeInCompany,
		&iv.ApplicationSource, &iv.FirstManager, &cv, &createdStr, &updatedStr,
	)
	if err != nil {
		return Interview{}, err
	}
	iv.CVReference = strPtr(cv)
	iv.CreatedAt, _ = time.Parse(time.RFC3339, createdStr)
	iv.UpdatedAt, _ = time.Parse(time.RFC3339, updatedStr)
	return iv, nil
}

func (d *DB) GetInterview(ctx context.Context, id int64) (Interview, error) {
	row := d.Pool.QueryRowContext(ctx, `SELECT`+interviewCols+` FROM interviews WHERE id = ?;`, id)
	iv, err := scanInterview(row)
	if err == sql.ErrNoRows {
		return Interview{}, fmt.Errorf("%w: interview %d", ErrNotFound, id)
	}
	if err != nil {
		return Interview{}, fmt.Errorf("get interview: %w", err)
	}
	return iv, nil
}

// GetInterviewByCandidate returns the candidate's interview, or ErrNotFound
// when none has been recorded yet.
func (d *DB) GetInterviewByCandidate(ctx context.Context, candidateID int64) (Interview, error) {
	row := d.Pool.QueryRowContext(ctx, `
SELECT`+interviewCols+` FROM interviews WHERE candidate_id = ? ORDER BY id LIMIT 1;`, candidateID)
	iv, err := scanInterview(row)
	if err == sql.ErrNoRows {
		return Interview{}, fmt.Errorf("%w: interview for candidate %d", ErrNotFound, candidateID)
	}
	if err != nil {
		return Interview{}, fmt.Errorf("get interview by candidate: %w", err)
	}
	return iv, nil
}

func (d *DB) ListInterviews(ctx context.Context) ([]Interview, error) {
	return d.listInterviews(ctx, `ORDER BY created_at, id`)
}

func (d *DB) ListInterviewsByCandidate(ctx context.Context, candidateID int64) ([]Interview, error) {
	return d.listInterviews(ctx, `WHERE candidate_id = ? ORDER BY created_at, id`, candidateID)
}

func (d *DB) listInterviews(ctx context.Context, tail string, args ...any) ([]Interview, error) {
	rows, err := d.Pool.QueryContext(ctx, `SELECT`+interviewCols+` FROM interviews `+tail+`;`, args...)
	if err != nil {
		return nil, fmt.Errorf("list interviews: %w", err)
	}
	defer rows.Close()

	var out []Interview
	for rows.Next() {
		iv, err := scanInterview(rows)
		if err != nil {
			return nil, fmt.Errorf("scan interview: %w", err)
		}
		out = append(out, iv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list interviews: %w", err)
	}
	return out, nil
}

func (d *DB) UpdateInterview(ctx context.Context, id int64, p InterviewPatch) error {
	iv, err := d.GetInterview(ctx, id)
	if err != nil {
		return err
	}
	applyInterviewPatch(&iv, p)
	if err := validateInterview(iv); err != nil {
		return err
	}
	iv.UpdatedAt = time.Now().UTC().Truncate(time.Second)

	_, err = d.Pool.ExecContext(ctx, `
UPDATE interviews SET
  education = ?, offered_salary = ?, has_relative_in_company = ?,
  application_source = ?, first_manager = ?, cv_reference = ?, updated_at = ?
WHERE id = ?;`,
		iv.Education, iv.OfferedSalary, iv.HasRelativeInCompany,
		iv.ApplicationSource, iv.FirstManager, nullStr(iv.CVReference),
		iv.UpdatedAt.Format(time.RFC3339), id,
	)
	if err != nil {
		return fmt.Errorf("update interview: %w", err)
	}
	return nil
}

func applyInterviewPatch(iv *Interview, p InterviewPatch) {
	if p.Education != nil {
		iv.Education = *p.Education
	}
	if p.OfferedSalary != nil {
		iv.OfferedSalary = *p.OfferedSalary
	}
	if p.HasRelativeInCompany != nil {
		iv.HasRelativeInCompany = *p.HasRelativeInCompany
	}
	if p.ApplicationSource != nil {
		iv.ApplicationSource = *p.ApplicationSource
	}
	if p.FirstManager != nil {
		iv.FirstManager = *p.FirstManager
	}
	iv.CVReference = p.CVReference.apply(iv.CVReference)
}

// UpsertInterviewByCandidate locates the interview by candidate_id and
// updates it, or creates one when the candidate has none. The natural key
// is the foreign key, not the row id.
func (d *DB) UpsertInterviewByCandidate(ctx context.Context, iv Interview) (int64, error) {
	existing, err := d.GetInterviewByCandidate(ctx, iv.CandidateID)
	if err == nil {
		p := InterviewPatch{
			Education:            &iv.Education,
			OfferedSalary:        &iv.OfferedSalary,
			HasRelativeInCompany: &iv.HasRelativeInCompany,
			ApplicationSource:    &iv.ApplicationSource,
			FirstManager:         &iv.FirstManager,
		}
		if iv.CVReference != nil {
			p.CVReference = String(*iv.CVReference)
		}
		if err := d.UpdateInterview(ctx, existing.ID, p); err != nil {
			return 0, err
		}
		return existing.ID, nil
	}
	if !IsNotFound(err) {
		return 0, err
	}
	return d.CreateInterview(ctx, iv)
}

func (d *DB) DeleteInterview(ctx context.Context, id int64) error {
	res, err := d.Pool.ExecContext(ctx, `DELETE FROM interviews WHERE id = ?;`, id)
	if err != nil {
		return fmt.Errorf("delete interview: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: interview %d", ErrNotFound, id)
	}
	return nil
}
