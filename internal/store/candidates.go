package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/emreugurluhr/hrs/internal/domain"
)

// Candidate is the aggregation root of the pipeline. Interview, Reference
// and ApprovalNote rows hang off it by CandidateID; PositionID is a weak
// reference into the positions table.
type Candidate struct {
	ID              int64     `json:"id"`
	CollarType      string    `json:"collarType"`
	FullName        string    `json:"fullName"`
	BirthDate       string    `json:"birthDate"`
	RegisteredCity  string    `json:"registeredCity"`
	Hometown        string    `json:"hometown"`
	MilitaryStatus  string    `json:"militaryStatus"`
	Experience      int       `json:"experience"`
	Email           string    `json:"email"`
	PositionID      *int64    `json:"positionId"`
	InterviewDate   *string   `json:"interviewDate"`
	ServiceLine     *string   `json:"serviceLine"`
	Result          *string   `json:"result"`
	RejectionReason *string   `json:"rejectionReason"`
	InvitationDate  *string   `json:"invitationDate"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

type CandidatePatch struct {
	CollarType      *string   `json:"collarType"`
	FullName        *string   `json:"fullName"`
	BirthDate       *string   `json:"birthDate"`
	RegisteredCity  *string   `json:"registeredCity"`
	Hometown        *string   `json:"hometown"`
	MilitaryStatus  *string   `json:"militaryStatus"`
	Experience      *int      `json:"experience"`
	Email           *string   `json:"email"`
	PositionID      OptInt64  `json:"-"`
	InterviewDate   OptString `json:"-"`
	ServiceLine     OptString `json:"-"`
	Result          OptString `json:"-"`
	RejectionReason OptString `json:"-"`
	InvitationDate  OptString `json:"-"`
}

// normalizeCandidate enforces the conditional-nullability rule before any
// write: rejectionReason exists only with a negative result, invitationDate
// only with a positive one, and clearing the result clears both.
func normalizeCandidate(c *Candidate) error {
	if !domain.ValidCollarType(c.CollarType) {
		return fmt.Errorf("%w: collarType must be blue or white, got %q", ErrValidation, c.CollarType)
	}
	if strings.TrimSpace(c.FullName) == "" {
		return fmt.Errorf("%w: fullName is required", ErrValidation)
	}
	if strings.TrimSpace(c.Email) == "" {
		return fmt.Errorf("%w: email is required", ErrValidation)
	}
	if c.Experience < 0 {
		return fmt.Errorf("%w: experience must be >= 0", ErrValidation)
	}

	if c.Result == nil {
		c.RejectionReason = nil
		c.InvitationDate = nil
		return nil
	}
	switch *c.Result {
	case domain.ResultNegative:
		if c.RejectionReason == nil || strings.TrimSpace(*c.RejectionReason) == "" {
			return fmt.Errorf("%w: rejectionReason is required when result is negative", ErrValidation)
		}
		c.InvitationDate = nil
	case domain.ResultPositive:
		if c.InvitationDate == nil || strings.TrimSpace(*c.InvitationDate) == "" {
			return fmt.Errorf("%w: invitationDate is required when result is positive", ErrValidation)
		}
		c.RejectionReason = nil
	default:
		return fmt.Errorf("%w: result must be positive or negative, got %q", ErrValidation, *c.Result)
	}
	return nil
}

// CreateCandidate validates, stamps timestamps and inserts. ID, CreatedAt
// and UpdatedAt on the input are ignored.
func (d *DB) CreateCandidate(ctx context.Context, c Candidate) (int64, error) {
	if err := normalizeCandidate(&c); err != nil {
		return 0, err
	}
	now := time.Now().UTC().Truncate(time.Second)
	c.CreatedAt, c.UpdatedAt = now, now

	res, err := d.Pool.ExecContext(ctx, `
INSERT INTO candidates (
  collar_type, full_name, birth_date, registered_city, hometown,
  military_status, experience, email, position_id, interview_date,
  service_line, result, rejection_reason, invitation_date,
  created_at, updated_at
) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?);`,
		c.CollarType, c.FullName, c.BirthDate, c.RegisteredCity, c.Hometown,
		c.MilitaryStatus, c.Experience, c.Email, nullInt(c.PositionID), nullStr(c.InterviewDate),
		nullStr(c.ServiceLine), nullStr(c.Result), nullStr(c.RejectionReason), nullStr(c.InvitationDate),
		c.CreatedAt.Format(time.RFC3339), c.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return 0, fmt.Errorf("insert candidate: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert candidate id: %w", err)
	}
	return id, nil
}

const candidateCols = `
id, collar_type, full_name, birth_date, registered_city, hometown,
military_status, experience, email, position_id, interview_date,
service_line, result, rejection_reason, invitation_date, created_at, updated_at`

func scanCandidate(row interface{ Scan(...any) error }) (Candidate, error) {
	var (
		c                      Candidate
		posID                  sql.NullInt64
		ivDate, line, result   sql.NullString
		reason, invite         sql.NullString
		createdStr, updatedStr string
	)
	err := row.Scan(
		&c.ID, &c.CollarType, &c.FullName, &c.BirthDate, &c.RegisteredCity, &c.Hometown,
		&c.MilitaryStatus, &c.Experience, &c.Email, &posID, &ivDate,
		&line, &result, &reason, &invite, &createdStr, &updatedStr,
	)
	if err != nil {
		return Candidate{}, err
	}
	c.PositionID = intPtr(posID)
	c.InterviewDate = strPtr(ivDate)
	c.ServiceLine = strPtr(line)
	c.Result = strPtr(result)
	c.RejectionReason = strPtr(reason)
	c.InvitationDate = strPtr(invite)
	c.CreatedAt, _ = time.Parse(time.RFC3339, createdStr)
	c.UpdatedAt, _ = time.Parse(time.RFC3339, updatedStr)
	return c, nil
}

func (d *DB) GetCandidate(ctx context.Context, id int64) (Candidate, error) {
	row := d.Pool.QueryRowContext(ctx, `SELECT`+candidateCols+` FROM candidates WHERE id = ?;`, id)
	c, err := scanCandidate(row)
	if err == sql.ErrNoRows {
		return Candidate{}, fmt.Errorf("%w: candidate %d", ErrNotFound, id)
	}
	if err != nil {
		return Candidate{}, fmt.Errorf("get candidate: %w", err)
	}
	return c, nil
}

// ListCandidates returns all candidates in creation order. This is the
// order the dashboard groupings walk, so it must be stable.
func (d *DB) ListCandidates(ctx context.Context) ([]Candidate, error) {
	rows, err := d.Pool.QueryContext(ctx, `SELECT`+candidateCols+` FROM candidates ORDER BY created_at, id;`)
	if err != nil {
		return nil, fmt.Errorf("list candidates: %w", err)
	}
	defer rows.Close()

	var out []Candidate
	for rows.Next() {
		c, err := scanCandidate(rows)
		if err != nil {
			return nil, fmt.Errorf("scan candidate: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list candidates: %w", err)
	}
	return out, nil
}

// UpdateCandidate merges the patch over the stored record, re-checks the
// invariants on the merged state and writes it back. A missing id is
// ErrNotFound, never an implicit create.
func (d *DB) UpdateCandidate(ctx context.Context, id int64, p CandidatePatch) error {
	c, err := d.GetCandidate(ctx, id)
	if err != nil {
		return err
	}

	if p.CollarType != nil {
		c.CollarType = *p.CollarType
	}
	if p.FullName != nil {
		c.FullName = *p.FullName
	}
	if p.BirthDate != nil {
		c.BirthDate = *p.BirthDate
	}
	if p.RegisteredCity != nil {
		c.RegisteredCity = *p.RegisteredCity
	}
	if p.Hometown != nil {
		c.Hometown = *p.Hometown
	}
	if p.MilitaryStatus != nil {
		c.MilitaryStatus = *p.MilitaryStatus
	}
	if p.Experience != nil {
		c.Experience = *p.Experience
	}
	if p.Email != nil {
		c.Email = *p.Email
	}
	c.PositionID = p.PositionID.apply(c.PositionID)
	c.InterviewDate = p.InterviewDate.apply(c.InterviewDate)
	c.ServiceLine = p.ServiceLine.apply(c.ServiceLine)
	c.Result = p.Result.apply(c.Result)
	c.RejectionReason = p.RejectionReason.apply(c.RejectionReason)
	c.InvitationDate = p.InvitationDate.apply(c.InvitationDate)

	if err := normalizeCandidate(&c); err != nil {
		return err
	}
	c.UpdatedAt = time.Now().UTC().Truncate(time.Second)

	_, err = d.Pool.ExecContext(ctx, `
UPDATE candidates SET
  collar_type = ?, full_name = ?, birth_date = ?, registered_city = ?, hometown = ?,
  military_status = ?, experience = ?, email = ?, position_id = ?, interview_date = ?,
  service_line = ?, result = ?, rejection_reason = ?, invitation_date = ?, updated_at = ?
WHERE id = ?;`,
		c.CollarType, c.FullName, c.BirthDate, c.RegisteredCity, c.Hometown,
		c.MilitaryStatus, c.Experience, c.Email, nullInt(c.PositionID), nullStr(c.InterviewDate),
		nullStr(c.ServiceLine), nullStr(c.Result), nullStr(c.RejectionReason), nullStr(c.InvitationDate),
		c.UpdatedAt.Format(time.RFC3339), id,
	)
	if err != nil {
		return fmt.Errorf("update candidate: %w", err)
	}
	return nil
}

// DeleteCandidate removes only the candidate row. Interview, reference and
// approval rows for it are left behind; see OrphanCounts.
func (d *DB) DeleteCandidate(ctx context.Context, id int64) error {
	res, err := d.Pool.ExecContext(ctx, `DELETE FROM candidates WHERE id = ?;`, id)
	if err != nil {
		return fmt.Errorf("delete candidate: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: candidate %d", ErrNotFound, id)
	}
	return nil
}
