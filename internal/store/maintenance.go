package store

import (
	"context"
	"fmt"
)

// OrphanCounts reports rows left behind because deletes do not cascade:
// children whose candidate is gone, and candidates whose position is gone.
// Nothing here repairs them; whether to cascade or forbid such deletes is a
// product decision still pending.
type OrphanCounts struct {
	Interviews           int `json:"interviews"`
	References           int `json:"references"`
	ApprovalNotes        int `json:"approvalNotes"`
	DanglingPositionRefs int `json:"danglingPositionRefs"`
}

func (c OrphanCounts) Any() bool {
	return c.Interviews > 0 || c.References > 0 || c.ApprovalNotes > 0 || c.DanglingPositionRefs > 0
}

func (d *DB) OrphanCounts(ctx context.Context) (OrphanCounts, error) {
	var c OrphanCounts
	for _, q := range []struct {
		dst   *int
		query string
	}{
		{&c.Interviews, `SELECT COUNT(*) FROM interviews WHERE candidate_id NOT IN (SELECT id FROM candidates);`},
		{&c.References, `SELECT COUNT(*) FROM reference_checks WHERE candidate_id NOT IN (SELECT id FROM candidates);`},
		{&c.ApprovalNotes, `SELECT COUNT(*) FROM approval_notes WHERE candidate_id NOT IN (SELECT id FROM candidates);`},
		{&c.DanglingPositionRefs, `SELECT COUNT(*) FROM candidates WHERE position_id IS NOT NULL AND position_id NOT IN (SELECT id FROM positions);`},
	} {
		if err := d.Pool.QueryRowContext(ctx, q.query).Scan(q.dst); err != nil {
			return OrphanCounts{}, fmt.Errorf("orphan counts: %w", err)
		}
	}
	return c, nil
}

// Checkpoint folds the WAL back into the main file. Run periodically; a
// single-operator app otherwise lets the WAL grow for the whole session.
func (d *DB) Checkpoint(ctx context.Context) error {
	if _, err := d.Pool.ExecContext(ctx, `PRAGMA wal_checkpoint(TRUNCATE);`); err != nil {
		return fmt.Errorf("wal checkpoint: %w", err)
	}
	return nil
}
