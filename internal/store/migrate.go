package store

// Schema notes:
//
//   - Timestamps (created_at/updated_at) are RFC3339 UTC text.
//   - Operator-entered dates (birth_date, interview_date, invitation_date,
//     reference_date, approval_date) are plain "2006-01-02" text.
//   - position_id on candidates is a weak reference: no FK constraint, no
//     cascade. A candidate may point at a deleted position; lookups resolve
//     that to "no position".
//   - interviews has no unique constraint on candidate_id. One-per-candidate
//     is upheld by the upsert path.

func (d *DB) migrate() error {
	tx, err := d.Pool.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var v int
	if err := tx.QueryRow(`PRAGMA user_version;`).Scan(&v); err != nil {
		return err
	}
	if v >= 1 {
		return tx.Commit()
	}

	// ---- Schema v1: tables ----

	if _, err := tx.Exec(`
CREATE TABLE IF NOT EXISTS candidates (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  collar_type TEXT NOT NULL,
  full_name TEXT NOT NULL,
  birth_date TEXT NOT NULL DEFAULT '',
  registered_city TEXT NOT NULL DEFAULT '',
  hometown TEXT NOT NULL DEFAULT '',
  military_status TEXT NOT NULL DEFAULT '',
  experience INTEGER NOT NULL DEFAULT 0,
  email TEXT NOT NULL,
  position_id INTEGER,
  interview_date TEXT,
  service_line TEXT,
  result TEXT,
  rejection_reason TEXT,
  invitation_date TEXT,
  created_at TEXT NOT NULL,
  updated_at TEXT NOT NULL
);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`
CREATE TABLE IF NOT EXISTS positions (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  is_active INTEGER NOT NULL DEFAULT 1,
  created_at TEXT NOT NULL
);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`
CREATE TABLE IF NOT EXISTS interviews (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  candidate_id INTEGER NOT NULL,
  education TEXT NOT NULL DEFAULT '',
  offered_salary REAL NOT NULL DEFAULT 0,
  has_relative_in_company INTEGER NOT NULL DEFAULT 0,
  application_source TEXT NOT NULL DEFAULT '',
  first_manager TEXT NOT NULL DEFAULT '',
  cv_reference TEXT,
  created_at TEXT NOT NULL,
  updated_at TEXT NOT NULL
);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`
CREATE TABLE IF NOT EXISTS reference_checks (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  candidate_id INTEGER NOT NULL,
  referrer_name TEXT NOT NULL DEFAULT '',
  referrer_current_company TEXT NOT NULL DEFAULT '',
  worked_together_company TEXT NOT NULL DEFAULT '',
  years_worked_together TEXT NOT NULL DEFAULT '',
  candidate_position_at_referrer TEXT NOT NULL DEFAULT '',
  reason_for_leaving TEXT NOT NULL DEFAULT '',
  referrer_position TEXT NOT NULL DEFAULT '',
  reference_result TEXT NOT NULL DEFAULT '',
  reference_date TEXT NOT NULL DEFAULT '',
  reference_notes TEXT NOT NULL DEFAULT '',
  created_at TEXT NOT NULL
);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`
CREATE TABLE IF NOT EXISTS approval_notes (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  candidate_id INTEGER NOT NULL,
  approval_date TEXT NOT NULL DEFAULT '',
  approval_status TEXT NOT NULL DEFAULT '',
  notes TEXT NOT NULL DEFAULT '',
  created_at TEXT NOT NULL
);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`
CREATE TABLE IF NOT EXISTS attachments (
  key TEXT PRIMARY KEY,
  content_type TEXT NOT NULL,
  bytes BLOB NOT NULL,
  size INTEGER NOT NULL,
  uploaded_at TEXT NOT NULL
);
`); err != nil {
		return err
	}

	// ---- Schema v1: indexes ----

	for _, stmt := range []string{
		`CREATE INDEX IF NOT EXISTS idx_candidates_full_name ON candidates(full_name);`,
		`CREATE INDEX IF NOT EXISTS idx_candidates_email ON candidates(email);`,
		`CREATE INDEX IF NOT EXISTS idx_candidates_position_id ON candidates(position_id);`,
		`CREATE INDEX IF NOT EXISTS idx_candidates_collar_type ON candidates(collar_type);`,
		`CREATE INDEX IF NOT EXISTS idx_candidates_result ON candidates(result);`,
		`CREATE INDEX IF NOT EXISTS idx_candidates_created_at ON candidates(created_at);`,
		`CREATE INDEX IF NOT EXISTS idx_positions_name ON positions(name);`,
		`CREATE INDEX IF NOT EXISTS idx_positions_is_active ON positions(is_active);`,
		`CREATE INDEX IF NOT EXISTS idx_positions_created_at ON positions(created_at);`,
		`CREATE INDEX IF NOT EXISTS idx_interviews_candidate_id ON interviews(candidate_id);`,
		`CREATE INDEX IF NOT EXISTS idx_interviews_created_at ON interviews(created_at);`,
		`CREATE INDEX IF NOT EXISTS idx_reference_checks_candidate_id ON reference_checks(candidate_id);`,
		`CREATE INDEX IF NOT EXISTS idx_reference_checks_created_at ON reference_checks(created_at);`,
		`CREATE INDEX IF NOT EXISTS idx_approval_notes_candidate_id ON approval_notes(candidate_id);`,
		`CREATE INDEX IF NOT EXISTS idx_approval_notes_status ON approval_notes(approval_status);`,
		`CREATE INDEX IF NOT EXISTS idx_approval_notes_created_at ON approval_notes(created_at);`,
	} {
		if _, err := tx.Exec(stmt); err != nil {
			return err
		}
	}

	if _, err := tx.Exec(`PRAGMA user_version = 1;`); err != nil {
		return err
	}
	return tx.Commit()
}
