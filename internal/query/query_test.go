package query

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/emreugurluhr/hrs/internal/domain"
	"github.com/emreugurluhr/hrs/internal/store"
)

func newTestDB(t *testing.T) *store.DB {
	t.Helper()
	d, err := store.Open(store.Options{Path: filepath.Join(t.TempDir(), "test.db")})
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })
	return d
}

func strp(s string) *string { return &s }

func addCandidate(t *testing.T, db *store.DB, name, email string, interviewDate *string) int64 {
	t.Helper()
	id, err := db.CreateCandidate(context.Background(), store.Candidate{
		CollarType:    domain.CollarBlue,
		FullName:      name,
		Email:         email,
		InterviewDate: interviewDate,
	})
	if err != nil {
		t.Fatalf("create %s: %v", name, err)
	}
	return id
}

func TestSearchCandidates(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	addCandidate(t, db, "Ayşe Yılmaz", "ayse@example.com", nil)
	addCandidate(t, db, "Mehmet Kaya", "mehmet@example.com", nil)
	addCandidate(t, db, "Fatma Demir", "fatma.ayse@example.com", nil)

	// Lowercase Turkish input must match the uppercase stored form.
	got, err := SearchCandidates(ctx, db, "ayşe")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(got) != 1 || got[0].FullName != "Ayşe Yılmaz" {
		t.Errorf("search ayşe = %+v, want the one Ayşe", got)
	}

	// Email is searched too.
	got, err = SearchCandidates(ctx, db, "fatma.ayse")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(got) != 1 || got[0].FullName != "Fatma Demir" {
		t.Errorf("email search = %+v", got)
	}

	// A blank term is not a wildcard.
	for _, term := range []string{"", "   "} {
		got, err = SearchCandidates(ctx, db, term)
		if err != nil {
			t.Fatalf("search %q: %v", term, err)
		}
		if len(got) != 0 {
			t.Errorf("search %q returned %d rows, want none", term, len(got))
		}
	}

	got, err = SearchCandidates(ctx, db, "no such person")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("miss returned %d rows", len(got))
	}
}

func TestCandidatesInInterviewRange(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	addCandidate(t, db, "In Range", "a@x.com", strp("2024-01-05"))
	addCandidate(t, db, "Out Of Range", "b@x.com", strp("2024-03-01"))
	addCandidate(t, db, "No Date", "c@x.com", nil)
	addCandidate(t, db, "Garbage Date", "d@x.com", strp("soon"))
	addCandidate(t, db, "Last Day", "e@x.com", strp("2024-01-31"))

	got, err := CandidatesInInterviewRange(ctx, db, "2024-01-01", "2024-01-31")
	if err != nil {
		t.Fatalf("range: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("range matched %d, want 2: %+v", len(got), got)
	}
	if got[0].FullName != "In Range" || got[1].FullName != "Last Day" {
		t.Errorf("range = %s, %s", got[0].FullName, got[1].FullName)
	}

	// No bounds, no filter.
	got, err = CandidatesInInterviewRange(ctx, db, "", "")
	if err != nil {
		t.Fatalf("unbounded: %v", err)
	}
	if len(got) != 5 {
		t.Errorf("unbounded = %d rows, want all 5", len(got))
	}

	if _, err := CandidatesInInterviewRange(ctx, db, "not-a-date", "2024-01-31"); err == nil {
		t.Error("bad bound should error")
	}
}

func TestActivePositions(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	if _, err := db.CreatePosition(ctx, store.Position{Name: "Operator", IsActive: true}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := db.CreatePosition(ctx, store.Position{Name: "Kapalı Pozisyon"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := ActivePositions(ctx, db)
	if err != nil {
		t.Fatalf("active: %v", err)
	}
	if len(got) != 1 || got[0].Name != "Operator" {
		t.Errorf("active = %+v, want just Operator", got)
	}
}

func TestSummarize(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	pid, err := db.CreatePosition(ctx, store.Position{Name: "Operator", IsActive: true})
	if err != nil {
		t.Fatalf("create position: %v", err)
	}
	cid := addCandidate(t, db, "Ayşe Yılmaz", "ayse@example.com", strp("2024-01-05"))
	if err := db.UpdateCandidate(ctx, cid, store.CandidatePatch{PositionID: store.Int64(pid)}); err != nil {
		t.Fatalf("assign position: %v", err)
	}
	if _, err := db.UpsertInterviewByCandidate(ctx, store.Interview{CandidateID: cid, OfferedSalary: 30000}); err != nil {
		t.Fatalf("upsert interview: %v", err)
	}
	if _, err := db.CreateReference(ctx, store.Reference{CandidateID: cid, ReferrerName: "Mehmet"}); err != nil {
		t.Fatalf("create reference: %v", err)
	}

	s, err := Summarize(ctx, db, cid)
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}
	if s.Candidate.ID != cid {
		t.Errorf("candidate id = %d", s.Candidate.ID)
	}
	if s.Position == nil || s.Position.Name != "Operator" {
		t.Errorf("position = %+v", s.Position)
	}
	if s.Interview == nil || s.Interview.OfferedSalary != 30000 {
		t.Errorf("interview = %+v", s.Interview)
	}
	if len(s.References) != 1 || len(s.ApprovalNotes) != 0 {
		t.Errorf("children = %d refs, %d notes", len(s.References), len(s.ApprovalNotes))
	}

	// A deleted position reads as no position, not an error.
	if err := db.DeletePosition(ctx, pid); err != nil {
		t.Fatalf("delete position: %v", err)
	}
	s, err = Summarize(ctx, db, cid)
	if err != nil {
		t.Fatalf("summarize after delete: %v", err)
	}
	if s.Position != nil {
		t.Errorf("position = %+v, want nil for dangling reference", s.Position)
	}

	if _, err := Summarize(ctx, db, 9999); !store.IsNotFound(err) {
		t.Errorf("missing candidate: err = %v, want ErrNotFound", err)
	}
}

func TestDebouncerSpacesCalls(t *testing.T) {
	d := NewDebouncer(60 * time.Millisecond)
	ctx := context.Background()

	start := time.Now()
	if err := d.Wait(ctx); err != nil {
		t.Fatalf("first wait: %v", err)
	}
	if time.Since(start) > 30*time.Millisecond {
		t.Errorf("first call should pass immediately, took %v", time.Since(start))
	}
	if err := d.Wait(ctx); err != nil {
		t.Fatalf("second wait: %v", err)
	}
	if got := time.Since(start); got < 50*time.Millisecond {
		t.Errorf("second call after %v, want >= the 60ms gap", got)
	}
}

func TestDebouncerDisabled(t *testing.T) {
	d := NewDebouncer(0)
	start := time.Now()
	for i := 0; i < 10; i++ {
		if err := d.Wait(context.Background()); err != nil {
			t.Fatalf("wait %d: %v", i, err)
		}
	}
	if time.Since(start) > 30*time.Millisecond {
		t.Errorf("disabled debouncer blocked for %v", time.Since(start))
	}
}
