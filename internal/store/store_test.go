package store

import (
	"context"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/emreugurluhr/hrs/internal/domain"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	d, err := Open(Options{Path: filepath.Join(t.TempDir(), "test.db")})
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })
	return d
}

func strp(s string) *string { return &s }
func intp(v int64) *int64   { return &v }

func testCandidate() Candidate {
	return Candidate{
		CollarType:     domain.CollarBlue,
		FullName:       "Ayşe Yılmaz",
		BirthDate:      "1995-04-12",
		RegisteredCity: "İstanbul",
		Hometown:       "Trabzon",
		MilitaryStatus: "Muaf",
		Experience:     2,
		Email:          "a@x.com",
	}
}

func TestCandidateRoundTrip(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	in := testCandidate()
	in.InterviewDate = strp("2024-01-05")
	in.ServiceLine = strp("Hat 3")

	id, err := db.CreateCandidate(ctx, in)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := db.GetCandidate(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.ID != id {
		t.Errorf("id = %d, want %d", got.ID, id)
	}
	if got.FullName != in.FullName || got.Email != in.Email || got.Experience != in.Experience {
		t.Errorf("fields lost on round trip: %+v", got)
	}
	if got.InterviewDate == nil || *got.InterviewDate != "2024-01-05" {
		t.Errorf("interviewDate = %v", got.InterviewDate)
	}
	// unset optionals come back as null
	if got.PositionID != nil || got.Result != nil || got.RejectionReason != nil || got.InvitationDate != nil {
		t.Errorf("expected null optionals, got %+v", got)
	}
	if got.CreatedAt.IsZero() || got.UpdatedAt.IsZero() {
		t.Errorf("timestamps not stamped: %+v", got)
	}
}

func TestCandidateRequiredFields(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	for name, mutate := range map[string]func(*Candidate){
		"missing name":   func(c *Candidate) { c.FullName = " " },
		"missing email":  func(c *Candidate) { c.Email = "" },
		"bad collar":     func(c *Candidate) { c.CollarType = "green" },
		"bad experience": func(c *Candidate) { c.Experience = -1 },
	} {
		c := testCandidate()
		mutate(&c)
		if _, err := db.CreateCandidate(ctx, c); !IsValidation(err) {
			t.Errorf("%s: err = %v, want ErrValidation", name, err)
		}
	}
}

// Result, rejectionReason and invitationDate move together: the reason
// exists only with a negative result, the invitation only with a positive
// one, and no result means neither.
func TestCandidateResultInvariant(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	cases := []struct {
		name           string
		result, reason *string
		invite         *string
		wantErr        bool
	}{
		{"no result", nil, nil, nil, false},
		{"no result clears stray fields", nil, strp("Diğer"), strp("2024-01-10"), false},
		{"positive with invitation", strp(domain.ResultPositive), nil, strp("2024-01-10"), false},
		{"positive without invitation", strp(domain.ResultPositive), nil, nil, true},
		{"negative with reason", strp(domain.ResultNegative), strp("Ücret Beklentisi"), nil, false},
		{"negative without reason", strp(domain.ResultNegative), nil, nil, true},
		{"negative with blank reason", strp(domain.ResultNegative), strp("  "), nil, true},
		{"unknown result", strp("maybe"), nil, nil, true},
	}
	for _, tc := range cases {
		c := testCandidate()
		c.Result = tc.result
		c.RejectionReason = tc.reason
		c.InvitationDate = tc.invite

		id, err := db.CreateCandidate(ctx, c)
		if tc.wantErr {
			if !IsValidation(err) {
				t.Errorf("%s: err = %v, want ErrValidation", tc.name, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%s: create: %v", tc.name, err)
		}

		got, err := db.GetCandidate(ctx, id)
		if err != nil {
			t.Fatalf("%s: get: %v", tc.name, err)
		}
		if got.Result == nil {
			if got.RejectionReason != nil || got.InvitationDate != nil {
				t.Errorf("%s: null result must clear both fields: %+v", tc.name, got)
			}
			continue
		}
		switch *got.Result {
		case domain.ResultNegative:
			if got.RejectionReason == nil || got.InvitationDate != nil {
				t.Errorf("%s: negative state wrong: %+v", tc.name, got)
			}
		case domain.ResultPositive:
			if got.InvitationDate == nil || got.RejectionReason != nil {
				t.Errorf("%s: positive state wrong: %+v", tc.name, got)
			}
		}
	}
}

// Flipping a positive candidate to negative demands a reason, and taking it
// drops the old invitation date.
func TestCandidateResultFlip(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	c := testCandidate()
	c.Result = strp(domain.ResultPositive)
	c.InvitationDate = strp("2024-01-10")
	id, err := db.CreateCandidate(ctx, c)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	err = db.UpdateCandidate(ctx, id, CandidatePatch{Result: String(domain.ResultNegative)})
	if !IsValidation(err) {
		t.Fatalf("flip without reason: err = %v, want ErrValidation", err)
	}

	err = db.UpdateCandidate(ctx, id, CandidatePatch{
		Result:          String(domain.ResultNegative),
		RejectionReason: String("Ücret Beklentisi"),
	})
	if err != nil {
		t.Fatalf("flip with reason: %v", err)
	}

	got, err := db.GetCandidate(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Result == nil || *got.Result != domain.ResultNegative {
		t.Errorf("result = %v", got.Result)
	}
	if got.InvitationDate != nil {
		t.Errorf("invitationDate should be cleared, got %v", *got.InvitationDate)
	}
	if got.RejectionReason == nil || *got.RejectionReason != "Ücret Beklentisi" {
		t.Errorf("rejectionReason = %v", got.RejectionReason)
	}
}

func TestUpdateIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	id, err := db.CreateCandidate(ctx, testCandidate())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	patch := CandidatePatch{
		Hometown:      strp("Rize"),
		Experience:    func() *int { v := 5; return &v }(),
		InterviewDate: String("2024-02-01"),
	}
	if err := db.UpdateCandidate(ctx, id, patch); err != nil {
		t.Fatalf("first update: %v", err)
	}
	first, _ := db.GetCandidate(ctx, id)

	if err := db.UpdateCandidate(ctx, id, patch); err != nil {
		t.Fatalf("second update: %v", err)
	}
	second, _ := db.GetCandidate(ctx, id)

	first.UpdatedAt = second.UpdatedAt // only updatedAt may differ
	if !reflect.DeepEqual(first, second) {
		t.Errorf("update not idempotent:\nfirst  %+v\nsecond %+v", first, second)
	}
}

func TestUpdateMissingIsNotFound(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	if err := db.UpdateCandidate(ctx, 9999, CandidatePatch{Hometown: strp("Rize")}); !IsNotFound(err) {
		t.Errorf("update: err = %v, want ErrNotFound", err)
	}
	if err := db.UpdatePosition(ctx, 9999, PositionPatch{Name: strp("x")}); !IsNotFound(err) {
		t.Errorf("update position: err = %v, want ErrNotFound", err)
	}
	if err := db.UpdateInterview(ctx, 9999, InterviewPatch{}); !IsNotFound(err) {
		t.Errorf("update interview: err = %v, want ErrNotFound", err)
	}
	if err := db.UpdateReference(ctx, 9999, ReferencePatch{ReferrerName: strp("x")}); !IsNotFound(err) {
		t.Errorf("update reference: err = %v, want ErrNotFound", err)
	}
	if err := db.UpdateApprovalNote(ctx, 9999, ApprovalNotePatch{Notes: strp("x")}); !IsNotFound(err) {
		t.Errorf("update approval note: err = %v, want ErrNotFound", err)
	}
}

func TestReferenceUpdateAndListAll(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	c1, _ := db.CreateCandidate(ctx, testCandidate())
	c2 := testCandidate()
	c2.Email = "b@x.com"
	cid2, _ := db.CreateCandidate(ctx, c2)

	id, err := db.CreateReference(ctx, Reference{CandidateID: c1, ReferrerName: "Mehmet", ReferenceResult: "Olumlu"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := db.CreateReference(ctx, Reference{CandidateID: cid2, ReferrerName: "Zeynep"}); err != nil {
		t.Fatalf("create second: %v", err)
	}

	patch := ReferencePatch{ReferrerName: strp("Mehmet Kaya"), ReferenceNotes: strp("uzun süre birlikte çalıştık")}
	if err := db.UpdateReference(ctx, id, patch); err != nil {
		t.Fatalf("update: %v", err)
	}
	first, _ := db.GetReference(ctx, id)
	if err := db.UpdateReference(ctx, id, patch); err != nil {
		t.Fatalf("second update: %v", err)
	}
	second, _ := db.GetReference(ctx, id)
	if first != second {
		t.Errorf("update not idempotent:\nfirst  %+v\nsecond %+v", first, second)
	}
	if second.ReferrerName != "Mehmet Kaya" || second.ReferenceResult != "Olumlu" {
		t.Errorf("merge wrong: %+v", second)
	}

	all, err := db.ListReferences(ctx)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("references = %d, want both candidates' rows", len(all))
	}
}

func TestApprovalNoteUpdateAndListAll(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	cid, _ := db.CreateCandidate(ctx, testCandidate())
	id, err := db.CreateApprovalNote(ctx, ApprovalNote{CandidateID: cid, ApprovalStatus: "pending", Notes: "ilk not"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := db.CreateApprovalNote(ctx, ApprovalNote{CandidateID: cid, ApprovalStatus: "pending"}); err != nil {
		t.Fatalf("create second: %v", err)
	}

	patch := ApprovalNotePatch{ApprovalStatus: strp("approved"), ApprovalDate: strp("2024-02-01")}
	if err := db.UpdateApprovalNote(ctx, id, patch); err != nil {
		t.Fatalf("update: %v", err)
	}
	first, _ := db.GetApprovalNote(ctx, id)
	if err := db.UpdateApprovalNote(ctx, id, patch); err != nil {
		t.Fatalf("second update: %v", err)
	}
	second, _ := db.GetApprovalNote(ctx, id)
	if first != second {
		t.Errorf("update not idempotent:\nfirst  %+v\nsecond %+v", first, second)
	}
	if second.ApprovalStatus != "approved" || second.Notes != "ilk not" {
		t.Errorf("merge wrong: %+v", second)
	}

	all, err := db.ListApprovalNotes(ctx)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("approval notes = %d, want 2", len(all))
	}
}

func TestDeleteThenGet(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	cid, err := db.CreateCandidate(ctx, testCandidate())
	if err != nil {
		t.Fatalf("create candidate: %v", err)
	}
	pid, err := db.CreatePosition(ctx, Position{Name: "Operator"})
	if err != nil {
		t.Fatalf("create position: %v", err)
	}
	ivID, err := db.CreateInterview(ctx, Interview{CandidateID: cid})
	if err != nil {
		t.Fatalf("create interview: %v", err)
	}
	refID, err := db.CreateReference(ctx, Reference{CandidateID: cid, ReferrerName: "Mehmet"})
	if err != nil {
		t.Fatalf("create reference: %v", err)
	}
	noteID, err := db.CreateApprovalNote(ctx, ApprovalNote{CandidateID: cid, ApprovalStatus: "pending"})
	if err != nil {
		t.Fatalf("create approval note: %v", err)
	}

	if err := db.DeleteCandidate(ctx, cid); err != nil {
		t.Fatalf("delete candidate: %v", err)
	}
	if _, err := db.GetCandidate(ctx, cid); !IsNotFound(err) {
		t.Errorf("get deleted candidate: err = %v, want ErrNotFound", err)
	}
	if err := db.DeletePosition(ctx, pid); err != nil {
		t.Fatalf("delete position: %v", err)
	}
	if _, err := db.GetPosition(ctx, pid); !IsNotFound(err) {
		t.Errorf("get deleted position: err = %v, want ErrNotFound", err)
	}
	if err := db.DeleteInterview(ctx, ivID); err != nil {
		t.Fatalf("delete interview: %v", err)
	}
	if _, err := db.GetInterview(ctx, ivID); !IsNotFound(err) {
		t.Errorf("get deleted interview: err = %v, want ErrNotFound", err)
	}
	if err := db.DeleteReference(ctx, refID); err != nil {
		t.Fatalf("delete reference: %v", err)
	}
	if _, err := db.GetReference(ctx, refID); !IsNotFound(err) {
		t.Errorf("get deleted reference: err = %v, want ErrNotFound", err)
	}
	if err := db.DeleteApprovalNote(ctx, noteID); err != nil {
		t.Fatalf("delete approval note: %v", err)
	}
	if _, err := db.GetApprovalNote(ctx, noteID); !IsNotFound(err) {
		t.Errorf("get deleted approval note: err = %v, want ErrNotFound", err)
	}
}

// Deleting a candidate leaves its children behind; OrphanCounts makes the
// gap visible.
func TestDeleteCandidateOrphansChildren(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	pid, _ := db.CreatePosition(ctx, Position{Name: "Operator"})
	c := testCandidate()
	c.PositionID = intp(pid)
	cid, err := db.CreateCandidate(ctx, c)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := db.CreateInterview(ctx, Interview{CandidateID: cid}); err != nil {
		t.Fatalf("create interview: %v", err)
	}
	if _, err := db.CreateReference(ctx, Reference{CandidateID: cid}); err != nil {
		t.Fatalf("create reference: %v", err)
	}

	if err := db.DeleteCandidate(ctx, cid); err != nil {
		t.Fatalf("delete: %v", err)
	}

	counts, err := db.OrphanCounts(ctx)
	if err != nil {
		t.Fatalf("orphan counts: %v", err)
	}
	if counts.Interviews != 1 || counts.References != 1 {
		t.Errorf("counts = %+v, want 1 orphan interview and reference", counts)
	}

	// And the other direction: deleting a position strands the candidate's
	// position_id.
	c2 := testCandidate()
	c2.PositionID = intp(pid)
	if _, err := db.CreateCandidate(ctx, c2); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := db.DeletePosition(ctx, pid); err != nil {
		t.Fatalf("delete position: %v", err)
	}
	counts, _ = db.OrphanCounts(ctx)
	if counts.DanglingPositionRefs != 1 {
		t.Errorf("dangling position refs = %d, want 1", counts.DanglingPositionRefs)
	}
}

func TestInterviewUpsertByCandidate(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	cid, err := db.CreateCandidate(ctx, testCandidate())
	if err != nil {
		t.Fatalf("create candidate: %v", err)
	}

	first := Interview{
		CandidateID:       cid,
		Education:         "Lise",
		OfferedSalary:     30000,
		ApplicationSource: "Kariyer.net",
		FirstManager:      "Ali Demir",
	}
	id1, err := db.UpsertInterviewByCandidate(ctx, first)
	if err != nil {
		t.Fatalf("first upsert: %v", err)
	}

	second := first
	second.OfferedSalary = 35000
	id2, err := db.UpsertInterviewByCandidate(ctx, second)
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	if id1 != id2 {
		t.Errorf("upsert created a second row: %d then %d", id1, id2)
	}

	rows, err := db.ListInterviewsByCandidate(ctx, cid)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("interviews = %d, want exactly 1", len(rows))
	}
	if rows[0].OfferedSalary != 35000 {
		t.Errorf("offeredSalary = %v, want the second payload's 35000", rows[0].OfferedSalary)
	}
}

func TestReferenceUpsertByCandidate(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	cid, err := db.CreateCandidate(ctx, testCandidate())
	if err != nil {
		t.Fatalf("create candidate: %v", err)
	}

	id1, err := db.UpsertReferenceByCandidate(ctx, Reference{CandidateID: cid, ReferrerName: "Mehmet"})
	if err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	id2, err := db.UpsertReferenceByCandidate(ctx, Reference{CandidateID: cid, ReferrerName: "Zeynep"})
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	if id1 != id2 {
		t.Errorf("upsert created a second row: %d then %d", id1, id2)
	}

	refs, err := db.ListReferencesByCandidate(ctx, cid)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(refs) != 1 || refs[0].ReferrerName != "Zeynep" {
		t.Errorf("refs = %+v, want one row with the second payload", refs)
	}

	// CreateReference still allows additional checks.
	if _, err := db.CreateReference(ctx, Reference{CandidateID: cid, ReferrerName: "Kemal"}); err != nil {
		t.Fatalf("extra reference: %v", err)
	}
	refs, _ = db.ListReferencesByCandidate(ctx, cid)
	if len(refs) != 2 {
		t.Errorf("refs = %d, want 2 after explicit create", len(refs))
	}
}

func TestAttachmentRoundTrip(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	data := []byte("%PDF-1.4 fake cv")
	key, err := db.PutAttachment(ctx, "application/pdf", data)
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if key != AttachmentKey(data) {
		t.Errorf("key = %s, want content hash", key)
	}

	// same bytes, same key
	key2, err := db.PutAttachment(ctx, "application/pdf", data)
	if err != nil {
		t.Fatalf("second put: %v", err)
	}
	if key2 != key {
		t.Errorf("second put key = %s, want %s", key2, key)
	}

	ct, got, err := db.GetAttachment(ctx, key)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if ct != "application/pdf" || string(got) != string(data) {
		t.Errorf("round trip lost data: ct=%s len=%d", ct, len(got))
	}

	if _, _, err := db.GetAttachment(ctx, "nope"); !IsNotFound(err) {
		t.Errorf("missing attachment: err = %v, want ErrNotFound", err)
	}
}

func TestResetOnInit(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.db")
	ctx := context.Background()

	d, err := Open(Options{Path: path})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := d.CreateCandidate(ctx, testCandidate()); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := d.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	// reopen without reset: data survives
	d, err = Open(Options{Path: path})
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	rows, err := d.ListCandidates(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("candidates after reopen = %d, want 1", len(rows))
	}
	_ = d.Close()

	// reopen with reset: back to empty
	d, err = Open(Options{Path: path, ResetOnInit: true})
	if err != nil {
		t.Fatalf("reopen with reset: %v", err)
	}
	defer d.Close()
	rows, err = d.ListCandidates(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("candidates after reset = %d, want 0", len(rows))
	}
}

func TestSecondInstanceIsRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	d, err := Open(Options{Path: path})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer d.Close()

	if _, err := Open(Options{Path: path}); err == nil {
		t.Fatal("second Open should fail while the lock is held")
	}
}
