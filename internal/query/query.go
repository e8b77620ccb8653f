// Package query holds the read-only filter and join operations the search
// and detail views are built from. Everything here composes repository
// reads; nothing writes.
package query

import (
	"context"
	"strings"
	"time"

	"github.com/emreugurluhr/hrs/internal/store"
)

// SearchCandidates matches term case-insensitively as a substring of
// fullName or email. A blank or whitespace-only term means "search
// inactive" and yields nothing, not everything.
//
// Matching happens in Go rather than with SQL LIKE: sqlite's LOWER() folds
// ASCII only, and candidate names here are Turkish ("Ayşe" must match
// "ayşe").
func SearchCandidates(ctx context.Context, db *store.DB, term string) ([]store.Candidate, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, nil
	}
	term = strings.ToLower(term)

	all, err := db.ListCandidates(ctx)
	if err != nil {
		return nil, err
	}
	var out []store.Candidate
	for _, c := range all {
		if strings.Contains(strings.ToLower(c.FullName), term) ||
			strings.Contains(strings.ToLower(c.Email), term) {
			out = append(out, c)
		}
	}
	return out, nil
}

// CandidatesInInterviewRange filters on interviewDate. Bounds are
// inclusive; end is extended to 23:59:59 so a date-only end bound covers
// its whole day. Candidates without an interview date never match. Empty
// start and end disable filtering and return everything, which is how the
// dashboard behaves before a range is picked.
func CandidatesInInterviewRange(ctx context.Context, db *store.DB, start, end string) ([]store.Candidate, error) {
	all, err := db.ListCandidates(ctx)
	if err != nil {
		return nil, err
	}
	if start == "" || end == "" {
		return all, nil
	}

	from, err := parseDay(start)
	if err != nil {
		return nil, err
	}
	to, err := parseDay(end)
	if err != nil {
		return nil, err
	}
	to = to.Add(23*time.Hour + 59*time.Minute + 59*time.Second)

	var out []store.Candidate
	for _, c := range all {
		if c.InterviewDate == nil {
			continue
		}
		d, err := parseDay(*c.InterviewDate)
		if err != nil {
			continue // unparseable operator input is treated as no date
		}
		if !d.Before(from) && !d.After(to) {
			out = append(out, c)
		}
	}
	return out, nil
}

func parseDay(s string) (time.Time, error) {
	return time.Parse("2006-01-02", strings.TrimSpace(s))
}

// InterviewsFor, ReferencesFor and ApprovalNotesFor are the child lookups
// of the detail views: equality on the candidate_id index, ordered by
// creation.

func InterviewsFor(ctx context.Context, db *store.DB, candidateID int64) ([]store.Interview, error) {
	return db.ListInterviewsByCandidate(ctx, candidateID)
}

func ReferencesFor(ctx context.Context, db *store.DB, candidateID int64) ([]store.Reference, error) {
	return db.ListReferencesByCandidate(ctx, candidateID)
}

func ApprovalNotesFor(ctx context.Context, db *store.DB, candidateID int64) ([]store.ApprovalNote, error) {
	return db.ListApprovalNotesByCandidate(ctx, candidateID)
}

// ActivePositions lists the positions the candidate form offers.
func ActivePositions(ctx context.Context, db *store.DB) ([]store.Position, error) {
	return db.ListActivePositions(ctx)
}
