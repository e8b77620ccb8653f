package query

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/emreugurluhr/hrs/internal/store"
)

// CandidateSummary is the assembled view the approval screen renders:
// the candidate plus everything hanging off it. Position and Interview are
// nil when unresolved; a dangling positionId reads as "no position".
type CandidateSummary struct {
	Candidate     store.Candidate      `json:"candidate"`
	Position      *store.Position      `json:"position"`
	Interview     *store.Interview     `json:"interview"`
	References    []store.Reference    `json:"references"`
	ApprovalNotes []store.ApprovalNote `json:"approvalNotes"`
}

// Summarize fetches the candidate, then its children in parallel. The
// candidate read goes first so a bad id fails fast with ErrNotFound.
func Summarize(ctx context.Context, db *store.DB, candidateID int64) (*CandidateSummary, error) {
	c, err := db.GetCandidate(ctx, candidateID)
	if err != nil {
		return nil, err
	}
	s := &CandidateSummary{Candidate: c}

	g, gctx := errgroup.WithContext(ctx)

	if c.PositionID != nil {
		posID := *c.PositionID
		g.Go(func() error {
			p, err := db.GetPosition(gctx, posID)
			if store.IsNotFound(err) {
				return nil // weak reference, position was deleted
			}
			if err != nil {
				return err
			}
			s.Position = &p
			return nil
		})
	}

	g.Go(func() error {
		iv, err := db.GetInterviewByCandidate(gctx, candidateID)
		if store.IsNotFound(err) {
			return nil
		}
		if err != nil {
			return err
		}
		s.Interview = &iv
		return nil
	})

	g.Go(func() error {
		refs, err := db.ListReferencesByCandidate(gctx, candidateID)
		if err != nil {
			return err
		}
		s.References = refs
		return nil
	})

	g.Go(func() error {
		notes, err := db.ListApprovalNotesByCandidate(gctx, candidateID)
		if err != nil {
			return err
		}
		s.ApprovalNotes = notes
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return s, nil
}
