// Package report turns a candidate set into the dashboard's grouped
// counts. It is pure: callers pass the (optionally date-filtered) candidate
// slice and the position list, and bucket order is the order labels are
// first met walking the input, so the same input always yields the same
// chart.
package report

import (
	"github.com/emreugurluhr/hrs/internal/domain"
	"github.com/emreugurluhr/hrs/internal/store"
)

type Bucket struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// Stats holds the four dashboard groupings.
type Stats struct {
	// ByPosition counts candidates per resolvable position name.
	// Candidates whose positionId is absent or dangling are dropped, not
	// bucketed as unknown.
	ByPosition []Bucket `json:"byPosition"`

	// ByResult is always the two fixed buckets, positive then negative.
	// Candidates with no result are in neither.
	ByResult []Bucket `json:"byResult"`

	// PositiveByPosition is ByPosition restricted to positive results.
	PositiveByPosition []Bucket `json:"positiveByPosition"`

	// RejectionReasons counts negative-result candidates per non-null
	// rejection reason.
	RejectionReasons []Bucket `json:"rejectionReasons"`
}

// Build walks the candidate set once per grouping, in input order.
func Build(candidates []store.Candidate, positions []store.Position) Stats {
	names := make(map[int64]string, len(positions))
	for _, p := range positions {
		names[p.ID] = p.Name
	}

	byPosition := newTally()
	positiveByPosition := newTally()
	rejectionReasons := newTally()
	var positive, negative int

	for _, c := range candidates {
		if c.PositionID != nil {
			if name, ok := names[*c.PositionID]; ok {
				byPosition.add(name)
				if c.Result != nil && *c.Result == domain.ResultPositive {
					positiveByPosition.add(name)
				}
			}
		}
		if c.Result == nil {
			continue
		}
		switch *c.Result {
		case domain.ResultPositive:
			positive++
		case domain.ResultNegative:
			negative++
			if c.RejectionReason != nil {
				rejectionReasons.add(*c.RejectionReason)
			}
		}
	}

	return Stats{
		ByPosition: byPosition.buckets(),
		ByResult: []Bucket{
			{Label: domain.ResultPositive, Count: positive},
			{Label: domain.ResultNegative, Count: negative},
		},
		PositiveByPosition: positiveByPosition.buckets(),
		RejectionReasons:   rejectionReasons.buckets(),
	}
}

// Sum is the total count across a grouping's buckets. For ByResult it is
// the number of decided candidates; for ByPosition the number with a
// resolvable position.
func Sum(bs []Bucket) int {
	n := 0
	for _, b := range bs {
		n += b.Count
	}
	return n
}

// tally is a counter that remembers first-encounter order of its labels.
type tally struct {
	counts map[string]int
	order  []string
}

func newTally() *tally {
	return &tally{counts: make(map[string]int)}
}

func (t *tally) add(label string) {
	if _, seen := t.counts[label]; !seen {
		t.order = append(t.order, label)
	}
	t.counts[label]++
}

func (t *tally) buckets() []Bucket {
	out := make([]Bucket, 0, len(t.order))
	for _, label := range t.order {
		out = append(out, Bucket{Label: label, Count: t.counts[label]})
	}
	return out
}
