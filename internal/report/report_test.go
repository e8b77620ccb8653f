package report

import (
	"reflect"
	"testing"

	"github.com/emreugurluhr/hrs/internal/domain"
	"github.com/emreugurluhr/hrs/internal/store"
)

func strp(s string) *string { return &s }
func intp(v int64) *int64   { return &v }

func cand(pos *int64, result, reason *string) store.Candidate {
	return store.Candidate{PositionID: pos, Result: result, RejectionReason: reason}
}

func TestBuildGroupings(t *testing.T) {
	positions := []store.Position{
		{ID: 1, Name: "Operator"},
		{ID: 2, Name: "Tekniker"},
	}
	pos := strp(domain.ResultPositive)
	neg := strp(domain.ResultNegative)

	candidates := []store.Candidate{
		cand(intp(1), pos, nil),
		cand(intp(2), neg, strp("Ücret Beklentisi")),
		cand(intp(1), neg, strp("Diğer")),
		cand(intp(1), nil, nil),                        // undecided, still counts for its position
		cand(nil, pos, nil),                            // no position
		cand(intp(99), neg, strp("Ücret Beklentisi")),  // dangling position
	}

	s := Build(candidates, positions)

	wantByPosition := []Bucket{{"Operator", 3}, {"Tekniker", 1}}
	if !reflect.DeepEqual(s.ByPosition, wantByPosition) {
		t.Errorf("ByPosition = %+v, want %+v", s.ByPosition, wantByPosition)
	}

	wantByResult := []Bucket{{domain.ResultPositive, 2}, {domain.ResultNegative, 3}}
	if !reflect.DeepEqual(s.ByResult, wantByResult) {
		t.Errorf("ByResult = %+v, want %+v", s.ByResult, wantByResult)
	}

	wantPositive := []Bucket{{"Operator", 1}}
	if !reflect.DeepEqual(s.PositiveByPosition, wantPositive) {
		t.Errorf("PositiveByPosition = %+v, want %+v", s.PositiveByPosition, wantPositive)
	}

	// Order is first-encounter order, not alphabetical or by count.
	wantReasons := []Bucket{{"Ücret Beklentisi", 2}, {"Diğer", 1}}
	if !reflect.DeepEqual(s.RejectionReasons, wantReasons) {
		t.Errorf("RejectionReasons = %+v, want %+v", s.RejectionReasons, wantReasons)
	}

	if got := Sum(s.ByResult); got != 5 {
		t.Errorf("Sum(ByResult) = %d, want 5 decided candidates", got)
	}
}

func TestBuildEmpty(t *testing.T) {
	s := Build(nil, nil)
	if len(s.ByPosition) != 0 || len(s.PositiveByPosition) != 0 || len(s.RejectionReasons) != 0 {
		t.Errorf("empty input produced buckets: %+v", s)
	}
	// ByResult always carries its two fixed buckets so charts render.
	want := []Bucket{{domain.ResultPositive, 0}, {domain.ResultNegative, 0}}
	if !reflect.DeepEqual(s.ByResult, want) {
		t.Errorf("ByResult = %+v, want fixed zero buckets", s.ByResult)
	}
}
