package match

import (
	"math"

	"github.com/AndreyAkinshin/casemock/internal/catalog"
	"github.com/AndreyAkinshin/casemock/internal/value"
)

// Matcher scans recorded cases for the first one whose input matches.
// The zero Matcher uses DefaultTolerance.
type Matcher struct {
	Tolerance float64
}

// NewMatcher returns a Matcher with the given tolerance. Non-positive or
// non-finite tolerances fall back to DefaultTolerance.
func NewMatcher(tolerance float64) Matcher {
	return Matcher{Tolerance: tolerance}
}

// Epsilon returns the tolerance in effect.
func (m Matcher) Epsilon() float64 {
	if m.Tolerance <= 0 || math.IsNaN(m.Tolerance) || math.IsInf(m.Tolerance, 0) {
		return DefaultTolerance
	}
	return m.Tolerance
}

// Find returns the index of the first record whose Inputs tolerant-equals
// input, scanning in catalog order.
func (m Matcher) Find(input value.Value, records []catalog.Record) (int, bool) {
	eps := m.Epsilon()
	for i, r := range records {
		if Equal(r.Inputs, input, eps) {
			return i, true
		}
	}
	return -1, false
}

// Closest returns the index of the record whose Inputs comes nearest to
// input, for diagnostics when Find reports no match. Records of a different
// kind are skipped; among mappings the one sharing the most equal entries
// wins, among sequences the one with the longest equal prefix. Ties go to
// the earlier record. It returns -1 if no record has the same kind.
func (m Matcher) Closest(input value.Value, records []catalog.Record) int {
	eps := m.Epsilon()
	best, bestScore := -1, -1
	for i, r := range records {
		if r.Inputs.Kind() != input.Kind() {
			continue
		}
		if score := similarity(r.Inputs, input, eps); score > bestScore {
			best, bestScore = i, score
		}
	}
	return best
}

func similarity(a, b value.Value, eps float64) int {
	switch a.Kind() {
	case value.KindMapping:
		score := 0
		for _, e := range a.Entries() {
			if other, ok := b.Get(e.Key); ok {
				score++
				if Equal(e.Value, other, eps) {
					score++
				}
			}
		}
		return score
	case value.KindSequence:
		n := min(a.Len(), b.Len())
		score := 0
		for i := 0; i < n; i++ {
			if !Equal(a.Index(i), b.Index(i), eps) {
				break
			}
			score++
		}
		return score
	default:
		return 0
	}
}
