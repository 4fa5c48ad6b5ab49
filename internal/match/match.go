// Package match implements tolerant structural equality over values and the
// first-match-wins scan over recorded cases.
//
// The equality rules are:
//
//   - values of different kinds are never equal;
//   - numbers are equal when |a-b| < epsilon (strictly less);
//   - sequences are equal when they have the same length and are equal
//     element by element;
//   - mappings are equal when they have the same number of entries and every
//     key of a is present in b with an equal value;
//   - booleans, strings and null compare exactly.
//
// The mapping rule only checks containment in one direction. When a mapping
// carries duplicate keys its entry count no longer equals its key count, so
// Equal(a, b) and Equal(b, a) can disagree. This mirrors the behavior of the
// harnesses the catalogs were recorded with and is kept on purpose.
package match

import (
	"fmt"
	"math"
	"strconv"

	"github.com/AndreyAkinshin/casemock/internal/value"
)

// DefaultTolerance is the numeric tolerance used when none is configured.
const DefaultTolerance = 1e-6

// Equal reports whether a and b are tolerant-equal under epsilon.
func Equal(a, b value.Value, epsilon float64) bool {
	ok, _ := compare(a, b, epsilon, "", false)
	return ok
}

// Diff compares a and b under the same rules as Equal. When they differ it
// returns a description of the first mismatch, prefixed with its JSON path
// ("$" is the root).
func Diff(a, b value.Value, epsilon float64) (bool, string) {
	return compare(a, b, epsilon, "", true)
}

// NumbersEqual is the numeric leaf rule: |a-b| < epsilon.
// NaN is never equal to anything, and equal infinities are not equal either
// because their difference is NaN.
func NumbersEqual(a, b, epsilon float64) bool {
	return math.Abs(a-b) < epsilon
}

func compare(a, b value.Value, epsilon float64, path string, explain bool) (bool, string) {
	if a.Kind() != b.Kind() {
		if !explain {
			return false, ""
		}
		return false, fmt.Sprintf("%s: kind mismatch: %s vs %s", pathStr(path), a.Kind(), b.Kind())
	}

	switch a.Kind() {
	case value.KindNumber:
		x, _ := a.AsNumber()
		y, _ := b.AsNumber()
		if NumbersEqual(x, y, epsilon) {
			return true, ""
		}
		if !explain {
			return false, ""
		}
		return false, fmt.Sprintf("%s: %v vs %v (|diff| %v >= tolerance %v)", pathStr(path), x, y, math.Abs(x-y), epsilon)

	case value.KindSequence:
		return compareSequences(a, b, epsilon, path, explain)

	case value.KindMapping:
		return compareMappings(a, b, epsilon, path, explain)

	case value.KindBool:
		x, _ := a.AsBool()
		y, _ := b.AsBool()
		if x == y {
			return true, ""
		}

	case value.KindString:
		x, _ := a.AsString()
		y, _ := b.AsString()
		if x == y {
			return true, ""
		}

	case value.KindNull:
		return true, ""
	}

	if !explain {
		return false, ""
	}
	return false, fmt.Sprintf("%s: %s vs %s", pathStr(path), a, b)
}

func compareSequences(a, b value.Value, epsilon float64, path string, explain bool) (bool, string) {
	if a.Len() != b.Len() {
		if !explain {
			return false, ""
		}
		return false, fmt.Sprintf("%s: length %d vs %d", pathStr(path), a.Len(), b.Len())
	}

	for i := 0; i < a.Len(); i++ {
		var indexPath string
		if explain {
			indexPath = pathStr(path) + "[" + strconv.Itoa(i) + "]"
		}
		if ok, diff := compare(a.Index(i), b.Index(i), epsilon, indexPath, explain); !ok {
			return false, diff
		}
	}
	return true, ""
}

func compareMappings(a, b value.Value, epsilon float64, path string, explain bool) (bool, string) {
	if a.Len() != b.Len() {
		if !explain {
			return false, ""
		}
		return false, fmt.Sprintf("%s: %d entries vs %d", pathStr(path), a.Len(), b.Len())
	}

	for _, e := range a.Entries() {
		other, ok := b.Get(e.Key)
		if !ok {
			if !explain {
				return false, ""
			}
			return false, fmt.Sprintf("%s: missing key %q", pathStr(path), e.Key)
		}
		av, _ := a.Get(e.Key)
		var keyPath string
		if explain {
			keyPath = pathStr(path) + "." + e.Key
		}
		if ok, diff := compare(av, other, epsilon, keyPath, explain); !ok {
			return false, diff
		}
	}
	return true, ""
}

// pathStr formats a path for mismatch messages using JSON Path notation.
func pathStr(path string) string {
	if path == "" {
		return "$"
	}
	return path
}
