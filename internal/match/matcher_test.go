package match

import (
	"math"
	"testing"

	"github.com/AndreyAkinshin/casemock/internal/catalog"
	"github.com/AndreyAkinshin/casemock/internal/value"
)

func records(t *testing.T, pairs ...string) []catalog.Record {
	t.Helper()
	if len(pairs)%2 != 0 {
		t.Fatal("records needs Inputs/Expected pairs")
	}
	out := make([]catalog.Record, 0, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		out = append(out, catalog.Record{
			Inputs:   mustParse(t, pairs[i]),
			Expected: mustParse(t, pairs[i+1]),
		})
	}
	return out
}

func TestMatcher_Epsilon(t *testing.T) {
	tests := []struct {
		tolerance float64
		want      float64
	}{
		{0, DefaultTolerance},
		{-1, DefaultTolerance},
		{math.NaN(), DefaultTolerance},
		{math.Inf(1), DefaultTolerance},
		{0.5, 0.5},
	}

	for _, tt := range tests {
		if got := NewMatcher(tt.tolerance).Epsilon(); got != tt.want {
			t.Errorf("NewMatcher(%v).Epsilon() = %v, want %v", tt.tolerance, got, tt.want)
		}
	}
}

func TestMatcher_Find(t *testing.T) {
	recs := records(t,
		`{"x": 1, "y": [1, 2]}`, `3`,
		`{"x": 5}`, `5`,
	)

	tests := []struct {
		name      string
		input     string
		wantIndex int
		wantFound bool
	}{
		{"exact", `{"x": 1, "y": [1, 2]}`, 0, true},
		{"within tolerance", `{"x": 1.0000001, "y": [1, 2]}`, 0, true},
		{"reordered keys", `{"y": [1, 2], "x": 1}`, 0, true},
		{"second record", `{"x": 5}`, 1, true},
		{"no match", `{"x": 2}`, -1, false},
		{"wrong kind", `[1, 2]`, -1, false},
	}

	var m Matcher
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx, found := m.Find(mustParse(t, tt.input), recs)
			if idx != tt.wantIndex || found != tt.wantFound {
				t.Errorf("Find(%s) = (%d, %v), want (%d, %v)", tt.input, idx, found, tt.wantIndex, tt.wantFound)
			}
		})
	}
}

func TestMatcher_FirstMatchWins(t *testing.T) {
	recs := records(t,
		`{"x": 1}`, `"first"`,
		`{"x": 1.0000002}`, `"second"`,
	)

	idx, found := Matcher{}.Find(mustParse(t, `{"x": 1.0000001}`), recs)
	if !found || idx != 0 {
		t.Fatalf("Find() = (%d, %v), want (0, true)", idx, found)
	}
	if s, _ := recs[idx].Expected.AsString(); s != "first" {
		t.Errorf("Expected = %q, want \"first\"", s)
	}
}

func TestMatcher_EmptyCatalog(t *testing.T) {
	idx, found := Matcher{}.Find(value.Null(), nil)
	if found || idx != -1 {
		t.Errorf("Find() on empty catalog = (%d, %v), want (-1, false)", idx, found)
	}
}

func TestMatcher_StoredValueIsFirstArgument(t *testing.T) {
	// The stored input has a duplicate key, so only one argument order matches.
	recs := records(t, `{"x": 1, "x": 1}`, `"dup"`)

	if _, found := (Matcher{}).Find(mustParse(t, `{"x": 1, "y": 2}`), recs); !found {
		t.Error("Find() = not found, want stored inputs compared as the first argument")
	}
}

func TestMatcher_CustomTolerance(t *testing.T) {
	recs := records(t, `[1.0]`, `"one"`)
	input := mustParse(t, `[1.05]`)

	if _, found := NewMatcher(0).Find(input, recs); found {
		t.Error("default tolerance matched 1.0 with 1.05")
	}
	if _, found := NewMatcher(0.1).Find(input, recs); !found {
		t.Error("tolerance 0.1 did not match 1.0 with 1.05")
	}
}

func TestMatcher_Closest(t *testing.T) {
	recs := records(t,
		`[1, 2, 3]`, `"seq"`,
		`{"x": 1, "y": 2}`, `"xy"`,
		`{"x": 1, "y": 3, "z": 4}`, `"xyz"`,
		`{"x": 9}`, `"x"`,
	)

	tests := []struct {
		name  string
		input string
		want  int
	}{
		{"mapping with most equal entries", `{"x": 1, "y": 3}`, 2},
		{"ties go to the earlier record", `{"x": 1}`, 1},
		{"sequence", `[1, 2, 4]`, 0},
		{"no record of the same kind", `"text"`, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := (Matcher{}).Closest(mustParse(t, tt.input), recs); got != tt.want {
				t.Errorf("Closest(%s) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}
