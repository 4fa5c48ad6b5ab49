package mockhelper

import (
	"fmt"
	"testing"
)

// Run: go test -bench=. -benchmem ./pkg/mockhelper

func BenchmarkEqual_Float(b *testing.B) {
	for b.Loop() {
		Equal(3.14159265358979, 3.14159265358980, DefaultTolerance)
	}
}

func BenchmarkEqual_NestedMap(b *testing.B) {
	a := map[string]any{"x": 1.0, "y": []any{1.0, 2.0, map[string]any{"z": "text"}}}
	c := map[string]any{"y": []any{1.0, 2.0000001, map[string]any{"z": "text"}}, "x": 1.0}

	for b.Loop() {
		Equal(a, c, DefaultTolerance)
	}
}

func BenchmarkLookupData_LastRecord(b *testing.B) {
	for _, n := range []int{10, 1000} {
		data := []byte("[")
		for i := 0; i < n; i++ {
			if i > 0 {
				data = append(data, ',')
			}
			data = fmt.Appendf(data, `{"Inputs": {"i": %d}, "Expected": %d}`, i, i*i)
		}
		data = append(data, ']')
		input := map[string]any{"i": n - 1}

		b.Run(fmt.Sprintf("records=%d", n), func(b *testing.B) {
			for b.Loop() {
				if _, found, err := LookupData("bench.json", data, input, Options{}); err != nil || !found {
					b.Fatalf("LookupData() = %v, %v", found, err)
				}
			}
		})
	}
}
