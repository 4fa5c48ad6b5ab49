// Package integration contains integration tests for casemock.
package integration

import (
	"context"
	"path/filepath"
	"runtime"
	"sync"
	"testing"

	"github.com/AndreyAkinshin/casemock/internal/mock"
	"github.com/AndreyAkinshin/casemock/internal/project"
	"github.com/AndreyAkinshin/casemock/internal/value"
)

var (
	fixturesDirOnce sync.Once
	fixturesDirPath string
)

// fixturesDir returns the path to the test fixtures directory.
// The result is cached since runtime.Caller is relatively expensive.
func fixturesDir() string {
	fixturesDirOnce.Do(func() {
		_, filename, _, _ := runtime.Caller(0)
		fixturesDirPath = filepath.Join(filepath.Dir(filename), "..", "fixtures")
	})
	return fixturesDirPath
}

func loadMock(t *testing.T, fixture string) *mock.Mock {
	t.Helper()
	proj, err := project.LoadProjectFrom(filepath.Join(fixturesDir(), fixture))
	if err != nil {
		t.Fatalf("failed to load %s project: %v", fixture, err)
	}
	loader, err := proj.Loader()
	if err != nil {
		t.Fatalf("failed to build loader: %v", err)
	}
	return mock.New(loader, mock.WithTolerance(proj.Config.ToleranceValue()))
}

func mustJSON(t *testing.T, s string) value.Value {
	t.Helper()
	v, err := value.ParseJSON([]byte(s))
	if err != nil {
		t.Fatalf("ParseJSON(%q): %v", s, err)
	}
	return v
}

func TestMinimalProject(t *testing.T) {
	t.Parallel()
	fixtureDir := filepath.Join(fixturesDir(), "minimal")

	proj, err := project.LoadProjectFrom(fixtureDir)
	if err != nil {
		t.Fatalf("failed to load minimal project: %v", err)
	}

	if proj.Config.Catalog != "test_cases/test_cases.json" {
		t.Errorf("expected default catalog, got %q", proj.Config.Catalog)
	}
	if proj.Config.ToleranceValue() != 1e-6 {
		t.Errorf("expected default tolerance 1e-6, got %v", proj.Config.ToleranceValue())
	}
	if len(proj.Warnings) != 0 {
		t.Errorf("expected no warnings, got %v", proj.Warnings)
	}
}

// The worked example: a catalog with two records and three lookups.
func TestEndToEndExample(t *testing.T) {
	t.Parallel()
	m := loadMock(t, "minimal")

	tests := []struct {
		input     string
		wantFound bool
		want      string
	}{
		{`{"x": 1, "y": [1, 2]}`, true, `3`},
		{`{"x": 1.0000001, "y": [1, 2]}`, true, `3`},
		{`{"x": 2}`, false, ``},
	}

	for _, tt := range tests {
		res, err := m.Lookup(context.Background(), mustJSON(t, tt.input))
		if err != nil {
			t.Fatalf("Lookup(%s) error = %v", tt.input, err)
		}
		if res.Found != tt.wantFound {
			t.Errorf("Lookup(%s) found = %v, want %v", tt.input, res.Found, tt.wantFound)
			continue
		}
		if tt.wantFound && res.Expected.String() != tt.want {
			t.Errorf("Lookup(%s) = %s, want %s", tt.input, res.Expected, tt.want)
		}
	}
}

func TestYAMLProject(t *testing.T) {
	t.Parallel()
	m := loadMock(t, "yaml")

	res, err := m.Lookup(context.Background(), mustJSON(t, `{"sku": "B-200", "qty": 1}`))
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}
	if !res.Found || res.Index != 1 {
		t.Fatalf("Lookup() = %+v, want record 1", res)
	}
	if total, _ := res.Expected.Get("total"); total.String() != "5.5" {
		t.Errorf("total = %s, want 5.5", total)
	}
}

func TestTolerantProject(t *testing.T) {
	t.Parallel()
	m := loadMock(t, "tolerant")

	if m.Tolerance() != 0.01 {
		t.Fatalf("Tolerance() = %v, want 0.01", m.Tolerance())
	}
	inputs := []value.Value{
		mustJSON(t, `{"celsius": 36.605}`),
		mustJSON(t, `{"celsius": 99.995}`),
		mustJSON(t, `{"celsius": 37}`),
	}
	results, err := m.LookupAll(context.Background(), inputs, 2)
	if err != nil {
		t.Fatalf("LookupAll() error = %v", err)
	}

	want := []int{0, 1, -1}
	for i, r := range results {
		if r.Index != want[i] {
			t.Errorf("results[%d].Index = %d, want %d", i, r.Index, want[i])
		}
	}
}

func TestDiscoverFixtureCatalogs(t *testing.T) {
	t.Parallel()

	found, err := project.DiscoverCatalogs(fixturesDir(), 3)
	if err != nil {
		t.Fatalf("DiscoverCatalogs() error = %v", err)
	}
	want := filepath.Join("minimal", "test_cases", "test_cases.json")
	if len(found) != 1 || found[0] != want {
		t.Errorf("DiscoverCatalogs() = %v, want [%s]", found, want)
	}
}
