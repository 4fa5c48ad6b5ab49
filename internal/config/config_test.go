package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/AndreyAkinshin/casemock/internal/match"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func ptr[T any](v T) *T { return &v }

func TestLoadAndValidate_ValidFull(t *testing.T) {
	t.Parallel()
	path := writeConfig(t, `{
		"$schema": "../schema/config.schema.json",
		"project": {"name": "pricing-mock", "description": "Recorded pricing cases"},
		"catalog": "fixtures/cases.yaml",
		"format": "yaml",
		"tolerance": 0.001,
		"log": {"level": "debug", "pretty": true},
		"batch": {"concurrency": 8}
	}`)

	cfg, warnings, err := LoadAndValidate(path)
	if err != nil {
		t.Fatalf("LoadAndValidate() error = %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}

	want := &Config{
		Project:   &ProjectConfig{Name: "pricing-mock", Description: "Recorded pricing cases"},
		Catalog:   "fixtures/cases.yaml",
		Format:    "yaml",
		Tolerance: ptr(0.001),
		Log:       &LogConfig{Level: "debug", Pretty: true},
		Batch:     &BatchConfig{Concurrency: 8},
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("LoadAndValidate() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadAndValidate_FileNotFoundMessage(t *testing.T) {
	t.Parallel()
	_, _, err := LoadAndValidate("/nonexistent/path/config.json")
	if err == nil {
		t.Fatal("LoadAndValidate() expected error for missing file")
	}
	errMsg := err.Error()
	if !strings.Contains(errMsg, "nonexistent") && !strings.Contains(errMsg, "no such file") {
		t.Errorf("error = %q, want to contain file path or 'no such file'", errMsg)
	}
}

func TestLoadAndValidate_InvalidJSON(t *testing.T) {
	t.Parallel()
	if _, _, err := LoadAndValidate(writeConfig(t, "{invalid}")); err == nil {
		t.Fatal("LoadAndValidate() expected error for invalid JSON")
	}
}

func TestLoadAndValidate_AppliesDefaults(t *testing.T) {
	t.Parallel()
	cfg, _, err := LoadAndValidate(writeConfig(t, `{}`))
	if err != nil {
		t.Fatalf("LoadAndValidate() error = %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Errorf("defaults mismatch (-want +got):\n%s", diff)
	}
	if cfg.Catalog != DefaultCatalog {
		t.Errorf("Catalog = %q, want %q", cfg.Catalog, DefaultCatalog)
	}
	if cfg.ToleranceValue() != DefaultTolerance {
		t.Errorf("Tolerance = %v, want %v", cfg.ToleranceValue(), DefaultTolerance)
	}
	if cfg.Log.Level != DefaultLogLevel {
		t.Errorf("Log.Level = %q, want %q", cfg.Log.Level, DefaultLogLevel)
	}
	if cfg.Batch.Concurrency != DefaultConcurrency {
		t.Errorf("Batch.Concurrency = %d, want %d", cfg.Batch.Concurrency, DefaultConcurrency)
	}
}

func TestLoadAndValidate_KeepsExplicitValues(t *testing.T) {
	t.Parallel()
	cfg, _, err := LoadAndValidate(writeConfig(t, `{"catalog": "x.json", "tolerance": 0.5, "log": {"pretty": true}}`))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Catalog != "x.json" || cfg.ToleranceValue() != 0.5 {
		t.Errorf("explicit values overwritten: %+v", cfg)
	}
	if !cfg.Log.Pretty || cfg.Log.Level != DefaultLogLevel {
		t.Errorf("Log = %+v, want pretty with default level", cfg.Log)
	}
}

func TestToleranceValue(t *testing.T) {
	t.Parallel()
	if got := (&Config{}).ToleranceValue(); got != DefaultTolerance {
		t.Errorf("unset ToleranceValue() = %v, want %v", got, DefaultTolerance)
	}
	if got := (&Config{Tolerance: ptr(0.25)}).ToleranceValue(); got != 0.25 {
		t.Errorf("ToleranceValue() = %v, want 0.25", got)
	}
}

func TestLoadAndValidate(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name         string
		content      string
		wantErrField string
		wantWarning  string
	}{
		{name: "empty config", content: `{}`},
		{name: "unknown field warns", content: `{"catalgo": "x.json"}`, wantWarning: `"catalgo"`},
		{name: "negative tolerance", content: `{"tolerance": -1}`, wantErrField: "tolerance"},
		{name: "explicit zero tolerance", content: `{"tolerance": 0}`, wantErrField: "tolerance"},
		{name: "bad format", content: `{"format": "toml"}`, wantErrField: "format"},
		{name: "blank catalog", content: `{"catalog": "   "}`, wantErrField: "catalog"},
		{name: "bad level", content: `{"log": {"level": "loud"}}`, wantErrField: "log.level"},
		{name: "negative concurrency", content: `{"batch": {"concurrency": -2}}`, wantErrField: "batch.concurrency"},
		{name: "bad project name", content: `{"project": {"name": "My Mock"}}`, wantErrField: "project.name"},
		{name: "format override warns", content: `{"catalog": "cases.json", "format": "yaml"}`, wantWarning: "overrides"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg, warnings, err := LoadAndValidate(writeConfig(t, tt.content))

			if tt.wantErrField != "" {
				ve, ok := err.(*ValidationError)
				if !ok {
					t.Fatalf("LoadAndValidate() error = %v, want *ValidationError", err)
				}
				if ve.Field != tt.wantErrField {
					t.Errorf("Field = %q, want %q", ve.Field, tt.wantErrField)
				}
				if cfg != nil {
					t.Error("config returned alongside validation error")
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadAndValidate() error = %v", err)
			}
			if tt.wantWarning == "" && len(warnings) != 0 {
				t.Errorf("unexpected warnings: %v", warnings)
			}
			if tt.wantWarning != "" && !strings.Contains(strings.Join(warnings, "\n"), tt.wantWarning) {
				t.Errorf("warnings = %v, want one containing %s", warnings, tt.wantWarning)
			}
		})
	}
}

func TestLoadAndValidate_FileNotFound(t *testing.T) {
	t.Parallel()
	if _, _, err := LoadAndValidate(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatal("LoadAndValidate() expected error for missing file")
	}
}

func TestDefaultTolerance_AgreesWithMatcher(t *testing.T) {
	t.Parallel()
	if got, want := Default().ToleranceValue(), match.NewMatcher(0).Epsilon(); got != want {
		t.Errorf("default config tolerance = %v, matcher fallback = %v", got, want)
	}
}
