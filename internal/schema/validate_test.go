package schema

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func readFixtureConfig(t *testing.T, name string) []byte {
	t.Helper()
	path := filepath.Join("..", "..", "test", "fixtures", name, ".casemock", "config.json")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	return data
}

func TestSchemaValidConfig(t *testing.T) {
	validFixtures := []string{
		"minimal",
		"yaml",
		"tolerant",
		// Catalog problems are not visible to the config schema.
		"invalid/malformed-catalog",
		"invalid/missing-catalog",
	}

	for _, name := range validFixtures {
		t.Run(name, func(t *testing.T) {
			if err := ValidateConfig(readFixtureConfig(t, name)); err != nil {
				t.Errorf("expected valid config, got error: %v", err)
			}
		})
	}
}

func TestSchemaInvalidConfigFixtures(t *testing.T) {
	tests := []struct {
		name    string
		wantMsg string
	}{
		{"invalid/malformed-json", "invalid JSON"},
		{"invalid/bad-tolerance", "config validation failed"},
		{"invalid/bad-format", "config validation failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateConfig(readFixtureConfig(t, tt.name))
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error = %v, want to contain %q", err, tt.wantMsg)
			}
		})
	}
}

func TestValidateConfig_Inline(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"empty object", `{}`, false},
		{"unknown fields allowed", `{"extra": true, "log": {"colour": 1}}`, false},
		{"full", `{"catalog": "c.json", "format": "yml", "tolerance": 1e-9, "log": {"level": "debug", "pretty": true}, "batch": {"concurrency": 16}}`, false},
		{"empty input", ``, true},
		{"not an object", `[]`, true},
		{"zero tolerance", `{"tolerance": 0}`, true},
		{"string tolerance", `{"tolerance": "1e-6"}`, true},
		{"empty catalog", `{"catalog": ""}`, true},
		{"unknown level", `{"log": {"level": "loud"}}`, true},
		{"fractional concurrency", `{"batch": {"concurrency": 1.5}}`, true},
		{"negative concurrency", `{"batch": {"concurrency": -1}}`, true},
		{"bad project name", `{"project": {"name": "Bad Name"}}`, true},
		{"trailing data", `{} {}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateConfig([]byte(tt.input))
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateConfig(%s) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
