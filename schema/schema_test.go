package schema

import (
	"encoding/json"
	"io/fs"
	"strings"
	"testing"
)

// TestEmbeddedSchemasAreValidJSON verifies that all embedded schema files are valid JSON.
func TestEmbeddedSchemasAreValidJSON(t *testing.T) {
	t.Parallel()

	entries, err := fs.ReadDir(FS, ".")
	if err != nil {
		t.Fatalf("failed to read embedded FS: %v", err)
	}

	schemaCount := 0
	for _, entry := range entries {
		if !strings.HasSuffix(entry.Name(), ".schema.json") {
			continue
		}
		schemaCount++

		t.Run(entry.Name(), func(t *testing.T) {
			t.Parallel()

			data, err := FS.ReadFile(entry.Name())
			if err != nil {
				t.Fatalf("failed to read %s: %v", entry.Name(), err)
			}

			var schema map[string]any
			if err := json.Unmarshal(data, &schema); err != nil {
				t.Fatalf("%s is not a JSON object: %v", entry.Name(), err)
			}
			for _, field := range []string{"$schema", "type", "properties"} {
				if _, ok := schema[field]; !ok {
					t.Errorf("%s missing %s field", entry.Name(), field)
				}
			}
		})
	}

	if schemaCount == 0 {
		t.Error("no schema files found in embedded FS")
	}
}

// TestConfigSchemaCoversConfigFields keeps the schema in step with the
// top-level config fields.
func TestConfigSchemaCoversConfigFields(t *testing.T) {
	t.Parallel()

	data, err := FS.ReadFile("config.schema.json")
	if err != nil {
		t.Fatalf("config schema not embedded: %v", err)
	}

	var schema struct {
		Properties map[string]json.RawMessage `json:"properties"`
	}
	if err := json.Unmarshal(data, &schema); err != nil {
		t.Fatal(err)
	}

	for _, field := range []string{"$schema", "project", "catalog", "format", "tolerance", "log", "batch"} {
		if _, ok := schema.Properties[field]; !ok {
			t.Errorf("config schema missing property %q", field)
		}
	}
}
