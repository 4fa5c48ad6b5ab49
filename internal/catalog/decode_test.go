package catalog

import (
	stderrors "errors"
	"strings"
	"testing"

	"github.com/AndreyAkinshin/casemock/internal/errors"
	"github.com/AndreyAkinshin/casemock/internal/value"
)

func TestDecode_Malformed(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantMsg string
	}{
		{"empty content", "", "empty JSON document"},
		{"not json", "hello", "invalid character"},
		{"top-level object", `{"Inputs": 1, "Expected": 2}`, "top-level value must be an array"},
		{"top-level number", `3`, "top-level value must be an array"},
		{"record not object", `[1, 2]`, "record 0: must be an object"},
		{"missing inputs", `[{"Expected": 2}]`, `record 0: missing required field "Inputs"`},
		{"missing expected", `[{"Inputs": 1}, {"Inputs": 2}]`, `record 0: missing required field "Expected"`},
		{"second record bad", `[{"Inputs": 1, "Expected": 2}, null]`, "record 1: must be an object"},
		{"lowercase field names", `[{"inputs": 1, "expected": 2}]`, `missing required field "Inputs"`},
		{"trailing data", `[] []`, "unexpected data"},
		{"invalid utf8", "[\"\xff\"]", "not valid UTF-8"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cat, err := Decode("cases.json", []byte(tt.content), FormatAuto)
			if err == nil {
				t.Fatalf("Decode() expected error, got %d records", cat.Len())
			}
			if cat != nil {
				t.Error("Decode() returned records alongside an error")
			}
			if !stderrors.Is(err, errors.ErrCatalogMalformed) {
				t.Errorf("Decode() error = %v, want ErrCatalogMalformed", err)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("Decode() error = %q, want to contain %q", err.Error(), tt.wantMsg)
			}
			if !strings.HasPrefix(err.Error(), "cases.json: ") {
				t.Errorf("Decode() error = %q, want source name prefix", err.Error())
			}
		})
	}
}

func TestDecode_IgnoresExtraFieldsAndFieldOrder(t *testing.T) {
	content := `[{"Expected": [1, 2], "Comment": "ignored", "Inputs": {"a": true}}]`

	cat, err := Decode("cases.json", []byte(content), FormatJSON)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if cat.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", cat.Len())
	}
	if got := cat.Records[0].Inputs.String(); got != `{"a":true}` {
		t.Errorf("Inputs = %s", got)
	}
	if got := cat.Records[0].Expected.String(); got != `[1,2]` {
		t.Errorf("Expected = %s", got)
	}
}

func TestDecode_NullFieldsArePresent(t *testing.T) {
	cat, err := Decode("cases.json", []byte(`[{"Inputs": null, "Expected": null}]`), FormatJSON)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if !cat.Records[0].Inputs.IsNull() || !cat.Records[0].Expected.IsNull() {
		t.Errorf("record = %v, want null fields", cat.Records[0])
	}
}

func TestDecode_SkipsBOM(t *testing.T) {
	content := "\xEF\xBB\xBF" + `[{"Inputs": 1, "Expected": 2}]`
	cat, err := Decode("bom.json", []byte(content), FormatAuto)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if cat.Len() != 1 {
		t.Errorf("Len() = %d, want 1", cat.Len())
	}
}

func TestDecode_ExplicitFormatOverridesExtension(t *testing.T) {
	yamlContent := "- Inputs: 1\n  Expected: 2\n"

	if _, err := Decode("cases.json", []byte(yamlContent), FormatYAML); err != nil {
		t.Errorf("Decode(FormatYAML) error = %v", err)
	}
	if _, err := Decode("cases.yaml", []byte(yamlContent), FormatJSON); err == nil {
		t.Error("Decode(FormatJSON) of YAML content expected error")
	}
}

func TestDecode_YAMLMalformed(t *testing.T) {
	tests := []string{
		"Inputs: 1\nExpected: 2\n",
		"- [1, 2]\n",
		"- Inputs: [1\n",
	}
	for _, content := range tests {
		_, err := Decode("cases.yaml", []byte(content), FormatAuto)
		if !stderrors.Is(err, errors.ErrCatalogMalformed) {
			t.Errorf("Decode(%q) error = %v, want ErrCatalogMalformed", content, err)
		}
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input string
		want  Format
		ok    bool
	}{
		{"", FormatAuto, true},
		{"auto", FormatAuto, true},
		{"JSON", FormatJSON, true},
		{"yaml", FormatYAML, true},
		{"yml", FormatYAML, true},
		{"toml", "", false},
	}

	for _, tt := range tests {
		got, ok := ParseFormat(tt.input)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseFormat(%q) = %q, %v; want %q, %v", tt.input, got, ok, tt.want, tt.ok)
		}
	}
}

func TestFormat_Resolve(t *testing.T) {
	tests := []struct {
		format Format
		name   string
		want   Format
	}{
		{FormatAuto, "a.json", FormatJSON},
		{FormatAuto, "a.YAML", FormatYAML},
		{FormatAuto, "a.yml", FormatYAML},
		{FormatAuto, "no-extension", FormatJSON},
		{"", "a.yml", FormatYAML},
		{FormatJSON, "a.yaml", FormatJSON},
		{FormatYAML, "a.json", FormatYAML},
	}

	for _, tt := range tests {
		if got := tt.format.Resolve(tt.name); got != tt.want {
			t.Errorf("%q.Resolve(%q) = %q, want %q", tt.format, tt.name, got, tt.want)
		}
	}
}

func TestCatalog_Summary(t *testing.T) {
	cat := &Catalog{Records: []Record{
		{Inputs: value.Mapping()},
		{Inputs: value.Mapping()},
		{Inputs: value.Number(1)},
	}}

	counts := cat.Summary()
	if counts[value.KindMapping] != 2 || counts[value.KindNumber] != 1 {
		t.Errorf("Summary() = %v", counts)
	}

	var nilCat *Catalog
	if len(nilCat.Summary()) != 0 || nilCat.Len() != 0 {
		t.Error("nil catalog should summarize as empty")
	}
}
