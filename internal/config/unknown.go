package config

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strings"
)

// LoadWithWarnings parses config data and returns any unknown field warnings.
func LoadWithWarnings(path string, data []byte) (*Config, []string, error) {
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &cfg, detectUnknownFields(data), nil
}

// nestedSections maps object-valued top-level fields to their struct types.
var nestedSections = map[string]reflect.Type{
	"project": reflect.TypeOf(ProjectConfig{}),
	"log":     reflect.TypeOf(LogConfig{}),
	"batch":   reflect.TypeOf(BatchConfig{}),
}

// detectUnknownFields compares raw JSON with known struct fields.
// It runs after a successful Config parse, so a re-parse failure indicates
// an internal inconsistency.
func detectUnknownFields(data []byte) []string {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return []string{"internal: failed to re-parse config for unknown field detection"}
	}

	var warnings []string
	knownTopLevel := getJSONFields(reflect.TypeOf(Config{}))
	for _, key := range sortedKeys(raw) {
		if key == "$schema" {
			continue // $schema is explicitly allowed and ignored
		}
		if !knownTopLevel[key] {
			warnings = append(warnings, fmt.Sprintf("unknown field %q at root level (ignored)", key))
			continue
		}
		if typ, ok := nestedSections[key]; ok {
			warnings = append(warnings, checkSectionUnknownFields(key, raw[key], typ)...)
		}
	}

	return warnings
}

func checkSectionUnknownFields(section string, data json.RawMessage, typ reflect.Type) []string {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil // null section
	}

	var warnings []string
	known := getJSONFields(typ)
	for _, key := range sortedKeys(fields) {
		if !known[key] {
			warnings = append(warnings, fmt.Sprintf("unknown field %q in %s (ignored)", key, section))
		}
	}
	return warnings
}

func sortedKeys(m map[string]json.RawMessage) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// getJSONFields returns a map of known JSON field names for a struct type.
func getJSONFields(t reflect.Type) map[string]bool {
	fields := make(map[string]bool)
	for i := 0; i < t.NumField(); i++ {
		tag := t.Field(i).Tag.Get("json")
		if tag == "" || tag == "-" {
			continue
		}
		if name := strings.Split(tag, ",")[0]; name != "" {
			fields[name] = true
		}
	}
	return fields
}
