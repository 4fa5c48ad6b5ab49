// Package catalog loads recorded cases from persistent storage.
//
// A catalog is an ordered sequence of records, each pairing a recorded input
// with the output that was expected for it. Catalogs are stored as JSON (or
// YAML) arrays of objects with "Inputs" and "Expected" fields:
//
//	[
//	  {"Inputs": {"x": 1, "y": [1, 2]}, "Expected": 3},
//	  {"Inputs": {"x": 5}, "Expected": 5}
//	]
package catalog

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/AndreyAkinshin/casemock/internal/value"
)

// Field names of a record on the wire.
const (
	FieldInputs   = "Inputs"
	FieldExpected = "Expected"
)

// Record is one recorded (input, expected output) pair.
type Record struct {
	Inputs   value.Value
	Expected value.Value
}

// Catalog is the ordered collection of records loaded from one source.
type Catalog struct {
	Source  string
	Records []Record
}

// Len returns the number of records.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.Records)
}

// Loader obtains a catalog from storage. Implementations must not cache:
// every call reads the source again.
type Loader interface {
	Load(ctx context.Context) (*Catalog, error)
}

// Format selects the serialization of a catalog.
type Format string

const (
	FormatAuto Format = "auto"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ValidFormats returns the accepted format names.
func ValidFormats() []string {
	return []string{string(FormatAuto), string(FormatJSON), string(FormatYAML)}
}

// ParseFormat converts a string into a Format. The empty string means auto.
func ParseFormat(s string) (Format, bool) {
	switch Format(strings.ToLower(s)) {
	case "", FormatAuto:
		return FormatAuto, true
	case FormatJSON:
		return FormatJSON, true
	case FormatYAML, "yml":
		return FormatYAML, true
	}
	return "", false
}

// Resolve returns the concrete format for a source name. Auto picks YAML for
// .yaml and .yml extensions and JSON for everything else.
func (f Format) Resolve(name string) Format {
	if f != FormatAuto && f != "" {
		return f
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// String implements fmt.Stringer.
func (f Format) String() string {
	if f == "" {
		return string(FormatAuto)
	}
	return string(f)
}

// Summary counts records by the kind of their recorded input.
func (c *Catalog) Summary() map[value.Kind]int {
	counts := make(map[value.Kind]int)
	if c == nil {
		return counts
	}
	for _, r := range c.Records {
		counts[r.Inputs.Kind()]++
	}
	return counts
}

func (r Record) String() string {
	return fmt.Sprintf("%s -> %s", r.Inputs, r.Expected)
}
