package catalog

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"github.com/AndreyAkinshin/casemock/internal/errors"
	"github.com/AndreyAkinshin/casemock/internal/value"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Decode parses serialized catalog content. name identifies the source in
// error messages and, with FormatAuto, selects the format by extension.
//
// Decoding is all-or-nothing: any problem yields a CatalogMalformed error and
// no records. Record fields other than Inputs and Expected are ignored.
func Decode(name string, data []byte, format Format) (*Catalog, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if !utf8.Valid(data) {
		return nil, errors.CatalogMalformed(name, fmt.Errorf("content is not valid UTF-8"))
	}

	var (
		root value.Value
		err  error
	)
	switch format.Resolve(name) {
	case FormatYAML:
		root, err = value.ParseYAML(data)
	default:
		root, err = value.ParseJSON(data)
	}
	if err != nil {
		return nil, errors.CatalogMalformed(name, err)
	}

	records, err := recordsFrom(root)
	if err != nil {
		return nil, errors.CatalogMalformed(name, err)
	}

	return &Catalog{Source: name, Records: records}, nil
}

func recordsFrom(root value.Value) ([]Record, error) {
	if root.Kind() != value.KindSequence {
		return nil, fmt.Errorf("top-level value must be an array of records, got %s", root.Kind())
	}

	records := make([]Record, 0, root.Len())
	for i, item := range root.Elements() {
		if item.Kind() != value.KindMapping {
			return nil, fmt.Errorf("record %d: must be an object, got %s", i, item.Kind())
		}
		inputs, ok := item.Get(FieldInputs)
		if !ok {
			return nil, fmt.Errorf("record %d: missing required field %q", i, FieldInputs)
		}
		expected, ok := item.Get(FieldExpected)
		if !ok {
			return nil, fmt.Errorf("record %d: missing required field %q", i, FieldExpected)
		}
		records = append(records, Record{Inputs: inputs, Expected: expected})
	}
	return records, nil
}
