// Package mockhelper provides a small Go API over casemock for test code:
// replay a recorded catalog as a mock, or compare values with the same
// tolerant equality the mock uses.
//
// Example usage in a Go test:
//
//	func TestPricing(t *testing.T) {
//	    root, err := mockhelper.FindProjectRoot()
//	    if err != nil {
//	        t.Fatal(err)
//	    }
//	    path, err := mockhelper.CatalogPath(root)
//	    if err != nil {
//	        t.Fatal(err)
//	    }
//
//	    got, found, err := mockhelper.Lookup(path, map[string]any{"sku": "A-100", "qty": 2})
//	    if err != nil {
//	        t.Fatal(err)
//	    }
//	    if !found {
//	        t.Fatal("no recorded case")
//	    }
//	    _ = got
//	}
package mockhelper

import (
	"context"
	"fmt"

	"github.com/AndreyAkinshin/casemock/internal/catalog"
	"github.com/AndreyAkinshin/casemock/internal/errors"
	"github.com/AndreyAkinshin/casemock/internal/match"
	"github.com/AndreyAkinshin/casemock/internal/mock"
	"github.com/AndreyAkinshin/casemock/internal/value"
)

// Sentinel errors, for use with errors.Is.
var (
	ErrCatalogUnavailable = errors.ErrCatalogUnavailable
	ErrCatalogMalformed   = errors.ErrCatalogMalformed
	ErrLookupFailed       = errors.ErrLookupFailed
)

// DefaultTolerance is the absolute numeric tolerance used when none is set.
const DefaultTolerance = match.DefaultTolerance

// Options configures a lookup.
type Options struct {
	// Tolerance is the absolute numeric tolerance. Values that are not
	// finite and positive fall back to DefaultTolerance.
	Tolerance float64

	// Format is the catalog format: "auto" (by file extension), "json",
	// "yaml" or "yml". Empty means auto.
	Format string
}

// DefaultOptions returns the default lookup options.
func DefaultOptions() Options {
	return Options{Tolerance: DefaultTolerance, Format: string(catalog.FormatAuto)}
}

// Case is one recorded case converted to plain Go values (nil, bool,
// float64, string, []any and map[string]any).
type Case struct {
	Inputs   any
	Expected any
}

// Lookup loads the catalog at path and returns the Expected value of the
// first case whose Inputs equal input. found is false when no case matches;
// that is not an error.
func Lookup(path string, input any) (expected any, found bool, err error) {
	return LookupWithOptions(path, input, DefaultOptions())
}

// LookupWithOptions is Lookup with an explicit tolerance and format.
func LookupWithOptions(path string, input any, opts Options) (any, bool, error) {
	format, ok := catalog.ParseFormat(opts.Format)
	if !ok {
		return nil, false, fmt.Errorf("mockhelper: unknown catalog format %q", opts.Format)
	}
	return lookup(catalog.NewFileLoader(path, format), input, opts.Tolerance)
}

// LookupData is Lookup over an in-memory catalog. name is used in errors
// and, with the auto format, to pick the decoder by extension.
func LookupData(name string, data []byte, input any, opts Options) (any, bool, error) {
	format, ok := catalog.ParseFormat(opts.Format)
	if !ok {
		return nil, false, fmt.Errorf("mockhelper: unknown catalog format %q", opts.Format)
	}
	return lookup(&catalog.BytesLoader{Name: name, Data: data, Format: format}, input, opts.Tolerance)
}

func lookup(loader catalog.Loader, input any, tolerance float64) (any, bool, error) {
	v, err := value.FromAny(input)
	if err != nil {
		return nil, false, fmt.Errorf("mockhelper: input: %w", err)
	}

	res, err := mock.New(loader, mock.WithTolerance(tolerance)).Lookup(context.Background(), v)
	if err != nil {
		return nil, false, err
	}
	if !res.Found {
		return nil, false, nil
	}
	return res.Expected.Any(), true, nil
}

// Equal reports whether a and b are equal under the mock's matching rules:
// numbers within tolerance, strings, booleans and null exactly, sequences
// element-wise, mappings by entry count and keys of a. Values that cannot be
// represented (channels, functions, non-string map keys) are never equal.
func Equal(a, b any, tolerance float64) bool {
	va, err := value.FromAny(a)
	if err != nil {
		return false
	}
	vb, err := value.FromAny(b)
	if err != nil {
		return false
	}
	return match.Equal(va, vb, match.NewMatcher(tolerance).Epsilon())
}

// LoadCases loads every recorded case from the catalog at path, in order.
func LoadCases(path string) ([]Case, error) {
	cat, err := catalog.NewFileLoader(path, catalog.FormatAuto).Load(context.Background())
	if err != nil {
		return nil, err
	}

	cases := make([]Case, len(cat.Records))
	for i, r := range cat.Records {
		cases[i] = Case{Inputs: r.Inputs.Any(), Expected: r.Expected.Any()}
	}
	return cases, nil
}
