// Package mock provides the case-lookup service: given a live input it
// returns the expected output of the first recorded case whose inputs match.
package mock

import (
	"context"
	"runtime"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/AndreyAkinshin/casemock/internal/catalog"
	"github.com/AndreyAkinshin/casemock/internal/errors"
	"github.com/AndreyAkinshin/casemock/internal/log"
	"github.com/AndreyAkinshin/casemock/internal/match"
	"github.com/AndreyAkinshin/casemock/internal/value"
)

// Result is the outcome of one lookup. When Found is false Expected is Null
// and Index is -1.
type Result struct {
	Expected value.Value
	Index    int
	Found    bool
}

// NotFound is the empty result.
func NotFound() Result {
	return Result{Index: -1}
}

// Mock answers lookups against the catalog its loader provides. It holds no
// mutable state and is safe for concurrent use.
type Mock struct {
	loader  catalog.Loader
	matcher match.Matcher
	logger  zerolog.Logger
}

// Option configures a Mock.
type Option func(*Mock)

// WithTolerance sets the numeric tolerance. Non-positive or non-finite
// values select match.DefaultTolerance.
func WithTolerance(eps float64) Option {
	return func(m *Mock) {
		m.matcher = match.NewMatcher(eps)
	}
}

// WithLogger replaces the component logger.
func WithLogger(l zerolog.Logger) Option {
	return func(m *Mock) {
		m.logger = l
	}
}

// New creates a Mock reading cases through loader.
func New(loader catalog.Loader, opts ...Option) *Mock {
	m := &Mock{
		loader: loader,
		logger: log.WithComponent("mock"),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Tolerance returns the tolerance in effect.
func (m *Mock) Tolerance() float64 {
	return m.matcher.Epsilon()
}

// Load reads the catalog once through the configured loader.
func (m *Mock) Load(ctx context.Context) (*catalog.Catalog, error) {
	if m.loader == nil {
		return nil, errors.CatalogUnavailable("", errors.New("no catalog loader configured"))
	}
	cat, err := m.loader.Load(ctx)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		cat = &catalog.Catalog{}
	}
	m.logger.Debug().
		Str(log.FieldCatalog, cat.Source).
		Int(log.FieldRecords, cat.Len()).
		Msg("catalog loaded")
	return cat, nil
}

// Lookup loads the catalog and returns the expected output of the first
// record whose inputs match input. The catalog is read on every call.
// A missing match is not an error; a loader failure is wrapped in
// LookupFailed.
func (m *Mock) Lookup(ctx context.Context, input value.Value) (Result, error) {
	cat, err := m.Load(ctx)
	if err != nil {
		m.logger.Debug().Err(err).Msg("lookup failed")
		return NotFound(), errors.LookupFailed(err)
	}
	res := m.search(cat, input)
	m.logger.Debug().
		Str(log.FieldInputs, input.Kind().String()).
		Float64(log.FieldTolerance, m.matcher.Epsilon()).
		Bool(log.FieldFound, res.Found).
		Int(log.FieldIndex, res.Index).
		Msg("lookup")
	return res, nil
}

// Search scans cat for input without loading anything.
func Search(cat *catalog.Catalog, input value.Value, tolerance float64) Result {
	return searchWith(match.NewMatcher(tolerance), cat, input)
}

func (m *Mock) search(cat *catalog.Catalog, input value.Value) Result {
	return searchWith(m.matcher, cat, input)
}

func searchWith(matcher match.Matcher, cat *catalog.Catalog, input value.Value) Result {
	if cat == nil {
		return NotFound()
	}
	idx, ok := matcher.Find(input, cat.Records)
	if !ok {
		return NotFound()
	}
	return Result{Expected: cat.Records[idx].Expected, Index: idx, Found: true}
}

// LookupAll performs an independent Lookup for every input, running up to
// concurrency lookups at once (GOMAXPROCS when concurrency <= 0). Results
// are in input order. The first failure cancels outstanding lookups and is
// returned.
func (m *Mock) LookupAll(ctx context.Context, inputs []value.Value, concurrency int) ([]Result, error) {
	if concurrency <= 0 {
		concurrency = runtime.GOMAXPROCS(0)
	}

	results := make([]Result, len(inputs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, input := range inputs {
		g.Go(func() error {
			res, err := m.Lookup(gctx, input)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
