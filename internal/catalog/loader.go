package catalog

import (
	"context"
	"fmt"
	"io/fs"
	"os"

	"github.com/AndreyAkinshin/casemock/internal/errors"
)

// FileLoader reads a catalog file from disk on every Load.
type FileLoader struct {
	Path   string
	Format Format
}

// NewFileLoader returns a loader for the catalog file at path.
func NewFileLoader(path string, format Format) *FileLoader {
	return &FileLoader{Path: path, Format: format}
}

// Load reads and decodes the file. Read failures are CatalogUnavailable,
// decode failures CatalogMalformed.
func (l *FileLoader) Load(ctx context.Context) (*Catalog, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(l.Path)
	if err != nil {
		return nil, errors.CatalogUnavailable(l.Path, err)
	}
	return Decode(l.Path, data, l.Format)
}

// FSLoader reads a catalog from a file system, typically an embed.FS shipped
// alongside the component that owns the recorded cases.
type FSLoader struct {
	FS     fs.FS
	Path   string
	Format Format
}

// Load reads and decodes Path from FS.
func (l *FSLoader) Load(ctx context.Context) (*Catalog, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if l.FS == nil {
		return nil, errors.CatalogUnavailable(l.Path, fmt.Errorf("no file system configured"))
	}
	data, err := fs.ReadFile(l.FS, l.Path)
	if err != nil {
		return nil, errors.CatalogUnavailable(l.Path, err)
	}
	return Decode(l.Path, data, l.Format)
}

// BytesLoader decodes an in-memory serialized catalog on every Load.
type BytesLoader struct {
	Name   string
	Data   []byte
	Format Format
}

// Load decodes Data.
func (l *BytesLoader) Load(ctx context.Context) (*Catalog, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	name := l.Name
	if name == "" {
		name = "<memory>"
	}
	return Decode(name, l.Data, l.Format)
}

// StaticLoader serves an already decoded catalog. Each Load returns a fresh
// copy of the record slice so callers cannot disturb one another.
type StaticLoader struct {
	Catalog *Catalog
}

// Load returns a copy of the catalog. A nil catalog loads as empty.
func (l *StaticLoader) Load(ctx context.Context) (*Catalog, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if l.Catalog == nil {
		return &Catalog{Source: "<static>"}, nil
	}
	records := make([]Record, len(l.Catalog.Records))
	copy(records, l.Catalog.Records)
	return &Catalog{Source: l.Catalog.Source, Records: records}, nil
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(ctx context.Context) (*Catalog, error)

// Load calls f(ctx).
func (f LoaderFunc) Load(ctx context.Context) (*Catalog, error) {
	return f(ctx)
}
