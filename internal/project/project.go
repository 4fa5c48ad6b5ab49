package project

import (
	stderrors "errors"
	"fmt"
	"path/filepath"

	"github.com/AndreyAkinshin/casemock/internal/catalog"
	"github.com/AndreyAkinshin/casemock/internal/config"
	"github.com/AndreyAkinshin/casemock/internal/errors"
)

// Project represents a loaded casemock project.
type Project struct {
	Root     string
	Config   *config.Config
	Warnings []string
	// Implicit is set when no config file was found and defaults are used.
	Implicit bool
}

// LoadProjectFrom loads a project from a specified root directory.
func LoadProjectFrom(root string) (*Project, error) {
	configPath := filepath.Join(root, ConfigDirName, ConfigFileName)

	cfg, warnings, err := config.LoadAndValidate(configPath)
	var ve *config.ValidationError
	if stderrors.As(err, &ve) {
		return nil, errors.Validation(configPath, err)
	}
	if err != nil {
		return nil, &errors.CasemockError{
			Kind:    errors.KindConfig,
			Message: "failed to load configuration",
			Path:    configPath,
			Cause:   err,
		}
	}

	return &Project{
		Root:     root,
		Config:   cfg,
		Warnings: warnings,
	}, nil
}

// LoadProjectOrDefault loads the project enclosing dir. When there is none it
// returns an implicit project rooted at dir with the default configuration.
func LoadProjectOrDefault(dir string) (*Project, error) {
	root, err := FindRootFrom(dir)
	if err == ErrNoProjectRoot {
		abs, absErr := filepath.Abs(dir)
		if absErr != nil {
			return nil, absErr
		}
		return &Project{Root: abs, Config: config.Default(), Implicit: true}, nil
	}
	if err != nil {
		return nil, err
	}
	return LoadProjectFrom(root)
}

// ConfigPath returns the full path to the project configuration file.
func (p *Project) ConfigPath() string {
	return filepath.Join(p.Root, ConfigDirName, ConfigFileName)
}

// CatalogPath returns the catalog location. Relative paths are resolved
// against the project root.
func (p *Project) CatalogPath() string {
	return ResolvePath(p.Root, p.Config.Catalog)
}

// Format returns the configured catalog format.
func (p *Project) Format() (catalog.Format, error) {
	f, ok := catalog.ParseFormat(p.Config.Format)
	if !ok {
		return "", errors.Configf("unknown catalog format %q", p.Config.Format)
	}
	return f, nil
}

// Loader returns a file loader for the project's catalog.
func (p *Project) Loader() (catalog.Loader, error) {
	f, err := p.Format()
	if err != nil {
		return nil, err
	}
	return catalog.NewFileLoader(p.CatalogPath(), f), nil
}

// String implements fmt.Stringer.
func (p *Project) String() string {
	if p.Implicit {
		return fmt.Sprintf("%s (no config, defaults)", p.Root)
	}
	return p.Root
}

// ResolvePath joins a relative path onto root; absolute paths are returned cleaned.
func ResolvePath(root, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(root, path)
}
