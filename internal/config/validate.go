package config

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/AndreyAkinshin/casemock/internal/catalog"
	"github.com/AndreyAkinshin/casemock/internal/log"
)

// Project name: must start with lowercase letter, may contain lowercase,
// digits, hyphens. Hyphens must not be consecutive or trailing.
var projectNamePattern = regexp.MustCompile(`^[a-z][a-z0-9]*(-[a-z0-9]+)*$`)

// MaxConcurrency bounds batch.concurrency.
const MaxConcurrency = 1024

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks a configuration for errors and returns warnings for
// non-fatal issues. Defaults are expected to be applied already.
func Validate(cfg *Config) (warnings []string, err error) {
	if cfg.Project != nil && cfg.Project.Name != "" {
		if err := ValidateProjectName(cfg.Project.Name); err != nil {
			return nil, err
		}
	}

	if strings.TrimSpace(cfg.Catalog) == "" {
		return nil, &ValidationError{Field: "catalog", Message: "is required"}
	}

	if cfg.Tolerance != nil {
		if err := ValidateTolerance(*cfg.Tolerance); err != nil {
			return nil, err
		}
	}

	format, ok := catalog.ParseFormat(cfg.Format)
	if !ok {
		return nil, &ValidationError{
			Field:   "format",
			Message: fmt.Sprintf("must be one of %s", strings.Join(catalog.ValidFormats(), ", ")),
		}
	}
	if format != catalog.FormatAuto {
		if ext := catalog.FormatAuto.Resolve(cfg.Catalog); ext != format {
			warnings = append(warnings, fmt.Sprintf("format %q overrides the %s format implied by catalog path %q", cfg.Format, ext, cfg.Catalog))
		}
	}

	if cfg.Log != nil {
		if _, err := log.ParseLevel(cfg.Log.Level); err != nil {
			return nil, &ValidationError{Field: "log.level", Message: fmt.Sprintf("unknown level %q", cfg.Log.Level)}
		}
	}

	if cfg.Batch != nil {
		if cfg.Batch.Concurrency < 0 || cfg.Batch.Concurrency > MaxConcurrency {
			return nil, &ValidationError{
				Field:   "batch.concurrency",
				Message: fmt.Sprintf("must be between 0 and %d", MaxConcurrency),
			}
		}
	}

	return warnings, nil
}

// ValidateTolerance checks that a comparison tolerance is finite and positive.
func ValidateTolerance(eps float64) error {
	if math.IsNaN(eps) || math.IsInf(eps, 0) || eps <= 0 {
		return &ValidationError{Field: "tolerance", Message: "must be a finite number greater than 0"}
	}
	return nil
}

// ValidateProjectName checks if a project name is valid.
func ValidateProjectName(name string) error {
	if name == "" {
		return &ValidationError{Field: "project.name", Message: "is required"}
	}
	if len(name) > 128 {
		return &ValidationError{Field: "project.name", Message: "must be 128 characters or less"}
	}
	if !projectNamePattern.MatchString(name) {
		return &ValidationError{
			Field:   "project.name",
			Message: "must match pattern ^[a-z][a-z0-9]*(-[a-z0-9]+)*$ (lowercase letters, digits, non-consecutive hyphens)",
		}
	}
	return nil
}
