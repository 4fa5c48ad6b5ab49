// Package config provides loading and validation for .casemock/config.json.
package config

// Config represents the complete config.json configuration.
type Config struct {
	Project   *ProjectConfig `json:"project,omitempty"`
	Catalog   string         `json:"catalog,omitempty"`
	Format    string         `json:"format,omitempty"`
	Tolerance *float64       `json:"tolerance,omitempty"`
	Log       *LogConfig     `json:"log,omitempty"`
	Batch     *BatchConfig   `json:"batch,omitempty"`
}

// ToleranceValue returns the configured tolerance, or DefaultTolerance when
// none is set.
func (c *Config) ToleranceValue() float64 {
	if c.Tolerance == nil {
		return DefaultTolerance
	}
	return *c.Tolerance
}

// ProjectConfig contains optional project metadata.
type ProjectConfig struct {
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
}

// LogConfig configures diagnostic logging.
type LogConfig struct {
	Level  string `json:"level,omitempty"`
	Pretty bool   `json:"pretty,omitempty"` // console format instead of JSON lines
}

// BatchConfig configures concurrent batch lookups.
type BatchConfig struct {
	Concurrency int `json:"concurrency,omitempty"` // 0 means GOMAXPROCS
}
