// Package config loads tool settings from defaults, a TOML file and
// environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"calgrid/internal/grid"
	"calgrid/internal/layout"

	"github.com/pelletier/go-toml/v2"
)

const configFile = "config.toml"

// Config holds the settings shared by calgrid and calshift.
type Config struct {
	Grid    GridConfig    `toml:"grid"`
	Margins MarginsConfig `toml:"margins"`
	Page    PageConfig    `toml:"page"`
	Adjust  AdjustConfig  `toml:"adjust"`
}

// GridConfig holds the grid dimensions.
type GridConfig struct {
	Rows int `toml:"rows"`
	Cols int `toml:"cols"`
}

// MarginsConfig holds source image margins in pixels.
type MarginsConfig struct {
	Top    int `toml:"top"`
	Sides  int `toml:"sides"`
	Bottom int `toml:"bottom"`
}

// PageConfig holds PDF output settings.
type PageConfig struct {
	Size        string `toml:"size"`         // "letter" or "a4"
	UseStandard bool   `toml:"use_standard"` // draw onto Size instead of the source size
	Layers      bool   `toml:"layers"`       // one optional-content layer per cell
}

// AdjustConfig holds interactive grid adjustment settings.
type AdjustConfig struct {
	Padding          int     `toml:"padding"`
	SelectThreshold  float64 `toml:"select_threshold"`
	MaxDisplayWidth  int     `toml:"max_display_width"`
	MaxDisplayHeight int     `toml:"max_display_height"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Grid: GridConfig{
			Rows: grid.DefaultRows,
			Cols: grid.DefaultCols,
		},
		Margins: MarginsConfig{
			Sides:  20,
			Bottom: 50,
		},
		Page: PageConfig{
			Size:   layout.Letter.Name,
			Layers: true,
		},
		Adjust: AdjustConfig{
			SelectThreshold:  grid.DefaultSelectThreshold,
			MaxDisplayWidth:  1536,
			MaxDisplayHeight: 864,
		},
	}
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir = filepath.Join(os.Getenv("HOME"), ".config")
	}
	return filepath.Join(configDir, "calgrid", configFile)
}

// Load loads configuration from the default path.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom starts with defaults, overlays the file at path if it exists,
// then applies environment overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}
	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// ReadFile returns the defaults overlaid with the file at path, without
// environment overrides, so the result can be edited and saved back.
func ReadFile(path string) (*Config, error) {
	cfg := Default()

	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading config file: %w", err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}
	return nil
}

var intOverrides = []struct {
	env   string
	field func(*Config) *int
}{
	{"CALGRID_ROWS", func(c *Config) *int { return &c.Grid.Rows }},
	{"CALGRID_COLS", func(c *Config) *int { return &c.Grid.Cols }},
	{"CALGRID_MARGIN_SIDES", func(c *Config) *int { return &c.Margins.Sides }},
	{"CALGRID_MARGIN_BOTTOM", func(c *Config) *int { return &c.Margins.Bottom }},
	{"CALGRID_PADDING", func(c *Config) *int { return &c.Adjust.Padding }},
}

// applyEnvOverrides applies CALGRID_* variables on top of file values.
func applyEnvOverrides(cfg *Config) error {
	for _, o := range intOverrides {
		v := os.Getenv(o.env)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", o.env, err)
		}
		*o.field(cfg) = n
	}
	if v := os.Getenv("CALGRID_PAGE_SIZE"); v != "" {
		cfg.Page.Size = v
	}
	return nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Grid.Rows <= 0 || c.Grid.Cols <= 0 {
		return fmt.Errorf("grid must have at least one row and column, got %dx%d", c.Grid.Rows, c.Grid.Cols)
	}
	if c.Margins.Top < 0 || c.Margins.Sides < 0 || c.Margins.Bottom < 0 {
		return errors.New("margins must not be negative")
	}
	if _, err := layout.ParsePageSize(c.Page.Size); err != nil {
		return err
	}
	if c.Adjust.Padding < 0 {
		return errors.New("padding must not be negative")
	}
	if c.Adjust.SelectThreshold <= 0 {
		return errors.New("select_threshold must be positive")
	}
	if c.Adjust.MaxDisplayWidth <= 0 || c.Adjust.MaxDisplayHeight <= 0 {
		return errors.New("max display size must be positive")
	}
	return nil
}

// GridSpec returns the grid and margins as a grid.Spec.
func (c *Config) GridSpec() grid.Spec {
	return grid.Spec{
		Rows:         c.Grid.Rows,
		Cols:         c.Grid.Cols,
		MarginTop:    c.Margins.Top,
		MarginBottom: c.Margins.Bottom,
		MarginSides:  c.Margins.Sides,
	}
}

// PageSize returns the configured standard page size.
func (c *Config) PageSize() (layout.PageSize, error) {
	return layout.ParsePageSize(c.Page.Size)
}

// SaveTo writes the configuration to path.
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// String renders the configuration as TOML.
func (c *Config) String() string {
	data, err := toml.Marshal(c)
	if err != nil {
		return err.Error()
	}
	return strings.TrimSpace(string(data))
}
