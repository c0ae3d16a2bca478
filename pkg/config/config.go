// Package config loads citegraph settings from a TOML file.
//
// A config file is optional. Every field has a zero value meaning "use the
// default", so a partial file only overrides what it names:
//
//	[palette]
//	colors   = ["cyan", "red", "green", "violet"]
//	fallback = "black"
//
//	[layout]
//	scale      = 20.0
//	iterations = 500
//
//	[render]
//	formats    = ["tikz", "svg"]
//	standalone = true
//
//	[cache]
//	redis_url = "redis://localhost:6379/0"
//
// Command-line flags override file values. [Config.Apply] merges the file
// into pipeline options without touching fields the caller already set.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/isplab/citegraph/pkg/errors"
	"github.com/isplab/citegraph/pkg/graph"
	"github.com/isplab/citegraph/pkg/render"
)

// FileName is the config file looked up under the user config directory.
const FileName = "config.toml"

// DefaultAddr is the listen address of the HTTP server.
const DefaultAddr = ":8080"

// Config mirrors the TOML file.
type Config struct {
	Palette   PaletteConfig   `toml:"palette"`
	Layout    LayoutConfig    `toml:"layout"`
	Community CommunityConfig `toml:"community"`
	Filter    FilterConfig    `toml:"filter"`
	Render    RenderConfig    `toml:"render"`
	Cache     CacheConfig     `toml:"cache"`
	Server    ServerConfig    `toml:"server"`
}

// PaletteConfig selects community colors. Name picks a built-in palette;
// Colors overrides it.
type PaletteConfig struct {
	Name     string   `toml:"name"`
	Colors   []string `toml:"colors"`
	Fallback string   `toml:"fallback"`
	Wrap     bool     `toml:"wrap"`
}

type LayoutConfig struct {
	Scale      float64 `toml:"scale"`
	Iterations int     `toml:"iterations"`
	Tolerance  float64 `toml:"tolerance"`
}

type CommunityConfig struct {
	Resolution float64 `toml:"resolution"`
	Normalized bool    `toml:"normalized"`
}

// FilterConfig is the admission filter applied to input facts.
type FilterConfig struct {
	Match    string   `toml:"match"` // "exact" or "normalized"
	Exclude  []string `toml:"exclude"`
	Sanitize bool     `toml:"sanitize"`
}

type RenderConfig struct {
	Formats       []string `toml:"formats"`
	TikzScale     float64  `toml:"tikz_scale"`
	Standalone    bool     `toml:"standalone"`
	Legend        bool     `toml:"legend"`
	NodelinkScale float64  `toml:"nodelink_scale"`
	Detailed      bool     `toml:"detailed"`
	PNGScale      float64  `toml:"png_scale"`
}

type CacheConfig struct {
	Dir      string   `toml:"dir"`
	RedisURL string   `toml:"redis_url"`
	TTL      Duration `toml:"ttl"`
	Disabled bool     `toml:"disabled"`
}

type ServerConfig struct {
	Addr string `toml:"addr"`
}

// Duration decodes TOML strings such as "72h" into a time.Duration.
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// DefaultPath returns the config file under the user config directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "citegraph", FileName), nil
}

// Load reads the config file at path. An empty path loads DefaultPath if it
// exists and returns an empty Config otherwise; an explicit path must exist.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return &Config{}, nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "read config %s", path)
	}
	return Parse(data)
}

// Parse decodes TOML data and validates it. Unknown keys are rejected so
// typos do not silently fall back to defaults.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, errors.New(errors.ErrCodeInvalidOption, "unknown config key %q", undecoded[0].String())
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values that have no sensible fallback.
func (c *Config) Validate() error {
	if _, err := c.PaletteValue(); err != nil {
		return err
	}
	if _, ok := graph.ParseMatchRule(c.Filter.Match); !ok {
		return errors.New(errors.ErrCodeInvalidOption, "filter.match must be exact or normalized, got %q", c.Filter.Match)
	}
	for name, v := range map[string]float64{
		"layout.scale":          c.Layout.Scale,
		"layout.tolerance":      c.Layout.Tolerance,
		"community.resolution":  c.Community.Resolution,
		"render.tikz_scale":     c.Render.TikzScale,
		"render.nodelink_scale": c.Render.NodelinkScale,
		"render.png_scale":      c.Render.PNGScale,
	} {
		if v < 0 {
			return errors.New(errors.ErrCodeInvalidOption, "%s must not be negative", name)
		}
	}
	if c.Layout.Iterations < 0 {
		return errors.New(errors.ErrCodeInvalidOption, "layout.iterations must not be negative")
	}
	return nil
}

// PaletteValue resolves the [palette] section. A config without a palette
// section yields render.DefaultPalette.
func (c *Config) PaletteValue() (render.Palette, error) {
	p := render.DefaultPalette()
	if c.Palette.Name != "" {
		named, ok := render.NamedPalette(c.Palette.Name)
		if !ok {
			return render.Palette{}, errors.New(errors.ErrCodeInvalidPalette, "unknown palette %q", c.Palette.Name)
		}
		p = named
	}
	if len(c.Palette.Colors) > 0 {
		p.Colors = c.Palette.Colors
	}
	if c.Palette.Fallback != "" {
		p.Fallback = c.Palette.Fallback
	}
	if c.Palette.Wrap {
		p.Wrap = true
	}
	if err := p.Validate(); err != nil {
		return render.Palette{}, err
	}
	return p, nil
}

// MatchRule returns the configured title matching rule.
// An empty value selects normalized matching.
func (c *Config) MatchRule() graph.MatchRule {
	if c.Filter.Match == "" {
		return graph.MatchNormalized
	}
	rule, _ := graph.ParseMatchRule(c.Filter.Match)
	return rule
}

// Addr returns the server listen address.
func (c *Config) Addr() string {
	if c.Server.Addr == "" {
		return DefaultAddr
	}
	return c.Server.Addr
}

// Encode writes c as TOML.
func (c *Config) Encode() (string, error) {
	var buf strings.Builder
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return "", fmt.Errorf("encode config: %w", err)
	}
	return buf.String(), nil
}
