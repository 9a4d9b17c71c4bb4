// Package config defines the ScrollLabel settings file and helpers for
// loading or saving it to disk. The file format follows the extension:
// .json (default), .yaml/.yml or .toml.
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/edward-ap/scrolllabel/internal/marquee"
)

const (
	// AppID is the stable application identifier used for config storage.
	AppID = "scrolllabel"
	// AppConfigSubdir is the OS-specific directory that holds the config file.
	AppConfigSubdir = "ScrollLabel"
	// AppConfigName is the JSON file stored on disk.
	AppConfigName = "config.json"

	// DefaultText is shown when no text is configured.
	DefaultText = "ScrollLabel: text that does not fit scrolls, fading at both edges."
	// DefaultWidth is the preferred window width when no persisted value exists.
	DefaultWidth = 360
	// DefaultHeight is the preferred window height for the demo strip.
	DefaultHeight = 120
	// MinWindowWidth keeps the controls usable.
	MinWindowWidth = 240
	// DefaultFrameRate is the terminal redraw rate in frames per second.
	DefaultFrameRate = 30
	// MaxFrameRate caps the terminal redraw rate.
	MaxFrameRate = 120
)

// Format names a supported encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatFor picks the encoding from the file extension; unknown extensions
// are treated as JSON.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".toml":
		return FormatTOML
	default:
		return FormatJSON
	}
}

// Config aggregates every user-facing preference persisted between sessions.
type Config struct {
	Text      string         `json:"text" yaml:"text" toml:"text"`
	Scroll    marquee.Config `json:"scroll" yaml:"scroll" toml:"scroll"`
	AutoStart bool           `json:"autoStart" yaml:"autoStart" toml:"autoStart"`
	WindowW   int            `json:"windowW" yaml:"windowW" toml:"windowW"`
	WindowH   int            `json:"windowH" yaml:"windowH" toml:"windowH"`
	FrameRate int            `json:"frameRate,omitempty" yaml:"frameRate,omitempty" toml:"frameRate,omitempty"`
}

// ConfigDir resolves the writable directory that should contain the config file.
func ConfigDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, AppConfigSubdir), nil
}

// ConfigPath is a helper that returns the full path to config.json.
func ConfigPath() (string, error) {
	d, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(d, AppConfigName), nil
}

// Load reads the config from the default location, creating it with defaults
// on first use.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	cfg, err := LoadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		cfg = newDefaultConfig()
		// Try saving an initial config, but still return defaults even if it fails.
		_ = cfg.SaveFile(path)
		return cfg, nil
	}
	return cfg, err
}

// LoadFile reads and normalizes the config at path in the format implied by
// its extension.
func LoadFile(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := newDefaultConfig()
	if err := decode(FormatFor(path), b, cfg); err != nil {
		return nil, fmt.Errorf("config parse error: %w", err)
	}
	cfg.applyRuntimeDefaults()
	return cfg, nil
}

// Save persists the configuration to the default location.
func (c *Config) Save() error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return c.SaveFile(path)
}

// SaveFile persists the configuration to path, creating directories as needed.
func (c *Config) SaveFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	b, err := encode(FormatFor(path), c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

// AppID returns the stable identifier used by the GUI framework.
func (c *Config) AppID() string { return AppID }

func decode(f Format, b []byte, c *Config) error {
	switch f {
	case FormatYAML:
		return yaml.Unmarshal(b, c)
	case FormatTOML:
		_, err := toml.Decode(string(b), c)
		return err
	default:
		return json.Unmarshal(b, c)
	}
}

func encode(f Format, c *Config) ([]byte, error) {
	switch f {
	case FormatYAML:
		return yaml.Marshal(c)
	case FormatTOML:
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(c); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return json.MarshalIndent(c, "", "  ")
	}
}

// newDefaultConfig builds an in-memory config populated with safe defaults.
func newDefaultConfig() *Config {
	cfg := &Config{
		Text:      DefaultText,
		Scroll:    marquee.DefaultConfig(),
		AutoStart: true,
		WindowW:   DefaultWidth,
		WindowH:   DefaultHeight,
		FrameRate: DefaultFrameRate,
	}
	cfg.applyRuntimeDefaults()
	return cfg
}

// applyRuntimeDefaults normalizes config values after a load or when defaults
// are constructed, so consumers always receive an animatable configuration.
func (c *Config) applyRuntimeDefaults() {
	if strings.TrimSpace(c.Text) == "" {
		c.Text = DefaultText
	}
	if err := c.Scroll.Validate(); err != nil {
		c.Scroll.Rate = marquee.DefaultRate
	}
	c.Scroll = c.Scroll.Normalized()
	if c.WindowW == 0 {
		c.WindowW = DefaultWidth
	}
	if c.WindowW < MinWindowWidth {
		c.WindowW = MinWindowWidth
	}
	if c.WindowH <= 0 {
		c.WindowH = DefaultHeight
	}
	if c.FrameRate <= 0 {
		c.FrameRate = DefaultFrameRate
	}
	if c.FrameRate > MaxFrameRate {
		c.FrameRate = MaxFrameRate
	}
}
