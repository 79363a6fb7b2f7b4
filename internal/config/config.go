package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/pelletier/go-toml/v2"
	"go.uber.org/multierr"

	"pixview/internal/eventbus"
)

// Sort orders for sibling images
const (
	SortByName    = "name"
	SortByNatural = "natural"
)

// Config represents the application configuration
type Config struct {
	Version    int              `toml:"version"`
	Extensions []string         `toml:"extensions"`
	Sort       string           `toml:"sort"`
	Viewport   ViewportSettings `toml:"viewport"`
	Background BackgroundColors `toml:"background"`
	Logging    LoggingConfig    `toml:"logging"`
}

// ViewportSettings tunes the transform engine
type ViewportSettings struct {
	ZoomStep    float64 `toml:"zoom_step"`     // zoom change per wheel notch
	ScrollUnitX int     `toml:"scroll_unit_x"` // surface pixels per horizontal scroll unit
	ScrollUnitY int     `toml:"scroll_unit_y"` // surface pixels per vertical scroll unit
}

// BackgroundColors holds the two canvas colours and the start-up choice
type BackgroundColors struct {
	Light       string `toml:"light"`
	Dark        string `toml:"dark"`
	DarkDefault bool   `toml:"dark_default"`
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

// configService is the concrete implementation
type configService struct {
	bus      eventbus.EventBus
	filePath string
}

// DefaultPath returns the per-user config file location
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return filepath.Join(configDir, "pixview", "config.toml")
}

// NewConfigService creates a config service bound to path. An empty path
// selects DefaultPath.
func NewConfigService(path string) ConfigService {
	if path == "" {
		path = DefaultPath()
	}
	return &configService{filePath: path}
}

// NewConfigServiceWithBus creates a config service with event bus support
func NewConfigServiceWithBus(path string, bus eventbus.EventBus) ConfigService {
	cs := NewConfigService(path).(*configService)
	cs.bus = bus
	return cs
}

func (cs *configService) Path() string {
	return cs.filePath
}

// Load loads the configuration from the service's file. A missing file
// yields the defaults.
func (cs *configService) Load() (*Config, error) {
	cfg, err := cs.LoadFromPath(cs.filePath)
	if errors.Is(err, os.ErrNotExist) {
		cfg, err = DefaultConfig(), nil
	}
	if err != nil {
		return nil, err
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigLoadedEvent{
			Path:       cs.filePath,
			Extensions: cfg.Extensions,
		})
	}

	return cfg, nil
}

// Save saves the configuration to the service's file
func (cs *configService) Save(config *Config) error {
	if err := cs.SaveToPath(config, cs.filePath); err != nil {
		return err
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigSavedEvent{Path: cs.filePath})
	}

	return nil
}

// LoadFromPath loads configuration from a specific path. Values missing from
// the file keep their defaults.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	cfg.Extensions = NormalizeExtensions(cfg.Extensions)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate reports every problem in the configuration at once
func (c *Config) Validate() error {
	var err error

	if len(c.Extensions) == 0 {
		err = multierr.Append(err, errors.New("extensions: at least one extension is required"))
	}
	switch c.Sort {
	case SortByName, SortByNatural:
	default:
		err = multierr.Append(err, fmt.Errorf("sort: unknown order %q", c.Sort))
	}
	if c.Viewport.ZoomStep <= 0 {
		err = multierr.Append(err, fmt.Errorf("viewport.zoom_step: must be positive, got %v", c.Viewport.ZoomStep))
	}
	if c.Viewport.ScrollUnitX < 1 || c.Viewport.ScrollUnitY < 1 {
		err = multierr.Append(err, fmt.Errorf("viewport: scroll units must be at least 1, got %dx%d",
			c.Viewport.ScrollUnitX, c.Viewport.ScrollUnitY))
	}
	if _, cerr := colorful.Hex(c.Background.Light); cerr != nil {
		err = multierr.Append(err, fmt.Errorf("background.light: %w", cerr))
	}
	if _, cerr := colorful.Hex(c.Background.Dark); cerr != nil {
		err = multierr.Append(err, fmt.Errorf("background.dark: %w", cerr))
	}
	switch c.Logging.Level {
	case "none", "normal", "debug":
	default:
		err = multierr.Append(err, fmt.Errorf("logging.level: unknown level %q", c.Logging.Level))
	}

	return err
}

// NormalizeExtensions lowercases extensions, adds the leading dot and drops
// duplicates while keeping order
func NormalizeExtensions(exts []string) []string {
	seen := make(map[string]bool, len(exts))
	out := make([]string, 0, len(exts))
	for _, e := range exts {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		if seen[e] {
			continue
		}
		seen[e] = true
		out = append(out, e)
	}
	return out
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version:    1,
		Extensions: []string{".png"},
		Sort:       SortByName,
		Viewport: ViewportSettings{
			ZoomStep:    0.1,
			ScrollUnitX: 1,
			ScrollUnitY: 2,
		},
		Background: BackgroundColors{
			Light: "#ffffff",
			Dark:  "#000000",
		},
		Logging: LoggingConfig{
			Level: "normal",
			File:  "pixview.log",
			Mode:  "append",
		},
	}
}
