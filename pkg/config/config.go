package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

//go:embed config.toml.sample
var configTemplate string

const (
	// DefaultPerPage is the number of results shown per page.
	DefaultPerPage = 9

	// DefaultFetchTimeout bounds the initial index fetch.
	DefaultFetchTimeout = 30 * time.Second
)

// View selects the result card layout.
type View string

const (
	ViewGrid View = "grid"
	ViewList View = "list"
)

// CardSource selects where card markup comes from.
type CardSource string

const (
	CardInline      CardSource = "inline"
	CardPrecomputed CardSource = "precomputed"
)

type Config struct {
	Index           string        `toml:"index"`
	PerPage         int           `toml:"per_page"`
	FetchTimeout    Duration      `toml:"fetch_timeout"`
	Watch           bool          `toml:"watch"`
	RefreshInterval Duration      `toml:"refresh_interval"` // zero disables
	Widget          WidgetConfig  `toml:"widget"`
	Web             WebConfig     `toml:"web"`
	Defaults        IndexDefaults `toml:"defaults"`
}

// WidgetConfig enumerates the optional capabilities of the search page.
type WidgetConfig struct {
	Suggestions bool       `toml:"suggestions"`
	Tooltip     bool       `toml:"tooltip"`
	View        View       `toml:"view"`
	CardSource  CardSource `toml:"card_source"`
}

type WebConfig struct {
	Host  string `toml:"host"`
	Port  string `toml:"port"`
	Title string `toml:"title"`
}

// IndexDefaults apply to indexes published as a bare array of documents.
type IndexDefaults struct {
	Keys   []KeyConfig `toml:"keys"`
	Filter string      `toml:"filter"`
	View   string      `toml:"view"`
}

type KeyConfig struct {
	Name   string  `toml:"name"`
	Weight float64 `toml:"weight"`
}

type Duration struct {
	time.Duration
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// GetDefaultConfig returns the configuration used when no file exists.
func GetDefaultConfig() *Config {
	return &Config{
		PerPage:      DefaultPerPage,
		FetchTimeout: Duration{DefaultFetchTimeout},
		Widget: WidgetConfig{
			Suggestions: true,
			CardSource:  CardInline,
		},
		Web: WebConfig{
			Host:  "localhost",
			Port:  "8080",
			Title: "Search",
		},
		Defaults: IndexDefaults{
			Keys: []KeyConfig{
				{Name: "title", Weight: 3},
				{Name: "tags", Weight: 2},
				{Name: "text", Weight: 1},
			},
			Filter: "tags",
			View:   string(ViewList),
		},
	}
}

// LoadConfig reads configPath on top of the defaults. A missing file yields
// the defaults.
func LoadConfig(configPath string) (*Config, error) {
	config := GetDefaultConfig()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return config, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if config.PerPage <= 0 {
		config.PerPage = DefaultPerPage
	}
	if config.FetchTimeout.Duration <= 0 {
		config.FetchTimeout = Duration{DefaultFetchTimeout}
	}
	if config.RefreshInterval.Duration < 0 {
		return nil, fmt.Errorf("refresh_interval must not be negative")
	}
	if config.Widget.CardSource == "" {
		config.Widget.CardSource = CardInline
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks enumerated values.
func (c *Config) Validate() error {
	switch c.Widget.View {
	case "", ViewGrid, ViewList:
	default:
		return fmt.Errorf("invalid widget view %q (want grid or list)", c.Widget.View)
	}
	switch c.Widget.CardSource {
	case "", CardInline, CardPrecomputed:
	default:
		return fmt.Errorf("invalid card_source %q (want inline or precomputed)", c.Widget.CardSource)
	}
	for _, k := range c.Defaults.Keys {
		if k.Name == "" {
			return fmt.Errorf("defaults.keys: key without name")
		}
	}
	return nil
}

// Addr returns the web listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Web.Host, c.Web.Port)
}

func (c *Config) SaveConfig(configPath string) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	return os.WriteFile(configPath, data, 0644)
}

// SaveTemplateConfig writes the commented sample configuration.
func SaveTemplateConfig(configPath string) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	return os.WriteFile(configPath, []byte(configTemplate), 0644)
}

// GetConfigDir returns the configuration directory for seek.
func GetConfigDir() (string, error) {
	// Use XDG_CONFIG_HOME if set, otherwise use ~/.config
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("getting user home directory: %w", err)
		}
		configDir = filepath.Join(homeDir, ".config")
	}

	return filepath.Join(configDir, "seek"), nil
}

// GetDefaultConfigPath returns the default configuration file path.
func GetDefaultConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.toml"), nil
}
