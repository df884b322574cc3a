package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rubiojr/seek/pkg/config"
	"github.com/rubiojr/seek/pkg/index"
	"github.com/rubiojr/seek/pkg/log"
	"github.com/rubiojr/seek/pkg/version"
	"github.com/urfave/cli/v3"
)

// loadConfig reads the configuration named by --config and applies the
// global --index and --debug overrides.
func loadConfig(c *cli.Command) (*config.Config, error) {
	if c.Bool("debug") {
		log.SetGlobalDebug(true)
	}

	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if src := c.String("index"); src != "" {
		cfg.Index = src
	}
	if cfg.Index == "" {
		return nil, fmt.Errorf("no index configured: set index in %s or pass --index", c.String("config"))
	}
	return cfg, nil
}

// indexOptions converts the configured defaults into loader options.
func indexOptions(cfg *config.Config) []index.Option {
	keys := make([]index.WeightedKey, 0, len(cfg.Defaults.Keys))
	for _, k := range cfg.Defaults.Keys {
		keys = append(keys, index.WeightedKey{Name: k.Name, Weight: k.Weight})
	}
	return []index.Option{
		index.WithDefaults(keys, cfg.Defaults.Filter, cfg.Defaults.View),
		index.WithUserAgent("seek/" + version.Version),
	}
}

// loadIndex fetches the configured index within the fetch timeout.
func loadIndex(ctx context.Context, cfg *config.Config) (*index.Store, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.FetchTimeout.Duration)
	defer cancel()

	store, err := index.Load(ctx, cfg.Index, indexOptions(cfg)...)
	if err != nil {
		return nil, fmt.Errorf("loading index: %w", err)
	}
	return store, nil
}

// newHolder loads the index once and returns a holder able to reload it.
func newHolder(ctx context.Context, cfg *config.Config) (*index.Holder, error) {
	store, err := loadIndex(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return index.NewHolder(store, func(ctx context.Context) (*index.Store, error) {
		return loadIndex(ctx, cfg)
	}), nil
}

// localIndexPath returns the filesystem path of a local index source.
func localIndexPath(source string) (string, bool) {
	switch {
	case strings.HasPrefix(source, "http://"), strings.HasPrefix(source, "https://"):
		return "", false
	case strings.HasPrefix(source, "file://"):
		source = strings.TrimPrefix(source, "file://")
	}
	abs, err := filepath.Abs(source)
	if err != nil {
		return "", false
	}
	return abs, true
}
