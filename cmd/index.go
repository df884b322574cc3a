package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/rubiojr/seek/pkg/search"
	"github.com/urfave/cli/v3"
)

// IndexCommand creates the index command
func IndexCommand() *cli.Command {
	return &cli.Command{
		Name:  "index",
		Usage: "Show information about the configured index",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "top",
				Usage: "Number of facet values to list",
				Value: 10,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			return showIndex(ctx, c, int(c.Int("top")))
		},
	}
}

func showIndex(ctx context.Context, c *cli.Command, top int) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	store, err := loadIndex(ctx, cfg)
	if err != nil {
		return err
	}

	keys := make([]string, 0, len(store.Keys()))
	for _, k := range store.Keys() {
		keys = append(keys, fmt.Sprintf("%s (%g)", k.Name, k.Weight))
	}

	fmt.Println(headerStyle.Render("Index"))
	fmt.Println()
	formatField("Source", store.Source())
	formatField("Documents", formatNumber(store.Len()))
	formatField("Keys", strings.Join(keys, ", "))
	formatField("Facet field", store.FacetField())
	formatField("Facets", formatNumber(len(store.FacetValues())))
	formatField("View", store.View())
	formatField("Loaded", formatTime(store.LoadedAt()))

	facets := search.AvailableFacets(store.Documents(), nil, store.FacetField())
	if len(facets) == 0 || top <= 0 {
		return nil
	}
	fmt.Println()
	fmt.Println(headerStyle.Render("Top facets"))
	fmt.Println()
	for i, f := range facets {
		if i == top {
			break
		}
		formatField(f.Value, facetStyle.Render(formatNumber(f.Count)))
	}
	return nil
}
