package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/rubiojr/seek/pkg/index"
	"github.com/rubiojr/seek/pkg/search"
	"github.com/urfave/cli/v3"
)

// SearchCommand creates the search command
func SearchCommand() *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "Search the index",
		ArgsUsage: "[query]",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:    "filter",
				Aliases: []string{"f"},
				Usage:   "Facet value to filter by (repeatable)",
			},
			&cli.IntFlag{
				Name:    "page",
				Aliases: []string{"p"},
				Usage:   "Result page",
				Value:   1,
			},
			&cli.IntFlag{
				Name:  "per-page",
				Usage: "Results per page (defaults to per_page in the config)",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Print the page as JSON",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			return searchIndex(ctx, c)
		},
	}
}

// searchIndex runs one search and prints the requested page
func searchIndex(ctx context.Context, c *cli.Command) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	store, err := loadIndex(ctx, cfg)
	if err != nil {
		return err
	}

	state := search.State{Page: 1}
	for _, f := range c.StringSlice("filter") {
		state = search.AddFilter(state, f)
	}
	state = search.SubmitQuery(state, c.Args().First())
	state = search.ChangePage(state, int(c.Int("page")))

	perPage := cfg.PerPage
	if n := int(c.Int("per-page")); n > 0 {
		perPage = n
	}

	hist := search.NewHistory("/search", state)
	ctrl := search.NewController(func() *index.Store { return store }, hist, search.Options{
		PerPage: perPage,
		Widget:  cfg.Widget,
	})
	v := ctrl.View()

	if c.Bool("json") {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Query   string              `json:"query"`
			Filters []string            `json:"filters"`
			Page    int                 `json:"page"`
			Total   int                 `json:"total"`
			Pages   int                 `json:"total_pages"`
			Results []index.Document    `json:"results"`
			Facets  []search.FacetCount `json:"facets"`
		}{v.State.Query, v.Active, v.State.Page, v.Total, v.TotalPages, v.Items, v.Available})
	}

	if v.State.Query != "" || len(v.Active) > 0 {
		fmt.Println(headerStyle.Render(hist.URL()))
		fmt.Println()
	}
	formatView(v)
	return nil
}
