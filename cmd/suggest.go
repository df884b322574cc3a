package cmd

import (
	"context"
	"fmt"

	"github.com/rubiojr/seek/pkg/suggest"
	"github.com/urfave/cli/v3"
)

// SuggestCommand creates the suggest command
func SuggestCommand() *cli.Command {
	return &cli.Command{
		Name:      "suggest",
		Usage:     "Suggest facet values for partial input",
		ArgsUsage: "<partial>",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:    "filter",
				Aliases: []string{"f"},
				Usage:   "Active facet value to leave out (repeatable)",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			if c.Args().Len() != 1 {
				return fmt.Errorf("expected exactly one argument, got %d", c.Args().Len())
			}
			return suggestFacets(ctx, c, c.Args().First())
		},
	}
}

func suggestFacets(ctx context.Context, c *cli.Command, partial string) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	store, err := loadIndex(ctx, cfg)
	if err != nil {
		return err
	}

	s := suggest.New(store.FacetValues())
	for _, v := range s.Suggest(partial, c.StringSlice("filter")) {
		fmt.Println(v)
	}
	return nil
}
