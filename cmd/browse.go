package cmd

import (
	"context"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rubiojr/seek/pkg/index"
	"github.com/rubiojr/seek/pkg/log"
	"github.com/rubiojr/seek/pkg/search"
	"github.com/rubiojr/seek/pkg/tui"
	"github.com/urfave/cli/v3"
)

// BrowseCommand creates the interactive browse command
func BrowseCommand() *cli.Command {
	return &cli.Command{
		Name:      "browse",
		Usage:     "Browse the index interactively",
		ArgsUsage: "[url]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "watch",
				Usage: "Reload the index when the local file changes",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			return browseIndex(ctx, c)
		},
	}
}

// browseIndex starts the terminal browser. An optional argument such as
// "/search?q=go&f=web" sets the initial state.
func browseIndex(ctx context.Context, c *cli.Command) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	holder, err := newHolder(ctx, cfg)
	if err != nil {
		return err
	}

	start := "/search"
	if arg := c.Args().First(); arg != "" {
		start = arg
	}
	hist, err := search.NewHistoryFromURL(start)
	if err != nil {
		return fmt.Errorf("parsing initial url: %w", err)
	}

	ctrl := search.NewController(holder.Store, hist, search.Options{
		PerPage: cfg.PerPage,
		Widget:  cfg.Widget,
	})

	// Log lines would corrupt the alternate screen
	if !log.GlobalDebug() {
		log.SetOutput(io.Discard)
	}

	p := tea.NewProgram(tui.New(ctrl, cfg.Web.Title), tea.WithAltScreen(), tea.WithContext(ctx))

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	holder.OnReload(func(ev index.ReloadEvent) {
		p.Send(tui.IndexReloaded{Event: ev})
	})
	startReloaders(ctx, holder, cfg.Index, cfg.Watch || c.Bool("watch"), cfg.RefreshInterval.Duration)

	_, err = p.Run()
	return err
}
