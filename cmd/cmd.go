// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to configuration file",
		Value:   "config.toml",
	}
}

// setupCommand writes a starter configuration file.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "setup",
		Usage:  "Write a starter config.toml",
		Flags:  []cli.Flag{configFlag()},
		Action: r.Setup,
	}
}

// discoverCommand runs the configured content source once.
func discoverCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "discover",
		Usage: "Discover categories and artworks from the configured source",
		Flags: []cli.Flag{
			configFlag(),
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print output",
				Value: true,
			},
		},
		Action: r.Discover,
	}
}

// manifestCommand handles manifest build and inspection.
func manifestCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "manifest",
		Usage: "Build and inspect portfolio manifests",
		Commands: []*cli.Command{
			{
				Name:  "build",
				Usage: "Scan an asset directory into a manifest.json",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "dir",
					},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file path",
						Value:   "manifest.json",
					},
				},
				Action: r.ManifestBuild,
			},
			{
				Name:  "show",
				Usage: "Print the effective manifest",
				Flags: []cli.Flag{
					configFlag(),
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
						Value: true,
					},
				},
				Action: r.ManifestShow,
			},
		},
	}
}

// prefetchCommand warms every artwork image.
func prefetchCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "prefetch",
		Usage: "Warm all artwork images and report progress",
		Flags: []cli.Flag{
			configFlag(),
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output the final progress as JSON",
			},
		},
		Action: r.Prefetch,
	}
}

// serveCommand runs the portfolio and asset server.
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the portfolio views and asset tree",
		Flags: []cli.Flag{
			configFlag(),
			&cli.BoolFlag{
				Name:  "open",
				Usage: "Open the portfolio in the default browser",
			},
		},
		Action: r.Serve,
	}
}

// browseCommand launches the interactive TUI browser.
func browseCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "browse",
		Aliases: []string{"tui", "ui"},
		Usage:   "Browse the portfolio in an interactive TUI",
		Flags:   []cli.Flag{configFlag()},
		Action:  r.Browse,
	}
}

// exportCommand writes a static HTML rendering of every view.
func exportCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Export all views as a static HTML site",
		Flags: []cli.Flag{
			configFlag(),
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output directory",
				Value:   "site",
			},
		},
		Action: r.Export,
	}
}
