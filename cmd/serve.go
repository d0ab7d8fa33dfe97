package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/folio/internal/formatter"
	"github.com/desertthunder/folio/internal/models"
	"github.com/desertthunder/folio/internal/server"
	"github.com/desertthunder/folio/internal/shared"
	"github.com/urfave/cli/v3"
)

// Serve runs the portfolio and asset HTTP server until interrupted.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	config := r.loadConfig(cmd)

	ctrl, err := r.controller(ctx, config)
	if err != nil {
		return err
	}

	render := func(title string, node models.Node) ([]byte, error) {
		return formatter.RenderHTML(title, node, formatter.HTMLOptions{AssetBase: "/assets"})
	}

	srv := server.New(config.Server, ctrl, render, config.Portfolio.AssetDir, r.logger)

	if cmd.Bool("open") {
		url := fmt.Sprintf("http://%s/", config.Server.Addr())
		if err := shared.OpenBrowser(url); err != nil {
			r.logger.Warn("failed to open browser", "url", url, "error", err)
		}
	}

	return srv.Run(ctx)
}
