package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/folio/internal/prefetch"
	"github.com/urfave/cli/v3"
)

// Prefetch warms every artwork image and streams progress to the terminal.
func (r *Runner) Prefetch(ctx context.Context, cmd *cli.Command) error {
	config := r.loadConfig(cmd)

	ctrl, err := r.controller(ctx, config)
	if err != nil {
		return err
	}

	total := ctrl.Store().ArtworkTotal()
	if total == 0 {
		r.writePlain("No artwork images to warm\n")
		return nil
	}

	r.logger.Info("warming images", "total", total,
		"workers", config.Prefetch.Workers, "rate_limit", config.Prefetch.RateLimit)

	updates := make(chan prefetch.Update, total)
	cache := ctrl.StartPrefetch(ctx, r.httpClient, updates)

	for update := range updates {
		status := "ok"
		if !update.OK {
			status = "failed"
		}
		r.writePlain("[%3.0f%%] %-6s %s\n", update.Progress.Percentage, status, update.Path)
	}

	progress := cache.Progress()

	if cmd.Bool("json") {
		return r.writeJSON(progress, true)
	}

	r.writePlainln("Warmed %d/%d images (%.0f%% settled)",
		progress.Loaded, progress.Total, progress.Percentage)
	if progress.Loaded < progress.Total {
		return fmt.Errorf("%d images failed to load", progress.Total-progress.Loaded)
	}

	return nil
}
