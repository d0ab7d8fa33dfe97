package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/folio/internal/formatter"
	"github.com/urfave/cli/v3"
)

// Export renders every view to a static HTML site on disk.
func (r *Runner) Export(ctx context.Context, cmd *cli.Command) error {
	config := r.loadConfig(cmd)

	ctrl, err := r.controller(ctx, config)
	if err != nil {
		return err
	}

	pages := []formatter.Page{
		{Slug: "", Title: "Portfolio", Node: ctrl.Menu()},
	}

	for _, category := range ctrl.Categories() {
		grid, displayName, ok := ctrl.Grid(ctx, category.Name)
		if !ok {
			continue
		}
		pages = append(pages, formatter.Page{
			Slug:  category.Name,
			Title: displayName,
			Node:  grid,
		})
	}

	opts := formatter.HTMLOptions{AssetBase: config.Portfolio.RootURL}
	result, err := formatter.WriteSiteExport(pages, cmd.String("output"), opts)
	if err != nil {
		return fmt.Errorf("failed to export site: %w", err)
	}

	r.logger.Info("site exported", "dir", result.Directory, "files", len(result.Files))

	r.writePlain("✓ Exported %d pages to %s\n", len(result.Files), result.Directory)
	for _, file := range result.Files {
		r.writePlain("  %s\n", file)
	}

	return nil
}
