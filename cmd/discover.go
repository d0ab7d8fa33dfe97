package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/folio/internal/models"
	"github.com/urfave/cli/v3"
)

// Discover runs the configured content source once and prints what it finds.
func (r *Runner) Discover(ctx context.Context, cmd *cli.Command) error {
	config := r.loadConfig(cmd)

	source, err := r.ensureSource(config)
	if err != nil {
		return fmt.Errorf("failed to build content source: %w", err)
	}

	r.logger.Info("running discovery", "mode", source.Mode())

	var categories []models.Category
	for _, name := range source.ListCategories(ctx) {
		categories = append(categories, models.Category{
			Name:     name,
			Artworks: source.ListArtworks(ctx, name),
		})
	}

	if cmd.Bool("json") {
		return r.writeJSON(models.Manifest{Categories: categories}, cmd.Bool("pretty"))
	}

	r.writePlainHeader(fmt.Sprintf("Discovered %d categories (%s source)", len(categories), source.Mode()))
	for _, category := range categories {
		r.writePlainln("%s (%d artworks)", category.Name, len(category.Artworks))
		for _, artwork := range category.Artworks {
			if artwork.Year != "" {
				r.writePlain("  %s (%s)\n", artwork.Title, artwork.Year)
			} else {
				r.writePlain("  %s\n", artwork.Title)
			}
		}
	}

	return nil
}
