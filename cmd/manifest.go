package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/folio/internal/content"
	"github.com/desertthunder/folio/internal/models"
	"github.com/desertthunder/folio/internal/shared"
	"github.com/urfave/cli/v3"
)

// ManifestBuild scans a local asset tree into a manifest.json file.
func (r *Runner) ManifestBuild(ctx context.Context, cmd *cli.Command) error {
	dir := cmd.StringArg("dir")
	if dir == "" {
		return fmt.Errorf("%w: asset directory argument is required", shared.ErrMissingArgument)
	}

	r.logger.Info("scanning asset tree", "dir", dir)

	manifest, err := content.BuildManifest(dir)
	if err != nil {
		return fmt.Errorf("failed to build manifest: %w", err)
	}

	outputPath := cmd.String("output")
	if err := content.WriteManifest(manifest, outputPath); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}

	r.logger.Info("manifest written", "path", outputPath,
		"categories", len(manifest.Categories), "artworks", manifest.ArtworkCount())

	r.writePlain("✓ %s: %d categories, %d artworks\n",
		outputPath, len(manifest.Categories), manifest.ArtworkCount())

	return nil
}

// ManifestShow prints the effective manifest for the current configuration.
func (r *Runner) ManifestShow(ctx context.Context, cmd *cli.Command) error {
	config := r.loadConfig(cmd)

	var manifest *models.Manifest
	if path := config.Portfolio.ManifestPath; path != "" {
		loaded, err := content.LoadManifest(path)
		if err != nil {
			return fmt.Errorf("failed to load manifest: %w", err)
		}
		manifest = loaded
	} else {
		manifest = content.DefaultManifest()
	}

	return r.writeJSON(manifest, cmd.Bool("pretty"))
}
