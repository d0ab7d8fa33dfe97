package main

import (
	"context"
	"fmt"
	"os"

	"github.com/desertthunder/folio/internal/shared"
	"github.com/urfave/cli/v3"
)

// Setup writes a starter config.toml from the embedded example.
func (r *Runner) Setup(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	if _, err := os.Stat(configPath); err == nil {
		r.logger.Warn("config file already exists", "path", configPath)
		return fmt.Errorf("%w: %s already exists", shared.ErrInvalidArgument, configPath)
	}

	if err := shared.CreateConfigFile(configPath); err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}

	r.logger.Info("config file created", "path", configPath)

	r.writePlain("✓ Configuration written to %s\n", configPath)
	r.writePlainln("Next steps:")
	r.writePlain("1. Point portfolio.root_url at your asset server\n")
	r.writePlain("2. Run 'folio discover' to check what the source finds\n")

	return nil
}
