// build.go implements "mailgram build" and "mailgram rebuild". Build
// compiles the images with the layer cache; rebuild discards the cache
// and recreates the running containers from the fresh images.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/mailgram/internal/config"
)

// NewBuildCommand creates the "build" cobra command.
func NewBuildCommand(settings config.Settings) *cobra.Command {
	return &cobra.Command{
		Use:   "build",
		Short: "Build the bot images",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(commandContext(cmd), settings)
		},
	}
}

func runBuild(ctx context.Context, settings config.Settings) error {
	if err := checkPreconditions(settings, false); err != nil {
		return err
	}

	Info("building images...")
	if err := newRunner(settings).Build(ctx, false, false); err != nil {
		return err
	}

	Success("images built")
	return nil
}

// NewRebuildCommand creates the "rebuild" cobra command.
func NewRebuildCommand(settings config.Settings) *cobra.Command {
	return &cobra.Command{
		Use:   "rebuild",
		Short: "Rebuild the images from scratch and restart",
		Long: `Rebuild the bot images without the layer cache, then recreate the
running containers from the new images.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRebuild(commandContext(cmd), settings)
		},
	}
}

func runRebuild(ctx context.Context, settings config.Settings) error {
	if err := checkPreconditions(settings, true); err != nil {
		return err
	}

	runner := newRunner(settings)

	Info("rebuilding images without cache...")
	if err := runner.Build(ctx, true, false); err != nil {
		return err
	}

	Info("recreating containers...")
	if err := runner.Up(ctx); err != nil {
		return err
	}

	Success("rebuild complete")
	return nil
}
