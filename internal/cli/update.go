// update.go implements "mailgram update": pull newer base images,
// rebuild, and recreate the running containers. Pull failures are
// non-fatal because build-only services have nothing to pull.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/mailgram/internal/config"
)

// NewUpdateCommand creates the "update" cobra command.
func NewUpdateCommand(settings config.Settings) *cobra.Command {
	return &cobra.Command{
		Use:   "update",
		Short: "Pull newer images, rebuild and restart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUpdate(commandContext(cmd), settings)
		},
	}
}

func runUpdate(ctx context.Context, settings config.Settings) error {
	if err := checkPreconditions(settings, true); err != nil {
		return err
	}

	runner := newRunner(settings)

	Info("pulling newer images...")
	if err := runner.Pull(ctx); err != nil {
		Warn("image pull failed (continuing with build): %v", err)
	}

	Info("rebuilding images...")
	if err := runner.Build(ctx, false, true); err != nil {
		return err
	}

	Info("recreating containers...")
	if err := runner.Up(ctx); err != nil {
		return err
	}

	Success("update complete")
	return nil
}
