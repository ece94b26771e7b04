// stop.go implements "mailgram stop" (alias: down), which stops and
// removes the deployment's containers and networks. Volumes and images
// are preserved; the clean command removes those.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/mailgram/internal/config"
)

// NewStopCommand creates the "stop" cobra command.
func NewStopCommand(settings config.Settings) *cobra.Command {
	return &cobra.Command{
		Use:     "stop",
		Aliases: []string{"down"},
		Short:   "Stop the bot containers",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStop(commandContext(cmd), settings)
		},
	}
}

func runStop(ctx context.Context, settings config.Settings) error {
	if err := checkPreconditions(settings, false); err != nil {
		return err
	}

	Info("stopping containers...")
	if err := newRunner(settings).Down(ctx); err != nil {
		return err
	}

	Success("containers stopped")
	return nil
}
