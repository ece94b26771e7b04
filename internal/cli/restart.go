// restart.go implements "mailgram restart", which restarts the running
// containers in place without recreating them.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/mailgram/internal/config"
)

// NewRestartCommand creates the "restart" cobra command.
func NewRestartCommand(settings config.Settings) *cobra.Command {
	return &cobra.Command{
		Use:   "restart",
		Short: "Restart the bot containers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRestart(commandContext(cmd), settings)
		},
	}
}

func runRestart(ctx context.Context, settings config.Settings) error {
	if err := checkPreconditions(settings, true); err != nil {
		return err
	}

	Info("restarting containers...")
	if err := newRunner(settings).Restart(ctx); err != nil {
		return err
	}

	Success("containers restarted")
	return nil
}
