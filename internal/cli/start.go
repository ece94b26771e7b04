// start.go implements "mailgram start" (alias: up), which brings the
// deployment up in detached mode after checking that docker is
// installed and the env file exists.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/mailgram/internal/config"
)

// NewStartCommand creates the "start" cobra command.
func NewStartCommand(settings config.Settings) *cobra.Command {
	return &cobra.Command{
		Use:     "start",
		Aliases: []string{"up"},
		Short:   "Start the bot containers",
		Long: `Start the deployment in detached mode via docker compose up -d.

Fails with exit code 1 when docker is not installed or the environment
file with the bot credentials is missing.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStart(commandContext(cmd), settings)
		},
	}
}

func runStart(ctx context.Context, settings config.Settings) error {
	if err := checkPreconditions(settings, true); err != nil {
		return err
	}

	Info("starting containers...")
	if err := newRunner(settings).Up(ctx); err != nil {
		return err
	}

	Success("containers started")
	Info("follow the bot with: mailgram logs")
	return nil
}
