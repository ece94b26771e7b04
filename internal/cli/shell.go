// shell.go implements "mailgram shell [service]" (alias: bash): an
// interactive shell inside a running service container, trying bash
// first and falling back to sh for minimal images.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/mailgram/internal/config"
)

// NewShellCommand creates the "shell" cobra command.
func NewShellCommand(settings config.Settings) *cobra.Command {
	return &cobra.Command{
		Use:     "shell [service]",
		Aliases: []string{"bash"},
		Short:   "Open a shell in a running container",
		Long: `Open an interactive shell inside a running service container.

The service defaults to the bot service. The container must already be
running (see: mailgram start).`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			service := settings.Service
			if len(args) == 1 {
				service = args[0]
			}
			return runShell(commandContext(cmd), settings, service)
		},
	}
}

func runShell(ctx context.Context, settings config.Settings, service string) error {
	if err := checkPreconditions(settings, false); err != nil {
		return err
	}
	if err := resolveService(settings, service); err != nil {
		return err
	}

	VerboseLog("opening shell in service %q", service)
	err := newRunner(settings).Shell(ctx, service)
	if interrupted(err) {
		return nil
	}
	return err
}
