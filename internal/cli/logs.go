// logs.go implements "mailgram logs [service] [lines]": follow one
// service's log stream, defaulting to the bot service and the
// configured tail length. Both positional arguments pass through to
// docker compose unchanged when given.
package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/mailgram/internal/compose"
	"github.com/mmr-tortoise/mailgram/internal/config"
	"github.com/mmr-tortoise/mailgram/internal/model"
)

// NewLogsCommand creates the "logs" cobra command.
func NewLogsCommand(settings config.Settings) *cobra.Command {
	return &cobra.Command{
		Use:   "logs [service] [lines]",
		Short: "Follow a service's logs",
		Long: fmt.Sprintf(`Follow the log stream of one service.

The service defaults to %q and the tail length to %d lines.

Examples:
  mailgram logs
  mailgram logs bot 50`, settings.Service, settings.TailLines),
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			service, tail, err := logsTarget(settings, args)
			if err != nil {
				return err
			}
			return runLogs(commandContext(cmd), settings, service, tail)
		},
	}
}

// logsTarget resolves the positional arguments into a service name and
// tail length, falling back to the configured defaults when an argument
// is absent. Explicit arguments pass through unchanged.
func logsTarget(settings config.Settings, args []string) (string, int, error) {
	service := settings.Service
	tail := settings.TailLines

	if len(args) >= 1 {
		service = args[0]
	}
	if len(args) == 2 {
		n, err := strconv.Atoi(args[1])
		if err != nil || n < 1 {
			return "", 0, model.NewCLIError(model.ExitGeneralError,
				fmt.Sprintf("invalid line count %q: must be a positive integer", args[1]))
		}
		tail = n
	}
	return service, tail, nil
}

func runLogs(ctx context.Context, settings config.Settings, service string, tail int) error {
	if err := checkPreconditions(settings, false); err != nil {
		return err
	}
	if err := resolveService(settings, service); err != nil {
		return err
	}

	err := newRunner(settings).Logs(ctx, service, tail)
	if interrupted(err) {
		// Ctrl-C out of a log follow is the normal way to leave it.
		return nil
	}
	return err
}

// resolveService validates a service name against the compose file when
// the file is readable; an unreadable compose file is reported as its
// own error.
func resolveService(settings config.Settings, service string) error {
	composeFile, err := compose.ParseFile(settings.ComposePath())
	if err != nil {
		return err
	}
	return composeFile.ResolveService(service)
}
