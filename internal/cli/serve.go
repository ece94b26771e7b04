// serve.go implements "mailgram serve": the bot runtime itself. This
// is the command the container image runs. It loads and validates the
// bot configuration, then runs the mailbox monitor and the Telegram
// command loop until SIGINT or SIGTERM.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/mmr-tortoise/mailgram/internal/bot"
	"github.com/mmr-tortoise/mailgram/internal/config"
	"github.com/mmr-tortoise/mailgram/internal/mail"
	"github.com/mmr-tortoise/mailgram/internal/model"
	"github.com/mmr-tortoise/mailgram/internal/telegram"
)

// NewServeCommand creates the "serve" cobra command.
func NewServeCommand(settings config.Settings) *cobra.Command {
	var logLevel string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the email-to-Telegram bot",
		Long: `Run the bot in the foreground: poll the configured mailbox over IMAP
and forward new emails to the configured Telegram groups.

Configuration comes from the env file and the process environment
(BOT_TOKEN, EMAIL_ACC, EMAIL_PASS, NOTIFIED_GROUPS; optionally
IMAP_SERVER, IMAP_PORT, CHECK_INTERVAL, SENDER_FILTER).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(commandContext(cmd), settings, logLevel)
		},
	}

	cmd.Flags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	return cmd
}

func runServe(ctx context.Context, settings config.Settings, logLevel string) error {
	level, err := zerolog.ParseLevel(logLevel)
	if err != nil {
		return model.WrapCLIError(model.ExitGeneralError,
			fmt.Sprintf("invalid log level %q: use debug, info, warn or error", logLevel), err)
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		With().Timestamp().Str("service", "mailgram").Logger().
		Level(level)

	cfg, err := config.LoadBotConfig(settings.EnvPath())
	if err != nil {
		return err
	}
	logger.Info().
		Str("account", cfg.EmailAccount).
		Int("groups", len(cfg.Groups)).
		Str("imap", cfg.IMAPAddr()).
		Msg("configuration loaded")

	notifier, err := telegram.NewNotifier(cfg.BotToken, cfg.Groups, logger)
	if err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "failed to start Telegram bot", err)
	}

	reader := mail.NewReader(cfg.IMAPAddr(), cfg.EmailAccount, cfg.EmailPassword, cfg.SenderFilter, logger)
	stats := model.NewStats(time.Now())
	monitor := bot.NewMonitor(reader, notifier, cfg.CheckInterval, stats, logger)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return monitor.Run(ctx) })
	g.Go(func() error {
		return notifier.ServeCommands(ctx, func() telegram.StatusInfo {
			return telegram.StatusInfo{
				Snapshot: stats.Snapshot(time.Now()),
				Account:  cfg.EmailAccount,
				Groups:   len(cfg.Groups),
			}
		})
	})

	logger.Info().Str("bot", notifier.BotName()).Msg("bot is running")
	if err := g.Wait(); err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "bot terminated with error", err)
	}

	logger.Info().Msg("bot shut down cleanly")
	return nil
}
