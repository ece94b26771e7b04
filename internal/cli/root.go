// Package cli implements the cobra commands for mailgram.
//
// The lifecycle commands (start, stop, restart, build, rebuild, status,
// logs, shell, clean, update, backup) manage the containerized
// deployment through docker compose and the Docker API; serve runs the
// bot itself. Each subcommand lives in its own file and receives the
// resolved Settings explicitly; no handler reads the environment on
// its own.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/mailgram/internal/compose"
	"github.com/mmr-tortoise/mailgram/internal/config"
	"github.com/mmr-tortoise/mailgram/internal/model"
)

// verbose enables trace output on stderr. Bound as a persistent flag so
// every subcommand inherits it.
var verbose bool

// Version, Commit and Date are injected from the main package, which
// receives them from ldflags at build time.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// NewRootCommand creates the root command with all subcommands
// registered. settings must already be resolved for the project
// directory the CLI operates on.
func NewRootCommand(settings config.Settings) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "mailgram",
		Short: "Manage the email-to-Telegram bot deployment",
		Long: `mailgram manages the containerized email-to-Telegram bot: it wraps the
docker compose lifecycle (start, stop, build, logs, shell, clean, update),
snapshots the bot's logs, and (with the serve command) runs the bot
itself.`,

		// Errors are formatted by Execute; cobra's own usage/error
		// printing would duplicate them.
		SilenceUsage:  true,
		SilenceErrors: true,

		// An unrecognized command falls through to help, exit 0.
		// ArbitraryArgs keeps cobra from rejecting the unknown token
		// before this handler sees it.
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				Warn("unknown command %q", args[0])
			}
			return cmd.Help()
		},

		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date),
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	rootCmd.AddCommand(NewStartCommand(settings))
	rootCmd.AddCommand(NewStopCommand(settings))
	rootCmd.AddCommand(NewRestartCommand(settings))
	rootCmd.AddCommand(NewBuildCommand(settings))
	rootCmd.AddCommand(NewRebuildCommand(settings))
	rootCmd.AddCommand(NewStatusCommand(settings))
	rootCmd.AddCommand(NewLogsCommand(settings))
	rootCmd.AddCommand(NewShellCommand(settings))
	rootCmd.AddCommand(NewCleanCommand(settings))
	rootCmd.AddCommand(NewUpdateCommand(settings))
	rootCmd.AddCommand(NewBackupCommand(settings))
	rootCmd.AddCommand(NewServeCommand(settings))

	return rootCmd
}

// Execute runs the root command and translates errors into exit codes.
// CLIErrors carry their own code (compose failures propagate the child
// process code); anything else exits 1.
func Execute(rootCmd *cobra.Command) {
	if err := rootCmd.Execute(); err != nil {
		var cliErr *model.CLIError
		if errors.As(err, &cliErr) {
			Error("%s", cliErr.Error())
			os.Exit(int(cliErr.Code))
		}
		Error("%s", err.Error())
		os.Exit(int(model.ExitGeneralError))
	}
}

// newRunner builds the compose runner for a settings object, wiring the
// verbose trace.
func newRunner(settings config.Settings) *compose.Runner {
	r := compose.NewRunner(settings.ProjectDir, settings.ComposeFile)
	r.Trace = VerboseLog
	return r
}

// checkPreconditions verifies the docker binary is installed and, when
// requireEnvFile is set, that the env file exists. Both failures exit
// with code 1 before any state is touched.
func checkPreconditions(settings config.Settings, requireEnvFile bool) error {
	if err := compose.EnsureDockerInstalled(); err != nil {
		return err
	}
	if requireEnvFile {
		if _, err := os.Stat(settings.EnvPath()); err != nil {
			return model.NewCLIError(model.ExitGeneralError,
				fmt.Sprintf("environment file %s not found; copy .env.example and fill in the bot credentials", settings.EnvPath()))
		}
	}
	return nil
}

// interrupted reports whether an error is the exit status of a child
// process the user interrupted. Following logs or leaving a shell with
// Ctrl-C is normal termination, not a failure.
func interrupted(err error) bool {
	var cliErr *model.CLIError
	return errors.As(err, &cliErr) && cliErr.Code == 130
}

// commandContext returns the cobra command's context, defaulting to
// Background for commands constructed outside Execute (tests).
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
