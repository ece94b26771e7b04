// Package main is the entry point for the mailgram binary.
//
// mailgram is an email-to-Telegram bot together with the tooling that
// operates its containerized deployment. The lifecycle subcommands wrap
// docker compose and the Docker API; the serve subcommand runs the bot
// itself. All functionality lives in internal/cli.
package main

import (
	"os"

	"github.com/mmr-tortoise/mailgram/internal/cli"
	"github.com/mmr-tortoise/mailgram/internal/config"
)

// version, commit and date are set at build time via ldflags and
// default to development placeholders otherwise.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cli.Version = version
	cli.Commit = commit
	cli.Date = date

	// Settings are resolved once here and passed to every command
	// handler; nothing below main reads the environment ad hoc.
	projectDir, err := os.Getwd()
	if err != nil {
		cli.Error("cannot determine working directory: %v", err)
		os.Exit(1)
	}
	settings, err := config.LoadSettings(projectDir)
	if err != nil {
		cli.Error("%v", err)
		os.Exit(1)
	}

	rootCmd := cli.NewRootCommand(settings)
	cli.Execute(rootCmd)
}
