// clean.go implements "mailgram clean": full teardown of the
// deployment (compose down -v) followed by a prune of stopped
// containers, dangling images and unused networks. Destructive, so it
// asks for confirmation unless --yes is given.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/mailgram/internal/config"
	"github.com/mmr-tortoise/mailgram/internal/docker"
)

// NewCleanCommand creates the "clean" cobra command.
func NewCleanCommand(settings config.Settings) *cobra.Command {
	var assumeYes bool

	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove the deployment and prune unused Docker resources",
		Long: `Stop the deployment, remove its containers, networks and volumes, and
prune stopped containers, dangling images and unused networks.

This deletes the bot's volumes. A confirmation prompt guards the
operation; answering anything but "y" or "yes" cancels it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClean(commandContext(cmd), settings, assumeYes, cmd.InOrStdin())
		},
	}

	cmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

func runClean(ctx context.Context, settings config.Settings, assumeYes bool, in io.Reader) error {
	if !assumeYes {
		if !confirm(in, "This removes all bot containers, networks and volumes. Continue? [y/N] ") {
			Info("clean cancelled")
			return nil
		}
	}

	if err := checkPreconditions(settings, false); err != nil {
		return err
	}

	Info("removing deployment...")
	if err := newRunner(settings).DownWithVolumes(ctx); err != nil {
		return err
	}

	cli, err := docker.NewClient()
	if err != nil {
		return err
	}
	defer func() { _ = cli.Close() }()

	Info("pruning unused Docker resources...")
	report, err := docker.PruneUnused(ctx, cli)
	if err != nil {
		return err
	}

	Success("clean complete: %d containers, %d images, %d networks removed (%.1f MB reclaimed)",
		report.ContainersDeleted, report.ImagesDeleted, report.NetworksDeleted,
		float64(report.SpaceReclaimed)/(1024*1024))
	return nil
}

// confirm prints the prompt and reads one line; only "y" and "yes"
// (case-insensitive) proceed.
func confirm(in io.Reader, prompt string) bool {
	fmt.Print(prompt)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
