// status.go implements "mailgram status": a table of the compose
// project's containers with their states, fetched through the Docker
// API rather than by shelling out, so stopped containers are included
// and the daemon connection is verified with a ping first.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/mailgram/internal/compose"
	"github.com/mmr-tortoise/mailgram/internal/config"
	"github.com/mmr-tortoise/mailgram/internal/docker"
	"github.com/mmr-tortoise/mailgram/internal/model"
)

// NewStatusCommand creates the "status" cobra command.
func NewStatusCommand(settings config.Settings) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the deployment's container states",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(commandContext(cmd), settings)
		},
	}
}

func runStatus(ctx context.Context, settings config.Settings) error {
	if err := checkPreconditions(settings, false); err != nil {
		return err
	}

	cli, err := docker.NewClient()
	if err != nil {
		return err
	}
	defer func() { _ = cli.Close() }()

	if err := cli.Ping(ctx); err != nil {
		return err
	}
	VerboseLog("connected to Docker daemon")

	composeFile, err := compose.ParseFile(settings.ComposePath())
	if err != nil {
		return err
	}
	project := composeFile.ProjectName(settings.ProjectDir)
	VerboseLog("compose project %q", project)

	containers, err := docker.ListProjectContainers(ctx, cli, project)
	if err != nil {
		return err
	}

	if len(containers) == 0 {
		Info("no containers found for project %q; run: mailgram start", project)
		return nil
	}

	printStatusTable(containers)
	return nil
}

// printStatusTable renders one line per container with a colored state
// cell.
func printStatusTable(containers []model.ContainerSummary) {
	fmt.Printf("  %-12s %-28s %-10s %s\n", "SERVICE", "CONTAINER", "STATE", "STATUS")
	for _, c := range containers {
		// Pad before styling: ANSI escapes would break %-10s alignment.
		state := stateStyle(c.IsRunning()).Render(fmt.Sprintf("%-10s", c.State))
		fmt.Printf("  %-12s %-28s %s %s\n",
			c.ServiceName, c.ContainerName, state, c.Status)
	}
}
