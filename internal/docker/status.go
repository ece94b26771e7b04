// status.go lists the containers belonging to the deployment's compose
// project. Compose tags every container it creates with the
// com.docker.compose.project label, so a server-side label filter is
// enough to find them, including stopped ones, which the status
// command still wants to show.
package docker

import (
	"context"
	"fmt"
	"strings"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/filters"

	"github.com/mmr-tortoise/mailgram/internal/model"
)

// Compose-owned labels read back from containers.
const (
	// labelComposeProject carries the compose project name.
	labelComposeProject = "com.docker.compose.project"

	// labelComposeService carries the compose service name.
	labelComposeService = "com.docker.compose.service"
)

// ListProjectContainers returns summaries for all containers of the
// given compose project, stopped ones included.
func ListProjectContainers(ctx context.Context, cli *Client, project string) ([]model.ContainerSummary, error) {
	filterArgs := filters.NewArgs(
		filters.Arg("label", labelComposeProject+"="+project),
	)

	containers, err := cli.inner.ContainerList(ctx, container.ListOptions{
		All:     true,
		Filters: filterArgs,
	})
	if err != nil {
		return nil, model.WrapCLIError(model.ExitGeneralError,
			fmt.Sprintf("failed to list containers for project %q", project), err)
	}

	summaries := make([]model.ContainerSummary, 0, len(containers))
	for _, c := range containers {
		summaries = append(summaries, summarize(c))
	}
	return summaries, nil
}

// summarize maps a Docker API container to the domain summary. The API
// reports names with a leading "/" that is stripped for display.
func summarize(c types.Container) model.ContainerSummary {
	name := ""
	if len(c.Names) > 0 {
		name = strings.TrimPrefix(c.Names[0], "/")
	}
	return model.ContainerSummary{
		ContainerID:   c.ID,
		ContainerName: name,
		ServiceName:   c.Labels[labelComposeService],
		State:         c.State,
		Status:        c.Status,
	}
}
