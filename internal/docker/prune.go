// prune.go removes unused Docker resources for the clean command:
// stopped containers, dangling images and unused networks. Volumes are
// not pruned here: the clean command removes the project's own volumes
// through compose down -v, and a global volume prune would touch data
// owned by unrelated deployments.
package docker

import (
	"context"

	"github.com/docker/docker/api/types/filters"

	"github.com/mmr-tortoise/mailgram/internal/model"
)

// PruneReport summarizes what a prune pass removed.
type PruneReport struct {
	// ContainersDeleted counts removed stopped containers.
	ContainersDeleted int

	// ImagesDeleted counts removed dangling images.
	ImagesDeleted int

	// NetworksDeleted counts removed unused networks.
	NetworksDeleted int

	// SpaceReclaimed is the number of bytes freed.
	SpaceReclaimed uint64
}

// PruneUnused removes stopped containers, dangling images and unused
// networks. Each prune runs even if an earlier one failed; the first
// error is returned after all three have been attempted, so a partial
// failure still reclaims what it can.
func PruneUnused(ctx context.Context, cli *Client) (PruneReport, error) {
	var report PruneReport
	var firstErr error

	containerReport, err := cli.inner.ContainersPrune(ctx, filters.NewArgs())
	if err != nil {
		firstErr = err
	} else {
		report.ContainersDeleted = len(containerReport.ContainersDeleted)
		report.SpaceReclaimed += containerReport.SpaceReclaimed
	}

	// dangling=true limits image pruning to untagged layers, matching
	// "docker image prune" without --all.
	imageReport, err := cli.inner.ImagesPrune(ctx,
		filters.NewArgs(filters.Arg("dangling", "true")))
	if err != nil && firstErr == nil {
		firstErr = err
	} else if err == nil {
		report.ImagesDeleted = len(imageReport.ImagesDeleted)
		report.SpaceReclaimed += imageReport.SpaceReclaimed
	}

	networkReport, err := cli.inner.NetworksPrune(ctx, filters.NewArgs())
	if err != nil && firstErr == nil {
		firstErr = err
	} else if err == nil {
		report.NetworksDeleted = len(networkReport.NetworksDeleted)
	}

	if firstErr != nil {
		return report, model.WrapCLIError(model.ExitGeneralError,
			"failed to prune unused Docker resources", firstErr)
	}
	return report, nil
}
