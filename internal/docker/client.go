package docker

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/docker/docker/client"

	"github.com/mmr-tortoise/mailgram/internal/model"
)

// pingTimeout bounds the daemon liveness probe. Docker Desktop on macOS
// can take a few seconds to answer after waking, so this is generous.
const pingTimeout = 5 * time.Second

// Client wraps the Docker SDK client with socket auto-detection and a
// bounded Ping. The wrapper keeps the exposed surface small; the
// listing and prune helpers in this package reach the SDK through it.
type Client struct {
	inner *client.Client
}

// NewClient connects to the Docker daemon. DOCKER_HOST is honored when
// set; otherwise the platform's default socket locations are probed.
// Failures are reported as exit-code-1 CLIErrors because a missing or
// unreachable daemon is a precondition failure for every command that
// gets here.
func NewClient() (*Client, error) {
	host := os.Getenv("DOCKER_HOST")
	if host == "" {
		detected, err := detectDockerHost()
		if err != nil {
			return nil, model.WrapCLIError(model.ExitGeneralError,
				"Docker socket not found: is Docker running?", err)
		}
		host = detected
	}

	// API version negotiation keeps the client compatible with whatever
	// daemon version is installed.
	c, err := client.NewClientWithOpts(
		client.WithHost(host),
		client.WithAPIVersionNegotiation(),
	)
	if err != nil {
		return nil, model.WrapCLIError(model.ExitGeneralError,
			fmt.Sprintf("failed to create Docker client for host %q", host), err)
	}
	return &Client{inner: c}, nil
}

// detectDockerHost returns the Docker connection string for the current
// platform by probing known socket paths. Existence of the socket file
// does not guarantee the daemon is up; Ping verifies that separately.
func detectDockerHost() (string, error) {
	var candidates []string
	switch runtime.GOOS {
	case "linux":
		candidates = []string{"/var/run/docker.sock"}
	case "darwin":
		candidates = []string{"/var/run/docker.sock"}
		if home, err := os.UserHomeDir(); err == nil {
			// Newer Docker Desktop versions skip the /var/run symlink.
			candidates = append(candidates, home+"/.docker/run/docker.sock")
		}
	default:
		return "", fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return "unix://" + path, nil
		}
	}
	return "", fmt.Errorf("no Docker socket at any of %v", candidates)
}

// Ping verifies the daemon is reachable and responsive within
// pingTimeout.
func (c *Client) Ping(ctx context.Context) error {
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if _, err := c.inner.Ping(pingCtx); err != nil {
		return model.WrapCLIError(model.ExitGeneralError,
			"Docker daemon is not responding: is Docker running?", err)
	}
	return nil
}

// Close releases the client's resources. Safe to call multiple times.
func (c *Client) Close() error {
	if c.inner != nil {
		return c.inner.Close()
	}
	return nil
}
