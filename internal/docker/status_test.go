package docker

import (
	"testing"

	"github.com/docker/docker/api/types"
	"github.com/stretchr/testify/assert"
)

// TestSummarize verifies the API-to-domain mapping: name prefix
// stripping and compose label extraction.
func TestSummarize(t *testing.T) {
	c := types.Container{
		ID:     "abc123def456",
		Names:  []string{"/mailgram-bot-1"},
		State:  "running",
		Status: "Up 3 hours",
		Labels: map[string]string{
			labelComposeProject: "mailgram",
			labelComposeService: "bot",
		},
	}

	summary := summarize(c)

	assert.Equal(t, "abc123def456", summary.ContainerID)
	assert.Equal(t, "mailgram-bot-1", summary.ContainerName, "leading slash should be stripped")
	assert.Equal(t, "bot", summary.ServiceName)
	assert.Equal(t, "running", summary.State)
	assert.Equal(t, "Up 3 hours", summary.Status)
	assert.True(t, summary.IsRunning())
}

// TestSummarize_NoNames covers the degenerate case of a container the
// API reports without names.
func TestSummarize_NoNames(t *testing.T) {
	summary := summarize(types.Container{ID: "xyz", State: "exited"})

	assert.Equal(t, "", summary.ContainerName)
	assert.Equal(t, "", summary.ServiceName)
	assert.False(t, summary.IsRunning())
}
