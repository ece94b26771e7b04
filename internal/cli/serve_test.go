package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmr-tortoise/mailgram/internal/model"
)

// TestRunServe_RejectsInvalidLogLevel verifies an unknown --log-level
// value fails up front instead of silently falling back to info.
func TestRunServe_RejectsInvalidLogLevel(t *testing.T) {
	err := runServe(context.Background(), testSettings(t), "chatty")

	var cliErr *model.CLIError
	require.ErrorAs(t, err, &cliErr)
	assert.Equal(t, model.ExitGeneralError, cliErr.Code)
	assert.Contains(t, err.Error(), `invalid log level "chatty"`)
}
