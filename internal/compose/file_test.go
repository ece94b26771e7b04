package compose

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeComposeFile writes a compose file into a temp dir and returns its path.
func writeComposeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "docker-compose.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// TestParseFile verifies service discovery from a typical deployment
// compose file.
func TestParseFile(t *testing.T) {
	path := writeComposeFile(t, `
services:
  bot:
    build: .
    env_file: .env
    volumes:
      - ./logs:/app/logs
  watchtower:
    image: containrrr/watchtower
`)

	f, err := ParseFile(path)

	require.NoError(t, err)
	assert.Equal(t, []string{"bot", "watchtower"}, f.ServiceNames(), "names should be sorted")
	assert.True(t, f.HasService("bot"))
	assert.False(t, f.HasService("db"))
}

// TestParseFile_NoServices verifies that a compose file without a
// services section is rejected.
func TestParseFile_NoServices(t *testing.T) {
	path := writeComposeFile(t, "version: \"3.8\"\n")

	_, err := ParseFile(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no services")
}

// TestParseFile_Malformed verifies YAML errors surface with the file name.
func TestParseFile_Malformed(t *testing.T) {
	path := writeComposeFile(t, "services: [broken\n")

	_, err := ParseFile(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid compose file")
}

// TestResolveService verifies the error for an unknown service lists the
// valid choices.
func TestResolveService(t *testing.T) {
	path := writeComposeFile(t, "services:\n  bot:\n    image: x\n")
	f, err := ParseFile(path)
	require.NoError(t, err)

	assert.NoError(t, f.ResolveService("bot"))

	err = f.ResolveService("bott")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "services: bot")

	err = f.ResolveService("Bad Name")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid service argument")
}

// TestProjectName verifies the explicit name wins and the directory
// fallback is normalized the way compose normalizes it.
func TestProjectName(t *testing.T) {
	path := writeComposeFile(t, "name: mailbot\nservices:\n  bot:\n    image: x\n")
	f, err := ParseFile(path)
	require.NoError(t, err)
	assert.Equal(t, "mailbot", f.ProjectName("/srv/Whatever"))

	path = writeComposeFile(t, "services:\n  bot:\n    image: x\n")
	f, err = ParseFile(path)
	require.NoError(t, err)
	assert.Equal(t, "my-bot-dir", f.ProjectName("/srv/My Bot.Dir"))
}

// TestNormalizeProjectName covers the character replacement rules.
func TestNormalizeProjectName(t *testing.T) {
	assert.Equal(t, "mailgram", NormalizeProjectName("Mailgram"))
	assert.Equal(t, "email-bot", NormalizeProjectName("email bot"))
	assert.Equal(t, "a_b-c-1", NormalizeProjectName("A_B-C.1"))
}
