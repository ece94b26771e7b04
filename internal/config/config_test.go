package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearBotEnv blanks every variable LoadBotConfig reads so tests are
// insulated from the invoking environment.
func clearBotEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"BOT_TOKEN", "NOTIFIED_GROUPS", "EMAIL_ACC", "EMAIL_PASS",
		"IMAP_SERVER", "IMAP_PORT", "CHECK_INTERVAL", "SENDER_FILTER",
	} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

// TestLoadBotConfig_FromEnvFile verifies that a well-formed env file
// produces a validated config with defaults applied.
func TestLoadBotConfig_FromEnvFile(t *testing.T) {
	clearBotEnv(t)

	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	content := "BOT_TOKEN=123:abc\n" +
		"NOTIFIED_GROUPS=-100123, @alerts ,,-100456\n" +
		"EMAIL_ACC=watch@yandex.ru\n" +
		"EMAIL_PASS=app-password\n"
	require.NoError(t, os.WriteFile(envPath, []byte(content), 0o600))

	cfg, err := LoadBotConfig(envPath)

	require.NoError(t, err)
	assert.Equal(t, "123:abc", cfg.BotToken)
	assert.Equal(t, "watch@yandex.ru", cfg.EmailAccount)
	assert.Equal(t, "app-password", cfg.EmailPassword)
	// Empty entries are dropped, remaining entries trimmed.
	assert.Equal(t, []string{"-100123", "@alerts", "-100456"}, cfg.Groups)
	// Optional variables fall back to defaults.
	assert.Equal(t, DefaultIMAPServer, cfg.IMAPServer)
	assert.Equal(t, DefaultIMAPPort, cfg.IMAPPort)
	assert.Equal(t, DefaultCheckInterval, cfg.CheckInterval)
	assert.Equal(t, "imap.yandex.ru:993", cfg.IMAPAddr())
}

// TestLoadBotConfig_EnvOverridesFile verifies that variables already in
// the environment win over the env file, matching container deployments
// where the runtime injects them.
func TestLoadBotConfig_EnvOverridesFile(t *testing.T) {
	clearBotEnv(t)
	t.Setenv("BOT_TOKEN", "env-token")
	t.Setenv("NOTIFIED_GROUPS", "-1")
	t.Setenv("EMAIL_ACC", "env@yandex.ru")
	t.Setenv("EMAIL_PASS", "env-pass")

	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envPath,
		[]byte("BOT_TOKEN=file-token\nNOTIFIED_GROUPS=-2\nEMAIL_ACC=file@yandex.ru\nEMAIL_PASS=file-pass\n"), 0o600))

	cfg, err := LoadBotConfig(envPath)

	require.NoError(t, err)
	assert.Equal(t, "env-token", cfg.BotToken, "environment should take precedence over the file")
}

// TestLoadBotConfig_MissingRequired verifies the validation error names
// the first missing variable.
func TestLoadBotConfig_MissingRequired(t *testing.T) {
	clearBotEnv(t)
	t.Setenv("BOT_TOKEN", "123:abc")
	t.Setenv("NOTIFIED_GROUPS", "-1")
	// EMAIL_ACC and EMAIL_PASS deliberately unset.

	_, err := LoadBotConfig(filepath.Join(t.TempDir(), ".env"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "EMAIL_ACC")
}

// TestLoadBotConfig_GroupsAllEmpty verifies that a NOTIFIED_GROUPS value
// consisting only of separators is treated as unset.
func TestLoadBotConfig_GroupsAllEmpty(t *testing.T) {
	clearBotEnv(t)
	t.Setenv("BOT_TOKEN", "123:abc")
	t.Setenv("NOTIFIED_GROUPS", " , ,")
	t.Setenv("EMAIL_ACC", "a@b.c")
	t.Setenv("EMAIL_PASS", "p")

	_, err := LoadBotConfig(filepath.Join(t.TempDir(), ".env"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "NOTIFIED_GROUPS")
}

// TestLoadBotConfig_IntervalForms verifies both accepted CHECK_INTERVAL
// syntaxes and the rejection of sub-second values.
func TestLoadBotConfig_IntervalForms(t *testing.T) {
	clearBotEnv(t)
	t.Setenv("BOT_TOKEN", "123:abc")
	t.Setenv("NOTIFIED_GROUPS", "-1")
	t.Setenv("EMAIL_ACC", "a@b.c")
	t.Setenv("EMAIL_PASS", "p")

	t.Setenv("CHECK_INTERVAL", "45")
	cfg, err := LoadBotConfig(filepath.Join(t.TempDir(), ".env"))
	require.NoError(t, err)
	assert.Equal(t, 45*time.Second, cfg.CheckInterval)

	t.Setenv("CHECK_INTERVAL", "2m")
	cfg, err = LoadBotConfig(filepath.Join(t.TempDir(), ".env"))
	require.NoError(t, err)
	assert.Equal(t, 2*time.Minute, cfg.CheckInterval)

	t.Setenv("CHECK_INTERVAL", "100ms")
	_, err = LoadBotConfig(filepath.Join(t.TempDir(), ".env"))
	require.Error(t, err, "sub-second intervals should be rejected")

	t.Setenv("CHECK_INTERVAL", "soon")
	_, err = LoadBotConfig(filepath.Join(t.TempDir(), ".env"))
	require.Error(t, err)
}

// TestLoadBotConfig_BadIMAPPort verifies port validation.
func TestLoadBotConfig_BadIMAPPort(t *testing.T) {
	clearBotEnv(t)
	t.Setenv("BOT_TOKEN", "123:abc")
	t.Setenv("NOTIFIED_GROUPS", "-1")
	t.Setenv("EMAIL_ACC", "a@b.c")
	t.Setenv("EMAIL_PASS", "p")
	t.Setenv("IMAP_PORT", "99999")

	_, err := LoadBotConfig(filepath.Join(t.TempDir(), ".env"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "IMAP_PORT")
}
