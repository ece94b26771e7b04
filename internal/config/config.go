// config.go loads the bot runtime configuration from the env file and
// the process environment. The env file supplies secrets (bot token,
// mail credentials) and the notification group list; optional variables
// tune the IMAP endpoint, the poll interval and a sender filter.
//
// godotenv loads the file without overriding variables already present
// in the environment, so values injected by the container runtime take
// precedence over the file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/mmr-tortoise/mailgram/internal/model"
)

// Defaults for the optional bot runtime variables.
const (
	DefaultIMAPServer    = "imap.yandex.ru"
	DefaultIMAPPort      = 993
	DefaultCheckInterval = 30 * time.Second
)

// BotConfig holds the validated bot runtime configuration.
type BotConfig struct {
	// BotToken is the Telegram bot API token.
	BotToken string

	// Groups lists the Telegram chat identifiers that receive forwarded
	// emails. Entries are either numeric chat IDs or @channel names.
	Groups []string

	// EmailAccount is the monitored mailbox address, also used as the
	// IMAP login.
	EmailAccount string

	// EmailPassword is the IMAP password (typically an app password).
	EmailPassword string

	// IMAPServer and IMAPPort locate the IMAP endpoint.
	IMAPServer string
	IMAPPort   int

	// CheckInterval is the delay between inbox polls.
	CheckInterval time.Duration

	// SenderFilter, when non-empty, restricts the monitor to messages
	// from this address.
	SenderFilter string
}

// IMAPAddr returns the host:port dial address for the IMAP server.
func (c *BotConfig) IMAPAddr() string {
	return fmt.Sprintf("%s:%d", c.IMAPServer, c.IMAPPort)
}

// LoadBotConfig reads the env file (when present) and the process
// environment, then validates the required variables. A missing env
// file is tolerated because inside the container the variables arrive
// through the environment, not from a file.
func LoadBotConfig(envPath string) (*BotConfig, error) {
	if _, err := os.Stat(envPath); err == nil {
		// godotenv.Load never overrides existing environment variables.
		if err := godotenv.Load(envPath); err != nil {
			return nil, model.WrapCLIError(model.ExitGeneralError,
				fmt.Sprintf("failed to load env file %q", envPath), err)
		}
	}

	cfg := &BotConfig{
		BotToken:      os.Getenv("BOT_TOKEN"),
		EmailAccount:  os.Getenv("EMAIL_ACC"),
		EmailPassword: os.Getenv("EMAIL_PASS"),
		Groups:        splitGroups(os.Getenv("NOTIFIED_GROUPS")),
		IMAPServer:    DefaultIMAPServer,
		IMAPPort:      DefaultIMAPPort,
		CheckInterval: DefaultCheckInterval,
		SenderFilter:  strings.TrimSpace(os.Getenv("SENDER_FILTER")),
	}

	if v := strings.TrimSpace(os.Getenv("IMAP_SERVER")); v != "" {
		cfg.IMAPServer = v
	}
	if v := strings.TrimSpace(os.Getenv("IMAP_PORT")); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil || port < 1 || port > 65535 {
			return nil, model.NewCLIError(model.ExitGeneralError,
				fmt.Sprintf("invalid IMAP_PORT %q: must be a port number", v))
		}
		cfg.IMAPPort = port
	}
	if v := strings.TrimSpace(os.Getenv("CHECK_INTERVAL")); v != "" {
		// Accept either a bare second count ("30") or a Go duration ("45s").
		if secs, err := strconv.Atoi(v); err == nil {
			cfg.CheckInterval = time.Duration(secs) * time.Second
		} else if d, err := time.ParseDuration(v); err == nil {
			cfg.CheckInterval = d
		} else {
			return nil, model.NewCLIError(model.ExitGeneralError,
				fmt.Sprintf("invalid CHECK_INTERVAL %q: must be seconds or a duration", v))
		}
		if cfg.CheckInterval < time.Second {
			return nil, model.NewCLIError(model.ExitGeneralError,
				fmt.Sprintf("invalid CHECK_INTERVAL %q: must be at least 1s", v))
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, model.WrapCLIError(model.ExitGeneralError,
			"bot configuration is incomplete", err)
	}

	return cfg, nil
}

// Validate reports the first missing required variable.
func (c *BotConfig) Validate() error {
	if c.BotToken == "" {
		return fmt.Errorf("BOT_TOKEN is not set")
	}
	if c.EmailAccount == "" {
		return fmt.Errorf("EMAIL_ACC is not set")
	}
	if c.EmailPassword == "" {
		return fmt.Errorf("EMAIL_PASS is not set")
	}
	if len(c.Groups) == 0 {
		return fmt.Errorf("NOTIFIED_GROUPS is not set")
	}
	return nil
}

// splitGroups parses the comma-separated NOTIFIED_GROUPS value, trimming
// whitespace and dropping empty entries.
func splitGroups(raw string) []string {
	parts := strings.Split(raw, ",")
	groups := make([]string, 0, len(parts))
	for _, p := range parts {
		if g := strings.TrimSpace(p); g != "" {
			groups = append(groups, g)
		}
	}
	return groups
}
