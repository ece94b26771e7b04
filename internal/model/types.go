// types.go defines the core domain entities for mailgram.
//
// The CLI side deals in ContainerSummary values reconstructed from Docker
// API queries; the bot runtime deals in EmailMessage values reconstructed
// from IMAP fetches. Neither is persisted anywhere; both are transient
// views over external systems (the Docker daemon and the mail server).
package model

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// EmailMessage is a single inbound email after MIME decoding. It carries
// only the fields the bot forwards to Telegram; attachments and non-text
// parts are dropped during extraction.
type EmailMessage struct {
	// UID is the IMAP unique identifier of the message within its mailbox.
	UID uint32 `json:"uid"`

	// Subject is the decoded Subject header. May be empty.
	Subject string `json:"subject"`

	// FromName is the display name of the sender, falling back to the
	// address when the From header carries no display name.
	FromName string `json:"fromName"`

	// FromAddress is the sender's email address.
	FromAddress string `json:"fromAddress"`

	// Body is the extracted message text. Preference order: the first
	// text/plain part, then tag-stripped text/html, then empty.
	Body string `json:"body"`

	// Date is the message's Date header, normalized to UTC.
	Date time.Time `json:"date"`
}

// Validate checks that the message has the minimum fields required for
// forwarding. Messages without a date cannot be ordered against the
// monitor checkpoint and are rejected.
func (m *EmailMessage) Validate() error {
	if m.Date.IsZero() {
		return fmt.Errorf("email message: missing date header")
	}
	if m.FromAddress == "" {
		return fmt.Errorf("email message: missing sender address")
	}
	return nil
}

// Stats tracks bot runtime counters surfaced by the /status Telegram
// command. It is shared between the monitor goroutine (which records
// processed messages) and the command handler goroutine (which reads),
// so all access goes through the mutex-guarded methods.
type Stats struct {
	mu        sync.Mutex
	startedAt time.Time
	processed int
	delivered int
}

// NewStats returns a Stats anchored at the given start time.
func NewStats(startedAt time.Time) *Stats {
	return &Stats{startedAt: startedAt}
}

// RecordProcessed increments the processed-email counter.
func (s *Stats) RecordProcessed() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.processed++
}

// RecordDelivered adds n to the delivered-notification counter.
func (s *Stats) RecordDelivered(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.delivered += n
}

// Snapshot returns a consistent copy of the counters along with the
// uptime relative to now.
func (s *Stats) Snapshot(now time.Time) StatsSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return StatsSnapshot{
		Uptime:    now.Sub(s.startedAt).Truncate(time.Second),
		Processed: s.processed,
		Delivered: s.delivered,
	}
}

// StatsSnapshot is a point-in-time copy of the runtime counters.
type StatsSnapshot struct {
	Uptime    time.Duration `json:"uptime"`
	Processed int           `json:"processed"`
	Delivered int           `json:"delivered"`
}

// ContainerSummary holds runtime information about one container in the
// compose project, fetched from the Docker API for the status command.
type ContainerSummary struct {
	// ContainerID is the Docker container identifier.
	ContainerID string `json:"containerId"`

	// ContainerName is the human-readable container name without the
	// leading "/" the Docker API prepends.
	ContainerName string `json:"containerName"`

	// ServiceName is the compose service this container belongs to,
	// taken from the com.docker.compose.service label.
	ServiceName string `json:"serviceName"`

	// State is the short container state ("running", "exited", "created").
	State string `json:"state"`

	// Status is the longer human-readable status line from Docker
	// (e.g. "Up 3 hours", "Exited (0) 2 minutes ago").
	Status string `json:"status"`
}

// IsRunning reports whether the container's state is "running".
func (c ContainerSummary) IsRunning() bool {
	return c.State == "running"
}

// ExitCode defines the CLI exit codes. Precondition failures (missing
// docker binary, missing env file) and generic errors both map to 1;
// compose invocations propagate the child process exit code unchanged.
type ExitCode int

const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess ExitCode = 0

	// ExitGeneralError covers unmet preconditions and unspecified errors.
	ExitGeneralError ExitCode = 1
)

// CLIError is an error that carries an exit code so the top-level
// Execute function can translate failures into os.Exit values without
// string matching.
type CLIError struct {
	// Code is the process exit code to use for this error.
	Code ExitCode

	// Message is the human-readable error description.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error implements the error interface.
func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is/As chains.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a CLIError with the given exit code and message.
func NewCLIError(code ExitCode, message string) *CLIError {
	return &CLIError{Code: code, Message: message}
}

// WrapCLIError creates a CLIError that wraps an existing error.
func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}

// ValidateServiceName checks a compose service name argument. Compose
// service names are restricted to lowercase alphanumerics, hyphens and
// underscores; rejecting anything else early produces a clearer error
// than letting docker compose fail on an unknown service.
func ValidateServiceName(name string) error {
	if name == "" {
		return fmt.Errorf("service name must not be empty")
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= '0' && r <= '9':
		case r == '-' || r == '_' || r == '.':
		default:
			return fmt.Errorf("invalid service name %q: must contain only lowercase alphanumerics, '-', '_' or '.'", name)
		}
	}
	if strings.HasPrefix(name, "-") {
		return fmt.Errorf("invalid service name %q: must not start with '-'", name)
	}
	return nil
}
