// Package bot runs the forwarding loop: poll the mailbox on an
// interval, broadcast each new message to Telegram, and keep the
// runtime counters the /status command reports.
package bot

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/mmr-tortoise/mailgram/internal/model"
)

// initialLookback is how far the first sweep reaches back, so messages
// arriving moments before startup are not lost.
const initialLookback = time.Minute

// MailSource yields messages newer than a checkpoint. Close drops the
// underlying connection; the source reconnects on its next use.
type MailSource interface {
	FetchSince(since time.Time) ([]model.EmailMessage, error)
	Close()
}

// Broadcaster delivers one message to all configured chats and returns
// the number of successful deliveries.
type Broadcaster interface {
	Broadcast(email model.EmailMessage) int
}

// Monitor polls a MailSource and forwards new messages.
type Monitor struct {
	source   MailSource
	notifier Broadcaster
	interval time.Duration
	stats    *model.Stats
	logger   zerolog.Logger

	// now is the clock, injectable for tests.
	now func() time.Time

	// checkpoint is the exclusive lower bound for the next sweep.
	checkpoint time.Time
}

// NewMonitor wires a monitor. stats receives the processed/delivered
// counters shown by /status.
func NewMonitor(source MailSource, notifier Broadcaster, interval time.Duration, stats *model.Stats, logger zerolog.Logger) *Monitor {
	return &Monitor{
		source:   source,
		notifier: notifier,
		interval: interval,
		stats:    stats,
		logger:   logger.With().Str("component", "monitor").Logger(),
		now:      time.Now,
	}
}

// Run polls until the context is cancelled. Sweep errors drop the mail
// connection and the loop retries on the next tick; they never stop the
// monitor.
func (m *Monitor) Run(ctx context.Context) error {
	m.checkpoint = m.now().Add(-initialLookback)
	m.logger.Info().Dur("interval", m.interval).Msg("mailbox monitoring started")

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()
	defer m.source.Close()

	// First sweep immediately rather than waiting a full interval.
	m.sweep()

	for {
		select {
		case <-ctx.Done():
			m.logger.Info().Msg("mailbox monitoring stopped")
			return nil
		case <-ticker.C:
			m.sweep()
		}
	}
}

// sweep fetches and forwards everything newer than the checkpoint, then
// advances the checkpoint to the sweep start time. On fetch errors the
// checkpoint stays put so the next sweep retries the same window.
func (m *Monitor) sweep() {
	sweepStart := m.now()

	messages, err := m.source.FetchSince(m.checkpoint)
	if err != nil {
		m.logger.Error().Err(err).Msg("mailbox poll failed")
		m.source.Close()
		return
	}

	for _, msg := range messages {
		m.logger.Info().
			Str("from", msg.FromAddress).
			Str("subject", msg.Subject).
			Time("date", msg.Date).
			Msg("new email")

		delivered := m.notifier.Broadcast(msg)
		m.stats.RecordProcessed()
		m.stats.RecordDelivered(delivered)
	}

	m.checkpoint = sweepStart
}
