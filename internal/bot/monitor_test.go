package bot

import (
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmr-tortoise/mailgram/internal/model"
)

// fakeSource replays canned fetch results and records the checkpoints
// it was asked for.
type fakeSource struct {
	results    [][]model.EmailMessage
	errs       []error
	calls      int
	sinceSeen  []time.Time
	closeCount int
}

func (f *fakeSource) FetchSince(since time.Time) ([]model.EmailMessage, error) {
	f.sinceSeen = append(f.sinceSeen, since)
	i := f.calls
	f.calls++
	var msgs []model.EmailMessage
	if i < len(f.results) {
		msgs = f.results[i]
	}
	var err error
	if i < len(f.errs) {
		err = f.errs[i]
	}
	return msgs, err
}

func (f *fakeSource) Close() { f.closeCount++ }

// fakeBroadcaster counts broadcasts and reports a fixed delivery count.
type fakeBroadcaster struct {
	sent      []model.EmailMessage
	delivered int
}

func (f *fakeBroadcaster) Broadcast(email model.EmailMessage) int {
	f.sent = append(f.sent, email)
	return f.delivered
}

func newTestMonitor(source MailSource, notifier Broadcaster, stats *model.Stats) *Monitor {
	return NewMonitor(source, notifier, time.Second, stats, zerolog.Nop())
}

// TestSweep_ForwardsAndCounts verifies a sweep broadcasts every fetched
// message, updates the counters, and advances the checkpoint to the
// sweep start time.
func TestSweep_ForwardsAndCounts(t *testing.T) {
	msgs := []model.EmailMessage{
		{UID: 1, Subject: "first", FromAddress: "a@b.c", Date: time.Now().UTC()},
		{UID: 2, Subject: "second", FromAddress: "a@b.c", Date: time.Now().UTC()},
	}
	source := &fakeSource{results: [][]model.EmailMessage{msgs}}
	notifier := &fakeBroadcaster{delivered: 2}
	stats := model.NewStats(time.Now())

	m := newTestMonitor(source, notifier, stats)
	sweepTime := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return sweepTime }
	m.checkpoint = sweepTime.Add(-time.Minute)

	m.sweep()

	require.Len(t, notifier.sent, 2)
	assert.Equal(t, uint32(1), notifier.sent[0].UID)

	snap := stats.Snapshot(time.Now())
	assert.Equal(t, 2, snap.Processed)
	assert.Equal(t, 4, snap.Delivered, "two messages times two chats each")

	assert.Equal(t, sweepTime, m.checkpoint, "checkpoint should advance to sweep start")
	assert.Equal(t, sweepTime.Add(-time.Minute), source.sinceSeen[0],
		"fetch should use the previous checkpoint")
}

// TestSweep_FetchErrorKeepsCheckpoint verifies that a failed poll drops
// the connection and leaves the checkpoint untouched so the window is
// retried.
func TestSweep_FetchErrorKeepsCheckpoint(t *testing.T) {
	source := &fakeSource{errs: []error{errors.New("imap: connection reset")}}
	notifier := &fakeBroadcaster{}
	stats := model.NewStats(time.Now())

	m := newTestMonitor(source, notifier, stats)
	checkpoint := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	m.checkpoint = checkpoint

	m.sweep()

	assert.Empty(t, notifier.sent)
	assert.Equal(t, checkpoint, m.checkpoint, "checkpoint must not advance on error")
	assert.Equal(t, 1, source.closeCount, "connection should be dropped for reconnect")
	assert.Equal(t, 0, stats.Snapshot(time.Now()).Processed)
}

// TestSweep_EmptyFetch verifies a quiet sweep still advances the
// checkpoint.
func TestSweep_EmptyFetch(t *testing.T) {
	source := &fakeSource{}
	m := newTestMonitor(source, &fakeBroadcaster{}, model.NewStats(time.Now()))
	sweepTime := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return sweepTime }
	m.checkpoint = sweepTime.Add(-30 * time.Second)

	m.sweep()

	assert.Equal(t, sweepTime, m.checkpoint)
}
