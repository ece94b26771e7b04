// reader.go implements the IMAP side of the monitor: connect, search
// the inbox for candidate messages, fetch their bodies and hand each
// one to the MIME extractor.
//
// The IMAP SINCE criterion is date-granular, so a search from "today"
// returns messages already forwarded earlier the same day. The reader
// therefore re-filters fetched messages by their Date header and only
// returns those strictly newer than the caller's checkpoint.
package mail

import (
	"fmt"
	"sort"
	"time"

	"github.com/emersion/go-imap"
	"github.com/emersion/go-imap/client"
	"github.com/rs/zerolog"

	"github.com/mmr-tortoise/mailgram/internal/model"
)

// mailbox is the folder the monitor watches. Only the inbox is polled.
const mailbox = "INBOX"

// Reader polls one IMAP mailbox. It is not safe for concurrent use;
// the monitor owns it from a single goroutine.
type Reader struct {
	addr     string
	username string
	password string
	sender   string

	conn   *client.Client
	logger zerolog.Logger
}

// NewReader returns a Reader for the given IMAP endpoint and account.
// sender, when non-empty, restricts searches to messages from that
// address.
func NewReader(addr, username, password, sender string, logger zerolog.Logger) *Reader {
	return &Reader{
		addr:     addr,
		username: username,
		password: password,
		sender:   sender,
		logger:   logger.With().Str("component", "mail").Logger(),
	}
}

// connect dials the IMAP server over TLS and logs in. No-op when a
// connection is already established.
func (r *Reader) connect() error {
	if r.conn != nil {
		return nil
	}

	conn, err := client.DialTLS(r.addr, nil)
	if err != nil {
		return fmt.Errorf("dial %s: %w", r.addr, err)
	}
	if err := conn.Login(r.username, r.password); err != nil {
		_ = conn.Logout()
		return fmt.Errorf("login as %s: %w", r.username, err)
	}

	r.conn = conn
	r.logger.Info().Str("server", r.addr).Str("account", r.username).Msg("connected to mailbox")
	return nil
}

// Close logs out and drops the connection. Safe to call when not
// connected.
func (r *Reader) Close() {
	if r.conn == nil {
		return
	}
	if err := r.conn.Logout(); err != nil {
		r.logger.Warn().Err(err).Msg("imap logout failed")
	}
	r.conn = nil
}

// FetchSince returns the messages with a Date header strictly after
// since, oldest first. On any IMAP error the connection is dropped so
// the next call reconnects.
func (r *Reader) FetchSince(since time.Time) ([]model.EmailMessage, error) {
	if err := r.connect(); err != nil {
		return nil, err
	}

	msgs, err := r.fetchSince(since)
	if err != nil {
		// A failed poll leaves the session in an unknown state.
		r.Close()
		return nil, err
	}
	return msgs, nil
}

func (r *Reader) fetchSince(since time.Time) ([]model.EmailMessage, error) {
	if _, err := r.conn.Select(mailbox, true); err != nil {
		return nil, fmt.Errorf("select %s: %w", mailbox, err)
	}

	criteria := imap.NewSearchCriteria()
	criteria.Since = since
	if r.sender != "" {
		criteria.Header.Add("From", r.sender)
	}

	uids, err := r.conn.UidSearch(criteria)
	if err != nil {
		return nil, fmt.Errorf("search since %s: %w", since.Format("02-Jan-2006"), err)
	}
	if len(uids) == 0 {
		return nil, nil
	}

	seqset := new(imap.SeqSet)
	seqset.AddNum(uids...)

	// Fetch the full raw message so the MIME extractor sees headers and
	// all body parts.
	section := &imap.BodySectionName{Peek: true}
	items := []imap.FetchItem{imap.FetchUid, section.FetchItem()}

	messages := make(chan *imap.Message, len(uids))
	done := make(chan error, 1)
	go func() {
		done <- r.conn.UidFetch(seqset, items, messages)
	}()

	var result []model.EmailMessage
	for msg := range messages {
		body := msg.GetBody(section)
		if body == nil {
			r.logger.Warn().Uint32("uid", msg.Uid).Msg("message fetched without body section")
			continue
		}

		parsed, err := Extract(body)
		if err != nil {
			// One undecodable message must not abort the sweep.
			r.logger.Error().Err(err).Uint32("uid", msg.Uid).Msg("failed to decode message")
			continue
		}
		parsed.UID = msg.Uid

		// Drop messages at or before the checkpoint; SINCE already
		// matched their calendar date.
		if !parsed.Date.After(since) {
			continue
		}

		result = append(result, *parsed)
	}

	if err := <-done; err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Date.Before(result[j].Date)
	})
	return result, nil
}
