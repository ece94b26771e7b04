package mail

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestExtract_PlainText verifies header decoding and plain body
// extraction from a single-part message.
func TestExtract_PlainText(t *testing.T) {
	raw := strings.Join([]string{
		"From: Billing Dept <billing@example.com>",
		"To: watch@yandex.ru",
		"Subject: Invoice #991",
		"Date: Sun, 01 Mar 2026 12:30:00 +0300",
		"Content-Type: text/plain; charset=utf-8",
		"",
		"Your invoice is attached.",
		"",
	}, "\r\n")

	msg, err := Extract(strings.NewReader(raw))

	require.NoError(t, err)
	assert.Equal(t, "Invoice #991", msg.Subject)
	assert.Equal(t, "Billing Dept", msg.FromName)
	assert.Equal(t, "billing@example.com", msg.FromAddress)
	assert.Equal(t, "Your invoice is attached.", msg.Body)
	// Date is normalized to UTC.
	assert.Equal(t, time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC), msg.Date)
}

// TestExtract_EncodedSubject verifies RFC 2047 encoded-word decoding.
func TestExtract_EncodedSubject(t *testing.T) {
	raw := strings.Join([]string{
		"From: noreply@example.com",
		"Subject: =?utf-8?B?0J3QvtCy0L7QtSDQv9C40YHRjNC80L4=?=",
		"Date: Sun, 01 Mar 2026 09:00:00 +0000",
		"Content-Type: text/plain; charset=utf-8",
		"",
		"body",
	}, "\r\n")

	msg, err := Extract(strings.NewReader(raw))

	require.NoError(t, err)
	assert.Equal(t, "Новое письмо", msg.Subject)
	assert.Equal(t, "noreply@example.com", msg.FromName,
		"display name should fall back to the address")
}

// TestExtract_MultipartPrefersPlain verifies that the plain part wins
// over the HTML part regardless of order.
func TestExtract_MultipartPrefersPlain(t *testing.T) {
	raw := strings.Join([]string{
		"From: a@example.com",
		"Date: Sun, 01 Mar 2026 09:00:00 +0000",
		"Subject: both parts",
		`Content-Type: multipart/alternative; boundary="XYZ"`,
		"",
		"--XYZ",
		"Content-Type: text/html; charset=utf-8",
		"",
		"<p>Hello <b>world</b></p>",
		"--XYZ",
		"Content-Type: text/plain; charset=utf-8",
		"",
		"Hello world",
		"--XYZ--",
		"",
	}, "\r\n")

	msg, err := Extract(strings.NewReader(raw))

	require.NoError(t, err)
	assert.Equal(t, "Hello world", msg.Body)
}

// TestExtract_HTMLFallback verifies tag stripping when no plain part
// exists.
func TestExtract_HTMLFallback(t *testing.T) {
	raw := strings.Join([]string{
		"From: a@example.com",
		"Date: Sun, 01 Mar 2026 09:00:00 +0000",
		"Subject: html only",
		"Content-Type: text/html; charset=utf-8",
		"",
		"<html><body><p>Alert: disk&nbsp;full &amp; failing</p></body></html>",
	}, "\r\n")

	msg, err := Extract(strings.NewReader(raw))

	require.NoError(t, err)
	assert.Equal(t, "Alert: disk full & failing", msg.Body)
}

// TestExtract_MissingDate verifies that undateable messages are
// rejected: they cannot be ordered against the checkpoint.
func TestExtract_MissingDate(t *testing.T) {
	raw := strings.Join([]string{
		"From: a@example.com",
		"Subject: no date",
		"Content-Type: text/plain",
		"",
		"body",
	}, "\r\n")

	_, err := Extract(strings.NewReader(raw))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing date")
}

// TestStripHTML covers the entity replacements.
func TestStripHTML(t *testing.T) {
	assert.Equal(t, "", StripHTML(""))
	assert.Equal(t, `say "hi" <now>`, StripHTML("<i>say</i> &quot;hi&quot; &lt;now&gt;"))
}
