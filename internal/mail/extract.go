// extract.go turns a raw RFC 822 message into a model.EmailMessage.
// Header decoding (encoded words, legacy charsets) is delegated to
// go-message; body extraction prefers the first text/plain part and
// falls back to tag-stripped text/html when no plain part exists.
package mail

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/emersion/go-message/mail"

	// Registers decoders for non-UTF-8 charsets (koi8-r, windows-1251,
	// iso-8859-*) commonly seen in the monitored mailboxes.
	_ "github.com/emersion/go-message/charset"

	"github.com/mmr-tortoise/mailgram/internal/model"
)

// htmlTagRe strips markup when only an HTML body is available. Crude,
// but the forwarded text is a notification preview, not a rendering.
var htmlTagRe = regexp.MustCompile(`<[^<]+?>`)

// Extract decodes one raw message.
func Extract(r io.Reader) (*model.EmailMessage, error) {
	mr, err := mail.CreateReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse message: %w", err)
	}

	msg := &model.EmailMessage{}

	if date, err := mr.Header.Date(); err == nil {
		msg.Date = date.UTC()
	}
	if subject, err := mr.Header.Subject(); err == nil {
		msg.Subject = subject
	}
	if from, err := mr.Header.AddressList("From"); err == nil && len(from) > 0 {
		msg.FromAddress = from[0].Address
		msg.FromName = from[0].Name
		if msg.FromName == "" {
			msg.FromName = msg.FromAddress
		}
	}

	msg.Body = extractBody(mr)

	if err := msg.Validate(); err != nil {
		return nil, err
	}
	return msg, nil
}

// extractBody walks the message parts. The first text/plain part wins;
// otherwise the first text/html part is kept, stripped of tags.
func extractBody(mr *mail.Reader) string {
	htmlBody := ""

	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			// A broken part ends the walk; keep whatever was found.
			break
		}

		header, ok := part.Header.(*mail.InlineHeader)
		if !ok {
			// Attachments are not forwarded.
			continue
		}

		contentType, _, err := header.ContentType()
		if err != nil {
			continue
		}

		switch contentType {
		case "text/plain":
			data, err := io.ReadAll(part.Body)
			if err != nil {
				continue
			}
			return strings.TrimSpace(string(data))
		case "text/html":
			if htmlBody != "" {
				continue
			}
			data, err := io.ReadAll(part.Body)
			if err != nil {
				continue
			}
			htmlBody = string(data)
		}
	}

	return strings.TrimSpace(StripHTML(htmlBody))
}

// StripHTML removes markup tags and collapses the most common HTML
// entities, leaving readable plain text.
func StripHTML(s string) string {
	if s == "" {
		return ""
	}
	s = htmlTagRe.ReplaceAllString(s, "")
	replacer := strings.NewReplacer(
		"&nbsp;", " ",
		"&amp;", "&",
		"&lt;", "<",
		"&gt;", ">",
		"&quot;", `"`,
		"&#39;", "'",
	)
	return replacer.Replace(s)
}
