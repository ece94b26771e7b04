package telegram

import (
	"fmt"
	"html"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"github.com/mmr-tortoise/mailgram/internal/model"
)

// Telegram limits and forwarding truncation bounds.
const (
	// maxBodyRunes bounds the email body portion of a notification.
	maxBodyRunes = 2000

	// maxMessageChars is Telegram's hard limit on message text length.
	maxMessageChars = 4096
)

// dateLayout formats the email date line in notifications.
const dateLayout = "02.01.2006 15:04"

// Notifier sends email notifications to a fixed set of chats.
type Notifier struct {
	api    *tgbotapi.BotAPI
	groups []string
	logger zerolog.Logger
}

// NewNotifier authenticates against the Bot API and returns a Notifier
// for the given chat list. Entries are numeric chat IDs or @channel
// names.
func NewNotifier(token string, groups []string, logger zerolog.Logger) (*Notifier, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram authentication failed: %w", err)
	}

	n := &Notifier{
		api:    api,
		groups: groups,
		logger: logger.With().Str("component", "telegram").Logger(),
	}
	n.logger.Info().Str("bot", api.Self.UserName).Int("groups", len(groups)).Msg("bot authenticated")
	return n, nil
}

// BotName returns the authenticated bot's username.
func (n *Notifier) BotName() string {
	return n.api.Self.UserName
}

// Broadcast sends one email notification to every configured chat and
// returns the number of successful deliveries. Failures are logged per
// chat; the HTML send is retried once as plain text before a chat is
// counted as failed.
func (n *Notifier) Broadcast(email model.EmailMessage) int {
	text := FormatEmail(email)
	delivered := 0

	for _, group := range n.groups {
		if err := n.sendHTML(group, text); err != nil {
			n.logger.Warn().Err(err).Str("chat", group).Msg("html send failed, retrying as plain text")

			plain := truncateChars(stripMarkup(text), maxMessageChars)
			if err := n.sendPlain(group, plain); err != nil {
				n.logger.Error().Err(err).Str("chat", group).Msg("delivery failed")
				continue
			}
		}
		n.logger.Info().Str("chat", group).Uint32("uid", email.UID).Msg("notification delivered")
		delivered++
	}
	return delivered
}

// FormatEmail renders the notification text: a bold date line followed
// by the body, truncated to maxBodyRunes. The body is HTML-escaped so
// angle brackets in email text cannot break Telegram's HTML parser.
func FormatEmail(email model.EmailMessage) string {
	body := truncateRunes(email.Body, maxBodyRunes)
	return fmt.Sprintf("🕒 <b>%s</b>\n\n%s",
		email.Date.Format(dateLayout), html.EscapeString(body))
}

// sendHTML sends text with HTML parse mode to one chat.
func (n *Notifier) sendHTML(group, text string) error {
	msg, err := newMessage(group, text)
	if err != nil {
		return err
	}
	msg.ParseMode = tgbotapi.ModeHTML
	_, err = n.api.Send(msg)
	return err
}

// sendPlain sends text without a parse mode to one chat.
func (n *Notifier) sendPlain(group, text string) error {
	msg, err := newMessage(group, text)
	if err != nil {
		return err
	}
	_, err = n.api.Send(msg)
	return err
}

// newMessage builds a MessageConfig for a chat identifier, accepting
// both numeric IDs and @channel names.
func newMessage(group, text string) (tgbotapi.MessageConfig, error) {
	if strings.HasPrefix(group, "@") {
		return tgbotapi.NewMessageToChannel(group, text), nil
	}
	chatID, err := strconv.ParseInt(group, 10, 64)
	if err != nil {
		return tgbotapi.MessageConfig{}, fmt.Errorf("invalid chat identifier %q: %w", group, err)
	}
	return tgbotapi.NewMessage(chatID, text), nil
}

// truncateRunes shortens s to at most limit runes, appending an
// ellipsis when anything was cut.
func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}

// truncateChars shortens s to at most limit bytes without splitting a
// rune.
func truncateChars(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	runes := []rune(s)
	for len(string(runes)) > limit {
		runes = runes[:len(runes)-1]
	}
	return string(runes)
}

// stripMarkup removes the HTML tags this bot itself produces, for the
// plain-text fallback path.
func stripMarkup(s string) string {
	replacer := strings.NewReplacer(
		"<b>", "", "</b>", "",
		"<i>", "", "</i>", "",
		"<code>", "", "</code>", "",
		"<pre>", "", "</pre>", "",
	)
	return replacer.Replace(s)
}
