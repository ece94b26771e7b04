// commands.go answers the bot's interactive commands. The update loop
// long-polls the Bot API and replies to /start, /status and /help in
// any chat the bot participates in; everything else is ignored.
package telegram

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/mmr-tortoise/mailgram/internal/model"
)

// updateTimeout is the long-poll timeout in seconds for GetUpdates.
const updateTimeout = 30

// StatusInfo is the data backing a /status reply.
type StatusInfo struct {
	// Snapshot holds the runtime counters.
	Snapshot model.StatsSnapshot

	// Account is the monitored mailbox address.
	Account string

	// Groups is the number of configured notification chats.
	Groups int
}

// StatusFunc supplies a fresh StatusInfo for each /status command.
type StatusFunc func() StatusInfo

// ServeCommands runs the update loop until the context is cancelled.
// It always returns nil after a clean shutdown; transport errors inside
// the loop are handled by the underlying long-poll retry.
func (n *Notifier) ServeCommands(ctx context.Context, status StatusFunc) error {
	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = updateTimeout

	updates := n.api.GetUpdatesChan(cfg)
	defer n.api.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil || !update.Message.IsCommand() {
				continue
			}
			n.handleCommand(update.Message, status)
		}
	}
}

// handleCommand replies to a single command message.
func (n *Notifier) handleCommand(msg *tgbotapi.Message, status StatusFunc) {
	var text string
	switch msg.Command() {
	case "start":
		text = startReply
	case "status":
		text = statusReply(status())
	case "help":
		text = helpReply
	default:
		return
	}

	reply := tgbotapi.NewMessage(msg.Chat.ID, text)
	reply.ParseMode = tgbotapi.ModeHTML
	reply.ReplyToMessageID = msg.MessageID

	if _, err := n.api.Send(reply); err != nil {
		n.logger.Warn().Err(err).Str("command", msg.Command()).Msg("command reply failed")
	}
}

const startReply = `👋 Hi! I watch a mailbox and forward new emails to the configured groups.

Commands:
• /status: current bot status
• /help: usage notes`

const helpReply = `🤖 <b>About this bot</b>

New messages arriving in the monitored mailbox are forwarded to every configured group.

<b>Commands</b>
• /start: greeting
• /status: uptime and counters
• /help: this text

Configuration lives in the deployment's env file.`

// statusReply renders the /status text from a snapshot.
func statusReply(info StatusInfo) string {
	return fmt.Sprintf(`📊 <b>Bot status</b>

⏰ Uptime: %s
📧 Emails processed: %d
📨 Notifications delivered: %d
📱 Notification groups: %d
✉️ Monitoring: %s`,
		info.Snapshot.Uptime,
		info.Snapshot.Processed,
		info.Snapshot.Delivered,
		info.Groups,
		info.Account)
}
