// Package telegram delivers forwarded emails to the configured chats
// and answers the bot's interactive commands (/start, /status, /help).
//
// Messages are sent as HTML; when Telegram rejects a send (malformed
// markup, entity limits), delivery is retried once as plain text with
// the markup stripped. Per-chat failures are logged and never abort
// delivery to the remaining chats.
package telegram
