// Package mail reads new messages from the monitored mailbox over
// IMAP. A Reader connects lazily, searches the inbox for messages since
// a checkpoint, fetches and MIME-decodes them into model.EmailMessage
// values, and drops the connection on errors so the next poll
// reconnects from scratch.
package mail
