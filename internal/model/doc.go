// Package model defines the domain types shared across the mailgram CLI
// and bot runtime: inbound email messages, runtime statistics, container
// summaries for the status command, and the CLIError/ExitCode taxonomy
// used to translate failures into process exit codes.
package model
