// ui.go provides the styled console tags used by every command:
// [ ok ], [info], [warn] and [fail] prefixes rendered with lipgloss.
// Informational output goes to stdout; warnings and errors go to
// stderr so successful command output stays pipeable.
package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
)

// Semantic colors for console tags and the status table.
var (
	colorSuccess = lipgloss.Color("#2ECC71")
	colorInfo    = lipgloss.Color("#3498DB")
	colorWarning = lipgloss.Color("#F4D03F")
	colorError   = lipgloss.Color("#E74C3C")
	colorMuted   = lipgloss.Color("#7F8C8D")
)

// Pre-rendered tag styles.
var (
	tagOK   = lipgloss.NewStyle().Bold(true).Foreground(colorSuccess).Render("[ ok ]")
	tagInfo = lipgloss.NewStyle().Bold(true).Foreground(colorInfo).Render("[info]")
	tagWarn = lipgloss.NewStyle().Bold(true).Foreground(colorWarning).Render("[warn]")
	tagFail = lipgloss.NewStyle().Bold(true).Foreground(colorError).Render("[fail]")

	styleRunning = lipgloss.NewStyle().Foreground(colorSuccess)
	styleStopped = lipgloss.NewStyle().Foreground(colorMuted)
)

// Success prints an [ ok ] tagged line to stdout.
func Success(format string, args ...interface{}) {
	fmt.Printf("%s %s\n", tagOK, fmt.Sprintf(format, args...))
}

// Info prints an [info] tagged line to stdout.
func Info(format string, args ...interface{}) {
	fmt.Printf("%s %s\n", tagInfo, fmt.Sprintf(format, args...))
}

// Warn prints a [warn] tagged line to stderr.
func Warn(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "%s %s\n", tagWarn, fmt.Sprintf(format, args...))
}

// Error prints a [fail] tagged line to stderr.
func Error(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "%s %s\n", tagFail, fmt.Sprintf(format, args...))
}

// VerboseLog prints a trace line to stderr when --verbose is set.
func VerboseLog(format string, args ...interface{}) {
	if verbose {
		fmt.Fprintf(os.Stderr, "[verbose] "+format+"\n", args...)
	}
}

// stateStyle picks the style for a container state cell.
func stateStyle(running bool) lipgloss.Style {
	if running {
		return styleRunning
	}
	return styleStopped
}
