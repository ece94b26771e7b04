// backup.go implements "mailgram backup": copy the bot's logs
// directory into a timestamped folder under the backup directory.
// Older snapshots are never rotated; clearing them is left to the
// operator.
package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/mailgram/internal/backup"
	"github.com/mmr-tortoise/mailgram/internal/config"
)

// NewBackupCommand creates the "backup" cobra command.
func NewBackupCommand(settings config.Settings) *cobra.Command {
	return &cobra.Command{
		Use:   "backup",
		Short: "Snapshot the bot's logs directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBackup(settings)
		},
	}
}

func runBackup(settings config.Settings) error {
	result, err := backup.Snapshot(settings.LogsPath(), settings.BackupPath(), time.Now())
	if err != nil {
		return err
	}

	Success("backed up %d files (%.1f KB) to %s",
		result.Files, float64(result.Bytes)/1024, result.Dir)
	return nil
}
