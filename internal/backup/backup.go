// Package backup snapshots the bot's logs directory into a timestamped
// folder under the backup directory. Snapshots are plain file copies;
// nothing is compressed and older snapshots are never rotated, so the
// backup folder grows until the operator clears it.
package backup

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/mmr-tortoise/mailgram/internal/model"
)

// timestampLayout names snapshot directories, e.g. backup-20260301-154500.
const timestampLayout = "20060102-150405"

// Result describes a completed snapshot.
type Result struct {
	// Dir is the created snapshot directory.
	Dir string

	// Files is the number of files copied.
	Files int

	// Bytes is the total copied size.
	Bytes int64
}

// Snapshot copies logsDir into a new backup-<timestamp> directory under
// backupDir. The logs directory must exist; the backup directory is
// created on demand.
func Snapshot(logsDir, backupDir string, now time.Time) (*Result, error) {
	info, err := os.Stat(logsDir)
	if err != nil {
		return nil, model.WrapCLIError(model.ExitGeneralError,
			fmt.Sprintf("logs directory %q not found", logsDir), err)
	}
	if !info.IsDir() {
		return nil, model.NewCLIError(model.ExitGeneralError,
			fmt.Sprintf("%q is not a directory", logsDir))
	}

	dest := filepath.Join(backupDir, "backup-"+now.Format(timestampLayout))
	if err := os.MkdirAll(dest, 0o755); err != nil {
		return nil, model.WrapCLIError(model.ExitGeneralError,
			fmt.Sprintf("failed to create backup directory %q", dest), err)
	}

	result := &Result{Dir: dest}
	err = filepath.WalkDir(logsDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(logsDir, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dest, rel)

		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		// Symlinks and other irregular entries are skipped; log
		// directories contain regular files only.
		if !d.Type().IsRegular() {
			return nil
		}

		n, err := copyFile(path, target)
		if err != nil {
			return err
		}
		result.Files++
		result.Bytes += n
		return nil
	})
	if err != nil {
		return nil, model.WrapCLIError(model.ExitGeneralError,
			fmt.Sprintf("backup of %q failed", logsDir), err)
	}

	return result, nil
}

// copyFile copies src to dst, preserving the source file mode, and
// returns the number of bytes copied.
func copyFile(src, dst string) (int64, error) {
	in, err := os.Open(src)
	if err != nil {
		return 0, err
	}
	defer func() { _ = in.Close() }()

	info, err := in.Stat()
	if err != nil {
		return 0, err
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return 0, err
	}

	n, err := io.Copy(out, in)
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return n, fmt.Errorf("copy %s: %w", src, err)
	}
	return n, nil
}
