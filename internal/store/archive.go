package store

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/hrops/award-intake/internal/award"
)

// Archiver renames processed source files and copies them to cold
// storage. Archive failures are the recoverable kind: the record is
// already persisted and stays persisted.
type Archiver struct {
	coldDir string
}

// NewArchiver creates an archiver copying into coldDir.
func NewArchiver(coldDir string) *Archiver {
	return &Archiver{coldDir: coldDir}
}

// archiveName builds the canonical archive file name from the log ID and
// the employee's formatted name.
func archiveName(logID, employeeName string) string {
	last := employeeName
	if idx := strings.Index(last, ","); idx >= 0 {
		last = last[:idx]
	}
	last = strings.ReplaceAll(strings.TrimSpace(last), " ", "_")
	if last == "" {
		last = "unknown"
	}
	return logID + "_" + last + ".pdf"
}

// Archive renames the source file in place and copies it to cold storage.
// It returns the archived path. Both the rename and the copy can fail
// independently (file locked, permission denied); either failure comes
// back as an archive-category record error.
func (a *Archiver) Archive(srcPath, logID, employeeName string) (string, error) {
	renamed := filepath.Join(filepath.Dir(srcPath), archiveName(logID, employeeName))
	if err := os.Rename(srcPath, renamed); err != nil {
		return "", award.WrapRecordError(award.ErrorTypeArchive,
			fmt.Sprintf("failed to rename %s", filepath.Base(srcPath)), err)
	}

	dst := filepath.Join(a.coldDir, filepath.Base(renamed))
	if err := copyFile(renamed, dst); err != nil {
		return renamed, award.WrapRecordError(award.ErrorTypeArchive,
			fmt.Sprintf("failed to copy %s to cold storage", filepath.Base(renamed)), err)
	}
	return renamed, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Sync()
}
