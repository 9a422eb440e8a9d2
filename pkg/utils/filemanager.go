// =============================================================================
// Catalogue Generator - File Manager Utility
// =============================================================================
//
// This module provides the file operations the generator needs:
//   - Atomic replacement of the generated output file
//   - Unique temporary file names
//
// WRITE STRATEGY:
//   Output is written to a temporary file next to the target, synced, closed
//   and then renamed over the target. A reader of the target path sees
//   either the previous file or the complete new one, never a truncated
//   write. The temporary file is removed on every failure path.
//
// =============================================================================

package utils

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// =============================================================================
// ATOMIC WRITE
// =============================================================================

// WriteFileAtomic replaces path with data.
//
// PARAMETERS:
//   - path: The destination file. Its directory must exist.
//   - data: The complete file contents.
//   - perm: The permission bits of the new file.
//
// RETURNS:
//   - An error naming the step that failed (create, write, sync, close,
//     rename). The destination is untouched when an error is returned.
func WriteFileAtomic(path string, data []byte, perm fs.FileMode) (err error) {
	tmpPath := TempPath(path)

	file, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}

	// Remove the temp file unless the rename succeeded.
	defer func() {
		if err != nil {
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err = file.Write(data); err != nil {
		file.Close()
		return fmt.Errorf("write %s: %w", tmpPath, err)
	}

	if err = file.Sync(); err != nil {
		file.Close()
		return fmt.Errorf("sync %s: %w", tmpPath, err)
	}

	if err = file.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmpPath, err)
	}

	if err = os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename to %s: %w", path, err)
	}

	return nil
}

// TempPath returns a unique hidden sibling of path used while writing.
//
// EXAMPLE:
//   Catalogue.cs -> .Catalogue.cs.3f1c...e9.tmp
func TempPath(path string) string {
	dir, base := filepath.Split(path)
	return filepath.Join(dir, fmt.Sprintf(".%s.%s.tmp", base, uuid.NewString()))
}
