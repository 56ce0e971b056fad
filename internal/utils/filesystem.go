package utils

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// FileExists reports whether a non-directory entry exists at path.
// Errors other than "not exist" (permission problems, for example) are returned.
func FileExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if err == nil {
		return !info.IsDir(), nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("failed to stat %s: %w", path, err)
}

// IsDir reports whether path is an existing directory.
func IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
