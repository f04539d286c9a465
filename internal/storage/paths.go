package storage

import (
	"os"
	"path/filepath"
)

const appDir = ".minisql"

// DefaultStoragePath returns the default storage location:
//   - macOS/Linux: ~/.minisql
//   - Windows: %USERPROFILE%\.minisql
func DefaultStoragePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, appDir), nil
}
