// Package config resolves the engine's on-disk locations and provides
// cross-process file locking plus the legacy credential fallback store.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	// AppDirName is the directory under the platform config root where
	// snapshots live.
	AppDirName = "workdeck"

	dataDirEnv = "WORKDECK_DATA_DIR"
)

// GetDataDir returns the directory where session snapshots are stored.
// WORKDECK_DATA_DIR overrides the platform default for tests and portable
// installs.
func GetDataDir() (string, error) {
	if v := strings.TrimSpace(os.Getenv(dataDirEnv)); v != "" {
		return v, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config directory: %w", err)
	}
	return filepath.Join(base, AppDirName), nil
}
