package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ConfigName is the workspace configuration file.
const ConfigName = "lpc.toml"

// ErrNoConfig reports that no lpc.toml exists at or above the start directory.
var ErrNoConfig = errors.New("no " + ConfigName + " found")

// FindConfig walks up from startDir to locate lpc.toml.
func FindConfig(startDir string) (string, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ConfigName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", ErrNoConfig
}
