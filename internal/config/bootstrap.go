package config

import (
	"errors"
	"io"
	"os"
	"path/filepath"
)

// EnsureUserConfig makes sure a per-user config exists under dataDir,
// seeding it from the packaged default on first run, and returns its path.
func EnsureUserConfig(dataDir string, defaultPath string) (string, error) {
	userPath := filepath.Join(dataDir, "jobscout.yml")

	_, err := os.Stat(userPath)
	if err == nil {
		return userPath, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return "", err
	}

	src, err := os.Open(defaultPath)
	if err != nil {
		return "", err
	}
	defer src.Close()

	dst, err := os.Create(userPath)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	return userPath, nil
}
