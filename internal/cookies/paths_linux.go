//go:build linux && !android

package cookies

import (
	"os"
	"path/filepath"
)

func DefaultStorePath() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "google-chrome", "Default", "Cookies"), nil
}
