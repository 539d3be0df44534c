//go:build darwin && !ios

package cookies

import (
	"os"
	"path/filepath"
)

func DefaultStorePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, "Library", "Application Support", "Google", "Chrome", "Default", "Cookies"), nil
}
