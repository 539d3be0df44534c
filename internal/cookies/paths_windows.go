//go:build windows

package cookies

import (
	"errors"
	"os"
	"path/filepath"
)

// Chrome 96+ keeps the store under Network/.
func DefaultStorePath() (string, error) {
	local := os.Getenv("LOCALAPPDATA")
	if local == "" {
		return "", errors.New("LOCALAPPDATA is not set")
	}
	return filepath.Join(local, "Google", "Chrome", "User Data", "Default", "Network", "Cookies"), nil
}
