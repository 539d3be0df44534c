//go:build !(darwin && !ios) && !(linux && !android) && !windows

package cookies

import "errors"

func DefaultStorePath() (string, error) {
	return "", errors.New("no default Chrome cookie store on this platform; set COOKIE_STORE")
}
