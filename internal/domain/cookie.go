package domain

import (
	"math"
	"time"
)

// CookieRecord is one entry of a browser-extension cookie export.
type CookieRecord struct {
	Name           string   `json:"name"`
	Value          string   `json:"value"`
	Domain         string   `json:"domain"`
	Path           string   `json:"path,omitempty"`
	Secure         bool     `json:"secure"`
	HTTPOnly       bool     `json:"httpOnly"`
	HostOnly       bool     `json:"hostOnly,omitempty"`
	Session        bool     `json:"session,omitempty"`
	SameSite       string   `json:"sameSite,omitempty"`
	ExpirationDate *float64 `json:"expirationDate,omitempty"`
}

// CookiePath defaults to "/".
func (c CookieRecord) CookiePath() string {
	if c.Path == "" {
		return "/"
	}
	return c.Path
}

// Expiry truncates expirationDate to whole seconds. ok is false for
// session cookies.
func (c CookieRecord) Expiry() (t time.Time, ok bool) {
	if c.ExpirationDate == nil || *c.ExpirationDate <= 0 {
		return time.Time{}, false
	}
	return time.Unix(int64(math.Trunc(*c.ExpirationDate)), 0).UTC(), true
}
