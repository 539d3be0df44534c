// Package cookies copies a cookie export into a local Chrome profile:
// it backs up the profile's cookie store, inspects it, and injects the
// exported records through a live browser session.
package cookies

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"strings"

	"golang.org/x/net/publicsuffix"

	"github.com/hamed0406/hookprobe/internal/domain"
)

var ErrStoreNotFound = errors.New("cookie store not found")

type exportFile struct {
	Cookies []domain.CookieRecord `json:"cookies"`
}

// Load reads a cookie export. Both a bare JSON array and an object with a
// "cookies" array are accepted.
func Load(path string) ([]domain.CookieRecord, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read cookie file: %w", err)
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, fmt.Errorf("cookie file %s is empty", path)
	}

	if raw[0] == '{' {
		var wrapped exportFile
		if err := json.Unmarshal(raw, &wrapped); err != nil {
			return nil, fmt.Errorf("parse cookie file: %w", err)
		}
		return wrapped.Cookies, nil
	}
	var out []domain.CookieRecord
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("parse cookie file: %w", err)
	}
	return out, nil
}

// SiteDomain returns the registrable domain of site, e.g.
// "willhaben.at" for "https://www.willhaben.at".
func SiteDomain(site string) (string, error) {
	u, err := url.Parse(site)
	if err != nil {
		return "", err
	}
	host := strings.ToLower(u.Hostname())
	if host == "" {
		return "", fmt.Errorf("no host in %q", site)
	}
	if net.ParseIP(host) != nil {
		return host, nil
	}
	base, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		// localhost and bare suffixes have no eTLD+1.
		return host, nil
	}
	return base, nil
}

// ForSite keeps the records that belong to site's registrable domain,
// subdomains included.
func ForSite(records []domain.CookieRecord, site string) ([]domain.CookieRecord, error) {
	base, err := SiteDomain(site)
	if err != nil {
		return nil, err
	}
	var out []domain.CookieRecord
	for _, c := range records {
		if matchesDomain(c.Domain, base) {
			out = append(out, c)
		}
	}
	return out, nil
}

func matchesDomain(cookieDomain, base string) bool {
	d := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(cookieDomain)), ".")
	return d == base || strings.HasSuffix(d, "."+base)
}

// Abbrev shortens s to n runes followed by "...".
func Abbrev(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
