package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/multierr"
)

type Config struct {
	WebhookURL string // inbound hook to probe, e.g. https://hook.eu1.make.com/<id>
	LogDir     string // logs directory
	LogLevel   string // zap level name

	ProbeTimeout     time.Duration // JSON cases
	OptimizedTimeout time.Duration // optimized-keys case
	UploadTimeout    time.Duration // multipart case

	ImagePath           string // local photo for the multipart case
	RemoteImageURL      string // remote image reference case
	Email               string
	Language            string
	MarketplaceLanguage string
	SourceURL           string

	CookieFile  string // JSON export of cookies
	CookieStore string // Chrome cookie DB; empty means OS default
	CookieSite  string // site the cookies belong to

	MockAddr   string
	MockDelay  time.Duration
	MockStatus int
	MockRPM    int
	MockBurst  int
}

func FromEnv() Config {
	return Config{
		WebhookURL: strings.TrimSpace(os.Getenv("HOOK_URL")),
		LogDir:     envOr("LOG_DIR", "logs"),
		LogLevel:   envOr("LOG_LEVEL", "info"),

		ProbeTimeout:     envMillis("PROBE_TIMEOUT_MS", 15*time.Second),
		OptimizedTimeout: envMillis("PROBE_OPTIMIZED_TIMEOUT_MS", 30*time.Second),
		UploadTimeout:    envMillis("PROBE_UPLOAD_TIMEOUT_MS", 60*time.Second),

		ImagePath:           os.Getenv("PROBE_IMAGE"),
		RemoteImageURL:      os.Getenv("PROBE_REMOTE_IMAGE_URL"),
		Email:               envOr("PROBE_EMAIL", "probe@example.com"),
		Language:            envOr("PROBE_LANGUAGE", "Serbian"),
		MarketplaceLanguage: envOr("PROBE_MARKETPLACE_LANGUAGE", "German"),
		SourceURL:           envOr("PROBE_SOURCE_URL", "https://www.willnicht.com/app#form1"),

		CookieFile:  envOr("COOKIE_FILE", "cookies.json"),
		CookieStore: os.Getenv("COOKIE_STORE"),
		CookieSite:  envOr("COOKIE_SITE", "https://www.willhaben.at"),

		MockAddr:   envOr("MOCK_ADDR", "127.0.0.1:8099"),
		MockDelay:  envMillis("MOCK_DELAY_MS", 0),
		MockStatus: envInt("MOCK_STATUS", 200),
		MockRPM:    envInt("MOCK_RPM", 0),
		MockBurst:  envInt("MOCK_BURST", 10),
	}
}

// ValidateProbe reports every problem that would stop a probing session.
func (c Config) ValidateProbe() error {
	var err error
	if c.WebhookURL == "" {
		err = multierr.Append(err, errors.New("HOOK_URL is empty"))
	} else if !IsHTTPURL(c.WebhookURL) {
		err = multierr.Append(err, fmt.Errorf("HOOK_URL %q is not an http(s) URL", c.WebhookURL))
	}
	for name, d := range map[string]time.Duration{
		"PROBE_TIMEOUT_MS":           c.ProbeTimeout,
		"PROBE_OPTIMIZED_TIMEOUT_MS": c.OptimizedTimeout,
		"PROBE_UPLOAD_TIMEOUT_MS":    c.UploadTimeout,
	} {
		if d <= 0 {
			err = multierr.Append(err, fmt.Errorf("%s must be positive", name))
		}
	}
	return err
}

// ValidateCookies checks the cookie import settings.
func (c Config) ValidateCookies() error {
	var err error
	if c.CookieFile == "" {
		err = multierr.Append(err, errors.New("COOKIE_FILE is empty"))
	}
	if !IsHTTPURL(c.CookieSite) {
		err = multierr.Append(err, fmt.Errorf("COOKIE_SITE %q is not an http(s) URL", c.CookieSite))
	}
	return err
}

// IsHTTPURL reports whether raw is an absolute http or https URL with a host.
func IsHTTPURL(raw string) bool {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	return u.Host != ""
}

func envOr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			return n
		}
	}
	return def
}

// envMillis keeps the default on parse errors and negative values.
func envMillis(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms >= 0 {
			return time.Duration(ms) * time.Millisecond
		}
	}
	return def
}
