// cmd/preflight/main.go
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/hamed0406/hookprobe/internal/config"
	"github.com/hamed0406/hookprobe/internal/cookies"
)

func main() {
	failed := false
	fail := func(msg string) {
		fmt.Fprintln(os.Stderr, "✖", msg)
		failed = true
	}
	warn := func(msg string) { fmt.Fprintln(os.Stderr, "⚠", msg) }
	ok := func(msg string) { fmt.Println("✔", msg) }

	cfg := config.FromEnv()

	switch {
	case cfg.WebhookURL == "":
		fail("HOOK_URL is empty (nothing to probe).")
	case !config.IsHTTPURL(cfg.WebhookURL):
		fail("HOOK_URL is not an http(s) URL: " + cfg.WebhookURL)
	default:
		ok("HOOK_URL=" + cfg.WebhookURL)
	}

	// Bad values silently fall back to defaults in FromEnv, so say so here.
	for _, name := range []string{"PROBE_TIMEOUT_MS", "PROBE_OPTIMIZED_TIMEOUT_MS", "PROBE_UPLOAD_TIMEOUT_MS", "MOCK_DELAY_MS"} {
		v := strings.TrimSpace(os.Getenv(name))
		if v == "" {
			continue
		}
		if n, err := strconv.Atoi(v); err != nil || n < 0 {
			fail(name + " must be a non-negative integer of milliseconds, got " + v)
		} else if n == 0 && strings.HasPrefix(name, "PROBE_") {
			fail(name + " is 0; every probe would fail immediately.")
		}
	}
	ok(fmt.Sprintf("timeouts: json=%s optimized=%s upload=%s", cfg.ProbeTimeout, cfg.OptimizedTimeout, cfg.UploadTimeout))

	if cfg.ImagePath == "" {
		warn("PROBE_IMAGE empty; the multipart photo case will be skipped.")
	} else if f, err := os.Open(cfg.ImagePath); err != nil {
		warn("PROBE_IMAGE not readable: " + err.Error())
	} else {
		_ = f.Close()
		ok("PROBE_IMAGE=" + cfg.ImagePath)
	}

	if cfg.RemoteImageURL == "" {
		warn("PROBE_REMOTE_IMAGE_URL empty; the remote image case will be skipped.")
	} else if !config.IsHTTPURL(cfg.RemoteImageURL) {
		warn("PROBE_REMOTE_IMAGE_URL is not an http(s) URL; the platform will likely reject it.")
	}

	if _, err := os.Stat(cfg.CookieFile); err != nil {
		warn("COOKIE_FILE not found: " + cfg.CookieFile)
	} else {
		ok("COOKIE_FILE=" + cfg.CookieFile)
	}

	store := cfg.CookieStore
	if store == "" {
		p, err := cookies.DefaultStorePath()
		if err != nil {
			warn("Chrome cookie store path unknown on this OS: " + err.Error())
		}
		store = p
	}
	if store != "" {
		if _, err := os.Stat(store); err != nil {
			warn("Chrome cookie store not found at " + store)
		} else {
			ok("cookie store=" + store)
		}
	}

	if failed {
		os.Exit(1)
	}
	ok("preflight passed")
}
