package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/chromedp/cdproto/network"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/hamed0406/hookprobe/internal/config"
	"github.com/hamed0406/hookprobe/internal/cookies"
	"github.com/hamed0406/hookprobe/internal/domain"
	"github.com/hamed0406/hookprobe/internal/logging"
)

const valuePreview = 20

// session is the part of a live browser the import drives.
type session interface {
	cookies.Setter
	Reload(settle time.Duration) error
	Cookies() ([]*network.Cookie, error)
	Close()
}

type importer struct {
	cfg    config.Config
	logger *zap.Logger
	in     *bufio.Reader
	out    io.Writer
	open   func(ctx context.Context, site string) (session, error)
	settle time.Duration
}

func main() {
	cfg := config.FromEnv()
	if err := cfg.ValidateCookies(); err != nil {
		for _, e := range multierr.Errors(err) {
			fmt.Fprintln(os.Stderr, "config:", e)
		}
		os.Exit(1)
	}

	logger, err := logging.NewLogger(cfg.LogDir, "cookieimport", cfg.LogLevel)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	imp := importer{
		cfg:    cfg,
		logger: logger,
		in:     bufio.NewReader(os.Stdin),
		out:    os.Stdout,
		open:   openChrome,
		settle: 2 * time.Second,
	}
	imp.run(ctx)
}

func openChrome(ctx context.Context, site string) (session, error) {
	b, err := cookies.OpenBrowser(ctx, site, false)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (i importer) run(ctx context.Context) {
	store := i.cfg.CookieStore
	if store == "" {
		p, err := cookies.DefaultStorePath()
		if err != nil {
			fmt.Fprintln(i.out, "Could not locate the Chrome profile:", err)
			i.logger.Warn("store_path_unknown", zap.Error(err))
			return
		}
		store = p
	}

	backup, err := cookies.Backup(store)
	switch {
	case errors.Is(err, cookies.ErrStoreNotFound):
		fmt.Fprintln(i.out, "Chrome Cookies database not found at", store)
		i.logger.Warn("store_missing", zap.String("path", store))
		return
	case err != nil:
		fmt.Fprintln(i.out, "Backup failed, nothing was changed:", err)
		i.logger.Error("backup_failed", zap.String("path", store), zap.Error(err))
		return
	}
	fmt.Fprintln(i.out, "Backed up cookie store to", backup)
	i.logger.Info("backup_done", zap.String("path", store), zap.String("backup", backup))

	if sum, err := cookies.Inspect(ctx, store, i.cfg.CookieSite); err != nil {
		fmt.Fprintln(i.out, "Warning: could not read the cookie store:", err)
		i.logger.Warn("inspect_failed", zap.Error(err))
	} else {
		fmt.Fprintf(i.out, "Chrome already holds %d cookie(s) for %s\n", sum.Total, i.cfg.CookieSite)
		i.logger.Info("store_inspected", zap.Int("total", sum.Total), zap.Int64("meta_version", sum.MetaVersion))
	}

	records, err := cookies.Load(i.cfg.CookieFile)
	if err != nil {
		fmt.Fprintln(i.out, "Error:", err)
		i.logger.Error("load_failed", zap.String("file", i.cfg.CookieFile), zap.Error(err))
		return
	}

	// The listing shows the site's own cookies; injection still tries
	// every record in the file.
	if site, err := cookies.ForSite(records, i.cfg.CookieSite); err != nil {
		fmt.Fprintln(i.out, "Warning: could not filter cookies by site:", err)
		i.logger.Warn("site_filter_failed", zap.Error(err))
	} else {
		fmt.Fprintf(i.out, "\nFound %d cookie(s) for %s (of %d in %s):\n", len(site), i.cfg.CookieSite, len(records), i.cfg.CookieFile)
		for _, c := range site {
			fmt.Fprintf(i.out, "  - %s = %s\n", c.Name, cookies.Abbrev(c.Value, valuePreview))
		}
	}

	cookies.PrintInstructions(i.out, i.cfg.CookieFile, i.cfg.CookieSite)

	fmt.Fprint(i.out, "\nTry automated import with the browser? (y/n): ")
	answer, _ := i.in.ReadString('\n')
	if strings.ToLower(strings.TrimSpace(answer)) != "y" {
		fmt.Fprintln(i.out, "Skipping automated import.")
		return
	}

	i.inject(ctx, records)
}

func (i importer) inject(ctx context.Context, records []domain.CookieRecord) {
	fmt.Fprintln(i.out, "Launching Chrome...")
	b, err := i.open(ctx, i.cfg.CookieSite)
	if err != nil {
		fmt.Fprintln(i.out, "Could not start the browser:", err)
		i.logger.Error("browser_failed", zap.Error(err))
		return
	}
	defer b.Close()

	rep := cookies.Apply(ctx, b, records, func(f cookies.Failure) {
		fmt.Fprintf(i.out, "  Failed to add %s: %v\n", f.Name, f.Err)
	})
	fmt.Fprintf(i.out, "Injected %d of %d cookie(s), skipped %d.\n", len(rep.Injected), len(records), len(rep.Failed))
	if err := rep.Err(); err != nil {
		i.logger.Warn("inject_partial", zap.Int("injected", len(rep.Injected)), zap.Errors("failures", multierr.Errors(err)))
	} else {
		i.logger.Info("inject_done", zap.Int("injected", len(rep.Injected)))
	}

	if err := b.Reload(i.settle); err != nil {
		fmt.Fprintln(i.out, "Reload failed:", err)
		i.logger.Warn("reload_failed", zap.Error(err))
	}
	if live, err := b.Cookies(); err == nil {
		names := make([]string, 0, len(live))
		for _, c := range live {
			names = append(names, c.Name)
		}
		sort.Strings(names)
		fmt.Fprintf(i.out, "The page now sees %d cookie(s): %s\n", len(names), strings.Join(names, ", "))
	}

	fmt.Fprint(i.out, "\nBrowser is open. Press Enter to close it...")
	_, _ = i.in.ReadString('\n')
}
