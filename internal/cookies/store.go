package cookies

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	_ "modernc.org/sqlite" // pure Go driver, no cgo toolchain needed
)

// StoreSummary describes what a Chrome cookie store already holds for a
// site.
type StoreSummary struct {
	Path        string
	MetaVersion int64
	Hosts       map[string]int
	Total       int
}

// Inspect counts the cookies stored for site's registrable domain. It
// reads a snapshot, so a running Chrome holding the file is not disturbed.
func Inspect(ctx context.Context, storePath, site string) (StoreSummary, error) {
	base, err := SiteDomain(site)
	if err != nil {
		return StoreSummary{}, err
	}

	dir, err := os.MkdirTemp("", "hookprobe-cookies-")
	if err != nil {
		return StoreSummary{}, err
	}
	defer func() { _ = os.RemoveAll(dir) }()

	snapshot := filepath.Join(dir, "Cookies")
	if err := copyFile(storePath, snapshot, 0o600); err != nil {
		return StoreSummary{}, fmt.Errorf("snapshot cookie store: %w", err)
	}
	// Recent writes may still sit in the WAL or rollback journal.
	for _, side := range []string{"-wal", "-shm", "-journal"} {
		_ = copyFileIfExists(storePath+side, snapshot+side)
	}

	db, err := sql.Open("sqlite", "file:"+filepath.ToSlash(snapshot)+"?mode=ro")
	if err != nil {
		return StoreSummary{}, err
	}
	defer func() { _ = db.Close() }()
	if err := db.PingContext(ctx); err != nil {
		return StoreSummary{}, fmt.Errorf("open cookie store: %w", err)
	}

	sum := StoreSummary{Path: storePath, Hosts: map[string]int{}}
	sum.MetaVersion = metaVersion(ctx, db)

	rows, err := db.QueryContext(ctx,
		`SELECT host_key, COUNT(*)
		   FROM cookies
		  WHERE host_key = ? OR host_key = ? OR host_key LIKE ?
		  GROUP BY host_key
		  ORDER BY host_key`,
		base, "."+base, "%."+base)
	if err != nil {
		return StoreSummary{}, fmt.Errorf("query cookies: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var (
			host string
			n    int
		)
		if err := rows.Scan(&host, &n); err != nil {
			return StoreSummary{}, fmt.Errorf("scan cookies: %w", err)
		}
		sum.Hosts[host] = n
		sum.Total += n
	}
	return sum, rows.Err()
}

func metaVersion(ctx context.Context, db *sql.DB) int64 {
	var v string
	if err := db.QueryRowContext(ctx, `SELECT value FROM meta WHERE key = 'version'`).Scan(&v); err != nil {
		return 0
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0
	}
	return n
}
