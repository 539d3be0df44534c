package cookies

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestBackup_ByteIdenticalCopy(t *testing.T) {
	dir := t.TempDir()
	store := filepath.Join(dir, "Cookies")
	content := append([]byte("SQLite format 3\x00"), bytes.Repeat([]byte{0xab, 0x00, 0x7f}, 4096)...)
	if err := os.WriteFile(store, content, 0o600); err != nil {
		t.Fatal(err)
	}
	mtime := time.Date(2025, 8, 18, 12, 0, 0, 0, time.UTC)
	if err := os.Chtimes(store, mtime, mtime); err != nil {
		t.Fatal(err)
	}

	dst, err := Backup(store)
	if err != nil {
		t.Fatalf("Backup: %v", err)
	}
	if dst != store+".backup" {
		t.Fatalf("backup path = %s", dst)
	}
	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("read backup: %v", err)
	}
	if !bytes.Equal(got, content) {
		t.Fatalf("backup differs from original")
	}
	info, err := os.Stat(dst)
	if err != nil {
		t.Fatal(err)
	}
	if !info.ModTime().Equal(mtime) {
		t.Fatalf("mtime not preserved: %v", info.ModTime())
	}
}

func TestBackup_OverwritesStaleBackup(t *testing.T) {
	dir := t.TempDir()
	store := filepath.Join(dir, "Cookies")
	if err := os.WriteFile(store+".backup", []byte("old old old old"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(store, []byte("new"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Backup(store); err != nil {
		t.Fatalf("Backup: %v", err)
	}
	got, _ := os.ReadFile(store + ".backup")
	if string(got) != "new" {
		t.Fatalf("stale backup not replaced: %q", got)
	}
}

func TestBackup_MissingStoreNoCopy(t *testing.T) {
	dir := t.TempDir()
	store := filepath.Join(dir, "Cookies")

	_, err := Backup(store)
	if !errors.Is(err, ErrStoreNotFound) {
		t.Fatalf("want ErrStoreNotFound, got %v", err)
	}
	if _, err := os.Stat(store + ".backup"); !os.IsNotExist(err) {
		t.Fatalf("no backup should be written, stat err=%v", err)
	}
}

func TestBackup_DirectoryIsError(t *testing.T) {
	if _, err := Backup(t.TempDir()); err == nil || errors.Is(err, ErrStoreNotFound) {
		t.Fatalf("want a plain error for a directory, got %v", err)
	}
}
