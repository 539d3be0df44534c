package cookies

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
)

const backupSuffix = ".backup"

// Backup copies the store byte for byte to <storePath>.backup, keeping
// its mode and modification time. A missing store yields ErrStoreNotFound
// and no copy.
func Backup(storePath string) (string, error) {
	info, err := os.Stat(storePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrStoreNotFound, storePath)
		}
		return "", err
	}
	if info.IsDir() {
		return "", fmt.Errorf("cookie store %s is a directory", storePath)
	}

	dst := storePath + backupSuffix
	if err := copyFile(storePath, dst, info.Mode().Perm()); err != nil {
		return "", fmt.Errorf("backup %s: %w", storePath, err)
	}
	if err := os.Chtimes(dst, info.ModTime(), info.ModTime()); err != nil {
		return "", fmt.Errorf("backup %s: %w", storePath, err)
	}
	return dst, nil
}

func copyFile(src, dst string, perm fs.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	if err := out.Sync(); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

func copyFileIfExists(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	return copyFile(src, dst, info.Mode().Perm())
}
