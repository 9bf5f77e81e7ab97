// Package fileutil provides file and path utility functions.
package fileutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// File permission constants.
const (
	DirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	FilePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// ErrOutsideRoot indicates a relative output path that resolves outside its root.
var ErrOutsideRoot = errors.New("path escapes output root")

// WriteFile writes data to root/rel, creating parent directories.
// rel is slash separated and must stay inside root.
func WriteFile(root, rel string, data []byte) error {
	target, err := Within(root, rel)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(target), DirPermissions); err != nil {
		return fmt.Errorf("creating directory for %s: %w", rel, err)
	}

	// Write to a sibling temp file and rename so readers never see partial output.
	tmp, err := os.CreateTemp(filepath.Dir(target), ".sitekit-*")
	if err != nil {
		return fmt.Errorf("creating temp file for %s: %w", rel, err)
	}
	cleanup := func() { _ = os.Remove(tmp.Name()) }

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("writing %s: %w", rel, err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("closing %s: %w", rel, err)
	}
	if err := os.Chmod(tmp.Name(), FilePermissions); err != nil {
		cleanup()
		return fmt.Errorf("setting permissions on %s: %w", rel, err)
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		cleanup()
		return fmt.Errorf("renaming %s: %w", rel, err)
	}
	return nil
}

// Within joins root and the slash path rel, rejecting results outside root.
func Within(root, rel string) (string, error) {
	if rel == "" || strings.ContainsRune(rel, '\x00') || filepath.IsAbs(rel) || strings.HasPrefix(rel, "/") {
		return "", fmt.Errorf("%w: %q", ErrOutsideRoot, rel)
	}

	cleanRoot := filepath.Clean(root)
	target := filepath.Join(cleanRoot, filepath.FromSlash(rel))
	if target != cleanRoot && !strings.HasPrefix(target, cleanRoot+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %q", ErrOutsideRoot, rel)
	}
	return target, nil
}

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// IsFilePath returns true if the string looks like a file path rather than a name.
// A string containing path separators (/, \) is treated as a path.
//
// Examples:
//   - "site" -> false (name)
//   - "./site.yaml" -> true (relative path)
//   - "/etc/sitekit/site.yaml" -> true (absolute)
//   - "C:\sites\site.yaml" -> true (Windows)
func IsFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// IsURL returns true if the string looks like an absolute or protocol-relative URL.
func IsURL(s string) bool {
	return strings.HasPrefix(s, "http://") ||
		strings.HasPrefix(s, "https://") ||
		strings.HasPrefix(s, "data:") ||
		strings.HasPrefix(s, "//")
}
