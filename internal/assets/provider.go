package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"

	"github.com/bmatcuk/doublestar/v4"
)

// Provider discovers assets matching a glob and returns them fully loaded.
// Implementations make no ordering promise; callers that need one sort.
type Provider[H any] interface {
	Discover(pattern string) ([]Entry[H], error)
}

// FSProvider discovers images in an fs.FS.
// Returned entries carry "./"-prefixed paths and are sorted lexically.
type FSProvider struct {
	fsys fs.FS
}

// NewFSProvider creates an FSProvider rooted at fsys.
func NewFSProvider(fsys fs.FS) *FSProvider {
	return &FSProvider{fsys: fsys}
}

// NewDirProvider creates an FSProvider for a directory on disk.
// Returns ErrInvalidBasePath if the path is not a valid, readable directory.
func NewDirProvider(basePath string) (*FSProvider, error) {
	absPath, err := resolveBaseDir(basePath)
	if err != nil {
		return nil, err
	}
	return NewFSProvider(os.DirFS(absPath)), nil
}

// Sub returns a provider rooted at dir. A missing dir is reported with fs.ErrNotExist.
func (p *FSProvider) Sub(dir string) (*FSProvider, error) {
	info, err := fs.Stat(p.fsys, dir)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: not a directory: %s", ErrInvalidBasePath, dir)
	}
	sub, err := fs.Sub(p.fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}
	return NewFSProvider(sub), nil
}

// Discover reads every regular file matching pattern.
func (p *FSProvider) Discover(pattern string) ([]Entry[*Image], error) {
	if err := ValidatePattern(pattern); err != nil {
		return nil, err
	}

	matches, err := doublestar.Glob(p.fsys, pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPattern, err)
	}
	slices.Sort(matches)

	entries := make([]Entry[*Image], 0, len(matches))
	for _, m := range matches {
		info, err := fs.Stat(p.fsys, m)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrAssetRead, m, err)
		}
		if !info.Mode().IsRegular() {
			continue
		}

		data, err := fs.ReadFile(p.fsys, m)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrAssetRead, m, err)
		}
		entries = append(entries, Entry[*Image]{Path: "./" + m, Handle: NewImage(m, data)})
	}
	return entries, nil
}

// DiscoverDir discovers images in dir under fsys. A missing dir yields no entries.
func DiscoverDir(fsys fs.FS, dir, pattern string) ([]Entry[*Image], error) {
	sub, err := NewFSProvider(fsys).Sub(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return sub.Discover(pattern)
}

// Compile-time interface check.
var _ Provider[*Image] = (*FSProvider)(nil)
