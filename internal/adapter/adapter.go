// Package adapter writes host-specific deployment files next to a built site.
package adapter

import (
	"errors"
	"fmt"
	"strings"
)

// Adapter names accepted by New.
const (
	NameNetlify = "netlify"
	NameNone    = "none"
)

// ErrUnknownAdapter indicates New was given a name it does not know.
var ErrUnknownAdapter = errors.New("unknown adapter")

// Manifest describes what a build wrote, with slash paths relative to the output dir.
type Manifest struct {
	Pages    []string // e.g. "index.html", "blog/first-post/index.html"
	Assets   []string // fingerprinted files under AssetsDir
	NotFound string   // custom 404 page, empty if none
}

// AssetsDir is the output directory holding fingerprinted files.
const AssetsDir = "_assets"

// Adapter prepares a build output for one hosting target.
type Adapter interface {
	Name() string
	Adapt(outDir string, m Manifest) error
}

// New returns the adapter registered under name. Empty selects none.
func New(name string) (Adapter, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case NameNetlify:
		return &Netlify{}, nil
	case NameNone, "":
		return None{}, nil
	default:
		return nil, fmt.Errorf("%w: %q (want %s or %s)", ErrUnknownAdapter, name, NameNetlify, NameNone)
	}
}

// None leaves the output untouched.
type None struct{}

func (None) Name() string                 { return NameNone }
func (None) Adapt(string, Manifest) error { return nil }

// Compile-time interface checks.
var (
	_ Adapter = None{}
	_ Adapter = (*Netlify)(nil)
)
