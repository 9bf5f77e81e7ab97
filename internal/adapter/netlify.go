package adapter

import (
	"fmt"
	"path"
	"slices"
	"strings"

	"github.com/alnah/go-sitekit/internal/fileutil"
)

// Netlify output files.
const (
	HeadersFile   = "_headers"
	RedirectsFile = "_redirects"
)

// immutableCache is sent for content-addressed files, which never change under a given name.
const immutableCache = "public, max-age=31536000, immutable"

// Netlify writes _headers and _redirects for Netlify's static hosting.
type Netlify struct{}

// Name returns "netlify".
func (n *Netlify) Name() string { return NameNetlify }

// Adapt writes the Netlify control files into outDir.
func (n *Netlify) Adapt(outDir string, m Manifest) error {
	if err := fileutil.WriteFile(outDir, HeadersFile, []byte(headers(m))); err != nil {
		return fmt.Errorf("netlify: %w", err)
	}
	if err := fileutil.WriteFile(outDir, RedirectsFile, []byte(redirects(m))); err != nil {
		return fmt.Errorf("netlify: %w", err)
	}
	return nil
}

func headers(m Manifest) string {
	var sb strings.Builder
	if len(m.Assets) > 0 {
		fmt.Fprintf(&sb, "/%s/*\n  Cache-Control: %s\n", AssetsDir, immutableCache)
	}
	sb.WriteString("/*\n  X-Content-Type-Options: nosniff\n  Referrer-Policy: strict-origin-when-cross-origin\n")
	return sb.String()
}

// redirects sends every top-level section without its trailing slash to the
// canonical directory URL, and unmatched paths to the 404 page.
func redirects(m Manifest) string {
	var sections []string
	for _, p := range m.Pages {
		dir, file := path.Split(p)
		dir = strings.Trim(dir, "/")
		if file != "index.html" || dir == "" || strings.Contains(dir, "/") {
			continue
		}
		sections = append(sections, dir)
	}
	slices.Sort(sections)
	sections = slices.Compact(sections)

	var sb strings.Builder
	for _, s := range sections {
		fmt.Fprintf(&sb, "/%s /%s/ 301\n", s, s)
	}
	if m.NotFound != "" {
		fmt.Fprintf(&sb, "/* /%s 404\n", strings.TrimPrefix(m.NotFound, "/"))
	}
	return sb.String()
}
