package assets

import (
	"embed"
	"fmt"
)

// theme holds the built-in site theme: the page layout (templates/page.html,
// an html/template with OpenGraph, canonical and giscus blocks) and the site
// stylesheet (styles/site.css).
//
//go:embed styles/*.css templates/*.html
var theme embed.FS

// EmbeddedLoader serves the built-in theme. AssetResolver falls back to it
// when a custom theme directory lacks a file.
type EmbeddedLoader struct{}

// NewEmbeddedLoader creates an EmbeddedLoader.
func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{}
}

// LoadStyle returns styles/<name>.css, e.g. "site".
func (e *EmbeddedLoader) LoadStyle(name string) (string, error) {
	return readTheme(name, "styles", ".css", ErrStyleNotFound)
}

// LoadTemplate returns templates/<name>.html, e.g. "page".
func (e *EmbeddedLoader) LoadTemplate(name string) (string, error) {
	return readTheme(name, "templates", ".html", ErrTemplateNotFound)
}

func readTheme(name, dir, ext string, notFound error) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}
	data, err := theme.ReadFile(dir + "/" + name + ext)
	if err != nil {
		return "", fmt.Errorf("%w: %q", notFound, name)
	}
	return string(data), nil
}

var _ AssetLoader = (*EmbeddedLoader)(nil)
