package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
)

// ErrTemplateParse and ErrTemplateRender report layout failures.
var (
	ErrTemplateParse  = errors.New("layout template parse failed")
	ErrTemplateRender = errors.New("layout template render failed")
)

// SiteInfo carries site-wide values every page shows.
type SiteInfo struct {
	Name       string
	URL        string
	HasSitemap bool
}

// Item is one row in a listing page.
type Item struct {
	URL         string
	Title       string
	Description string
	Date        string // formatted for display, empty for undated entries
	DateISO     string
}

// Giscus holds the data-* values of the comments script.
// Boolean options are "1" or "0", as the client expects.
type Giscus struct {
	Repository       string
	RepositoryID     string
	Category         string
	CategoryID       string
	Mapping          string
	Strict           string
	ReactionsEnabled string
	EmitMetadata     string
	Lang             string
}

// Page is the data passed to the layout template.
type Page struct {
	Site        SiteInfo
	Section     string // "home", "blog" or "projects"
	Title       string
	Description string
	Canonical   string
	Image       string // absolute OpenGraph image URL
	Date        string // set for articles only
	DateISO     string
	Tags        []string
	Styles      []string
	Body        template.HTML
	Items       []Item
	Giscus      *Giscus
	Year        int
}

// Layout renders pages into the site shell.
type Layout struct {
	tmpl *template.Template
}

// NewLayout parses a layout template source.
func NewLayout(src string) (*Layout, error) {
	tmpl, err := template.New("page").Option("missingkey=error").Parse(src)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTemplateParse, err)
	}
	return &Layout{tmpl: tmpl}, nil
}

// Render executes the layout for one page.
func (l *Layout) Render(ctx context.Context, page *Page) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := l.tmpl.Execute(&buf, page); err != nil {
		return "", fmt.Errorf("%w: %v", ErrTemplateRender, err)
	}
	return buf.String(), nil
}
