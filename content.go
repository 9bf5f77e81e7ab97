package sitekit

import (
	"cmp"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"
	"time"

	"github.com/alnah/go-sitekit/internal/dateutil"
	"github.com/alnah/go-sitekit/internal/hints"
	"github.com/alnah/go-sitekit/internal/yamlutil"
	"github.com/bmatcuk/doublestar/v4"
)

// Section is a top-level content collection.
type Section string

// Content sections.
const (
	SectionBlog     Section = "blog"
	SectionProjects Section = "projects"
)

// contentPattern matches the content files of one section directory.
const contentPattern = "*.{md,mdx}"

// postImagesDir holds one image directory per blog post slug.
const postImagesDir = "assets/post-images"

// FrontMatter is the YAML header of a content file.
// Unknown keys are ignored.
type FrontMatter struct {
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	PubDate     string   `yaml:"pubDate"`
	UpdatedDate string   `yaml:"updatedDate"`
	Draft       bool     `yaml:"draft"`
	Tags        []string `yaml:"tags"`
	Image       string   `yaml:"image"` // post image key used for OpenGraph
}

// Entry is one parsed content file.
type Entry struct {
	Section   Section
	Slug      string
	Source    string // slash path inside the content root
	MDX       bool
	Meta      FrontMatter
	Published time.Time
	Updated   time.Time
	Body      string
}

// URLPath returns the entry's site-relative directory, e.g. "blog/first-post/".
func (e *Entry) URLPath() string {
	return string(e.Section) + "/" + e.Slug + "/"
}

// LastMod is the updated date if set, otherwise the publish date.
func (e *Entry) LastMod() time.Time {
	if !e.Updated.IsZero() {
		return e.Updated
	}
	return e.Published
}

// parseEntry decodes front matter and dates from a content file.
func parseEntry(section Section, source string, data []byte) (*Entry, error) {
	var meta FrontMatter
	body, err := yamlutil.UnmarshalFrontMatter(data, &meta)
	if err != nil {
		return nil, fmt.Errorf("%s: front matter: %w", source, err)
	}

	meta.Title = strings.TrimSpace(meta.Title)
	if meta.Title == "" {
		return nil, fmt.Errorf("%w: %s", ErrMissingTitle, source)
	}

	name := path.Base(source)
	e := &Entry{
		Section: section,
		Slug:    strings.TrimSuffix(name, path.Ext(name)),
		Source:  source,
		MDX:     path.Ext(name) == ".mdx",
		Meta:    meta,
		Body:    string(body),
	}

	if meta.PubDate != "" {
		if e.Published, err = dateutil.ParsePostDate(meta.PubDate); err != nil {
			return nil, fmt.Errorf("%w: %s: pubDate: %v", ErrInvalidDate, source, err)
		}
	}
	if meta.UpdatedDate != "" {
		if e.Updated, err = dateutil.ParsePostDate(meta.UpdatedDate); err != nil {
			return nil, fmt.Errorf("%w: %s: updatedDate: %v", ErrInvalidDate, source, err)
		}
	}
	return e, nil
}

// loadSection reads every content file of section, newest first.
// Drafts are dropped unless includeDrafts is set.
func loadSection(fsys fs.FS, section Section, includeDrafts, allowMDX bool) ([]*Entry, error) {
	matches, err := doublestar.Glob(fsys, string(section)+"/"+contentPattern)
	if err != nil {
		return nil, fmt.Errorf("discovering %s content: %w", section, err)
	}
	slices.Sort(matches)

	seen := make(map[string]string, len(matches))
	entries := make([]*Entry, 0, len(matches))

	for _, m := range matches {
		info, err := fs.Stat(fsys, m)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", m, err)
		}
		if !info.Mode().IsRegular() {
			continue
		}

		data, err := fs.ReadFile(fsys, m)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", m, err)
		}

		e, err := parseEntry(section, m, data)
		if err != nil {
			return nil, err
		}
		if e.MDX && !allowMDX {
			return nil, fmt.Errorf("%w: %s%s", ErrMDXDisabled, m, hints.ForMDXDisabled())
		}
		if prev, dup := seen[e.Slug]; dup {
			return nil, fmt.Errorf("%w: %q from %s and %s", ErrDuplicateSlug, e.Slug, prev, m)
		}
		seen[e.Slug] = m

		if e.Meta.Draft && !includeDrafts {
			continue
		}
		entries = append(entries, e)
	}

	slices.SortStableFunc(entries, newestFirst)
	return entries, nil
}

// newestFirst orders by publish date descending, then slug.
func newestFirst(a, b *Entry) int {
	if c := b.Published.Compare(a.Published); c != 0 {
		return c
	}
	return cmp.Compare(a.Slug, b.Slug)
}
