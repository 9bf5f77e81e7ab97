package sitekit

import (
	"context"
	"fmt"
	"html/template"
	"path"
	"slices"
	"time"

	"github.com/alnah/go-sitekit/internal/adapter"
	"github.com/alnah/go-sitekit/internal/assets"
	"github.com/alnah/go-sitekit/internal/config"
	"github.com/alnah/go-sitekit/internal/dateutil"
	"github.com/alnah/go-sitekit/internal/fileutil"
	"github.com/alnah/go-sitekit/internal/hints"
	"github.com/alnah/go-sitekit/internal/pipeline"
	"github.com/alnah/go-sitekit/internal/sitemap"
)

// renderedEntry is what the sitemap needs from a written entry page.
type renderedEntry struct {
	entry  *Entry
	images []sitemap.Image
}

// renderEntries renders and writes every entry page in parallel.
// Post images are loaded up front so collisions are reported in entry order.
func (s *Site) renderEntries(ctx context.Context, b *build, entries []*Entry) ([]renderedEntry, error) {
	registries := make([]Images, len(entries))
	for i, e := range entries {
		if e.Section != SectionBlog {
			continue
		}
		images, collisions, err := loadPostImages(s.fsys, postImagesPath(e.Slug))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", e.Source, err)
		}
		for _, c := range collisions {
			s.log.Warn().
				Str("slug", e.Slug).
				Str("key", c.Key).
				Strs("paths", c.Paths).
				Str("kept", c.Paths[len(c.Paths)-1]).
				Msg("image key collision")
			b.collisions = append(b.collisions, PostCollision{Slug: e.Slug, Collision: c})
		}
		s.log.Debug().Str("slug", e.Slug).Int("count", len(images)).Msg("post images loaded")
		registries[i] = images
	}

	rendered := make([]renderedEntry, len(entries))
	err := limit(ctx, s.workers, entries, func(ctx context.Context, i int, e *Entry) error {
		r, err := s.renderEntry(ctx, b, e, registries[i])
		if err != nil {
			return fmt.Errorf("%s: %w", e.Source, err)
		}
		rendered[i] = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rendered, nil
}

func (s *Site) renderEntry(ctx context.Context, b *build, e *Entry, images Images) (renderedEntry, error) {
	var pre pipeline.MarkdownPreprocessor = &pipeline.CommonMarkPreprocessor{}
	if e.MDX {
		pre = &pipeline.MDXPreprocessor{}
	}

	md := pre.PreprocessMarkdown(s.log.With().Str("slug", e.Slug).Logger().WithContext(ctx), e.Body)
	if err := ctx.Err(); err != nil {
		return renderedEntry{}, err
	}

	fragment, err := s.converter.ToHTML(ctx, md)
	if err != nil {
		return renderedEntry{}, err
	}

	imageRel := func(key string) string {
		return path.Join(adapter.AssetsDir, images[key].FingerprintedName(key))
	}
	body, used, err := pipeline.RewriteImageRefs(fragment, func(key string) (string, bool) {
		if _, ok := images[key]; !ok {
			return "", false
		}
		return s.href(imageRel(key)), true
	})
	if err != nil {
		return renderedEntry{}, fmt.Errorf("rewriting images: %w", err)
	}

	var ogImage string
	if e.Meta.Image != "" {
		key := assets.Key(e.Meta.Image)
		if _, ok := images[key]; !ok {
			return renderedEntry{}, fmt.Errorf("%w: %q%s", ErrUnknownImage, e.Meta.Image,
				hints.ForUnknownImage(postImagesPath(e.Slug), images.Keys()))
		}
		ogImage = s.absURL(imageRel(key))
		if !slices.Contains(used, key) {
			used = append(used, key)
			slices.Sort(used)
		}
	}

	out := renderedEntry{entry: e}
	for _, key := range used {
		rel := imageRel(key)
		if err := s.writeAsset(b, rel, images[key].Data); err != nil {
			return renderedEntry{}, err
		}
		out.images = append(out.images, sitemap.Image{Loc: s.absURL(rel)})
	}

	page := s.newPage(b, string(e.Section), e.Meta.Title, e.Meta.Description, e.URLPath())
	page.Image = ogImage
	page.Date = s.dates.Format(e.Published)
	page.DateISO = dateutil.ISO(e.Published)
	page.Tags = e.Meta.Tags
	page.Body = template.HTML(body) // #nosec G203 -- goldmark output with raw HTML disabled
	if e.Section == SectionBlog {
		page.Giscus = giscusData(s.cfg.Theme.Giscus)
	}

	html, err := s.layout.Render(ctx, page)
	if err != nil {
		return renderedEntry{}, err
	}
	if err := s.writePage(b, e.URLPath()+"index.html", html); err != nil {
		return renderedEntry{}, err
	}

	s.log.Debug().Str("slug", e.Slug).Str("section", string(e.Section)).Int("images", len(used)).Msg("page rendered")
	return out, nil
}

// writeListings writes the home, section index and 404 pages.
func (s *Site) writeListings(ctx context.Context, b *build, blog, projects []*Entry) error {
	og := s.cfg.Theme.OpenGraph

	home := s.newPage(b, "home", orDefault(og.Home.Title, s.cfg.Theme.Name), og.Home.Description, "")
	home.Items = s.items(blog[:min(len(blog), homeRecent)])

	blogIndex := s.newPage(b, string(SectionBlog), orDefault(og.Blog.Title, "Blog"), og.Blog.Description, "blog/")
	blogIndex.Items = s.items(blog)

	projectIndex := s.newPage(b, string(SectionProjects), orDefault(og.Projects.Title, "Projects"), og.Projects.Description, "projects/")
	projectIndex.Items = s.items(projects)

	notFound := s.newPage(b, "404", "Page not found", "", notFoundPage)
	notFound.Body = template.HTML(`<p>Nothing lives here. <a href="` + template.HTMLEscapeString(s.href("")) + `">Back home</a>.</p>`)

	for _, p := range []struct {
		rel  string
		page *pipeline.Page
	}{
		{"index.html", home},
		{"blog/index.html", blogIndex},
		{"projects/index.html", projectIndex},
		{notFoundPage, notFound},
	} {
		html, err := s.layout.Render(ctx, p.page)
		if err != nil {
			return err
		}
		if err := s.writePage(b, p.rel, html); err != nil {
			return err
		}
	}
	return nil
}

func (s *Site) newPage(b *build, section, title, description, rel string) *pipeline.Page {
	return &pipeline.Page{
		Site: pipeline.SiteInfo{
			Name:       s.cfg.Theme.Name,
			URL:        s.base.String(),
			HasSitemap: s.cfg.Integrations.Sitemap,
		},
		Section:     section,
		Title:       title,
		Description: description,
		Canonical:   s.absURL(rel),
		Styles:      b.styles,
		Year:        s.now().Year(),
	}
}

func (s *Site) items(entries []*Entry) []pipeline.Item {
	items := make([]pipeline.Item, 0, len(entries))
	for _, e := range entries {
		items = append(items, pipeline.Item{
			URL:         s.href(e.URLPath()),
			Title:       e.Meta.Title,
			Description: e.Meta.Description,
			Date:        s.dates.Format(e.Published),
			DateISO:     dateutil.ISO(e.Published),
		})
	}
	return items
}

// writeSitemap writes the sitemap index and its pages.
func (s *Site) writeSitemap(rendered []renderedEntry) error {
	newest := map[Section]time.Time{}
	urls := make([]sitemap.URL, 0, len(rendered)+3)

	for _, r := range rendered {
		mod := r.entry.LastMod()
		if mod.After(newest[r.entry.Section]) {
			newest[r.entry.Section] = mod
		}
		urls = append(urls, sitemap.URL{Loc: s.absURL(r.entry.URLPath()), LastMod: mod, Images: r.images})
	}

	latest := newest[SectionBlog]
	if newest[SectionProjects].After(latest) {
		latest = newest[SectionProjects]
	}
	urls = append(urls,
		sitemap.URL{Loc: s.absURL(""), LastMod: latest},
		sitemap.URL{Loc: s.absURL("blog/"), LastMod: newest[SectionBlog]},
		sitemap.URL{Loc: s.absURL("projects/"), LastMod: newest[SectionProjects]},
	)

	files, err := sitemap.Generate(s.base.String(), urls)
	if err != nil {
		return err
	}
	for _, f := range files {
		data, err := s.minifier.Bytes(pipeline.MediaXML, f.Data)
		if err != nil {
			return err
		}
		if err := fileutil.WriteFile(s.outDir, f.Name, data); err != nil {
			return err
		}
	}
	s.log.Debug().Int("count", len(urls)).Msg("sitemap written")
	return nil
}

// giscusData converts comment settings to template values, nil when disabled.
func giscusData(g *config.GiscusConfig) *pipeline.Giscus {
	if g == nil {
		return nil
	}
	return &pipeline.Giscus{
		Repository:       g.Repository,
		RepositoryID:     g.RepositoryID,
		Category:         g.Category,
		CategoryID:       g.CategoryID,
		Mapping:          g.Mapping,
		Strict:           flag(g.Strict),
		ReactionsEnabled: flag(g.ReactionsEnabled),
		EmitMetadata:     flag(g.EmitMetadata),
		Lang:             g.Lang,
	}
}

func flag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
