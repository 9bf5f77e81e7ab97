package sitekit

import (
	"context"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path"
	"runtime"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/alnah/go-sitekit/internal/adapter"
	"github.com/alnah/go-sitekit/internal/assets"
	"github.com/alnah/go-sitekit/internal/config"
	"github.com/alnah/go-sitekit/internal/dateutil"
	"github.com/alnah/go-sitekit/internal/fileutil"
	"github.com/alnah/go-sitekit/internal/hints"
	"github.com/alnah/go-sitekit/internal/pipeline"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Output names relative to the output directory.
const (
	notFoundPage = "404.html"
	homeRecent   = 5 // blog posts listed on the home page
)

// Site builds one configured site.
// A Site is safe to Build repeatedly but not concurrently.
type Site struct {
	cfg     *config.Config
	fsys    fs.FS
	log     zerolog.Logger
	workers int
	drafts  bool
	now     func() time.Time

	base      *url.URL
	outDir    string
	dates     *dateutil.Formatter
	converter pipeline.HTMLConverter
	layout    *pipeline.Layout
	minifier  *pipeline.Minifier
	adapter   adapter.Adapter
	theme     *assets.AssetResolver
}

// PostCollision is an image key collision inside one blog post's directory.
type PostCollision struct {
	Slug string
	assets.Collision
}

// BuildResult summarizes a completed build.
type BuildResult struct {
	OutDir     string
	Pages      []string // slash paths relative to OutDir, sorted
	Assets     []string // files under _assets/, sorted
	Collisions []PostCollision
	Duration   time.Duration
}

// NewSite validates cfg and prepares the rendering pipeline.
func NewSite(cfg *config.Config, opts ...Option) (*Site, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Site{
		cfg:     cfg,
		log:     zerolog.Nop(),
		workers: runtime.GOMAXPROCS(0),
		now:     time.Now,
		outDir:  cfg.ResolvePath(cfg.OutDir),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.fsys == nil {
		s.fsys = os.DirFS(cfg.ResolvePath(cfg.ContentDir))
	}

	var err error
	if s.base, err = cfg.SiteURL(); err != nil {
		return nil, err
	}
	if s.dates, err = dateutil.NewFormatter(cfg.Theme.DateFormat); err != nil {
		return nil, err
	}
	if !pipeline.HasCodeTheme(cfg.CodeTheme()) {
		return nil, fmt.Errorf("%w: %q%s", pipeline.ErrUnknownCodeTheme, cfg.CodeTheme(), hints.ForCodeTheme())
	}
	if s.adapter, err = adapter.New(cfg.Adapter); err != nil {
		return nil, err
	}
	if s.theme, err = assets.NewAssetResolver(cfg.ResolvePath(cfg.AssetPath)); err != nil {
		return nil, err
	}

	layoutSrc, err := s.theme.LoadTemplate(assets.DefaultTemplateName)
	if err != nil {
		return nil, err
	}
	if s.layout, err = pipeline.NewLayout(layoutSrc); err != nil {
		return nil, err
	}

	s.converter = pipeline.NewGoldmarkConverter(cfg.CodeTheme())
	s.minifier = pipeline.NewMinifier()
	return s, nil
}

// build holds the state of one Build call.
type build struct {
	mu         sync.Mutex
	pages      []string
	assets     map[string]struct{}
	collisions []PostCollision
	styles     []string
}

func (b *build) addPage(rel string) {
	b.mu.Lock()
	b.pages = append(b.pages, rel)
	b.mu.Unlock()
}

// claimAsset reports whether rel still needs writing.
func (b *build) claimAsset(rel string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, done := b.assets[rel]; done {
		return false
	}
	b.assets[rel] = struct{}{}
	return true
}

// Build renders the whole site into the output directory.
func (s *Site) Build(ctx context.Context) (*BuildResult, error) {
	start := time.Now()
	b := &build{assets: make(map[string]struct{})}

	s.log.Info().Str("out", s.outDir).Msg("building site")

	blog, err := loadSection(s.fsys, SectionBlog, s.drafts, s.cfg.Integrations.MDX)
	if err != nil {
		return nil, err
	}
	projects, err := loadSection(s.fsys, SectionProjects, s.drafts, s.cfg.Integrations.MDX)
	if err != nil {
		return nil, err
	}
	s.log.Debug().Int("blog", len(blog)).Int("projects", len(projects)).Msg("content discovered")

	if err := s.writeStyles(b); err != nil {
		return nil, err
	}

	rendered, err := s.renderEntries(ctx, b, append(slices.Clone(blog), projects...))
	if err != nil {
		return nil, err
	}

	if err := s.writeListings(ctx, b, blog, projects); err != nil {
		return nil, err
	}

	if s.cfg.Integrations.Sitemap {
		if err := s.writeSitemap(rendered); err != nil {
			return nil, err
		}
	}

	slices.Sort(b.pages)
	res := &BuildResult{
		OutDir:     s.outDir,
		Pages:      b.pages,
		Assets:     sortedKeys(b.assets),
		Collisions: b.collisions,
	}

	manifest := adapter.Manifest{Pages: res.Pages, Assets: res.Assets, NotFound: notFoundPage}
	if err := s.adapter.Adapt(s.outDir, manifest); err != nil {
		return nil, err
	}

	res.Duration = time.Since(start)
	s.log.Info().
		Int("pages", len(res.Pages)).
		Int("assets", len(res.Assets)).
		Dur("duration", res.Duration).
		Msg("site built")
	return res, nil
}

// writeStyles publishes the theme and code stylesheets under fingerprinted names.
func (s *Site) writeStyles(b *build) error {
	siteCSS, err := s.theme.LoadStyle(assets.DefaultStyleName)
	if err != nil {
		return err
	}
	codeCSS, err := pipeline.CodeCSS(s.cfg.CodeTheme())
	if err != nil {
		return err
	}

	for _, css := range []struct{ stem, src string }{
		{"site", siteCSS},
		{"code", codeCSS},
	} {
		data, err := s.minifier.Bytes(pipeline.MediaCSS, []byte(css.src))
		if err != nil {
			return err
		}
		rel := path.Join(adapter.AssetsDir, assets.FingerprintName(css.stem, ".css", data))
		if err := s.writeAsset(b, rel, data); err != nil {
			return err
		}
		b.styles = append(b.styles, s.href(rel))
	}
	return nil
}

func (s *Site) writeAsset(b *build, rel string, data []byte) error {
	if !b.claimAsset(rel) {
		return nil
	}
	if err := fileutil.WriteFile(s.outDir, rel, data); err != nil {
		return err
	}
	s.log.Debug().Str("path", rel).Int("bytes", len(data)).Msg("asset written")
	return nil
}

// writePage minifies and writes a rendered page.
func (s *Site) writePage(b *build, rel, html string) error {
	out, err := s.minifier.String(pipeline.MediaHTML, html)
	if err != nil {
		return err
	}
	if err := fileutil.WriteFile(s.outDir, rel, []byte(out)); err != nil {
		return fmt.Errorf("%w%s", err, hints.ForOutputDirectory())
	}
	b.addPage(rel)
	return nil
}

// href returns the root-relative URL of a site path, honoring a base path.
func (s *Site) href(rel string) string {
	p := path.Join(s.base.Path, rel)
	if (rel == "" || strings.HasSuffix(rel, "/")) && !strings.HasSuffix(p, "/") {
		p += "/"
	}
	return p
}

// absURL returns the absolute URL of a site path.
func (s *Site) absURL(rel string) string {
	u := *s.base
	u.Path = s.href(rel)
	return u.String()
}

func sortedKeys(m map[string]struct{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// limit runs fn for every item with at most workers in flight.
func limit[T any](ctx context.Context, workers int, items []T, fn func(context.Context, int, T) error) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, item := range items {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return fn(gctx, i, item)
		})
	}
	return g.Wait()
}
