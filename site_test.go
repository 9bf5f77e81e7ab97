package sitekit

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/alnah/go-sitekit/internal/assets"
	"github.com/alnah/go-sitekit/internal/config"
	"github.com/alnah/go-sitekit/internal/pipeline"
	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"
)

// ---------------------------------------------------------------------------
// Fixtures
// ---------------------------------------------------------------------------

func testContent() fstest.MapFS {
	return fstest.MapFS{
		"blog/first-post.md": {Data: []byte(`---
title: First Post
description: Hello there
pubDate: "2024-01-02"
tags: [go, web]
image: cover
---
# Hi

![Cover](cover)

![Team](./team-photo.jpg)

![Remote](https://example.org/x.png)
`)},
		"blog/second.mdx": {Data: []byte(`---
title: Second
pubDate: "2024-02-01"
---
import { Image } from 'astro:assets';

<Image src={images.chart} alt="Chart" />

Some ==important== text.
`)},
		"blog/wip.md":      {Data: []byte("---\ntitle: Work in progress\ndraft: true\n---\nsoon\n")},
		"projects/tool.md": {Data: []byte("---\ntitle: Tool\ndescription: A CLI\n---\n```go\nfunc main() {}\n```\n")},

		"assets/post-images/first-post/cover.jpg":      {Data: []byte("jpg-bytes")},
		"assets/post-images/first-post/cover.png":      {Data: []byte("png-bytes")},
		"assets/post-images/first-post/team-photo.jpg": {Data: []byte("team-bytes")},
		"assets/post-images/first-post/notes.txt":      {Data: []byte("ignored")},
		"assets/post-images/second/chart.webp":         {Data: []byte("chart-bytes")},
	}
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.Site = "https://example.com/"
	cfg.OutDir = t.TempDir()
	cfg.Adapter = config.AdapterNetlify
	cfg.Theme.Name = "Abhi Patel"
	cfg.Theme.OpenGraph = config.OpenGraphConfig{
		Home:     config.PageMeta{Title: "Abhi Patel", Description: "Portfolio Site + Blog"},
		Blog:     config.PageMeta{Title: "Bits & Giggles", Description: "Blog where I write about stuff"},
		Projects: config.PageMeta{Title: "Projects"},
	}
	cfg.Theme.Giscus = &config.GiscusConfig{
		Repository:       "owner/repo",
		RepositoryID:     "R_1",
		Category:         "General",
		CategoryID:       "DIC_1",
		Mapping:          "pathname",
		Strict:           true,
		ReactionsEnabled: true,
		Lang:             "en",
	}
	return cfg
}

func assetName(key, source string, data string) string {
	return "_assets/" + assets.NewImage(source, []byte(data)).FingerprintedName(key)
}

func readOut(t *testing.T, dir, rel string) string {
	t.Helper()

	data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(rel)))
	if err != nil {
		t.Fatalf("reading %s: %v", rel, err)
	}
	return string(data)
}

func assertContains(t *testing.T, label, got string, wants ...string) {
	t.Helper()

	for _, want := range wants {
		if !strings.Contains(got, want) {
			t.Errorf("%s missing %q", label, want)
		}
	}
}

// ---------------------------------------------------------------------------
// TestSite_Build - Full build
// ---------------------------------------------------------------------------

func TestSite_Build(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	var logs bytes.Buffer
	logger := zerolog.New(&logs).Level(zerolog.WarnLevel)

	site, err := NewSite(cfg,
		WithFS(testContent()),
		WithLogger(logger),
		WithWorkers(2),
		WithNow(func() time.Time { return time.Date(2030, 6, 1, 0, 0, 0, 0, time.UTC) }),
	)
	if err != nil {
		t.Fatalf("NewSite() unexpected error: %v", err)
	}

	res, err := site.Build(context.Background())
	if err != nil {
		t.Fatalf("Build() unexpected error: %v", err)
	}
	out := res.OutDir

	wantPages := []string{
		"404.html",
		"blog/first-post/index.html",
		"blog/index.html",
		"blog/second/index.html",
		"index.html",
		"projects/index.html",
		"projects/tool/index.html",
	}
	if diff := cmp.Diff(wantPages, res.Pages); diff != "" {
		t.Errorf("pages mismatch (-want +got):\n%s", diff)
	}

	cover := assetName("cover", "cover.png", "png-bytes")
	team := assetName("team-photo", "team-photo.jpg", "team-bytes")
	chart := assetName("chart", "chart.webp", "chart-bytes")
	for _, a := range []string{cover, team, chart} {
		if !contains(res.Assets, a) {
			t.Errorf("assets %v missing %s", res.Assets, a)
		}
	}
	if len(res.Assets) != 5 {
		t.Errorf("len(Assets) = %d, want 5 (3 images, 2 stylesheets): %v", len(res.Assets), res.Assets)
	}
	if got := readOut(t, out, cover); got != "png-bytes" {
		t.Errorf("%s = %q, want the png (last in path order)", cover, got)
	}

	t.Run("collision reported and logged", func(t *testing.T) {
		if len(res.Collisions) != 1 {
			t.Fatalf("Collisions = %+v, want 1", res.Collisions)
		}
		c := res.Collisions[0]
		if c.Slug != "first-post" || c.Key != "cover" {
			t.Errorf("collision = %+v, want first-post/cover", c)
		}
		assertContains(t, "log", logs.String(), `"level":"warn"`, `"key":"cover"`, "image key collision")
	})

	t.Run("post page", func(t *testing.T) {
		page := readOut(t, out, "blog/first-post/index.html")
		assertContains(t, "first-post", page,
			`src="/`+cover+`"`,
			`src="/`+team+`"`,
			`src="https://example.org/x.png"`,
			`content="https://example.com/`+cover+`"`,
			`href="https://example.com/blog/first-post/"`,
			`datetime="2024-01-02"`,
			"Jan 02 2024",
			"#go",
			`data-repo="owner/repo"`,
			`data-strict="1"`,
			`data-emit-metadata="0"`,
		)
	})

	t.Run("mdx page", func(t *testing.T) {
		page := readOut(t, out, "blog/second/index.html")
		assertContains(t, "second", page, `src="/`+chart+`"`, `alt="Chart"`, "<mark>important</mark>")
		if strings.Contains(page, "astro:assets") {
			t.Error("mdx import leaked into output")
		}
	})

	t.Run("project page has code and no comments", func(t *testing.T) {
		page := readOut(t, out, "projects/tool/index.html")
		assertContains(t, "tool", page, `class="chroma"`)
		if strings.Contains(page, "giscus") {
			t.Error("project page should not carry comments")
		}
	})

	t.Run("listings", func(t *testing.T) {
		home := readOut(t, out, "index.html")
		assertContains(t, "home", home, `href="/blog/second/"`, `href="/blog/first-post/"`, "Portfolio Site + Blog", "2030")
		if strings.Contains(home, "Work in progress") {
			t.Error("draft listed on home page")
		}

		blog := readOut(t, out, "blog/index.html")
		assertContains(t, "blog index", blog, "Giggles")
		if strings.Index(blog, "/blog/second/") > strings.Index(blog, "/blog/first-post/") {
			t.Error("blog index not newest first")
		}

		assertContains(t, "projects index", readOut(t, out, "projects/index.html"), `href="/projects/tool/"`, "A CLI")
	})

	t.Run("stylesheets", func(t *testing.T) {
		var css []string
		for _, a := range res.Assets {
			if strings.HasSuffix(a, ".css") {
				css = append(css, a)
			}
		}
		if len(css) != 2 {
			t.Fatalf("css assets = %v, want 2", css)
		}
		page := readOut(t, out, "index.html")
		for _, c := range css {
			assertContains(t, "home", page, `href="/`+c+`"`)
		}
	})

	t.Run("sitemap", func(t *testing.T) {
		index := readOut(t, out, "sitemap-index.xml")
		assertContains(t, "sitemap index", index, "https://example.com/sitemap-0.xml")

		sm := readOut(t, out, "sitemap-0.xml")
		assertContains(t, "sitemap", sm,
			"https://example.com/blog/first-post/",
			"https://example.com/projects/tool/",
			"<image:loc>https://example.com/"+cover+"</image:loc>",
			"<lastmod>2024-02-01</lastmod>",
		)
		if strings.Contains(sm, "404.html") {
			t.Error("404 page listed in sitemap")
		}
	})

	t.Run("netlify files", func(t *testing.T) {
		assertContains(t, "_headers", readOut(t, out, "_headers"), "/_assets/*", "immutable")
		assertContains(t, "_redirects", readOut(t, out, "_redirects"), "/blog /blog/ 301", "/* /404.html 404")
	})
}

func TestSite_Build_Options(t *testing.T) {
	t.Parallel()

	t.Run("drafts included", func(t *testing.T) {
		t.Parallel()

		site, err := NewSite(testConfig(t), WithFS(testContent()), WithDrafts(true))
		if err != nil {
			t.Fatalf("NewSite() unexpected error: %v", err)
		}
		res, err := site.Build(context.Background())
		if err != nil {
			t.Fatalf("Build() unexpected error: %v", err)
		}
		if !contains(res.Pages, "blog/wip/index.html") {
			t.Errorf("pages %v missing draft", res.Pages)
		}
	})

	t.Run("sitemap and adapter disabled", func(t *testing.T) {
		t.Parallel()

		cfg := testConfig(t)
		cfg.Integrations.Sitemap = false
		cfg.Adapter = config.AdapterNone

		site, err := NewSite(cfg, WithFS(testContent()))
		if err != nil {
			t.Fatalf("NewSite() unexpected error: %v", err)
		}
		res, err := site.Build(context.Background())
		if err != nil {
			t.Fatalf("Build() unexpected error: %v", err)
		}
		for _, name := range []string{"sitemap-index.xml", "_headers", "_redirects"} {
			if _, err := os.Stat(filepath.Join(res.OutDir, name)); !os.IsNotExist(err) {
				t.Errorf("%s should not exist (err=%v)", name, err)
			}
		}
		if strings.Contains(readOut(t, res.OutDir, "index.html"), "sitemap-index.xml") {
			t.Error("sitemap link rendered with sitemap disabled")
		}
	})

	t.Run("empty content", func(t *testing.T) {
		t.Parallel()

		site, err := NewSite(testConfig(t), WithFS(fstest.MapFS{}))
		if err != nil {
			t.Fatalf("NewSite() unexpected error: %v", err)
		}
		res, err := site.Build(context.Background())
		if err != nil {
			t.Fatalf("Build() unexpected error: %v", err)
		}
		want := []string{"404.html", "blog/index.html", "index.html", "projects/index.html"}
		if diff := cmp.Diff(want, res.Pages); diff != "" {
			t.Errorf("pages mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestSite_Build_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content fstest.MapFS
		mutate  func(*config.Config)
		wantErr error
	}{
		{
			name:    "missing title",
			content: fstest.MapFS{"blog/a.md": {Data: []byte("---\ndescription: x\n---\n")}},
			wantErr: ErrMissingTitle,
		},
		{
			name: "duplicate slug",
			content: fstest.MapFS{
				"blog/a.md":  {Data: []byte("---\ntitle: A\n---\n")},
				"blog/a.mdx": {Data: []byte("---\ntitle: A\n---\n")},
			},
			wantErr: ErrDuplicateSlug,
		},
		{
			name:    "mdx disabled",
			content: testContent(),
			mutate:  func(c *config.Config) { c.Integrations.MDX = false },
			wantErr: ErrMDXDisabled,
		},
		{
			name:    "unknown front matter image",
			content: fstest.MapFS{"blog/a.md": {Data: []byte("---\ntitle: A\nimage: nope\n---\n")}},
			wantErr: ErrUnknownImage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := testConfig(t)
			if tt.mutate != nil {
				tt.mutate(cfg)
			}
			site, err := NewSite(cfg, WithFS(tt.content))
			if err != nil {
				t.Fatalf("NewSite() unexpected error: %v", err)
			}
			if _, err := site.Build(context.Background()); !errors.Is(err, tt.wantErr) {
				t.Errorf("Build() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestSite_Build_CanceledContext(t *testing.T) {
	t.Parallel()

	site, err := NewSite(testConfig(t), WithFS(testContent()))
	if err != nil {
		t.Fatalf("NewSite() unexpected error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := site.Build(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Build() error = %v, want context.Canceled", err)
	}
}

func TestNewSite_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     func(t *testing.T) *config.Config
		wantErr error
	}{
		{
			name:    "nil config",
			cfg:     func(*testing.T) *config.Config { return nil },
			wantErr: ErrNilConfig,
		},
		{
			name: "missing site URL",
			cfg: func(t *testing.T) *config.Config {
				c := testConfig(t)
				c.Site = ""
				return c
			},
			wantErr: config.ErrInvalidSiteURL,
		},
		{
			name: "unknown code theme",
			cfg: func(t *testing.T) *config.Config {
				c := testConfig(t)
				c.Integrations.CodeThemes = []string{"no-such-theme"}
				return c
			},
			wantErr: pipeline.ErrUnknownCodeTheme,
		},
		{
			name: "invalid asset path",
			cfg: func(t *testing.T) *config.Config {
				c := testConfig(t)
				c.AssetPath = filepath.Join(t.TempDir(), "missing")
				return c
			},
			wantErr: assets.ErrInvalidBasePath,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := NewSite(tt.cfg(t), WithFS(fstest.MapFS{})); !errors.Is(err, tt.wantErr) {
				t.Errorf("NewSite() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestWithWorkers_Panics(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Error("WithWorkers(0) did not panic")
		}
	}()
	WithWorkers(0)
}

func TestSite_SubpathBase(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	cfg.Site = "https://example.com/portfolio"

	site, err := NewSite(cfg, WithFS(testContent()))
	if err != nil {
		t.Fatalf("NewSite() unexpected error: %v", err)
	}
	if got := site.href("blog/"); got != "/portfolio/blog/" {
		t.Errorf("href(blog/) = %q, want /portfolio/blog/", got)
	}
	if got := site.absURL(""); got != "https://example.com/portfolio/" {
		t.Errorf("absURL(\"\") = %q", got)
	}
	if got := site.href("_assets/a.png"); got != "/portfolio/_assets/a.png" {
		t.Errorf("href(asset) = %q", got)
	}
	if got := site.href(""); got != "/portfolio/" {
		t.Errorf("href(\"\") = %q, want /portfolio/", got)
	}

	if _, err := site.Build(context.Background()); err != nil {
		t.Fatalf("Build() unexpected error: %v", err)
	}
	assertContains(t, "home", readOut(t, cfg.OutDir, "index.html"),
		`rel="canonical" href="https://example.com/portfolio/"`)
	assertContains(t, "sitemap", readOut(t, cfg.OutDir, "sitemap-0.xml"),
		"<loc>https://example.com/portfolio/</loc>")
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
