package sitekit_test

// Notes:
// - These tests live outside the package and use only exported identifiers,
//   the way a module consumer would.

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	sitekit "github.com/alnah/go-sitekit"
)

// ---------------------------------------------------------------------------
// TestPublicAPI_LoadConfigAndBuild - Consumer workflow
// ---------------------------------------------------------------------------

func TestPublicAPI_LoadConfigAndBuild(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "site.yaml")
	yaml := "site: https://example.com/\noutDir: public\nadapter: netlify\ntheme:\n  name: Jane Doe\n"
	if err := os.WriteFile(cfgPath, []byte(yaml), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := sitekit.LoadConfig(cfgPath)
	if err != nil {
		t.Fatalf("LoadConfig() unexpected error: %v", err)
	}
	if cfg.Output != sitekit.OutputStatic || cfg.Adapter != sitekit.AdapterNetlify {
		t.Errorf("Output/Adapter = %q/%q", cfg.Output, cfg.Adapter)
	}

	content := fstest.MapFS{
		"blog/hello.md":    {Data: []byte("---\ntitle: Hello\npubDate: \"2024-05-06\"\n---\nHi.\n")},
		"projects/tool.md": {Data: []byte("---\ntitle: Tool\n---\nA tool.\n")},
	}
	site, err := sitekit.NewSite(cfg, sitekit.WithFS(content), sitekit.WithWorkers(2))
	if err != nil {
		t.Fatalf("NewSite() unexpected error: %v", err)
	}
	res, err := site.Build(context.Background())
	if err != nil {
		t.Fatalf("Build() unexpected error: %v", err)
	}

	if res.OutDir != filepath.Join(dir, "public") {
		t.Errorf("OutDir = %q, want %q", res.OutDir, filepath.Join(dir, "public"))
	}
	if _, err := os.Stat(filepath.Join(res.OutDir, "blog", "hello", "index.html")); err != nil {
		t.Errorf("post page missing: %v", err)
	}
}

// ---------------------------------------------------------------------------
// TestPublicAPI_DefaultConfig - Building a Config in code
// ---------------------------------------------------------------------------

func TestPublicAPI_DefaultConfig(t *testing.T) {
	t.Parallel()

	t.Run("missing site is rejected", func(t *testing.T) {
		t.Parallel()

		_, err := sitekit.NewSite(sitekit.DefaultConfig())
		if !errors.Is(err, sitekit.ErrInvalidSiteURL) {
			t.Errorf("NewSite() error = %v, want ErrInvalidSiteURL", err)
		}
	})

	t.Run("sections are settable", func(t *testing.T) {
		t.Parallel()

		cfg := sitekit.DefaultConfig()
		cfg.Site = "https://example.com/"
		cfg.OutDir = t.TempDir()
		cfg.Theme.OpenGraph.Blog = sitekit.PageMeta{Title: "Notes"}
		cfg.Theme.Giscus = &sitekit.GiscusConfig{Repository: "owner/repo"}

		_, err := sitekit.NewSite(cfg, sitekit.WithFS(fstest.MapFS{}))
		if !errors.Is(err, sitekit.ErrIncompleteGiscus) {
			t.Errorf("NewSite() error = %v, want ErrIncompleteGiscus", err)
		}
	})

	t.Run("empty config name", func(t *testing.T) {
		t.Parallel()

		if _, err := sitekit.LoadConfig(""); !errors.Is(err, sitekit.ErrEmptyConfigName) {
			t.Errorf("LoadConfig(\"\") error = %v, want ErrEmptyConfigName", err)
		}
	})
}
