package assets

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewAssetResolver(t *testing.T) {
	t.Parallel()

	t.Run("empty path uses embedded only", func(t *testing.T) {
		t.Parallel()

		resolver, err := NewAssetResolver("")
		if err != nil {
			t.Fatalf("NewAssetResolver(\"\") error = %v", err)
		}
		if resolver.HasCustomLoader() {
			t.Error("expected no custom loader for empty path")
		}
	})

	t.Run("valid custom path", func(t *testing.T) {
		t.Parallel()

		resolver, err := NewAssetResolver(t.TempDir())
		if err != nil {
			t.Fatalf("NewAssetResolver() error = %v", err)
		}
		if !resolver.HasCustomLoader() {
			t.Error("expected custom loader for valid path")
		}
	})

	t.Run("invalid custom path returns error", func(t *testing.T) {
		t.Parallel()

		_, err := NewAssetResolver(filepath.Join(t.TempDir(), "missing"))
		if !errors.Is(err, ErrInvalidBasePath) {
			t.Errorf("NewAssetResolver() error = %v, want ErrInvalidBasePath", err)
		}
	})
}

func TestAssetResolver_Fallback(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	writeFile(t, filepath.Join(base, "styles", "site.css"), "/* override */")

	resolver, err := NewAssetResolver(base)
	if err != nil {
		t.Fatalf("NewAssetResolver() error = %v", err)
	}

	t.Run("override wins", func(t *testing.T) {
		t.Parallel()

		got, err := resolver.LoadStyle("site")
		if err != nil {
			t.Fatalf("LoadStyle(site) error = %v", err)
		}
		if got != "/* override */" {
			t.Errorf("LoadStyle(site) = %q, want override", got)
		}
	})

	t.Run("falls back to embedded template", func(t *testing.T) {
		t.Parallel()

		got, err := resolver.LoadTemplate("page")
		if err != nil {
			t.Fatalf("LoadTemplate(page) error = %v", err)
		}
		if !strings.Contains(got, "<!DOCTYPE html>") {
			t.Error("expected embedded page template")
		}
	})

	t.Run("validation errors are not masked", func(t *testing.T) {
		t.Parallel()

		_, err := resolver.LoadStyle("../site")
		if !errors.Is(err, ErrInvalidAssetName) {
			t.Errorf("LoadStyle(../site) error = %v, want ErrInvalidAssetName", err)
		}
	})

	t.Run("missing everywhere", func(t *testing.T) {
		t.Parallel()

		_, err := resolver.LoadStyle("absent")
		if !errors.Is(err, ErrStyleNotFound) {
			t.Errorf("LoadStyle(absent) error = %v, want ErrStyleNotFound", err)
		}
	})
}
