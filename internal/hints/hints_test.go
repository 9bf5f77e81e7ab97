package hints

import (
	"strings"
	"testing"
)

func TestForConfigNotFound(t *testing.T) {
	t.Parallel()

	t.Run("suggests user config path", func(t *testing.T) {
		t.Parallel()

		hint := ForConfigNotFound([]string{"sitekit.yaml", "/home/u/.config/go-sitekit/sitekit.yaml"})

		if !strings.Contains(hint, "--config") {
			t.Errorf("hint = %q, want --config suggestion", hint)
		}
		if !strings.Contains(hint, "create /home/u/.config/go-sitekit/sitekit.yaml") {
			t.Errorf("hint = %q, want user config path suggestion", hint)
		}
	})

	t.Run("no user path", func(t *testing.T) {
		t.Parallel()

		hint := ForConfigNotFound([]string{"sitekit.yaml"})

		if strings.Contains(hint, "create") {
			t.Errorf("hint = %q, should not suggest create", hint)
		}
	})
}

func TestForUnknownImage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		available []string
		want      string
	}{
		{"lists keys", []string{"chart", "cover"}, "available in assets/post-images/hello: chart, cover"},
		{"empty directory", nil, "no images found in assets/post-images/hello"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			hint := ForUnknownImage("assets/post-images/hello", tt.available)
			if !strings.Contains(hint, tt.want) {
				t.Errorf("hint = %q, want to contain %q", hint, tt.want)
			}
		})
	}
}

func TestStaticHints(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		fn   func() string
		want string
	}{
		{"mdx disabled", ForMDXDisabled, "integrations.mdx"},
		{"code theme", ForCodeTheme, "spectre-dark"},
		{"output directory", ForOutputDirectory, "writable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			hint := tt.fn()
			if !strings.HasPrefix(hint, "\n  hint: ") {
				t.Errorf("hint = %q, want hint prefix", hint)
			}
			if !strings.Contains(hint, tt.want) {
				t.Errorf("hint = %q, want to contain %q", hint, tt.want)
			}
		})
	}
}

func TestFormat(t *testing.T) {
	t.Parallel()

	if got := format(""); got != "" {
		t.Errorf("format(\"\") = %q, want empty", got)
	}
	if got := format("x"); got != "\n  hint: x" {
		t.Errorf("format(x) = %q", got)
	}
}
