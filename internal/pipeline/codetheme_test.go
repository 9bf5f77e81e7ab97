package pipeline

import (
	"errors"
	"strings"
	"testing"
)

func TestCodeCSS(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		theme        string
		wantContains []string
		wantErr      error
	}{
		{
			name:         "spectre-dark",
			theme:        SpectreDark,
			wantContains: []string{".chroma", "#0d0f14", "#ff9e64"},
		},
		{
			name:         "case insensitive",
			theme:        "Spectre-Dark",
			wantContains: []string{"#0d0f14"},
		},
		{
			name:         "bundled chroma style",
			theme:        "monokai",
			wantContains: []string{".chroma"},
		},
		{
			name:    "unknown theme",
			theme:   "no-such-theme",
			wantErr: ErrUnknownCodeTheme,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := CodeCSS(tt.theme)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("CodeCSS(%q) error = %v, want %v", tt.theme, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("CodeCSS(%q) unexpected error: %v", tt.theme, err)
			}
			for _, want := range tt.wantContains {
				if !strings.Contains(got, want) {
					t.Errorf("CodeCSS(%q) missing %q", tt.theme, want)
				}
			}
		})
	}
}

func TestHasCodeTheme(t *testing.T) {
	t.Parallel()

	if !HasCodeTheme(SpectreDark) {
		t.Errorf("HasCodeTheme(%q) = false, want true", SpectreDark)
	}
	if HasCodeTheme("no-such-theme") {
		t.Error("HasCodeTheme(no-such-theme) = true, want false")
	}
}
