package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestGoldmarkConverter_ToHTML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		input        string
		wantContains []string
		wantNot      []string
	}{
		{
			name:         "heading with generated id",
			input:        "# Hello World",
			wantContains: []string{`<h1 id="hello-world">`, "Hello World", "</h1>"},
			wantNot:      []string{"<!DOCTYPE html>", "<body>"},
		},
		{
			name:         "GFM table",
			input:        "| A | B |\n|---|---|\n| 1 | 2 |",
			wantContains: []string{"<table>", "<thead>", "<tbody>", "<td>"},
		},
		{
			name:         "GFM strikethrough",
			input:        "~~deleted~~",
			wantContains: []string{"<del>deleted</del>"},
		},
		{
			name:         "footnote",
			input:        "Claim.[^1]\n\n[^1]: Source.",
			wantContains: []string{`class="footnotes"`, "Source."},
		},
		{
			name:         "fenced code highlighted with classes",
			input:        "```go\nfunc main() {}\n```",
			wantContains: []string{`class="chroma"`, "main"},
			wantNot:      []string{"style=\"color"},
		},
		{
			name:         "image reference kept for rewriting",
			input:        "![Cover](cover)",
			wantContains: []string{`<img src="cover" alt="Cover"`},
		},
		{
			name:    "raw HTML omitted",
			input:   "<script>alert(1)</script>",
			wantNot: []string{"<script>"},
		},
		{
			name:         "highlight placeholders become mark tags",
			input:        MarkStartPlaceholder + "hot" + MarkEndPlaceholder,
			wantContains: []string{"<mark>hot</mark>"},
		},
	}

	conv := NewGoldmarkConverter(SpectreDark)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := conv.ToHTML(context.Background(), tt.input)
			if err != nil {
				t.Fatalf("ToHTML() unexpected error: %v", err)
			}
			for _, want := range tt.wantContains {
				if !strings.Contains(got, want) {
					t.Errorf("ToHTML() missing %q in:\n%s", want, got)
				}
			}
			for _, not := range tt.wantNot {
				if strings.Contains(got, not) {
					t.Errorf("ToHTML() should not contain %q in:\n%s", not, got)
				}
			}
		})
	}
}

func TestGoldmarkConverter_ToHTML_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewGoldmarkConverter(SpectreDark).ToHTML(ctx, "# Title")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("ToHTML() error = %v, want context.Canceled", err)
	}
}

func TestCommonMarkPreprocessor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "CRLF normalized",
			input: "a\r\nb\rc",
			want:  "a\nb\nc",
		},
		{
			name:  "highlight converted",
			input: "a ==b== c",
			want:  "a " + MarkStartPlaceholder + "b" + MarkEndPlaceholder + " c",
		},
		{
			name:  "highlight inside fence untouched",
			input: "```\n==b==\n```",
			want:  "```\n==b==\n```",
		},
		{
			name:  "tilde fence untouched",
			input: "~~~\n==b==\n~~~\n==c==",
			want:  "~~~\n==b==\n~~~\n" + MarkStartPlaceholder + "c" + MarkEndPlaceholder,
		},
		{
			name:  "blank line runs compressed",
			input: "a\n\n\n\nb",
			want:  "a\n\nb",
		},
	}

	p := &CommonMarkPreprocessor{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := p.PreprocessMarkdown(context.Background(), tt.input); got != tt.want {
				t.Errorf("PreprocessMarkdown() = %q, want %q", got, tt.want)
			}
		})
	}
}
