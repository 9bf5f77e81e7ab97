package pipeline

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
)

// ErrUnknownCodeTheme indicates no chroma style is registered under a name.
var ErrUnknownCodeTheme = errors.New("unknown code theme")

// SpectreDark is the default code theme name.
const SpectreDark = "spectre-dark"

// spectreDark mirrors the site palette: near-black surface, muted
// foreground, and a single warm accent for keywords.
var spectreDark = styles.Register(chroma.MustNewStyle(SpectreDark, chroma.StyleEntries{
	chroma.Background:          "#c9cdd6 bg:#0d0f14",
	chroma.LineNumbers:         "#4b5263",
	chroma.LineHighlight:       "bg:#1a1e27",
	chroma.Error:               "#f07178",
	chroma.Comment:             "italic #5c6370",
	chroma.CommentPreproc:      "#c792ea",
	chroma.Keyword:             "bold #ff9e64",
	chroma.KeywordType:         "#7dcfff",
	chroma.KeywordConstant:     "#ff9e64",
	chroma.Operator:            "#89ddff",
	chroma.Punctuation:         "#a9b1d6",
	chroma.Name:                "#c9cdd6",
	chroma.NameFunction:        "#82aaff",
	chroma.NameClass:           "bold #ffcb6b",
	chroma.NameBuiltin:         "#7dcfff",
	chroma.NameTag:             "#f07178",
	chroma.NameAttribute:       "#ffcb6b",
	chroma.NameDecorator:       "#c792ea",
	chroma.LiteralString:       "#c3e88d",
	chroma.LiteralStringEscape: "#89ddff",
	chroma.LiteralNumber:       "#f78c6c",
	chroma.GenericDeleted:      "#f07178",
	chroma.GenericInserted:     "#c3e88d",
	chroma.GenericHeading:      "bold #82aaff",
	chroma.GenericSubheading:   "#82aaff",
	chroma.GenericEmph:         "italic",
	chroma.GenericStrong:       "bold",
}))

// CodeCSS returns the stylesheet for highlighted code in the named theme.
// Pairs with the class-based output of GoldmarkConverter.
func CodeCSS(theme string) (string, error) {
	style, ok := styles.Registry[strings.ToLower(theme)]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownCodeTheme, theme)
	}

	var sb strings.Builder
	if err := chromahtml.New(chromahtml.WithClasses(true)).WriteCSS(&sb, style); err != nil {
		return "", fmt.Errorf("writing %s css: %w", theme, err)
	}
	return sb.String(), nil
}

// HasCodeTheme reports whether a chroma style is registered under name.
func HasCodeTheme(name string) bool {
	_, ok := styles.Registry[strings.ToLower(name)]
	return ok
}
