package pipeline

import (
	"fmt"
	"regexp"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	mhtml "github.com/tdewolff/minify/v2/html"
	"github.com/tdewolff/minify/v2/xml"
)

// Media types the Minifier handles.
const (
	MediaHTML = "text/html"
	MediaCSS  = "text/css"
	MediaXML  = "application/xml"
)

// Minifier shrinks generated HTML, CSS and XML.
// Safe for concurrent use.
type Minifier struct {
	m *minify.M
}

// NewMinifier creates a Minifier. Document tags and end tags are kept so
// output stays valid for strict consumers.
func NewMinifier() *Minifier {
	m := minify.New()
	m.AddFunc(MediaCSS, css.Minify)
	m.Add(MediaHTML, &mhtml.Minifier{
		KeepDocumentTags: true,
		KeepEndTags:      true,
		KeepQuotes:       true,
	})
	m.AddFuncRegexp(regexp.MustCompile(`[/+]xml$`), xml.Minify)
	return &Minifier{m: m}
}

// String minifies s as mediaType.
func (mf *Minifier) String(mediaType, s string) (string, error) {
	out, err := mf.m.String(mediaType, s)
	if err != nil {
		return "", fmt.Errorf("minify %s: %w", mediaType, err)
	}
	return out, nil
}

// Bytes minifies b as mediaType.
func (mf *Minifier) Bytes(mediaType string, b []byte) ([]byte, error) {
	out, err := mf.m.Bytes(mediaType, b)
	if err != nil {
		return nil, fmt.Errorf("minify %s: %w", mediaType, err)
	}
	return out, nil
}
