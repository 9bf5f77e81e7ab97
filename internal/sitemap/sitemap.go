// Package sitemap encodes XML sitemaps with the Google image extension.
package sitemap

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strings"
	"time"
)

// Namespaces written on every urlset.
const (
	Namespace      = "http://www.sitemaps.org/schemas/sitemap/0.9"
	ImageNamespace = "http://www.google.com/schemas/sitemap-image/1.1"
)

// IndexFile is the sitemap index name crawlers are pointed at.
const IndexFile = "sitemap-index.xml"

// MaxURLsPerFile caps each sitemap-N.xml below the protocol's 50,000 limit.
const MaxURLsPerFile = 45000

// ErrInvalidBase indicates the site URL cannot anchor sitemap locations.
var ErrInvalidBase = errors.New("sitemap: invalid base URL")

// Image is one image shown on a page.
type Image struct {
	Loc   string
	Title string
}

// URL is one page entry.
type URL struct {
	Loc     string
	LastMod time.Time // zero omits lastmod
	Images  []Image
}

// File is an encoded sitemap document and its output name.
type File struct {
	Name string
	Data []byte
}

type urlSet struct {
	XMLName    xml.Name   `xml:"urlset"`
	Xmlns      string     `xml:"xmlns,attr"`
	XmlnsImage string     `xml:"xmlns:image,attr"`
	URLs       []urlEntry `xml:"url"`
}

type urlEntry struct {
	Loc     string       `xml:"loc"`
	LastMod string       `xml:"lastmod,omitempty"`
	Images  []imageEntry `xml:"image:image"`
}

type imageEntry struct {
	Loc   string `xml:"image:loc"`
	Title string `xml:"image:title,omitempty"`
}

type sitemapIndex struct {
	XMLName  xml.Name       `xml:"sitemapindex"`
	Xmlns    string         `xml:"xmlns,attr"`
	Sitemaps []sitemapEntry `xml:"sitemap"`
}

type sitemapEntry struct {
	Loc string `xml:"loc"`
}

// Generate encodes urls into sitemap-0.xml, sitemap-1.xml, ... and an index
// that lists them under base. URLs are sorted by location. The index comes first.
func Generate(base string, urls []URL) ([]File, error) {
	baseURL, err := url.Parse(base)
	if err != nil || !baseURL.IsAbs() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidBase, base)
	}
	if !strings.HasSuffix(baseURL.Path, "/") {
		baseURL.Path += "/"
	}

	sorted := slices.Clone(urls)
	slices.SortFunc(sorted, func(a, b URL) int { return strings.Compare(a.Loc, b.Loc) })

	index := sitemapIndex{Xmlns: Namespace}
	var pages []File

	for i, chunk := range chunks(sorted, MaxURLsPerFile) {
		name := fmt.Sprintf("sitemap-%d.xml", i)
		data, err := encode(newURLSet(chunk))
		if err != nil {
			return nil, err
		}
		pages = append(pages, File{Name: name, Data: data})
		index.Sitemaps = append(index.Sitemaps, sitemapEntry{Loc: baseURL.JoinPath(name).String()})
	}

	data, err := encode(index)
	if err != nil {
		return nil, err
	}
	return append([]File{{Name: IndexFile, Data: data}}, pages...), nil
}

func newURLSet(urls []URL) urlSet {
	set := urlSet{Xmlns: Namespace, XmlnsImage: ImageNamespace, URLs: make([]urlEntry, 0, len(urls))}
	for _, u := range urls {
		e := urlEntry{Loc: u.Loc}
		if !u.LastMod.IsZero() {
			e.LastMod = u.LastMod.UTC().Format(time.DateOnly)
		}
		for _, img := range u.Images {
			e.Images = append(e.Images, imageEntry{Loc: img.Loc, Title: img.Title})
		}
		set.URLs = append(set.URLs, e)
	}
	return set
}

// chunks always yields at least one chunk so an empty site still gets sitemap-0.xml.
func chunks(urls []URL, size int) [][]URL {
	if len(urls) == 0 {
		return [][]URL{nil}
	}
	var out [][]URL
	for len(urls) > size {
		out = append(out, urls[:size])
		urls = urls[size:]
	}
	return append(out, urls)
}

func encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("encode sitemap: %w", err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}
