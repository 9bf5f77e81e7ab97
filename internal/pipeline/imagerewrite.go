package pipeline

import (
	"slices"
	"strings"

	"github.com/alnah/go-sitekit/internal/assets"
	"github.com/alnah/go-sitekit/internal/fileutil"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ImageResolver maps an image key to its published URL.
type ImageResolver func(key string) (url string, ok bool)

// RewriteImageRefs points img[src] values at published image URLs.
// A src is looked up by its asset key, so "cover", "./cover.png" and
// "images/cover.webp" all resolve to the "cover" image.
// Returns the rewritten HTML and the sorted keys that resolved.
//
// Left untouched:
//   - URLs, data: URIs and absolute paths
//   - sources the resolver does not know
//   - srcset attributes
func RewriteImageRefs(htmlContent string, resolve ImageResolver) (string, []string, error) {
	if resolve == nil || !strings.Contains(htmlContent, "<img") {
		return htmlContent, nil, nil
	}

	doc, isFragment, err := parseHTML(htmlContent)
	if err != nil {
		return "", nil, err
	}

	used := make(map[string]struct{})
	rewriteImages(doc, resolve, used)

	out, err := renderHTML(doc, isFragment)
	if err != nil {
		return "", nil, err
	}

	keys := make([]string, 0, len(used))
	for k := range used {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return out, keys, nil
}

// parseHTML parses HTML content, handling both full documents and fragments.
// Returns the parsed node, whether it was a fragment, and any error.
func parseHTML(content string) (*html.Node, bool, error) {
	trimmed := strings.ToLower(strings.TrimSpace(content))

	if strings.HasPrefix(trimmed, "<!doctype") || strings.HasPrefix(trimmed, "<html") {
		doc, err := html.Parse(strings.NewReader(content))
		return doc, false, err
	}

	// Parse with body context to avoid wrapping
	context := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Body,
		Data:     "body",
	}
	nodes, err := html.ParseFragment(strings.NewReader(content), context)
	if err != nil {
		return nil, true, err
	}

	container := &html.Node{Type: html.DocumentNode}
	for _, n := range nodes {
		container.AppendChild(n)
	}
	return container, true, nil
}

// renderHTML renders the document back to string.
// For fragments, only renders the children (avoids adding <html><body> wrapper).
func renderHTML(doc *html.Node, isFragment bool) (string, error) {
	var buf strings.Builder

	if isFragment {
		for c := doc.FirstChild; c != nil; c = c.NextSibling {
			if err := html.Render(&buf, c); err != nil {
				return "", err
			}
		}
		return buf.String(), nil
	}

	if err := html.Render(&buf, doc); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func rewriteImages(n *html.Node, resolve ImageResolver, used map[string]struct{}) {
	if n.Type == html.ElementNode && n.DataAtom == atom.Img {
		rewriteImg(n, resolve, used)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		rewriteImages(c, resolve, used)
	}
}

func rewriteImg(n *html.Node, resolve ImageResolver, used map[string]struct{}) {
	i := slices.IndexFunc(n.Attr, func(a html.Attribute) bool { return a.Key == "src" })
	if i < 0 || !isLocalRef(n.Attr[i].Val) {
		return
	}

	key := assets.Key(n.Attr[i].Val)
	u, ok := resolve(key)
	if !ok {
		return
	}
	n.Attr[i].Val = u
	used[key] = struct{}{}

	setDefaultAttr(n, "loading", "lazy")
	setDefaultAttr(n, "decoding", "async")
}

// isLocalRef reports whether src names a file shipped with the post.
func isLocalRef(src string) bool {
	return src != "" &&
		!fileutil.IsURL(src) &&
		!strings.HasPrefix(src, "/") &&
		!strings.HasPrefix(src, "#")
}

func setDefaultAttr(n *html.Node, key, val string) {
	for _, a := range n.Attr {
		if a.Key == key {
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}
