package pipeline

import (
	"context"
	"regexp"
	"strings"

	"github.com/rs/zerolog"
)

// imageRef matches images.key and images["key"], with optional member
// access such as images.cover.src.
const imageRef = `images(?:\.([A-Za-z0-9_$-]+)|\[\s*["']([^"']*)["']\s*\])(?:\.[A-Za-z_$][\w$]*)*`

var (
	// import x from '...'; export const y = ...
	esmLine = regexp.MustCompile(`^\s*(import|export)\s`)

	// <Image src={images.cover} alt="Cover" /> and <img .../> with a JSX src.
	jsxImage   = regexp.MustCompile(`<(?:Image|img)\s+([^>]*?)/?>`)
	jsxSrc     = regexp.MustCompile(`src=\{\s*` + imageRef + `\s*\}`)
	jsxExprSrc = regexp.MustCompile(`src=\{`)
	jsxAlt     = regexp.MustCompile(`alt=(?:"([^"]*)"|'([^']*)'|\{\s*["']([^"']*)["']\s*\})`)

	// {images.cover} or {images["cover"]} used as a plain expression.
	imageExpr = regexp.MustCompile(`\{\s*` + imageRef + `\s*\}`)

	// {/* comment */}
	jsxComment = regexp.MustCompile(`\{/\*.*?\*/\}`)
)

// MDXPreprocessor lowers the MDX subset used by posts to plain Markdown
// before running the CommonMark preprocessor. JSX components other than
// images are left for the HTML renderer, which omits raw HTML.
type MDXPreprocessor struct {
	next CommonMarkPreprocessor
}

// PreprocessMarkdown drops ESM lines and rewrites image components and
// expressions to Markdown image references by key. Code blocks are untouched.
// Image components whose src is some other expression cannot be lowered;
// they are logged at warn level through zerolog.Ctx(ctx).
func (p *MDXPreprocessor) PreprocessMarkdown(ctx context.Context, content string) string {
	if ctx.Err() != nil {
		return content
	}
	log := zerolog.Ctx(ctx)

	content = crlfOrCR.ReplaceAllString(content, "\n")
	content = mapOutsideFences(content, func(line string) string {
		if esmLine.MatchString(line) {
			return dropLine
		}
		line = jsxComment.ReplaceAllString(line, "")
		line = jsxImage.ReplaceAllStringFunc(line, func(tag string) string {
			md, ok := imageComponentToMarkdown(tag)
			if !ok && jsxExprSrc.MatchString(tag) {
				log.Warn().Str("tag", tag).Msg("image component src is not an images lookup; dropped from output")
			}
			return md
		})
		return rewriteImageExprs(line)
	})

	return p.next.PreprocessMarkdown(ctx, content)
}

// imageComponentToMarkdown turns <Image src={images.k} alt="a" /> into ![a](k).
// Tags whose src is not an images lookup are returned unchanged with ok false.
func imageComponentToMarkdown(tag string) (md string, ok bool) {
	attrs := jsxImage.FindStringSubmatch(tag)[1]
	src := jsxSrc.FindStringSubmatch(attrs)
	if src == nil {
		return tag, false
	}
	alt := firstGroup(jsxAlt.FindStringSubmatch(attrs))
	return "![" + escapeAlt(alt) + "](" + firstGroup(src) + ")", true
}

// rewriteImageExprs replaces {images.k} with k inside a link destination,
// as in ![alt]({images.k}), and with the image ![](k) anywhere else.
func rewriteImageExprs(line string) string {
	matches := imageExpr.FindAllStringSubmatchIndex(line, -1)
	if matches == nil {
		return line
	}

	var b strings.Builder
	last := 0
	for _, m := range matches {
		b.WriteString(line[last:m[0]])
		key := line[m[4]:m[5]]
		if m[2] >= 0 {
			key = line[m[2]:m[3]]
		}
		if strings.HasSuffix(line[:m[0]], "(") {
			b.WriteString(key)
		} else {
			b.WriteString("![](" + key + ")")
		}
		last = m[1]
	}
	b.WriteString(line[last:])
	return b.String()
}

// firstGroup returns the first non-empty capture group of a submatch.
func firstGroup(m []string) string {
	if len(m) < 2 {
		return ""
	}
	for _, g := range m[1:] {
		if g != "" {
			return g
		}
	}
	return ""
}

func escapeAlt(s string) string {
	return strings.NewReplacer(`[`, `\[`, `]`, `\]`).Replace(s)
}

// Compile-time interface checks.
var (
	_ MarkdownPreprocessor = (*MDXPreprocessor)(nil)
	_ MarkdownPreprocessor = (*CommonMarkPreprocessor)(nil)
)
