// Package pipeline renders site content to HTML.
//
// Stages, in order:
//   - MDX preprocessing: ESM lines dropped, <Image src={images.key}/> to Markdown
//   - Markdown preprocessing (line normalization, ==highlight== syntax)
//   - Markdown to HTML fragment via Goldmark with chroma class highlighting
//   - Image reference rewriting to fingerprinted asset URLs
//   - Page layout (OpenGraph metadata, giscus comments)
//   - Minification of HTML, CSS, and XML output
//
// The package knows nothing about configuration files or the output tree;
// the root sitekit package wires stages together.
package pipeline
