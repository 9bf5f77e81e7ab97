// Package sitekit builds a static portfolio and blog site from Markdown and MDX content.
//
// # Quick Start
//
// Load a configuration, create a site, and build it:
//
//	cfg, err := sitekit.LoadConfig("site")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	site, err := sitekit.NewSite(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	res, err := site.Build(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(len(res.Pages), "pages in", res.OutDir)
//
// # Content Layout
//
// The content directory holds:
//
//	blog/<slug>.md|mdx               blog posts
//	projects/<slug>.md|mdx           project pages
//	assets/post-images/<slug>/*.png  images of one blog post (png, jpg, jpeg, webp, avif)
//
// Each file starts with YAML front matter between "---" fences. A title is required.
//
// # Post Images
//
// A post's images are loaded eagerly and keyed by file name up to the first
// dot, so "./team-photo.v2.jpeg" is referenced as "team-photo". Markdown
// references images by key (![Team](team-photo)); MDX may use
// <Image src={images.key} alt="..." />. When two files share a key, the one
// whose path sorts last wins and the collision is logged.
//
// # Build Output
//
//  1. Pages: index.html, blog/, projects/, one directory per entry, 404.html
//  2. Assets: fingerprinted images and stylesheets under _assets/
//  3. Sitemap: sitemap-index.xml and sitemap-0.xml with image entries
//  4. Adapter files, e.g. Netlify's _headers and _redirects
//
// # Configuration
//
// Use functional options to customize the build:
//
//	site, err := sitekit.NewSite(cfg,
//	    sitekit.WithLogger(logger),
//	    sitekit.WithWorkers(4),
//	    sitekit.WithDrafts(true),
//	)
//
// # Error Handling
//
// Errors are wrapped sentinels; check them with errors.Is:
//
//	if errors.Is(err, sitekit.ErrMissingTitle) {
//	    // a content file lacks a title
//	}
package sitekit
