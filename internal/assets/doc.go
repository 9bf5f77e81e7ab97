// Package assets discovers and keys a site's static files.
//
// # Image Registry
//
// Post images are discovered eagerly by a Provider and re-keyed by Normalize:
//
//	entries, _ := assets.DiscoverDir(fsys, "assets/post-images/my-post", assets.ImagePattern)
//	images := assets.Normalize(entries) // "./cover.png" -> "cover"
//
// Keys are the file name up to its first dot. Two files sharing a stem collide
// and the later entry wins; Collisions reports them without changing the result.
//
// # Theme Files
//
// Layout templates and stylesheets resolve through AssetLoader:
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - built-in files compiled in with go:embed
//	    ├── FilesystemLoader  - override directory on disk
//	    └── AssetResolver     - override first, embedded on not-found
//
// Names are validated to prevent path traversal, and FilesystemLoader resolves
// symlinks before checking containment.
package assets
