package sitekit

import (
	"io/fs"
	"maps"
	"path"
	"slices"

	"github.com/alnah/go-sitekit/internal/assets"
)

// Images is a post's image registry: asset key to loaded image.
type Images map[string]*assets.Image

// Keys returns the registry keys in ascending order.
func (im Images) Keys() []string {
	return slices.Sorted(maps.Keys(im))
}

// LoadPostImages eagerly loads the images in dir under fsys and keys them by
// file name up to the first dot. When two files derive the same key, the file
// whose path sorts last wins. A missing dir yields an empty registry.
func LoadPostImages(fsys fs.FS, dir string) (Images, error) {
	images, _, err := loadPostImages(fsys, dir)
	return images, err
}

func loadPostImages(fsys fs.FS, dir string) (Images, []assets.Collision, error) {
	entries, err := assets.DiscoverDir(fsys, dir, assets.ImagePattern)
	if err != nil {
		return nil, nil, err
	}
	return Images(assets.Normalize(entries)), assets.Collisions(entries), nil
}

// postImagesPath returns the image directory of a blog post.
func postImagesPath(slug string) string {
	return path.Join(postImagesDir, slug)
}
