package assets

import (
	"crypto/sha256"
	"encoding/hex"
	"path"
	"strings"
)

// ImagePattern matches the image formats a post directory may contain.
const ImagePattern = "*.{png,jpg,jpeg,webp,avif}"

// hashLength is the number of hex digits kept in fingerprinted file names.
const hashLength = 8

var mediaTypes = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".webp": "image/webp",
	".avif": "image/avif",
}

// Image is an eagerly loaded image file.
type Image struct {
	Path      string // slash path relative to the provider root
	Data      []byte
	MediaType string
	Hash      string // hex SHA-256 of Data
}

// NewImage builds an Image from its path and content.
func NewImage(p string, data []byte) *Image {
	sum := sha256.Sum256(data)
	return &Image{
		Path:      p,
		Data:      data,
		MediaType: MediaType(p),
		Hash:      hex.EncodeToString(sum[:]),
	}
}

// Ext returns the lower-cased extension including the dot.
func (img *Image) Ext() string {
	return strings.ToLower(path.Ext(img.Path))
}

// FingerprintedName returns "<key>.<hash8><ext>", the file name an image is published under.
// An empty key falls back to "image" so the name never starts with a dot.
func (img *Image) FingerprintedName(key string) string {
	if key == "" {
		key = "image"
	}
	return fingerprint(key, img.Hash, img.Ext())
}

// FingerprintName returns "<stem>.<hash8><ext>" for arbitrary content,
// so generated stylesheets can share the immutable asset directory.
func FingerprintName(stem, ext string, data []byte) string {
	sum := sha256.Sum256(data)
	return fingerprint(stem, hex.EncodeToString(sum[:]), ext)
}

func fingerprint(stem, hash, ext string) string {
	if len(hash) > hashLength {
		hash = hash[:hashLength]
	}
	return stem + "." + hash + ext
}

// MediaType returns the MIME type for an image path, or application/octet-stream.
func MediaType(p string) string {
	if mt, ok := mediaTypes[strings.ToLower(path.Ext(p))]; ok {
		return mt
	}
	return "application/octet-stream"
}
