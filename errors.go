package sitekit

import "errors"

// Sentinel errors for site builds.
var (
	ErrNilConfig     = errors.New("config cannot be nil")
	ErrMissingTitle  = errors.New("front matter title is required")
	ErrDuplicateSlug = errors.New("duplicate slug")
	ErrUnknownImage  = errors.New("image key not found in post images")
	ErrMDXDisabled   = errors.New("MDX content found but the mdx integration is disabled")
	ErrInvalidDate   = errors.New("invalid front matter date")
)
