package assets

import (
	"maps"
	"slices"
	"strings"
)

// Entry pairs a discovered asset path with the handle the loader produced for it.
type Entry[H any] struct {
	Path   string
	Handle H
}

// Collision reports a key derived from more than one path.
// Paths are listed in processing order; the last one owns the key.
type Collision struct {
	Key   string
	Paths []string
}

// Key derives the lookup key for an asset path: the final path segment up to its
// first dot. "./my-photo.v2.png" yields "my-photo", "./.hidden" yields "".
func Key(path string) string {
	segment := path[strings.LastIndexByte(path, '/')+1:]
	if i := strings.IndexByte(segment, '.'); i >= 0 {
		return segment[:i]
	}
	return segment
}

// Normalize re-keys entries by Key, in slice order. When two paths derive the
// same key the later entry replaces the earlier one. Handles are moved as-is.
func Normalize[H any](entries []Entry[H]) map[string]H {
	registry := make(map[string]H, len(entries))
	for _, e := range entries {
		registry[Key(e.Path)] = e.Handle
	}
	return registry
}

// NormalizeMap is Normalize for an unordered path-to-handle map.
// Paths are processed in ascending lexical order.
func NormalizeMap[H any](m map[string]H) map[string]H {
	return Normalize(sortedEntries(m))
}

// Collisions lists the keys that more than one entry derives, sorted by key.
func Collisions[H any](entries []Entry[H]) []Collision {
	byKey := make(map[string][]string, len(entries))
	for _, e := range entries {
		k := Key(e.Path)
		byKey[k] = append(byKey[k], e.Path)
	}

	var out []Collision
	for _, k := range slices.Sorted(maps.Keys(byKey)) {
		if paths := byKey[k]; len(paths) > 1 {
			out = append(out, Collision{Key: k, Paths: paths})
		}
	}
	return out
}

func sortedEntries[H any](m map[string]H) []Entry[H] {
	entries := make([]Entry[H], 0, len(m))
	for _, p := range slices.Sorted(maps.Keys(m)) {
		entries = append(entries, Entry[H]{Path: p, Handle: m[p]})
	}
	return entries
}
