package main

import (
	"mime"
	"path/filepath"
	"strings"
)

// binaryType is what we fall back to when nothing else matches.
const binaryType = "application/octet-stream"

// contentTypeResolver maps a file path to the Content-Type its object should
// be stored with. Resolution order: forced overrides, then the host's MIME
// registry, then the built-in fallback table, then application/octet-stream.
// It never fails; every path resolves to something.
type contentTypeResolver struct {
	// forced wins over the host registry. Host registries disagree on
	// whether .js is text/javascript or application/javascript, and a
	// deployed site should not depend on which machine it was deployed from.
	forced map[string]string

	// lookup consults the host MIME registry. Swappable in tests.
	lookup func(ext string) string

	fallback map[string]string
}

func newContentTypeResolver() *contentTypeResolver {
	return &contentTypeResolver{
		forced: map[string]string{
			".js": "application/javascript",
		},
		lookup: mime.TypeByExtension,
		fallback: map[string]string{
			".html": "text/html",
			".js":   "application/javascript",
			".css":  "text/css",
			".json": "application/json",
			".png":  "image/png",
			".jpg":  "image/jpeg",
			".jpeg": "image/jpeg",
			".svg":  "image/svg+xml",
			".webp": "image/webp",
			".mp3":  "audio/mpeg",
		},
	}
}

func (r *contentTypeResolver) resolve(path string) string {
	ext := strings.ToLower(filepath.Ext(path))

	if ct, ok := r.forced[ext]; ok {
		return ct
	}
	if ct := r.lookup(ext); ct != "" {
		return ct
	}
	if ct, ok := r.fallback[ext]; ok {
		return ct
	}

	return binaryType
}
