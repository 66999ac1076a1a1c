package main

import "testing"

// noRegistry simulates a host whose MIME registry knows nothing, forcing the
// resolver onto its built-in fallback table.
func noRegistry(string) string { return "" }

func TestResolveFallbackTable(t *testing.T) {
	r := newContentTypeResolver()
	r.lookup = noRegistry

	tests := []struct {
		path string
		want string
	}{
		{"index.html", "text/html"},
		{"app.js", "application/javascript"},
		{"style.css", "text/css"},
		{"data.json", "application/json"},
		{"logo.png", "image/png"},
		{"photo.jpg", "image/jpeg"},
		{"photo.jpeg", "image/jpeg"},
		{"icon.svg", "image/svg+xml"},
		{"hero.webp", "image/webp"},
		{"theme.mp3", "audio/mpeg"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := r.resolve(tt.path); got != tt.want {
				t.Errorf("resolve(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestResolveUnknownExtension(t *testing.T) {
	r := newContentTypeResolver()
	r.lookup = noRegistry

	for _, path := range []string{"binary.xyz", "noextension", "archive.bin"} {
		if got := r.resolve(path); got != binaryType {
			t.Errorf("resolve(%q) = %q, want %q", path, got, binaryType)
		}
	}
}

func TestResolveJSIgnoresHostRegistry(t *testing.T) {
	r := newContentTypeResolver()
	// A host registry that disagrees about JavaScript must not win.
	r.lookup = func(ext string) string {
		if ext == ".js" {
			return "text/javascript; charset=utf-8"
		}
		return ""
	}

	if got := r.resolve("bundle.js"); got != "application/javascript" {
		t.Errorf("resolve(bundle.js) = %q, want application/javascript", got)
	}
}

func TestResolvePrefersHostRegistry(t *testing.T) {
	r := newContentTypeResolver()
	r.lookup = func(ext string) string {
		if ext == ".html" {
			return "text/html; charset=utf-8"
		}
		return ""
	}

	if got := r.resolve("page.html"); got != "text/html; charset=utf-8" {
		t.Errorf("resolve(page.html) = %q, want the registry's answer", got)
	}
}

func TestResolveIsCaseInsensitive(t *testing.T) {
	r := newContentTypeResolver()
	r.lookup = noRegistry

	if got := r.resolve("PHOTO.JPG"); got != "image/jpeg" {
		t.Errorf("resolve(PHOTO.JPG) = %q, want image/jpeg", got)
	}
	if got := r.resolve("Bundle.JS"); got != "application/javascript" {
		t.Errorf("resolve(Bundle.JS) = %q, want application/javascript", got)
	}
}

func TestResolveDefaultLookupIsWired(t *testing.T) {
	r := newContentTypeResolver()

	// Whatever the host registry says, these must hold everywhere.
	if got := r.resolve("app.js"); got != "application/javascript" {
		t.Errorf("resolve(app.js) = %q, want application/javascript", got)
	}
	if got := r.resolve("mystery.zzz-unknown"); got != binaryType {
		t.Errorf("resolve(mystery.zzz-unknown) = %q, want %q", got, binaryType)
	}
}
