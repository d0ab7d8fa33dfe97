package server

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
)

// StashCookie carries the originally requested path across the
// not-found fallback. The client router consumes it exactly once.
const StashCookie = "folio_requested_path"

// contentTypes is the fixed extension table for asset responses.
var contentTypes = map[string]string{
	".html": "text/html; charset=utf-8",
	".css":  "text/css; charset=utf-8",
	".js":   "text/javascript; charset=utf-8",
	".json": "application/json",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
	".svg":  "image/svg+xml",
	".ico":  "image/x-icon",
	".txt":  "text/plain; charset=utf-8",
}

// ContentTypeFor returns the response content type for a filename,
// defaulting to application/octet-stream for unknown extensions.
func ContentTypeFor(name string) string {
	if ct, ok := contentTypes[strings.ToLower(filepath.Ext(name))]; ok {
		return ct
	}
	return "application/octet-stream"
}

// assetHandler serves the on-disk asset tree rooted at dir.
type assetHandler struct {
	dir      string
	fallback http.Handler
}

func (h *assetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Clean to keep traversal inside the asset root.
	rel := path.Clean("/" + strings.TrimPrefix(r.URL.Path, "/"))
	full := filepath.Join(h.dir, filepath.FromSlash(rel))

	info, err := os.Stat(full)
	if err != nil {
		h.notFound(w, r)
		return
	}

	if info.IsDir() {
		h.serveIndex(w, r, full, rel)
		return
	}

	data, err := os.ReadFile(full)
	if err != nil {
		h.notFound(w, r)
		return
	}

	w.Header().Set("Content-Type", ContentTypeFor(full))
	w.Write(data)
}

// serveIndex writes the generated directory index the listing source
// parses: parent link first, then children in name order, folders with a
// trailing slash.
func (h *assetHandler) serveIndex(w http.ResponseWriter, r *http.Request, full, rel string) {
	entries, err := os.ReadDir(full)
	if err != nil {
		h.notFound(w, r)
		return
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	var buf bytes.Buffer
	buf.WriteString("<!DOCTYPE html>\n<html>\n<head>\n")
	buf.WriteString(fmt.Sprintf("<title>Index of %s</title>\n", template.HTMLEscapeString(rel)))
	buf.WriteString("</head>\n<body>\n<ul>\n")
	buf.WriteString("<li><a href=\"../\">../</a></li>\n")

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() {
			name += "/"
		}
		escaped := template.HTMLEscapeString(name)
		buf.WriteString(fmt.Sprintf("<li><a href=\"./%s\">%s</a></li>\n", escaped, escaped))
	}

	buf.WriteString("</ul>\n</body>\n</html>\n")

	w.Header().Set("Content-Type", contentTypes[".html"])
	w.Write(buf.Bytes())
}

// notFound stashes the requested path in a one-shot cookie and serves
// the home document instead of a 404 page.
func (h *assetHandler) notFound(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:   StashCookie,
		Value:  r.URL.Path,
		Path:   "/",
		MaxAge: 60,
	})

	h.fallback.ServeHTTP(w, r)
}
