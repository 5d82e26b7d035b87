package api

import (
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"path"
	"strings"
)

// contentTypes maps file extensions to MIME types for the static assets.
var contentTypes = map[string]string{
	".html": "text/html",
	".css":  "text/css",
	".js":   "application/javascript",
	".json": "application/json",
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".svg":  "image/svg+xml",
}

// StaticHandler serves the embedded front-end assets. The root path serves
// index.html, a missing file is a 404, and a read failure is a 500.
type StaticHandler struct {
	FS fs.FS
}

func (h *StaticHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimPrefix(path.Clean(r.URL.Path), "/")
	if name == "" || name == "." {
		name = "index.html"
	}

	data, err := fs.ReadFile(h.FS, name)
	if errors.Is(err, fs.ErrNotExist) {
		http.Error(w, "file not found", http.StatusNotFound)
		return
	}
	if err != nil {
		slog.Error("reading static asset", "path", name, "error", err)
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}

	contentType := contentTypes[strings.ToLower(path.Ext(name))]
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	if _, err := w.Write(data); err != nil {
		slog.Error("writing static asset", "path", name, "error", err)
	}
}
