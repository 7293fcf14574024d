package handler

import (
	"net/http"
	"strings"

	"github.com/klauspost/compress/gzhttp"

	"webapp-template/pkg/response"
)

const staticCacheControl = "public, max-age=31536000, immutable"

// NewStaticHandler serves collected static files from root with gzip and
// long lived caching. Directory listings are not exposed.
func NewStaticHandler(root, prefix string) http.Handler {
	files := http.StripPrefix(prefix, http.FileServer(http.Dir(root)))

	return gzhttp.GzipHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/") {
			response.NotFound(w, "File not found")
			return
		}
		w.Header().Set("Cache-Control", staticCacheControl)
		files.ServeHTTP(w, r)
	}))
}
