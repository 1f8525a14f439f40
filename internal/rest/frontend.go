package rest

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// FrontendHandler serves a single-page frontend from a directory, falling back
// to the index file for paths that do not match a real file, so client-side
// routes resolve after a hard refresh.
type FrontendHandler struct {
	dir   string
	index string
}

func NewFrontendHandler(dir string, index string) *FrontendHandler {
	return &FrontendHandler{dir: dir, index: index}
}

func (f *FrontendHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	requested := filepath.Join(f.dir, filepath.Clean("/"+r.URL.Path))

	// Never allow escaping the frontend directory.
	if !strings.HasPrefix(requested, filepath.Clean(f.dir)) {
		http.NotFound(w, r)
		return
	}

	info, err := os.Stat(requested)
	if err != nil || info.IsDir() {
		http.ServeFile(w, r, filepath.Join(f.dir, f.index))
		return
	}

	http.ServeFile(w, r, requested)
}
