package handler

import (
	"net/http"
	"os"
	"path/filepath"
)

// StaticHandler serves the front-end page and the files next to it.
type StaticHandler struct {
	dir   string
	index string
}

// NewStaticHandler creates a StaticHandler serving dir with index as the root page.
func NewStaticHandler(dir, index string) *StaticHandler {
	return &StaticHandler{dir: dir, index: index}
}

// Index serves the front-end page for the root path.
func (s *StaticHandler) Index(w http.ResponseWriter, r *http.Request) {
	path := filepath.Join(s.dir, s.index)
	if info, err := os.Stat(path); err != nil || info.IsDir() {
		log.Warnf("Index file %s is not available", path)
		http.NotFound(w, r)
		return
	}
	http.ServeFile(w, r, path)
}

// Files serves any other asset from the static directory.
func (s *StaticHandler) Files() http.Handler {
	return http.FileServer(fileOnlyFS{http.Dir(s.dir)})
}

// fileOnlyFS hides directories so the file server never renders listings.
type fileOnlyFS struct {
	fs http.FileSystem
}

func (f fileOnlyFS) Open(name string) (http.File, error) {
	file, err := f.fs.Open(name)
	if err != nil {
		return nil, err
	}
	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, err
	}
	if info.IsDir() {
		file.Close()
		return nil, os.ErrNotExist
	}
	return file, nil
}
