package assets

import (
	"io/fs"
	"strings"
	"sync"
)

// Index is an immutable mapping from a slash-separated relative path to the
// embedded bytes for that path. Build it once with NewIndex; reads need no
// synchronization afterwards.
type Index struct {
	files map[string][]byte
}

// NewIndex walks fsys under root and records every regular file, keyed by
// its path relative to root.
func NewIndex(fsys fs.FS, root string) (*Index, error) {
	files := make(map[string][]byte)

	err := fs.WalkDir(fsys, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return err
		}
		rel := strings.TrimPrefix(path, root)
		rel = strings.TrimPrefix(rel, "/")
		files[rel] = data
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &Index{files: files}, nil
}

// Lookup returns the embedded bytes for an exact relative-path match.
// The returned slice aliases the embedded data and must not be modified.
func (ix *Index) Lookup(path string) ([]byte, bool) {
	data, ok := ix.files[path]
	return data, ok
}

// Len returns the number of embedded files.
func (ix *Index) Len() int {
	return len(ix.files)
}

var (
	headers = sync.OnceValue(func() *Index {
		ix, err := NewIndex(embedded, "include")
		if err != nil {
			// The embedded tree is fixed at build time; a walk failure
			// means a broken binary, not a runtime condition.
			panic("assets: embedded header walk failed: " + err.Error())
		}
		return ix
	})

	libraries = sync.OnceValue(func() *Index {
		ix, err := NewIndex(embedded, "lib")
		if err != nil {
			panic("assets: embedded library walk failed: " + err.Error())
		}
		return ix
	})
)

// Headers returns the index over the embedded include/ tree.
func Headers() *Index {
	return headers()
}

// Libraries returns the index over the embedded lib/ tree.
func Libraries() *Index {
	return libraries()
}
