package index

import (
	"io/fs"
	"log"
	"path/filepath"
	"sort"
)

// populate clears the index collections and rebuilds them with a single
// depth-first walk of the root. Directories rejected by the filter are
// pruned so their subtrees are never descended into. Per-entry errors are
// non-fatal: the entry is skipped with a diagnostic and the walk continues.
func (x *Index) populate() error {
	x.dirs = nil
	x.files = nil
	x.extensions = nil

	var filePaths []string

	err := filepath.WalkDir(x.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			log.Printf("warning: skipping %s: %v", path, err)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		// The root is always traversed but never recorded.
		if path == x.root {
			return nil
		}
		if !x.filter.Include(path, d.IsDir()) {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		switch {
		case d.IsDir():
			x.dirs = append(x.dirs, NewDirectoryEntry(path))
		case d.Type().IsRegular():
			filePaths = append(filePaths, path)
		}
		return nil
	})
	if err != nil {
		return ioErr("walk", x.root, err)
	}

	for _, path := range filePaths {
		// The file may have vanished between listing and stat; skip it
		// rather than aborting the whole populate.
		entry, err := NewFileEntry(path)
		if err != nil {
			log.Printf("warning: could not record %s: %v", path, err)
			continue
		}
		x.files = append(x.files, entry)
	}

	sort.Slice(x.dirs, func(i, j int) bool { return x.dirs[i].Path < x.dirs[j].Path })
	sort.Slice(x.files, func(i, j int) bool { return x.files[i].Path < x.files[j].Path })
	x.rebuildExtensions()
	return nil
}

// rebuildExtensions recomputes the registry as the sorted union of all
// non-empty file extensions.
func (x *Index) rebuildExtensions() {
	seen := make(map[string]struct{})
	x.extensions = nil
	for _, f := range x.files {
		if f.Extension == "" {
			continue
		}
		if _, ok := seen[f.Extension]; ok {
			continue
		}
		seen[f.Extension] = struct{}{}
		x.extensions = append(x.extensions, f.Extension)
	}
	sort.Strings(x.extensions)
}
