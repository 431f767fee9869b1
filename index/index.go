package index

import (
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Index mirrors a directory subtree as flat, path-keyed collections of
// file and directory entries. Hierarchy is never stored; it is derived by
// comparing path strings, so the index has no cyclic structure to maintain.
//
// Every mutation performs the filesystem operation first and only updates
// the collections on success. An Index is owned by a single caller; it is
// not safe for concurrent use without external synchronization.
type Index struct {
	root       string
	filter     *Filter
	dirs       []*DirectoryEntry
	files      []*FileEntry
	extensions []string
}

// FileQuery selects files by ANDed constraints. Empty fields match
// everything. With FirstOnly, matching stops at the first hit in index
// order.
type FileQuery struct {
	Name      string `json:"name" form:"name"`
	SubPath   string `json:"sub_path" form:"sub_path"`
	Extension string `json:"extension" form:"extension"`
	FirstOnly bool   `json:"first_only" form:"first"`
}

// DirQuery selects directories; directories have no extension to match.
type DirQuery struct {
	Name      string `json:"name" form:"name"`
	SubPath   string `json:"sub_path" form:"sub_path"`
	FirstOnly bool   `json:"first_only" form:"first"`
}

// New resolves and canonicalizes rootPath (defaulting to the current
// working directory), compiles the filter, and populates the index with a
// full walk.
func New(rootPath string, opts FilterOptions) (*Index, error) {
	root, err := canonicalRoot(rootPath)
	if err != nil {
		return nil, err
	}
	x := &Index{root: root, filter: NewFilter(root, opts)}
	if err := x.populate(); err != nil {
		return nil, err
	}
	return x, nil
}

func canonicalRoot(path string) (string, error) {
	if path == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", ioErr("getwd", ".", err)
		}
		path = wd
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", ioErr("resolve", path, err)
	}
	canonical, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", ioErr("canonicalize", path, err)
	}
	info, err := os.Stat(canonical)
	if err != nil {
		return "", ioErr("stat", canonical, err)
	}
	if !info.IsDir() {
		return "", &ValidationError{Op: "open root", Detail: canonical + " is not a directory"}
	}
	return canonical, nil
}

// Root returns the canonical root path.
func (x *Index) Root() string { return x.root }

// Files returns the indexed files in path order. The returned entries are
// live views owned by the index; mutate them through Index methods.
func (x *Index) Files() []*FileEntry { return x.files }

// Directories returns the indexed directories in path order.
func (x *Index) Directories() []*DirectoryEntry { return x.dirs }

// Extensions returns the sorted set of distinct non-empty extensions.
func (x *Index) Extensions() []string { return x.extensions }

// Refresh discards the collections and re-walks the root.
func (x *Index) Refresh() error { return x.populate() }

func (q FileQuery) matches(f *FileEntry) bool {
	if q.Name != "" && f.Name != q.Name {
		return false
	}
	if q.SubPath != "" && !strings.Contains(f.Path, q.SubPath) {
		return false
	}
	if q.Extension != "" && f.Extension != q.Extension {
		return false
	}
	return true
}

func (q DirQuery) matches(d *DirectoryEntry) bool {
	if q.Name != "" && d.Name != q.Name {
		return false
	}
	if q.SubPath != "" && !strings.Contains(d.Path, q.SubPath) {
		return false
	}
	return true
}

// FindFiles returns every file matching the query, in index order.
func (x *Index) FindFiles(q FileQuery) []*FileEntry {
	var matched []*FileEntry
	for _, f := range x.files {
		if q.matches(f) {
			matched = append(matched, f)
			if q.FirstOnly {
				break
			}
		}
	}
	return matched
}

// FindFile returns the first file matching the query or a NotFoundError.
func (x *Index) FindFile(q FileQuery) (*FileEntry, error) {
	q.FirstOnly = true
	if matched := x.FindFiles(q); len(matched) > 0 {
		return matched[0], nil
	}
	return nil, &NotFoundError{Kind: "file", Query: q.describe()}
}

func (q FileQuery) describe() string {
	var parts []string
	if q.Name != "" {
		parts = append(parts, "name="+q.Name)
	}
	if q.SubPath != "" {
		parts = append(parts, "sub_path="+q.SubPath)
	}
	if q.Extension != "" {
		parts = append(parts, "extension="+q.Extension)
	}
	return strings.Join(parts, " ")
}

func (q DirQuery) describe() string {
	var parts []string
	if q.Name != "" {
		parts = append(parts, "name="+q.Name)
	}
	if q.SubPath != "" {
		parts = append(parts, "sub_path="+q.SubPath)
	}
	return strings.Join(parts, " ")
}

// FindDirectories returns every directory matching the query.
func (x *Index) FindDirectories(q DirQuery) []*DirectoryEntry {
	var matched []*DirectoryEntry
	for _, d := range x.dirs {
		if q.matches(d) {
			matched = append(matched, d)
			if q.FirstOnly {
				break
			}
		}
	}
	return matched
}

// FindDirectory returns the first matching directory or a NotFoundError.
func (x *Index) FindDirectory(q DirQuery) (*DirectoryEntry, error) {
	q.FirstOnly = true
	if matched := x.FindDirectories(q); len(matched) > 0 {
		return matched[0], nil
	}
	return nil, &NotFoundError{Kind: "directory", Query: q.describe()}
}

// FindText scans the content of every indexed file and returns those
// containing sub. This is a deliberately naive linear scan over all bytes;
// files that fail to read are skipped with a diagnostic.
func (x *Index) FindText(sub string) []*FileEntry {
	var matched []*FileEntry
	for _, f := range x.files {
		content, err := f.Read()
		if err != nil {
			log.Printf("warning: could not read %s during text search: %v", f.Path, err)
			continue
		}
		if strings.Contains(content, sub) {
			matched = append(matched, f)
		}
	}
	return matched
}

// CompareTo returns the symmetric difference of the two indexes' file path
// sets: every path present in exactly one of them, sorted.
func (x *Index) CompareTo(other *Index) []string {
	mine := make(map[string]struct{}, len(x.files))
	for _, f := range x.files {
		mine[f.Path] = struct{}{}
	}
	var diff []string
	for _, f := range other.files {
		if _, ok := mine[f.Path]; ok {
			delete(mine, f.Path)
		} else {
			diff = append(diff, f.Path)
		}
	}
	for path := range mine {
		diff = append(diff, path)
	}
	sort.Strings(diff)
	return diff
}

// CreateFile creates root/dirSubPath/stem[.extension], creating parent
// directories as needed and truncating any pre-existing file. A non-empty
// content is written before the entry's metadata is read.
func (x *Index) CreateFile(dirSubPath, stem, extension, content string) (*FileEntry, error) {
	targetDir := filepath.Join(x.root, dirSubPath)
	if err := os.MkdirAll(targetDir, 0o755); err != nil {
		return nil, ioErr("mkdir", targetDir, err)
	}

	basename := stem
	if extension != "" {
		basename = stem + "." + strings.TrimPrefix(extension, ".")
	}
	path := filepath.Join(targetDir, basename)

	file, err := os.Create(path)
	if err != nil {
		return nil, ioErr("create", path, err)
	}
	if err := file.Close(); err != nil {
		return nil, ioErr("close", path, err)
	}
	if content != "" {
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			return nil, ioErr("write", path, err)
		}
	}

	entry, err := NewFileEntry(path)
	if err != nil {
		return nil, err
	}
	x.files = append(x.files, entry)
	x.sortFiles()
	if entry.Extension != "" {
		x.addExtension(entry.Extension)
	}
	return entry, nil
}

// CreateDirectory creates root/subPath and any missing ancestors. Creation
// is idempotent; an entry is only appended when the path is not already
// indexed.
func (x *Index) CreateDirectory(subPath string) (*DirectoryEntry, error) {
	path := filepath.Join(x.root, subPath)
	if err := os.MkdirAll(path, 0o755); err != nil {
		return nil, ioErr("mkdir", path, err)
	}
	for _, d := range x.dirs {
		if d.Path == path {
			return d, nil
		}
	}
	entry := NewDirectoryEntry(path)
	x.dirs = append(x.dirs, entry)
	x.sortDirs()
	return entry, nil
}

// RenameFile resolves a single file by the query constraints and renames
// it within its parent directory. newFullName is the complete filename
// including any extension.
func (x *Index) RenameFile(newFullName string, q FileQuery) error {
	f, err := x.FindFile(q)
	if err != nil {
		return err
	}
	if err := f.Rename(newFullName); err != nil {
		return err
	}
	x.sortFiles()
	x.rebuildExtensions()
	return nil
}

// DeleteFiles removes the selected files from disk and then from the
// index. The targets come from the explicit list when given, otherwise
// from FindFiles with all-matches semantics. An empty selection is a
// no-op.
func (x *Index) DeleteFiles(q FileQuery, explicit []*FileEntry) error {
	targets := explicit
	if len(targets) == 0 {
		q.FirstOnly = false
		targets = x.FindFiles(q)
	}
	if len(targets) == 0 {
		return nil
	}

	doomed := make(map[string]struct{}, len(targets))
	for _, f := range targets {
		doomed[f.Path] = struct{}{}
	}
	for path := range doomed {
		if err := os.Remove(path); err != nil {
			return ioErr("remove", path, err)
		}
	}

	kept := x.files[:0]
	for _, f := range x.files {
		if _, gone := doomed[f.Path]; !gone {
			kept = append(kept, f)
		}
	}
	x.files = kept
	x.rebuildExtensions()
	return nil
}

// DeleteDirectories removes the selected directories recursively from
// disk, then drops their entries along with every file and directory
// entry nested beneath them.
func (x *Index) DeleteDirectories(q DirQuery, explicit []*DirectoryEntry) error {
	targets := explicit
	if len(targets) == 0 {
		q.FirstOnly = false
		targets = x.FindDirectories(q)
	}
	if len(targets) == 0 {
		return nil
	}

	doomed := make(map[string]struct{}, len(targets))
	for _, d := range targets {
		doomed[d.Path] = struct{}{}
	}
	for path := range doomed {
		if err := os.RemoveAll(path); err != nil {
			return ioErr("remove", path, err)
		}
	}

	buried := func(path string) bool {
		if _, gone := doomed[path]; gone {
			return true
		}
		for root := range doomed {
			if underPath(root, path) {
				return true
			}
		}
		return false
	}

	keptDirs := x.dirs[:0]
	for _, d := range x.dirs {
		if !buried(d.Path) {
			keptDirs = append(keptDirs, d)
		}
	}
	x.dirs = keptDirs

	keptFiles := x.files[:0]
	for _, f := range x.files {
		if !buried(f.Path) {
			keptFiles = append(keptFiles, f)
		}
	}
	x.files = keptFiles
	x.rebuildExtensions()
	return nil
}

// MoveFiles relocates the selected files into a destination directory
// resolved by dest, which must match exactly one indexed directory. Each
// file keeps its filename; its entry is rewritten in place after the
// on-disk rename succeeds.
func (x *Index) MoveFiles(q FileQuery, dest DirQuery, explicit []*FileEntry) error {
	sources := explicit
	if len(sources) == 0 {
		q.FirstOnly = false
		sources = x.FindFiles(q)
	}
	if len(sources) == 0 {
		return nil
	}

	destDir, err := x.uniqueDirectory(dest, "move files")
	if err != nil {
		return err
	}

	for _, src := range sources {
		oldPath := src.Path
		newPath := filepath.Join(destDir.Path, filepath.Base(oldPath))
		if err := os.Rename(oldPath, newPath); err != nil {
			return ioErr("move", oldPath, err)
		}
		for _, f := range x.files {
			if f.Path == oldPath {
				f.setPath(newPath)
				break
			}
		}
	}
	x.sortFiles()
	return nil
}

// MoveFile resolves exactly one source file and delegates to MoveFiles
// with an explicit one-element list, so the constraints are not reapplied
// downstream.
func (x *Index) MoveFile(q FileQuery, dest DirQuery) error {
	f, err := x.FindFile(q)
	if err != nil {
		return err
	}
	return x.MoveFiles(FileQuery{}, dest, []*FileEntry{f})
}

// MoveDirectories relocates every directory matching q under a destination
// parent resolved by dest (exactly one match required). After each on-disk
// rename, the paths of the moved directory and of every entry nested
// beneath its old path are rewritten with segment-boundary-aware prefix
// replacement, so siblings that merely share a string prefix are left
// alone.
func (x *Index) MoveDirectories(q DirQuery, dest DirQuery) error {
	q.FirstOnly = false
	sources := x.FindDirectories(q)
	if len(sources) == 0 {
		return nil
	}

	destParent, err := x.uniqueDirectory(dest, "move directories")
	if err != nil {
		return err
	}

	for _, src := range sources {
		oldPath := src.Path
		newPath := filepath.Join(destParent.Path, filepath.Base(oldPath))
		if err := os.Rename(oldPath, newPath); err != nil {
			return ioErr("move", oldPath, err)
		}

		for _, d := range x.dirs {
			switch {
			case d.Path == oldPath:
				d.Path = newPath
				d.Name = filepath.Base(newPath)
			case underPath(oldPath, d.Path):
				d.Path = newPath + d.Path[len(oldPath):]
			}
		}
		for _, f := range x.files {
			if underPath(oldPath, f.Path) {
				f.setPath(newPath + f.Path[len(oldPath):])
			}
		}
	}
	x.sortDirs()
	x.sortFiles()
	return nil
}

// uniqueDirectory resolves dest with all-matches semantics and fails
// unless exactly one directory matches.
func (x *Index) uniqueDirectory(dest DirQuery, op string) (*DirectoryEntry, error) {
	dest.FirstOnly = false
	matched := x.FindDirectories(dest)
	switch len(matched) {
	case 1:
		return matched[0], nil
	case 0:
		return nil, &ValidationError{Op: op, Detail: "destination directory not found"}
	default:
		return nil, &ValidationError{Op: op, Detail: "destination directory not unique"}
	}
}

// underPath reports whether child is strictly nested beneath parent,
// comparing on path-segment boundaries rather than raw prefixes.
func underPath(parent, child string) bool {
	return child != parent && strings.HasPrefix(child, parent+string(filepath.Separator))
}

func (x *Index) sortFiles() {
	sort.Slice(x.files, func(i, j int) bool { return x.files[i].Path < x.files[j].Path })
}

func (x *Index) sortDirs() {
	sort.Slice(x.dirs, func(i, j int) bool { return x.dirs[i].Path < x.dirs[j].Path })
}

func (x *Index) addExtension(ext string) {
	for _, e := range x.extensions {
		if e == ext {
			return
		}
	}
	x.extensions = append(x.extensions, ext)
	sort.Strings(x.extensions)
}
