// Package index maintains an in-memory mirror of a directory subtree and
// keeps it consistent with the filesystem across queries and mutations.
package index

import (
	"os"
	"path/filepath"
	"strings"
	"time"
)

// FileEntry describes one regular file known to the index. Path is the
// absolute canonical path and serves as the entry's identity; Name is the
// filename without its extension, Extension carries no leading dot and may
// be empty. Size is a snapshot taken at the last refresh or write.
type FileEntry struct {
	Path      string `json:"path"`
	Name      string `json:"name"`
	Extension string `json:"extension"`
	Size      int64  `json:"size"`
}

// DirectoryEntry describes one directory known to the index.
type DirectoryEntry struct {
	Path string `json:"path"`
	Name string `json:"name"`
}

// FileMetadata is a point-in-time probe of a file's on-disk state.
type FileMetadata struct {
	ModTime  time.Time `json:"modTime"`
	ReadOnly bool      `json:"readOnly"`
	Size     int64     `json:"size"`
}

// splitFilename splits a filename into stem and extension. Dotfiles like
// ".bashrc" keep the whole name as the stem with an empty extension.
func splitFilename(base string) (stem, ext string) {
	i := strings.LastIndex(base, ".")
	if i <= 0 {
		return base, ""
	}
	return base[:i], base[i+1:]
}

// NewFileEntry builds a FileEntry for an existing file, reading its size
// from the filesystem.
func NewFileEntry(path string) (*FileEntry, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, ioErr("stat", path, err)
	}
	stem, ext := splitFilename(filepath.Base(path))
	return &FileEntry{
		Path:      path,
		Name:      stem,
		Extension: ext,
		Size:      info.Size(),
	}, nil
}

// NewDirectoryEntry builds a DirectoryEntry from a directory path.
func NewDirectoryEntry(path string) *DirectoryEntry {
	return &DirectoryEntry{
		Path: path,
		Name: filepath.Base(path),
	}
}

// Filename returns the full filename, joining name and extension.
func (f *FileEntry) Filename() string {
	if f.Extension == "" {
		return f.Name
	}
	return f.Name + "." + f.Extension
}

// Rename renames the file within its parent directory. newFullName is the
// complete filename including any extension. The filesystem rename happens
// first; the entry's fields are only rewritten on success.
func (f *FileEntry) Rename(newFullName string) error {
	parent := filepath.Dir(f.Path)
	if parent == "" || parent == f.Path {
		return &ValidationError{Op: "rename", Detail: "path " + f.Path + " has no parent directory"}
	}
	newPath := filepath.Join(parent, newFullName)
	if err := os.Rename(f.Path, newPath); err != nil {
		return ioErr("rename", f.Path, err)
	}
	f.setPath(newPath)
	return nil
}

// setPath rewrites the entry's path and re-derives name and extension.
// Size is assumed unchanged by a rename or move.
func (f *FileEntry) setPath(path string) {
	f.Path = path
	f.Name, f.Extension = splitFilename(filepath.Base(path))
}

// Read returns the file's full content.
func (f *FileEntry) Read() (string, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return "", ioErr("read", f.Path, err)
	}
	return string(data), nil
}

// Write writes text to the file, truncating when overwrite is true and
// appending otherwise. The file is created if missing, and the cached size
// is refreshed after a successful write.
func (f *FileEntry) Write(text string, overwrite bool) error {
	flags := os.O_CREATE | os.O_WRONLY
	if overwrite {
		flags |= os.O_TRUNC
	} else {
		flags |= os.O_APPEND
	}
	file, err := os.OpenFile(f.Path, flags, 0o644)
	if err != nil {
		return ioErr("open", f.Path, err)
	}
	if _, err := file.WriteString(text); err != nil {
		_ = file.Close()
		return ioErr("write", f.Path, err)
	}
	if err := file.Close(); err != nil {
		return ioErr("close", f.Path, err)
	}
	info, err := os.Stat(f.Path)
	if err != nil {
		return ioErr("stat", f.Path, err)
	}
	f.Size = info.Size()
	return nil
}

// Metadata probes the file's current on-disk state.
func (f *FileEntry) Metadata() (FileMetadata, error) {
	info, err := os.Stat(f.Path)
	if err != nil {
		return FileMetadata{}, ioErr("stat", f.Path, err)
	}
	return FileMetadata{
		ModTime:  info.ModTime(),
		ReadOnly: info.Mode().Perm()&0o200 == 0,
		Size:     info.Size(),
	}, nil
}

// IsReadOnly reports whether the file lacks owner write permission.
func (f *FileEntry) IsReadOnly() (bool, error) {
	meta, err := f.Metadata()
	if err != nil {
		return false, err
	}
	return meta.ReadOnly, nil
}

// Contains reports whether a path relative to this directory exists on disk.
func (d *DirectoryEntry) Contains(rel string) bool {
	_, err := os.Stat(filepath.Join(d.Path, rel))
	return err == nil
}
