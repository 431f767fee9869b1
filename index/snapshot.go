package index

import (
	"fmt"
	"io"
	"log"
	"path/filepath"
	"sort"
	"strings"
)

// SnapshotOptions controls the aggregated snapshot document.
type SnapshotOptions struct {
	// IncludeTree prepends a connector-style directory tree under
	// TreeHeader.
	IncludeTree bool   `json:"include_tree" form:"tree"`
	TreeHeader  string `json:"tree_header" form:"tree_header"`
	// SeparatorLen is the width of the separator rules between sections.
	SeparatorLen int `json:"separator_len" form:"separator_len"`
}

// SnapshotSummary reports what a snapshot actually captured.
type SnapshotSummary struct {
	FilesWritten int `json:"files_written"`
	FilesSkipped int `json:"files_skipped"`
}

const (
	defaultTreeHeader   = "PROJECT TREE"
	defaultSeparatorLen = 80
)

// WriteSnapshot writes a single text document aggregating the indexed
// subtree: an optional tree rendering followed by every indexed file's
// content under a FILE header. Files that fail to read get an inline error
// note and count as skipped; only a failure to write the output itself is
// fatal.
func (x *Index) WriteSnapshot(w io.Writer, opts SnapshotOptions) (SnapshotSummary, error) {
	if opts.TreeHeader == "" {
		opts.TreeHeader = defaultTreeHeader
	}
	if opts.SeparatorLen <= 0 {
		opts.SeparatorLen = defaultSeparatorLen
	}
	rule := strings.Repeat("=", opts.SeparatorLen)

	var summary SnapshotSummary
	out := &failWriter{w: w}

	if opts.IncludeTree {
		out.printf("%s\n%s\n\n", opts.TreeHeader, rule)
		for _, line := range x.treeLines() {
			out.printf("%s\n", line)
		}
		out.printf("\n%s\n\n", rule)
	}

	files := append([]*FileEntry(nil), x.files...)
	sort.Slice(files, func(i, j int) bool {
		return strings.ToLower(x.relPath(files[i].Path)) < strings.ToLower(x.relPath(files[j].Path))
	})

	for _, f := range files {
		rel := x.relPath(f.Path)
		out.printf("%s\nFILE: %s\n%s\n\n", rule, rel, rule)
		content, err := f.Read()
		if err != nil {
			log.Printf("warning: could not read %s during snapshot: %v", f.Path, err)
			out.printf("Error: could not read file %q: %v\n\n", rel, err)
			summary.FilesSkipped++
			continue
		}
		out.printf("%s\n\n", content)
		summary.FilesWritten++
	}

	if out.err != nil {
		return summary, ioErr("snapshot", "output", out.err)
	}
	return summary, nil
}

func (x *Index) relPath(path string) string {
	rel, err := filepath.Rel(x.root, path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}

// treeLines renders the connector-style tree used at the top of snapshots,
// with directories before files at each level, both case-insensitively by
// name.
func (x *Index) treeLines() []string {
	type child struct {
		path  string
		name  string
		isDir bool
	}
	children := make(map[string][]child)
	for _, d := range x.dirs {
		parent := filepath.Dir(d.Path)
		children[parent] = append(children[parent], child{path: d.Path, name: d.Name, isDir: true})
	}
	for _, f := range x.files {
		parent := filepath.Dir(f.Path)
		children[parent] = append(children[parent], child{path: f.Path, name: filepath.Base(f.Path)})
	}
	for parent := range children {
		list := children[parent]
		sort.Slice(list, func(i, j int) bool {
			if list[i].isDir != list[j].isDir {
				return list[i].isDir
			}
			return strings.ToLower(list[i].name) < strings.ToLower(list[j].name)
		})
	}

	lines := []string{filepath.Base(x.root)}
	var build func(parent string, prefix string)
	build = func(parent string, prefix string) {
		list := children[parent]
		for i, c := range list {
			connector, descent := "├── ", "│   "
			if i == len(list)-1 {
				connector, descent = "└── ", "    "
			}
			lines = append(lines, prefix+connector+c.name)
			if c.isDir {
				build(c.path, prefix+descent)
			}
		}
	}
	build(x.root, "")
	return lines
}

// failWriter latches the first write error so formatting code can stay
// linear.
type failWriter struct {
	w   io.Writer
	err error
}

func (fw *failWriter) printf(format string, args ...interface{}) {
	if fw.err != nil {
		return
	}
	_, fw.err = fmt.Fprintf(fw.w, format, args...)
}
