package index

import (
	"path/filepath"
	"strings"
)

// RenderTree derives a nested textual view of the index. Each level lists
// child directories first, then child files, both in path order; files are
// shown as name.extension or the bare name when the extension is empty.
// Parent/child relationships are computed from paths, never stored, and
// rendering leaves the index untouched.
func (x *Index) RenderTree() string {
	var b strings.Builder
	x.renderSubtree(&b, x.root, 0)
	return b.String()
}

func (x *Index) renderSubtree(b *strings.Builder, dirPath string, depth int) {
	pad := strings.Repeat("  ", depth)
	b.WriteString(pad)
	b.WriteString(filepath.Base(dirPath))
	b.WriteString("/\n")

	// dirs and files are kept in path order, so children come out sorted.
	for _, d := range x.dirs {
		if filepath.Dir(d.Path) == dirPath {
			x.renderSubtree(b, d.Path, depth+1)
		}
	}
	childPad := strings.Repeat("  ", depth+1)
	for _, f := range x.files {
		if filepath.Dir(f.Path) == dirPath {
			b.WriteString(childPad)
			b.WriteString(f.Filename())
			b.WriteString("\n")
		}
	}
}
