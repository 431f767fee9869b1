package index

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestSplitFilename(t *testing.T) {
	tests := []struct {
		base string
		stem string
		ext  string
	}{
		{"main.go", "main", "go"},
		{"archive.tar.gz", "archive.tar", "gz"},
		{"README", "README", ""},
		{".bashrc", ".bashrc", ""},
		{"trailing.", "trailing", ""},
	}
	for _, tt := range tests {
		stem, ext := splitFilename(tt.base)
		if stem != tt.stem || ext != tt.ext {
			t.Errorf("splitFilename(%q) = (%q, %q), want (%q, %q)",
				tt.base, stem, ext, tt.stem, tt.ext)
		}
	}
}

func TestNewFileEntry(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(path, []byte("hello"), 0o644); err != nil {
		t.Fatal(err)
	}

	entry, err := NewFileEntry(path)
	if err != nil {
		t.Fatalf("NewFileEntry failed: %v", err)
	}
	if entry.Name != "notes" || entry.Extension != "txt" {
		t.Errorf("got name=%q extension=%q", entry.Name, entry.Extension)
	}
	if entry.Size != 5 {
		t.Errorf("expected size 5, got %d", entry.Size)
	}
	if entry.Filename() != "notes.txt" {
		t.Errorf("expected filename notes.txt, got %s", entry.Filename())
	}
}

func TestNewFileEntryMissing(t *testing.T) {
	_, err := NewFileEntry(filepath.Join(t.TempDir(), "nope.txt"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	var ioe *IOError
	if !errors.As(err, &ioe) {
		t.Fatalf("expected IOError, got %T", err)
	}
}

func TestFileEntryRename(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "old.txt")
	if err := os.WriteFile(path, []byte("data"), 0o644); err != nil {
		t.Fatal(err)
	}
	entry, err := NewFileEntry(path)
	if err != nil {
		t.Fatal(err)
	}

	if err := entry.Rename("new.md"); err != nil {
		t.Fatalf("Rename failed: %v", err)
	}
	if entry.Path != filepath.Join(dir, "new.md") {
		t.Errorf("unexpected path %s", entry.Path)
	}
	if entry.Name != "new" || entry.Extension != "md" {
		t.Errorf("got name=%q extension=%q", entry.Name, entry.Extension)
	}
	if _, err := os.Stat(filepath.Join(dir, "new.md")); err != nil {
		t.Error("renamed file missing on disk")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("old file still on disk")
	}
}

func TestFileEntryWriteOverwriteAndAppend(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "log.txt")
	if err := os.WriteFile(path, []byte("start"), 0o644); err != nil {
		t.Fatal(err)
	}
	entry, err := NewFileEntry(path)
	if err != nil {
		t.Fatal(err)
	}

	if err := entry.Write("fresh", true); err != nil {
		t.Fatalf("overwrite failed: %v", err)
	}
	content, err := entry.Read()
	if err != nil {
		t.Fatal(err)
	}
	if content != "fresh" {
		t.Errorf("expected fresh, got %q", content)
	}
	if entry.Size != 5 {
		t.Errorf("expected size 5 after overwrite, got %d", entry.Size)
	}

	if err := entry.Write("+more", false); err != nil {
		t.Fatalf("append failed: %v", err)
	}
	content, err = entry.Read()
	if err != nil {
		t.Fatal(err)
	}
	if content != "fresh+more" {
		t.Errorf("expected fresh+more, got %q", content)
	}
	if entry.Size != 10 {
		t.Errorf("expected size 10 after append, got %d", entry.Size)
	}
}

func TestFileEntryMetadata(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "meta.txt")
	if err := os.WriteFile(path, []byte("xy"), 0o644); err != nil {
		t.Fatal(err)
	}
	entry, err := NewFileEntry(path)
	if err != nil {
		t.Fatal(err)
	}

	meta, err := entry.Metadata()
	if err != nil {
		t.Fatalf("Metadata failed: %v", err)
	}
	if meta.Size != 2 {
		t.Errorf("expected size 2, got %d", meta.Size)
	}
	if meta.ReadOnly {
		t.Error("expected writable file")
	}
	if meta.ModTime.IsZero() {
		t.Error("expected a mod time")
	}

	if err := os.Chmod(path, 0o444); err != nil {
		t.Fatal(err)
	}
	readOnly, err := entry.IsReadOnly()
	if err != nil {
		t.Fatal(err)
	}
	if !readOnly {
		t.Error("expected read-only after chmod 444")
	}
}

func TestDirectoryEntryContains(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "inside.txt"), nil, 0o644); err != nil {
		t.Fatal(err)
	}

	entry := NewDirectoryEntry(dir)
	if entry.Name != filepath.Base(dir) {
		t.Errorf("unexpected name %s", entry.Name)
	}
	if !entry.Contains("inside.txt") {
		t.Error("expected Contains to find inside.txt")
	}
	if entry.Contains("missing.txt") {
		t.Error("expected Contains to miss missing.txt")
	}
}
