package handler

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/init-helpful/dirhub/index"
)

func newTestService(t *testing.T, files map[string]string) *Service {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	idx, err := index.New(root, index.FilterOptions{})
	if err != nil {
		t.Fatalf("index.New failed: %v", err)
	}
	return NewService(idx)
}

func serviceRoot(t *testing.T, svc *Service) string {
	t.Helper()
	var root string
	_ = svc.With(func(x *index.Index) error {
		root = x.Root()
		return nil
	})
	return root
}

func TestResolveAllowsDottedNames(t *testing.T) {
	svc := newTestService(t, map[string]string{
		"a..b/notes..md": "x",
	})
	h := NewFileHandler(svc)

	got, err := h.resolve("/a..b/notes..md")
	if err != nil {
		t.Fatalf("resolve rejected a legitimate dotted name: %v", err)
	}
	want := filepath.Join(serviceRoot(t, svc), "a..b", "notes..md")
	if got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
	if _, err := os.Stat(got); err != nil {
		t.Errorf("resolved path does not exist: %v", err)
	}
}

func TestResolveRejectsTraversal(t *testing.T) {
	svc := newTestService(t, map[string]string{"a.txt": "x"})
	h := NewFileHandler(svc)

	for _, bad := range []string{
		"",
		"/",
		"/..",
		"/../outside.txt",
		"/sub/../../etc/passwd",
	} {
		if _, err := h.resolve(bad); err == nil {
			t.Errorf("expected %q to be rejected", bad)
		}
	}
}
