package markdown

import (
	"strings"
	"testing"
)

func TestRender(t *testing.T) {
	r := NewRenderer()
	source := []byte("# Hello World\n\nThis is a *test*.")

	result, err := r.Render(source)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if !strings.Contains(result.HTML, "<h1") || !strings.Contains(result.HTML, "Hello World</h1>") {
		t.Error("expected H1 tag containing 'Hello World' in HTML")
	}
	if !strings.Contains(result.HTML, "<em>test</em>") {
		t.Error("expected italicized test in HTML")
	}
	if result.Title != "Hello World" {
		t.Errorf("expected title Hello World, got %s", result.Title)
	}
}

func TestRenderTaskList(t *testing.T) {
	r := NewRenderer()
	source := []byte("- [x] done\n- [ ] open")

	result, err := r.Render(source)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !strings.Contains(result.HTML, "checkbox") {
		t.Error("expected task list checkboxes in HTML")
	}
}

func TestCollectHeadings(t *testing.T) {
	r := NewRenderer()
	source := []byte("# Head 1\n## Head 2\n### Head 3")

	headings := r.collectHeadings(source)
	if len(headings) != 3 {
		t.Fatalf("expected 3 headings, got %d", len(headings))
	}

	if headings[0].Level != 1 || headings[0].Text != "Head 1" {
		t.Errorf("heading 0 mismatch: %+v", headings[0])
	}
	if headings[1].Level != 2 || headings[1].Text != "Head 2" {
		t.Errorf("heading 1 mismatch: %+v", headings[1])
	}
	if headings[2].Level != 3 || headings[2].Text != "Head 3" {
		t.Errorf("heading 2 mismatch: %+v", headings[2])
	}
}

func TestRenderNoHeading(t *testing.T) {
	r := NewRenderer()

	result, err := r.Render([]byte("just a paragraph"))
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if result.Title != "" {
		t.Errorf("expected empty title, got %s", result.Title)
	}
	if len(result.Headings) != 0 {
		t.Errorf("expected no headings, got %v", result.Headings)
	}
}
