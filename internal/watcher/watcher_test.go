package watcher

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/fsnotify/fsnotify"
)

func TestHandleEventRemoveBypassesFilter(t *testing.T) {
	onlyMarkdown := func(path string, isDir bool) bool {
		return isDir || strings.HasSuffix(path, ".md")
	}
	w, err := New(onlyMarkdown)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer func() { _ = w.Stop() }()

	var got []Event
	w.OnChange(func(e Event) { got = append(got, e) })

	// A deleted directory cannot be statted, so its bare name would fail
	// the file rules; the removal must still reach the callbacks.
	gone := filepath.Join(t.TempDir(), "archive")
	w.handleEvent(fsnotify.Event{Name: gone, Op: fsnotify.Remove})
	if len(got) != 1 || got[0].Type != EventRemove || got[0].Path != gone {
		t.Fatalf("expected one remove event for %s, got %v", gone, got)
	}

	w.handleEvent(fsnotify.Event{Name: gone, Op: fsnotify.Rename})
	if len(got) != 2 || got[1].Type != EventRename {
		t.Fatalf("expected rename event to be reported, got %v", got)
	}

	// Write events can be statted, so the filter still applies to them.
	w.handleEvent(fsnotify.Event{Name: filepath.Join(t.TempDir(), "notes.txt"), Op: fsnotify.Write})
	if len(got) != 2 {
		t.Error("expected filtered write event to be dropped")
	}
}

func TestHandleEventWritePassesFilter(t *testing.T) {
	w, err := New(nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer func() { _ = w.Stop() }()

	var got []Event
	w.OnChange(func(e Event) { got = append(got, e) })

	w.handleEvent(fsnotify.Event{Name: "/data/notes.md", Op: fsnotify.Write})
	if len(got) != 1 || got[0].Type != EventWrite {
		t.Fatalf("expected one write event, got %v", got)
	}

	// Chmod-only events carry nothing the index cares about.
	w.handleEvent(fsnotify.Event{Name: "/data/notes.md", Op: fsnotify.Chmod})
	if len(got) != 1 {
		t.Error("expected chmod event to be dropped")
	}
}
