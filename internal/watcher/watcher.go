// Package watcher monitors the indexed subtree and notifies callbacks so
// the index can be refreshed when the filesystem changes underneath it.
package watcher

import (
	"log"
	"os"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// EventType represents the type of file system event.
type EventType int

// File system event types.
const (
	EventCreate EventType = iota
	EventWrite
	EventRemove
	EventRename
)

// Event represents a file system change event.
type Event struct {
	Type EventType
	Path string
}

// Callback is a function called when file changes occur.
type Callback func(Event)

// Watcher monitors filesystem changes beneath the indexed root. Events
// under entries the inclusion filter rejects are dropped, mirroring what
// the index itself would ignore.
type Watcher struct {
	watcher   *fsnotify.Watcher
	include   func(path string, isDir bool) bool
	callbacks []Callback
	mu        sync.RWMutex
	done      chan struct{}
}

// New creates a watcher. include decides which paths are worth reporting;
// nil means everything.
func New(include func(path string, isDir bool) bool) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if include == nil {
		include = func(string, bool) bool { return true }
	}
	return &Watcher{
		watcher: w,
		include: include,
		done:    make(chan struct{}),
	}, nil
}

// OnChange registers a callback for file change events.
func (w *Watcher) OnChange(cb Callback) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.callbacks = append(w.callbacks, cb)
}

// Start begins watching the root and every given directory. fsnotify does
// not recurse, so the caller passes the directories the index knows about;
// directories created later are added as their create events arrive.
func (w *Watcher) Start(root string, dirs []string) error {
	if err := w.watcher.Add(root); err != nil {
		return err
	}
	for _, dir := range dirs {
		if err := w.watcher.Add(dir); err != nil {
			log.Printf("warning: cannot watch %s: %v", dir, err)
		}
	}
	go w.eventLoop()
	return nil
}

// Stop stops the watcher.
func (w *Watcher) Stop() error {
	close(w.done)
	return w.watcher.Close()
}

func (w *Watcher) eventLoop() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("watcher error: %v", err)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	// Only Create and Write can be statted and filtered; a removed or
	// renamed entry is already gone, and a vanished directory's name would
	// wrongly fail the file rules, so those events are always reported.
	var eventType EventType
	switch {
	case event.Op&fsnotify.Create == fsnotify.Create:
		eventType = EventCreate
		dir := isDir(event.Name)
		if !w.include(event.Name, dir) {
			return
		}
		// Watch any newly created directory so its children are seen too.
		if dir {
			_ = w.watcher.Add(event.Name)
		}
	case event.Op&fsnotify.Write == fsnotify.Write:
		eventType = EventWrite
		if !w.include(event.Name, isDir(event.Name)) {
			return
		}
	case event.Op&fsnotify.Remove == fsnotify.Remove:
		eventType = EventRemove
	case event.Op&fsnotify.Rename == fsnotify.Rename:
		eventType = EventRename
	default:
		return
	}

	e := Event{Type: eventType, Path: event.Name}

	w.mu.RLock()
	callbacks := make([]Callback, len(w.callbacks))
	copy(callbacks, w.callbacks)
	w.mu.RUnlock()

	for _, cb := range callbacks {
		cb(e)
	}
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}
