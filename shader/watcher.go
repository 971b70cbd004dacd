package shader

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watcher reports writes to a set of shader files. It watches the parent
// directories so editors that replace files on save are still seen.
type Watcher struct {
	w       *fsnotify.Watcher
	files   map[string]bool
	changed chan string
	done    chan struct{}
}

// NewWatcher starts watching paths. Empty paths are ignored.
func NewWatcher(paths ...string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create shader watcher: %w", err)
	}
	w := &Watcher{
		w:       fw,
		files:   make(map[string]bool),
		changed: make(chan string, 8),
		done:    make(chan struct{}),
	}
	dirs := make(map[string]bool)
	for _, p := range paths {
		if p == "" {
			continue
		}
		abs, err := filepath.Abs(p)
		if err != nil {
			fw.Close()
			return nil, err
		}
		w.files[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := fw.Add(dir); err != nil {
			fw.Close()
			return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}
	go w.loop()
	return w, nil
}

// Changed delivers the absolute path of each changed file. Repeated
// changes to a file may be coalesced while the channel is full.
func (w *Watcher) Changed() <-chan string {
	return w.changed
}

func (w *Watcher) loop() {
	defer close(w.done)
	defer close(w.changed)
	for {
		select {
		case event, ok := <-w.w.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			name, err := filepath.Abs(event.Name)
			if err != nil || !w.files[name] {
				continue
			}
			select {
			case w.changed <- name:
			default:
			}
		case err, ok := <-w.w.Errors:
			if !ok {
				return
			}
			log.Printf("shader watcher error: %v", err)
		}
	}
}

// Close stops the watcher and closes the Changed channel.
func (w *Watcher) Close() error {
	err := w.w.Close()
	<-w.done
	return err
}
