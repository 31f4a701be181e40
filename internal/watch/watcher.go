// Package watch triggers rescans when files under a root change, with
// debouncing so edit bursts collapse into one rescan.
package watch

import (
	"context"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
)

var ignoredDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
	"vendor":       true,
	"__pycache__":  true,
	"target":       true,
	"dist":         true,
}

// Watcher observes a directory tree and invokes a callback after changes
// settle.
type Watcher struct {
	root     string
	watcher  *fsnotify.Watcher
	debounce time.Duration
	onChange func()
	ignore   []string
	stopCh   chan struct{}
	doneCh   chan struct{}
	started  atomic.Bool
	stopOnce sync.Once
}

// New creates a watcher over root. onChange runs on the watcher goroutine
// after the debounce window closes. ignore lists base names whose events
// are dropped (plus their suffixed variants like SQLite journal files), so
// files the callback itself writes do not re-trigger it.
func New(root string, onChange func(), ignore ...string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		root:     root,
		watcher:  fsw,
		debounce: 500 * time.Millisecond,
		onChange: onChange,
		ignore:   ignore,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}

	if err := w.addRecursive(root); err != nil {
		fsw.Close()
		return nil, err
	}
	return w, nil
}

// Start begins watching until the context is cancelled or Stop is called.
func (w *Watcher) Start(ctx context.Context) {
	w.started.Store(true)
	go w.run(ctx)
}

// Stop shuts the watcher down and waits for the event loop to exit. It is
// safe to call even when Start never ran.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.stopCh)
		if w.started.Load() {
			<-w.doneCh
		}
		w.watcher.Close()
	})
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	var debounceTimer *time.Timer
	fire := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			stopTimer(debounceTimer)
			return
		case <-w.stopCh:
			stopTimer(debounceTimer)
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !w.relevant(event) {
				continue
			}

			// New directories need to be watched too.
			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.addRecursive(event.Name); err != nil {
						log.Printf("watch: failed to add %s: %v", event.Name, err)
					}
				}
			}

			stopTimer(debounceTimer)
			debounceTimer = time.AfterFunc(w.debounce, func() {
				select {
				case fire <- struct{}{}:
				default:
				}
			})

		case <-fire:
			w.onChange()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("watch: %v", err)
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	base := filepath.Base(event.Name)
	if strings.HasPrefix(base, ".") {
		return false
	}
	// Our own output should not retrigger a rescan.
	if base == "README.md" || base == "README.md.backup" {
		return false
	}
	for _, name := range w.ignore {
		if base == name || strings.HasPrefix(base, name+"-") {
			return false
		}
	}
	return true
}

func (w *Watcher) addRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		name := d.Name()
		if path != root && (strings.HasPrefix(name, ".") || ignoredDirs[name]) {
			return filepath.SkipDir
		}
		return w.watcher.Add(path)
	})
}

func stopTimer(t *time.Timer) {
	if t == nil {
		return
	}
	if !t.Stop() {
		select {
		case <-t.C:
		default:
		}
	}
}
