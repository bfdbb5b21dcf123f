package workspace

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	log "github.com/chmouel/lazyscm/internal/log"
)

// WatchDebounce is the quiet period after the last event before a change is
// reported.
const WatchDebounce = 600 * time.Millisecond

// Watcher reports changes to a working copy: files directly under its root,
// the .git directory and the refs tree below it.
type Watcher struct {
	root     string
	gitDir   string
	refsDir  string
	debounce time.Duration

	mu    sync.Mutex
	fs    *fsnotify.Watcher
	paths map[string]struct{}

	done     chan struct{}
	stopOnce sync.Once
}

// NewWatcher starts watching root. Call Run to receive changes and Stop to
// release the watcher.
func NewWatcher(root string, debounce time.Duration) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = WatchDebounce
	}
	w := &Watcher{
		root:     root,
		gitDir:   filepath.Join(root, ".git"),
		refsDir:  filepath.Join(root, ".git", "refs"),
		debounce: debounce,
		fs:       fsw,
		paths:    make(map[string]struct{}),
		done:     make(chan struct{}),
	}
	w.addWatchDir(root)
	w.watchRepository()
	return w, nil
}

// Run calls onChange once per burst of events until Stop is called. It
// blocks; run it in its own goroutine.
func (w *Watcher) Run(onChange func()) {
	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if !relevant(event) {
				continue
			}
			if event.Op&fsnotify.Create != 0 {
				w.maybeWatchNewDir(event.Name)
			}
			if event.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
				w.forget(event.Name)
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			onChange()
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			log.Printf("workspace: watcher error: %v", err)
		}
	}
}

// Stop ends Run and closes the underlying watcher.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.done)
		_ = w.fs.Close()
	})
}

func relevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	return !strings.HasSuffix(event.Name, ".lock")
}

func (w *Watcher) watchRepository() {
	w.addWatchDir(w.gitDir)
	w.addWatchTree(w.refsDir)
}

func (w *Watcher) maybeWatchNewDir(path string) {
	switch {
	case path == w.gitDir:
		w.watchRepository()
	case path == w.refsDir || strings.HasPrefix(path, w.refsDir+string(filepath.Separator)):
		w.addWatchTree(path)
	}
}

func (w *Watcher) addWatchDir(path string) {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.paths[path]; ok {
		return
	}
	if err := w.fs.Add(path); err != nil {
		log.Printf("workspace: watch %s: %v", path, err)
		return
	}
	w.paths[path] = struct{}{}
}

// forget drops path and everything below it; fsnotify has already removed
// the watches of deleted directories.
func (w *Watcher) forget(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	prefix := path + string(filepath.Separator)
	for p := range w.paths {
		if p == path || strings.HasPrefix(p, prefix) {
			delete(w.paths, p)
		}
	}
}

func (w *Watcher) addWatchTree(root string) {
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil
		}
		w.addWatchDir(path)
		return nil
	})
}

// Watched reports whether path is being watched.
func (w *Watcher) Watched(path string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	_, ok := w.paths[path]
	return ok
}
