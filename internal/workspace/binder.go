// Package workspace keeps the dispatcher bound to the repository of the
// current workspace as it appears, changes and disappears.
package workspace

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	log "github.com/chmouel/lazyscm/internal/log"
	"github.com/chmouel/lazyscm/internal/repository"
	"github.com/chmouel/lazyscm/internal/ui"
)

// OpenFunc opens the engine of the repository containing path.
type OpenFunc func(ctx context.Context, path string) (repository.Engine, error)

// Slot receives the bound model.
type Slot interface {
	Bind(m *repository.Model)
	Unbind()
	Model() *repository.Model
}

// ContentSink is told which repository to read file content from.
type ContentSink interface {
	SetContent(c ui.Content)
}

// Options configure a Binder.
type Options struct {
	Watch    bool
	Debounce time.Duration
}

// Binder binds the repository at root into a slot. With Watch it follows
// changes on disk: refreshing the model, unbinding when .git disappears and
// rebinding when it comes back.
type Binder struct {
	open OpenFunc
	slot Slot
	sink ContentSink
	opts Options

	mu      sync.Mutex
	root    string
	closed  bool
	watcher *Watcher
	ctx     context.Context
}

// NewBinder returns a binder for root. sink may be nil.
func NewBinder(root string, open OpenFunc, slot Slot, sink ContentSink, opts Options) *Binder {
	return &Binder{open: open, slot: slot, sink: sink, opts: opts, root: root, ctx: context.Background()}
}

// Root returns the workspace root.
func (b *Binder) Root() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.root
}

// Start binds the repository at the root when there is one and starts
// watching. A root that is not a repository is not an error.
func (b *Binder) Start(ctx context.Context) error {
	b.mu.Lock()
	b.ctx = ctx
	root := b.root
	b.mu.Unlock()

	if top, err := b.bind(ctx, root); err != nil {
		log.Printf("workspace: no repository at %s: %v", root, err)
	} else {
		b.mu.Lock()
		b.root = top
		b.mu.Unlock()
		root = top
	}
	return b.watch(root)
}

// OpenRepository binds the repository at path and makes it the workspace.
func (b *Binder) OpenRepository(ctx context.Context, path string) error {
	top, err := b.bind(ctx, path)
	if err != nil {
		return err
	}

	b.mu.Lock()
	b.closed = false
	changed := b.root != top
	b.root = top
	b.mu.Unlock()

	if changed {
		return b.watch(top)
	}
	return nil
}

// CloseRepository unbinds the model and stops following the workspace until
// OpenRepository is called.
func (b *Binder) CloseRepository() {
	b.mu.Lock()
	b.closed = true
	b.mu.Unlock()
	b.unbind()
}

// Stop stops watching.
func (b *Binder) Stop() {
	b.mu.Lock()
	w := b.watcher
	b.watcher = nil
	b.mu.Unlock()
	if w != nil {
		w.Stop()
	}
}

// bind opens the repository containing path and returns its root.
func (b *Binder) bind(ctx context.Context, path string) (string, error) {
	engine, err := b.open(ctx, path)
	if err != nil {
		return "", err
	}
	model, err := repository.Open(ctx, engine)
	if err != nil {
		return "", err
	}
	b.slot.Bind(model)
	if b.sink != nil {
		if c, ok := engine.(ui.Content); ok {
			b.sink.SetContent(c)
		}
	}
	return model.Root(), nil
}

func (b *Binder) unbind() {
	b.slot.Unbind()
	if b.sink != nil {
		b.sink.SetContent(nil)
	}
}

func (b *Binder) watch(root string) error {
	if !b.opts.Watch {
		return nil
	}
	b.Stop()
	w, err := NewWatcher(root, b.opts.Debounce)
	if err != nil {
		return err
	}
	b.mu.Lock()
	b.watcher = w
	b.mu.Unlock()
	go w.Run(b.Sync)
	return nil
}

// Sync reconciles the slot with the workspace on disk.
func (b *Binder) Sync() {
	b.mu.Lock()
	root, closed, ctx := b.root, b.closed, b.ctx
	b.mu.Unlock()

	present := hasGitDir(root)
	model := b.slot.Model()
	switch {
	case closed:
	case present && model != nil:
		if err := model.Refresh(ctx); err != nil {
			log.Printf("workspace: refresh %s: %v", root, err)
		}
	case present:
		if _, err := b.bind(ctx, root); err != nil {
			log.Printf("workspace: bind %s: %v", root, err)
		}
	case model != nil:
		log.Printf("workspace: %s is no longer a repository", root)
		b.unbind()
	}
}

func hasGitDir(root string) bool {
	_, err := os.Stat(filepath.Join(root, ".git"))
	return !errors.Is(err, os.ErrNotExist) && err == nil
}
