// Package repotest provides an in-memory engine for tests of packages that
// drive a repository model.
package repotest

import (
	"context"
	"strings"
	"sync"

	"github.com/chmouel/lazyscm/internal/models"
)

// Call records one engine invocation.
type Call struct {
	Op      string
	Args    []string
	Message string
	All     bool
}

// Engine is a scripted repository.Engine. Files listed in Snapshot move
// between sides as the real engine would for stage, unstage and commit.
type Engine struct {
	mu sync.Mutex

	RootDir  string
	Snapshot models.Snapshot
	Template string
	Errors   map[string]error
	Calls    []Call
}

// New returns an engine rooted at root holding files.
func New(root string, files ...models.FileStatus) *Engine {
	return &Engine{
		RootDir:  root,
		Snapshot: models.Snapshot{HEAD: &models.Ref{Kind: models.RefBranch, Name: "main", Commit: "0123456789abcdef"}, Files: files},
		Errors:   map[string]error{},
	}
}

// Ops returns the recorded operation names, status reads excluded.
func (e *Engine) Ops() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	var ops []string
	for _, c := range e.Calls {
		ops = append(ops, c.Op)
	}
	return ops
}

// Called reports whether op was invoked.
func (e *Engine) Called(op string) bool {
	for _, got := range e.Ops() {
		if got == op {
			return true
		}
	}
	return false
}

// SetFiles replaces the files reported by Status.
func (e *Engine) SetFiles(files ...models.FileStatus) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.Snapshot.Files = files
}

func (e *Engine) record(c Call) error {
	e.Calls = append(e.Calls, c)
	return e.Errors[c.Op]
}

// Root implements repository.Engine.
func (e *Engine) Root() string { return e.RootDir }

// Status implements repository.Engine.
func (e *Engine) Status(_ context.Context) (*models.Snapshot, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.Errors["status"]; err != nil {
		return nil, err
	}
	snap := e.Snapshot
	snap.Files = append([]models.FileStatus(nil), e.Snapshot.Files...)
	snap.Refs = append([]models.Ref(nil), e.Snapshot.Refs...)
	snap.Remotes = append([]string(nil), e.Snapshot.Remotes...)
	return &snap, nil
}

func (e *Engine) update(paths []string, fn func(f *models.FileStatus)) {
	for i := range e.Snapshot.Files {
		for _, p := range paths {
			if e.Snapshot.Files[i].Path == p {
				fn(&e.Snapshot.Files[i])
			}
		}
	}
}

// Stage implements repository.Engine.
func (e *Engine) Stage(_ context.Context, paths ...string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.record(Call{Op: "stage", Args: paths}); err != nil {
		return err
	}
	e.update(paths, func(f *models.FileStatus) {
		switch {
		case f.X == '?':
			f.X, f.Y = 'A', ' '
		case f.Y != ' ':
			f.X, f.Y = f.Y, ' '
		}
	})
	return nil
}

// Unstage implements repository.Engine.
func (e *Engine) Unstage(_ context.Context, paths ...string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.record(Call{Op: "unstage", Args: paths}); err != nil {
		return err
	}
	e.update(paths, func(f *models.FileStatus) {
		if f.X == 'A' {
			f.X, f.Y = '?', '?'
			return
		}
		if f.X != ' ' {
			f.X, f.Y = ' ', f.X
		}
	})
	return nil
}

// Clean implements repository.Engine.
func (e *Engine) Clean(_ context.Context, resources ...*models.Resource) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	var paths []string
	for _, r := range resources {
		paths = append(paths, r.Path)
	}
	if err := e.record(Call{Op: "clean", Args: paths}); err != nil {
		return err
	}
	kept := e.Snapshot.Files[:0]
	for _, f := range e.Snapshot.Files {
		drop := false
		for _, p := range paths {
			if f.Path == p && (f.X == ' ' || f.X == '?') {
				drop = true
			}
		}
		if !drop {
			kept = append(kept, f)
		}
	}
	e.Snapshot.Files = kept
	return nil
}

// Commit implements repository.Engine.
func (e *Engine) Commit(_ context.Context, message string, opts models.CommitOptions) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.record(Call{Op: "commit", Message: message, All: opts.All}); err != nil {
		return err
	}
	kept := e.Snapshot.Files[:0]
	for _, f := range e.Snapshot.Files {
		if opts.All {
			continue
		}
		if f.X != ' ' && f.X != '?' {
			if f.Y == ' ' {
				continue
			}
			f.X = ' '
		}
		kept = append(kept, f)
	}
	e.Snapshot.Files = kept
	return nil
}

// Checkout implements repository.Engine.
func (e *Engine) Checkout(_ context.Context, ref string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.record(Call{Op: "checkout", Args: []string{ref}}); err != nil {
		return err
	}
	e.Snapshot.HEAD = &models.Ref{Kind: models.RefBranch, Name: strings.TrimPrefix(ref, "origin/")}
	return nil
}

// Branch implements repository.Engine.
func (e *Engine) Branch(_ context.Context, name string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.record(Call{Op: "branch", Args: []string{name}}); err != nil {
		return err
	}
	e.Snapshot.HEAD = &models.Ref{Kind: models.RefBranch, Name: name}
	e.Snapshot.Refs = append(e.Snapshot.Refs, models.Ref{Kind: models.RefBranch, Name: name})
	return nil
}

// Pull implements repository.Engine.
func (e *Engine) Pull(_ context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.record(Call{Op: "pull"})
}

// Push implements repository.Engine.
func (e *Engine) Push(_ context.Context, remote string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.record(Call{Op: "push", Args: []string{remote}})
}

// CommitTemplate implements repository.Engine.
func (e *Engine) CommitTemplate(_ context.Context) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.Template, e.Errors["template"]
}
