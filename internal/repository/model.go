// Package repository holds the live model of one version-controlled working
// copy: its resource groups, refs and pending commit message. Mutations go
// through the engine and are serialised; every mutation re-reads the state.
package repository

import (
	"context"
	"path/filepath"
	"sync"

	log "github.com/chmouel/lazyscm/internal/log"
	"github.com/chmouel/lazyscm/internal/models"
)

// Engine is the version-control backend a Model drives.
type Engine interface {
	Root() string
	Status(ctx context.Context) (*models.Snapshot, error)
	Stage(ctx context.Context, paths ...string) error
	Unstage(ctx context.Context, paths ...string) error
	Clean(ctx context.Context, resources ...*models.Resource) error
	Commit(ctx context.Context, message string, opts models.CommitOptions) error
	Checkout(ctx context.Context, ref string) error
	Branch(ctx context.Context, name string) error
	Pull(ctx context.Context) error
	Push(ctx context.Context, remote string) error
	CommitTemplate(ctx context.Context) (string, error)
}

type state struct {
	head    *models.Ref
	refs    []models.Ref
	remotes []string
	merge   models.ResourceGroup
	index   models.ResourceGroup
	working models.ResourceGroup
}

// Model is the bound domain model for one repository.
type Model struct {
	engine Engine

	// op serialises engine mutations.
	op sync.Mutex

	mu        sync.RWMutex
	state     state
	input     string
	listeners []func()
}

// Open builds a Model and reads the initial state.
func Open(ctx context.Context, engine Engine) (*Model, error) {
	m := &Model{engine: engine}
	if err := m.Refresh(ctx); err != nil {
		return nil, err
	}
	return m, nil
}

// Engine returns the backend driving the model.
func (m *Model) Engine() Engine {
	return m.engine
}

// Root returns the repository root directory.
func (m *Model) Root() string {
	return m.engine.Root()
}

// OnDidChange registers fn to run after every state refresh.
func (m *Model) OnDidChange(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners = append(m.listeners, fn)
}

// Refresh re-reads the repository state from the engine.
func (m *Model) Refresh(ctx context.Context) error {
	snap, err := m.engine.Status(ctx)
	if err != nil {
		return err
	}
	next := buildState(snap)

	m.mu.Lock()
	m.state = next
	listeners := append([]func(){}, m.listeners...)
	m.mu.Unlock()

	log.Printf("repository: refreshed %s (merge=%d index=%d working=%d)",
		m.Root(), len(next.merge.Resources), len(next.index.Resources), len(next.working.Resources))
	for _, fn := range listeners {
		fn()
	}
	return nil
}

func buildState(snap *models.Snapshot) state {
	st := state{
		head:    snap.HEAD,
		refs:    snap.Refs,
		remotes: snap.Remotes,
		merge:   models.ResourceGroup{Kind: models.GroupMerge},
		index:   models.ResourceGroup{Kind: models.GroupIndex},
		working: models.ResourceGroup{Kind: models.GroupWorkingTree},
	}
	for _, f := range snap.Files {
		if isUnmerged(f.X, f.Y) {
			st.merge.Resources = append(st.merge.Resources, &models.Resource{
				Path: f.Path, Status: models.StatusModified, Group: models.GroupMerge,
			})
			continue
		}
		switch f.X {
		case '?', '!':
			st.working.Resources = append(st.working.Resources, &models.Resource{
				Path: f.Path, Status: models.ParseStatus(f.X), Group: models.GroupWorkingTree,
			})
			continue
		case ' ':
		default:
			st.index.Resources = append(st.index.Resources, &models.Resource{
				Path: f.Path, OrigPath: f.OrigPath, Status: models.ParseStatus(f.X), Group: models.GroupIndex,
			})
		}
		if f.Y != ' ' {
			st.working.Resources = append(st.working.Resources, &models.Resource{
				Path: f.Path, Status: models.ParseStatus(f.Y), Group: models.GroupWorkingTree,
			})
		}
	}
	return st
}

func isUnmerged(x, y byte) bool {
	if x == 'U' || y == 'U' {
		return true
	}
	return (x == 'A' && y == 'A') || (x == 'D' && y == 'D')
}

// HEAD returns the checked-out ref, nil for a repository with nothing to show.
func (m *Model) HEAD() *models.Ref {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state.head
}

// Refs returns branches, tags and remote heads.
func (m *Model) Refs() []models.Ref {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]models.Ref(nil), m.state.refs...)
}

// Remotes returns the configured remote names.
func (m *Model) Remotes() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]string(nil), m.state.remotes...)
}

// MergeGroup returns unmerged resources.
func (m *Model) MergeGroup() models.ResourceGroup {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state.merge
}

// IndexGroup returns staged resources.
func (m *Model) IndexGroup() models.ResourceGroup {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state.index
}

// WorkingTreeGroup returns unstaged resources, untracked files included.
func (m *Model) WorkingTreeGroup() models.ResourceGroup {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state.working
}

// Find returns the resource for path, searching groups in order. With no
// groups it looks in the working tree, then the index, then the merge group.
// Absolute paths are made relative to Root.
func (m *Model) Find(path string, groups ...models.GroupKind) *models.Resource {
	if len(groups) == 0 {
		groups = []models.GroupKind{models.GroupWorkingTree, models.GroupIndex, models.GroupMerge}
	}
	rel := m.relative(path)
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, kind := range groups {
		for _, r := range m.group(kind).Resources {
			if r.Path == rel {
				return r
			}
		}
	}
	return nil
}

func (m *Model) group(kind models.GroupKind) models.ResourceGroup {
	switch kind {
	case models.GroupMerge:
		return m.state.merge
	case models.GroupIndex:
		return m.state.index
	default:
		return m.state.working
	}
}

func (m *Model) relative(path string) string {
	if filepath.IsAbs(path) {
		if rel, err := filepath.Rel(m.Root(), path); err == nil {
			return filepath.ToSlash(rel)
		}
	}
	return filepath.ToSlash(filepath.Clean(path))
}

// Input returns the pending commit message buffer.
func (m *Model) Input() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.input
}

// SetInput replaces the pending commit message buffer.
func (m *Model) SetInput(value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.input = value
}
