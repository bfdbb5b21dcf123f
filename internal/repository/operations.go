package repository

import (
	"context"
	"fmt"

	"github.com/chmouel/lazyscm/internal/models"
)

// run serialises fn against other mutations and refreshes afterwards, even
// when fn fails, so the model never lags the working copy.
func (m *Model) run(ctx context.Context, fn func() error) error {
	m.op.Lock()
	defer m.op.Unlock()

	err := fn()
	if refreshErr := m.Refresh(ctx); refreshErr != nil && err == nil {
		return refreshErr
	}
	return err
}

func paths(resources []*models.Resource) []string {
	out := make([]string, 0, len(resources))
	for _, r := range resources {
		out = append(out, r.Path)
	}
	return out
}

// Stage adds resources to the index.
func (m *Model) Stage(ctx context.Context, resources ...*models.Resource) error {
	return m.run(ctx, func() error { return m.engine.Stage(ctx, paths(resources)...) })
}

// Unstage removes resources from the index.
func (m *Model) Unstage(ctx context.Context, resources ...*models.Resource) error {
	return m.run(ctx, func() error { return m.engine.Unstage(ctx, paths(resources)...) })
}

// Clean discards working tree changes of resources.
func (m *Model) Clean(ctx context.Context, resources ...*models.Resource) error {
	return m.run(ctx, func() error { return m.engine.Clean(ctx, resources...) })
}

// ConflictError is returned when committing with unresolved merge conflicts.
type ConflictError struct {
	Paths []string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%d unresolved merge conflicts", len(e.Paths))
}

// ErrorCode returns the machine code shared with the git engine.
func (e *ConflictError) ErrorCode() string { return "Conflict" }

// Diagnostic returns the conflicting paths.
func (e *ConflictError) Diagnostic() string { return fmt.Sprint(e.Paths) }

// Commit commits the intent. Unresolved conflicts block the commit.
func (m *Model) Commit(ctx context.Context, intent models.CommitIntent) error {
	if merge := m.MergeGroup(); !merge.Empty() {
		return &ConflictError{Paths: merge.Paths()}
	}
	return m.run(ctx, func() error {
		return m.engine.Commit(ctx, intent.Message, models.CommitOptions{All: intent.ScopeAll})
	})
}

// Checkout switches to ref.
func (m *Model) Checkout(ctx context.Context, ref string) error {
	return m.run(ctx, func() error { return m.engine.Checkout(ctx, ref) })
}

// Branch creates and checks out name.
func (m *Model) Branch(ctx context.Context, name string) error {
	return m.run(ctx, func() error { return m.engine.Branch(ctx, name) })
}

// Pull integrates upstream changes.
func (m *Model) Pull(ctx context.Context) error {
	return m.run(ctx, func() error { return m.engine.Pull(ctx) })
}

// Push publishes the current branch, to remote when non-empty.
func (m *Model) Push(ctx context.Context, remote string) error {
	return m.run(ctx, func() error { return m.engine.Push(ctx, remote) })
}

// Sync pulls then pushes to remote, or to the upstream when remote is
// empty. The push is skipped when the pull fails.
func (m *Model) Sync(ctx context.Context, remote string) error {
	return m.run(ctx, func() error {
		if err := m.engine.Pull(ctx); err != nil {
			return err
		}
		return m.engine.Push(ctx, remote)
	})
}

// CommitTemplate returns the engine-prepared message for the next commit.
func (m *Model) CommitTemplate(ctx context.Context) (string, error) {
	return m.engine.CommitTemplate(ctx)
}
