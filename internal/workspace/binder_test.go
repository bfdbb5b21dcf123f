package workspace

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/chmouel/lazyscm/internal/dispatch"
	"github.com/chmouel/lazyscm/internal/models"
	"github.com/chmouel/lazyscm/internal/repository"
	"github.com/chmouel/lazyscm/internal/repository/repotest"
	"github.com/chmouel/lazyscm/internal/ui"
	"github.com/chmouel/lazyscm/internal/ui/uitest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type contentEngine struct {
	*repotest.Engine
}

func (contentEngine) Read(context.Context, models.Reference) ([]byte, error) { return nil, nil }

func (contentEngine) Diff(context.Context, models.Reference, models.Reference, string) (string, error) {
	return "", nil
}

type recordingSink struct {
	mu      sync.Mutex
	content []ui.Content
}

func (r *recordingSink) SetContent(c ui.Content) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.content = append(r.content, c)
}

func (r *recordingSink) last() ui.Content {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.content) == 0 {
		return nil
	}
	return r.content[len(r.content)-1]
}

type openRecorder struct {
	mu      sync.Mutex
	engines map[string]*repotest.Engine
}

func (o *openRecorder) open(_ context.Context, path string) (repository.Engine, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if !hasGitDir(path) {
		return nil, errors.New("not a git repository")
	}
	if o.engines == nil {
		o.engines = map[string]*repotest.Engine{}
	}
	e, ok := o.engines[path]
	if !ok {
		e = repotest.New(path)
		o.engines[path] = e
	}
	return contentEngine{e}, nil
}

func newSlot() *dispatch.Dispatcher {
	return dispatch.New(dispatch.NewRegistry(), uitest.New(), nil)
}

func initRepo(t *testing.T, dir string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".git", "refs", "heads"), 0o750))
}

func TestStartBindsExistingRepository(t *testing.T) {
	root := t.TempDir()
	initRepo(t, root)
	slot, sink, opener := newSlot(), &recordingSink{}, &openRecorder{}

	b := NewBinder(root, opener.open, slot, sink, Options{})
	require.NoError(t, b.Start(context.Background()))

	require.NotNil(t, slot.Model())
	assert.Equal(t, root, slot.Model().Root())
	assert.NotNil(t, sink.last())
}

func TestStartWithoutRepositoryStaysUnbound(t *testing.T) {
	slot := newSlot()
	b := NewBinder(t.TempDir(), (&openRecorder{}).open, slot, nil, Options{})

	require.NoError(t, b.Start(context.Background()))
	assert.Nil(t, slot.Model())
}

func TestOpenAndCloseRepository(t *testing.T) {
	empty := t.TempDir()
	cloned := t.TempDir()
	initRepo(t, cloned)
	slot, sink := newSlot(), &recordingSink{}

	b := NewBinder(empty, (&openRecorder{}).open, slot, sink, Options{})
	require.NoError(t, b.Start(context.Background()))
	require.NoError(t, b.OpenRepository(context.Background(), cloned))

	require.NotNil(t, slot.Model())
	assert.Equal(t, cloned, b.Root())

	b.CloseRepository()
	assert.Nil(t, slot.Model())
	assert.Nil(t, sink.last())

	b.Sync()
	assert.Nil(t, slot.Model(), "closed workspace must not rebind on its own")
}

func TestOpenRepositoryFailure(t *testing.T) {
	slot := newSlot()
	b := NewBinder(t.TempDir(), (&openRecorder{}).open, slot, nil, Options{})

	assert.Error(t, b.OpenRepository(context.Background(), t.TempDir()))
	assert.Nil(t, slot.Model())
}

func TestSyncFollowsGitDir(t *testing.T) {
	root := t.TempDir()
	opener := &openRecorder{}
	slot := newSlot()
	b := NewBinder(root, opener.open, slot, nil, Options{})
	require.NoError(t, b.Start(context.Background()))
	require.Nil(t, slot.Model())

	initRepo(t, root)
	b.Sync()
	require.NotNil(t, slot.Model())

	opener.engines[root].SetFiles(models.FileStatus{Path: "new.txt", X: '?', Y: '?'})
	b.Sync()
	assert.Equal(t, []string{"new.txt"}, slot.Model().WorkingTreeGroup().Paths())

	require.NoError(t, os.RemoveAll(filepath.Join(root, ".git")))
	b.Sync()
	assert.Nil(t, slot.Model())
}

func TestWatchRefreshesModel(t *testing.T) {
	root := t.TempDir()
	initRepo(t, root)
	opener := &openRecorder{}
	slot := newSlot()
	b := NewBinder(root, opener.open, slot, nil, Options{Watch: true, Debounce: 50 * time.Millisecond})
	require.NoError(t, b.Start(context.Background()))
	t.Cleanup(b.Stop)

	changed := make(chan struct{}, 4)
	slot.Model().OnDidChange(func() {
		select {
		case changed <- struct{}{}:
		default:
		}
	})

	opener.mu.Lock()
	engine := opener.engines[root]
	opener.mu.Unlock()
	engine.SetFiles(models.FileStatus{Path: "a.txt", X: '?', Y: '?'})
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.txt"), []byte("x"), 0o600))

	select {
	case <-changed:
	case <-time.After(3 * time.Second):
		t.Fatal("model was not refreshed after a workspace change")
	}
	assert.Equal(t, []string{"a.txt"}, slot.Model().WorkingTreeGroup().Paths())
}
