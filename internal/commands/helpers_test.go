package commands

import (
	"context"
	"errors"
	"testing"

	"github.com/chmouel/lazyscm/internal/dispatch"
	"github.com/chmouel/lazyscm/internal/models"
	"github.com/chmouel/lazyscm/internal/repository"
	"github.com/chmouel/lazyscm/internal/repository/repotest"
	"github.com/chmouel/lazyscm/internal/telemetry"
	"github.com/chmouel/lazyscm/internal/ui/uitest"
	"github.com/stretchr/testify/require"
)

type fakeCloner struct {
	url, parent string
	path        string
	err         error
}

func (f *fakeCloner) Clone(_ context.Context, url, parent string) (string, error) {
	f.url, f.parent = url, parent
	return f.path, f.err
}

type fakeWorkspace struct {
	opened []string
	closed int
	d      *dispatch.Dispatcher
}

func (f *fakeWorkspace) OpenRepository(_ context.Context, path string) error {
	if path == "" {
		return errors.New("empty path")
	}
	f.opened = append(f.opened, path)
	return nil
}

func (f *fakeWorkspace) CloseRepository() {
	f.closed++
	if f.d != nil {
		f.d.Unbind()
	}
}

type fixture struct {
	host      *uitest.Host
	engine    *repotest.Engine
	model     *repository.Model
	cmds      *Commands
	cloner    *fakeCloner
	workspace *fakeWorkspace
	d         *dispatch.Dispatcher
	reporter  *telemetry.Prometheus
}

func newFixture(t *testing.T, opts Options, files ...models.FileStatus) *fixture {
	t.Helper()
	engine := repotest.New("/repo", files...)
	model, err := repository.Open(context.Background(), engine)
	require.NoError(t, err)

	f := &fixture{
		host:      uitest.New(),
		engine:    engine,
		model:     model,
		cloner:    &fakeCloner{path: "/src/project"},
		workspace: &fakeWorkspace{},
		reporter:  telemetry.NewPrometheus(),
	}
	f.cmds = New(f.host, f.cloner, f.workspace, opts)
	f.d = dispatch.New(f.cmds.Registry(), f.host, f.reporter)
	f.d.Bind(model)
	f.workspace.d = f.d
	return f
}

func (f *fixture) invoke(id string, args ...any) bool {
	return f.d.Invoke(context.Background(), id, args...)
}

func modified(path string) models.FileStatus  { return models.FileStatus{Path: path, X: ' ', Y: 'M'} }
func staged(path string) models.FileStatus    { return models.FileStatus{Path: path, X: 'M', Y: ' '} }
func untracked(path string) models.FileStatus { return models.FileStatus{Path: path, X: '?', Y: '?'} }
func ignored(path string) models.FileStatus   { return models.FileStatus{Path: path, X: '!', Y: '!'} }
