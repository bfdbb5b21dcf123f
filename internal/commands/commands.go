package commands

import (
	"context"

	"github.com/chmouel/lazyscm/internal/dispatch"
	"github.com/chmouel/lazyscm/internal/ui"
)

// Cloner clones remote repositories.
type Cloner interface {
	Clone(ctx context.Context, url, parentDir string) (string, error)
}

// Workspace opens and closes the repository bound to the dispatcher.
type Workspace interface {
	OpenRepository(ctx context.Context, path string) error
	CloseRepository()
}

// Options tune handler behaviour.
type Options struct {
	DefaultRemote string
	CloneDir      string
	ConfirmSync   bool
	ConfirmClean  bool
	ShowIcons     bool
}

// Commands implements every handler of the catalog.
type Commands struct {
	host      ui.Host
	cloner    Cloner
	workspace Workspace
	opts      Options
}

// New returns the handler set.
func New(host ui.Host, cloner Cloner, workspace Workspace, opts Options) *Commands {
	return &Commands{host: host, cloner: cloner, workspace: workspace, opts: opts}
}

// Registry builds the full action catalog.
func (c *Commands) Registry() *dispatch.Registry {
	return dispatch.MustBuild(
		func(r *dispatch.Registry) error {
			return RegisterResourceActions(r, ResourceHandlers{
				Refresh:      c.refresh,
				OpenResource: c.openResource,
				OpenChange:   c.openResource,
				OpenFile:     c.openFile,
				Stage:        c.stage,
				StageAll:     c.stageAll,
				Unstage:      c.unstage,
				UnstageAll:   c.unstageAll,
				Clean:        c.clean,
				CleanAll:     c.cleanAll,
			})
		},
		func(r *dispatch.Registry) error {
			return RegisterCommitActions(r, CommitHandlers{
				Commit:          c.commit,
				CommitStaged:    c.commitStaged,
				CommitAll:       c.commitAll,
				CommitWithInput: c.commitWithInput,
			})
		},
		func(r *dispatch.Registry) error {
			return RegisterBranchActions(r, BranchHandlers{
				Checkout: c.checkout,
				Branch:   c.branch,
			})
		},
		func(r *dispatch.Registry) error {
			return RegisterRemoteActions(r, RemoteHandlers{
				Pull:   c.pull,
				Push:   c.push,
				PushTo: c.pushTo,
				Sync:   c.sync,
			})
		},
		func(r *dispatch.Registry) error {
			return RegisterWorkspaceActions(r, WorkspaceHandlers{
				Clone:      c.clone,
				ShowOutput: c.showOutput,
				Close:      c.close,
			})
		},
	)
}
