// Package commands is the catalog of actions lazyscm exposes and the
// handlers behind them.
package commands

import "github.com/chmouel/lazyscm/internal/dispatch"

const (
	sectionResources = "Resources"
	sectionCommit    = "Commit"
	sectionBranches  = "Branches"
	sectionRemotes   = "Remotes"
	sectionWorkspace = "Workspace"
)

// Section icons for palette display.
const (
	IconResource  = "" // Nerd Font: file-diff
	IconCommit    = "" // Nerd Font: git commit
	IconBranch    = "" // Nerd Font: git branch
	IconRemote    = "" // Nerd Font: cloud
	IconWorkspace = "" // Nerd Font: folder
	IconRecent    = "" // Nerd Font: clock
)

// ResourceHandlers holds handlers for per-file actions.
type ResourceHandlers struct {
	Refresh      dispatch.Handler
	OpenResource dispatch.Handler
	OpenChange   dispatch.Handler
	OpenFile     dispatch.Handler
	Stage        dispatch.Handler
	StageAll     dispatch.Handler
	Unstage      dispatch.Handler
	UnstageAll   dispatch.Handler
	Clean        dispatch.Handler
	CleanAll     dispatch.Handler
}

// RegisterResourceActions registers per-file actions.
func RegisterResourceActions(r *dispatch.Registry, h ResourceHandlers) error {
	return r.Register(
		dispatch.Action{ID: "refresh", Label: "Refresh", Description: "Re-read the repository status", Section: sectionResources, Icon: IconResource, RequiresModel: true, Handler: h.Refresh},
		dispatch.Action{ID: "openResource", Label: "Open resource", Description: "Open the change for a file", Section: sectionResources, Icon: IconResource, RequiresModel: true, Handler: h.OpenResource},
		dispatch.Action{ID: "openChange", Label: "Open changes", Description: "Compare a file against its last commit", Section: sectionResources, Icon: IconResource, RequiresModel: true, Handler: h.OpenChange},
		dispatch.Action{ID: "openFile", Label: "Open file", Description: "Show the file as it is on disk", Section: sectionResources, Icon: IconResource, RequiresModel: true, Handler: h.OpenFile},
		dispatch.Action{ID: "stage", Label: "Stage changes", Description: "git add the selected files", Section: sectionResources, Icon: IconResource, RequiresModel: true, Handler: h.Stage},
		dispatch.Action{ID: "stageAll", Label: "Stage all changes", Description: "git add every changed file", Section: sectionResources, Icon: IconResource, RequiresModel: true, Handler: h.StageAll},
		dispatch.Action{ID: "unstage", Label: "Unstage changes", Description: "Remove the selected files from the index", Section: sectionResources, Icon: IconResource, RequiresModel: true, Handler: h.Unstage},
		dispatch.Action{ID: "unstageAll", Label: "Unstage all changes", Description: "Empty the index", Section: sectionResources, Icon: IconResource, RequiresModel: true, Handler: h.UnstageAll},
		dispatch.Action{ID: "clean", Label: "Discard changes", Description: "Revert the selected files", Section: sectionResources, Icon: IconResource, RequiresModel: true, Handler: h.Clean},
		dispatch.Action{ID: "cleanAll", Label: "Discard all changes", Description: "Revert every unstaged change", Section: sectionResources, Icon: IconResource, RequiresModel: true, Handler: h.CleanAll},
	)
}

// CommitHandlers holds handlers for commit actions.
type CommitHandlers struct {
	Commit          dispatch.Handler
	CommitStaged    dispatch.Handler
	CommitAll       dispatch.Handler
	CommitWithInput dispatch.Handler
}

// RegisterCommitActions registers commit actions.
func RegisterCommitActions(r *dispatch.Registry, h CommitHandlers) error {
	return r.Register(
		dispatch.Action{ID: "commit", Label: "Commit", Description: "Commit staged changes, or everything when nothing is staged", Section: sectionCommit, Icon: IconCommit, RequiresModel: true, Handler: h.Commit},
		dispatch.Action{ID: "commitStaged", Label: "Commit staged", Description: "Commit only staged changes", Section: sectionCommit, Icon: IconCommit, RequiresModel: true, Handler: h.CommitStaged},
		dispatch.Action{ID: "commitAll", Label: "Commit all", Description: "Commit every change, untracked files included", Section: sectionCommit, Icon: IconCommit, RequiresModel: true, Handler: h.CommitAll},
		dispatch.Action{ID: "commitWithInput", Label: "Commit with message", Description: "Commit using the pending message", Section: sectionCommit, Icon: IconCommit, RequiresModel: true, Handler: h.CommitWithInput},
	)
}

// BranchHandlers holds handlers for branch actions.
type BranchHandlers struct {
	Checkout dispatch.Handler
	Branch   dispatch.Handler
}

// RegisterBranchActions registers branch actions.
func RegisterBranchActions(r *dispatch.Registry, h BranchHandlers) error {
	return r.Register(
		dispatch.Action{ID: "checkout", Label: "Checkout to...", Description: "Switch to a branch, tag or remote branch", Section: sectionBranches, Icon: IconBranch, RequiresModel: true, Handler: h.Checkout},
		dispatch.Action{ID: "branch", Label: "Create branch...", Description: "Create and switch to a new branch", Section: sectionBranches, Icon: IconBranch, RequiresModel: true, Handler: h.Branch},
	)
}

// RemoteHandlers holds handlers for remote actions.
type RemoteHandlers struct {
	Pull   dispatch.Handler
	Push   dispatch.Handler
	PushTo dispatch.Handler
	Sync   dispatch.Handler
}

// RegisterRemoteActions registers remote actions.
func RegisterRemoteActions(r *dispatch.Registry, h RemoteHandlers) error {
	return r.Register(
		dispatch.Action{ID: "pull", Label: "Pull", Description: "git pull", Section: sectionRemotes, Icon: IconRemote, RequiresModel: true, Handler: h.Pull},
		dispatch.Action{ID: "push", Label: "Push", Description: "git push", Section: sectionRemotes, Icon: IconRemote, RequiresModel: true, Handler: h.Push},
		dispatch.Action{ID: "pushTo", Label: "Push to...", Description: "Push the current branch to a chosen remote", Section: sectionRemotes, Icon: IconRemote, RequiresModel: true, Handler: h.PushTo},
		dispatch.Action{ID: "sync", Label: "Sync", Description: "Pull then push", Section: sectionRemotes, Icon: IconRemote, RequiresModel: true, Handler: h.Sync},
	)
}

// WorkspaceHandlers holds handlers for workspace actions.
type WorkspaceHandlers struct {
	Clone      dispatch.Handler
	ShowOutput dispatch.Handler
	Close      dispatch.Handler
}

// RegisterWorkspaceActions registers workspace actions.
func RegisterWorkspaceActions(r *dispatch.Registry, h WorkspaceHandlers) error {
	return r.Register(
		dispatch.Action{ID: "clone", Label: "Clone", Description: "Clone a repository", Section: sectionWorkspace, Icon: IconWorkspace, Handler: h.Clone},
		dispatch.Action{ID: "showOutput", Label: "Show output", Description: "Open the diagnostic log", Section: sectionWorkspace, Icon: IconWorkspace, Handler: h.ShowOutput},
		dispatch.Action{ID: "close", Label: "Close repository", Description: "Stop tracking the open repository", Section: sectionWorkspace, Icon: IconWorkspace, RequiresModel: true, Handler: h.Close},
	)
}
