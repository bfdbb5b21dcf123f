package commands

import (
	"testing"

	"github.com/chmouel/lazyscm/internal/git"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPullRunsUnderProgress(t *testing.T) {
	f := newFixture(t, Options{})

	f.invoke("pull")

	assert.Equal(t, []string{pullProgressTitle}, f.host.Progress)
	assert.Equal(t, []string{"pull"}, f.engine.Ops())
}

func TestPushUsesDefaultRemote(t *testing.T) {
	f := newFixture(t, Options{DefaultRemote: "upstream"})

	f.invoke("push")

	require.Len(t, f.engine.Calls, 1)
	assert.Equal(t, []string{"upstream"}, f.engine.Calls[0].Args)
}

func TestSyncUsesDefaultRemote(t *testing.T) {
	f := newFixture(t, Options{DefaultRemote: "upstream"})

	f.invoke("sync")

	require.Equal(t, []string{"pull", "push"}, f.engine.Ops())
	assert.Equal(t, []string{"upstream"}, f.engine.Calls[1].Args)
}

func TestPushRejected(t *testing.T) {
	f := newFixture(t, Options{})
	f.engine.Errors["push"] = &git.Error{Command: "push", Code: git.ErrorCodePushRejected, Stderr: " ! [rejected] main -> main (fetch first)"}

	f.invoke("push")

	require.Len(t, f.host.Messages, 1)
	assert.Equal(t, "Can't push refs to remote. Try running 'Pull' first to integrate your changes.", f.host.Messages[0].Text)
	assert.Contains(t, f.host.Out.Lines[0], "[rejected]")
}

func TestPushToPicksRemote(t *testing.T) {
	f := newFixture(t, Options{})
	f.engine.Snapshot.Remotes = []string{"origin", "fork"}
	require.NoError(t, f.model.Refresh(t.Context()))
	f.host.Pick(1)

	f.invoke("pushTo")

	require.Len(t, f.engine.Calls, 1)
	assert.Equal(t, []string{"fork"}, f.engine.Calls[0].Args)
}

func TestPushToWithoutRemotes(t *testing.T) {
	f := newFixture(t, Options{})

	f.invoke("pushTo")

	require.Len(t, f.host.Messages, 1)
	assert.Equal(t, noRemotesMessage, f.host.Messages[0].Text)
	assert.Empty(t, f.host.PickSets)
}

func TestSyncConfirmation(t *testing.T) {
	f := newFixture(t, Options{ConfirmSync: true})
	f.host.Dismiss()

	f.invoke("sync")
	assert.Empty(t, f.engine.Ops())

	f.host.Choose(syncItem)
	f.invoke("sync")
	assert.Equal(t, []string{"pull", "push"}, f.engine.Ops())
	assert.Equal(t, []string{syncProgressTitle}, f.host.Progress)
	assert.Equal(t, "This action will pull and push commits to and from 'main'.", f.host.Messages[1].Text)
}

func TestSyncWithoutConfirmation(t *testing.T) {
	f := newFixture(t, Options{})

	f.invoke("sync")

	assert.Empty(t, f.host.Messages)
	assert.Equal(t, []string{"pull", "push"}, f.engine.Ops())
}
