package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/chmouel/lazyscm/internal/models"
	"github.com/chmouel/lazyscm/internal/repository/repotest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openModel(t *testing.T, files ...models.FileStatus) (*Model, *repotest.Engine) {
	t.Helper()
	engine := repotest.New("/repo", files...)
	m, err := Open(context.Background(), engine)
	require.NoError(t, err)
	return m, engine
}

func TestGroupsFromSnapshot(t *testing.T) {
	m, _ := openModel(t,
		models.FileStatus{Path: "a.txt", X: ' ', Y: 'M'},
		models.FileStatus{Path: "b.txt", X: 'A', Y: ' '},
		models.FileStatus{Path: "c.txt", X: 'M', Y: 'D'},
		models.FileStatus{Path: "d.txt", X: '?', Y: '?'},
		models.FileStatus{Path: "e.txt", X: 'U', Y: 'U'},
		models.FileStatus{Path: "new.go", OrigPath: "old.go", X: 'R', Y: ' '},
		models.FileStatus{Path: "out.bin", X: '!', Y: '!'},
	)

	assert.Equal(t, []string{"e.txt"}, m.MergeGroup().Paths())
	assert.Equal(t, []string{"b.txt", "c.txt", "new.go"}, m.IndexGroup().Paths())
	assert.Equal(t, []string{"a.txt", "c.txt", "d.txt", "out.bin"}, m.WorkingTreeGroup().Paths())

	index := m.IndexGroup().Resources
	assert.Equal(t, models.StatusAdded, index[0].Status)
	assert.Equal(t, models.StatusModified, index[1].Status)
	assert.Equal(t, "old.go", index[2].OrigPath)

	working := m.WorkingTreeGroup().Resources
	assert.Equal(t, models.StatusDeleted, working[1].Status)
	assert.Equal(t, models.StatusUntracked, working[2].Status)
	assert.Equal(t, models.StatusIgnored, working[3].Status)
	assert.Equal(t, models.GroupWorkingTree, working[0].Group)
}

func TestFindPrefersWorkingTree(t *testing.T) {
	m, _ := openModel(t, models.FileStatus{Path: "dir/c.txt", X: 'M', Y: 'M'})

	r := m.Find("/repo/dir/c.txt")
	require.NotNil(t, r)
	assert.Equal(t, models.GroupWorkingTree, r.Group)
	assert.Nil(t, m.Find("missing.txt"))
}

func TestStageRefreshesAndNotifies(t *testing.T) {
	m, engine := openModel(t, models.FileStatus{Path: "a.txt", X: ' ', Y: 'M'})
	changes := 0
	m.OnDidChange(func() { changes++ })

	require.NoError(t, m.Stage(context.Background(), m.Find("a.txt")))

	assert.Equal(t, []string{"stage"}, engine.Ops())
	assert.Equal(t, []string{"a.txt"}, m.IndexGroup().Paths())
	assert.True(t, m.WorkingTreeGroup().Empty())
	assert.Equal(t, 1, changes)
}

func TestFailedOperationStillRefreshes(t *testing.T) {
	m, engine := openModel(t, models.FileStatus{Path: "a.txt", X: ' ', Y: 'M'})
	changes := 0
	m.OnDidChange(func() { changes++ })
	engine.Errors["pull"] = errors.New("boom")

	err := m.Pull(context.Background())
	require.EqualError(t, err, "boom")
	assert.Equal(t, 1, changes)
}

func TestCommitBlockedByConflicts(t *testing.T) {
	m, engine := openModel(t,
		models.FileStatus{Path: "a.txt", X: 'M', Y: ' '},
		models.FileStatus{Path: "e.txt", X: 'U', Y: 'U'},
	)

	err := m.Commit(context.Background(), models.CommitIntent{Message: "msg"})
	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "Conflict", conflict.ErrorCode())
	assert.False(t, engine.Called("commit"))
}

func TestSyncSkipsPushWhenPullFails(t *testing.T) {
	m, engine := openModel(t)
	engine.Errors["pull"] = errors.New("diverged")

	require.Error(t, m.Sync(context.Background(), "origin"))
	assert.Equal(t, []string{"pull"}, engine.Ops())

	delete(engine.Errors, "pull")
	require.NoError(t, m.Sync(context.Background(), "origin"))
	assert.Equal(t, []string{"pull", "pull", "push"}, engine.Ops())
	assert.Equal(t, []string{"origin"}, engine.Calls[2].Args)
}

func TestInputBuffer(t *testing.T) {
	m, _ := openModel(t)
	assert.Empty(t, m.Input())
	m.SetInput("fix: things")
	assert.Equal(t, "fix: things", m.Input())
}

func TestOpenFailsOnStatusError(t *testing.T) {
	engine := repotest.New("/repo")
	engine.Errors["status"] = errors.New("not a repository")
	_, err := Open(context.Background(), engine)
	assert.Error(t, err)
}

func TestFindInGroups(t *testing.T) {
	m, _ := openModel(t, models.FileStatus{Path: "c.txt", X: 'M', Y: 'M'})

	r := m.Find("c.txt", models.GroupIndex)
	require.NotNil(t, r)
	assert.Equal(t, models.GroupIndex, r.Group)
	assert.Nil(t, m.Find("c.txt", models.GroupMerge))
}
