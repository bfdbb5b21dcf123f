package commands

import (
	"context"
	"testing"

	"github.com/chmouel/lazyscm/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSmartCommitNoChanges(t *testing.T) {
	f := newFixture(t, Options{})

	ok, err := f.cmds.SmartCommit(context.Background(), f.model, nil)

	require.NoError(t, err)
	assert.False(t, ok)
	assert.False(t, f.engine.Called("commit"))
	require.Len(t, f.host.Messages, 1)
	assert.Equal(t, "info", f.host.Messages[0].Severity)
	assert.Equal(t, NoChangesMessage, f.host.Messages[0].Text)
	assert.Empty(t, f.host.Prompts)
}

func TestSmartCommitIgnoredOnlyIsNoChanges(t *testing.T) {
	f := newFixture(t, Options{}, ignored("x.log"))
	require.False(t, f.model.WorkingTreeGroup().Empty())

	ok, err := f.cmds.SmartCommit(context.Background(), f.model, nil)

	require.NoError(t, err)
	assert.False(t, ok)
	assert.False(t, f.engine.Called("commit"))
	require.Len(t, f.host.Messages, 1)
	assert.Equal(t, "info", f.host.Messages[0].Severity)
	assert.Equal(t, NoChangesMessage, f.host.Messages[0].Text)
	assert.Empty(t, f.host.Prompts)
}

func TestSmartCommitStagedOnlyIsNotMisreported(t *testing.T) {
	f := newFixture(t, Options{}, staged("a.txt"))
	f.model.SetInput("add a")

	ok, err := f.cmds.SmartCommit(context.Background(), f.model, &models.CommitOptions{All: true})

	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, f.engine.Called("commit"))
}

func TestSmartCommitStagedScopeWithEmptyIndex(t *testing.T) {
	f := newFixture(t, Options{}, modified("a.txt"))

	ok, err := f.cmds.SmartCommit(context.Background(), f.model, &models.CommitOptions{All: false})

	require.NoError(t, err)
	assert.False(t, ok)
	assert.False(t, f.engine.Called("commit"))
}

func TestSmartCommitScope(t *testing.T) {
	tests := []struct {
		name    string
		files   []models.FileStatus
		wantAll bool
	}{
		{name: "nothing staged commits everything", files: []models.FileStatus{modified("a.txt")}, wantAll: true},
		{name: "staged commits index only", files: []models.FileStatus{staged("a.txt"), modified("b.txt")}, wantAll: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, Options{}, tt.files...)
			f.model.SetInput("msg")

			ok, err := f.cmds.SmartCommit(context.Background(), f.model, nil)
			require.NoError(t, err)
			require.True(t, ok)
			require.Len(t, f.engine.Calls, 1)
			assert.Equal(t, tt.wantAll, f.engine.Calls[0].All)
		})
	}
}

func TestSmartCommitBufferIsRepopulatedFromTemplate(t *testing.T) {
	f := newFixture(t, Options{}, staged("a.txt"))
	f.engine.Template = "Merge branch 'topic'"
	f.model.SetInput("fix: a")

	ok, err := f.cmds.SmartCommit(context.Background(), f.model, nil)

	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "fix: a", f.engine.Calls[0].Message)
	assert.Equal(t, "Merge branch 'topic'", f.model.Input())
	assert.Empty(t, f.host.Prompts)
}

func TestSmartCommitPromptDoesNotTouchBuffer(t *testing.T) {
	f := newFixture(t, Options{}, staged("a.txt"))
	f.engine.Template = "template text"
	f.host.Input("typed in prompt")

	ok, err := f.cmds.SmartCommit(context.Background(), f.model, nil)

	require.NoError(t, err)
	assert.True(t, ok)
	require.Len(t, f.host.Prompts, 1)
	assert.True(t, f.host.Prompts[0].IgnoreFocusOut)
	assert.Equal(t, "Commit staged changes on 'main'", f.host.Prompts[0].Prompt)
	assert.Equal(t, "typed in prompt", f.engine.Calls[0].Message)
	assert.Empty(t, f.model.Input())
}

func TestSmartCommitEmptyOrCancelledMessage(t *testing.T) {
	for _, name := range []string{"cancelled", "empty"} {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t, Options{}, staged("a.txt"))
			if name == "empty" {
				f.host.Input("   ")
			}

			ok, err := f.cmds.SmartCommit(context.Background(), f.model, nil)

			require.NoError(t, err)
			assert.False(t, ok)
			assert.False(t, f.engine.Called("commit"))
			assert.Empty(t, f.host.Messages)
		})
	}
}

func TestCommitBlockedByConflictShowsMessage(t *testing.T) {
	f := newFixture(t, Options{}, staged("a.txt"), models.FileStatus{Path: "c.txt", X: 'U', Y: 'U'})
	f.model.SetInput("msg")

	f.invoke("commit")

	require.Len(t, f.host.Messages, 1)
	assert.Equal(t, "There are merge conflicts. Resolve them before committing.", f.host.Messages[0].Text)
	assert.False(t, f.engine.Called("commit"))
	assert.Equal(t, "msg", f.model.Input())
}

func TestCommitActions(t *testing.T) {
	f := newFixture(t, Options{}, staged("a.txt"), modified("b.txt"))

	f.invoke("commitAll", "ignored")
	require.Len(t, f.host.Prompts, 1)
	assert.Equal(t, "Commit all changes on 'main'", f.host.Prompts[0].Prompt)
	assert.False(t, f.engine.Called("commit"))

	f.invoke("commitWithInput", "from caller")
	require.Len(t, f.engine.Calls, 1)
	assert.Equal(t, "from caller", f.engine.Calls[0].Message)
	assert.False(t, f.engine.Calls[0].All)
	assert.Empty(t, f.model.Input())
}
