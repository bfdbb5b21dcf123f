package commands

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCloneOpensRepository(t *testing.T) {
	f := newFixture(t, Options{CloneDir: "/src"})
	f.host.Input("https://example.com/project.git").Input("/src").Choose(openRepositoryItem)

	f.invoke("clone")

	assert.Equal(t, "https://example.com/project.git", f.cloner.url)
	assert.Equal(t, "/src", f.cloner.parent)
	require.Len(t, f.host.Prompts, 2)
	assert.Equal(t, "/src", f.host.Prompts[1].Value)
	assert.Equal(t, []string{cloneProgressTitle}, f.host.Progress)
	assert.Equal(t, []string{"/src/project"}, f.workspace.opened)
}

func TestCloneWithURLArgumentNotOpened(t *testing.T) {
	f := newFixture(t, Options{CloneDir: "/src"})
	f.host.Input("/src").Dismiss()

	f.invoke("clone", "https://example.com/project.git")

	assert.Len(t, f.host.Prompts, 1)
	assert.Equal(t, "https://example.com/project.git", f.cloner.url)
	assert.Empty(t, f.workspace.opened)
}

func TestCloneCancelled(t *testing.T) {
	f := newFixture(t, Options{})

	f.invoke("clone")

	assert.Empty(t, f.cloner.url)
	assert.Empty(t, f.host.Messages)
}

func TestCloneFailure(t *testing.T) {
	f := newFixture(t, Options{})
	f.cloner.err = errors.New("fatal: repository 'x' not found")
	f.host.Input("x").Input("/tmp")

	f.invoke("clone")

	require.Len(t, f.host.Messages, 1)
	assert.Equal(t, "Operation failed: repository 'x' not found", f.host.Messages[0].Text)
	assert.Empty(t, f.workspace.opened)
}

func TestCloneWorksWithoutModel(t *testing.T) {
	f := newFixture(t, Options{})
	f.d.Unbind()
	f.host.Input("u").Input("/tmp")

	assert.True(t, f.invoke("clone"))
	assert.Equal(t, "u", f.cloner.url)
}

func TestExpandHome(t *testing.T) {
	t.Setenv("HOME", "/home/me")
	assert.Equal(t, filepath.Join("/home/me", "src"), expandHome("~/src"))
	assert.Equal(t, "/home/me", expandHome("~"))
	assert.Equal(t, "/abs", expandHome("/abs"))
	assert.Equal(t, "~other", expandHome("~other"))
}

func TestCloseUnbinds(t *testing.T) {
	f := newFixture(t, Options{})

	assert.True(t, f.invoke("close"))
	assert.Equal(t, 1, f.workspace.closed)
	assert.Nil(t, f.d.Model())
	assert.False(t, f.invoke("close"))
}
