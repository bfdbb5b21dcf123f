package commands

import (
	"context"
	"fmt"

	"github.com/chmouel/lazyscm/internal/dispatch"
	"github.com/chmouel/lazyscm/internal/repository"
	"github.com/chmouel/lazyscm/internal/ui"
)

const (
	syncItem            = "OK"
	noRemotesMessage    = "Your repository has no remotes configured to push to."
	syncProgressTitle   = "Synchronizing changes..."
	pullProgressTitle   = "Pulling..."
	pushProgressTitle   = "Pushing..."
	cloneProgressTitle  = "Cloning git repository..."
	openRepositoryItem  = "Open Repository"
	cloneOpenPrompt     = "Would you like to open the cloned repository?"
	cloneURLPrompt      = "Repository URL"
	cloneParentPrompt   = "Parent directory where the repository will be cloned"
	cloneURLPlaceholder = "https://github.com/owner/repo.git"
)

func (c *Commands) pull(ctx context.Context, m *repository.Model, _ ...any) error {
	return c.host.WithProgress(ctx, pullProgressTitle, m.Pull)
}

func (c *Commands) push(ctx context.Context, m *repository.Model, _ ...any) error {
	return c.host.WithProgress(ctx, pushProgressTitle, func(ctx context.Context) error {
		return m.Push(ctx, c.opts.DefaultRemote)
	})
}

func (c *Commands) pushTo(ctx context.Context, m *repository.Model, _ ...any) error {
	remotes := m.Remotes()
	if len(remotes) == 0 {
		c.host.ShowWarning(ctx, noRemotesMessage, ui.MessageOptions{})
		return nil
	}

	items := make([]ui.PickItem, 0, len(remotes))
	for _, remote := range remotes {
		items = append(items, ui.PickItem{Label: remote})
	}
	idx, ok := c.host.QuickPick(ctx, items, ui.PickOptions{Title: "Push to", Placeholder: "Pick a remote to publish the branch to"})
	if !ok || idx < 0 || idx >= len(remotes) {
		return dispatch.ErrCancelled
	}
	return c.host.WithProgress(ctx, pushProgressTitle, func(ctx context.Context) error {
		return m.Push(ctx, remotes[idx])
	})
}

func (c *Commands) sync(ctx context.Context, m *repository.Model, _ ...any) error {
	if c.opts.ConfirmSync {
		target := "its upstream"
		if head := m.HEAD(); head != nil && head.Name != "" {
			target = "'" + head.Name + "'"
		}
		message := fmt.Sprintf("This action will pull and push commits to and from %s.", target)
		choice, ok := c.host.ShowWarning(ctx, message, ui.MessageOptions{Modal: true}, syncItem)
		if !ok || choice != syncItem {
			return dispatch.ErrCancelled
		}
	}
	return c.host.WithProgress(ctx, syncProgressTitle, func(ctx context.Context) error {
		return m.Sync(ctx, c.opts.DefaultRemote)
	})
}
