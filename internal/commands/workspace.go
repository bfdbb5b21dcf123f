package commands

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/chmouel/lazyscm/internal/dispatch"
	log "github.com/chmouel/lazyscm/internal/log"
	"github.com/chmouel/lazyscm/internal/repository"
	"github.com/chmouel/lazyscm/internal/ui"
)

func (c *Commands) clone(ctx context.Context, _ *repository.Model, args ...any) error {
	url := ""
	if len(args) > 0 {
		url, _ = args[0].(string)
	}
	if url == "" {
		var ok bool
		url, ok = c.host.InputBox(ctx, ui.InputOptions{
			Title:          "Clone",
			Prompt:         cloneURLPrompt,
			Placeholder:    cloneURLPlaceholder,
			IgnoreFocusOut: true,
		})
		url = strings.TrimSpace(url)
		if !ok || url == "" {
			return dispatch.ErrCancelled
		}
	}

	parent, ok := c.host.InputBox(ctx, ui.InputOptions{
		Title:          "Clone",
		Prompt:         cloneParentPrompt,
		Value:          c.defaultCloneDir(),
		IgnoreFocusOut: true,
	})
	parent = expandHome(strings.TrimSpace(parent))
	if !ok || parent == "" {
		return dispatch.ErrCancelled
	}

	var cloned string
	err := c.host.WithProgress(ctx, cloneProgressTitle, func(ctx context.Context) error {
		path, err := c.cloner.Clone(ctx, url, parent)
		cloned = path
		return err
	})
	if err != nil {
		return err
	}
	log.Printf("commands: cloned %s into %s", url, cloned)

	if choice, ok := c.host.ShowInformation(ctx, cloneOpenPrompt, openRepositoryItem); ok && choice == openRepositoryItem {
		return c.workspace.OpenRepository(ctx, cloned)
	}
	return nil
}

func (c *Commands) defaultCloneDir() string {
	if c.opts.CloneDir != "" {
		return c.opts.CloneDir
	}
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}
	return cwd
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

func (c *Commands) showOutput(_ context.Context, _ *repository.Model, _ ...any) error {
	c.host.Output().Show()
	return nil
}

func (c *Commands) close(_ context.Context, _ *repository.Model, _ ...any) error {
	c.workspace.CloseRepository()
	return nil
}
