package commands

import (
	"context"
	"strings"

	log "github.com/chmouel/lazyscm/internal/log"
	"github.com/chmouel/lazyscm/internal/models"
	"github.com/chmouel/lazyscm/internal/repository"
	"github.com/chmouel/lazyscm/internal/ui"
)

// NoChangesMessage is shown when there is nothing to commit.
const NoChangesMessage = "There are no changes to commit."

// SmartCommit commits m. With nil opts the scope is every change when the
// index is empty and the index otherwise. The message comes from the
// pending input buffer, or from a prompt when the buffer is empty. It
// reports false without error when there is nothing to commit or the user
// gives no message. After committing a buffered message the buffer is
// reset to the engine's template.
func (c *Commands) SmartCommit(ctx context.Context, m *repository.Model, opts *models.CommitOptions) (bool, error) {
	if opts == nil {
		opts = &models.CommitOptions{All: m.IndexGroup().Empty()}
	}

	noChanges := m.IndexGroup().Empty()
	if opts.All {
		noChanges = noChanges && !m.WorkingTreeGroup().HasCommittable()
	}
	if noChanges {
		c.host.ShowInformation(ctx, NoChangesMessage)
		return false, nil
	}

	message := m.Input()
	fromBuffer := strings.TrimSpace(message) != ""
	if !fromBuffer {
		var ok bool
		message, ok = c.host.InputBox(ctx, ui.InputOptions{
			Title:          "Commit",
			Prompt:         commitPrompt(m, opts.All),
			Placeholder:    "Message (press Enter to commit)",
			IgnoreFocusOut: true,
		})
		if !ok || strings.TrimSpace(message) == "" {
			log.Printf("commands: commit aborted, no message")
			return false, nil
		}
	}

	if err := m.Commit(ctx, models.CommitIntent{Message: message, ScopeAll: opts.All}); err != nil {
		return false, err
	}

	if fromBuffer {
		template, err := m.CommitTemplate(ctx)
		if err != nil {
			log.Printf("commands: reading commit template: %v", err)
		}
		m.SetInput(template)
	}
	return true, nil
}

func commitPrompt(m *repository.Model, all bool) string {
	branch := ""
	if head := m.HEAD(); head != nil && head.Name != "" {
		branch = " on '" + head.Name + "'"
	}
	if all {
		return "Commit all changes" + branch
	}
	return "Commit staged changes" + branch
}

func (c *Commands) commit(ctx context.Context, m *repository.Model, _ ...any) error {
	_, err := c.SmartCommit(ctx, m, nil)
	return err
}

func (c *Commands) commitStaged(ctx context.Context, m *repository.Model, _ ...any) error {
	_, err := c.SmartCommit(ctx, m, &models.CommitOptions{All: false})
	return err
}

func (c *Commands) commitAll(ctx context.Context, m *repository.Model, _ ...any) error {
	_, err := c.SmartCommit(ctx, m, &models.CommitOptions{All: true})
	return err
}

// commitWithInput commits the pending buffer. A string argument replaces the
// buffer first.
func (c *Commands) commitWithInput(ctx context.Context, m *repository.Model, args ...any) error {
	if len(args) > 0 {
		if message, ok := args[0].(string); ok {
			m.SetInput(message)
		}
	}
	_, err := c.SmartCommit(ctx, m, nil)
	return err
}
