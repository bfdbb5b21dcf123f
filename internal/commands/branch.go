package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/chmouel/lazyscm/internal/dispatch"
	"github.com/chmouel/lazyscm/internal/models"
	"github.com/chmouel/lazyscm/internal/repository"
	"github.com/chmouel/lazyscm/internal/ui"
)

// RefPickItem renders a ref for the checkout list. Each ref kind describes
// itself differently.
func RefPickItem(ref models.Ref) ui.PickItem {
	short := ref.ShortCommit()
	switch ref.Kind {
	case models.RefTag:
		return ui.PickItem{Label: ref.Name, Description: describe("Tag at", short)}
	case models.RefRemoteHead:
		return ui.PickItem{Label: ref.Name, Description: describe("Remote branch at", short)}
	default:
		return ui.PickItem{Label: ref.Name, Description: short}
	}
}

func describe(prefix, short string) string {
	if short == "" {
		return strings.TrimSuffix(strings.TrimSuffix(prefix, " at"), " ")
	}
	return fmt.Sprintf("%s %s", prefix, short)
}

func (c *Commands) checkout(ctx context.Context, m *repository.Model, args ...any) error {
	if len(args) > 0 {
		if ref, ok := args[0].(string); ok && ref != "" {
			return m.Checkout(ctx, ref)
		}
	}

	refs := m.Refs()
	if len(refs) == 0 {
		c.host.ShowInformation(ctx, "There are no branches or tags to check out.")
		return nil
	}
	items := make([]ui.PickItem, 0, len(refs))
	for _, ref := range refs {
		items = append(items, RefPickItem(ref))
	}
	idx, ok := c.host.QuickPick(ctx, items, ui.PickOptions{Title: "Checkout", Placeholder: "Select a ref to checkout"})
	if !ok || idx < 0 || idx >= len(refs) {
		return dispatch.ErrCancelled
	}
	return m.Checkout(ctx, refs[idx].Name)
}

// SanitizeBranchName replaces runs of whitespace with a dash.
func SanitizeBranchName(name string) string {
	return strings.Join(strings.Fields(name), "-")
}

func (c *Commands) branch(ctx context.Context, m *repository.Model, args ...any) error {
	if len(args) > 0 {
		if name, ok := args[0].(string); ok && SanitizeBranchName(name) != "" {
			return m.Branch(ctx, SanitizeBranchName(name))
		}
	}
	name, ok := c.host.InputBox(ctx, ui.InputOptions{
		Title:          "Create branch",
		Prompt:         "Please provide a branch name",
		Placeholder:    "e.g. " + SuggestBranchName(),
		IgnoreFocusOut: true,
	})
	name = SanitizeBranchName(name)
	if !ok || name == "" {
		return dispatch.ErrCancelled
	}
	return m.Branch(ctx, name)
}
