package commands

import (
	"context"
	"fmt"

	"github.com/chmouel/lazyscm/internal/diff"
	"github.com/chmouel/lazyscm/internal/dispatch"
	log "github.com/chmouel/lazyscm/internal/log"
	"github.com/chmouel/lazyscm/internal/models"
	"github.com/chmouel/lazyscm/internal/repository"
	"github.com/chmouel/lazyscm/internal/ui"
)

const discardItem = "Discard Changes"

// resolveResources turns action arguments into resources of m. Accepted
// arguments are resources, resource slices, paths and path slices. With no
// arguments the focused path is used, and failing that the user picks from
// candidates.
func (c *Commands) resolveResources(ctx context.Context, m *repository.Model, candidates []*models.Resource, args []any) ([]*models.Resource, error) {
	groups := groupsOf(candidates)
	find := func(path string) *models.Resource {
		if r := m.Find(path, groups...); r != nil {
			return r
		}
		return m.Find(path)
	}
	var out []*models.Resource
	add := func(r *models.Resource) {
		if r != nil {
			out = append(out, r)
		}
	}
	for _, arg := range args {
		switch v := arg.(type) {
		case *models.Resource:
			add(v)
		case []*models.Resource:
			for _, r := range v {
				add(r)
			}
		case string:
			add(find(v))
		case []string:
			for _, p := range v {
				add(find(p))
			}
		default:
			log.Printf("commands: ignoring argument of type %T", arg)
		}
	}
	if len(args) > 0 {
		return out, nil
	}

	if focused := c.host.FocusedPath(); focused != "" {
		if r := find(focused); r != nil {
			return []*models.Resource{r}, nil
		}
		log.Printf("commands: focused path %s has no changes", focused)
		return nil, nil
	}
	return c.pickResource(ctx, candidates)
}

func (c *Commands) pickResource(ctx context.Context, candidates []*models.Resource) ([]*models.Resource, error) {
	if len(candidates) == 0 {
		return nil, nil
	}
	items := make([]ui.PickItem, 0, len(candidates))
	for _, r := range candidates {
		items = append(items, ui.PickItem{Label: ResourceLabel(r, c.opts.ShowIcons), Description: r.Group.Label()})
	}
	idx, ok := c.host.QuickPick(ctx, items, ui.PickOptions{Title: "Select a file", Placeholder: "Type to filter files"})
	if !ok || idx < 0 || idx >= len(candidates) {
		return nil, dispatch.ErrCancelled
	}
	return []*models.Resource{candidates[idx]}, nil
}

func groupsOf(resources []*models.Resource) []models.GroupKind {
	var kinds []models.GroupKind
	seen := map[models.GroupKind]bool{}
	for _, r := range resources {
		if !seen[r.Group] {
			seen[r.Group] = true
			kinds = append(kinds, r.Group)
		}
	}
	return kinds
}

func inGroups(resources []*models.Resource, groups ...models.GroupKind) []*models.Resource {
	var out []*models.Resource
	for _, r := range resources {
		for _, g := range groups {
			if r.Group == g {
				out = append(out, r)
				break
			}
		}
	}
	return out
}

func concat(groups ...[]*models.Resource) []*models.Resource {
	var out []*models.Resource
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

func allResources(m *repository.Model) []*models.Resource {
	return concat(m.MergeGroup().Resources, m.IndexGroup().Resources, m.WorkingTreeGroup().Resources)
}

func (c *Commands) refresh(ctx context.Context, m *repository.Model, _ ...any) error {
	return m.Refresh(ctx)
}

func (c *Commands) openResource(ctx context.Context, m *repository.Model, args ...any) error {
	resources, err := c.resolveResources(ctx, m, allResources(m), args)
	if err != nil {
		return err
	}
	for _, r := range resources {
		if err := diff.Open(ctx, c.host, r); err != nil {
			return err
		}
	}
	return nil
}

func (c *Commands) openFile(ctx context.Context, m *repository.Model, args ...any) error {
	resources, err := c.resolveResources(ctx, m, allResources(m), args)
	if err != nil {
		return err
	}
	for _, r := range resources {
		ref := r.Current()
		if r.Status == models.StatusDeleted {
			ref = r.Original()
		}
		if err := c.host.OpenFile(ctx, ref); err != nil {
			return err
		}
	}
	return nil
}

func (c *Commands) stage(ctx context.Context, m *repository.Model, args ...any) error {
	candidates := concat(m.MergeGroup().Resources, m.WorkingTreeGroup().Resources)
	resources, err := c.resolveResources(ctx, m, candidates, args)
	if err != nil {
		return err
	}
	resources = inGroups(resources, models.GroupWorkingTree, models.GroupMerge)
	if len(resources) == 0 {
		return nil
	}
	return m.Stage(ctx, resources...)
}

func (c *Commands) stageAll(ctx context.Context, m *repository.Model, _ ...any) error {
	resources := concat(m.MergeGroup().Resources, m.WorkingTreeGroup().Resources)
	if len(resources) == 0 {
		return nil
	}
	return m.Stage(ctx, resources...)
}

func (c *Commands) unstage(ctx context.Context, m *repository.Model, args ...any) error {
	resources, err := c.resolveResources(ctx, m, m.IndexGroup().Resources, args)
	if err != nil {
		return err
	}
	resources = inGroups(resources, models.GroupIndex)
	if len(resources) == 0 {
		return nil
	}
	return m.Unstage(ctx, resources...)
}

func (c *Commands) unstageAll(ctx context.Context, m *repository.Model, _ ...any) error {
	resources := m.IndexGroup().Resources
	if len(resources) == 0 {
		return nil
	}
	return m.Unstage(ctx, resources...)
}

func (c *Commands) clean(ctx context.Context, m *repository.Model, args ...any) error {
	resources, err := c.resolveResources(ctx, m, m.WorkingTreeGroup().Resources, args)
	if err != nil {
		return err
	}
	resources = inGroups(resources, models.GroupWorkingTree)
	if len(resources) == 0 {
		return nil
	}

	message := fmt.Sprintf("Are you sure you want to discard changes in %s?", resources[0].Basename())
	if len(resources) > 1 {
		message = fmt.Sprintf("Are you sure you want to discard changes in %d files?", len(resources))
	}
	if err := c.confirmDiscard(ctx, message); err != nil {
		return err
	}
	return m.Clean(ctx, resources...)
}

func (c *Commands) cleanAll(ctx context.Context, m *repository.Model, _ ...any) error {
	resources := m.WorkingTreeGroup().Resources
	if len(resources) == 0 {
		return nil
	}
	if err := c.confirmDiscard(ctx, "Are you sure you want to discard ALL changes? This is IRREVERSIBLE!"); err != nil {
		return err
	}
	return m.Clean(ctx, resources...)
}

func (c *Commands) confirmDiscard(ctx context.Context, message string) error {
	if !c.opts.ConfirmClean {
		return nil
	}
	choice, ok := c.host.ShowWarning(ctx, message, ui.MessageOptions{Modal: true}, discardItem)
	if !ok || choice != discardItem {
		return dispatch.ErrCancelled
	}
	return nil
}
