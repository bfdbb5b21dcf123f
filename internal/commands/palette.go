package commands

import (
	"github.com/chmouel/lazyscm/internal/dispatch"
	"github.com/chmouel/lazyscm/internal/history"
)

const defaultMRUSectionLabel = "Recently Used"

var sectionIcons = map[string]string{
	sectionResources:       IconResource,
	sectionCommit:          IconCommit,
	sectionBranches:        IconBranch,
	sectionRemotes:         IconRemote,
	sectionWorkspace:       IconWorkspace,
	defaultMRUSectionLabel: IconRecent,
}

func getSectionIcon(section string) string {
	return sectionIcons[section]
}

// PaletteItem represents a palette entry.
type PaletteItem struct {
	ID          string
	Label       string
	Description string
	IsSection   bool
	IsMRU       bool
	Icon        string // Category icon (Nerd Font)
}

// PaletteOptions controls palette item building.
type PaletteOptions struct {
	MRUEnabled      bool
	MRULimit        int
	History         []history.Usage
	Actions         []dispatch.Action
	MRUSectionLabel string
}

// BuildPaletteItems builds palette items from actions and history. Actions
// that need a repository are listed even when none is open; the dispatcher
// explains why they cannot run.
func BuildPaletteItems(opts PaletteOptions) []PaletteItem {
	items := make([]PaletteItem, 0, len(opts.Actions)+10)
	itemMap := make(map[string]PaletteItem)

	for _, action := range opts.Actions {
		itemMap[action.ID] = PaletteItem{
			ID:          action.ID,
			Label:       action.Label,
			Description: action.Description,
			Icon:        action.Icon,
		}
	}

	mruItems := buildMRUItems(opts, itemMap)
	mruIDs := make(map[string]bool)
	if len(mruItems) > 0 {
		label := opts.MRUSectionLabel
		if label == "" {
			label = defaultMRUSectionLabel
		}
		items = append(items, PaletteItem{Label: label, IsSection: true, Icon: getSectionIcon(label)})
		items = append(items, mruItems...)
		for _, item := range mruItems {
			mruIDs[item.ID] = true
		}
	}

	currentSection := ""
	for _, action := range opts.Actions {
		if action.Section != "" && action.Section != currentSection {
			items = append(items, PaletteItem{Label: action.Section, IsSection: true, Icon: getSectionIcon(action.Section)})
			currentSection = action.Section
		}
		if mruIDs[action.ID] {
			continue
		}
		items = append(items, itemMap[action.ID])
	}

	return items
}

func buildMRUItems(opts PaletteOptions, itemMap map[string]PaletteItem) []PaletteItem {
	if !opts.MRUEnabled || len(opts.History) == 0 {
		return nil
	}

	limit := opts.MRULimit
	if limit <= 0 {
		return nil
	}

	mruItems := make([]PaletteItem, 0, limit)
	for _, usage := range opts.History {
		if len(mruItems) >= limit {
			break
		}
		item, exists := itemMap[usage.ID]
		if !exists {
			continue
		}
		item.IsMRU = true
		mruItems = append(mruItems, item)
	}
	return mruItems
}

// Selectable returns the palette items that run an action.
func Selectable(items []PaletteItem) []PaletteItem {
	out := make([]PaletteItem, 0, len(items))
	for _, item := range items {
		if !item.IsSection {
			out = append(out, item)
		}
	}
	return out
}
