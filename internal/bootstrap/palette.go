package bootstrap

import (
	"context"
	"fmt"
	"strings"

	"github.com/chmouel/lazyscm/internal/commands"
	"github.com/chmouel/lazyscm/internal/history"
	"github.com/chmouel/lazyscm/internal/log"
	"github.com/chmouel/lazyscm/internal/ui"
)

const palettePlaceholder = "Run an action (Esc to quit)"

// paletteItems returns the selectable palette entries, most recently used
// first when MRU is enabled.
func (a *App) paletteItems() []commands.PaletteItem {
	var usage []history.Usage
	if a.cfg.PaletteMRU && a.historyDir != "" {
		var err error
		if usage, err = history.Load(a.historyDir, a.historyKey()); err != nil {
			log.Printf("bootstrap: load palette history: %v", err)
		}
	}
	return commands.Selectable(commands.BuildPaletteItems(commands.PaletteOptions{
		MRUEnabled: a.cfg.PaletteMRU,
		MRULimit:   a.cfg.PaletteMRULimit,
		History:    usage,
		Actions:    a.dispatcher.Registry().Actions(),
	}))
}

func (a *App) pickItems(items []commands.PaletteItem) []ui.PickItem {
	picks := make([]ui.PickItem, 0, len(items))
	for _, item := range items {
		label := item.Label
		if a.cfg.ShowIcons && item.Icon != "" {
			label = item.Icon + " " + label
		}
		detail := ""
		if item.IsMRU {
			detail = "recently used"
		}
		picks = append(picks, ui.PickItem{Label: label, Description: item.Description, Detail: detail})
	}
	return picks
}

// statusLine summarises the bound repository for the palette title.
func (a *App) statusLine() string {
	model := a.dispatcher.Model()
	if model == nil {
		return "lazyscm: no repository"
	}
	head := "(detached)"
	if ref := model.HEAD(); ref != nil && ref.Name != "" {
		head = ref.Name
	}
	parts := []string{fmt.Sprintf("lazyscm: %s", head)}
	if n := len(model.MergeGroup().Resources); n > 0 {
		parts = append(parts, fmt.Sprintf("%d conflicted", n))
	}
	parts = append(parts,
		fmt.Sprintf("%d staged", len(model.IndexGroup().Resources)),
		fmt.Sprintf("%d changed", len(model.WorkingTreeGroup().Resources)),
	)
	return strings.Join(parts, "  ")
}

// Palette shows the action palette until it is dismissed.
func (a *App) Palette(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		items := a.paletteItems()
		idx, ok := a.host.QuickPick(ctx, a.pickItems(items), ui.PickOptions{
			Title:       a.statusLine(),
			Placeholder: palettePlaceholder,
		})
		if !ok {
			return nil
		}
		a.Invoke(ctx, items[idx].ID)
	}
}
