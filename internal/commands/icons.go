package commands

import (
	"os"
	"time"

	devicons "github.com/epilande/go-devicons"

	"github.com/chmouel/lazyscm/internal/models"
)

type iconFileInfo struct {
	name string
}

func (i iconFileInfo) Name() string { return i.name }

func (i iconFileInfo) Size() int64 { return 0 }

func (i iconFileInfo) Mode() os.FileMode { return 0 }

func (i iconFileInfo) ModTime() time.Time { return time.Time{} }

func (i iconFileInfo) IsDir() bool { return false }

func (i iconFileInfo) Sys() any { return nil }

// FileIcon returns the Nerd Font glyph for a file name.
func FileIcon(name string) string {
	if name == "" {
		return ""
	}
	return devicons.IconForInfo(iconFileInfo{name: name}).Icon
}

// ResourceLabel renders a resource for pick lists: status letter, optional
// icon, and path.
func ResourceLabel(r *models.Resource, icons bool) string {
	label := r.Status.Letter() + " "
	if icons {
		if icon := FileIcon(r.Basename()); icon != "" {
			label += icon + " "
		}
	}
	return label + r.Path
}
