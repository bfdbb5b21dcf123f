// Package diff decides which two versions of a changed resource to compare
// and how to title the comparison. Every function here is a pure function of
// the resource status.
package diff

import (
	"fmt"

	"github.com/chmouel/lazyscm/internal/models"
)

// Pair is the derived left/right couple for one resource. A nil side means
// there is nothing to show for it.
type Pair struct {
	Left  *models.Reference
	Right *models.Reference
	Title string
}

func (p Pair) String() string {
	side := func(r *models.Reference) string {
		if r == nil {
			return "none"
		}
		return r.String()
	}
	return fmt.Sprintf("{left: %s, right: %s, title: %q}", side(p.Left), side(p.Right), p.Title)
}

// Left returns the "before" side of the comparison.
func Left(r *models.Resource) *models.Reference {
	switch r.Status {
	case models.StatusAdded, models.StatusUntracked, models.StatusIgnored:
		return nil
	default:
		ref := r.Original()
		return &ref
	}
}

// Right returns the "after" side of the comparison. Deleted files have no
// working copy, so the last committed version stands in for it.
func Right(r *models.Resource) *models.Reference {
	switch r.Status {
	case models.StatusDeleted:
		ref := r.Original()
		return &ref
	case models.StatusModified, models.StatusUntracked, models.StatusIgnored, models.StatusAdded:
		ref := r.Current()
		return &ref
	default:
		return nil
	}
}

// Title returns the comparison label. Only modified resources are annotated.
func Title(r *models.Resource) string {
	if r.Status == models.StatusModified {
		return r.Basename() + " (Working Folder)"
	}
	return ""
}

// Resolve computes the full pair for r.
func Resolve(r *models.Resource) Pair {
	return Pair{Left: Left(r), Right: Right(r), Title: Title(r)}
}
