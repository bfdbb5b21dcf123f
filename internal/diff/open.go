package diff

import (
	"context"
	"fmt"

	log "github.com/chmouel/lazyscm/internal/log"
	"github.com/chmouel/lazyscm/internal/models"
)

// Viewer shows content to the user.
type Viewer interface {
	OpenFile(ctx context.Context, ref models.Reference) error
	OpenDiff(ctx context.Context, left, right models.Reference, title string) error
}

// NoRightSideError reports a resource that cannot be opened because nothing
// exists on its right-hand side. It carries no user-facing diagnostic text.
type NoRightSideError struct {
	Path   string
	Status models.Status
}

func (e *NoRightSideError) Error() string {
	return fmt.Sprintf("no right-hand side for %s (%s)", e.Path, e.Status)
}

// Diagnostic returns the user-facing text, which is always empty.
func (e *NoRightSideError) Diagnostic() string { return "" }

// ErrorCode returns the machine code, which is always empty.
func (e *NoRightSideError) ErrorCode() string { return "" }

// Open shows r: a single pane when only the right side exists, a two-pane
// comparison when both do.
func Open(ctx context.Context, v Viewer, r *models.Resource) error {
	pair := Resolve(r)
	if pair.Right == nil {
		log.Printf("diff: cannot open %s: %s", r.Path, pair)
		return &NoRightSideError{Path: r.Path, Status: r.Status}
	}
	if pair.Left == nil {
		return v.OpenFile(ctx, *pair.Right)
	}
	return v.OpenDiff(ctx, *pair.Left, *pair.Right, pair.Title)
}
