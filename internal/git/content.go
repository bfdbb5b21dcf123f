package git

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/chmouel/lazyscm/internal/models"
)

func revision(rev string) string {
	if rev == "" || rev == models.CheckoutParent {
		return "HEAD"
	}
	return rev
}

// Read returns the content ref addresses.
func (e *Engine) Read(ctx context.Context, ref models.Reference) ([]byte, error) {
	if ref.Kind == models.ContentHistorical {
		out, err := e.git(ctx, "show", fmt.Sprintf("%s:%s", revision(ref.Revision), filepath.ToSlash(ref.Path)))
		if err != nil {
			return nil, err
		}
		return []byte(out), nil
	}
	return os.ReadFile(filepath.Join(e.root, ref.Path)) //nolint:gosec
}

// Diff renders a unified diff between two references, titled with title.
// Both sides are materialised so historical and working content compare alike.
func (e *Engine) Diff(ctx context.Context, left, right models.Reference, title string) (string, error) {
	dir, err := os.MkdirTemp("", "lazyscm-diff-")
	if err != nil {
		return "", err
	}
	defer func() { _ = os.RemoveAll(dir) }()

	leftPath, err := e.materialise(ctx, dir, "a", left)
	if err != nil {
		return "", err
	}
	rightPath, err := e.materialise(ctx, dir, "b", right)
	if err != nil {
		return "", err
	}

	// --no-index exits 1 when the files differ.
	out, err := e.client.runAllowing(ctx, dir, nil, []int{0, 1}, "diff", "--no-index", "--no-color", "--", leftPath, rightPath)
	if err != nil {
		return "", err
	}
	if title == "" {
		title = fmt.Sprintf("%s ↔ %s", left, right)
	}
	var b strings.Builder
	b.WriteString("=== " + title + " ===\n")
	if strings.TrimSpace(out) == "" {
		b.WriteString("(no differences)\n")
	} else {
		b.WriteString(out)
	}
	return b.String(), nil
}

func (e *Engine) materialise(ctx context.Context, dir, side string, ref models.Reference) (string, error) {
	data, err := e.Read(ctx, ref)
	if err != nil {
		return "", err
	}
	rel := filepath.Join(side, filepath.Base(ref.Path))
	path := filepath.Join(dir, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", err
	}
	return rel, nil
}
