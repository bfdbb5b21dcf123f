package diff

import (
	"context"
	"testing"

	"github.com/chmouel/lazyscm/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func res(path string, status models.Status) *models.Resource {
	return &models.Resource{Path: path, Status: status, Group: models.GroupWorkingTree}
}

func refPtr(r models.Reference) *models.Reference { return &r }

func TestLeftIsNoneWithoutPriorVersion(t *testing.T) {
	for _, status := range []models.Status{models.StatusAdded, models.StatusUntracked, models.StatusIgnored} {
		t.Run(status.String(), func(t *testing.T) {
			assert.Nil(t, Left(res("x.go", status)))
		})
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name     string
		resource *models.Resource
		expected Pair
	}{
		{
			name:     "modified compares committed with working folder",
			resource: res("a.txt", models.StatusModified),
			expected: Pair{
				Left:  refPtr(models.HistoricalRef("a.txt", ".")),
				Right: refPtr(models.WorkingRef("a.txt")),
				Title: "a.txt (Working Folder)",
			},
		},
		{
			name:     "added shows only the current file",
			resource: res("b.txt", models.StatusAdded),
			expected: Pair{Right: refPtr(models.WorkingRef("b.txt"))},
		},
		{
			name:     "deleted compares two historical views",
			resource: res("c.txt", models.StatusDeleted),
			expected: Pair{
				Left:  refPtr(models.HistoricalRef("c.txt", ".")),
				Right: refPtr(models.HistoricalRef("c.txt", ".")),
			},
		},
		{
			name:     "untracked shows only the current file",
			resource: res("new/d.txt", models.StatusUntracked),
			expected: Pair{Right: refPtr(models.WorkingRef("new/d.txt"))},
		},
		{
			name:     "ignored shows only the current file",
			resource: res("build/out.bin", models.StatusIgnored),
			expected: Pair{Right: refPtr(models.WorkingRef("build/out.bin"))},
		},
		{
			name:     "clean has nothing on the right",
			resource: res("e.txt", models.StatusClean),
			expected: Pair{Left: refPtr(models.HistoricalRef("e.txt", "."))},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Resolve(tt.resource))
		})
	}
}

func TestTitleUsesBasename(t *testing.T) {
	assert.Equal(t, "main.go (Working Folder)", Title(res("cmd/lazyscm/main.go", models.StatusModified)))
	assert.Empty(t, Title(res("cmd/lazyscm/main.go", models.StatusDeleted)))
}

type recordingViewer struct {
	files []models.Reference
	diffs []Pair
}

func (v *recordingViewer) OpenFile(_ context.Context, ref models.Reference) error {
	v.files = append(v.files, ref)
	return nil
}

func (v *recordingViewer) OpenDiff(_ context.Context, left, right models.Reference, title string) error {
	v.diffs = append(v.diffs, Pair{Left: &left, Right: &right, Title: title})
	return nil
}

func TestOpen(t *testing.T) {
	t.Run("single pane when no left side", func(t *testing.T) {
		v := &recordingViewer{}
		require.NoError(t, Open(context.Background(), v, res("b.txt", models.StatusAdded)))
		assert.Equal(t, []models.Reference{models.WorkingRef("b.txt")}, v.files)
		assert.Empty(t, v.diffs)
	})

	t.Run("two panes when both sides exist", func(t *testing.T) {
		v := &recordingViewer{}
		require.NoError(t, Open(context.Background(), v, res("a.txt", models.StatusModified)))
		require.Len(t, v.diffs, 1)
		assert.Equal(t, "a.txt (Working Folder)", v.diffs[0].Title)
		assert.Empty(t, v.files)
	})

	t.Run("no right side shows nothing", func(t *testing.T) {
		v := &recordingViewer{}
		err := Open(context.Background(), v, res("e.txt", models.StatusClean))
		var nrs *NoRightSideError
		require.ErrorAs(t, err, &nrs)
		assert.Equal(t, "e.txt", nrs.Path)
		assert.Empty(t, nrs.Diagnostic())
		assert.Empty(t, v.files)
		assert.Empty(t, v.diffs)
	})
}
