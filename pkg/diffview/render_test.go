package diffview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderParseRoundTrip(t *testing.T) {
	first, err := ParseUnifiedDiff(sampleDiff, "base", "head")
	require.NoError(t, err)

	second, err := ParseUnifiedDiff(first.Render(), "base", "head")
	require.NoError(t, err)

	require.Len(t, second.Files, len(first.Files))
	for i := range first.Files {
		a, b := first.Files[i], second.Files[i]
		assert.Equal(t, a.Path, b.Path)
		assert.Equal(t, a.Status, b.Status)
		assert.Equal(t, a.Additions, b.Additions)
		assert.Equal(t, a.Deletions, b.Deletions)
		require.Len(t, b.Hunks, len(a.Hunks))
		for h := range a.Hunks {
			assert.Equal(t, a.Hunks[h].Header, b.Hunks[h].Header)
			assert.Equal(t, a.Hunks[h].Lines, b.Hunks[h].Lines)
		}
	}
	assert.Equal(t, first.TotalAdditions, second.TotalAdditions)
	assert.Equal(t, first.TotalDeletions, second.TotalDeletions)
}

func TestRenderIsIdempotentOnCanonicalForm(t *testing.T) {
	first, err := ParseUnifiedDiff(sampleDiff, "base", "head")
	require.NoError(t, err)
	once := first.Render()

	second, err := ParseUnifiedDiff(once, "base", "head")
	require.NoError(t, err)
	assert.Equal(t, once, second.Render())
}

func TestRenderStatusPaths(t *testing.T) {
	added := FileDiff{Path: "new.go", Status: StatusAdded}
	oldPath, newPath := added.renderPaths()
	assert.Equal(t, "/dev/null", oldPath)
	assert.Equal(t, "b/new.go", newPath)

	deleted := FileDiff{Path: "gone.go", Status: StatusDeleted}
	oldPath, newPath = deleted.renderPaths()
	assert.Equal(t, "a/gone.go", oldPath)
	assert.Equal(t, "/dev/null", newPath)

	renamed := FileDiff{Path: "new.go", OldPath: "old.go", Status: StatusRenamed}
	oldPath, newPath = renamed.renderPaths()
	assert.Equal(t, "a/old.go", oldPath)
	assert.Equal(t, "b/new.go", newPath)
}
