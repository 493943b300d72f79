package diffview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursorMovement(t *testing.T) {
	nav := NewNavigationState()

	nav.CursorDown(10)
	assert.Equal(t, 1, nav.CursorLine)

	nav.CursorUp()
	assert.Equal(t, 0, nav.CursorLine)

	// Clamped at 0.
	nav.CursorUp()
	assert.Equal(t, 0, nav.CursorLine)

	// Sticky at the bottom.
	nav.CursorLine = 9
	nav.CursorDown(10)
	assert.Equal(t, 9, nav.CursorLine)
}

func TestFileNavigation(t *testing.T) {
	nav := NewNavigationState()

	nav.CursorLine = 7
	nav.ScrollOffset = 3
	nav.NextFile(5)
	assert.Equal(t, 1, nav.SelectedFile)
	assert.Equal(t, 0, nav.CursorLine) // Reset on file change
	assert.Equal(t, 0, nav.ScrollOffset)

	nav.PrevFile()
	assert.Equal(t, 0, nav.SelectedFile)

	// Clamped at 0.
	nav.PrevFile()
	assert.Equal(t, 0, nav.SelectedFile)

	// Sticky at the last file.
	nav.SelectedFile = 4
	nav.NextFile(5)
	assert.Equal(t, 4, nav.SelectedFile)
}

func TestSelectFileOutOfRangeIgnored(t *testing.T) {
	nav := NewNavigationState()
	nav.SelectFile(7, 5)
	assert.Equal(t, 0, nav.SelectedFile)
	nav.SelectFile(3, 5)
	assert.Equal(t, 3, nav.SelectedFile)
}

func TestVisualMode(t *testing.T) {
	nav := NewNavigationState()
	nav.CursorLine = 5

	nav.EnterVisualMode()
	assert.True(t, nav.IsVisualMode())

	nav.CursorDown(20)
	nav.CursorDown(20)
	start, end, ok := nav.VisualSelection()
	require.True(t, ok)
	assert.Equal(t, 5, start)
	assert.Equal(t, 7, end)

	nav.ExitVisualMode()
	assert.False(t, nav.IsVisualMode())
	_, _, ok = nav.VisualSelection()
	assert.False(t, ok)
}

func TestVisualSelectionOrdering(t *testing.T) {
	nav := NewNavigationState()
	nav.CursorLine = 9
	nav.EnterVisualMode()
	nav.CursorUp()
	nav.CursorUp()
	start, end, ok := nav.VisualSelection()
	require.True(t, ok)
	assert.LessOrEqual(t, start, end)
	assert.Equal(t, 7, start)
	assert.Equal(t, 9, end)
}

func TestEnsureCursorVisible(t *testing.T) {
	nav := NewNavigationState()
	nav.CursorLine = 50
	nav.ScrollOffset = 0

	nav.EnsureCursorVisible(20)
	assert.Equal(t, 31, nav.ScrollOffset) // 50 - 20 + 1

	nav.CursorLine = 10
	nav.EnsureCursorVisible(20)
	assert.Equal(t, 10, nav.ScrollOffset)
}

func TestHalfAndFullPageScroll(t *testing.T) {
	nav := NewNavigationState()

	nav.ScrollHalfDown(20, 100)
	assert.Equal(t, 10, nav.CursorLine)

	nav.ScrollPageDown(20, 100)
	assert.Equal(t, 30, nav.CursorLine)
	assert.GreaterOrEqual(t, nav.CursorLine, nav.ScrollOffset)
	assert.Less(t, nav.CursorLine, nav.ScrollOffset+20)

	nav.ScrollHalfUp(20)
	assert.Equal(t, 20, nav.CursorLine)

	nav.ScrollPageUp(20)
	assert.Equal(t, 0, nav.CursorLine)

	// Clamped at the end of the content.
	nav.CursorLine = 95
	nav.ScrollPageDown(20, 100)
	assert.Equal(t, 99, nav.CursorLine)
}

func TestToggleFileTree(t *testing.T) {
	nav := NewNavigationState()
	assert.True(t, nav.ShowFileTree)
	assert.True(t, nav.FileTreeFocused)

	nav.ToggleFileTree()
	assert.False(t, nav.ShowFileTree)
	assert.False(t, nav.FileTreeFocused)

	nav.ToggleFileTree()
	assert.True(t, nav.ShowFileTree)
}
