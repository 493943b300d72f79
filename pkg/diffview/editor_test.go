package diffview

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEditorInsertAndDelete(t *testing.T) {
	editor := NewCommentEditor("test.go", SideRight, 10)

	editor.InsertString("Hello")
	assert.Equal(t, "Hello", editor.Body)
	assert.Equal(t, 5, editor.Cursor)

	editor.InsertChar('!')
	assert.Equal(t, "Hello!", editor.Body)

	editor.DeleteCharBefore()
	assert.Equal(t, "Hello", editor.Body)

	editor.Cursor = 0
	editor.DeleteCharAt()
	assert.Equal(t, "ello", editor.Body)
}

func TestEditorCursorMovement(t *testing.T) {
	editor := NewCommentEditor("test.go", SideRight, 10)
	editor.InsertString("Hello\nWorld")

	editor.CursorHome()
	assert.Equal(t, 6, editor.Cursor) // Start of "World"

	editor.CursorEnd()
	assert.Equal(t, 11, editor.Cursor) // End of "World"

	editor.Cursor = 0
	editor.CursorEnd()
	assert.Equal(t, 5, editor.Cursor) // End of "Hello"
}

func TestEditorHomeEndScenario(t *testing.T) {
	// Spec scenario: insert "Hello\nWorld", home, end -> cursor at 11.
	editor := NewCommentEditor("a.go", SideRight, 1)
	editor.InsertString("Hello\nWorld")
	editor.CursorHome()
	editor.CursorEnd()
	assert.Equal(t, 11, editor.Cursor)
	assert.Equal(t, 2, editor.LineCount())
	assert.Equal(t, 1, editor.CurrentLine())
	assert.Equal(t, 5, editor.CurrentColumn())
}

func TestEditorBoundaries(t *testing.T) {
	editor := NewCommentEditor("a.go", SideRight, 1)
	editor.InsertString("ab")

	editor.Cursor = 0
	editor.DeleteCharBefore() // no-op at 0
	assert.Equal(t, "ab", editor.Body)
	editor.CursorLeft() // no-op at 0
	assert.Equal(t, 0, editor.Cursor)

	editor.Cursor = len(editor.Body)
	editor.DeleteCharAt() // no-op at end
	assert.Equal(t, "ab", editor.Body)
	editor.CursorRight() // no-op at end
	assert.Equal(t, 2, editor.Cursor)
}

func TestEditorUTF8Boundaries(t *testing.T) {
	editor := NewCommentEditor("a.go", SideRight, 1)
	editor.InsertString("héllo ✓")

	// Walk the cursor across the whole body in both directions; every stop
	// must be a rune boundary.
	for editor.Cursor > 0 {
		editor.CursorLeft()
		assert.True(t, isBoundary(editor.Body, editor.Cursor))
	}
	for editor.Cursor < len(editor.Body) {
		editor.CursorRight()
		assert.True(t, isBoundary(editor.Body, editor.Cursor))
	}

	// Deleting a multi-byte rune keeps the cursor on a boundary.
	editor.DeleteCharBefore() // removes ✓
	assert.Equal(t, "héllo ", editor.Body)
	assert.True(t, isBoundary(editor.Body, editor.Cursor))

	editor.Cursor = 1 // before é
	editor.DeleteCharAt()
	assert.Equal(t, "hllo ", editor.Body)
}

func isBoundary(s string, cursor int) bool {
	if cursor == 0 || cursor == len(s) {
		return true
	}
	return utf8.RuneStart(s[cursor])
}

func TestEditorInsertMultiByteChar(t *testing.T) {
	editor := NewCommentEditor("a.go", SideRight, 1)
	editor.InsertChar('é')
	assert.Equal(t, utf8.RuneLen('é'), editor.Cursor)
	editor.InsertChar('x')
	assert.Equal(t, "éx", editor.Body)
}

func TestEditorLineInfo(t *testing.T) {
	editor := NewCommentEditor("a.go", SideRight, 1)
	editor.InsertString("Line 1\nLine 2\nLine 3")

	assert.Equal(t, 3, editor.LineCount())
	assert.Equal(t, 2, editor.CurrentLine())

	editor.Cursor = 8 // "i" in "Line 2"
	assert.Equal(t, 1, editor.CurrentLine())
	assert.Equal(t, 1, editor.CurrentColumn())
}

func TestEditorIsEmpty(t *testing.T) {
	editor := NewCommentEditor("a.go", SideRight, 1)
	assert.True(t, editor.IsEmpty())
	editor.InsertString("  \n\t ")
	assert.True(t, editor.IsEmpty())
	editor.InsertString("x")
	assert.False(t, editor.IsEmpty())
	assert.Equal(t, 2, editor.LineCount())
}

func TestEditorClear(t *testing.T) {
	editor := NewCommentEditor("a.go", SideRight, 1)
	editor.InsertString("something")
	editor.Clear()
	assert.Empty(t, editor.Body)
	assert.Equal(t, 0, editor.Cursor)
	assert.Equal(t, 1, editor.LineCount())
}

func TestEditExistingCursorAtEnd(t *testing.T) {
	remoteID := int64(77)
	editor := EditExisting("a.go", SinglePosition(SideRight, 5), "existing body", 2, &remoteID)
	assert.Equal(t, len("existing body"), editor.Cursor)
	require.NotNil(t, editor.EditingIndex)
	assert.Equal(t, 2, *editor.EditingIndex)
	require.NotNil(t, editor.RemoteID)
	assert.Equal(t, int64(77), *editor.RemoteID)
}

func TestEditorMultilinePosition(t *testing.T) {
	editor := NewRangeCommentEditor("a.go", SideRight, 10, 15)
	assert.True(t, editor.Position.IsMultiline())
	start, end := editor.Position.LineRange()
	assert.Equal(t, 10, start)
	assert.Equal(t, 15, end)
}
