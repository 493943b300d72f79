package diffview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openState(t *testing.T) *State {
	t.Helper()
	diff, err := ParseUnifiedDiff(sampleDiff, "base-sha", "head-sha")
	require.NoError(t, err)
	s := NewState()
	s.Open(42, diff)
	return s
}

func TestDisplayLinesIncludeHunkHeaders(t *testing.T) {
	s := openState(t)
	rows := s.DisplayLines()
	require.NotEmpty(t, rows)
	assert.True(t, rows[0].IsHunkHeader)
	assert.Contains(t, rows[0].Text, "@@ -1,5 +1,6 @@")
	assert.False(t, rows[1].IsHunkHeader)
	require.NotNil(t, rows[1].Line)
}

func TestCursorTargetOnAddition(t *testing.T) {
	s := openState(t)
	// Row 0 is the hunk header, rows 1.. are lines; the addition is row 3.
	s.Nav.CursorLine = 3
	side, line, ok := s.CursorTarget()
	require.True(t, ok)
	assert.Equal(t, SideRight, side)
	assert.Equal(t, 3, line)
}

func TestCursorTargetOnHunkHeader(t *testing.T) {
	s := openState(t)
	s.Nav.CursorLine = 0
	_, _, ok := s.CursorTarget()
	assert.False(t, ok)
}

func TestCommentLifecycleCommit(t *testing.T) {
	s := openState(t)
	s.Nav.CursorLine = 3
	require.True(t, s.StartComment())
	require.NotNil(t, s.Editor)

	s.Editor.InsertString("needs a test")
	events := s.CommitEditor()
	require.Len(t, events, 1)
	added, ok := events[0].(CommentAddedEvent)
	require.True(t, ok)
	assert.Equal(t, "src/main.rs", added.Comment.Path)
	assert.Equal(t, "needs a test", added.Comment.Body)
	assert.Equal(t, SideRight, added.Comment.Position.Side)
	assert.Equal(t, 3, added.Comment.Position.Line)
	assert.Nil(t, s.Editor)

	s.ApplyCommentEvent(added)
	require.Len(t, s.PendingComments, 1)
	comments := s.CommentsForLine(SideRight, 3)
	assert.Len(t, comments, 1)
}

func TestCommentCommitEmptyBodySilentlyCloses(t *testing.T) {
	s := openState(t)
	s.Nav.CursorLine = 3
	require.True(t, s.StartComment())
	s.Editor.InsertString("   ")
	events := s.CommitEditor()
	assert.Empty(t, events)
	assert.Nil(t, s.Editor)
}

func TestCommentCommitEmptyWithRemoteIDEmitsDelete(t *testing.T) {
	s := openState(t)
	remote := int64(900)
	s.PendingComments = append(s.PendingComments,
		PendingCommentFromRemote(remote, "src/main.rs", SinglePosition(SideRight, 3), "old text"))

	require.True(t, s.EditCommentAt(0))
	s.Editor.Clear()
	events := s.CommitEditor()
	require.Len(t, events, 1)
	deleted, ok := events[0].(CommentDeletedEvent)
	require.True(t, ok)
	assert.Equal(t, 0, deleted.Index)
	require.NotNil(t, deleted.RemoteID)
	assert.Equal(t, remote, *deleted.RemoteID)
}

func TestCommentEditExisting(t *testing.T) {
	s := openState(t)
	s.PendingComments = append(s.PendingComments,
		NewPendingComment("src/main.rs", SinglePosition(SideRight, 3), "v1"))

	require.True(t, s.EditCommentAt(0))
	assert.Equal(t, "v1", s.Editor.Body)
	assert.Equal(t, len("v1"), s.Editor.Cursor)

	s.Editor.InsertString(" v2")
	events := s.CommitEditor()
	require.Len(t, events, 1)
	edited, ok := events[0].(CommentEditedEvent)
	require.True(t, ok)
	assert.Equal(t, "v1 v2", edited.Body)

	s.ApplyCommentEvent(edited)
	assert.Equal(t, "v1 v2", s.PendingComments[0].Body)
}

func TestVisualRangeComment(t *testing.T) {
	s := openState(t)
	s.Nav.CursorLine = 1
	s.Nav.EnterVisualMode()
	s.Nav.CursorLine = 3
	require.True(t, s.StartComment())
	require.NotNil(t, s.Editor)
	assert.True(t, s.Editor.Position.IsMultiline())
	start, end := s.Editor.Position.LineRange()
	assert.LessOrEqual(t, start, end)
	assert.False(t, s.Nav.IsVisualMode())
}

func TestEscapePolicyOrder(t *testing.T) {
	s := openState(t)

	// 1. Editing a comment -> cancel editor.
	s.Nav.CursorLine = 3
	require.True(t, s.StartComment())
	s.ShowReviewPopup = true
	s.Nav.FileTreeFocused = false
	assert.Equal(t, EscapeCancelledEditor, s.HandleEscape())
	assert.Nil(t, s.Editor)

	// 2. Review popup visible -> hide it.
	assert.Equal(t, EscapeHidReviewPopup, s.HandleEscape())
	assert.False(t, s.ShowReviewPopup)

	// 3. Diff content focused -> focus file tree.
	assert.Equal(t, EscapeFocusFileTree, s.HandleEscape())
	assert.True(t, s.Nav.FileTreeFocused)

	// 4. Otherwise -> close.
	assert.Equal(t, EscapeClose, s.HandleEscape())
}

func TestRequestContextAboveAndInsert(t *testing.T) {
	s := openState(t)
	s.Nav.CursorLine = 1

	// Hunk starts at new line 1; nothing above to expand.
	_, ok := s.RequestContextAbove(10)
	assert.False(t, ok)

	// Move to the second file whose hunk starts at line 10.
	s.Nav.SelectFile(1, len(s.Diff.Files))
	event, ok := s.RequestContextAbove(5)
	require.True(t, ok)
	assert.Equal(t, "src/lib.rs", event.FilePath)
	assert.Equal(t, "head-sha", event.CommitSHA)
	assert.Equal(t, ExpandUp, event.Direction)
	assert.Equal(t, 5, event.FromLine)
	assert.Equal(t, 5, event.Count)

	before := len(s.Diff.Files[1].Hunks[0].Lines)
	s.InsertExpandedLines("src/lib.rs", ExpandUp, 5, []string{"l5", "l6", "l7", "l8", "l9"})
	hunk := &s.Diff.Files[1].Hunks[0]
	assert.Len(t, hunk.Lines, before+5)
	assert.True(t, hunk.Lines[0].IsExpanded)
	require.NotNil(t, hunk.Lines[0].NewLine)
	assert.Equal(t, 5, *hunk.Lines[0].NewLine)
	assert.Equal(t, 5, hunk.NewStart)
	assert.Equal(t, 11, hunk.NewCount)
	assert.Contains(t, hunk.Header, "impl Foo")
}

func TestRequestContextBelowAndInsert(t *testing.T) {
	s := openState(t)
	event, ok := s.RequestContextBelow(3)
	require.True(t, ok)
	assert.Equal(t, ExpandDown, event.Direction)
	assert.Equal(t, 7, event.FromLine) // NewStart 1 + NewCount 6

	hunk := &s.Diff.Files[0].Hunks[0]
	before := len(hunk.Lines)
	s.InsertExpandedLines("src/main.rs", ExpandDown, 7, []string{"a", "b", "c"})
	assert.Len(t, hunk.Lines, before+3)
	last := hunk.Lines[len(hunk.Lines)-1]
	assert.True(t, last.IsExpanded)
	require.NotNil(t, last.NewLine)
	assert.Equal(t, 9, *last.NewLine)
	assert.Equal(t, 9, hunk.NewCount)
}

func TestCloseDropsTree(t *testing.T) {
	s := openState(t)
	s.PendingComments = append(s.PendingComments,
		NewPendingComment("src/main.rs", SinglePosition(SideRight, 3), "x"))
	s.Close()
	assert.False(t, s.IsOpen())
	assert.Empty(t, s.PendingComments)
}
