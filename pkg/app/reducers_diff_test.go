package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sassman/gh-pr-lander/pkg/diffview"
)

const appSampleDiff = `--- a/pkg/server/server.go
+++ b/pkg/server/server.go
@@ -1,5 +1,6 @@ func Serve()
 func Serve() {
     listen()
+    accept()
 }
`

// openTestDiff loads a small parsed diff into the state's viewer.
func openTestDiff(t *testing.T, state *AppState) {
	t.Helper()
	parsed, err := diffview.ParseUnifiedDiff(appSampleDiff, "base", "head")
	require.NoError(t, err)
	*state = Reduce(*state, DiffLoaded{Number: 1, Diff: parsed})
}

func TestDiffLoadedOpensViewer(t *testing.T) {
	state := testState()
	openTestDiff(t, &state)
	assert.True(t, state.DiffViewer.IsOpen())
	assert.Equal(t, 1, state.DiffViewer.PRNumber)
}

func TestDiffCursorMoveClamped(t *testing.T) {
	state := testState()
	openTestDiff(t, &state)

	state = Reduce(state, DiffCursorMove{Delta: 100})
	rows := len(state.DiffViewer.DisplayLines())
	assert.Equal(t, rows-1, state.DiffViewer.Nav.CursorLine)

	state = Reduce(state, DiffCursorMove{Delta: -100})
	assert.Equal(t, 0, state.DiffViewer.Nav.CursorLine)
}

func TestDiffVisualSelectionThroughActions(t *testing.T) {
	state := testState()
	openTestDiff(t, &state)
	state = Reduce(state, DiffCursorMove{Delta: 1})
	state = Reduce(state, DiffToggleVisual{})
	state = Reduce(state, DiffCursorMove{Delta: 2})

	start, end, ok := state.DiffViewer.Nav.VisualSelection()
	require.True(t, ok)
	assert.Equal(t, 1, start)
	assert.Equal(t, 3, end)

	state = Reduce(state, DiffToggleVisual{})
	_, _, ok = state.DiffViewer.Nav.VisualSelection()
	assert.False(t, ok)
}

func TestDiffCommentCommitThroughMiddleware(t *testing.T) {
	dispatcher, drain := newTestDispatcher()
	m := NewDiffViewerMiddleware()
	state := testState()
	state.ViewStack = []ViewID{ViewDiffViewer}
	openTestDiff(t, &state)
	state.DiffViewer.Nav.FileTreeFocused = false
	state = Reduce(state, DiffCursorMove{Delta: 3})
	state = Reduce(state, DiffStartComment{})
	require.NotNil(t, state.DiffViewer.Editor)

	state.DiffViewer.Editor.InsertString("looks wrong")
	consumed := !m.Handle(DiffEditorCommit{}, &state, dispatcher)
	assert.True(t, consumed)

	actions := drain()
	require.NotEmpty(t, actions)
	event, ok := actions[0].(DiffCommentEvent)
	require.True(t, ok)
	added, ok := event.Event.(diffview.CommentAddedEvent)
	require.True(t, ok)
	assert.Equal(t, "looks wrong", added.Comment.Body)
	assert.Equal(t, "pkg/server/server.go", added.Comment.Path)

	// Folding the event back and cancelling leaves one pending comment.
	state = Reduce(state, event)
	state = Reduce(state, DiffEditorCancel{})
	assert.Len(t, state.DiffViewer.PendingComments, 1)
	assert.Nil(t, state.DiffViewer.Editor)
}

func TestDiffCommitEmptyBodySilentlyCloses(t *testing.T) {
	dispatcher, drain := newTestDispatcher()
	m := NewDiffViewerMiddleware()
	state := testState()
	state.ViewStack = []ViewID{ViewDiffViewer}
	openTestDiff(t, &state)
	state = Reduce(state, DiffCursorMove{Delta: 3})
	state = Reduce(state, DiffStartComment{})
	require.NotNil(t, state.DiffViewer.Editor)

	m.Handle(DiffEditorCommit{}, &state, dispatcher)
	actions := drain()
	require.Len(t, actions, 1)
	assert.IsType(t, DiffEditorCancel{}, actions[0])
}

func TestDiffEscapePolicyThroughClose(t *testing.T) {
	dispatcher, drain := newTestDispatcher()
	m := NewDiffViewerMiddleware()
	state := testState()
	state.ViewStack = []ViewID{ViewMain, ViewDiffViewer}
	openTestDiff(t, &state)
	state.DiffViewer.Nav.FileTreeFocused = false

	// Content focused: Close converts to an in-view escape.
	consumed := !m.Handle(GlobalClose{}, &state, dispatcher)
	assert.True(t, consumed)
	actions := drain()
	require.Len(t, actions, 1)
	assert.IsType(t, DiffEscape{}, actions[0])

	state = Reduce(state, actions[0])
	assert.True(t, state.DiffViewer.Nav.FileTreeFocused)

	// Tree focused, nothing else open: Close passes through to the reducer.
	assert.True(t, m.Handle(GlobalClose{}, &state, dispatcher))
}

func TestDiffEscapeOrder(t *testing.T) {
	state := testState()
	openTestDiff(t, &state)
	state.DiffViewer.Nav.FileTreeFocused = false
	state = Reduce(state, DiffCursorMove{Delta: 3})
	state = Reduce(state, DiffStartComment{})
	state.DiffViewer.ShowReviewPopup = true

	// Editor first.
	state = Reduce(state, DiffEscape{})
	assert.Nil(t, state.DiffViewer.Editor)
	assert.True(t, state.DiffViewer.ShowReviewPopup)

	// Review popup second.
	state = Reduce(state, DiffEscape{})
	assert.False(t, state.DiffViewer.ShowReviewPopup)
	assert.False(t, state.DiffViewer.Nav.FileTreeFocused)

	// Focus third.
	state = Reduce(state, DiffEscape{})
	assert.True(t, state.DiffViewer.Nav.FileTreeFocused)
}

func TestDiffContextInsertion(t *testing.T) {
	state := testState()
	openTestDiff(t, &state)
	hunk := &state.DiffViewer.Diff.Files[0].Hunks[0]
	before := len(hunk.Lines)

	state = Reduce(state, DiffContextInserted{
		Path:      "pkg/server/server.go",
		Direction: diffview.ExpandDown,
		FromLine:  7,
		Lines:     []string{"tail1", "tail2"},
	})
	hunk = &state.DiffViewer.Diff.Files[0].Hunks[0]
	assert.Len(t, hunk.Lines, before+2)
	assert.True(t, hunk.Lines[len(hunk.Lines)-1].IsExpanded)
}

func TestDiffReviewSubmittedClearsPending(t *testing.T) {
	state := testState()
	openTestDiff(t, &state)
	state.DiffViewer.PendingComments = append(state.DiffViewer.PendingComments,
		diffview.NewPendingComment("pkg/server/server.go",
			diffview.SinglePosition(diffview.SideRight, 3), "x"))

	state = Reduce(state, DiffReviewSubmitted{Number: 1})
	assert.Empty(t, state.DiffViewer.PendingComments)
}
