package app

import (
	"github.com/sassman/gh-pr-lander/pkg/diffview"
	"github.com/sassman/gh-pr-lander/pkg/logger"
)

var diffLog = logger.New("app:diffviewer")

// DiffViewerMiddleware owns the viewer's impure edges: the escape policy
// (evaluated pre-reducer), comment commits (uuid/timestamps stay out of the
// reducer), and deletions of remotely posted comments.
type DiffViewerMiddleware struct{}

// NewDiffViewerMiddleware builds the diff viewer effects handler.
func NewDiffViewerMiddleware() *DiffViewerMiddleware {
	return &DiffViewerMiddleware{}
}

func (m *DiffViewerMiddleware) Handle(action Action, state *AppState, dispatcher *Dispatcher) bool {
	d := state.DiffViewer

	switch action.(type) {
	case GlobalClose:
		// Escape policy: while the diff viewer is active, Close first
		// unwinds editor -> review popup -> content focus, and only then
		// closes the view.
		if state.ActiveView() != ViewDiffViewer {
			return true
		}
		if d.Editor != nil || d.ShowReviewPopup || !d.Nav.FileTreeFocused {
			dispatcher.Dispatch(DiffEscape{})
			return false
		}
		return true

	case DiffEditorCommit:
		m.commitEditor(state, dispatcher)
		return false

	case GlobalPushView:
		return true
	}
	return true
}

// commitEditor applies the comment lifecycle:
//   - non-empty body, new comment: CommentAdded
//   - non-empty body, editing: CommentEdited (local only; a posted comment
//     is not edited on GitHub)
//   - empty body, no remote id: silent close
//   - empty body, remote id: delete request
func (m *DiffViewerMiddleware) commitEditor(state *AppState, dispatcher *Dispatcher) {
	editor := state.DiffViewer.Editor
	if editor == nil {
		return
	}
	defer dispatcher.Dispatch(DiffEditorCancel{})

	if editor.IsEmpty() {
		if editor.RemoteID != nil && editor.EditingIndex != nil {
			diffLog.Printf("Empty body on posted comment %d, requesting delete", *editor.RemoteID)
			dispatcher.Dispatch(DiffCommentEvent{Event: diffview.CommentDeletedEvent{
				Index:    *editor.EditingIndex,
				RemoteID: editor.RemoteID,
			}})
		}
		return
	}

	if editor.EditingIndex != nil {
		dispatcher.Dispatch(DiffCommentEvent{Event: diffview.CommentEditedEvent{
			Index: *editor.EditingIndex,
			Body:  editor.Body,
		}})
		return
	}

	comment := diffview.NewPendingComment(editor.FilePath, editor.Position, editor.Body)
	dispatcher.Dispatch(DiffCommentEvent{Event: diffview.CommentAddedEvent{Comment: comment}})
	dispatcher.Dispatch(statusNow(StatusInfo, "Comment added to review", "DiffEditorCommit"))
}
