package app

// diffContentHeight approximates the content viewport for scroll math; the
// renderer passes the real height each frame, so this only shapes paging.
const diffContentHeight = 30

func reduceDiffViewer(state AppState, action Action) AppState {
	d := state.DiffViewer
	switch a := action.(type) {
	case DiffLoaded:
		d.Open(a.Number, a.Diff)

	case DiffCursorMove:
		rows := len(d.DisplayLines())
		if a.Delta > 0 {
			for i := 0; i < a.Delta; i++ {
				d.Nav.CursorDown(rows)
			}
		} else {
			for i := 0; i < -a.Delta; i++ {
				d.Nav.CursorUp()
			}
		}
		d.Nav.EnsureCursorVisible(diffContentHeight)

	case DiffCursorTop:
		d.Nav.CursorFirst()

	case DiffCursorBottom:
		d.Nav.CursorLast(len(d.DisplayLines()))
		d.Nav.EnsureCursorVisible(diffContentHeight)

	case DiffHalfPage:
		if a.Delta > 0 {
			d.Nav.ScrollHalfDown(diffContentHeight, len(d.DisplayLines()))
		} else {
			d.Nav.ScrollHalfUp(diffContentHeight)
		}

	case DiffFileMove:
		fileCount := 0
		if d.Diff != nil {
			fileCount = len(d.Diff.Files)
		}
		cursor := d.Nav.FileTreeCursor + a.Delta
		if cursor < 0 {
			cursor = 0
		}
		if cursor >= fileCount && fileCount > 0 {
			cursor = fileCount - 1
		}
		d.Nav.FileTreeCursor = cursor
		d.Nav.SelectFile(cursor, fileCount)

	case DiffToggleFocus:
		d.Nav.ToggleFocus()

	case DiffToggleFileTree:
		d.Nav.ToggleFileTree()

	case DiffToggleVisual:
		if d.Nav.IsVisualMode() {
			d.Nav.ExitVisualMode()
		} else {
			d.Nav.EnterVisualMode()
		}

	case DiffStartComment:
		d.StartComment()

	case DiffEditorInput:
		if d.Editor == nil {
			break
		}
		switch a.Op {
		case InputChar:
			d.Editor.InsertChar(a.Char)
		case InputBackspace:
			d.Editor.DeleteCharBefore()
		case InputDelete:
			d.Editor.DeleteCharAt()
		case InputNewline:
			d.Editor.InsertNewline()
		case InputCursorLeft:
			d.Editor.CursorLeft()
		case InputCursorRight:
			d.Editor.CursorRight()
		case InputHome:
			d.Editor.CursorHome()
		case InputEnd:
			d.Editor.CursorEnd()
		case InputClearLine:
			d.Editor.Clear()
		}

	case DiffEditorCancel:
		d.CancelEditor()

	case DiffCommentEvent:
		d.ApplyCommentEvent(a.Event)

	case DiffContextInserted:
		d.InsertExpandedLines(a.Path, a.Direction, a.FromLine, a.Lines)

	case DiffShowReviewPopup:
		d.ShowReviewPopup = true
		d.ReviewCursor = 0

	case DiffReviewCursorMove:
		d.ReviewCursor += a.Delta
		if d.ReviewCursor < 0 {
			d.ReviewCursor = 0
		}
		if d.ReviewCursor > 2 {
			d.ReviewCursor = 2
		}

	case DiffSubmitReview:
		d.ShowReviewPopup = false

	case DiffReviewSubmitted:
		d.PendingComments = nil

	case DiffEscape:
		// The middleware already routed escapes that close the view; here
		// only the in-view effects remain.
		switch {
		case d.Editor != nil:
			d.CancelEditor()
		case d.ShowReviewPopup:
			d.ShowReviewPopup = false
		case !d.Nav.FileTreeFocused:
			d.Nav.FileTreeFocused = true
		}
	}

	return state
}
