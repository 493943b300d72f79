package diffview

import "strings"

// DisplayLine is one row of the flattened diff content pane: either a hunk
// header or an actual diff line. CursorLine in NavigationState indexes this
// flattened list.
type DisplayLine struct {
	IsHunkHeader bool
	// HunkIndex into the selected file's hunks.
	HunkIndex int
	// LineIndex into the hunk's lines; -1 for headers.
	LineIndex int
	Text      string
	// Line points at the underlying diff line; nil for headers.
	Line *DiffLine
}

// EscapeResult says what the escape policy decided.
type EscapeResult int

const (
	// EscapeCancelledEditor closed the comment editor.
	EscapeCancelledEditor EscapeResult = iota
	// EscapeHidReviewPopup dismissed the review popup.
	EscapeHidReviewPopup
	// EscapeFocusFileTree moved focus from the content to the file tree.
	EscapeFocusFileTree
	// EscapeClose closes the whole viewer.
	EscapeClose
)

// State is the complete diff viewer state: the parsed diff, navigation,
// pending comments, the optional comment editor, and the review popup.
// The highlighter is owned here so its cache dies with the view.
type State struct {
	Diff            *PullRequestDiff
	Nav             NavigationState
	PendingComments []PendingComment
	Editor          *CommentEditor
	ShowReviewPopup bool
	// ReviewCursor indexes the review popup's event choice.
	ReviewCursor int
	// PRNumber the diff belongs to.
	PRNumber    int
	Highlighter *Highlighter
}

// NewState creates an empty viewer state.
func NewState() *State {
	return &State{
		Nav:         NewNavigationState(),
		Highlighter: NewHighlighter(),
	}
}

// Open loads a parsed diff for a PR, resetting navigation and comments.
func (s *State) Open(prNumber int, diff *PullRequestDiff) {
	s.Diff = diff
	s.PRNumber = prNumber
	s.Nav = NewNavigationState()
	s.PendingComments = nil
	s.Editor = nil
	s.ShowReviewPopup = false
	s.ReviewCursor = 0
}

// Close drops the diff tree and caches.
func (s *State) Close() {
	s.Diff = nil
	s.PendingComments = nil
	s.Editor = nil
	s.ShowReviewPopup = false
	s.Highlighter = NewHighlighter()
}

// IsOpen reports whether a diff is loaded.
func (s *State) IsOpen() bool {
	return s.Diff != nil
}

// SelectedFile returns the file under the file cursor, or nil.
func (s *State) SelectedFile() *FileDiff {
	if s.Diff == nil || len(s.Diff.Files) == 0 {
		return nil
	}
	idx := s.Nav.SelectedFile
	if idx >= len(s.Diff.Files) {
		idx = len(s.Diff.Files) - 1
	}
	return &s.Diff.Files[idx]
}

// DisplayLines flattens the selected file into renderable rows.
func (s *State) DisplayLines() []DisplayLine {
	file := s.SelectedFile()
	if file == nil {
		return nil
	}
	var rows []DisplayLine
	for hi := range file.Hunks {
		hunk := &file.Hunks[hi]
		rows = append(rows, DisplayLine{
			IsHunkHeader: true,
			HunkIndex:    hi,
			LineIndex:    -1,
			Text:         hunk.Header,
		})
		for li := range hunk.Lines {
			rows = append(rows, DisplayLine{
				HunkIndex: hi,
				LineIndex: li,
				Text:      hunk.Lines[li].Content,
				Line:      &hunk.Lines[li],
			})
		}
	}
	return rows
}

// CursorTarget resolves the display cursor to a commentable (side, line).
// Hunk headers and lines without a number on the resolved side return
// ok=false.
func (s *State) CursorTarget() (side DiffSide, line int, ok bool) {
	rows := s.DisplayLines()
	if s.Nav.CursorLine >= len(rows) {
		return 0, 0, false
	}
	row := rows[s.Nav.CursorLine]
	if row.Line == nil {
		return 0, 0, false
	}
	switch {
	case row.Line.Kind == LineDeletion && row.Line.OldLine != nil:
		return SideLeft, *row.Line.OldLine, true
	case row.Line.NewLine != nil:
		return SideRight, *row.Line.NewLine, true
	case row.Line.OldLine != nil:
		return SideLeft, *row.Line.OldLine, true
	}
	return 0, 0, false
}

// StartComment opens the editor at the cursor, or over the visual selection
// when one is active. Returns false when the cursor is not on a commentable
// line.
func (s *State) StartComment() bool {
	file := s.SelectedFile()
	if file == nil {
		return false
	}
	if start, end, ok := s.Nav.VisualSelection(); ok && start != end {
		startSide, startLine, okStart := s.targetAt(start)
		_, endLine, okEnd := s.targetAt(end)
		if !okStart || !okEnd {
			return false
		}
		if startLine > endLine {
			startLine, endLine = endLine, startLine
		}
		s.Editor = NewRangeCommentEditor(file.Path, startSide, startLine, endLine)
		s.Nav.ExitVisualMode()
		return true
	}
	side, line, ok := s.CursorTarget()
	if !ok {
		return false
	}
	s.Editor = NewCommentEditor(file.Path, side, line)
	return true
}

func (s *State) targetAt(displayLine int) (DiffSide, int, bool) {
	saved := s.Nav.CursorLine
	s.Nav.CursorLine = displayLine
	side, line, ok := s.CursorTarget()
	s.Nav.CursorLine = saved
	return side, line, ok
}

// EditCommentAt opens the editor prefilled with pending comment i.
func (s *State) EditCommentAt(i int) bool {
	if i < 0 || i >= len(s.PendingComments) {
		return false
	}
	c := s.PendingComments[i]
	s.Editor = EditExisting(c.Path, c.Position, c.Body, i, c.RemoteID)
	return true
}

// CommitEditor closes the editor and returns the resulting events:
//   - non-empty body, new comment: CommentAddedEvent
//   - non-empty body, editing: CommentEditedEvent
//   - empty body, no remote id: nothing (silent close)
//   - empty body, remote id present: CommentDeletedEvent (delete request)
func (s *State) CommitEditor() []DiffEvent {
	editor := s.Editor
	if editor == nil {
		return nil
	}
	s.Editor = nil

	if editor.IsEmpty() {
		if editor.RemoteID != nil && editor.EditingIndex != nil {
			return []DiffEvent{CommentDeletedEvent{
				Index:    *editor.EditingIndex,
				RemoteID: editor.RemoteID,
			}}
		}
		return nil
	}

	if editor.EditingIndex != nil {
		return []DiffEvent{CommentEditedEvent{
			Index: *editor.EditingIndex,
			Body:  editor.Body,
		}}
	}

	comment := NewPendingComment(editor.FilePath, editor.Position, editor.Body)
	return []DiffEvent{CommentAddedEvent{Comment: comment}}
}

// CancelEditor discards the editor without emitting anything.
func (s *State) CancelEditor() {
	s.Editor = nil
}

// ApplyCommentEvent folds comment events back into the pending list.
func (s *State) ApplyCommentEvent(event DiffEvent) {
	switch e := event.(type) {
	case CommentAddedEvent:
		s.PendingComments = append(s.PendingComments, e.Comment)
	case CommentEditedEvent:
		if e.Index >= 0 && e.Index < len(s.PendingComments) {
			s.PendingComments[e.Index].Body = e.Body
		}
	case CommentDeletedEvent:
		if e.Index >= 0 && e.Index < len(s.PendingComments) {
			s.PendingComments = append(
				s.PendingComments[:e.Index],
				s.PendingComments[e.Index+1:]...)
		}
	}
}

// CommentsForLine returns the pending comments anchored on (side, line) of
// the selected file.
func (s *State) CommentsForLine(side DiffSide, line int) []PendingComment {
	file := s.SelectedFile()
	if file == nil {
		return nil
	}
	var out []PendingComment
	for _, c := range s.PendingComments {
		if c.Path != file.Path || c.Position.Side != side {
			continue
		}
		start, end := c.Position.LineRange()
		if line >= start && line <= end {
			out = append(out, c)
		}
	}
	return out
}

// RequestContextAbove builds the expansion request for the hunk containing
// the cursor, growing upward by count lines.
func (s *State) RequestContextAbove(count int) (RequestContextEvent, bool) {
	file, hunk := s.cursorHunk()
	if file == nil || hunk == nil {
		return RequestContextEvent{}, false
	}
	from := hunk.NewStart - count
	if from < 1 {
		from = 1
		count = hunk.NewStart - 1
	}
	if count <= 0 {
		return RequestContextEvent{}, false
	}
	return RequestContextEvent{
		FilePath:  file.Path,
		CommitSHA: s.Diff.HeadSHA,
		Direction: ExpandUp,
		FromLine:  from,
		Count:     count,
	}, true
}

// RequestContextBelow builds the expansion request growing downward.
func (s *State) RequestContextBelow(count int) (RequestContextEvent, bool) {
	file, hunk := s.cursorHunk()
	if file == nil || hunk == nil {
		return RequestContextEvent{}, false
	}
	return RequestContextEvent{
		FilePath:  file.Path,
		CommitSHA: s.Diff.HeadSHA,
		Direction: ExpandDown,
		FromLine:  hunk.NewStart + hunk.NewCount,
		Count:     count,
	}, true
}

func (s *State) cursorHunk() (*FileDiff, *Hunk) {
	file := s.SelectedFile()
	if file == nil {
		return nil, nil
	}
	rows := s.DisplayLines()
	if len(rows) == 0 {
		return file, nil
	}
	idx := s.Nav.CursorLine
	if idx >= len(rows) {
		idx = len(rows) - 1
	}
	return file, &file.Hunks[rows[idx].HunkIndex]
}

// InsertExpandedLines splices fetched context lines into the hunk they abut.
// Lines are numbered starting at fromLine on the new side, with old-side
// numbers derived from the hunk's old/new delta. Inserted lines carry
// IsExpanded.
func (s *State) InsertExpandedLines(path string, direction ExpandDirection, fromLine int, lines []string) {
	if s.Diff == nil {
		return
	}
	file := s.Diff.FileByPath(path)
	if file == nil {
		return
	}

	for hi := range file.Hunks {
		hunk := &file.Hunks[hi]
		switch direction {
		case ExpandUp:
			if fromLine+len(lines) != hunk.NewStart {
				continue
			}
			delta := hunk.OldStart - hunk.NewStart
			inserted := make([]DiffLine, 0, len(lines))
			for i, content := range lines {
				newLine := fromLine + i
				inserted = append(inserted, DiffLine{
					Kind:       LineContext,
					Content:    content,
					OldLine:    intPtr(newLine + delta),
					NewLine:    intPtr(newLine),
					IsExpanded: true,
				})
			}
			hunk.Lines = append(inserted, hunk.Lines...)
			hunk.OldStart -= len(lines)
			hunk.NewStart -= len(lines)
			hunk.OldCount += len(lines)
			hunk.NewCount += len(lines)
			hunk.Header = hunk.formatHeader(sectionOf(hunk.Header))
			return
		case ExpandDown:
			if fromLine != hunk.NewStart+hunk.NewCount {
				continue
			}
			delta := hunk.OldStart - hunk.NewStart
			for i, content := range lines {
				newLine := fromLine + i
				hunk.Lines = append(hunk.Lines, DiffLine{
					Kind:       LineContext,
					Content:    content,
					OldLine:    intPtr(newLine + delta),
					NewLine:    intPtr(newLine),
					IsExpanded: true,
				})
			}
			hunk.OldCount += len(lines)
			hunk.NewCount += len(lines)
			hunk.Header = hunk.formatHeader(sectionOf(hunk.Header))
			return
		}
	}
}

// sectionOf recovers the function-context suffix from a canonical header.
func sectionOf(header string) string {
	if _, tail, found := strings.Cut(header, " @@ "); found {
		return tail
	}
	return ""
}

// HandleEscape applies the viewer's escape policy in priority order:
// cancel editor, hide review popup, move focus to the file tree, close.
func (s *State) HandleEscape() EscapeResult {
	switch {
	case s.Editor != nil:
		s.CancelEditor()
		return EscapeCancelledEditor
	case s.ShowReviewPopup:
		s.ShowReviewPopup = false
		return EscapeHidReviewPopup
	case !s.Nav.FileTreeFocused:
		s.Nav.FileTreeFocused = true
		return EscapeFocusFileTree
	default:
		return EscapeClose
	}
}
