package app

import (
	"fmt"

	"github.com/sassman/gh-pr-lander/pkg/diffview"
)

// FileTreeRowViewModel is one row of the diff file tree pane.
type FileTreeRowViewModel struct {
	Path      string
	Status    string
	Additions int
	Deletions int
	IsCursor  bool
	Selected  bool
}

// DiffRowViewModel is one row of the diff content pane.
type DiffRowViewModel struct {
	IsHunkHeader bool
	Kind         diffview.LineKind
	OldLine      string
	NewLine      string
	Marker       string
	Spans        []diffview.HighlightedSpan
	Text         string
	IsCursor     bool
	InSelection  bool
	IsExpanded   bool
	CommentCount int
}

// DiffViewModel is the prepared diff screen.
type DiffViewModel struct {
	Title           string
	FileTree        []FileTreeRowViewModel
	Rows            []DiffRowViewModel
	ShowFileTree    bool
	FileTreeFocused bool
	Editor          *EditorViewModel
	ReviewPopup     *ReviewPopupViewModel
	PendingComments int
	Stats           string
}

// EditorViewModel is the prepared comment editor popup.
type EditorViewModel struct {
	FilePath  string
	LineInfo  string
	Body      string
	CursorPos int
	LineCount int
	Editing   bool
}

// ReviewPopupViewModel is the prepared review submission popup.
type ReviewPopupViewModel struct {
	Choices []string
	Cursor  int
}

// reviewChoices are the popup's review events, in cursor order.
var reviewChoices = []diffview.ReviewEvent{
	diffview.ReviewApprove,
	diffview.ReviewComment,
	diffview.ReviewRequestChanges,
}

// ReviewEventAt maps the popup cursor to a review event.
func ReviewEventAt(cursor int) diffview.ReviewEvent {
	if cursor < 0 || cursor >= len(reviewChoices) {
		return diffview.ReviewComment
	}
	return reviewChoices[cursor]
}

// NewDiffViewModel prepares the diff screen for the viewport height.
func NewDiffViewModel(s *AppState, contentHeight int) DiffViewModel {
	d := s.DiffViewer
	vm := DiffViewModel{
		ShowFileTree:    d.Nav.ShowFileTree,
		FileTreeFocused: d.Nav.FileTreeFocused,
		PendingComments: len(d.PendingComments),
	}
	if d.Diff == nil {
		vm.Title = "Diff"
		return vm
	}
	vm.Title = fmt.Sprintf("Diff — PR #%d", d.PRNumber)
	vm.Stats = fmt.Sprintf("+%d −%d", d.Diff.TotalAdditions, d.Diff.TotalDeletions)

	for i, file := range d.Diff.Files {
		vm.FileTree = append(vm.FileTree, FileTreeRowViewModel{
			Path:      file.Path,
			Status:    file.Status.String(),
			Additions: file.Additions,
			Deletions: file.Deletions,
			IsCursor:  i == d.Nav.FileTreeCursor,
			Selected:  i == d.Nav.SelectedFile,
		})
	}

	file := d.SelectedFile()
	rows := d.DisplayLines()
	selStart, selEnd, hasSelection := d.Nav.VisualSelection()
	start := d.Nav.ScrollOffset
	if start > len(rows) {
		start = len(rows)
	}
	end := start + contentHeight
	if end > len(rows) {
		end = len(rows)
	}
	for i := start; i < end; i++ {
		row := rows[i]
		out := DiffRowViewModel{
			IsHunkHeader: row.IsHunkHeader,
			Text:         row.Text,
			IsCursor:     i == d.Nav.CursorLine,
			InSelection:  hasSelection && i >= selStart && i <= selEnd,
		}
		if row.Line != nil {
			out.Kind = row.Line.Kind
			out.IsExpanded = row.Line.IsExpanded
			if row.Line.OldLine != nil {
				out.OldLine = fmt.Sprintf("%4d", *row.Line.OldLine)
			} else {
				out.OldLine = "    "
			}
			if row.Line.NewLine != nil {
				out.NewLine = fmt.Sprintf("%4d", *row.Line.NewLine)
			} else {
				out.NewLine = "    "
			}
			switch row.Line.Kind {
			case diffview.LineAddition:
				out.Marker = "+"
			case diffview.LineDeletion:
				out.Marker = "-"
			default:
				out.Marker = " "
			}
			if file != nil && row.Line.Kind != diffview.LineDeletion {
				out.Spans = d.Highlighter.HighlightLine(file.Path, row.Line.Content)
			}
			if side, line, ok := targetOfLine(row.Line); ok {
				out.CommentCount = len(d.CommentsForLine(side, line))
			}
		}
		vm.Rows = append(vm.Rows, out)
	}

	if d.Editor != nil {
		start, end := d.Editor.Position.LineRange()
		lineInfo := fmt.Sprintf("line %d", end)
		if start != end {
			lineInfo = fmt.Sprintf("lines %d–%d", start, end)
		}
		vm.Editor = &EditorViewModel{
			FilePath:  d.Editor.FilePath,
			LineInfo:  lineInfo,
			Body:      d.Editor.Body,
			CursorPos: d.Editor.Cursor,
			LineCount: d.Editor.LineCount(),
			Editing:   d.Editor.EditingIndex != nil,
		}
	}
	if d.ShowReviewPopup {
		vm.ReviewPopup = &ReviewPopupViewModel{
			Choices: []string{"Approve", "Comment", "Request changes"},
			Cursor:  d.ReviewCursor,
		}
	}
	return vm
}

func targetOfLine(line *diffview.DiffLine) (diffview.DiffSide, int, bool) {
	switch {
	case line.Kind == diffview.LineDeletion && line.OldLine != nil:
		return diffview.SideLeft, *line.OldLine, true
	case line.NewLine != nil:
		return diffview.SideRight, *line.NewLine, true
	case line.OldLine != nil:
		return diffview.SideLeft, *line.OldLine, true
	}
	return 0, 0, false
}
