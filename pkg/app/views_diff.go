package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sassman/gh-pr-lander/pkg/diffview"
	"github.com/sassman/gh-pr-lander/pkg/stringutil"
	"github.com/sassman/gh-pr-lander/pkg/styles"
)

// diffViewerView is the full-screen split diff with file tree, comment
// editor, and review popup.
type diffViewerView struct {
	baseView
}

func (diffViewerView) ID() ViewID {
	return ViewDiffViewer
}

func (diffViewerView) Capabilities(s *AppState) Capabilities {
	caps := CapItemNavigation | CapVimNavigationBindings | CapVimScrollBindings |
		CapScrollVertical
	if s.DiffViewer.Editor != nil {
		caps |= CapTextInput
	}
	return caps
}

func (v diffViewerView) TranslateNavigation(op NavigateOp, s *AppState) Action {
	if s.DiffViewer.Editor != nil {
		// Editor owns the cursor while open.
		switch op {
		case NavNext, NavPrevious:
			return nil
		}
	}
	if s.DiffViewer.ShowReviewPopup {
		switch op {
		case NavNext:
			return DiffReviewCursorMove{Delta: 1}
		case NavPrevious:
			return DiffReviewCursorMove{Delta: -1}
		}
		return nil
	}
	if s.DiffViewer.Nav.FileTreeFocused {
		switch op {
		case NavNext:
			return DiffFileMove{Delta: 1}
		case NavPrevious:
			return DiffFileMove{Delta: -1}
		case NavRight:
			return DiffToggleFocus{}
		}
		return nil
	}
	switch op {
	case NavNext:
		return DiffCursorMove{Delta: 1}
	case NavPrevious:
		return DiffCursorMove{Delta: -1}
	case NavLeft:
		return DiffToggleFocus{}
	case NavTop:
		return DiffCursorTop{}
	case NavBottom:
		return DiffCursorBottom{}
	case NavHalfPageDown:
		return DiffHalfPage{Delta: 1}
	case NavHalfPageUp:
		return DiffHalfPage{Delta: -1}
	}
	return nil
}

func (diffViewerView) TranslateTextInput(input TextInput, s *AppState) Action {
	if s.DiffViewer.Editor == nil {
		return nil
	}
	switch input.Op {
	case InputChar, InputBackspace, InputDelete, InputNewline,
		InputCursorLeft, InputCursorRight, InputHome, InputEnd, InputClearLine:
		return DiffEditorInput{Op: input.Op, Char: input.Char}
	case InputConfirm:
		return DiffEditorCommit{}
	case InputEscape:
		return DiffEscape{}
	}
	return nil
}

func (diffViewerView) TranslateContext(op ContextOp, s *AppState) Action {
	switch op {
	case CtxConfirm:
		if s.DiffViewer.ShowReviewPopup {
			return DiffSubmitReview{Event: ReviewEventAt(s.DiffViewer.ReviewCursor)}
		}
		if s.DiffViewer.Nav.FileTreeFocused {
			return DiffToggleFocus{}
		}
	case CtxStartComment:
		return DiffStartComment{}
	case CtxToggleVisual:
		return DiffToggleVisual{}
	}
	return nil
}

func (diffViewerView) AcceptsAction(action Action, _ *AppState) bool {
	switch action.(type) {
	case Navigate,
		DiffCursorMove, DiffCursorTop, DiffCursorBottom, DiffHalfPage,
		DiffFileMove, DiffToggleFocus, DiffToggleFileTree, DiffToggleVisual,
		DiffStartComment, DiffShowReviewPopup, DiffReviewCursorMove,
		DiffExpandContext, DiffEscape,
		GlobalClose, GlobalQuit, GlobalPushView:
		return true
	}
	return false
}

func (diffViewerView) Render(s *AppState, width, height int) string {
	contentHeight := max(4, height-3)
	vm := NewDiffViewModel(s, contentHeight)

	treeWidth := 0
	if vm.ShowFileTree {
		treeWidth = min(36, width/3)
	}
	contentWidth := width - treeWidth

	var tree string
	if vm.ShowFileTree {
		tree = renderFileTree(vm, treeWidth, contentHeight)
	}
	content := renderDiffContent(vm, contentWidth, contentHeight)

	var body string
	if vm.ShowFileTree {
		body = lipgloss.JoinHorizontal(lipgloss.Top, tree, content)
	} else {
		body = content
	}

	header := styles.Title.Render(vm.Title) + "  " +
		styles.Muted.Render(vm.Stats)
	if vm.PendingComments > 0 {
		header += "  " + styles.Warning.Render(fmt.Sprintf("💬 %d pending", vm.PendingComments))
	}

	frame := header + "\n" + body
	frame = lipgloss.Place(width, height-1, lipgloss.Left, lipgloss.Top, frame)
	frame = frame + "\n" + renderStatusBar(s, width)

	if vm.Editor != nil {
		frame = CompositeCentered(DimFrame(frame), renderEditor(vm.Editor, width), width, height)
	} else if vm.ReviewPopup != nil {
		frame = CompositeCentered(DimFrame(frame), renderReviewPopup(vm.ReviewPopup), width, height)
	}
	return frame
}

func renderFileTree(vm DiffViewModel, width, height int) string {
	var b strings.Builder
	b.WriteString(styles.TableHeader.Render(stringutil.PadRight("Files", width)))
	b.WriteString("\n")
	for i, row := range vm.FileTree {
		if i >= height-1 {
			break
		}
		marker := " "
		if row.Selected {
			marker = "▸"
		}
		line := fmt.Sprintf("%s %s %s",
			marker,
			stringutil.Truncate(row.Path, max(8, width-12)),
			styles.Muted.Render(fmt.Sprintf("+%d −%d", row.Additions, row.Deletions)))
		line = stringutil.PadRight(line, width)
		if row.IsCursor && vm.FileTreeFocused {
			line = styles.SelectedRow.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		BorderStyle(styles.NormalBorder).
		BorderRight(true).
		BorderForeground(styles.ColorBorder).
		Render(strings.TrimRight(b.String(), "\n"))
}

func renderDiffContent(vm DiffViewModel, width, height int) string {
	var b strings.Builder
	for _, row := range vm.Rows {
		b.WriteString(renderDiffRow(row, width))
		b.WriteString("\n")
	}
	if len(vm.Rows) == 0 {
		b.WriteString(styles.Muted.Render("no diff loaded"))
	}
	return lipgloss.Place(width, height, lipgloss.Left, lipgloss.Top,
		strings.TrimRight(b.String(), "\n"))
}

func renderDiffRow(row DiffRowViewModel, width int) string {
	if row.IsHunkHeader {
		return styles.DiffHunkHeader.Render(stringutil.Truncate(row.Text, width))
	}
	gutter := styles.LineNumber.Render(row.OldLine + " " + row.NewLine + " ")
	marker := row.Marker
	var markerStyled string
	switch row.Kind {
	case diffview.LineAddition:
		markerStyled = styles.DiffAddition.Render(marker)
	case diffview.LineDeletion:
		markerStyled = styles.DiffDeletion.Render(marker)
	default:
		markerStyled = marker
	}

	bodyWidth := max(8, width-13)
	var body string
	switch {
	case row.IsExpanded:
		body = styles.DiffExpanded.Render(stringutil.Truncate(row.Text, bodyWidth))
	case row.Kind == diffview.LineDeletion:
		body = styles.DiffDeletion.Render(stringutil.Truncate(row.Text, bodyWidth))
	case len(row.Spans) > 0:
		body = renderHighlightSpans(row.Spans, bodyWidth)
	default:
		body = stringutil.Truncate(row.Text, bodyWidth)
	}

	suffix := ""
	if row.CommentCount > 0 {
		suffix = styles.Warning.Render(fmt.Sprintf(" 💬%d", row.CommentCount))
	}

	line := gutter + markerStyled + " " + body + suffix
	if row.IsCursor || row.InSelection {
		return styles.SelectedRow.Render(line)
	}
	return line
}

func renderHighlightSpans(spans []diffview.HighlightedSpan, maxWidth int) string {
	var b strings.Builder
	written := 0
	for _, span := range spans {
		text := stringutil.Truncate(span.Text, max(0, maxWidth-written))
		if text == "" {
			continue
		}
		style := lipgloss.NewStyle().Bold(span.Bold).Italic(span.Italic)
		if span.Color != "" {
			style = style.Foreground(lipgloss.Color(span.Color))
		}
		b.WriteString(style.Render(text))
		written += len(text)
		if written >= maxWidth {
			break
		}
	}
	return b.String()
}

func renderEditor(editor *EditorViewModel, width int) string {
	title := "New Comment"
	if editor.Editing {
		title = "Edit Comment"
	}
	header := styles.Title.Render(title) + " " +
		styles.Muted.Render(fmt.Sprintf("%s %s", editor.FilePath, editor.LineInfo))

	// Show the cursor as a block at its byte offset.
	body := editor.Body[:editor.CursorPos] + "█" + editor.Body[editor.CursorPos:]
	innerWidth := min(70, width-8)
	var lines []string
	for _, line := range strings.Split(body, "\n") {
		lines = append(lines, stringutil.PadRight(line, innerWidth))
	}
	help := styles.Muted.Render("Enter: save • Ctrl+J: newline • Esc: cancel")
	return styles.PopupBorder.Render(header + "\n\n" + strings.Join(lines, "\n") + "\n\n" + help)
}

func renderReviewPopup(popup *ReviewPopupViewModel) string {
	var b strings.Builder
	b.WriteString(styles.Title.Render("Submit Review"))
	b.WriteString("\n\n")
	for i, choice := range popup.Choices {
		if i == popup.Cursor {
			b.WriteString(styles.SelectedRow.Render("▸ " + choice))
		} else {
			b.WriteString("  " + choice)
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(styles.Muted.Render("Enter: submit • Esc: cancel"))
	return styles.PopupBorder.Render(strings.TrimRight(b.String(), "\n"))
}
