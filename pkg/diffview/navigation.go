package diffview

// SelectionModeKind distinguishes normal navigation from visual selection.
type SelectionModeKind int

const (
	SelectionNormal SelectionModeKind = iota
	SelectionVisual
)

// SelectionMode is the current line-selection mode. In visual mode the
// selection is the inclusive range between the anchor and the cursor.
type SelectionMode struct {
	Kind SelectionModeKind
	// AnchorLine is the display line where visual selection started.
	AnchorLine int
	// Side of the diff the selection applies to.
	Side DiffSide
}

// NavigationState tracks cursor, scroll, and selection within the viewer.
// CursorLine is a display index into the rendered line list, not a source
// line number. FileTreeCursor is independent of CursorLine.
type NavigationState struct {
	SelectedFile    int
	CursorLine      int
	FileTreeCursor  int
	ScrollOffset    int
	Selection       SelectionMode
	FileTreeFocused bool
	ShowFileTree    bool
}

// NewNavigationState starts focused on the file tree with it visible.
func NewNavigationState() NavigationState {
	return NavigationState{
		FileTreeFocused: true,
		ShowFileTree:    true,
	}
}

// CursorDown moves the cursor down one line, sticky at the bottom.
func (n *NavigationState) CursorDown(maxLines int) {
	if n.CursorLine+1 < maxLines {
		n.CursorLine++
	}
}

// CursorUp moves the cursor up one line, sticky at the top.
func (n *NavigationState) CursorUp() {
	if n.CursorLine > 0 {
		n.CursorLine--
	}
}

// CursorFirst jumps to the first line.
func (n *NavigationState) CursorFirst() {
	n.CursorLine = 0
	n.ScrollOffset = 0
}

// CursorLast jumps to the last line.
func (n *NavigationState) CursorLast(maxLines int) {
	if maxLines > 0 {
		n.CursorLine = maxLines - 1
	} else {
		n.CursorLine = 0
	}
}

// NextFile advances the selected file, resetting cursor and scroll.
func (n *NavigationState) NextFile(fileCount int) {
	if n.SelectedFile+1 < fileCount {
		n.SelectedFile++
		n.CursorLine = 0
		n.ScrollOffset = 0
	}
}

// PrevFile selects the previous file, resetting cursor and scroll.
func (n *NavigationState) PrevFile() {
	if n.SelectedFile > 0 {
		n.SelectedFile--
		n.CursorLine = 0
		n.ScrollOffset = 0
	}
}

// SelectFile selects a file by index; out-of-range indices are ignored.
func (n *NavigationState) SelectFile(index, fileCount int) {
	if index >= 0 && index < fileCount {
		n.SelectedFile = index
		n.CursorLine = 0
		n.ScrollOffset = 0
	}
}

// ToggleFocus switches focus between the file tree and the diff content.
func (n *NavigationState) ToggleFocus() {
	n.FileTreeFocused = !n.FileTreeFocused
}

// ToggleFileTree shows or hides the file tree pane.
func (n *NavigationState) ToggleFileTree() {
	n.ShowFileTree = !n.ShowFileTree
	if !n.ShowFileTree {
		n.FileTreeFocused = false
	}
}

// EnterVisualMode anchors a visual selection at the cursor.
func (n *NavigationState) EnterVisualMode() {
	n.Selection = SelectionMode{
		Kind:       SelectionVisual,
		AnchorLine: n.CursorLine,
		Side:       SideRight,
	}
}

// ExitVisualMode returns to normal mode.
func (n *NavigationState) ExitVisualMode() {
	n.Selection = SelectionMode{}
}

// IsVisualMode reports whether a visual selection is active.
func (n *NavigationState) IsVisualMode() bool {
	return n.Selection.Kind == SelectionVisual
}

// VisualSelection returns the inclusive (start, end) display-line range of
// the active visual selection, with start <= end.
func (n *NavigationState) VisualSelection() (start, end int, ok bool) {
	if n.Selection.Kind != SelectionVisual {
		return 0, 0, false
	}
	start, end = n.Selection.AnchorLine, n.CursorLine
	if start > end {
		start, end = end, start
	}
	return start, end, true
}

// EnsureCursorVisible adjusts ScrollOffset so the cursor lies within
// [ScrollOffset, ScrollOffset+visibleHeight).
func (n *NavigationState) EnsureCursorVisible(visibleHeight int) {
	if visibleHeight <= 0 {
		return
	}
	if n.CursorLine < n.ScrollOffset {
		n.ScrollOffset = n.CursorLine
	} else if n.CursorLine >= n.ScrollOffset+visibleHeight {
		n.ScrollOffset = n.CursorLine - visibleHeight + 1
	}
}

// ScrollHalfDown moves the cursor half a page down, then re-ensures
// visibility.
func (n *NavigationState) ScrollHalfDown(visibleHeight, maxLines int) {
	n.CursorLine = min(n.CursorLine+visibleHeight/2, max(maxLines-1, 0))
	n.EnsureCursorVisible(visibleHeight)
}

// ScrollHalfUp moves the cursor half a page up.
func (n *NavigationState) ScrollHalfUp(visibleHeight int) {
	n.CursorLine = max(n.CursorLine-visibleHeight/2, 0)
	n.EnsureCursorVisible(visibleHeight)
}

// ScrollPageDown moves the cursor a full page down.
func (n *NavigationState) ScrollPageDown(visibleHeight, maxLines int) {
	n.CursorLine = min(n.CursorLine+visibleHeight, max(maxLines-1, 0))
	n.EnsureCursorVisible(visibleHeight)
}

// ScrollPageUp moves the cursor a full page up.
func (n *NavigationState) ScrollPageUp(visibleHeight int) {
	n.CursorLine = max(n.CursorLine-visibleHeight, 0)
	n.EnsureCursorVisible(visibleHeight)
}
