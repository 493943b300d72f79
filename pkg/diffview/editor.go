package diffview

import (
	"strings"
	"unicode/utf8"
)

// CommentEditor edits a comment body with a byte-offset cursor over UTF-8
// text. Every operation keeps the cursor on a character boundary within
// [0, len(Body)].
type CommentEditor struct {
	// Position is where the comment anchors in the diff.
	Position CommentPosition
	// FilePath the comment belongs to.
	FilePath string
	// Body is the comment text being edited.
	Body string
	// Cursor is a byte offset into Body, always on a rune boundary.
	Cursor int
	// EditingIndex is set when editing an existing pending comment.
	EditingIndex *int
	// RemoteID is set when editing an already-posted comment.
	RemoteID *int64
}

// NewCommentEditor opens an empty editor for a single line.
func NewCommentEditor(filePath string, side DiffSide, line int) *CommentEditor {
	return &CommentEditor{
		Position: SinglePosition(side, line),
		FilePath: filePath,
	}
}

// NewRangeCommentEditor opens an empty editor for a multiline comment.
func NewRangeCommentEditor(filePath string, side DiffSide, start, end int) *CommentEditor {
	return &CommentEditor{
		Position: RangePosition(side, start, end),
		FilePath: filePath,
	}
}

// EditExisting opens an editor prefilled with an existing comment's body,
// cursor at the end.
func EditExisting(filePath string, position CommentPosition, body string, index int, remoteID *int64) *CommentEditor {
	return &CommentEditor{
		Position:     position,
		FilePath:     filePath,
		Body:         body,
		Cursor:       len(body),
		EditingIndex: intPtr(index),
		RemoteID:     remoteID,
	}
}

// InsertChar inserts c at the cursor and advances by its UTF-8 width.
func (e *CommentEditor) InsertChar(c rune) {
	e.Body = e.Body[:e.Cursor] + string(c) + e.Body[e.Cursor:]
	e.Cursor += utf8.RuneLen(c)
}

// InsertString inserts s at the cursor.
func (e *CommentEditor) InsertString(s string) {
	e.Body = e.Body[:e.Cursor] + s + e.Body[e.Cursor:]
	e.Cursor += len(s)
}

// InsertNewline inserts a line break at the cursor.
func (e *CommentEditor) InsertNewline() {
	e.InsertChar('\n')
}

// DeleteCharBefore removes the character before the cursor (backspace).
// A no-op at position 0.
func (e *CommentEditor) DeleteCharBefore() {
	if e.Cursor == 0 {
		return
	}
	_, size := utf8.DecodeLastRuneInString(e.Body[:e.Cursor])
	start := e.Cursor - size
	e.Body = e.Body[:start] + e.Body[e.Cursor:]
	e.Cursor = start
}

// DeleteCharAt removes the character at the cursor (delete key).
// A no-op at the end of the body.
func (e *CommentEditor) DeleteCharAt() {
	if e.Cursor >= len(e.Body) {
		return
	}
	_, size := utf8.DecodeRuneInString(e.Body[e.Cursor:])
	e.Body = e.Body[:e.Cursor] + e.Body[e.Cursor+size:]
}

// CursorLeft moves left by one character. A no-op at position 0.
func (e *CommentEditor) CursorLeft() {
	if e.Cursor == 0 {
		return
	}
	_, size := utf8.DecodeLastRuneInString(e.Body[:e.Cursor])
	e.Cursor -= size
}

// CursorRight moves right by one character. A no-op at the end.
func (e *CommentEditor) CursorRight() {
	if e.Cursor >= len(e.Body) {
		return
	}
	_, size := utf8.DecodeRuneInString(e.Body[e.Cursor:])
	e.Cursor += size
}

// CursorHome moves to the start of the current line.
func (e *CommentEditor) CursorHome() {
	if i := strings.LastIndexByte(e.Body[:e.Cursor], '\n'); i >= 0 {
		e.Cursor = i + 1
	} else {
		e.Cursor = 0
	}
}

// CursorEnd moves to the end of the current line.
func (e *CommentEditor) CursorEnd() {
	if i := strings.IndexByte(e.Body[e.Cursor:], '\n'); i >= 0 {
		e.Cursor += i
	} else {
		e.Cursor = len(e.Body)
	}
}

// Clear empties the editor.
func (e *CommentEditor) Clear() {
	e.Body = ""
	e.Cursor = 0
}

// IsEmpty reports whether the body is blank after trimming whitespace.
func (e *CommentEditor) IsEmpty() bool {
	return strings.TrimSpace(e.Body) == ""
}

// LineCount returns the number of lines in the body, at least 1.
func (e *CommentEditor) LineCount() int {
	n := strings.Count(e.Body, "\n")
	if len(e.Body) > 0 && !strings.HasSuffix(e.Body, "\n") {
		n++
	}
	if n < 1 {
		return 1
	}
	return n
}

// CurrentLine returns the 0-based line the cursor is on.
func (e *CommentEditor) CurrentLine() int {
	return strings.Count(e.Body[:e.Cursor], "\n")
}

// CurrentColumn returns the cursor's byte column on the current line.
func (e *CommentEditor) CurrentColumn() int {
	lineStart := 0
	if i := strings.LastIndexByte(e.Body[:e.Cursor], '\n'); i >= 0 {
		lineStart = i + 1
	}
	return e.Cursor - lineStart
}
