package diffview

import (
	"time"

	"github.com/google/uuid"
)

// DiffSide identifies which side of a split diff a comment anchors to.
type DiffSide int

const (
	// SideLeft is the old file (deletions side).
	SideLeft DiffSide = iota
	// SideRight is the new file (additions side).
	SideRight
)

// GitHubString returns the GitHub API representation of the side.
func (s DiffSide) GitHubString() string {
	if s == SideLeft {
		return "LEFT"
	}
	return "RIGHT"
}

// CommentPosition is where a comment is anchored in the diff.
type CommentPosition struct {
	Side DiffSide
	// Line is the 1-based line number in the respective file version.
	Line int
	// StartLine is set for multi-line comments; StartLine <= Line.
	StartLine *int
}

// SinglePosition anchors a comment to one line.
func SinglePosition(side DiffSide, line int) CommentPosition {
	return CommentPosition{Side: side, Line: line}
}

// RangePosition anchors a comment to an inclusive line range.
func RangePosition(side DiffSide, startLine, endLine int) CommentPosition {
	return CommentPosition{Side: side, Line: endLine, StartLine: intPtr(startLine)}
}

// IsMultiline reports whether the position spans more than one line.
func (p CommentPosition) IsMultiline() bool {
	return p.StartLine != nil
}

// LineRange returns the inclusive (start, end) range.
func (p CommentPosition) LineRange() (int, int) {
	if p.StartLine != nil {
		return *p.StartLine, p.Line
	}
	return p.Line, p.Line
}

// PendingComment is a review comment authored locally and held client-side
// until the review is submitted.
type PendingComment struct {
	// ID identifies the comment locally.
	ID uuid.UUID
	// RemoteID is the GitHub comment id once posted (enables delete/edit).
	RemoteID *int64
	Path     string
	Position CommentPosition
	// Body is markdown.
	Body      string
	CreatedAt time.Time
}

// NewPendingComment creates a locally-authored comment.
func NewPendingComment(path string, position CommentPosition, body string) PendingComment {
	return PendingComment{
		ID:        uuid.New(),
		Path:      path,
		Position:  position,
		Body:      body,
		CreatedAt: time.Now().UTC(),
	}
}

// PendingCommentFromRemote wraps an already-posted GitHub comment.
func PendingCommentFromRemote(remoteID int64, path string, position CommentPosition, body string) PendingComment {
	c := NewPendingComment(path, position, body)
	c.RemoteID = &remoteID
	return c
}

// ReviewEvent is the type of review to submit.
type ReviewEvent int

const (
	ReviewApprove ReviewEvent = iota
	ReviewRequestChanges
	ReviewComment
)

// GitHubString returns the GitHub API representation of the event.
func (e ReviewEvent) GitHubString() string {
	switch e {
	case ReviewApprove:
		return "APPROVE"
	case ReviewRequestChanges:
		return "REQUEST_CHANGES"
	default:
		return "COMMENT"
	}
}
