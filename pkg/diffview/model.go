// Package diffview implements the unified-diff model and the interactive
// diff viewer state: parsing, navigation, visual selection, pending review
// comments, context expansion, and syntax-highlight caching.
//
// The viewer is instrumented: it emits DiffEvents instead of performing side
// effects, and the host application wires those events to the GitHub API.
package diffview

import "fmt"

// FileStatus describes what happened to a file in a diff.
type FileStatus int

const (
	StatusModified FileStatus = iota
	StatusAdded
	StatusDeleted
	StatusRenamed
	StatusCopied
)

// String returns a short status label.
func (s FileStatus) String() string {
	switch s {
	case StatusAdded:
		return "added"
	case StatusDeleted:
		return "deleted"
	case StatusRenamed:
		return "renamed"
	case StatusCopied:
		return "copied"
	default:
		return "modified"
	}
}

// LineKind classifies a diff line by its leading marker.
type LineKind int

const (
	LineContext LineKind = iota
	LineAddition
	LineDeletion
)

// DiffLine is one line of a hunk.
type DiffLine struct {
	Kind    LineKind
	Content string
	// OldLine is the 1-based line number in the old file; nil for additions.
	OldLine *int
	// NewLine is the 1-based line number in the new file; nil for deletions.
	NewLine *int
	// IsExpanded marks context lines inserted by context expansion.
	IsExpanded bool
}

// Hunk is a contiguous block of changes with its old/new line ranges.
type Hunk struct {
	OldStart int
	OldCount int
	NewStart int
	NewCount int
	// Header is the canonical "@@ -o,oc +n,nc @@ function-context" line.
	Header string
	Lines  []DiffLine
}

// NewHunk builds a hunk with its canonical header (no function context yet).
func NewHunk(oldStart, oldCount, newStart, newCount int) Hunk {
	h := Hunk{
		OldStart: oldStart,
		OldCount: oldCount,
		NewStart: newStart,
		NewCount: newCount,
	}
	h.Header = h.formatHeader("")
	return h
}

func (h *Hunk) formatHeader(section string) string {
	header := fmt.Sprintf("@@ -%d,%d +%d,%d @@", h.OldStart, h.OldCount, h.NewStart, h.NewCount)
	if section != "" {
		header += " " + section
	}
	return header
}

// FileDiff is the diff of a single file.
type FileDiff struct {
	Path string
	// OldPath is set for renames.
	OldPath   string
	Status    FileStatus
	Hunks     []Hunk
	Additions int
	Deletions int
}

// RecalculateStats retotals additions/deletions from the line kinds.
func (f *FileDiff) RecalculateStats() {
	f.Additions = 0
	f.Deletions = 0
	for i := range f.Hunks {
		for j := range f.Hunks[i].Lines {
			switch f.Hunks[i].Lines[j].Kind {
			case LineAddition:
				f.Additions++
			case LineDeletion:
				f.Deletions++
			}
		}
	}
}

// PullRequestDiff is the parsed diff of a whole pull request.
type PullRequestDiff struct {
	BaseSHA        string
	HeadSHA        string
	Files          []FileDiff
	TotalAdditions int
	TotalDeletions int
}

// NewPullRequestDiff returns an empty diff between two commits.
func NewPullRequestDiff(baseSHA, headSHA string) *PullRequestDiff {
	return &PullRequestDiff{BaseSHA: baseSHA, HeadSHA: headSHA}
}

// RecalculateTotals aggregates per-file stats across the diff.
func (d *PullRequestDiff) RecalculateTotals() {
	d.TotalAdditions = 0
	d.TotalDeletions = 0
	for i := range d.Files {
		d.TotalAdditions += d.Files[i].Additions
		d.TotalDeletions += d.Files[i].Deletions
	}
}

// FileByPath returns the file diff for path, or nil.
func (d *PullRequestDiff) FileByPath(path string) *FileDiff {
	for i := range d.Files {
		if d.Files[i].Path == path {
			return &d.Files[i]
		}
	}
	return nil
}

func intPtr(v int) *int {
	return &v
}
