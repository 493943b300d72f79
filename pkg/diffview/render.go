package diffview

import "strings"

// Render writes the diff back out as canonical unified-diff text. Parsing
// the result reproduces the same model (round-trip on the canonical form);
// expanded context lines render as plain context.
func (d *PullRequestDiff) Render() string {
	var b strings.Builder
	for fi := range d.Files {
		b.WriteString(d.Files[fi].render())
	}
	return b.String()
}

func (f *FileDiff) render() string {
	var b strings.Builder
	oldPath, newPath := f.renderPaths()
	b.WriteString("--- " + oldPath + "\n")
	b.WriteString("+++ " + newPath + "\n")
	for hi := range f.Hunks {
		hunk := &f.Hunks[hi]
		b.WriteString(hunk.Header + "\n")
		for _, line := range hunk.Lines {
			switch {
			case strings.HasPrefix(line.Content, "\\") && line.OldLine == nil && line.NewLine == nil:
				b.WriteString(line.Content + "\n")
			case line.Kind == LineAddition:
				b.WriteString("+" + line.Content + "\n")
			case line.Kind == LineDeletion:
				b.WriteString("-" + line.Content + "\n")
			default:
				b.WriteString(" " + line.Content + "\n")
			}
		}
	}
	return b.String()
}

func (f *FileDiff) renderPaths() (oldPath, newPath string) {
	switch f.Status {
	case StatusAdded:
		return "/dev/null", "b/" + f.Path
	case StatusDeleted:
		return "a/" + f.Path, "/dev/null"
	case StatusRenamed, StatusCopied:
		return "a/" + f.OldPath, "b/" + f.Path
	default:
		return "a/" + f.Path, "b/" + f.Path
	}
}
