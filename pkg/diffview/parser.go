package diffview

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidFormat reports structurally broken diff input. Parsing aborts and
// the caller decides; partially parsed files are never returned.
var ErrInvalidFormat = errors.New("invalid diff format")

// parseError wraps a detail message into the package error taxonomy.
func parseError(format string, args ...any) error {
	return fmt.Errorf("failed to parse diff: %s", fmt.Sprintf(format, args...))
}

// ParseUnifiedDiff parses a unified diff string (as returned by the GitHub
// API or git diff) into a structured PullRequestDiff.
func ParseUnifiedDiff(diffText, baseSHA, headSHA string) (*PullRequestDiff, error) {
	p := &diffParser{lines: strings.Split(diffText, "\n")}
	diff := NewPullRequestDiff(baseSHA, headSHA)

	for !p.done() {
		line := p.peek()
		switch {
		case strings.HasPrefix(line, "diff --git ") ||
			strings.HasPrefix(line, "--- "):
			file, err := p.parseFile()
			if err != nil {
				return nil, err
			}
			if file != nil {
				diff.Files = append(diff.Files, *file)
			}
		case strings.HasPrefix(line, "@@"):
			return nil, fmt.Errorf("%w: hunk header before file header at line %d", ErrInvalidFormat, p.pos+1)
		default:
			// Preamble noise between files (mode lines, blank lines).
			p.next()
		}
	}

	diff.RecalculateTotals()
	return diff, nil
}

type diffParser struct {
	lines []string
	pos   int
}

func (p *diffParser) done() bool {
	return p.pos >= len(p.lines)
}

func (p *diffParser) peek() string {
	return p.lines[p.pos]
}

func (p *diffParser) next() string {
	line := p.lines[p.pos]
	p.pos++
	return line
}

// parseFile consumes one file section: the optional "diff --git" header and
// extended headers, the ---/+++ pair, and all hunks. Binary files yield nil.
func (p *diffParser) parseFile() (*FileDiff, error) {
	var source, target, renameFrom, renameTo string
	binary := false
	copied := false
	sawGit := false

	// Extended header block.
	for !p.done() {
		line := p.peek()
		switch {
		case strings.HasPrefix(line, "diff --git "):
			// A second git header opens the next file section.
			if sawGit {
				goto hunks
			}
			sawGit = true
			p.next()
		case strings.HasPrefix(line, "rename from "):
			renameFrom = strings.TrimPrefix(p.next(), "rename from ")
		case strings.HasPrefix(line, "rename to "):
			renameTo = strings.TrimPrefix(p.next(), "rename to ")
		case strings.HasPrefix(line, "copy from "), strings.HasPrefix(line, "copy to "):
			copied = true
			p.next()
		case strings.HasPrefix(line, "Binary files "):
			binary = true
			p.next()
		case strings.HasPrefix(line, "--- "):
			source = cleanPath(strings.TrimPrefix(line, "--- "))
			p.next()
			if p.done() || !strings.HasPrefix(p.peek(), "+++ ") {
				return nil, fmt.Errorf("%w: missing +++ after --- at line %d", ErrInvalidFormat, p.pos)
			}
			target = cleanPath(strings.TrimPrefix(p.next(), "+++ "))
			goto hunks
		case strings.HasPrefix(line, "old mode "), strings.HasPrefix(line, "new mode "),
			strings.HasPrefix(line, "new file mode "), strings.HasPrefix(line, "deleted file mode "),
			strings.HasPrefix(line, "similarity index "), strings.HasPrefix(line, "dissimilarity index "),
			strings.HasPrefix(line, "index "):
			p.next()
		default:
			// A file section with no ---/+++ pair (pure rename or binary).
			goto hunks
		}
	}

hunks:
	if binary {
		// Skip any remaining lines of this section.
		for !p.done() && !strings.HasPrefix(p.peek(), "diff --git ") {
			p.next()
		}
		return nil, nil
	}

	if source == "" && target == "" {
		if renameFrom == "" || renameTo == "" {
			return nil, nil
		}
		source, target = renameFrom, renameTo
	}

	file := &FileDiff{Path: target}
	switch {
	case source == "/dev/null" || source == "":
		file.Status = StatusAdded
	case target == "/dev/null" || target == "":
		file.Status = StatusDeleted
		file.Path = source
	case copied:
		file.Status = StatusCopied
		file.OldPath = source
	case source != target:
		file.Status = StatusRenamed
		file.OldPath = source
	default:
		file.Status = StatusModified
	}

	for !p.done() && strings.HasPrefix(p.peek(), "@@") {
		hunk, err := p.parseHunk()
		if err != nil {
			return nil, err
		}
		file.Hunks = append(file.Hunks, hunk)
	}

	file.RecalculateStats()
	return file, nil
}

// parseHunk consumes one "@@ -o,oc +n,nc @@ section" header and its lines,
// attaching old/new line numbers per unified-diff rules.
func (p *diffParser) parseHunk() (Hunk, error) {
	header := p.next()
	oldStart, oldCount, newStart, newCount, section, err := parseHunkHeader(header)
	if err != nil {
		return Hunk{}, err
	}

	hunk := NewHunk(oldStart, oldCount, newStart, newCount)
	if section != "" {
		hunk.Header = hunk.formatHeader(section)
	}

	oldLine := oldStart
	newLine := newStart
	oldRemaining := oldCount
	newRemaining := newCount

	// Counts are advisory: hunks shorter than their declared ranges (as some
	// diff generators emit) close at the first non-content line.
	for !p.done() {
		if next := p.peek(); !isHunkContent(next, oldRemaining, newRemaining) {
			break
		}
		line := p.next()
		switch {
		case strings.HasPrefix(line, "+"):
			hunk.Lines = append(hunk.Lines, DiffLine{
				Kind:    LineAddition,
				Content: line[1:],
				NewLine: intPtr(newLine),
			})
			newLine++
			newRemaining--
		case strings.HasPrefix(line, "-"):
			hunk.Lines = append(hunk.Lines, DiffLine{
				Kind:    LineDeletion,
				Content: line[1:],
				OldLine: intPtr(oldLine),
			})
			oldLine++
			oldRemaining--
		case strings.HasPrefix(line, "\\"):
			// "\ No newline at end of file" counts against neither side.
			hunk.Lines = append(hunk.Lines, DiffLine{
				Kind:    LineContext,
				Content: line,
			})
		case strings.HasPrefix(line, " ") || line == "":
			content := line
			if content != "" {
				content = content[1:]
			}
			hunk.Lines = append(hunk.Lines, DiffLine{
				Kind:    LineContext,
				Content: content,
				OldLine: intPtr(oldLine),
				NewLine: intPtr(newLine),
			})
			oldLine++
			newLine++
			oldRemaining--
			newRemaining--
		default:
			return Hunk{}, parseError("unexpected line %q inside hunk", line)
		}
	}

	return hunk, nil
}

// isHunkContent decides whether a line still belongs to the current hunk.
// Lines keep the hunk open while declared counts remain; a trailing
// no-newline marker always belongs to the hunk it follows.
func isHunkContent(line string, oldRemaining, newRemaining int) bool {
	if strings.HasPrefix(line, "\\") {
		return true
	}
	if oldRemaining <= 0 && newRemaining <= 0 {
		return false
	}
	if line == "" {
		return true
	}
	switch line[0] {
	case ' ', '+', '-':
		// "--- " and "+++ " open the next file section.
		return !strings.HasPrefix(line, "--- ") && !strings.HasPrefix(line, "+++ ")
	}
	return false
}

// parseHunkHeader parses "@@ -1,5 +1,6 @@ fn main()". Counts default to 1
// when omitted ("@@ -1 +1 @@").
func parseHunkHeader(header string) (oldStart, oldCount, newStart, newCount int, section string, err error) {
	rest, found := strings.CutPrefix(header, "@@ -")
	if !found {
		return 0, 0, 0, 0, "", parseError("malformed hunk header %q", header)
	}
	rangesPart, tail, found := strings.Cut(rest, " @@")
	if !found {
		return 0, 0, 0, 0, "", parseError("malformed hunk header %q", header)
	}
	oldPart, newPart, found := strings.Cut(rangesPart, " +")
	if !found {
		return 0, 0, 0, 0, "", parseError("malformed hunk ranges %q", header)
	}
	if oldStart, oldCount, err = parseRange(oldPart); err != nil {
		return 0, 0, 0, 0, "", parseError("bad old range in %q", header)
	}
	if newStart, newCount, err = parseRange(newPart); err != nil {
		return 0, 0, 0, 0, "", parseError("bad new range in %q", header)
	}
	section = strings.TrimSpace(tail)
	return oldStart, oldCount, newStart, newCount, section, nil
}

func parseRange(s string) (start, count int, err error) {
	startStr, countStr, found := strings.Cut(s, ",")
	if start, err = strconv.Atoi(startStr); err != nil {
		return 0, 0, err
	}
	if !found {
		return start, 1, nil
	}
	if count, err = strconv.Atoi(countStr); err != nil {
		return 0, 0, err
	}
	return start, count, nil
}

// cleanPath strips the a/ and b/ prefixes git puts on diff paths.
func cleanPath(path string) string {
	path = strings.TrimSpace(path)
	// Strip a possible "\t<timestamp>" suffix some generators append.
	if i := strings.IndexByte(path, '\t'); i >= 0 {
		path = path[:i]
	}
	if stripped, ok := strings.CutPrefix(path, "a/"); ok {
		return stripped
	}
	if stripped, ok := strings.CutPrefix(path, "b/"); ok {
		return stripped
	}
	return path
}
