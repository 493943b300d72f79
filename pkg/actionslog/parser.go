package actionslog

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// ErrUtf8 reports a job log file that is not valid UTF-8.
var ErrUtf8 = fmt.Errorf("invalid UTF-8 in log content")

// ParseWorkflowLogs parses a workflow run's logs out of the raw bytes of the
// ZIP archive returned by the GitHub API. Each file inside the archive is one
// job's log; directory entries are skipped. Filenames become job names.
func ParseWorkflowLogs(zipData []byte) (*ParsedLog, error) {
	archive, err := zip.NewReader(bytes.NewReader(zipData), int64(len(zipData)))
	if err != nil {
		return nil, fmt.Errorf("failed to read ZIP archive: %w", err)
	}

	parsed := &ParsedLog{}
	for _, file := range archive.File {
		if file.FileInfo().IsDir() {
			continue
		}
		rc, err := file.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to read file from ZIP: %w", err)
		}
		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read file from ZIP: %w", err)
		}
		if !utf8.Valid(content) {
			return nil, fmt.Errorf("%w: %s", ErrUtf8, file.Name)
		}
		parsed.Jobs = append(parsed.Jobs, parseJobLog(file.Name, string(content)))
	}
	return parsed, nil
}

// parseJobLog parses a single job's log content line by line.
func parseJobLog(jobName, content string) JobLog {
	job := JobLog{Name: jobName}
	tracker := newGroupTracker()

	for _, rawLine := range splitLines(content) {
		timestamp, payload := ExtractTimestamp(rawLine)
		segments := TokenizeANSI(payload)

		var plain strings.Builder
		for _, seg := range segments {
			plain.WriteString(seg.Text)
		}

		var command *WorkflowCommand
		if cmd, _, ok := ParseCommand(plain.String()); ok {
			switch cmd.Kind {
			case CommandGroupStart:
				tracker.enter(cmd.Message)
			case CommandGroupEnd:
				tracker.exit()
			}
			command = &cmd
		}

		// Group level reflects the stack after this line's command, so a
		// ::group:: line itself already sits inside its own group.
		level, title := tracker.current()

		job.Lines = append(job.Lines, LogLine{
			Content:    payload,
			Timestamp:  timestamp,
			Segments:   segments,
			Command:    command,
			GroupLevel: level,
			GroupTitle: title,
		})
	}
	return job
}

// splitLines splits on "\n", tolerating a trailing newline and CRLF endings.
func splitLines(content string) []string {
	if content == "" {
		return nil
	}
	content = strings.TrimSuffix(content, "\n")
	lines := strings.Split(content, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

// ExtractTimestamp splits off the GitHub Actions timestamp prefix
//
//	2024-01-15T10:30:00.1234567Z Running tests
//
// returning the timestamp (with the trailing Z) and the remaining content.
// Lines without the prefix come back unchanged with an empty timestamp.
func ExtractTimestamp(line string) (string, string) {
	if len(line) <= 30 {
		return "", line
	}
	if line[4] != '-' || line[7] != '-' || line[10] != 'T' ||
		line[13] != ':' || line[16] != ':' ||
		(line[19] != '.' && line[19] != 'Z') {
		return "", line
	}
	pos := strings.Index(line, "Z ")
	if pos < 0 {
		return "", line
	}
	return line[:pos+1], line[pos+2:]
}

// groupTracker tracks ::group::/::endgroup:: nesting during parsing.
type groupTracker struct {
	stack []string
}

func newGroupTracker() *groupTracker {
	return &groupTracker{}
}

func (g *groupTracker) enter(title string) {
	g.stack = append(g.stack, title)
}

// exit pops the innermost group. Popping an empty stack is a no-op: stray
// ::endgroup:: lines appear in real logs and are not an error.
func (g *groupTracker) exit() {
	if len(g.stack) > 0 {
		g.stack = g.stack[:len(g.stack)-1]
	}
}

func (g *groupTracker) current() (int, string) {
	if len(g.stack) == 0 {
		return 0, ""
	}
	return len(g.stack), g.stack[len(g.stack)-1]
}
