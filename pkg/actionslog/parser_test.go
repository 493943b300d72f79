package actionslog

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeZip(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for name, content := range files {
		f, err := w.Create(name)
		require.NoError(t, err)
		_, err = f.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func TestExtractTimestamp(t *testing.T) {
	ts, content := ExtractTimestamp("2024-01-15T10:30:00.1234567Z Running tests")
	assert.Equal(t, "2024-01-15T10:30:00.1234567Z", ts)
	assert.Equal(t, "Running tests", content)
}

func TestExtractTimestampAbsent(t *testing.T) {
	ts, content := ExtractTimestamp("Just a regular log line")
	assert.Empty(t, ts)
	assert.Equal(t, "Just a regular log line", content)
}

func TestExtractTimestampTooShort(t *testing.T) {
	// 29 characters: below the sentinel's minimum length.
	line := "2024-01-15T10:30:00.1234567Z "
	require.Len(t, line, 29)
	ts, content := ExtractTimestamp(line)
	assert.Empty(t, ts)
	assert.Equal(t, line, content)
}

func TestExtractTimestampWithoutFraction(t *testing.T) {
	ts, content := ExtractTimestamp("2024-01-15T10:30:00Z Running the longer test suite")
	assert.Equal(t, "2024-01-15T10:30:00Z", ts)
	assert.Equal(t, "Running the longer test suite", content)
}

func TestGroupTracker(t *testing.T) {
	tracker := newGroupTracker()
	level, title := tracker.current()
	assert.Equal(t, 0, level)
	assert.Empty(t, title)

	tracker.enter("Build")
	level, title = tracker.current()
	assert.Equal(t, 1, level)
	assert.Equal(t, "Build", title)

	tracker.enter("Tests")
	level, title = tracker.current()
	assert.Equal(t, 2, level)
	assert.Equal(t, "Tests", title)

	tracker.exit()
	level, title = tracker.current()
	assert.Equal(t, 1, level)
	assert.Equal(t, "Build", title)

	tracker.exit()
	level, _ = tracker.current()
	assert.Equal(t, 0, level)

	// Exit on an empty stack is ignored.
	tracker.exit()
	level, _ = tracker.current()
	assert.Equal(t, 0, level)
}

func TestParseWorkflowLogs(t *testing.T) {
	content := "2024-01-15T10:30:00.1234567Z ::group::Install\n" +
		"2024-01-15T10:30:01.0000000Z downloading dependencies\n" +
		"2024-01-15T10:30:02.0000000Z ::endgroup::\n" +
		"2024-01-15T10:30:03.0000000Z \x1b[32mdone\x1b[0m\n"
	data := makeZip(t, map[string]string{"1_build.txt": content})

	parsed, err := ParseWorkflowLogs(data)
	require.NoError(t, err)
	require.Len(t, parsed.Jobs, 1)
	job := parsed.Jobs[0]
	assert.Equal(t, "1_build.txt", job.Name)
	require.Len(t, job.Lines, 4)

	// The ::group:: line itself is already inside the group.
	require.NotNil(t, job.Lines[0].Command)
	assert.Equal(t, CommandGroupStart, job.Lines[0].Command.Kind)
	assert.Equal(t, 1, job.Lines[0].GroupLevel)
	assert.Equal(t, "Install", job.Lines[0].GroupTitle)

	assert.Equal(t, 1, job.Lines[1].GroupLevel)
	assert.Equal(t, "Install", job.Lines[1].GroupTitle)
	assert.Equal(t, "2024-01-15T10:30:01.0000000Z", job.Lines[1].Timestamp)
	assert.Equal(t, "downloading dependencies", job.Lines[1].PlainText())

	// ::endgroup:: pops before the level is read.
	assert.Equal(t, 0, job.Lines[2].GroupLevel)

	// ANSI preserved in Content, decomposed in Segments.
	assert.Contains(t, job.Lines[3].Content, "\x1b[32m")
	assert.Equal(t, "done", job.Lines[3].PlainText())
}

func TestParseWorkflowLogsGroupStackBalanced(t *testing.T) {
	content := "::group::a\n::group::b\n::endgroup::\n::endgroup::\ntail\n"
	data := makeZip(t, map[string]string{"job.txt": content})

	parsed, err := ParseWorkflowLogs(data)
	require.NoError(t, err)
	lines := parsed.Jobs[0].Lines
	assert.Equal(t, 0, lines[len(lines)-1].GroupLevel)
}

func TestParseWorkflowLogsSkipsDirectories(t *testing.T) {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	_, err := w.Create("jobdir/")
	require.NoError(t, err)
	f, err := w.Create("jobdir/1_step.txt")
	require.NoError(t, err)
	_, err = f.Write([]byte("hello\n"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	parsed, err := ParseWorkflowLogs(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, parsed.Jobs, 1)
	assert.Equal(t, "jobdir/1_step.txt", parsed.Jobs[0].Name)
}

func TestParseWorkflowLogsInvalidUtf8(t *testing.T) {
	data := makeZip(t, map[string]string{"job.txt": string([]byte{0xff, 0xfe, 0x0a})})
	_, err := ParseWorkflowLogs(data)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUtf8)
}

func TestParseWorkflowLogsNotAZip(t *testing.T) {
	_, err := ParseWorkflowLogs([]byte("definitely not a zip"))
	assert.Error(t, err)
}

func TestBuildTree(t *testing.T) {
	data := makeZip(t, map[string]string{
		"build/2_Run tests.txt": "testing\n",
		"build/1_Set up job.txt": "setup\n",
		"1_build.txt":            "combined\n",
		"2_lint.txt":             "::error file=x.go::lint failed\n",
	})
	parsed, err := ParseWorkflowLogs(data)
	require.NoError(t, err)

	tree := BuildTree(parsed, "CI")
	require.Len(t, tree, 1)
	assert.Equal(t, "CI", tree[0].Name)
	require.Len(t, tree[0].Jobs, 2)

	var buildJob, lintJob *JobNode
	for i := range tree[0].Jobs {
		switch tree[0].Jobs[i].Name {
		case "build":
			buildJob = &tree[0].Jobs[i]
		case "lint":
			lintJob = &tree[0].Jobs[i]
		}
	}
	require.NotNil(t, buildJob)
	require.NotNil(t, lintJob)

	// Step files win over the combined per-job file, ordered by prefix.
	require.Len(t, buildJob.Steps, 2)
	assert.Equal(t, "Set up job", buildJob.Steps[0].Name)
	assert.Equal(t, "Run tests", buildJob.Steps[1].Name)

	// A job with only the combined file gets a synthetic step.
	require.Len(t, lintJob.Steps, 1)
	assert.Equal(t, "log", lintJob.Steps[0].Name)
	assert.Equal(t, 1, lintJob.Steps[0].ErrorCount())
}
