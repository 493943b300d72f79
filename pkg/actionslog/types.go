// Package actionslog parses GitHub Actions workflow logs.
//
// GitHub Actions serves a workflow run's logs as a ZIP archive with one UTF-8
// text file per job. This package extracts the archive, splits each line into
// an optional ISO-8601 timestamp and payload, decomposes ANSI SGR sequences
// into styled segments, recognizes workflow commands (::group::, ::error::,
// ...), and tracks group nesting so consumers can render a collapsible tree.
package actionslog

// ParsedLog is the root structure containing all parsed logs from a run.
type ParsedLog struct {
	// Jobs holds all job logs extracted from the workflow archive.
	Jobs []JobLog
}

// JobLog is a single job's log output.
type JobLog struct {
	// Name of the job, derived from the filename inside the ZIP.
	Name string
	// Lines holds every parsed log line for this job.
	Lines []LogLine
}

// LogLine is a single line in the log with all derived metadata.
type LogLine struct {
	// Content is the raw text with ANSI codes preserved (timestamp stripped).
	Content string
	// Timestamp is the extracted GitHub Actions timestamp, or "" if absent.
	Timestamp string
	// Segments is the line decomposed into styled text segments.
	Segments []StyledSegment
	// Command is the workflow command on this line, if any.
	Command *WorkflowCommand
	// GroupLevel is the group nesting depth (0 = not in a group).
	GroupLevel int
	// GroupTitle is the title of the innermost containing group.
	GroupTitle string
}

// PlainText returns the line content without ANSI codes.
func (l *LogLine) PlainText() string {
	var b []byte
	for _, seg := range l.Segments {
		b = append(b, seg.Text...)
	}
	return string(b)
}

// StyledSegment is a run of text with a single resolved style.
type StyledSegment struct {
	Text  string
	Style AnsiStyle
}

// AnsiStyle holds the SGR attributes in effect for a segment.
type AnsiStyle struct {
	Fg            *Color
	Bg            *Color
	Bold          bool
	Faint         bool
	Italic        bool
	Underline     bool
	Blink         bool
	Reversed      bool
	Hidden        bool
	Strikethrough bool
}

// IsDefault reports whether no attribute is set.
func (s AnsiStyle) IsDefault() bool {
	return s == AnsiStyle{}
}

// ColorMode distinguishes the three ANSI color encodings.
type ColorMode int

const (
	// ColorNamed is one of the 16 standard colors (index 0-15).
	ColorNamed ColorMode = iota
	// ColorPalette256 is an index into the 256-color palette.
	ColorPalette256
	// ColorRGB is a 24-bit truecolor value.
	ColorRGB
)

// Color is an ANSI color in one of the three encodings.
type Color struct {
	Mode ColorMode
	// Index holds the named color (0-15) or palette index (0-255).
	Index uint8
	// R, G, B hold the truecolor channels when Mode is ColorRGB.
	R, G, B uint8
}

// NamedColor returns a 16-color entry.
func NamedColor(index uint8) Color {
	return Color{Mode: ColorNamed, Index: index}
}

// PaletteColor returns a 256-palette entry.
func PaletteColor(index uint8) Color {
	return Color{Mode: ColorPalette256, Index: index}
}

// RGBColor returns a truecolor entry.
func RGBColor(r, g, b uint8) Color {
	return Color{Mode: ColorRGB, R: r, G: g, B: b}
}

// CommandKind enumerates the recognized workflow command names.
type CommandKind int

const (
	CommandGroupStart CommandKind = iota
	CommandGroupEnd
	CommandError
	CommandWarning
	CommandNotice
	CommandDebug
)

// WorkflowCommand is a parsed GitHub Actions workflow command.
//
// GroupStart carries the group title in Message. GroupEnd has no payload.
// Error, Warning and Notice carry annotation parameters; Debug has only a
// message.
type WorkflowCommand struct {
	Kind    CommandKind
	Message string
	Params  CommandParams
}

// CommandParams holds the optional annotation parameters.
// Unknown keys are ignored; unparsable numeric values stay nil.
type CommandParams struct {
	File      string
	Line      *int
	Col       *int
	EndColumn *int
	EndLine   *int
	Title     string
}
