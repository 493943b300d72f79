// Package styles provides centralized style and color definitions for the TUI.
//
// # Adaptive Color System
//
// This package uses lipgloss.AdaptiveColor to automatically adapt colors based
// on the terminal background, ensuring good readability in both light and dark
// terminal themes. Dark variants are inspired by the Dracula color theme
// (https://draculatheme.com/); light variants use darker, more saturated
// colors for contrast on light backgrounds.
package styles

import "github.com/charmbracelet/lipgloss"

// Adaptive colors that work well in both light and dark terminal themes.
var (
	// ColorError is used for error messages, failed checks, and conflicts.
	ColorError = lipgloss.AdaptiveColor{
		Light: "#D73737",
		Dark:  "#FF5555",
	}

	// ColorWarning is used for warnings and needs-rebase markers.
	ColorWarning = lipgloss.AdaptiveColor{
		Light: "#E67E22",
		Dark:  "#FFB86C",
	}

	// ColorSuccess is used for ready-to-merge and passing checks.
	ColorSuccess = lipgloss.AdaptiveColor{
		Light: "#27AE60",
		Dark:  "#50FA7B",
	}

	// ColorInfo is used for informational status messages.
	ColorInfo = lipgloss.AdaptiveColor{
		Light: "#2980B9",
		Dark:  "#8BE9FD",
	}

	// ColorPurple is used for file paths, commands, and highlights.
	ColorPurple = lipgloss.AdaptiveColor{
		Light: "#8E44AD",
		Dark:  "#BD93F9",
	}

	// ColorYellow is used for in-progress markers and attention content.
	ColorYellow = lipgloss.AdaptiveColor{
		Light: "#B7950B",
		Dark:  "#F1FA8C",
	}

	// ColorComment is used for secondary information like line numbers.
	ColorComment = lipgloss.AdaptiveColor{
		Light: "#6C7A89",
		Dark:  "#6272A4",
	}

	// ColorForeground is used for primary text content.
	ColorForeground = lipgloss.AdaptiveColor{
		Light: "#2C3E50",
		Dark:  "#F8F8F2",
	}

	// ColorBackground is used for highlighted backgrounds.
	ColorBackground = lipgloss.AdaptiveColor{
		Light: "#ECF0F1",
		Dark:  "#282A36",
	}

	// ColorBorder is used for pane borders and dividers.
	ColorBorder = lipgloss.AdaptiveColor{
		Light: "#BDC3C7",
		Dark:  "#44475A",
	}

	// ColorSelection is used for the cursor row background.
	ColorSelection = lipgloss.AdaptiveColor{
		Light: "#D6EAF8",
		Dark:  "#44475A",
	}
)

// Border definitions for consistent styling across views.
var (
	// RoundedBorder is the primary border style for popups and panes.
	RoundedBorder = lipgloss.RoundedBorder()

	// NormalBorder is used for subtle section dividers.
	NormalBorder = lipgloss.NormalBorder()
)

// Pre-configured styles for common use cases.

// Error style for error messages - bold red.
var Error = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorError)

// Warning style for warning messages - bold orange.
var Warning = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorWarning)

// Success style for success messages - bold green.
var Success = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorSuccess)

// Info style for informational messages - bold cyan.
var Info = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorInfo)

// FilePath style for file paths - bold purple.
var FilePath = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorPurple)

// LineNumber style for gutter line numbers - muted.
var LineNumber = lipgloss.NewStyle().
	Foreground(ColorComment)

// Muted style for secondary text.
var Muted = lipgloss.NewStyle().
	Foreground(ColorComment)

// Title style for view titles - bold purple.
var Title = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorPurple)

// TableHeader style for table headers - bold muted.
var TableHeader = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorComment)

// SelectedRow style for the cursor row in tables and trees.
var SelectedRow = lipgloss.NewStyle().
	Background(ColorSelection)

// DiffAddition style for added lines.
var DiffAddition = lipgloss.NewStyle().
	Foreground(ColorSuccess)

// DiffDeletion style for deleted lines.
var DiffDeletion = lipgloss.NewStyle().
	Foreground(ColorError)

// DiffContext style for unchanged lines.
var DiffContext = lipgloss.NewStyle().
	Foreground(ColorForeground)

// DiffHunkHeader style for @@ headers - cyan.
var DiffHunkHeader = lipgloss.NewStyle().
	Foreground(ColorInfo)

// DiffExpanded style for expanded context lines - italic muted.
var DiffExpanded = lipgloss.NewStyle().
	Italic(true).
	Foreground(ColorComment)

// PopupBorder style for floating overlay borders.
var PopupBorder = lipgloss.NewStyle().
	Border(RoundedBorder).
	BorderForeground(ColorPurple).
	Padding(0, 1)

// Backdrop style for the dimmed rectangle behind overlays.
var Backdrop = lipgloss.NewStyle().
	Foreground(ColorBorder)

// StatusRunning style for in-flight status messages.
var StatusRunning = lipgloss.NewStyle().
	Foreground(ColorYellow)

// GroupTitle style for build log group headers - bold cyan.
var GroupTitle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorInfo)
