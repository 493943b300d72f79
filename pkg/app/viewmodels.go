package app

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"

	"github.com/sassman/gh-pr-lander/pkg/actionslog"
	"github.com/sassman/gh-pr-lander/pkg/stringutil"
)

// View-models are pure per-frame derivations of state into prepared rows;
// renderers place them and contain no policy.

// StatusBarViewModel is the single status line.
type StatusBarViewModel struct {
	Kind    StatusKind
	Text    string
	Welcome bool
}

// NewStatusBarViewModel shows the latest message, or a welcome line when the
// ring is empty.
func NewStatusBarViewModel(s *AppState) StatusBarViewModel {
	latest := s.StatusBar.Latest()
	if latest == nil {
		return StatusBarViewModel{
			Kind:    StatusInfo,
			Text:    "Welcome to gh-pr-lander — press ? for key bindings",
			Welcome: true,
		}
	}
	return StatusBarViewModel{
		Kind: latest.Kind,
		Text: fmt.Sprintf("%s %s", latest.Kind.Emoji(), latest.Message),
	}
}

// RepoTabViewModel is one repository tab.
type RepoTabViewModel struct {
	Label    string
	Selected bool
}

// PrRowViewModel is one row of the PR table.
type PrRowViewModel struct {
	Number     int
	Title      string
	Author     string
	StatusIcon string
	StatusText string
	Comments   int
	Age        string
	Selected   bool
	IsCursor   bool
}

// MainViewModel is the main screen's prepared data.
type MainViewModel struct {
	Tabs        []RepoTabViewModel
	Rows        []PrRowViewModel
	FilterLabel string
	Loading     LoadingState
	LoadError   string
	Empty       bool
	SelectedNum int
}

// NewMainViewModel prepares the PR table for the selected repository.
func NewMainViewModel(s *AppState) MainViewModel {
	vm := MainViewModel{}
	for i, repo := range s.MainView.Repositories {
		vm.Tabs = append(vm.Tabs, RepoTabViewModel{
			Label:    repo.DisplayName(),
			Selected: i == s.MainView.SelectedRepository,
		})
	}
	data := s.MainView.SelectedRepoData()
	vm.FilterLabel = data.Filter.Label()
	vm.Loading = data.Loading
	vm.LoadError = data.LoadError
	visible := data.VisiblePrs(s.MainView.CurrentUser)
	vm.Empty = len(visible) == 0
	vm.SelectedNum = len(data.SelectedPrNumbers)
	cursor := data.SelectedPr
	if cursor >= len(visible) && len(visible) > 0 {
		cursor = len(visible) - 1
	}
	for i, pr := range visible {
		_, selected := data.SelectedPrNumbers[pr.Number]
		vm.Rows = append(vm.Rows, PrRowViewModel{
			Number:     pr.Number,
			Title:      pr.Title,
			Author:     pr.Author,
			StatusIcon: pr.Mergeable.Icon(),
			StatusText: pr.Mergeable.Label(),
			Comments:   pr.Comments,
			Age:        relativeAge(pr.UpdatedAt),
			Selected:   selected,
			IsCursor:   i == cursor,
		})
	}
	return vm
}

func relativeAge(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "now"
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd", int(d.Hours()/24))
	}
}

// PaletteRowViewModel is one palette entry.
type PaletteRowViewModel struct {
	Key         string
	Description string
	IsCursor    bool
}

// CommandPaletteViewModel is the filtered command list.
type CommandPaletteViewModel struct {
	Query string
	Rows  []PaletteRowViewModel
}

// paletteEntries lists the commands the palette offers (deduplicated by
// command, first binding's key shown).
func paletteEntries(keymap Keymap) []KeyBinding {
	seen := make(map[CommandID]bool)
	var entries []KeyBinding
	for _, b := range keymap.Bindings {
		if seen[b.Command] {
			continue
		}
		seen[b.Command] = true
		entries = append(entries, b)
	}
	return entries
}

// NewCommandPaletteViewModel filters entries by the query substring.
func NewCommandPaletteViewModel(s *AppState) CommandPaletteViewModel {
	vm := CommandPaletteViewModel{Query: s.CommandPalette.Query}
	matches := FilterPaletteEntries(s.Keymap, s.CommandPalette.Query)
	cursor := s.CommandPalette.Cursor
	if cursor >= len(matches) && len(matches) > 0 {
		cursor = len(matches) - 1
	}
	for i, b := range matches {
		vm.Rows = append(vm.Rows, PaletteRowViewModel{
			Key:         b.Display,
			Description: b.Command.Description(),
			IsCursor:    i == cursor,
		})
	}
	return vm
}

// FilterPaletteEntries returns the palette entries matching query.
func FilterPaletteEntries(keymap Keymap, query string) []KeyBinding {
	var matches []KeyBinding
	for _, b := range paletteEntries(keymap) {
		if containsFold(b.Command.Description(), query) {
			matches = append(matches, b)
		}
	}
	return matches
}

// KeyBindingRowViewModel is one help panel row.
type KeyBindingRowViewModel struct {
	Key         string
	Description string
}

// NewKeyBindingsViewModel lists the active keymap for the help panel.
func NewKeyBindingsViewModel(s *AppState) []KeyBindingRowViewModel {
	var rows []KeyBindingRowViewModel
	for _, b := range s.Keymap.Bindings {
		rows = append(rows, KeyBindingRowViewModel{
			Key:         b.Display,
			Description: b.Command.Description(),
		})
	}
	return rows
}

// BuildLogRowKind distinguishes tree row types.
type BuildLogRowKind int

const (
	RowWorkflow BuildLogRowKind = iota
	RowJob
	RowStep
	RowLine
)

// BuildLogRowViewModel is one visible tree row.
type BuildLogRowViewModel struct {
	Kind     BuildLogRowKind
	Indent   int
	Text     string
	Segments []actionslog.StyledSegment
	IsCursor bool
	IsError  bool
	Expanded bool
	// HasChildren marks expandable nodes.
	HasChildren bool
	Timestamp   string
	GroupLevel  int
}

// BuildLogViewModel is the prepared build log screen.
type BuildLogViewModel struct {
	Title     string
	Rows      []BuildLogRowViewModel
	Loading   BuildLogLoading
	LoadError string
}

// NewBuildLogViewModel flattens the visible tree into the viewport window.
func NewBuildLogViewModel(s *AppState) BuildLogViewModel {
	b := &s.BuildLog
	vm := BuildLogViewModel{
		Title: fmt.Sprintf("Build Logs — PR #%d %s",
			b.PrContext.Number, stringutil.Truncate(b.PrContext.Title, 50)),
		Loading:   b.Loading,
		LoadError: b.LoadError,
	}
	paths := b.FlattenVisibleNodes()
	start := b.ScrollOffset
	if start > len(paths) {
		start = len(paths)
	}
	end := start + b.ViewportHeight
	if end > len(paths) {
		end = len(paths)
	}
	for _, path := range paths[start:end] {
		vm.Rows = append(vm.Rows, buildLogRow(b, path))
	}
	return vm
}

func buildLogRow(b *BuildLogState, path []int) BuildLogRowViewModel {
	row := BuildLogRowViewModel{
		Indent:   len(path) - 1,
		IsCursor: pathsEqual(path, b.CursorPath),
		Expanded: b.IsExpanded(path),
	}
	switch len(path) {
	case 1:
		row.Kind = RowWorkflow
		row.Text = b.Workflows[path[0]].Name
		row.HasChildren = len(b.Workflows[path[0]].Jobs) > 0
	case 2:
		row.Kind = RowJob
		job := b.Workflows[path[0]].Jobs[path[1]]
		row.Text = job.Name
		row.HasChildren = len(job.Steps) > 0
	case 3:
		row.Kind = RowStep
		step := b.Workflows[path[0]].Jobs[path[1]].Steps[path[2]]
		errors := step.ErrorCount()
		row.Text = step.Name
		if errors > 0 {
			row.Text = fmt.Sprintf("%s (%d errors)", step.Name, errors)
			row.IsError = true
		}
		row.HasChildren = len(step.Lines) > 0
	case 4:
		row.Kind = RowLine
		line := b.LineAt(path)
		if line != nil {
			row.Segments = line.Segments
			row.Text = line.PlainText()
			row.IsError = line.Command != nil && line.Command.Kind == actionslog.CommandError
			row.GroupLevel = line.GroupLevel
			if b.ShowTimestamps {
				row.Timestamp = line.Timestamp
			}
		}
	}
	return row
}

// ConfirmationViewModel is the prepared confirmation popup.
type ConfirmationViewModel struct {
	Title        string
	Instructions string
	TargetInfo   string
	RepoContext  string
	Input        string
	Valid        bool
}

// NewConfirmationViewModel prepares the popup, or ok=false when hidden.
func NewConfirmationViewModel(s *AppState) (ConfirmationViewModel, bool) {
	popup := s.Confirmation
	if popup == nil {
		return ConfirmationViewModel{}, false
	}
	return ConfirmationViewModel{
		Title:        popup.Intent.PopupTitle(),
		Instructions: popup.Intent.Instructions(),
		TargetInfo:   popup.TargetInfo(),
		RepoContext:  popup.RepoContext,
		Input:        popup.InputValue,
		Valid:        popup.IsValid(),
	}, true
}

// splashSpinner supplies the boot animation frames; ticks from the worker
// drive the frame counter instead of the spinner's own clock.
var splashSpinner = spinner.Dot

// SplashViewModel is the prepared splash frame.
type SplashViewModel struct {
	Spinner string
	Title   string
	Tagline string
}

// NewSplashViewModel picks the animation frame for the tick counter.
func NewSplashViewModel(s *AppState) SplashViewModel {
	frames := splashSpinner.Frames
	return SplashViewModel{
		Spinner: frames[s.Splash.Frame%len(frames)],
		Title:   "gh-pr-lander",
		Tagline: "loading repositories…",
	}
}

// DebugConsoleViewModel is the prepared console tail.
type DebugConsoleViewModel struct {
	Lines []string
}

// NewDebugConsoleViewModel windows the ring by the scroll offset.
func NewDebugConsoleViewModel(s *AppState, height int) DebugConsoleViewModel {
	lines := s.DebugConsole.Lines
	end := len(lines) - s.DebugConsole.Scroll
	if end > len(lines) {
		end = len(lines)
	}
	if end < 0 {
		end = 0
	}
	start := end - height
	if start < 0 {
		start = 0
	}
	return DebugConsoleViewModel{Lines: lines[start:end]}
}
