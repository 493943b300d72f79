package app

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/sassman/gh-pr-lander/pkg/actionslog"
	"github.com/sassman/gh-pr-lander/pkg/config"
	"github.com/sassman/gh-pr-lander/pkg/diffview"
)

// AppState is the immutable application state. Mutation happens only through
// the reducer, which takes the previous state and an action and returns the
// next state; everything here must be deep-copyable via Clone.
type AppState struct {
	Running bool
	// ViewStack is non-empty; the last entry is the active view.
	ViewStack []ViewID

	Splash          SplashState
	MainView        MainViewState
	DebugConsole    DebugConsoleState
	CommandPalette  CommandPaletteState
	AddRepoForm     AddRepoFormState
	MergeBot        MergeBotState
	KeyBindings     KeyBindingsPanelState
	StatusBar       StatusBarState
	BuildLog        BuildLogState
	DiffViewer      *diffview.State
	// Confirmation is present only while the popup is shown.
	Confirmation *ConfirmationPopupState

	Config config.AppConfig
	Keymap Keymap
}

// NewAppState builds the startup state: running, splash view on the stack.
func NewAppState() AppState {
	return AppState{
		Running:      true,
		ViewStack:    []ViewID{ViewSplash},
		MainView:     NewMainViewState(),
		DebugConsole: NewDebugConsoleState(),
		StatusBar:    NewStatusBarState(),
		BuildLog:     NewBuildLogState(),
		DiffViewer:   diffview.NewState(),
		Config:       config.DefaultAppConfig(),
		Keymap:       DefaultKeymap(),
	}
}

// ActiveView returns the topmost view id. The stack is never empty.
func (s *AppState) ActiveView() ViewID {
	return s.ViewStack[len(s.ViewStack)-1]
}

// Clone deep-copies the state so the background worker's snapshot can never
// alias the UI thread's authoritative value.
func (s AppState) Clone() AppState {
	next := s
	next.ViewStack = append([]ViewID(nil), s.ViewStack...)
	next.MainView = s.MainView.clone()
	next.DebugConsole = s.DebugConsole.clone()
	next.MergeBot = s.MergeBot.clone()
	next.StatusBar = s.StatusBar.clone()
	next.BuildLog = s.BuildLog.clone()
	next.DiffViewer = cloneDiffState(s.DiffViewer)
	if s.Confirmation != nil {
		confirmation := s.Confirmation.clone()
		next.Confirmation = &confirmation
	}
	next.Keymap = s.Keymap.clone()
	return next
}

// SplashState animates the boot screen.
type SplashState struct {
	Frame int
}

// MainViewState is the repositories + PR tables slice.
type MainViewState struct {
	SelectedRepository int
	Repositories       []Repository
	RepoData           map[int]RepositoryData
	// CurrentUser feeds the MyPRs filter.
	CurrentUser string

	// Pending session selection, applied once repositories load.
	PendingSessionRepo *Repository
	PendingSessionPrNo int
}

// NewMainViewState returns an empty main view.
func NewMainViewState() MainViewState {
	return MainViewState{RepoData: make(map[int]RepositoryData)}
}

func (m MainViewState) clone() MainViewState {
	next := m
	next.Repositories = append([]Repository(nil), m.Repositories...)
	next.RepoData = make(map[int]RepositoryData, len(m.RepoData))
	for k, v := range m.RepoData {
		next.RepoData[k] = v.clone()
	}
	if m.PendingSessionRepo != nil {
		repo := *m.PendingSessionRepo
		next.PendingSessionRepo = &repo
	}
	return next
}

// SelectedRepo returns the selected repository, ok=false when none exist.
func (m *MainViewState) SelectedRepo() (Repository, bool) {
	if len(m.Repositories) == 0 {
		return Repository{}, false
	}
	idx := m.SelectedRepository
	if idx >= len(m.Repositories) {
		idx = len(m.Repositories) - 1
	}
	return m.Repositories[idx], true
}

// SelectedRepoData returns the data slice of the selected repository.
func (m *MainViewState) SelectedRepoData() RepositoryData {
	return m.RepoData[m.SelectedRepository]
}

// RepositoryData holds one repository's PR table state.
type RepositoryData struct {
	Prs          []Pr
	Loading      LoadingState
	LoadError    string
	SelectedPr   int
	SelectedPrNumbers map[int]struct{}
	LastUpdated  *time.Time
	Filter       PrFilter
}

func (d RepositoryData) clone() RepositoryData {
	next := d
	next.Prs = append([]Pr(nil), d.Prs...)
	next.SelectedPrNumbers = make(map[int]struct{}, len(d.SelectedPrNumbers))
	for k := range d.SelectedPrNumbers {
		next.SelectedPrNumbers[k] = struct{}{}
	}
	if d.LastUpdated != nil {
		ts := *d.LastUpdated
		next.LastUpdated = &ts
	}
	return next
}

// VisiblePrs applies the filter to the PR list.
func (d *RepositoryData) VisiblePrs(currentUser string) []Pr {
	if d.Filter.Kind == FilterAll {
		return d.Prs
	}
	var out []Pr
	for _, pr := range d.Prs {
		if d.Filter.Matches(pr, currentUser) {
			out = append(out, pr)
		}
	}
	return out
}

// SelectionTargets returns the PR numbers an operation applies to: the
// multi-selection when non-empty, else the cursor PR.
func (d *RepositoryData) SelectionTargets(currentUser string) []int {
	if len(d.SelectedPrNumbers) > 0 {
		numbers := make([]int, 0, len(d.SelectedPrNumbers))
		for n := range d.SelectedPrNumbers {
			numbers = append(numbers, n)
		}
		sort.Ints(numbers)
		return numbers
	}
	visible := d.VisiblePrs(currentUser)
	if len(visible) == 0 {
		return nil
	}
	idx := d.SelectedPr
	if idx >= len(visible) {
		idx = len(visible) - 1
	}
	return []int{visible[idx].Number}
}

// CommandPaletteState is the palette query + cursor.
type CommandPaletteState struct {
	Query  string
	Cursor int
}

// AddRepoField indexes the add-repository form fields.
type AddRepoField int

const (
	FieldOrg AddRepoField = iota
	FieldRepo
	FieldBranch
	FieldHost
	fieldCount
)

// Label returns the field's form label.
func (f AddRepoField) Label() string {
	switch f {
	case FieldRepo:
		return "Repository"
	case FieldBranch:
		return "Branch"
	case FieldHost:
		return "Host (empty for github.com)"
	default:
		return "Organization"
	}
}

// AddRepoFormState is the add-repository form slice.
type AddRepoFormState struct {
	Fields  [int(fieldCount)]string
	Focused AddRepoField
	Error   string
}

// Validate checks the form and builds the repository.
func (f *AddRepoFormState) Validate() (Repository, error) {
	org := strings.TrimSpace(f.Fields[FieldOrg])
	repo := strings.TrimSpace(f.Fields[FieldRepo])
	branch := strings.TrimSpace(f.Fields[FieldBranch])
	host := strings.TrimSpace(f.Fields[FieldHost])
	if org == "" || repo == "" {
		return Repository{}, fmt.Errorf("organization and repository are required")
	}
	if branch == "" {
		branch = "main"
	}
	return Repository{Org: org, Repo: repo, Branch: branch, Host: normalizeHost(host)}, nil
}

// DebugConsoleState is a bounded ring of recent log lines.
type DebugConsoleState struct {
	Lines    []string
	MaxLines int
	Scroll   int
}

// NewDebugConsoleState bounds the ring at 500 lines.
func NewDebugConsoleState() DebugConsoleState {
	return DebugConsoleState{MaxLines: 500}
}

func (d DebugConsoleState) clone() DebugConsoleState {
	next := d
	next.Lines = append([]string(nil), d.Lines...)
	return next
}

// Append pushes lines, evicting the oldest past MaxLines.
func (d *DebugConsoleState) Append(lines []string) {
	d.Lines = append(d.Lines, lines...)
	if overflow := len(d.Lines) - d.MaxLines; overflow > 0 {
		d.Lines = d.Lines[overflow:]
	}
}

// KeyBindingsPanelState scrolls the help panel.
type KeyBindingsPanelState struct {
	Scroll int
}

// StatusKind classifies status bar messages.
type StatusKind int

const (
	StatusRunning StatusKind = iota
	StatusSuccess
	StatusError
	StatusWarning
	StatusInfo
)

// Emoji returns the message icon.
func (k StatusKind) Emoji() string {
	switch k {
	case StatusRunning:
		return "⏳"
	case StatusSuccess:
		return "✅"
	case StatusError:
		return "🚨"
	case StatusWarning:
		return "⚠️"
	default:
		return "ℹ️"
	}
}

// StatusMessage is one entry of the status history ring.
type StatusMessage struct {
	Timestamp time.Time
	Kind      StatusKind
	Message   string
	// Source names the action that produced the message.
	Source string
}

// StatusBarState is an append-only ring capped at MaxHistory.
type StatusBarState struct {
	Messages   []StatusMessage
	MaxHistory int
}

// NewStatusBarState uses the default cap of 100 messages.
func NewStatusBarState() StatusBarState {
	return StatusBarState{MaxHistory: 100}
}

func (s StatusBarState) clone() StatusBarState {
	next := s
	next.Messages = append([]StatusMessage(nil), s.Messages...)
	return next
}

// Push appends a message, evicting the oldest past the cap.
func (s *StatusBarState) Push(message StatusMessage) {
	s.Messages = append(s.Messages, message)
	if len(s.Messages) > s.MaxHistory {
		s.Messages = s.Messages[len(s.Messages)-s.MaxHistory:]
	}
}

// Latest returns the most recent message, or nil when empty.
func (s *StatusBarState) Latest() *StatusMessage {
	if len(s.Messages) == 0 {
		return nil
	}
	return &s.Messages[len(s.Messages)-1]
}

// BuildLogLoading tracks the build log fetch lifecycle.
type BuildLogLoading int

const (
	BuildLogIdle BuildLogLoading = iota
	BuildLogFetching
	BuildLogReady
	BuildLogFailed
)

// BuildLogPrContext labels the build log header.
type BuildLogPrContext struct {
	Number int
	Title  string
	Author string
}

// BuildLogState is the CI log tree slice.
type BuildLogState struct {
	Workflows []actionslog.WorkflowNode
	// Expanded holds node path keys ("0", "0:1", "0:1:2").
	Expanded map[string]struct{}
	// CursorPath is [workflow, job?, step?, line?] indices.
	CursorPath       []int
	ScrollOffset     int
	HorizontalScroll int
	ShowTimestamps   bool
	ViewportHeight   int
	PrContext        BuildLogPrContext
	Loading          BuildLogLoading
	LoadError        string
	// RunID of the displayed workflow run (for reruns).
	RunID int64
}

// NewBuildLogState starts with the cursor on the first workflow.
func NewBuildLogState() BuildLogState {
	return BuildLogState{
		Expanded:       make(map[string]struct{}),
		CursorPath:     []int{0},
		ViewportHeight: 20,
	}
}

func (b BuildLogState) clone() BuildLogState {
	next := b
	next.Workflows = append([]actionslog.WorkflowNode(nil), b.Workflows...)
	next.Expanded = make(map[string]struct{}, len(b.Expanded))
	for k := range b.Expanded {
		next.Expanded[k] = struct{}{}
	}
	next.CursorPath = append([]int(nil), b.CursorPath...)
	return next
}

// PathKey renders a cursor path as the "w:j:s" key format.
func PathKey(path []int) string {
	parts := make([]string, len(path))
	for i, p := range path {
		parts[i] = fmt.Sprintf("%d", p)
	}
	return strings.Join(parts, ":")
}

// IsExpanded reports whether the node at path is expanded.
func (b *BuildLogState) IsExpanded(path []int) bool {
	_, ok := b.Expanded[PathKey(path)]
	return ok
}

// ToggleExpanded flips the node at path.
func (b *BuildLogState) ToggleExpanded(path []int) {
	key := PathKey(path)
	if _, ok := b.Expanded[key]; ok {
		delete(b.Expanded, key)
	} else {
		b.Expanded[key] = struct{}{}
	}
}

// FlattenVisibleNodes lists the paths of all visible rows, respecting
// expansion: workflows, then jobs, steps, and lines of expanded parents.
func (b *BuildLogState) FlattenVisibleNodes() [][]int {
	var rows [][]int
	for w := range b.Workflows {
		rows = append(rows, []int{w})
		if !b.IsExpanded([]int{w}) {
			continue
		}
		for j := range b.Workflows[w].Jobs {
			rows = append(rows, []int{w, j})
			if !b.IsExpanded([]int{w, j}) {
				continue
			}
			for st := range b.Workflows[w].Jobs[j].Steps {
				rows = append(rows, []int{w, j, st})
				if !b.IsExpanded([]int{w, j, st}) {
					continue
				}
				for l := range b.Workflows[w].Jobs[j].Steps[st].Lines {
					rows = append(rows, []int{w, j, st, l})
				}
			}
		}
	}
	return rows
}

// CursorIndex finds the cursor within the flattened rows, or -1.
func (b *BuildLogState) CursorIndex() int {
	for i, path := range b.FlattenVisibleNodes() {
		if pathsEqual(path, b.CursorPath) {
			return i
		}
	}
	return -1
}

// LineAt resolves a 4-deep path to its log line, or nil.
func (b *BuildLogState) LineAt(path []int) *actionslog.LogLine {
	if len(path) != 4 {
		return nil
	}
	w, j, st, l := path[0], path[1], path[2], path[3]
	if w >= len(b.Workflows) || j >= len(b.Workflows[w].Jobs) ||
		st >= len(b.Workflows[w].Jobs[j].Steps) ||
		l >= len(b.Workflows[w].Jobs[j].Steps[st].Lines) {
		return nil
	}
	return &b.Workflows[w].Jobs[j].Steps[st].Lines[l]
}

func pathsEqual(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// MergeBotState is the auto-landing queue.
type MergeBotState struct {
	Active bool
	Queue  []int
	// Notes records per-PR progress messages.
	Notes map[int]string
}

func (m MergeBotState) clone() MergeBotState {
	next := m
	next.Queue = append([]int(nil), m.Queue...)
	next.Notes = make(map[int]string, len(m.Notes))
	for k, v := range m.Notes {
		next.Notes[k] = v
	}
	return next
}

// ConfirmationKind enumerates what a confirmation popup will do.
type ConfirmationKind int

const (
	IntentApprove ConfirmationKind = iota
	IntentComment
	IntentRequestChanges
	IntentClose
)

// ConfirmationIntent carries the pending action the popup confirms.
// PrNumbers is never empty.
type ConfirmationIntent struct {
	Kind      ConfirmationKind
	PrNumbers []int
}

// ActionVerb is the progressive verb for status messages.
func (i ConfirmationIntent) ActionVerb() string {
	switch i.Kind {
	case IntentComment:
		return "Commenting on"
	case IntentRequestChanges:
		return "Requesting changes on"
	case IntentClose:
		return "Closing"
	default:
		return "Approving"
	}
}

// PopupTitle is the popup heading.
func (i ConfirmationIntent) PopupTitle() string {
	switch i.Kind {
	case IntentComment:
		return "Comment on Pull Request"
	case IntentRequestChanges:
		return "Request Changes"
	case IntentClose:
		return "Close Pull Request"
	default:
		return "Approve Pull Request"
	}
}

// Instructions is the input prompt line.
func (i ConfirmationIntent) Instructions() string {
	switch i.Kind {
	case IntentComment:
		return "Enter your comment:"
	case IntentRequestChanges:
		return "Enter your change request message:"
	case IntentClose:
		return "Enter a closing comment (optional):"
	default:
		return "Enter your approval message:"
	}
}

// ConfirmationPopupState is the modal confirmation slice.
type ConfirmationPopupState struct {
	Intent ConfirmationIntent
	// InputValue is prefilled with an intent-specific default.
	InputValue string
	// RepoContext is "owner/repo" for display.
	RepoContext string
}

func (c ConfirmationPopupState) clone() ConfirmationPopupState {
	next := c
	next.Intent.PrNumbers = append([]int(nil), c.Intent.PrNumbers...)
	return next
}

// TargetInfo formats "PR #123" or "PR #123, #321".
func (c *ConfirmationPopupState) TargetInfo() string {
	if len(c.Intent.PrNumbers) == 0 {
		return ""
	}
	parts := make([]string, len(c.Intent.PrNumbers))
	for i, n := range c.Intent.PrNumbers {
		if i == 0 {
			parts[i] = fmt.Sprintf("PR #%d", n)
		} else {
			parts[i] = fmt.Sprintf("#%d", n)
		}
	}
	return strings.Join(parts, ", ")
}

// RequiresInput is true when the message is mandatory (comment and
// request-changes); approve and close permit empty messages.
func (c *ConfirmationPopupState) RequiresInput() bool {
	return c.Intent.Kind == IntentComment || c.Intent.Kind == IntentRequestChanges
}

// IsValid reports whether the popup can confirm.
func (c *ConfirmationPopupState) IsValid() bool {
	if c.RequiresInput() {
		return strings.TrimSpace(c.InputValue) != ""
	}
	return true
}

func cloneDiffState(s *diffview.State) *diffview.State {
	if s == nil {
		return nil
	}
	next := *s
	next.PendingComments = append([]diffview.PendingComment(nil), s.PendingComments...)
	if s.Editor != nil {
		editor := *s.Editor
		next.Editor = &editor
	}
	if s.Diff != nil {
		diff := *s.Diff
		diff.Files = make([]diffview.FileDiff, len(s.Diff.Files))
		for i, file := range s.Diff.Files {
			cloned := file
			cloned.Hunks = make([]diffview.Hunk, len(file.Hunks))
			for h, hunk := range file.Hunks {
				clonedHunk := hunk
				clonedHunk.Lines = append([]diffview.DiffLine(nil), hunk.Lines...)
				cloned.Hunks[h] = clonedHunk
			}
			diff.Files[i] = cloned
		}
		next.Diff = &diff
	}
	return &next
}



func containsFold(haystack, needle string) bool {
	return needle == "" ||
		strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
