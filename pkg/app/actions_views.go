package app

import (
	"time"

	"github.com/sassman/gh-pr-lander/pkg/actionslog"
	"github.com/sassman/gh-pr-lander/pkg/diffview"
)

// Repository actions.

// RepositoryAdd opens the add-repository form.
type RepositoryAdd struct{}

// RepositoryNext selects the next repository tab.
type RepositoryNext struct{}

// RepositoryPrevious selects the previous repository tab.
type RepositoryPrevious struct{}

// RepositoryOpenInBrowser opens the selected repository's page.
type RepositoryOpenInBrowser struct{}

// RepositorySubmitted carries a completed add-repository form.
type RepositorySubmitted struct {
	Repo Repository
}

// LoadRecentRepositories asks the repository middleware to load the list.
type LoadRecentRepositories struct{}

// RecentRepositoriesLoaded delivers the recent repositories.
type RecentRepositoriesLoaded struct {
	Repos []Repository
}

// CurrentUserLoaded delivers the authenticated user's login.
type CurrentUserLoaded struct {
	Login string
}

// SessionRestored delivers the saved session selection to apply after
// repositories load.
type SessionRestored struct {
	Repo     *Repository
	PrNumber int
}

// Pull request actions.

// PrLoad asks the GitHub middleware to list PRs for one repository.
type PrLoad struct {
	RepoIndex int
	// Force bypasses cache reads.
	Force bool
}

// PrLoaded delivers a repository's PRs.
type PrLoaded struct {
	RepoIndex int
	Prs       []Pr
}

// PrLoadError reports a failed PR list load.
type PrLoadError struct {
	RepoIndex int
	Message   string
}

// PrChecksLoaded updates one PR's mergeable status from CI results.
type PrChecksLoaded struct {
	RepoIndex int
	Number    int
	Status    MergeableStatus
}

// PrToggleSelection toggles the cursor PR in the bulk-selection set.
type PrToggleSelection struct{}

// PrSelectAll selects every visible PR.
type PrSelectAll struct{}

// PrDeselectAll clears the selection set.
type PrDeselectAll struct{}

// PrRefresh force-reloads the selected repository's PRs.
type PrRefresh struct{}

// PrOpenInBrowser opens the cursor PR's page.
type PrOpenInBrowser struct{}

// PrOpenInIDE checks the PR out into the temp dir and opens the IDE.
type PrOpenInIDE struct{}

// PrOpenDiff opens the diff viewer for the cursor PR.
type PrOpenDiff struct{}

// PrOpenBuildLogs opens the build log view for the cursor PR.
type PrOpenBuildLogs struct{}

// PrCycleFilter advances the filter preset cycle.
type PrCycleFilter struct{}

// PrClearFilter resets the filter to All.
type PrClearFilter struct{}

// PrSetCustomFilter applies a text filter.
type PrSetCustomFilter struct {
	Text string
}

// PrCursorDown moves the PR table cursor down.
type PrCursorDown struct{}

// PrCursorUp moves the PR table cursor up.
type PrCursorUp struct{}

// PrSelectByNumber moves the cursor onto a PR by number (session restore).
type PrSelectByNumber struct {
	Number int
}

// PrApprove opens the approval confirmation for the selected PRs.
type PrApprove struct{}

// PrComment opens the comment confirmation for the selected PRs.
type PrComment struct{}

// PrRequestChanges opens the request-changes confirmation.
type PrRequestChanges struct{}

// PrClose opens the close confirmation.
type PrClose struct{}

// PrMerge merges the selected (Ready) PRs.
type PrMerge struct{}

// PrRebase enables auto-merge on the targeted PRs; the PR branch itself is
// not updated.
type PrRebase struct{}

// ApproveWithMessage performs the approval API calls.
type ApproveWithMessage struct {
	PrNumbers []int
	Message   string
}

// CommentWithMessage posts a comment on each PR.
type CommentWithMessage struct {
	PrNumbers []int
	Message   string
}

// RequestChangesWithMessage submits a request-changes review on each PR.
type RequestChangesWithMessage struct {
	PrNumbers []int
	Message   string
}

// CloseWithMessage closes each PR with a trailing comment.
type CloseWithMessage struct {
	PrNumbers []int
	Message   string
}

// PrOperationDone reports one PR operation's success (per-PR, never bulk).
type PrOperationDone struct {
	Number    int
	Operation string
}

// PrOperationFailed reports one PR operation's failure (per-PR, never bulk).
type PrOperationFailed struct {
	Number    int
	Operation string
	Message   string
}

// Command palette actions.

// CommandPaletteChar appends to the palette query.
type CommandPaletteChar struct {
	Char rune
}

// CommandPaletteBackspace removes the last query rune.
type CommandPaletteBackspace struct{}

// CommandPaletteClear empties the query.
type CommandPaletteClear struct{}

// CommandPaletteMove moves the palette cursor by delta.
type CommandPaletteMove struct {
	Delta int
}

// CommandPaletteExecute runs the highlighted command.
type CommandPaletteExecute struct{}

// Add repository form actions.

// AddRepoChar types into the focused form field.
type AddRepoChar struct {
	Char rune
}

// AddRepoBackspace deletes before the cursor in the focused field.
type AddRepoBackspace struct{}

// AddRepoClearField empties the focused field.
type AddRepoClearField struct{}

// AddRepoNextField focuses the next field.
type AddRepoNextField struct{}

// AddRepoPrevField focuses the previous field.
type AddRepoPrevField struct{}

// AddRepoSubmit validates and submits the form.
type AddRepoSubmit struct{}

// Key bindings panel actions.

// KeyBindingsScroll scrolls the bindings panel.
type KeyBindingsScroll struct {
	Delta int
}

// Debug console actions.

// DebugConsoleClear empties the console ring.
type DebugConsoleClear struct{}

// DebugConsoleAppend delivers tailed log lines.
type DebugConsoleAppend struct {
	Lines []string
}

// DebugConsoleScroll scrolls the console.
type DebugConsoleScroll struct {
	Delta int
}

// Status bar actions.

// StatusPush appends a message to the status ring. The timestamp is
// stamped at dispatch so the reducer stays free of time reads.
type StatusPush struct {
	Kind      StatusKind
	Message   string
	Source    string
	Timestamp time.Time
}

// Build log actions.

// BuildLogOpen opens the build log view for the cursor PR.
type BuildLogOpen struct{}

// BuildLogLoaded delivers the parsed workflow tree.
type BuildLogLoaded struct {
	Workflows []actionslog.WorkflowNode
	PrNumber  int
	PrTitle   string
	PrAuthor  string
	RunID     int64
}

// BuildLogLoadError reports a failed log download/parse.
type BuildLogLoadError struct {
	Message string
}

// BuildLogCursorMove moves the tree cursor by delta visible rows.
type BuildLogCursorMove struct {
	Delta int
}

// BuildLogToggleExpand toggles the node under the cursor.
type BuildLogToggleExpand struct{}

// BuildLogExpandAll expands every workflow, job, and step.
type BuildLogExpandAll struct{}

// BuildLogCollapseAll collapses the whole tree.
type BuildLogCollapseAll struct{}

// BuildLogNextError jumps to the next ::error:: line.
type BuildLogNextError struct{}

// BuildLogPrevError jumps to the previous ::error:: line.
type BuildLogPrevError struct{}

// BuildLogToggleTimestamps shows/hides line timestamps.
type BuildLogToggleTimestamps struct{}

// BuildLogRerunFailed requeues the failed jobs of the displayed run.
type BuildLogRerunFailed struct{}

// Confirmation popup actions.

// ConfirmationShow opens the popup with an intent and a default message.
type ConfirmationShow struct {
	Intent      ConfirmationIntent
	Default     string
	RepoContext string
}

// ConfirmationChar types into the message input.
type ConfirmationChar struct {
	Char rune
}

// ConfirmationBackspace deletes the last input rune.
type ConfirmationBackspace struct{}

// ConfirmationClearLine empties the input.
type ConfirmationClearLine struct{}

// ConfirmationConfirm executes the intent with the edited message.
type ConfirmationConfirm struct{}

// ConfirmationConfirmed closes the popup after the intent was dispatched.
type ConfirmationConfirmed struct{}

// ConfirmationCancel closes the popup, discarding its state.
type ConfirmationCancel struct{}

// Diff viewer actions.

// DiffOpen opens the diff viewer for a PR.
type DiffOpen struct {
	Number int
}

// DiffLoaded delivers a parsed diff.
type DiffLoaded struct {
	Number int
	Diff   *diffview.PullRequestDiff
}

// DiffLoadError reports a failed diff fetch/parse.
type DiffLoadError struct {
	Message string
}

// DiffCursorMove moves the content cursor by delta display lines.
type DiffCursorMove struct {
	Delta int
}

// DiffCursorTop jumps to the first display line.
type DiffCursorTop struct{}

// DiffCursorBottom jumps to the last display line.
type DiffCursorBottom struct{}

// DiffHalfPage scrolls half a page (negative: up).
type DiffHalfPage struct {
	Delta int
}

// DiffFileMove moves the file selection by delta.
type DiffFileMove struct {
	Delta int
}

// DiffToggleFocus switches between file tree and content.
type DiffToggleFocus struct{}

// DiffToggleFileTree shows/hides the file tree.
type DiffToggleFileTree struct{}

// DiffToggleVisual enters/exits visual selection mode.
type DiffToggleVisual struct{}

// DiffStartComment opens the comment editor at the cursor or selection.
type DiffStartComment struct{}

// DiffEditorInput forwards a text-input op to the comment editor.
type DiffEditorInput struct {
	Op   TextInputOp
	Char rune
}

// DiffEditorCommit commits the comment editor.
type DiffEditorCommit struct{}

// DiffEditorCancel cancels the comment editor.
type DiffEditorCancel struct{}

// DiffCommentEvent folds a comment event into the pending list.
type DiffCommentEvent struct {
	Event diffview.DiffEvent
}

// DiffExpandContext requests more context around the cursor hunk.
type DiffExpandContext struct {
	Direction diffview.ExpandDirection
	Count     int
}

// DiffContextInserted delivers fetched context lines.
type DiffContextInserted struct {
	Path      string
	Direction diffview.ExpandDirection
	FromLine  int
	Lines     []string
}

// DiffShowReviewPopup opens the review submission popup.
type DiffShowReviewPopup struct{}

// DiffReviewCursorMove moves the review popup choice.
type DiffReviewCursorMove struct {
	Delta int
}

// DiffSubmitReview submits the review with all pending comments.
type DiffSubmitReview struct {
	Event diffview.ReviewEvent
	Body  string
}

// DiffReviewSubmitted reports a successful review submission.
type DiffReviewSubmitted struct {
	Number int
}

// DiffEscape applies the viewer's escape policy.
type DiffEscape struct{}

// Merge bot actions.

// MergeBotStart begins working the queue.
type MergeBotStart struct{}

// MergeBotStop pauses the queue.
type MergeBotStop struct{}

// MergeBotEnqueue adds PR numbers to the landing queue.
type MergeBotEnqueue struct {
	Numbers []int
}

// MergeBotAdvanced reports queue progress on one PR.
type MergeBotAdvanced struct {
	Number int
	Done   bool
	Note   string
}

func (RepositoryAdd) isAction()             {}
func (RepositoryNext) isAction()            {}
func (RepositoryPrevious) isAction()        {}
func (RepositoryOpenInBrowser) isAction()   {}
func (RepositorySubmitted) isAction()       {}
func (LoadRecentRepositories) isAction()    {}
func (RecentRepositoriesLoaded) isAction()  {}
func (CurrentUserLoaded) isAction()         {}
func (SessionRestored) isAction()           {}
func (PrLoad) isAction()                    {}
func (PrLoaded) isAction()                  {}
func (PrLoadError) isAction()               {}
func (PrChecksLoaded) isAction()            {}
func (PrToggleSelection) isAction()         {}
func (PrSelectAll) isAction()               {}
func (PrDeselectAll) isAction()             {}
func (PrRefresh) isAction()                 {}
func (PrOpenInBrowser) isAction()           {}
func (PrOpenInIDE) isAction()               {}
func (PrOpenDiff) isAction()                {}
func (PrOpenBuildLogs) isAction()           {}
func (PrCycleFilter) isAction()             {}
func (PrClearFilter) isAction()             {}
func (PrSetCustomFilter) isAction()         {}
func (PrCursorDown) isAction()              {}
func (PrCursorUp) isAction()                {}
func (PrSelectByNumber) isAction()          {}
func (PrApprove) isAction()                 {}
func (PrComment) isAction()                 {}
func (PrRequestChanges) isAction()          {}
func (PrClose) isAction()                   {}
func (PrMerge) isAction()                   {}
func (PrRebase) isAction()                  {}
func (ApproveWithMessage) isAction()        {}
func (CommentWithMessage) isAction()        {}
func (RequestChangesWithMessage) isAction() {}
func (CloseWithMessage) isAction()          {}
func (PrOperationDone) isAction()           {}
func (PrOperationFailed) isAction()         {}
func (CommandPaletteChar) isAction()        {}
func (CommandPaletteBackspace) isAction()   {}
func (CommandPaletteClear) isAction()       {}
func (CommandPaletteMove) isAction()        {}
func (CommandPaletteExecute) isAction()     {}
func (AddRepoChar) isAction()               {}
func (AddRepoBackspace) isAction()          {}
func (AddRepoClearField) isAction()         {}
func (AddRepoNextField) isAction()          {}
func (AddRepoPrevField) isAction()          {}
func (AddRepoSubmit) isAction()             {}
func (KeyBindingsScroll) isAction()         {}
func (DebugConsoleClear) isAction()         {}
func (DebugConsoleAppend) isAction()        {}
func (DebugConsoleScroll) isAction()        {}
func (StatusPush) isAction()                {}
func (BuildLogOpen) isAction()              {}
func (BuildLogLoaded) isAction()            {}
func (BuildLogLoadError) isAction()         {}
func (BuildLogCursorMove) isAction()        {}
func (BuildLogToggleExpand) isAction()      {}
func (BuildLogExpandAll) isAction()         {}
func (BuildLogCollapseAll) isAction()       {}
func (BuildLogNextError) isAction()         {}
func (BuildLogPrevError) isAction()         {}
func (BuildLogToggleTimestamps) isAction()  {}
func (BuildLogRerunFailed) isAction()       {}
func (ConfirmationShow) isAction()          {}
func (ConfirmationChar) isAction()          {}
func (ConfirmationBackspace) isAction()     {}
func (ConfirmationClearLine) isAction()     {}
func (ConfirmationConfirm) isAction()       {}
func (ConfirmationConfirmed) isAction()     {}
func (ConfirmationCancel) isAction()        {}
func (DiffOpen) isAction()                  {}
func (DiffLoaded) isAction()                {}
func (DiffLoadError) isAction()             {}
func (DiffCursorMove) isAction()            {}
func (DiffCursorTop) isAction()             {}
func (DiffCursorBottom) isAction()          {}
func (DiffHalfPage) isAction()              {}
func (DiffFileMove) isAction()              {}
func (DiffToggleFocus) isAction()           {}
func (DiffToggleFileTree) isAction()        {}
func (DiffToggleVisual) isAction()          {}
func (DiffStartComment) isAction()          {}
func (DiffEditorInput) isAction()           {}
func (DiffEditorCommit) isAction()          {}
func (DiffEditorCancel) isAction()          {}
func (DiffCommentEvent) isAction()          {}
func (DiffExpandContext) isAction()         {}
func (DiffContextInserted) isAction()       {}
func (DiffShowReviewPopup) isAction()       {}
func (DiffReviewCursorMove) isAction()      {}
func (DiffSubmitReview) isAction()          {}
func (DiffReviewSubmitted) isAction()       {}
func (DiffEscape) isAction()                {}
func (MergeBotStart) isAction()             {}
func (MergeBotStop) isAction()              {}
func (MergeBotEnqueue) isAction()           {}
func (MergeBotAdvanced) isAction()          {}
