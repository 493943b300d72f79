package app

import "github.com/sassman/gh-pr-lander/pkg/diffview"

// CommandID names every keymap-reachable command. The keymap maps key
// patterns to command ids; ToAction turns an id into the dispatched action.
type CommandID int

const (
	CmdNavigateNext CommandID = iota
	CmdNavigatePrevious
	CmdNavigateLeft
	CmdNavigateRight
	CmdNavigateToTop
	CmdNavigateToBottom
	CmdNavigateHalfPageDown
	CmdNavigateHalfPageUp
	CmdRepositoryNext
	CmdRepositoryPrevious
	CmdRepositoryAdd
	CmdRepositoryOpenInBrowser
	CmdDebugToggleConsole
	CmdDebugClearLogs
	CmdCommandPaletteOpen
	CmdPrToggleSelection
	CmdPrSelectAll
	CmdPrDeselectAll
	CmdPrRefresh
	CmdPrOpenInBrowser
	CmdPrMerge
	CmdPrApprove
	CmdPrComment
	CmdPrRequestChanges
	CmdPrClose
	CmdPrOpenInIDE
	CmdPrOpenDiff
	CmdPrOpenBuildLogs
	CmdPrRebase
	CmdPrCycleFilter
	CmdPrClearFilter
	CmdBuildLogNextError
	CmdBuildLogPrevError
	CmdBuildLogToggleTimestamps
	CmdBuildLogExpandAll
	CmdBuildLogCollapseAll
	CmdBuildLogRerunFailed
	CmdBuildLogToggleNode
	CmdDiffStartComment
	CmdDiffToggleVisual
	CmdDiffToggleFileTree
	CmdDiffSubmitReview
	CmdDiffExpandUp
	CmdDiffExpandDown
	CmdMergeBotStart
	CmdMergeBotEnqueue
	CmdKeyBindingsToggle
	CmdGlobalClose
	CmdGlobalQuit
)

// ToAction converts a command into the action it dispatches.
func (c CommandID) ToAction() Action {
	switch c {
	case CmdNavigateNext:
		return Navigate{Op: NavNext}
	case CmdNavigatePrevious:
		return Navigate{Op: NavPrevious}
	case CmdNavigateLeft:
		return Navigate{Op: NavLeft}
	case CmdNavigateRight:
		return Navigate{Op: NavRight}
	case CmdNavigateToTop:
		return Navigate{Op: NavTop}
	case CmdNavigateToBottom:
		return Navigate{Op: NavBottom}
	case CmdNavigateHalfPageDown:
		return Navigate{Op: NavHalfPageDown}
	case CmdNavigateHalfPageUp:
		return Navigate{Op: NavHalfPageUp}
	case CmdRepositoryNext:
		return RepositoryNext{}
	case CmdRepositoryPrevious:
		return RepositoryPrevious{}
	case CmdRepositoryAdd:
		return RepositoryAdd{}
	case CmdRepositoryOpenInBrowser:
		return RepositoryOpenInBrowser{}
	case CmdDebugToggleConsole:
		return GlobalPushView{View: ViewDebugConsole}
	case CmdDebugClearLogs:
		return DebugConsoleClear{}
	case CmdCommandPaletteOpen:
		return GlobalPushView{View: ViewCommandPalette}
	case CmdPrToggleSelection:
		return PrToggleSelection{}
	case CmdPrSelectAll:
		return PrSelectAll{}
	case CmdPrDeselectAll:
		return PrDeselectAll{}
	case CmdPrRefresh:
		return PrRefresh{}
	case CmdPrOpenInBrowser:
		return PrOpenInBrowser{}
	case CmdPrMerge:
		return PrMerge{}
	case CmdPrApprove:
		return PrApprove{}
	case CmdPrComment:
		return PrComment{}
	case CmdPrRequestChanges:
		return PrRequestChanges{}
	case CmdPrClose:
		return PrClose{}
	case CmdPrOpenInIDE:
		return PrOpenInIDE{}
	case CmdPrOpenDiff:
		return PrOpenDiff{}
	case CmdPrOpenBuildLogs:
		return PrOpenBuildLogs{}
	case CmdPrRebase:
		return PrRebase{}
	case CmdPrCycleFilter:
		return PrCycleFilter{}
	case CmdPrClearFilter:
		return PrClearFilter{}
	case CmdBuildLogNextError:
		return BuildLogNextError{}
	case CmdBuildLogPrevError:
		return BuildLogPrevError{}
	case CmdBuildLogToggleTimestamps:
		return BuildLogToggleTimestamps{}
	case CmdBuildLogExpandAll:
		return BuildLogExpandAll{}
	case CmdBuildLogCollapseAll:
		return BuildLogCollapseAll{}
	case CmdBuildLogRerunFailed:
		return BuildLogRerunFailed{}
	case CmdBuildLogToggleNode:
		return BuildLogToggleExpand{}
	case CmdDiffStartComment:
		return DiffStartComment{}
	case CmdDiffToggleVisual:
		return DiffToggleVisual{}
	case CmdDiffToggleFileTree:
		return DiffToggleFileTree{}
	case CmdDiffSubmitReview:
		return DiffShowReviewPopup{}
	case CmdDiffExpandUp:
		return DiffExpandContext{Direction: diffview.ExpandUp, Count: 10}
	case CmdDiffExpandDown:
		return DiffExpandContext{Direction: diffview.ExpandDown, Count: 10}
	case CmdMergeBotStart:
		return MergeBotStart{}
	case CmdMergeBotEnqueue:
		return MergeBotEnqueue{}
	case CmdKeyBindingsToggle:
		return GlobalPushView{View: ViewKeyBindings}
	case CmdGlobalClose:
		return GlobalClose{}
	case CmdGlobalQuit:
		return GlobalQuit{}
	}
	return nil
}

// Description is the human-readable label for palette and help panel.
func (c CommandID) Description() string {
	switch c {
	case CmdNavigateNext:
		return "Navigate down"
	case CmdNavigatePrevious:
		return "Navigate up"
	case CmdNavigateLeft:
		return "Navigate left"
	case CmdNavigateRight:
		return "Navigate right"
	case CmdNavigateToTop:
		return "Jump to top"
	case CmdNavigateToBottom:
		return "Jump to bottom"
	case CmdNavigateHalfPageDown:
		return "Half page down"
	case CmdNavigateHalfPageUp:
		return "Half page up"
	case CmdRepositoryNext:
		return "Next repository"
	case CmdRepositoryPrevious:
		return "Previous repository"
	case CmdRepositoryAdd:
		return "Add repository"
	case CmdRepositoryOpenInBrowser:
		return "Open repository in browser"
	case CmdDebugToggleConsole:
		return "Toggle debug console"
	case CmdDebugClearLogs:
		return "Clear debug logs"
	case CmdCommandPaletteOpen:
		return "Open command palette"
	case CmdPrToggleSelection:
		return "Toggle PR selection"
	case CmdPrSelectAll:
		return "Select all PRs"
	case CmdPrDeselectAll:
		return "Deselect all PRs"
	case CmdPrRefresh:
		return "Refresh pull requests"
	case CmdPrOpenInBrowser:
		return "Open PR in browser"
	case CmdPrMerge:
		return "Merge selected PRs"
	case CmdPrApprove:
		return "Approve selected PRs"
	case CmdPrComment:
		return "Comment on selected PRs"
	case CmdPrRequestChanges:
		return "Request changes on selected PRs"
	case CmdPrClose:
		return "Close selected PRs"
	case CmdPrOpenInIDE:
		return "Open PR in IDE"
	case CmdPrOpenDiff:
		return "Open PR diff"
	case CmdPrOpenBuildLogs:
		return "Open build logs"
	case CmdPrRebase:
		return "Rebase PR branch"
	case CmdPrCycleFilter:
		return "Cycle PR filter"
	case CmdPrClearFilter:
		return "Clear PR filter"
	case CmdBuildLogNextError:
		return "Next error"
	case CmdBuildLogPrevError:
		return "Previous error"
	case CmdBuildLogToggleTimestamps:
		return "Toggle timestamps"
	case CmdBuildLogExpandAll:
		return "Expand all"
	case CmdBuildLogCollapseAll:
		return "Collapse all"
	case CmdBuildLogRerunFailed:
		return "Rerun failed jobs"
	case CmdBuildLogToggleNode:
		return "Toggle node"
	case CmdDiffStartComment:
		return "Comment on line"
	case CmdDiffToggleVisual:
		return "Toggle visual selection"
	case CmdDiffToggleFileTree:
		return "Toggle file tree"
	case CmdDiffSubmitReview:
		return "Submit review"
	case CmdDiffExpandUp:
		return "Expand context above"
	case CmdDiffExpandDown:
		return "Expand context below"
	case CmdMergeBotStart:
		return "Start merge bot"
	case CmdMergeBotEnqueue:
		return "Queue selected PRs for landing"
	case CmdKeyBindingsToggle:
		return "Toggle key bindings help"
	case CmdGlobalClose:
		return "Close view"
	case CmdGlobalQuit:
		return "Quit"
	}
	return ""
}

// commandNames maps the keymap-override spelling to the id.
var commandNames = map[string]CommandID{
	"navigate-next":          CmdNavigateNext,
	"navigate-previous":      CmdNavigatePrevious,
	"navigate-left":          CmdNavigateLeft,
	"navigate-right":         CmdNavigateRight,
	"navigate-top":           CmdNavigateToTop,
	"navigate-bottom":        CmdNavigateToBottom,
	"navigate-half-down":     CmdNavigateHalfPageDown,
	"navigate-half-up":       CmdNavigateHalfPageUp,
	"repository-next":        CmdRepositoryNext,
	"repository-previous":    CmdRepositoryPrevious,
	"repository-add":         CmdRepositoryAdd,
	"repository-open":        CmdRepositoryOpenInBrowser,
	"debug-toggle-console":   CmdDebugToggleConsole,
	"debug-clear-logs":       CmdDebugClearLogs,
	"command-palette":        CmdCommandPaletteOpen,
	"pr-toggle-selection":    CmdPrToggleSelection,
	"pr-select-all":          CmdPrSelectAll,
	"pr-deselect-all":        CmdPrDeselectAll,
	"pr-refresh":             CmdPrRefresh,
	"pr-open-browser":        CmdPrOpenInBrowser,
	"pr-merge":               CmdPrMerge,
	"pr-approve":             CmdPrApprove,
	"pr-comment":             CmdPrComment,
	"pr-request-changes":     CmdPrRequestChanges,
	"pr-close":               CmdPrClose,
	"pr-open-ide":            CmdPrOpenInIDE,
	"pr-open-diff":           CmdPrOpenDiff,
	"pr-open-build-logs":     CmdPrOpenBuildLogs,
	"pr-rebase":              CmdPrRebase,
	"pr-cycle-filter":        CmdPrCycleFilter,
	"pr-clear-filter":        CmdPrClearFilter,
	"build-log-next-error":   CmdBuildLogNextError,
	"build-log-prev-error":   CmdBuildLogPrevError,
	"build-log-timestamps":   CmdBuildLogToggleTimestamps,
	"build-log-expand-all":   CmdBuildLogExpandAll,
	"build-log-collapse-all": CmdBuildLogCollapseAll,
	"build-log-rerun-failed": CmdBuildLogRerunFailed,
	"build-log-toggle-node":  CmdBuildLogToggleNode,
	"diff-comment":           CmdDiffStartComment,
	"diff-visual":            CmdDiffToggleVisual,
	"diff-file-tree":         CmdDiffToggleFileTree,
	"diff-submit-review":     CmdDiffSubmitReview,
	"diff-expand-up":         CmdDiffExpandUp,
	"diff-expand-down":       CmdDiffExpandDown,
	"merge-bot-start":        CmdMergeBotStart,
	"merge-bot-enqueue":      CmdMergeBotEnqueue,
	"key-bindings":           CmdKeyBindingsToggle,
	"close":                  CmdGlobalClose,
	"quit":                   CmdGlobalQuit,
}
