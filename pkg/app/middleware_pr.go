package app

import (
	"fmt"
	"os/exec"
	"path/filepath"

	"github.com/sassman/gh-pr-lander/pkg/browser"
	"github.com/sassman/gh-pr-lander/pkg/logger"
)

var prLog = logger.New("app:pullrequest")

// PullRequestMiddleware turns PR-level intents into their effects: opening
// browsers and IDEs, building confirmation intents from the selection, and
// handing bulk targets to the merge bot.
type PullRequestMiddleware struct{}

// NewPullRequestMiddleware builds the PR effects handler.
func NewPullRequestMiddleware() *PullRequestMiddleware {
	return &PullRequestMiddleware{}
}

func (m *PullRequestMiddleware) Handle(action Action, state *AppState, dispatcher *Dispatcher) bool {
	data := state.MainView.SelectedRepoData()
	targets := data.SelectionTargets(state.MainView.CurrentUser)

	switch action.(type) {
	case PrOpenInBrowser:
		pr := cursorPr(state)
		if pr == nil || pr.HTMLURL == "" {
			return false
		}
		if err := browser.Open(pr.HTMLURL); err != nil {
			dispatcher.Dispatch(statusNow(StatusError, err.Error(), "PrOpenInBrowser"))
		}
		return false

	case PrOpenInIDE:
		m.openInIDE(state, dispatcher)
		return false

	case PrOpenDiff:
		pr := cursorPr(state)
		if pr == nil {
			return false
		}
		dispatcher.Dispatch(DiffOpen{Number: pr.Number})
		return false

	case PrOpenBuildLogs:
		dispatcher.Dispatch(BuildLogOpen{})
		return false

	case PrApprove:
		m.confirm(state, dispatcher, IntentApprove, targets, state.Config.ApprovalMessage)
		return false

	case PrComment:
		m.confirm(state, dispatcher, IntentComment, targets, state.Config.CommentMessage)
		return false

	case PrRequestChanges:
		m.confirm(state, dispatcher, IntentRequestChanges, targets, state.Config.RequestChangesMessage)
		return false

	case PrClose:
		m.confirm(state, dispatcher, IntentClose, targets, state.Config.CloseMessage)
		return false

	case MergeBotEnqueue:
		// Fill an empty enqueue from the current selection.
		enqueue := action.(MergeBotEnqueue)
		if len(enqueue.Numbers) == 0 && len(targets) > 0 {
			dispatcher.Dispatch(MergeBotEnqueue{Numbers: targets})
			return false
		}
		return true

	case PrCursorDown, PrCursorUp, PrSelectByNumber:
		// Observe cursor changes for session persistence; the reducer moves
		// the cursor, the session middleware saves the number.
		if pr := cursorPrAfter(state, action); pr != nil {
			dispatcher.Dispatch(NewEvent(EventPrSelected{Number: pr.Number}))
		}
		return true
	}
	return true
}

// confirm opens the confirmation popup for the current selection. No
// selection is a no-op with a hint, never a broken popup (the intent's
// number set must be non-empty).
func (m *PullRequestMiddleware) confirm(state *AppState, dispatcher *Dispatcher, kind ConfirmationKind, targets []int, defaultMessage string) {
	if len(targets) == 0 {
		dispatcher.Dispatch(statusNow(StatusWarning, "No pull request selected", "Confirmation"))
		return
	}
	repoContext := ""
	if repo, ok := state.MainView.SelectedRepo(); ok {
		repoContext = repo.DisplayName()
	}
	dispatcher.Dispatch(ConfirmationShow{
		Intent:      ConfirmationIntent{Kind: kind, PrNumbers: targets},
		Default:     defaultMessage,
		RepoContext: repoContext,
	})
}

func (m *PullRequestMiddleware) openInIDE(state *AppState, dispatcher *Dispatcher) {
	pr := cursorPr(state)
	repo, ok := state.MainView.SelectedRepo()
	if pr == nil || !ok {
		return
	}
	checkout := filepath.Join(state.Config.TempDir,
		fmt.Sprintf("%s-%s-%d", repo.Org, repo.Repo, pr.Number))
	cmd := exec.Command(state.Config.IDECommand, checkout)
	if err := cmd.Start(); err != nil {
		dispatcher.Dispatch(statusNow(StatusError,
			"IDE launch failed: "+err.Error(), "PrOpenInIDE"))
		return
	}
	go func() { _ = cmd.Wait() }()
	prLog.Printf("Opened %s in %s", checkout, state.Config.IDECommand)
	dispatcher.Dispatch(statusNow(StatusInfo,
		fmt.Sprintf("Opening #%d in %s", pr.Number, state.Config.IDECommand), "PrOpenInIDE"))
}

// cursorPr resolves the PR under the table cursor.
func cursorPr(state *AppState) *Pr {
	data := state.MainView.SelectedRepoData()
	visible := data.VisiblePrs(state.MainView.CurrentUser)
	if len(visible) == 0 {
		return nil
	}
	idx := data.SelectedPr
	if idx >= len(visible) {
		idx = len(visible) - 1
	}
	return &visible[idx]
}

// cursorPrAfter predicts the cursor PR after a pending cursor action (the
// snapshot still holds the pre-reducer position).
func cursorPrAfter(state *AppState, action Action) *Pr {
	data := state.MainView.SelectedRepoData()
	visible := data.VisiblePrs(state.MainView.CurrentUser)
	if len(visible) == 0 {
		return nil
	}
	idx := data.SelectedPr
	switch a := action.(type) {
	case PrCursorDown:
		if idx+1 < len(visible) {
			idx++
		}
	case PrCursorUp:
		if idx > 0 {
			idx--
		}
	case PrSelectByNumber:
		for i, pr := range visible {
			if pr.Number == a.Number {
				idx = i
			}
		}
	}
	if idx >= len(visible) {
		idx = len(visible) - 1
	}
	return &visible[idx]
}
