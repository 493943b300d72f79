package app

import (
	"context"
	"fmt"

	"github.com/sassman/gh-pr-lander/pkg/ghclient"
	"github.com/sassman/gh-pr-lander/pkg/logger"
)

var mergeBotLog = logger.New("app:mergebot")

// MergeBotMiddleware works the landing queue: when active, each refresh of
// PR data advances the queue, merging Ready PRs, enabling auto-merge on PRs
// that need a rebase or are still being checked, and noting the status of
// the rest.
type MergeBotMiddleware struct {
	ctx    context.Context
	client ghclient.Client
}

// NewMergeBotMiddleware shares the GitHub client and shutdown context.
func NewMergeBotMiddleware(ctx context.Context, client ghclient.Client) *MergeBotMiddleware {
	return &MergeBotMiddleware{ctx: ctx, client: client}
}

func (m *MergeBotMiddleware) Handle(action Action, state *AppState, dispatcher *Dispatcher) bool {
	switch action.(type) {
	case MergeBotStart:
		dispatcher.Dispatch(statusNow(StatusInfo, "Merge bot started", "MergeBotStart"))
		dispatcher.Dispatch(PrRefresh{})
		return true

	case PrLoaded:
		if state.MergeBot.Active && len(state.MergeBot.Queue) > 0 {
			m.advance(state, dispatcher)
		}
		return true
	}
	return true
}

func (m *MergeBotMiddleware) advance(state *AppState, dispatcher *Dispatcher) {
	repo, ok := state.MainView.SelectedRepo()
	if !ok {
		return
	}
	data := state.MainView.SelectedRepoData()
	number := state.MergeBot.Queue[0]
	pr := prByNumber(data.Prs, number)
	if pr == nil {
		// The PR left the list (merged or closed elsewhere): queue advances.
		dispatcher.Dispatch(MergeBotAdvanced{Number: number, Done: true, Note: "gone"})
		return
	}

	switch {
	case pr.Mergeable.CanMerge():
		if err := m.client.MergePullRequest(m.ctx, repo.Org, repo.Repo, number); err != nil {
			mergeBotLog.Printf("Queue merge of #%d failed: %v", number, err)
			dispatcher.Dispatch(MergeBotAdvanced{Number: number, Note: "merge failed: " + err.Error()})
			return
		}
		dispatcher.Dispatch(MergeBotAdvanced{Number: number, Done: true, Note: "merged"})
		dispatcher.Dispatch(statusNow(StatusSuccess,
			fmt.Sprintf("Merge bot landed #%d", number), "MergeBot"))
		dispatcher.Dispatch(PrRefresh{})

	case pr.Mergeable == MergeableNeedsRebase || pr.Mergeable == MergeableChecking:
		if err := m.client.EnableAutoMerge(m.ctx, repo.Org, repo.Repo, number); err != nil {
			dispatcher.Dispatch(MergeBotAdvanced{Number: number, Note: "auto-merge failed: " + err.Error()})
			return
		}
		dispatcher.Dispatch(MergeBotAdvanced{Number: number, Note: "auto-merge enabled"})

	default:
		dispatcher.Dispatch(MergeBotAdvanced{Number: number,
			Note: "waiting: " + pr.Mergeable.Label()})
	}
}
