package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testState() AppState {
	state := NewAppState()
	state.ViewStack = []ViewID{ViewMain}
	state.MainView.Repositories = []Repository{
		{Org: "acme", Repo: "rocket", Branch: "main"},
	}
	state.MainView.RepoData[0] = RepositoryData{
		Prs: []Pr{
			{Number: 1, Title: "first", Author: "alice", Mergeable: MergeableReady},
			{Number: 2, Title: "second", Author: "bob", Mergeable: MergeableNeedsRebase},
			{Number: 3, Title: "third", Author: "alice", Mergeable: MergeableBuildFailed},
		},
		SelectedPrNumbers: map[int]struct{}{},
		Loading:           LoadingLoaded,
	}
	return state
}

func TestViewStackNeverEmpty(t *testing.T) {
	state := NewAppState()
	for i := 0; i < 5; i++ {
		state = Reduce(state, GlobalClose{})
		require.NotEmpty(t, state.ViewStack)
	}
	// Close on a single view quits instead of popping.
	assert.False(t, state.Running)
}

func TestPushViewToggleSemantics(t *testing.T) {
	state := testState()
	state = Reduce(state, GlobalPushView{View: ViewDebugConsole})
	assert.Equal(t, ViewDebugConsole, state.ActiveView())
	assert.Len(t, state.ViewStack, 2)

	// Pushing the active view pops it.
	state = Reduce(state, GlobalPushView{View: ViewDebugConsole})
	assert.Equal(t, ViewMain, state.ActiveView())
	assert.Len(t, state.ViewStack, 1)
}

func TestReplaceViewReplacesWholeStack(t *testing.T) {
	state := testState()
	state = Reduce(state, GlobalPushView{View: ViewDebugConsole})
	state = Reduce(state, GlobalPushView{View: ViewKeyBindings})
	state = Reduce(state, GlobalReplaceView{View: ViewMain})
	assert.Equal(t, []ViewID{ViewMain}, state.ViewStack)
}

func TestReducePurity(t *testing.T) {
	state := testState()
	action := PrCursorDown{}
	first := Reduce(state.Clone(), action)
	second := Reduce(state.Clone(), action)
	assert.Equal(t, first.MainView.RepoData[0].SelectedPr,
		second.MainView.RepoData[0].SelectedPr)
	// The input state is untouched.
	assert.Equal(t, 0, state.MainView.RepoData[0].SelectedPr)
}

func TestQuitSetsRunningFalse(t *testing.T) {
	state := Reduce(testState(), GlobalQuit{})
	assert.False(t, state.Running)
}

func TestStatusBarRing(t *testing.T) {
	bar := NewStatusBarState()
	bar.MaxHistory = 3
	for i := 0; i < 4; i++ {
		bar.Push(StatusMessage{Message: string(rune('a' + i))})
	}
	assert.Len(t, bar.Messages, 3)
	assert.Equal(t, "b", bar.Messages[0].Message) // oldest dropped
	assert.Equal(t, "d", bar.Latest().Message)
}

func TestStatusBarLatestAfterPush(t *testing.T) {
	bar := NewStatusBarState()
	bar.Push(StatusMessage{Message: "hello"})
	require.NotNil(t, bar.Latest())
	assert.Equal(t, "hello", bar.Latest().Message)
}

func TestFilterCycleLaw(t *testing.T) {
	f := PrFilter{}
	assert.Equal(t, f, f.Next().Next().Next().Next())
}

func TestFilterMatching(t *testing.T) {
	ready := Pr{Mergeable: MergeableReady, Author: "alice", Title: "Fix crash"}
	failed := Pr{Mergeable: MergeableBuildFailed, Author: "bob"}

	assert.True(t, PrFilter{Kind: FilterReadyToMerge}.Matches(ready, ""))
	assert.False(t, PrFilter{Kind: FilterReadyToMerge}.Matches(failed, ""))
	assert.True(t, PrFilter{Kind: FilterBuildFailed}.Matches(failed, ""))
	assert.True(t, PrFilter{Kind: FilterMyPRs}.Matches(ready, "alice"))
	assert.False(t, PrFilter{Kind: FilterMyPRs}.Matches(ready, "bob"))
	assert.True(t, PrFilter{Kind: FilterCustom, Text: "crash"}.Matches(ready, ""))
	assert.False(t, PrFilter{Kind: FilterCustom, Text: "zzz"}.Matches(ready, ""))
}

func TestPrCursorClampsAndSticks(t *testing.T) {
	state := testState()
	state = Reduce(state, PrCursorUp{})
	assert.Equal(t, 0, state.MainView.RepoData[0].SelectedPr)

	for i := 0; i < 10; i++ {
		state = Reduce(state, PrCursorDown{})
	}
	assert.Equal(t, 2, state.MainView.RepoData[0].SelectedPr)
}

func TestEmptyPrListNavigationNoops(t *testing.T) {
	state := testState()
	state.MainView.RepoData[0] = RepositoryData{SelectedPrNumbers: map[int]struct{}{}}

	state = Reduce(state, PrCursorDown{})
	state = Reduce(state, PrToggleSelection{})
	state = Reduce(state, PrSelectAll{})

	data := state.MainView.RepoData[0]
	assert.Equal(t, 0, data.SelectedPr)
	assert.Empty(t, data.SelectedPrNumbers)
}

func TestPrSelectionToggle(t *testing.T) {
	state := testState()
	state = Reduce(state, PrToggleSelection{})
	assert.Contains(t, state.MainView.RepoData[0].SelectedPrNumbers, 1)

	state = Reduce(state, PrToggleSelection{})
	assert.NotContains(t, state.MainView.RepoData[0].SelectedPrNumbers, 1)

	state = Reduce(state, PrSelectAll{})
	assert.Len(t, state.MainView.RepoData[0].SelectedPrNumbers, 3)

	state = Reduce(state, PrDeselectAll{})
	assert.Empty(t, state.MainView.RepoData[0].SelectedPrNumbers)
}

func TestSelectionTargetsFallBackToCursor(t *testing.T) {
	state := testState()
	data := state.MainView.RepoData[0]
	assert.Equal(t, []int{1}, data.SelectionTargets(""))

	data.SelectedPrNumbers = map[int]struct{}{3: {}, 2: {}}
	assert.Equal(t, []int{2, 3}, data.SelectionTargets(""))
}

func TestConfirmationFlow(t *testing.T) {
	state := testState()
	state = Reduce(state, ConfirmationShow{
		Intent:      ConfirmationIntent{Kind: IntentComment, PrNumbers: []int{1, 2}},
		Default:     "",
		RepoContext: "acme/rocket",
	})
	require.NotNil(t, state.Confirmation)
	assert.Equal(t, ViewConfirmationPopup, state.ActiveView())
	assert.True(t, state.Confirmation.RequiresInput())
	assert.False(t, state.Confirmation.IsValid())
	assert.Equal(t, "PR #1, #2", state.Confirmation.TargetInfo())

	state = Reduce(state, ConfirmationChar{Char: 'x'})
	assert.True(t, state.Confirmation.IsValid())

	state = Reduce(state, ConfirmationConfirmed{})
	assert.Nil(t, state.Confirmation)
	assert.Equal(t, ViewMain, state.ActiveView())
}

func TestConfirmationCancelDiscards(t *testing.T) {
	state := testState()
	state = Reduce(state, ConfirmationShow{
		Intent: ConfirmationIntent{Kind: IntentApprove, PrNumbers: []int{1}},
	})
	state = Reduce(state, ConfirmationCancel{})
	assert.Nil(t, state.Confirmation)
	assert.Equal(t, ViewMain, state.ActiveView())
}

func TestConfirmationRequiresInputMatrix(t *testing.T) {
	requires := map[ConfirmationKind]bool{
		IntentApprove:        false,
		IntentComment:        true,
		IntentRequestChanges: true,
		IntentClose:          false,
	}
	for kind, want := range requires {
		popup := ConfirmationPopupState{Intent: ConfirmationIntent{Kind: kind, PrNumbers: []int{1}}}
		assert.Equal(t, want, popup.RequiresInput(), "kind %v", kind)
	}
}

func TestRepositoryDedupHostAware(t *testing.T) {
	state := testState()
	state = Reduce(state, RecentRepositoriesLoaded{Repos: []Repository{
		{Org: "acme", Repo: "rocket", Branch: "main", Host: "github.com"},
		{Org: "acme", Repo: "widget", Branch: "main"},
	}})
	// The github.com-hosted duplicate of an absent-host repo is not added.
	assert.Len(t, state.MainView.Repositories, 2)
}

func TestSessionRestoreSelectsRepoAndPr(t *testing.T) {
	state := testState()
	state.MainView.Repositories = append(state.MainView.Repositories,
		Repository{Org: "acme", Repo: "widget", Branch: "main"})
	state = Reduce(state, SessionRestored{
		Repo:     &Repository{Org: "acme", Repo: "widget", Branch: "main", Host: "github.com"},
		PrNumber: 2,
	})
	assert.Equal(t, 1, state.MainView.SelectedRepository)

	// PR selection applies when that repo's PRs arrive.
	state = Reduce(state, PrLoaded{RepoIndex: 1, Prs: []Pr{{Number: 7}, {Number: 2}}})
	assert.Equal(t, 1, state.MainView.RepoData[1].SelectedPr)
	assert.Zero(t, state.MainView.PendingSessionPrNo)
}

func TestDebugConsoleRing(t *testing.T) {
	console := NewDebugConsoleState()
	console.MaxLines = 2
	console.Append([]string{"a", "b", "c"})
	assert.Equal(t, []string{"b", "c"}, console.Lines)
}

func TestCloneIndependence(t *testing.T) {
	state := testState()
	clone := state.Clone()
	clone.MainView.RepoData[0] = RepositoryData{}
	clone.ViewStack = append(clone.ViewStack, ViewDebugConsole)
	clone.StatusBar.Push(StatusMessage{Message: "x"})

	assert.Len(t, state.MainView.RepoData[0].Prs, 3)
	assert.Len(t, state.ViewStack, 1)
	assert.Empty(t, state.StatusBar.Messages)
}

func TestMergeBotQueue(t *testing.T) {
	state := testState()
	state = Reduce(state, MergeBotEnqueue{Numbers: []int{1, 2}})
	state = Reduce(state, MergeBotEnqueue{Numbers: []int{2}}) // dedup
	assert.Equal(t, []int{1, 2}, state.MergeBot.Queue)

	state = Reduce(state, MergeBotAdvanced{Number: 1, Done: true, Note: "merged"})
	assert.Equal(t, []int{2}, state.MergeBot.Queue)
	assert.Equal(t, "merged", state.MergeBot.Notes[1])
}
