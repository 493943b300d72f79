package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfirmationConfirmDispatchesIntent(t *testing.T) {
	dispatcher, drain := newTestDispatcher()
	m := NewConfirmationPopupMiddleware()
	state := testState()
	state = Reduce(state, ConfirmationShow{
		Intent:      ConfirmationIntent{Kind: IntentApprove, PrNumbers: []int{1, 3}},
		Default:     "ship it",
		RepoContext: "acme/rocket",
	})

	consumed := !m.Handle(ConfirmationConfirm{}, &state, dispatcher)
	assert.True(t, consumed)

	actions := drain()
	require.Len(t, actions, 2)
	approve, ok := actions[0].(ApproveWithMessage)
	require.True(t, ok)
	assert.Equal(t, []int{1, 3}, approve.PrNumbers)
	assert.Equal(t, "ship it", approve.Message)
	assert.IsType(t, ConfirmationConfirmed{}, actions[1])
}

func TestConfirmationConfirmRejectsMissingRequiredInput(t *testing.T) {
	dispatcher, drain := newTestDispatcher()
	m := NewConfirmationPopupMiddleware()
	state := testState()
	state = Reduce(state, ConfirmationShow{
		Intent: ConfirmationIntent{Kind: IntentRequestChanges, PrNumbers: []int{1}},
	})

	m.Handle(ConfirmationConfirm{}, &state, dispatcher)
	actions := drain()
	require.Len(t, actions, 1)
	status, ok := actions[0].(StatusPush)
	require.True(t, ok)
	assert.Equal(t, StatusWarning, status.Kind)
}

func TestPaletteExecuteClosesAndDispatches(t *testing.T) {
	dispatcher, drain := newTestDispatcher()
	m := NewCommandPaletteMiddleware()
	state := testState()
	state.ViewStack = []ViewID{ViewMain, ViewCommandPalette}
	state.CommandPalette.Query = "Refresh pull"

	m.Handle(CommandPaletteExecute{}, &state, dispatcher)
	actions := drain()
	require.Len(t, actions, 2)
	assert.IsType(t, GlobalClose{}, actions[0])
	assert.IsType(t, PrRefresh{}, actions[1])
}

func TestPullRequestConfirmBuildsIntentFromSelection(t *testing.T) {
	dispatcher, drain := newTestDispatcher()
	m := NewPullRequestMiddleware()
	state := testState()
	data := state.MainView.RepoData[0]
	data.SelectedPrNumbers = map[int]struct{}{2: {}, 1: {}}
	state.MainView.RepoData[0] = data

	m.Handle(PrApprove{}, &state, dispatcher)
	actions := drain()
	require.Len(t, actions, 1)
	show, ok := actions[0].(ConfirmationShow)
	require.True(t, ok)
	assert.Equal(t, IntentApprove, show.Intent.Kind)
	assert.Equal(t, []int{1, 2}, show.Intent.PrNumbers)
	assert.Equal(t, state.Config.ApprovalMessage, show.Default)
	assert.Equal(t, "acme/rocket", show.RepoContext)
}

func TestPullRequestConfirmEmptySelectionWarns(t *testing.T) {
	dispatcher, drain := newTestDispatcher()
	m := NewPullRequestMiddleware()
	state := testState()
	state.MainView.RepoData[0] = RepositoryData{SelectedPrNumbers: map[int]struct{}{}}

	m.Handle(PrComment{}, &state, dispatcher)
	actions := drain()
	require.Len(t, actions, 1)
	status, ok := actions[0].(StatusPush)
	require.True(t, ok)
	assert.Equal(t, StatusWarning, status.Kind)
}

func TestMergeBotEnqueueFilledFromSelection(t *testing.T) {
	dispatcher, drain := newTestDispatcher()
	m := NewPullRequestMiddleware()
	state := testState()

	// Empty enqueue is consumed and redispatched with the cursor target.
	consumed := !m.Handle(MergeBotEnqueue{}, &state, dispatcher)
	assert.True(t, consumed)
	actions := drain()
	require.Len(t, actions, 1)
	enqueue, ok := actions[0].(MergeBotEnqueue)
	require.True(t, ok)
	assert.Equal(t, []int{1}, enqueue.Numbers)

	// A populated enqueue passes through to the reducer.
	assert.True(t, m.Handle(MergeBotEnqueue{Numbers: []int{2}}, &state, dispatcher))
}
