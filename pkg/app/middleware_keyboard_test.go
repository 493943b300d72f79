package app

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDispatcher() (*Dispatcher, func() []Action) {
	ch := make(chan Action, 64)
	drain := func() []Action {
		var out []Action
		for {
			select {
			case a := <-ch:
				out = append(out, a)
			default:
				return out
			}
		}
	}
	return NewDispatcher(ch), drain
}

func keyRune(r rune) GlobalKeyPressed {
	return GlobalKeyPressed{Key: tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}}
}

func keyType(t tea.KeyType) GlobalKeyPressed {
	return GlobalKeyPressed{Key: tea.KeyMsg{Type: t}}
}

func TestKeyboardCtrlCAlwaysQuits(t *testing.T) {
	dispatcher, drain := newTestDispatcher()
	m := NewKeyboardMiddleware()
	state := testState()

	consumed := !m.Handle(keyType(tea.KeyCtrlC), &state, dispatcher)
	assert.True(t, consumed)
	actions := drain()
	require.Len(t, actions, 1)
	assert.IsType(t, GlobalQuit{}, actions[0])
}

func TestKeyboardEscClosesWithoutTextInput(t *testing.T) {
	dispatcher, drain := newTestDispatcher()
	m := NewKeyboardMiddleware()
	state := testState()

	m.Handle(keyType(tea.KeyEsc), &state, dispatcher)
	actions := drain()
	require.Len(t, actions, 1)
	assert.IsType(t, GlobalClose{}, actions[0])
}

func TestKeyboardEscRoutesToTextInput(t *testing.T) {
	dispatcher, drain := newTestDispatcher()
	m := NewKeyboardMiddleware()
	state := testState()
	state = Reduce(state, ConfirmationShow{
		Intent: ConfirmationIntent{Kind: IntentApprove, PrNumbers: []int{1}},
	})

	m.Handle(keyType(tea.KeyEsc), &state, dispatcher)
	actions := drain()
	require.Len(t, actions, 1)
	input, ok := actions[0].(TextInput)
	require.True(t, ok)
	assert.Equal(t, InputEscape, input.Op)
}

func TestKeyboardTextInputRoutesChars(t *testing.T) {
	dispatcher, drain := newTestDispatcher()
	m := NewKeyboardMiddleware()
	state := testState()
	state = Reduce(state, ConfirmationShow{
		Intent: ConfirmationIntent{Kind: IntentComment, PrNumbers: []int{1}},
	})

	m.Handle(keyRune('x'), &state, dispatcher)
	m.Handle(keyType(tea.KeyBackspace), &state, dispatcher)
	m.Handle(keyType(tea.KeyEnter), &state, dispatcher)

	actions := drain()
	require.Len(t, actions, 3)
	char := actions[0].(TextInput)
	assert.Equal(t, InputChar, char.Op)
	assert.Equal(t, 'x', char.Char)
	assert.Equal(t, InputBackspace, actions[1].(TextInput).Op)
	assert.Equal(t, InputConfirm, actions[2].(TextInput).Op)
}

func TestKeyboardChordDispatch(t *testing.T) {
	dispatcher, drain := newTestDispatcher()
	m := NewKeyboardMiddleware()
	state := testState()

	// 'p' registers a pending chord: nothing dispatched.
	m.Handle(keyRune('p'), &state, dispatcher)
	assert.Empty(t, drain())

	// 'a' completes "p a" and main view accepts PrApprove.
	m.Handle(keyRune('a'), &state, dispatcher)
	actions := drain()
	require.Len(t, actions, 1)
	assert.IsType(t, PrApprove{}, actions[0])
}

func TestKeyboardChordExpiry(t *testing.T) {
	dispatcher, drain := newTestDispatcher()
	m := NewKeyboardMiddleware()
	base := time.Now()
	current := base
	m.now = func() time.Time { return current }
	state := testState()

	m.Handle(keyRune('p'), &state, dispatcher)
	assert.Empty(t, drain())

	// Second key after the 2s window: chord expired, 'a' alone is a no-op.
	current = base.Add(3 * time.Second)
	m.Handle(keyRune('a'), &state, dispatcher)
	assert.Empty(t, drain())
}

func TestKeyboardViewGating(t *testing.T) {
	dispatcher, drain := newTestDispatcher()
	m := NewKeyboardMiddleware()

	// On the main view, 'c' matches debug-clear and diff-comment; main view
	// accepts neither, so the key is consumed without dispatch.
	state := testState()
	m.Handle(keyRune('c'), &state, dispatcher)
	assert.Empty(t, drain())

	// On the debug console, the same key resolves to clear-logs.
	state.ViewStack = append(state.ViewStack, ViewDebugConsole)
	m.Handle(keyRune('c'), &state, dispatcher)
	actions := drain()
	require.Len(t, actions, 1)
	assert.IsType(t, DebugConsoleClear{}, actions[0])

	// On the diff viewer, it resolves to start-comment.
	state.ViewStack = []ViewID{ViewDiffViewer}
	m.Handle(keyRune('c'), &state, dispatcher)
	actions = drain()
	require.Len(t, actions, 1)
	assert.IsType(t, DiffStartComment{}, actions[0])
}

func TestKeyboardSingleSemanticActionPerKeypress(t *testing.T) {
	dispatcher, drain := newTestDispatcher()
	m := NewKeyboardMiddleware()
	state := testState()

	m.Handle(keyRune('j'), &state, dispatcher)
	assert.Len(t, drain(), 1)
}

func TestKeyboardConsumesKeyPressed(t *testing.T) {
	dispatcher, _ := newTestDispatcher()
	m := NewKeyboardMiddleware()
	state := testState()
	assert.False(t, m.Handle(keyRune('j'), &state, dispatcher))
	// Other actions pass through untouched.
	assert.True(t, m.Handle(PrRefresh{}, &state, dispatcher))
}
