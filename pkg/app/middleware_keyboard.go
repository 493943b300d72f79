package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sassman/gh-pr-lander/pkg/logger"
)

var keyboardLog = logger.New("app:keyboard")

// KeyboardMiddleware translates raw key presses into semantic actions using
// three layers:
//
//  1. Priority keys: Ctrl+C always quits; Esc routes to text input (the view
//     decides cancel vs close) or to a generic Close.
//  2. Capability routing: TEXT_INPUT views get chars/backspace/enter as
//     generic TextInput actions; Tab navigates fields; arrows navigate items
//     when the view also supports item navigation.
//  3. Keymap lookup with two-key chords (2s window) and view gating: each
//     candidate command is offered to the active view in declaration order
//     and the first accepted one dispatches.
//
// A keypress produces at most one semantic action; unhandled keys are
// consumed, never forwarded.
type KeyboardMiddleware struct {
	pending *PendingKey
	now     func() time.Time
}

// NewKeyboardMiddleware uses the wall clock for chord expiry.
func NewKeyboardMiddleware() *KeyboardMiddleware {
	return &KeyboardMiddleware{now: time.Now}
}

func (m *KeyboardMiddleware) Handle(action Action, state *AppState, dispatcher *Dispatcher) bool {
	pressed, ok := action.(GlobalKeyPressed)
	if !ok {
		return true
	}
	m.handleKey(pressed.Key, state, dispatcher)
	return false
}

func (m *KeyboardMiddleware) handleKey(msg tea.KeyMsg, state *AppState, dispatcher *Dispatcher) {
	view := ActiveViewOf(state)
	caps := view.Capabilities(state)
	key := NormalizeKey(msg)

	// Layer 1: priority keys.
	if key == "ctrl+c" {
		dispatcher.Dispatch(GlobalQuit{})
		return
	}
	if key == "esc" {
		m.pending = nil
		if caps.AcceptsTextInput() {
			dispatcher.Dispatch(TextInput{Op: InputEscape})
		} else {
			dispatcher.Dispatch(GlobalClose{})
		}
		return
	}

	// Layer 2: capability routing.
	if caps.AcceptsTextInput() {
		m.pending = nil
		switch {
		case msg.Type == tea.KeyRunes && !msg.Alt && len(msg.Runes) > 0:
			dispatcher.Dispatch(TextInput{Op: InputChar, Char: msg.Runes[0]})
			return
		case msg.Type == tea.KeySpace:
			dispatcher.Dispatch(TextInput{Op: InputChar, Char: ' '})
			return
		case key == "ctrl+u", key == "super+backspace":
			dispatcher.Dispatch(TextInput{Op: InputClearLine})
			return
		case key == "backspace":
			dispatcher.Dispatch(TextInput{Op: InputBackspace})
			return
		case key == "delete":
			dispatcher.Dispatch(TextInput{Op: InputDelete})
			return
		case key == "enter":
			dispatcher.Dispatch(TextInput{Op: InputConfirm})
			return
		case key == "ctrl+j":
			dispatcher.Dispatch(TextInput{Op: InputNewline})
			return
		case key == "home":
			dispatcher.Dispatch(TextInput{Op: InputHome})
			return
		case key == "end":
			dispatcher.Dispatch(TextInput{Op: InputEnd})
			return
		case key == "left":
			dispatcher.Dispatch(TextInput{Op: InputCursorLeft})
			return
		case key == "right":
			dispatcher.Dispatch(TextInput{Op: InputCursorRight})
			return
		case key == "up" && caps.SupportsItemNavigation():
			dispatcher.Dispatch(Navigate{Op: NavPrevious})
			return
		case key == "down" && caps.SupportsItemNavigation():
			dispatcher.Dispatch(Navigate{Op: NavNext})
			return
		case key == "tab":
			dispatcher.Dispatch(Navigate{Op: NavNext})
			return
		case key == "shift+tab":
			dispatcher.Dispatch(Navigate{Op: NavPrevious})
			return
		}
		// Remaining modifier combinations fall through to the keymap.
	}

	// Layer 3: keymap lookup with chords and view gating.
	commands, clearPending, newPending := state.Keymap.MatchKey(key, m.pending, m.now())
	if clearPending {
		m.pending = nil
	}
	if newPending != nil {
		m.pending = newPending
		keyboardLog.Printf("Waiting for second key in sequence (first: %s)", newPending.Key)
		return
	}

	for _, cmd := range commands {
		candidate := cmd.ToAction()
		if candidate == nil {
			continue
		}
		if view.AcceptsAction(candidate, state) {
			dispatcher.Dispatch(candidate)
			return
		}
		keyboardLog.Printf("Command %v rejected by view %s, trying next", cmd, view.ID())
	}
	// Unhandled keys are consumed.
}
