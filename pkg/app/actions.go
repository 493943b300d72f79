package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sassman/gh-pr-lander/pkg/config"
)

// Action is an intent to change state: the only input to the reducer, and
// the unit flowing through the middleware chain. The set is partitioned by
// target: global actions, generic actions awaiting view translation
// (Navigate/TextInput/ViewContext), per-view actions, and observer-only
// Events.
type Action interface {
	isAction()
}

// Event is a fact/observation that re-enters the middleware chain only;
// the background worker never forwards events to the reducer.
type Event interface {
	isEvent()
}

// EventAction wraps an Event for dispatch. Create it through NewEvent so
// event semantics stay visually explicit at call sites.
type EventAction struct {
	Event Event
}

// NewEvent is the only sanctioned way to wrap an Event into an Action.
func NewEvent(event Event) Action {
	return EventAction{Event: event}
}

// EventClientReady signals that the GitHub client finished initializing.
type EventClientReady struct{}

// EventRepositorySelected reports a repository selection for session saving.
type EventRepositorySelected struct {
	Repo Repository
}

// EventPrSelected reports a PR selection for session saving.
type EventPrSelected struct {
	Number int
}

func (EventClientReady) isEvent()        {}
func (EventRepositorySelected) isEvent() {}
func (EventPrSelected) isEvent()         {}

// Global actions.

// GlobalQuit terminates the application.
type GlobalQuit struct{}

// GlobalClose pops the top view; with a single view it quits instead.
type GlobalClose struct{}

// GlobalPushView pushes a floating view. Pushing the view that is already on
// top pops it instead (toggle semantics).
type GlobalPushView struct {
	View ViewID
}

// GlobalReplaceView replaces the whole stack with one base view.
type GlobalReplaceView struct {
	View ViewID
}

// GlobalKeyPressed carries a raw terminal key into the keyboard resolver.
type GlobalKeyPressed struct {
	Key tea.KeyMsg
}

// GlobalTick drives time-based animation (splash frames).
type GlobalTick struct{}

// Generic actions; the active view translates these into view-specific
// actions, or drops them.

// NavigateOp enumerates generic navigation intents.
type NavigateOp int

const (
	NavNext NavigateOp = iota
	NavPrevious
	NavLeft
	NavRight
	NavTop
	NavBottom
	NavHalfPageDown
	NavHalfPageUp
	NavPageDown
	NavPageUp
)

// Navigate is a generic navigation action awaiting view translation.
type Navigate struct {
	Op NavigateOp
}

// TextInputOp enumerates generic text-input intents.
type TextInputOp int

const (
	InputChar TextInputOp = iota
	InputBackspace
	InputDelete
	InputClearLine
	InputConfirm
	InputNewline
	InputEscape
	InputCursorLeft
	InputCursorRight
	InputHome
	InputEnd
)

// TextInput is a generic text-input action awaiting view translation.
type TextInput struct {
	Op   TextInputOp
	Char rune
}

// ContextOp enumerates context-sensitive semantic intents whose meaning
// depends on the active view.
type ContextOp int

const (
	CtxConfirm ContextOp = iota
	CtxToggleSelect
	CtxStartComment
	CtxToggleVisual
)

// ViewContext is a generic semantic action awaiting view translation.
type ViewContext struct {
	Op ContextOp
}

// Bootstrap actions.

// BootstrapStart kicks off client/config/session loading.
type BootstrapStart struct{}

// BootstrapEnd switches from the splash to the primary view.
type BootstrapEnd struct{}

// ConfigLoaded delivers the parsed app config.
type ConfigLoaded struct {
	Config config.AppConfig
}

// SplashAdvanceFrame advances the splash animation.
type SplashAdvanceFrame struct{}

func (EventAction) isAction()        {}
func (GlobalQuit) isAction()         {}
func (GlobalClose) isAction()        {}
func (GlobalPushView) isAction()     {}
func (GlobalReplaceView) isAction()  {}
func (GlobalKeyPressed) isAction()   {}
func (GlobalTick) isAction()         {}
func (Navigate) isAction()           {}
func (TextInput) isAction()          {}
func (ViewContext) isAction()        {}
func (BootstrapStart) isAction()     {}
func (BootstrapEnd) isAction()       {}
func (ConfigLoaded) isAction()       {}
func (SplashAdvanceFrame) isAction() {}
