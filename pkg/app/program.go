package app

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sassman/gh-pr-lander/pkg/ghclient"
	"github.com/sassman/gh-pr-lander/pkg/logger"
)

var programLog = logger.New("app:program")

// resultMsg wraps a reduced-bound action arriving from the worker.
type resultMsg struct {
	action Action
}

// Model is the bubbletea model hosting the UI thread: it feeds key presses
// into the action queue, applies reducer-bound actions from the result
// queue, publishes the state snapshot, and renders the view stack.
type Model struct {
	store   *Store
	shared  *SharedState
	actions chan Action
	results chan Action
	width   int
	height  int
}

// Options wires the program's collaborators.
type Options struct {
	Ctx     context.Context
	Client  ghclient.Client
	Refresh ghclient.Client
	// Raw backs per-repo context providers for diff expansion.
	Raw     *ghclient.RESTClient
	LogPath string
	Initial AppState
}

// NewModel assembles the store, channels, middleware chain, and background
// worker. The worker goroutine starts immediately; BootstrapStart is queued
// so startup proceeds once the program runs.
func NewModel(opts Options) *Model {
	actions := make(chan Action, 256)
	results := make(chan Action, 256)
	store := NewStore(opts.Initial)
	shared := NewSharedState(opts.Initial)
	dispatcher := NewDispatcher(actions)

	github := NewGitHubMiddleware(opts.Ctx, opts.Client, opts.Refresh, opts.Raw)

	middleware := []Middleware{
		NewBootstrapMiddleware(),
		NewAppConfigMiddleware(),
		NewSessionMiddleware(),
		github,
		NewKeyboardMiddleware(),
		// Translators: generic actions become view-specific ones.
		NewNavigationMiddleware(),
		NewTextInputMiddleware(),
		NewContextActionMiddleware(),
		// View-specific effects.
		NewCommandPaletteMiddleware(),
		NewConfirmationPopupMiddleware(),
		NewRepositoryMiddleware(),
		NewPullRequestMiddleware(),
		NewDiffViewerMiddleware(),
		NewMergeBotMiddleware(opts.Ctx, opts.Client),
		NewDebugConsoleMiddleware(opts.LogPath),
	}

	go RunBackgroundWorker(actions, dispatcher, results, shared, middleware)
	actions <- BootstrapStart{}

	return &Model{
		store:   store,
		shared:  shared,
		actions: actions,
		results: results,
	}
}

// Init subscribes to the result queue.
func (m *Model) Init() tea.Cmd {
	return m.waitForResult()
}

func (m *Model) waitForResult() tea.Cmd {
	return func() tea.Msg {
		action, ok := <-m.results
		if !ok {
			return resultMsg{action: GlobalQuit{}}
		}
		return resultMsg{action: action}
	}
}

// Update is the UI thread: key presses enter the action queue; results
// apply through the reducer and the fresh snapshot publishes to the worker.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		m.send(GlobalKeyPressed{Key: msg})
		return m, nil

	case resultMsg:
		m.store.Apply(msg.action)
		m.shared.Publish(*m.store.State())
		if !m.store.State().Running {
			programLog.Printf("Running flag cleared, quitting")
			close(m.actions)
			return m, tea.Quit
		}
		return m, m.waitForResult()
	}
	return m, nil
}

// send never blocks the UI thread; an overfull queue drops the key press
// (the channel is sized far beyond realistic typing rates).
func (m *Model) send(action Action) {
	select {
	case m.actions <- action:
	default:
		programLog.Printf("Action queue full, dropping %T", action)
	}
}

// View renders the stack bottom-up into the current terminal size.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	return RenderStack(m.store.State(), m.width, m.height)
}
