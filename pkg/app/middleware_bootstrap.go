package app

import (
	"time"

	"github.com/sassman/gh-pr-lander/pkg/config"
	"github.com/sassman/gh-pr-lander/pkg/logger"
)

var bootstrapLog = logger.New("app:bootstrap")

// BootstrapMiddleware sequences startup: it waits for the client to come up,
// then loads recent repositories, and ends bootstrap (switching to the main
// view) once they arrive.
type BootstrapMiddleware struct{}

// NewBootstrapMiddleware builds the bootstrap sequencer.
func NewBootstrapMiddleware() *BootstrapMiddleware {
	return &BootstrapMiddleware{}
}

func (m *BootstrapMiddleware) Handle(action Action, _ *AppState, dispatcher *Dispatcher) bool {
	switch a := action.(type) {
	case BootstrapStart:
		bootstrapLog.Printf("Bootstrap started")
		return true

	case EventAction:
		if _, ready := a.Event.(EventClientReady); ready {
			bootstrapLog.Printf("Client ready, loading recent repositories")
			dispatcher.Dispatch(LoadRecentRepositories{})
		}
		return true

	case RecentRepositoriesLoaded:
		bootstrapLog.Printf("Recent repositories loaded (%d), ending bootstrap", len(a.Repos))
		dispatcher.Dispatch(BootstrapEnd{})
		return true
	}
	return true
}

// AppConfigMiddleware loads the configuration once at bootstrap. The
// blocking file read is fine here: this runs on the background worker.
type AppConfigMiddleware struct {
	loaded bool
}

// NewAppConfigMiddleware builds the config loader.
func NewAppConfigMiddleware() *AppConfigMiddleware {
	return &AppConfigMiddleware{}
}

func (m *AppConfigMiddleware) Handle(action Action, _ *AppState, dispatcher *Dispatcher) bool {
	if _, ok := action.(BootstrapStart); !ok || m.loaded {
		return true
	}
	m.loaded = true
	dispatcher.Dispatch(ConfigLoaded{Config: config.LoadAppConfig()})
	return true
}

// SessionMiddleware restores the saved session at bootstrap and persists
// selection changes observed through events.
type SessionMiddleware struct {
	session *config.Session
}

// NewSessionMiddleware wraps the on-disk session.
func NewSessionMiddleware() *SessionMiddleware {
	return &SessionMiddleware{}
}

func (m *SessionMiddleware) Handle(action Action, _ *AppState, dispatcher *Dispatcher) bool {
	switch a := action.(type) {
	case BootstrapStart:
		m.session = config.LoadSession()
		restored := SessionRestored{PrNumber: m.session.SelectedPRNo()}
		if org, name, branch, host, ok := m.session.SelectedRepo(); ok {
			restored.Repo = &Repository{Org: org, Repo: name, Branch: branch, Host: host}
		}
		dispatcher.Dispatch(restored)

	case EventAction:
		if m.session == nil {
			return true
		}
		switch event := a.Event.(type) {
		case EventRepositorySelected:
			m.session.SetSelectedRepo(event.Repo.Org, event.Repo.Repo, event.Repo.Branch, event.Repo.Host)
			m.save()
		case EventPrSelected:
			m.session.SetSelectedPRNo(event.Number)
			m.save()
		}
	}
	return true
}

func (m *SessionMiddleware) save() {
	if err := m.session.Save(); err != nil {
		bootstrapLog.Printf("Failed to save session: %v", err)
	}
}

// statusNow builds a StatusPush stamped with the current time; middleware
// uses it so the reducer never reads the clock.
func statusNow(kind StatusKind, message, source string) StatusPush {
	return StatusPush{
		Kind:      kind,
		Message:   message,
		Source:    source,
		Timestamp: time.Now(),
	}
}
