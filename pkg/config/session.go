package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/sassman/gh-pr-lander/pkg/ghclient"
	"github.com/sassman/gh-pr-lander/pkg/logger"
)

var sessionLog = logger.New("config:session")

const sessionVersion = 1

// SessionMeta versions the session file.
type SessionMeta struct {
	LastModified time.Time `toml:"last_modified"`
	Version      int       `toml:"version"`
}

// SessionData is the persisted selection state.
type SessionData struct {
	SelectedRepoOrg    string `toml:"selected_repo_org,omitempty"`
	SelectedRepoName   string `toml:"selected_repo_name,omitempty"`
	SelectedRepoBranch string `toml:"selected_repo_branch,omitempty"`
	// SelectedRepoHost is empty for github.com repositories.
	SelectedRepoHost string `toml:"selected_repo_host,omitempty"`
	// SelectedPRNo is the PR number (not index), stable across refreshes.
	SelectedPRNo int `toml:"selected_pr_no,omitempty"`
}

// Session is the complete session file.
type Session struct {
	Meta    SessionMeta `toml:"meta"`
	Session SessionData `toml:"session"`
}

// NewSession returns an empty session at the current version.
func NewSession() *Session {
	return &Session{
		Meta: SessionMeta{LastModified: time.Now().UTC(), Version: sessionVersion},
	}
}

// LoadSession loads with precedence local > global > fresh default.
func LoadSession() *Session {
	if HasLocalSession() {
		if s, err := loadSessionFrom(LocalSessionPath()); err == nil {
			sessionLog.Printf("Loaded local session from %s", LocalSessionPath())
			return s
		}
	}
	if path, err := GlobalSessionPath(); err == nil {
		if s, err := loadSessionFrom(path); err == nil {
			sessionLog.Printf("Loaded global session from %s", path)
			return s
		}
	}
	sessionLog.Printf("No existing session found, using defaults")
	return NewSession()
}

func loadSessionFrom(path string) (*Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var session Session
	if _, err := toml.Decode(string(data), &session); err != nil {
		return nil, fmt.Errorf("failed to parse session file %s: %w", path, err)
	}
	return &session, nil
}

// Save writes to the local file when one exists, else to the global file.
func (s *Session) Save() error {
	s.Meta.LastModified = time.Now().UTC()
	path := LocalSessionPath()
	if !HasLocalSession() {
		globalPath, err := GlobalSessionPath()
		if err != nil {
			return err
		}
		path = globalPath
	}
	return s.SaveTo(path)
}

// SaveTo writes the session to an explicit path.
func (s *Session) SaveTo(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to write session file %s: %w", path, err)
	}
	defer file.Close()
	if err := toml.NewEncoder(file).Encode(s); err != nil {
		return fmt.Errorf("failed to serialize session: %w", err)
	}
	sessionLog.Printf("Saved session to %s", path)
	return nil
}

// SetSelectedRepo records the repo selection. The default host (github.com)
// and the empty string both normalize to absent.
func (s *Session) SetSelectedRepo(org, name, branch, host string) {
	s.Session.SelectedRepoOrg = org
	s.Session.SelectedRepoName = name
	s.Session.SelectedRepoBranch = branch
	if host == ghclient.DefaultHost {
		host = ""
	}
	s.Session.SelectedRepoHost = host
}

// SetSelectedPRNo records the selected PR number.
func (s *Session) SetSelectedPRNo(number int) {
	s.Session.SelectedPRNo = number
}

// SelectedRepo returns (org, name, branch, host); ok is false when no repo
// was saved. host is "" for github.com.
func (s *Session) SelectedRepo() (org, name, branch, host string, ok bool) {
	d := s.Session
	if d.SelectedRepoOrg == "" || d.SelectedRepoName == "" || d.SelectedRepoBranch == "" {
		return "", "", "", "", false
	}
	return d.SelectedRepoOrg, d.SelectedRepoName, d.SelectedRepoBranch, d.SelectedRepoHost, true
}

// SelectedPRNo returns the saved PR number, 0 when absent.
func (s *Session) SelectedPRNo() int {
	return s.Session.SelectedPRNo
}
