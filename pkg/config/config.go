package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/sassman/gh-pr-lander/pkg/logger"
)

var configLog = logger.New("config:app")

// AppConfig is the user-editable application configuration.
type AppConfig struct {
	// IDECommand opens files/checkouts in an editor (e.g. "code", "zed").
	IDECommand string `toml:"ide_command"`
	// TempDir is where PR checkouts for IDE opening land.
	TempDir string `toml:"temp_dir"`
	// ApprovalMessage is the default text for PR approvals.
	ApprovalMessage string `toml:"approval_message"`
	// CommentMessage is the default text for PR comments (empty: user types).
	CommentMessage string `toml:"comment_message"`
	// RequestChangesMessage is the default text for change requests.
	RequestChangesMessage string `toml:"request_changes_message"`
	// CloseMessage is the default text when closing PRs.
	CloseMessage string `toml:"close_message"`
}

// DefaultAppConfig returns the built-in defaults.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		IDECommand:            "code",
		TempDir:               filepath.Join(os.TempDir(), "gh-pr-lander"),
		ApprovalMessage:       ":rocket: thanks for your contribution",
		CommentMessage:        "",
		RequestChangesMessage: "Please address the following concerns:",
		CloseMessage:          "Closing this PR.",
	}
}

// LoadAppConfig reads the first config file found (CWD first, then the
// config dir), falling back to defaults. Missing keys keep their defaults;
// a malformed file is logged and ignored.
func LoadAppConfig() AppConfig {
	config := DefaultAppConfig()
	for _, path := range AppConfigPaths() {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if _, err := toml.Decode(string(data), &config); err != nil {
			configLog.Printf("Failed to parse config file %s: %v", path, err)
			return DefaultAppConfig()
		}
		configLog.Printf("Loaded app config from %s", path)
		return config
	}
	configLog.Printf("No config file found, using defaults")
	return config
}
