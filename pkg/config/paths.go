// Package config persists the application's on-disk artifacts: the TOML app
// config, the TOML session file (local > global precedence), the recent
// repositories list, and the optional keymap override file.
package config

import (
	"os"
	"path/filepath"
)

const (
	appConfigName    = "gh-pr-lander.toml"
	localSessionName = ".gh-pr-lander.session.toml"
	sessionName      = "session.toml"
	recentReposName  = "repos.json"
	keymapName       = "keymap.yml"
	cacheName        = "api-cache.json"
)

// ConfigDir returns ~/.config/gh-pr-lander, creating nothing.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "gh-pr-lander"), nil
}

// AppConfigPaths returns the lookup order for the app config: CWD first,
// then the config dir.
func AppConfigPaths() []string {
	paths := []string{appConfigName}
	if dir, err := ConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, appConfigName))
	}
	return paths
}

// LocalSessionPath is the per-project session file in the CWD.
func LocalSessionPath() string {
	return localSessionName
}

// HasLocalSession reports whether the CWD carries its own session file.
func HasLocalSession() bool {
	_, err := os.Stat(localSessionName)
	return err == nil
}

// GlobalSessionPath is the session file under the config dir.
func GlobalSessionPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, sessionName), nil
}

// RecentRepositoriesPath is the recent-repos list under the config dir.
func RecentRepositoriesPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, recentReposName), nil
}

// KeymapOverridePath is the optional user keymap file.
func KeymapOverridePath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, keymapName), nil
}

// APICachePath is the opaque API cache blob under the user cache dir.
func APICachePath() (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "gh-pr-lander", cacheName), nil
}
