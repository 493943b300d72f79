package config

import (
	"path/filepath"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultAppConfig(t *testing.T) {
	config := DefaultAppConfig()
	assert.Equal(t, "code", config.IDECommand)
	assert.NotEmpty(t, config.TempDir)
	assert.NotEmpty(t, config.ApprovalMessage)
	assert.Empty(t, config.CommentMessage)
	assert.NotEmpty(t, config.RequestChangesMessage)
	assert.NotEmpty(t, config.CloseMessage)
}

func TestAppConfigPartialDecode(t *testing.T) {
	config := DefaultAppConfig()
	_, err := toml.Decode(`
ide_command = "zed"
approval_message = "LGTM!"
`, &config)
	require.NoError(t, err)
	assert.Equal(t, "zed", config.IDECommand)
	assert.Equal(t, "LGTM!", config.ApprovalMessage)
	// Untouched keys keep their defaults.
	assert.NotEmpty(t, config.TempDir)
	assert.Equal(t, "Closing this PR.", config.CloseMessage)
}

func TestSessionDefault(t *testing.T) {
	session := NewSession()
	assert.Equal(t, sessionVersion, session.Meta.Version)
	_, _, _, _, ok := session.SelectedRepo()
	assert.False(t, ok)
	assert.Zero(t, session.SelectedPRNo())
}

func TestSessionSetSelectedRepo(t *testing.T) {
	session := NewSession()
	session.SetSelectedRepo("owner", "repo", "main", "")

	org, name, branch, host, ok := session.SelectedRepo()
	require.True(t, ok)
	assert.Equal(t, "owner", org)
	assert.Equal(t, "repo", name)
	assert.Equal(t, "main", branch)
	assert.Empty(t, host)
}

func TestSessionHostNormalization(t *testing.T) {
	session := NewSession()
	session.SetSelectedRepo("owner", "repo", "main", "github.com")
	_, _, _, host, ok := session.SelectedRepo()
	require.True(t, ok)
	assert.Empty(t, host)

	session.SetSelectedRepo("owner", "repo", "main", "ghe.example.com")
	_, _, _, host, _ = session.SelectedRepo()
	assert.Equal(t, "ghe.example.com", host)
}

func TestSessionRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.toml")
	session := NewSession()
	session.SetSelectedRepo("cargo-generate", "cargo-generate", "main", "")
	session.SetSelectedPRNo(42)
	require.NoError(t, session.SaveTo(path))

	loaded, err := loadSessionFrom(path)
	require.NoError(t, err)
	assert.Equal(t, 42, loaded.SelectedPRNo())
	org, _, _, host, ok := loaded.SelectedRepo()
	require.True(t, ok)
	assert.Equal(t, "cargo-generate", org)
	assert.Empty(t, host)
}

func TestSessionRoundTripWithHost(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.toml")
	session := NewSession()
	session.SetSelectedRepo("org", "repo", "main", "ghe.example.com")
	require.NoError(t, session.SaveTo(path))

	loaded, err := loadSessionFrom(path)
	require.NoError(t, err)
	_, _, _, host, ok := loaded.SelectedRepo()
	require.True(t, ok)
	assert.Equal(t, "ghe.example.com", host)
}

func TestRecentRepositorySameRepoHostAware(t *testing.T) {
	a := RecentRepository{Org: "o", Repo: "r", Branch: "main"}
	b := RecentRepository{Org: "o", Repo: "r", Branch: "main", Host: "github.com"}
	c := RecentRepository{Org: "o", Repo: "r", Branch: "main", Host: "ghe.example.com"}
	d := RecentRepository{Org: "o", Repo: "r", Branch: "develop"}

	assert.True(t, a.SameRepo(b))
	assert.False(t, a.SameRepo(c))
	assert.False(t, a.SameRepo(d))
}
