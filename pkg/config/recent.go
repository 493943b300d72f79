package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/sassman/gh-pr-lander/pkg/ghclient"
	"github.com/sassman/gh-pr-lander/pkg/logger"
)

var recentLog = logger.New("config:recent")

// RecentRepository is one entry of the recently used repositories list.
type RecentRepository struct {
	Org    string `json:"org"`
	Repo   string `json:"repo"`
	Branch string `json:"branch"`
	// Host is empty for github.com.
	Host string `json:"host,omitempty"`
}

// SameRepo compares entries host-aware: the default host and an absent host
// are equivalent. Branch participates in identity.
func (r RecentRepository) SameRepo(other RecentRepository) bool {
	return r.Org == other.Org &&
		r.Repo == other.Repo &&
		r.Branch == other.Branch &&
		normalizeHost(r.Host) == normalizeHost(other.Host)
}

func normalizeHost(host string) string {
	if host == ghclient.DefaultHost {
		return ""
	}
	return host
}

// LoadRecentRepositories returns the saved list, or empty when the file is
// missing or unreadable.
func LoadRecentRepositories() []RecentRepository {
	path, err := RecentRepositoriesPath()
	if err != nil {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		recentLog.Printf("No recent repositories file found, starting fresh")
		return nil
	}
	var repos []RecentRepository
	if err := json.Unmarshal(data, &repos); err != nil {
		recentLog.Printf("Failed to parse recent repositories file: %v", err)
		return nil
	}
	return repos
}

// SaveRecentRepositories persists the list, deduplicated host-aware with the
// most recent entry first.
func SaveRecentRepositories(repos []RecentRepository) error {
	deduped := make([]RecentRepository, 0, len(repos))
	for _, repo := range repos {
		duplicate := false
		for _, kept := range deduped {
			if kept.SameRepo(repo) {
				duplicate = true
				break
			}
		}
		if !duplicate {
			deduped = append(deduped, repo)
		}
	}

	path, err := RecentRepositoriesPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(deduped, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return err
	}
	recentLog.Printf("Saved %d recent repositories", len(deduped))
	return nil
}
