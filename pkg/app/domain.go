package app

import (
	"fmt"
	"time"

	"github.com/sassman/gh-pr-lander/pkg/ghclient"
)

// Repository is a tracked GitHub repository.
type Repository struct {
	Org    string
	Repo   string
	Branch string
	// Host is empty for github.com.
	Host string
}

// DisplayName is "org/repo".
func (r Repository) DisplayName() string {
	return fmt.Sprintf("%s/%s", r.Org, r.Repo)
}

// FullDisplayName is "org/repo@branch".
func (r Repository) FullDisplayName() string {
	return fmt.Sprintf("%s/%s@%s", r.Org, r.Repo, r.Branch)
}

// SameRepo compares host-aware: an absent host equals the default host.
// Applied consistently wherever repositories are matched (session restore,
// deduplication).
func (r Repository) SameRepo(other Repository) bool {
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

// MergeableStatus is the UI-level merge readiness of a PR.
type MergeableStatus int

const (
	MergeableUnknown MergeableStatus = iota
	MergeableChecking
	MergeableReady
	MergeableNeedsRebase
	MergeableBuildFailed
	MergeableConflicted
	MergeableBlocked
	MergeableRebasing
	MergeableMerging
)

// Label returns the display label for the status.
func (s MergeableStatus) Label() string {
	switch s {
	case MergeableChecking:
		return "Checking..."
	case MergeableReady:
		return "Ready"
	case MergeableNeedsRebase:
		return "Needs Rebase"
	case MergeableBuildFailed:
		return "Build Failed"
	case MergeableConflicted:
		return "Conflicts"
	case MergeableBlocked:
		return "Blocked"
	case MergeableRebasing:
		return "Rebasing..."
	case MergeableMerging:
		return "Merging..."
	default:
		return "Unknown"
	}
}

// Icon returns the display icon for the status.
func (s MergeableStatus) Icon() string {
	switch s {
	case MergeableChecking:
		return "⏳"
	case MergeableReady:
		return "✅"
	case MergeableNeedsRebase:
		return "🔂"
	case MergeableBuildFailed:
		return "🚨"
	case MergeableConflicted:
		return "💥"
	case MergeableBlocked:
		return "🚫"
	case MergeableRebasing:
		return "🔃"
	case MergeableMerging:
		return "🔀"
	default:
		return "🚧"
	}
}

// CanMerge reports whether the status permits merging. Only Ready does.
func (s MergeableStatus) CanMerge() bool {
	return s == MergeableReady
}

// Pr is the application's view of a pull request.
type Pr struct {
	Number      int
	Title       string
	Body        string
	Author      string
	Comments    int
	Mergeable   MergeableStatus
	NeedsRebase bool
	HeadSHA     string
	HeadBranch  string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	HTMLURL     string
	Additions   int
	Deletions   int
}

// PrFromAPI maps a client PullRequest into the domain.
func PrFromAPI(api ghclient.PullRequest) Pr {
	pr := Pr{
		Number:     api.Number,
		Title:      api.Title,
		Body:       api.Body,
		Author:     api.Author,
		Comments:   api.Comments,
		HeadSHA:    api.HeadSHA,
		HeadBranch: api.HeadBranch,
		CreatedAt:  api.CreatedAt,
		UpdatedAt:  api.UpdatedAt,
		HTMLURL:    api.HTMLURL,
	}
	switch api.MergeableState {
	case ghclient.MergeableClean:
		pr.Mergeable = MergeableReady
	case ghclient.MergeableBehind:
		pr.Mergeable = MergeableNeedsRebase
		pr.NeedsRebase = true
	case ghclient.MergeableDirty:
		pr.Mergeable = MergeableConflicted
	case ghclient.MergeableBlocked:
		pr.Mergeable = MergeableBlocked
	case ghclient.MergeableUnstable:
		pr.Mergeable = MergeableBuildFailed
	default:
		pr.Mergeable = MergeableUnknown
	}
	return pr
}

// StatusFromCiState maps CI results onto mergeable status.
func StatusFromCiState(state ghclient.CiState) MergeableStatus {
	switch state {
	case ghclient.CiSuccess:
		return MergeableReady
	case ghclient.CiFailure:
		return MergeableBuildFailed
	case ghclient.CiPending:
		return MergeableChecking
	default:
		return MergeableUnknown
	}
}

// LoadingState tracks async PR loading per repository.
type LoadingState int

const (
	LoadingIdle LoadingState = iota
	LoadingInProgress
	LoadingLoaded
	LoadingFailed
)

// PrFilter selects which PRs the table shows.
type PrFilter struct {
	Kind PrFilterKind
	// Text is the query for FilterCustom.
	Text string
}

// PrFilterKind enumerates the filter presets.
type PrFilterKind int

const (
	FilterAll PrFilterKind = iota
	FilterReadyToMerge
	FilterNeedsRebase
	FilterBuildFailed
	FilterMyPRs
	FilterCustom
)

// Label returns the display label for the filter.
func (f PrFilter) Label() string {
	switch f.Kind {
	case FilterReadyToMerge:
		return "Ready to Merge"
	case FilterNeedsRebase:
		return "Needs Rebase"
	case FilterBuildFailed:
		return "Build Failed"
	case FilterMyPRs:
		return "My PRs"
	case FilterCustom:
		return "Custom"
	default:
		return "All"
	}
}

// Next cycles through the four presets: All → ReadyToMerge → NeedsRebase →
// BuildFailed → All. MyPRs and Custom collapse back to All.
func (f PrFilter) Next() PrFilter {
	switch f.Kind {
	case FilterAll:
		return PrFilter{Kind: FilterReadyToMerge}
	case FilterReadyToMerge:
		return PrFilter{Kind: FilterNeedsRebase}
	case FilterNeedsRebase:
		return PrFilter{Kind: FilterBuildFailed}
	default:
		return PrFilter{Kind: FilterAll}
	}
}

// Matches reports whether pr passes the filter. currentUser feeds MyPRs.
func (f PrFilter) Matches(pr Pr, currentUser string) bool {
	switch f.Kind {
	case FilterReadyToMerge:
		return pr.Mergeable == MergeableReady
	case FilterNeedsRebase:
		return pr.Mergeable == MergeableNeedsRebase || pr.NeedsRebase
	case FilterBuildFailed:
		return pr.Mergeable == MergeableBuildFailed
	case FilterMyPRs:
		return currentUser != "" && pr.Author == currentUser
	case FilterCustom:
		return containsFold(pr.Title, f.Text) || containsFold(pr.Author, f.Text)
	default:
		return true
	}
}
