// Package ghclient is the GitHub API boundary: a narrow client interface,
// a REST implementation built on go-gh, a caching decorator over a
// file-backed key/value store, and the typed error taxonomy the rest of the
// application programs against.
package ghclient

import "time"

// DefaultHost is public GitHub. A repository with no explicit host lives
// here; the two spellings are treated as equivalent everywhere repositories
// are matched.
const DefaultHost = "github.com"

// PullRequest is a pull request as returned by the GitHub API.
type PullRequest struct {
	Number     int
	Title      string
	Body       string
	Author     string
	Comments   int
	HeadSHA    string
	BaseBranch string
	HeadBranch string
	// Mergeable is nil while GitHub has not computed it yet.
	Mergeable      *bool
	MergeableState MergeableState
	CreatedAt      time.Time
	UpdatedAt      time.Time
	HTMLURL        string
}

// MergeableState is the merge readiness reported by GitHub.
type MergeableState string

const (
	MergeableClean    MergeableState = "clean"
	MergeableBehind   MergeableState = "behind"
	MergeableDirty    MergeableState = "dirty"
	MergeableBlocked  MergeableState = "blocked"
	MergeableUnstable MergeableState = "unstable"
	MergeableUnknown  MergeableState = "unknown"
)

// CheckRun is a single check from the Checks API.
type CheckRun struct {
	ID          int64
	Name        string
	Status      CheckRunStatus
	Conclusion  CheckConclusion
	DetailsURL  string
	StartedAt   *time.Time
	CompletedAt *time.Time
}

// CheckRunStatus is the lifecycle state of a check run.
type CheckRunStatus string

const (
	CheckQueued     CheckRunStatus = "queued"
	CheckInProgress CheckRunStatus = "in_progress"
	CheckCompleted  CheckRunStatus = "completed"
)

// CheckConclusion is the outcome of a completed check run.
type CheckConclusion string

const (
	ConclusionSuccess        CheckConclusion = "success"
	ConclusionFailure        CheckConclusion = "failure"
	ConclusionNeutral        CheckConclusion = "neutral"
	ConclusionCancelled      CheckConclusion = "cancelled"
	ConclusionSkipped        CheckConclusion = "skipped"
	ConclusionTimedOut       CheckConclusion = "timed_out"
	ConclusionActionRequired CheckConclusion = "action_required"
	ConclusionStale          CheckConclusion = "stale"
	ConclusionNone           CheckConclusion = ""
)

// CheckStatus is the combined commit status from the legacy Status API.
type CheckStatus struct {
	State      CiState
	TotalCount int
	Statuses   []CommitStatus
}

// CommitStatus is one entry of the combined status.
type CommitStatus struct {
	Context     string
	State       CiState
	Description string
	TargetURL   string
}

// CiState collapses check results into the four states the UI cares about.
type CiState string

const (
	CiSuccess CiState = "success"
	CiPending CiState = "pending"
	CiFailure CiState = "failure"
	CiUnknown CiState = "unknown"
)

// WorkflowRun identifies one Actions run on a commit.
type WorkflowRun struct {
	ID         int64
	Name       string
	Status     string
	Conclusion string
	HTMLURL    string
}

// CombineCheckRuns folds a set of check runs into one CiState.
func CombineCheckRuns(runs []CheckRun) CiState {
	if len(runs) == 0 {
		return CiUnknown
	}
	state := CiSuccess
	for _, run := range runs {
		if run.Status != CheckCompleted {
			return CiPending
		}
		switch run.Conclusion {
		case ConclusionFailure, ConclusionTimedOut, ConclusionActionRequired:
			state = CiFailure
		}
	}
	return state
}
