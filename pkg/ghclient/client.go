package ghclient

import (
	"context"

	"github.com/sassman/gh-pr-lander/pkg/diffview"
)

// CacheMode controls how a client interacts with the cache layer. It is set
// at construction time, not per request.
type CacheMode int

const (
	// CacheNone neither reads nor writes the cache. Use for mutations.
	CacheNone CacheMode = iota
	// CacheWriteOnly skips cache reads but stores fresh responses.
	// Use for force refresh.
	CacheWriteOnly
	// CacheReadOnly serves from cache without updating it.
	CacheReadOnly
	// CacheReadWrite is full caching, the default for read operations.
	CacheReadWrite
)

// ShouldRead reports whether cached responses may be served.
func (m CacheMode) ShouldRead() bool {
	return m == CacheReadOnly || m == CacheReadWrite
}

// ShouldWrite reports whether fresh responses are stored.
func (m CacheMode) ShouldWrite() bool {
	return m == CacheWriteOnly || m == CacheReadWrite
}

// Client is the GitHub API boundary consumed by the middleware. All blocking
// operations take a context so shutdown can cancel in-flight calls. Every
// error is an *APIError.
type Client interface {
	// FetchViewer returns the authenticated user's login.
	FetchViewer(ctx context.Context) (string, error)

	// FetchPullRequests lists open PRs, optionally filtered by base branch.
	FetchPullRequests(ctx context.Context, owner, repo, baseBranch string) ([]PullRequest, error)

	// FetchCheckRuns lists CI check runs for a commit.
	FetchCheckRuns(ctx context.Context, owner, repo, sha string) ([]CheckRun, error)

	// FetchCommitStatus returns the combined legacy commit status.
	FetchCommitStatus(ctx context.Context, owner, repo, sha string) (CheckStatus, error)

	// FetchPullRequestDiff returns the unified diff text of a PR.
	FetchPullRequestDiff(ctx context.Context, owner, repo string, number int) (string, error)

	// FetchWorkflowRuns lists Actions runs for a head SHA.
	FetchWorkflowRuns(ctx context.Context, owner, repo, sha string) ([]WorkflowRun, error)

	// DownloadRunLogs returns the raw ZIP archive of a run's job logs.
	DownloadRunLogs(ctx context.Context, owner, repo string, runID int64) ([]byte, error)

	// RerunFailedJobs requeues the failed jobs of a run.
	RerunFailedJobs(ctx context.Context, owner, repo string, runID int64) error

	// SubmitComment posts a single review comment and returns its id.
	SubmitComment(ctx context.Context, owner, repo string, number int, comment diffview.PendingComment) (int64, error)

	// EditComment replaces the body of a posted review comment.
	EditComment(ctx context.Context, owner, repo string, commentID int64, body string) error

	// DeleteComment removes a posted review comment.
	DeleteComment(ctx context.Context, owner, repo string, commentID int64) error

	// SubmitReview submits a review with its accumulated pending comments.
	SubmitReview(ctx context.Context, owner, repo string, number int, event diffview.ReviewEvent, body string, pending []diffview.PendingComment) error

	// ClosePullRequest closes a PR without merging.
	ClosePullRequest(ctx context.Context, owner, repo string, number int) error

	// MergePullRequest merges a PR.
	MergePullRequest(ctx context.Context, owner, repo string, number int) error

	// EnableAutoMerge turns on auto-merge for a PR.
	EnableAutoMerge(ctx context.Context, owner, repo string, number int) error
}

// ContextProvider supplies file lines for diff context expansion.
type ContextProvider interface {
	// FetchLines returns lines [startLine, endLine] (1-based, inclusive) of
	// path at commitSHA, without trailing newlines.
	FetchLines(ctx context.Context, path, commitSHA string, startLine, endLine int) ([]string, error)

	// IsAvailable advertises whether expansion can be offered in the UI.
	IsAvailable() bool
}
