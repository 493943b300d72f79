package ghclient

import (
	"context"

	"github.com/sassman/gh-pr-lander/pkg/diffview"
)

// CachedClient decorates a Client with read-through caching for the read
// operations. Mutations always pass straight through. The cache mode is fixed
// at construction: use CacheWriteOnly for a force refresh, CacheNone for a
// mutation-only client.
type CachedClient struct {
	inner Client
	cache *APICache
	mode  CacheMode
}

// NewCachedClient wraps inner with the given cache and mode.
func NewCachedClient(inner Client, cache *APICache, mode CacheMode) *CachedClient {
	return &CachedClient{inner: inner, cache: cache, mode: mode}
}

// WithMode returns a client sharing the same cache under a different mode.
func (c *CachedClient) WithMode(mode CacheMode) *CachedClient {
	return &CachedClient{inner: c.inner, cache: c.cache, mode: mode}
}

func (c *CachedClient) FetchViewer(ctx context.Context) (string, error) {
	return c.inner.FetchViewer(ctx)
}

func (c *CachedClient) FetchPullRequests(ctx context.Context, owner, repo, baseBranch string) ([]PullRequest, error) {
	key := cacheKeyFor("pulls", owner, repo, baseBranch)
	if c.mode.ShouldRead() {
		var cached []PullRequest
		if c.cache.Get(key, &cached) {
			return cached, nil
		}
	}
	prs, err := c.inner.FetchPullRequests(ctx, owner, repo, baseBranch)
	if err != nil {
		return nil, err
	}
	if c.mode.ShouldWrite() {
		c.cache.Put(key, prs)
	}
	return prs, nil
}

func (c *CachedClient) FetchCheckRuns(ctx context.Context, owner, repo, sha string) ([]CheckRun, error) {
	key := cacheKeyFor("check-runs", owner, repo, sha)
	if c.mode.ShouldRead() {
		var cached []CheckRun
		if c.cache.Get(key, &cached) {
			return cached, nil
		}
	}
	runs, err := c.inner.FetchCheckRuns(ctx, owner, repo, sha)
	if err != nil {
		return nil, err
	}
	if c.mode.ShouldWrite() {
		c.cache.Put(key, runs)
	}
	return runs, nil
}

func (c *CachedClient) FetchCommitStatus(ctx context.Context, owner, repo, sha string) (CheckStatus, error) {
	key := cacheKeyFor("commit-status", owner, repo, sha)
	if c.mode.ShouldRead() {
		var cached CheckStatus
		if c.cache.Get(key, &cached) {
			return cached, nil
		}
	}
	status, err := c.inner.FetchCommitStatus(ctx, owner, repo, sha)
	if err != nil {
		return CheckStatus{}, err
	}
	if c.mode.ShouldWrite() {
		c.cache.Put(key, status)
	}
	return status, nil
}

func (c *CachedClient) FetchPullRequestDiff(ctx context.Context, owner, repo string, number int) (string, error) {
	key := cacheKeyFor("diff", owner, repo, number)
	if c.mode.ShouldRead() {
		var cached string
		if c.cache.Get(key, &cached) {
			return cached, nil
		}
	}
	diff, err := c.inner.FetchPullRequestDiff(ctx, owner, repo, number)
	if err != nil {
		return "", err
	}
	if c.mode.ShouldWrite() {
		c.cache.Put(key, diff)
	}
	return diff, nil
}

func (c *CachedClient) FetchWorkflowRuns(ctx context.Context, owner, repo, sha string) ([]WorkflowRun, error) {
	key := cacheKeyFor("workflow-runs", owner, repo, sha)
	if c.mode.ShouldRead() {
		var cached []WorkflowRun
		if c.cache.Get(key, &cached) {
			return cached, nil
		}
	}
	runs, err := c.inner.FetchWorkflowRuns(ctx, owner, repo, sha)
	if err != nil {
		return nil, err
	}
	if c.mode.ShouldWrite() {
		c.cache.Put(key, runs)
	}
	return runs, nil
}

// DownloadRunLogs is deliberately uncached: the archives are large and a
// run's logs change while it executes.
func (c *CachedClient) DownloadRunLogs(ctx context.Context, owner, repo string, runID int64) ([]byte, error) {
	return c.inner.DownloadRunLogs(ctx, owner, repo, runID)
}

func (c *CachedClient) RerunFailedJobs(ctx context.Context, owner, repo string, runID int64) error {
	return c.inner.RerunFailedJobs(ctx, owner, repo, runID)
}

func (c *CachedClient) SubmitComment(ctx context.Context, owner, repo string, number int, comment diffview.PendingComment) (int64, error) {
	return c.inner.SubmitComment(ctx, owner, repo, number, comment)
}

func (c *CachedClient) EditComment(ctx context.Context, owner, repo string, commentID int64, body string) error {
	return c.inner.EditComment(ctx, owner, repo, commentID, body)
}

func (c *CachedClient) DeleteComment(ctx context.Context, owner, repo string, commentID int64) error {
	return c.inner.DeleteComment(ctx, owner, repo, commentID)
}

func (c *CachedClient) SubmitReview(ctx context.Context, owner, repo string, number int, event diffview.ReviewEvent, body string, pending []diffview.PendingComment) error {
	return c.inner.SubmitReview(ctx, owner, repo, number, event, body, pending)
}

func (c *CachedClient) ClosePullRequest(ctx context.Context, owner, repo string, number int) error {
	return c.inner.ClosePullRequest(ctx, owner, repo, number)
}

func (c *CachedClient) MergePullRequest(ctx context.Context, owner, repo string, number int) error {
	return c.inner.MergePullRequest(ctx, owner, repo, number)
}

func (c *CachedClient) EnableAutoMerge(ctx context.Context, owner, repo string, number int) error {
	return c.inner.EnableAutoMerge(ctx, owner, repo, number)
}
