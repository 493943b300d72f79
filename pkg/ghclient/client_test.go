package ghclient

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sassman/gh-pr-lander/pkg/diffview"
)

func TestCacheModeShouldRead(t *testing.T) {
	assert.False(t, CacheNone.ShouldRead())
	assert.False(t, CacheWriteOnly.ShouldRead())
	assert.True(t, CacheReadOnly.ShouldRead())
	assert.True(t, CacheReadWrite.ShouldRead())
}

func TestCacheModeShouldWrite(t *testing.T) {
	assert.False(t, CacheNone.ShouldWrite())
	assert.True(t, CacheWriteOnly.ShouldWrite())
	assert.False(t, CacheReadOnly.ShouldWrite())
	assert.True(t, CacheReadWrite.ShouldWrite())
}

func TestCombineCheckRuns(t *testing.T) {
	assert.Equal(t, CiUnknown, CombineCheckRuns(nil))

	pending := []CheckRun{{Status: CheckInProgress}}
	assert.Equal(t, CiPending, CombineCheckRuns(pending))

	passing := []CheckRun{
		{Status: CheckCompleted, Conclusion: ConclusionSuccess},
		{Status: CheckCompleted, Conclusion: ConclusionSkipped},
	}
	assert.Equal(t, CiSuccess, CombineCheckRuns(passing))

	failing := []CheckRun{
		{Status: CheckCompleted, Conclusion: ConclusionSuccess},
		{Status: CheckCompleted, Conclusion: ConclusionFailure},
	}
	assert.Equal(t, CiFailure, CombineCheckRuns(failing))
}

func TestAPICacheRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")
	cache := NewAPICache(path)

	cache.Put("key", []string{"a", "b"})
	var out []string
	require.True(t, cache.Get("key", &out))
	assert.Equal(t, []string{"a", "b"}, out)

	// Reload from disk.
	reloaded := NewAPICache(path)
	out = nil
	require.True(t, reloaded.Get("key", &out))
	assert.Equal(t, []string{"a", "b"}, out)
}

func TestAPICacheMiss(t *testing.T) {
	cache := NewAPICache(filepath.Join(t.TempDir(), "cache.json"))
	var out string
	assert.False(t, cache.Get("absent", &out))
}

func TestAPICacheBrokenFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o644))
	cache := NewAPICache(path)
	assert.Equal(t, 0, cache.Len())
}

// fakeClient counts calls so the decorator's cache behavior is observable.
type fakeClient struct {
	Client
	fetchCalls int
	prs        []PullRequest
}

func (f *fakeClient) FetchPullRequests(_ context.Context, _, _, _ string) ([]PullRequest, error) {
	f.fetchCalls++
	return f.prs, nil
}

func TestCachedClientReadWrite(t *testing.T) {
	fake := &fakeClient{prs: []PullRequest{{Number: 7, Title: "seven"}}}
	cache := NewAPICache(filepath.Join(t.TempDir(), "cache.json"))
	client := NewCachedClient(fake, cache, CacheReadWrite)

	first, err := client.FetchPullRequests(context.Background(), "o", "r", "")
	require.NoError(t, err)
	second, err := client.FetchPullRequests(context.Background(), "o", "r", "")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, fake.fetchCalls)
}

func TestCachedClientWriteOnlySkipsReads(t *testing.T) {
	fake := &fakeClient{prs: []PullRequest{{Number: 7}}}
	cache := NewAPICache(filepath.Join(t.TempDir(), "cache.json"))
	client := NewCachedClient(fake, cache, CacheWriteOnly)

	_, err := client.FetchPullRequests(context.Background(), "o", "r", "")
	require.NoError(t, err)
	_, err = client.FetchPullRequests(context.Background(), "o", "r", "")
	require.NoError(t, err)
	assert.Equal(t, 2, fake.fetchCalls)

	// But responses were written: a read-write sibling sees them.
	_, err = client.WithMode(CacheReadWrite).FetchPullRequests(context.Background(), "o", "r", "")
	require.NoError(t, err)
	assert.Equal(t, 2, fake.fetchCalls)
}

func TestAPIErrorTaxonomy(t *testing.T) {
	err := &APIError{Kind: KindRateLimited, RetryAfterSeconds: 30}
	assert.Contains(t, err.Error(), "30")

	wrapped, ok := AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, KindRateLimited, wrapped.Kind)

	_, ok = AsAPIError(assert.AnError)
	assert.False(t, ok)
}

func TestReviewEventStrings(t *testing.T) {
	assert.Equal(t, "APPROVE", diffview.ReviewApprove.GitHubString())
	assert.Equal(t, "REQUEST_CHANGES", diffview.ReviewRequestChanges.GitHubString())
	assert.Equal(t, "COMMENT", diffview.ReviewComment.GitHubString())
}
