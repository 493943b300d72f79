package ghclient

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cli/go-gh/v2/pkg/api"

	"github.com/sassman/gh-pr-lander/pkg/diffview"
	"github.com/sassman/gh-pr-lander/pkg/logger"
)

var restLog = logger.New("ghclient:rest")

// RESTClient implements Client against the GitHub REST API via go-gh.
// go-gh resolves auth from GITHUB_TOKEN/GH_TOKEN or the gh CLI's stored
// credentials, and honors GH_HOST for enterprise hosts.
type RESTClient struct {
	client *api.RESTClient
	// diffClient requests the diff media type instead of JSON.
	diffClient *api.RESTClient
	gql        *api.GraphQLClient
}

// NewRESTClient builds a client for the given host. An empty host means
// public GitHub.
func NewRESTClient(host string) (*RESTClient, error) {
	opts := api.ClientOptions{}
	if host != "" && host != DefaultHost {
		opts.Host = host
	}
	client, err := api.NewRESTClient(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create GitHub client: %w", err)
	}
	diffOpts := opts
	diffOpts.Headers = map[string]string{"Accept": "application/vnd.github.v3.diff"}
	diffClient, err := api.NewRESTClient(diffOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to create GitHub diff client: %w", err)
	}
	gql, err := api.NewGraphQLClient(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create GitHub GraphQL client: %w", err)
	}
	return &RESTClient{client: client, diffClient: diffClient, gql: gql}, nil
}

// apiPullRequest mirrors the REST wire shape of a pull request.
type apiPullRequest struct {
	Number int    `json:"number"`
	Title  string `json:"title"`
	Body   string `json:"body"`
	User   struct {
		Login string `json:"login"`
	} `json:"user"`
	Comments int `json:"comments"`
	Head     struct {
		SHA string `json:"sha"`
		Ref string `json:"ref"`
	} `json:"head"`
	Base struct {
		Ref string `json:"ref"`
	} `json:"base"`
	Mergeable      *bool     `json:"mergeable"`
	MergeableState string    `json:"mergeable_state"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
	HTMLURL        string    `json:"html_url"`
}

func (p apiPullRequest) toDomain() PullRequest {
	state := MergeableState(p.MergeableState)
	if state == "" {
		state = MergeableUnknown
	}
	return PullRequest{
		Number:         p.Number,
		Title:          p.Title,
		Body:           p.Body,
		Author:         p.User.Login,
		Comments:       p.Comments,
		HeadSHA:        p.Head.SHA,
		BaseBranch:     p.Base.Ref,
		HeadBranch:     p.Head.Ref,
		Mergeable:      p.Mergeable,
		MergeableState: state,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
		HTMLURL:        p.HTMLURL,
	}
}

func (c *RESTClient) FetchViewer(ctx context.Context) (string, error) {
	var user struct {
		Login string `json:"login"`
	}
	if err := c.get(ctx, "user", &user); err != nil {
		return "", err
	}
	return user.Login, nil
}

func (c *RESTClient) FetchPullRequests(ctx context.Context, owner, repo, baseBranch string) ([]PullRequest, error) {
	path := fmt.Sprintf("repos/%s/%s/pulls?state=open&per_page=100", owner, repo)
	if baseBranch != "" {
		path += "&base=" + url.QueryEscape(baseBranch)
	}
	var raw []apiPullRequest
	if err := c.get(ctx, path, &raw); err != nil {
		return nil, err
	}
	prs := make([]PullRequest, 0, len(raw))
	for _, p := range raw {
		prs = append(prs, p.toDomain())
	}
	restLog.Printf("Fetched %d open PRs for %s/%s", len(prs), owner, repo)
	return prs, nil
}

func (c *RESTClient) FetchCheckRuns(ctx context.Context, owner, repo, sha string) ([]CheckRun, error) {
	var resp struct {
		CheckRuns []struct {
			ID          int64      `json:"id"`
			Name        string     `json:"name"`
			Status      string     `json:"status"`
			Conclusion  string     `json:"conclusion"`
			DetailsURL  string     `json:"details_url"`
			StartedAt   *time.Time `json:"started_at"`
			CompletedAt *time.Time `json:"completed_at"`
		} `json:"check_runs"`
	}
	path := fmt.Sprintf("repos/%s/%s/commits/%s/check-runs?per_page=100", owner, repo, sha)
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, err
	}
	runs := make([]CheckRun, 0, len(resp.CheckRuns))
	for _, r := range resp.CheckRuns {
		runs = append(runs, CheckRun{
			ID:          r.ID,
			Name:        r.Name,
			Status:      CheckRunStatus(r.Status),
			Conclusion:  CheckConclusion(r.Conclusion),
			DetailsURL:  r.DetailsURL,
			StartedAt:   r.StartedAt,
			CompletedAt: r.CompletedAt,
		})
	}
	return runs, nil
}

func (c *RESTClient) FetchCommitStatus(ctx context.Context, owner, repo, sha string) (CheckStatus, error) {
	var resp struct {
		State      string `json:"state"`
		TotalCount int    `json:"total_count"`
		Statuses   []struct {
			Context     string `json:"context"`
			State       string `json:"state"`
			Description string `json:"description"`
			TargetURL   string `json:"target_url"`
		} `json:"statuses"`
	}
	path := fmt.Sprintf("repos/%s/%s/commits/%s/status", owner, repo, sha)
	if err := c.get(ctx, path, &resp); err != nil {
		return CheckStatus{}, err
	}
	status := CheckStatus{
		State:      commitState(resp.State),
		TotalCount: resp.TotalCount,
	}
	for _, s := range resp.Statuses {
		status.Statuses = append(status.Statuses, CommitStatus{
			Context:     s.Context,
			State:       commitState(s.State),
			Description: s.Description,
			TargetURL:   s.TargetURL,
		})
	}
	return status, nil
}

func commitState(s string) CiState {
	switch s {
	case "success":
		return CiSuccess
	case "pending":
		return CiPending
	case "failure", "error":
		return CiFailure
	default:
		return CiUnknown
	}
}

func (c *RESTClient) FetchPullRequestDiff(ctx context.Context, owner, repo string, number int) (string, error) {
	path := fmt.Sprintf("repos/%s/%s/pulls/%d", owner, repo, number)
	resp, err := c.diffClient.RequestWithContext(ctx, "GET", path, nil)
	if err != nil {
		return "", translateError(err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", networkError(err)
	}
	return string(data), nil
}

func (c *RESTClient) FetchWorkflowRuns(ctx context.Context, owner, repo, sha string) ([]WorkflowRun, error) {
	var resp struct {
		WorkflowRuns []struct {
			ID         int64  `json:"id"`
			Name       string `json:"name"`
			Status     string `json:"status"`
			Conclusion string `json:"conclusion"`
			HTMLURL    string `json:"html_url"`
		} `json:"workflow_runs"`
	}
	path := fmt.Sprintf("repos/%s/%s/actions/runs?head_sha=%s&per_page=50", owner, repo, sha)
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, err
	}
	runs := make([]WorkflowRun, 0, len(resp.WorkflowRuns))
	for _, r := range resp.WorkflowRuns {
		runs = append(runs, WorkflowRun{
			ID:         r.ID,
			Name:       r.Name,
			Status:     r.Status,
			Conclusion: r.Conclusion,
			HTMLURL:    r.HTMLURL,
		})
	}
	return runs, nil
}

func (c *RESTClient) DownloadRunLogs(ctx context.Context, owner, repo string, runID int64) ([]byte, error) {
	path := fmt.Sprintf("repos/%s/%s/actions/runs/%d/logs", owner, repo, runID)
	resp, err := c.client.RequestWithContext(ctx, "GET", path, nil)
	if err != nil {
		return nil, translateError(err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, networkError(err)
	}
	restLog.Printf("Downloaded %d bytes of run logs for run %d", len(data), runID)
	return data, nil
}

func (c *RESTClient) RerunFailedJobs(ctx context.Context, owner, repo string, runID int64) error {
	path := fmt.Sprintf("repos/%s/%s/actions/runs/%d/rerun-failed-jobs", owner, repo, runID)
	return c.post(ctx, path, nil, nil)
}

func (c *RESTClient) SubmitComment(ctx context.Context, owner, repo string, number int, comment diffview.PendingComment) (int64, error) {
	// The review-comment endpoint anchors on a commit; use the current head.
	var pr struct {
		Head struct {
			SHA string `json:"sha"`
		} `json:"head"`
	}
	if err := c.get(ctx, fmt.Sprintf("repos/%s/%s/pulls/%d", owner, repo, number), &pr); err != nil {
		return 0, err
	}
	body := map[string]any{
		"body":      comment.Body,
		"path":      comment.Path,
		"side":      comment.Position.Side.GitHubString(),
		"line":      comment.Position.Line,
		"commit_id": pr.Head.SHA,
	}
	if comment.Position.StartLine != nil {
		body["start_line"] = *comment.Position.StartLine
		body["start_side"] = comment.Position.Side.GitHubString()
	}
	var resp struct {
		ID int64 `json:"id"`
	}
	path := fmt.Sprintf("repos/%s/%s/pulls/%d/comments", owner, repo, number)
	if err := c.post(ctx, path, body, &resp); err != nil {
		return 0, err
	}
	return resp.ID, nil
}

func (c *RESTClient) EditComment(ctx context.Context, owner, repo string, commentID int64, body string) error {
	path := fmt.Sprintf("repos/%s/%s/pulls/comments/%d", owner, repo, commentID)
	payload, err := json.Marshal(map[string]string{"body": body})
	if err != nil {
		return submissionFailed("encode comment body", err)
	}
	err = c.client.DoWithContext(ctx, "PATCH", path, bytes.NewReader(payload), nil)
	if err != nil {
		return translateError(err)
	}
	return nil
}

func (c *RESTClient) DeleteComment(ctx context.Context, owner, repo string, commentID int64) error {
	path := fmt.Sprintf("repos/%s/%s/pulls/comments/%d", owner, repo, commentID)
	if err := c.client.DoWithContext(ctx, "DELETE", path, nil, nil); err != nil {
		return translateError(err)
	}
	return nil
}

func (c *RESTClient) SubmitReview(ctx context.Context, owner, repo string, number int, event diffview.ReviewEvent, body string, pending []diffview.PendingComment) error {
	type reviewComment struct {
		Path      string `json:"path"`
		Side      string `json:"side"`
		Line      int    `json:"line"`
		StartLine *int   `json:"start_line,omitempty"`
		StartSide string `json:"start_side,omitempty"`
		Body      string `json:"body"`
	}
	payload := struct {
		Event    string          `json:"event"`
		Body     string          `json:"body,omitempty"`
		Comments []reviewComment `json:"comments,omitempty"`
	}{
		Event: event.GitHubString(),
		Body:  body,
	}
	for _, pc := range pending {
		// Comments already posted individually are not resubmitted.
		if pc.RemoteID != nil {
			continue
		}
		rc := reviewComment{
			Path: pc.Path,
			Side: pc.Position.Side.GitHubString(),
			Line: pc.Position.Line,
			Body: pc.Body,
		}
		if pc.Position.StartLine != nil {
			rc.StartLine = pc.Position.StartLine
			rc.StartSide = pc.Position.Side.GitHubString()
		}
		payload.Comments = append(payload.Comments, rc)
	}
	path := fmt.Sprintf("repos/%s/%s/pulls/%d/reviews", owner, repo, number)
	if err := c.post(ctx, path, payload, nil); err != nil {
		if apiErr, ok := AsAPIError(err); ok && apiErr.Kind == KindNetworkError {
			return err
		}
		return submissionFailed(fmt.Sprintf("review on #%d", number), err)
	}
	return nil
}

func (c *RESTClient) ClosePullRequest(ctx context.Context, owner, repo string, number int) error {
	path := fmt.Sprintf("repos/%s/%s/pulls/%d", owner, repo, number)
	payload, _ := json.Marshal(map[string]string{"state": "closed"})
	if err := c.client.DoWithContext(ctx, "PATCH", path, bytes.NewReader(payload), nil); err != nil {
		return translateError(err)
	}
	return nil
}

func (c *RESTClient) MergePullRequest(ctx context.Context, owner, repo string, number int) error {
	path := fmt.Sprintf("repos/%s/%s/pulls/%d/merge", owner, repo, number)
	payload, _ := json.Marshal(map[string]string{"merge_method": "squash"})
	if err := c.client.DoWithContext(ctx, "PUT", path, bytes.NewReader(payload), nil); err != nil {
		if apiErr, ok := AsAPIError(translateError(err)); ok && apiErr.Kind != KindSubmissionFailed {
			return apiErr
		}
		return submissionFailed(fmt.Sprintf("merge #%d", number), err)
	}
	return nil
}

// EnablePullRequestAutoMergeInput is the GraphQL mutation input; the type
// name must match the schema's input type.
type EnablePullRequestAutoMergeInput struct {
	PullRequestID string `json:"pullRequestId"`
	MergeMethod   string `json:"mergeMethod"`
}

// EnableAutoMerge turns on auto-merge via GraphQL (the only API surface that
// exposes it).
func (c *RESTClient) EnableAutoMerge(ctx context.Context, owner, repo string, number int) error {
	var pr struct {
		NodeID string `json:"node_id"`
	}
	if err := c.get(ctx, fmt.Sprintf("repos/%s/%s/pulls/%d", owner, repo, number), &pr); err != nil {
		return err
	}
	var mutation struct {
		EnablePullRequestAutoMerge struct {
			PullRequest struct {
				Number int
			}
		} `graphql:"enablePullRequestAutoMerge(input: $input)"`
	}
	variables := map[string]any{
		"input": EnablePullRequestAutoMergeInput{
			PullRequestID: pr.NodeID,
			MergeMethod:   "SQUASH",
		},
	}
	if err := c.gql.MutateWithContext(ctx, "EnableAutoMerge", &mutation, variables); err != nil {
		return submissionFailed(fmt.Sprintf("enable auto-merge on #%d", number), err)
	}
	return nil
}

// get issues a GET and translates transport errors into the taxonomy.
func (c *RESTClient) get(ctx context.Context, path string, out any) error {
	if err := c.client.DoWithContext(ctx, "GET", path, nil, out); err != nil {
		return translateError(err)
	}
	return nil
}

func (c *RESTClient) post(ctx context.Context, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return submissionFailed("encode request", err)
		}
		reader = bytes.NewReader(payload)
	}
	if err := c.client.DoWithContext(ctx, "POST", path, reader, out); err != nil {
		return translateError(err)
	}
	return nil
}

// translateError maps go-gh errors onto the package taxonomy.
func translateError(err error) error {
	var httpErr *api.HTTPError
	if errors.As(err, &httpErr) {
		switch {
		case httpErr.StatusCode == 401 || httpErr.StatusCode == 403 && !isRateLimit(httpErr):
			return &APIError{Kind: KindUnauthorized, Message: httpErr.Message, Cause: err}
		case httpErr.StatusCode == 404:
			return notFound(httpErr.Message)
		case httpErr.StatusCode == 429 || isRateLimit(httpErr):
			return &APIError{
				Kind:              KindRateLimited,
				Message:           httpErr.Message,
				RetryAfterSeconds: retryAfterSeconds(httpErr),
				Cause:             err,
			}
		case httpErr.StatusCode >= 500:
			return &APIError{Kind: KindUnavailable, Message: httpErr.Message, Cause: err}
		default:
			return submissionFailed(httpErr.Message, err)
		}
	}
	return networkError(err)
}

func isRateLimit(httpErr *api.HTTPError) bool {
	return httpErr.StatusCode == 403 &&
		strings.Contains(strings.ToLower(httpErr.Message), "rate limit")
}

func retryAfterSeconds(httpErr *api.HTTPError) int {
	if v := httpErr.Headers.Get("Retry-After"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return 60
}

// RESTContextProvider implements ContextProvider over the contents API.
type RESTContextProvider struct {
	client *RESTClient
	owner  string
	repo   string
}

// NewContextProvider scopes a provider to one repository.
func NewContextProvider(client *RESTClient, owner, repo string) *RESTContextProvider {
	return &RESTContextProvider{client: client, owner: owner, repo: repo}
}

func (p *RESTContextProvider) IsAvailable() bool {
	return p.client != nil
}

// FetchLines returns lines [startLine, endLine] of path at commitSHA.
func (p *RESTContextProvider) FetchLines(ctx context.Context, path, commitSHA string, startLine, endLine int) ([]string, error) {
	var resp struct {
		Content  string `json:"content"`
		Encoding string `json:"encoding"`
	}
	apiPath := fmt.Sprintf("repos/%s/%s/contents/%s?ref=%s",
		p.owner, p.repo, path, url.QueryEscape(commitSHA))
	if err := p.client.get(ctx, apiPath, &resp); err != nil {
		if apiErr, ok := AsAPIError(err); ok && apiErr.Kind == KindNotFound {
			return nil, &APIError{Kind: KindFileNotFound, Message: path}
		}
		return nil, err
	}
	content := resp.Content
	if resp.Encoding == "base64" {
		decoded, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(content, "\n", ""))
		if err != nil {
			return nil, networkError(err)
		}
		content = string(decoded)
	}
	lines := strings.Split(strings.TrimSuffix(content, "\n"), "\n")
	if startLine < 1 {
		startLine = 1
	}
	if endLine > len(lines) {
		endLine = len(lines)
	}
	if startLine > endLine {
		return nil, nil
	}
	return lines[startLine-1 : endLine], nil
}
