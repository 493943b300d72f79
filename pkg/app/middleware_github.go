package app

import (
	"context"
	"fmt"

	"github.com/sourcegraph/conc/pool"

	"github.com/sassman/gh-pr-lander/pkg/actionslog"
	"github.com/sassman/gh-pr-lander/pkg/diffview"
	"github.com/sassman/gh-pr-lander/pkg/ghclient"
	"github.com/sassman/gh-pr-lander/pkg/logger"
)

var githubLog = logger.New("app:github")

// GitHubMiddleware owns the API boundary: it consumes every action that
// needs a remote call and dispatches result actions. Partial success in bulk
// operations surfaces per-PR (PrOperationDone / PrOperationFailed), never as
// one bulk failure. All calls run under a context cancelled at shutdown.
type GitHubMiddleware struct {
	ctx     context.Context
	client  ghclient.Client
	refresh ghclient.Client
	// raw backs the per-repo context providers for diff expansion.
	raw *ghclient.RESTClient
}

// NewGitHubMiddleware wires the cached client pair (read-write + write-only
// for force refresh) and the raw client backing context providers.
func NewGitHubMiddleware(ctx context.Context, client, refresh ghclient.Client, raw *ghclient.RESTClient) *GitHubMiddleware {
	return &GitHubMiddleware{ctx: ctx, client: client, refresh: refresh, raw: raw}
}

func (m *GitHubMiddleware) Handle(action Action, state *AppState, dispatcher *Dispatcher) bool {
	switch a := action.(type) {
	case BootstrapStart:
		// The client is constructed in main; resolve the viewer (also a
		// cheap auth probe), then report readiness so bootstrap proceeds.
		if login, err := m.client.FetchViewer(m.ctx); err == nil {
			dispatcher.Dispatch(CurrentUserLoaded{Login: login})
		} else {
			githubLog.Printf("Viewer lookup failed: %v", err)
		}
		dispatcher.Dispatch(NewEvent(EventClientReady{}))
		return true

	case PrLoad:
		m.loadPullRequests(state, a.RepoIndex, a.Force, dispatcher)
		return true

	case PrRefresh:
		dispatcher.Dispatch(PrLoad{
			RepoIndex: state.MainView.SelectedRepository,
			Force:     true,
		})
		return false

	case ApproveWithMessage:
		m.reviewEach(state, a.PrNumbers, diffview.ReviewApprove, a.Message, "approve", dispatcher)
		return false

	case RequestChangesWithMessage:
		m.reviewEach(state, a.PrNumbers, diffview.ReviewRequestChanges, a.Message, "request-changes", dispatcher)
		return false

	case CommentWithMessage:
		m.reviewEach(state, a.PrNumbers, diffview.ReviewComment, a.Message, "comment", dispatcher)
		return false

	case CloseWithMessage:
		m.closeEach(state, a.PrNumbers, a.Message, dispatcher)
		return false

	case PrMerge:
		m.mergeSelected(state, dispatcher)
		return false

	case PrRebase:
		m.rebaseSelected(state, dispatcher)
		return false

	case DiffOpen:
		m.openDiff(state, a.Number, dispatcher)
		return true

	case BuildLogOpen:
		m.openBuildLogs(state, dispatcher)
		return true

	case DiffExpandContext:
		m.expandContext(state, a, dispatcher)
		return false

	case DiffSubmitReview:
		m.submitReview(state, a, dispatcher)
		return true

	case BuildLogRerunFailed:
		m.rerunFailed(state, dispatcher)
		return false
	}
	return true
}

// loadPullRequests lists PRs for one repository and then fans out check-run
// fetches through a bounded pool; results re-enter the queue in FIFO order
// because the pool only runs the fetches and dispatch happens per result.
func (m *GitHubMiddleware) loadPullRequests(state *AppState, repoIndex int, force bool, dispatcher *Dispatcher) {
	if repoIndex < 0 || repoIndex >= len(state.MainView.Repositories) {
		return
	}
	repo := state.MainView.Repositories[repoIndex]
	client := m.client
	if force {
		client = m.refresh
	}

	dispatcher.Dispatch(statusNow(StatusRunning,
		"Loading PRs for "+repo.DisplayName(), "PrLoad"))

	apiPrs, err := client.FetchPullRequests(m.ctx, repo.Org, repo.Repo, repo.Branch)
	if err != nil {
		githubLog.Printf("PR load failed for %s: %v", repo.DisplayName(), err)
		dispatcher.Dispatch(PrLoadError{RepoIndex: repoIndex, Message: err.Error()})
		dispatcher.Dispatch(statusNow(StatusError,
			"Failed to load "+repo.DisplayName()+": "+err.Error(), "PrLoad"))
		return
	}

	prs := make([]Pr, 0, len(apiPrs))
	for _, apiPr := range apiPrs {
		prs = append(prs, PrFromAPI(apiPr))
	}
	dispatcher.Dispatch(PrLoaded{RepoIndex: repoIndex, Prs: prs})
	dispatcher.Dispatch(statusNow(StatusSuccess,
		fmt.Sprintf("Loaded %d PRs for %s", len(prs), repo.DisplayName()), "PrLoad"))

	// CI status per PR, bounded parallelism; per-PR results, never bulk.
	checks := pool.New().WithMaxGoroutines(4)
	for _, pr := range prs {
		pr := pr
		checks.Go(func() {
			runs, err := m.client.FetchCheckRuns(m.ctx, repo.Org, repo.Repo, pr.HeadSHA)
			if err != nil {
				githubLog.Printf("Check fetch failed for #%d: %v", pr.Number, err)
				return
			}
			dispatcher.Dispatch(PrChecksLoaded{
				RepoIndex: repoIndex,
				Number:    pr.Number,
				Status:    StatusFromCiState(ghclient.CombineCheckRuns(runs)),
			})
		})
	}
	checks.Wait()
}

func (m *GitHubMiddleware) reviewEach(state *AppState, numbers []int, event diffview.ReviewEvent, message, operation string, dispatcher *Dispatcher) {
	repo, ok := state.MainView.SelectedRepo()
	if !ok {
		return
	}
	for _, number := range numbers {
		err := m.client.SubmitReview(m.ctx, repo.Org, repo.Repo, number, event, message, nil)
		if err != nil {
			dispatcher.Dispatch(PrOperationFailed{Number: number, Operation: operation, Message: err.Error()})
			dispatcher.Dispatch(statusNow(StatusError,
				fmt.Sprintf("#%d %s failed: %s", number, operation, err.Error()), operation))
			continue
		}
		dispatcher.Dispatch(PrOperationDone{Number: number, Operation: operation})
		dispatcher.Dispatch(statusNow(StatusSuccess,
			fmt.Sprintf("#%d %s done", number, operation), operation))
	}
}

func (m *GitHubMiddleware) closeEach(state *AppState, numbers []int, message string, dispatcher *Dispatcher) {
	repo, ok := state.MainView.SelectedRepo()
	if !ok {
		return
	}
	for _, number := range numbers {
		if message != "" {
			if err := m.client.SubmitReview(m.ctx, repo.Org, repo.Repo, number, diffview.ReviewComment, message, nil); err != nil {
				githubLog.Printf("Closing comment on #%d failed: %v", number, err)
			}
		}
		if err := m.client.ClosePullRequest(m.ctx, repo.Org, repo.Repo, number); err != nil {
			dispatcher.Dispatch(PrOperationFailed{Number: number, Operation: "close", Message: err.Error()})
			dispatcher.Dispatch(statusNow(StatusError,
				fmt.Sprintf("#%d close failed: %s", number, err.Error()), "close"))
			continue
		}
		dispatcher.Dispatch(PrOperationDone{Number: number, Operation: "close"})
		dispatcher.Dispatch(statusNow(StatusSuccess,
			fmt.Sprintf("#%d closed", number), "close"))
	}
	dispatcher.Dispatch(PrRefresh{})
}

// mergeSelected merges the targeted PRs; only Ready ones are attempted.
func (m *GitHubMiddleware) mergeSelected(state *AppState, dispatcher *Dispatcher) {
	repo, ok := state.MainView.SelectedRepo()
	if !ok {
		return
	}
	data := state.MainView.SelectedRepoData()
	targets := data.SelectionTargets(state.MainView.CurrentUser)
	for _, number := range targets {
		pr := prByNumber(data.Prs, number)
		if pr == nil || !pr.Mergeable.CanMerge() {
			dispatcher.Dispatch(PrOperationFailed{
				Number:    number,
				Operation: "merge",
				Message:   "not ready to merge",
			})
			continue
		}
		if err := m.client.MergePullRequest(m.ctx, repo.Org, repo.Repo, number); err != nil {
			dispatcher.Dispatch(PrOperationFailed{Number: number, Operation: "merge", Message: err.Error()})
			dispatcher.Dispatch(statusNow(StatusError,
				fmt.Sprintf("#%d merge failed: %s", number, err.Error()), "merge"))
			continue
		}
		dispatcher.Dispatch(PrOperationDone{Number: number, Operation: "merge"})
		dispatcher.Dispatch(statusNow(StatusSuccess,
			fmt.Sprintf("#%d merged", number), "merge"))
	}
	dispatcher.Dispatch(PrRefresh{})
}

func (m *GitHubMiddleware) rebaseSelected(state *AppState, dispatcher *Dispatcher) {
	repo, ok := state.MainView.SelectedRepo()
	if !ok {
		return
	}
	data := state.MainView.SelectedRepoData()
	for _, number := range data.SelectionTargets(state.MainView.CurrentUser) {
		if err := m.client.EnableAutoMerge(m.ctx, repo.Org, repo.Repo, number); err != nil {
			dispatcher.Dispatch(PrOperationFailed{Number: number, Operation: "rebase", Message: err.Error()})
			continue
		}
		dispatcher.Dispatch(PrOperationDone{Number: number, Operation: "rebase"})
	}
}

func (m *GitHubMiddleware) openDiff(state *AppState, number int, dispatcher *Dispatcher) {
	repo, ok := state.MainView.SelectedRepo()
	if !ok {
		return
	}
	dispatcher.Dispatch(statusNow(StatusRunning,
		fmt.Sprintf("Loading diff for #%d", number), "DiffOpen"))
	diffText, err := m.client.FetchPullRequestDiff(m.ctx, repo.Org, repo.Repo, number)
	if err != nil {
		dispatcher.Dispatch(DiffLoadError{Message: err.Error()})
		dispatcher.Dispatch(statusNow(StatusError, "Diff load failed: "+err.Error(), "DiffOpen"))
		return
	}

	pr := prByNumber(state.MainView.SelectedRepoData().Prs, number)
	baseSHA, headSHA := "", ""
	if pr != nil {
		headSHA = pr.HeadSHA
	}
	parsed, err := diffview.ParseUnifiedDiff(diffText, baseSHA, headSHA)
	if err != nil {
		dispatcher.Dispatch(DiffLoadError{Message: err.Error()})
		dispatcher.Dispatch(statusNow(StatusError, "Diff parse failed: "+err.Error(), "DiffOpen"))
		return
	}
	dispatcher.Dispatch(DiffLoaded{Number: number, Diff: parsed})
	dispatcher.Dispatch(GlobalPushView{View: ViewDiffViewer})
}

func (m *GitHubMiddleware) openBuildLogs(state *AppState, dispatcher *Dispatcher) {
	repo, ok := state.MainView.SelectedRepo()
	if !ok {
		return
	}
	data := state.MainView.SelectedRepoData()
	targets := data.SelectionTargets(state.MainView.CurrentUser)
	if len(targets) == 0 {
		return
	}
	pr := prByNumber(data.Prs, targets[0])
	if pr == nil {
		return
	}

	dispatcher.Dispatch(GlobalPushView{View: ViewBuildLog})
	dispatcher.Dispatch(statusNow(StatusRunning,
		fmt.Sprintf("Loading build logs for #%d", pr.Number), "BuildLogOpen"))

	runs, err := m.client.FetchWorkflowRuns(m.ctx, repo.Org, repo.Repo, pr.HeadSHA)
	if err != nil {
		dispatcher.Dispatch(BuildLogLoadError{Message: err.Error()})
		return
	}
	if len(runs) == 0 {
		dispatcher.Dispatch(BuildLogLoadError{Message: "no workflow runs for this commit"})
		return
	}

	var workflows []actionslog.WorkflowNode
	var firstRunID int64
	for _, run := range runs {
		zipData, err := m.client.DownloadRunLogs(m.ctx, repo.Org, repo.Repo, run.ID)
		if err != nil {
			githubLog.Printf("Log download failed for run %d: %v", run.ID, err)
			continue
		}
		parsed, err := actionslog.ParseWorkflowLogs(zipData)
		if err != nil {
			githubLog.Printf("Log parse failed for run %d: %v", run.ID, err)
			continue
		}
		if firstRunID == 0 {
			firstRunID = run.ID
		}
		workflows = append(workflows, actionslog.BuildTree(parsed, run.Name)...)
	}
	if len(workflows) == 0 {
		dispatcher.Dispatch(BuildLogLoadError{Message: "no readable logs"})
		return
	}
	dispatcher.Dispatch(BuildLogLoaded{
		Workflows: workflows,
		PrNumber:  pr.Number,
		PrTitle:   pr.Title,
		PrAuthor:  pr.Author,
		RunID:     firstRunID,
	})
	dispatcher.Dispatch(statusNow(StatusSuccess, "Build logs loaded", "BuildLogOpen"))
}

func (m *GitHubMiddleware) expandContext(state *AppState, a DiffExpandContext, dispatcher *Dispatcher) {
	repo, ok := state.MainView.SelectedRepo()
	if !ok {
		return
	}
	var provider ghclient.ContextProvider = ghclient.NewContextProvider(m.raw, repo.Org, repo.Repo)
	if !provider.IsAvailable() {
		return
	}
	d := state.DiffViewer
	var event diffview.RequestContextEvent
	var expandable bool
	if a.Direction == diffview.ExpandUp {
		event, expandable = d.RequestContextAbove(a.Count)
	} else {
		event, expandable = d.RequestContextBelow(a.Count)
	}
	if !expandable {
		return
	}
	lines, err := provider.FetchLines(m.ctx, event.FilePath, event.CommitSHA,
		event.FromLine, event.FromLine+event.Count-1)
	if err != nil {
		dispatcher.Dispatch(statusNow(StatusWarning,
			"Context fetch failed: "+err.Error(), "DiffExpandContext"))
		return
	}
	dispatcher.Dispatch(DiffContextInserted{
		Path:      event.FilePath,
		Direction: event.Direction,
		FromLine:  event.FromLine,
		Lines:     lines,
	})
}

func (m *GitHubMiddleware) submitReview(state *AppState, a DiffSubmitReview, dispatcher *Dispatcher) {
	repo, ok := state.MainView.SelectedRepo()
	if !ok {
		return
	}
	d := state.DiffViewer
	number := d.PRNumber
	err := m.client.SubmitReview(m.ctx, repo.Org, repo.Repo, number, a.Event, a.Body, d.PendingComments)
	if err != nil {
		dispatcher.Dispatch(statusNow(StatusError,
			fmt.Sprintf("Review on #%d failed: %s", number, err.Error()), "DiffSubmitReview"))
		return
	}
	dispatcher.Dispatch(DiffReviewSubmitted{Number: number})
	dispatcher.Dispatch(statusNow(StatusSuccess,
		fmt.Sprintf("Review submitted on #%d", number), "DiffSubmitReview"))
}

func (m *GitHubMiddleware) rerunFailed(state *AppState, dispatcher *Dispatcher) {
	repo, ok := state.MainView.SelectedRepo()
	if !ok || state.BuildLog.RunID == 0 {
		return
	}
	if err := m.client.RerunFailedJobs(m.ctx, repo.Org, repo.Repo, state.BuildLog.RunID); err != nil {
		dispatcher.Dispatch(statusNow(StatusError, "Rerun failed: "+err.Error(), "BuildLogRerunFailed"))
		return
	}
	dispatcher.Dispatch(statusNow(StatusSuccess, "Requested rerun of failed jobs", "BuildLogRerunFailed"))
}

func prByNumber(prs []Pr, number int) *Pr {
	for i := range prs {
		if prs[i].Number == number {
			return &prs[i]
		}
	}
	return nil
}
