package app

import (
	"github.com/sassman/gh-pr-lander/pkg/browser"
	"github.com/sassman/gh-pr-lander/pkg/config"
	"github.com/sassman/gh-pr-lander/pkg/ghclient"
	"github.com/sassman/gh-pr-lander/pkg/logger"
)

var repositoryLog = logger.New("app:repository")

// RepositoryMiddleware loads and persists the tracked repository list, opens
// repository pages, and turns repository selection into PR loads.
type RepositoryMiddleware struct{}

// NewRepositoryMiddleware builds the repository effects handler.
func NewRepositoryMiddleware() *RepositoryMiddleware {
	return &RepositoryMiddleware{}
}

func (m *RepositoryMiddleware) Handle(action Action, state *AppState, dispatcher *Dispatcher) bool {
	switch a := action.(type) {
	case LoadRecentRepositories:
		repos := make([]Repository, 0)
		for _, entry := range config.LoadRecentRepositories() {
			repos = append(repos, Repository{
				Org:    entry.Org,
				Repo:   entry.Repo,
				Branch: entry.Branch,
				Host:   entry.Host,
			})
		}
		repositoryLog.Printf("Loaded %d recent repositories", len(repos))
		dispatcher.Dispatch(RecentRepositoriesLoaded{Repos: repos})
		return false

	case RepositoryAdd:
		dispatcher.Dispatch(GlobalPushView{View: ViewAddRepository})
		return false

	case AddRepoSubmit:
		repo, err := state.AddRepoForm.Validate()
		if err != nil {
			// The reducer records the validation error for the form.
			return true
		}
		dispatcher.Dispatch(RepositorySubmitted{Repo: repo})
		dispatcher.Dispatch(GlobalClose{})
		return true

	case RepositorySubmitted:
		m.persist(append(cloneRepos(state.MainView.Repositories), a.Repo))
		dispatcher.Dispatch(statusNow(StatusSuccess,
			"Added "+a.Repo.FullDisplayName(), "RepositorySubmitted"))
		return true

	case RepositoryNext, RepositoryPrevious:
		// Load PRs for the newly selected repository after the reducer
		// applies the tab change; compute the target index here.
		index := nextRepoIndex(state, action)
		if index >= 0 {
			dispatcher.Dispatch(PrLoad{RepoIndex: index})
			dispatcher.Dispatch(NewEvent(EventRepositorySelected{
				Repo: state.MainView.Repositories[index],
			}))
		}
		return true

	case RepositoryOpenInBrowser:
		repo, ok := state.MainView.SelectedRepo()
		if !ok {
			return false
		}
		host := repo.Host
		if host == "" {
			host = ghclient.DefaultHost
		}
		url := "https://" + host + "/" + repo.Org + "/" + repo.Repo
		if err := browser.Open(url); err != nil {
			dispatcher.Dispatch(statusNow(StatusError, err.Error(), "RepositoryOpenInBrowser"))
		}
		return false

	case RecentRepositoriesLoaded:
		// Kick off a PR load for the selected repository once repos exist.
		if len(a.Repos) > 0 {
			dispatcher.Dispatch(PrLoad{RepoIndex: state.MainView.SelectedRepository})
		}
		return true
	}
	return true
}

func nextRepoIndex(state *AppState, action Action) int {
	n := len(state.MainView.Repositories)
	if n == 0 {
		return -1
	}
	current := state.MainView.SelectedRepository
	if _, ok := action.(RepositoryNext); ok {
		return (current + 1) % n
	}
	return (current - 1 + n) % n
}

func cloneRepos(repos []Repository) []Repository {
	return append([]Repository(nil), repos...)
}

func (m *RepositoryMiddleware) persist(repos []Repository) {
	entries := make([]config.RecentRepository, 0, len(repos))
	for _, repo := range repos {
		entries = append(entries, config.RecentRepository{
			Org:    repo.Org,
			Repo:   repo.Repo,
			Branch: repo.Branch,
			Host:   repo.Host,
		})
	}
	if err := config.SaveRecentRepositories(entries); err != nil {
		repositoryLog.Printf("Failed to save recent repositories: %v", err)
	}
}
