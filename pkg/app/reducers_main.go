package app

// Sub-reducers for the main screen: repositories and pull request tables.

func reduceRepository(state AppState, action Action) AppState {
	m := &state.MainView
	switch a := action.(type) {
	case RecentRepositoriesLoaded:
		for _, repo := range a.Repos {
			if !containsRepo(m.Repositories, repo) {
				m.Repositories = append(m.Repositories, repo)
			}
		}
		state = applyPendingSession(state)

	case RepositorySubmitted:
		if !containsRepo(m.Repositories, a.Repo) {
			m.Repositories = append(m.Repositories, a.Repo)
			m.SelectedRepository = len(m.Repositories) - 1
		} else {
			for i, repo := range m.Repositories {
				if repo.SameRepo(a.Repo) {
					m.SelectedRepository = i
				}
			}
		}
		state.AddRepoForm = AddRepoFormState{}

	case RepositoryNext:
		if n := len(m.Repositories); n > 0 {
			m.SelectedRepository = (m.SelectedRepository + 1) % n
		}

	case RepositoryPrevious:
		if n := len(m.Repositories); n > 0 {
			m.SelectedRepository = (m.SelectedRepository - 1 + n) % n
		}

	case CurrentUserLoaded:
		m.CurrentUser = a.Login

	case SessionRestored:
		if a.Repo != nil {
			repo := *a.Repo
			m.PendingSessionRepo = &repo
		}
		m.PendingSessionPrNo = a.PrNumber
		state = applyPendingSession(state)
	}
	return state
}

// applyPendingSession matches the saved repo (host-aware) once it exists and
// moves the selection onto it; the PR selection waits for that repo's PRs.
func applyPendingSession(state AppState) AppState {
	m := &state.MainView
	if m.PendingSessionRepo == nil {
		return state
	}
	for i, repo := range m.Repositories {
		if repo.SameRepo(*m.PendingSessionRepo) {
			m.SelectedRepository = i
			m.PendingSessionRepo = nil
			return state
		}
	}
	return state
}

func containsRepo(repos []Repository, candidate Repository) bool {
	for _, repo := range repos {
		if repo.SameRepo(candidate) {
			return true
		}
	}
	return false
}

func reducePullRequests(state AppState, action Action) AppState {
	m := &state.MainView
	data := m.RepoData[m.SelectedRepository]

	switch a := action.(type) {
	case PrLoad:
		target := m.RepoData[a.RepoIndex]
		target.Loading = LoadingInProgress
		target.LoadError = ""
		m.RepoData[a.RepoIndex] = target

	case PrLoaded:
		target := m.RepoData[a.RepoIndex]
		target.Prs = a.Prs
		target.Loading = LoadingLoaded
		target.LoadError = ""
		if target.SelectedPrNumbers == nil {
			target.SelectedPrNumbers = make(map[int]struct{})
		}
		if target.SelectedPr >= len(a.Prs) && len(a.Prs) > 0 {
			target.SelectedPr = len(a.Prs) - 1
		}
		m.RepoData[a.RepoIndex] = target
		if a.RepoIndex == m.SelectedRepository && m.PendingSessionPrNo > 0 {
			state = Reduce(state, PrSelectByNumber{Number: m.PendingSessionPrNo})
			state.MainView.PendingSessionPrNo = 0
		}

	case PrLoadError:
		target := m.RepoData[a.RepoIndex]
		target.Loading = LoadingFailed
		target.LoadError = a.Message
		m.RepoData[a.RepoIndex] = target

	case PrChecksLoaded:
		target := m.RepoData[a.RepoIndex]
		for i := range target.Prs {
			if target.Prs[i].Number == a.Number {
				target.Prs[i].Mergeable = a.Status
			}
		}
		m.RepoData[a.RepoIndex] = target

	case PrCursorDown:
		visible := data.VisiblePrs(m.CurrentUser)
		if data.SelectedPr+1 < len(visible) {
			data.SelectedPr++
		}
		m.RepoData[m.SelectedRepository] = data

	case PrCursorUp:
		if data.SelectedPr > 0 {
			data.SelectedPr--
		}
		m.RepoData[m.SelectedRepository] = data

	case PrSelectByNumber:
		for i, pr := range data.VisiblePrs(m.CurrentUser) {
			if pr.Number == a.Number {
				data.SelectedPr = i
			}
		}
		m.RepoData[m.SelectedRepository] = data

	case PrToggleSelection:
		visible := data.VisiblePrs(m.CurrentUser)
		if len(visible) == 0 {
			break
		}
		idx := data.SelectedPr
		if idx >= len(visible) {
			idx = len(visible) - 1
		}
		number := visible[idx].Number
		if data.SelectedPrNumbers == nil {
			data.SelectedPrNumbers = make(map[int]struct{})
		}
		if _, ok := data.SelectedPrNumbers[number]; ok {
			delete(data.SelectedPrNumbers, number)
		} else {
			data.SelectedPrNumbers[number] = struct{}{}
		}
		m.RepoData[m.SelectedRepository] = data

	case PrSelectAll:
		if data.SelectedPrNumbers == nil {
			data.SelectedPrNumbers = make(map[int]struct{})
		}
		for _, pr := range data.VisiblePrs(m.CurrentUser) {
			data.SelectedPrNumbers[pr.Number] = struct{}{}
		}
		m.RepoData[m.SelectedRepository] = data

	case PrDeselectAll:
		data.SelectedPrNumbers = make(map[int]struct{})
		m.RepoData[m.SelectedRepository] = data

	case PrCycleFilter:
		data.Filter = data.Filter.Next()
		data.SelectedPr = 0
		m.RepoData[m.SelectedRepository] = data

	case PrClearFilter:
		data.Filter = PrFilter{}
		data.SelectedPr = 0
		m.RepoData[m.SelectedRepository] = data

	case PrSetCustomFilter:
		data.Filter = PrFilter{Kind: FilterCustom, Text: a.Text}
		data.SelectedPr = 0
		m.RepoData[m.SelectedRepository] = data
	}
	return state
}

func reduceCommandPalette(state AppState, action Action) AppState {
	p := &state.CommandPalette
	switch a := action.(type) {
	case CommandPaletteChar:
		p.Query += string(a.Char)
		p.Cursor = 0
	case CommandPaletteBackspace:
		if runes := []rune(p.Query); len(runes) > 0 {
			p.Query = string(runes[:len(runes)-1])
		}
		p.Cursor = 0
	case CommandPaletteClear:
		p.Query = ""
		p.Cursor = 0
	case CommandPaletteMove:
		matches := len(FilterPaletteEntries(state.Keymap, p.Query))
		if matches == 0 {
			p.Cursor = 0
			break
		}
		p.Cursor += a.Delta
		if p.Cursor < 0 {
			p.Cursor = 0
		}
		if p.Cursor >= matches {
			p.Cursor = matches - 1
		}
	case CommandPaletteExecute:
		// Execution happens in middleware; the reducer resets the query for
		// the next open.
		p.Query = ""
		p.Cursor = 0
	}
	return state
}

func reduceAddRepoForm(state AppState, action Action) AppState {
	f := &state.AddRepoForm
	switch a := action.(type) {
	case RepositoryAdd:
		*f = AddRepoFormState{}
	case AddRepoChar:
		f.Fields[f.Focused] += string(a.Char)
		f.Error = ""
	case AddRepoBackspace:
		if runes := []rune(f.Fields[f.Focused]); len(runes) > 0 {
			f.Fields[f.Focused] = string(runes[:len(runes)-1])
		}
	case AddRepoClearField:
		f.Fields[f.Focused] = ""
	case AddRepoNextField:
		f.Focused = (f.Focused + 1) % fieldCount
	case AddRepoPrevField:
		f.Focused = (f.Focused - 1 + fieldCount) % fieldCount
	case AddRepoSubmit:
		if _, err := f.Validate(); err != nil {
			f.Error = err.Error()
		}
	}
	return state
}

func reduceDebugConsole(state AppState, action Action) AppState {
	d := &state.DebugConsole
	switch a := action.(type) {
	case DebugConsoleAppend:
		d.Append(a.Lines)
	case DebugConsoleClear:
		d.Lines = nil
		d.Scroll = 0
	case DebugConsoleScroll:
		d.Scroll += a.Delta
		if d.Scroll < 0 {
			d.Scroll = 0
		}
		if d.Scroll > len(d.Lines) {
			d.Scroll = len(d.Lines)
		}
	}
	return state
}

func reduceKeyBindings(state AppState, action Action) AppState {
	if a, ok := action.(KeyBindingsScroll); ok {
		state.KeyBindings.Scroll += a.Delta
		if state.KeyBindings.Scroll < 0 {
			state.KeyBindings.Scroll = 0
		}
		if limit := len(state.Keymap.Bindings); state.KeyBindings.Scroll > limit {
			state.KeyBindings.Scroll = limit
		}
	}
	return state
}

func reduceMergeBot(state AppState, action Action) AppState {
	b := &state.MergeBot
	switch a := action.(type) {
	case MergeBotStart:
		b.Active = true
	case MergeBotStop:
		b.Active = false
	case MergeBotEnqueue:
		if b.Notes == nil {
			b.Notes = make(map[int]string)
		}
		for _, number := range a.Numbers {
			if !containsInt(b.Queue, number) {
				b.Queue = append(b.Queue, number)
				b.Notes[number] = "queued"
			}
		}
	case MergeBotAdvanced:
		if b.Notes == nil {
			b.Notes = make(map[int]string)
		}
		b.Notes[a.Number] = a.Note
		if a.Done {
			b.Queue = removeInt(b.Queue, a.Number)
		}
	}
	return state
}

func containsInt(values []int, v int) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}

func removeInt(values []int, v int) []int {
	out := values[:0]
	for _, x := range values {
		if x != v {
			out = append(out, x)
		}
	}
	return out
}
