package app

// Reduce is the root reducer: pure, no I/O, no logging, no time reads.
// Global actions are handled centrally; everything else routes to the
// sub-reducers, and unknown actions are identity transforms.
func Reduce(state AppState, action Action) AppState {
	switch a := action.(type) {
	case GlobalQuit:
		state.Running = false
		return state

	case GlobalPushView:
		// Toggle semantics: pushing the active view pops it instead.
		if state.ActiveView() == a.View {
			if len(state.ViewStack) > 1 {
				state.ViewStack = state.ViewStack[:len(state.ViewStack)-1]
			}
			return state
		}
		state.ViewStack = append(state.ViewStack, a.View)
		return state

	case GlobalReplaceView:
		state.ViewStack = []ViewID{a.View}
		return state

	case GlobalClose:
		// The stack never empties: closing the last view quits.
		if len(state.ViewStack) > 1 {
			state.ViewStack = state.ViewStack[:len(state.ViewStack)-1]
		} else {
			state.Running = false
		}
		return state

	case BootstrapEnd:
		state.ViewStack = []ViewID{ViewMain}
		return state

	case ConfigLoaded:
		state.Config = a.Config
		return state

	case GlobalTick, SplashAdvanceFrame:
		state.Splash.Frame++
		return state

	case StatusPush:
		state.StatusBar.Push(StatusMessage{
			Timestamp: a.Timestamp,
			Kind:      a.Kind,
			Message:   a.Message,
			Source:    a.Source,
		})
		return state
	}

	state = reduceRepository(state, action)
	state = reducePullRequests(state, action)
	state = reduceCommandPalette(state, action)
	state = reduceAddRepoForm(state, action)
	state = reduceDebugConsole(state, action)
	state = reduceKeyBindings(state, action)
	state = reduceBuildLog(state, action)
	state = reduceConfirmation(state, action)
	state = reduceDiffViewer(state, action)
	state = reduceMergeBot(state, action)
	return state
}
