package app

func reduceConfirmation(state AppState, action Action) AppState {
	switch a := action.(type) {
	case ConfirmationShow:
		state.Confirmation = &ConfirmationPopupState{
			Intent:      a.Intent,
			InputValue:  a.Default,
			RepoContext: a.RepoContext,
		}
		state.ViewStack = append(state.ViewStack, ViewConfirmationPopup)

	case ConfirmationChar:
		if state.Confirmation != nil {
			state.Confirmation.InputValue += string(a.Char)
		}

	case ConfirmationBackspace:
		if state.Confirmation != nil {
			if runes := []rune(state.Confirmation.InputValue); len(runes) > 0 {
				state.Confirmation.InputValue = string(runes[:len(runes)-1])
			}
		}

	case ConfirmationClearLine:
		if state.Confirmation != nil {
			state.Confirmation.InputValue = ""
		}

	case ConfirmationConfirmed, ConfirmationCancel:
		state.Confirmation = nil
		state = popViewIfActive(state, ViewConfirmationPopup)
	}
	return state
}

func popViewIfActive(state AppState, id ViewID) AppState {
	if len(state.ViewStack) > 1 && state.ActiveView() == id {
		state.ViewStack = state.ViewStack[:len(state.ViewStack)-1]
	}
	return state
}
