package app

// ConfirmationPopupMiddleware executes a confirmed intent: it reads the
// popup state, constructs the corresponding PR action, dispatches it, then
// dispatches Confirmed which pops the view. Cancel is handled entirely by
// the reducer (pop and discard).
type ConfirmationPopupMiddleware struct{}

// NewConfirmationPopupMiddleware builds the confirmation executor.
func NewConfirmationPopupMiddleware() *ConfirmationPopupMiddleware {
	return &ConfirmationPopupMiddleware{}
}

func (m *ConfirmationPopupMiddleware) Handle(action Action, state *AppState, dispatcher *Dispatcher) bool {
	if _, ok := action.(ConfirmationConfirm); !ok {
		return true
	}
	popup := state.Confirmation
	if popup == nil {
		return false
	}
	if !popup.IsValid() {
		dispatcher.Dispatch(statusNow(StatusWarning,
			"A message is required", "ConfirmationConfirm"))
		return false
	}

	numbers := append([]int(nil), popup.Intent.PrNumbers...)
	message := popup.InputValue
	switch popup.Intent.Kind {
	case IntentApprove:
		dispatcher.Dispatch(ApproveWithMessage{PrNumbers: numbers, Message: message})
	case IntentComment:
		dispatcher.Dispatch(CommentWithMessage{PrNumbers: numbers, Message: message})
	case IntentRequestChanges:
		dispatcher.Dispatch(RequestChangesWithMessage{PrNumbers: numbers, Message: message})
	case IntentClose:
		dispatcher.Dispatch(CloseWithMessage{PrNumbers: numbers, Message: message})
	}
	dispatcher.Dispatch(ConfirmationConfirmed{})
	return false
}
