package app

// NavigationMiddleware consults the active view's navigation translation; a
// view-specific result consumes the generic action and dispatches the
// specific one. Untranslated navigation is dropped.
type NavigationMiddleware struct{}

// NewNavigationMiddleware builds the translator.
func NewNavigationMiddleware() *NavigationMiddleware {
	return &NavigationMiddleware{}
}

func (m *NavigationMiddleware) Handle(action Action, state *AppState, dispatcher *Dispatcher) bool {
	nav, ok := action.(Navigate)
	if !ok {
		return true
	}
	if specific := ActiveViewOf(state).TranslateNavigation(nav.Op, state); specific != nil {
		dispatcher.Dispatch(specific)
	}
	return false
}

// TextInputMiddleware is the TextInput counterpart of NavigationMiddleware.
type TextInputMiddleware struct{}

// NewTextInputMiddleware builds the translator.
func NewTextInputMiddleware() *TextInputMiddleware {
	return &TextInputMiddleware{}
}

func (m *TextInputMiddleware) Handle(action Action, state *AppState, dispatcher *Dispatcher) bool {
	input, ok := action.(TextInput)
	if !ok {
		return true
	}
	if specific := ActiveViewOf(state).TranslateTextInput(input, state); specific != nil {
		dispatcher.Dispatch(specific)
	}
	return false
}

// ContextActionMiddleware translates context-sensitive semantic actions.
type ContextActionMiddleware struct{}

// NewContextActionMiddleware builds the translator.
func NewContextActionMiddleware() *ContextActionMiddleware {
	return &ContextActionMiddleware{}
}

func (m *ContextActionMiddleware) Handle(action Action, state *AppState, dispatcher *Dispatcher) bool {
	ctx, ok := action.(ViewContext)
	if !ok {
		return true
	}
	if specific := ActiveViewOf(state).TranslateContext(ctx.Op, state); specific != nil {
		dispatcher.Dispatch(specific)
	}
	return false
}
