package app

// ViewID identifies a view for stack equality and capability lookup.
type ViewID int

const (
	ViewSplash ViewID = iota
	ViewMain
	ViewCommandPalette
	ViewAddRepository
	ViewKeyBindings
	ViewDebugConsole
	ViewBuildLog
	ViewDiffViewer
	ViewConfirmationPopup
)

// String names the view for logs.
func (v ViewID) String() string {
	switch v {
	case ViewMain:
		return "main"
	case ViewCommandPalette:
		return "command-palette"
	case ViewAddRepository:
		return "add-repository"
	case ViewKeyBindings:
		return "key-bindings"
	case ViewDebugConsole:
		return "debug-console"
	case ViewBuildLog:
		return "build-log"
	case ViewDiffViewer:
		return "diff-viewer"
	case ViewConfirmationPopup:
		return "confirmation"
	default:
		return "splash"
	}
}

// View is the contract every screen implements. Views are stateless
// singletons: all mutable data lives in the state slices, so the view stack
// is a list of ids and views read their slice during rendering.
//
// The translate methods lift generic semantic actions into view-specific
// actions; returning nil means "not handled" and the generic action is
// dropped. AcceptsAction gates keymap candidates so a key shared between
// views only triggers the command its active view understands.
type View interface {
	ID() ViewID
	// IsFloating marks overlay views that stack on a base view.
	IsFloating() bool
	Capabilities(s *AppState) Capabilities
	TranslateNavigation(op NavigateOp, s *AppState) Action
	TranslateTextInput(input TextInput, s *AppState) Action
	TranslateContext(op ContextOp, s *AppState) Action
	AcceptsAction(action Action, s *AppState) bool
	// Render draws the view into a width×height cell string.
	Render(s *AppState, width, height int) string
}

var viewRegistry = map[ViewID]View{
	ViewSplash:            splashView{},
	ViewMain:              mainView{},
	ViewCommandPalette:    commandPaletteView{},
	ViewAddRepository:     addRepositoryView{},
	ViewKeyBindings:       keyBindingsView{},
	ViewDebugConsole:      debugConsoleView{},
	ViewBuildLog:          buildLogView{},
	ViewDiffViewer:        diffViewerView{},
	ViewConfirmationPopup: confirmationPopupView{},
}

// ViewFor resolves a view id to its singleton.
func ViewFor(id ViewID) View {
	return viewRegistry[id]
}

// ActiveViewOf returns the active view of a state.
func ActiveViewOf(s *AppState) View {
	return ViewFor(s.ActiveView())
}

// RenderStack renders every view bottom-up so floating overlays composite
// over base views. Overlays are centered on a dimmed base.
func RenderStack(s *AppState, width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	frame := ViewFor(s.ViewStack[0]).Render(s, width, height)
	for _, id := range s.ViewStack[1:] {
		view := ViewFor(id)
		overlay := view.Render(s, width, height)
		frame = CompositeCentered(DimFrame(frame), overlay, width, height)
	}
	return frame
}

// baseView implements the no-op defaults a view can embed.
type baseView struct{}

func (baseView) IsFloating() bool                                { return false }
func (baseView) Capabilities(*AppState) Capabilities             { return 0 }
func (baseView) TranslateNavigation(NavigateOp, *AppState) Action { return nil }
func (baseView) TranslateTextInput(TextInput, *AppState) Action   { return nil }
func (baseView) TranslateContext(ContextOp, *AppState) Action     { return nil }
