package app

// CommandPaletteMiddleware executes the highlighted palette command: it
// closes the palette and dispatches the command's action.
type CommandPaletteMiddleware struct{}

// NewCommandPaletteMiddleware builds the palette executor.
func NewCommandPaletteMiddleware() *CommandPaletteMiddleware {
	return &CommandPaletteMiddleware{}
}

func (m *CommandPaletteMiddleware) Handle(action Action, state *AppState, dispatcher *Dispatcher) bool {
	if _, ok := action.(CommandPaletteExecute); !ok {
		return true
	}
	matches := FilterPaletteEntries(state.Keymap, state.CommandPalette.Query)
	cursor := state.CommandPalette.Cursor
	if cursor >= len(matches) {
		cursor = len(matches) - 1
	}
	dispatcher.Dispatch(GlobalClose{})
	if cursor >= 0 {
		if target := matches[cursor].Command.ToAction(); target != nil {
			dispatcher.Dispatch(target)
		}
	}
	return true
}
