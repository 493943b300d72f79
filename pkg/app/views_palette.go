package app

import (
	"strings"

	"github.com/sassman/gh-pr-lander/pkg/stringutil"
	"github.com/sassman/gh-pr-lander/pkg/styles"
)

// commandPaletteView is the Ctrl+P floating command palette.
type commandPaletteView struct {
	baseView
}

func (commandPaletteView) ID() ViewID {
	return ViewCommandPalette
}

func (commandPaletteView) IsFloating() bool {
	return true
}

func (commandPaletteView) Capabilities(*AppState) Capabilities {
	return CapTextInput | CapItemNavigation
}

func (commandPaletteView) TranslateNavigation(op NavigateOp, _ *AppState) Action {
	switch op {
	case NavNext:
		return CommandPaletteMove{Delta: 1}
	case NavPrevious:
		return CommandPaletteMove{Delta: -1}
	}
	return nil
}

func (commandPaletteView) TranslateTextInput(input TextInput, _ *AppState) Action {
	switch input.Op {
	case InputChar:
		return CommandPaletteChar{Char: input.Char}
	case InputBackspace:
		return CommandPaletteBackspace{}
	case InputClearLine:
		return CommandPaletteClear{}
	case InputConfirm:
		return CommandPaletteExecute{}
	case InputEscape:
		return GlobalClose{}
	}
	return nil
}

func (commandPaletteView) AcceptsAction(action Action, _ *AppState) bool {
	switch action.(type) {
	case Navigate, CommandPaletteMove, CommandPaletteExecute,
		GlobalClose, GlobalQuit:
		return true
	}
	return false
}

func (commandPaletteView) Render(s *AppState, width, height int) string {
	vm := NewCommandPaletteViewModel(s)
	innerWidth := min(60, width-6)
	var b strings.Builder
	b.WriteString(styles.Title.Render("Command Palette"))
	b.WriteString("\n")
	b.WriteString("> " + vm.Query + "█")
	b.WriteString("\n")
	b.WriteString(styles.Muted.Render(strings.Repeat("─", innerWidth)))
	b.WriteString("\n")
	maxRows := min(len(vm.Rows), max(4, height/2-4))
	for _, row := range vm.Rows[:maxRows] {
		line := stringutil.PadRight(row.Description, innerWidth-12) +
			styles.Muted.Render(stringutil.PadRight(row.Key, 10))
		if row.IsCursor {
			line = styles.SelectedRow.Render(stringutil.PadRight(row.Description, innerWidth-12)) +
				styles.Muted.Render(stringutil.PadRight(row.Key, 10))
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	if len(vm.Rows) == 0 {
		b.WriteString(styles.Muted.Render("no matching commands"))
		b.WriteString("\n")
	}
	return styles.PopupBorder.Render(strings.TrimRight(b.String(), "\n"))
}
