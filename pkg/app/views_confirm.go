package app

import (
	"strings"

	"github.com/sassman/gh-pr-lander/pkg/styles"
)

// confirmationPopupView is the modal confirmation for bulk PR actions.
type confirmationPopupView struct {
	baseView
}

func (confirmationPopupView) ID() ViewID {
	return ViewConfirmationPopup
}

func (confirmationPopupView) IsFloating() bool {
	return true
}

func (confirmationPopupView) Capabilities(*AppState) Capabilities {
	return CapTextInput
}

func (confirmationPopupView) TranslateTextInput(input TextInput, _ *AppState) Action {
	switch input.Op {
	case InputChar:
		return ConfirmationChar{Char: input.Char}
	case InputBackspace:
		return ConfirmationBackspace{}
	case InputClearLine:
		return ConfirmationClearLine{}
	case InputConfirm:
		return ConfirmationConfirm{}
	case InputEscape:
		return ConfirmationCancel{}
	}
	return nil
}

func (confirmationPopupView) AcceptsAction(action Action, _ *AppState) bool {
	switch action.(type) {
	case ConfirmationConfirm, ConfirmationCancel, GlobalQuit:
		return true
	}
	return false
}

func (confirmationPopupView) Render(s *AppState, _, _ int) string {
	vm, ok := NewConfirmationViewModel(s)
	if !ok {
		return ""
	}
	var b strings.Builder
	b.WriteString(styles.Title.Render(vm.Title))
	b.WriteString("\n")
	b.WriteString(styles.Muted.Render(vm.RepoContext + " — " + vm.TargetInfo))
	b.WriteString("\n\n")
	b.WriteString(vm.Instructions)
	b.WriteString("\n")
	b.WriteString("> " + vm.Input + "█")
	b.WriteString("\n\n")
	if vm.Valid {
		b.WriteString(styles.Muted.Render("Enter: confirm • Esc: cancel"))
	} else {
		b.WriteString(styles.Warning.Render("a message is required") +
			styles.Muted.Render(" • Esc: cancel"))
	}
	return styles.PopupBorder.Render(b.String())
}
