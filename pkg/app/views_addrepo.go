package app

import (
	"strings"

	"github.com/sassman/gh-pr-lander/pkg/styles"
)

// addRepositoryView is the floating add-repository form.
type addRepositoryView struct {
	baseView
}

func (addRepositoryView) ID() ViewID {
	return ViewAddRepository
}

func (addRepositoryView) IsFloating() bool {
	return true
}

func (addRepositoryView) Capabilities(*AppState) Capabilities {
	return CapTextInput
}

func (addRepositoryView) TranslateNavigation(op NavigateOp, _ *AppState) Action {
	switch op {
	case NavNext:
		return AddRepoNextField{}
	case NavPrevious:
		return AddRepoPrevField{}
	}
	return nil
}

func (addRepositoryView) TranslateTextInput(input TextInput, _ *AppState) Action {
	switch input.Op {
	case InputChar:
		return AddRepoChar{Char: input.Char}
	case InputBackspace:
		return AddRepoBackspace{}
	case InputClearLine:
		return AddRepoClearField{}
	case InputConfirm:
		return AddRepoSubmit{}
	case InputEscape:
		return GlobalClose{}
	}
	return nil
}

func (addRepositoryView) AcceptsAction(action Action, _ *AppState) bool {
	switch action.(type) {
	case Navigate, AddRepoSubmit, GlobalClose, GlobalQuit:
		return true
	}
	return false
}

func (addRepositoryView) Render(s *AppState, _, _ int) string {
	form := &s.AddRepoForm
	var b strings.Builder
	b.WriteString(styles.Title.Render("Add Repository"))
	b.WriteString("\n\n")
	for field := FieldOrg; field < fieldCount; field++ {
		label := field.Label()
		value := form.Fields[field]
		if field == form.Focused {
			b.WriteString(styles.Info.Render("▸ " + label + ": "))
			b.WriteString(value + "█")
		} else {
			b.WriteString(styles.Muted.Render("  " + label + ": "))
			b.WriteString(value)
		}
		b.WriteString("\n")
	}
	if form.Error != "" {
		b.WriteString("\n")
		b.WriteString(styles.Error.Render(form.Error))
	}
	b.WriteString("\n")
	b.WriteString(styles.Muted.Render("Tab: next field • Enter: add • Esc: cancel"))
	return styles.PopupBorder.Render(b.String())
}
