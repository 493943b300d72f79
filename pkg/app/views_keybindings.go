package app

import (
	"strings"

	"github.com/sassman/gh-pr-lander/pkg/stringutil"
	"github.com/sassman/gh-pr-lander/pkg/styles"
)

// keyBindingsView is the floating help panel listing the active keymap.
type keyBindingsView struct {
	baseView
}

func (keyBindingsView) ID() ViewID {
	return ViewKeyBindings
}

func (keyBindingsView) IsFloating() bool {
	return true
}

func (keyBindingsView) Capabilities(*AppState) Capabilities {
	return CapScrollVertical | CapVimScrollBindings | CapVimNavigationBindings
}

func (keyBindingsView) TranslateNavigation(op NavigateOp, _ *AppState) Action {
	switch op {
	case NavNext:
		return KeyBindingsScroll{Delta: 1}
	case NavPrevious:
		return KeyBindingsScroll{Delta: -1}
	case NavTop:
		return KeyBindingsScroll{Delta: -1 << 16}
	case NavBottom:
		return KeyBindingsScroll{Delta: 1 << 16}
	}
	return nil
}

func (keyBindingsView) AcceptsAction(action Action, _ *AppState) bool {
	switch action.(type) {
	case Navigate, GlobalClose, GlobalQuit, GlobalPushView:
		return true
	}
	return false
}

func (keyBindingsView) Render(s *AppState, _, height int) string {
	rows := NewKeyBindingsViewModel(s)
	visible := max(6, height-8)
	scroll := s.KeyBindings.Scroll
	if scroll > len(rows)-visible {
		scroll = max(0, len(rows)-visible)
	}
	var b strings.Builder
	b.WriteString(styles.Title.Render("Key Bindings"))
	b.WriteString("\n\n")
	end := min(len(rows), scroll+visible)
	for _, row := range rows[scroll:end] {
		b.WriteString(styles.Info.Render(stringutil.PadRight(row.Key, 12)))
		b.WriteString(row.Description)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(styles.Muted.Render("j/k: scroll • Esc: close"))
	return styles.PopupBorder.Render(strings.TrimRight(b.String(), "\n"))
}
