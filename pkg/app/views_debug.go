package app

import (
	"strings"

	"github.com/sassman/gh-pr-lander/pkg/stringutil"
	"github.com/sassman/gh-pr-lander/pkg/styles"
)

// debugConsoleView is the floating console tailing the application log.
type debugConsoleView struct {
	baseView
}

func (debugConsoleView) ID() ViewID {
	return ViewDebugConsole
}

func (debugConsoleView) IsFloating() bool {
	return true
}

func (debugConsoleView) Capabilities(*AppState) Capabilities {
	return CapScrollVertical | CapVimScrollBindings | CapVimNavigationBindings
}

func (debugConsoleView) TranslateNavigation(op NavigateOp, _ *AppState) Action {
	switch op {
	case NavNext:
		return DebugConsoleScroll{Delta: -1}
	case NavPrevious:
		return DebugConsoleScroll{Delta: 1}
	case NavTop:
		return DebugConsoleScroll{Delta: 1 << 16}
	case NavBottom:
		return DebugConsoleScroll{Delta: -1 << 16}
	}
	return nil
}

func (debugConsoleView) AcceptsAction(action Action, _ *AppState) bool {
	switch action.(type) {
	case Navigate, DebugConsoleClear, GlobalClose, GlobalQuit, GlobalPushView:
		return true
	}
	return false
}

func (debugConsoleView) Render(s *AppState, width, height int) string {
	innerHeight := max(5, height*2/3)
	innerWidth := max(20, width-8)
	vm := NewDebugConsoleViewModel(s, innerHeight)
	var b strings.Builder
	b.WriteString(styles.Title.Render("Debug Console"))
	b.WriteString("\n")
	for _, line := range vm.Lines {
		b.WriteString(stringutil.Truncate(line, innerWidth))
		b.WriteString("\n")
	}
	if len(vm.Lines) == 0 {
		b.WriteString(styles.Muted.Render("log is empty"))
		b.WriteString("\n")
	}
	b.WriteString(styles.Muted.Render("c: clear • j/k: scroll • Esc: close"))
	return styles.PopupBorder.Render(strings.TrimRight(b.String(), "\n"))
}
