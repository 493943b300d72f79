package app

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/sassman/gh-pr-lander/pkg/styles"
)

// splashView is the boot screen shown while bootstrap runs.
type splashView struct {
	baseView
}

func (splashView) ID() ViewID {
	return ViewSplash
}

func (splashView) AcceptsAction(action Action, _ *AppState) bool {
	// The splash only lets the operator bail out early.
	switch action.(type) {
	case GlobalQuit, GlobalClose:
		return true
	}
	return false
}

func (splashView) Render(s *AppState, width, height int) string {
	vm := NewSplashViewModel(s)
	block := lipgloss.JoinVertical(lipgloss.Center,
		styles.Title.Render(vm.Title),
		"",
		styles.StatusRunning.Render(vm.Spinner+" "+vm.Tagline),
	)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, block)
}
