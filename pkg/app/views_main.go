package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sassman/gh-pr-lander/pkg/stringutil"
	"github.com/sassman/gh-pr-lander/pkg/styles"
)

// mainView is the primary screen: repository tabs over a PR table.
type mainView struct {
	baseView
}

func (mainView) ID() ViewID {
	return ViewMain
}

func (mainView) Capabilities(s *AppState) Capabilities {
	caps := CapItemNavigation | CapItemSelection |
		CapVimNavigationBindings | CapVimScrollBindings
	if len(s.MainView.SelectedRepoData().Prs) > 0 {
		caps |= CapScrollVertical
	}
	return caps
}

func (mainView) TranslateNavigation(op NavigateOp, _ *AppState) Action {
	switch op {
	case NavNext:
		return PrCursorDown{}
	case NavPrevious:
		return PrCursorUp{}
	case NavLeft:
		return RepositoryPrevious{}
	case NavRight:
		return RepositoryNext{}
	}
	return nil
}

func (mainView) TranslateContext(op ContextOp, _ *AppState) Action {
	switch op {
	case CtxConfirm:
		return PrOpenInBrowser{}
	case CtxToggleSelect:
		return PrToggleSelection{}
	}
	return nil
}

func (mainView) AcceptsAction(action Action, _ *AppState) bool {
	switch action.(type) {
	case Navigate,
		RepositoryAdd, RepositoryNext, RepositoryPrevious, RepositoryOpenInBrowser,
		PrToggleSelection, PrSelectAll, PrDeselectAll, PrRefresh,
		PrOpenInBrowser, PrOpenInIDE, PrOpenDiff, PrOpenBuildLogs,
		PrCycleFilter, PrClearFilter, PrMerge, PrRebase,
		PrApprove, PrComment, PrRequestChanges, PrClose,
		MergeBotStart, MergeBotEnqueue,
		GlobalPushView, GlobalClose, GlobalQuit:
		return true
	}
	return false
}

func (mainView) Render(s *AppState, width, height int) string {
	vm := NewMainViewModel(s)
	var b strings.Builder

	// Repository tabs.
	var tabs []string
	for _, tab := range vm.Tabs {
		if tab.Selected {
			tabs = append(tabs, styles.Title.Render("["+tab.Label+"]"))
		} else {
			tabs = append(tabs, styles.Muted.Render(" "+tab.Label+" "))
		}
	}
	if len(tabs) == 0 {
		tabs = append(tabs, styles.Muted.Render("no repositories — press r a to add one"))
	}
	b.WriteString(stringutil.Truncate(strings.Join(tabs, " "), width))
	b.WriteString("\n")

	// Filter + selection summary.
	summary := fmt.Sprintf("filter: %s", vm.FilterLabel)
	if vm.SelectedNum > 0 {
		summary += fmt.Sprintf("  •  %d selected", vm.SelectedNum)
	}
	b.WriteString(styles.Muted.Render(summary))
	b.WriteString("\n")

	// Table header.
	header := fmt.Sprintf("  %-6s %-3s %-14s %-*s %-12s %4s %5s",
		"PR", "", "Status", max(10, width-50), "Title", "Author", "💬", "Age")
	b.WriteString(styles.TableHeader.Render(stringutil.Truncate(header, width)))
	b.WriteString("\n")

	tableHeight := height - 4
	switch {
	case vm.LoadError != "":
		b.WriteString(styles.Error.Render("load failed: " + vm.LoadError))
		b.WriteString("\n")
	case vm.Loading == LoadingInProgress && vm.Empty:
		b.WriteString(styles.StatusRunning.Render("⏳ loading pull requests…"))
		b.WriteString("\n")
	case vm.Empty:
		b.WriteString(styles.Muted.Render("no pull requests match"))
		b.WriteString("\n")
	default:
		for i, row := range vm.Rows {
			if i >= tableHeight {
				break
			}
			marker := " "
			if row.Selected {
				marker = "●"
			}
			line := fmt.Sprintf("%s #%-5d %s %-14s %-*s %-12s %4d %5s",
				marker, row.Number, row.StatusIcon, row.StatusText,
				max(10, width-50), stringutil.Truncate(row.Title, max(10, width-50)),
				stringutil.Truncate(row.Author, 12), row.Comments, row.Age)
			line = stringutil.PadRight(line, width)
			if row.IsCursor {
				line = styles.SelectedRow.Render(line)
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
	}

	frame := b.String()
	frame = lipgloss.Place(width, height-1, lipgloss.Left, lipgloss.Top, frame)
	return frame + "\n" + renderStatusBar(s, width)
}

// renderStatusBar draws the one-line status bar shared by base views.
func renderStatusBar(s *AppState, width int) string {
	vm := NewStatusBarViewModel(s)
	var style = styles.Info
	switch vm.Kind {
	case StatusRunning:
		style = styles.StatusRunning
	case StatusSuccess:
		style = styles.Success
	case StatusError:
		style = styles.Error
	case StatusWarning:
		style = styles.Warning
	}
	return style.Render(stringutil.Truncate(vm.Text, width))
}
