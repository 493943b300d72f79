package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sassman/gh-pr-lander/pkg/actionslog"
	"github.com/sassman/gh-pr-lander/pkg/stringutil"
	"github.com/sassman/gh-pr-lander/pkg/styles"
)

// buildLogView is the full-screen CI log tree.
type buildLogView struct {
	baseView
}

func (buildLogView) ID() ViewID {
	return ViewBuildLog
}

func (buildLogView) Capabilities(s *AppState) Capabilities {
	caps := CapItemNavigation | CapVimNavigationBindings | CapVimScrollBindings
	if len(s.BuildLog.Workflows) > 0 {
		caps |= CapScrollVertical | CapScrollHorizontal
	}
	return caps
}

func (buildLogView) TranslateNavigation(op NavigateOp, s *AppState) Action {
	switch op {
	case NavNext:
		return BuildLogCursorMove{Delta: 1}
	case NavPrevious:
		return BuildLogCursorMove{Delta: -1}
	case NavLeft, NavRight:
		return BuildLogToggleExpand{}
	case NavTop:
		return BuildLogCursorMove{Delta: -len(s.BuildLog.FlattenVisibleNodes())}
	case NavBottom:
		return BuildLogCursorMove{Delta: len(s.BuildLog.FlattenVisibleNodes())}
	case NavHalfPageDown:
		return BuildLogCursorMove{Delta: s.BuildLog.ViewportHeight / 2}
	case NavHalfPageUp:
		return BuildLogCursorMove{Delta: -s.BuildLog.ViewportHeight / 2}
	}
	return nil
}

func (buildLogView) TranslateContext(op ContextOp, _ *AppState) Action {
	if op == CtxConfirm {
		return BuildLogToggleExpand{}
	}
	return nil
}

func (buildLogView) AcceptsAction(action Action, _ *AppState) bool {
	switch action.(type) {
	case Navigate,
		BuildLogCursorMove, BuildLogToggleExpand, BuildLogExpandAll,
		BuildLogCollapseAll, BuildLogNextError, BuildLogPrevError,
		BuildLogToggleTimestamps, BuildLogRerunFailed,
		GlobalClose, GlobalQuit, GlobalPushView:
		return true
	}
	return false
}

func (buildLogView) Render(s *AppState, width, height int) string {
	vm := NewBuildLogViewModel(s)
	var b strings.Builder
	b.WriteString(styles.Title.Render(stringutil.Truncate(vm.Title, width)))
	b.WriteString("\n")

	switch vm.Loading {
	case BuildLogFetching:
		b.WriteString(styles.StatusRunning.Render("⏳ downloading logs…"))
		b.WriteString("\n")
	case BuildLogFailed:
		b.WriteString(styles.Error.Render("failed: " + vm.LoadError))
		b.WriteString("\n")
	default:
		for _, row := range vm.Rows {
			b.WriteString(renderBuildLogRow(s, row, width))
			b.WriteString("\n")
		}
		if len(vm.Rows) == 0 {
			b.WriteString(styles.Muted.Render("no workflow logs"))
			b.WriteString("\n")
		}
	}

	frame := lipgloss.Place(width, height-1, lipgloss.Left, lipgloss.Top,
		strings.TrimRight(b.String(), "\n"))
	return frame + "\n" + renderStatusBar(s, width)
}

func renderBuildLogRow(s *AppState, row BuildLogRowViewModel, width int) string {
	indent := strings.Repeat("  ", row.Indent)
	var text string
	switch row.Kind {
	case RowLine:
		prefix := indent + strings.Repeat("  ", row.GroupLevel)
		if row.Timestamp != "" {
			prefix += styles.LineNumber.Render(row.Timestamp) + " "
		}
		text = prefix + renderSegments(row.Segments, max(10, width-len(prefix)))
	default:
		arrow := "▸"
		if row.Expanded {
			arrow = "▾"
		}
		if !row.HasChildren {
			arrow = " "
		}
		label := row.Text
		switch {
		case row.IsError:
			label = styles.Error.Render(label)
		case row.Kind == RowWorkflow:
			label = styles.Title.Render(label)
		case row.Kind == RowJob:
			label = styles.Info.Render(label)
		}
		text = fmt.Sprintf("%s%s %s", indent, arrow, label)
	}
	text = stringutil.Truncate(text, width)
	if row.IsCursor {
		return styles.SelectedRow.Render(text)
	}
	return text
}

// renderSegments re-styles ANSI-decomposed segments with lipgloss.
func renderSegments(segments []actionslog.StyledSegment, maxWidth int) string {
	var b strings.Builder
	written := 0
	for _, seg := range segments {
		text := seg.Text
		if written+len(text) > maxWidth {
			text = stringutil.Truncate(text, maxWidth-written)
		}
		if text == "" {
			continue
		}
		b.WriteString(segmentStyle(seg.Style).Render(text))
		written += len(text)
		if written >= maxWidth {
			break
		}
	}
	return b.String()
}

func segmentStyle(style actionslog.AnsiStyle) lipgloss.Style {
	out := lipgloss.NewStyle().
		Bold(style.Bold).
		Faint(style.Faint).
		Italic(style.Italic).
		Underline(style.Underline).
		Blink(style.Blink).
		Reverse(style.Reversed).
		Strikethrough(style.Strikethrough)
	if style.Fg != nil {
		out = out.Foreground(segmentColor(*style.Fg))
	}
	if style.Bg != nil {
		out = out.Background(segmentColor(*style.Bg))
	}
	return out
}

func segmentColor(color actionslog.Color) lipgloss.Color {
	switch color.Mode {
	case actionslog.ColorRGB:
		return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", color.R, color.G, color.B))
	default:
		return lipgloss.Color(fmt.Sprintf("%d", color.Index))
	}
}
