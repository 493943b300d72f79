package app

import "github.com/sassman/gh-pr-lander/pkg/actionslog"

func reduceBuildLog(state AppState, action Action) AppState {
	b := &state.BuildLog
	switch a := action.(type) {
	case BuildLogOpen:
		b.Loading = BuildLogFetching
		b.LoadError = ""

	case BuildLogLoaded:
		b.Workflows = a.Workflows
		b.Loading = BuildLogReady
		b.LoadError = ""
		b.Expanded = make(map[string]struct{})
		b.CursorPath = []int{0}
		b.ScrollOffset = 0
		b.PrContext = BuildLogPrContext{
			Number: a.PrNumber,
			Title:  a.PrTitle,
			Author: a.PrAuthor,
		}
		b.RunID = a.RunID
		// Workflows start expanded so jobs are immediately visible.
		for w := range a.Workflows {
			b.Expanded[PathKey([]int{w})] = struct{}{}
		}

	case BuildLogLoadError:
		b.Loading = BuildLogFailed
		b.LoadError = a.Message

	case BuildLogCursorMove:
		rows := b.FlattenVisibleNodes()
		if len(rows) == 0 {
			break
		}
		idx := b.CursorIndex()
		if idx < 0 {
			idx = 0
		}
		idx += a.Delta
		if idx < 0 {
			idx = 0
		}
		if idx >= len(rows) {
			idx = len(rows) - 1
		}
		b.CursorPath = append([]int(nil), rows[idx]...)
		ensureBuildLogCursorVisible(b, idx)

	case BuildLogToggleExpand:
		if len(b.CursorPath) < 4 {
			b.ToggleExpanded(b.CursorPath)
		}

	case BuildLogExpandAll:
		for w := range b.Workflows {
			b.Expanded[PathKey([]int{w})] = struct{}{}
			for j := range b.Workflows[w].Jobs {
				b.Expanded[PathKey([]int{w, j})] = struct{}{}
				for st := range b.Workflows[w].Jobs[j].Steps {
					b.Expanded[PathKey([]int{w, j, st})] = struct{}{}
				}
			}
		}

	case BuildLogCollapseAll:
		b.Expanded = make(map[string]struct{})
		if len(b.CursorPath) > 1 {
			b.CursorPath = b.CursorPath[:1]
		}
		b.ScrollOffset = 0

	case BuildLogNextError:
		moveToError(b, 1)

	case BuildLogPrevError:
		moveToError(b, -1)

	case BuildLogToggleTimestamps:
		b.ShowTimestamps = !b.ShowTimestamps
	}
	return state
}

func ensureBuildLogCursorVisible(b *BuildLogState, idx int) {
	if idx < b.ScrollOffset {
		b.ScrollOffset = idx
	} else if idx >= b.ScrollOffset+b.ViewportHeight {
		b.ScrollOffset = idx - b.ViewportHeight + 1
	}
}

// moveToError walks visible rows from the cursor in the given direction and
// lands on the next line carrying an ::error:: annotation.
func moveToError(b *BuildLogState, direction int) {
	rows := b.FlattenVisibleNodes()
	start := b.CursorIndex()
	for i := start + direction; i >= 0 && i < len(rows); i += direction {
		line := b.LineAt(rows[i])
		if line != nil && line.Command != nil && line.Command.Kind == actionslog.CommandError {
			b.CursorPath = append([]int(nil), rows[i]...)
			ensureBuildLogCursorVisible(b, i)
			return
		}
	}
}
