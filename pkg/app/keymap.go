package app

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sassman/gh-pr-lander/pkg/config"
	"github.com/sassman/gh-pr-lander/pkg/logger"
)

var keymapLog = logger.New("app:keymap")

// chordTimeout expires a pending first key.
const chordTimeout = 2 * time.Second

// KeyBinding maps a key pattern to a command. Patterns are either a single
// normalized key ("j", "ctrl+p", "tab") or a two-key chord ("p a").
type KeyBinding struct {
	// Pattern is the normalized key spelling, chords space-separated.
	Pattern string
	// Display is what the help panel shows ("p → a").
	Display string
	Command CommandID
}

// IsChord reports whether the binding needs two keys.
func (b KeyBinding) IsChord() bool {
	return strings.Contains(b.Pattern, " ")
}

// ChordKeys splits a chord pattern into its two keys.
func (b KeyBinding) ChordKeys() (first, second string, ok bool) {
	first, second, ok = strings.Cut(b.Pattern, " ")
	return first, second, ok
}

// PendingKey is the saved first key of a chord in flight.
type PendingKey struct {
	Key       string
	Timestamp time.Time
}

// Expired reports whether the chord window has passed.
func (p PendingKey) Expired(now time.Time) bool {
	return now.Sub(p.Timestamp) >= chordTimeout
}

// Keymap is an ordered binding list; earlier bindings win on conflicts only
// through the view-gating order (all candidates are offered in declaration
// order).
type Keymap struct {
	Bindings []KeyBinding
}

func (k Keymap) clone() Keymap {
	return Keymap{Bindings: append([]KeyBinding(nil), k.Bindings...)}
}

// DefaultKeymap is the built-in binding catalog.
func DefaultKeymap() Keymap {
	return Keymap{Bindings: []KeyBinding{
		// Navigation
		{Pattern: "j", Display: "j", Command: CmdNavigateNext},
		{Pattern: "down", Display: "↓", Command: CmdNavigateNext},
		{Pattern: "k", Display: "k", Command: CmdNavigatePrevious},
		{Pattern: "up", Display: "↑", Command: CmdNavigatePrevious},
		{Pattern: "h", Display: "h", Command: CmdNavigateLeft},
		{Pattern: "left", Display: "←", Command: CmdNavigateLeft},
		{Pattern: "l", Display: "l", Command: CmdNavigateRight},
		{Pattern: "right", Display: "→", Command: CmdNavigateRight},
		{Pattern: "g g", Display: "gg", Command: CmdNavigateToTop},
		{Pattern: "G", Display: "G", Command: CmdNavigateToBottom},
		{Pattern: "ctrl+d", Display: "Ctrl+D", Command: CmdNavigateHalfPageDown},
		{Pattern: "ctrl+u", Display: "Ctrl+U", Command: CmdNavigateHalfPageUp},
		// Repository
		{Pattern: "tab", Display: "Tab", Command: CmdRepositoryNext},
		{Pattern: "shift+tab", Display: "Shift+Tab", Command: CmdRepositoryPrevious},
		{Pattern: "r a", Display: "r → a", Command: CmdRepositoryAdd},
		{Pattern: "r o", Display: "r → o", Command: CmdRepositoryOpenInBrowser},
		// Debug
		{Pattern: "`", Display: "`", Command: CmdDebugToggleConsole},
		{Pattern: "c", Display: "c", Command: CmdDebugClearLogs},
		// Command palette
		{Pattern: "ctrl+p", Display: "Ctrl+P", Command: CmdCommandPaletteOpen},
		// PR selection
		{Pattern: "space", Display: "Space", Command: CmdPrToggleSelection},
		{Pattern: "ctrl+a", Display: "Ctrl+A", Command: CmdPrSelectAll},
		{Pattern: "u", Display: "u", Command: CmdPrDeselectAll},
		{Pattern: "ctrl+r", Display: "Ctrl+R", Command: CmdPrRefresh},
		// PR operations
		{Pattern: "enter", Display: "Enter", Command: CmdPrOpenInBrowser},
		{Pattern: "enter", Display: "Enter", Command: CmdBuildLogToggleNode},
		{Pattern: "p m", Display: "p → m", Command: CmdPrMerge},
		{Pattern: "p a", Display: "p → a", Command: CmdPrApprove},
		{Pattern: "p c", Display: "p → c", Command: CmdPrComment},
		{Pattern: "p d", Display: "p → d", Command: CmdPrRequestChanges},
		{Pattern: "p x", Display: "p → x", Command: CmdPrClose},
		{Pattern: "p i", Display: "p → i", Command: CmdPrOpenInIDE},
		{Pattern: "p v", Display: "p → v", Command: CmdPrOpenDiff},
		{Pattern: "p l", Display: "p → l", Command: CmdPrOpenBuildLogs},
		{Pattern: "p r", Display: "p → r", Command: CmdPrRebase},
		// Filter
		{Pattern: "f", Display: "f", Command: CmdPrCycleFilter},
		{Pattern: "F", Display: "F", Command: CmdPrClearFilter},
		// Build log
		{Pattern: "b l", Display: "b → l", Command: CmdPrOpenBuildLogs},
		{Pattern: "n", Display: "n", Command: CmdBuildLogNextError},
		{Pattern: "N", Display: "N", Command: CmdBuildLogPrevError},
		{Pattern: "t", Display: "t", Command: CmdBuildLogToggleTimestamps},
		{Pattern: "e", Display: "e", Command: CmdBuildLogExpandAll},
		{Pattern: "E", Display: "E", Command: CmdBuildLogCollapseAll},
		{Pattern: "R", Display: "R", Command: CmdBuildLogRerunFailed},
		// Diff viewer
		{Pattern: "c", Display: "c", Command: CmdDiffStartComment},
		{Pattern: "v", Display: "v", Command: CmdDiffToggleVisual},
		{Pattern: "z", Display: "z", Command: CmdDiffToggleFileTree},
		{Pattern: "s", Display: "s", Command: CmdDiffSubmitReview},
		{Pattern: "[", Display: "[", Command: CmdDiffExpandUp},
		{Pattern: "]", Display: "]", Command: CmdDiffExpandDown},
		// Merge bot
		{Pattern: "M", Display: "M", Command: CmdMergeBotStart},
		{Pattern: "Q", Display: "Q", Command: CmdMergeBotEnqueue},
		// Help
		{Pattern: "?", Display: "?", Command: CmdKeyBindingsToggle},
		// General
		{Pattern: "q", Display: "q", Command: CmdGlobalClose},
	}}
}

// ApplyOverride merges a user keymap file: an existing pattern is rebound,
// a new pattern is appended, and binding to "" removes the pattern. Unknown
// command names are ignored with a warning.
func (k Keymap) ApplyOverride(override config.KeymapOverride) Keymap {
	merged := k.clone()
	for pattern, name := range override {
		pattern = strings.TrimSpace(pattern)
		if name == "" {
			merged.Bindings = removeBinding(merged.Bindings, pattern)
			continue
		}
		cmd, ok := commandNames[name]
		if !ok {
			keymapLog.Printf("Ignoring keymap override %q: unknown command %q", pattern, name)
			continue
		}
		replaced := false
		for i := range merged.Bindings {
			if merged.Bindings[i].Pattern == pattern {
				merged.Bindings[i].Command = cmd
				replaced = true
			}
		}
		if !replaced {
			merged.Bindings = append(merged.Bindings, KeyBinding{
				Pattern: pattern,
				Display: pattern,
				Command: cmd,
			})
		}
	}
	return merged
}

func removeBinding(bindings []KeyBinding, pattern string) []KeyBinding {
	out := bindings[:0]
	for _, b := range bindings {
		if b.Pattern != pattern {
			out = append(out, b)
		}
	}
	return out
}

// MatchKey resolves an incoming key against the keymap, handling chords.
// It returns the candidate commands in declaration order, whether the
// pending chord state should clear, and a new pending first key if the key
// opens a chord.
func (k Keymap) MatchKey(key string, pending *PendingKey, now time.Time) (commands []CommandID, clearPending bool, newPending *PendingKey) {
	validPending := pending != nil && !pending.Expired(now)

	// Complete a chord in flight.
	if validPending && isChordKey(key) {
		for _, b := range k.Bindings {
			first, second, ok := b.ChordKeys()
			if ok && first == pending.Key && second == key {
				commands = append(commands, b.Command)
			}
		}
		if len(commands) > 0 {
			return commands, true, nil
		}
		// The second key didn't complete any chord: fall through to single
		// key matching with the pending state cleared.
		return k.singleKeyCommands(key), true, nil
	}

	// Does this key open a chord?
	if isChordKey(key) {
		for _, b := range k.Bindings {
			if first, _, ok := b.ChordKeys(); ok && first == key {
				return nil, true, &PendingKey{Key: key, Timestamp: now}
			}
		}
	}

	return k.singleKeyCommands(key), true, nil
}

func (k Keymap) singleKeyCommands(key string) []CommandID {
	var commands []CommandID
	for _, b := range k.Bindings {
		if !b.IsChord() && b.Pattern == key {
			commands = append(commands, b.Command)
		}
	}
	return commands
}

// isChordKey reports whether a key can participate in a chord: a single
// plain character without modifiers.
func isChordKey(key string) bool {
	return len([]rune(key)) == 1 && !strings.Contains(key, "+")
}

// NormalizeKey renders a bubbletea key message into the keymap's spelling.
func NormalizeKey(msg tea.KeyMsg) string {
	switch msg.Type {
	case tea.KeySpace:
		return "space"
	case tea.KeyRunes:
		key := string(msg.Runes)
		if key == " " {
			key = "space"
		}
		if msg.Alt {
			return "alt+" + key
		}
		return key
	default:
		return msg.String()
	}
}
