package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sassman/gh-pr-lander/pkg/config"
)

func TestChordResolvesWithinWindow(t *testing.T) {
	keymap := DefaultKeymap()
	now := time.Now()

	// First key registers pending, no commands.
	commands, _, pending := keymap.MatchKey("p", nil, now)
	assert.Empty(t, commands)
	require.NotNil(t, pending)
	assert.Equal(t, "p", pending.Key)

	// Second key within 2s resolves the chord.
	commands, clear, next := keymap.MatchKey("a", pending, now.Add(time.Second))
	assert.True(t, clear)
	assert.Nil(t, next)
	require.NotEmpty(t, commands)
	assert.Contains(t, commands, CmdPrApprove)
}

func TestChordExpiresAfterTimeout(t *testing.T) {
	keymap := DefaultKeymap()
	now := time.Now()
	_, _, pending := keymap.MatchKey("p", nil, now)
	require.NotNil(t, pending)

	// After the 2s window the pending key is dead; 'a' resolves alone
	// (no single-key 'a' binding exists, so no commands).
	commands, _, next := keymap.MatchKey("a", pending, now.Add(3*time.Second))
	assert.Empty(t, commands)
	assert.Nil(t, next)
}

func TestChordFirstKeyAloneIsNoop(t *testing.T) {
	keymap := DefaultKeymap()
	// 'p' only opens chords; it never resolves to a command by itself.
	commands, _, pending := keymap.MatchKey("p", nil, time.Now())
	assert.Empty(t, commands)
	assert.NotNil(t, pending)
}

func TestChordSecondKeyFallsBackToSingle(t *testing.T) {
	keymap := DefaultKeymap()
	now := time.Now()
	_, _, pending := keymap.MatchKey("p", nil, now)

	// 'j' completes no p-chord but has its own binding.
	commands, clear, next := keymap.MatchKey("j", pending, now.Add(time.Second))
	assert.True(t, clear)
	assert.Nil(t, next)
	assert.Contains(t, commands, CmdNavigateNext)
}

func TestSingleKeyCandidatesInDeclarationOrder(t *testing.T) {
	keymap := DefaultKeymap()
	commands, _, _ := keymap.MatchKey("c", nil, time.Now())
	// 'c' maps to both debug-clear and diff-comment; gating picks per view.
	require.Len(t, commands, 2)
	assert.Equal(t, CmdDebugClearLogs, commands[0])
	assert.Equal(t, CmdDiffStartComment, commands[1])
}

func TestModifierKeysNeverOpenChords(t *testing.T) {
	keymap := DefaultKeymap()
	commands, _, pending := keymap.MatchKey("ctrl+p", nil, time.Now())
	assert.Nil(t, pending)
	assert.Contains(t, commands, CmdCommandPaletteOpen)
}

func TestKeymapOverrideRebindsAndAdds(t *testing.T) {
	keymap := DefaultKeymap().ApplyOverride(config.KeymapOverride{
		"u":      "pr-refresh",   // rebind existing pattern
		"ctrl+x": "quit",         // new binding
		"y":      "no-such-name", // unknown command: ignored
		"f":      "",             // removed
	})

	commands, _, _ := keymap.MatchKey("u", nil, time.Now())
	assert.Equal(t, []CommandID{CmdPrRefresh}, commands)

	commands, _, _ = keymap.MatchKey("ctrl+x", nil, time.Now())
	assert.Equal(t, []CommandID{CmdGlobalQuit}, commands)

	commands, _, _ = keymap.MatchKey("y", nil, time.Now())
	assert.Empty(t, commands)

	commands, _, _ = keymap.MatchKey("f", nil, time.Now())
	assert.Empty(t, commands)
}

func TestCapabilitiesBits(t *testing.T) {
	caps := CapScrollVertical | CapVimScrollBindings
	assert.True(t, caps.SupportsVimVerticalScroll())
	assert.False(t, CapScrollVertical.SupportsVimVerticalScroll())
	assert.True(t, (CapTextInput).AcceptsTextInput())
	assert.False(t, caps.AcceptsTextInput())
}
