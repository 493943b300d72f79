package actionslog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenizePlainText(t *testing.T) {
	segments := TokenizeANSI("just plain text")
	require.Len(t, segments, 1)
	assert.Equal(t, "just plain text", segments[0].Text)
	assert.True(t, segments[0].Style.IsDefault())
}

func TestTokenizeEmptyLine(t *testing.T) {
	segments := TokenizeANSI("")
	require.Len(t, segments, 1)
	assert.Empty(t, segments[0].Text)
	assert.True(t, segments[0].Style.IsDefault())
}

func TestTokenizeNamedColors(t *testing.T) {
	segments := TokenizeANSI("\x1b[31mred\x1b[0m plain")
	require.Len(t, segments, 2)
	require.NotNil(t, segments[0].Style.Fg)
	assert.Equal(t, NamedColor(1), *segments[0].Style.Fg)
	assert.Equal(t, "red", segments[0].Text)
	assert.Equal(t, " plain", segments[1].Text)
	assert.True(t, segments[1].Style.IsDefault())
}

func TestTokenizeBrightAndBackground(t *testing.T) {
	segments := TokenizeANSI("\x1b[92;41mtext")
	require.Len(t, segments, 1)
	require.NotNil(t, segments[0].Style.Fg)
	assert.Equal(t, NamedColor(10), *segments[0].Style.Fg)
	require.NotNil(t, segments[0].Style.Bg)
	assert.Equal(t, NamedColor(1), *segments[0].Style.Bg)
}

func TestTokenizePalette256(t *testing.T) {
	segments := TokenizeANSI("\x1b[38;5;208morange")
	require.Len(t, segments, 1)
	require.NotNil(t, segments[0].Style.Fg)
	assert.Equal(t, PaletteColor(208), *segments[0].Style.Fg)
}

func TestTokenizeRGB(t *testing.T) {
	segments := TokenizeANSI("\x1b[48;2;10;20;30mdeep")
	require.Len(t, segments, 1)
	require.NotNil(t, segments[0].Style.Bg)
	assert.Equal(t, RGBColor(10, 20, 30), *segments[0].Style.Bg)
}

func TestTokenizeAttributes(t *testing.T) {
	segments := TokenizeANSI("\x1b[1;3;4;9mstyled")
	require.Len(t, segments, 1)
	s := segments[0].Style
	assert.True(t, s.Bold)
	assert.True(t, s.Italic)
	assert.True(t, s.Underline)
	assert.True(t, s.Strikethrough)
}

func TestTokenizeBoldAndFaintBothAllowed(t *testing.T) {
	segments := TokenizeANSI("\x1b[1;2mdim bold")
	require.Len(t, segments, 1)
	assert.True(t, segments[0].Style.Bold)
	assert.True(t, segments[0].Style.Faint)
}

func TestTokenizeDefaultColorCodes(t *testing.T) {
	segments := TokenizeANSI("\x1b[31mred\x1b[39mdefault")
	require.Len(t, segments, 2)
	assert.Nil(t, segments[1].Style.Fg)
}

func TestTokenizeReset(t *testing.T) {
	segments := TokenizeANSI("\x1b[1;31mX\x1b[mY")
	require.Len(t, segments, 2)
	assert.True(t, segments[1].Style.IsDefault())
}

func TestTokenizeUnknownCodesSkipped(t *testing.T) {
	segments := TokenizeANSI("\x1b[95;999mtext")
	require.Len(t, segments, 1)
	require.NotNil(t, segments[0].Style.Fg)
	assert.Equal(t, NamedColor(13), *segments[0].Style.Fg)
}

func TestTokenizeMergesIdenticalStyles(t *testing.T) {
	// Same style reapplied mid-run should not split the segment.
	segments := TokenizeANSI("\x1b[31mab\x1b[31mcd")
	require.Len(t, segments, 1)
	assert.Equal(t, "abcd", segments[0].Text)
}

func TestTokenizeNonSGRSequencesDropped(t *testing.T) {
	// Cursor movement does not affect style or text.
	segments := TokenizeANSI("a\x1b[2Kb")
	require.Len(t, segments, 1)
	assert.Equal(t, "ab", segments[0].Text)
}
