package app

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// DimFrame repaints a rendered frame with the faint attribute so overlays
// read as modal. Styling inside the frame is stripped first; the dimmed
// backdrop is intentionally flat.
func DimFrame(frame string) string {
	lines := strings.Split(frame, "\n")
	for i, line := range lines {
		plain := ansi.Strip(line)
		if plain == "" {
			continue
		}
		lines[i] = "\x1b[2m" + plain + "\x1b[22m"
	}
	return strings.Join(lines, "\n")
}

// CompositeCentered splices an overlay block into the center of a base
// frame. Both are treated as line lists; overlay lines replace the covered
// cell range of the base line, preserving what shows on either side.
func CompositeCentered(base, overlay string, width, height int) string {
	baseLines := padFrame(strings.Split(base, "\n"), width, height)
	overlayLines := strings.Split(strings.TrimRight(overlay, "\n"), "\n")

	overlayHeight := len(overlayLines)
	overlayWidth := 0
	for _, line := range overlayLines {
		if w := ansi.StringWidth(line); w > overlayWidth {
			overlayWidth = w
		}
	}
	if overlayHeight > height {
		overlayLines = overlayLines[:height]
		overlayHeight = height
	}
	if overlayWidth > width {
		overlayWidth = width
	}

	top := (height - overlayHeight) / 2
	left := (width - overlayWidth) / 2

	for i, overlayLine := range overlayLines {
		row := top + i
		baseLine := baseLines[row]
		prefix := ansi.Truncate(baseLine, left, "")
		prefix += strings.Repeat(" ", left-ansi.StringWidth(prefix))
		suffix := ansi.TruncateLeft(baseLine, left+overlayWidth, "")
		body := overlayLine
		if pad := overlayWidth - ansi.StringWidth(overlayLine); pad > 0 {
			body += strings.Repeat(" ", pad)
		}
		baseLines[row] = prefix + body + suffix
	}
	return strings.Join(baseLines, "\n")
}

// padFrame normalizes a frame to exactly height lines of at least width
// cells so compositing can index rows safely.
func padFrame(lines []string, width, height int) []string {
	out := make([]string, height)
	for i := 0; i < height; i++ {
		var line string
		if i < len(lines) {
			line = lines[i]
		}
		if w := ansi.StringWidth(line); w < width {
			line += strings.Repeat(" ", width-w)
		}
		out[i] = line
	}
	return out
}
