package actionslog

import "strings"

// sameStyle compares styles by value; Fg and Bg are pointers, so == alone
// would only match styles sharing one parsed color.
func sameStyle(a, b AnsiStyle) bool {
	if !sameColor(a.Fg, b.Fg) || !sameColor(a.Bg, b.Bg) {
		return false
	}
	a.Fg, a.Bg, b.Fg, b.Bg = nil, nil, nil, nil
	return a == b
}

func sameColor(a, b *Color) bool {
	return a == b || (a != nil && b != nil && *a == *b)
}

// TokenizeANSI splits a line into styled segments by interpreting SGR escape
// sequences (ESC [ ... m). It is a small deterministic state machine over
// bytes rather than a regex: the stream is binary-clean except for the SGR
// final byte 'm'. Unknown SGR codes are skipped silently; non-SGR escape
// sequences are dropped from the output without affecting the current style.
// Adjacent runs with identical styles are merged.
//
// A line of pure text yields exactly one segment with the default style.
func TokenizeANSI(line string) []StyledSegment {
	var segments []StyledSegment
	var text strings.Builder
	style := AnsiStyle{}

	flush := func() {
		if text.Len() == 0 {
			return
		}
		if n := len(segments); n > 0 && sameStyle(segments[n-1].Style, style) {
			segments[n-1].Text += text.String()
		} else {
			segments = append(segments, StyledSegment{Text: text.String(), Style: style})
		}
		text.Reset()
	}

	i := 0
	for i < len(line) {
		if line[i] != 0x1b {
			text.WriteByte(line[i])
			i++
			continue
		}
		if i+1 >= len(line) {
			// Dangling ESC at end of line, drop it.
			break
		}
		if line[i+1] != '[' {
			// Non-CSI escape (OSC, charset select, ...). Skip the two-byte
			// introducer; anything beyond that is treated as text again.
			i += 2
			continue
		}

		// CSI sequence: collect parameter bytes up to the final byte.
		j := i + 2
		for j < len(line) && isCSIParameterByte(line[j]) {
			j++
		}
		if j >= len(line) {
			// Unterminated sequence, drop the rest of the line's escape.
			break
		}
		final := line[j]
		if final == 'm' {
			flush()
			applySGR(&style, line[i+2:j])
		}
		// Non-SGR CSI sequences (cursor movement etc.) are dropped.
		i = j + 1
	}
	flush()

	if segments == nil {
		segments = []StyledSegment{{Text: line}}
	}
	return segments
}

func isCSIParameterByte(b byte) bool {
	return b >= 0x20 && b <= 0x3f
}

// applySGR mutates style according to the semicolon-separated SGR parameters.
func applySGR(style *AnsiStyle, params string) {
	codes := splitSGRParams(params)
	for i := 0; i < len(codes); i++ {
		switch codes[i] {
		case 0:
			*style = AnsiStyle{}
		case 1:
			style.Bold = true
		case 2:
			style.Faint = true
		case 3:
			style.Italic = true
		case 4:
			style.Underline = true
		case 5, 6:
			style.Blink = true
		case 7:
			style.Reversed = true
		case 8:
			style.Hidden = true
		case 9:
			style.Strikethrough = true
		case 39:
			style.Fg = nil
		case 49:
			style.Bg = nil
		case 38, 48:
			color, consumed := parseExtendedColor(codes[i+1:])
			if color == nil {
				// Malformed extended color; skip whatever followed.
				i = len(codes)
				break
			}
			if codes[i] == 38 {
				style.Fg = color
			} else {
				style.Bg = color
			}
			i += consumed
		default:
			switch c := codes[i]; {
			case c >= 30 && c <= 37:
				color := NamedColor(uint8(c - 30))
				style.Fg = &color
			case c >= 90 && c <= 97:
				color := NamedColor(uint8(c - 90 + 8))
				style.Fg = &color
			case c >= 40 && c <= 47:
				color := NamedColor(uint8(c - 40))
				style.Bg = &color
			case c >= 100 && c <= 107:
				color := NamedColor(uint8(c - 100 + 8))
				style.Bg = &color
			}
			// Anything else is silently skipped.
		}
	}
}

// parseExtendedColor handles the tail of 38;5;n, 38;2;r;g;b (and the 48
// variants). Returns the color and how many parameters were consumed.
func parseExtendedColor(rest []int) (*Color, int) {
	if len(rest) == 0 {
		return nil, 0
	}
	switch rest[0] {
	case 5:
		if len(rest) < 2 || rest[1] < 0 || rest[1] > 255 {
			return nil, 0
		}
		c := PaletteColor(uint8(rest[1]))
		return &c, 2
	case 2:
		if len(rest) < 4 {
			return nil, 0
		}
		for _, v := range rest[1:4] {
			if v < 0 || v > 255 {
				return nil, 0
			}
		}
		c := RGBColor(uint8(rest[1]), uint8(rest[2]), uint8(rest[3]))
		return &c, 4
	}
	return nil, 0
}

// splitSGRParams parses "1;38;5;208" into ints. An empty parameter list (as
// in a bare ESC[m) means reset, encoded as a single 0.
func splitSGRParams(params string) []int {
	if params == "" {
		return []int{0}
	}
	parts := strings.Split(params, ";")
	codes := make([]int, 0, len(parts))
	for _, p := range parts {
		if p == "" {
			codes = append(codes, 0)
			continue
		}
		n := 0
		ok := true
		for k := 0; k < len(p); k++ {
			if p[k] < '0' || p[k] > '9' {
				ok = false
				break
			}
			n = n*10 + int(p[k]-'0')
		}
		if !ok {
			// Non-numeric parameter (e.g. a private marker); skip it.
			continue
		}
		codes = append(codes, n)
	}
	if len(codes) == 0 {
		return []int{0}
	}
	return codes
}
