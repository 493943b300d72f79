package diffview

import (
	"hash/fnv"
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	chromastyles "github.com/alecthomas/chroma/v2/styles"
)

// DefaultMaxCacheSize bounds the per-line highlight cache.
const DefaultMaxCacheSize = 5000

// HighlightedSpan is a run of text with a resolved color.
type HighlightedSpan struct {
	Text string
	// Color is a hex color like "#ff79c6"; empty means default foreground.
	Color  string
	Bold   bool
	Italic bool
}

// Highlighter produces syntax-highlighted spans for diff lines.
//
// Results are cached by a 64-bit hash of (path, line content); when the cache
// is full the oldest-inserted 20% is evicted (bounded size, not strict LRU).
// A second cache maps file extensions to lexers so classification runs once
// per extension instead of once per line.
type Highlighter struct {
	style        *chroma.Style
	cache        map[uint64][]HighlightedSpan
	cacheOrder   []uint64
	maxCacheSize int
	lexerCache   map[string]chroma.Lexer
}

// NewHighlighter creates a highlighter with the default theme.
func NewHighlighter() *Highlighter {
	return NewHighlighterWithTheme("dracula")
}

// NewHighlighterWithTheme creates a highlighter using the named chroma style,
// falling back to the default theme for unknown names.
func NewHighlighterWithTheme(themeName string) *Highlighter {
	style := chromastyles.Get(themeName)
	if style == nil {
		style = chromastyles.Fallback
	}
	return &Highlighter{
		style:        style,
		cache:        make(map[uint64][]HighlightedSpan),
		maxCacheSize: DefaultMaxCacheSize,
		lexerCache:   make(map[string]chroma.Lexer),
	}
}

// WithMaxCache overrides the cache bound.
func (h *Highlighter) WithMaxCache(size int) *Highlighter {
	if size > 0 {
		h.maxCacheSize = size
	}
	return h
}

// CacheSize returns the current number of cached lines.
func (h *Highlighter) CacheSize() int {
	return len(h.cache)
}

// HighlightLine returns styled spans for one line of the given file.
func (h *Highlighter) HighlightLine(path, content string) []HighlightedSpan {
	key := cacheKey(path, content)
	if spans, ok := h.cache[key]; ok {
		return spans
	}

	spans := h.highlight(h.lexerFor(path), content)

	if len(h.cache) >= h.maxCacheSize {
		h.evictOldest()
	}
	h.cache[key] = spans
	h.cacheOrder = append(h.cacheOrder, key)
	return spans
}

// evictOldest drops the oldest-inserted 20% of the cache. 20% rather than
// half keeps the working set warm and reduces thrashing.
func (h *Highlighter) evictOldest() {
	n := h.maxCacheSize / 5
	if n < 1 {
		n = 1
	}
	if n > len(h.cacheOrder) {
		n = len(h.cacheOrder)
	}
	for _, key := range h.cacheOrder[:n] {
		delete(h.cache, key)
	}
	h.cacheOrder = h.cacheOrder[n:]
}

// lexerFor resolves and caches a lexer per file extension.
func (h *Highlighter) lexerFor(path string) chroma.Lexer {
	ext := strings.ToLower(filepath.Ext(path))
	if lexer, ok := h.lexerCache[ext]; ok {
		return lexer
	}
	lexer := lexers.Match(filepath.Base(path))
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)
	h.lexerCache[ext] = lexer
	return lexer
}

func (h *Highlighter) highlight(lexer chroma.Lexer, content string) []HighlightedSpan {
	iterator, err := lexer.Tokenise(nil, content)
	if err != nil {
		return []HighlightedSpan{{Text: content}}
	}
	var spans []HighlightedSpan
	for token := iterator(); token != chroma.EOF; token = iterator() {
		entry := h.style.Get(token.Type)
		span := HighlightedSpan{
			Text:   token.Value,
			Bold:   entry.Bold == chroma.Yes,
			Italic: entry.Italic == chroma.Yes,
		}
		if entry.Colour.IsSet() {
			span.Color = entry.Colour.String()
		}
		spans = append(spans, span)
	}
	// Lexers with EnsureNL append a newline the input never had; this
	// highlights single lines, so strip it.
	if n := len(spans); n > 0 {
		spans[n-1].Text = strings.TrimSuffix(spans[n-1].Text, "\n")
		if spans[n-1].Text == "" && n > 1 {
			spans = spans[:n-1]
		}
	}
	if len(spans) == 0 {
		spans = []HighlightedSpan{{Text: content}}
	}
	return spans
}

func cacheKey(path, content string) uint64 {
	hash := fnv.New64a()
	hash.Write([]byte(path))
	hash.Write([]byte{0})
	hash.Write([]byte(content))
	return hash.Sum64()
}
