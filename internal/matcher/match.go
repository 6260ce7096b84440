// Package matcher locates a search span inside an original text, falling
// back from exact matching to increasingly tolerant line-based strategies.
package matcher

import "strings"

// Span marks a half-open byte range [Start, End) in the original text.
type Span struct {
	Start int
	End   int
}

// Strategy tries to locate search inside original at or after from. The
// first window satisfying the strategy's predicate wins; strategies never
// score or compare multiple candidates.
type Strategy func(original, search string, from int) (Span, bool)

// Matcher runs an ordered chain of strategies and takes the first success.
type Matcher struct {
	strategies []Strategy
}

// New returns a Matcher with the standard chain: exact substring match,
// then line-trimmed windows, then block anchors. exactOnly disables the
// fallbacks.
func New(exactOnly bool) *Matcher {
	if exactOnly {
		return &Matcher{strategies: []Strategy{Exact}}
	}
	return &Matcher{strategies: []Strategy{Exact, LineTrimmed, BlockAnchor}}
}

// Find runs the strategy chain. Results from different strategies are
// never combined.
func (m *Matcher) Find(original, search string, from int) (Span, bool) {
	for _, strategy := range m.strategies {
		if span, ok := strategy(original, search, from); ok {
			return span, true
		}
	}
	return Span{}, false
}

// Exact is a literal substring search starting at from.
func Exact(original, search string, from int) (Span, bool) {
	if from < 0 || from > len(original) {
		return Span{}, false
	}
	idx := strings.Index(original[from:], search)
	if idx < 0 {
		return Span{}, false
	}
	return Span{Start: from + idx, End: from + idx + len(search)}, true
}

// LineTrimmed matches a window of consecutive original lines whose trimmed
// content equals the search lines' trimmed content, line for line. This
// tolerates indentation and trailing-whitespace drift between what the
// model saw and what is on disk.
func LineTrimmed(original, search string, from int) (Span, bool) {
	origLines := strings.Split(original, "\n")
	searchLines := splitSearchLines(search)
	if len(searchLines) == 0 {
		return Span{}, false
	}

	for i := lineIndexAt(origLines, from); i <= len(origLines)-len(searchLines); i++ {
		match := true
		for j := range searchLines {
			if strings.TrimSpace(origLines[i+j]) != strings.TrimSpace(searchLines[j]) {
				match = false
				break
			}
		}
		if match {
			return lineWindowSpan(original, origLines, i, len(searchLines)), true
		}
	}
	return Span{}, false
}

// BlockAnchor matches a block by its first and last line only (trimmed),
// with the window length fixed to the search's line count. Interior lines
// are not compared, which tolerates content drift inside blocks with
// stable signatures and closing braces. Requires at least three search
// lines; shorter blocks carry too little anchor context.
func BlockAnchor(original, search string, from int) (Span, bool) {
	origLines := strings.Split(original, "\n")
	searchLines := splitSearchLines(search)
	if len(searchLines) < 3 {
		return Span{}, false
	}

	first := strings.TrimSpace(searchLines[0])
	last := strings.TrimSpace(searchLines[len(searchLines)-1])
	window := len(searchLines)

	for i := lineIndexAt(origLines, from); i <= len(origLines)-window; i++ {
		if strings.TrimSpace(origLines[i]) != first {
			continue
		}
		if strings.TrimSpace(origLines[i+window-1]) != last {
			continue
		}
		return lineWindowSpan(original, origLines, i, window), true
	}
	return Span{}, false
}

// splitSearchLines splits search text into lines, dropping the empty
// remainder a trailing newline leaves behind.
func splitSearchLines(search string) []string {
	lines := strings.Split(search, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// lineIndexAt returns the index of the first line starting at or after
// byte offset from.
func lineIndexAt(lines []string, from int) int {
	offset := 0
	for i := range lines {
		if offset >= from {
			return i
		}
		offset += len(lines[i]) + 1
	}
	return len(lines)
}

// lineWindowSpan maps a window of count lines starting at line index start
// back to byte offsets in the original text.
func lineWindowSpan(original string, lines []string, start, count int) Span {
	offset := 0
	for i := 0; i < start; i++ {
		offset += len(lines[i]) + 1
	}
	end := offset
	for i := start; i < start+count; i++ {
		end += len(lines[i]) + 1
	}
	// The last matched line may be the final line of a text with no
	// trailing newline.
	if end > len(original) {
		end = len(original)
	}
	return Span{Start: offset, End: end}
}
