// Package construct reconstructs a file's contents from streamed
// SEARCH/REPLACE diff text. The diff arrives incrementally; Apply is
// re-invoked with the full text accumulated so far and rebuilds the
// result from scratch each call.
package construct

import (
	"sort"
	"strings"

	"github.com/restitch/restitch/internal/matcher"
)

// State is the constructor's position in a SEARCH/REPLACE block.
type State int

const (
	// StateIdle is between blocks.
	StateIdle State = iota
	// StateSearch is accumulating search lines after a SEARCH marker.
	StateSearch
	// StateReplace is accumulating replacement lines after the separator.
	StateReplace
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSearch:
		return "accumulating-search"
	case StateReplace:
		return "accumulating-replace"
	default:
		return "unknown"
	}
}

// Replacement is a resolved edit against the original text's coordinate
// space. Ranges never overlap and are applied in ascending Start order no
// matter the order their blocks arrived in.
type Replacement struct {
	Start   int
	End     int
	Content string
}

// Constructor applies a streamed SEARCH/REPLACE diff to one original text.
type Constructor struct {
	original string
	match    *matcher.Matcher

	// Set by the most recent Apply call.
	replacements []Replacement
	recovered    int
}

// New creates a Constructor for the given original text with the standard
// match strategy chain.
func New(original string) *Constructor {
	return NewWithMatcher(original, matcher.New(false))
}

// NewWithMatcher creates a Constructor with a caller-supplied matcher.
func NewWithMatcher(original string, m *matcher.Matcher) *Constructor {
	return &Constructor{original: original, match: m}
}

// Replacements returns the edits resolved by the most recent Apply call,
// in arrival order.
func (c *Constructor) Replacements() []Replacement {
	return c.replacements
}

// Recovered returns how many malformed marker lines the most recent Apply
// call rewrote to canonical form.
func (c *Constructor) Recovered() int {
	return c.recovered
}

// Apply reconstructs the file from the diff text accumulated so far.
// Callers re-invoke it with a growing diff and the same receiver; final
// triggers end-of-stream cleanup: the unconsumed tail of the original is
// appended and trailing incomplete marker lines are dropped instead of
// being emitted literally.
//
// While streaming, only resolved regions are returned, plus the
// in-progress replacement content when its position is ahead of every
// resolved edit, so callers can echo progress without risking reordered
// output.
func (c *Constructor) Apply(diff string, final bool) (string, error) {
	lines := strings.Split(diff, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		// Trailing newline artifact.
		lines = lines[:len(lines)-1]
	} else if !final && len(lines) > 0 {
		// The last line has no terminator yet; it may still grow into a
		// marker. Withhold it until the next call.
		lines = lines[:len(lines)-1]
	}

	state := StateIdle
	var (
		searchLines    []string
		replaceLines   []string
		repls          []Replacement
		pending        matcher.Span
		blockStartLine int
		cursor         int
		recovered      int
	)

	for n, raw := range lines {
		line := strings.TrimSuffix(raw, "\r")
		lineNum := n + 1

		kind := classifyStrict(line)
		if kind == markerNone {
			if loose := classifyLoose(line); loose != markerNone && legalFor(state) == loose {
				// Near-miss marker syntax: rewrite to the canonical
				// marker and process it as such.
				kind = loose
				recovered++
			}
		}

		switch kind {
		case markerSearchStart:
			if state != StateIdle {
				return "", &StateTransitionError{From: state, To: StateSearch, Line: lineNum}
			}
			state = StateSearch
			searchLines = nil
			blockStartLine = lineNum

		case markerSeparator:
			if state != StateSearch {
				return "", &StateTransitionError{From: state, To: StateReplace, Line: lineNum}
			}
			span, err := c.resolve(joinBlockLines(searchLines), cursor, repls, blockStartLine)
			if err != nil {
				return "", err
			}
			pending = span
			if span.End > cursor {
				cursor = span.End
			}
			state = StateReplace
			replaceLines = nil

		case markerReplaceEnd:
			if state != StateReplace {
				return "", &StateTransitionError{From: state, To: StateIdle, Line: lineNum}
			}
			repls = append(repls, c.replacement(pending, joinBlockLines(replaceLines)))
			state = StateIdle

		default:
			switch state {
			case StateSearch:
				searchLines = append(searchLines, line)
			case StateReplace:
				replaceLines = append(replaceLines, line)
			default:
				// Prose between blocks is ignored.
			}
		}
	}

	if final && state == StateReplace {
		// Stream ended after the search resolved but before the end
		// marker; treat the block as complete rather than losing it.
		repls = append(repls, c.replacement(pending, joinBlockLines(replaceLines)))
		state = StateIdle
	}

	c.replacements = repls
	c.recovered = recovered

	var partial *Replacement
	if state == StateReplace {
		r := c.replacement(pending, joinBlockLines(replaceLines))
		partial = &r
	}
	return c.render(repls, final, partial), nil
}

// legalFor returns the marker kind that would advance the state machine
// from the given state. Loose recovery only fires for that kind.
func legalFor(state State) markerKind {
	switch state {
	case StateIdle:
		return markerSearchStart
	case StateSearch:
		return markerSeparator
	case StateReplace:
		return markerReplaceEnd
	default:
		return markerNone
	}
}

// resolve locates the search text in the original, starting from the
// cursor left by the previous block. Blocks may arrive out of document
// order, so a miss retries from the top of the file, skipping spans that
// overlap already-resolved replacements.
func (c *Constructor) resolve(search string, cursor int, repls []Replacement, blockLine int) (matcher.Span, error) {
	// An empty search block replaces the whole file.
	if search == "" {
		return matcher.Span{Start: 0, End: len(c.original)}, nil
	}

	if span, ok := c.match.Find(c.original, search, cursor); ok && !overlapsAny(span, repls) {
		return span, nil
	}

	from := 0
	for {
		span, ok := c.match.Find(c.original, search, from)
		if !ok {
			break
		}
		if !overlapsAny(span, repls) {
			return span, nil
		}
		from = span.Start + 1
	}

	unmatched := &UnmatchedSearchError{Search: search, Line: blockLine}
	if lineNum, line, ratio := matcher.MostSimilarLine(c.original, search); ratio > 0.4 {
		unmatched.SimilarLine = lineNum
		unmatched.Similar = line
		unmatched.Similarity = ratio
	}
	return matcher.Span{}, unmatched
}

// replacement builds a Replacement for a resolved span, trimming the
// content's trailing newline when the span ends the file without one.
func (c *Constructor) replacement(span matcher.Span, content string) Replacement {
	if span.End == len(c.original) && !strings.HasSuffix(c.original, "\n") {
		content = strings.TrimSuffix(content, "\n")
	}
	return Replacement{Start: span.Start, End: span.End, Content: content}
}

// render applies the replacements to the original in ascending start
// order. Non-final renders stop at the last resolved edit; the in-progress
// replacement is echoed only when it sits at or after that point.
func (c *Constructor) render(repls []Replacement, final bool, partial *Replacement) string {
	sorted := make([]Replacement, len(repls))
	copy(sorted, repls)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })

	var b strings.Builder
	pos := 0
	for _, r := range sorted {
		b.WriteString(c.original[pos:r.Start])
		b.WriteString(r.Content)
		pos = r.End
	}

	if final {
		b.WriteString(c.original[pos:])
	} else if partial != nil && partial.Start >= pos {
		b.WriteString(c.original[pos:partial.Start])
		b.WriteString(partial.Content)
	}
	return b.String()
}

// joinBlockLines rebuilds block content from accumulated lines. Every line
// in a block is newline-terminated; a missing final newline is handled at
// replacement time.
func joinBlockLines(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}

// overlapsAny reports whether span intersects any resolved replacement.
func overlapsAny(span matcher.Span, repls []Replacement) bool {
	for _, r := range repls {
		if span.Start < r.End && r.Start < span.End {
			return true
		}
	}
	return false
}
