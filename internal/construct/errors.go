package construct

import (
	"fmt"
	"strings"
)

// UnmatchedSearchError reports a SEARCH block whose content could not be
// located in the original text by any match strategy. It aborts the
// current diff only; the caller surfaces it to the model or user and other
// tool calls are unaffected.
type UnmatchedSearchError struct {
	Search string // the unmatched search text, verbatim
	Line   int    // 1-based line in the diff stream where the block started

	// Best-effort hint: the original line most similar to the search
	// text, when one clears the similarity floor.
	SimilarLine int
	Similar     string
	Similarity  float64
}

func (e *UnmatchedSearchError) Error() string {
	snippet := e.Search
	if idx := strings.IndexByte(snippet, '\n'); idx >= 0 {
		snippet = snippet[:idx] + "..."
	}
	msg := fmt.Sprintf("search content at diff line %d does not match the file: %q", e.Line, snippet)
	if e.SimilarLine > 0 {
		msg += fmt.Sprintf(" (closest is line %d: %q, %.0f%% similar)",
			e.SimilarLine, strings.TrimSpace(e.Similar), e.Similarity*100)
	}
	return msg
}

// StateTransitionError reports a marker that is illegal for the
// constructor's current state, e.g. a REPLACE end with no preceding
// separator. Well-formed marker text never produces one; it indicates
// either malformed markers beyond recovery or a caller bug.
type StateTransitionError struct {
	From State
	To   State
	Line int // 1-based line in the diff stream
}

func (e *StateTransitionError) Error() string {
	return fmt.Sprintf("invalid state transition %s -> %s at diff line %d", e.From, e.To, e.Line)
}
