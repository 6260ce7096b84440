package construct

import "regexp"

// Canonical marker lines for the SEARCH/REPLACE wire format. The exact
// byte sequences are load-bearing: existing model prompts specify them.
const (
	canonicalSearchStart = "<<<<<<< SEARCH"
	canonicalSeparator   = "======="
	canonicalReplaceEnd  = ">>>>>>> REPLACE"
)

// Strict marker patterns. A search start is three or more '<' or '-'
// followed by the word SEARCH with an optional trailing '>'; the separator
// is a bare run of three or more '='; a replace end is three or more '>'
// or '+' followed by REPLACE with an optional trailing '<'.
var (
	searchStartRe = regexp.MustCompile(`^([<]{3,}|[-]{3,}) SEARCH>?$`)
	separatorRe   = regexp.MustCompile(`^={3,}$`)
	replaceEndRe  = regexp.MustCompile(`^([>]{3,}|[+]{3,}) REPLACE<?$`)
)

// Loose marker patterns for malformed-marker recovery. Models frequently
// emit near-miss syntax: too-short fence runs, a missing space, stray
// trailing punctuation. A line matching a loose pattern in a state where
// the canonical marker would be legal is rewritten to the canonical form;
// anywhere else it is ordinary block content.
var (
	looseSearchRe    = regexp.MustCompile(`^[<-]*\s*SEARCH[>:\s]*$`)
	looseSeparatorRe = regexp.MustCompile(`^={2,}[>:\s]*$`)
	looseReplaceRe   = regexp.MustCompile(`^[>+]*\s*REPLACE[<:\s]*$`)
)

// markerKind classifies a diff line.
type markerKind int

const (
	markerNone markerKind = iota
	markerSearchStart
	markerSeparator
	markerReplaceEnd
)

// classifyStrict matches a line against the strict marker patterns.
func classifyStrict(line string) markerKind {
	switch {
	case searchStartRe.MatchString(line):
		return markerSearchStart
	case separatorRe.MatchString(line):
		return markerSeparator
	case replaceEndRe.MatchString(line):
		return markerReplaceEnd
	default:
		return markerNone
	}
}

// classifyLoose matches a line against the loose recovery patterns.
func classifyLoose(line string) markerKind {
	switch {
	case looseSearchRe.MatchString(line):
		return markerSearchStart
	case looseSeparatorRe.MatchString(line):
		return markerSeparator
	case looseReplaceRe.MatchString(line):
		return markerReplaceEnd
	default:
		return markerNone
	}
}
