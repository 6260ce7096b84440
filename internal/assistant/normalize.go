package assistant

import "strings"

// paramNormalizer rewrites a captured parameter value when its tool closes.
type paramNormalizer func(string) string

// closeNormalizers maps {tool, param} to the normalizer applied when the
// tool's closing tag is seen. File-write tools get trailing-newline
// normalization on their content so that a model emitting extra blank
// lines before the closing tag does not corrupt the written file.
var closeNormalizers = map[ToolName]map[ParamName]paramNormalizer{
	ToolWriteToFile: {
		ParamContent: trimTrailingNewlines,
	},
}

// finalizeToolUse applies tool-specific post-processing to a tool use whose
// closing tag has just been seen.
func finalizeToolUse(t *ToolUse) {
	for param, normalize := range closeNormalizers[t.Name] {
		if value, ok := t.Params[param]; ok {
			t.Params[param] = normalize(value)
		}
	}
}

// trimTrailingNewlines removes trailing newline runs (LF or CRLF).
func trimTrailingNewlines(s string) string {
	for strings.HasSuffix(s, "\n") {
		s = strings.TrimSuffix(s, "\n")
		s = strings.TrimSuffix(s, "\r")
	}
	return s
}
