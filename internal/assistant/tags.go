package assistant

// Vocabulary holds the precomputed tag lookup tables for a closed set of
// tool and parameter names. Opening-tag strings map to names so that tag
// recognition is a table probe per scan position instead of a linear scan
// over the vocabulary. A Vocabulary is immutable after construction.
type Vocabulary struct {
	toolOpen  map[string]ToolName  // "<tool_name>" -> name
	paramOpen map[string]ParamName // "<param_name>" -> name

	// Distinct opening-tag lengths, so a scan position only probes the
	// map once per possible length.
	toolOpenLens  []int
	paramOpenLens []int
}

// DefaultToolNames is the built-in tool vocabulary.
var DefaultToolNames = []ToolName{
	ToolReadFile,
	ToolWriteToFile,
	ToolReplaceInFile,
	ToolListFiles,
	ToolSearchFiles,
	ToolExecuteCommand,
	ToolAskFollowupQuestion,
	ToolAttemptCompletion,
}

// DefaultParamNames is the built-in parameter vocabulary.
var DefaultParamNames = []ParamName{
	ParamPath,
	ParamContent,
	ParamDiff,
	ParamRegex,
	ParamFilePattern,
	ParamRecursive,
	ParamCommand,
	ParamRequiresApproval,
	ParamQuestion,
	ParamResult,
}

// NewVocabulary builds the lookup tables for the given tool and parameter
// names.
func NewVocabulary(tools []ToolName, params []ParamName) *Vocabulary {
	v := &Vocabulary{
		toolOpen:  make(map[string]ToolName, len(tools)),
		paramOpen: make(map[string]ParamName, len(params)),
	}

	toolLens := make(map[int]bool)
	for _, name := range tools {
		tag := "<" + string(name) + ">"
		v.toolOpen[tag] = name
		toolLens[len(tag)] = true
	}
	paramLens := make(map[int]bool)
	for _, name := range params {
		tag := "<" + string(name) + ">"
		v.paramOpen[tag] = name
		paramLens[len(tag)] = true
	}

	for l := range toolLens {
		v.toolOpenLens = append(v.toolOpenLens, l)
	}
	for l := range paramLens {
		v.paramOpenLens = append(v.paramOpenLens, l)
	}
	return v
}

// DefaultVocabulary returns a Vocabulary over the built-in tool and
// parameter names.
func DefaultVocabulary() *Vocabulary {
	return NewVocabulary(DefaultToolNames, DefaultParamNames)
}

// ExtendedVocabulary returns the default Vocabulary extended with extra
// tool and parameter names, typically from configuration.
func ExtendedVocabulary(extraTools, extraParams []string) *Vocabulary {
	tools := append([]ToolName{}, DefaultToolNames...)
	for _, name := range extraTools {
		tools = append(tools, ToolName(name))
	}
	params := append([]ParamName{}, DefaultParamNames...)
	for _, name := range extraParams {
		params = append(params, ParamName(name))
	}
	return NewVocabulary(tools, params)
}

// toolOpenEndingAt reports whether an opening tool tag ends at byte index i
// (inclusive). Returns the tool name and the tag length.
func (v *Vocabulary) toolOpenEndingAt(buf string, i int) (ToolName, int, bool) {
	for _, l := range v.toolOpenLens {
		if i+1 < l {
			continue
		}
		if name, ok := v.toolOpen[buf[i+1-l:i+1]]; ok {
			return name, l, true
		}
	}
	return "", 0, false
}

// paramOpenEndingAt reports whether an opening parameter tag ends at byte
// index i (inclusive). Returns the parameter name and the tag length.
func (v *Vocabulary) paramOpenEndingAt(buf string, i int) (ParamName, int, bool) {
	for _, l := range v.paramOpenLens {
		if i+1 < l {
			continue
		}
		if name, ok := v.paramOpen[buf[i+1-l:i+1]]; ok {
			return name, l, true
		}
	}
	return "", 0, false
}

// closingTag returns the literal closing tag for a name, e.g. "</path>".
func closingTag(name string) string {
	return "</" + name + ">"
}
