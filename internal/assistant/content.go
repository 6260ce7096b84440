// Package assistant parses streamed assistant-message text into an ordered
// list of content blocks: plain text interleaved with tag-delimited tool
// invocations. The parser is re-invoked with a growing buffer as chunks
// arrive; earlier completed blocks never change between invocations.
package assistant

// ToolName identifies a tool in the fixed vocabulary the parser recognizes.
type ToolName string

const (
	ToolReadFile            ToolName = "read_file"
	ToolWriteToFile         ToolName = "write_to_file"
	ToolReplaceInFile       ToolName = "replace_in_file"
	ToolListFiles           ToolName = "list_files"
	ToolSearchFiles         ToolName = "search_files"
	ToolExecuteCommand      ToolName = "execute_command"
	ToolAskFollowupQuestion ToolName = "ask_followup_question"
	ToolAttemptCompletion   ToolName = "attempt_completion"
)

// ParamName identifies a tool parameter in the fixed vocabulary.
type ParamName string

const (
	ParamPath             ParamName = "path"
	ParamContent          ParamName = "content"
	ParamDiff             ParamName = "diff"
	ParamRegex            ParamName = "regex"
	ParamFilePattern      ParamName = "file_pattern"
	ParamRecursive        ParamName = "recursive"
	ParamCommand          ParamName = "command"
	ParamRequiresApproval ParamName = "requires_approval"
	ParamQuestion         ParamName = "question"
	ParamResult           ParamName = "result"
)

// ContentBlock is one parsed segment of an assistant message, in stream
// order. It is either a *TextContent or a *ToolUse.
type ContentBlock interface {
	contentBlock()
}

// TextContent is a span of free-form assistant text. Text is trimmed of
// surrounding whitespace; empty spans are never emitted as blocks.
type TextContent struct {
	Text string
}

func (*TextContent) contentBlock() {}

// ToolUse is a structured tool invocation embedded in the message.
// Params holds the exact substring between each parameter's opening and
// closing tag, verbatim. Partial is true while the tool's closing tag has
// not yet arrived; every tool use streams through a partial phase before
// the final chunk completes it.
type ToolUse struct {
	Name    ToolName
	Params  map[ParamName]string
	Partial bool
}

func (*ToolUse) contentBlock() {}

// Param returns the captured value for name, or "" if it has not been
// captured yet.
func (t *ToolUse) Param(name ParamName) string {
	return t.Params[name]
}
