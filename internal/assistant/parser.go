package assistant

import (
	"strings"
)

// Parser turns a cumulative assistant-message buffer into content blocks.
// Parse is a pure function of the buffer: callers re-invoke it with a
// strictly growing buffer and the result is always a monotonic extension
// of the previous one (only the last block can change).
type Parser struct {
	vocab *Vocabulary
}

// NewParser creates a Parser over the given vocabulary. A nil vocabulary
// uses the defaults.
func NewParser(vocab *Vocabulary) *Parser {
	if vocab == nil {
		vocab = DefaultVocabulary()
	}
	return &Parser{vocab: vocab}
}

// Parse scans the buffer once, left to right, and returns the ordered
// content blocks seen so far. It never fails: truncated constructs come
// back as partial blocks and unknown tags stay part of the surrounding
// text.
//
// The scan runs in one of three phases. Outside any tool it looks for a
// registered opening tool tag. Inside a tool it looks for an opening
// parameter tag or the tool's closing tag. Inside a parameter it looks
// only for that parameter's closing tag. Closing tags are recognized by a
// zero-copy suffix comparison ending at the current position.
func (p *Parser) Parse(buf string) []ContentBlock {
	var blocks []ContentBlock

	var (
		tool         *ToolUse
		toolClose    string
		param        ParamName
		paramClose   string
		paramStart   int
		inParam      bool
		textStart    int
	)

	for i := 0; i < len(buf); i++ {
		if tool != nil && inParam {
			// Inside a parameter: only its closing tag matters.
			if hasSuffixAt(buf, i, paramClose) {
				tool.Params[param] = buf[paramStart : i+1-len(paramClose)]
				inParam = false
			}
			continue
		}

		if tool != nil {
			// Inside a tool: closing tag ends the tool, a registered
			// parameter tag opens a parameter. Anything else, including
			// another tool-opening tag, is inert.
			if hasSuffixAt(buf, i, toolClose) {
				finalizeToolUse(tool)
				tool.Partial = false
				blocks = append(blocks, tool)
				tool = nil
				textStart = i + 1
				continue
			}
			if name, _, ok := p.vocab.paramOpenEndingAt(buf, i); ok {
				param = name
				paramClose = closingTag(string(name))
				paramStart = i + 1
				inParam = true
			}
			continue
		}

		// Outside any tool: look for an opening tool tag.
		if name, tagLen, ok := p.vocab.toolOpenEndingAt(buf, i); ok {
			if text := strings.TrimSpace(buf[textStart : i+1-tagLen]); text != "" {
				blocks = append(blocks, &TextContent{Text: text})
			}
			tool = &ToolUse{
				Name:    name,
				Params:  make(map[ParamName]string),
				Partial: true,
			}
			toolClose = closingTag(string(name))
		}
	}

	if tool != nil {
		// Stream ended mid-tool. A parameter that is still open is not
		// added to the params map; its value surfaces once the closing
		// tag arrives in a later, longer buffer.
		blocks = append(blocks, tool)
		return blocks
	}

	if text := strings.TrimSpace(buf[textStart:]); text != "" {
		blocks = append(blocks, &TextContent{Text: text})
	}
	return blocks
}

// hasSuffixAt reports whether tag ends exactly at byte index i (inclusive)
// without allocating a substring.
func hasSuffixAt(buf string, i int, tag string) bool {
	start := i + 1 - len(tag)
	return start >= 0 && buf[start:i+1] == tag
}
