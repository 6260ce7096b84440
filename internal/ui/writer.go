// Package ui renders parsed content blocks and tool results to the
// terminal.
package ui

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/restitch/restitch/internal/assistant"
)

// Color definitions for consistent output
var (
	grayColor  = color.New(color.FgWhite, color.Faint)
	whiteColor = color.New(color.FgWhite)
	toolColor  = color.New(color.FgCyan)
	errorColor = color.New(color.FgRed)
	warnColor  = color.New(color.FgYellow)
	addColor   = color.New(color.FgGreen)
	delColor   = color.New(color.FgRed)
)

// jsonEvent is one entry in --json output.
type jsonEvent struct {
	Type   string            `json:"type"` // "text", "tool", "error"
	Text   string            `json:"text,omitempty"`
	ID     string            `json:"id,omitempty"`
	Tool   string            `json:"tool,omitempty"`
	Params map[string]string `json:"params,omitempty"`
	Result map[string]any    `json:"result,omitempty"`
	Error  string            `json:"error,omitempty"`
}

// Writer provides formatted output with consistent prefixes and optional
// colors. In JSON mode, events accumulate and FlushJSON emits them as one
// array.
type Writer struct {
	quiet    bool
	jsonMode bool
	stdout   io.Writer
	stderr   io.Writer
	events   []jsonEvent
}

// NewWriter creates a Writer targeting stdout/stderr.
func NewWriter() *Writer {
	return &Writer{stdout: os.Stdout, stderr: os.Stderr}
}

// SetQuiet suppresses everything except errors and JSON output.
func (w *Writer) SetQuiet(quiet bool) { w.quiet = quiet }

// SetJSONMode switches to structured output.
func (w *Writer) SetJSONMode(jsonMode bool) { w.jsonMode = jsonMode }

// Text renders an assistant text block.
func (w *Writer) Text(text string) {
	if w.jsonMode {
		w.events = append(w.events, jsonEvent{Type: "text", Text: text})
		return
	}
	if w.quiet {
		return
	}
	whiteColor.Fprintln(w.stdout, text)
}

// ToolCall renders a dispatched tool invocation header.
func (w *Writer) ToolCall(id string, name assistant.ToolName, params map[assistant.ParamName]string) {
	if w.jsonMode {
		flat := make(map[string]string, len(params))
		for k, v := range params {
			flat[string(k)] = v
		}
		w.events = append(w.events, jsonEvent{Type: "tool", ID: id, Tool: string(name), Params: flat})
		return
	}
	if w.quiet {
		return
	}
	summary := ""
	if path, ok := params[assistant.ParamPath]; ok {
		summary = " " + path
	}
	toolColor.Fprintf(w.stdout, "[%s] %s%s\n", id, name, summary)
}

// ToolResult renders a tool's structured result. Unified diffs in the
// result get per-line coloring.
func (w *Writer) ToolResult(result map[string]any) {
	if w.jsonMode {
		w.events = append(w.events, jsonEvent{Type: "tool", Result: result})
		return
	}
	if w.quiet {
		return
	}

	if success, ok := result["success"].(bool); ok && !success {
		if msg, ok := result["message"].(string); ok {
			warnColor.Fprintf(w.stdout, "  failed: %s\n", msg)
		} else {
			warnColor.Fprintln(w.stdout, "  failed")
		}
		return
	}
	if diff, ok := result["diff"].(string); ok && diff != "" {
		w.Diff(diff)
	}
}

// Diff prints a unified diff with added/removed line coloring.
func (w *Writer) Diff(diff string) {
	if w.quiet || w.jsonMode {
		return
	}
	for _, line := range strings.Split(strings.TrimRight(diff, "\n"), "\n") {
		switch {
		case strings.HasPrefix(line, "+"):
			addColor.Fprintln(w.stdout, line)
		case strings.HasPrefix(line, "-"):
			delColor.Fprintln(w.stdout, line)
		default:
			grayColor.Fprintln(w.stdout, line)
		}
	}
}

// Errorf reports an error to stderr.
func (w *Writer) Errorf(format string, args ...any) {
	if w.jsonMode {
		w.events = append(w.events, jsonEvent{Type: "error", Error: fmt.Sprintf(format, args...)})
		return
	}
	errorColor.Fprintf(w.stderr, "[error] "+format+"\n", args...)
}

// Warnf reports a warning to stderr.
func (w *Writer) Warnf(format string, args ...any) {
	if w.jsonMode || w.quiet {
		return
	}
	warnColor.Fprintf(w.stderr, "[warn] "+format+"\n", args...)
}

// FlushJSON emits the accumulated events as a JSON array. No-op outside
// JSON mode.
func (w *Writer) FlushJSON() error {
	if !w.jsonMode {
		return nil
	}
	enc := json.NewEncoder(w.stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(w.events)
}

// SetOutputs redirects output streams; used by tests.
func (w *Writer) SetOutputs(stdout, stderr io.Writer) {
	w.stdout = stdout
	w.stderr = stderr
}
