package tools

import (
	"context"
	"os"
	"strings"

	"github.com/restitch/restitch/internal/assistant"
	"github.com/restitch/restitch/internal/config"
)

// WriteToFileTool writes a complete file. The parser has already applied
// trailing-newline normalization to the content parameter.
type WriteToFileTool struct {
	ws *Workspace
}

// NewWriteToFileTool creates a write_to_file handler.
func NewWriteToFileTool(cfg *config.Config) *WriteToFileTool {
	return &WriteToFileTool{ws: NewWorkspace(cfg)}
}

func (t *WriteToFileTool) Name() assistant.ToolName {
	return assistant.ToolWriteToFile
}

func (t *WriteToFileTool) Description() string {
	return "Write a complete file, creating it and any parent directories if needed."
}

func (t *WriteToFileTool) Check(ctx context.Context, params Params) error {
	if _, ok := params[assistant.ParamContent]; !ok {
		return SemanticError("content parameter is required")
	}
	_, err := t.ws.Resolve(params[assistant.ParamPath])
	return err
}

func (t *WriteToFileTool) Call(ctx context.Context, params Params) (any, error) {
	fullPath, err := t.ws.Resolve(params[assistant.ParamPath])
	if err != nil {
		return nil, err
	}

	content := params[assistant.ParamContent]
	if content != "" && !strings.HasSuffix(content, "\n") {
		content += "\n"
	}

	var oldContent string
	created := true
	if data, readErr := os.ReadFile(fullPath); readErr == nil {
		oldContent = string(data)
		created = false
	}

	if err := writeFileAtomic(fullPath, content); err != nil {
		return nil, RuntimeErrorf("write %s: %v", params[assistant.ParamPath], err)
	}

	diff, err := unifiedDiff(oldContent, content, params[assistant.ParamPath])
	if err != nil {
		return nil, RuntimeErrorf("generate diff: %v", err)
	}

	return map[string]any{
		"success": true,
		"path":    params[assistant.ParamPath],
		"created": created,
		"diff":    diff,
	}, nil
}
