package tools

import (
	"context"

	"github.com/restitch/restitch/internal/assistant"
	"github.com/restitch/restitch/internal/config"
)

// ReadFileTool returns a file's contents.
type ReadFileTool struct {
	ws    *Workspace
	maxKB int
}

// NewReadFileTool creates a read_file handler.
func NewReadFileTool(cfg *config.Config) *ReadFileTool {
	return &ReadFileTool{
		ws:    NewWorkspace(cfg),
		maxKB: cfg.Tools.Read.MaxFileSizeKB,
	}
}

func (t *ReadFileTool) Name() assistant.ToolName {
	return assistant.ToolReadFile
}

func (t *ReadFileTool) Description() string {
	return "Read a file's contents from the workspace."
}

func (t *ReadFileTool) Check(ctx context.Context, params Params) error {
	_, err := t.ws.Resolve(params[assistant.ParamPath])
	return err
}

func (t *ReadFileTool) Call(ctx context.Context, params Params) (any, error) {
	fullPath, err := t.ws.Resolve(params[assistant.ParamPath])
	if err != nil {
		return nil, err
	}

	content, err := readFileCapped(fullPath, t.maxKB)
	if err != nil {
		return nil, err
	}

	return map[string]any{
		"success": true,
		"path":    params[assistant.ParamPath],
		"content": content,
	}, nil
}
