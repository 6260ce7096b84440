package tools

import (
	"context"
	"errors"
	"strings"

	"github.com/restitch/restitch/internal/assistant"
	"github.com/restitch/restitch/internal/config"
	"github.com/restitch/restitch/internal/construct"
	"github.com/restitch/restitch/internal/matcher"
)

// ReplaceInFileTool applies a SEARCH/REPLACE diff to an existing file.
type ReplaceInFileTool struct {
	ws    *Workspace
	maxKB int
	match *matcher.Matcher
}

// NewReplaceInFileTool creates a replace_in_file handler.
func NewReplaceInFileTool(cfg *config.Config) *ReplaceInFileTool {
	return &ReplaceInFileTool{
		ws:    NewWorkspace(cfg),
		maxKB: cfg.Tools.Read.MaxFileSizeKB,
		match: matcher.New(cfg.Matcher.ExactOnly),
	}
}

func (t *ReplaceInFileTool) Name() assistant.ToolName {
	return assistant.ToolReplaceInFile
}

func (t *ReplaceInFileTool) Description() string {
	return "Edit an existing file by applying SEARCH/REPLACE blocks."
}

func (t *ReplaceInFileTool) Check(ctx context.Context, params Params) error {
	if strings.TrimSpace(params[assistant.ParamDiff]) == "" {
		return SemanticError("diff parameter is required")
	}
	_, err := t.ws.Resolve(params[assistant.ParamPath])
	return err
}

func (t *ReplaceInFileTool) Call(ctx context.Context, params Params) (any, error) {
	path := params[assistant.ParamPath]
	fullPath, err := t.ws.Resolve(path)
	if err != nil {
		return nil, err
	}

	original, err := readFileCapped(fullPath, t.maxKB)
	if err != nil {
		return nil, err
	}

	c := construct.NewWithMatcher(original, t.match)
	newContent, err := c.Apply(params[assistant.ParamDiff], true)
	if err != nil {
		// An unmatched search aborts this edit only; the model gets the
		// failing content and a hint and can retry.
		var unmatched *construct.UnmatchedSearchError
		if errors.As(err, &unmatched) {
			result := map[string]any{
				"success":   false,
				"error":     "unmatched_search",
				"path":      path,
				"search":    unmatched.Search,
				"diff_line": unmatched.Line,
				"message":   unmatched.Error(),
				"hint":      "Use read_file to see the exact file content, then copy the text to replace verbatim.",
			}
			if unmatched.SimilarLine > 0 {
				result["similar_at_line"] = unmatched.SimilarLine
				result["similar_text"] = strings.TrimSpace(unmatched.Similar)
			}
			return result, nil
		}
		var transition *construct.StateTransitionError
		if errors.As(err, &transition) {
			return nil, SemanticErrorWithDetails(transition.Error(), map[string]any{
				"error":     "malformed_diff",
				"path":      path,
				"diff_line": transition.Line,
			})
		}
		return nil, RuntimeErrorf("apply diff: %v", err)
	}

	if newContent == original {
		return nil, SemanticError("diff produced no change to the file")
	}

	if err := writeFileAtomic(fullPath, newContent); err != nil {
		return nil, RuntimeErrorf("write %s: %v", path, err)
	}

	diff, err := unifiedDiff(original, newContent, path)
	if err != nil {
		return nil, RuntimeErrorf("generate diff: %v", err)
	}

	result := map[string]any{
		"success": true,
		"path":    path,
		"blocks":  len(c.Replacements()),
		"diff":    diff,
	}
	if c.Recovered() > 0 {
		result["recovered_markers"] = c.Recovered()
	}
	return result, nil
}
