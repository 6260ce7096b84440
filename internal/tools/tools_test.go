package tools

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/restitch/restitch/internal/assistant"
	"github.com/restitch/restitch/internal/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Workspace.Root = t.TempDir()
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}
	return cfg
}

func writeWorkspaceFile(t *testing.T, cfg *config.Config, name, content string) string {
	t.Helper()
	path := filepath.Join(cfg.Workspace.Root, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestWorkspaceResolve(t *testing.T) {
	cfg := testConfig(t)
	ws := NewWorkspace(cfg)

	full, err := ws.Resolve("sub/file.txt")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if full != filepath.Join(cfg.Workspace.Root, "sub", "file.txt") {
		t.Errorf("resolved to %q", full)
	}

	if _, err := ws.Resolve("../outside.txt"); err == nil {
		t.Error("path escaping the workspace should be rejected")
	}
	if _, err := ws.Resolve(""); err == nil {
		t.Error("empty path should be rejected")
	}

	ws.AllowOutside = true
	if _, err := ws.Resolve("../outside.txt"); err != nil {
		t.Errorf("outside path should resolve when allowed: %v", err)
	}
}

func TestReadFileTool(t *testing.T) {
	cfg := testConfig(t)
	writeWorkspaceFile(t, cfg, "notes.txt", "hello\n")
	tool := NewReadFileTool(cfg)

	result, err := tool.Call(context.Background(), Params{assistant.ParamPath: "notes.txt"})
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	m := result.(map[string]any)
	if m["content"] != "hello\n" {
		t.Errorf("content = %q", m["content"])
	}

	if _, err := tool.Call(context.Background(), Params{assistant.ParamPath: "missing.txt"}); err == nil {
		t.Error("missing file should be a runtime error")
	}
}

func TestReadFileToolSizeCap(t *testing.T) {
	cfg := testConfig(t)
	cfg.Tools.Read.MaxFileSizeKB = 1
	writeWorkspaceFile(t, cfg, "big.txt", strings.Repeat("x", 2048))
	tool := NewReadFileTool(cfg)

	_, err := tool.Call(context.Background(), Params{assistant.ParamPath: "big.txt"})
	if err == nil || !strings.Contains(err.Error(), "too large") {
		t.Errorf("err = %v, want size cap error", err)
	}
}

func TestWriteToFileTool(t *testing.T) {
	cfg := testConfig(t)
	tool := NewWriteToFileTool(cfg)

	params := Params{
		assistant.ParamPath:    "pkg/new.go",
		assistant.ParamContent: "package pkg",
	}
	if err := tool.Check(context.Background(), params); err != nil {
		t.Fatalf("Check: %v", err)
	}
	result, err := tool.Call(context.Background(), params)
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	m := result.(map[string]any)
	if m["created"] != true {
		t.Error("first write should report created=true")
	}

	data, err := os.ReadFile(filepath.Join(cfg.Workspace.Root, "pkg", "new.go"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "package pkg\n" {
		t.Errorf("file content = %q, want trailing newline added", data)
	}

	// Overwrite reports created=false and a non-empty diff.
	params[assistant.ParamContent] = "package pkg2"
	result, err = tool.Call(context.Background(), params)
	if err != nil {
		t.Fatalf("second Call: %v", err)
	}
	m = result.(map[string]any)
	if m["created"] != false {
		t.Error("overwrite should report created=false")
	}
	if diff := m["diff"].(string); !strings.Contains(diff, "-package pkg") {
		t.Errorf("diff = %q, want removal line", diff)
	}
}

func TestWriteToFileToolRequiresContent(t *testing.T) {
	cfg := testConfig(t)
	tool := NewWriteToFileTool(cfg)

	err := tool.Check(context.Background(), Params{assistant.ParamPath: "a.txt"})
	te, ok := err.(*ToolError)
	if !ok || te.Type != ToolErrorSemantic {
		t.Errorf("err = %v, want semantic ToolError", err)
	}
}

func TestReplaceInFileTool(t *testing.T) {
	cfg := testConfig(t)
	full := writeWorkspaceFile(t, cfg, "main.go", "a\nb\nc\n")
	tool := NewReplaceInFileTool(cfg)

	diff := "<<<<<<< SEARCH\nb\n=======\nB\n>>>>>>> REPLACE\n"
	result, err := tool.Call(context.Background(), Params{
		assistant.ParamPath: "main.go",
		assistant.ParamDiff: diff,
	})
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	m := result.(map[string]any)
	if m["success"] != true || m["blocks"] != 1 {
		t.Errorf("result = %v", m)
	}

	data, _ := os.ReadFile(full)
	if string(data) != "a\nB\nc\n" {
		t.Errorf("file = %q, want %q", data, "a\nB\nc\n")
	}
}

func TestReplaceInFileToolUnmatchedSearch(t *testing.T) {
	cfg := testConfig(t)
	full := writeWorkspaceFile(t, cfg, "main.go", "a\nb\n")
	tool := NewReplaceInFileTool(cfg)

	diff := "<<<<<<< SEARCH\nzzz not present\n=======\nx\n>>>>>>> REPLACE\n"
	result, err := tool.Call(context.Background(), Params{
		assistant.ParamPath: "main.go",
		assistant.ParamDiff: diff,
	})
	if err != nil {
		t.Fatalf("unmatched search should be a structured result, got error %v", err)
	}
	m := result.(map[string]any)
	if m["success"] != false || m["error"] != "unmatched_search" {
		t.Errorf("result = %v", m)
	}
	if !strings.Contains(m["search"].(string), "zzz not present") {
		t.Errorf("search = %v, want failing content", m["search"])
	}

	// File untouched.
	data, _ := os.ReadFile(full)
	if string(data) != "a\nb\n" {
		t.Errorf("file changed on failed edit: %q", data)
	}
}

func TestReplaceInFileToolNoChange(t *testing.T) {
	cfg := testConfig(t)
	writeWorkspaceFile(t, cfg, "main.go", "a\nb\n")
	tool := NewReplaceInFileTool(cfg)

	diff := "<<<<<<< SEARCH\nb\n=======\nb\n>>>>>>> REPLACE\n"
	_, err := tool.Call(context.Background(), Params{
		assistant.ParamPath: "main.go",
		assistant.ParamDiff: diff,
	})
	te, ok := err.(*ToolError)
	if !ok || te.Type != ToolErrorSemantic {
		t.Errorf("err = %v, want semantic ToolError for no-op edit", err)
	}
}

func TestSetupRegistry(t *testing.T) {
	cfg := testConfig(t)
	cfg.Tools.Write.Enabled = false

	reg := SetupRegistry(cfg)
	if reg.Get(assistant.ToolWriteToFile) != nil {
		t.Error("disabled tool should not be registered")
	}
	if reg.Get(assistant.ToolReadFile) == nil || reg.Get(assistant.ToolReplaceInFile) == nil {
		t.Error("enabled tools missing from registry")
	}
	names := reg.Names()
	if len(names) != 2 {
		t.Errorf("names = %v, want 2 entries", names)
	}
}
