package tools

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/restitch/restitch/internal/config"
)

// Workspace resolves model-supplied paths against the configured root.
type Workspace struct {
	Root         string
	AllowOutside bool
}

// NewWorkspace builds a Workspace from config.
func NewWorkspace(cfg *config.Config) *Workspace {
	return &Workspace{
		Root:         cfg.Workspace.Root,
		AllowOutside: cfg.Workspace.AllowOutsideWorkspace,
	}
}

// Resolve normalizes a path and enforces workspace containment. Relative
// paths are joined to the workspace root; "~/" expands to the home
// directory.
func (w *Workspace) Resolve(path string) (string, error) {
	if path == "" {
		return "", SemanticError("path parameter is required")
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", RuntimeErrorf("expand home directory: %v", err)
		}
		path = filepath.Join(home, path[2:])
	}

	var abs string
	if filepath.IsAbs(path) {
		abs = path
	} else {
		abs = filepath.Join(w.Root, path)
	}
	abs = filepath.Clean(abs)

	rel, err := filepath.Rel(filepath.Clean(w.Root), abs)
	if err != nil {
		return "", RuntimeErrorf("invalid path: %v", err)
	}
	if strings.HasPrefix(rel, "..") && !w.AllowOutside {
		return "", SemanticErrorf("path %q is outside the workspace", path)
	}
	return abs, nil
}

// readFileCapped reads a file, refusing anything above maxKB.
func readFileCapped(fullPath string, maxKB int) (string, error) {
	info, err := os.Stat(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", RuntimeErrorf("file not found: %s", fullPath)
		}
		return "", RuntimeErrorf("stat file: %v", err)
	}
	if info.IsDir() {
		return "", SemanticErrorf("%s is a directory", fullPath)
	}
	if maxKB > 0 && info.Size() > int64(maxKB)*1024 {
		return "", RuntimeErrorf("file too large: %d KB (limit %d KB)", info.Size()/1024, maxKB)
	}

	data, err := os.ReadFile(fullPath)
	if err != nil {
		return "", RuntimeErrorf("read file: %v", err)
	}
	return string(data), nil
}

// writeFileAtomic writes content via temp file + rename, creating parent
// directories as needed and preserving an existing file's permissions.
func writeFileAtomic(fullPath, content string) error {
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return fmt.Errorf("create parent directory: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(fullPath), ".restitch-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tempPath := tempFile.Name()
	defer os.Remove(tempPath) // no-op after a successful rename

	if _, err := tempFile.WriteString(content); err != nil {
		tempFile.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if info, statErr := os.Stat(fullPath); statErr == nil {
		_ = os.Chmod(tempPath, info.Mode())
	} else {
		_ = os.Chmod(tempPath, 0o644)
	}

	if err := os.Rename(tempPath, fullPath); err != nil {
		return fmt.Errorf("atomic rename: %w", err)
	}
	return nil
}

// unifiedDiff renders a unified diff between two versions of a file.
func unifiedDiff(oldContent, newContent, filename string) (string, error) {
	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(oldContent),
		B:        difflib.SplitLines(newContent),
		FromFile: filename,
		ToFile:   filename,
		Context:  3,
	}
	return difflib.GetUnifiedDiffString(diff)
}
