package engine

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/restitch/restitch/internal/config"
	"github.com/restitch/restitch/internal/tools"
	"github.com/restitch/restitch/internal/ui"
)

func testEngine(t *testing.T) (*Engine, *config.Config, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Workspace.Root = t.TempDir()
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}

	var stdout, stderr bytes.Buffer
	writer := ui.NewWriter()
	writer.SetOutputs(&stdout, &stderr)

	log, err := NewLogger("", false)
	if err != nil {
		t.Fatal(err)
	}

	return New(cfg, tools.SetupRegistry(cfg), writer, log), cfg, &stdout, &stderr
}

func TestEngineRunWritesAndEdits(t *testing.T) {
	e, cfg, stdout, _ := testEngine(t)

	transcript := "Creating the file.\n" +
		"<write_to_file>\n<path>hello.txt</path>\n<content>first\nsecond</content>\n</write_to_file>\n" +
		"Now fixing the first line.\n" +
		"<replace_in_file>\n<path>hello.txt</path>\n<diff>\n" +
		"<<<<<<< SEARCH\nfirst\n=======\nFIRST\n>>>>>>> REPLACE\n" +
		"</diff>\n</replace_in_file>\n" +
		"Done."

	err := e.Run(context.Background(), strings.NewReader(transcript), 7, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(cfg.Workspace.Root, "hello.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "FIRST\nsecond\n" {
		t.Errorf("file = %q, want %q", data, "FIRST\nsecond\n")
	}

	out := stdout.String()
	for _, want := range []string{"Creating the file.", "write_to_file", "replace_in_file", "Done."} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestEngineCompletedBlocksHandledOnce(t *testing.T) {
	e, _, stdout, _ := testEngine(t)
	ctx := context.Background()

	// Feed the same logical content split across many calls; the text
	// block must render exactly once no matter how often we re-parse.
	full := "Hello there.\n<read_file>\n<path>x.txt</path>\n</read_file>\ntrailing"
	for i := 1; i <= len(full); i++ {
		if err := e.Feed(ctx, full[i-1:i]); err != nil {
			t.Fatalf("Feed at %d: %v", i, err)
		}
	}
	if err := e.Finish(ctx); err != nil {
		t.Fatalf("Finish: %v", err)
	}

	if got := strings.Count(stdout.String(), "Hello there."); got != 1 {
		t.Errorf("text block rendered %d times, want 1", got)
	}
	if got := strings.Count(stdout.String(), "trailing"); got != 1 {
		t.Errorf("trailing text rendered %d times, want 1", got)
	}
}

func TestEnginePartialToolAtEndNotExecuted(t *testing.T) {
	e, cfg, _, stderr := testEngine(t)
	ctx := context.Background()

	if err := e.Feed(ctx, "<write_to_file>\n<path>orphan.txt</path>\n<content>nope"); err != nil {
		t.Fatal(err)
	}
	if err := e.Finish(ctx); err != nil {
		t.Fatal(err)
	}

	if _, err := os.Stat(filepath.Join(cfg.Workspace.Root, "orphan.txt")); !os.IsNotExist(err) {
		t.Error("partial tool use must not execute")
	}
	if !strings.Contains(stderr.String(), "write_to_file") {
		t.Errorf("stderr = %q, want incomplete-tool warning", stderr.String())
	}
}

func TestEngineUnhandledToolWarns(t *testing.T) {
	e, _, _, stderr := testEngine(t)
	ctx := context.Background()

	err := e.Run(ctx, strings.NewReader("<execute_command><command>ls</command></execute_command>"), 16, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.Contains(stderr.String(), "no handler") {
		t.Errorf("stderr = %q, want no-handler warning", stderr.String())
	}
}
