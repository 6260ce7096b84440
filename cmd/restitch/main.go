package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/eiannone/keyboard"

	"github.com/restitch/restitch/internal/config"
	"github.com/restitch/restitch/internal/construct"
	"github.com/restitch/restitch/internal/engine"
	"github.com/restitch/restitch/internal/matcher"
	"github.com/restitch/restitch/internal/tools"
	"github.com/restitch/restitch/internal/ui"
)

// Version info set by ldflags at build time
var (
	version    = "dev"
	commitHash = "dev"
	commitDate = "unknown"
)

func main() {
	configPath := flag.String("config", "", "path to config file (default: restitch.yaml if present)")
	logFile := flag.String("log", "", "log file path (empty to disable)")
	jsonOutput := flag.Bool("json", false, "emit events as a JSON array instead of colored text")
	quiet := flag.Bool("quiet", false, "suppress everything except errors")
	showVersion := flag.Bool("version", false, "show version information and exit")

	// Replay flags
	chunkSize := flag.Int("chunk", 0, "replay chunk size in bytes (0: from config)")
	delayMs := flag.Int("delay", -1, "delay between chunks in milliseconds (-1: from config)")
	step := flag.Bool("step", false, "pause after each chunk and wait for a keypress")

	// Direct diff application (no transcript)
	diffPath := flag.String("diff", "", "apply a SEARCH/REPLACE diff file to -target and exit")
	targetPath := flag.String("target", "", "target file for -diff")
	writeBack := flag.Bool("write", false, "with -diff: write the result back instead of printing it")
	exactOnly := flag.Bool("exact", false, "with -diff: disable line-trimmed and block-anchor fallbacks")

	flag.Parse()

	if *showVersion {
		fmt.Printf("%s-%s-%s\n", version, commitDate, commitHash)
		return
	}

	if *diffPath != "" {
		if err := applyDiff(*diffPath, *targetPath, *writeBack, *exactOnly); err != nil {
			log.Fatalf("Failed to apply diff: %v", err)
		}
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *chunkSize > 0 {
		cfg.Replay.ChunkSize = *chunkSize
	}
	if *delayMs >= 0 {
		cfg.Replay.DelayMs = *delayMs
	}

	writer := ui.NewWriter()
	writer.SetQuiet(*quiet)
	writer.SetJSONMode(*jsonOutput)

	logPath := *logFile
	if logPath == "" {
		logPath = cfg.Log.Path
	}
	logger, err := engine.NewLogger(logPath, cfg.Log.Development)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Close()

	transcript, err := openTranscript(flag.Arg(0))
	if err != nil {
		log.Fatalf("Failed to open transcript: %v", err)
	}
	defer transcript.Close()

	pace, closePacer, err := makePacer(*step, cfg.Replay.DelayMs)
	if err != nil {
		log.Fatalf("Failed to set up stepping: %v", err)
	}
	defer closePacer()

	eng := engine.New(cfg, tools.SetupRegistry(cfg), writer, logger)
	if err := eng.Run(context.Background(), transcript, cfg.Replay.ChunkSize, pace); err != nil {
		if errors.Is(err, errStepAborted) {
			writer.Warnf("replay aborted")
		} else {
			log.Fatalf("Replay failed: %v", err)
		}
	}

	if err := writer.FlushJSON(); err != nil {
		log.Fatalf("Failed to emit JSON output: %v", err)
	}
}

// openTranscript returns the transcript source: the named file, or stdin
// when no argument is given or the argument is "-".
func openTranscript(path string) (io.ReadCloser, error) {
	if path == "" || path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(path)
}

var errStepAborted = errors.New("step aborted")

// makePacer builds the between-chunk pacing function. In step mode it
// blocks on a keypress (q or Esc aborts); otherwise it sleeps for the
// configured delay.
func makePacer(step bool, delayMs int) (func() error, func(), error) {
	if !step {
		delay := time.Duration(delayMs) * time.Millisecond
		pace := func() error {
			time.Sleep(delay)
			return nil
		}
		return pace, func() {}, nil
	}

	if err := keyboard.Open(); err != nil {
		return nil, nil, err
	}
	pace := func() error {
		char, key, err := keyboard.GetKey()
		if err != nil {
			return err
		}
		if char == 'q' || key == keyboard.KeyEsc || key == keyboard.KeyCtrlC {
			return errStepAborted
		}
		return nil
	}
	return pace, func() { _ = keyboard.Close() }, nil
}

// applyDiff runs the constructor directly against a file on disk. Useful
// for inspecting what a diff block would do without a full transcript.
func applyDiff(diffPath, targetPath string, writeBack, exactOnly bool) error {
	if targetPath == "" {
		return errors.New("-diff requires -target")
	}
	diff, err := os.ReadFile(diffPath)
	if err != nil {
		return err
	}
	original, err := os.ReadFile(targetPath)
	if err != nil {
		return err
	}

	c := construct.NewWithMatcher(string(original), matcher.New(exactOnly))
	result, err := c.Apply(string(diff), true)
	if err != nil {
		return err
	}

	if writeBack {
		info, err := os.Stat(targetPath)
		if err != nil {
			return err
		}
		return os.WriteFile(targetPath, []byte(result), info.Mode().Perm())
	}
	_, err = os.Stdout.WriteString(result)
	return err
}
