package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/restitch/restitch/internal/assistant"
	"github.com/restitch/restitch/internal/config"
	"github.com/restitch/restitch/internal/tui"
)

// Version info set by ldflags at build time
var (
	version    = "dev"
	commitHash = "dev"
	commitDate = "unknown"
)

func main() {
	configPath := flag.String("config", "", "path to config file (default: restitch.yaml if present)")
	chunkSize := flag.Int("chunk", 0, "replay chunk size in bytes (0: from config)")
	delayMs := flag.Int("delay", -1, "autoplay delay between chunks in milliseconds (-1: from config)")
	showVersion := flag.Bool("version", false, "show version information and exit")

	flag.Parse()

	if *showVersion {
		fmt.Printf("%s-%s-%s\n", version, commitDate, commitHash)
		return
	}

	// The viewer owns the terminal, so the transcript must be a file.
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: restitch-ui [options] <transcript-file>")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Options:")
		flag.PrintDefaults()
		os.Exit(1)
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

	transcript, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		log.Fatalf("Failed to read transcript: %v", err)
	}

	vocab := assistant.ExtendedVocabulary(cfg.Parser.ExtraTools, cfg.Parser.ExtraParams)
	model := tui.New(tui.Options{
		Transcript: string(transcript),
		ChunkSize:  cfg.Replay.ChunkSize,
		Delay:      time.Duration(cfg.Replay.DelayMs) * time.Millisecond,
		Parser:     assistant.NewParser(vocab),
	})

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Fatalf("UI error: %v", err)
	}
}
