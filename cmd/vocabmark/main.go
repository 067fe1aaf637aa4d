package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"golang.org/x/net/html"
	"golang.org/x/term"

	"github.com/vocabmark/vocabmark/internal/config"
	"github.com/vocabmark/vocabmark/internal/engine"
	"github.com/vocabmark/vocabmark/internal/fetch"
	"github.com/vocabmark/vocabmark/internal/highlight"
	"github.com/vocabmark/vocabmark/internal/notes"
	"github.com/vocabmark/vocabmark/internal/onboard"
	"github.com/vocabmark/vocabmark/internal/tui"
	"github.com/vocabmark/vocabmark/internal/update"
)

var version = "dev"

func main() {
	_ = godotenv.Load()

	// Parse --pipe [target] and --action <name> from args
	var pipeMode bool
	var pipeTarget string
	action := engine.ActionHighlight.String()
	filteredArgs := []string{os.Args[0]}
	for i := 1; i < len(os.Args); i++ {
		switch {
		case os.Args[i] == "--pipe":
			pipeMode = true
			if i+1 < len(os.Args) && !strings.HasPrefix(os.Args[i+1], "--") {
				pipeTarget = os.Args[i+1]
				i++
			}
		case os.Args[i] == "--action" && i+1 < len(os.Args):
			action = os.Args[i+1]
			i++
		default:
			filteredArgs = append(filteredArgs, os.Args[i])
		}
	}
	os.Args = filteredArgs

	if !pipeMode && len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v":
			fmt.Printf("vocabmark %s\n", version)
			return
		case "--help", "-h":
			printHelp()
			return
		case "--uninstall":
			runUninstall()
			return
		case "--update":
			runUpdate()
			return
		}
	}

	if pipeMode {
		if err := runPipe(pipeTarget, action); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	var target string
	if len(os.Args) > 1 {
		target = os.Args[1]
	}
	if err := run(target); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(target string) error {
	// First run: onboarding
	if config.IsFirstRun() {
		if _, err := onboard.NewRunner().Run(); err != nil {
			return err
		}
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger, closeLog := setupLogging(cfg)
	defer closeLog()
	logger.Info("startup", "version", version, "backend", cfg.Store.Backend)

	store, err := notes.Open(cfg.Store.Backend, cfg.StoreDir())
	if err != nil {
		return fmt.Errorf("opening note store: %w", err)
	}
	defer store.Close()

	endpoint := cfg.LookupEndpoint()
	tuiModel := tui.New(tui.Options{
		Store:          store,
		Engine:         engine.New(store, engine.WithLookupEndpoint(endpoint), engine.WithLogger(logger)),
		Fetcher:        fetch.New(cfg.FetchTimeout(), cfg.Fetch.MaxBodyBytes),
		LookupEndpoint: endpoint,
		Theme:          cfg.TUI.Theme,
		Target:         target,
		Version:        version,
		Logger:         logger,
	})

	p := tea.NewProgram(tuiModel, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

func runPipe(target, actionName string) error {
	action, err := engine.ParseAction(actionName)
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger, closeLog := setupLogging(cfg)
	defer closeLog()

	store, err := notes.Open(cfg.Store.Backend, cfg.StoreDir())
	if err != nil {
		return fmt.Errorf("opening note store: %w", err)
	}
	defer store.Close()

	ctx := context.Background()
	doc, err := loadPipeInput(ctx, fetch.New(cfg.FetchTimeout(), cfg.Fetch.MaxBodyBytes), target)
	if err != nil {
		if errors.Is(err, fetch.ErrRestricted) {
			return errors.New("cannot perform this action on a restricted page")
		}
		return err
	}

	eng := engine.New(store, engine.WithLookupEndpoint(cfg.LookupEndpoint()), engine.WithLogger(logger))
	if _, err := eng.Dispatch(ctx, doc, action); err != nil {
		return fmt.Errorf("%s: %w", action, err)
	}

	return highlight.Render(os.Stdout, doc)
}

// loadPipeInput reads the page from target, or from stdin when target is
// empty or "-".
func loadPipeInput(ctx context.Context, fetcher *fetch.Client, target string) (*html.Node, error) {
	if target != "" && target != "-" {
		page, err := fetcher.Load(ctx, target)
		if err != nil {
			return nil, err
		}
		return page.Doc, nil
	}
	if term.IsTerminal(int(os.Stdin.Fd())) {
		return nil, fmt.Errorf("no page provided: pass a URL or file, or pipe HTML to stdin")
	}
	return highlight.Parse(io.LimitReader(os.Stdin, fetch.MaxBodySize))
}

// setupLogging sends structured logs to the log file; the terminal belongs
// to the TUI or to pipe output.
func setupLogging(cfg config.Config) (*slog.Logger, func()) {
	raw := os.Getenv("VOCABMARK_LOG_LEVEL")
	if raw == "" {
		raw = cfg.Log.Level
	}
	level := parseLogLevel(raw)

	path := cfg.LogPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return slog.New(slog.NewJSONHandler(io.Discard, nil)), func() {}
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return slog.New(slog.NewJSONHandler(io.Discard, nil)), func() {}
	}
	logger := slog.New(slog.NewJSONHandler(file, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger, func() { file.Close() }
}

func parseLogLevel(raw string) slog.Leveler {
	level := new(slog.LevelVar)
	level.Set(slog.LevelInfo)
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		level.Set(slog.LevelDebug)
	case "info":
		level.Set(slog.LevelInfo)
	case "warn", "warning":
		level.Set(slog.LevelWarn)
	case "error":
		level.Set(slog.LevelError)
	}
	return level
}

func runUpdate() {
	if version == "dev" {
		fmt.Println("Auto-update is not available for development builds.")
		return
	}
	fmt.Println("Checking for updates...")
	res, err := update.Apply(context.Background(), version)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Update failed: %v\n", err)
		os.Exit(1)
	}
	if res.Applied {
		fmt.Printf("Updated to v%s. Restart vocabmark to use the new version.\n", res.LatestVersion)
	} else {
		fmt.Println("Already running the latest version.")
	}
}

func runUninstall() {
	configDir := config.Dir()
	fmt.Println("Vocabmark Uninstall")
	fmt.Println("===================")
	fmt.Println("")
	fmt.Println("This will remove all vocabmark data, including your notes:")
	fmt.Printf("  Config & data: %s\n", configDir)
	fmt.Println("")
	fmt.Print("Are you sure? (y/N) ")

	var answer string
	fmt.Scanln(&answer)
	if answer != "y" && answer != "Y" {
		fmt.Println("Cancelled.")
		return
	}

	if err := os.RemoveAll(configDir); err != nil {
		fmt.Fprintf(os.Stderr, "Error removing %s: %v\n", configDir, err)
		os.Exit(1)
	}
	fmt.Printf("Removed %s\n", configDir)

	exe, err := os.Executable()
	if err == nil {
		fmt.Printf("\nTo complete removal, delete the binary:\n  rm %s\n", exe)
	}
	fmt.Println("\nVocabmark has been uninstalled.")
}

func printHelp() {
	fmt.Printf(`vocabmark %s - highlight your vocabulary on any page

Usage:
  vocabmark [url|file]                     Start the TUI, optionally opening a page
  vocabmark --pipe <url|file|->            Print the page with your words highlighted
  vocabmark --pipe <url|file> --action remove
                                           Print the page with all highlights removed
  vocabmark --version                      Print version and exit
  vocabmark --help                         Show this help
  vocabmark --update                       Update to the latest version
  vocabmark --uninstall                    Remove all vocabmark data from your system

Slash commands (in TUI):
  Type a word and press Enter to save it as a note.
  /open <url|file>     Load a page and highlight it
  /apply, /remove      Highlight again, or strip all highlights
  /notes, /find <kw>   List or search notes
  /delete <id>         Delete a note (asks first)
  /color [color]       Show or set the highlight color
  /define <word|id>    Print the dictionary link
  /save <path>         Write the current page as HTML
  /update              Check for updates and upgrade
  /help, /quit         Help and exit

Configuration:
  Config is stored in %s
  Override with VOCABMARK_CONFIG_DIR environment variable.
  A .env file in the working directory is loaded first.
  VOCABMARK_LOG_LEVEL overrides log.level (debug, info, warn, error).

Examples:
  vocabmark https://en.wikipedia.org/wiki/Fox
  curl -s https://example.com | vocabmark --pipe - > marked.html
  vocabmark --pipe marked.html --action remove > clean.html
`, version, config.Dir())
}
