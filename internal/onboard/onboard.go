package onboard

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/vocabmark/vocabmark/internal/config"
	"github.com/vocabmark/vocabmark/internal/notes"
)

// Result holds the outcome of the onboarding flow.
type Result struct {
	Config config.Config
	Color  string
}

// Runner encapsulates onboarding dependencies for testability.
type Runner struct {
	Stdin  io.Reader
	Stdout io.Writer
}

// NewRunner creates a Runner with default stdin/stdout.
func NewRunner() *Runner {
	return &Runner{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
	}
}

var backends = []string{config.BackendJSON, config.BackendSQLite}

// Run executes the first-run onboarding flow.
func (r *Runner) Run() (*Result, error) {
	w := r.Stdout
	scanner := bufio.NewScanner(r.Stdin)
	ask := func() string {
		if scanner.Scan() {
			return strings.TrimSpace(scanner.Text())
		}
		return ""
	}

	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  Welcome to vocabmark!")
	fmt.Fprintln(w, "  Save words as notes and they light up on every page you open.")
	fmt.Fprintln(w, "")

	// Step 1: Highlight color
	fmt.Fprintf(w, "  Highlight color (hex, rgb(), hsl() or a name) [%s]: ", notes.DefaultHighlightColor)
	color := notes.DefaultHighlightColor
	if choice := ask(); choice != "" {
		normalized, err := notes.NormalizeColor(choice)
		if err != nil {
			fmt.Fprintf(w, "  %q is not a color, keeping %s.\n", choice, color)
		} else {
			color = normalized
		}
	}

	// Step 2: Store backend
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  Where should notes be kept?")
	fmt.Fprintln(w, "  * 1) json    a single store.json file")
	fmt.Fprintln(w, "    2) sqlite  a store.sqlite database")
	fmt.Fprintf(w, "  Select a backend [%s]: ", config.BackendJSON)
	backend := config.BackendJSON
	if choice := strings.ToLower(ask()); choice != "" {
		found := false
		for i, name := range backends {
			if choice == name || choice == fmt.Sprintf("%d", i+1) {
				backend = name
				found = true
				break
			}
		}
		if !found {
			fmt.Fprintf(w, "  Unknown backend %q, using %s.\n", choice, backend)
		}
	}

	// Step 3: Lookup language
	detectedLang := config.DetectLanguage()
	fmt.Fprintf(w, "  Dictionary language? [%s] ", detectedLang)
	language := ask()
	if language == "" {
		language = detectedLang
	}

	cfg := config.Defaults()
	cfg.Store.Backend = backend
	cfg.Lookup.Language = language

	// Step 4: Create the store and persist the color
	fmt.Fprint(w, "  Creating note store... ")
	store, err := notes.Open(cfg.Store.Backend, cfg.StoreDir())
	if err != nil {
		fmt.Fprintln(w, "failed.")
		return nil, fmt.Errorf("opening store: %w", err)
	}
	defer store.Close()
	if err := store.SetHighlightColor(color); err != nil {
		fmt.Fprintln(w, "failed.")
		return nil, fmt.Errorf("saving highlight color: %w", err)
	}
	fmt.Fprintln(w, "done.")
	fmt.Fprintf(w, "  Data: %s\n", cfg.StoreDir())

	// Step 5: Save config
	if err := config.Save(cfg); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  Setup complete!")
	fmt.Fprintln(w, "  Starting vocabmark...")

	return &Result{
		Config: cfg,
		Color:  color,
	}, nil
}
