// Package engine applies and removes vocabulary highlights on a document,
// reading notes and the highlight color from the note store.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/net/html"

	"github.com/vocabmark/vocabmark/internal/highlight"
	"github.com/vocabmark/vocabmark/internal/notes"
	"github.com/vocabmark/vocabmark/internal/vocab"
)

// Source is the part of the note store the engine reads.
type Source interface {
	Notes() ([]notes.Note, error)
	HighlightColor() (string, error)
}

// Result reports what one action did.
type Result struct {
	Action   Action
	Words    int
	Marked   int
	Unmarked int
	// Skipped is set when highlight found no vocabulary and left the
	// document alone.
	Skipped bool
}

// Engine runs highlight and remove actions one at a time.
type Engine struct {
	mu             sync.Mutex
	source         Source
	lookupEndpoint string
	logger         *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLookupEndpoint sets the dictionary endpoint used by new marks.
func WithLookupEndpoint(endpoint string) Option {
	return func(e *Engine) { e.lookupEndpoint = endpoint }
}

// WithLogger sets the logger; the default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// New creates an Engine reading from source.
func New(source Source, opts ...Option) *Engine {
	e := &Engine{
		source:         source,
		lookupEndpoint: highlight.DefaultLookupEndpoint,
		logger:         slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Activate is the implicit highlight run when a page is loaded.
func (e *Engine) Activate(ctx context.Context, doc *html.Node) (Result, error) {
	return e.Highlight(ctx, doc)
}

// Dispatch runs a validated action against doc.
func (e *Engine) Dispatch(ctx context.Context, doc *html.Node, action Action) (Result, error) {
	switch action {
	case ActionHighlight:
		return e.Highlight(ctx, doc)
	case ActionRemove:
		return e.Remove(ctx, doc)
	default:
		err := fmt.Errorf("%w: %s", ErrUnknownAction, action)
		e.logger.Error("dispatch", "action", action.String(), "err", err)
		return Result{}, err
	}
}

// DispatchName parses an action identifier and dispatches it. Unknown names
// are logged and returned as ErrUnknownAction.
func (e *Engine) DispatchName(ctx context.Context, doc *html.Node, name string) (Result, error) {
	action, err := ParseAction(name)
	if err != nil {
		e.logger.Warn("rejected action", "action", name, "err", err)
		return Result{}, err
	}
	return e.Dispatch(ctx, doc, action)
}

// Highlight rebuilds the vocabulary from all notes and re-marks doc with the
// stored color. With an empty vocabulary nothing is touched, not even marks
// left by an earlier pass.
func (e *Engine) Highlight(ctx context.Context, doc *html.Node) (Result, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	res := Result{Action: ActionHighlight}
	if err := ctx.Err(); err != nil {
		return res, err
	}

	list, err := e.source.Notes()
	if err != nil {
		e.logger.Error("read notes", "err", err)
		return res, fmt.Errorf("reading notes: %w", err)
	}
	color, err := e.source.HighlightColor()
	if err != nil {
		e.logger.Error("read highlight color", "err", err)
		return res, fmt.Errorf("reading highlight color: %w", err)
	}

	words := vocab.Build(list)
	res.Words = len(words)
	if len(words) == 0 {
		res.Skipped = true
		e.logger.Debug("highlight skipped", "reason", "empty vocabulary")
		return res, nil
	}
	if err := ctx.Err(); err != nil {
		return res, err
	}

	res.Unmarked = highlight.Unmark(doc)
	res.Marked = highlight.Mark(highlight.Body(doc), words, highlight.Options{
		Color:          color,
		LookupEndpoint: e.lookupEndpoint,
	})
	e.logger.Info("highlight", "words", res.Words, "marked", res.Marked, "unmarked", res.Unmarked, "color", color)
	return res, nil
}

// Remove strips every mark from doc.
func (e *Engine) Remove(ctx context.Context, doc *html.Node) (Result, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	res := Result{Action: ActionRemove}
	if err := ctx.Err(); err != nil {
		return res, err
	}
	res.Unmarked = highlight.Unmark(doc)
	e.logger.Info("remove", "unmarked", res.Unmarked)
	return res, nil
}
