package notes

import (
	"fmt"
	"strings"
	"time"
)

// Store is the key-value contract behind the popup and the highlighter:
// "notes" holds the note list (newest first) and "highlightColor" the shared
// mark color.
type Store interface {
	Notes() ([]Note, error)
	SaveNotes(notes []Note) error
	// Update reads the note list, passes it to fn and writes the result back
	// without letting another writer in between.
	Update(fn func([]Note) ([]Note, error)) error
	HighlightColor() (string, error)
	SetHighlightColor(color string) error
	Close() error
}

// AddNote prepends a new note built from text.
func AddNote(s Store, text string, now time.Time) (Note, error) {
	var created Note
	err := s.Update(func(list []Note) ([]Note, error) {
		var lastID int64
		for _, n := range list {
			if n.ID > lastID {
				lastID = n.ID
			}
		}
		n, err := NewNote(text, now, lastID)
		if err != nil {
			return nil, err
		}
		created = n
		return append([]Note{n}, list...), nil
	})
	if err != nil {
		return Note{}, fmt.Errorf("adding note: %w", err)
	}
	return created, nil
}

// DeleteNote removes the note with the given id.
func DeleteNote(s Store, id int64) error {
	err := s.Update(func(list []Note) ([]Note, error) {
		kept := make([]Note, 0, len(list))
		for _, n := range list {
			if n.ID != id {
				kept = append(kept, n)
			}
		}
		if len(kept) == len(list) {
			return nil, fmt.Errorf("%w: %d", ErrNoteNotFound, id)
		}
		return kept, nil
	})
	if err != nil {
		return fmt.Errorf("deleting note: %w", err)
	}
	return nil
}

// Search returns notes whose text contains keyword (case-insensitive).
func Search(s Store, keyword string) ([]Note, error) {
	list, err := s.Notes()
	if err != nil {
		return nil, err
	}

	keyword = strings.ToLower(keyword)
	var matches []Note
	for _, n := range list {
		if strings.Contains(strings.ToLower(n.Text), keyword) {
			matches = append(matches, n)
		}
	}
	return matches, nil
}

// SetColor validates color and stores it as the highlight color.
func SetColor(s Store, color string) (string, error) {
	normalized, err := NormalizeColor(color)
	if err != nil {
		return "", err
	}
	if err := s.SetHighlightColor(normalized); err != nil {
		return "", fmt.Errorf("saving highlight color: %w", err)
	}
	return normalized, nil
}

// Open returns the store for backend ("json" or "sqlite") rooted at dir.
func Open(backend, dir string) (Store, error) {
	switch backend {
	case "", "json":
		return NewFileStore(dir), nil
	case "sqlite":
		return OpenSQLite(dir)
	default:
		return nil, fmt.Errorf("unknown store backend %q", backend)
	}
}
