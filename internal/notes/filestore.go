package notes

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// fileData mirrors the two store keys on disk.
type fileData struct {
	Notes          []Note `json:"notes"`
	HighlightColor string `json:"highlightColor,omitempty"`
}

// FileStore implements Store as a single JSON file.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore creates a FileStore keeping its data in dir/store.json.
func NewFileStore(dir string) *FileStore {
	return &FileStore{path: filepath.Join(dir, "store.json")}
}

// Path returns the backing file.
func (fs *FileStore) Path() string {
	return fs.path
}

func (fs *FileStore) load() (fileData, error) {
	var d fileData
	data, err := os.ReadFile(fs.path)
	if err != nil {
		if os.IsNotExist(err) {
			return d, nil
		}
		return d, fmt.Errorf("reading store: %w", err)
	}
	if err := json.Unmarshal(data, &d); err != nil {
		return d, fmt.Errorf("decoding store: %w", err)
	}
	return d, nil
}

func (fs *FileStore) save(d fileData) error {
	if err := os.MkdirAll(filepath.Dir(fs.path), 0o755); err != nil {
		return fmt.Errorf("creating store directory: %w", err)
	}
	if d.Notes == nil {
		d.Notes = []Note{}
	}
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling store: %w", err)
	}
	return os.WriteFile(fs.path, data, 0o644)
}

// Notes returns all notes, newest first.
func (fs *FileStore) Notes() ([]Note, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	d, err := fs.load()
	if err != nil {
		return nil, err
	}
	return d.Notes, nil
}

// SaveNotes replaces the note list.
func (fs *FileStore) SaveNotes(list []Note) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	d, err := fs.load()
	if err != nil {
		return err
	}
	d.Notes = list
	return fs.save(d)
}

// Update runs fn over the note list under the store lock.
func (fs *FileStore) Update(fn func([]Note) ([]Note, error)) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	d, err := fs.load()
	if err != nil {
		return err
	}
	list, err := fn(d.Notes)
	if err != nil {
		return err
	}
	d.Notes = list
	return fs.save(d)
}

// HighlightColor returns the stored color or DefaultHighlightColor.
func (fs *FileStore) HighlightColor() (string, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	d, err := fs.load()
	if err != nil {
		return DefaultHighlightColor, err
	}
	if d.HighlightColor == "" {
		return DefaultHighlightColor, nil
	}
	return d.HighlightColor, nil
}

// SetHighlightColor stores the highlight color.
func (fs *FileStore) SetHighlightColor(color string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	d, err := fs.load()
	if err != nil {
		return err
	}
	d.HighlightColor = color
	return fs.save(d)
}

// Close is a no-op for the file store.
func (fs *FileStore) Close() error {
	return nil
}
