package notes

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/lucasb-eyer/go-colorful"
)

// DefaultHighlightColor is used whenever no highlight color has been stored.
const DefaultHighlightColor = "#FFFF00"

var (
	ErrEmptyNote    = errors.New("note text is empty")
	ErrNoteNotFound = errors.New("note not found")
)

// Note is a short piece of text saved by the user.
type Note struct {
	ID        int64  `json:"id"`
	Text      string `json:"text"`
	Color     string `json:"color"`
	Timestamp string `json:"timestamp"`
}

// TimestampLayout is the human-readable creation time format.
const TimestampLayout = "1/2/2006, 3:04:05 PM"

// NewNote builds a note from user input. The id is derived from now in
// milliseconds and bumped past lastID so ids stay unique and increasing.
func NewNote(text string, now time.Time, lastID int64) (Note, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Note{}, ErrEmptyNote
	}
	id := now.UnixMilli()
	if id <= lastID {
		id = lastID + 1
	}
	return Note{
		ID:        id,
		Text:      text,
		Color:     RandomPastel(),
		Timestamp: now.Format(TimestampLayout),
	}, nil
}

// Pastel saturation and lightness of note colors.
const (
	pastelSaturation = 0.7
	pastelLightness  = 0.9
)

// RandomPastel returns a light CSS color in hsl() notation with a random hue.
func RandomPastel() string {
	return pastelCSS(colorful.Hsl(float64(rand.IntN(360)), pastelSaturation, pastelLightness))
}

// pastelCSS formats c as hsl() with whole-number components.
func pastelCSS(c colorful.Color) string {
	h, s, l := c.Hsl()
	return fmt.Sprintf("hsl(%.0f, %.0f%%, %.0f%%)", h, s*100, l*100)
}

// DisplayTimestamp returns the note's timestamp or a placeholder.
func (n Note) DisplayTimestamp() string {
	if strings.TrimSpace(n.Timestamp) == "" {
		return "Time Not Available"
	}
	return n.Timestamp
}
