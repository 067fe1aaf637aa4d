package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vocabmark/vocabmark/internal/engine"
	"github.com/vocabmark/vocabmark/internal/highlight"
	"github.com/vocabmark/vocabmark/internal/notes"
	"github.com/vocabmark/vocabmark/internal/update"
)

var timeNow = time.Now

func (m *Model) handleCommand(cmd *Command) (tea.Model, tea.Cmd) {
	switch cmd.Name {
	case "quit", "bye", "exit":
		return handleQuit(m, cmd.Args)
	case "help":
		return handleHelp(m, cmd.Args)
	case "clear":
		return handleClear(m, cmd.Args)
	case "open":
		return handleOpen(m, cmd.Args)
	case "apply":
		return m, m.runAction(engine.ActionHighlight)
	case "remove":
		return m, m.runAction(engine.ActionRemove)
	case "notes":
		return handleNotes(m, cmd.Args)
	case "find":
		return handleFind(m, cmd.Args)
	case "delete":
		return handleDelete(m, cmd.Args)
	case "color":
		return handleColor(m, cmd.Args)
	case "define":
		return handleDefine(m, cmd.Args)
	case "save":
		return handleSave(m, cmd.Args)
	case "update":
		return handleUpdate(m, cmd.Args)
	}
	m.addMessage("system", fmt.Sprintf("Unknown command: /%s. Type /help for available commands.", cmd.Name))
	return m, nil
}

func handleQuit(m *Model, args string) (tea.Model, tea.Cmd) {
	m.quitting = true
	return m, tea.Quit
}

func handleHelp(m *Model, args string) (tea.Model, tea.Cmd) {
	m.addMessage("help", HelpText())
	return m, nil
}

func handleClear(m *Model, args string) (tea.Model, tea.Cmd) {
	m.messages = nil
	m.updateViewport()
	return m, nil
}

func handleOpen(m *Model, args string) (tea.Model, tea.Cmd) {
	if args == "" {
		m.addMessage("system", "Usage: /open <url or file>")
		return m, nil
	}
	if m.busy {
		m.addMessage("system", busyNotice)
		return m, nil
	}
	return m, m.loadPage(args)
}

func handleNotes(m *Model, args string) (tea.Model, tea.Cmd) {
	list, err := m.options.Store.Notes()
	switch {
	case err != nil:
		m.addMessage("error", fmt.Sprintf("Error reading notes: %v", err))
	case len(list) == 0:
		m.addMessage("system", "No notes saved yet.")
	default:
		m.addMessage("raw", m.renderNotes(list))
	}
	return m, nil
}

func handleFind(m *Model, args string) (tea.Model, tea.Cmd) {
	if args == "" {
		m.addMessage("system", "Usage: /find <keyword>")
		return m, nil
	}
	found, err := notes.Search(m.options.Store, args)
	switch {
	case err != nil:
		m.addMessage("error", fmt.Sprintf("Error searching notes: %v", err))
	case len(found) == 0:
		m.addMessage("system", fmt.Sprintf("No notes matching %q.", args))
	default:
		m.addMessage("raw", m.renderNotes(found))
	}
	return m, nil
}

// findNote looks a note up by the id shown in the notes list.
func (m *Model) findNote(args string) (*notes.Note, error) {
	id, err := strconv.ParseInt(strings.TrimPrefix(args, "#"), 10, 64)
	if err != nil {
		return nil, err
	}
	list, err := m.options.Store.Notes()
	if err != nil {
		return nil, err
	}
	for i := range list {
		if list[i].ID == id {
			return &list[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %d", notes.ErrNoteNotFound, id)
}

func handleDelete(m *Model, args string) (tea.Model, tea.Cmd) {
	if args == "" {
		m.addMessage("system", "Usage: /delete <id>")
		return m, nil
	}
	n, err := m.findNote(args)
	if err != nil {
		if errors.Is(err, notes.ErrNoteNotFound) {
			m.addMessage("system", fmt.Sprintf("No note with id %s. Use /notes to see ids.", args))
		} else {
			m.addMessage("system", "Usage: /delete <id>")
		}
		return m, nil
	}
	m.pendingDelete = n
	m.addMessage("system", fmt.Sprintf("Are you sure you want to delete %q? Type y to confirm.", n.Text))
	return m, nil
}

func (m *Model) confirmDelete(input string) (tea.Model, tea.Cmd) {
	n := m.pendingDelete
	m.pendingDelete = nil

	switch strings.ToLower(input) {
	case "y", "yes":
	default:
		m.addMessage("system", "Delete cancelled.")
		return m, nil
	}

	if err := notes.DeleteNote(m.options.Store, n.ID); err != nil {
		m.logger.Error("deleting note failed", "id", n.ID, "err", err)
		m.addMessage("error", fmt.Sprintf("Error deleting note: %v", err))
		return m, nil
	}
	m.logger.Info("note deleted", "id", n.ID)
	m.addMessage("success", fmt.Sprintf("Deleted %q.", n.Text))
	return m, m.rehighlight()
}

func handleColor(m *Model, args string) (tea.Model, tea.Cmd) {
	if args == "" {
		m.refreshColor()
		m.addMessage("raw", fmt.Sprintf("Highlight color: %s %s\nUsage: /color <color>",
			m.color, markStyle(m.color).Render(" sample ")))
		return m, nil
	}

	color, err := notes.SetColor(m.options.Store, args)
	if err != nil {
		if errors.Is(err, notes.ErrInvalidColor) {
			m.addMessage("system", fmt.Sprintf("%q is not a color. Try #FFFF00, rgb(255, 255, 0), hsl(60, 100%%, 50%%) or yellow.", args))
		} else {
			m.logger.Error("saving color failed", "err", err)
			m.addMessage("error", fmt.Sprintf("Error saving color: %v", err))
		}
		return m, nil
	}
	m.color = color
	m.addMessage("success", fmt.Sprintf("Highlight color set to %s.", color))
	return m, m.rehighlight()
}

func handleDefine(m *Model, args string) (tea.Model, tea.Cmd) {
	if args == "" {
		m.addMessage("system", "Usage: /define <word or note id>")
		return m, nil
	}
	word := args
	if n, err := m.findNote(args); err == nil {
		word = n.Text
	}
	m.addMessage("raw", fmt.Sprintf("%s %s", userLabelStyle.Render(word+":"),
		highlight.LookupURL(m.options.LookupEndpoint, word)))
	return m, nil
}

func handleSave(m *Model, args string) (tea.Model, tea.Cmd) {
	switch {
	case args == "":
		m.addMessage("system", "Usage: /save <path>")
		return m, nil
	case m.page == nil:
		m.addMessage("system", noPageNotice)
		return m, nil
	case m.busy:
		m.addMessage("system", busyNotice)
		return m, nil
	}

	out, err := highlight.RenderString(m.page.Doc)
	if err == nil {
		err = os.WriteFile(args, []byte(out), 0o644)
	}
	if err != nil {
		m.addMessage("error", fmt.Sprintf("Error saving page: %v", err))
		return m, nil
	}
	m.addMessage("success", fmt.Sprintf("Saved page to %s.", args))
	return m, nil
}

func handleUpdate(m *Model, args string) (tea.Model, tea.Cmd) {
	version := m.options.Version
	if version == "" || version == "dev" {
		m.addMessage("system", "Updates are only available for release builds.")
		return m, nil
	}
	m.addMessage("system", "Checking for updates...")
	return m, func() tea.Msg {
		res, err := update.Apply(context.Background(), version)
		return UpdateApplyMsg{Result: res, Err: err}
	}
}
