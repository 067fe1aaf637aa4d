package tui

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/vocabmark/vocabmark/internal/engine"
	"github.com/vocabmark/vocabmark/internal/notes"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestModel(t *testing.T) (Model, notes.Store) {
	t.Helper()
	store := notes.NewFileStore(t.TempDir())
	logger := quietLogger()
	m := New(Options{
		Store:   store,
		Engine:  engine.New(store, engine.WithLogger(logger)),
		Version: "dev",
		Logger:  logger,
	})
	m.width = 80
	m.height = 24
	m.ready = true
	return m, store
}

func writePage(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "page.html")
	doc := "<html><head><title>Test Page</title></head><body>" + body + "</body></html>"
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// openPage runs the load command synchronously and feeds its result back.
func openPage(t *testing.T, m Model, target string) Model {
	t.Helper()
	msg := loadCmd(m.options.Fetcher, m.options.Engine, target)()
	newM, _ := m.Update(msg)
	return newM.(Model)
}

func submit(t *testing.T, m *Model, input string) *Model {
	t.Helper()
	m.textarea.SetValue(input)
	newM, _ := m.handleSubmit()
	return newM.(*Model)
}

func lastMessage(m *Model) displayMessage {
	return m.messages[len(m.messages)-1]
}

func addNote(t *testing.T, store notes.Store, text string) notes.Note {
	t.Helper()
	n, err := notes.AddNote(store, text, time.Now())
	if err != nil {
		t.Fatalf("AddNote() error: %v", err)
	}
	return n
}

func TestInitialView(t *testing.T) {
	store := notes.NewFileStore(t.TempDir())
	m := New(Options{Store: store})

	view := m.View()
	if view != "Initializing..." {
		t.Errorf("initial view = %q, want Initializing...", view)
	}
}

func TestStartupQuote(t *testing.T) {
	m, _ := newTestModel(t)

	if len(m.messages) != 1 || m.messages[0].role != "quote" {
		t.Fatalf("messages = %+v, want one quote", m.messages)
	}
}

func TestSaveNote(t *testing.T) {
	m, store := newTestModel(t)

	m.textarea.SetValue("  ephemeral  ")
	newM, cmd := m.handleSubmit()
	model := newM.(*Model)

	list, err := store.Notes()
	if err != nil {
		t.Fatalf("Notes() error: %v", err)
	}
	if len(list) != 1 || list[0].Text != "ephemeral" {
		t.Fatalf("notes = %+v, want one 'ephemeral'", list)
	}
	if last := lastMessage(model); last.role != "success" || !strings.Contains(last.content, "ephemeral") {
		t.Errorf("last message = %+v", last)
	}
	if cmd != nil {
		t.Error("saving without a page should not trigger a highlight")
	}
	if model.textarea.Value() != "" {
		t.Error("input should be cleared after saving")
	}
}

func TestSaveNote_HighlightsCurrentPage(t *testing.T) {
	m, _ := newTestModel(t)
	m = openPage(t, m, writePage(t, "<p>An ephemeral thought.</p>"))

	m.textarea.SetValue("ephemeral")
	_, cmd := m.handleSubmit()
	if cmd == nil {
		t.Fatal("saving with a page loaded should trigger a highlight")
	}
	msg, ok := cmd().(ActionMsg)
	if !ok || msg.Action != engine.ActionHighlight {
		t.Fatalf("cmd() = %#v, want ActionMsg highlight", msg)
	}

	done := dispatchCmd(m.options.Engine, m.page, msg.Action)()
	newM, _ := m.Update(done)
	model := newM.(Model)
	if model.marks != 1 {
		t.Errorf("marks = %d, want 1", model.marks)
	}
}

func TestOpenPage_EndToEnd(t *testing.T) {
	m, store := newTestModel(t)
	addNote(t, store, "The quick brown fox")
	if _, err := notes.SetColor(store, "#00FF00"); err != nil {
		t.Fatal(err)
	}

	m = openPage(t, m, writePage(t, "<p>A quick fox jumped.</p>"))

	if m.page == nil {
		t.Fatal("page not loaded")
	}
	if m.marks != 2 {
		t.Errorf("marks = %d, want 2", m.marks)
	}
	if m.color != "#00FF00" {
		t.Errorf("color = %q, want #00FF00", m.color)
	}
	var marked []string
	for _, r := range m.runs {
		if r.Mark {
			marked = append(marked, r.Text)
		}
	}
	if strings.Join(marked, ",") != "quick,fox" {
		t.Errorf("marked runs = %v, want [quick fox]", marked)
	}
	if !strings.Contains(m.View(), "Test Page") {
		t.Error("view should show the page title")
	}

	done := dispatchCmd(m.options.Engine, m.page, engine.ActionRemove)()
	newM, _ := m.Update(done)
	model := newM.(Model)
	if model.marks != 0 {
		t.Errorf("marks after remove = %d, want 0", model.marks)
	}
	if last := lastMessage(&model); !strings.Contains(last.content, "Removed 2") {
		t.Errorf("last message = %q, want removal count", last.content)
	}
}

func TestOpenPage_Restricted(t *testing.T) {
	m, _ := newTestModel(t)

	m = openPage(t, m, "chrome://extensions")

	if m.page != nil {
		t.Error("restricted page should not be loaded")
	}
	if last := lastMessage(&m); last.content != restrictedNotice {
		t.Errorf("last message = %q, want %q", last.content, restrictedNotice)
	}
}

func TestOpenPage_MissingFile(t *testing.T) {
	m, _ := newTestModel(t)

	m = openPage(t, m, filepath.Join(t.TempDir(), "missing.html"))

	if last := lastMessage(&m); last.role != "error" || !strings.Contains(last.content, "Could not open") {
		t.Errorf("last message = %+v", last)
	}
}

func TestOpenCommand_SetsBusy(t *testing.T) {
	m, _ := newTestModel(t)

	model := submit(t, &m, "/open "+writePage(t, "<p>text</p>"))
	if !model.busy {
		t.Error("should be busy while the page loads")
	}

	model = submit(t, model, "/open https://example.com")
	if last := lastMessage(model); last.content != busyNotice {
		t.Errorf("last message = %q, want busy notice", last.content)
	}
}

func TestActionWithoutPage(t *testing.T) {
	for _, input := range []string{"/apply", "/remove", "/save out.html"} {
		m, _ := newTestModel(t)
		model := submit(t, &m, input)
		if last := lastMessage(model); last.content != noPageNotice {
			t.Errorf("%s: last message = %q, want no-page notice", input, last.content)
		}
	}
}

func TestActionQueuedWhileBusy(t *testing.T) {
	m, _ := newTestModel(t)
	m = openPage(t, m, writePage(t, "<p>text</p>"))
	m.busy = true

	newM, cmd := m.Update(ActionMsg{Action: engine.ActionRemove})
	model := newM.(Model)
	if cmd != nil {
		t.Error("action should wait while busy")
	}
	if model.queued == nil || *model.queued != engine.ActionRemove {
		t.Fatalf("queued = %v, want remove", model.queued)
	}

	newM, cmd = model.Update(ActionDoneMsg{Page: model.page, Result: engine.Result{Action: engine.ActionHighlight}})
	model = newM.(Model)
	if cmd == nil {
		t.Error("queued action should run once the page is free")
	}
	if model.queued != nil {
		t.Error("queue should be drained")
	}
	if !model.busy {
		t.Error("queued action should mark the model busy")
	}
}

func TestNotesCommand(t *testing.T) {
	m, store := newTestModel(t)

	model := submit(t, &m, "/notes")
	if last := lastMessage(model); last.content != "No notes saved yet." {
		t.Errorf("empty list message = %q", last.content)
	}

	n := addNote(t, store, "ubiquitous")
	model = submit(t, model, "/notes")
	last := lastMessage(model)
	if !strings.Contains(last.content, "ubiquitous") {
		t.Errorf("notes list = %q, want note text", last.content)
	}
	if !strings.Contains(last.content, "#"+formatID(n.ID)) {
		t.Errorf("notes list = %q, want note id", last.content)
	}
}

func TestFindCommand(t *testing.T) {
	m, store := newTestModel(t)
	addNote(t, store, "serendipity")
	addNote(t, store, "ubiquitous")

	model := submit(t, &m, "/find SEREN")
	last := lastMessage(model)
	if !strings.Contains(last.content, "serendipity") || strings.Contains(last.content, "ubiquitous") {
		t.Errorf("find result = %q", last.content)
	}

	model = submit(t, model, "/find zzz")
	if last := lastMessage(model); !strings.Contains(last.content, "No notes matching") {
		t.Errorf("find miss = %q", last.content)
	}
}

func TestDeleteCommand_Confirm(t *testing.T) {
	m, store := newTestModel(t)
	n := addNote(t, store, "ephemeral")

	model := submit(t, &m, "/delete "+formatID(n.ID))
	if model.pendingDelete == nil || model.pendingDelete.ID != n.ID {
		t.Fatalf("pendingDelete = %+v, want note %d", model.pendingDelete, n.ID)
	}
	if list, _ := store.Notes(); len(list) != 1 {
		t.Fatal("note deleted before confirmation")
	}

	model = submit(t, model, "y")
	if model.pendingDelete != nil {
		t.Error("pendingDelete should be cleared")
	}
	if list, _ := store.Notes(); len(list) != 0 {
		t.Errorf("notes = %+v, want none", list)
	}
}

func TestDeleteCommand_Cancel(t *testing.T) {
	m, store := newTestModel(t)
	n := addNote(t, store, "ephemeral")

	model := submit(t, &m, "/delete "+formatID(n.ID))
	model = submit(t, model, "no")

	if list, _ := store.Notes(); len(list) != 1 {
		t.Errorf("notes = %+v, want note kept", list)
	}
	if last := lastMessage(model); last.content != "Delete cancelled." {
		t.Errorf("last message = %q", last.content)
	}
}

func TestDeleteCommand_UnknownID(t *testing.T) {
	m, _ := newTestModel(t)

	model := submit(t, &m, "/delete 12345")
	if model.pendingDelete != nil {
		t.Error("unknown id should not ask for confirmation")
	}
	if last := lastMessage(model); !strings.Contains(last.content, "No note with id") {
		t.Errorf("last message = %q", last.content)
	}

	model = submit(t, model, "/delete abc")
	if last := lastMessage(model); !strings.Contains(last.content, "Usage") {
		t.Errorf("last message = %q, want usage", last.content)
	}
}

func TestColorCommand(t *testing.T) {
	m, store := newTestModel(t)

	model := submit(t, &m, "/color #00FF00")
	if got, _ := store.HighlightColor(); got != "#00FF00" {
		t.Errorf("stored color = %q, want #00FF00", got)
	}
	if model.color != "#00FF00" {
		t.Errorf("model color = %q, want #00FF00", model.color)
	}

	model = submit(t, model, "/color nope")
	if got, _ := store.HighlightColor(); got != "#00FF00" {
		t.Errorf("invalid color overwrote the stored one: %q", got)
	}
	if last := lastMessage(model); !strings.Contains(last.content, "is not a color") {
		t.Errorf("last message = %q", last.content)
	}

	model = submit(t, model, "/color")
	if last := lastMessage(model); !strings.Contains(last.content, "#00FF00") {
		t.Errorf("current color message = %q", last.content)
	}
}

func TestDefineCommand(t *testing.T) {
	m, store := newTestModel(t)
	n := addNote(t, store, "serendipity")

	model := submit(t, &m, "/define ubiquitous")
	if last := lastMessage(model); !strings.Contains(last.content, "https://www.google.com/search?q=define+ubiquitous") {
		t.Errorf("define word = %q", last.content)
	}

	model = submit(t, model, "/define "+formatID(n.ID))
	if last := lastMessage(model); !strings.Contains(last.content, "define+serendipity") {
		t.Errorf("define by id = %q", last.content)
	}
}

func TestSaveCommand(t *testing.T) {
	m, store := newTestModel(t)
	addNote(t, store, "quick")
	m = openPage(t, m, writePage(t, "<p>A quick fox.</p>"))

	out := filepath.Join(t.TempDir(), "out.html")
	model := submit(t, &m, "/save "+out)

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("saved page not written: %v", err)
	}
	if !strings.Contains(string(data), `class="vocab-highlight"`) {
		t.Errorf("saved page missing marks:\n%s", data)
	}
	if last := lastMessage(model); last.role != "success" {
		t.Errorf("last message = %+v", last)
	}
}

func TestUpdateCommand_DevBuild(t *testing.T) {
	m, _ := newTestModel(t)

	model := submit(t, &m, "/update")
	if last := lastMessage(model); !strings.Contains(last.content, "release builds") {
		t.Errorf("last message = %q", last.content)
	}
}

func TestQuitCommand(t *testing.T) {
	m, _ := newTestModel(t)

	model := submit(t, &m, "/quit")
	if !model.quitting {
		t.Error("should be quitting after /quit")
	}
}

func TestUnknownCommand(t *testing.T) {
	m, _ := newTestModel(t)

	model := submit(t, &m, "/foobar")
	last := lastMessage(model)
	if last.role != "system" || !strings.Contains(last.content, "/foobar") {
		t.Errorf("last message = %+v", last)
	}
}

func TestHelpCommand(t *testing.T) {
	m, _ := newTestModel(t)

	model := submit(t, &m, "/help")
	if last := lastMessage(model); last.role != "help" {
		t.Error("help should produce a help message")
	}
	if view := model.View(); view == "Initializing..." {
		t.Error("view should not be 'Initializing...' when ready")
	}
}

func TestClearCommand(t *testing.T) {
	m, _ := newTestModel(t)

	model := submit(t, &m, "/clear")
	if len(model.messages) != 0 {
		t.Errorf("messages = %d, want 0", len(model.messages))
	}
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
