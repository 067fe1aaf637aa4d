package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/vocabmark/vocabmark/internal/engine"
	"github.com/vocabmark/vocabmark/internal/fetch"
	"github.com/vocabmark/vocabmark/internal/highlight"
	"github.com/vocabmark/vocabmark/internal/notes"
	"github.com/vocabmark/vocabmark/internal/update"
)

const (
	restrictedNotice = "Cannot perform this action on a restricted page."
	noPageNotice     = "No page loaded. Use /open <url or file> first."
	busyNotice       = "Still working on the page, try again in a moment."
)

// Options configures the TUI.
type Options struct {
	Store          notes.Store
	Engine         *engine.Engine
	Fetcher        *fetch.Client
	LookupEndpoint string
	Theme          string // glamour style name, or "auto"
	Target         string // page opened on startup
	Version        string
	Logger         *slog.Logger
}

// ActionMsg asks the model to run an action on the current page.
type ActionMsg struct {
	Action engine.Action
}

// ActionDoneMsg carries the outcome of an action.
type ActionDoneMsg struct {
	Page   *fetch.Page
	Result engine.Result
	Runs   []highlight.Run
	Err    error
}

// PageLoadedMsg carries a loaded page after its implicit highlight. Page
// may be set alongside Err when loading worked but highlighting failed.
type PageLoadedMsg struct {
	Target string
	Page   *fetch.Page
	Result engine.Result
	Runs   []highlight.Run
	Err    error
}

// UpdateCheckMsg carries the result of a background update check.
type UpdateCheckMsg struct {
	Result *update.Result
	Err    error
}

// UpdateApplyMsg carries the result of an update apply.
type UpdateApplyMsg struct {
	Result *update.Result
	Err    error
}

// Model is the Bubble Tea model for the popup.
type Model struct {
	options  Options
	viewport viewport.Model
	textarea textarea.Model
	spinner  spinner.Model
	messages []displayMessage
	width    int
	height   int

	page  *fetch.Page
	runs  []highlight.Run
	marks int
	color string

	busy      bool
	busyLabel string
	queued    *engine.Action

	pendingDelete *notes.Note

	mdRenderer *glamour.TermRenderer
	logger     *slog.Logger
	ready      bool
	quitting   bool
	showPage   bool // scroll to the top of the page preview on next refresh
}

type displayMessage struct {
	role    string
	content string
}

// New creates a new TUI model.
func New(opts Options) Model {
	ta := textarea.New()
	ta.Placeholder = "Type a word to save it as a note, or /help"
	ta.Focus()
	ta.CharLimit = 1024
	ta.SetHeight(1)
	ta.ShowLineNumbers = false
	ta.Prompt = inputPromptStyle.Render("> ")

	vp := viewport.New(80, 20)

	style := glamour.WithAutoStyle()
	if opts.Theme != "" && opts.Theme != "auto" {
		style = glamour.WithStandardStyle(opts.Theme)
	}
	renderer, _ := glamour.NewTermRenderer(
		style,
		glamour.WithWordWrap(76),
	)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = successMsgStyle

	if opts.LookupEndpoint == "" {
		opts.LookupEndpoint = highlight.DefaultLookupEndpoint
	}
	if opts.Fetcher == nil {
		opts.Fetcher = fetch.New(0, 0)
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	m := Model{
		options:    opts,
		textarea:   ta,
		viewport:   vp,
		spinner:    sp,
		mdRenderer: renderer,
		logger:     logger,
		color:      notes.DefaultHighlightColor,
		messages: []displayMessage{
			{role: "quote", content: RandomQuote()},
		},
	}
	m.refreshColor()
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, m.spinner.Tick)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			m.quitting = true
			return m, tea.Quit

		case tea.KeyEsc:
			if m.pendingDelete != nil {
				m.pendingDelete = nil
				m.addMessage("system", "Delete cancelled.")
				return m, nil
			}

		case tea.KeyEnter:
			return m.handleSubmit()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		statusH := 1
		inputH := 3
		viewH := m.height - statusH - inputH
		if viewH < 1 {
			viewH = 1
		}
		m.viewport.Width = m.width
		m.viewport.Height = viewH
		m.textarea.SetWidth(m.width)

		if !m.ready {
			m.ready = true
			var initCmds []tea.Cmd
			if m.options.Target != "" {
				initCmds = append(initCmds, m.loadPage(m.options.Target))
			}
			// Background update check (only for release builds)
			if v := m.options.Version; v != "" && v != "dev" {
				initCmds = append(initCmds, m.checkForUpdate())
			}
			if len(initCmds) > 0 {
				m.updateViewport()
				return m, tea.Batch(initCmds...)
			}
		}
		m.updateViewport()

	case ActionMsg:
		return m, m.runAction(msg.Action)

	case ActionDoneMsg:
		m.busy = false
		if msg.Page != m.page {
			// The page was replaced while the action ran.
			m.updateViewport()
			return m, m.drainQueue()
		}
		if msg.Err != nil {
			m.logger.Error("action failed", "action", msg.Result.Action.String(), "err", msg.Err)
			m.addMessage("error", fmt.Sprintf("Error: %v", msg.Err))
			return m, m.drainQueue()
		}
		m.applyResult(msg.Result, msg.Runs)
		m.addMessage("success", describe(msg.Result))
		return m, m.drainQueue()

	case PageLoadedMsg:
		m.busy = false
		if msg.Page != nil {
			m.page = msg.Page
			m.runs = msg.Runs
			m.marks = 0
			m.showPage = true
		}
		if msg.Err != nil {
			m.logger.Error("loading page failed", "target", msg.Target, "err", msg.Err)
			if errors.Is(msg.Err, fetch.ErrRestricted) {
				m.addMessage("error", restrictedNotice)
			} else {
				m.addMessage("error", fmt.Sprintf("Could not open %s: %v", msg.Target, msg.Err))
			}
			return m, m.drainQueue()
		}
		m.applyResult(msg.Result, msg.Runs)
		m.addMessage("success", fmt.Sprintf("Opened %s. %s", pageName(msg.Page), describe(msg.Result)))
		return m, m.drainQueue()

	case UpdateCheckMsg:
		if msg.Err == nil && msg.Result != nil && msg.Result.UpdateAvailable {
			m.addMessage("system", fmt.Sprintf("Update available: v%s → v%s. Run /update to upgrade.", msg.Result.CurrentVersion, msg.Result.LatestVersion))
		}
		return m, nil

	case UpdateApplyMsg:
		if msg.Err != nil {
			m.addMessage("error", fmt.Sprintf("Update failed: %v", msg.Err))
		} else if msg.Result.Applied {
			m.addMessage("success", fmt.Sprintf("Updated to v%s. Restart vocabmark to use the new version.", msg.Result.LatestVersion))
		} else {
			m.addMessage("system", "Already running the latest version.")
		}
		return m, nil
	}

	if m.busy {
		var spCmd tea.Cmd
		m.spinner, spCmd = m.spinner.Update(msg)
		cmds = append(cmds, spCmd)
		m.updateViewport()
	}

	var taCmd tea.Cmd
	m.textarea, taCmd = m.textarea.Update(msg)
	cmds = append(cmds, taCmd)

	var vpCmd tea.Cmd
	m.viewport, vpCmd = m.viewport.Update(msg)
	cmds = append(cmds, vpCmd)

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.quitting {
		return "Goodbye!\n"
	}
	if !m.ready {
		return "Initializing..."
	}

	title := ""
	if m.page != nil {
		title = pageName(m.page)
	}
	status := StatusBar(title, m.marks, m.width)
	separator := lipgloss.NewStyle().
		Foreground(secondaryColor).
		Width(m.width).
		Render(strings.Repeat("─", m.width))

	return fmt.Sprintf("%s\n%s\n%s\n%s",
		status,
		m.viewport.View(),
		separator,
		m.textarea.View(),
	)
}

func (m *Model) handleSubmit() (tea.Model, tea.Cmd) {
	input := strings.TrimSpace(m.textarea.Value())
	m.textarea.Reset()

	if m.pendingDelete != nil {
		return m.confirmDelete(input)
	}
	if input == "" {
		return m, nil
	}

	if cmd := ParseCommand(input); cmd != nil {
		return m.handleCommand(cmd)
	}

	return m.saveNote(input)
}

// saveNote stores input as the newest note and re-highlights the page.
func (m *Model) saveNote(input string) (tea.Model, tea.Cmd) {
	n, err := notes.AddNote(m.options.Store, input, timeNow())
	if err != nil {
		m.logger.Error("saving note failed", "err", err)
		m.addMessage("error", fmt.Sprintf("Error saving note: %v", err))
		return m, nil
	}
	m.logger.Info("note saved", "id", n.ID)
	m.addMessage("success", fmt.Sprintf("Saved note #%d: %s", n.ID, n.Text))
	return m, m.rehighlight()
}

// rehighlight queues a highlight of the current page, if there is one.
func (m *Model) rehighlight() tea.Cmd {
	if m.page == nil {
		return nil
	}
	return func() tea.Msg {
		return ActionMsg{Action: engine.ActionHighlight}
	}
}

// runAction dispatches action against the current page in the background.
// While another page operation is running, the latest request waits.
func (m *Model) runAction(action engine.Action) tea.Cmd {
	if m.page == nil {
		m.addMessage("system", noPageNotice)
		return nil
	}
	if m.busy {
		m.queued = &action
		return nil
	}
	if m.options.Engine == nil {
		m.addMessage("error", "Highlighter not configured.")
		return nil
	}

	m.busy = true
	m.busyLabel = "Highlighting..."
	if action == engine.ActionRemove {
		m.busyLabel = "Removing highlights..."
	}
	m.updateViewport()

	return tea.Batch(dispatchCmd(m.options.Engine, m.page, action), m.spinner.Tick)
}

func dispatchCmd(eng *engine.Engine, page *fetch.Page, action engine.Action) tea.Cmd {
	return func() tea.Msg {
		res, err := eng.Dispatch(context.Background(), page.Doc, action)
		if err != nil {
			return ActionDoneMsg{Page: page, Result: res, Err: err}
		}
		return ActionDoneMsg{Page: page, Result: res, Runs: highlight.VisibleText(highlight.Body(page.Doc))}
	}
}

func (m *Model) drainQueue() tea.Cmd {
	if m.queued == nil {
		return nil
	}
	action := *m.queued
	m.queued = nil
	return m.runAction(action)
}

// loadPage fetches target and runs the implicit highlight on it.
func (m *Model) loadPage(target string) tea.Cmd {
	m.busy = true
	m.busyLabel = fmt.Sprintf("Loading %s...", target)
	m.queued = nil
	m.updateViewport()

	return tea.Batch(loadCmd(m.options.Fetcher, m.options.Engine, target), m.spinner.Tick)
}

func loadCmd(fetcher *fetch.Client, eng *engine.Engine, target string) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		page, err := fetcher.Load(ctx, target)
		if err != nil {
			return PageLoadedMsg{Target: target, Err: err}
		}
		msg := PageLoadedMsg{Target: target, Page: page}
		if eng != nil {
			msg.Result, msg.Err = eng.Activate(ctx, page.Doc)
			if msg.Err != nil {
				msg.Err = fmt.Errorf("highlighting: %w", msg.Err)
			}
		}
		msg.Runs = highlight.VisibleText(highlight.Body(page.Doc))
		return msg
	}
}

func (m *Model) applyResult(res engine.Result, runs []highlight.Run) {
	m.runs = runs
	switch {
	case res.Skipped:
	case res.Action == engine.ActionRemove:
		m.marks = 0
	default:
		m.marks = res.Marked
	}
	m.refreshColor()
	m.showPage = true
}

func (m *Model) refreshColor() {
	if m.options.Store == nil {
		return
	}
	color, err := m.options.Store.HighlightColor()
	if err != nil {
		m.logger.Warn("reading highlight color failed", "err", err)
		return
	}
	m.color = color
}

func describe(res engine.Result) string {
	switch {
	case res.Skipped:
		return "No notes to highlight yet."
	case res.Action == engine.ActionRemove:
		return fmt.Sprintf("Removed %d highlight(s).", res.Unmarked)
	default:
		return fmt.Sprintf("Highlighted %d occurrence(s) of %d word(s).", res.Marked, res.Words)
	}
}

func pageName(p *fetch.Page) string {
	if p.Title != "" {
		return p.Title
	}
	return p.Source
}

func (m *Model) addMessage(role, content string) {
	m.messages = append(m.messages, displayMessage{role: role, content: content})
	m.updateViewport()
}

func (m *Model) renderMarkdown(content string) string {
	if m.mdRenderer == nil {
		return content
	}
	rendered, err := m.mdRenderer.Render(content)
	if err != nil {
		return content
	}
	return strings.TrimSpace(rendered)
}

// renderPage renders the page preview with marks on the highlight color.
func (m *Model) renderPage() string {
	style := markStyle(m.color)
	var b strings.Builder
	for _, r := range m.runs {
		if r.Mark {
			b.WriteString(style.Render(r.Text))
		} else {
			b.WriteString(r.Text)
		}
	}
	width := m.width
	if width <= 0 {
		width = 80
	}
	return wordwrap.String(b.String(), width)
}

func (m *Model) renderNotes(list []notes.Note) string {
	var lines []string
	for _, n := range list {
		meta := noteMetaStyle.Render(fmt.Sprintf("#%d  %s", n.ID, n.DisplayTimestamp()))
		lines = append(lines, noteStyle(n.Color).Render(n.Text)+"  "+meta)
	}
	return strings.Join(lines, "\n")
}

func (m *Model) updateViewport() {
	var lines []string
	if m.page != nil {
		lines = append(lines, pageTitleStyle.Render(pageName(m.page)), "")
		lines = append(lines, m.renderPage(), "")
		lines = append(lines, systemMsgStyle.Render(strings.Repeat("·", max(m.width, 1))), "")
	}

	for _, msg := range m.messages {
		switch msg.role {
		case "quote":
			lines = append(lines, quoteStyle.Render(msg.content))
		case "help":
			lines = append(lines, m.renderMarkdown(msg.content))
		case "success":
			lines = append(lines, successMsgStyle.Render(msg.content))
		case "error":
			lines = append(lines, errorMsgStyle.Render(msg.content))
		case "raw":
			lines = append(lines, msg.content)
		case "system":
			lines = append(lines, systemMsgStyle.Render(msg.content))
		}
		lines = append(lines, "")
	}

	if m.busy {
		lines = append(lines, m.spinner.View()+" "+m.busyLabel)
		lines = append(lines, "")
	}

	m.viewport.SetContent(strings.Join(lines, "\n"))
	if m.showPage {
		m.showPage = false
		m.viewport.GotoTop()
		return
	}
	m.viewport.GotoBottom()
}

func (m *Model) checkForUpdate() tea.Cmd {
	version := m.options.Version
	return func() tea.Msg {
		res, err := update.Check(context.Background(), version)
		return UpdateCheckMsg{Result: res, Err: err}
	}
}
