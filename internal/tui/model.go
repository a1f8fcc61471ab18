package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/diogo/readingchat/internal/dispatch"
	"github.com/diogo/readingchat/internal/models"
	"github.com/diogo/readingchat/internal/render"
)

// Animation tick message
type animationTickMsg time.Time

// Message types for the TUI
type (
	// replyMsg carries a finished exchange back to the event loop
	replyMsg struct {
		reply dispatch.Reply
	}
)

// keyMap holds the chat screen bindings
type keyMap struct {
	Send    key.Binding
	Newline key.Binding
	Quit    key.Binding
}

var keys = keyMap{
	Send: key.NewBinding(
		key.WithKeys("enter", "ctrl+s"),
		key.WithHelp("Enter/^S", "Send"),
	),
	Newline: key.NewBinding(
		key.WithKeys("alt+enter"),
		key.WithHelp("Alt+Enter", "Newline"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c", "esc"),
		key.WithHelp("Esc", "Quit"),
	),
}

// Options configures the chat screen
type Options struct {
	// Endpoint is shown in the header
	Endpoint string
	// Scope is shown in the header, typically "course / tenant"
	Scope    string
	Markdown render.Options
	// Clipboard writes text for /copy. Defaults to the system clipboard.
	Clipboard func(string) error
}

// Model represents the TUI state
type Model struct {
	dispatcher *dispatch.Dispatcher
	opts       Options

	ctx    context.Context
	cancel context.CancelFunc

	// UI components
	viewport viewport.Model
	textarea textarea.Model
	spinner  spinner.Model

	// State
	pending        int // requests sent from this screen and not yet rendered
	ready          bool
	notice         string
	err            error
	animationFrame int

	// Dimensions
	width  int
	height int
}

// NewChatModel creates a chat screen rendering into the dispatcher's
// transcript. Cancelling ctx, or quitting, cancels requests in flight.
func NewChatModel(ctx context.Context, d *dispatch.Dispatcher, opts Options) Model {
	if opts.Clipboard == nil {
		opts.Clipboard = clipboard.WriteAll
	}

	ta := textarea.New()
	ta.Placeholder = "Ask about your reading..."
	ta.CharLimit = 4000
	ta.ShowLineNumbers = false
	ta.SetHeight(2)
	ta.KeyMap.InsertNewline = keys.Newline
	ta.Focus()

	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.FocusedStyle.Base = lipgloss.NewStyle().Foreground(colorText)
	ta.FocusedStyle.Placeholder = lipgloss.NewStyle().Foreground(colorTextDim)
	ta.BlurredStyle = ta.FocusedStyle

	s := spinner.New()
	s.Spinner = spinner.Points
	s.Style = loadingStyle

	ctx, cancel := context.WithCancel(ctx)

	return Model{
		dispatcher: d,
		opts:       opts,
		ctx:        ctx,
		cancel:     cancel,
		textarea:   ta,
		spinner:    s,
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

func animationTick() tea.Cmd {
	return tea.Tick(time.Millisecond*80, func(t time.Time) tea.Msg {
		return animationTickMsg(t)
	})
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		headerHeight := 4 // Header panel with border
		inputHeight := 6  // Input panel with border
		statusHeight := 1 // Status bar
		padding := 2      // Extra spacing

		vpHeight := m.height - headerHeight - inputHeight - statusHeight - padding
		if vpHeight < 5 {
			vpHeight = 5
		}

		contentWidth := m.width - 4

		if !m.ready {
			m.viewport = viewport.New(contentWidth, vpHeight)
			m.ready = true
		} else {
			m.viewport.Width = contentWidth
			m.viewport.Height = vpHeight
		}
		m.textarea.SetWidth(contentWidth - 4)
		m.updateViewport()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return m.quit()

		case key.Matches(msg, keys.Send):
			return m.submit()
		}

		m.textarea, cmd = m.textarea.Update(msg)
		cmds = append(cmds, cmd)

	case replyMsg:
		m.pending--
		m.dispatcher.Complete(msg.reply)
		m.updateViewport()
		m.viewport.GotoBottom()

	case spinner.TickMsg:
		if m.pending > 0 {
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case animationTickMsg:
		if m.pending > 0 {
			m.animationFrame++
			cmds = append(cmds, animationTick())
		}
	}

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// submit handles the send control: slash commands first, then a message
func (m Model) submit() (tea.Model, tea.Cmd) {
	if fields := strings.Fields(m.textarea.Value()); isCommand(fields) {
		return m.runCommand(fields)
	}

	text, ok := m.dispatcher.Begin(&m.textarea)
	if !ok {
		return m, nil
	}

	m.notice = ""
	m.err = nil
	m.updateViewport()
	m.viewport.GotoBottom()

	wasIdle := m.pending == 0
	m.pending++

	cmds := []tea.Cmd{m.exchange(text)}
	if wasIdle {
		m.animationFrame = 0
		cmds = append(cmds, m.spinner.Tick, animationTick())
	}
	return m, tea.Batch(cmds...)
}

// exchange runs the network phase off the event loop
func (m Model) exchange(text string) tea.Cmd {
	ctx, d := m.ctx, m.dispatcher
	return func() tea.Msg {
		return replyMsg{reply: d.Exchange(ctx, text)}
	}
}

// isCommand reports whether the input is a chat command. Anything else,
// including text that merely starts with a slash, is sent as a question.
func isCommand(fields []string) bool {
	if len(fields) == 0 {
		return false
	}
	switch fields[0] {
	case "/quit", "/exit", "/copy", "/export":
		return true
	case "quit", "exit":
		return len(fields) == 1
	}
	return false
}

// runCommand handles /copy, /export <path> and /quit
func (m Model) runCommand(fields []string) (tea.Model, tea.Cmd) {
	name, args := fields[0], fields[1:]

	m.textarea.Reset()
	m.notice = ""
	m.err = nil

	switch name {
	case "/quit", "/exit", "quit", "exit":
		return m.quit()

	case "/copy":
		last, ok := m.dispatcher.Transcript().LastAssistant()
		if !ok {
			m.notice = "Nothing to copy yet"
			break
		}
		if err := m.opts.Clipboard(last.Text); err != nil {
			m.err = fmt.Errorf("failed to copy to clipboard: %w", err)
			break
		}
		m.notice = "✓ Copied last answer to clipboard"

	case "/export":
		if len(args) == 0 {
			m.err = fmt.Errorf("usage: /export <path>")
			break
		}
		path := strings.Join(args, " ")
		if err := m.dispatcher.Transcript().WriteFile(path, "Reading Assistant"); err != nil {
			m.err = err
			break
		}
		m.notice = fmt.Sprintf("✓ Exported transcript to %s", path)
	}

	return m, nil
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.cancel()
	return m, tea.Quit
}

// View renders the TUI
func (m Model) View() string {
	if !m.ready {
		return loadingStyle.Render("  Initializing...")
	}

	var sections []string
	contentWidth := m.width - 4

	// Header
	headerParts := []string{titleStyle.Render("✦ Reading Assistant")}
	if m.opts.Endpoint != "" {
		headerParts = append(headerParts, hintStyle.Render("  •  "), subtitleStyle.Render(m.opts.Endpoint))
	}
	if m.opts.Scope != "" {
		headerParts = append(headerParts, hintStyle.Render("  •  "), subtitleStyle.Render(m.opts.Scope))
	}
	headerContent := lipgloss.JoinHorizontal(lipgloss.Center, headerParts...)
	sections = append(sections, headerStyle.Width(contentWidth).Render(headerContent))

	// Transcript
	var messagesContent string
	if m.dispatcher.Transcript().Len() == 0 {
		messagesContent = m.renderWelcome()
	} else {
		messagesContent = m.viewport.View()
	}
	sections = append(sections, messagesAreaStyle.
		Width(contentWidth).
		Height(m.viewport.Height).
		Render(messagesContent))

	// Input stays usable while requests are in flight
	inputParts := []string{inputLabelStyle.Render(models.LabelUser), m.textarea.View()}
	if m.pending > 0 {
		inputParts = append(inputParts, m.renderLoadingAnimation())
	}
	sections = append(sections, inputPanelStyle.Width(contentWidth).Render(
		lipgloss.JoinVertical(lipgloss.Left, inputParts...),
	))

	sections = append(sections, m.renderStatusBar(contentWidth))

	if m.err != nil {
		sections = append(sections, errorStyle.Render(fmt.Sprintf("⚠ %v", m.err)))
	} else if m.notice != "" {
		sections = append(sections, noticeStyle.Render(m.notice))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderWelcome() string {
	width := m.viewport.Width - 4
	height := m.viewport.Height

	title := welcomeTitleStyle.Width(width).Align(lipgloss.Center).Render("Ask a question about your course reading")
	subtitle := welcomeStyle.Width(width).Render("Answers cite the passages they draw from")

	content := lipgloss.JoinVertical(lipgloss.Center, "", title, "", subtitle, "")

	topPadding := (height - lipgloss.Height(content)) / 2
	if topPadding < 0 {
		topPadding = 0
	}
	return strings.Repeat("\n", topPadding) + content
}

// renderLoadingAnimation renders the in-flight indicator
func (m Model) renderLoadingAnimation() string {
	frame := m.animationFrame
	barChars := []string{"█", "█", "█", "█", "▓", "▒", "░"}

	var bar strings.Builder
	for i := 0; i < 12; i++ {
		colorIdx := (i + frame) % len(gradientColors)
		charIdx := (i + frame/2) % len(barChars)
		bar.WriteString(lipgloss.NewStyle().Foreground(gradientColors[colorIdx]).Render(barChars[charIdx]))
	}

	label := "waiting for the backend"
	if m.pending > 1 {
		label = fmt.Sprintf("waiting for %d replies", m.pending)
	}
	text := lipgloss.NewStyle().Foreground(colorText).Render(" " + label)

	return fmt.Sprintf("%s %s%s", m.spinner.View(), bar.String(), text)
}

// renderStatusBar renders the bottom status bar with shortcuts
func (m Model) renderStatusBar(width int) string {
	shortcuts := []key.Binding{keys.Send, keys.Newline, keys.Quit}

	var items []string
	for _, b := range shortcuts {
		h := b.Help()
		items = append(items, lipgloss.JoinHorizontal(
			lipgloss.Center,
			statusKeyStyle.Render(h.Key),
			statusDescStyle.Render(" "+h.Desc),
		))
	}
	items = append(items, statusDescStyle.Render("/copy /export /quit"))

	bar := strings.Join(items, "  │  ")
	return statusBarStyle.Width(width).Align(lipgloss.Center).Render(bar)
}

// updateViewport redraws the transcript into the viewport
func (m *Model) updateViewport() {
	var content strings.Builder
	bubbleWidth := m.viewport.Width - 6
	if bubbleWidth < 10 {
		bubbleWidth = 10
	}

	for i, e := range m.dispatcher.Transcript().Entries() {
		if i > 0 {
			content.WriteString("\n")
		}
		content.WriteString(m.renderEntry(e, bubbleWidth))
		content.WriteString("\n")
	}

	m.viewport.SetContent(content.String())
}

func (m Model) renderEntry(e models.Entry, width int) string {
	if e.Role.IsUser() {
		label := userLabelStyle.Render("⬤ " + e.Role.Label())
		return label + "\n" + userBubbleStyle.Width(width).Render(e.Text)
	}

	label := assistantLabelStyle.Render("✦ " + e.Role.Label())

	if strings.HasPrefix(e.Text, models.ErrorPrefix) && !e.HasCitations() {
		return label + "\n" + errorBubbleStyle.Width(width).Render(e.Text)
	}

	body := render.Answer(e.Text, m.opts.Markdown.WithWidth(width-4))
	out := label + "\n" + assistantBubbleStyle.Width(width).Render(body)
	if summary := models.SummarizeCitations(e.Citations); summary != "" {
		out += "\n" + citationStyle.Width(width).Render(summary)
	}
	return out
}

// RunChat starts the chat TUI and blocks until the user quits
func RunChat(ctx context.Context, d *dispatch.Dispatcher, opts Options) error {
	m := NewChatModel(ctx, d, opts)
	defer m.cancel()

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	_, err := p.Run()
	return err
}
