package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/diogo/readingchat/internal/config"
	"github.com/diogo/readingchat/internal/render"
)

// choice is one selectable value of a setting
type choice struct {
	Value       string
	Description string
}

// setting is one editable line of the settings menu. Toggles have no
// choices and flip between "true" and "false".
type setting struct {
	Label   string
	Choices func() []choice
	Get     func(config.Config) string
	Set     func(*config.Config, string)
}

func (s setting) isToggle() bool {
	return s.Choices == nil
}

var logLevels = []choice{
	{Value: "debug", Description: "Every request and reply"},
	{Value: "info", Description: "Startup and configuration (default)"},
	{Value: "warn", Description: "Failed requests only"},
	{Value: "error", Description: "Errors only"},
}

var settingsMenu = []setting{
	{
		Label: "Copy to Clipboard",
		Get:   func(c config.Config) string { return strconv.FormatBool(c.CopyToClipboard) },
		Set:   func(c *config.Config, v string) { c.CopyToClipboard = v == "true" },
	},
	{
		Label: "Markdown Style",
		Choices: func() []choice {
			var out []choice
			for _, s := range render.AvailableStyles() {
				out = append(out, choice{Value: s.Name, Description: s.Description})
			}
			return out
		},
		Get: func(c config.Config) string {
			if c.Markdown.Style == "" {
				return render.StyleDark
			}
			return c.Markdown.Style
		},
		Set: func(c *config.Config, v string) { c.Markdown.Style = v },
	},
	{
		Label: "TUI Theme",
		Choices: func() []choice {
			var out []choice
			for _, name := range render.PaletteNames() {
				p, _ := render.PaletteByName(name)
				out = append(out, choice{Value: p.Name, Description: p.Description})
			}
			return out
		},
		Get: func(c config.Config) string {
			if c.TUITheme == "" {
				return render.DefaultPaletteName
			}
			return c.TUITheme
		},
		Set: func(c *config.Config, v string) {
			c.TUITheme = v
			render.SetPalette(v)
			UpdateTheme()
		},
	},
	{
		Label:   "Log Level",
		Choices: func() []choice { return logLevels },
		Get: func(c config.Config) string {
			if c.LogLevel == "" {
				return "info"
			}
			return c.LogLevel
		},
		Set: func(c *config.Config, v string) { c.LogLevel = v },
	},
}

// menuExit is the index of the Exit line, after the settings
var menuExit = len(settingsMenu)

// feedbackClearMsg is sent to clear feedback messages
type feedbackClearMsg struct{}

// SettingsModel is the interactive editor for the config file
type SettingsModel struct {
	config config.Config
	path   string
	save   func(string, config.Config) error

	// Navigation
	selecting    bool // a choice list is open for settingsMenu[cursor]
	cursor       int
	choiceCursor int

	feedback        string
	feedbackTimeout time.Duration

	width  int
	height int
	ready  bool
}

// NewSettingsModel creates a settings editor that saves cfg to path
func NewSettingsModel(cfg config.Config, path string) SettingsModel {
	return SettingsModel{
		config:          cfg,
		path:            path,
		save:            config.SaveConfigTo,
		feedbackTimeout: 2 * time.Second,
	}
}

// Config returns the edited configuration
func (m SettingsModel) Config() config.Config {
	return m.config
}

// Init initializes the model
func (m SettingsModel) Init() tea.Cmd {
	return nil
}

func clearFeedback(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return feedbackClearMsg{}
	})
}

// Update handles messages and updates the model
func (m SettingsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

	case feedbackClearMsg:
		m.feedback = ""

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "esc":
			if m.selecting {
				m.selecting = false
			} else {
				return m, tea.Quit
			}

		case "up", "k":
			if m.selecting {
				m.choiceCursor = wrap(m.choiceCursor-1, len(settingsMenu[m.cursor].Choices()))
			} else {
				m.cursor = wrap(m.cursor-1, menuExit+1)
			}

		case "down", "j":
			if m.selecting {
				m.choiceCursor = wrap(m.choiceCursor+1, len(settingsMenu[m.cursor].Choices()))
			} else {
				m.cursor = wrap(m.cursor+1, menuExit+1)
			}

		case "enter", " ":
			return m.handleSelect()
		}
	}

	return m, nil
}

func wrap(i, n int) int {
	if n == 0 {
		return 0
	}
	return (i%n + n) % n
}

func (m SettingsModel) handleSelect() (tea.Model, tea.Cmd) {
	if !m.selecting && m.cursor == menuExit {
		return m, tea.Quit
	}

	s := settingsMenu[m.cursor]

	switch {
	case s.isToggle():
		next := "true"
		if s.Get(m.config) == "true" {
			next = "false"
		}
		return m.apply(s, next)

	case !m.selecting:
		m.selecting = true
		m.choiceCursor = 0
		current := s.Get(m.config)
		for i, c := range s.Choices() {
			if c.Value == current {
				m.choiceCursor = i
				break
			}
		}
		return m, nil

	default:
		m.selecting = false
		return m.apply(s, s.Choices()[m.choiceCursor].Value)
	}
}

// apply sets a value and saves the config file
func (m SettingsModel) apply(s setting, value string) (tea.Model, tea.Cmd) {
	s.Set(&m.config, value)
	if err := m.save(m.path, m.config); err != nil {
		m.feedback = fmt.Sprintf("Error: %v", err)
	} else {
		m.feedback = fmt.Sprintf("%s set to %s", s.Label, displayValue(s, value))
	}
	return m, clearFeedback(m.feedbackTimeout)
}

func displayValue(s setting, v string) string {
	if !s.isToggle() {
		return v
	}
	if v == "true" {
		return "enabled"
	}
	return "disabled"
}

// View renders the TUI
func (m SettingsModel) View() string {
	if !m.ready {
		return loadingStyle.Render("  Initializing...")
	}

	contentWidth := m.width - 4
	if contentWidth < 40 {
		contentWidth = 40
	}

	sections := []string{
		configHeaderStyle.Width(contentWidth).Render(configTitleStyle.Render("✦ Configuration")),
		configPanelStyle.Width(contentWidth).Render(lipgloss.JoinVertical(lipgloss.Left,
			configSectionTitleStyle.Render("Paths"),
			fmt.Sprintf("   Config:   %s", configPathStyle.Render(m.path)),
			fmt.Sprintf("   Endpoint: %s", configValueStyle.Render(m.config.Endpoint)),
			fmt.Sprintf("   Scope:    %s", configValueStyle.Render(m.config.CourseID+" / "+m.config.TenantID)),
		)),
	}

	var body string
	if m.selecting {
		body = m.renderChoices()
	} else {
		body = m.renderMainMenu()
	}
	sections = append(sections, configPanelStyle.Width(contentWidth).Render(body))

	if m.feedback != "" {
		sections = append(sections, configFeedbackStyle.Render("✓ "+m.feedback))
	}

	sections = append(sections, m.renderStatusBar(contentWidth))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func menuLine(selected bool, label string) string {
	if selected {
		return configCursorStyle.Render("▸ ") + configMenuSelectedStyle.Render(label)
	}
	return "  " + configMenuItemStyle.Render(label)
}

func (m SettingsModel) renderMainMenu() string {
	lines := []string{configSectionTitleStyle.Render("Settings"), ""}

	for i, s := range settingsMenu {
		var value string
		if s.isToggle() {
			value = renderBoolValue(s.Get(m.config) == "true")
		} else {
			value = configValueStyle.Render(s.Get(m.config))
		}
		pad := strings.Repeat(" ", max(2, 20-len(s.Label)))
		lines = append(lines, menuLine(m.cursor == i, s.Label)+pad+value)
	}

	lines = append(lines, "", menuLine(m.cursor == menuExit, "Exit"))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m SettingsModel) renderChoices() string {
	s := settingsMenu[m.cursor]
	lines := []string{configSectionTitleStyle.Render("Select " + s.Label), ""}

	current := s.Get(m.config)
	for i, c := range s.Choices() {
		line := menuLine(m.choiceCursor == i, fmt.Sprintf("%s - %s", c.Value, c.Description))
		if c.Value == current {
			line += configStatusOkStyle.Render(" (current)")
		}
		lines = append(lines, line)
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderBoolValue(value bool) string {
	if value {
		return configEnabledStyle.Render("enabled")
	}
	return configDisabledStyle.Render("disabled")
}

func (m SettingsModel) renderStatusBar(width int) string {
	back := "Exit"
	if m.selecting {
		back = "Back"
	}
	shortcuts := [][2]string{{"↑↓", "Navigate"}, {"Enter", "Select"}, {"Esc", back}}

	var items []string
	for _, s := range shortcuts {
		items = append(items, statusKeyStyle.Render(s[0])+statusDescStyle.Render(" "+s[1]))
	}
	return configStatusBarStyle.Width(width).Align(lipgloss.Center).Render(strings.Join(items, "  │  "))
}

// RunSettings starts the settings editor for cfg, saving to path
func RunSettings(cfg config.Config, path string) error {
	_, err := tea.NewProgram(NewSettingsModel(cfg, path), tea.WithAltScreen()).Run()
	return err
}
