package tui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diogo/readingchat/internal/config"
	"github.com/diogo/readingchat/internal/render"
)

type savedConfig struct {
	path string
	cfg  config.Config
	n    int
}

func newTestSettings(t *testing.T) (SettingsModel, *savedConfig) {
	t.Helper()
	saved := &savedConfig{}
	m := NewSettingsModel(config.DefaultConfig(), "/tmp/readingchat/config.yaml")
	m.save = func(path string, cfg config.Config) error {
		saved.path, saved.cfg = path, cfg
		saved.n++
		return nil
	}
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return updated.(SettingsModel), saved
}

func pressKey(t *testing.T, m SettingsModel, s string) SettingsModel {
	t.Helper()
	var msg tea.KeyMsg
	switch s {
	case "up":
		msg = tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		msg = tea.KeyMsg{Type: tea.KeyDown}
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	}
	updated, _ := m.Update(msg)
	return updated.(SettingsModel)
}

func TestSettings_Navigation(t *testing.T) {
	m, _ := newTestSettings(t)

	assert.Equal(t, 0, m.cursor)
	m = pressKey(t, m, "up")
	assert.Equal(t, menuExit, m.cursor, "cursor wraps to Exit")
	m = pressKey(t, m, "down")
	assert.Equal(t, 0, m.cursor)
}

func TestSettings_ToggleClipboard(t *testing.T) {
	m, saved := newTestSettings(t)

	m = pressKey(t, m, "enter")

	assert.True(t, m.Config().CopyToClipboard)
	assert.Equal(t, 1, saved.n)
	assert.True(t, saved.cfg.CopyToClipboard)
	assert.Equal(t, "/tmp/readingchat/config.yaml", saved.path)
	assert.Equal(t, "Copy to Clipboard set to enabled", m.feedback)

	updated, _ := m.Update(feedbackClearMsg{})
	assert.Equal(t, "", updated.(SettingsModel).feedback)
}

func TestSettings_SelectTheme(t *testing.T) {
	defer func() {
		render.SetPalette(render.DefaultPaletteName)
		UpdateTheme()
	}()

	m, saved := newTestSettings(t)
	m = pressKey(t, m, "down")
	m = pressKey(t, m, "down") // TUI Theme
	m = pressKey(t, m, "enter")
	require.True(t, m.selecting)

	names := render.PaletteNames()
	assert.Equal(t, names[m.choiceCursor], render.DefaultPaletteName, "cursor starts on the current value")
	assert.Contains(t, m.View(), "(current)")

	m = pressKey(t, m, "down")
	want := names[(m.choiceCursor)%len(names)]
	m = pressKey(t, m, "enter")

	assert.False(t, m.selecting)
	assert.Equal(t, want, saved.cfg.TUITheme)
	assert.Equal(t, want, render.CurrentPalette().Name)
}

func TestSettings_EscClosesChoiceThenQuits(t *testing.T) {
	m, _ := newTestSettings(t)
	m = pressKey(t, m, "down") // Markdown Style
	m = pressKey(t, m, "enter")
	require.True(t, m.selecting)

	m = pressKey(t, m, "esc")
	assert.False(t, m.selecting)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestSettings_Exit(t *testing.T) {
	m, saved := newTestSettings(t)
	m = pressKey(t, m, "up")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Equal(t, 0, saved.n)
}

func TestSettings_SaveError(t *testing.T) {
	m, _ := newTestSettings(t)
	m.save = func(string, config.Config) error { return errors.New("read-only") }

	m = pressKey(t, m, "enter")
	assert.Equal(t, "Error: read-only", m.feedback)
}

func TestSettings_View(t *testing.T) {
	m, _ := newTestSettings(t)
	view := m.View()

	assert.Contains(t, view, "Configuration")
	assert.Contains(t, view, "/tmp/readingchat/config.yaml")
	assert.Contains(t, view, "demo-course / demo-tenant")
	assert.Contains(t, view, "Log Level")
	assert.Contains(t, view, "disabled")

	fresh := NewSettingsModel(config.DefaultConfig(), "x")
	assert.Contains(t, fresh.View(), "Initializing")
}
