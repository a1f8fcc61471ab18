package render

import (
	"sort"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Palette is the color scheme of the chat TUI
type Palette struct {
	Name        string
	Description string

	Border lipgloss.Color

	// Role colors
	User      lipgloss.Color
	Assistant lipgloss.Color
	Citation  lipgloss.Color
	Error     lipgloss.Color

	Text     lipgloss.Color
	TextDim  lipgloss.Color
	TextMute lipgloss.Color
}

var palettes = map[string]Palette{
	"tokyonight": {
		Name:        "tokyonight",
		Description: "Tokyo Night - dark with blue accents",
		Border:      "#414868",
		User:        "#9ece6a",
		Assistant:   "#7aa2f7",
		Citation:    "#bb9af7",
		Error:       "#f7768e",
		Text:        "#c0caf5",
		TextDim:     "#565f89",
		TextMute:    "#3b4261",
	},
	"catppuccin": {
		Name:        "catppuccin",
		Description: "Catppuccin Mocha - warm pastels",
		Border:      "#45475a",
		User:        "#a6e3a1",
		Assistant:   "#89b4fa",
		Citation:    "#cba6f7",
		Error:       "#f38ba8",
		Text:        "#cdd6f4",
		TextDim:     "#6c7086",
		TextMute:    "#45475a",
	},
	"nord": {
		Name:        "nord",
		Description: "Nord - cool arctic tones",
		Border:      "#4c566a",
		User:        "#a3be8c",
		Assistant:   "#88c0d0",
		Citation:    "#b48ead",
		Error:       "#bf616a",
		Text:        "#eceff4",
		TextDim:     "#7b88a1",
		TextMute:    "#4c566a",
	},
	"dracula": {
		Name:        "dracula",
		Description: "Dracula - vibrant dark",
		Border:      "#6272a4",
		User:        "#50fa7b",
		Assistant:   "#8be9fd",
		Citation:    "#ff79c6",
		Error:       "#ff5555",
		Text:        "#f8f8f2",
		TextDim:     "#6272a4",
		TextMute:    "#44475a",
	},
}

// DefaultPaletteName is used when the configured palette is unknown
const DefaultPaletteName = "tokyonight"

var (
	paletteMu      sync.RWMutex
	currentPalette = palettes[DefaultPaletteName]
)

// CurrentPalette returns the active palette
func CurrentPalette() Palette {
	paletteMu.RLock()
	defer paletteMu.RUnlock()
	return currentPalette
}

// SetPalette activates the named palette. Unknown names leave the current
// palette in place and return false.
func SetPalette(name string) bool {
	p, ok := PaletteByName(name)
	if !ok {
		return false
	}
	paletteMu.Lock()
	currentPalette = p
	paletteMu.Unlock()
	return true
}

// PaletteByName looks up a palette
func PaletteByName(name string) (Palette, bool) {
	p, ok := palettes[name]
	return p, ok
}

// PaletteNames returns the available palette names, sorted
func PaletteNames() []string {
	names := make([]string, 0, len(palettes))
	for name := range palettes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
