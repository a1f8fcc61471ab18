// Package render provides markdown and color-theme rendering for terminal output.
package render

import (
	"os"

	"github.com/diogo/readingchat/internal/config"
)

// Options configures the markdown renderer
type Options struct {
	Width            int
	Style            string // glamour style name or path to a JSON style
	EnableEmoji      bool
	PreserveNewLines bool
	TableWrap        bool
	InlineTableLinks bool
}

// DefaultOptions returns the default configuration
func DefaultOptions() Options {
	return OptionsFromConfig(config.DefaultMarkdownConfig())
}

// OptionsFromConfig converts the markdown section of the user config. The
// GLAMOUR_STYLE environment variable overrides the configured style.
func OptionsFromConfig(md config.MarkdownConfig) Options {
	opts := Options{
		Width:            80,
		Style:            md.Style,
		EnableEmoji:      md.EnableEmoji,
		PreserveNewLines: md.PreserveNewLines,
		TableWrap:        md.TableWrap,
		InlineTableLinks: md.InlineTableLinks,
	}
	if opts.Style == "" {
		opts.Style = StyleDark
	}
	if style := os.Getenv("GLAMOUR_STYLE"); style != "" {
		opts.Style = style
	}
	return opts
}

// WithWidth returns Options with the specified width
func (o Options) WithWidth(width int) Options {
	o.Width = width
	return o
}

// WithStyle returns Options with the specified style
func (o Options) WithStyle(style string) Options {
	o.Style = style
	return o
}
