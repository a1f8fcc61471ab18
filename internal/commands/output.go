package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/diogo/readingchat/internal/models"
	"github.com/diogo/readingchat/internal/render"
	"github.com/diogo/readingchat/internal/transcript"
)

// outputMode selects how entries are written to stdout
type outputMode int

const (
	// modePlain writes labelled plain text, for pipes
	modePlain outputMode = iota
	// modeRaw writes only answers and their citation lines
	modeRaw
	// modeDecorated writes styled bubbles with rendered markdown
	modeDecorated
)

func colorSuccess() lipgloss.Color {
	return render.CurrentPalette().User
}

func successLine(msg string) string {
	return lipgloss.NewStyle().Foreground(colorSuccess()).Render("✓ " + msg)
}

func warningLine(msg string) string {
	return lipgloss.NewStyle().Foreground(render.CurrentPalette().Error).Render("⚠ " + msg)
}

// printer writes transcript entries to a writer
type printer struct {
	w        io.Writer
	mode     outputMode
	width    int
	markdown render.Options
	count    int
}

func (a *app) newPrinter(raw bool) *printer {
	mode := modePlain
	switch {
	case raw:
		mode = modeRaw
	case a.deps.StdoutIsTerminal():
		mode = modeDecorated
	}

	width := getTerminalWidth() - 4
	if width < 40 {
		width = 40
	}
	if width > 120 {
		width = 120
	}

	return &printer{
		w:        a.deps.Stdout,
		mode:     mode,
		width:    width,
		markdown: render.OptionsFromConfig(a.cfg.Markdown),
	}
}

// print writes one entry. Raw mode skips user entries.
func (p *printer) print(e models.Entry) {
	if p.mode == modeRaw && e.Role.IsUser() {
		return
	}
	p.separate()

	switch p.mode {
	case modeRaw:
		lines := transcript.Lines(e)[1:]
		fmt.Fprintln(p.w, strings.Join(lines, "\n"))
	case modePlain:
		fmt.Fprintln(p.w, transcript.Format(e))
	default:
		fmt.Fprintln(p.w, p.decorate(e))
	}
}

// printReply writes an answer together with the question it replies to
func (p *printer) printReply(question string, e models.Entry) {
	p.separate()

	header := "Re: " + firstLine(question)
	if p.mode == modeDecorated {
		header = lipgloss.NewStyle().Foreground(render.CurrentPalette().TextDim).Italic(true).Render(header)
	}
	fmt.Fprintln(p.w, header)

	// The header already separates this reply
	p.count = 0
	p.print(e)
}

func (p *printer) separate() {
	if p.count > 0 {
		fmt.Fprintln(p.w)
	}
	p.count++
}

func (p *printer) decorate(e models.Entry) string {
	pal := render.CurrentPalette()

	if e.Role.IsUser() {
		label := lipgloss.NewStyle().Foreground(pal.User).Bold(true).Render("⬤ " + e.Role.Label())
		return label + "\n" + lipgloss.NewStyle().Foreground(pal.Text).Render(e.Text)
	}

	label := lipgloss.NewStyle().Foreground(pal.Assistant).Bold(true).Render("✦ " + e.Role.Label())
	bubble := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		Padding(0, 1).
		Width(p.width)

	if strings.HasPrefix(e.Text, models.ErrorPrefix) && !e.HasCitations() {
		return label + "\n" + bubble.BorderForeground(pal.Error).Foreground(pal.Error).Render(e.Text)
	}

	body := render.Answer(e.Text, p.markdown.WithWidth(p.width-4))
	out := label + "\n" + bubble.BorderForeground(pal.Assistant).Foreground(pal.Text).Render(body)
	if summary := models.SummarizeCitations(e.Citations); summary != "" {
		out += "\n" + lipgloss.NewStyle().Foreground(pal.Citation).Italic(true).Width(p.width).Render(summary)
	}
	return out
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i] + " …"
	}
	return s
}

// getTerminalWidth returns the terminal width or a default value
func getTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}
