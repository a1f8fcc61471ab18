package commands

import (
	"context"
	"io"
	"os"

	"github.com/atotto/clipboard"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"

	"github.com/diogo/readingchat/internal/api"
	"github.com/diogo/readingchat/internal/config"
	"github.com/diogo/readingchat/internal/dispatch"
	"github.com/diogo/readingchat/internal/tui"
)

// Dependencies holds the external dependencies for the commands.
// This allows for dependency injection and easier testing.
type Dependencies struct {
	// NewClient builds the backend client from the effective config
	NewClient func(cfg config.Config, logger zerolog.Logger) (api.ChatClient, error)

	// RunChat runs the interactive chat screen
	RunChat func(ctx context.Context, d *dispatch.Dispatcher, opts tui.Options) error

	// RunSettings runs the interactive settings editor
	RunSettings func(cfg config.Config, path string) error

	Clipboard func(string) error

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// StdinIsTerminal reports whether stdin is interactive. Piped input is
	// read as the message.
	StdinIsTerminal func() bool
	// StdoutIsTerminal selects decorated or plain output
	StdoutIsTerminal func() bool
}

// NewDependencies creates a Dependencies struct with the production
// implementations.
func NewDependencies() *Dependencies {
	return &Dependencies{
		NewClient:        newClient,
		RunChat:          tui.RunChat,
		RunSettings:      tui.RunSettings,
		Clipboard:        clipboard.WriteAll,
		Stdin:            os.Stdin,
		Stdout:           os.Stdout,
		Stderr:           os.Stderr,
		StdinIsTerminal:  func() bool { return isTerminal(os.Stdin) },
		StdoutIsTerminal: func() bool { return isTerminal(os.Stdout) },
	}
}

func newClient(cfg config.Config, logger zerolog.Logger) (api.ChatClient, error) {
	return api.NewClient(
		api.WithEndpoint(cfg.Endpoint),
		api.WithScope(cfg.CourseID, cfg.TenantID),
		api.WithTimeout(cfg.TimeoutSeconds),
		api.WithLogger(logger),
	)
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
