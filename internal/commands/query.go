package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/diogo/readingchat/internal/dispatch"
	"github.com/diogo/readingchat/internal/models"
	"github.com/diogo/readingchat/internal/transcript"
)

// errReplyFailed is returned when a send failed and the error line has
// already been printed
var errReplyFailed = errors.New("backend request failed")

type queryOptions struct {
	raw    bool
	output string
}

// runQuery sends one message and prints both sides of the exchange as they
// are rendered
func (a *app) runQuery(ctx context.Context, message string, opts queryOptions) error {
	client, err := a.deps.NewClient(a.cfg, a.logger)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}

	tr := transcript.New()
	d := dispatch.New(client, tr, dispatch.WithLogger(a.logger))

	p := a.newPrinter(opts.raw)
	tr.OnAppend(p.print)

	text, ok := d.Begin(dispatch.NewTextInput(message))
	if !ok {
		a.logger.Debug().Msg("empty message, nothing sent")
		return nil
	}

	var spin *spinner
	if p.mode == modeDecorated {
		spin = newSpinner(a.deps.Stderr, "Asking the reading assistant")
		spin.start()
	}

	reply := d.Exchange(ctx, text)

	if spin != nil {
		if reply.Err != nil {
			spin.stopWithError()
		} else {
			spin.stopWithSuccess(fmt.Sprintf("Answered in %s", reply.Duration.Round(time.Millisecond)))
		}
	}

	entry := d.Complete(reply)

	if opts.output != "" {
		if err := a.saveTranscript(tr, opts.output, opts.raw); err != nil {
			return err
		}
	}

	if reply.Err != nil {
		return errReplyFailed
	}

	if a.cfg.CopyToClipboard {
		a.copyAnswer(entry, opts.raw)
	}
	return nil
}

func (a *app) saveTranscript(tr *transcript.Transcript, path string, quiet bool) error {
	if err := tr.WriteFile(path, "Reading Assistant"); err != nil {
		return err
	}
	if !quiet {
		fmt.Fprintln(a.deps.Stderr, successLine(fmt.Sprintf("Transcript saved to %s", path)))
	}
	return nil
}

// copyAnswer copies an answer to the clipboard. Failure is only a warning.
func (a *app) copyAnswer(e models.Entry, quiet bool) {
	if err := a.deps.Clipboard(e.Text); err != nil {
		a.logger.Warn().Err(err).Msg("clipboard copy failed")
		if !quiet {
			fmt.Fprintln(a.deps.Stderr, warningLine(fmt.Sprintf("Failed to copy to clipboard: %v", err)))
		}
		return
	}
	if !quiet {
		fmt.Fprintln(a.deps.Stderr, successLine("Copied to clipboard"))
	}
}
