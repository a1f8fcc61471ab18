// Package dispatch turns a pending input into one backend request and
// renders both sides of the exchange into the transcript.
package dispatch

import (
	"context"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	apierrors "github.com/diogo/readingchat/internal/errors"
	"github.com/diogo/readingchat/internal/models"
	"github.com/diogo/readingchat/internal/transcript"
)

// Sender sends one message to the backend
type Sender interface {
	Chat(ctx context.Context, message string) (*models.ChatResponse, error)
}

// Input is where pending user text comes from. bubbles' textarea and
// textinput models satisfy it through a pointer.
type Input interface {
	Value() string
	Reset()
}

// Reply is the outcome of one request, ready to be rendered
type Reply struct {
	RequestID string
	Message   string
	Response  *models.ChatResponse
	Err       error
	Duration  time.Duration
}

// Dispatcher runs the send/render cycle. Sends are not serialized: several
// requests may be in flight and their replies render in completion order.
type Dispatcher struct {
	sender     Sender
	transcript *transcript.Transcript
	logger     zerolog.Logger
	inFlight   atomic.Int64
}

// Option configures a Dispatcher
type Option func(*Dispatcher)

// WithLogger sets the dispatcher logger
func WithLogger(logger zerolog.Logger) Option {
	return func(d *Dispatcher) {
		d.logger = logger
	}
}

// New creates a Dispatcher rendering into tr
func New(sender Sender, tr *transcript.Transcript, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		sender:     sender,
		transcript: tr,
		logger:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Transcript returns the transcript the dispatcher renders into
func (d *Dispatcher) Transcript() *transcript.Transcript {
	return d.transcript
}

// InFlight returns the number of requests awaiting a reply
func (d *Dispatcher) InFlight() int {
	return int(d.inFlight.Load())
}

// Begin reads and trims the input. Empty input is ignored. Otherwise the
// text is rendered as a user entry, the input is cleared, and the text is
// returned for Exchange.
func (d *Dispatcher) Begin(in Input) (string, bool) {
	text := strings.TrimSpace(in.Value())
	if text == "" {
		return "", false
	}

	d.transcript.Render(models.RoleUser, text, nil)
	in.Reset()
	return text, true
}

// Exchange issues exactly one request for text. It does not touch the
// transcript.
func (d *Dispatcher) Exchange(ctx context.Context, text string) Reply {
	reply := Reply{
		RequestID: uuid.NewString(),
		Message:   text,
	}

	d.inFlight.Add(1)
	defer d.inFlight.Add(-1)

	d.logger.Debug().Str("request_id", reply.RequestID).Int("chars", len(text)).Msg("sending message")

	start := time.Now()
	reply.Response, reply.Err = d.sender.Chat(ctx, text)
	reply.Duration = time.Since(start)

	if reply.Err != nil {
		d.logger.Warn().Err(reply.Err).
			Str("request_id", reply.RequestID).
			Str("kind", apierrors.GetKind(reply.Err).String()).
			Int("status", apierrors.GetHTTPStatus(reply.Err)).
			Dur("duration", reply.Duration).
			Msg("backend request failed")
	} else {
		d.logger.Debug().
			Str("request_id", reply.RequestID).
			Int("citations", len(reply.Response.Citations)).
			Dur("duration", reply.Duration).
			Msg("backend replied")
	}

	return reply
}

// Complete renders a reply as an assistant entry: the answer and its
// citations, or the error line
func (d *Dispatcher) Complete(reply Reply) models.Entry {
	if reply.Err != nil {
		return d.transcript.Render(models.RoleAssistant, apierrors.TranscriptLine(reply.Err), nil)
	}
	return d.transcript.Render(models.RoleAssistant, reply.Response.Text(), reply.Response.Citations)
}

// Deliver runs Exchange and Complete for text
func (d *Dispatcher) Deliver(ctx context.Context, text string) models.Entry {
	return d.Complete(d.Exchange(ctx, text))
}

// Send runs the whole cycle synchronously. It reports false when the input
// was empty and nothing was sent.
func (d *Dispatcher) Send(ctx context.Context, in Input) (models.Entry, bool) {
	text, ok := d.Begin(in)
	if !ok {
		return models.Entry{}, false
	}
	return d.Deliver(ctx, text), true
}
