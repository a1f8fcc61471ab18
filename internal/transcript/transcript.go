// Package transcript holds the append-only chat transcript shown to the user.
package transcript

import (
	"strings"
	"sync"

	"github.com/diogo/readingchat/internal/models"
)

// Listener is called after every append, in append order. Views use it to
// redraw and scroll to the newest entry. Listeners run under the
// transcript lock and must not call back into it.
type Listener func(models.Entry)

// Transcript is the ordered, append-only log of rendered entries. It is
// safe for concurrent use.
type Transcript struct {
	mu        sync.RWMutex
	entries   []models.Entry
	listeners []Listener
}

// New creates an empty transcript
func New() *Transcript {
	return &Transcript{}
}

// OnAppend registers a listener
func (t *Transcript) OnAppend(fn Listener) {
	if fn == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.listeners = append(t.listeners, fn)
}

// Render appends one entry and notifies listeners. Earlier entries are
// never touched.
func (t *Transcript) Render(role models.Role, text string, citations []models.Citation) models.Entry {
	entry := models.NewEntry(role, text, citations)

	t.mu.Lock()
	t.entries = append(t.entries, entry)
	listeners := make([]Listener, len(t.listeners))
	copy(listeners, t.listeners)
	// Notify while holding the lock so listeners see appends in order.
	for _, fn := range listeners {
		fn(entry)
	}
	t.mu.Unlock()

	return entry
}

// Entries returns a copy of all entries in append order
func (t *Transcript) Entries() []models.Entry {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]models.Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Len returns the number of entries
func (t *Transcript) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.entries)
}

// LastAssistant returns the most recent assistant entry
func (t *Transcript) LastAssistant() (models.Entry, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	for i := len(t.entries) - 1; i >= 0; i-- {
		if !t.entries[i].Role.IsUser() {
			return t.entries[i], true
		}
	}
	return models.Entry{}, false
}

// Lines returns the plain-text lines of an entry: label, text and, when
// present, the citation summary.
func Lines(e models.Entry) []string {
	lines := []string{e.Role.Label(), e.Text}
	if summary := models.SummarizeCitations(e.Citations); summary != "" {
		lines = append(lines, summary)
	}
	return lines
}

// Format renders an entry as plain text
func Format(e models.Entry) string {
	return strings.Join(Lines(e), "\n")
}
