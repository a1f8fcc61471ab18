package dispatch

import "sync"

// TextInput is an Input backed by a string, for non-interactive callers
type TextInput struct {
	mu    sync.Mutex
	value string
}

// NewTextInput creates a TextInput holding value
func NewTextInput(value string) *TextInput {
	return &TextInput{value: value}
}

// Value returns the pending text
func (t *TextInput) Value() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.value
}

// SetValue replaces the pending text
func (t *TextInput) SetValue(s string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.value = s
}

// Reset clears the pending text
func (t *TextInput) Reset() {
	t.SetValue("")
}
