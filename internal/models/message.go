package models

import (
	"time"

	"github.com/google/uuid"
)

// Role tags a transcript entry
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Label returns the display label for the role. Anything that is not the
// user is shown as the assistant.
func (r Role) Label() string {
	if r == RoleUser {
		return LabelUser
	}
	return LabelAssistant
}

// IsUser reports whether the role is the user
func (r Role) IsUser() bool {
	return r == RoleUser
}

// Entry is one rendered unit of the transcript. Entries are never mutated
// after creation.
type Entry struct {
	ID        string
	Role      Role
	Text      string
	Citations []Citation
	CreatedAt time.Time
}

// NewEntry creates an entry with a fresh ID. The citations slice is copied.
func NewEntry(role Role, text string, citations []Citation) Entry {
	var cites []Citation
	if len(citations) > 0 {
		cites = make([]Citation, len(citations))
		copy(cites, citations)
	}
	return Entry{
		ID:        uuid.NewString(),
		Role:      role,
		Text:      text,
		Citations: cites,
		CreatedAt: time.Now(),
	}
}

// HasCitations reports whether the entry carries a citation summary
func (e Entry) HasCitations() bool {
	return len(e.Citations) > 0
}
