package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoleLabel(t *testing.T) {
	tests := []struct {
		role Role
		want string
	}{
		{RoleUser, "You"},
		{RoleAssistant, "Assistant"},
		{Role("system"), "Assistant"},
		{Role(""), "Assistant"},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.role.Label())
		})
	}
}

func TestCitationString(t *testing.T) {
	tests := []struct {
		name     string
		citation Citation
		want     string
	}{
		{
			name:     "all fields",
			citation: Citation{Tag: "A", Title: "Doc", Page: "3", HasPage: true},
			want:     "[A] Doc p.3",
		},
		{
			name:     "tag only",
			citation: Citation{Tag: "B"},
			want:     "[B]  p.?",
		},
		{
			name:     "string page",
			citation: Citation{Tag: "C1", Title: "Ch. 2", Page: "xii", HasPage: true},
			want:     "[C1] Ch. 2 p.xii",
		},
		{
			name:     "empty page is kept",
			citation: Citation{Tag: "C2", Page: "", HasPage: true},
			want:     "[C2]  p.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.citation.String())
		})
	}
}

func TestSummarizeCitations(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		assert.Equal(t, "", SummarizeCitations(nil))
		assert.Equal(t, "", SummarizeCitations([]Citation{}))
	})

	t.Run("single", func(t *testing.T) {
		got := SummarizeCitations([]Citation{{Tag: "A", Title: "Doc", Page: "3", HasPage: true}})
		assert.Equal(t, "Citations: [A] Doc p.3", got)
	})

	t.Run("keeps input order", func(t *testing.T) {
		got := SummarizeCitations([]Citation{
			{Tag: "C2", Title: "Second"},
			{Tag: "C1", Title: "First", Page: "1", HasPage: true},
			{Tag: "C2", Title: "Second"},
		})
		assert.Equal(t, "Citations: [C2] Second p.? | [C1] First p.1 | [C2] Second p.?", got)
	})
}

func TestNewEntry(t *testing.T) {
	cites := []Citation{{Tag: "A"}}
	e := NewEntry(RoleAssistant, "answer", cites)

	require.NotEmpty(t, e.ID)
	assert.Equal(t, RoleAssistant, e.Role)
	assert.Equal(t, "answer", e.Text)
	assert.True(t, e.HasCitations())
	assert.False(t, e.CreatedAt.IsZero())

	// The entry owns its citations
	cites[0].Tag = "changed"
	assert.Equal(t, "A", e.Citations[0].Tag)

	other := NewEntry(RoleUser, "hi", nil)
	assert.NotEqual(t, e.ID, other.ID)
	assert.False(t, other.HasCitations())
}

func TestChatResponseText(t *testing.T) {
	var nilResp *ChatResponse
	assert.Equal(t, "(no answer)", nilResp.Text())
	assert.Equal(t, "(no answer)", (&ChatResponse{}).Text())
	assert.Equal(t, "42", (&ChatResponse{Answer: "42", HasAnswer: true}).Text())
	assert.Equal(t, "", (&ChatResponse{Answer: "", HasAnswer: true}).Text())
}
