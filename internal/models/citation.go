package models

import "strings"

// Citation is a reference attached to an assistant answer
type Citation struct {
	Tag   string
	Title string // empty when the backend sent none

	// Page holds the textual form of the page reference, which arrives
	// as either a number or a string. HasPage is false when it was absent
	// or null.
	Page    string
	HasPage bool

	// Informational fields the backend may include
	DocID     string
	ChunkID   string
	SourceURL string
}

// PageLabel returns the page reference or the missing-page marker
func (c Citation) PageLabel() string {
	if !c.HasPage {
		return MissingPageMarker
	}
	return c.Page
}

// String formats the citation as "[tag] title p.page"
func (c Citation) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	sb.WriteString(c.Tag)
	sb.WriteString("] ")
	sb.WriteString(c.Title)
	sb.WriteString(" p.")
	sb.WriteString(c.PageLabel())
	return sb.String()
}

// SummarizeCitations joins citations in input order behind the
// "Citations: " prefix. It returns "" for an empty list.
func SummarizeCitations(citations []Citation) string {
	if len(citations) == 0 {
		return ""
	}
	parts := make([]string, len(citations))
	for i, c := range citations {
		parts[i] = c.String()
	}
	return CitationsPrefix + strings.Join(parts, CitationSeparator)
}
