package transcript

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/diogo/readingchat/internal/models"
)

// ExportFormat represents the format for exporting a transcript
type ExportFormat string

const (
	ExportFormatMarkdown ExportFormat = "markdown"
	ExportFormatJSON     ExportFormat = "json"
)

// FormatForPath picks the export format from a file extension
func FormatForPath(path string) ExportFormat {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return ExportFormatJSON
	}
	return ExportFormatMarkdown
}

// Markdown exports the transcript to Markdown
func (t *Transcript) Markdown(title string) string {
	entries := t.Entries()

	var sb strings.Builder

	if title != "" {
		sb.WriteString("# ")
		sb.WriteString(title)
		sb.WriteString("\n\n")
	}

	sb.WriteString(fmt.Sprintf("**Entries:** %d\n\n---\n\n", len(entries)))

	for i, e := range entries {
		sb.WriteString("## ")
		sb.WriteString(e.Role.Label())
		if !e.CreatedAt.IsZero() {
			sb.WriteString(" (")
			sb.WriteString(e.CreatedAt.Format("15:04:05"))
			sb.WriteString(")")
		}
		sb.WriteString("\n\n")

		sb.WriteString(e.Text)
		sb.WriteString("\n")

		if e.HasCitations() {
			sb.WriteString("\n")
			for _, c := range e.Citations {
				sb.WriteString("- ")
				sb.WriteString(c.String())
				if c.SourceURL != "" {
					sb.WriteString(" (")
					sb.WriteString(c.SourceURL)
					sb.WriteString(")")
				}
				sb.WriteString("\n")
			}
		}

		if i < len(entries)-1 {
			sb.WriteString("\n---\n\n")
		}
	}

	return sb.String()
}

type exportCitation struct {
	Tag       string `json:"tag"`
	Title     string `json:"title,omitempty"`
	Page      string `json:"page,omitempty"`
	DocID     string `json:"docId,omitempty"`
	ChunkID   string `json:"chunkId,omitempty"`
	SourceURL string `json:"sourceUrl,omitempty"`
}

type exportEntry struct {
	ID        string           `json:"id"`
	Role      models.Role      `json:"role"`
	Text      string           `json:"text"`
	Citations []exportCitation `json:"citations,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
}

// JSON exports the transcript to indented JSON
func (t *Transcript) JSON() ([]byte, error) {
	entries := t.Entries()

	out := make([]exportEntry, len(entries))
	for i, e := range entries {
		out[i] = exportEntry{
			ID:        e.ID,
			Role:      e.Role,
			Text:      e.Text,
			CreatedAt: e.CreatedAt,
		}
		for _, c := range e.Citations {
			ec := exportCitation{
				Tag:       c.Tag,
				Title:     c.Title,
				DocID:     c.DocID,
				ChunkID:   c.ChunkID,
				SourceURL: c.SourceURL,
			}
			if c.HasPage {
				ec.Page = c.Page
			}
			out[i].Citations = append(out[i].Citations, ec)
		}
	}

	return json.MarshalIndent(out, "", "  ")
}

// WriteFile exports the transcript to path, choosing the format from the
// file extension
func (t *Transcript) WriteFile(path, title string) error {
	var data []byte
	switch FormatForPath(path) {
	case ExportFormatJSON:
		var err error
		data, err = t.JSON()
		if err != nil {
			return fmt.Errorf("failed to encode transcript: %w", err)
		}
	default:
		data = []byte(t.Markdown(title))
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write transcript: %w", err)
	}
	return nil
}
