package export

import (
	"fmt"
	"strings"
	"time"

	"notes-backend/internal/model"
	"notes-backend/internal/richtext"
)

// NoteText экспортирует заметку в плоский текст без разметки
func NoteText(note model.Note) string {
	var sb strings.Builder

	sb.WriteString(note.Title + "\n")
	sb.WriteString(strings.Repeat("=", len(note.Title)) + "\n\n")

	if body := richtext.StripHTML(note.Content); body != "" {
		sb.WriteString(body + "\n\n")
	}

	if len(note.Tags) > 0 {
		sb.WriteString("Tags: " + strings.Join(note.Tags, ", ") + "\n")
	}
	sb.WriteString(fmt.Sprintf("Created: %s\n", note.CreatedAt.Format(timeLayout)))

	return sb.String()
}

// CollectionText экспортирует набор заметок в плоский текст
func CollectionText(notes []model.Note, exportDate time.Time) string {
	parts := make([]string, 0, len(notes)+1)
	parts = append(parts, fmt.Sprintf("Notes Export (%d notes)\nExported: %s\n",
		len(notes), exportDate.Format(timeLayout)))

	for _, note := range notes {
		parts = append(parts, NoteText(note))
	}

	return strings.Join(parts, "\n----------------------------------------\n\n")
}
