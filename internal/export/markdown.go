package export

import (
	"fmt"
	"strings"
	"time"

	"notes-backend/internal/model"
)

// timeLayout формат дат в Markdown экспорте
const timeLayout = "2006-01-02 15:04"

// NoteMarkdown экспортирует одну заметку в Markdown:
// заголовок, содержимое, опциональная строка тегов и блок метаданных
func NoteMarkdown(note model.Note) string {
	var sb strings.Builder

	sb.WriteString("# " + note.Title + "\n\n")
	sb.WriteString(note.Content + "\n\n")

	if len(note.Tags) > 0 {
		hashed := make([]string, 0, len(note.Tags))
		for _, tag := range note.Tags {
			hashed = append(hashed, "#"+tag)
		}
		sb.WriteString("**Tags:** " + strings.Join(hashed, ", ") + "\n\n")
	}

	sb.WriteString("---\n")
	sb.WriteString(fmt.Sprintf("Created: %s\n", note.CreatedAt.Format(timeLayout)))
	sb.WriteString(fmt.Sprintf("Updated: %s\n", note.UpdatedAt.Format(timeLayout)))

	return sb.String()
}

// CollectionMarkdown экспортирует набор заметок, разделяя их
// горизонтальной линией
func CollectionMarkdown(notes []model.Note, _ time.Time) string {
	parts := make([]string, 0, len(notes))
	for _, note := range notes {
		parts = append(parts, NoteMarkdown(note))
	}
	return strings.Join(parts, "\n\n---\n\n")
}
