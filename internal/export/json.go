// Package export конвертирует заметки в JSON, Markdown и PDF и разбирает
// внешние JSON/Markdown документы обратно в черновики заметок.
package export

import (
	"encoding/json"
	"time"

	"notes-backend/internal/model"
)

// noteJSON проекция заметки для JSON экспорта
type noteJSON struct {
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	Tags       []string  `json:"tags"`
	IsPinned   bool      `json:"isPinned"`
	IsArchived bool      `json:"isArchived"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// collectionJSON обертка для экспорта нескольких заметок
type collectionJSON struct {
	ExportDate time.Time  `json:"exportDate"`
	TotalNotes int        `json:"totalNotes"`
	Notes      []noteJSON `json:"notes"`
}

func toNoteJSON(note model.Note) noteJSON {
	tags := note.Tags
	if tags == nil {
		tags = []string{}
	}
	return noteJSON{
		Title:      note.Title,
		Content:    note.Content,
		Tags:       tags,
		IsPinned:   note.IsPinned,
		IsArchived: note.IsArchived,
		CreatedAt:  note.CreatedAt,
		UpdatedAt:  note.UpdatedAt,
	}
}

// NoteJSON экспортирует одну заметку в JSON
func NoteJSON(note model.Note) ([]byte, error) {
	return json.MarshalIndent(toNoteJSON(note), "", "  ")
}

// CollectionJSON экспортирует набор заметок в JSON с метаданными экспорта
func CollectionJSON(notes []model.Note, exportDate time.Time) ([]byte, error) {
	projected := make([]noteJSON, 0, len(notes))
	for _, note := range notes {
		projected = append(projected, toNoteJSON(note))
	}

	return json.MarshalIndent(collectionJSON{
		ExportDate: exportDate,
		TotalNotes: len(projected),
		Notes:      projected,
	}, "", "  ")
}
