package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"notes-backend/internal/model"
)

// ErrInvalidFormat возвращается, когда импортируемый документ
// не удается разобрать
var ErrInvalidFormat = errors.New("invalid import format")

// importedNote сырой черновик заметки из внешнего документа
type importedNote struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
}

func (n importedNote) toDraft() model.Note {
	title := n.Title
	if title == "" {
		title = "Untitled"
	}
	tags := n.Tags
	if tags == nil {
		tags = []string{}
	}
	return model.Note{
		Title:   title,
		Content: n.Content,
		Tags:    tags,
	}
}

// FromJSON разбирает JSON документ в черновики заметок.
// Принимается обертка {"notes": [...]}, голый массив или одиночный
// объект заметки. Любой элемент, не являющийся объектом, делает
// весь импорт невалидным.
func FromJSON(data []byte) ([]model.Note, error) {
	var root any
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}

	var rawNotes []any
	switch v := root.(type) {
	case map[string]any:
		if wrapped, ok := v["notes"]; ok {
			arr, ok := wrapped.([]any)
			if !ok {
				return nil, fmt.Errorf("%w: notes is not an array", ErrInvalidFormat)
			}
			rawNotes = arr
		} else {
			// Одиночная заметка
			rawNotes = []any{v}
		}
	case []any:
		rawNotes = v
	default:
		return nil, fmt.Errorf("%w: expected object or array", ErrInvalidFormat)
	}

	drafts := make([]model.Note, 0, len(rawNotes))
	for _, raw := range rawNotes {
		obj, ok := raw.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: note entry is not an object", ErrInvalidFormat)
		}

		var note importedNote
		encoded, err := json.Marshal(obj)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
		}
		if err := json.Unmarshal(encoded, &note); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
		}

		drafts = append(drafts, note.toDraft())
	}

	return drafts, nil
}

// sectionSplitter горизонтальная линия в разных вариантах отбивки
var sectionSplitter = regexp.MustCompile(`\n\s*---\s*\n`)

// FromMarkdown разбирает Markdown документ в черновики заметок.
// Документ режется по горизонтальным линиям на секции (без линий -
// весь документ одна секция). В секции первая строка с "# " дает
// заголовок, строка "**Tags:**" - список тегов, остальные строки
// склеиваются в содержимое.
func FromMarkdown(doc string) ([]model.Note, error) {
	if strings.TrimSpace(doc) == "" {
		return nil, fmt.Errorf("%w: empty document", ErrInvalidFormat)
	}

	sections := sectionSplitter.Split(doc, -1)

	drafts := make([]model.Note, 0, len(sections))
	for _, section := range sections {
		if strings.TrimSpace(section) == "" {
			continue
		}
		// Секции из одних метаданных экспорта заметок не дают
		draft, ok := parseSection(section)
		if !ok {
			continue
		}
		drafts = append(drafts, draft)
	}

	if len(drafts) == 0 {
		return nil, fmt.Errorf("%w: no notes found", ErrInvalidFormat)
	}

	return drafts, nil
}

func parseSection(section string) (model.Note, bool) {
	var note importedNote
	var contentLines []string

	for _, line := range strings.Split(section, "\n") {
		trimmed := strings.TrimSpace(line)

		switch {
		case strings.HasPrefix(trimmed, "# ") && note.Title == "":
			note.Title = strings.TrimSpace(strings.TrimPrefix(trimmed, "# "))
		case strings.HasPrefix(trimmed, "**Tags:**"):
			note.Tags = parseTags(strings.TrimPrefix(trimmed, "**Tags:**"))
		case strings.HasPrefix(trimmed, "Created:"), strings.HasPrefix(trimmed, "Updated:"):
			// Метаданные экспорта, в содержимое не попадают
		case trimmed == "---":
			// Остаток разделителя на краю секции
		case trimmed != "":
			contentLines = append(contentLines, trimmed)
		}
	}

	note.Content = strings.Join(contentLines, "\n")

	if note.Title == "" && note.Content == "" && len(note.Tags) == 0 {
		return model.Note{}, false
	}

	return note.toDraft(), true
}

// parseTags разбирает список тегов "#a, #b" в срез без решеток
func parseTags(raw string) []string {
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, part := range parts {
		tag := strings.TrimPrefix(strings.TrimSpace(part), "#")
		if tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}
