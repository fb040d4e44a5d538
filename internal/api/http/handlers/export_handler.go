package handlers

import (
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"notes-backend/internal/api/http/middleware"
	"notes-backend/internal/api/http/responses"
	"notes-backend/internal/export"
	"notes-backend/internal/model"
	"notes-backend/internal/repository"
	svc "notes-backend/internal/service"
	"notes-backend/internal/service/notes"
)

// ExportHandler обрабатывает экспорт и импорт заметок и SSE поток событий
type ExportHandler struct {
	noteService svc.NoteService
	pdf         *export.PDFExporter
	events      *notes.EventService
}

// NewExportHandler создает новый экземпляр хэндлера экспорта
func NewExportHandler(noteService svc.NoteService, pdf *export.PDFExporter, events *notes.EventService) *ExportHandler {
	return &ExportHandler{noteService: noteService, pdf: pdf, events: events}
}

// ExportNote экспортирует одну заметку в формат из query параметра
// format: json, markdown, text или pdf. Требуется право read.
func (h *ExportHandler) ExportNote(c *gin.Context) {
	note, err := h.noteService.Get(c.Request.Context(), c.Param("id"), middleware.CurrentUserID(c))
	if err != nil {
		responses.Error(c, err)
		return
	}

	switch c.DefaultQuery("format", "json") {
	case "json":
		data, err := export.NoteJSON(note)
		if err != nil {
			responses.Error(c, err)
			return
		}
		c.Data(http.StatusOK, "application/json", data)
	case "markdown":
		c.Data(http.StatusOK, "text/markdown; charset=utf-8", []byte(export.NoteMarkdown(note)))
	case "text":
		c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(export.NoteText(note)))
	case "pdf":
		data, err := h.pdf.NotePDF(note)
		if err != nil {
			responses.Error(c, err)
			return
		}
		c.Data(http.StatusOK, "application/pdf", data)
	default:
		responses.BadRequest(c, "unsupported format")
	}
}

// ExportCollection экспортирует все живые заметки пользователя
func (h *ExportHandler) ExportCollection(c *gin.Context) {
	// Без пагинации: выгружаем все живые заметки владельца
	userNotes, err := h.noteService.List(c.Request.Context(), middleware.CurrentUserID(c), repository.NoteFilter{})
	if err != nil {
		responses.Error(c, err)
		return
	}

	now := time.Now()

	switch c.DefaultQuery("format", "json") {
	case "json":
		data, err := export.CollectionJSON(userNotes, now)
		if err != nil {
			responses.Error(c, err)
			return
		}
		c.Data(http.StatusOK, "application/json", data)
	case "markdown":
		c.Data(http.StatusOK, "text/markdown; charset=utf-8", []byte(export.CollectionMarkdown(userNotes, now)))
	case "text":
		c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(export.CollectionText(userNotes, now)))
	case "pdf":
		data, err := h.pdf.CollectionPDF(userNotes, now)
		if err != nil {
			responses.Error(c, err)
			return
		}
		c.Data(http.StatusOK, "application/pdf", data)
	default:
		responses.BadRequest(c, "unsupported format")
	}
}

// Import разбирает присланный JSON или Markdown документ и создает
// заметки-черновики от имени текущего пользователя
func (h *ExportHandler) Import(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		responses.BadRequest(c, "cannot read request body")
		return
	}

	var drafts []model.Note
	switch c.DefaultQuery("format", "json") {
	case "json":
		drafts, err = export.FromJSON(body)
	case "markdown":
		drafts, err = export.FromMarkdown(string(body))
	default:
		responses.BadRequest(c, "unsupported format")
		return
	}
	if err != nil {
		responses.Error(c, err)
		return
	}

	userID := middleware.CurrentUserID(c)
	created := make([]model.Note, 0, len(drafts))
	for _, draft := range drafts {
		note, err := h.noteService.Create(c.Request.Context(), userID, draft)
		if err != nil {
			responses.Error(c, err)
			return
		}
		created = append(created, note)
	}

	responses.OK(c, http.StatusCreated, gin.H{"imported": len(created), "notes": created})
}

// Events отдает SSE поток событий изменения заметок, доступных
// текущему пользователю
func (h *ExportHandler) Events(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	ch := h.events.Subscribe()
	defer h.events.Unsubscribe(ch)

	c.Stream(func(w io.Writer) bool {
		select {
		case <-c.Request.Context().Done():
			return false
		case event, ok := <-ch:
			if !ok {
				return false
			}
			// Чужие события не отдаем
			if !event.Note.CanAccess(userID, model.PermissionRead) {
				return true
			}
			c.SSEvent("note", event)
			return true
		}
	})
}
