package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"notes-backend/internal/api/http/middleware"
	"notes-backend/internal/api/http/responses"
	svc "notes-backend/internal/service"
)

// TrashHandler обрабатывает запросы к корзине
type TrashHandler struct {
	noteService svc.NoteService
}

// NewTrashHandler создает новый экземпляр хэндлера корзины
func NewTrashHandler(noteService svc.NoteService) *TrashHandler {
	return &TrashHandler{noteService: noteService}
}

// List возвращает содержимое корзины текущего пользователя
func (h *TrashHandler) List(c *gin.Context) {
	notes, err := h.noteService.ListRecycleBin(
		c.Request.Context(),
		middleware.CurrentUserID(c),
		queryInt(c, "page", 1),
		queryInt(c, "limit", 20),
	)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.OK(c, http.StatusOK, notes)
}

// Restore возвращает заметку из корзины
func (h *TrashHandler) Restore(c *gin.Context) {
	note, err := h.noteService.Restore(c.Request.Context(), c.Param("id"), middleware.CurrentUserID(c))
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.OK(c, http.StatusOK, note)
}

// Purge окончательно удаляет заметку
func (h *TrashHandler) Purge(c *gin.Context) {
	err := h.noteService.PermanentlyDelete(c.Request.Context(), c.Param("id"), middleware.CurrentUserID(c))
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Message(c, http.StatusOK, "note permanently deleted")
}

// Empty окончательно удаляет все заметки пользователя из корзины
func (h *TrashHandler) Empty(c *gin.Context) {
	count, err := h.noteService.EmptyRecycleBin(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.OK(c, http.StatusOK, gin.H{"deleted": count})
}
