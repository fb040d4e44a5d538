package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"notes-backend/internal/api/http/middleware"
	"notes-backend/internal/api/http/responses"
	"notes-backend/internal/model"
	svc "notes-backend/internal/service"
)

// ShareHandler обрабатывает запросы управления доступом к заметкам
type ShareHandler struct {
	noteService svc.NoteService
}

// NewShareHandler создает новый экземпляр хэндлера шаринга
func NewShareHandler(noteService svc.NoteService) *ShareHandler {
	return &ShareHandler{noteService: noteService}
}

// shareRequest тело запроса на выдачу доступа
type shareRequest struct {
	UserID     string `json:"userId" binding:"required"`
	Permission string `json:"permission" binding:"required,oneof=read write"`
}

// Share выдает или обновляет доступ пользователю (только владелец)
func (h *ShareHandler) Share(c *gin.Context) {
	var req shareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	note, err := h.noteService.ShareWith(
		c.Request.Context(),
		c.Param("id"),
		middleware.CurrentUserID(c),
		req.UserID,
		model.Permission(req.Permission),
	)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.OK(c, http.StatusOK, note)
}

// Unshare отзывает доступ пользователя (только владелец)
func (h *ShareHandler) Unshare(c *gin.Context) {
	note, err := h.noteService.UnshareFrom(
		c.Request.Context(),
		c.Param("id"),
		middleware.CurrentUserID(c),
		c.Param("userId"),
	)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.OK(c, http.StatusOK, note)
}

// CheckAccess сообщает, есть ли у текущего пользователя доступ
// указанного уровня (query параметр permission, по умолчанию read)
func (h *ShareHandler) CheckAccess(c *gin.Context) {
	permission := model.Permission(c.DefaultQuery("permission", "read"))
	if !permission.Valid() {
		responses.BadRequest(c, "invalid permission")
		return
	}

	allowed, err := h.noteService.CheckAccess(
		c.Request.Context(),
		c.Param("id"),
		middleware.CurrentUserID(c),
		permission,
	)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.OK(c, http.StatusOK, gin.H{"allowed": allowed})
}
