package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"notes-backend/internal/api/http/middleware"
	"notes-backend/internal/api/http/responses"
	"notes-backend/internal/model"
	"notes-backend/internal/repository"
	svc "notes-backend/internal/service"
)

// NoteHandler обрабатывает запросы CRUD над заметками
type NoteHandler struct {
	noteService svc.NoteService
}

// NewNoteHandler создает новый экземпляр хэндлера заметок
func NewNoteHandler(noteService svc.NoteService) *NoteHandler {
	return &NoteHandler{noteService: noteService}
}

// createNoteRequest тело запроса на создание заметки
type createNoteRequest struct {
	Title    string   `json:"title" binding:"required"`
	Content  string   `json:"content"`
	Category string   `json:"category"`
	Tags     []string `json:"tags"`
	Color    string   `json:"color"`
	Priority string   `json:"priority"`
}

// Create создает новую заметку
func (h *NoteHandler) Create(c *gin.Context) {
	var req createNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	draft := model.Note{
		Title:    req.Title,
		Content:  req.Content,
		Category: req.Category,
		Tags:     req.Tags,
		Color:    model.Color(req.Color),
		Priority: model.Priority(req.Priority),
	}

	note, err := h.noteService.Create(c.Request.Context(), middleware.CurrentUserID(c), draft)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.OK(c, http.StatusCreated, note)
}

// Get возвращает заметку по ID
func (h *NoteHandler) Get(c *gin.Context) {
	note, err := h.noteService.Get(c.Request.Context(), c.Param("id"), middleware.CurrentUserID(c))
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.OK(c, http.StatusOK, note)
}

// List возвращает живые заметки пользователя с фильтрами и пагинацией
func (h *NoteHandler) List(c *gin.Context) {
	filter := repository.NoteFilter{
		Category: c.Query("category"),
		Search:   c.Query("search"),
		Page:     queryInt(c, "page", 1),
		Limit:    queryInt(c, "limit", 20),
	}

	if archived := c.Query("archived"); archived != "" {
		val, err := strconv.ParseBool(archived)
		if err != nil {
			responses.BadRequest(c, "invalid archived value")
			return
		}
		filter.Archived = &val
	}

	notes, err := h.noteService.List(c.Request.Context(), middleware.CurrentUserID(c), filter)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.OK(c, http.StatusOK, notes)
}

// ListShared возвращает заметки, расшаренные текущему пользователю
func (h *NoteHandler) ListShared(c *gin.Context) {
	notes, err := h.noteService.ListShared(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.OK(c, http.StatusOK, notes)
}

// updateNoteRequest тело запроса на обновление; nil поля не меняются
type updateNoteRequest struct {
	Title    *string   `json:"title"`
	Content  *string   `json:"content"`
	Category *string   `json:"category"`
	Tags     *[]string `json:"tags"`
	Color    *string   `json:"color"`
	Priority *string   `json:"priority"`
}

// Update обновляет содержимое заметки
func (h *NoteHandler) Update(c *gin.Context) {
	var req updateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	update := svc.NoteUpdate{
		Title:    req.Title,
		Content:  req.Content,
		Category: req.Category,
		Tags:     req.Tags,
	}
	if req.Color != nil {
		color := model.Color(*req.Color)
		update.Color = &color
	}
	if req.Priority != nil {
		priority := model.Priority(*req.Priority)
		update.Priority = &priority
	}

	note, err := h.noteService.Update(c.Request.Context(), c.Param("id"), middleware.CurrentUserID(c), update)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.OK(c, http.StatusOK, note)
}

// flagRequest тело запроса на переключение флага
type flagRequest struct {
	Value *bool `json:"value" binding:"required"`
}

// SetPinned закрепляет или открепляет заметку
func (h *NoteHandler) SetPinned(c *gin.Context) {
	var req flagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	note, err := h.noteService.SetPinned(c.Request.Context(), c.Param("id"), middleware.CurrentUserID(c), *req.Value)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.OK(c, http.StatusOK, note)
}

// SetArchived архивирует или разархивирует заметку
func (h *NoteHandler) SetArchived(c *gin.Context) {
	var req flagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	note, err := h.noteService.SetArchived(c.Request.Context(), c.Param("id"), middleware.CurrentUserID(c), *req.Value)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.OK(c, http.StatusOK, note)
}

// SoftDelete помещает заметку в корзину
func (h *NoteHandler) SoftDelete(c *gin.Context) {
	note, err := h.noteService.SoftDelete(c.Request.Context(), c.Param("id"), middleware.CurrentUserID(c))
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.OK(c, http.StatusOK, note)
}

// queryInt читает целочисленный query параметр с дефолтом
func queryInt(c *gin.Context, name string, def int) int {
	raw := c.Query(name)
	if raw == "" {
		return def
	}
	val, err := strconv.Atoi(raw)
	if err != nil || val < 1 {
		return def
	}
	return val
}
