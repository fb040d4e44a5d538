// Package responses единый формат ответов HTTP API и маппинг
// доменных ошибок в статус-коды.
package responses

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"notes-backend/internal/export"
	"notes-backend/internal/repository"
	"notes-backend/internal/service/notes"
)

// Response единый конверт ответа API
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// OK отправляет успешный ответ с данными
func OK(c *gin.Context, status int, data any) {
	c.JSON(status, Response{Success: true, Data: data})
}

// Message отправляет успешный ответ с сообщением без данных
func Message(c *gin.Context, status int, message string) {
	c.JSON(status, Response{Success: true, Message: message})
}

// Error отправляет ошибку, подбирая статус-код по типу:
// нарушение прав - 403, не найдено - 404, не в корзине / шаринг
// владельцу / битый импорт - 400, остальное - 500.
func Error(c *gin.Context, err error) {
	switch {
	case errors.Is(err, notes.ErrForbidden):
		c.JSON(http.StatusForbidden, Response{Success: false, Error: err.Error()})
	case errors.Is(err, repository.ErrNoteNotFound), errors.Is(err, repository.ErrUserNotFound):
		c.JSON(http.StatusNotFound, Response{Success: false, Error: err.Error()})
	case errors.Is(err, notes.ErrNotInRecycleBin),
		errors.Is(err, notes.ErrSelfShare),
		errors.Is(err, export.ErrInvalidFormat):
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: err.Error()})
	case isValidation(err):
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: err.Error()})
	default:
		// Внутренности хранилища наружу не отдаем
		c.JSON(http.StatusInternalServerError, Response{Success: false, Error: "internal error"})
	}
}

// isValidation распознает ошибки валидации доменной модели по тексту
func isValidation(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "cannot be empty") ||
		strings.Contains(msg, "too long") ||
		strings.Contains(msg, "invalid")
}

// BadRequest отправляет 400 с текстом ошибки валидации запроса
func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, Response{Success: false, Error: message})
}
