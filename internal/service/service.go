package service

import (
	"context"
	"time"

	"notes-backend/internal/model"
	"notes-backend/internal/repository"
)

// NoteUpdate опциональные поля для обновления заметки.
// nil означает "поле не меняется".
type NoteUpdate struct {
	Title    *string
	Content  *string
	Category *string
	Tags     *[]string
	Color    *model.Color
	Priority *model.Priority
}

// NoteService интерфейс для бизнес-логики работы с заметками.
// Во всех операциях requesterID - идентификатор аутентифицированного
// пользователя, от имени которого выполняется запрос.
type NoteService interface {
	// Create создает новую заметку с владельцем ownerID
	Create(ctx context.Context, ownerID string, draft model.Note) (model.Note, error)

	// Get возвращает заметку; требуется право read
	Get(ctx context.Context, id, requesterID string) (model.Note, error)

	// CheckAccess сообщает, есть ли у пользователя указанный уровень доступа
	CheckAccess(ctx context.Context, id, userID string, permission model.Permission) (bool, error)

	// List возвращает живые заметки владельца по фильтру
	List(ctx context.Context, ownerID string, filter repository.NoteFilter) ([]model.Note, error)

	// ListShared возвращает живые заметки, расшаренные пользователю
	ListShared(ctx context.Context, userID string) ([]model.Note, error)

	// Update обновляет содержимое заметки; требуется право write
	Update(ctx context.Context, id, requesterID string, update NoteUpdate) (model.Note, error)

	// SetPinned закрепляет или открепляет заметку; требуется право write
	SetPinned(ctx context.Context, id, requesterID string, pinned bool) (model.Note, error)

	// SetArchived архивирует или разархивирует заметку; требуется право write
	SetArchived(ctx context.Context, id, requesterID string, archived bool) (model.Note, error)

	// ShareWith выдает или обновляет доступ пользователю; только владелец
	ShareWith(ctx context.Context, id, requesterID, targetUserID string, permission model.Permission) (model.Note, error)

	// UnshareFrom отзывает доступ пользователя; только владелец
	UnshareFrom(ctx context.Context, id, requesterID, targetUserID string) (model.Note, error)

	// SoftDelete помещает заметку в корзину; только владелец
	SoftDelete(ctx context.Context, id, requesterID string) (model.Note, error)

	// Restore возвращает заметку из корзины; только владелец
	Restore(ctx context.Context, id, requesterID string) (model.Note, error)

	// PermanentlyDelete окончательно удаляет заметку; только владелец
	PermanentlyDelete(ctx context.Context, id, requesterID string) error

	// EmptyRecycleBin окончательно удаляет все заметки владельца из корзины
	EmptyRecycleBin(ctx context.Context, ownerID string) (int, error)

	// ListRecycleBin возвращает содержимое корзины владельца
	ListRecycleBin(ctx context.Context, ownerID string, page, limit int) ([]model.Note, error)

	// SweepExpired окончательно удаляет заметки всех владельцев,
	// пролежавшие в корзине дольше retention, и возвращает количество
	SweepExpired(ctx context.Context, retention time.Duration) (int, error)
}
