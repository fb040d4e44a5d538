package repository

import (
	"context"
	"errors"
	"time"

	"notes-backend/internal/model"
)

// ErrNoteNotFound возвращается, когда заметка не найдена
var ErrNoteNotFound = errors.New("note not found")

// ErrUserNotFound возвращается, когда пользователь не найден
var ErrUserNotFound = errors.New("user not found")

// NoteFilter параметры выборки живых заметок пользователя
type NoteFilter struct {
	// Category фильтр по категории, пустая строка - без фильтра
	Category string
	// Archived фильтр по флагу архива, nil - без фильтра
	Archived *bool
	// Search текстовый поиск по title/content, пустая строка - без поиска
	Search string
	// Page и Limit - пагинация (Page с единицы)
	Page  int
	Limit int
}

// NoteRepository интерфейс для работы с заметками в хранилище
type NoteRepository interface {
	// Create создает новую заметку и возвращает созданную заметку с ID
	Create(ctx context.Context, note model.Note) (model.Note, error)

	// GetByID возвращает заметку по её ID (включая помеченные удаленными)
	GetByID(ctx context.Context, id string) (model.Note, error)

	// ListByOwner возвращает живые заметки владельца по фильтру,
	// закрепленные заметки первыми, далее по убыванию UpdatedAt
	ListByOwner(ctx context.Context, ownerID string, filter NoteFilter) ([]model.Note, error)

	// ListSharedWith возвращает живые заметки, расшаренные пользователю
	ListSharedWith(ctx context.Context, userID string) ([]model.Note, error)

	// ListDeleted возвращает заметки владельца из корзины,
	// отсортированные по убыванию DeletedAt, с пагинацией
	ListDeleted(ctx context.Context, ownerID string, page, limit int) ([]model.Note, error)

	// Update обновляет существующую заметку и возвращает обновленную заметку
	Update(ctx context.Context, note model.Note) (model.Note, error)

	// Delete окончательно удаляет заметку по ID
	Delete(ctx context.Context, id string) error

	// DeleteAllDeletedByOwner окончательно удаляет все заметки владельца
	// из корзины и возвращает количество удаленных
	DeleteAllDeletedByOwner(ctx context.Context, ownerID string) (int, error)

	// DeleteExpired окончательно удаляет заметки всех владельцев,
	// помеченные удаленными не позже cutoff, и возвращает количество
	DeleteExpired(ctx context.Context, cutoff time.Time) (int, error)
}

// UserRepository интерфейс для работы с пользователями в хранилище
type UserRepository interface {
	// GetByID возвращает пользователя по его ID
	GetByID(ctx context.Context, id string) (model.User, error)

	// GetByEmail возвращает пользователя по email
	GetByEmail(ctx context.Context, email string) (model.User, error)
}
