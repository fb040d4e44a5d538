package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"notes-backend/internal/model"
	"notes-backend/internal/repository"

	"github.com/google/uuid"
)

var _ repository.NoteRepository = (*NoteRepo)(nil)

// NoteRepo in-memory репозиторий заметок на основе map
type NoteRepo struct {
	mu    sync.RWMutex
	notes map[string]model.Note
}

// NewNoteRepository создает новый экземпляр in-memory репозитория заметок
func NewNoteRepository() *NoteRepo {
	return &NoteRepo{
		notes: make(map[string]model.Note),
	}
}

// Create создает новую заметку и возвращает созданную заметку с ID
func (r *NoteRepo) Create(ctx context.Context, note model.Note) (model.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Генерируем UUID если не передан
	if note.ID == "" {
		note.ID = uuid.New().String()
	}

	// Устанавливаем временные метки
	now := time.Now()
	if note.CreatedAt.IsZero() {
		note.CreatedAt = now
	}
	note.UpdatedAt = now

	r.notes[note.ID] = note

	return note, nil
}

// GetByID возвращает заметку по её ID (включая помеченные удаленными)
func (r *NoteRepo) GetByID(ctx context.Context, id string) (model.Note, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	note, exists := r.notes[id]
	if !exists {
		return model.Note{}, repository.ErrNoteNotFound
	}

	return note, nil
}

// ListByOwner возвращает живые заметки владельца по фильтру
func (r *NoteRepo) ListByOwner(ctx context.Context, ownerID string, filter repository.NoteFilter) ([]model.Note, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	notes := make([]model.Note, 0)
	for _, note := range r.notes {
		if note.OwnerID != ownerID || note.IsDeleted {
			continue
		}
		if filter.Category != "" && note.Category != filter.Category {
			continue
		}
		if filter.Archived != nil && note.IsArchived != *filter.Archived {
			continue
		}
		if filter.Search != "" && !matchesSearch(note, filter.Search) {
			continue
		}
		notes = append(notes, note)
	}

	// Закрепленные первыми, далее по убыванию UpdatedAt
	sort.Slice(notes, func(i, j int) bool {
		if notes[i].IsPinned != notes[j].IsPinned {
			return notes[i].IsPinned
		}
		return notes[i].UpdatedAt.After(notes[j].UpdatedAt)
	})

	return paginate(notes, filter.Page, filter.Limit), nil
}

// ListSharedWith возвращает живые заметки, расшаренные пользователю
func (r *NoteRepo) ListSharedWith(ctx context.Context, userID string) ([]model.Note, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	notes := make([]model.Note, 0)
	for _, note := range r.notes {
		if note.IsDeleted {
			continue
		}
		for _, entry := range note.SharedWith {
			if entry.UserID == userID {
				notes = append(notes, note)
				break
			}
		}
	}

	sort.Slice(notes, func(i, j int) bool {
		return notes[i].UpdatedAt.After(notes[j].UpdatedAt)
	})

	return notes, nil
}

// ListDeleted возвращает заметки владельца из корзины
func (r *NoteRepo) ListDeleted(ctx context.Context, ownerID string, page, limit int) ([]model.Note, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	notes := make([]model.Note, 0)
	for _, note := range r.notes {
		if note.OwnerID == ownerID && note.IsDeleted {
			notes = append(notes, note)
		}
	}

	// Сортировка по убыванию DeletedAt
	sort.Slice(notes, func(i, j int) bool {
		var ti, tj time.Time
		if notes[i].DeletedAt != nil {
			ti = *notes[i].DeletedAt
		}
		if notes[j].DeletedAt != nil {
			tj = *notes[j].DeletedAt
		}
		return ti.After(tj)
	})

	return paginate(notes, page, limit), nil
}

// Update обновляет существующую заметку и возвращает обновленную заметку
func (r *NoteRepo) Update(ctx context.Context, note model.Note) (model.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.notes[note.ID]; !exists {
		return model.Note{}, repository.ErrNoteNotFound
	}

	note.UpdatedAt = time.Now()
	r.notes[note.ID] = note

	return note, nil
}

// Delete окончательно удаляет заметку по ID
func (r *NoteRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.notes[id]; !exists {
		return repository.ErrNoteNotFound
	}

	delete(r.notes, id)

	return nil
}

// DeleteAllDeletedByOwner окончательно удаляет все заметки владельца из корзины
func (r *NoteRepo) DeleteAllDeletedByOwner(ctx context.Context, ownerID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	count := 0
	for id, note := range r.notes {
		if note.OwnerID == ownerID && note.IsDeleted {
			delete(r.notes, id)
			count++
		}
	}

	return count, nil
}

// DeleteExpired окончательно удаляет просроченные заметки из корзины всех владельцев
func (r *NoteRepo) DeleteExpired(ctx context.Context, cutoff time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	count := 0
	for id, note := range r.notes {
		if note.IsDeleted && note.DeletedAt != nil && !note.DeletedAt.After(cutoff) {
			delete(r.notes, id)
			count++
		}
	}

	return count, nil
}

// matchesSearch проверяет вхождение подстроки в title или content без учета регистра
func matchesSearch(note model.Note, search string) bool {
	search = strings.ToLower(search)
	return strings.Contains(strings.ToLower(note.Title), search) ||
		strings.Contains(strings.ToLower(note.Content), search)
}

// paginate возвращает страницу из отсортированного списка
func paginate(notes []model.Note, page, limit int) []model.Note {
	if limit <= 0 {
		return notes
	}
	if page < 1 {
		page = 1
	}

	start := (page - 1) * limit
	if start >= len(notes) {
		return []model.Note{}
	}

	end := start + limit
	if end > len(notes) {
		end = len(notes)
	}

	return notes[start:end]
}

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo in-memory репозиторий пользователей
type UserRepo struct {
	mu    sync.RWMutex
	users map[string]model.User
}

// NewUserRepository создает новый экземпляр in-memory репозитория пользователей
func NewUserRepository() *UserRepo {
	return &UserRepo{
		users: make(map[string]model.User),
	}
}

// Put сохраняет пользователя (используется при инициализации и в тестах)
func (r *UserRepo) Put(user model.User) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	r.users[user.ID] = user
}

// GetByID возвращает пользователя по его ID
func (r *UserRepo) GetByID(ctx context.Context, id string) (model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, exists := r.users[id]
	if !exists {
		return model.User{}, repository.ErrUserNotFound
	}

	return user, nil
}

// GetByEmail возвращает пользователя по email
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}

	return model.User{}, repository.ErrUserNotFound
}
