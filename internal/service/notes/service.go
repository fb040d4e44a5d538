package notes

import (
	"context"
	"errors"
	"strings"
	"time"

	"notes-backend/internal/model"
	"notes-backend/internal/repository"
	svc "notes-backend/internal/service"
)

var _ svc.NoteService = (*service)(nil)

type service struct {
	noteRepository repository.NoteRepository
	userRepository repository.UserRepository
	events         *EventService
	now            func() time.Time
}

// NewNoteService создает новый экземпляр сервиса для работы с заметками
func NewNoteService(noteRepository repository.NoteRepository, userRepository repository.UserRepository, events *EventService) svc.NoteService {
	return &service{
		noteRepository: noteRepository,
		userRepository: userRepository,
		events:         events,
		now:            time.Now,
	}
}

// Create создает новую заметку с владельцем ownerID
func (s *service) Create(ctx context.Context, ownerID string, draft model.Note) (model.Note, error) {
	if ownerID == "" {
		return model.Note{}, errors.New("owner id cannot be empty")
	}

	draft.Title = strings.TrimSpace(draft.Title)
	draft.Content = strings.TrimSpace(draft.Content)

	// Дефолты для необязательных полей
	if draft.Category == "" {
		draft.Category = model.DefaultCategory
	}
	if draft.Color == "" {
		draft.Color = model.ColorDefault
	}
	if draft.Priority == "" {
		draft.Priority = model.PriorityMedium
	}

	if err := draft.Validate(); err != nil {
		return model.Note{}, err
	}

	now := s.now()
	draft.OwnerID = ownerID
	draft.SharedWith = nil
	draft.IsDeleted = false
	draft.DeletedAt = nil
	draft.CreatedAt = now
	// LastModified при создании совпадает с CreatedAt и двигается
	// только последующими правками содержимого
	draft.LastModified = now

	createdNote, err := s.noteRepository.Create(ctx, draft)
	if err != nil {
		return model.Note{}, err
	}

	s.events.Publish(NoteEvent{Type: EventCreated, Note: createdNote})

	return createdNote, nil
}

// Get возвращает заметку; требуется право read
func (s *service) Get(ctx context.Context, id, requesterID string) (model.Note, error) {
	note, err := s.getLive(ctx, id)
	if err != nil {
		return model.Note{}, err
	}

	if !note.CanAccess(requesterID, model.PermissionRead) {
		return model.Note{}, ErrForbidden
	}

	return note, nil
}

// CheckAccess сообщает, есть ли у пользователя указанный уровень доступа.
// В отличие от Get, нехватка прав здесь не ошибка, а ответ false.
func (s *service) CheckAccess(ctx context.Context, id, userID string, permission model.Permission) (bool, error) {
	note, err := s.getLive(ctx, id)
	if err != nil {
		return false, err
	}
	return note.CanAccess(userID, permission), nil
}

// List возвращает живые заметки владельца по фильтру
func (s *service) List(ctx context.Context, ownerID string, filter repository.NoteFilter) ([]model.Note, error) {
	return s.noteRepository.ListByOwner(ctx, ownerID, filter)
}

// ListShared возвращает живые заметки, расшаренные пользователю
func (s *service) ListShared(ctx context.Context, userID string) ([]model.Note, error) {
	return s.noteRepository.ListSharedWith(ctx, userID)
}

// Update обновляет содержимое заметки; требуется право write
func (s *service) Update(ctx context.Context, id, requesterID string, update svc.NoteUpdate) (model.Note, error) {
	note, err := s.getLive(ctx, id)
	if err != nil {
		return model.Note{}, err
	}

	if !note.CanAccess(requesterID, model.PermissionWrite) {
		return model.Note{}, ErrForbidden
	}

	if update.Title != nil {
		note.Title = strings.TrimSpace(*update.Title)
	}
	if update.Content != nil {
		note.Content = strings.TrimSpace(*update.Content)
	}
	if update.Category != nil {
		note.Category = *update.Category
		if note.Category == "" {
			note.Category = model.DefaultCategory
		}
	}
	if update.Tags != nil {
		note.Tags = *update.Tags
	}
	if update.Color != nil {
		note.Color = *update.Color
	}
	if update.Priority != nil {
		note.Priority = *update.Priority
	}

	if err := note.Validate(); err != nil {
		return model.Note{}, err
	}

	note.LastModified = s.now()

	updatedNote, err := s.noteRepository.Update(ctx, note)
	if err != nil {
		return model.Note{}, err
	}

	s.events.Publish(NoteEvent{Type: EventUpdated, Note: updatedNote})

	return updatedNote, nil
}

// SetPinned закрепляет или открепляет заметку; требуется право write
func (s *service) SetPinned(ctx context.Context, id, requesterID string, pinned bool) (model.Note, error) {
	return s.setFlag(ctx, id, requesterID, func(note *model.Note) {
		note.IsPinned = pinned
	})
}

// SetArchived архивирует или разархивирует заметку; требуется право write
func (s *service) SetArchived(ctx context.Context, id, requesterID string, archived bool) (model.Note, error) {
	return s.setFlag(ctx, id, requesterID, func(note *model.Note) {
		note.IsArchived = archived
	})
}

// setFlag общий путь для переключения флагов заметки под правом write
func (s *service) setFlag(ctx context.Context, id, requesterID string, apply func(*model.Note)) (model.Note, error) {
	note, err := s.getLive(ctx, id)
	if err != nil {
		return model.Note{}, err
	}

	if !note.CanAccess(requesterID, model.PermissionWrite) {
		return model.Note{}, ErrForbidden
	}

	apply(&note)
	note.LastModified = s.now()

	updatedNote, err := s.noteRepository.Update(ctx, note)
	if err != nil {
		return model.Note{}, err
	}

	s.events.Publish(NoteEvent{Type: EventUpdated, Note: updatedNote})

	return updatedNote, nil
}

// getLive возвращает заметку, если она существует и не в корзине.
// Заметки из корзины для обычных операций не существуют.
func (s *service) getLive(ctx context.Context, id string) (model.Note, error) {
	if id == "" {
		return model.Note{}, repository.ErrNoteNotFound
	}

	note, err := s.noteRepository.GetByID(ctx, id)
	if err != nil {
		return model.Note{}, err
	}
	if note.IsDeleted {
		return model.Note{}, repository.ErrNoteNotFound
	}

	return note, nil
}
