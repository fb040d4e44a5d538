package notes

import (
	"context"
	"errors"

	"notes-backend/internal/model"
	"notes-backend/internal/repository"
)

// ShareWith выдает или обновляет доступ пользователю targetUserID.
// Разрешено только владельцу. Повторный шаринг тому же пользователю
// обновляет уровень доступа, не создавая дубликат.
func (s *service) ShareWith(ctx context.Context, id, requesterID, targetUserID string, permission model.Permission) (model.Note, error) {
	if !permission.Valid() {
		return model.Note{}, errors.New("invalid permission")
	}

	note, err := s.getLive(ctx, id)
	if err != nil {
		return model.Note{}, err
	}

	if !note.IsOwner(requesterID) {
		return model.Note{}, ErrForbidden
	}
	if note.IsOwner(targetUserID) {
		return model.Note{}, ErrSelfShare
	}

	// Целевой пользователь должен существовать
	if _, err := s.userRepository.GetByID(ctx, targetUserID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.Note{}, repository.ErrUserNotFound
		}
		return model.Note{}, err
	}

	note.Share(targetUserID, permission, s.now())

	updatedNote, err := s.noteRepository.Update(ctx, note)
	if err != nil {
		return model.Note{}, err
	}

	s.events.Publish(NoteEvent{Type: EventUpdated, Note: updatedNote})

	return updatedNote, nil
}

// UnshareFrom отзывает доступ пользователя targetUserID.
// Разрешено только владельцу. Отсутствие записи о доступе - не ошибка.
func (s *service) UnshareFrom(ctx context.Context, id, requesterID, targetUserID string) (model.Note, error) {
	note, err := s.getLive(ctx, id)
	if err != nil {
		return model.Note{}, err
	}

	if !note.IsOwner(requesterID) {
		return model.Note{}, ErrForbidden
	}

	note.Unshare(targetUserID)

	updatedNote, err := s.noteRepository.Update(ctx, note)
	if err != nil {
		return model.Note{}, err
	}

	s.events.Publish(NoteEvent{Type: EventUpdated, Note: updatedNote})

	return updatedNote, nil
}
