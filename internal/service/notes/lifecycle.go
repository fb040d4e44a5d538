package notes

import (
	"context"
	"time"

	"notes-backend/internal/model"
)

// SoftDelete помещает заметку в корзину. Разрешено только владельцу.
// Повторный вызов на уже удаленной заметке не ошибка - просто
// перештамповывает DeletedAt.
func (s *service) SoftDelete(ctx context.Context, id, requesterID string) (model.Note, error) {
	note, err := s.noteRepository.GetByID(ctx, id)
	if err != nil {
		return model.Note{}, err
	}

	if !note.IsOwner(requesterID) {
		return model.Note{}, ErrForbidden
	}

	now := s.now()
	note.IsDeleted = true
	note.DeletedAt = &now

	updatedNote, err := s.noteRepository.Update(ctx, note)
	if err != nil {
		return model.Note{}, err
	}

	s.events.Publish(NoteEvent{Type: EventSoftDeleted, Note: updatedNote})

	return updatedNote, nil
}

// Restore возвращает заметку из корзины. Разрешено только владельцу.
// Для живой заметки возвращает ErrNotInRecycleBin.
func (s *service) Restore(ctx context.Context, id, requesterID string) (model.Note, error) {
	note, err := s.noteRepository.GetByID(ctx, id)
	if err != nil {
		return model.Note{}, err
	}

	if !note.IsOwner(requesterID) {
		return model.Note{}, ErrForbidden
	}
	if !note.IsDeleted {
		return model.Note{}, ErrNotInRecycleBin
	}

	note.IsDeleted = false
	note.DeletedAt = nil

	updatedNote, err := s.noteRepository.Update(ctx, note)
	if err != nil {
		return model.Note{}, err
	}

	s.events.Publish(NoteEvent{Type: EventRestored, Note: updatedNote})

	return updatedNote, nil
}

// PermanentlyDelete окончательно удаляет заметку. Разрешено только
// владельцу. Состояние корзины не проверяется: живую заметку владелец
// может удалить окончательно, минуя корзину.
func (s *service) PermanentlyDelete(ctx context.Context, id, requesterID string) error {
	note, err := s.noteRepository.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !note.IsOwner(requesterID) {
		return ErrForbidden
	}

	if err := s.noteRepository.Delete(ctx, id); err != nil {
		return err
	}

	s.events.Publish(NoteEvent{Type: EventPurged, Note: note})

	return nil
}

// EmptyRecycleBin окончательно удаляет все заметки владельца из корзины
// и возвращает количество удаленных. Чужие заметки не затрагиваются.
func (s *service) EmptyRecycleBin(ctx context.Context, ownerID string) (int, error) {
	return s.noteRepository.DeleteAllDeletedByOwner(ctx, ownerID)
}

// ListRecycleBin возвращает содержимое корзины владельца,
// отсортированное по убыванию DeletedAt
func (s *service) ListRecycleBin(ctx context.Context, ownerID string, page, limit int) ([]model.Note, error) {
	return s.noteRepository.ListDeleted(ctx, ownerID, page, limit)
}

// SweepExpired окончательно удаляет заметки всех владельцев, пролежавшие
// в корзине дольше retention. Вызывается фоновым клинером, но доступна
// и напрямую - сама по себе функция никак не привязана к расписанию.
func (s *service) SweepExpired(ctx context.Context, retention time.Duration) (int, error) {
	cutoff := s.now().Add(-retention)
	return s.noteRepository.DeleteExpired(ctx, cutoff)
}
