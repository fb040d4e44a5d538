package notes

import (
	"sync"

	"notes-backend/internal/model"
)

// EventType тип изменения заметки
type EventType string

const (
	EventCreated     EventType = "created"
	EventUpdated     EventType = "updated"
	EventSoftDeleted EventType = "soft_deleted"
	EventRestored    EventType = "restored"
	EventPurged      EventType = "purged"
)

// NoteEvent событие изменения заметки
type NoteEvent struct {
	Type EventType  `json:"type"`
	Note model.Note `json:"note"`
}

// EventService управляет подписчиками на события изменения заметок
type EventService struct {
	subscribers map[chan NoteEvent]bool
	mu          sync.RWMutex
}

// NewEventService создает новый экземпляр EventService
func NewEventService() *EventService {
	return &EventService{
		subscribers: make(map[chan NoteEvent]bool),
	}
}

// Subscribe добавляет нового подписчика и возвращает канал для получения событий
func (s *EventService) Subscribe() chan NoteEvent {
	ch := make(chan NoteEvent, 10) // Буферизованный канал для защиты от backpressure
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers[ch] = true
	return ch
}

// Unsubscribe удаляет подписчика и закрывает его канал
func (s *EventService) Unsubscribe(ch chan NoteEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.subscribers[ch]; ok {
		close(ch)
		delete(s.subscribers, ch)
	}
}

// Publish отправляет событие всем подписчикам.
// Если канал подписчика переполнен, событие пропускается.
func (s *EventService) Publish(event NoteEvent) {
	if s == nil {
		return
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	for ch := range s.subscribers {
		select {
		case ch <- event:
			// Событие успешно отправлено
		default:
			// Канал переполнен, пропускаем
		}
	}
}
