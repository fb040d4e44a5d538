package model

import (
	"errors"
	"strings"
	"time"
)

// Ограничения на размеры полей заметки
const (
	MaxTitleLen    = 100
	MaxContentLen  = 10000
	MaxCategoryLen = 50
	MaxTagLen      = 30
)

// DefaultCategory категория по умолчанию для новых заметок
const DefaultCategory = "General"

// Permission уровень доступа к заметке, выданный через шаринг
type Permission string

const (
	PermissionRead  Permission = "read"
	PermissionWrite Permission = "write"
)

// Valid проверяет, что уровень доступа один из поддерживаемых
func (p Permission) Valid() bool {
	return p == PermissionRead || p == PermissionWrite
}

// Priority приоритет заметки
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Valid проверяет, что приоритет один из поддерживаемых
func (p Priority) Valid() bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

// Color цвет заметки (8 поддерживаемых значений)
type Color string

const (
	ColorDefault Color = "default"
	ColorRed     Color = "red"
	ColorOrange  Color = "orange"
	ColorYellow  Color = "yellow"
	ColorGreen   Color = "green"
	ColorBlue    Color = "blue"
	ColorPurple  Color = "purple"
	ColorPink    Color = "pink"
)

// Valid проверяет, что цвет один из поддерживаемых
func (c Color) Valid() bool {
	switch c {
	case ColorDefault, ColorRed, ColorOrange, ColorYellow,
		ColorGreen, ColorBlue, ColorPurple, ColorPink:
		return true
	}
	return false
}

// ShareEntry запись о предоставленном доступе: кому и с каким уровнем
type ShareEntry struct {
	UserID     string     `json:"userId"`
	Permission Permission `json:"permission"`
	SharedAt   time.Time  `json:"sharedAt"`
}

// Note представляет заметку (доменная модель)
type Note struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Content  string   `json:"content"` // HTML-подмножество
	Category string   `json:"category"`
	Tags     []string `json:"tags"`
	Color    Color    `json:"color"`
	Priority Priority `json:"priority"`

	// OwnerID - владелец заметки, назначается при создании и не меняется
	OwnerID    string       `json:"ownerId"`
	SharedWith []ShareEntry `json:"sharedWith"`

	IsPinned   bool `json:"isPinned"`
	IsArchived bool `json:"isArchived"`

	// Инвариант: IsDeleted == true тогда и только тогда, когда DeletedAt != nil
	IsDeleted bool       `json:"isDeleted"`
	DeletedAt *time.Time `json:"deletedAt,omitempty"`

	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
	LastModified time.Time `json:"lastModified"`
}

// Validate проверяет валидность заметки
func (n *Note) Validate() error {
	if strings.TrimSpace(n.Title) == "" {
		return errors.New("title cannot be empty")
	}
	if len(n.Title) > MaxTitleLen {
		return errors.New("title is too long")
	}
	if len(n.Content) > MaxContentLen {
		return errors.New("content is too long")
	}
	if len(n.Category) > MaxCategoryLen {
		return errors.New("category is too long")
	}
	for _, tag := range n.Tags {
		if len(tag) > MaxTagLen {
			return errors.New("tag is too long")
		}
	}
	if n.Color != "" && !n.Color.Valid() {
		return errors.New("invalid color")
	}
	if n.Priority != "" && !n.Priority.Valid() {
		return errors.New("invalid priority")
	}
	return nil
}

// IsEmpty проверяет, пуста ли заметка
func (n *Note) IsEmpty() bool {
	return n.ID == "" && n.Title == "" && n.Content == ""
}

// IsOwner проверяет, является ли пользователь владельцем заметки.
// Только владелец управляет шарингом и жизненным циклом удаления.
func (n *Note) IsOwner(userID string) bool {
	return n.OwnerID == userID
}

// CanAccess проверяет, имеет ли пользователь доступ к заметке с указанным уровнем.
// Владелец имеет полный доступ; запись с write покрывает и read, и write;
// запись с read покрывает только read. Чистая функция без побочных эффектов.
func (n *Note) CanAccess(userID string, permission Permission) bool {
	if n.IsOwner(userID) {
		return true
	}

	for _, entry := range n.SharedWith {
		if entry.UserID != userID {
			continue
		}
		if entry.Permission == PermissionWrite {
			return true
		}
		return permission == PermissionRead
	}

	return false
}

// Share добавляет или обновляет запись о доступе для пользователя.
// Повторный шаринг тому же пользователю обновляет уровень и SharedAt,
// дубликаты не создаются.
func (n *Note) Share(userID string, permission Permission, now time.Time) {
	for i := range n.SharedWith {
		if n.SharedWith[i].UserID == userID {
			n.SharedWith[i].Permission = permission
			n.SharedWith[i].SharedAt = now
			return
		}
	}

	n.SharedWith = append(n.SharedWith, ShareEntry{
		UserID:     userID,
		Permission: permission,
		SharedAt:   now,
	})
}

// Unshare убирает запись о доступе для пользователя.
// Если записи нет - это не ошибка, операция просто ничего не делает.
func (n *Note) Unshare(userID string) {
	for i := range n.SharedWith {
		if n.SharedWith[i].UserID == userID {
			n.SharedWith = append(n.SharedWith[:i], n.SharedWith[i+1:]...)
			return
		}
	}
}
