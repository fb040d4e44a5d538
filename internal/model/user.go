package model

// User представляет пользователя (внешняя сущность, здесь нужны только
// идентификатор, email и роль для проверок доступа)
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}
