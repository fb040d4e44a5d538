package surreal

import (
	"context"
	"fmt"
	"time"

	"notes-backend/internal/model"
	"notes-backend/internal/repository"

	surrealdb "github.com/surrealdb/surrealdb.go"
	"github.com/surrealdb/surrealdb.go/pkg/models"
)

// userRecord документ пользователя в SurrealDB
type userRecord struct {
	ID        *models.RecordID `json:"id,omitempty"`
	Email     string           `json:"email"`
	Role      string           `json:"role"`
	CreatedAt time.Time        `json:"created_at"`
}

func userFromRecord(rec userRecord) model.User {
	user := model.User{
		Email: rec.Email,
		Role:  rec.Role,
	}
	if rec.ID != nil {
		user.ID = fmt.Sprintf("%v", rec.ID.ID)
	}
	return user
}

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo репозиторий пользователей поверх SurrealDB
type UserRepo struct {
	db *surrealdb.DB
}

// NewUserRepository создает новый экземпляр репозитория пользователей
func NewUserRepository(db *surrealdb.DB) *UserRepo {
	return &UserRepo{db: db}
}

func (r *UserRepo) queryUsers(ctx context.Context, sql string, vars map[string]any) ([]userRecord, error) {
	res, err := surrealdb.Query[[]userRecord](ctx, r.db, sql, vars)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	if res == nil || len(*res) == 0 {
		return nil, nil
	}
	return (*res)[0].Result, nil
}

// GetByID возвращает пользователя по его ID
func (r *UserRepo) GetByID(ctx context.Context, id string) (model.User, error) {
	recs, err := r.queryUsers(ctx,
		`SELECT * FROM type::thing($tb, $id)`,
		map[string]any{"tb": usersTable, "id": id})
	if err != nil {
		return model.User{}, err
	}
	if len(recs) == 0 {
		return model.User{}, repository.ErrUserNotFound
	}

	return userFromRecord(recs[0]), nil
}

// GetByEmail возвращает пользователя по email
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	recs, err := r.queryUsers(ctx,
		`SELECT * FROM type::table($tb) WHERE email = $email LIMIT 1`,
		map[string]any{"tb": usersTable, "email": email})
	if err != nil {
		return model.User{}, err
	}
	if len(recs) == 0 {
		return model.User{}, repository.ErrUserNotFound
	}

	return userFromRecord(recs[0]), nil
}
