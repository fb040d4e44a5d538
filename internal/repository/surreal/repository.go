// Package surreal реализует репозитории поверх SurrealDB (документная БД).
// Все выборки выражены на SurrealQL через generic Query, маппинг записей
// в доменные модели - через noteRecord/userRecord.
package surreal

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"notes-backend/internal/model"
	"notes-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"
	surrealdb "github.com/surrealdb/surrealdb.go"
	"github.com/surrealdb/surrealdb.go/pkg/connection"
	"github.com/surrealdb/surrealdb.go/pkg/connection/gws"
	"github.com/surrealdb/surrealdb.go/pkg/models"
	"github.com/surrealdb/surrealdb.go/surrealcbor"
)

const (
	notesTable = "note"
	usersTable = "user"
)

// Config параметры подключения к SurrealDB
type Config struct {
	Endpoint  string
	Namespace string
	Database  string
	Username  string
	Password  string
}

// Connect устанавливает соединение с SurrealDB с ограниченным числом повторов.
// Используется surrealcbor кодек, чтобы time.Time сериализовался напрямую.
func Connect(ctx context.Context, cfg Config) (*surrealdb.DB, error) {
	u, err := url.Parse(cfg.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("parse endpoint: %w", err)
	}

	conf := connection.NewConfig(u)
	codec := surrealcbor.New()
	conf.Marshaler = codec
	conf.Unmarshaler = codec

	var db *surrealdb.DB
	backoff := retry.WithMaxRetries(5, retry.NewExponential(500*time.Millisecond))
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		conn := gws.New(conf)
		db, err = surrealdb.FromConnection(ctx, conn)
		if err != nil {
			return retry.RetryableError(fmt.Errorf("connect: %w", err))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := db.Use(ctx, cfg.Namespace, cfg.Database); err != nil {
		return nil, fmt.Errorf("use %s/%s: %w", cfg.Namespace, cfg.Database, err)
	}

	if _, err := db.SignIn(ctx, surrealdb.Auth{
		Username: cfg.Username,
		Password: cfg.Password,
	}); err != nil {
		return nil, fmt.Errorf("signin: %w", err)
	}

	return db, nil
}

// shareRecord запись о доступе внутри документа заметки
type shareRecord struct {
	UserID     string    `json:"user_id"`
	Permission string    `json:"permission"`
	SharedAt   time.Time `json:"shared_at"`
}

// noteRecord документ заметки в SurrealDB
type noteRecord struct {
	ID           *models.RecordID `json:"id,omitempty"`
	Title        string           `json:"title"`
	Content      string           `json:"content"`
	Category     string           `json:"category"`
	Tags         []string         `json:"tags"`
	Color        string           `json:"color"`
	Priority     string           `json:"priority"`
	OwnerID      string           `json:"owner_id"`
	SharedWith   []shareRecord    `json:"shared_with"`
	IsPinned     bool             `json:"is_pinned"`
	IsArchived   bool             `json:"is_archived"`
	IsDeleted    bool             `json:"is_deleted"`
	DeletedAt    *time.Time       `json:"deleted_at,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
	LastModified time.Time        `json:"last_modified"`
}

func toRecord(note model.Note) noteRecord {
	shared := make([]shareRecord, 0, len(note.SharedWith))
	for _, entry := range note.SharedWith {
		shared = append(shared, shareRecord{
			UserID:     entry.UserID,
			Permission: string(entry.Permission),
			SharedAt:   entry.SharedAt,
		})
	}

	return noteRecord{
		Title:        note.Title,
		Content:      note.Content,
		Category:     note.Category,
		Tags:         note.Tags,
		Color:        string(note.Color),
		Priority:     string(note.Priority),
		OwnerID:      note.OwnerID,
		SharedWith:   shared,
		IsPinned:     note.IsPinned,
		IsArchived:   note.IsArchived,
		IsDeleted:    note.IsDeleted,
		DeletedAt:    note.DeletedAt,
		CreatedAt:    note.CreatedAt,
		UpdatedAt:    note.UpdatedAt,
		LastModified: note.LastModified,
	}
}

func fromRecord(rec noteRecord) model.Note {
	shared := make([]model.ShareEntry, 0, len(rec.SharedWith))
	for _, entry := range rec.SharedWith {
		shared = append(shared, model.ShareEntry{
			UserID:     entry.UserID,
			Permission: model.Permission(entry.Permission),
			SharedAt:   entry.SharedAt,
		})
	}

	note := model.Note{
		Title:        rec.Title,
		Content:      rec.Content,
		Category:     rec.Category,
		Tags:         rec.Tags,
		Color:        model.Color(rec.Color),
		Priority:     model.Priority(rec.Priority),
		OwnerID:      rec.OwnerID,
		SharedWith:   shared,
		IsPinned:     rec.IsPinned,
		IsArchived:   rec.IsArchived,
		IsDeleted:    rec.IsDeleted,
		DeletedAt:    rec.DeletedAt,
		CreatedAt:    rec.CreatedAt,
		UpdatedAt:    rec.UpdatedAt,
		LastModified: rec.LastModified,
	}
	if rec.ID != nil {
		note.ID = fmt.Sprintf("%v", rec.ID.ID)
	}
	return note
}

var _ repository.NoteRepository = (*NoteRepo)(nil)

// NoteRepo репозиторий заметок поверх SurrealDB
type NoteRepo struct {
	db *surrealdb.DB
}

// NewNoteRepository создает новый экземпляр репозитория заметок
func NewNoteRepository(db *surrealdb.DB) *NoteRepo {
	return &NoteRepo{db: db}
}

// queryNotes выполняет SurrealQL запрос и возвращает записи первого результата
func (r *NoteRepo) queryNotes(ctx context.Context, sql string, vars map[string]any) ([]noteRecord, error) {
	res, err := surrealdb.Query[[]noteRecord](ctx, r.db, sql, vars)
	if err != nil {
		return nil, fmt.Errorf("query notes: %w", err)
	}
	if res == nil || len(*res) == 0 {
		return nil, nil
	}
	return (*res)[0].Result, nil
}

// Create создает новую заметку и возвращает созданную заметку с ID
func (r *NoteRepo) Create(ctx context.Context, note model.Note) (model.Note, error) {
	if note.ID == "" {
		note.ID = uuid.New().String()
	}

	now := time.Now()
	if note.CreatedAt.IsZero() {
		note.CreatedAt = now
	}
	note.UpdatedAt = now

	recs, err := r.queryNotes(ctx,
		`CREATE type::thing($tb, $id) CONTENT $content`,
		map[string]any{
			"tb":      notesTable,
			"id":      note.ID,
			"content": toRecord(note),
		})
	if err != nil {
		return model.Note{}, err
	}
	if len(recs) == 0 {
		return model.Note{}, fmt.Errorf("create returned no record")
	}

	return fromRecord(recs[0]), nil
}

// GetByID возвращает заметку по её ID (включая помеченные удаленными)
func (r *NoteRepo) GetByID(ctx context.Context, id string) (model.Note, error) {
	recs, err := r.queryNotes(ctx,
		`SELECT * FROM type::thing($tb, $id)`,
		map[string]any{"tb": notesTable, "id": id})
	if err != nil {
		return model.Note{}, err
	}
	if len(recs) == 0 {
		return model.Note{}, repository.ErrNoteNotFound
	}

	return fromRecord(recs[0]), nil
}

// ListByOwner возвращает живые заметки владельца по фильтру
func (r *NoteRepo) ListByOwner(ctx context.Context, ownerID string, filter repository.NoteFilter) ([]model.Note, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT * FROM type::table($tb) WHERE owner_id = $owner AND is_deleted = false`)

	vars := map[string]any{
		"tb":    notesTable,
		"owner": ownerID,
	}

	if filter.Category != "" {
		sb.WriteString(` AND category = $category`)
		vars["category"] = filter.Category
	}
	if filter.Archived != nil {
		sb.WriteString(` AND is_archived = $archived`)
		vars["archived"] = *filter.Archived
	}
	if filter.Search != "" {
		sb.WriteString(` AND (string::lowercase(title) CONTAINS $search OR string::lowercase(content) CONTAINS $search)`)
		vars["search"] = strings.ToLower(filter.Search)
	}

	sb.WriteString(` ORDER BY is_pinned DESC, updated_at DESC`)
	appendPagination(&sb, vars, filter.Page, filter.Limit)

	recs, err := r.queryNotes(ctx, sb.String(), vars)
	if err != nil {
		return nil, err
	}

	return fromRecords(recs), nil
}

// ListSharedWith возвращает живые заметки, расшаренные пользователю
func (r *NoteRepo) ListSharedWith(ctx context.Context, userID string) ([]model.Note, error) {
	recs, err := r.queryNotes(ctx,
		`SELECT * FROM type::table($tb) WHERE is_deleted = false AND $user IN shared_with.user_id ORDER BY updated_at DESC`,
		map[string]any{"tb": notesTable, "user": userID})
	if err != nil {
		return nil, err
	}

	return fromRecords(recs), nil
}

// ListDeleted возвращает заметки владельца из корзины
func (r *NoteRepo) ListDeleted(ctx context.Context, ownerID string, page, limit int) ([]model.Note, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT * FROM type::table($tb) WHERE owner_id = $owner AND is_deleted = true ORDER BY deleted_at DESC`)

	vars := map[string]any{
		"tb":    notesTable,
		"owner": ownerID,
	}
	appendPagination(&sb, vars, page, limit)

	recs, err := r.queryNotes(ctx, sb.String(), vars)
	if err != nil {
		return nil, err
	}

	return fromRecords(recs), nil
}

// Update обновляет существующую заметку и возвращает обновленную заметку
func (r *NoteRepo) Update(ctx context.Context, note model.Note) (model.Note, error) {
	note.UpdatedAt = time.Now()

	recs, err := r.queryNotes(ctx,
		`UPDATE type::thing($tb, $id) CONTENT $content`,
		map[string]any{
			"tb":      notesTable,
			"id":      note.ID,
			"content": toRecord(note),
		})
	if err != nil {
		return model.Note{}, err
	}
	if len(recs) == 0 {
		return model.Note{}, repository.ErrNoteNotFound
	}

	return fromRecord(recs[0]), nil
}

// Delete окончательно удаляет заметку по ID
func (r *NoteRepo) Delete(ctx context.Context, id string) error {
	recs, err := r.queryNotes(ctx,
		`DELETE type::thing($tb, $id) RETURN BEFORE`,
		map[string]any{"tb": notesTable, "id": id})
	if err != nil {
		return err
	}
	if len(recs) == 0 {
		return repository.ErrNoteNotFound
	}

	return nil
}

// DeleteAllDeletedByOwner окончательно удаляет все заметки владельца из корзины
func (r *NoteRepo) DeleteAllDeletedByOwner(ctx context.Context, ownerID string) (int, error) {
	recs, err := r.queryNotes(ctx,
		`DELETE type::table($tb) WHERE owner_id = $owner AND is_deleted = true RETURN BEFORE`,
		map[string]any{"tb": notesTable, "owner": ownerID})
	if err != nil {
		return 0, err
	}

	return len(recs), nil
}

// DeleteExpired окончательно удаляет просроченные заметки из корзины всех владельцев
func (r *NoteRepo) DeleteExpired(ctx context.Context, cutoff time.Time) (int, error) {
	recs, err := r.queryNotes(ctx,
		`DELETE type::table($tb) WHERE is_deleted = true AND deleted_at <= $cutoff RETURN BEFORE`,
		map[string]any{"tb": notesTable, "cutoff": cutoff})
	if err != nil {
		return 0, err
	}

	return len(recs), nil
}

func fromRecords(recs []noteRecord) []model.Note {
	notes := make([]model.Note, 0, len(recs))
	for _, rec := range recs {
		notes = append(notes, fromRecord(rec))
	}
	return notes
}

// appendPagination добавляет LIMIT/START к запросу, если задан limit
func appendPagination(sb *strings.Builder, vars map[string]any, page, limit int) {
	if limit <= 0 {
		return
	}
	if page < 1 {
		page = 1
	}
	sb.WriteString(` LIMIT $limit START $start`)
	vars["limit"] = limit
	vars["start"] = (page - 1) * limit
}
