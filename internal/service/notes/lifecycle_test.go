package notes

import (
	"context"
	"testing"
	"time"

	"notes-backend/internal/model"
	"notes-backend/internal/repository"
)

// checkLifecycleInvariant проверяет, что флаг и метка удаления
// всегда согласованы: IsDeleted == true тогда и только тогда,
// когда DeletedAt != nil
func checkLifecycleInvariant(t *testing.T, note model.Note) {
	t.Helper()
	if note.IsDeleted != (note.DeletedAt != nil) {
		t.Errorf("Lifecycle invariant broken: IsDeleted=%v, DeletedAt=%v", note.IsDeleted, note.DeletedAt)
	}
}

func TestLifecycle_SoftDeleteAndRestore(t *testing.T) {
	ctx := context.Background()
	service, _, _ := newTestService(t)

	created, err := service.Create(ctx, "owner-1", model.Note{Title: "Trip plan"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	checkLifecycleInvariant(t, created)

	deleted, err := service.SoftDelete(ctx, created.ID, "owner-1")
	if err != nil {
		t.Fatalf("SoftDelete failed: %v", err)
	}
	checkLifecycleInvariant(t, deleted)
	if !deleted.IsDeleted {
		t.Error("Expected note to be in recycle bin")
	}

	// В корзине заметка видна
	binned, err := service.ListRecycleBin(ctx, "owner-1", 1, 10)
	if err != nil {
		t.Fatalf("ListRecycleBin failed: %v", err)
	}
	if len(binned) != 1 || binned[0].ID != created.ID {
		t.Errorf("Expected note in recycle bin, got %d notes", len(binned))
	}

	restored, err := service.Restore(ctx, created.ID, "owner-1")
	if err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	checkLifecycleInvariant(t, restored)
	if restored.IsDeleted || restored.DeletedAt != nil {
		t.Error("Expected restored note to be live")
	}

	// После восстановления корзина пуста, а заметка снова читается
	binned, err = service.ListRecycleBin(ctx, "owner-1", 1, 10)
	if err != nil {
		t.Fatalf("ListRecycleBin failed: %v", err)
	}
	if len(binned) != 0 {
		t.Errorf("Expected empty recycle bin, got %d notes", len(binned))
	}
	if _, err := service.Get(ctx, created.ID, "owner-1"); err != nil {
		t.Errorf("Expected restored note to be readable, got: %v", err)
	}
}

func TestLifecycle_SoftDelete_OwnerOnly(t *testing.T) {
	ctx := context.Background()
	service, _, _ := newTestService(t, model.User{ID: "writer"})

	created, err := service.Create(ctx, "owner-1", model.Note{Title: "Protected"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// Даже write-доступ не дает права удалять
	if _, err := service.ShareWith(ctx, created.ID, "owner-1", "writer", model.PermissionWrite); err != nil {
		t.Fatalf("ShareWith failed: %v", err)
	}
	if _, err := service.SoftDelete(ctx, created.ID, "writer"); err != ErrForbidden {
		t.Errorf("Expected ErrForbidden, got: %v", err)
	}
}

func TestLifecycle_SoftDelete_RestampsDeletedAt(t *testing.T) {
	ctx := context.Background()
	service, _, clock := newTestService(t)

	created, err := service.Create(ctx, "owner-1", model.Note{Title: "Twice deleted"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	first, err := service.SoftDelete(ctx, created.ID, "owner-1")
	if err != nil {
		t.Fatalf("First SoftDelete failed: %v", err)
	}

	*clock = clock.Add(48 * time.Hour)

	second, err := service.SoftDelete(ctx, created.ID, "owner-1")
	if err != nil {
		t.Fatalf("Second SoftDelete failed: %v", err)
	}
	checkLifecycleInvariant(t, second)
	if !second.DeletedAt.After(*first.DeletedAt) {
		t.Error("Expected repeated soft delete to restamp DeletedAt")
	}
}

func TestLifecycle_Restore_LiveNote(t *testing.T) {
	ctx := context.Background()
	service, _, _ := newTestService(t)

	created, err := service.Create(ctx, "owner-1", model.Note{Title: "Alive"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if _, err := service.Restore(ctx, created.ID, "owner-1"); err != ErrNotInRecycleBin {
		t.Errorf("Expected ErrNotInRecycleBin for live note, got: %v", err)
	}
}

func TestLifecycle_PermanentlyDelete(t *testing.T) {
	ctx := context.Background()
	service, _, _ := newTestService(t)

	created, err := service.Create(ctx, "owner-1", model.Note{Title: "Gone for good"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// Живую заметку можно удалить окончательно, минуя корзину
	if err := service.PermanentlyDelete(ctx, created.ID, "owner-1"); err != nil {
		t.Fatalf("PermanentlyDelete failed: %v", err)
	}

	if _, err := service.Get(ctx, created.ID, "owner-1"); err != repository.ErrNoteNotFound {
		t.Errorf("Expected ErrNoteNotFound after permanent delete, got: %v", err)
	}
	if _, err := service.Restore(ctx, created.ID, "owner-1"); err != repository.ErrNoteNotFound {
		t.Errorf("Expected ErrNoteNotFound on restore attempt, got: %v", err)
	}
}

func TestLifecycle_EmptyRecycleBin_OwnerIsolation(t *testing.T) {
	ctx := context.Background()
	service, _, _ := newTestService(t)

	mine, err := service.Create(ctx, "owner-1", model.Note{Title: "Mine"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	theirs, err := service.Create(ctx, "owner-2", model.Note{Title: "Theirs"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if _, err := service.SoftDelete(ctx, mine.ID, "owner-1"); err != nil {
		t.Fatalf("SoftDelete failed: %v", err)
	}
	if _, err := service.SoftDelete(ctx, theirs.ID, "owner-2"); err != nil {
		t.Fatalf("SoftDelete failed: %v", err)
	}

	deleted, err := service.EmptyRecycleBin(ctx, "owner-1")
	if err != nil {
		t.Fatalf("EmptyRecycleBin failed: %v", err)
	}
	if deleted != 1 {
		t.Errorf("Expected 1 note purged, got %d", deleted)
	}

	// Корзина второго владельца не затронута
	otherBin, err := service.ListRecycleBin(ctx, "owner-2", 1, 10)
	if err != nil {
		t.Fatalf("ListRecycleBin failed: %v", err)
	}
	if len(otherBin) != 1 {
		t.Errorf("Expected other owner's bin untouched, got %d notes", len(otherBin))
	}
}

func TestLifecycle_SweepExpired_Boundary(t *testing.T) {
	ctx := context.Background()
	service, _, clock := newTestService(t)

	expired, err := service.Create(ctx, "owner-1", model.Note{Title: "Old"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := service.SoftDelete(ctx, expired.ID, "owner-1"); err != nil {
		t.Fatalf("SoftDelete failed: %v", err)
	}

	// Вторая заметка удаляется двумя днями позже
	*clock = clock.Add(2 * 24 * time.Hour)
	fresh, err := service.Create(ctx, "owner-1", model.Note{Title: "Recent"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := service.SoftDelete(ctx, fresh.ID, "owner-1"); err != nil {
		t.Fatalf("SoftDelete failed: %v", err)
	}

	// Теперь первой заметке 31 день в корзине, второй - 29
	*clock = clock.Add(29 * 24 * time.Hour)

	purged, err := service.SweepExpired(ctx, 30*24*time.Hour)
	if err != nil {
		t.Fatalf("SweepExpired failed: %v", err)
	}
	if purged != 1 {
		t.Errorf("Expected exactly 1 note purged, got %d", purged)
	}

	binned, err := service.ListRecycleBin(ctx, "owner-1", 1, 10)
	if err != nil {
		t.Fatalf("ListRecycleBin failed: %v", err)
	}
	if len(binned) != 1 || binned[0].ID != fresh.ID {
		t.Errorf("Expected only the recent note to survive the sweep, got %d notes", len(binned))
	}
}
