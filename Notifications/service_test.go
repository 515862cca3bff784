package Notifications

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"AgencyHub/Models"
)

type recordingPusher struct {
	pushed []Models.TaskNotification
	err    error
}

func (p *recordingPusher) Push(n Models.TaskNotification) error {
	p.pushed = append(p.pushed, n)
	return p.err
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	if err := Models.Migrate(db); err != nil {
		t.Fatalf("migrating: %v", err)
	}
	return db
}

func notification(userID, message string) Models.TaskNotification {
	return Models.TaskNotification{
		UserID:           userID,
		TaskID:           "task-1",
		TaskTable:        "marketing",
		NotificationType: Models.NotificationTaskUpdated,
		Message:          message,
	}
}

func TestDispatchPersistsAndMirrors(t *testing.T) {
	db := newTestDB(t)
	pusher := &recordingPusher{}
	service := NewService(db, pusher)

	service.Dispatch([]Models.TaskNotification{
		notification("ana", "uno"),
		notification("bruno", "dos"),
	})

	var count int64
	db.Model(&Models.TaskNotification{}).Count(&count)
	if count != 2 {
		t.Errorf("stored rows = %d, want 2", count)
	}
	if len(pusher.pushed) != 2 {
		t.Errorf("mirrored = %d, want 2", len(pusher.pushed))
	}
}

func TestDispatchSwallowsMirrorFailures(t *testing.T) {
	db := newTestDB(t)
	failing := &recordingPusher{err: errors.New("fcm unreachable")}
	service := NewService(db, failing)

	service.Dispatch([]Models.TaskNotification{notification("ana", "uno")})

	var count int64
	db.Model(&Models.TaskNotification{}).Count(&count)
	if count != 1 {
		t.Errorf("mirror failure must not affect storage, rows = %d", count)
	}
}

func TestDispatchEmptyBatch(t *testing.T) {
	db := newTestDB(t)
	pusher := &recordingPusher{}
	service := NewService(db, pusher)

	service.Dispatch(nil)

	if len(pusher.pushed) != 0 {
		t.Error("empty batch reached the pushers")
	}
}

func TestMarkReadScopedToOwner(t *testing.T) {
	db := newTestDB(t)
	service := NewService(db)
	service.Dispatch([]Models.TaskNotification{notification("ana", "uno")})

	list, err := service.ListForUser("ana", false)
	if err != nil || len(list) != 1 {
		t.Fatalf("list = %v, err = %v", list, err)
	}
	id := list[0].ID

	// Another user cannot flip it.
	if err := service.MarkRead("bruno", id); err != nil {
		t.Fatalf("MarkRead foreign: %v", err)
	}
	if count, _ := service.UnreadCount("ana"); count != 1 {
		t.Errorf("foreign MarkRead flipped the row, unread = %d", count)
	}

	if err := service.MarkRead("ana", id); err != nil {
		t.Fatalf("MarkRead: %v", err)
	}
	if count, _ := service.UnreadCount("ana"); count != 0 {
		t.Errorf("unread after MarkRead = %d", count)
	}

	// Idempotent.
	if err := service.MarkRead("ana", id); err != nil {
		t.Fatalf("repeat MarkRead: %v", err)
	}
}

func TestMarkAllRead(t *testing.T) {
	db := newTestDB(t)
	service := NewService(db)
	service.Dispatch([]Models.TaskNotification{
		notification("ana", "uno"),
		notification("ana", "dos"),
		notification("bruno", "tres"),
	})

	if err := service.MarkAllRead("ana"); err != nil {
		t.Fatalf("MarkAllRead: %v", err)
	}
	if count, _ := service.UnreadCount("ana"); count != 0 {
		t.Errorf("ana unread = %d, want 0", count)
	}
	if count, _ := service.UnreadCount("bruno"); count != 1 {
		t.Errorf("bruno unread = %d, want 1", count)
	}
}

func TestListForUserOrderAndFilter(t *testing.T) {
	db := newTestDB(t)
	service := NewService(db)

	older := notification("ana", "vieja")
	older.CreatedAt = time.Now().Add(-time.Hour)
	newer := notification("ana", "nueva")
	newer.CreatedAt = time.Now()
	if err := db.Create(&older).Error; err != nil {
		t.Fatal(err)
	}
	if err := db.Create(&newer).Error; err != nil {
		t.Fatal(err)
	}

	list, err := service.ListForUser("ana", false)
	if err != nil {
		t.Fatalf("ListForUser: %v", err)
	}
	if len(list) != 2 || list[0].Message != "nueva" {
		t.Fatalf("order wrong: %+v", list)
	}

	service.MarkRead("ana", newer.ID)
	unread, err := service.ListForUser("ana", true)
	if err != nil {
		t.Fatalf("ListForUser unread: %v", err)
	}
	if len(unread) != 1 || unread[0].Message != "vieja" {
		t.Errorf("unread filter wrong: %+v", unread)
	}
}
