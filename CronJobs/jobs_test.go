package CronJobs

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"AgencyHub/Models"
)

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

func TestDueReminders(t *testing.T) {
	db := newTestDB(t)
	now := time.Date(2025, 9, 1, 8, 0, 0, 0, time.UTC)

	dueToday := now
	overdue := now.AddDate(0, 0, -3)
	future := now.AddDate(0, 0, 5)

	seed := []Models.TaskItem{
		{Title: "Vence hoy", Department: Models.DepartmentMarketing, InfoType: Models.InfoTypeTask, ResponsibleUser: "ana", DueDate: &dueToday},
		{Title: "Vencida", Department: Models.DepartmentCommunity, InfoType: Models.InfoTypeTask, ResponsibleUser: "bruno", DueDate: &overdue},
		{Title: "Futura", Department: Models.DepartmentMarketing, InfoType: Models.InfoTypeTask, ResponsibleUser: "ana", DueDate: &future},
		{Title: "Sin responsable", Department: Models.DepartmentBranding, InfoType: Models.InfoTypeTask, DueDate: &overdue},
		{Title: "Ya completada", Department: Models.DepartmentMarketing, InfoType: Models.InfoTypeTask, ResponsibleUser: "ana", DueDate: &overdue, Status: Models.StatusCompleted},
		{Title: "En revisión", Department: Models.DepartmentMarketing, InfoType: Models.InfoTypeTask, ResponsibleUser: "ana", DueDate: &overdue, Status: Models.StatusInReview},
		{Title: "Sin fecha", Department: Models.DepartmentMarketing, InfoType: Models.InfoTypeTask, ResponsibleUser: "ana"},
	}
	for i := range seed {
		if err := db.Create(&seed[i]).Error; err != nil {
			t.Fatalf("seeding: %v", err)
		}
	}

	reminders, err := DueReminders(db, now)
	if err != nil {
		t.Fatalf("DueReminders: %v", err)
	}
	if len(reminders) != 2 {
		t.Fatalf("reminders = %d, want 2: %+v", len(reminders), reminders)
	}

	byUser := make(map[string]Models.TaskNotification)
	for _, r := range reminders {
		byUser[r.UserID] = r
	}

	today, ok := byUser["ana"]
	if !ok {
		t.Fatal("missing reminder for ana")
	}
	if !strings.Contains(today.Message, "vence hoy") {
		t.Errorf("due-today message = %q", today.Message)
	}

	late, ok := byUser["bruno"]
	if !ok {
		t.Fatal("missing reminder for bruno")
	}
	if !strings.Contains(late.Message, "está vencida desde 2025-08-29") {
		t.Errorf("overdue message = %q", late.Message)
	}
	if late.TaskTable != "community" {
		t.Errorf("task_table = %q, want community", late.TaskTable)
	}
	if late.NotificationType != Models.NotificationTaskUpdated {
		t.Errorf("notification type = %s", late.NotificationType)
	}
}
