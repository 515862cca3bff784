package Workflow

import (
	"errors"
	"path/filepath"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"AgencyHub/Models"
)

// recordingDispatcher captures fan-out without touching a real channel.
type recordingDispatcher struct {
	batches [][]Models.TaskNotification
}

func (d *recordingDispatcher) Dispatch(notifications []Models.TaskNotification) {
	d.batches = append(d.batches, notifications)
}

func (d *recordingDispatcher) all() []Models.TaskNotification {
	var out []Models.TaskNotification
	for _, b := range d.batches {
		out = append(out, b...)
	}
	return out
}

func (d *recordingDispatcher) ofType(t Models.NotificationType) []Models.TaskNotification {
	var out []Models.TaskNotification
	for _, n := range d.all() {
		if n.NotificationType == t {
			out = append(out, n)
		}
	}
	return out
}

func newTestEngine(t *testing.T) (*Engine, *gorm.DB, *recordingDispatcher) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	if err := Models.Migrate(db); err != nil {
		t.Fatalf("migrating: %v", err)
	}
	dispatcher := &recordingDispatcher{}
	return NewEngine(db, dispatcher), db, dispatcher
}

func user(id string) Models.UserProfile {
	return Models.UserProfile{ID: id, FullName: "User " + id, Email: id + "@agency.test"}
}

func createTask(t *testing.T, db *gorm.DB, task Models.TaskItem) Models.TaskItem {
	t.Helper()
	if task.Department == "" {
		task.Department = Models.DepartmentMarketing
	}
	if task.InfoType == "" {
		task.InfoType = Models.InfoTypeTask
	}
	if task.Title == "" {
		task.Title = "Definir audiencias"
	}
	if err := db.Create(&task).Error; err != nil {
		t.Fatalf("creating task: %v", err)
	}
	return task
}

func TestCompleteTaskMovesToInReview(t *testing.T) {
	engine, db, dispatcher := newTestEngine(t)
	task := createTask(t, db, Models.TaskItem{
		ResponsibleUser: "ana",
		AccountableUser: "bruno",
		InformedUsers:   []string{"carla", "diego"},
	})

	got, err := engine.CompleteTask(user("ana"), task.ID, "Entregable listo")
	if err != nil {
		t.Fatalf("CompleteTask: %v", err)
	}
	if got.Status != Models.StatusInReview {
		t.Errorf("status = %s, want %s", got.Status, Models.StatusInReview)
	}
	if got.CompletionContent != "Entregable listo" {
		t.Errorf("completion content = %q", got.CompletionContent)
	}
	if got.CompletedBy != "ana" {
		t.Errorf("completed_by = %q, want ana", got.CompletedBy)
	}
	if got.CompletedAt == nil {
		t.Error("completed_at not set")
	}

	completed := dispatcher.ofType(Models.NotificationTaskCompleted)
	if len(completed) != 1 || completed[0].UserID != "bruno" {
		t.Fatalf("task_completed notifications = %+v, want one for bruno", completed)
	}
	updated := dispatcher.ofType(Models.NotificationTaskUpdated)
	if len(updated) != 2 {
		t.Fatalf("task_updated count = %d, want 2", len(updated))
	}
	for _, n := range dispatcher.all() {
		if n.TaskTable != string(Models.DepartmentMarketing) {
			t.Errorf("notification task_table = %q", n.TaskTable)
		}
		if n.TaskID != task.ID {
			t.Errorf("notification task_id = %q", n.TaskID)
		}
	}
}

func TestCompleteTaskRejectsNonResponsible(t *testing.T) {
	engine, db, dispatcher := newTestEngine(t)
	task := createTask(t, db, Models.TaskItem{
		ResponsibleUser: "ana",
		AccountableUser: "bruno",
	})

	if _, err := engine.CompleteTask(user("bruno"), task.ID, "contenido"); !errors.Is(err, ErrNotResponsible) {
		t.Fatalf("err = %v, want ErrNotResponsible", err)
	}
	if len(dispatcher.all()) != 0 {
		t.Error("rejected transition produced notifications")
	}

	var reloaded Models.TaskItem
	db.First(&reloaded, "id = ?", task.ID)
	if reloaded.Status != Models.StatusPending {
		t.Errorf("status changed to %s on rejected transition", reloaded.Status)
	}
}

func TestCompleteTaskRejectsEmptyContent(t *testing.T) {
	engine, db, _ := newTestEngine(t)
	task := createTask(t, db, Models.TaskItem{ResponsibleUser: "ana"})

	for _, content := range []string{"", "   ", "\n\t"} {
		if _, err := engine.CompleteTask(user("ana"), task.ID, content); !errors.Is(err, ErrEmptyContent) {
			t.Errorf("content %q: err = %v, want ErrEmptyContent", content, err)
		}
	}
}

func TestCompleteTaskRejectsWrongStatus(t *testing.T) {
	engine, db, _ := newTestEngine(t)
	for _, status := range []Models.TaskStatus{Models.StatusInReview, Models.StatusCompleted} {
		task := createTask(t, db, Models.TaskItem{ResponsibleUser: "ana", Status: status})
		if _, err := engine.CompleteTask(user("ana"), task.ID, "contenido"); !errors.Is(err, ErrInvalidStatus) {
			t.Errorf("status %s: err = %v, want ErrInvalidStatus", status, err)
		}
	}
}

func TestApproveTaskCompletes(t *testing.T) {
	engine, db, dispatcher := newTestEngine(t)
	task := createTask(t, db, Models.TaskItem{
		ResponsibleUser: "ana",
		AccountableUser: "bruno",
		InformedUsers:   []string{"carla"},
		Status:          Models.StatusInReview,
	})

	got, err := engine.ApproveTask(user("bruno"), task.ID)
	if err != nil {
		t.Fatalf("ApproveTask: %v", err)
	}
	if got.Status != Models.StatusCompleted {
		t.Errorf("status = %s, want completed", got.Status)
	}
	if got.ReviewedBy != "bruno" || got.ReviewedAt == nil {
		t.Errorf("review audit not set: by=%q at=%v", got.ReviewedBy, got.ReviewedAt)
	}

	approved := dispatcher.ofType(Models.NotificationTaskApproved)
	if len(approved) != 1 || approved[0].UserID != "ana" {
		t.Fatalf("task_approved notifications = %+v, want one for ana", approved)
	}
	if n := len(dispatcher.ofType(Models.NotificationTaskUpdated)); n != 1 {
		t.Errorf("task_updated count = %d, want 1", n)
	}
}

func TestApproveTaskRejectsNonAccountable(t *testing.T) {
	engine, db, _ := newTestEngine(t)
	task := createTask(t, db, Models.TaskItem{
		ResponsibleUser: "ana",
		AccountableUser: "bruno",
		Status:          Models.StatusInReview,
	})
	if _, err := engine.ApproveTask(user("ana"), task.ID); !errors.Is(err, ErrNotAccountable) {
		t.Fatalf("err = %v, want ErrNotAccountable", err)
	}
}

func TestApproveTaskIsTerminal(t *testing.T) {
	engine, db, _ := newTestEngine(t)
	task := createTask(t, db, Models.TaskItem{
		ResponsibleUser: "ana",
		AccountableUser: "bruno",
		Status:          Models.StatusInReview,
	})

	if _, err := engine.ApproveTask(user("bruno"), task.ID); err != nil {
		t.Fatalf("first approve: %v", err)
	}
	if _, err := engine.ApproveTask(user("bruno"), task.ID); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("second approve err = %v, want ErrInvalidStatus", err)
	}
	if _, err := engine.CompleteTask(user("ana"), task.ID, "otra vez"); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("complete after approve err = %v, want ErrInvalidStatus", err)
	}
}

func TestRequestCorrectionCycle(t *testing.T) {
	engine, db, dispatcher := newTestEngine(t)
	task := createTask(t, db, Models.TaskItem{
		ResponsibleUser: "ana",
		AccountableUser: "bruno",
		InformedUsers:   []string{"carla"},
	})

	if _, err := engine.CompleteTask(user("ana"), task.ID, "primera versión"); err != nil {
		t.Fatalf("complete: %v", err)
	}

	got, err := engine.RequestCorrection(user("bruno"), task.ID, "Falta el llamado a la acción")
	if err != nil {
		t.Fatalf("RequestCorrection: %v", err)
	}
	if got.Status != Models.StatusCorrectionNeeded {
		t.Errorf("status = %s, want correction_needed", got.Status)
	}
	if got.CorrectionFeedback != "Falta el llamado a la acción" {
		t.Errorf("feedback = %q", got.CorrectionFeedback)
	}
	if got.CorrectionRequestedAt == nil {
		t.Error("correction_requested_at not set")
	}

	correction := dispatcher.ofType(Models.NotificationCorrectionRequested)
	if len(correction) != 1 || correction[0].UserID != "ana" {
		t.Fatalf("correction notifications = %+v, want one for ana", correction)
	}

	// Loop re-entry: the responsible user resubmits and the corrected
	// content overwrites the first delivery.
	got, err = engine.CompleteTask(user("ana"), task.ID, "segunda versión")
	if err != nil {
		t.Fatalf("complete after correction: %v", err)
	}
	if got.Status != Models.StatusInReview {
		t.Errorf("status after resubmit = %s, want in_review", got.Status)
	}
	if got.CompletionContent != "segunda versión" {
		t.Errorf("completion content = %q, want overwrite", got.CompletionContent)
	}

	if _, err := engine.ApproveTask(user("bruno"), task.ID); err != nil {
		t.Fatalf("approve after resubmit: %v", err)
	}
}

func TestRequestCorrectionRejectsEmptyFeedback(t *testing.T) {
	engine, db, _ := newTestEngine(t)
	task := createTask(t, db, Models.TaskItem{
		AccountableUser: "bruno",
		Status:          Models.StatusInReview,
	})
	if _, err := engine.RequestCorrection(user("bruno"), task.ID, "  "); !errors.Is(err, ErrEmptyContent) {
		t.Fatalf("err = %v, want ErrEmptyContent", err)
	}
}

func TestSubmitConsultedInputNeverChangesStatus(t *testing.T) {
	engine, db, dispatcher := newTestEngine(t)
	for _, status := range []Models.TaskStatus{
		Models.StatusPending,
		Models.StatusInReview,
		Models.StatusCompleted,
		Models.StatusCorrectionNeeded,
	} {
		task := createTask(t, db, Models.TaskItem{
			ResponsibleUser: "ana",
			AccountableUser: "bruno",
			ConsultedUsers:  []string{"elisa"},
			Status:          status,
		})

		got, err := engine.SubmitConsultedInput(user("elisa"), task.ID, "Sugerencia de tono")
		if err != nil {
			t.Fatalf("status %s: SubmitConsultedInput: %v", status, err)
		}
		if got.Status != status {
			t.Errorf("status %s changed to %s", status, got.Status)
		}
		if got.ConsultedContent != "Sugerencia de tono" || got.ConsultedBy != "elisa" || got.ConsultedAt == nil {
			t.Errorf("status %s: consulted fields = %q/%q/%v", status, got.ConsultedContent, got.ConsultedBy, got.ConsultedAt)
		}
	}

	// Each of the four submissions notifies responsible and accountable.
	if n := len(dispatcher.ofType(Models.NotificationConsultedAction)); n != 8 {
		t.Errorf("consulted_action count = %d, want 8", n)
	}
}

func TestSubmitConsultedInputRejectsNonConsulted(t *testing.T) {
	engine, db, _ := newTestEngine(t)
	task := createTask(t, db, Models.TaskItem{
		ResponsibleUser: "ana",
		ConsultedUsers:  []string{"elisa"},
	})
	if _, err := engine.SubmitConsultedInput(user("ana"), task.ID, "contenido"); !errors.Is(err, ErrNotConsulted) {
		t.Fatalf("err = %v, want ErrNotConsulted", err)
	}
}

func TestConcurrentTransitionLoses(t *testing.T) {
	engine, db, _ := newTestEngine(t)
	task := createTask(t, db, Models.TaskItem{
		ResponsibleUser: "ana",
		AccountableUser: "bruno",
		Status:          Models.StatusInReview,
	})

	// Simulate a race: the row moves out of in_review after the engine
	// loaded it but before the guarded update lands.
	stale, err := engine.GetTask(task.ID)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	db.Model(&Models.TaskItem{}).Where("id = ?", stale.ID).Update("status", Models.StatusCompleted)

	err = engine.applyTransition(stale.ID, []Models.TaskStatus{Models.StatusInReview}, map[string]interface{}{
		"status": Models.StatusCorrectionNeeded,
	})
	if !errors.Is(err, ErrStaleTask) {
		t.Fatalf("err = %v, want ErrStaleTask", err)
	}

	var reloaded Models.TaskItem
	db.First(&reloaded, "id = ?", task.ID)
	if reloaded.Status != Models.StatusCompleted {
		t.Errorf("losing transition overwrote status: %s", reloaded.Status)
	}
}

func TestTaskNotFound(t *testing.T) {
	engine, _, _ := newTestEngine(t)
	if _, err := engine.CompleteTask(user("ana"), "missing-id", "contenido"); !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("err = %v, want ErrTaskNotFound", err)
	}
}

func TestOverlappingRolesNotifyTwice(t *testing.T) {
	engine, db, dispatcher := newTestEngine(t)
	// bruno is accountable and also listed as informed, so a completion
	// produces two rows for him.
	task := createTask(t, db, Models.TaskItem{
		ResponsibleUser: "ana",
		AccountableUser: "bruno",
		InformedUsers:   []string{"bruno"},
	})

	if _, err := engine.CompleteTask(user("ana"), task.ID, "contenido"); err != nil {
		t.Fatalf("complete: %v", err)
	}

	var forBruno int
	for _, n := range dispatcher.all() {
		if n.UserID == "bruno" {
			forBruno++
		}
	}
	if forBruno != 2 {
		t.Errorf("notifications for bruno = %d, want 2", forBruno)
	}
}
