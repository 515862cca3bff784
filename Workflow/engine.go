package Workflow

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"AgencyHub/Models"
)

// Dispatcher delivers notifications derived from a transition. Delivery is
// best-effort: implementations log failures and never propagate them, the
// task update stays authoritative either way.
type Dispatcher interface {
	Dispatch(notifications []Models.TaskNotification)
}

// Engine runs the RACI task workflow: guarded status transitions plus
// notification fan-out. Every status-changing update carries a status guard
// in the WHERE clause, so a concurrent transition loses with ErrStaleTask
// instead of silently overwriting.
type Engine struct {
	db       *gorm.DB
	dispatch Dispatcher
}

func NewEngine(db *gorm.DB, dispatch Dispatcher) *Engine {
	return &Engine{db: db, dispatch: dispatch}
}

// GetTask loads one task row by id.
func (e *Engine) GetTask(taskID string) (*Models.TaskItem, error) {
	var task Models.TaskItem
	if err := e.db.Where("id = ?", taskID).First(&task).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	return &task, nil
}

// CompleteTask moves a pending or correction_needed task to in_review with
// the responsible user's delivery content.
func (e *Engine) CompleteTask(actor Models.UserProfile, taskID, content string) (*Models.TaskItem, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyContent
	}

	task, err := e.GetTask(taskID)
	if err != nil {
		return nil, err
	}
	if !RolesFor(actor.ID, task).Has(RoleResponsible) {
		return nil, ErrNotResponsible
	}
	if task.Status != Models.StatusPending && task.Status != Models.StatusCorrectionNeeded {
		return nil, ErrInvalidStatus
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":             Models.StatusInReview,
		"completion_content": content,
		"completed_by":       actor.ID,
		"completed_at":       now,
	}
	allowed := []Models.TaskStatus{Models.StatusPending, Models.StatusCorrectionNeeded}
	if err := e.applyTransition(task.ID, allowed, updates); err != nil {
		return nil, err
	}

	var notifications []Models.TaskNotification
	if task.AccountableUser != "" {
		notifications = append(notifications, Models.TaskNotification{
			UserID:           task.AccountableUser,
			TaskID:           task.ID,
			TaskTable:        string(task.Department),
			NotificationType: Models.NotificationTaskCompleted,
			Message:          fmt.Sprintf("%s ha sido completada y está lista para revisión", task.Title),
		})
	}
	notifications = append(notifications, e.informedUpdates(task, fmt.Sprintf("La tarea %q ha sido actualizada", task.Title))...)
	e.dispatch.Dispatch(notifications)

	return e.GetTask(task.ID)
}

// ApproveTask moves an in_review task to its terminal completed state.
func (e *Engine) ApproveTask(actor Models.UserProfile, taskID string) (*Models.TaskItem, error) {
	task, err := e.GetTask(taskID)
	if err != nil {
		return nil, err
	}
	if !RolesFor(actor.ID, task).Has(RoleAccountable) {
		return nil, ErrNotAccountable
	}
	if task.Status != Models.StatusInReview {
		return nil, ErrInvalidStatus
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":      Models.StatusCompleted,
		"reviewed_by": actor.ID,
		"reviewed_at": now,
	}
	if err := e.applyTransition(task.ID, []Models.TaskStatus{Models.StatusInReview}, updates); err != nil {
		return nil, err
	}

	var notifications []Models.TaskNotification
	if task.ResponsibleUser != "" {
		notifications = append(notifications, Models.TaskNotification{
			UserID:           task.ResponsibleUser,
			TaskID:           task.ID,
			TaskTable:        string(task.Department),
			NotificationType: Models.NotificationTaskApproved,
			Message:          fmt.Sprintf("Tu tarea %q ha sido aprobada", task.Title),
		})
	}
	notifications = append(notifications, e.informedUpdates(task, fmt.Sprintf("La tarea %q ha sido finalizada", task.Title))...)
	e.dispatch.Dispatch(notifications)

	return e.GetTask(task.ID)
}

// RequestCorrection returns an in_review task to the responsible user's
// queue with feedback. This is the only cycle in the state machine.
func (e *Engine) RequestCorrection(actor Models.UserProfile, taskID, feedback string) (*Models.TaskItem, error) {
	feedback = strings.TrimSpace(feedback)
	if feedback == "" {
		return nil, ErrEmptyContent
	}

	task, err := e.GetTask(taskID)
	if err != nil {
		return nil, err
	}
	if !RolesFor(actor.ID, task).Has(RoleAccountable) {
		return nil, ErrNotAccountable
	}
	if task.Status != Models.StatusInReview {
		return nil, ErrInvalidStatus
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":                  Models.StatusCorrectionNeeded,
		"correction_feedback":     feedback,
		"correction_requested_at": now,
		"reviewed_by":             actor.ID,
		"reviewed_at":             now,
	}
	if err := e.applyTransition(task.ID, []Models.TaskStatus{Models.StatusInReview}, updates); err != nil {
		return nil, err
	}

	var notifications []Models.TaskNotification
	if task.ResponsibleUser != "" {
		notifications = append(notifications, Models.TaskNotification{
			UserID:           task.ResponsibleUser,
			TaskID:           task.ID,
			TaskTable:        string(task.Department),
			NotificationType: Models.NotificationCorrectionRequested,
			Message:          fmt.Sprintf("Se ha solicitado una corrección para %q", task.Title),
		})
	}
	notifications = append(notifications, e.informedUpdates(task, fmt.Sprintf("Se ha solicitado corrección para %q", task.Title))...)
	e.dispatch.Dispatch(notifications)

	return e.GetTask(task.ID)
}

// SubmitConsultedInput records advisory input from a consulted user. The
// task status is never touched, at any current status.
func (e *Engine) SubmitConsultedInput(actor Models.UserProfile, taskID, content string) (*Models.TaskItem, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyContent
	}

	task, err := e.GetTask(taskID)
	if err != nil {
		return nil, err
	}
	if !RolesFor(actor.ID, task).Has(RoleConsulted) {
		return nil, ErrNotConsulted
	}

	now := time.Now()
	res := e.db.Model(&Models.TaskItem{}).
		Where("id = ?", task.ID).
		Updates(map[string]interface{}{
			"consulted_content": content,
			"consulted_by":      actor.ID,
			"consulted_at":      now,
		})
	if res.Error != nil {
		return nil, res.Error
	}

	consultedMsg := fmt.Sprintf("Se ha agregado contenido de consulta a %q", task.Title)
	var notifications []Models.TaskNotification
	for _, userID := range []string{task.ResponsibleUser, task.AccountableUser} {
		if userID == "" {
			continue
		}
		notifications = append(notifications, Models.TaskNotification{
			UserID:           userID,
			TaskID:           task.ID,
			TaskTable:        string(task.Department),
			NotificationType: Models.NotificationConsultedAction,
			Message:          consultedMsg,
		})
	}
	notifications = append(notifications, e.informedUpdates(task, fmt.Sprintf("Se ha actualizado la consulta de %q", task.Title))...)
	e.dispatch.Dispatch(notifications)

	return e.GetTask(task.ID)
}

// applyTransition issues the guarded update. The status guard makes the
// transition a compare-and-swap: zero affected rows means another actor got
// there first.
func (e *Engine) applyTransition(taskID string, allowed []Models.TaskStatus, updates map[string]interface{}) error {
	res := e.db.Model(&Models.TaskItem{}).
		Where("id = ? AND status IN ?", taskID, allowed).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStaleTask
	}
	return nil
}

// informedUpdates builds one task_updated notification per informed user.
// No deduplication: a user who is also accountable receives both rows.
func (e *Engine) informedUpdates(task *Models.TaskItem, message string) []Models.TaskNotification {
	notifications := make([]Models.TaskNotification, 0, len(task.InformedUsers))
	for _, userID := range task.InformedUsers {
		if userID == "" {
			continue
		}
		notifications = append(notifications, Models.TaskNotification{
			UserID:           userID,
			TaskID:           task.ID,
			TaskTable:        string(task.Department),
			NotificationType: Models.NotificationTaskUpdated,
			Message:          message,
		})
	}
	return notifications
}
