package Models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificationType string

const (
	NotificationTaskCompleted       NotificationType = "task_completed"
	NotificationTaskApproved        NotificationType = "task_approved"
	NotificationCorrectionRequested NotificationType = "correction_requested"
	NotificationConsultedAction     NotificationType = "consulted_action"
	NotificationTaskUpdated         NotificationType = "task_updated"
)

// TaskNotification is created only as a side effect of a task transition and
// mutated only to flip Read. TaskTable carries the department tag of the
// originating task.
type TaskNotification struct {
	ID               string           `json:"id" gorm:"primaryKey;size:36"`
	UserID           string           `json:"user_id" gorm:"size:36;index;not null"`
	TaskID           string           `json:"task_id" gorm:"size:36;index;not null"`
	TaskTable        string           `json:"task_table" gorm:"size:32;not null"`
	NotificationType NotificationType `json:"notification_type" gorm:"size:32;not null"`
	Message          string           `json:"message" gorm:"not null"`
	Read             bool             `json:"read" gorm:"default:false;index"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (n *TaskNotification) TableName() string {
	return "task_notifications"
}

func (n *TaskNotification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	return nil
}

// FCMToken is one registered device of a user; notifications are mirrored to
// it as push messages.
type FCMToken struct {
	gorm.Model
	UserID string `json:"user_id" gorm:"size:36;index"`
	Value  string `json:"value" gorm:"uniqueIndex"`
}
