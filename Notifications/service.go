package Notifications

import (
	"log"

	"gorm.io/gorm"

	"AgencyHub/Models"
)

// Pusher mirrors a stored notification to an external channel (FCM, email).
// Mirrors are strictly best-effort.
type Pusher interface {
	Push(notification Models.TaskNotification) error
}

// Service persists notification fan-outs and forwards them to the configured
// mirrors. It satisfies Workflow.Dispatcher.
type Service struct {
	db      *gorm.DB
	pushers []Pusher
}

func NewService(db *gorm.DB, pushers ...Pusher) *Service {
	return &Service{db: db, pushers: pushers}
}

// Dispatch inserts the batch and fans it out to mirrors. Failures are logged
// and swallowed: the task-status update that produced the batch is the
// authoritative effect and must not be rolled back here.
func (s *Service) Dispatch(notifications []Models.TaskNotification) {
	if len(notifications) == 0 {
		return
	}

	if err := s.db.Create(&notifications).Error; err != nil {
		log.Printf("notification insert failed, task state unaffected: %v", err)
		return
	}

	for _, pusher := range s.pushers {
		for _, n := range notifications {
			if err := pusher.Push(n); err != nil {
				log.Printf("notification mirror failed for user %s: %v", n.UserID, err)
			}
		}
	}
}

// MarkRead flips one notification owned by userID. Idempotent.
func (s *Service) MarkRead(userID, notificationID string) error {
	return s.db.Model(&Models.TaskNotification{}).
		Where("id = ? AND user_id = ?", notificationID, userID).
		Update("read", true).Error
}

// MarkAllRead flips every unread notification of userID. Idempotent.
func (s *Service) MarkAllRead(userID string) error {
	return s.db.Model(&Models.TaskNotification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Update("read", true).Error
}

// ListForUser returns the user's notifications newest first, optionally only
// the unread ones.
func (s *Service) ListForUser(userID string, unreadOnly bool) ([]Models.TaskNotification, error) {
	query := s.db.Where("user_id = ?", userID).Order("created_at DESC")
	if unreadOnly {
		query = query.Where("read = ?", false)
	}
	var notifications []Models.TaskNotification
	if err := query.Find(&notifications).Error; err != nil {
		return nil, err
	}
	return notifications, nil
}

// UnreadCount returns the badge count for polling clients.
func (s *Service) UnreadCount(userID string) (int64, error) {
	var count int64
	err := s.db.Model(&Models.TaskNotification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Count(&count).Error
	return count, err
}
