package Notifications

import (
	"fmt"

	"gorm.io/gorm"

	"AgencyHub/Models"
	"AgencyHub/email"
)

// EmailPusher mirrors notifications as plain-text mails to the recipient's
// profile address.
type EmailPusher struct {
	db     *gorm.DB
	config Models.EmailConfig
}

// NewEmailPusher returns nil when no SMTP server is configured.
func NewEmailPusher(db *gorm.DB) *EmailPusher {
	config := Models.EmailConfigFromEnv()
	if !config.Enabled() {
		return nil
	}
	return &EmailPusher{db: db, config: config}
}

func (p *EmailPusher) Push(notification Models.TaskNotification) error {
	var profile Models.UserProfile
	if err := p.db.Where("id = ?", notification.UserID).First(&profile).Error; err != nil {
		return err
	}

	message := Models.EmailMessage{
		To:      []string{profile.Email},
		Subject: subjectFor(notification.NotificationType),
		Body:    fmt.Sprintf("%s\n\nDepartamento: %s\n", notification.Message, notification.TaskTable),
	}
	return email.SendEmail(p.config, message)
}

func subjectFor(t Models.NotificationType) string {
	switch t {
	case Models.NotificationTaskCompleted:
		return "Tarea lista para revisión"
	case Models.NotificationTaskApproved:
		return "Tarea aprobada"
	case Models.NotificationCorrectionRequested:
		return "Corrección solicitada"
	case Models.NotificationConsultedAction:
		return "Nueva consulta en una tarea"
	default:
		return "Actualización de tarea"
	}
}
