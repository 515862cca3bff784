package Notifications

import (
	"context"
	"fmt"
	"log"
	"os"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
	"gorm.io/gorm"

	"AgencyHub/Models"
)

// FCMPusher mirrors notifications as Firebase Cloud Messaging pushes to every
// device token registered for the recipient. The push only tells the client
// to re-fetch; the notification list in the database stays authoritative.
type FCMPusher struct {
	client *messaging.Client
	db     *gorm.DB
	ctx    context.Context
}

// NewFCMPusher initializes Firebase from the service-account file named by
// FIREBASE_CREDENTIALS_FILE. Returns (nil, nil) when unset so callers can
// skip the mirror entirely.
func NewFCMPusher(db *gorm.DB) (*FCMPusher, error) {
	credentials := os.Getenv("FIREBASE_CREDENTIALS_FILE")
	if credentials == "" {
		return nil, nil
	}

	ctx := context.Background()
	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(credentials))
	if err != nil {
		return nil, fmt.Errorf("error initializing Firebase app: %w", err)
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting Messaging client: %w", err)
	}

	log.Println("Firebase initialized successfully")
	return &FCMPusher{client: client, db: db, ctx: ctx}, nil
}

func (p *FCMPusher) Push(notification Models.TaskNotification) error {
	var tokens []Models.FCMToken
	if err := p.db.Where("user_id = ?", notification.UserID).Find(&tokens).Error; err != nil {
		return err
	}
	if len(tokens) == 0 {
		return nil
	}

	for _, token := range tokens {
		message := &messaging.Message{
			Token: token.Value,
			Notification: &messaging.Notification{
				Title: "AgencyHub",
				Body:  notification.Message,
			},
			Data: map[string]string{
				"notification_type": string(notification.NotificationType),
				"task_id":           notification.TaskID,
				"task_table":        notification.TaskTable,
			},
		}

		if _, err := p.client.Send(p.ctx, message); err != nil {
			if messaging.IsUnregistered(err) {
				// Stale device token, drop it.
				p.db.Delete(&token)
				continue
			}
			log.Printf("FCM send failed for token %d: %v", token.ID, err)
		}
	}
	return nil
}
