package Controllers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"AgencyHub/Models"
	"AgencyHub/Notifications"
)

// NotificationController serves the polling API for task notifications
type NotificationController struct {
	DB      *gorm.DB
	Service *Notifications.Service
}

func NewNotificationController(db *gorm.DB, service *Notifications.Service) *NotificationController {
	return &NotificationController{DB: db, Service: service}
}

// GetNotifications lists the caller's notifications, newest first.
// ?unread=true restricts to unread ones.
func (n *NotificationController) GetNotifications(ctx *fiber.Ctx) error {
	user, _ := ctx.Locals("user").(Models.UserProfile)

	notifications, err := n.Service.ListForUser(user.ID, ctx.Query("unread") == "true")
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve notifications"})
	}
	return ctx.JSON(notifications)
}

// UnreadCount returns the caller's badge count
func (n *NotificationController) UnreadCount(ctx *fiber.Ctx) error {
	user, _ := ctx.Locals("user").(Models.UserProfile)

	count, err := n.Service.UnreadCount(user.ID)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to count notifications"})
	}
	return ctx.JSON(fiber.Map{"unread": count})
}

// MarkRead flips one notification to read
func (n *NotificationController) MarkRead(ctx *fiber.Ctx) error {
	user, _ := ctx.Locals("user").(Models.UserProfile)

	if err := n.Service.MarkRead(user.ID, ctx.Params("id")); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update notification"})
	}
	return ctx.JSON(fiber.Map{"message": "Notification marked as read"})
}

// MarkAllRead flips every unread notification of the caller
func (n *NotificationController) MarkAllRead(ctx *fiber.Ctx) error {
	user, _ := ctx.Locals("user").(Models.UserProfile)

	if err := n.Service.MarkAllRead(user.ID); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update notifications"})
	}
	return ctx.JSON(fiber.Map{"message": "All notifications marked as read"})
}

type UpdateTokenRequest struct {
	Value string `json:"value" validate:"required"`
}

// UpdateToken registers or refreshes an FCM device token for the caller
func (n *NotificationController) UpdateToken(ctx *fiber.Ctx) error {
	user, _ := ctx.Locals("user").(Models.UserProfile)

	var req UpdateTokenRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.Value == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Token value is required"})
	}

	var token Models.FCMToken
	err := n.DB.Where("value = ?", req.Value).FirstOrCreate(&token, Models.FCMToken{
		UserID: user.ID,
		Value:  req.Value,
	}).Error
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create/update token"})
	}

	// Re-bind a token that moved to another account.
	if token.UserID != user.ID {
		token.UserID = user.ID
		if err := n.DB.Save(&token).Error; err != nil {
			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update token"})
		}
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Token updated successfully",
		"token":   token,
	})
}
