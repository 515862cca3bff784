package Controllers

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"AgencyHub/Models"
)

const avatarDir = "uploads/avatars"

// AvatarController handles profile picture uploads
type AvatarController struct {
	DB *gorm.DB
}

func NewAvatarController(db *gorm.DB) *AvatarController {
	return &AvatarController{DB: db}
}

// Upload accepts a multipart "avatar" image, resizes it to a 256px bounded
// thumbnail and stores the path on the caller's profile.
func (a *AvatarController) Upload(ctx *fiber.Ctx) error {
	user, ok := ctx.Locals("user").(Models.UserProfile)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Not logged in"})
	}

	fileHeader, err := ctx.FormFile("avatar")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "avatar file is required"})
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".gif":
	default:
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Unsupported image format"})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Could not read upload"})
	}
	defer file.Close()

	img, err := imaging.Decode(file, imaging.AutoOrientation(true))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "File is not a valid image"})
	}

	thumbnail := imaging.Fit(img, 256, 256, imaging.Lanczos)

	if err := os.MkdirAll(avatarDir, 0755); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to store avatar"})
	}

	path := filepath.Join(avatarDir, fmt.Sprintf("%s.jpg", user.ID))
	if err := imaging.Save(thumbnail, path, imaging.JPEGQuality(85)); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to store avatar"})
	}

	avatarURL := "/" + filepath.ToSlash(path)
	if err := a.DB.Model(&Models.UserProfile{}).Where("id = ?", user.ID).
		Update("avatar_url", avatarURL).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update profile"})
	}

	return ctx.JSON(fiber.Map{"avatar_url": avatarURL})
}
