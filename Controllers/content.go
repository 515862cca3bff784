package Controllers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"AgencyHub/Models"
)

// ContentController handles the community editorial-calendar grid
type ContentController struct {
	DB *gorm.DB
}

func NewContentController(db *gorm.DB) *ContentController {
	return &ContentController{DB: db}
}

// GetContent lists content rows, filterable by client and week
func (c *ContentController) GetContent(ctx *fiber.Ctx) error {
	query := c.DB.Order("fecha ASC")

	if clientID := ctx.Query("client_id"); clientID != "" {
		query = query.Where("client_id = ?", clientID)
	}
	if week := ctx.Query("semana"); week != "" {
		query = query.Where("semana = ?", week)
	}

	var content []Models.CommunityContent
	if err := query.Find(&content).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve content"})
	}
	return ctx.JSON(content)
}

// GetWeeks returns the client's content grouped by week, ordered by date
func (c *ContentController) GetWeeks(ctx *fiber.Ctx) error {
	clientID := ctx.Query("client_id")
	if clientID == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "client_id is required"})
	}

	var content []Models.CommunityContent
	if err := c.DB.Where("client_id = ?", clientID).Order("fecha ASC").Find(&content).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve content"})
	}

	return ctx.JSON(GroupContentByWeek(content))
}

// GroupContentByWeek buckets content rows under their week tag, preserving
// the incoming date order within each week.
func GroupContentByWeek(content []Models.CommunityContent) map[string][]Models.CommunityContent {
	grouped := make(map[string][]Models.CommunityContent)
	for _, item := range content {
		grouped[item.Week] = append(grouped[item.Week], item)
	}
	return grouped
}

// CreateContent creates a content row
func (c *ContentController) CreateContent(ctx *fiber.Ctx) error {
	var input Models.CommunityContent
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if input.Week == "" || input.Platform == "" || input.PublicationType == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "semana, plataforma and tipo_publicacion are required"})
	}

	if user, ok := ctx.Locals("user").(Models.UserProfile); ok {
		input.CreatedBy = user.ID
	}
	input.ID = ""

	if err := c.DB.Create(&input).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create content"})
	}
	return ctx.Status(fiber.StatusCreated).JSON(input)
}

// UpdateContent updates a content row (states, copies, comments)
func (c *ContentController) UpdateContent(ctx *fiber.Ctx) error {
	var content Models.CommunityContent
	if err := c.DB.Where("id = ?", ctx.Params("id")).First(&content).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Content not found"})
	}

	var input map[string]interface{}
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	delete(input, "id")
	delete(input, "created_by")
	delete(input, "created_at")

	if err := c.DB.Model(&content).Updates(input).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update content"})
	}
	return ctx.JSON(content)
}

// DeleteContent removes a content row
func (c *ContentController) DeleteContent(ctx *fiber.Ctx) error {
	var content Models.CommunityContent
	if err := c.DB.Where("id = ?", ctx.Params("id")).First(&content).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Content not found"})
	}

	c.DB.Delete(&content)
	return ctx.JSON(fiber.Map{"message": "Content deleted successfully"})
}
