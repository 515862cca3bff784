package Controllers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"AgencyHub/Models"
)

// ClientController handles client (project) API endpoints
type ClientController struct {
	DB *gorm.DB
}

func NewClientController(db *gorm.DB) *ClientController {
	return &ClientController{DB: db}
}

// GetClients retrieves all clients, newest first
func (c *ClientController) GetClients(ctx *fiber.Ctx) error {
	var clients []Models.Client
	result := c.DB.Order("created_at DESC").Find(&clients)
	if result.Error != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve clients"})
	}
	return ctx.JSON(clients)
}

// GetClient retrieves a single client by ID
func (c *ClientController) GetClient(ctx *fiber.Ctx) error {
	var client Models.Client
	result := c.DB.Where("id = ?", ctx.Params("id")).First(&client)
	if result.Error != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Client not found"})
	}
	return ctx.JSON(client)
}

// CreateClient creates a new client
func (c *ClientController) CreateClient(ctx *fiber.Ctx) error {
	var input Models.Client
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if strings.TrimSpace(input.Name) == "" || strings.TrimSpace(input.ClientName) == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "name and client_name are required"})
	}

	if user, ok := ctx.Locals("user").(Models.UserProfile); ok {
		input.CreatedBy = user.ID
	}
	input.ID = ""

	if err := c.DB.Create(&input).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create client"})
	}
	return ctx.Status(fiber.StatusCreated).JSON(input)
}

// UpdateClient updates an existing client
func (c *ClientController) UpdateClient(ctx *fiber.Ctx) error {
	var client Models.Client
	result := c.DB.Where("id = ?", ctx.Params("id")).First(&client)
	if result.Error != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Client not found"})
	}

	var input map[string]interface{}
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	delete(input, "id")
	delete(input, "created_by")
	delete(input, "created_at")

	if err := c.DB.Model(&client).Updates(input).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update client"})
	}
	return ctx.JSON(client)
}

// DeleteClient deletes a client
func (c *ClientController) DeleteClient(ctx *fiber.Ctx) error {
	var client Models.Client
	result := c.DB.Where("id = ?", ctx.Params("id")).First(&client)
	if result.Error != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Client not found"})
	}

	c.DB.Delete(&client)
	return ctx.JSON(fiber.Map{"message": "Client deleted successfully"})
}
