package Controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"AgencyHub/Models"
)

// CalendarController handles weekly scheduler endpoints
type CalendarController struct {
	DB *gorm.DB
}

func NewCalendarController(db *gorm.DB) *CalendarController {
	return &CalendarController{DB: db}
}

// GetEvents lists calendar events, filterable by client and date range
func (c *CalendarController) GetEvents(ctx *fiber.Ctx) error {
	query := c.DB.Order("dia ASC, horario_inicial ASC")

	if clientID := ctx.Query("client_id"); clientID != "" {
		query = query.Where("client_id = ?", clientID)
	}
	if area := ctx.Query("area"); area != "" {
		query = query.Where("area = ?", area)
	}

	var events []Models.CalendarEvent
	if err := query.Find(&events).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve events"})
	}
	return ctx.JSON(events)
}

// GetWeek returns the events of the 7 days starting at ?start=YYYY-MM-DD,
// grouped by day.
func (c *CalendarController) GetWeek(ctx *fiber.Ctx) error {
	start, err := time.Parse("2006-01-02", ctx.Query("start"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "start must be YYYY-MM-DD"})
	}
	end := start.AddDate(0, 0, 7)

	query := c.DB.Where("dia >= ? AND dia < ?", start, end).Order("dia ASC, horario_inicial ASC")
	if clientID := ctx.Query("client_id"); clientID != "" {
		query = query.Where("client_id = ?", clientID)
	}

	var events []Models.CalendarEvent
	if err := query.Find(&events).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve events"})
	}

	return ctx.JSON(GroupEventsByDay(events))
}

// GroupEventsByDay buckets events under their YYYY-MM-DD day key.
func GroupEventsByDay(events []Models.CalendarEvent) map[string][]Models.CalendarEvent {
	grouped := make(map[string][]Models.CalendarEvent)
	for _, event := range events {
		day := event.Day.Format("2006-01-02")
		grouped[day] = append(grouped[day], event)
	}
	return grouped
}

// CreateEvent creates a calendar event
func (c *CalendarController) CreateEvent(ctx *fiber.Ctx) error {
	var input Models.CalendarEvent
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if input.ClientID == "" || input.Concept == "" || input.StartTime == "" || input.EndTime == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "client_id, concepto and horarios are required"})
	}

	if user, ok := ctx.Locals("user").(Models.UserProfile); ok {
		input.CreatedBy = user.ID
	}
	input.ID = ""

	if err := c.DB.Create(&input).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create event"})
	}
	return ctx.Status(fiber.StatusCreated).JSON(input)
}

// UpdateEvent updates a calendar event
func (c *CalendarController) UpdateEvent(ctx *fiber.Ctx) error {
	var event Models.CalendarEvent
	if err := c.DB.Where("id = ?", ctx.Params("id")).First(&event).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Event not found"})
	}

	var input map[string]interface{}
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	delete(input, "id")
	delete(input, "created_by")
	delete(input, "created_at")

	if err := c.DB.Model(&event).Updates(input).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update event"})
	}
	return ctx.JSON(event)
}

// DeleteEvent removes a calendar event
func (c *CalendarController) DeleteEvent(ctx *fiber.Ctx) error {
	var event Models.CalendarEvent
	if err := c.DB.Where("id = ?", ctx.Params("id")).First(&event).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Event not found"})
	}

	c.DB.Delete(&event)
	return ctx.JSON(fiber.Map{"message": "Event deleted successfully"})
}
