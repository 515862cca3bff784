package Controllers

import (
	"encoding/json"
	"sort"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"AgencyHub/Models"
)

// PresentationController manages shareable links and renders the public
// client-facing presentation page.
type PresentationController struct {
	DB *gorm.DB
}

func NewPresentationController(db *gorm.DB) *PresentationController {
	return &PresentationController{DB: db}
}

// CreateLink issues a shareable presentation link for a client
func (p *PresentationController) CreateLink(ctx *fiber.Ctx) error {
	var input Models.PresentationLink
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if input.ClientID == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "client_id is required"})
	}

	var client Models.Client
	if err := p.DB.Where("id = ?", input.ClientID).First(&client).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Client not found"})
	}

	if user, ok := ctx.Locals("user").(Models.UserProfile); ok {
		input.CreatedBy = user.ID
	}
	input.ID = ""

	if err := p.DB.Create(&input).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create link"})
	}

	input.Link = "/presentation/" + input.ID
	p.DB.Model(&input).Update("link", input.Link)

	return ctx.Status(fiber.StatusCreated).JSON(input)
}

// GetLinks lists issued links (admin)
func (p *PresentationController) GetLinks(ctx *fiber.Ctx) error {
	var links []Models.PresentationLink
	if err := p.DB.Order("created_at DESC").Find(&links).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve links"})
	}
	return ctx.JSON(links)
}

// WeekBlock is one week's worth of content in display order.
type WeekBlock struct {
	Week  string
	Items []Models.CommunityContent
}

// Render serves the public HTML presentation for a link id. No auth: the
// link id is the capability.
func (p *PresentationController) Render(ctx *fiber.Ctx) error {
	var link Models.PresentationLink
	if err := p.DB.Where("id = ?", ctx.Params("id")).First(&link).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).SendString("Presentación no encontrada")
	}

	var client Models.Client
	p.DB.Where("id = ?", link.ClientID).First(&client)

	var content []Models.CommunityContent
	if err := p.DB.Where("client_id = ?", link.ClientID).Order("fecha ASC").Find(&content).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).SendString("No se pudo cargar la presentación")
	}

	return ctx.Render("presentation", fiber.Map{
		"Client":     client,
		"Objectives": decodeStringList(link.Objectives),
		"Pillars":    decodeStringList(link.Pillars),
		"Weeks":      BuildWeekBlocks(content),
	})
}

// BuildWeekBlocks groups content by week and orders the weeks by their
// earliest date.
func BuildWeekBlocks(content []Models.CommunityContent) []WeekBlock {
	grouped := GroupContentByWeek(content)

	blocks := make([]WeekBlock, 0, len(grouped))
	for week, items := range grouped {
		blocks = append(blocks, WeekBlock{Week: week, Items: items})
	}
	sort.Slice(blocks, func(i, j int) bool {
		return blocks[i].Items[0].Date.Before(blocks[j].Items[0].Date)
	})
	return blocks
}

func decodeStringList(raw []byte) []string {
	if len(raw) == 0 {
		return nil
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil
	}
	return list
}
