package Controllers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"AgencyHub/Models"
)

// LogController exposes the persisted request log to admins
type LogController struct {
	DB *gorm.DB
}

func NewLogController(db *gorm.DB) *LogController {
	return &LogController{DB: db}
}

// LogsResponse is a page of activity-log rows
type LogsResponse struct {
	Logs       []Models.ActivityLog `json:"logs"`
	TotalLogs  int64                `json:"total_logs"`
	Page       int                  `json:"page"`
	PageSize   int                  `json:"page_size"`
	TotalPages int                  `json:"total_pages"`
	DateFrom   time.Time            `json:"date_from"`
	DateTo     time.Time            `json:"date_to"`
}

// GetLogs retrieves logs with pagination and date/path/user filtering
func (l *LogController) GetLogs(ctx *fiber.Ctx) error {
	page, _ := strconv.Atoi(ctx.Query("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(ctx.Query("page_size", "50"))
	if pageSize < 1 || pageSize > 500 {
		pageSize = 50
	}

	dateTo := time.Now()
	dateFrom := dateTo.AddDate(0, 0, -7)
	if from := ctx.Query("from"); from != "" {
		if parsed, err := time.Parse("2006-01-02", from); err == nil {
			dateFrom = parsed
		}
	}
	if to := ctx.Query("to"); to != "" {
		if parsed, err := time.Parse("2006-01-02", to); err == nil {
			dateTo = parsed.AddDate(0, 0, 1)
		}
	}

	query := l.DB.Model(&Models.ActivityLog{}).
		Where("timestamp >= ? AND timestamp < ?", dateFrom, dateTo)
	if path := ctx.Query("path"); path != "" {
		query = query.Where("path LIKE ?", "%"+path+"%")
	}
	if userID := ctx.Query("user_id"); userID != "" {
		query = query.Where("user_id = ?", userID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to count logs"})
	}

	var logs []Models.ActivityLog
	if err := query.Order("timestamp DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&logs).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve logs"})
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	return ctx.JSON(LogsResponse{
		Logs:       logs,
		TotalLogs:  total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
		DateFrom:   dateFrom,
		DateTo:     dateTo,
	})
}
