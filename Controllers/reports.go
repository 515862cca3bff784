package Controllers

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"AgencyHub/Models"
)

// ReportController exports per-client task reports as Excel workbooks
type ReportController struct {
	DB *gorm.DB
}

func NewReportController(db *gorm.DB) *ReportController {
	return &ReportController{DB: db}
}

var reportHeaders = []string{
	"Título", "Departamento", "Tipo", "Estado", "Prioridad",
	"Responsable", "Aprobador", "Vence", "Completada", "Revisada",
}

// ClientReport streams an .xlsx with one sheet per department holding the
// client's tasks.
func (r *ReportController) ClientReport(ctx *fiber.Ctx) error {
	var client Models.Client
	if err := r.DB.Where("id = ?", ctx.Params("id")).First(&client).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Client not found"})
	}

	var tasks []Models.TaskItem
	if err := r.DB.Where("client_id = ?", client.ID).Order("created_at ASC").Find(&tasks).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve tasks"})
	}

	// Resolve user names once for the actor columns.
	var users []Models.UserProfile
	r.DB.Find(&users)
	names := make(map[string]string, len(users))
	for _, user := range users {
		names[user.ID] = user.FullName
	}

	f := excelize.NewFile()
	defer f.Close()

	for i, department := range Models.Departments {
		sheet := string(department)
		if i == 0 {
			f.SetSheetName("Sheet1", sheet)
		} else {
			if _, err := f.NewSheet(sheet); err != nil {
				return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to build report"})
			}
		}

		for col, header := range reportHeaders {
			cell, _ := excelize.CoordinatesToCellName(col+1, 1)
			f.SetCellValue(sheet, cell, header)
		}

		row := 2
		for _, task := range tasks {
			if task.Department != department {
				continue
			}
			values := []interface{}{
				task.Title,
				string(task.Department),
				string(task.InfoType),
				string(task.Status),
				string(task.Priority),
				names[task.ResponsibleUser],
				names[task.AccountableUser],
				formatDate(task.DueDate),
				formatDate(task.CompletedAt),
				formatDate(task.ReviewedAt),
			}
			for col, value := range values {
				cell, _ := excelize.CoordinatesToCellName(col+1, row)
				f.SetCellValue(sheet, cell, value)
			}
			row++
		}
	}

	buffer, err := f.WriteToBuffer()
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to write report"})
	}

	filename := fmt.Sprintf("report-%s-%s.xlsx", client.Name, time.Now().Format("2006-01-02"))
	ctx.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Set("Content-Disposition", fmt.Sprintf(`attachment; filename=%q`, filename))
	return ctx.Send(buffer.Bytes())
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}
