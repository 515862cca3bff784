package Controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"AgencyHub/Models"
	"AgencyHub/Validation"
	"AgencyHub/Workflow"
)

// TaskController handles task CRUD and the RACI transition endpoints
type TaskController struct {
	DB     *gorm.DB
	Engine *Workflow.Engine
}

func NewTaskController(db *gorm.DB, engine *Workflow.Engine) *TaskController {
	return &TaskController{DB: db, Engine: engine}
}

type TransitionRequest struct {
	Content string `json:"content" validate:"required"`
}

// GetTasks lists tasks, filterable by department, client and status
func (t *TaskController) GetTasks(ctx *fiber.Ctx) error {
	query := t.DB.Order("created_at DESC")

	if department := ctx.Query("department"); department != "" {
		if !Models.ValidDepartment(Models.Department(department)) {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid department"})
		}
		query = query.Where("department = ?", department)
	}
	if clientID := ctx.Query("client_id"); clientID != "" {
		query = query.Where("client_id = ?", clientID)
	}
	if status := ctx.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if infoType := ctx.Query("info_type"); infoType != "" {
		query = query.Where("info_type = ?", infoType)
	}

	var tasks []Models.TaskItem
	if err := query.Find(&tasks).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve tasks"})
	}
	return ctx.JSON(tasks)
}

// GetTask retrieves a single task by ID
func (t *TaskController) GetTask(ctx *fiber.Ctx) error {
	task, err := t.Engine.GetTask(ctx.Params("id"))
	if err != nil {
		return taskError(ctx, err)
	}
	return ctx.JSON(task)
}

// CreateTask creates a new task in a department
func (t *TaskController) CreateTask(ctx *fiber.Ctx) error {
	var input Models.TaskItem
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if !Models.ValidDepartment(input.Department) {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid department"})
	}
	if !Models.ValidInfoType(input.InfoType) {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid info_type"})
	}
	if input.Title == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "title is required"})
	}

	if user, ok := ctx.Locals("user").(Models.UserProfile); ok {
		input.CreatedBy = user.ID
	}
	// New work always starts at the head of the state machine.
	input.ID = ""
	input.Status = Models.StatusPending
	input.CompletionContent = ""
	input.CorrectionFeedback = ""
	input.ConsultedContent = ""

	if err := t.DB.Create(&input).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create task"})
	}
	return ctx.Status(fiber.StatusCreated).JSON(input)
}

// UpdateTask updates descriptive fields of a task. Workflow fields only move
// through the transition endpoints.
func (t *TaskController) UpdateTask(ctx *fiber.Ctx) error {
	task, err := t.Engine.GetTask(ctx.Params("id"))
	if err != nil {
		return taskError(ctx, err)
	}

	var input map[string]interface{}
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	for _, guarded := range []string{
		"id", "status", "completion_content", "correction_feedback", "consulted_content",
		"completed_by", "reviewed_by", "consulted_by", "created_by",
		"completed_at", "reviewed_at", "correction_requested_at", "consulted_at", "created_at",
	} {
		delete(input, guarded)
	}

	if err := t.DB.Model(task).Updates(input).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update task"})
	}
	return ctx.JSON(task)
}

// DeleteTask removes a task
func (t *TaskController) DeleteTask(ctx *fiber.Ctx) error {
	task, err := t.Engine.GetTask(ctx.Params("id"))
	if err != nil {
		return taskError(ctx, err)
	}
	t.DB.Delete(task)
	return ctx.JSON(fiber.Map{"message": "Task deleted successfully"})
}

// GetRoles returns the caller's role set and primary action for a task
func (t *TaskController) GetRoles(ctx *fiber.Ctx) error {
	user, _ := ctx.Locals("user").(Models.UserProfile)
	task, err := t.Engine.GetTask(ctx.Params("id"))
	if err != nil {
		return taskError(ctx, err)
	}

	roles := Workflow.RolesFor(user.ID, task)
	return ctx.JSON(fiber.Map{
		"roles":          roles.Names(),
		"primary_action": Workflow.PrimaryAction(roles, task.Status),
	})
}

// Complete moves the task to in_review with the responsible user's content
func (t *TaskController) Complete(ctx *fiber.Ctx) error {
	user, _ := ctx.Locals("user").(Models.UserProfile)

	var input TransitionRequest
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if messages := Validation.Struct(input); messages != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": messages})
	}

	task, err := t.Engine.CompleteTask(user, ctx.Params("id"), input.Content)
	if err != nil {
		return taskError(ctx, err)
	}
	return ctx.JSON(task)
}

// Approve moves an in_review task to completed
func (t *TaskController) Approve(ctx *fiber.Ctx) error {
	user, _ := ctx.Locals("user").(Models.UserProfile)

	task, err := t.Engine.ApproveTask(user, ctx.Params("id"))
	if err != nil {
		return taskError(ctx, err)
	}
	return ctx.JSON(task)
}

// RequestCorrection sends an in_review task back with feedback
func (t *TaskController) RequestCorrection(ctx *fiber.Ctx) error {
	user, _ := ctx.Locals("user").(Models.UserProfile)

	var input TransitionRequest
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if messages := Validation.Struct(input); messages != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": messages})
	}

	task, err := t.Engine.RequestCorrection(user, ctx.Params("id"), input.Content)
	if err != nil {
		return taskError(ctx, err)
	}
	return ctx.JSON(task)
}

// Consult records advisory input from a consulted user
func (t *TaskController) Consult(ctx *fiber.Ctx) error {
	user, _ := ctx.Locals("user").(Models.UserProfile)

	var input TransitionRequest
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if messages := Validation.Struct(input); messages != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": messages})
	}

	task, err := t.Engine.SubmitConsultedInput(user, ctx.Params("id"), input.Content)
	if err != nil {
		return taskError(ctx, err)
	}
	return ctx.JSON(task)
}

// taskError maps workflow errors onto HTTP status codes.
func taskError(ctx *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, Workflow.ErrTaskNotFound):
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Task not found"})
	case errors.Is(err, Workflow.ErrEmptyContent):
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, Workflow.ErrNotResponsible),
		errors.Is(err, Workflow.ErrNotAccountable),
		errors.Is(err, Workflow.ErrNotConsulted):
		return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, Workflow.ErrInvalidStatus):
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, Workflow.ErrStaleTask):
		return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	default:
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal error"})
	}
}
