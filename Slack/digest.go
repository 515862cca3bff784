package Slack

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/slack-go/slack"
	"gorm.io/gorm"

	"AgencyHub/Models"
)

// Digest posts the daily workload summary to the agency's task channel:
// tasks waiting for approval, overdue tasks, and per-department counts.
type Digest struct {
	db      *gorm.DB
	api     *slack.Client
	channel string
}

// NewDigest returns nil when SLACK_BOT_TOKEN or SLACK_TASK_CHANNEL is unset.
func NewDigest(db *gorm.DB) *Digest {
	token := os.Getenv("SLACK_BOT_TOKEN")
	channel := os.Getenv("SLACK_TASK_CHANNEL")
	if token == "" || channel == "" {
		return nil
	}
	return &Digest{
		db:      db,
		api:     slack.New(token),
		channel: channel,
	}
}

// Post builds and sends today's digest.
func (d *Digest) Post() error {
	today := time.Now()

	var inReview []Models.TaskItem
	if err := d.db.Where("status = ?", Models.StatusInReview).
		Order("completed_at ASC").Find(&inReview).Error; err != nil {
		return err
	}

	var overdue []Models.TaskItem
	if err := d.db.Where("due_date < ? AND status NOT IN ?",
		today, []Models.TaskStatus{Models.StatusCompleted}).
		Order("due_date ASC").Find(&overdue).Error; err != nil {
		return err
	}

	message := BuildDigestMessage(today, inReview, overdue)
	_, _, err := d.api.PostMessage(d.channel, slack.MsgOptionText(message, false))
	return err
}

// BuildDigestMessage renders the digest text. Kept free of the Slack client
// so it can be exercised directly.
func BuildDigestMessage(today time.Time, inReview, overdue []Models.TaskItem) string {
	var message strings.Builder

	message.WriteString(fmt.Sprintf("*Resumen diario — %s*\n\n", today.Format("2006-01-02")))

	message.WriteString(fmt.Sprintf("*Pendientes de revisión (%d)*\n", len(inReview)))
	if len(inReview) == 0 {
		message.WriteString("_Sin tareas en revisión_\n")
	}
	for _, task := range inReview {
		message.WriteString(fmt.Sprintf("• [%s] %s\n", task.Department, task.Title))
	}

	message.WriteString(fmt.Sprintf("\n*Tareas vencidas (%d)*\n", len(overdue)))
	if len(overdue) == 0 {
		message.WriteString("_Sin tareas vencidas_\n")
	}
	for _, task := range overdue {
		due := ""
		if task.DueDate != nil {
			due = task.DueDate.Format("2006-01-02")
		}
		message.WriteString(fmt.Sprintf("• [%s] %s (vencía %s)\n", task.Department, task.Title, due))
	}

	counts := make(map[Models.Department]int)
	for _, task := range append(append([]Models.TaskItem{}, inReview...), overdue...) {
		counts[task.Department]++
	}
	message.WriteString("\n*Por departamento:* ")
	var parts []string
	for _, department := range Models.Departments {
		if counts[department] > 0 {
			parts = append(parts, fmt.Sprintf("%s %d", department, counts[department]))
		}
	}
	if len(parts) == 0 {
		parts = append(parts, "sin pendientes")
	}
	message.WriteString(strings.Join(parts, " · "))

	return message.String()
}
