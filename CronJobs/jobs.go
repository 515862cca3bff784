package CronJobs

import (
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"AgencyHub/Models"
	"AgencyHub/Slack"
	"AgencyHub/Workflow"
)

// ReminderScheduler runs the daily job: due-date reminder notifications for
// responsible users plus the Slack workload digest.
type ReminderScheduler struct {
	cronScheduler  *cron.Cron
	db             *gorm.DB
	dispatch       Workflow.Dispatcher
	digest         *Slack.Digest
	runImmediately bool
	jobID          cron.EntryID
}

// NewReminderScheduler creates the scheduler. digest may be nil when Slack
// is not configured.
func NewReminderScheduler(db *gorm.DB, dispatch Workflow.Dispatcher, digest *Slack.Digest, runImmediately bool) *ReminderScheduler {
	return &ReminderScheduler{
		cronScheduler:  cron.New(cron.WithSeconds()),
		db:             db,
		dispatch:       dispatch,
		digest:         digest,
		runImmediately: runImmediately,
	}
}

// Start schedules the daily run at 8:00 AM.
func (s *ReminderScheduler) Start() error {
	var err error
	s.jobID, err = s.cronScheduler.AddFunc("0 0 8 * * *", func() {
		log.Println("Running scheduled daily task reminders")
		s.runDaily()
	})
	if err != nil {
		return fmt.Errorf("error scheduling cron job: %w", err)
	}

	s.cronScheduler.Start()
	log.Println("Reminder scheduler started - will run daily at 8:00 AM")

	if s.runImmediately {
		log.Println("Running initial reminder pass")
		s.runDaily()
	}
	return nil
}

// Stop terminates the scheduler.
func (s *ReminderScheduler) Stop() {
	if s.cronScheduler != nil {
		s.cronScheduler.Stop()
	}
}

func (s *ReminderScheduler) runDaily() {
	reminders, err := DueReminders(s.db, time.Now())
	if err != nil {
		log.Printf("due-date reminder query failed: %v", err)
	} else if len(reminders) > 0 {
		s.dispatch.Dispatch(reminders)
		log.Printf("Dispatched %d due-date reminders", len(reminders))
	}

	if s.digest != nil {
		if err := s.digest.Post(); err != nil {
			log.Printf("slack digest failed: %v", err)
		}
	}
}

// DueReminders builds one reminder per open task that is due today or
// overdue, addressed to its responsible user.
func DueReminders(db *gorm.DB, now time.Time) ([]Models.TaskNotification, error) {
	endOfDay := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 0, now.Location())
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var tasks []Models.TaskItem
	err := db.Where("due_date IS NOT NULL AND due_date <= ? AND status NOT IN ?",
		endOfDay, []Models.TaskStatus{Models.StatusCompleted, Models.StatusInReview}).
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}

	var reminders []Models.TaskNotification
	for _, task := range tasks {
		if task.ResponsibleUser == "" {
			continue
		}
		message := fmt.Sprintf("La tarea %q vence hoy", task.Title)
		if task.DueDate.Before(startOfDay) {
			message = fmt.Sprintf("La tarea %q está vencida desde %s", task.Title, task.DueDate.Format("2006-01-02"))
		}
		reminders = append(reminders, Models.TaskNotification{
			UserID:           task.ResponsibleUser,
			TaskID:           task.ID,
			TaskTable:        string(task.Department),
			NotificationType: Models.NotificationTaskUpdated,
			Message:          message,
		})
	}
	return reminders, nil
}
