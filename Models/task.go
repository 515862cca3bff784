package Models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Department string

const (
	DepartmentMarketing Department = "marketing"
	DepartmentBranding  Department = "branding"
	DepartmentCommunity Department = "community"
)

// Departments lists the valid department tags in display order.
var Departments = []Department{DepartmentMarketing, DepartmentBranding, DepartmentCommunity}

type TaskStatus string

const (
	StatusPending          TaskStatus = "pending"
	StatusInProgress       TaskStatus = "in_progress"
	StatusInReview         TaskStatus = "in_review"
	StatusCompleted        TaskStatus = "completed"
	StatusCorrectionNeeded TaskStatus = "correction_needed"
)

type InfoType string

const (
	InfoTypeTask          InfoType = "task"
	InfoTypeCampaign      InfoType = "campaign"
	InfoTypeCalendarEvent InfoType = "calendar_event"
	InfoTypeContentWeek   InfoType = "content_week"
	InfoTypeBrandElement  InfoType = "brand_element"
)

type PriorityLevel string

const (
	PriorityLow    PriorityLevel = "low"
	PriorityMedium PriorityLevel = "medium"
	PriorityHigh   PriorityLevel = "high"
)

// TaskItem is a unit of work for any department. The marketing, branding and
// community task tables share one shape, so they live in a single table with
// a department discriminator instead of three parallel tables.
type TaskItem struct {
	ID         string     `json:"id" gorm:"primaryKey;size:36"`
	Department Department `json:"department" gorm:"size:16;index;not null"`
	ClientID   string     `json:"client_id" gorm:"size:36;index"`
	InfoType   InfoType   `json:"info_type" gorm:"size:16;not null"`

	Title       string        `json:"title" gorm:"not null"`
	Description string        `json:"description"`
	Priority    PriorityLevel `json:"priority" gorm:"size:8;default:medium"`
	DueDate     *time.Time    `json:"due_date"`

	// RACI assignment. Responsible and accountable are single user ids,
	// consulted and informed are id lists.
	ResponsibleUser string                        `json:"responsible_user" gorm:"size:36;index"`
	AccountableUser string                        `json:"accountable_user" gorm:"size:36;index"`
	ConsultedUsers  datatypes.JSONSlice[string]   `json:"consulted_users"`
	InformedUsers   datatypes.JSONSlice[string]   `json:"informed_users"`

	Status TaskStatus `json:"status" gorm:"size:20;default:pending;index"`

	CompletionContent  string `json:"completion_content"`
	CorrectionFeedback string `json:"correction_feedback"`
	ConsultedContent   string `json:"consulted_content"`

	CompletedBy string `json:"completed_by" gorm:"size:36"`
	ReviewedBy  string `json:"reviewed_by" gorm:"size:36"`
	ConsultedBy string `json:"consulted_by" gorm:"size:36"`
	CreatedBy   string `json:"created_by" gorm:"size:36"`

	CompletedAt           *time.Time `json:"completed_at"`
	ReviewedAt            *time.Time `json:"reviewed_at"`
	CorrectionRequestedAt *time.Time `json:"correction_requested_at"`
	ConsultedAt           *time.Time `json:"consulted_at"`

	// Marketing extras (campaign rows).
	CampaignType   string     `json:"campaign_type,omitempty"`
	Budget         float64    `json:"budget,omitempty"`
	StartDate      *time.Time `json:"start_date,omitempty"`
	EndDate        *time.Time `json:"end_date,omitempty"`
	TargetAudience string     `json:"target_audience,omitempty"`
	Progress       int        `json:"progress,omitempty"`
	Conversions    int        `json:"conversions,omitempty"`
	CTRPercentage  float64    `json:"ctr_percentage,omitempty"`
	ROIPercentage  float64    `json:"roi_percentage,omitempty"`

	// Branding extras.
	BrandElementType string         `json:"brand_element_type,omitempty"`
	Colors           datatypes.JSON `json:"colors,omitempty"`
	Fonts            datatypes.JSON `json:"fonts,omitempty"`

	// Community extras.
	Platform    string `json:"platform,omitempty"`
	Pillar      string `json:"pillar,omitempty"`
	ContentType string `json:"content_type,omitempty"`

	Metadata datatypes.JSON `json:"metadata,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (t *TaskItem) TableName() string {
	return "tasks"
}

func (t *TaskItem) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.Status == "" {
		t.Status = StatusPending
	}
	if t.Priority == "" {
		t.Priority = PriorityMedium
	}
	return nil
}

func ValidDepartment(d Department) bool {
	switch d {
	case DepartmentMarketing, DepartmentBranding, DepartmentCommunity:
		return true
	}
	return false
}

func ValidInfoType(t InfoType) bool {
	switch t {
	case InfoTypeTask, InfoTypeCampaign, InfoTypeCalendarEvent, InfoTypeContentWeek, InfoTypeBrandElement:
		return true
	}
	return false
}
