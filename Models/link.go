package Models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// PresentationLink is a shareable id for the public client presentation page.
// Objectives and pillars are shown in the rendered page header.
type PresentationLink struct {
	ID         string         `json:"id" gorm:"primaryKey;size:36"`
	ClientID   string         `json:"client_id" gorm:"size:36;index;not null"`
	Link       string         `json:"link" gorm:"not null"`
	Objectives datatypes.JSON `json:"objetivos" gorm:"column:objetivos"`
	Pillars    datatypes.JSON `json:"pilares" gorm:"column:pilares"`
	CreatedBy  string         `json:"created_by" gorm:"size:36"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (l *PresentationLink) TableName() string {
	return "presentation_links"
}

func (l *PresentationLink) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}
