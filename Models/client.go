package Models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Client is an agency project: one row per client engagement.
type Client struct {
	ID          string                      `json:"id" gorm:"primaryKey;size:36"`
	Name        string                      `json:"name" gorm:"not null"`
	ClientName  string                      `json:"client_name" gorm:"not null"`
	Description string                      `json:"description"`
	Phase       string                      `json:"phase"`
	Progress    int                         `json:"progress"`
	Status      string                      `json:"status" gorm:"default:active"`
	Type        string                      `json:"type"`
	Team        datatypes.JSONSlice[string] `json:"team"`
	Budget      float64                     `json:"budget"`
	StartDate   *time.Time                  `json:"start_date"`
	Deadline    *time.Time                  `json:"deadline"`
	CreatedBy   string                      `json:"created_by" gorm:"size:36"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Client) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.Status == "" {
		c.Status = "active"
	}
	return nil
}
