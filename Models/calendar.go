package Models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// CalendarEvent is a weekly-scheduler entry. Field names mirror the wire
// format the agency's frontends already speak (the scheduler predates this
// service and is Spanish-labelled).
type CalendarEvent struct {
	ID            string                      `json:"id" gorm:"primaryKey;size:36"`
	ClientID      string                      `json:"client_id" gorm:"size:36;index;not null"`
	Area          string                      `json:"area" gorm:"not null"`
	Concept       string                      `json:"concepto" gorm:"column:concepto;not null"`
	Description   string                      `json:"descripcion" gorm:"column:descripcion"`
	Day           time.Time                   `json:"dia" gorm:"column:dia;index;not null"`
	StartTime     string                      `json:"horario_inicial" gorm:"column:horario_inicial;not null"`
	EndTime       string                      `json:"horario_final" gorm:"column:horario_final;not null"`
	AssignedUsers datatypes.JSONSlice[string] `json:"personas_asignadas" gorm:"column:personas_asignadas"`
	CreatedBy     string                      `json:"created_by" gorm:"size:36"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (e *CalendarEvent) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}
