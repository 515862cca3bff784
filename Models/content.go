package Models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CommunityContent is one editorial-calendar row: a planned publication for a
// client, tracked through design/copy states. Wire names follow the existing
// Spanish-labelled grid.
type CommunityContent struct {
	ID              string    `json:"id" gorm:"primaryKey;size:36"`
	ClientID        string    `json:"client_id" gorm:"size:36;index"`
	Week            string    `json:"semana" gorm:"column:semana;index;not null"`
	Date            time.Time `json:"fecha" gorm:"column:fecha;not null"`
	Platform        string    `json:"plataforma" gorm:"column:plataforma;not null"`
	PublicationType string    `json:"tipo_publicacion" gorm:"column:tipo_publicacion;not null"`
	Pillar          string    `json:"pilar" gorm:"column:pilar"`
	PublicationCopy string    `json:"copy_publicacion" gorm:"column:copy_publicacion"`
	GraphicCopy     string    `json:"copy_grafica_video" gorm:"column:copy_grafica_video"`
	DesignState     string    `json:"estado_diseno" gorm:"column:estado_diseno;default:pendiente"`
	CopyState       string    `json:"estado_copies" gorm:"column:estado_copies;default:pendiente"`
	DesignComments  string    `json:"comentarios_diseno" gorm:"column:comentarios_diseno"`
	CopyComments    string    `json:"comentarios_copies" gorm:"column:comentarios_copies"`
	Designer        string    `json:"disenadora" gorm:"column:disenadora"`
	Link            string    `json:"link"`
	Reference       string    `json:"referencia" gorm:"column:referencia"`
	CreatedBy       string    `json:"created_by" gorm:"size:36"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *CommunityContent) TableName() string {
	return "community_content"
}

func (c *CommunityContent) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
