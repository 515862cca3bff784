package Models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRole string

const (
	RoleAdmin UserRole = "admin"
	RoleUser  UserRole = "user"
)

// UserProfile is referenced by every RACI field and notification recipient.
type UserProfile struct {
	ID        string   `json:"id" gorm:"primaryKey;size:36"`
	Email     string   `json:"email" gorm:"uniqueIndex;not null"`
	FullName  string   `json:"full_name"`
	AvatarURL string   `json:"avatar_url"`
	Role      UserRole `json:"role" gorm:"size:8;default:user"`
	Password  []byte   `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *UserProfile) TableName() string {
	return "user_profiles"
}

func (u *UserProfile) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.Role == "" {
		u.Role = RoleUser
	}
	return nil
}
