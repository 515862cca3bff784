package Models

import (
	"time"

	"gorm.io/gorm"
)

// ActivityLog is one handled request, persisted by the logging middleware.
type ActivityLog struct {
	gorm.Model
	Timestamp time.Time `json:"timestamp" gorm:"index"`
	Method    string    `json:"method"`
	Path      string    `json:"path" gorm:"index"`
	Status    int       `json:"status"`
	LatencyMs float64   `json:"latency_ms"`
	IP        string    `json:"ip"`
	UserAgent string    `json:"user_agent"`
	UserID    string    `json:"user_id" gorm:"size:36;index"`
	Username  string    `json:"username"`
	Error     string    `json:"error,omitempty"`
}
