package middleware

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"AgencyHub/Models"
)

// LogConfig holds configuration for the request logging middleware
type LogConfig struct {
	// Enable console logging
	Console bool
	// Persist entries to the activity_logs table
	Persist bool
	// Skip logging for specific paths
	SkipPaths []string
}

// DefaultLogConfig returns a default configuration for the logging middleware
func DefaultLogConfig() LogConfig {
	return LogConfig{
		Console:   true,
		Persist:   true,
		SkipPaths: []string{"/health"},
	}
}

// RequestLogger logs every handled request and persists an ActivityLog row.
// Persistence failures only warn; they never fail the request.
func RequestLogger(config ...LogConfig) fiber.Handler {
	cfg := DefaultLogConfig()
	if len(config) > 0 {
		cfg = config[0]
	}

	return func(c *fiber.Ctx) error {
		for _, skipPath := range cfg.SkipPaths {
			if c.Path() == skipPath {
				return c.Next()
			}
		}

		start := time.Now()
		err := c.Next()
		latency := time.Since(start)

		status := c.Response().StatusCode()
		errMsg := ""
		if err != nil {
			errMsg = err.Error()
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			}
		}

		entry := Models.ActivityLog{
			Timestamp: start,
			Method:    c.Method(),
			Path:      c.Path(),
			Status:    status,
			LatencyMs: float64(latency.Microseconds()) / 1000.0,
			IP:        c.IP(),
			UserAgent: c.Get("User-Agent"),
			Error:     errMsg,
		}
		if user, ok := c.Locals("user").(Models.UserProfile); ok {
			entry.UserID = user.ID
			entry.Username = user.FullName
		}

		if cfg.Console {
			log.Printf("%s %s %d %v", entry.Method, entry.Path, entry.Status, latency)
		}
		if cfg.Persist && Models.DB != nil {
			if dbErr := Models.DB.Create(&entry).Error; dbErr != nil {
				log.Printf("failed to persist activity log: %v", dbErr)
			}
		}

		return err
	}
}
