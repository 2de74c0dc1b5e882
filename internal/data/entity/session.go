package entity

import (
	"time"

	"github.com/google/uuid"
)

// Session is an opaque bearer token issued at login
type Session struct {
	BaseSimple
	UserID    uuid.UUID  `db:"user_id"`
	Token     uuid.UUID  `db:"token"`
	UserAgent *string    `db:"user_agent"`
	IPAddress *string    `db:"ip_address"`
	ExpiresAt time.Time  `db:"expires_at"`
	RevokedAt *time.Time `db:"revoked_at"`

	// joined from users when the session is validated
	UserRole   UserRole `db:"role"`
	UserActive bool     `db:"is_active"`
}
