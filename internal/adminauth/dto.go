package adminauth

import (
	"time"

	"github.com/angelmondragon/catalogo-industrial-backend/internal/adminusers"
)

// CheckResult tells the login form whether to offer the code step.
type CheckResult struct {
	Exists bool                 `json:"exists"`
	Admin  *adminusers.AdminDTO `json:"admin,omitempty"`
}

type SendCodeResult struct {
	UserID    int64     `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
	Delivered bool      `json:"delivered"`
}

type VerifyResult struct {
	Token     string              `json:"token"`
	ExpiresAt time.Time           `json:"expires_at"`
	Admin     adminusers.AdminDTO `json:"admin"`
}
