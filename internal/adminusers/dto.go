package adminusers

import (
	"time"

	"github.com/angelmondragon/catalogo-industrial-backend/pkg/db/models"
	"github.com/angelmondragon/catalogo-industrial-backend/pkg/enums"
)

// AdminDTO is the public profile of a back-office user.
type AdminDTO struct {
	ID              int64           `json:"id" gorm:"column:id"`
	Email           string          `json:"email" gorm:"column:email"`
	Name            string          `json:"name" gorm:"column:name"`
	Role            enums.AdminRole `json:"role" gorm:"column:role"`
	IsActive        bool            `json:"is_active" gorm:"column:is_active"`
	IsEmailVerified bool            `json:"is_email_verified" gorm:"column:is_email_verified"`
	LastLogin       *time.Time      `json:"last_login" gorm:"column:last_login"`
	CreatedAt       time.Time       `json:"created_at" gorm:"column:created_at"`
	UpdatedAt       time.Time       `json:"updated_at" gorm:"column:updated_at"`
}

// FromModel maps the persisted admin into its public representation.
func FromModel(m *models.AdminUser) AdminDTO {
	return AdminDTO{
		ID:              m.ID,
		Email:           m.Email,
		Name:            m.Name,
		Role:            m.Role,
		IsActive:        m.IsActive,
		IsEmailVerified: m.IsEmailVerified,
		LastLogin:       m.LastLogin,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}
