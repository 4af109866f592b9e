package models

import (
	"time"

	"github.com/angelmondragon/catalogo-industrial-backend/pkg/enums"
)

// AdminUser is a back-office identity. Admins are deactivated, never deleted.
type AdminUser struct {
	ID              int64           `gorm:"column:id;primaryKey;autoIncrement"`
	Email           string          `gorm:"column:email;not null;uniqueIndex"`
	Name            string          `gorm:"column:name;not null"`
	Role            enums.AdminRole `gorm:"column:role;not null"`
	IsActive        bool            `gorm:"column:is_active;not null"`
	IsEmailVerified bool            `gorm:"column:is_email_verified;not null"`
	LastLogin       *time.Time      `gorm:"column:last_login"`
	CreatedAt       time.Time       `gorm:"column:created_at"`
	UpdatedAt       time.Time       `gorm:"column:updated_at"`
}

func (AdminUser) TableName() string { return "admin_users" }

// AdminSession holds the single outstanding one-time login code of an admin.
type AdminSession struct {
	UserID    int64     `gorm:"column:user_id;primaryKey;autoIncrement:false"`
	CodeHash  string    `gorm:"column:code_hash;not null"`
	ExpiresAt time.Time `gorm:"column:expires_at;not null"`
	IsActive  bool      `gorm:"column:is_active;not null"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (AdminSession) TableName() string { return "admin_sessions" }
