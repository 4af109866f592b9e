package models

import (
	"time"

	"github.com/angelmondragon/catalogo-industrial-backend/pkg/enums"
)

// FAQ is a help-center entry.
type FAQ struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Question  string    `gorm:"column:question;not null"`
	Answer    string    `gorm:"column:answer;not null"`
	Category  *string   `gorm:"column:category"`
	SortOrder int       `gorm:"column:sort_order;not null"`
	IsActive  bool      `gorm:"column:is_active;not null"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (FAQ) TableName() string { return "faqs" }

// ContactSubmission is a support ticket opened from the public contact form.
type ContactSubmission struct {
	ID            int64                `gorm:"column:id;primaryKey;autoIncrement"`
	TicketNumber  string               `gorm:"column:ticket_number;not null;uniqueIndex"`
	Name          string               `gorm:"column:name;not null"`
	Email         string               `gorm:"column:email;not null"`
	Phone         *string              `gorm:"column:phone"`
	Company       *string              `gorm:"column:company"`
	Subject       *string              `gorm:"column:subject"`
	Message       string               `gorm:"column:message;not null"`
	Status        enums.TicketStatus   `gorm:"column:status;not null"`
	Priority      enums.TicketPriority `gorm:"column:priority;not null"`
	AdminNotes    *string              `gorm:"column:admin_notes"`
	AdminResponse *string              `gorm:"column:admin_response"`
	RespondedAt   *time.Time           `gorm:"column:responded_at"`
	CreatedAt     time.Time            `gorm:"column:created_at"`
	UpdatedAt     time.Time            `gorm:"column:updated_at"`
}

func (ContactSubmission) TableName() string { return "contact_submissions" }
