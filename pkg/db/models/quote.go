package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/catalogo-industrial-backend/pkg/enums"
)

// Quote is the header of a customer pricing request.
type Quote struct {
	ID              int64             `gorm:"column:id;primaryKey;autoIncrement"`
	QuoteNumber     string            `gorm:"column:quote_number;not null;uniqueIndex"`
	CustomerName    string            `gorm:"column:customer_name;not null"`
	CustomerEmail   string            `gorm:"column:customer_email;not null"`
	CustomerPhone   *string           `gorm:"column:customer_phone"`
	CustomerCompany *string           `gorm:"column:customer_company"`
	Message         *string           `gorm:"column:message"`
	Status          enums.QuoteStatus `gorm:"column:status;not null"`
	TotalItems      int               `gorm:"column:total_items;not null"`
	AdminNotes      *string           `gorm:"column:admin_notes"`
	CreatedAt       time.Time         `gorm:"column:created_at"`
	UpdatedAt       time.Time         `gorm:"column:updated_at"`
}

func (Quote) TableName() string { return "quotes" }

// QuoteItem is a line of a Quote. Name, SKU and UnitPrice are snapshots taken at
// intake; ProductID deliberately carries no foreign key so history survives catalogue edits.
type QuoteItem struct {
	ID          int64               `gorm:"column:id;primaryKey;autoIncrement"`
	QuoteID     int64               `gorm:"column:quote_id;not null"`
	ProductID   int64               `gorm:"column:product_id;not null"`
	ProductName *string             `gorm:"column:product_name"`
	ProductSKU  *string             `gorm:"column:product_sku"`
	Quantity    int                 `gorm:"column:quantity;not null"`
	UnitPrice   decimal.NullDecimal `gorm:"column:unit_price;type:decimal(12,2)"`
	Notes       *string             `gorm:"column:notes"`
	CreatedAt   time.Time           `gorm:"column:created_at"`
}

func (QuoteItem) TableName() string { return "quote_items" }
