package models

import (
	"time"

	"github.com/shopspring/decimal"

	dbtypes "github.com/angelmondragon/catalogo-industrial-backend/pkg/db/types"
)

// Product is a catalogue listing. Rows are never removed; deletion flips IsActive.
type Product struct {
	ID             int64              `gorm:"column:id;primaryKey;autoIncrement"`
	SKU            string             `gorm:"column:sku;not null;uniqueIndex"`
	Name           string             `gorm:"column:name;not null"`
	Description    *string            `gorm:"column:description"`
	CategoryID     *int64             `gorm:"column:category_id"`
	SubcategoryID  *int64             `gorm:"column:subcategory_id"`
	ManufacturerID *int64             `gorm:"column:manufacturer_id"`
	BrandID        *int64             `gorm:"column:brand_id"`
	ModelID        *int64             `gorm:"column:model_id"`
	Price          decimal.Decimal    `gorm:"column:price;type:decimal(12,2);not null"`
	Currency       string             `gorm:"column:currency;not null"`
	StockQuantity  int                `gorm:"column:stock_quantity;not null"`
	MainImage      *string            `gorm:"column:main_image"`
	Images         dbtypes.StringList `gorm:"column:images"`
	Specifications dbtypes.JSONObject `gorm:"column:specifications"`
	IsActive       bool               `gorm:"column:is_active;not null"`
	IsFeatured     bool               `gorm:"column:is_featured;not null"`
	CreatedAt      time.Time          `gorm:"column:created_at"`
	UpdatedAt      time.Time          `gorm:"column:updated_at"`
}

func (Product) TableName() string { return "products" }
