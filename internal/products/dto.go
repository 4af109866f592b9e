package products

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/catalogo-industrial-backend/pkg/db/models"
)

// productRow is the scan target of the joined listing query.
type productRow struct {
	models.Product
	CategoryName     *string `gorm:"column:category_name"`
	SubcategoryName  *string `gorm:"column:subcategory_name"`
	ManufacturerName *string `gorm:"column:manufacturer_name"`
	BrandName        *string `gorm:"column:brand_name"`
	ModelName        *string `gorm:"column:model_name"`
}

// ProductDTO is the catalogue payload returned to the storefront and console.
type ProductDTO struct {
	ID               int64           `json:"id"`
	SKU              string          `json:"sku"`
	Name             string          `json:"name"`
	Description      *string         `json:"description"`
	CategoryID       *int64          `json:"category_id"`
	CategoryName     *string         `json:"category_name"`
	SubcategoryID    *int64          `json:"subcategory_id"`
	SubcategoryName  *string         `json:"subcategory_name"`
	ManufacturerID   *int64          `json:"manufacturer_id"`
	ManufacturerName *string         `json:"manufacturer_name"`
	BrandID          *int64          `json:"brand_id"`
	BrandName        *string         `json:"brand_name"`
	ModelID          *int64          `json:"model_id"`
	ModelName        *string         `json:"model_name"`
	Price            decimal.Decimal `json:"price"`
	Currency         string          `json:"currency"`
	StockQuantity    int             `json:"stock_quantity"`
	MainImage        *string         `json:"main_image"`
	Images           []string        `json:"images"`
	Specifications   map[string]any  `json:"specifications"`
	IsActive         bool            `json:"is_active"`
	IsFeatured       bool            `json:"is_featured"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

func newProductDTO(row productRow) ProductDTO {
	images := []string(row.Images)
	if images == nil {
		images = []string{}
	}
	specs := map[string]any(row.Specifications)
	if specs == nil {
		specs = map[string]any{}
	}
	return ProductDTO{
		ID:               row.ID,
		SKU:              row.SKU,
		Name:             row.Name,
		Description:      row.Description,
		CategoryID:       row.CategoryID,
		CategoryName:     row.CategoryName,
		SubcategoryID:    row.SubcategoryID,
		SubcategoryName:  row.SubcategoryName,
		ManufacturerID:   row.ManufacturerID,
		ManufacturerName: row.ManufacturerName,
		BrandID:          row.BrandID,
		BrandName:        row.BrandName,
		ModelID:          row.ModelID,
		ModelName:        row.ModelName,
		Price:            row.Price,
		Currency:         row.Currency,
		StockQuantity:    row.StockQuantity,
		MainImage:        row.MainImage,
		Images:           images,
		Specifications:   specs,
		IsActive:         row.IsActive,
		IsFeatured:       row.IsFeatured,
		CreatedAt:        row.CreatedAt,
		UpdatedAt:        row.UpdatedAt,
	}
}
