package quotes

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/catalogo-industrial-backend/pkg/db/models"
	"github.com/angelmondragon/catalogo-industrial-backend/pkg/enums"
)

// CreateResult is returned to the storefront once a quote is stored.
type CreateResult struct {
	ID          int64  `json:"id"`
	QuoteNumber string `json:"quote_number"`
}

// QuoteDTO is a quote header; Items is only filled on single-quote reads.
type QuoteDTO struct {
	ID              int64             `json:"id" gorm:"column:id"`
	QuoteNumber     string            `json:"quote_number" gorm:"column:quote_number"`
	CustomerName    string            `json:"customer_name" gorm:"column:customer_name"`
	CustomerEmail   string            `json:"customer_email" gorm:"column:customer_email"`
	CustomerPhone   *string           `json:"customer_phone" gorm:"column:customer_phone"`
	CustomerCompany *string           `json:"customer_company" gorm:"column:customer_company"`
	Message         *string           `json:"message" gorm:"column:message"`
	Status          enums.QuoteStatus `json:"status" gorm:"column:status"`
	TotalItems      int               `json:"total_items" gorm:"column:total_items"`
	AdminNotes      *string           `json:"admin_notes" gorm:"column:admin_notes"`
	CreatedAt       time.Time         `json:"created_at" gorm:"column:created_at"`
	UpdatedAt       time.Time         `json:"updated_at" gorm:"column:updated_at"`

	Items          []QuoteItemDTO   `json:"items,omitempty" gorm:"-"`
	EstimatedTotal *decimal.Decimal `json:"estimated_total,omitempty" gorm:"-"`
}

// QuoteItemDTO is one line with its price snapshot. UnitPrice is null when the
// product was unknown at intake.
type QuoteItemDTO struct {
	ID          int64            `json:"id"`
	ProductID   int64            `json:"product_id"`
	ProductName *string          `json:"product_name"`
	ProductSKU  *string          `json:"product_sku"`
	MainImage   *string          `json:"main_image"`
	Quantity    int              `json:"quantity"`
	UnitPrice   *decimal.Decimal `json:"unit_price"`
	Subtotal    *decimal.Decimal `json:"subtotal"`
	Notes       *string          `json:"notes"`
	CreatedAt   time.Time        `json:"created_at"`
}

// PublicQuoteDTO is what the storefront may read back after intake.
type PublicQuoteDTO struct {
	ID             int64             `json:"id"`
	QuoteNumber    string            `json:"quote_number"`
	Status         enums.QuoteStatus `json:"status"`
	TotalItems     int               `json:"total_items"`
	CreatedAt      time.Time         `json:"created_at"`
	Items          []PublicItemDTO   `json:"items"`
	EstimatedTotal *decimal.Decimal  `json:"estimated_total,omitempty"`
}

// PublicItemDTO drops the customer's per-line notes.
type PublicItemDTO struct {
	ProductID   int64            `json:"product_id"`
	ProductName *string          `json:"product_name"`
	ProductSKU  *string          `json:"product_sku"`
	MainImage   *string          `json:"main_image"`
	Quantity    int              `json:"quantity"`
	UnitPrice   *decimal.Decimal `json:"unit_price"`
	Subtotal    *decimal.Decimal `json:"subtotal"`
}

func NewPublicQuote(q *QuoteDTO) *PublicQuoteDTO {
	if q == nil {
		return nil
	}
	out := &PublicQuoteDTO{
		ID:             q.ID,
		QuoteNumber:    q.QuoteNumber,
		Status:         q.Status,
		TotalItems:     q.TotalItems,
		CreatedAt:      q.CreatedAt,
		Items:          make([]PublicItemDTO, 0, len(q.Items)),
		EstimatedTotal: q.EstimatedTotal,
	}
	for _, item := range q.Items {
		out.Items = append(out.Items, PublicItemDTO{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			ProductSKU:  item.ProductSKU,
			MainImage:   item.MainImage,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Subtotal:    item.Subtotal,
		})
	}
	return out
}

type itemRow struct {
	models.QuoteItem
	MainImage *string `gorm:"column:main_image"`
}

func newItemDTO(row itemRow) QuoteItemDTO {
	dto := QuoteItemDTO{
		ID:          row.ID,
		ProductID:   row.ProductID,
		ProductName: row.ProductName,
		ProductSKU:  row.ProductSKU,
		MainImage:   row.MainImage,
		Quantity:    row.Quantity,
		Notes:       row.Notes,
		CreatedAt:   row.CreatedAt,
	}
	if row.UnitPrice.Valid {
		price := row.UnitPrice.Decimal
		subtotal := price.Mul(decimal.NewFromInt(int64(row.Quantity)))
		dto.UnitPrice = &price
		dto.Subtotal = &subtotal
	}
	return dto
}

// estimatedTotal sums the priced lines. It is nil when no line carries a price.
func estimatedTotal(items []QuoteItemDTO) *decimal.Decimal {
	var (
		total  decimal.Decimal
		priced bool
	)
	for _, item := range items {
		if item.Subtotal == nil {
			continue
		}
		total = total.Add(*item.Subtotal)
		priced = true
	}
	if !priced {
		return nil
	}
	return &total
}
