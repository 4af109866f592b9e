package quotes

import (
	"context"
	"net/url"

	"gorm.io/gorm"

	"github.com/angelmondragon/catalogo-industrial-backend/internal/crud"
	"github.com/angelmondragon/catalogo-industrial-backend/internal/repo"
	"github.com/angelmondragon/catalogo-industrial-backend/pkg/db"
	"github.com/angelmondragon/catalogo-industrial-backend/pkg/db/models"
	"github.com/angelmondragon/catalogo-industrial-backend/pkg/enums"
)

const quotesTable = "quotes"

var quoteStatusValues = []string{
	string(enums.QuoteStatusPending),
	string(enums.QuoteStatusReviewing),
	string(enums.QuoteStatusQuoted),
	string(enums.QuoteStatusAccepted),
	string(enums.QuoteStatusRejected),
	string(enums.QuoteStatusCancelled),
}

// Resource backs the quote listings.
var Resource = crud.Resource{
	Table: quotesTable,
	Alias: "q",
	Filters: []crud.Filter{
		{Param: "status", Column: "q.status", Kind: crud.Text, Allowed: quoteStatusValues},
		{Param: "customer_email", Column: "q.customer_email", Kind: crud.Text},
		{Param: "date_from", Column: "q.created_at", Kind: crud.From},
		{Param: "date_to", Column: "q.created_at", Kind: crud.To},
	},
	SearchColumns: []string{"q.quote_number", "q.customer_name", "q.customer_email", "q.customer_company"},
	Sorts: map[string]string{
		"newest": "q.created_at DESC",
		"oldest": "q.created_at ASC",
	},
	DefaultOrder: "q.created_at DESC",
}

// Repository persists quotes and their items.
type Repository struct {
	repo.Base
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// WithTx returns a repository bound to tx.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{Base: r.Base.WithTx(tx)}
}

func (r *Repository) CreateQuote(ctx context.Context, quote *models.Quote) error {
	return r.DB(ctx).Create(quote).Error
}

func (r *Repository) CreateItem(ctx context.Context, item *models.QuoteItem) error {
	return r.DB(ctx).Create(item).Error
}

func (r *Repository) List(ctx context.Context, values url.Values) (crud.Page[QuoteDTO], error) {
	q, err := Resource.ParseQuery(values)
	if err != nil {
		return crud.Page[QuoteDTO]{}, err
	}
	return crud.List[QuoteDTO](ctx, r.Conn(), Resource, q)
}

func (r *Repository) Get(ctx context.Context, id int64) (*QuoteDTO, error) {
	return crud.Get[QuoteDTO](ctx, r.Conn(), Resource, id)
}

// Items returns the lines of a quote in insertion order.
func (r *Repository) Items(ctx context.Context, quoteID int64) ([]itemRow, error) {
	rows := []itemRow{}
	err := r.DB(ctx).
		Table("quote_items qi").
		Select("qi.*, p.main_image").
		Joins("LEFT JOIN products p ON p.id = qi.product_id").
		Where("qi.quote_id = ?", quoteID).
		Order("qi.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, db.Classify(err, "no se pudo obtener los productos de la cotización")
	}
	return rows, nil
}

func (r *Repository) Update(ctx context.Context, id int64, patch *crud.Patch) error {
	return crud.Update(ctx, r.Conn(), quotesTable, id, patch, r.Now())
}
