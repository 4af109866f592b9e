package products

import (
	"context"
	"net/url"

	"gorm.io/gorm"

	"github.com/angelmondragon/catalogo-industrial-backend/internal/crud"
	"github.com/angelmondragon/catalogo-industrial-backend/internal/repo"
	"github.com/angelmondragon/catalogo-industrial-backend/pkg/db/models"
	"github.com/angelmondragon/catalogo-industrial-backend/pkg/enums"
)

const productsTable = "products"

var productJoins = []string{
	"LEFT JOIN categories c ON c.id = p.category_id",
	"LEFT JOIN subcategories sc ON sc.id = p.subcategory_id",
	"LEFT JOIN manufacturers m ON m.id = p.manufacturer_id",
	"LEFT JOIN brands b ON b.id = p.brand_id",
	"LEFT JOIN models mo ON mo.id = p.model_id",
}

var productColumns = []string{
	"p.*",
	"c.name AS category_name",
	"sc.name AS subcategory_name",
	"m.name AS manufacturer_name",
	"b.name AS brand_name",
	"mo.name AS model_name",
}

var catalogueFilters = []crud.Filter{
	{Param: "category_id", Column: "p.category_id", Kind: crud.Exact},
	{Param: "subcategory_id", Column: "p.subcategory_id", Kind: crud.Exact},
	{Param: "manufacturer_id", Column: "p.manufacturer_id", Kind: crud.Exact},
	{Param: "brand_id", Column: "p.brand_id", Kind: crud.Exact},
	{Param: "model_id", Column: "p.model_id", Kind: crud.Exact},
	{Param: "is_featured", Column: "p.is_featured", Kind: crud.Bool},
	{Param: "min_price", Column: "p.price", Kind: crud.Min},
	{Param: "max_price", Column: "p.price", Kind: crud.Max},
	{Param: "in_stock", Column: "p.stock_quantity", Kind: crud.Positive},
}

// PublicResource backs the storefront listing.
var PublicResource = crud.Resource{
	Table:         productsTable,
	Alias:         "p",
	Columns:       productColumns,
	Joins:         productJoins,
	Filters:       catalogueFilters,
	SearchColumns: []string{"p.name", "p.description", "p.sku", "c.name", "m.name", "b.name", "mo.name"},
	Sorts: map[string]string{
		string(enums.ProductSortNewest):    "p.created_at DESC",
		string(enums.ProductSortPriceAsc):  "p.price ASC",
		string(enums.ProductSortPriceDesc): "p.price DESC",
		string(enums.ProductSortName):      "p.name ASC",
	},
	DefaultOrder: "p.created_at DESC",
}

// AdminResource additionally lets the console filter by is_active.
var AdminResource = func() crud.Resource {
	res := PublicResource
	res.Filters = append(append([]crud.Filter{}, catalogueFilters...),
		crud.Filter{Param: "is_active", Column: "p.is_active", Kind: crud.Bool})
	return res
}()

var activeOnly = crud.Predicate{SQL: "p.is_active = ?", Args: []any{true}}

// Repository wires product persistence onto the shared CRUD helpers.
type Repository struct {
	repo.Base
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

func (r *Repository) List(ctx context.Context, values url.Values, publicOnly bool) (crud.Page[productRow], error) {
	res := AdminResource
	if publicOnly {
		res = PublicResource
	}
	q, err := res.ParseQuery(values)
	if err != nil {
		return crud.Page[productRow]{}, err
	}
	if publicOnly {
		q.Add(activeOnly.SQL, activeOnly.Args...)
	}
	return crud.List[productRow](ctx, r.Conn(), res, q)
}

func (r *Repository) Get(ctx context.Context, id int64, publicOnly bool) (*productRow, error) {
	if publicOnly {
		return crud.Get[productRow](ctx, r.Conn(), AdminResource, id, activeOnly)
	}
	return crud.Get[productRow](ctx, r.Conn(), AdminResource, id)
}

func (r *Repository) Create(ctx context.Context, product *models.Product) error {
	return r.DB(ctx).Create(product).Error
}

func (r *Repository) Update(ctx context.Context, id int64, patch *crud.Patch) error {
	return crud.Update(ctx, r.Conn(), productsTable, id, patch, r.Now())
}

func (r *Repository) Deactivate(ctx context.Context, id int64) error {
	return crud.SoftDelete(ctx, r.Conn(), productsTable, id, r.Now())
}

// FindForSnapshot loads the fields copied into quote items. Inactive products still
// resolve so a quote can reference a listing that was hidden meanwhile.
func FindForSnapshot(ctx context.Context, conn *gorm.DB, id int64) (*models.Product, bool, error) {
	var product models.Product
	result := conn.WithContext(ctx).Where("id = ?", id).Limit(1).Find(&product)
	if result.Error != nil {
		return nil, false, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, false, nil
	}
	return &product, true, nil
}
