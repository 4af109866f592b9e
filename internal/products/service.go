package products

import (
	"context"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/catalogo-industrial-backend/internal/crud"
	"github.com/angelmondragon/catalogo-industrial-backend/pkg/db"
	"github.com/angelmondragon/catalogo-industrial-backend/pkg/db/models"
	dbtypes "github.com/angelmondragon/catalogo-industrial-backend/pkg/db/types"
	"github.com/angelmondragon/catalogo-industrial-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/catalogo-industrial-backend/pkg/errors"
)

// Service exposes the storefront catalogue and its back-office management.
type Service interface {
	ListPublic(ctx context.Context, values url.Values) (crud.Page[ProductDTO], error)
	GetPublic(ctx context.Context, id int64) (*ProductDTO, error)
	ListAdmin(ctx context.Context, values url.Values) (crud.Page[ProductDTO], error)
	GetAdmin(ctx context.Context, id int64) (*ProductDTO, error)
	Create(ctx context.Context, input CreateInput) (*ProductDTO, error)
	Update(ctx context.Context, id int64, input UpdateInput) (*ProductDTO, error)
	Delete(ctx context.Context, id int64) error
}

// CreateInput holds the validated payload to create a product.
type CreateInput struct {
	SKU            string
	Name           string
	Description    *string
	CategoryID     *int64
	SubcategoryID  *int64
	ManufacturerID *int64
	BrandID        *int64
	ModelID        *int64
	Price          decimal.Decimal
	Currency       string
	StockQuantity  int
	MainImage      *string
	Images         []string
	Specifications map[string]any
	IsActive       *bool
	IsFeatured     bool
}

// UpdateInput holds optional mutation values for a product.
type UpdateInput struct {
	SKU            *string
	Name           *string
	Description    *string
	CategoryID     *int64
	SubcategoryID  *int64
	ManufacturerID *int64
	BrandID        *int64
	ModelID        *int64
	Price          *decimal.Decimal
	Currency       *string
	StockQuantity  *int
	MainImage      *string
	Images         *[]string
	Specifications *map[string]any
	IsActive       *bool
	IsFeatured     *bool
}

type service struct {
	repo *Repository
}

// NewService builds the product service.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "product repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) ListPublic(ctx context.Context, values url.Values) (crud.Page[ProductDTO], error) {
	return s.list(ctx, values, true)
}

func (s *service) ListAdmin(ctx context.Context, values url.Values) (crud.Page[ProductDTO], error) {
	return s.list(ctx, values, false)
}

func (s *service) list(ctx context.Context, values url.Values, publicOnly bool) (crud.Page[ProductDTO], error) {
	page, err := s.repo.List(ctx, values, publicOnly)
	if err != nil {
		return crud.Page[ProductDTO]{}, err
	}
	items := make([]ProductDTO, 0, len(page.Items))
	for _, row := range page.Items {
		items = append(items, newProductDTO(row))
	}
	return crud.Page[ProductDTO]{Items: items, Meta: page.Meta}, nil
}

func (s *service) GetPublic(ctx context.Context, id int64) (*ProductDTO, error) {
	return s.get(ctx, id, true)
}

func (s *service) GetAdmin(ctx context.Context, id int64) (*ProductDTO, error) {
	return s.get(ctx, id, false)
}

func (s *service) get(ctx context.Context, id int64, publicOnly bool) (*ProductDTO, error) {
	row, err := s.repo.Get(ctx, id, publicOnly)
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil && typed.Code() == pkgerrors.CodeNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "producto no encontrado")
		}
		return nil, err
	}
	dto := newProductDTO(*row)
	return &dto, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*ProductDTO, error) {
	sku := strings.TrimSpace(input.SKU)
	name := strings.TrimSpace(input.Name)
	if sku == "" || name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "sku y nombre son requeridos")
	}
	if input.Price.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "el precio no puede ser negativo")
	}
	if input.StockQuantity < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "el inventario no puede ser negativo")
	}
	currency, err := parseCurrency(input.Currency)
	if err != nil {
		return nil, err
	}

	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}

	now := s.repo.Now()
	product := &models.Product{
		SKU:            sku,
		Name:           name,
		Description:    input.Description,
		CategoryID:     input.CategoryID,
		SubcategoryID:  input.SubcategoryID,
		ManufacturerID: input.ManufacturerID,
		BrandID:        input.BrandID,
		ModelID:        input.ModelID,
		Price:          input.Price.Round(2),
		Currency:       string(currency),
		StockQuantity:  input.StockQuantity,
		MainImage:      input.MainImage,
		Images:         dbtypes.StringList(input.Images),
		Specifications: dbtypes.JSONObject(input.Specifications),
		IsActive:       isActive,
		IsFeatured:     input.IsFeatured,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.repo.Create(ctx, product); err != nil {
		return nil, classifyWrite(err, "no se pudo crear el producto")
	}
	return s.GetAdmin(ctx, product.ID)
}

func (s *service) Update(ctx context.Context, id int64, input UpdateInput) (*ProductDTO, error) {
	patch := crud.NewPatch()
	if input.SKU != nil {
		sku := strings.TrimSpace(*input.SKU)
		if sku == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "el sku no puede estar vacío")
		}
		patch.Set("sku", sku)
	}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "el nombre no puede estar vacío")
		}
		patch.Set("name", name)
	}
	crud.SetIf(patch, "description", input.Description)
	crud.SetIf(patch, "category_id", input.CategoryID)
	crud.SetIf(patch, "subcategory_id", input.SubcategoryID)
	crud.SetIf(patch, "manufacturer_id", input.ManufacturerID)
	crud.SetIf(patch, "brand_id", input.BrandID)
	crud.SetIf(patch, "model_id", input.ModelID)
	if input.Price != nil {
		if input.Price.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "el precio no puede ser negativo")
		}
		patch.Set("price", input.Price.Round(2))
	}
	if input.Currency != nil {
		currency, err := parseCurrency(*input.Currency)
		if err != nil {
			return nil, err
		}
		patch.Set("currency", string(currency))
	}
	if input.StockQuantity != nil {
		if *input.StockQuantity < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "el inventario no puede ser negativo")
		}
		patch.Set("stock_quantity", *input.StockQuantity)
	}
	crud.SetIf(patch, "main_image", input.MainImage)
	if input.Images != nil {
		patch.SetJSON("images", nonNilList(*input.Images))
	}
	if input.Specifications != nil {
		patch.SetJSON("specifications", nonNilMap(*input.Specifications))
	}
	crud.SetIf(patch, "is_active", input.IsActive)
	crud.SetIf(patch, "is_featured", input.IsFeatured)

	if err := s.repo.Update(ctx, id, patch); err != nil {
		if typed := pkgerrors.As(err); typed != nil && typed.Code() == pkgerrors.CodeNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "producto no encontrado")
		}
		return nil, classifyWrite(err, "no se pudo actualizar el producto")
	}
	return s.GetAdmin(ctx, id)
}

func (s *service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Deactivate(ctx, id); err != nil {
		if typed := pkgerrors.As(err); typed != nil && typed.Code() == pkgerrors.CodeNotFound {
			return pkgerrors.New(pkgerrors.CodeNotFound, "producto no encontrado")
		}
		return err
	}
	return nil
}

// classifyWrite separates duplicate SKUs from dangling taxonomy references.
func classifyWrite(err error, msg string) error {
	switch {
	case db.IsUniqueViolation(err):
		return pkgerrors.Wrap(pkgerrors.CodeConflict, err, "ya existe un producto con ese SKU")
	case db.IsForeignKeyViolation(err):
		return pkgerrors.Wrap(pkgerrors.CodeConflict, err, "la categoría, marca o modelo indicado no existe")
	}
	return db.Classify(err, msg)
}

func parseCurrency(raw string) (enums.Currency, error) {
	if strings.TrimSpace(raw) == "" {
		return enums.DefaultCurrency, nil
	}
	currency, err := enums.ParseCurrency(raw)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeValidation, err, "moneda no soportada")
	}
	return currency, nil
}

func nonNilList(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

func nonNilMap(values map[string]any) map[string]any {
	if values == nil {
		return map[string]any{}
	}
	return values
}
