package controllers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/catalogo-industrial-backend/api/responses"
	"github.com/angelmondragon/catalogo-industrial-backend/api/validators"
	productsvc "github.com/angelmondragon/catalogo-industrial-backend/internal/products"
	pkgerrors "github.com/angelmondragon/catalogo-industrial-backend/pkg/errors"
	"github.com/angelmondragon/catalogo-industrial-backend/pkg/logger"
)

// ListProducts serves the storefront catalogue with filters and pagination.
func ListProducts(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}
		page, err := svc.ListPublic(r.Context(), r.URL.Query())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessPage(w, page.Items, page.Meta)
	}
}

// GetProduct returns one active product with its taxonomy names.
func GetProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}
		id, err := validators.ParseIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		product, err := svc.GetPublic(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

// AdminListProducts lists the catalogue including inactive listings.
func AdminListProducts(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}
		page, err := svc.ListAdmin(r.Context(), r.URL.Query())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessPage(w, page.Items, page.Meta)
	}
}

func AdminGetProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}
		id, err := validators.ParseIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		product, err := svc.GetAdmin(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

// AdminCreateProduct handles the product wizard submission.
func AdminCreateProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}
		var payload createProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		product, err := svc.Create(r.Context(), payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteCreated(w, product)
	}
}

// AdminUpdateProduct applies a partial update. Unknown keys are ignored.
func AdminUpdateProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}
		id, err := validators.ParseIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload updateProductRequest
		if err := validators.DecodePatchBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		product, err := svc.Update(r.Context(), id, payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

// AdminDeleteProduct hides a product from the storefront.
func AdminDeleteProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}
		id, err := validators.ParseIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteMessage(w, "producto desactivado", map[string]int64{"id": id})
	}
}

type createProductRequest struct {
	SKU            string           `json:"sku" validate:"required,max=64"`
	Name           string           `json:"name" validate:"required,max=255"`
	Description    *string          `json:"description"`
	CategoryID     *int64           `json:"category_id" validate:"omitempty,gt=0"`
	SubcategoryID  *int64           `json:"subcategory_id" validate:"omitempty,gt=0"`
	ManufacturerID *int64           `json:"manufacturer_id" validate:"omitempty,gt=0"`
	BrandID        *int64           `json:"brand_id" validate:"omitempty,gt=0"`
	ModelID        *int64           `json:"model_id" validate:"omitempty,gt=0"`
	Price          *decimal.Decimal `json:"price" validate:"required"`
	Currency       string           `json:"currency" validate:"omitempty,oneof=MXN USD"`
	StockQuantity  int              `json:"stock_quantity" validate:"gte=0"`
	MainImage      *string          `json:"main_image" validate:"omitempty,url"`
	Images         []string         `json:"images" validate:"omitempty,dive,url"`
	Specifications map[string]any   `json:"specifications"`
	IsActive       *bool            `json:"is_active"`
	IsFeatured     bool             `json:"is_featured"`
}

func (r createProductRequest) toInput() productsvc.CreateInput {
	input := productsvc.CreateInput{
		SKU:            validators.SanitizeString(r.SKU, 64),
		Name:           validators.SanitizeString(r.Name, 255),
		Description:    validators.OptionalString(r.Description),
		CategoryID:     r.CategoryID,
		SubcategoryID:  r.SubcategoryID,
		ManufacturerID: r.ManufacturerID,
		BrandID:        r.BrandID,
		ModelID:        r.ModelID,
		Currency:       r.Currency,
		StockQuantity:  r.StockQuantity,
		MainImage:      validators.OptionalString(r.MainImage),
		Images:         r.Images,
		Specifications: r.Specifications,
		IsActive:       r.IsActive,
		IsFeatured:     r.IsFeatured,
	}
	if r.Price != nil {
		input.Price = *r.Price
	}
	return input
}

type updateProductRequest struct {
	SKU            *string          `json:"sku" validate:"omitempty,max=64"`
	Name           *string          `json:"name" validate:"omitempty,max=255"`
	Description    *string          `json:"description"`
	CategoryID     *int64           `json:"category_id" validate:"omitempty,gt=0"`
	SubcategoryID  *int64           `json:"subcategory_id" validate:"omitempty,gt=0"`
	ManufacturerID *int64           `json:"manufacturer_id" validate:"omitempty,gt=0"`
	BrandID        *int64           `json:"brand_id" validate:"omitempty,gt=0"`
	ModelID        *int64           `json:"model_id" validate:"omitempty,gt=0"`
	Price          *decimal.Decimal `json:"price"`
	Currency       *string          `json:"currency" validate:"omitempty,oneof=MXN USD"`
	StockQuantity  *int             `json:"stock_quantity" validate:"omitempty,gte=0"`
	MainImage      *string          `json:"main_image"`
	Images         *[]string        `json:"images"`
	Specifications *map[string]any  `json:"specifications"`
	IsActive       *bool            `json:"is_active"`
	IsFeatured     *bool            `json:"is_featured"`
}

func (r updateProductRequest) toInput() productsvc.UpdateInput {
	return productsvc.UpdateInput{
		SKU:            r.SKU,
		Name:           r.Name,
		Description:    r.Description,
		CategoryID:     r.CategoryID,
		SubcategoryID:  r.SubcategoryID,
		ManufacturerID: r.ManufacturerID,
		BrandID:        r.BrandID,
		ModelID:        r.ModelID,
		Price:          r.Price,
		Currency:       r.Currency,
		StockQuantity:  r.StockQuantity,
		MainImage:      r.MainImage,
		Images:         r.Images,
		Specifications: r.Specifications,
		IsActive:       r.IsActive,
		IsFeatured:     r.IsFeatured,
	}
}
