package controllers

import (
	"context"
	"math"
	"net/http"

	"github.com/angelmondragon/catalogo-industrial-backend/api/responses"
	"github.com/angelmondragon/catalogo-industrial-backend/api/validators"
	"github.com/angelmondragon/catalogo-industrial-backend/internal/taxonomy"
	pkgerrors "github.com/angelmondragon/catalogo-industrial-backend/pkg/errors"
	"github.com/angelmondragon/catalogo-industrial-backend/pkg/logger"
)

// ListTaxonomy serves a taxonomy list. publicOnly hides inactive rows.
func ListTaxonomy[T any](src taxonomy.Reader[T], publicOnly bool, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if src == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "taxonomy service unavailable"))
			return
		}
		page, err := src.List(r.Context(), r.URL.Query(), publicOnly)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessPage(w, page.Items, page.Meta)
	}
}

func GetTaxonomy[T any](src taxonomy.Reader[T], publicOnly bool, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if src == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "taxonomy service unavailable"))
			return
		}
		id, err := validators.ParseIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		row, err := src.Get(r.Context(), id, publicOnly)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, row)
	}
}

// DeleteTaxonomy soft-deletes by default; ?permanent=true removes the row.
func DeleteTaxonomy[T any](src taxonomy.Reader[T], logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if src == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "taxonomy service unavailable"))
			return
		}
		id, err := validators.ParseIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		permanent, err := validators.ParseQueryBool(r, "permanent")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		hard := permanent != nil && *permanent
		if err := src.Delete(r.Context(), id, hard); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		msg := "registro desactivado"
		if hard {
			msg = "registro eliminado"
		}
		responses.WriteMessage(w, msg, map[string]int64{"id": id})
	}
}

// ValidateCategorySlug answers GET /api/categories/validate-slug.
func ValidateCategorySlug(svc taxonomy.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "taxonomy service unavailable"))
			return
		}
		excludeID, err := validators.ParseQueryInt(r, "exclude_id", 0, 0, math.MaxInt32)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		result, err := svc.ValidateSlug(r.Context(), r.URL.Query().Get("slug"), int64(excludeID))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// inputRequest is a decoded request body that converts into a service input.
type inputRequest[In any] interface {
	toInput() In
}

// createTaxonomy decodes Req strictly and passes its input to create.
func createTaxonomy[Req inputRequest[In], In any, Out any](create func(context.Context, In) (*Out, error), logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload Req
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		row, err := create(r.Context(), payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteCreated(w, row)
	}
}

func updateTaxonomy[Req inputRequest[In], In any, Out any](update func(context.Context, int64, In) (*Out, error), logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload Req
		if err := validators.DecodePatchBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		row, err := update(r.Context(), id, payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, row)
	}
}

func AdminCreateCategory(svc taxonomy.Service, logg *logger.Logger) http.HandlerFunc {
	return createTaxonomy[categoryRequest](svc.CreateCategory, logg)
}

func AdminUpdateCategory(svc taxonomy.Service, logg *logger.Logger) http.HandlerFunc {
	return updateTaxonomy[categoryUpdateRequest](svc.UpdateCategory, logg)
}

func AdminCreateSubcategory(svc taxonomy.Service, logg *logger.Logger) http.HandlerFunc {
	return createTaxonomy[subcategoryRequest](svc.CreateSubcategory, logg)
}

func AdminUpdateSubcategory(svc taxonomy.Service, logg *logger.Logger) http.HandlerFunc {
	return updateTaxonomy[subcategoryUpdateRequest](svc.UpdateSubcategory, logg)
}

func AdminCreateManufacturer(svc taxonomy.Service, logg *logger.Logger) http.HandlerFunc {
	return createTaxonomy[manufacturerRequest](svc.CreateManufacturer, logg)
}

func AdminUpdateManufacturer(svc taxonomy.Service, logg *logger.Logger) http.HandlerFunc {
	return updateTaxonomy[manufacturerUpdateRequest](svc.UpdateManufacturer, logg)
}

func AdminCreateBrand(svc taxonomy.Service, logg *logger.Logger) http.HandlerFunc {
	return createTaxonomy[brandRequest](svc.CreateBrand, logg)
}

func AdminUpdateBrand(svc taxonomy.Service, logg *logger.Logger) http.HandlerFunc {
	return updateTaxonomy[brandUpdateRequest](svc.UpdateBrand, logg)
}

func AdminCreateModel(svc taxonomy.Service, logg *logger.Logger) http.HandlerFunc {
	return createTaxonomy[modelRequest](svc.CreateModel, logg)
}

func AdminUpdateModel(svc taxonomy.Service, logg *logger.Logger) http.HandlerFunc {
	return updateTaxonomy[modelUpdateRequest](svc.UpdateModel, logg)
}

type categoryRequest struct {
	Name        string  `json:"name" validate:"required,max=120"`
	Slug        string  `json:"slug" validate:"max=120"`
	Description *string `json:"description"`
	ImageURL    *string `json:"image_url" validate:"omitempty,url"`
	SortOrder   int     `json:"sort_order"`
	IsActive    *bool   `json:"is_active"`
}

func (r categoryRequest) toInput() taxonomy.CategoryInput {
	return taxonomy.CategoryInput{
		Name:        r.Name,
		Slug:        r.Slug,
		Description: validators.OptionalString(r.Description),
		ImageURL:    validators.OptionalString(r.ImageURL),
		SortOrder:   r.SortOrder,
		IsActive:    r.IsActive,
	}
}

type categoryUpdateRequest struct {
	Name        *string `json:"name" validate:"omitempty,max=120"`
	Slug        *string `json:"slug" validate:"omitempty,max=120"`
	Description *string `json:"description"`
	ImageURL    *string `json:"image_url"`
	SortOrder   *int    `json:"sort_order"`
	IsActive    *bool   `json:"is_active"`
}

func (r categoryUpdateRequest) toInput() taxonomy.CategoryUpdate {
	return taxonomy.CategoryUpdate(r)
}

type subcategoryRequest struct {
	CategoryID  int64   `json:"category_id" validate:"required,gt=0"`
	Name        string  `json:"name" validate:"required,max=120"`
	Slug        string  `json:"slug" validate:"max=120"`
	Description *string `json:"description"`
	ImageURL    *string `json:"image_url" validate:"omitempty,url"`
	SortOrder   int     `json:"sort_order"`
	IsActive    *bool   `json:"is_active"`
}

func (r subcategoryRequest) toInput() taxonomy.SubcategoryInput {
	return taxonomy.SubcategoryInput{
		CategoryID:  r.CategoryID,
		Name:        r.Name,
		Slug:        r.Slug,
		Description: validators.OptionalString(r.Description),
		ImageURL:    validators.OptionalString(r.ImageURL),
		SortOrder:   r.SortOrder,
		IsActive:    r.IsActive,
	}
}

type subcategoryUpdateRequest struct {
	CategoryID  *int64  `json:"category_id" validate:"omitempty,gt=0"`
	Name        *string `json:"name" validate:"omitempty,max=120"`
	Slug        *string `json:"slug" validate:"omitempty,max=120"`
	Description *string `json:"description"`
	ImageURL    *string `json:"image_url"`
	SortOrder   *int    `json:"sort_order"`
	IsActive    *bool   `json:"is_active"`
}

func (r subcategoryUpdateRequest) toInput() taxonomy.SubcategoryUpdate {
	return taxonomy.SubcategoryUpdate(r)
}

type manufacturerRequest struct {
	Name        string  `json:"name" validate:"required,max=120"`
	Description *string `json:"description"`
	LogoURL     *string `json:"logo_url" validate:"omitempty,url"`
	Website     *string `json:"website" validate:"omitempty,url"`
	Country     *string `json:"country" validate:"omitempty,max=80"`
	IsActive    *bool   `json:"is_active"`
}

func (r manufacturerRequest) toInput() taxonomy.ManufacturerInput {
	return taxonomy.ManufacturerInput{
		Name:        r.Name,
		Description: validators.OptionalString(r.Description),
		LogoURL:     validators.OptionalString(r.LogoURL),
		Website:     validators.OptionalString(r.Website),
		Country:     validators.OptionalString(r.Country),
		IsActive:    r.IsActive,
	}
}

type manufacturerUpdateRequest struct {
	Name        *string `json:"name" validate:"omitempty,max=120"`
	Description *string `json:"description"`
	LogoURL     *string `json:"logo_url"`
	Website     *string `json:"website"`
	Country     *string `json:"country" validate:"omitempty,max=80"`
	IsActive    *bool   `json:"is_active"`
}

func (r manufacturerUpdateRequest) toInput() taxonomy.ManufacturerUpdate {
	return taxonomy.ManufacturerUpdate(r)
}

type brandRequest struct {
	ManufacturerID int64   `json:"manufacturer_id" validate:"required,gt=0"`
	Name           string  `json:"name" validate:"required,max=120"`
	Description    *string `json:"description"`
	LogoURL        *string `json:"logo_url" validate:"omitempty,url"`
	IsActive       *bool   `json:"is_active"`
}

func (r brandRequest) toInput() taxonomy.BrandInput {
	return taxonomy.BrandInput{
		ManufacturerID: r.ManufacturerID,
		Name:           r.Name,
		Description:    validators.OptionalString(r.Description),
		LogoURL:        validators.OptionalString(r.LogoURL),
		IsActive:       r.IsActive,
	}
}

type brandUpdateRequest struct {
	ManufacturerID *int64  `json:"manufacturer_id" validate:"omitempty,gt=0"`
	Name           *string `json:"name" validate:"omitempty,max=120"`
	Description    *string `json:"description"`
	LogoURL        *string `json:"logo_url"`
	IsActive       *bool   `json:"is_active"`
}

func (r brandUpdateRequest) toInput() taxonomy.BrandUpdate {
	return taxonomy.BrandUpdate(r)
}

type modelRequest struct {
	BrandID     int64   `json:"brand_id" validate:"required,gt=0"`
	Name        string  `json:"name" validate:"required,max=120"`
	Description *string `json:"description"`
	Year        *int    `json:"year" validate:"omitempty,gte=1900,lte=2100"`
	IsActive    *bool   `json:"is_active"`
}

func (r modelRequest) toInput() taxonomy.ModelInput {
	return taxonomy.ModelInput{
		BrandID:     r.BrandID,
		Name:        r.Name,
		Description: validators.OptionalString(r.Description),
		Year:        r.Year,
		IsActive:    r.IsActive,
	}
}

type modelUpdateRequest struct {
	BrandID     *int64  `json:"brand_id" validate:"omitempty,gt=0"`
	Name        *string `json:"name" validate:"omitempty,max=120"`
	Description *string `json:"description"`
	Year        *int    `json:"year" validate:"omitempty,gte=1900,lte=2100"`
	IsActive    *bool   `json:"is_active"`
}

func (r modelUpdateRequest) toInput() taxonomy.ModelUpdate {
	return taxonomy.ModelUpdate(r)
}
