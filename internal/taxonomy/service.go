package taxonomy

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/angelmondragon/catalogo-industrial-backend/internal/crud"
	"github.com/angelmondragon/catalogo-industrial-backend/internal/repo"
	"github.com/angelmondragon/catalogo-industrial-backend/pkg/db"
	"github.com/angelmondragon/catalogo-industrial-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/catalogo-industrial-backend/pkg/errors"
)

// Service manages categories, subcategories, manufacturers, brands and models.
type Service interface {
	Categories() Reader[CategoryDTO]
	Subcategories() Reader[SubcategoryDTO]
	Manufacturers() Reader[ManufacturerDTO]
	Brands() Reader[BrandDTO]
	Models() Reader[ModelDTO]

	ValidateSlug(ctx context.Context, raw string, excludeID int64) (*SlugAvailability, error)

	CreateCategory(ctx context.Context, input CategoryInput) (*CategoryDTO, error)
	UpdateCategory(ctx context.Context, id int64, input CategoryUpdate) (*CategoryDTO, error)
	CreateSubcategory(ctx context.Context, input SubcategoryInput) (*SubcategoryDTO, error)
	UpdateSubcategory(ctx context.Context, id int64, input SubcategoryUpdate) (*SubcategoryDTO, error)
	CreateManufacturer(ctx context.Context, input ManufacturerInput) (*ManufacturerDTO, error)
	UpdateManufacturer(ctx context.Context, id int64, input ManufacturerUpdate) (*ManufacturerDTO, error)
	CreateBrand(ctx context.Context, input BrandInput) (*BrandDTO, error)
	UpdateBrand(ctx context.Context, id int64, input BrandUpdate) (*BrandDTO, error)
	CreateModel(ctx context.Context, input ModelInput) (*ModelDTO, error)
	UpdateModel(ctx context.Context, id int64, input ModelUpdate) (*ModelDTO, error)
}

type CategoryInput struct {
	Name        string
	Slug        string
	Description *string
	ImageURL    *string
	SortOrder   int
	IsActive    *bool
}

type CategoryUpdate struct {
	Name        *string
	Slug        *string
	Description *string
	ImageURL    *string
	SortOrder   *int
	IsActive    *bool
}

type SubcategoryInput struct {
	CategoryID  int64
	Name        string
	Slug        string
	Description *string
	ImageURL    *string
	SortOrder   int
	IsActive    *bool
}

type SubcategoryUpdate struct {
	CategoryID  *int64
	Name        *string
	Slug        *string
	Description *string
	ImageURL    *string
	SortOrder   *int
	IsActive    *bool
}

type ManufacturerInput struct {
	Name        string
	Description *string
	LogoURL     *string
	Website     *string
	Country     *string
	IsActive    *bool
}

type ManufacturerUpdate struct {
	Name        *string
	Description *string
	LogoURL     *string
	Website     *string
	Country     *string
	IsActive    *bool
}

type BrandInput struct {
	ManufacturerID int64
	Name           string
	Description    *string
	LogoURL        *string
	IsActive       *bool
}

type BrandUpdate struct {
	ManufacturerID *int64
	Name           *string
	Description    *string
	LogoURL        *string
	IsActive       *bool
}

type ModelInput struct {
	BrandID     int64
	Name        string
	Description *string
	Year        *int
	IsActive    *bool
}

type ModelUpdate struct {
	BrandID     *int64
	Name        *string
	Description *string
	Year        *int
	IsActive    *bool
}

type service struct {
	base          repo.Base
	categories    *Collection[CategoryDTO]
	subcategories *Collection[SubcategoryDTO]
	manufacturers *Collection[ManufacturerDTO]
	brands        *Collection[BrandDTO]
	models        *Collection[ModelDTO]
}

// NewService builds the taxonomy service over conn.
func NewService(conn *gorm.DB) (Service, error) {
	if conn == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "taxonomy database required")
	}
	return newService(repo.NewBase(conn)), nil
}

func newService(base repo.Base) *service {
	return &service{
		base:          base,
		categories:    newCollection[CategoryDTO](base, categoryResource, "categoría no encontrada", "la categoría tiene subcategorías o productos asociados"),
		subcategories: newCollection[SubcategoryDTO](base, subcategoryResource, "subcategoría no encontrada", "la subcategoría tiene productos asociados"),
		manufacturers: newCollection[ManufacturerDTO](base, manufacturerResource, "fabricante no encontrado", "el fabricante tiene marcas o productos asociados"),
		brands:        newCollection[BrandDTO](base, brandResource, "marca no encontrada", "la marca tiene modelos o productos asociados"),
		models:        newCollection[ModelDTO](base, modelResource, "modelo no encontrado", "el modelo tiene productos asociados"),
	}
}

func (s *service) Categories() Reader[CategoryDTO] { return s.categories }
func (s *service) Subcategories() Reader[SubcategoryDTO] { return s.subcategories }
func (s *service) Manufacturers() Reader[ManufacturerDTO] { return s.manufacturers }
func (s *service) Brands() Reader[BrandDTO] { return s.brands }
func (s *service) Models() Reader[ModelDTO] { return s.models }

// ValidateSlug normalizes raw and reports whether no other category uses it.
func (s *service) ValidateSlug(ctx context.Context, raw string, excludeID int64) (*SlugAvailability, error) {
	slug := Slugify(raw)
	if slug == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "el slug es requerido")
	}
	tx := s.base.DB(ctx).Table(categoriesTable).Where("slug = ?", slug)
	if excludeID > 0 {
		tx = tx.Where("id <> ?", excludeID)
	}
	var count int64
	if err := tx.Count(&count).Error; err != nil {
		return nil, db.Classify(err, "no se pudo validar el slug")
	}
	return &SlugAvailability{Slug: slug, Available: count == 0}, nil
}

func (s *service) CreateCategory(ctx context.Context, input CategoryInput) (*CategoryDTO, error) {
	name, err := requiredName(input.Name)
	if err != nil {
		return nil, err
	}
	slug, err := slugOrName(input.Slug, name)
	if err != nil {
		return nil, err
	}
	now := s.base.Now()
	row := models.Category{
		Name:        name,
		Slug:        slug,
		Description: input.Description,
		ImageURL:    input.ImageURL,
		SortOrder:   input.SortOrder,
		IsActive:    activeOrDefault(input.IsActive),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.base.DB(ctx).Create(&row).Error; err != nil {
		return nil, classifyWrite(err, "ya existe una categoría con ese slug", "")
	}
	return s.categories.Get(ctx, row.ID, false)
}

func (s *service) UpdateCategory(ctx context.Context, id int64, input CategoryUpdate) (*CategoryDTO, error) {
	patch := crud.NewPatch()
	if err := setName(patch, input.Name); err != nil {
		return nil, err
	}
	if err := setSlug(patch, input.Slug); err != nil {
		return nil, err
	}
	crud.SetIf(patch, "description", input.Description)
	crud.SetIf(patch, "image_url", input.ImageURL)
	crud.SetIf(patch, "sort_order", input.SortOrder)
	crud.SetIf(patch, "is_active", input.IsActive)
	if err := s.update(ctx, s.categories, id, patch, "ya existe una categoría con ese slug", ""); err != nil {
		return nil, err
	}
	return s.categories.Get(ctx, id, false)
}

func (s *service) CreateSubcategory(ctx context.Context, input SubcategoryInput) (*SubcategoryDTO, error) {
	if input.CategoryID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category_id es requerido")
	}
	name, err := requiredName(input.Name)
	if err != nil {
		return nil, err
	}
	slug, err := slugOrName(input.Slug, name)
	if err != nil {
		return nil, err
	}
	now := s.base.Now()
	row := models.Subcategory{
		CategoryID:  input.CategoryID,
		Name:        name,
		Slug:        slug,
		Description: input.Description,
		ImageURL:    input.ImageURL,
		SortOrder:   input.SortOrder,
		IsActive:    activeOrDefault(input.IsActive),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.base.DB(ctx).Create(&row).Error; err != nil {
		return nil, classifyWrite(err, "ya existe una subcategoría con ese slug en la categoría", "la categoría indicada no existe")
	}
	return s.subcategories.Get(ctx, row.ID, false)
}

func (s *service) UpdateSubcategory(ctx context.Context, id int64, input SubcategoryUpdate) (*SubcategoryDTO, error) {
	patch := crud.NewPatch()
	crud.SetIf(patch, "category_id", input.CategoryID)
	if err := setName(patch, input.Name); err != nil {
		return nil, err
	}
	if err := setSlug(patch, input.Slug); err != nil {
		return nil, err
	}
	crud.SetIf(patch, "description", input.Description)
	crud.SetIf(patch, "image_url", input.ImageURL)
	crud.SetIf(patch, "sort_order", input.SortOrder)
	crud.SetIf(patch, "is_active", input.IsActive)
	if err := s.update(ctx, s.subcategories, id, patch, "ya existe una subcategoría con ese slug en la categoría", "la categoría indicada no existe"); err != nil {
		return nil, err
	}
	return s.subcategories.Get(ctx, id, false)
}

func (s *service) CreateManufacturer(ctx context.Context, input ManufacturerInput) (*ManufacturerDTO, error) {
	name, err := requiredName(input.Name)
	if err != nil {
		return nil, err
	}
	now := s.base.Now()
	row := models.Manufacturer{
		Name:        name,
		Description: input.Description,
		LogoURL:     input.LogoURL,
		Website:     input.Website,
		Country:     input.Country,
		IsActive:    activeOrDefault(input.IsActive),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.base.DB(ctx).Create(&row).Error; err != nil {
		return nil, classifyWrite(err, "ya existe un fabricante con ese nombre", "")
	}
	return s.manufacturers.Get(ctx, row.ID, false)
}

func (s *service) UpdateManufacturer(ctx context.Context, id int64, input ManufacturerUpdate) (*ManufacturerDTO, error) {
	patch := crud.NewPatch()
	if err := setName(patch, input.Name); err != nil {
		return nil, err
	}
	crud.SetIf(patch, "description", input.Description)
	crud.SetIf(patch, "logo_url", input.LogoURL)
	crud.SetIf(patch, "website", input.Website)
	crud.SetIf(patch, "country", input.Country)
	crud.SetIf(patch, "is_active", input.IsActive)
	if err := s.update(ctx, s.manufacturers, id, patch, "ya existe un fabricante con ese nombre", ""); err != nil {
		return nil, err
	}
	return s.manufacturers.Get(ctx, id, false)
}

func (s *service) CreateBrand(ctx context.Context, input BrandInput) (*BrandDTO, error) {
	if input.ManufacturerID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "manufacturer_id es requerido")
	}
	name, err := requiredName(input.Name)
	if err != nil {
		return nil, err
	}
	now := s.base.Now()
	row := models.Brand{
		ManufacturerID: input.ManufacturerID,
		Name:           name,
		Description:    input.Description,
		LogoURL:        input.LogoURL,
		IsActive:       activeOrDefault(input.IsActive),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.base.DB(ctx).Create(&row).Error; err != nil {
		return nil, classifyWrite(err, "ya existe una marca con ese nombre", "el fabricante indicado no existe")
	}
	return s.brands.Get(ctx, row.ID, false)
}

func (s *service) UpdateBrand(ctx context.Context, id int64, input BrandUpdate) (*BrandDTO, error) {
	patch := crud.NewPatch()
	crud.SetIf(patch, "manufacturer_id", input.ManufacturerID)
	if err := setName(patch, input.Name); err != nil {
		return nil, err
	}
	crud.SetIf(patch, "description", input.Description)
	crud.SetIf(patch, "logo_url", input.LogoURL)
	crud.SetIf(patch, "is_active", input.IsActive)
	if err := s.update(ctx, s.brands, id, patch, "ya existe una marca con ese nombre", "el fabricante indicado no existe"); err != nil {
		return nil, err
	}
	return s.brands.Get(ctx, id, false)
}

func (s *service) CreateModel(ctx context.Context, input ModelInput) (*ModelDTO, error) {
	if input.BrandID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "brand_id es requerido")
	}
	name, err := requiredName(input.Name)
	if err != nil {
		return nil, err
	}
	now := s.base.Now()
	row := models.EquipmentModel{
		BrandID:     input.BrandID,
		Name:        name,
		Description: input.Description,
		Year:        input.Year,
		IsActive:    activeOrDefault(input.IsActive),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.base.DB(ctx).Create(&row).Error; err != nil {
		return nil, classifyWrite(err, "ya existe un modelo con ese nombre", "la marca indicada no existe")
	}
	return s.models.Get(ctx, row.ID, false)
}

func (s *service) UpdateModel(ctx context.Context, id int64, input ModelUpdate) (*ModelDTO, error) {
	patch := crud.NewPatch()
	crud.SetIf(patch, "brand_id", input.BrandID)
	if err := setName(patch, input.Name); err != nil {
		return nil, err
	}
	crud.SetIf(patch, "description", input.Description)
	crud.SetIf(patch, "year", input.Year)
	crud.SetIf(patch, "is_active", input.IsActive)
	if err := s.update(ctx, s.models, id, patch, "ya existe un modelo con ese nombre", "la marca indicada no existe"); err != nil {
		return nil, err
	}
	return s.models.Get(ctx, id, false)
}

// writable is the part of a Collection the shared update path needs.
type writable interface {
	table() string
	translate(err error) error
}

func (s *service) update(ctx context.Context, c writable, id int64, patch *crud.Patch, duplicateMsg, parentMsg string) error {
	err := crud.Update(ctx, s.base.Conn(), c.table(), id, patch, s.base.Now())
	if err == nil {
		return nil
	}
	if typed := pkgerrors.As(err); typed != nil && typed.Code() == pkgerrors.CodeNotFound {
		return c.translate(err)
	}
	return classifyWrite(err, duplicateMsg, parentMsg)
}

// classifyWrite separates duplicate keys from missing parents.
func classifyWrite(err error, duplicateMsg, parentMsg string) error {
	switch {
	case db.IsUniqueViolation(err):
		return pkgerrors.Wrap(pkgerrors.CodeConflict, err, duplicateMsg)
	case db.IsForeignKeyViolation(err) && parentMsg != "":
		return pkgerrors.Wrap(pkgerrors.CodeConflict, err, parentMsg)
	}
	return db.Classify(err, "no se pudo guardar el registro")
}

func requiredName(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "el nombre es requerido")
	}
	return name, nil
}

func slugOrName(raw, name string) (string, error) {
	source := raw
	if strings.TrimSpace(source) == "" {
		source = name
	}
	slug := Slugify(source)
	if slug == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "no se pudo generar un slug válido")
	}
	return slug, nil
}

func setName(patch *crud.Patch, raw *string) error {
	if raw == nil {
		return nil
	}
	name, err := requiredName(*raw)
	if err != nil {
		return err
	}
	patch.Set("name", name)
	return nil
}

func setSlug(patch *crud.Patch, raw *string) error {
	if raw == nil {
		return nil
	}
	slug := Slugify(*raw)
	if slug == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "slug inválido")
	}
	patch.Set("slug", slug)
	return nil
}

func activeOrDefault(v *bool) bool {
	if v == nil {
		return true
	}
	return *v
}
