package taxonomy

import "time"

// CategoryDTO is the category payload with its product count.
type CategoryDTO struct {
	ID           int64     `json:"id" gorm:"column:id"`
	Name         string    `json:"name" gorm:"column:name"`
	Slug         string    `json:"slug" gorm:"column:slug"`
	Description  *string   `json:"description" gorm:"column:description"`
	ImageURL     *string   `json:"image_url" gorm:"column:image_url"`
	SortOrder    int       `json:"sort_order" gorm:"column:sort_order"`
	IsActive     bool      `json:"is_active" gorm:"column:is_active"`
	ProductCount int64     `json:"product_count" gorm:"column:product_count"`
	CreatedAt    time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt    time.Time `json:"updated_at" gorm:"column:updated_at"`
}

type SubcategoryDTO struct {
	ID           int64     `json:"id" gorm:"column:id"`
	CategoryID   int64     `json:"category_id" gorm:"column:category_id"`
	CategoryName *string   `json:"category_name" gorm:"column:category_name"`
	Name         string    `json:"name" gorm:"column:name"`
	Slug         string    `json:"slug" gorm:"column:slug"`
	Description  *string   `json:"description" gorm:"column:description"`
	ImageURL     *string   `json:"image_url" gorm:"column:image_url"`
	SortOrder    int       `json:"sort_order" gorm:"column:sort_order"`
	IsActive     bool      `json:"is_active" gorm:"column:is_active"`
	CreatedAt    time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt    time.Time `json:"updated_at" gorm:"column:updated_at"`
}

type ManufacturerDTO struct {
	ID          int64     `json:"id" gorm:"column:id"`
	Name        string    `json:"name" gorm:"column:name"`
	Description *string   `json:"description" gorm:"column:description"`
	LogoURL     *string   `json:"logo_url" gorm:"column:logo_url"`
	Website     *string   `json:"website" gorm:"column:website"`
	Country     *string   `json:"country" gorm:"column:country"`
	IsActive    bool      `json:"is_active" gorm:"column:is_active"`
	BrandCount  int64     `json:"brand_count" gorm:"column:brand_count"`
	CreatedAt   time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"column:updated_at"`
}

type BrandDTO struct {
	ID               int64     `json:"id" gorm:"column:id"`
	ManufacturerID   int64     `json:"manufacturer_id" gorm:"column:manufacturer_id"`
	ManufacturerName *string   `json:"manufacturer_name" gorm:"column:manufacturer_name"`
	Name             string    `json:"name" gorm:"column:name"`
	Description      *string   `json:"description" gorm:"column:description"`
	LogoURL          *string   `json:"logo_url" gorm:"column:logo_url"`
	IsActive         bool      `json:"is_active" gorm:"column:is_active"`
	CreatedAt        time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt        time.Time `json:"updated_at" gorm:"column:updated_at"`
}

// ModelDTO carries the brand and, through it, the manufacturer of a model line.
type ModelDTO struct {
	ID               int64     `json:"id" gorm:"column:id"`
	BrandID          int64     `json:"brand_id" gorm:"column:brand_id"`
	BrandName        *string   `json:"brand_name" gorm:"column:brand_name"`
	ManufacturerID   *int64    `json:"manufacturer_id" gorm:"column:manufacturer_id"`
	ManufacturerName *string   `json:"manufacturer_name" gorm:"column:manufacturer_name"`
	Name             string    `json:"name" gorm:"column:name"`
	Description      *string   `json:"description" gorm:"column:description"`
	Year             *int      `json:"year" gorm:"column:year"`
	IsActive         bool      `json:"is_active" gorm:"column:is_active"`
	CreatedAt        time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt        time.Time `json:"updated_at" gorm:"column:updated_at"`
}

// SlugAvailability answers the category slug check.
type SlugAvailability struct {
	Slug      string `json:"slug"`
	Available bool   `json:"available"`
}
