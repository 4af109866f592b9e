package models

import "time"

// Category is the top level of the product taxonomy.
type Category struct {
	ID          int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Name        string    `gorm:"column:name;not null"`
	Slug        string    `gorm:"column:slug;not null;uniqueIndex"`
	Description *string   `gorm:"column:description"`
	ImageURL    *string   `gorm:"column:image_url"`
	SortOrder   int       `gorm:"column:sort_order;not null"`
	IsActive    bool      `gorm:"column:is_active;not null"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (Category) TableName() string { return "categories" }

// Subcategory narrows a Category; its slug is unique within the parent.
type Subcategory struct {
	ID          int64     `gorm:"column:id;primaryKey;autoIncrement"`
	CategoryID  int64     `gorm:"column:category_id;not null"`
	Name        string    `gorm:"column:name;not null"`
	Slug        string    `gorm:"column:slug;not null"`
	Description *string   `gorm:"column:description"`
	ImageURL    *string   `gorm:"column:image_url"`
	SortOrder   int       `gorm:"column:sort_order;not null"`
	IsActive    bool      `gorm:"column:is_active;not null"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (Subcategory) TableName() string { return "subcategories" }

// Manufacturer owns one or more brands.
type Manufacturer struct {
	ID          int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Name        string    `gorm:"column:name;not null"`
	Description *string   `gorm:"column:description"`
	LogoURL     *string   `gorm:"column:logo_url"`
	Website     *string   `gorm:"column:website"`
	Country     *string   `gorm:"column:country"`
	IsActive    bool      `gorm:"column:is_active;not null"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (Manufacturer) TableName() string { return "manufacturers" }

// Brand belongs to a Manufacturer.
type Brand struct {
	ID             int64     `gorm:"column:id;primaryKey;autoIncrement"`
	ManufacturerID int64     `gorm:"column:manufacturer_id;not null"`
	Name           string    `gorm:"column:name;not null"`
	Description    *string   `gorm:"column:description"`
	LogoURL        *string   `gorm:"column:logo_url"`
	IsActive       bool      `gorm:"column:is_active;not null"`
	CreatedAt      time.Time `gorm:"column:created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at"`
}

func (Brand) TableName() string { return "brands" }

// EquipmentModel is a concrete model line of a Brand (table "models").
type EquipmentModel struct {
	ID          int64     `gorm:"column:id;primaryKey;autoIncrement"`
	BrandID     int64     `gorm:"column:brand_id;not null"`
	Name        string    `gorm:"column:name;not null"`
	Description *string   `gorm:"column:description"`
	Year        *int      `gorm:"column:year"`
	IsActive    bool      `gorm:"column:is_active;not null"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (EquipmentModel) TableName() string { return "models" }
