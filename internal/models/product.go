package models

import "gorm.io/gorm"

// Product represents a product in the catalog.
type Product struct {
	ID             string   `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name           string   `json:"name" validate:"required,min=3,max=100"`
	Category       string   `json:"category" validate:"required,max=100"`
	Price          float64  `json:"price" validate:"required,gt=0"`
	OriginalPrice  float64  `json:"originalPrice" validate:"omitempty,gte=0"`
	Discount       int      `json:"discount" validate:"gte=0,lte=100"` // percentage
	Description    string   `json:"description" validate:"omitempty,max=500"`
	Specifications []string `json:"specifications" gorm:"serializer:json"`
	Images         []string `json:"images" gorm:"serializer:json"`
	Colors         []string `json:"colors" gorm:"serializer:json"`
	InStock        int      `json:"inStock" validate:"gte=0"`
	gorm.Model              // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}

// Catalog maps product IDs to products. Cart totals and order snapshots are
// computed against it; lookups on unknown IDs are expected and never an error.
type Catalog map[string]Product
