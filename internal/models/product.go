package models

import "time"

// Product represents a sellable item in the catalog.
// The pair (CategoryID, Name) is unique.
type Product struct {
	ID         string         `json:"id" gorm:"primaryKey;type:varchar(36)"`
	CreatedAt  time.Time      `json:"created_at" gorm:"not null"`
	CategoryID string         `json:"category_id" gorm:"type:varchar(36);not null;uniqueIndex:idx_product_category_name" validate:"required"`
	Category   *Category      `json:"category,omitempty" gorm:"foreignKey:CategoryID;constraint:OnDelete:RESTRICT"`
	Name       string         `json:"name" gorm:"type:varchar(100);not null;uniqueIndex:idx_product_category_name" validate:"max=100"`
	Price      int64          `json:"price" gorm:"not null" validate:"gte=0"`
	Images     []ProductImage `json:"images" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}
