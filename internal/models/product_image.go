package models

import "time"

// ProductImage is one picture in a product's gallery.
// Image holds the file path relative to the media root.
type ProductImage struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	CreatedAt time.Time `json:"created_at" gorm:"not null;index"`
	Image     string    `json:"image" gorm:"type:varchar(255);not null"`
	ProductID string    `json:"product_id" gorm:"type:varchar(36);not null;index"`
}
