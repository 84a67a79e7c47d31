package models

import "time"

// Category groups products. It cannot be deleted while products reference it.
type Category struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	CreatedAt time.Time `json:"created_at" gorm:"not null"`
	Name      string    `json:"name" gorm:"type:varchar(20);not null" validate:"max=20"`
}
