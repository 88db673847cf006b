package models

import "time"

type Product struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `json:"name" validate:"required"`
	Slug        string    `gorm:"uniqueIndex" json:"slug"`
	Description string    `json:"description"`
	Price       int64     `json:"price" validate:"gte=0"` // smallest currency unit
	ImageURL    string    `json:"image_url"`
	Stock       uint      `json:"stock"`
	Rating      float64   `gorm:"default:0" json:"rating"`
	CategoryID  uint      `json:"category_id" validate:"required"`
	IsActive    bool      `gorm:"default:true" json:"is_active"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
	Category    Category  `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Reviews     []Review  `gorm:"foreignKey:ProductID" json:"reviews,omitempty"`
}
