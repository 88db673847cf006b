package models

import "time"

type Category struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Name      string     `json:"name" validate:"required"`
	Slug      string     `gorm:"uniqueIndex" json:"slug"`
	ParentID  *uint      `gorm:"index" json:"parent_id"` // nil for root categories
	IsActive  bool       `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
	Products  []Product  `gorm:"foreignKey:CategoryID" json:"products,omitempty"`
	Children  []Category `gorm:"foreignKey:ParentID" json:"children,omitempty"`
}
