package models

import "time"

type User struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	FirstName  string    `json:"first_name" validate:"required"`
	LastName   string    `json:"last_name" validate:"required"`
	Username   string    `gorm:"uniqueIndex" json:"username" validate:"required"`
	Email      string    `gorm:"uniqueIndex" json:"email" validate:"required,email"`
	Password   string    `json:"-"`
	IsAdmin    bool      `gorm:"default:false" json:"is_admin"`
	IsCustomer bool      `gorm:"default:true" json:"is_customer"`
	IsActive   bool      `gorm:"default:true" json:"is_active"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
	Reviews    []Review  `gorm:"foreignKey:UserID" json:"reviews,omitempty"`
}
