package models

import "time"

type Review struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"index" json:"user_id"`
	ProductID   uint      `gorm:"index" json:"product_id"`
	Comment     string    `json:"comment"`
	CommentDate time.Time `json:"comment_date"`
	Grade       int       `json:"grade" validate:"required,min=1,max=5"`
	IsActive    bool      `gorm:"default:true" json:"is_active"`
}
