package models

import "time"

type User struct {
	ID           uint   `gorm:"primarykey"`
	Name         string `gorm:"not null"`
	Email        string `gorm:"unique;not null"`
	PasswordHash string `gorm:"not null"`
	Role         string `gorm:"default:USER"` // USER, MODER, ADMIN
	IsDeleted    bool   `gorm:"default:false"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	Comments     []Comment
}
