package models

import "time"

type Category struct {
	ID        uint   `gorm:"primarykey"`
	Name      string `gorm:"unique;not null"`
	CreatedAt time.Time
	Pages     []Page
}

type Page struct {
	ID          uint   `gorm:"primarykey"`
	Title       string `gorm:"not null"`
	Content     string `gorm:"type:text;not null"`
	ImagePath   string `gorm:"not null"`
	CategoryID  uint   `gorm:"index;not null"`
	CreatedByID uint   `gorm:"not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Category    Category
	CreatedBy   User
	Comments    []Comment
}
