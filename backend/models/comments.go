package models

import "time"

// Comment хранится в одной таблице: ответы ссылаются на родителя через ParentID,
// у корневых комментариев ParentID = NULL.
type Comment struct {
	ID        uint   `gorm:"primarykey"`
	Text      string `gorm:"size:1000;not null"`
	Flagged   bool   `gorm:"default:false"` // выставляется один раз при создании, снимается модератором
	PageID    uint   `gorm:"index;not null"`
	UserID    uint   `gorm:"not null"`
	ParentID  *uint  `gorm:"index"`
	CreatedAt time.Time
	User      User
	Page      Page
	Replies   []Comment `gorm:"foreignKey:ParentID"`
}
