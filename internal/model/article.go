package model

import (
	"time"
)

type Article struct {
	ID         uint64    `gorm:"primaryKey"`
	UserID     uint64    `gorm:"not null;index:idx_user_id" json:"user_id"`
	Title      string    `gorm:"type:varchar(255)" json:"title"`
	Slug       string    `gorm:"type:varchar(255);uniqueIndex:idx_slug" json:"slug"`
	Content    string    `gorm:"not null" json:"content"`
	Views      int64     `gorm:"not null;default:0" json:"views"`
	LikesCount int64     `gorm:"not null;default:0" json:"likes_count"` // 冗余字段，读路径校准
	Published  bool      `gorm:"type:tinyint(1);not null;default:0" json:"published"`
	IsDeleted  bool      `gorm:"type:tinyint(1);not null;default:0" json:"is_deleted"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	// 关联关系
	User User `gorm:"foreignKey:UserID;references:ID"`
}

func (Article) TableName() string {
	return "articles"
}
