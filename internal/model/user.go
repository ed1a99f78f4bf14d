package model

import "time"

// User 身份由外部系统签发，这里只维护展示资料
type User struct {
	ID        uint64    `gorm:"primaryKey"`
	Nickname  string    `gorm:"type:varchar(32);not null" json:"nickname"`
	AvatarURL string    `gorm:"type:varchar(255)" json:"avatar_url"`
	Bio       string    `gorm:"type:varchar(200)" json:"bio"`
	CreatedAt time.Time `json:"created_at"`
}

func (User) TableName() string {
	return "users"
}
