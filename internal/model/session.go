package model

import (
	"time"
)

// SessionModel 登录会话
type SessionModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Token     string    `json:"token" gorm:"uniqueIndex;not null"`
	UserId    int64     `json:"user_id" gorm:"not null;index"`
	ExpiresAt time.Time `json:"expires_at" gorm:"not null"`

	// 关联
	User *UserModel `json:"user,omitempty" gorm:"foreignKey:UserId"`
}

// TableName 自定义表名
func (SessionModel) TableName() string {
	return "session"
}

// Expired 会话是否已过期
func (s *SessionModel) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
