package model

import (
	"fmt"
	"time"
)

// Role 用户角色
type Role int

const (
	RoleManager   Role = 0 // 项目经理
	RoleDeveloper Role = 1 // 开发人员
	RoleQA        Role = 2 // 测试人员
)

// Valid 角色是否合法
func (r Role) Valid() bool {
	switch r {
	case RoleManager, RoleDeveloper, RoleQA:
		return true
	default:
		return false
	}
}

// String 角色名称
func (r Role) String() string {
	switch r {
	case RoleManager:
		return "manager"
	case RoleDeveloper:
		return "developer"
	case RoleQA:
		return "qa"
	default:
		return fmt.Sprintf("role(%d)", int(r))
	}
}

// ParseRole 解析角色名称
func ParseRole(s string) (Role, error) {
	switch s {
	case "manager":
		return RoleManager, nil
	case "developer":
		return RoleDeveloper, nil
	case "qa":
		return RoleQA, nil
	default:
		return 0, fmt.Errorf("%w: 未知的用户角色 %q", ErrValidation, s)
	}
}

// UserModel 用户模型
type UserModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// 基本信息
	Name         string `json:"name" gorm:"not null" binding:"required"`
	Email        string `json:"email" gorm:"uniqueIndex;not null" binding:"required,email"`
	PasswordHash string `json:"-" gorm:"not null"`

	// 角色创建后不可变更
	UserType Role `json:"user_type" gorm:"not null;default:0"`
}

// TableName 自定义表名
func (UserModel) TableName() string {
	return "user"
}

// NameWithEmail 展示名称
func (u *UserModel) NameWithEmail() string {
	return fmt.Sprintf("%s (%s)", u.Email, u.UserType)
}
