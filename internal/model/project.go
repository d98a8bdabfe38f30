package model

import (
	"time"
)

// ProjectModel 项目模型
type ProjectModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// 基本信息
	Title       string `json:"title" gorm:"uniqueIndex;not null" binding:"required"`
	Description string `json:"description" gorm:"type:text;not null" binding:"required"`

	// 项目经理，角色必须为 manager
	ManagerId int64 `json:"manager_id" gorm:"not null"`

	// 关联
	Manager     *UserModel        `json:"manager,omitempty" gorm:"foreignKey:ManagerId"`
	Assignments []AssignmentModel `json:"assignments,omitempty" gorm:"foreignKey:ProjectId"`
	Bugs        []BugModel        `json:"bugs,omitempty" gorm:"foreignKey:ProjectId"`
}

// TableName 自定义表名
func (ProjectModel) TableName() string {
	return "project"
}

// HasAssignedUser 用户是否已分配到本项目（基于预加载的 Assignments）
func (p *ProjectModel) HasAssignedUser(userId int64) bool {
	for _, a := range p.Assignments {
		if a.UserId == userId {
			return true
		}
	}
	return false
}
