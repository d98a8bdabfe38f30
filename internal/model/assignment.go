package model

import (
	"time"
)

// AssignmentModel 项目成员分配，存在即表示该用户可参与项目下的缺陷
type AssignmentModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	UserId    int64 `json:"user_id" gorm:"not null;index:idx_assignment_user_project,unique"`
	ProjectId int64 `json:"project_id" gorm:"not null;index:idx_assignment_user_project,unique"`

	// 关联
	User    *UserModel    `json:"user,omitempty" gorm:"foreignKey:UserId"`
	Project *ProjectModel `json:"project,omitempty" gorm:"foreignKey:ProjectId"`
}

// TableName 自定义表名
func (AssignmentModel) TableName() string {
	return "assignment"
}
