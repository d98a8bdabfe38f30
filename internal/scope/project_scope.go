package scope

import (
	"fmt"

	"github.com/imohsin99/Bugzilla/internal/model"
	"gorm.io/gorm"
)

// ProjectScope 项目可见范围解析
type ProjectScope struct {
	db *gorm.DB
}

// NewProjectScope 创建项目范围解析器
func NewProjectScope(db *gorm.DB) *ProjectScope {
	return &ProjectScope{db: db}
}

// Resolve 解析当前用户可见的项目列表：
// 经理看自己管理的项目，测试看全部，开发者看已分配的项目
func (s *ProjectScope) Resolve(actor *model.UserModel) ([]model.ProjectModel, error) {
	var projects []model.ProjectModel

	switch actor.UserType {
	case model.RoleManager:
		if err := s.db.Where("manager_id = ?", actor.Id).Find(&projects).Error; err != nil {
			return nil, fmt.Errorf("获取项目列表失败: %w", err)
		}
	case model.RoleQA:
		if err := s.db.Find(&projects).Error; err != nil {
			return nil, fmt.Errorf("获取项目列表失败: %w", err)
		}
	case model.RoleDeveloper:
		err := s.db.Joins("JOIN assignment ON assignment.project_id = project.id").
			Where("assignment.user_id = ?", actor.Id).
			Find(&projects).Error
		if err != nil {
			return nil, fmt.Errorf("获取项目列表失败: %w", err)
		}
	default:
		return nil, model.ErrNotAuthorized
	}

	return projects, nil
}
