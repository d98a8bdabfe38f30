package scope

import (
	"fmt"

	"github.com/imohsin99/Bugzilla/internal/model"
	"gorm.io/gorm"
)

// BugScope 缺陷可见范围解析，需要项目上下文
type BugScope struct {
	db *gorm.DB
}

// NewBugScope 创建缺陷范围解析器
func NewBugScope(db *gorm.DB) *BugScope {
	return &BugScope{db: db}
}

// Resolve 解析当前用户在指定项目下可见的缺陷列表。
// 开发者必须已分配到项目，经理必须为项目经理，测试不受限；
// 越权访问返回 ErrNotAuthorized，与空结果严格区分。
func (s *BugScope) Resolve(actor *model.UserModel, project *model.ProjectModel) ([]model.BugModel, error) {
	if err := s.check(actor, project); err != nil {
		return nil, err
	}

	var bugs []model.BugModel
	err := s.db.Preload("Creator").Preload("Developer").
		Where("project_id = ?", project.Id).
		Find(&bugs).Error
	if err != nil {
		return nil, fmt.Errorf("获取缺陷列表失败: %w", err)
	}

	return bugs, nil
}

// check 范围准入校验
func (s *BugScope) check(actor *model.UserModel, project *model.ProjectModel) error {
	switch actor.UserType {
	case model.RoleDeveloper:
		var count int64
		err := s.db.Model(&model.AssignmentModel{}).
			Where("user_id = ? AND project_id = ?", actor.Id, project.Id).
			Count(&count).Error
		if err != nil {
			return fmt.Errorf("校验项目分配关系失败: %w", err)
		}
		if count == 0 {
			return model.ErrNotAuthorized
		}
		return nil
	case model.RoleManager:
		if project.ManagerId != actor.Id {
			return model.ErrNotAuthorized
		}
		return nil
	case model.RoleQA:
		return nil
	default:
		return model.ErrNotAuthorized
	}
}
