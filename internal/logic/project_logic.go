package logic

import (
	"errors"
	"fmt"

	"github.com/imohsin99/Bugzilla/internal/model"
	"github.com/imohsin99/Bugzilla/internal/policy"
	"github.com/imohsin99/Bugzilla/internal/scope"
	"gorm.io/gorm"
)

// ProjectLogic 项目业务逻辑
type ProjectLogic struct {
	db              *gorm.DB
	projectScope    *scope.ProjectScope
	assignmentLogic *AssignmentLogic
}

// NewProjectLogic 创建项目业务逻辑
func NewProjectLogic(db *gorm.DB) *ProjectLogic {
	return &ProjectLogic{
		db:              db,
		projectScope:    scope.NewProjectScope(db),
		assignmentLogic: NewAssignmentLogic(db),
	}
}

// CreateProject 创建项目，创建者即为项目经理
func (p *ProjectLogic) CreateProject(actor *model.UserModel, project *model.ProjectModel) error {
	project.ManagerId = actor.Id
	project.Manager = actor

	if err := policy.Authorize(actor, policy.ActionCreateProject, project); err != nil {
		return err
	}
	if err := p.validateProject(project); err != nil {
		return err
	}

	if err := p.db.Omit("Manager", "Assignments", "Bugs").Create(project).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("%w: 项目标题已存在", model.ErrValidation)
		}
		return fmt.Errorf("创建项目失败: %w", err)
	}

	return nil
}

// GetProjects 获取当前用户可见的项目列表
func (p *ProjectLogic) GetProjects(actor *model.UserModel) ([]model.ProjectModel, error) {
	return p.projectScope.Resolve(actor)
}

// GetProject 获取项目详情
func (p *ProjectLogic) GetProject(actor *model.UserModel, id int64) (*model.ProjectModel, error) {
	project, err := p.loadProject(id)
	if err != nil {
		return nil, err
	}

	if err := policy.Authorize(actor, policy.ActionShowProject, project); err != nil {
		return nil, err
	}

	return project, nil
}

// UpdateProject 更新项目基本信息，仅标题与描述可改
func (p *ProjectLogic) UpdateProject(actor *model.UserModel, id int64, updates map[string]interface{}) (*model.ProjectModel, error) {
	project, err := p.loadProject(id)
	if err != nil {
		return nil, err
	}

	if err := policy.Authorize(actor, policy.ActionEditProject, project); err != nil {
		return nil, err
	}

	if len(updates) == 0 {
		return project, nil
	}

	if err := p.db.Model(project).Updates(updates).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: 项目标题已存在", model.ErrValidation)
		}
		return nil, fmt.Errorf("更新项目失败: %w", err)
	}

	return project, nil
}

// DeleteProject 删除项目及其下属缺陷与分配记录，单事务执行
func (p *ProjectLogic) DeleteProject(actor *model.UserModel, id int64) error {
	project, err := p.loadProject(id)
	if err != nil {
		return err
	}

	if err := policy.Authorize(actor, policy.ActionDestroyProject, project); err != nil {
		return err
	}

	err = p.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", project.Id).Delete(&model.BugModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", project.Id).Delete(&model.AssignmentModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(project).Error
	})
	if err != nil {
		return fmt.Errorf("删除项目失败: %w", err)
	}

	return nil
}

// AssignUsers 批量分配用户到项目，经理角色会被整体拒绝
func (p *ProjectLogic) AssignUsers(actor *model.UserModel, projectId int64, userIds []int64) ([]model.AssignmentModel, []RejectedUser, error) {
	project, err := p.loadProject(projectId)
	if err != nil {
		return nil, nil, err
	}

	if err := policy.Authorize(actor, policy.ActionEditProject, project); err != nil {
		return nil, nil, err
	}

	return p.assignmentLogic.AssignUsers(project, userIds)
}

// RemoveUser 将成员移出项目，并级联清空其在本项目缺陷上的开发者引用
func (p *ProjectLogic) RemoveUser(actor *model.UserModel, projectId, assignmentId int64) error {
	project, err := p.loadProject(projectId)
	if err != nil {
		return err
	}

	if err := policy.Authorize(actor, policy.ActionRemoveProjectUser, project); err != nil {
		return err
	}

	var assignment model.AssignmentModel
	err = p.db.Where("id = ? AND project_id = ?", assignmentId, project.Id).First(&assignment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.ErrNotFound
		}
		return fmt.Errorf("获取分配记录失败: %w", err)
	}

	return p.assignmentLogic.RemoveAssignment(project, &assignment)
}

// loadProject 加载项目及授权所需关联
func (p *ProjectLogic) loadProject(id int64) (*model.ProjectModel, error) {
	var project model.ProjectModel
	err := p.db.Preload("Manager").
		Preload("Assignments").
		Preload("Assignments.User").
		First(&project, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("获取项目详情失败: %w", err)
	}
	return &project, nil
}

// validateProject 校验项目数据
func (p *ProjectLogic) validateProject(project *model.ProjectModel) error {
	if project.Title == "" {
		return fmt.Errorf("%w: 项目标题不能为空", model.ErrValidation)
	}
	if project.Description == "" {
		return fmt.Errorf("%w: 项目描述不能为空", model.ErrValidation)
	}
	if project.Manager != nil && project.Manager.UserType != model.RoleManager {
		return fmt.Errorf("%w: 项目经理角色必须为 manager", model.ErrValidation)
	}
	return nil
}
