package logic

import (
	"errors"
	"fmt"

	"github.com/imohsin99/Bugzilla/internal/model"
	"github.com/imohsin99/Bugzilla/internal/policy"
	"github.com/imohsin99/Bugzilla/internal/scope"
	"github.com/imohsin99/Bugzilla/internal/workflow"
	"gorm.io/gorm"
)

// BugLogic 缺陷业务逻辑
type BugLogic struct {
	db              *gorm.DB
	bugScope        *scope.BugScope
	assignmentLogic *AssignmentLogic
}

// NewBugLogic 创建缺陷业务逻辑
func NewBugLogic(db *gorm.DB) *BugLogic {
	return &BugLogic{
		db:              db,
		bugScope:        scope.NewBugScope(db),
		assignmentLogic: NewAssignmentLogic(db),
	}
}

// CreateBug 上报缺陷，创建者即当前用户，状态强制为 fresh
func (b *BugLogic) CreateBug(actor *model.UserModel, projectId int64, bug *model.BugModel) error {
	project, err := b.loadProject(projectId)
	if err != nil {
		return err
	}

	bug.ProjectId = project.Id
	bug.Project = project
	bug.CreatorId = actor.Id
	bug.Creator = actor
	bug.Status = model.StatusFresh
	bug.DeveloperId = nil

	if err := policy.Authorize(actor, policy.ActionCreateBug, bug); err != nil {
		return err
	}
	if err := b.validateBug(bug); err != nil {
		return err
	}

	if err := b.db.Omit("Project", "Creator", "Developer").Create(bug).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("%w: 缺陷标题已存在", model.ErrValidation)
		}
		return fmt.Errorf("创建缺陷失败: %w", err)
	}

	return nil
}

// GetBugs 获取当前用户在指定项目下可见的缺陷列表
func (b *BugLogic) GetBugs(actor *model.UserModel, projectId int64) ([]model.BugModel, error) {
	project, err := b.loadProject(projectId)
	if err != nil {
		return nil, err
	}
	return b.bugScope.Resolve(actor, project)
}

// GetBug 获取缺陷详情
func (b *BugLogic) GetBug(actor *model.UserModel, projectId, bugId int64) (*model.BugModel, error) {
	bug, err := b.loadBug(projectId, bugId)
	if err != nil {
		return nil, err
	}

	if err := policy.Authorize(actor, policy.ActionShowBug, bug); err != nil {
		return nil, err
	}

	return bug, nil
}

// UpdateBug 更新缺陷基本信息，状态与人员引用不在此处变更
func (b *BugLogic) UpdateBug(actor *model.UserModel, projectId, bugId int64, updates map[string]interface{}) (*model.BugModel, error) {
	bug, err := b.loadBug(projectId, bugId)
	if err != nil {
		return nil, err
	}

	if err := policy.Authorize(actor, policy.ActionEditBug, bug); err != nil {
		return nil, err
	}

	if t, ok := updates["bug_type"]; ok {
		if bt, ok := t.(model.BugType); !ok || !bt.Valid() {
			return nil, fmt.Errorf("%w: 缺陷类别必须为 feature 或 bug", model.ErrValidation)
		}
	}
	if ct, ok := updates["screenshot_type"]; ok {
		if s, ok := ct.(string); ok && s != "" && !model.ValidScreenshotType(s) {
			return nil, fmt.Errorf("%w: 截图必须为 png 或 gif", model.ErrValidation)
		}
	}

	if len(updates) == 0 {
		return bug, nil
	}

	if err := b.db.Model(bug).Updates(updates).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: 缺陷标题已存在", model.ErrValidation)
		}
		return nil, fmt.Errorf("更新缺陷失败: %w", err)
	}

	return bug, nil
}

// DeleteBug 删除缺陷
func (b *BugLogic) DeleteBug(actor *model.UserModel, projectId, bugId int64) error {
	bug, err := b.loadBug(projectId, bugId)
	if err != nil {
		return err
	}

	if err := policy.Authorize(actor, policy.ActionDestroyBug, bug); err != nil {
		return err
	}

	if err := b.db.Delete(bug).Error; err != nil {
		return fmt.Errorf("删除缺陷失败: %w", err)
	}

	return nil
}

// AssignBug 开发者认领缺陷，认领人即当前用户
func (b *BugLogic) AssignBug(actor *model.UserModel, projectId, bugId int64) (*model.BugModel, error) {
	bug, err := b.loadBug(projectId, bugId)
	if err != nil {
		return nil, err
	}

	if err := policy.Authorize(actor, policy.ActionAssignBug, bug); err != nil {
		return nil, err
	}

	if err := b.assignmentLogic.AssignDeveloper(bug, actor); err != nil {
		return nil, err
	}

	return bug, nil
}

// UpdateStatus 变更缺陷状态，授权通过后由状态机校验合法性
func (b *BugLogic) UpdateStatus(actor *model.UserModel, projectId, bugId int64, requested model.BugStatus) (*model.BugModel, error) {
	bug, err := b.loadBug(projectId, bugId)
	if err != nil {
		return nil, err
	}

	if err := policy.Authorize(actor, policy.ActionUpdateBugStatus, bug); err != nil {
		return nil, err
	}

	if err := workflow.Transition(bug, requested); err != nil {
		return nil, err
	}

	if err := b.db.Model(bug).Update("status", bug.Status).Error; err != nil {
		return nil, fmt.Errorf("更新缺陷状态失败: %w", err)
	}

	return bug, nil
}

// loadProject 加载项目及授权所需关联
func (b *BugLogic) loadProject(id int64) (*model.ProjectModel, error) {
	var project model.ProjectModel
	err := b.db.Preload("Assignments").First(&project, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("获取项目详情失败: %w", err)
	}
	return &project, nil
}

// loadBug 在项目上下文内加载缺陷，项目不匹配视为不存在
func (b *BugLogic) loadBug(projectId, bugId int64) (*model.BugModel, error) {
	var bug model.BugModel
	err := b.db.Preload("Project").
		Preload("Project.Assignments").
		Preload("Creator").
		Preload("Developer").
		Where("id = ? AND project_id = ?", bugId, projectId).
		First(&bug).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("获取缺陷详情失败: %w", err)
	}
	return &bug, nil
}

// validateBug 校验缺陷数据
func (b *BugLogic) validateBug(bug *model.BugModel) error {
	if bug.Title == "" {
		return fmt.Errorf("%w: 缺陷标题不能为空", model.ErrValidation)
	}
	if bug.Deadline.IsZero() {
		return fmt.Errorf("%w: 缺陷截止时间不能为空", model.ErrValidation)
	}
	if !bug.BugType.Valid() {
		return fmt.Errorf("%w: 缺陷类别必须为 feature 或 bug", model.ErrValidation)
	}
	if bug.ScreenshotType != "" && !model.ValidScreenshotType(bug.ScreenshotType) {
		return fmt.Errorf("%w: 截图必须为 png 或 gif", model.ErrValidation)
	}
	if bug.Creator != nil && bug.Creator.UserType != model.RoleQA {
		return fmt.Errorf("%w: 缺陷创建者角色必须为 qa", model.ErrValidation)
	}
	return nil
}
