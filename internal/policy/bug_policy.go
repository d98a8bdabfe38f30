package policy

import (
	"fmt"

	"github.com/imohsin99/Bugzilla/internal/model"
)

// BugPolicy 缺陷授权策略，要求 Bug.Project 已预加载（含 Assignments）
type BugPolicy struct {
	Actor *model.UserModel
	Bug   *model.BugModel
}

// Authorize 按动作分发判定
func (p BugPolicy) Authorize(action Action) error {
	switch action {
	case ActionShowBug:
		return p.Show()
	case ActionCreateBug:
		return p.Create()
	case ActionEditBug, ActionDestroyBug:
		return p.Edit()
	case ActionAssignBug:
		return p.Assign()
	case ActionUpdateBugStatus:
		return p.UpdateStatus()
	default:
		return fmt.Errorf("%w: 缺陷不支持动作 %s", model.ErrValidation, action)
	}
}

// Show 查看缺陷：测试需为创建者，经理需管理所属项目，开发者需已分配到所属项目
func (p BugPolicy) Show() error {
	switch p.Actor.UserType {
	case model.RoleQA:
		if p.Bug.CreatorId == p.Actor.Id {
			return nil
		}
		return model.ErrNotAuthorized
	case model.RoleManager:
		if p.Bug.Project != nil && p.Bug.Project.ManagerId == p.Actor.Id {
			return nil
		}
		return model.ErrNotAuthorized
	case model.RoleDeveloper:
		if p.Bug.Project != nil && p.Bug.Project.HasAssignedUser(p.Actor.Id) {
			return nil
		}
		return model.ErrNotAuthorized
	default:
		return model.ErrNotAuthorized
	}
}

// Create 创建缺陷：仅测试
func (p BugPolicy) Create() error {
	switch p.Actor.UserType {
	case model.RoleQA:
		return nil
	case model.RoleManager, model.RoleDeveloper:
		return model.ErrNotAuthorized
	default:
		return model.ErrNotAuthorized
	}
}

// Edit 修改、删除缺陷：仅创建者本人（测试）
func (p BugPolicy) Edit() error {
	switch p.Actor.UserType {
	case model.RoleQA:
		if p.Bug.CreatorId == p.Actor.Id {
			return nil
		}
		return model.ErrNotAuthorized
	case model.RoleManager, model.RoleDeveloper:
		return model.ErrNotAuthorized
	default:
		return model.ErrNotAuthorized
	}
}

// Assign 认领缺陷：任意开发者，不校验项目分配关系
func (p BugPolicy) Assign() error {
	switch p.Actor.UserType {
	case model.RoleDeveloper:
		return nil
	case model.RoleManager, model.RoleQA:
		return model.ErrNotAuthorized
	default:
		return model.ErrNotAuthorized
	}
}

// UpdateStatus 变更状态：仅当前开发者本人
func (p BugPolicy) UpdateStatus() error {
	switch p.Actor.UserType {
	case model.RoleDeveloper:
		if p.Bug.IsDeveloper(p.Actor.Id) {
			return nil
		}
		return model.ErrNotAuthorized
	case model.RoleManager, model.RoleQA:
		return model.ErrNotAuthorized
	default:
		return model.ErrNotAuthorized
	}
}
