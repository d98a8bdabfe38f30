package policy

import (
	"fmt"

	"github.com/imohsin99/Bugzilla/internal/model"
)

// ProjectPolicy 项目授权策略
type ProjectPolicy struct {
	Actor   *model.UserModel
	Project *model.ProjectModel
}

// Authorize 按动作分发判定
func (p ProjectPolicy) Authorize(action Action) error {
	switch action {
	case ActionShowProject:
		return p.Show()
	case ActionCreateProject:
		return p.Create()
	case ActionEditProject, ActionDestroyProject, ActionRemoveProjectUser:
		return p.Edit()
	default:
		return fmt.Errorf("%w: 项目不支持动作 %s", model.ErrValidation, action)
	}
}

// Show 查看项目：开发者需已分配，经理需为本项目经理，测试不受限
func (p ProjectPolicy) Show() error {
	switch p.Actor.UserType {
	case model.RoleDeveloper:
		if p.Project.HasAssignedUser(p.Actor.Id) {
			return nil
		}
		return model.ErrNotAuthorized
	case model.RoleManager:
		if p.Project.ManagerId == p.Actor.Id {
			return nil
		}
		return model.ErrNotAuthorized
	case model.RoleQA:
		return nil
	default:
		return model.ErrNotAuthorized
	}
}

// Create 创建项目：仅经理
func (p ProjectPolicy) Create() error {
	switch p.Actor.UserType {
	case model.RoleManager:
		return nil
	case model.RoleDeveloper, model.RoleQA:
		return model.ErrNotAuthorized
	default:
		return model.ErrNotAuthorized
	}
}

// Edit 修改、删除、移除成员：仅本项目的经理
func (p ProjectPolicy) Edit() error {
	switch p.Actor.UserType {
	case model.RoleManager:
		if p.Project.ManagerId == p.Actor.Id {
			return nil
		}
		return model.ErrNotAuthorized
	case model.RoleDeveloper, model.RoleQA:
		return model.ErrNotAuthorized
	default:
		return model.ErrNotAuthorized
	}
}
