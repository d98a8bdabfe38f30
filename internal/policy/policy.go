package policy

import (
	"fmt"

	"github.com/imohsin99/Bugzilla/internal/model"
)

// Action 授权动作
type Action string

const (
	ActionShowProject       Action = "project.show"
	ActionCreateProject     Action = "project.create"
	ActionEditProject       Action = "project.edit"
	ActionDestroyProject    Action = "project.destroy"
	ActionRemoveProjectUser Action = "project.remove_user"

	ActionShowBug         Action = "bug.show"
	ActionCreateBug       Action = "bug.create"
	ActionEditBug         Action = "bug.edit"
	ActionDestroyBug      Action = "bug.destroy"
	ActionAssignBug       Action = "bug.assign"
	ActionUpdateBugStatus Action = "bug.update_status"
)

// Authorize 对目标实体执行授权判定，判定为纯函数，不访问存储。
// 允许返回 nil，拒绝返回 model.ErrNotAuthorized。
// 项目动作要求预加载 Assignments，缺陷动作要求预加载 Project 及其 Assignments。
func Authorize(actor *model.UserModel, action Action, target interface{}) error {
	switch t := target.(type) {
	case *model.ProjectModel:
		return ProjectPolicy{Actor: actor, Project: t}.Authorize(action)
	case *model.BugModel:
		return BugPolicy{Actor: actor, Bug: t}.Authorize(action)
	default:
		return fmt.Errorf("%w: 不支持的授权目标 %T", model.ErrValidation, target)
	}
}
