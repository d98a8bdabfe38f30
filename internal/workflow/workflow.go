package workflow

import (
	"fmt"

	"github.com/imohsin99/Bugzilla/internal/model"
)

// 状态机：fresh → started → {completed | resolved}，终态按类别二选一。
// 类别合法状态表收敛在这里，是"该变更是否合法"的唯一权威。

// LegalStatuses 指定类别允许手动设置的状态集合。
// fresh 为创建时的自动初始状态，永远不是合法的手动目标。
func LegalStatuses(bugType model.BugType) []model.BugStatus {
	switch bugType {
	case model.BugTypeFeature:
		return []model.BugStatus{model.StatusStarted, model.StatusCompleted}
	case model.BugTypeBug:
		return []model.BugStatus{model.StatusStarted, model.StatusResolved}
	default:
		return nil
	}
}

// ValidateTransition 校验状态变更是否合法
func ValidateTransition(bug *model.BugModel, requested model.BugStatus) error {
	if !requested.Valid() {
		return fmt.Errorf("%w: 状态值 %d 不在枚举范围内", model.ErrInvalidTransition, int(requested))
	}
	for _, s := range LegalStatuses(bug.BugType) {
		if s == requested {
			return nil
		}
	}
	return fmt.Errorf("%w: 类别 %s 的缺陷不允许设置为 %s", model.ErrInvalidTransition, bug.BugType, requested)
}

// Transition 校验并更新状态，状态之外的字段不做任何变更
func Transition(bug *model.BugModel, requested model.BugStatus) error {
	if err := ValidateTransition(bug, requested); err != nil {
		return err
	}
	bug.Status = requested
	return nil
}
