package logic

import (
	"fmt"

	"github.com/imohsin99/Bugzilla/internal/model"
	"gorm.io/gorm"
)

// AssignmentLogic 项目成员分配业务逻辑
type AssignmentLogic struct {
	db *gorm.DB
}

// NewAssignmentLogic 创建分配业务逻辑
func NewAssignmentLogic(db *gorm.DB) *AssignmentLogic {
	return &AssignmentLogic{db: db}
}

// RejectedUser 批量分配中被拒绝的候选人及原因
type RejectedUser struct {
	UserId int64
	Reason error
}

// AssignUsers 批量分配用户到项目。
// 先校验后写入：经理角色的候选人整体拒绝，已分配的跳过，
// 合法子集在单事务内写入，不存在部分写入后回滚的情况。
func (l *AssignmentLogic) AssignUsers(project *model.ProjectModel, userIds []int64) ([]model.AssignmentModel, []RejectedUser, error) {
	if len(userIds) == 0 {
		return nil, nil, nil
	}

	var users []model.UserModel
	if err := l.db.Where("id IN ?", userIds).Find(&users).Error; err != nil {
		return nil, nil, fmt.Errorf("获取候选用户失败: %w", err)
	}

	var existing []model.AssignmentModel
	err := l.db.Where("project_id = ? AND user_id IN ?", project.Id, userIds).Find(&existing).Error
	if err != nil {
		return nil, nil, fmt.Errorf("获取已有分配失败: %w", err)
	}
	assigned := make(map[int64]bool, len(existing))
	for _, a := range existing {
		assigned[a.UserId] = true
	}

	var (
		toCreate []model.AssignmentModel
		rejected []RejectedUser
	)
	for _, u := range users {
		if assigned[u.Id] {
			continue
		}
		if u.UserType == model.RoleManager {
			rejected = append(rejected, RejectedUser{
				UserId: u.Id,
				Reason: fmt.Errorf("%w: 经理角色不能分配到项目", model.ErrValidation),
			})
			continue
		}
		toCreate = append(toCreate, model.AssignmentModel{
			UserId:    u.Id,
			ProjectId: project.Id,
		})
	}

	if len(toCreate) > 0 {
		err = l.db.Transaction(func(tx *gorm.DB) error {
			return tx.Create(&toCreate).Error
		})
		if err != nil {
			return nil, rejected, fmt.Errorf("写入分配记录失败: %w", err)
		}
	}

	return toCreate, rejected, nil
}

// AssignDeveloper 将开发者指派到缺陷，调用方必须已通过认领授权
func (l *AssignmentLogic) AssignDeveloper(bug *model.BugModel, developer *model.UserModel) error {
	if developer.UserType != model.RoleDeveloper {
		return fmt.Errorf("%w: 缺陷开发者角色必须为 developer", model.ErrValidation)
	}

	if err := l.db.Model(bug).Update("developer_id", developer.Id).Error; err != nil {
		return fmt.Errorf("指派开发者失败: %w", err)
	}

	bug.DeveloperId = &developer.Id
	bug.Developer = developer
	return nil
}

// RemoveAssignment 删除分配记录，并清空该用户在本项目所有缺陷上的开发者引用。
// 级联与删除在同一事务内完成，任一步失败则整体不生效。
func (l *AssignmentLogic) RemoveAssignment(project *model.ProjectModel, assignment *model.AssignmentModel) error {
	err := l.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(assignment).Error; err != nil {
			return err
		}
		return tx.Model(&model.BugModel{}).
			Where("project_id = ? AND developer_id = ?", project.Id, assignment.UserId).
			Update("developer_id", nil).Error
	})
	if err != nil {
		return fmt.Errorf("移除项目成员失败: %w", err)
	}

	return nil
}
