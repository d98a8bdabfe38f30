package logic

import (
	"errors"
	"testing"

	"github.com/imohsin99/Bugzilla/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestAssignUsersRejectsManager(t *testing.T) {
	db := setupTestDB(t)
	m1 := createUser(t, db, "m1@example.com", model.RoleManager)
	m2 := createUser(t, db, "m2@example.com", model.RoleManager)
	dev := createUser(t, db, "dev@example.com", model.RoleDeveloper)
	qa := createUser(t, db, "qa@example.com", model.RoleQA)
	alpha := createProject(t, db, "Alpha", m1)

	created, rejected, err := NewAssignmentLogic(db).AssignUsers(alpha, []int64{m2.Id, dev.Id, qa.Id})
	require.NoError(t, err)

	// 合法子集写入，经理被整体拒绝
	assert.Len(t, created, 2)
	require.Len(t, rejected, 1)
	assert.Equal(t, m2.Id, rejected[0].UserId)
	assert.ErrorIs(t, rejected[0].Reason, model.ErrValidation)

	var count int64
	require.NoError(t, db.Model(&model.AssignmentModel{}).Where("project_id = ?", alpha.Id).Count(&count).Error)
	assert.EqualValues(t, 2, count)

	var managerCount int64
	require.NoError(t, db.Model(&model.AssignmentModel{}).
		Where("project_id = ? AND user_id = ?", alpha.Id, m2.Id).Count(&managerCount).Error)
	assert.EqualValues(t, 0, managerCount)
}

func TestAssignUsersSkipsAlreadyAssignedAndUnknown(t *testing.T) {
	db := setupTestDB(t)
	m1 := createUser(t, db, "m1@example.com", model.RoleManager)
	dev := createUser(t, db, "dev@example.com", model.RoleDeveloper)
	alpha := createProject(t, db, "Alpha", m1)
	assignUser(t, db, dev, alpha)

	created, rejected, err := NewAssignmentLogic(db).AssignUsers(alpha, []int64{dev.Id, 9999})
	require.NoError(t, err)
	assert.Empty(t, created)
	assert.Empty(t, rejected)

	var count int64
	require.NoError(t, db.Model(&model.AssignmentModel{}).Where("project_id = ?", alpha.Id).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestAssignDeveloperRequiresDeveloperRole(t *testing.T) {
	db := setupTestDB(t)
	m1 := createUser(t, db, "m1@example.com", model.RoleManager)
	qa := createUser(t, db, "qa@example.com", model.RoleQA)
	dev := createUser(t, db, "dev@example.com", model.RoleDeveloper)
	alpha := createProject(t, db, "Alpha", m1)
	bug := createBug(t, db, "b1", alpha, qa, nil)

	err := NewAssignmentLogic(db).AssignDeveloper(bug, qa)
	assert.ErrorIs(t, err, model.ErrValidation)
	assert.Nil(t, reloadBug(t, db, bug.Id).DeveloperId)

	require.NoError(t, NewAssignmentLogic(db).AssignDeveloper(bug, dev))
	reloaded := reloadBug(t, db, bug.Id)
	require.NotNil(t, reloaded.DeveloperId)
	assert.Equal(t, dev.Id, *reloaded.DeveloperId)
}

func TestRemoveAssignmentCascade(t *testing.T) {
	db := setupTestDB(t)
	m1 := createUser(t, db, "m1@example.com", model.RoleManager)
	qa := createUser(t, db, "qa@example.com", model.RoleQA)
	dev := createUser(t, db, "dev@example.com", model.RoleDeveloper)
	alpha := createProject(t, db, "Alpha", m1)
	beta := createProject(t, db, "Beta", m1)
	assignment := assignUser(t, db, dev, alpha)
	assignUser(t, db, dev, beta)

	// dev 在 Alpha 下是两个缺陷的开发者，在 Beta 下还有一个
	b1 := createBug(t, db, "b1", alpha, qa, dev)
	b2 := createBug(t, db, "b2", alpha, qa, dev)
	b3 := createBug(t, db, "b3", beta, qa, dev)

	require.NoError(t, NewAssignmentLogic(db).RemoveAssignment(alpha, assignment))

	// 分配记录删除，本项目缺陷的开发者引用清空，缺陷本身保留
	var count int64
	require.NoError(t, db.Model(&model.AssignmentModel{}).Where("id = ?", assignment.Id).Count(&count).Error)
	assert.EqualValues(t, 0, count)

	assert.Nil(t, reloadBug(t, db, b1.Id).DeveloperId)
	assert.Nil(t, reloadBug(t, db, b2.Id).DeveloperId)

	// 其他项目的缺陷不受影响
	require.NotNil(t, reloadBug(t, db, b3.Id).DeveloperId)
	assert.Equal(t, dev.Id, *reloadBug(t, db, b3.Id).DeveloperId)
}

func TestRemoveAssignmentAtomic(t *testing.T) {
	db := setupTestDB(t)
	m1 := createUser(t, db, "m1@example.com", model.RoleManager)
	qa := createUser(t, db, "qa@example.com", model.RoleQA)
	dev := createUser(t, db, "dev@example.com", model.RoleDeveloper)
	alpha := createProject(t, db, "Alpha", m1)
	assignment := assignUser(t, db, dev, alpha)
	bug := createBug(t, db, "b1", alpha, qa, dev)

	// 强制级联更新失败，验证分配删除也不生效
	err := db.Callback().Update().Before("gorm:update").Register("force_update_failure", func(tx *gorm.DB) {
		tx.AddError(errors.New("forced failure"))
	})
	require.NoError(t, err)
	defer db.Callback().Update().Remove("force_update_failure")

	err = NewAssignmentLogic(db).RemoveAssignment(alpha, assignment)
	require.Error(t, err)

	var count int64
	require.NoError(t, db.Model(&model.AssignmentModel{}).Where("id = ?", assignment.Id).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	reloaded := reloadBug(t, db, bug.Id)
	require.NotNil(t, reloaded.DeveloperId)
	assert.Equal(t, dev.Id, *reloaded.DeveloperId)
}

func TestRemoveUserAuthorization(t *testing.T) {
	db := setupTestDB(t)
	m1 := createUser(t, db, "m1@example.com", model.RoleManager)
	m2 := createUser(t, db, "m2@example.com", model.RoleManager)
	dev := createUser(t, db, "dev@example.com", model.RoleDeveloper)
	alpha := createProject(t, db, "Alpha", m1)
	assignment := assignUser(t, db, dev, alpha)

	logic := NewProjectLogic(db)

	// 其他经理无权移除成员
	err := logic.RemoveUser(m2, alpha.Id, assignment.Id)
	assert.ErrorIs(t, err, model.ErrNotAuthorized)

	require.NoError(t, logic.RemoveUser(m1, alpha.Id, assignment.Id))

	// 再移除同一条记录报不存在
	err = logic.RemoveUser(m1, alpha.Id, assignment.Id)
	assert.ErrorIs(t, err, model.ErrNotFound)
}
