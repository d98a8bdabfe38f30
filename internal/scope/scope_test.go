package scope

import (
	"testing"

	"github.com/imohsin99/Bugzilla/internal/model"
	"github.com/imohsin99/Bugzilla/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormLogger.Default.LogMode(gormLogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, repository.Migrate(db))
	return db
}

func createUser(t *testing.T, db *gorm.DB, email string, role model.Role) *model.UserModel {
	t.Helper()
	user := &model.UserModel{Name: email, Email: email, PasswordHash: "x", UserType: role}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createProject(t *testing.T, db *gorm.DB, title string, manager *model.UserModel) *model.ProjectModel {
	t.Helper()
	project := &model.ProjectModel{Title: title, Description: "desc", ManagerId: manager.Id}
	require.NoError(t, db.Create(project).Error)
	return project
}

func assignUser(t *testing.T, db *gorm.DB, user *model.UserModel, project *model.ProjectModel) {
	t.Helper()
	require.NoError(t, db.Create(&model.AssignmentModel{UserId: user.Id, ProjectId: project.Id}).Error)
}

func createBug(t *testing.T, db *gorm.DB, title string, project *model.ProjectModel, creator *model.UserModel) *model.BugModel {
	t.Helper()
	bug := &model.BugModel{
		Title:     title,
		BugType:   model.BugTypeBug,
		ProjectId: project.Id,
		CreatorId: creator.Id,
		Status:    model.StatusFresh,
	}
	require.NoError(t, db.Create(bug).Error)
	return bug
}

func projectIds(projects []model.ProjectModel) []int64 {
	ids := make([]int64, 0, len(projects))
	for _, p := range projects {
		ids = append(ids, p.Id)
	}
	return ids
}

func TestProjectScopeManager(t *testing.T) {
	db := setupTestDB(t)
	m1 := createUser(t, db, "m1@example.com", model.RoleManager)
	m2 := createUser(t, db, "m2@example.com", model.RoleManager)
	alpha := createProject(t, db, "Alpha", m1)
	beta := createProject(t, db, "Beta", m1)
	createProject(t, db, "Gamma", m2)

	projects, err := NewProjectScope(db).Resolve(m1)
	require.NoError(t, err)

	// 经理恰好看到自己管理的项目，绝不包含他人的
	assert.ElementsMatch(t, []int64{alpha.Id, beta.Id}, projectIds(projects))
}

func TestProjectScopeQASeesAll(t *testing.T) {
	db := setupTestDB(t)
	m1 := createUser(t, db, "m1@example.com", model.RoleManager)
	m2 := createUser(t, db, "m2@example.com", model.RoleManager)
	qa := createUser(t, db, "qa@example.com", model.RoleQA)
	alpha := createProject(t, db, "Alpha", m1)
	gamma := createProject(t, db, "Gamma", m2)

	projects, err := NewProjectScope(db).Resolve(qa)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{alpha.Id, gamma.Id}, projectIds(projects))
}

func TestProjectScopeDeveloperAssignedOnly(t *testing.T) {
	db := setupTestDB(t)
	m1 := createUser(t, db, "m1@example.com", model.RoleManager)
	dev := createUser(t, db, "dev@example.com", model.RoleDeveloper)
	alpha := createProject(t, db, "Alpha", m1)
	createProject(t, db, "Beta", m1)
	assignUser(t, db, dev, alpha)

	projects, err := NewProjectScope(db).Resolve(dev)
	require.NoError(t, err)
	assert.Equal(t, []int64{alpha.Id}, projectIds(projects))
}

func TestBugScopeQAUnconditional(t *testing.T) {
	db := setupTestDB(t)
	m1 := createUser(t, db, "m1@example.com", model.RoleManager)
	qa := createUser(t, db, "qa@example.com", model.RoleQA)
	alpha := createProject(t, db, "Alpha", m1)
	b1 := createBug(t, db, "b1", alpha, qa)
	b2 := createBug(t, db, "b2", alpha, qa)

	bugs, err := NewBugScope(db).Resolve(qa, alpha)
	require.NoError(t, err)
	require.Len(t, bugs, 2)
	assert.ElementsMatch(t, []int64{b1.Id, b2.Id}, []int64{bugs[0].Id, bugs[1].Id})
}

func TestBugScopeManagerMustManage(t *testing.T) {
	db := setupTestDB(t)
	m1 := createUser(t, db, "m1@example.com", model.RoleManager)
	m2 := createUser(t, db, "m2@example.com", model.RoleManager)
	qa := createUser(t, db, "qa@example.com", model.RoleQA)
	alpha := createProject(t, db, "Alpha", m1)
	createBug(t, db, "b1", alpha, qa)

	bugs, err := NewBugScope(db).Resolve(m1, alpha)
	require.NoError(t, err)
	assert.Len(t, bugs, 1)

	_, err = NewBugScope(db).Resolve(m2, alpha)
	assert.ErrorIs(t, err, model.ErrNotAuthorized)
}

func TestBugScopeUnassignedDeveloperDenied(t *testing.T) {
	db := setupTestDB(t)
	m1 := createUser(t, db, "m1@example.com", model.RoleManager)
	dev := createUser(t, db, "dev@example.com", model.RoleDeveloper)
	alpha := createProject(t, db, "Alpha", m1)

	// 越权必须返回授权失败，而不是静默的空列表
	bugs, err := NewBugScope(db).Resolve(dev, alpha)
	assert.ErrorIs(t, err, model.ErrNotAuthorized)
	assert.Nil(t, bugs)

	// 分配后即可见，哪怕项目下还没有缺陷
	assignUser(t, db, dev, alpha)
	bugs, err = NewBugScope(db).Resolve(dev, alpha)
	require.NoError(t, err)
	assert.Empty(t, bugs)
}
