package logic

import (
	"testing"

	"github.com/imohsin99/Bugzilla/internal/model"
	"github.com/imohsin99/Bugzilla/internal/repository"
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

func assignUser(t *testing.T, db *gorm.DB, user *model.UserModel, project *model.ProjectModel) *model.AssignmentModel {
	t.Helper()
	assignment := &model.AssignmentModel{UserId: user.Id, ProjectId: project.Id}
	require.NoError(t, db.Create(assignment).Error)
	return assignment
}

func createBug(t *testing.T, db *gorm.DB, title string, project *model.ProjectModel, creator *model.UserModel, developer *model.UserModel) *model.BugModel {
	t.Helper()
	bug := &model.BugModel{
		Title:     title,
		BugType:   model.BugTypeBug,
		ProjectId: project.Id,
		CreatorId: creator.Id,
		Status:    model.StatusFresh,
	}
	if developer != nil {
		bug.DeveloperId = &developer.Id
	}
	require.NoError(t, db.Create(bug).Error)
	return bug
}

func reloadBug(t *testing.T, db *gorm.DB, id int64) *model.BugModel {
	t.Helper()
	var bug model.BugModel
	require.NoError(t, db.First(&bug, id).Error)
	return &bug
}
