package task

import (
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/imohsin99/Bugzilla/internal/config"
	"github.com/imohsin99/Bugzilla/internal/logger"
	"github.com/imohsin99/Bugzilla/internal/model"
	"github.com/imohsin99/Bugzilla/internal/notify"
	"gorm.io/gorm"
)

// BugDeadlineJob 缺陷超期提醒任务
type BugDeadlineJob struct {
	db         *gorm.DB
	config     *config.Config
	dispatcher *notify.Dispatcher
}

// NewBugDeadlineJob 创建缺陷超期提醒任务
func NewBugDeadlineJob(db *gorm.DB, cfg *config.Config, dispatcher *notify.Dispatcher) *BugDeadlineJob {
	return &BugDeadlineJob{
		db:         db,
		config:     cfg,
		dispatcher: dispatcher,
	}
}

// GetName 获取任务名称
func (j *BugDeadlineJob) GetName() string {
	return "bug_deadline_reminder"
}

// GetSchedule 获取调度配置
func (j *BugDeadlineJob) GetSchedule() gocron.JobDefinition {
	return gocron.DurationJob(time.Duration(j.config.Task.Interval) * time.Second)
}

// Execute 执行任务
func (j *BugDeadlineJob) Execute() {
	logger.Info("Starting bug deadline reminder task")

	now := time.Now()

	// 查找已超期且未到终态的缺陷
	var bugs []model.BugModel
	err := j.db.Preload("Developer").Preload("Creator").
		Where("deadline <= ? AND status IN ?", now,
			[]model.BugStatus{model.StatusFresh, model.StatusStarted}).
		Find(&bugs).Error
	if err != nil {
		logger.Error("Failed to fetch overdue bugs: %v", err)
		return
	}

	for _, bug := range bugs {
		if err := j.dispatcher.Dispatch(bug); err != nil {
			logger.Error("Failed to dispatch reminder for bug %d: %v", bug.Id, err)
		}
	}

	logger.Info("Bug deadline reminder task finished, %d bugs overdue", len(bugs))
}
