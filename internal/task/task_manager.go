package task

import (
	"github.com/go-co-op/gocron/v2"
	"github.com/imohsin99/Bugzilla/internal/config"
	"github.com/imohsin99/Bugzilla/internal/logger"
	"github.com/imohsin99/Bugzilla/internal/notify"
	"gorm.io/gorm"
)

// TaskManager 任务管理器
type TaskManager struct {
	scheduler  gocron.Scheduler
	db         *gorm.DB
	config     *config.Config
	dispatcher *notify.Dispatcher
}

// NewTaskManager 创建新的任务管理器
func NewTaskManager(db *gorm.DB, cfg *config.Config) *TaskManager {
	s, err := gocron.NewScheduler()
	if err != nil {
		logger.Fatal("Failed to create scheduler: %v", err)
	}

	dispatcher, err := notify.NewDispatcher(cfg.Task.Workers, notify.LogNotifier{})
	if err != nil {
		logger.Fatal("Failed to create notify dispatcher: %v", err)
	}

	return &TaskManager{
		scheduler:  s,
		db:         db,
		config:     cfg,
		dispatcher: dispatcher,
	}
}

// Start 启动任务管理器
func Start(db *gorm.DB, cfg *config.Config) *TaskManager {
	manager := NewTaskManager(db, cfg)

	// 注册所有任务
	manager.RegisterJobs()

	// 启动调度器
	manager.scheduler.Start()

	logger.Info("Task manager started successfully")
	return manager
}

// RegisterJobs 注册所有任务
func (m *TaskManager) RegisterJobs() {
	// 注册缺陷超期提醒任务
	m.RegisterBugDeadlineJob()
}

// RegisterBugDeadlineJob 注册缺陷超期提醒任务
func (m *TaskManager) RegisterBugDeadlineJob() {
	job := NewBugDeadlineJob(m.db, m.config, m.dispatcher)

	_, err := m.scheduler.NewJob(
		job.GetSchedule(),
		gocron.NewTask(job.Execute),
		gocron.WithName(job.GetName()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		logger.Error("Failed to register job %s: %v", job.GetName(), err)
	}
}

// Stop 停止任务管理器
func (m *TaskManager) Stop() {
	if err := m.scheduler.Shutdown(); err != nil {
		logger.Error("Failed to shutdown scheduler: %v", err)
	}
	m.dispatcher.Release()
	logger.Info("Task manager stopped")
}
