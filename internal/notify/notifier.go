package notify

import (
	"fmt"

	"github.com/imohsin99/Bugzilla/internal/logger"
	"github.com/imohsin99/Bugzilla/internal/model"
	"github.com/panjf2000/ants/v2"
)

// Notifier 缺陷提醒通知接口
type Notifier interface {
	NotifyOverdue(bug *model.BugModel) error
}

// LogNotifier 默认实现，仅写日志
type LogNotifier struct{}

// NotifyOverdue 记录超期提醒
func (LogNotifier) NotifyOverdue(bug *model.BugModel) error {
	target := "未指派"
	if bug.Developer != nil {
		target = bug.Developer.Email
	}
	logger.Warn("Bug %q (project %d) overdue since %s, developer: %s",
		bug.Title, bug.ProjectId, bug.Deadline.Format("2006-01-02"), target)
	return nil
}

// Dispatcher 通知分发器，协程池限制并发
type Dispatcher struct {
	pool     *ants.Pool
	notifier Notifier
}

// NewDispatcher 创建通知分发器
func NewDispatcher(workers int, notifier Notifier) (*Dispatcher, error) {
	if workers <= 0 {
		workers = 1
	}
	pool, err := ants.NewPool(workers)
	if err != nil {
		return nil, fmt.Errorf("创建通知协程池失败: %w", err)
	}
	return &Dispatcher{pool: pool, notifier: notifier}, nil
}

// Dispatch 提交一条超期提醒
func (d *Dispatcher) Dispatch(bug model.BugModel) error {
	return d.pool.Submit(func() {
		if err := d.notifier.NotifyOverdue(&bug); err != nil {
			logger.Error("Failed to notify overdue bug %d: %v", bug.Id, err)
		}
	})
}

// Release 释放协程池
func (d *Dispatcher) Release() {
	d.pool.Release()
}
