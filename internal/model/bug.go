package model

import (
	"fmt"
	"time"
)

// BugType 缺陷类别
type BugType string

const (
	BugTypeFeature BugType = "feature" // 功能需求
	BugTypeBug     BugType = "bug"     // 程序缺陷
)

// Valid 类别是否合法
func (t BugType) Valid() bool {
	return t == BugTypeFeature || t == BugTypeBug
}

// BugStatus 缺陷状态，持久化为小整数，序列化时必须精确往返
type BugStatus int

const (
	StatusFresh     BugStatus = 0 // 新建，创建时自动设置
	StatusStarted   BugStatus = 1 // 处理中
	StatusCompleted BugStatus = 2 // 已完成，仅 feature 可达
	StatusResolved  BugStatus = 3 // 已解决，仅 bug 可达
)

// Valid 状态是否属于枚举
func (s BugStatus) Valid() bool {
	switch s {
	case StatusFresh, StatusStarted, StatusCompleted, StatusResolved:
		return true
	default:
		return false
	}
}

// String 状态名称
func (s BugStatus) String() string {
	switch s {
	case StatusFresh:
		return "fresh"
	case StatusStarted:
		return "started"
	case StatusCompleted:
		return "completed"
	case StatusResolved:
		return "resolved"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// ParseBugStatus 解析状态名称
func ParseBugStatus(s string) (BugStatus, error) {
	switch s {
	case "fresh":
		return StatusFresh, nil
	case "started":
		return StatusStarted, nil
	case "completed":
		return StatusCompleted, nil
	case "resolved":
		return StatusResolved, nil
	default:
		return 0, fmt.Errorf("%w: 未知的缺陷状态 %q", ErrInvalidTransition, s)
	}
}

// 截图仅允许的内容类型
var screenshotTypes = map[string]bool{
	"image/png": true,
	"image/gif": true,
}

// ValidScreenshotType 截图内容类型是否合法
func ValidScreenshotType(contentType string) bool {
	return screenshotTypes[contentType]
}

// BugModel 缺陷模型
type BugModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// 基本信息
	Title       string    `json:"title" gorm:"uniqueIndex;not null" binding:"required"`
	Description string    `json:"description" gorm:"type:text"`
	Deadline    time.Time `json:"deadline" gorm:"not null"`
	BugType     BugType   `json:"bug_type" gorm:"not null"`
	Status      BugStatus `json:"status" gorm:"not null;default:0"`

	// 截图附件
	ScreenshotURL  string `json:"screenshot_url"`
	ScreenshotType string `json:"screenshot_type"`

	// 所属项目与人员，创建者角色必须为 qa，开发者角色必须为 developer
	ProjectId   int64  `json:"project_id" gorm:"not null;index"`
	CreatorId   int64  `json:"creator_id" gorm:"not null"`
	DeveloperId *int64 `json:"developer_id" gorm:"index"`

	// 关联
	Project   *ProjectModel `json:"project,omitempty" gorm:"foreignKey:ProjectId"`
	Creator   *UserModel    `json:"creator,omitempty" gorm:"foreignKey:CreatorId"`
	Developer *UserModel    `json:"developer,omitempty" gorm:"foreignKey:DeveloperId"`
}

// TableName 自定义表名
func (BugModel) TableName() string {
	return "bug"
}

// HasDeveloper 是否已指派开发者
func (b *BugModel) HasDeveloper() bool {
	return b.DeveloperId != nil
}

// IsDeveloper 指定用户是否为当前开发者
func (b *BugModel) IsDeveloper(userId int64) bool {
	return b.DeveloperId != nil && *b.DeveloperId == userId
}
