package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/imohsin99/Bugzilla/internal/auth"
	"github.com/imohsin99/Bugzilla/internal/logic"
	"github.com/imohsin99/Bugzilla/internal/model"
	"github.com/imohsin99/Bugzilla/internal/workflow"
	"gorm.io/gorm"
)

// BugHandler 缺陷接口
type BugHandler struct {
	bugLogic *logic.BugLogic
}

// NewBugHandler 创建缺陷接口
func NewBugHandler(db *gorm.DB) *BugHandler {
	return &BugHandler{
		bugLogic: logic.NewBugLogic(db),
	}
}

// CreateBug 上报缺陷
func (h *BugHandler) CreateBug(c *gin.Context) {
	projectId, ok := pathId(c, "id")
	if !ok {
		return
	}

	var req struct {
		Title          string    `json:"title" binding:"required"`
		Description    string    `json:"description"`
		Deadline       time.Time `json:"deadline" binding:"required"`
		BugType        string    `json:"bug_type" binding:"required"`
		ScreenshotURL  string    `json:"screenshot_url"`
		ScreenshotType string    `json:"screenshot_type"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	bug := &model.BugModel{
		Title:          req.Title,
		Description:    req.Description,
		Deadline:       req.Deadline,
		BugType:        model.BugType(req.BugType),
		ScreenshotURL:  req.ScreenshotURL,
		ScreenshotType: req.ScreenshotType,
	}

	if err := h.bugLogic.CreateBug(auth.CurrentUser(c), projectId, bug); err != nil {
		HandleError(c, err)
		return
	}

	SuccessResponse(c, http.StatusCreated, "缺陷上报成功", gin.H{"bug": bug})
}

// GetBugs 获取当前用户在项目下可见的缺陷列表
func (h *BugHandler) GetBugs(c *gin.Context) {
	projectId, ok := pathId(c, "id")
	if !ok {
		return
	}

	bugs, err := h.bugLogic.GetBugs(auth.CurrentUser(c), projectId)
	if err != nil {
		HandleError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "", gin.H{"bugs": bugs})
}

// GetBug 获取缺陷详情
func (h *BugHandler) GetBug(c *gin.Context) {
	projectId, ok := pathId(c, "id")
	if !ok {
		return
	}
	bugId, ok := pathId(c, "bug_id")
	if !ok {
		return
	}

	bug, err := h.bugLogic.GetBug(auth.CurrentUser(c), projectId, bugId)
	if err != nil {
		HandleError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "", gin.H{
		"bug": bug,
		// 前端状态下拉框与状态机共用同一份合法状态表
		"legal_statuses": statusNames(workflow.LegalStatuses(bug.BugType)),
	})
}

// UpdateBug 更新缺陷基本信息
func (h *BugHandler) UpdateBug(c *gin.Context) {
	projectId, ok := pathId(c, "id")
	if !ok {
		return
	}
	bugId, ok := pathId(c, "bug_id")
	if !ok {
		return
	}

	var req struct {
		Title          *string    `json:"title"`
		Description    *string    `json:"description"`
		Deadline       *time.Time `json:"deadline"`
		BugType        *string    `json:"bug_type"`
		ScreenshotURL  *string    `json:"screenshot_url"`
		ScreenshotType *string    `json:"screenshot_type"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	updates := make(map[string]interface{})
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Deadline != nil {
		updates["deadline"] = *req.Deadline
	}
	if req.BugType != nil {
		updates["bug_type"] = model.BugType(*req.BugType)
	}
	if req.ScreenshotURL != nil {
		updates["screenshot_url"] = *req.ScreenshotURL
	}
	if req.ScreenshotType != nil {
		updates["screenshot_type"] = *req.ScreenshotType
	}

	bug, err := h.bugLogic.UpdateBug(auth.CurrentUser(c), projectId, bugId, updates)
	if err != nil {
		HandleError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "缺陷更新成功", gin.H{"bug": bug})
}

// DeleteBug 删除缺陷
func (h *BugHandler) DeleteBug(c *gin.Context) {
	projectId, ok := pathId(c, "id")
	if !ok {
		return
	}
	bugId, ok := pathId(c, "bug_id")
	if !ok {
		return
	}

	if err := h.bugLogic.DeleteBug(auth.CurrentUser(c), projectId, bugId); err != nil {
		HandleError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "缺陷删除成功", nil)
}

// AssignBug 开发者认领缺陷
func (h *BugHandler) AssignBug(c *gin.Context) {
	projectId, ok := pathId(c, "id")
	if !ok {
		return
	}
	bugId, ok := pathId(c, "bug_id")
	if !ok {
		return
	}

	bug, err := h.bugLogic.AssignBug(auth.CurrentUser(c), projectId, bugId)
	if err != nil {
		HandleError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "缺陷认领成功", gin.H{"bug": bug})
}

// UpdateStatus 变更缺陷状态
func (h *BugHandler) UpdateStatus(c *gin.Context) {
	projectId, ok := pathId(c, "id")
	if !ok {
		return
	}
	bugId, ok := pathId(c, "bug_id")
	if !ok {
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	status, err := model.ParseBugStatus(req.Status)
	if err != nil {
		HandleError(c, err)
		return
	}

	bug, err := h.bugLogic.UpdateStatus(auth.CurrentUser(c), projectId, bugId, status)
	if err != nil {
		HandleError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "缺陷状态更新成功", gin.H{"bug": bug})
}

// statusNames 状态枚举转名称列表
func statusNames(statuses []model.BugStatus) []string {
	names := make([]string, 0, len(statuses))
	for _, s := range statuses {
		names = append(names, s.String())
	}
	return names
}
