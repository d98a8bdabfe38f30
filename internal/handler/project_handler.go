package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/imohsin99/Bugzilla/internal/auth"
	"github.com/imohsin99/Bugzilla/internal/logic"
	"github.com/imohsin99/Bugzilla/internal/model"
	"gorm.io/gorm"
)

// ProjectHandler 项目接口
type ProjectHandler struct {
	projectLogic *logic.ProjectLogic
}

// NewProjectHandler 创建项目接口
func NewProjectHandler(db *gorm.DB) *ProjectHandler {
	return &ProjectHandler{
		projectLogic: logic.NewProjectLogic(db),
	}
}

// CreateProject 创建项目，可同时分配成员
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	var req struct {
		Title       string  `json:"title" binding:"required"`
		Description string  `json:"description" binding:"required"`
		Users       []int64 `json:"users"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	actor := auth.CurrentUser(c)
	project := &model.ProjectModel{
		Title:       req.Title,
		Description: req.Description,
	}

	if err := h.projectLogic.CreateProject(actor, project); err != nil {
		HandleError(c, err)
		return
	}

	_, rejected, err := h.projectLogic.AssignUsers(actor, project.Id, req.Users)
	if err != nil {
		HandleError(c, err)
		return
	}

	SuccessResponse(c, http.StatusCreated, "项目创建成功", gin.H{
		"project":  project,
		"rejected": rejectedIds(rejected),
	})
}

// GetProjects 获取当前用户可见的项目列表
func (h *ProjectHandler) GetProjects(c *gin.Context) {
	projects, err := h.projectLogic.GetProjects(auth.CurrentUser(c))
	if err != nil {
		HandleError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "", gin.H{"projects": projects})
}

// GetProject 获取项目详情
func (h *ProjectHandler) GetProject(c *gin.Context) {
	id, ok := pathId(c, "id")
	if !ok {
		return
	}

	project, err := h.projectLogic.GetProject(auth.CurrentUser(c), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "", gin.H{"project": project})
}

// UpdateProject 更新项目，可补充分配成员
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	id, ok := pathId(c, "id")
	if !ok {
		return
	}

	var req struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
		Users       []int64 `json:"users"`
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

	actor := auth.CurrentUser(c)
	project, err := h.projectLogic.UpdateProject(actor, id, updates)
	if err != nil {
		HandleError(c, err)
		return
	}

	_, rejected, err := h.projectLogic.AssignUsers(actor, project.Id, req.Users)
	if err != nil {
		HandleError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "项目更新成功", gin.H{
		"project":  project,
		"rejected": rejectedIds(rejected),
	})
}

// DeleteProject 删除项目
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	id, ok := pathId(c, "id")
	if !ok {
		return
	}

	if err := h.projectLogic.DeleteProject(auth.CurrentUser(c), id); err != nil {
		HandleError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "项目删除成功", nil)
}

// RemoveUser 将成员移出项目
func (h *ProjectHandler) RemoveUser(c *gin.Context) {
	projectId, ok := pathId(c, "id")
	if !ok {
		return
	}
	assignmentId, ok := pathId(c, "assignment_id")
	if !ok {
		return
	}

	err := h.projectLogic.RemoveUser(auth.CurrentUser(c), projectId, assignmentId)
	if err != nil {
		HandleError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "成员已移出项目", nil)
}

// pathId 解析路径参数中的整数 ID
func pathId(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的ID")
		return 0, false
	}
	return id, true
}

// rejectedIds 提取被拒绝的用户 ID
func rejectedIds(rejected []logic.RejectedUser) []int64 {
	ids := make([]int64, 0, len(rejected))
	for _, r := range rejected {
		ids = append(ids, r.UserId)
	}
	return ids
}
