package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/imohsin99/Bugzilla/internal/auth"
	"github.com/imohsin99/Bugzilla/internal/logic"
	"gorm.io/gorm"
)

// AuthHandler 注册登录接口
type AuthHandler struct {
	userLogic *logic.UserLogic
}

// NewAuthHandler 创建认证接口
func NewAuthHandler(db *gorm.DB) *AuthHandler {
	return &AuthHandler{
		userLogic: logic.NewUserLogic(db),
	}
}

// Register 注册用户
func (h *AuthHandler) Register(c *gin.Context) {
	var req struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
		UserType string `json:"user_type" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.userLogic.Register(req.Name, req.Email, req.Password, req.UserType)
	if err != nil {
		HandleError(c, err)
		return
	}

	SuccessResponse(c, http.StatusCreated, "注册成功", user)
}

// Login 登录并下发会话令牌
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	token, user, err := h.userLogic.Login(req.Email, req.Password)
	if err != nil {
		ErrorResponse(c, http.StatusUnauthorized, "邮箱或密码错误")
		return
	}

	c.SetCookie(auth.SessionCookie, token, 30*24*60*60, "/", "", false, true)
	SuccessResponse(c, http.StatusOK, "登录成功", gin.H{
		"token": token,
		"user":  user,
	})
}

// Logout 注销当前会话
func (h *AuthHandler) Logout(c *gin.Context) {
	if token, err := c.Cookie(auth.SessionCookie); err == nil && token != "" {
		if err := h.userLogic.Logout(token); err != nil {
			HandleError(c, err)
			return
		}
	}

	c.SetCookie(auth.SessionCookie, "", -1, "/", "", false, true)
	SuccessResponse(c, http.StatusOK, "已注销", nil)
}
