package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/imohsin99/Bugzilla/internal/logic"
	"github.com/imohsin99/Bugzilla/internal/model"
)

const (
	// SessionCookie 会话 Cookie 名称
	SessionCookie = "bugzilla_session"

	userKey = "current_user"
)

// Middleware 会话认证中间件，为后续处理注入当前用户
func Middleware(userLogic *logic.UserLogic) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := tokenFrom(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "未登录"})
			return
		}

		user, err := userLogic.GetBySession(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "会话无效或已过期"})
			return
		}

		c.Set(userKey, user)
		c.Next()
	}
}

// CurrentUser 取当前登录用户，仅在认证中间件之后可用
func CurrentUser(c *gin.Context) *model.UserModel {
	if v, ok := c.Get(userKey); ok {
		if u, ok := v.(*model.UserModel); ok {
			return u
		}
	}
	return nil
}

// tokenFrom 从 Cookie 或 Authorization 头取会话令牌
func tokenFrom(c *gin.Context) string {
	if cookie, err := c.Cookie(SessionCookie); err == nil && cookie != "" {
		return cookie
	}
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}
