package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/imohsin99/Bugzilla/internal/logger"
	"github.com/imohsin99/Bugzilla/internal/model"
)

// Response 统一响应结构
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// SuccessResponse 成功响应
func SuccessResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// ErrorResponse 错误响应
func ErrorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, Response{
		Success: false,
		Message: message,
		Data:    nil,
	})
}

// HandleError 将业务错误映射为 HTTP 响应
func HandleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, model.ErrNotAuthorized):
		ErrorResponse(c, http.StatusForbidden, model.ErrNotAuthorized.Error())
	case errors.Is(err, model.ErrNotFound):
		ErrorResponse(c, http.StatusNotFound, model.ErrNotFound.Error())
	case errors.Is(err, model.ErrValidation):
		ErrorResponse(c, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, model.ErrInvalidTransition):
		ErrorResponse(c, http.StatusUnprocessableEntity, err.Error())
	default:
		logger.Error("Unexpected error: %v", err)
		ErrorResponse(c, http.StatusInternalServerError, "服务器内部错误")
	}
}
