package model

import "errors"

// 业务错误类型，各层通过 errors.Is 判断后映射为对外响应
var (
	ErrNotAuthorized     = errors.New("没有操作权限")
	ErrNotFound          = errors.New("记录不存在")
	ErrValidation        = errors.New("数据校验失败")
	ErrInvalidTransition = errors.New("非法的状态变更")
)
