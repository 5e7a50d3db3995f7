package xerr

import (
	"errors"
	"fmt"
)

// CodeError 自定义错误结构，HTTP 层统一据此返回业务码
type CodeError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Error 实现 error 接口
func (e *CodeError) Error() string {
	return fmt.Sprintf("Code: %d, Message: %s", e.Code, e.Message)
}

// New 创建新的 CodeError
func New(code int, msg string) *CodeError {
	return &CodeError{Code: code, Message: msg}
}

// ParamError 参数错误，附带具体字段说明
func ParamError(detail string) *CodeError {
	if detail == "" {
		return ErrParam
	}
	return New(BadRequest, ErrParam.Message+": "+detail)
}

// CodeOf 提取错误码，非 CodeError 视为系统错误
func CodeOf(err error) int {
	if err == nil {
		return OK
	}
	var ce *CodeError
	if errors.As(err, &ce) {
		return ce.Code
	}
	return InternalServerError
}

// 常用通用错误码
const (
	OK                  = 200
	BadRequest          = 400
	Unauthorized        = 401
	Forbidden           = 403
	NotFound            = 404
	Conflict            = 409
	InternalServerError = 500
)

// 常用预定义错误
var (
	ErrSuccess     = New(OK, "Success")
	ErrServerError = New(InternalServerError, "系统错误，请联系工作人员")
	ErrParam       = New(BadRequest, "参数错误")
	ErrNotFound    = New(NotFound, "记录不存在")
	ErrConflict    = New(Conflict, "记录冲突")
)
