package xerr

import "fmt"

// CodeError 自定义错误结构
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
	ErrSuccess      = New(OK, "Success")
	ErrServerError  = New(InternalServerError, "server error, please contact the operator")
	ErrParam        = New(BadRequest, "invalid parameters")
	ErrUnauthorized = New(Unauthorized, "unauthorized")
	ErrForbidden    = New(Forbidden, "forbidden")

	ErrNotificationNotFound = New(NotFound, "Notification not found")
	ErrPerformanceNotFound  = New(NotFound, "Performance not found")
	ErrAlertNotFound        = New(NotFound, "Alert not found")
	ErrAlertAlreadySet      = New(BadRequest, "Alert already set")
	ErrInvalidAlertType     = New(BadRequest, "Invalid alert type")
	ErrLikeNotFound         = New(NotFound, "Like not found")
	ErrUserNotFound         = New(NotFound, "User not found")
	ErrAlreadyLiked         = New(Conflict, "Already liked")
	ErrInvalidLikeType      = New(BadRequest, "Invalid like type")
)
