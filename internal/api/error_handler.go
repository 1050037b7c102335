package api

import (
	"errors"
	"net/http"

	"github.com/bp4sp4/NMS-System-sub000/internal/workflow"
	"github.com/gin-gonic/gin"
)

// APIError API 错误
type APIError struct {
	Code    int
	Message string
	Detail  string
}

func (e *APIError) Error() string {
	return e.Message
}

// ErrorHandlerMiddleware 错误处理中间件
func ErrorHandlerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			err := c.Errors.Last()

			var apiErr *APIError
			if errors.As(err, &apiErr) {
				Error(c, apiErr.Code, apiErr.Message, apiErr.Detail)
			} else {
				Error(c, http.StatusInternalServerError, "internal server error", err.Error())
			}
		}
	}
}

// HandleServiceError 把服务层错误映射到唯一的 HTTP 错误类别
// 冲突(409)必须与权限(403)区分开:前者是"别人已经处理了",后者是"你不能处理"
func HandleServiceError(c *gin.Context, err error) {
	var (
		validationErr *workflow.ValidationError
		transitionErr *workflow.TransitionError
		permissionErr *workflow.PermissionError
		notFoundErr   *workflow.NotFoundError
		routingErr    *workflow.RoutingError
		conflictErr   *workflow.ConflictError
	)

	switch {
	case errors.As(err, &validationErr):
		Error(c, http.StatusBadRequest, "validation failed", err.Error())
	case errors.As(err, &transitionErr):
		Error(c, http.StatusBadRequest, "invalid state transition", err.Error())
	case errors.As(err, &permissionErr):
		Error(c, http.StatusForbidden, "permission denied", err.Error())
	case errors.As(err, &notFoundErr):
		Error(c, http.StatusNotFound, "not found", err.Error())
	case errors.As(err, &routingErr):
		Error(c, http.StatusUnprocessableEntity, "approver routing failed", err.Error())
	case errors.As(err, &conflictErr):
		Error(c, http.StatusConflict, "document already processed", err.Error())
	default:
		Error(c, http.StatusInternalServerError, "internal server error", err.Error())
	}
}
