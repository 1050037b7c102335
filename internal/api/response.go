package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bp4sp4/NMS-System-sub000/internal/auth"
	"github.com/bp4sp4/NMS-System-sub000/internal/model"
)

// Response 统一响应格式
type Response struct {
	Code    int         `json:"code"`    // 状态码: 0 表示成功,非 0 表示失败
	Message string      `json:"message"` // 响应消息
	Data    interface{} `json:"data"`    // 响应数据
}

// ErrorResponse 错误响应格式
type ErrorResponse struct {
	Code    int    `json:"code"`             // 错误码
	Message string `json:"message"`          // 错误消息
	Detail  string `json:"detail,omitempty"` // 错误详情(可选)
}

// Success 成功响应
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// RequireParty 取当前认证人员,缺失时写 401 并返回 false
func RequireParty(c *gin.Context) (*model.PartyModel, bool) {
	actor := auth.CurrentParty(c)
	if actor == nil {
		Error(c, http.StatusUnauthorized, "authentication required", "no authenticated party in request context")
		return nil, false
	}
	return actor, true
}

// Error 错误响应
func Error(c *gin.Context, code int, message string, detail string) {
	statusCode := http.StatusInternalServerError
	if code >= 400 && code < 600 {
		statusCode = code
	}

	c.JSON(statusCode, ErrorResponse{
		Code:    code,
		Message: message,
		Detail:  detail,
	})
}
