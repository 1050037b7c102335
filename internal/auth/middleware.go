package auth

import (
	"net/http"

	"github.com/bp4sp4/NMS-System-sub000/internal/model"
	"github.com/bp4sp4/NMS-System-sub000/internal/repository"
	"github.com/gin-gonic/gin"
)

// partyContextKey 当前人员在 gin context 中的键
const partyContextKey = "current_party"

// Middleware JWT 认证中间件
// 验证 Bearer Token 后按 sub 加载人员档案存入 context。
// 身份只有这一个来源,后续处理一律通过 CurrentParty 取,不从别处兜底
func Middleware(validator *TokenValidator, parties repository.PartyRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader("Authorization")
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"code":    401,
				"message": "missing authorization header",
			})
			c.Abort()
			return
		}

		// 移除 "Bearer " 前缀
		if len(token) > 7 && token[:7] == "Bearer " {
			token = token[7:]
		}

		claims, err := validator.ValidateToken(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"code":    401,
				"message": "invalid token",
				"detail":  err.Error(),
			})
			c.Abort()
			return
		}

		party, err := parties.FindByID(claims.Sub)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"code":    401,
				"message": "unknown party",
			})
			c.Abort()
			return
		}

		c.Set(partyContextKey, party)
		c.Next()
	}
}

// CurrentParty 取当前请求的认证人员
func CurrentParty(c *gin.Context) *model.PartyModel {
	v, ok := c.Get(partyContextKey)
	if !ok {
		return nil
	}
	party, ok := v.(*model.PartyModel)
	if !ok {
		return nil
	}
	return party
}

// SetCurrentParty 注入当前人员(测试用)
func SetCurrentParty(c *gin.Context, party *model.PartyModel) {
	c.Set(partyContextKey, party)
}
