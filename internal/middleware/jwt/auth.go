package jwt

import (
	"strings"

	"Gigbell/pkg/back"
	"Gigbell/pkg/util/myjwt"
	"Gigbell/pkg/xerr"

	"github.com/gin-gonic/gin"
)

const (
	CtxUserID   = "user_id"
	CtxNickname = "nickname"
	CtxRole     = "role"
)

// Auth 校验 Bearer token；websocket 握手时浏览器无法带 header，允许 ?token= 兜底
func Auth(m *myjwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := ""
		authHeader := c.GetHeader("Authorization")
		if strings.HasPrefix(authHeader, "Bearer ") {
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
		} else if q := c.Query("token"); q != "" {
			tokenString = q
		}
		if tokenString == "" {
			back.Error(c, xerr.Unauthorized, "missing or invalid authorization header")
			c.Abort()
			return
		}

		claims, err := m.ParseToken(tokenString)
		if err != nil {
			back.Error(c, xerr.Unauthorized, "invalid token")
			c.Abort()
			return
		}

		c.Set(CtxUserID, claims.UserID)
		c.Set(CtxNickname, claims.Nickname)
		c.Set(CtxRole, claims.Role)
		c.Next()
	}
}

// AdminOnly 必须挂在 Auth 之后
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(CtxRole) != myjwt.RoleAdmin {
			back.Error(c, xerr.Forbidden, xerr.ErrForbidden.Message)
			c.Abort()
			return
		}
		c.Next()
	}
}

// UserID 取出 Auth 写入的用户 id，未登录返回 0
func UserID(c *gin.Context) int64 {
	return c.GetInt64(CtxUserID)
}
