package requestid

import (
	"Gigbell/pkg/util"

	"github.com/gin-gonic/gin"
)

const (
	HeaderKey = "X-Request-Id"
	CtxKey    = "request_id"
)

// New 透传上游的请求 id，没有则生成
func New() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(HeaderKey)
		if rid == "" {
			rid = util.GenerateUUID()
		}
		c.Set(CtxKey, rid)
		c.Header(HeaderKey, rid)
		c.Next()
	}
}
