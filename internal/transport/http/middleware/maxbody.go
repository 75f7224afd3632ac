package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	resp "go-gin-gorm-todo/internal/transport/http/response"
)

// MaxBodyBytes 限制请求体大小；处理函数未写响应且记录了超限错误时返回 413
func MaxBodyBytes(n int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, n)
		c.Next()
		if c.Writer.Written() {
			return
		}
		for _, e := range c.Errors {
			var tooLarge *http.MaxBytesError
			if errors.As(e.Err, &tooLarge) {
				c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, resp.Error(resp.CodeTooLarge, "request body too large"))
				return
			}
		}
	}
}
