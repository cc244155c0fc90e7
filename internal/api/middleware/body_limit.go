package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"course-timetable/backend/pkg/response"
)

// CodeBodyTooLarge 请求体超限业务码
const CodeBodyTooLarge = 10005

// BodyLimit 请求体大小限制
// 声明的 Content-Length 超限时直接 413；未声明长度的请求由 MaxBytesReader 截断，
// 读取失败交给绑定层按 *http.MaxBytesError 处理
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			response.Error(c, http.StatusRequestEntityTooLarge, CodeBodyTooLarge, "request body too large")
			c.Abort()
			return
		}
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}
		c.Next()
	}
}
