package middleware

import (
	"fmt"

	"github.com/antonkk11/Netology-diploma/internal/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RecoveryMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				// 带上堆栈和请求上下文记录
				traced := errors.NewTracedError(fmt.Errorf("panic: %v", r), errors.ErrorContext{
					UserID: c.GetInt("user_id"),
					Path:   c.Request.URL.Path,
					Method: c.Request.Method,
				})
				zap.L().Error("发生panic",
					zap.Any("error", r),
					zap.Int("user_id", traced.Context.UserID),
					zap.String("path", traced.Context.Path),
					zap.String("method", traced.Context.Method),
					zap.String("stack", traced.Stack))

				errors.HandleError(c, errors.New(errors.ErrInternal, "系统内部错误"))
				c.Abort()
			}
		}()
		c.Next()
	}
}
