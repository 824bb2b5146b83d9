package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"peoplematching/internal/pkg/response"
)

// ErrorLogger logs failed requests and recovers from panics.
func ErrorLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		defer func() {
			if recovered := recover(); recovered != nil {
				logRequestError(log, c, start, "panic", fmt.Sprintf("%v", recovered),
					zap.ByteString("stack", debug.Stack()))
				response.Error(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "Internal Server Error")
				c.Abort()
				return
			}

			for _, err := range c.Errors {
				logRequestError(log, c, start, fmt.Sprintf("%v", err.Type), err.Error())
			}
			if len(c.Errors) == 0 && c.Writer.Status() >= http.StatusInternalServerError {
				logRequestError(log, c, start, "http_error", fmt.Sprintf("status=%d", c.Writer.Status()))
			}
		}()

		c.Next()
	}
}

// AccessLogger writes one line per request.
func AccessLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info("request",
			zap.Int("status", c.Writer.Status()),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("client_ip", c.ClientIP()),
			zap.String("request_id", requestID(c)),
			zap.Duration("latency", time.Since(start)),
		)
	}
}

func logRequestError(log *zap.Logger, c *gin.Context, start time.Time, errType, message string, extra ...zap.Field) {
	fields := []zap.Field{
		zap.String("type", errType),
		zap.Int("status", c.Writer.Status()),
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
		zap.String("query", c.Request.URL.RawQuery),
		zap.String("client_ip", c.ClientIP()),
		zap.String("request_id", requestID(c)),
		zap.Duration("latency", time.Since(start)),
		zap.String("error", message),
	}
	log.Error("request_error", append(fields, extra...)...)
}

func requestID(c *gin.Context) string {
	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = c.GetHeader("X-Request-Id")
	}
	return requestID
}
