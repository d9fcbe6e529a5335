package middleware

import (
	"net/http"
	"time"

	"mecanica_xpto_os/pkg"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	HeaderRequestID = "X-Request-ID"
	ContextRequest  = "request_id"
)

// RequestID propagates X-Request-ID, generating one when absent.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.Request.Header.Get(HeaderRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(ContextRequest, requestID)
		c.Writer.Header().Set(HeaderRequestID, requestID)
		c.Next()
	}
}

// Logger writes one line per request at a level chosen by the status code.
func Logger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		status := c.Writer.Status()
		fields := []zap.Field{
			zap.Int("status", status),
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("query", query),
			zap.String("ip", c.ClientIP()),
			zap.Duration("latency", time.Since(start)),
			zap.String("request_id", c.GetString(ContextRequest)),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}

		switch {
		case status >= 500:
			logger.Error("[http] server error", fields...)
		case status >= 400:
			logger.Warn("[http] client error", fields...)
		default:
			logger.Info("[http] request", fields...)
		}
	}
}

// Recovery turns a panic into a 500 AppError body.
func Recovery(logger *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Error("[http] recovered from panic",
			zap.Any("panic", recovered),
			zap.String("path", c.Request.URL.Path),
			zap.String("request_id", c.GetString(ContextRequest)),
		)
		appErr := pkg.NewDomainErrorSimple("INTERNAL_ERROR", "An internal error occurred", http.StatusInternalServerError)
		c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToHTTPError())
	})
}
