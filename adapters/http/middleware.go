package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio/pkg/apperror"
	"github.com/khoahotran/portfolio/pkg/logger"
)

const (
	HeaderRequestID        = "X-Request-Id"
	GinContextKeyRequestID = "request_id"
)

// RequestLogger tags each request with an id and logs one line when it
// completes. 5xx logs at error level, 4xx at warn.
func RequestLogger(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		reqID := c.GetHeader(HeaderRequestID)
		if reqID == "" {
			reqID = uuid.NewString()
		}
		c.Header(HeaderRequestID, reqID)
		c.Set(GinContextKeyRequestID, reqID)

		c.Next()

		status := c.Writer.Status()
		fields := []zap.Field{
			zap.String("request_id", reqID),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", status),
			zap.Int64("latency_ms", time.Since(start).Milliseconds()),
			zap.String("ip", c.ClientIP()),
		}

		var lastErr error
		if last := c.Errors.Last(); last != nil {
			lastErr = last.Err
		}

		switch {
		case status >= http.StatusInternalServerError:
			log.Error("request", lastErr, fields...)
		case status >= http.StatusBadRequest:
			if len(c.Errors) > 0 {
				fields = append(fields, zap.String("errors", c.Errors.String()))
			}
			log.Warn("request", fields...)
		default:
			log.Info("request", fields...)
		}
	}
}

// ErrorMiddleware renders the last error a handler attached with c.Error.
// AppErrors keep their kind; anything else is reported as an internal error
// without leaking its text.
func ErrorMiddleware(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err

		var appErr *apperror.AppError
		if !errors.As(err, &appErr) {
			appErr = apperror.NewInternal("unhandled error", err)
		}

		status := apperror.ToHTTPStatus(appErr)
		if status >= http.StatusInternalServerError {
			log.Error("Request failed", err,
				zap.String("path", c.Request.URL.Path),
				zap.String("details", appErr.Details),
			)
		}

		c.AbortWithStatusJSON(status, appErr.ToJSON())
	}
}

// MethodNotAllowed is installed as the engine's NoMethod handler.
func MethodNotAllowed(c *gin.Context) {
	c.Error(apperror.NewMethodNotAllowed(c.Request.Method, c.Request.URL.Path))
}

// RouteNotFound is installed as the engine's NoRoute handler.
func RouteNotFound(c *gin.Context) {
	c.Error(apperror.NewNotFound("route", c.Request.URL.Path))
}
