package handler

import (
	"errors"
	"io"

	"github.com/gdugdh24/cofounder-backend/internal/delivery/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func fail(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, ErrorResponse{Success: false, Message: message})
}

// bindJSON decodes the body into dst. An empty body decodes as {}.
func bindJSON(c *gin.Context, dst any) error {
	if c.Request.Body == nil {
		return nil
	}
	if err := c.ShouldBindJSON(dst); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func requestLog(log logrus.FieldLogger, c *gin.Context) logrus.FieldLogger {
	if id := middleware.RequestID(c); id != "" {
		return log.WithField("request_id", id)
	}
	return log
}
