package errorx

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrorHandler provides unified error handling for gin handlers
type ErrorHandler struct {
	logger *zap.Logger
}

// NewErrorHandler creates a new error handler
func NewErrorHandler(logger *zap.Logger) *ErrorHandler {
	return &ErrorHandler{
		logger: logger,
	}
}

// Handle converts any error to an APIError and writes the JSON response.
// Client-side categories keep their message; anything else is logged with full
// detail and returned as a generic internal error.
func (h *ErrorHandler) Handle(c *gin.Context, err error) {
	if err == nil {
		return
	}

	apiErr := h.convert(err)
	apiErr.TraceID = uuid.New().String()
	apiErr.Timestamp = time.Now().UTC().Format(time.RFC3339)

	fields := []zap.Field{
		zap.String("trace_id", apiErr.TraceID),
		zap.String("category", string(apiErr.Category)),
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
		zap.Error(err),
	}
	if apiErr.Category == CategoryInternal {
		h.logger.Error("request failed", fields...)
	} else {
		h.logger.Debug("request rejected", fields...)
	}

	c.JSON(apiErr.HTTPStatus, gin.H{"error": apiErr})
}

func (h *ErrorHandler) convert(err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		// Copy so trace id and timestamp don't leak between requests
		e := *apiErr
		return &e
	}
	return NewInternal()
}
