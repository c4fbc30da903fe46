package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type APIResponse struct {
	Success bool        `json:"success"`
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Status:  "success",
		Code:    http.StatusOK,
		Message: message,
		TraceID: c.GetString("trace_id"),
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, APIResponse{
		Success: false,
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: c.GetString("trace_id"),
	})
}

func HandleServiceError(c *gin.Context, err error) {
	var validationErr *ValidationError

	switch {
	case errors.As(err, &validationErr):
		RespondError(c, http.StatusBadRequest, validationErr.Error())
	case errors.Is(err, ErrInvalidPage):
		RespondError(c, http.StatusBadRequest, "Page must be greater than 0")
	case errors.Is(err, ErrInvalidPageSize):
		RespondError(c, http.StatusBadRequest, "Page size must be between 1 and 100")
	case errors.Is(err, ErrPlanNotFound):
		RespondError(c, http.StatusNotFound, "Trip plan not found")
	case errors.Is(err, ErrEngineTimeout):
		zap.L().Warn("itinerary engine timed out", zap.Error(err), zap.String("trace_id", c.GetString("trace_id")))
		RespondError(c, http.StatusGatewayTimeout, "Failed to generate travel plan: "+engineMessage(err))
	case errors.Is(err, ErrEngineFailure):
		zap.L().Error("itinerary engine failed", zap.Error(err), zap.String("trace_id", c.GetString("trace_id")))
		RespondError(c, http.StatusInternalServerError, "Failed to generate travel plan: "+engineMessage(err))
	case errors.Is(err, ErrDatabaseError):
		zap.L().Error("database error", zap.Error(err))
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	default:
		zap.L().Error("unknown error", zap.Error(err))
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	}
}

// EngineError marks err as an engine failure (or timeout) while keeping its text for the client.
type EngineError struct {
	Err     error
	Timeout bool
}

func (e *EngineError) Error() string { return e.Err.Error() }

func (e *EngineError) Unwrap() []error {
	if e.Timeout {
		return []error{ErrEngineTimeout, e.Err}
	}
	return []error{ErrEngineFailure, e.Err}
}

func engineMessage(err error) string {
	var engineErr *EngineError
	if errors.As(err, &engineErr) {
		return engineErr.Err.Error()
	}
	return err.Error()
}
