package api

import (
	"coachvision/backend/internal/auth"
	"coachvision/backend/internal/logger"
	"coachvision/backend/internal/service"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Error codes carried in the "code" field of every error body.
const (
	CodeUnauthenticated      = "UNAUTHENTICATED"
	CodeForbidden            = "FORBIDDEN"
	CodeNotFound             = "NOT_FOUND"
	CodeInvalidDay           = "INVALID_DAY"
	CodeInvalidInput         = "INVALID_INPUT"
	CodeConflict             = "CONFLICT"
	CodeGenerationFailure    = "GENERATION_FAILURE"
	CodeStoreFailure         = "STORE_FAILURE"
	CodeReplaceInconsistency = "REPLACE_INCONSISTENCY"
	CodeInternal             = "INTERNAL"
)

// ErrorResponse is the JSON body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// Helper to return JSON error response and abort request
func abortWithError(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, ErrorResponse{Error: message, Code: code})
}

type errorMapping struct {
	target error
	status int
	code   string
}

// Order matters: ErrReplaceInconsistency wraps the generation or store error
// that caused it and must win over both.
var serviceErrors = []errorMapping{
	{service.ErrReplaceInconsistency, http.StatusInternalServerError, CodeReplaceInconsistency},
	{service.ErrGenerationFailed, http.StatusBadGateway, CodeGenerationFailure},
	{service.ErrStoreFailure, http.StatusInternalServerError, CodeStoreFailure},
	{service.ErrUnauthenticated, http.StatusUnauthorized, CodeUnauthenticated},
	{service.ErrAuthenticationFailed, http.StatusUnauthorized, CodeUnauthenticated},
	{auth.ErrTokenRevoked, http.StatusUnauthorized, CodeUnauthenticated},
	{auth.ErrExpiredToken, http.StatusUnauthorized, CodeUnauthenticated},
	{auth.ErrInvalidToken, http.StatusUnauthorized, CodeUnauthenticated},
	{service.ErrPlanAccessDenied, http.StatusForbidden, CodeForbidden},
	{service.ErrVideoAccessDenied, http.StatusForbidden, CodeForbidden},
	{service.ErrObjectKeyNotOwned, http.StatusForbidden, CodeForbidden},
	{service.ErrPlanNotFound, http.StatusNotFound, CodeNotFound},
	{service.ErrUserNotFound, http.StatusNotFound, CodeNotFound},
	{service.ErrVideoNotFound, http.StatusNotFound, CodeNotFound},
	{service.ErrUploadMissing, http.StatusNotFound, CodeNotFound},
	{service.ErrInvalidDay, http.StatusBadRequest, CodeInvalidDay},
	{service.ErrInvalidDayEntry, http.StatusBadRequest, CodeInvalidInput},
	{service.ErrInvalidPlanType, http.StatusBadRequest, CodeInvalidInput},
	{service.ErrProfileIncomplete, http.StatusBadRequest, CodeInvalidInput},
	{service.ErrInvalidProfile, http.StatusBadRequest, CodeInvalidInput},
	{service.ErrUnsupportedMediaType, http.StatusBadRequest, CodeInvalidInput},
	{service.ErrPlanConflict, http.StatusConflict, CodeConflict},
	{service.ErrUserAlreadyExists, http.StatusConflict, CodeConflict},
}

// respondError maps a service error onto status and code. Anything unmapped
// is logged and reported as an opaque 500.
func respondError(c *gin.Context, err error) {
	for _, m := range serviceErrors {
		if errors.Is(err, m.target) {
			if m.status >= http.StatusInternalServerError {
				logger.FromContext(c).Error("Request failed", zap.String("code", m.code), zap.Error(err))
			}
			abortWithError(c, m.status, m.code, err.Error())
			return
		}
	}
	logger.FromContext(c).Error("Unhandled service error", zap.Error(err))
	abortWithError(c, http.StatusInternalServerError, CodeInternal, "An unexpected error occurred")
}
