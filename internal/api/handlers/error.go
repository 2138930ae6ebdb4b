// Package handlers provides the plain HTTP handlers served next to GraphQL.
package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	apicontext "github.com/xzzpig/graph-gateway/internal/api/context"
	"github.com/xzzpig/graph-gateway/internal/core/errs"
	"github.com/xzzpig/graph-gateway/internal/i18n"
)

// AppError represents a structured error response
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	return fmt.Sprintf("%d: %s", e.Code, e.Message)
}

// NewError creates a new AppError
func NewError(code int, message string, details string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Details: details,
	}
}

// domainErrors maps sentinel errors to a status and a message key, in match order.
var domainErrors = []struct {
	err    error
	status int
	msgID  string
}{
	{errs.ErrNotFound, http.StatusNotFound, i18n.ErrNotFound},
	{errs.ErrInvalidInput, http.StatusBadRequest, i18n.ErrInvalidInput},
	{errs.ErrUnauthorized, http.StatusUnauthorized, i18n.ErrUnauthorized},
	{errs.ErrUnavailable, http.StatusServiceUnavailable, i18n.ErrBackendUnavailable},
}

// HandleError processes errors and sends a JSON response.
// A translatable error keeps its own message; the status still comes from
// the sentinel it wraps.
func HandleError(c *gin.Context, err error) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		c.JSON(appErr.Code, appErr)
		return
	}

	status, msgID := http.StatusInternalServerError, i18n.ErrGeneric
	for _, d := range domainErrors {
		if errors.Is(err, d.err) {
			status, msgID = d.status, d.msgID
			break
		}
	}

	localizer := apicontext.GetLocalizer(c)
	message := i18n.T(localizer, msgID)
	if i18nErr, ok := i18n.IsI18nError(err); ok {
		message = i18nErr.Translate(localizer)
	}
	c.JSON(status, NewError(status, message, err.Error()))
}

// NotFoundHandler handles 404 errors
func NotFoundHandler(c *gin.Context) {
	c.JSON(http.StatusNotFound, NewError(http.StatusNotFound, i18n.T(apicontext.GetLocalizer(c), i18n.ErrNotFound), ""))
}
