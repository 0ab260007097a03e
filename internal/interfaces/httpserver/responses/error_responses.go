package responses

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"salesdesk/admin-api/internal/infrastructure/logger"
	"salesdesk/admin-api/internal/utils/platformerrors"
)

// ErrorResponse is the error envelope every endpoint returns on failure.
type ErrorResponse struct {
	Error         string `json:"error"`
	RequestID     string `json:"request_id,omitempty"`
	ErrorInstance error  `json:"-"`
}

// HandleError handles domain errors and returns appropriate HTTP responses
func HandleError(reqCtx *gin.Context, err error, message string) {
	var domainErr *platformerrors.PlatformError
	if errors.As(err, &domainErr) {
		platformerrors.LogError(logger.GetLogger(), domainErr)
		statusCode := platformerrors.ErrorTypeToHTTPStatus(domainErr.GetErrorType())

		errorMessage := domainErr.Message
		if errorMessage == "" {
			errorMessage = message
		}

		reqCtx.AbortWithStatusJSON(statusCode, ErrorResponse{
			Error:         errorMessage,
			RequestID:     domainErr.GetRequestID(),
			ErrorInstance: domainErr,
		})
		return
	}
	// Non-platform errors
	reqCtx.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
		Error:         message,
		ErrorInstance: err,
	})
}

// HandleNewError creates a new typed error at the route layer and handles it
func HandleNewError(reqCtx *gin.Context, errorType platformerrors.ErrorType, message string) {
	ctx := reqCtx.Request.Context()
	err := platformerrors.NewError(ctx, platformerrors.LayerRoute, errorType, message, nil)

	reqCtx.AbortWithStatusJSON(platformerrors.ErrorTypeToHTTPStatus(errorType), ErrorResponse{
		Error:         message,
		RequestID:     err.GetRequestID(),
		ErrorInstance: err,
	})
}
