package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adanyl0v/taskpad/internal/services"
)

var (
	errInvalidRequestBody    = errors.New("invalid request body")
	errAuthorizationRequired = errors.New("authorization required")
	errRateLimitExceeded     = errors.New("rate limit exceeded")
)

type apiError struct {
	Code    int    `json:"-"`
	Message string `json:"error"`
	Detail  string `json:"detail,omitempty"`
}

func newAPIError(code int, message string) apiError {
	return apiError{
		Code:    code,
		Message: message,
	}
}

func (e apiError) Error() string {
	return e.Message
}

func (e apiError) withDetail(detail string) apiError {
	e.Detail = detail
	return e
}

func abort(c *gin.Context, err apiError) {
	c.AbortWithStatusJSON(err.Code, err)
}

func newBadRequestError(message string) apiError {
	return newAPIError(http.StatusBadRequest, message)
}

func newUnauthorizedError(message string) apiError {
	return newAPIError(http.StatusUnauthorized, message)
}

func newForbiddenError(message string) apiError {
	return newAPIError(http.StatusForbidden, message)
}

func newNotFoundError(message string) apiError {
	return newAPIError(http.StatusNotFound, message)
}

func newConflictError(message string) apiError {
	return newAPIError(http.StatusConflict, message)
}

func newInternalError(message string) apiError {
	return newAPIError(http.StatusInternalServerError, message)
}

// abortWithServiceError maps a service error onto the response. Errors
// outside the known set become a 500 carrying internalMessage with the
// underlying error text as detail.
func abortWithServiceError(c *gin.Context, err error, internalMessage string) {
	var validationErr *services.ValidationError
	switch {
	case errors.As(err, &validationErr):
		abort(c, newBadRequestError(validationErr.Message).withDetail(validationErr.Detail()))
	case errors.Is(err, services.ErrTaskNotFound):
		abort(c, newNotFoundError(services.ErrTaskNotFound.Error()))
	case errors.Is(err, services.ErrUserNotFound):
		abort(c, newNotFoundError(services.ErrUserNotFound.Error()))
	case errors.Is(err, services.ErrUserAlreadyExists):
		abort(c, newConflictError(services.ErrUserAlreadyExists.Error()))
	case errors.Is(err, services.ErrInvalidCredentials):
		abort(c, newUnauthorizedError(services.ErrInvalidCredentials.Error()))
	case errors.Is(err, services.ErrForbidden):
		abort(c, newForbiddenError(services.ErrForbidden.Error()))
	default:
		abort(c, newInternalError(internalMessage).withDetail(err.Error()))
	}
}
