package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/adanyl0v/taskpad/internal/services"
)

type authenticateRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authenticateResponse struct {
	UserID    string    `json:"userId"`
	Message   string    `json:"message"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func (h *handlerImpl) HandleAuthenticate(c *gin.Context) {
	var req authenticateRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()).withDetail(err.Error()))
		return
	}

	result, err := h.auth.Authenticate(c, services.AuthenticateParams{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to authenticate user")
		recordAuthAttempt(false)
		abortWithServiceError(c, err, "failed to authenticate user")
		return
	}
	recordAuthAttempt(true)

	c.JSON(http.StatusOK, authenticateResponse{
		UserID:    result.UserID,
		Message:   "authentication successful",
		Token:     result.AccessToken,
		ExpiresAt: result.AccessTokenExpiresAt,
	})
}
