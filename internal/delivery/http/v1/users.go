package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adanyl0v/taskpad/internal/models"
	"github.com/adanyl0v/taskpad/internal/services"
)

// The password hash is never part of the representation.
type userResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func newUserResponse(user *models.User) userResponse {
	return userResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
	}
}

type userRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r userRequest) params() services.RegisterParams {
	return services.RegisterParams{
		Name:     r.Name,
		Email:    r.Email,
		Password: r.Password,
	}
}

func (h *handlerImpl) HandleRegister(c *gin.Context) {
	var req userRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()).withDetail(err.Error()))
		return
	}

	user, err := h.users.Register(c, req.params())
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to register user")
		abortWithServiceError(c, err, "failed to create user")
		return
	}

	c.JSON(http.StatusCreated, newUserResponse(user))
}

func (h *handlerImpl) HandleUpdateUser(c *gin.Context) {
	userID := c.Param("id")
	if !h.authorizeUser(c, userID) {
		return
	}

	var req userRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()).withDetail(err.Error()))
		return
	}

	user, err := h.users.UpdateUser(c, services.UpdateUserParams{
		ID:             userID,
		RegisterParams: req.params(),
	})
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("user_id", userID).
			Msg("failed to update user")
		abortWithServiceError(c, err, "failed to update user")
		return
	}

	c.JSON(http.StatusOK, newUserResponse(user))
}

func (h *handlerImpl) HandleDeleteUser(c *gin.Context) {
	userID := c.Param("id")
	if !h.authorizeUser(c, userID) {
		return
	}

	err := h.users.DeleteUser(c, userID)
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("user_id", userID).
			Msg("failed to delete user")
		abortWithServiceError(c, err, "failed to delete user")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "user deleted"})
}

// authorizeUser aborts with 403 when an authenticated requester acts on
// another user's resources.
func (h *handlerImpl) authorizeUser(c *gin.Context, ownerID string) bool {
	requester, ok := requesterID(c)
	if !ok || requester == ownerID {
		return true
	}

	h.logger.Warn().
		Str("requester_id", requester).
		Str("owner_id", ownerID).
		Msg("requester is not the owner")
	abort(c, newForbiddenError(services.ErrForbidden.Error()))
	return false
}
