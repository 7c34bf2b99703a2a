package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *handlerImpl) HandleGetSummary(c *gin.Context) {
	userID := c.Param("userId")
	if !h.authorizeUser(c, userID) {
		return
	}

	text, err := h.summary.GenerateSummary(c, userID)
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("user_id", userID).
			Msg("failed to generate summary")
		recordSummaryRequest(false)
		abortWithServiceError(c, err, "failed to generate summary")
		return
	}
	recordSummaryRequest(true)

	c.JSON(http.StatusOK, gin.H{"summary": text})
}
