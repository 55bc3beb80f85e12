package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// TestConnection checks that the catalog tables can be read
func (h *Handler) TestConnection(c *gin.Context) {
	status := h.Catalog.Probe(c.Request.Context())

	camps := status["camps"]
	if !camps.Accessible {
		h.Log.Error("catalog unreachable", "error", camps.Error)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success":      false,
			"error":        "Database error",
			"errorMessage": camps.Error,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"message":        "Successfully connected to the camp catalog!",
		"camps":          camps,
		"camp_sessions":  status["camp_sessions"],
		"camp_interests": status["camp_interests"],
	})
}
