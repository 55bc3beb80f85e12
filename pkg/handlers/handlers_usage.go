package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	defaultUsageDays = 30
	maxUsageDays     = 365
)

// GetUsage returns daily search statistics
func (h *Handler) GetUsage(c *gin.Context) {
	days := defaultUsageDays
	if v, err := strconv.Atoi(c.Query("days")); err == nil && v > 0 {
		days = min(v, maxUsageDays)
	}

	usage, err := h.Catalog.Usage(c.Request.Context(), days)
	if err != nil {
		h.Log.Error("usage", slog.Any("error", err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch usage details"})
		return
	}

	// Calculate totals
	var totalRequests, totalMatched int64
	for _, u := range usage {
		totalRequests += int64(u.RequestCount)
		totalMatched += int64(u.TotalMatched)
	}

	c.JSON(http.StatusOK, gin.H{
		"days":          days,
		"usage_history": usage,
		"totals": gin.H{
			"requests": totalRequests,
			"matched":  totalMatched,
		},
	})
}
