package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Health runs every dependency check and answers 503 if any fails.
func (h *Handler) Health(c *gin.Context) {
	status := http.StatusOK
	results := make(map[string]string, len(h.checks))

	for name, check := range h.checks {
		ctx, cancel := context.WithTimeout(c.Request.Context(), h.healthTimeout)
		err := check(ctx)
		cancel()

		if err != nil {
			h.log.WithError(err).WithField("check", name).Warn("health check failed")
			results[name] = "unavailable"
			status = http.StatusServiceUnavailable
			continue
		}
		results[name] = "ok"
	}

	state := "ok"
	if status != http.StatusOK {
		state = "unavailable"
	}
	c.JSON(status, gin.H{"status": state, "checks": results})
}
