package handlers

import (
	"net/http"

	"livenzo-backend/internal/cache"
	"livenzo-backend/internal/health"
	"livenzo-backend/pkg/utils"
)

type HealthHandler struct {
	Checker *health.HealthChecker
}

func NewHealthHandler(checker *health.HealthChecker) *HealthHandler {
	return &HealthHandler{Checker: checker}
}

// Health is the liveness endpoint used by the load balancer
// GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	status := h.Checker.CheckBasic()

	code := http.StatusOK
	if status.Status != "healthy" {
		code = http.StatusServiceUnavailable
	}
	utils.JSON(w, code, status)
}

// HealthDetailed adds host stats and cache health
// GET /health/detailed
func (h *HealthHandler) HealthDetailed(w http.ResponseWriter, r *http.Request) {
	status := h.Checker.CheckBasic()
	sys := h.Checker.CheckSystem()

	code := http.StatusOK
	if status.Status != "healthy" {
		code = http.StatusServiceUnavailable
	}

	utils.JSON(w, code, map[string]interface{}{
		"status":   status.Status,
		"database": status.Database,
		"system":   sys,
		"redis":    cache.IsHealthy(),
	})
}
