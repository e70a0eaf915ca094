package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sma-console-gateway/internal/middleware"
	"github.com/noah-isme/sma-console-gateway/internal/models"
	"github.com/noah-isme/sma-console-gateway/pkg/response"
)

type dashboardService interface {
	Stats(ctx context.Context, caller models.User) (*models.DashboardStats, bool, error)
}

// DashboardHandler exposes the role dashboard counters.
type DashboardHandler struct {
	service dashboardService
}

// NewDashboardHandler constructs a dashboard handler.
func NewDashboardHandler(svc dashboardService) *DashboardHandler {
	return &DashboardHandler{service: svc}
}

// Get godoc
// @Summary Dashboard counters for the caller's role
// @Tags Dashboard
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /dashboard [get]
func (h *DashboardHandler) Get(c *gin.Context) {
	user, ok := sessionUser(c)
	if !ok {
		return
	}
	stats, hit, err := h.service.Stats(c.Request.Context(), user)
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, hit)
	response.JSON(c, http.StatusOK, stats, nil, middleware.ExtractMeta(c))
}
