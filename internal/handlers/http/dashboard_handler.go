package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/avaliapro-backend/internal/domain/ports"
	"github.com/rafabene/avaliapro-backend/internal/handlers/dto"
	"github.com/rafabene/avaliapro-backend/internal/handlers/middleware"
	"github.com/rafabene/avaliapro-backend/internal/services"
)

// DashboardHandler lida com as estatísticas por papel
type DashboardHandler struct {
	dashboardService *services.DashboardService
	logger           ports.Logger
}

// NewDashboardHandler cria um novo DashboardHandler
func NewDashboardHandler(dashboardService *services.DashboardService, logger ports.Logger) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		logger:           logger,
	}
}

// AdminStats retorna a visão global (admin)
func (h *DashboardHandler) AdminStats(c *gin.Context) {
	stats, err := h.dashboardService.AdminStats(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAdminDashboardResponse(stats))
}

// OwnerStats retorna a visão do owner sobre as lojas dele
func (h *DashboardHandler) OwnerStats(c *gin.Context) {
	actor, _ := middleware.ActorFromContext(c)

	stats, err := h.dashboardService.OwnerStats(c.Request.Context(), actor.ID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToOwnerDashboardResponse(stats))
}

// UserStats retorna a visão pessoal do usuário
func (h *DashboardHandler) UserStats(c *gin.Context) {
	actor, _ := middleware.ActorFromContext(c)

	stats, err := h.dashboardService.UserStats(c.Request.Context(), actor.ID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDashboardResponse(stats))
}

func (h *DashboardHandler) respondError(c *gin.Context, err error) {
	status, response := dto.FromDomainError(c, err)
	if status == http.StatusInternalServerError {
		h.logger.Error("dashboard request failed", "path", c.Request.URL.Path, "error", err)
	}
	c.JSON(status, response)
}
