package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/rafabene/avaliapro-backend/internal/domain/ports"
	"github.com/rafabene/avaliapro-backend/internal/handlers/dto"
	"github.com/rafabene/avaliapro-backend/internal/services"
)

const (
	statsPushInterval = 10 * time.Second
	statsWriteWait    = 5 * time.Second
)

// DashboardStreamHandler empurra as estatísticas do admin por websocket
// em intervalos fixos, para o painel atualizar sem polling
type DashboardStreamHandler struct {
	dashboardService *services.DashboardService
	logger           ports.Logger
	upgrader         websocket.Upgrader
}

// NewDashboardStreamHandler cria um novo DashboardStreamHandler
func NewDashboardStreamHandler(dashboardService *services.DashboardService, logger ports.Logger) *DashboardStreamHandler {
	return &DashboardStreamHandler{
		dashboardService: dashboardService,
		logger:           logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// A autenticação já aconteceu no middleware; a origem fica
			// por conta do CORS do frontend configurado
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Stream faz o upgrade da conexão e envia as estatísticas do admin
// imediatamente e a cada intervalo, até o cliente desconectar
func (h *DashboardStreamHandler) Stream(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	// Descarta mensagens do cliente e detecta o fechamento da conexão
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(statsPushInterval)
	defer ticker.Stop()

	if err := h.push(c, conn); err != nil {
		return
	}

	for {
		select {
		case <-closed:
			return
		case <-c.Request.Context().Done():
			return
		case <-ticker.C:
			if err := h.push(c, conn); err != nil {
				return
			}
		}
	}
}

func (h *DashboardStreamHandler) push(c *gin.Context, conn *websocket.Conn) error {
	stats, err := h.dashboardService.AdminStats(c.Request.Context())
	if err != nil {
		h.logger.Error("dashboard stream stats failed", "error", err)
		return err
	}

	conn.SetWriteDeadline(time.Now().Add(statsWriteWait))
	if err := conn.WriteJSON(dto.ToAdminDashboardResponse(stats)); err != nil {
		h.logger.Debug("dashboard stream client gone", "error", err)
		return err
	}
	return nil
}
