package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/avaliapro-backend/internal/domain/entities"
	"github.com/rafabene/avaliapro-backend/internal/domain/ports"
	"github.com/rafabene/avaliapro-backend/internal/domain/repositories"
	"github.com/rafabene/avaliapro-backend/internal/handlers/dto"
	"github.com/rafabene/avaliapro-backend/internal/handlers/middleware"
	"github.com/rafabene/avaliapro-backend/internal/services"
)

// UserHandler lida com requisições HTTP de administração de usuários
type UserHandler struct {
	userService *services.UserService
	logger      ports.Logger
}

// NewUserHandler cria um novo UserHandler
func NewUserHandler(userService *services.UserService, logger ports.Logger) *UserHandler {
	return &UserHandler{
		userService: userService,
		logger:      logger,
	}
}

// Me retorna o usuário autenticado
func (h *UserHandler) Me(c *gin.Context) {
	actor, _ := middleware.ActorFromContext(c)

	user, err := h.userService.GetUser(c.Request.Context(), actor.ID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// ListUsers lista usuários com filtro por papel e paginação (admin)
func (h *UserHandler) ListUsers(c *gin.Context) {
	actor, _ := middleware.ActorFromContext(c)

	filters := repositories.UserFilters{
		Page:     queryInt(c, "page", 1),
		PageSize: queryInt(c, "page_size", 20),
	}
	if raw := c.Query("role"); raw != "" {
		role := entities.Role(raw)
		filters.Role = &role
	}

	users, err := h.userService.ListUsers(c.Request.Context(), actor, filters)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponses(users))
}

// GetUser busca um usuário por ID (admin)
func (h *UserHandler) GetUser(c *gin.Context) {
	user, err := h.userService.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// DeleteUser remove um usuário e tudo que depende dele (admin)
func (h *UserHandler) DeleteUser(c *gin.Context) {
	actor, _ := middleware.ActorFromContext(c)

	if err := h.userService.DeleteUser(c.Request.Context(), actor, c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *UserHandler) respondError(c *gin.Context, err error) {
	status, response := dto.FromDomainError(c, err)
	if status == http.StatusInternalServerError {
		h.logger.Error("user request failed", "path", c.Request.URL.Path, "error", err)
	}
	c.JSON(status, response)
}

func queryInt(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
