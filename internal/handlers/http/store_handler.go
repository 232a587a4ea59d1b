package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/avaliapro-backend/internal/domain/ports"
	"github.com/rafabene/avaliapro-backend/internal/domain/repositories"
	"github.com/rafabene/avaliapro-backend/internal/handlers/dto"
	"github.com/rafabene/avaliapro-backend/internal/handlers/middleware"
	"github.com/rafabene/avaliapro-backend/internal/services"
)

// StoreHandler lida com requisições HTTP relacionadas a lojas
type StoreHandler struct {
	storeService *services.StoreService
	logger       ports.Logger
}

// NewStoreHandler cria um novo StoreHandler
func NewStoreHandler(storeService *services.StoreService, logger ports.Logger) *StoreHandler {
	return &StoreHandler{
		storeService: storeService,
		logger:       logger,
	}
}

// ListStores lista lojas com busca por nome/endereço, anexando a
// avaliação do usuário autenticado
func (h *StoreHandler) ListStores(c *gin.Context) {
	actor, _ := middleware.ActorFromContext(c)

	stores, err := h.storeService.ListStores(c.Request.Context(), repositories.StoreFilters{
		Search:   c.Query("search"),
		Name:     c.Query("name"),
		Address:  c.Query("address"),
		ViewerID: actor.ID,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToStoreResponses(stores))
}

// MyStores lista as lojas do owner autenticado
func (h *StoreHandler) MyStores(c *gin.Context) {
	actor, _ := middleware.ActorFromContext(c)

	stores, err := h.storeService.MyStores(c.Request.Context(), actor.ID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToStoreResponses(stores))
}

// GetStore busca uma loja por ID
func (h *StoreHandler) GetStore(c *gin.Context) {
	actor, _ := middleware.ActorFromContext(c)

	store, err := h.storeService.GetStore(c.Request.Context(), actor.ID, c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToStoreResponse(store))
}

// CreateStore cria uma nova loja (owner para si, admin para um owner)
func (h *StoreHandler) CreateStore(c *gin.Context) {
	actor, _ := middleware.ActorFromContext(c)

	var req dto.CreateStoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ValidationErrorResponseI18n(c, dto.BindingErrors(err)))
		return
	}

	store, err := h.storeService.CreateStore(c.Request.Context(), actor, services.CreateStoreInput{
		Name:    req.Name,
		Email:   req.Email,
		Address: req.Address,
		OwnerID: req.OwnerID,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToStoreResponse(store))
}

// UpdateStore atualiza uma loja
func (h *StoreHandler) UpdateStore(c *gin.Context) {
	actor, _ := middleware.ActorFromContext(c)

	var req dto.UpdateStoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ValidationErrorResponseI18n(c, dto.BindingErrors(err)))
		return
	}

	store, err := h.storeService.UpdateStore(c.Request.Context(), actor, c.Param("id"), services.UpdateStoreInput{
		Name:    req.Name,
		Email:   req.Email,
		Address: req.Address,
		OwnerID: req.OwnerID,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToStoreResponse(store))
}

// DeleteStore remove uma loja
func (h *StoreHandler) DeleteStore(c *gin.Context) {
	actor, _ := middleware.ActorFromContext(c)

	if err := h.storeService.DeleteStore(c.Request.Context(), actor, c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *StoreHandler) respondError(c *gin.Context, err error) {
	status, response := dto.FromDomainError(c, err)
	if status == http.StatusInternalServerError {
		h.logger.Error("store request failed", "path", c.Request.URL.Path, "error", err)
	}
	c.JSON(status, response)
}
