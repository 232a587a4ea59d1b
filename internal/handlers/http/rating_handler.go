package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/avaliapro-backend/internal/domain/ports"
	"github.com/rafabene/avaliapro-backend/internal/domain/repositories"
	"github.com/rafabene/avaliapro-backend/internal/handlers/dto"
	"github.com/rafabene/avaliapro-backend/internal/handlers/middleware"
	"github.com/rafabene/avaliapro-backend/internal/services"
)

// RatingHandler lida com requisições HTTP relacionadas a avaliações
type RatingHandler struct {
	ratingService *services.RatingService
	logger        ports.Logger
}

// NewRatingHandler cria um novo RatingHandler
func NewRatingHandler(ratingService *services.RatingService, logger ports.Logger) *RatingHandler {
	return &RatingHandler{
		ratingService: ratingService,
		logger:        logger,
	}
}

// CreateRating cria uma avaliação. No caminho admin o corpo pode
// indicar o usuário em nome de quem avaliar.
func (h *RatingHandler) CreateRating(c *gin.Context) {
	actor, _ := middleware.ActorFromContext(c)

	var req dto.CreateRatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ValidationErrorResponseI18n(c, dto.BindingErrors(err)))
		return
	}

	rating, err := h.ratingService.CreateRating(c.Request.Context(), actor, services.CreateRatingInput{
		StoreID: req.StoreID,
		Value:   req.Rating,
		Comment: req.Comment,
		UserID:  req.UserID,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToRatingResponse(rating))
}

// UpdateRating atualiza uma avaliação (autor ou admin)
func (h *RatingHandler) UpdateRating(c *gin.Context) {
	actor, _ := middleware.ActorFromContext(c)

	var req dto.UpdateRatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ValidationErrorResponseI18n(c, dto.BindingErrors(err)))
		return
	}

	rating, err := h.ratingService.UpdateRating(c.Request.Context(), actor, c.Param("id"), services.UpdateRatingInput{
		Value:   req.Rating,
		Comment: req.Comment,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToRatingResponse(rating))
}

// DeleteRating remove uma avaliação (autor ou admin)
func (h *RatingHandler) DeleteRating(c *gin.Context) {
	actor, _ := middleware.ActorFromContext(c)

	if err := h.ratingService.DeleteRating(c.Request.Context(), actor, c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// RatingsByStore lista as avaliações de uma loja (público)
func (h *RatingHandler) RatingsByStore(c *gin.Context) {
	ratings, err := h.ratingService.RatingsByStore(c.Request.Context(), c.Param("storeId"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToRatingResponses(ratings))
}

// MyRatings lista as avaliações do usuário autenticado
func (h *RatingHandler) MyRatings(c *gin.Context) {
	actor, _ := middleware.ActorFromContext(c)

	ratings, err := h.ratingService.MyRatings(c.Request.Context(), actor.ID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToRatingResponses(ratings))
}

// ListRatings lista avaliações com filtros (admin)
func (h *RatingHandler) ListRatings(c *gin.Context) {
	filters := repositories.RatingFilters{
		StoreID: c.Query("store_id"),
		UserID:  c.Query("user_id"),
	}
	if raw := c.Query("rating"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil {
			filters.Value = &value
		}
	}

	ratings, err := h.ratingService.ListRatings(c.Request.Context(), filters)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToRatingResponses(ratings))
}

func (h *RatingHandler) respondError(c *gin.Context, err error) {
	status, response := dto.FromDomainError(c, err)
	if status == http.StatusInternalServerError {
		h.logger.Error("rating request failed", "path", c.Request.URL.Path, "error", err)
	}
	c.JSON(status, response)
}
