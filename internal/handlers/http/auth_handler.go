package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/avaliapro-backend/internal/domain/ports"
	"github.com/rafabene/avaliapro-backend/internal/handlers/dto"
	"github.com/rafabene/avaliapro-backend/internal/services"
)

// AuthHandler lida com cadastro e login
type AuthHandler struct {
	authService *services.AuthService
	logger      ports.Logger
}

// NewAuthHandler cria um novo AuthHandler
func NewAuthHandler(authService *services.AuthService, logger ports.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

// Signup cadastra um novo usuário e retorna o token inicial
func (h *AuthHandler) Signup(c *gin.Context) {
	var req dto.SignupRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ValidationErrorResponseI18n(c, dto.BindingErrors(err)))
		return
	}

	user, token, err := h.authService.Signup(c.Request.Context(), services.SignupInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Address:  req.Address,
		Role:     req.Role,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.AuthResponse{
		Token: token,
		User:  dto.ToUserResponse(user),
	})
}

// Login autentica por email e senha
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ValidationErrorResponseI18n(c, dto.BindingErrors(err)))
		return
	}

	user, token, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.AuthResponse{
		Token: token,
		User:  dto.ToUserResponse(user),
	})
}

func (h *AuthHandler) respondError(c *gin.Context, err error) {
	status, response := dto.FromDomainError(c, err)
	if status == http.StatusInternalServerError {
		h.logger.Error("auth request failed", "path", c.Request.URL.Path, "error", err)
	}
	c.JSON(status, response)
}
