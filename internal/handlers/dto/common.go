package dto

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/moogar0880/problems"

	"github.com/rafabene/avaliapro-backend/internal/domain/errors"
)

// ErrorResponse segue RFC 7807 (Problem Details for HTTP APIs)
type ErrorResponse struct {
	problems.DefaultProblem
	Errors []ValidationError `json:"errors,omitempty"`
}

// ValidationError representa um erro de validação de campo
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Tag     string `json:"tag,omitempty"`
}

// NewErrorResponseI18n cria uma resposta de erro RFC 7807 usando i18n
func NewErrorResponseI18n(c *gin.Context, problemType, titleKey, detailKey string, status int, params ...map[string]interface{}) ErrorResponse {
	// Pegar base URL da configuração
	baseURL := c.GetString("base_url")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	return ErrorResponse{
		DefaultProblem: problems.DefaultProblem{
			Type:     baseURL + problemType,
			Title:    T(c, titleKey, params...),
			Status:   status,
			Detail:   T(c, detailKey, params...),
			Instance: c.Request.URL.Path,
		},
	}
}

// Helper functions para respostas de erro comuns com i18n

// ValidationErrorResponseI18n cria uma resposta de erro de validação
func ValidationErrorResponseI18n(c *gin.Context, validationErrors []ValidationError) ErrorResponse {
	response := NewErrorResponseI18n(
		c,
		errors.ProblemTypeValidation,
		"error.validation.title",
		"error.validation.detail",
		http.StatusBadRequest,
	)
	response.Errors = validationErrors
	return response
}

// UnauthorizedErrorResponseI18n cria uma resposta de erro 401
func UnauthorizedErrorResponseI18n(c *gin.Context) ErrorResponse {
	return NewErrorResponseI18n(
		c,
		errors.ProblemTypeUnauthorized,
		"error.unauthorized.title",
		"error.unauthorized.detail",
		http.StatusUnauthorized,
	)
}

// InternalErrorResponseI18n cria uma resposta de erro 500
func InternalErrorResponseI18n(c *gin.Context) ErrorResponse {
	return NewErrorResponseI18n(
		c,
		errors.ProblemTypeInternal,
		"error.internal.title",
		"error.internal.detail",
		http.StatusInternalServerError,
	)
}

// FromDomainError traduz um erro de domínio classificado em status HTTP
// e resposta RFC 7807. Contrato: Unauthenticated 401, Forbidden 403,
// NotFound 404, InvalidInput e Conflict 400, interno 500 (sem vazar
// detalhes).
func FromDomainError(c *gin.Context, err error) (int, ErrorResponse) {
	kind := errors.KindOf(err)
	code := errors.CodeOf(err)

	var (
		status      int
		problemType string
		titleKey    string
	)

	switch kind {
	case errors.KindUnauthenticated:
		status = http.StatusUnauthorized
		problemType = errors.ProblemTypeUnauthorized
		titleKey = "error.unauthorized.title"
	case errors.KindForbidden:
		status = http.StatusForbidden
		problemType = errors.ProblemTypeForbidden
		titleKey = "error.forbidden.title"
	case errors.KindNotFound:
		status = http.StatusNotFound
		problemType = errors.ProblemTypeNotFound
		titleKey = "error.not_found.title"
	case errors.KindInvalidInput:
		status = http.StatusBadRequest
		problemType = errors.ProblemTypeValidation
		titleKey = "error.validation.title"
	case errors.KindConflict:
		status = http.StatusBadRequest
		problemType = errors.ProblemTypeConflict
		titleKey = "error.conflict.title"
	default:
		return http.StatusInternalServerError, InternalErrorResponseI18n(c)
	}

	detailKey := code
	if detailKey == "" {
		detailKey = titleKey
	}

	return status, NewErrorResponseI18n(c, problemType, titleKey, detailKey, status)
}
