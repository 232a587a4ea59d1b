package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/moogar0880/problems"

	"github.com/rafabene/avaliapro-backend/internal/domain/entities"
	"github.com/rafabene/avaliapro-backend/internal/domain/errors"
	"github.com/rafabene/avaliapro-backend/internal/domain/ports"
	"github.com/rafabene/avaliapro-backend/internal/infrastructure/i18n"
)

// ActorContextKey é a chave usada para armazenar o actor autenticado no contexto
const ActorContextKey = "actor"

// AuthMiddleware autentica requisições via token Bearer
type AuthMiddleware struct {
	issuer ports.TokenIssuer
}

// NewAuthMiddleware cria um novo middleware de autenticação
func NewAuthMiddleware(issuer ports.TokenIssuer) *AuthMiddleware {
	return &AuthMiddleware{issuer: issuer}
}

// RequireAuth exige um token válido e injeta o actor no contexto
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || token == "" {
			abortProblem(c, http.StatusUnauthorized, errors.ProblemTypeUnauthorized,
				"error.unauthorized.title", "error.unauthorized.detail")
			return
		}

		actor, err := m.issuer.Verify(token)
		if err != nil {
			abortProblem(c, http.StatusUnauthorized, errors.ProblemTypeUnauthorized,
				"error.unauthorized.title", "error.unauthorized.detail")
			return
		}

		c.Set(ActorContextKey, actor)
		c.Next()
	}
}

// RequireRole exige que o actor autenticado tenha um dos roles
func (m *AuthMiddleware) RequireRole(roles ...entities.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := ActorFromContext(c)
		if !ok {
			abortProblem(c, http.StatusUnauthorized, errors.ProblemTypeUnauthorized,
				"error.unauthorized.title", "error.unauthorized.detail")
			return
		}

		for _, role := range roles {
			if actor.Role == role {
				c.Next()
				return
			}
		}

		abortProblem(c, http.StatusForbidden, errors.ProblemTypeForbidden,
			"error.forbidden.title", "error.forbidden.detail")
	}
}

// ActorFromContext retorna o actor autenticado da requisição
func ActorFromContext(c *gin.Context) (entities.Actor, bool) {
	value, exists := c.Get(ActorContextKey)
	if !exists {
		return entities.Actor{}, false
	}
	actor, ok := value.(entities.Actor)
	return actor, ok
}

// abortProblem encerra a requisição com uma resposta RFC 7807.
// Duplica o mínimo de dto para evitar ciclo de import (dto depende
// deste pacote para as chaves de contexto).
func abortProblem(c *gin.Context, status int, problemType, titleKey, detailKey string) {
	baseURL := c.GetString("base_url")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	title := titleKey
	detail := detailKey
	if value, exists := c.Get(I18nServiceContextKey); exists {
		if service, ok := value.(*i18n.Service); ok {
			lang := c.GetString(LanguageContextKey)
			title = service.T(lang, titleKey)
			detail = service.T(lang, detailKey)
		}
	}

	c.AbortWithStatusJSON(status, problems.DefaultProblem{
		Type:     baseURL + problemType,
		Title:    title,
		Status:   status,
		Detail:   detail,
		Instance: c.Request.URL.Path,
	})
}
