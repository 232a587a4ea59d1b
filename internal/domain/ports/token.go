package ports

import "github.com/rafabene/avaliapro-backend/internal/domain/entities"

// TokenIssuer define o contrato com o emissor de credenciais:
// um token assinado carregando {userId, role} com validade de 1 dia.
// O core confia no conteúdo decodificado sem reverificar a senha.
type TokenIssuer interface {
	Issue(userID string, role entities.Role) (string, error)
	Verify(token string) (entities.Actor, error)
}
