package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/rafabene/avaliapro-backend/internal/domain/entities"
	"github.com/rafabene/avaliapro-backend/internal/domain/errors"
	"github.com/rafabene/avaliapro-backend/internal/domain/ports"
)

// JWTIssuer implementa ports.TokenIssuer com HS256.
// O token carrega {sub: userId, role} e expira conforme configurado
// (padrão 24h).
type JWTIssuer struct {
	secret []byte
	expiry time.Duration
}

// NewJWTIssuer cria um novo JWTIssuer
func NewJWTIssuer(secret string, expiry time.Duration) ports.TokenIssuer {
	return &JWTIssuer{
		secret: []byte(secret),
		expiry: expiry,
	}
}

type tokenClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Issue emite um token assinado para o usuário
func (i *JWTIssuer) Issue(userID string, role entities.Role) (string, error) {
	now := time.Now()
	claims := tokenClaims{
		Role: string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.expiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(i.secret)
}

// Verify valida o token e extrai o actor. Token ausente, inválido ou
// expirado resulta em Unauthenticated.
func (i *JWTIssuer) Verify(tokenString string) (entities.Actor, error) {
	claims := &tokenClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return i.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return entities.Actor{}, errors.ErrUnauthorized
	}

	role := entities.Role(claims.Role)
	if claims.Subject == "" || !role.IsValid() {
		return entities.Actor{}, errors.ErrUnauthorized
	}

	return entities.Actor{ID: claims.Subject, Role: role}, nil
}
