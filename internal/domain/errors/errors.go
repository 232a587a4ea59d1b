package errors

import "errors"

// Kind classifica erros de domínio para que a camada HTTP
// traduza cada um no status correto.
type Kind int

const (
	KindInternal Kind = iota
	KindUnauthenticated
	KindForbidden
	KindNotFound
	KindInvalidInput
	KindConflict
)

// Error é um erro de domínio com classificação e código de mensagem.
// Nota: Code é um message ID para i18n. As traduções devem estar em
// internal/infrastructure/i18n/locales/*.json
type Error struct {
	Kind Kind
	Code string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Code + ": " + e.Err.Error()
	}
	return e.Code
}

func (e *Error) Unwrap() error {
	return e.Err
}

// E cria um erro de domínio classificado
func E(kind Kind, code string) *Error {
	return &Error{Kind: kind, Code: code}
}

// Wrap embrulha um erro subjacente preservando a classificação
func Wrap(kind Kind, code string, err error) *Error {
	return &Error{Kind: kind, Code: code, Err: err}
}

// KindOf extrai a classificação de um erro. Erros desconhecidos
// são tratados como internos (sem vazar detalhes ao cliente).
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindInternal
}

// CodeOf extrai o código i18n de um erro, se houver
func CodeOf(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

// Business errors
var (
	ErrUserNotFound       = E(KindNotFound, "error.user_not_found")
	ErrStoreNotFound      = E(KindNotFound, "error.store_not_found")
	ErrRatingNotFound     = E(KindNotFound, "error.rating_not_found")
	ErrEmailAlreadyExists = E(KindConflict, "error.email_already_exists")
	ErrStoreEmailExists   = E(KindConflict, "error.store_email_already_exists")
	ErrRatingExists       = E(KindConflict, "error.rating_already_exists")
	ErrInvalidCredentials = E(KindUnauthenticated, "error.invalid_credentials")
	ErrUnauthorized       = E(KindUnauthenticated, "error.unauthorized")
	ErrForbidden          = E(KindForbidden, "error.forbidden")
)

// Validation errors
var (
	ErrInvalidEmail          = E(KindInvalidInput, "error.invalid_email")
	ErrInvalidNameLength     = E(KindInvalidInput, "error.invalid_name_length")
	ErrInvalidPasswordLength = E(KindInvalidInput, "error.invalid_password_length")
	ErrInvalidAddress        = E(KindInvalidInput, "error.invalid_address")
	ErrInvalidRole           = E(KindInvalidInput, "error.invalid_role")
	ErrInvalidStoreName      = E(KindInvalidInput, "error.invalid_store_name")
	ErrInvalidRatingValue    = E(KindInvalidInput, "error.invalid_rating_value")
	ErrInvalidRatingRefs     = E(KindInvalidInput, "error.invalid_rating_refs")
	ErrInvalidOwner          = E(KindInvalidInput, "error.invalid_owner")
)

// ProblemType define tipos de problemas (URIs RFC 7807)
// Nota: O domínio base virá de configuração (API_BASE_URL)
const (
	ProblemTypeValidation   = "/problems/validation-error"
	ProblemTypeNotFound     = "/problems/not-found"
	ProblemTypeConflict     = "/problems/conflict"
	ProblemTypeUnauthorized = "/problems/unauthorized"
	ProblemTypeForbidden    = "/problems/forbidden"
	ProblemTypeInternal     = "/problems/internal-error"
	ProblemTypeBadRequest   = "/problems/bad-request"
)
