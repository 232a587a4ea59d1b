package dto

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidators registra regras customizadas no engine de binding
// do Gin. Chamar uma vez na inicialização.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}

	// displayname: nome de exibição de usuário (20 a 60 caracteres)
	return v.RegisterValidation("displayname", func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		return len(value) >= 20 && len(value) <= 60
	})
}

// BindingErrors converte erros do validator em ValidationError
func BindingErrors(err error) []ValidationError {
	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return nil
	}

	result := make([]ValidationError, 0, len(validationErrs))
	for _, fieldErr := range validationErrs {
		result = append(result, ValidationError{
			Field:   fieldErr.Field(),
			Message: fieldErr.Error(),
			Tag:     fieldErr.Tag(),
		})
	}
	return result
}
