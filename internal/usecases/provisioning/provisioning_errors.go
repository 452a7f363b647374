package provisioning

import (
	"errors"
	"fmt"
)

// Erros específicos para o contexto de provisionamento
var (
	ErrAccountNotFound    = errors.New("facebook account not found for project")
	ErrAllCreativesFailed = errors.New("all ad creatives failed")
	ErrUnknownFormat      = errors.New("unknown ad payload format")
)

// ValidationError indica que a requisição foi rejeitada antes de
// qualquer chamada remota.
type ValidationError struct {
	Field   string
	Message string
}

// Error implementa a interface error
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// NewValidationError cria um novo ValidationError
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// IsValidationError verifica se o erro é de validação de entrada
func IsValidationError(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}
