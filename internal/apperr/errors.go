package apperr

import (
	"errors"
	"fmt"
)

// Erreurs internes structurées. L'API ne les expose jamais directement:
// la frontière HTTP les convertit en enveloppe {error:"true", message}.
var (
	// ErrInvalidAggregateState signale une recomputation d'agrégat impossible
	// (division par zéro sur le cumul de coups)
	ErrInvalidAggregateState = errors.New("invalid aggregate state: cumulative punch count is zero")

	// ErrSessionNotFound signale qu'une session référencée a disparu en cours de mise à jour
	ErrSessionNotFound = errors.New("training session not found")

	// ErrNotFound signale une ressource absente (utilisateur, entrée de classement...)
	ErrNotFound = errors.New("not found")
)

// ValidationError décrit un champ invalide dans une requête entrante
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Reason)
}

// Validation construit une ValidationError
func Validation(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// IsValidation indique si err est (ou enveloppe) une erreur de validation
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
