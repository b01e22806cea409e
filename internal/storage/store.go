package storage

import (
	"github.com/Vamap91/carglass-assistente/internal/models"
)

// Store defines the interface for client-record lookups. Both the
// real CarGlass status API and the in-memory mock dataset implement
// it; callers pick the method matching the identifier the customer
// typed.
type Store interface {
	GetClientByCPF(cpf string) (*models.ClientRecord, error)
	GetClientByPhone(phone string) (*models.ClientRecord, error)
	GetClientByPlate(plate string) (*models.ClientRecord, error)
	GetClientByOrder(order string) (*models.ClientRecord, error)
}

// NotFoundError is returned when no record matches the identifier.
// A miss surfaces to the user; any other error from a Store means the
// upstream is unavailable and triggers the mock fallback instead.
type NotFoundError struct {
	Kind  models.IdentifierKind
	Value string
}

func (e *NotFoundError) Error() string {
	return "cliente não encontrado para " + string(e.Kind)
}

// IsNotFound reports whether err is a record miss.
func IsNotFound(err error) bool {
	_, ok := err.(*NotFoundError)
	return ok
}
