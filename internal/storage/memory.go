package storage

import (
	"sync"

	"github.com/Vamap91/carglass-assistente/internal/models"
)

// MemoryStore serves client records from a static mock dataset. It is
// the fallback when the real status API is disabled or unreachable.
// Records are keyed by CPF, with auxiliary indexes mapping phone,
// plate and service-order number back to the owning CPF.
type MemoryStore struct {
	mu         sync.RWMutex
	clients    map[string]*models.ClientRecord
	phoneIndex map[string]string
	plateIndex map[string]string
	orderIndex map[string]string
}

// NewMemoryStore creates a store pre-loaded with the mock dataset.
func NewMemoryStore() *MemoryStore {
	m := &MemoryStore{
		clients:    make(map[string]*models.ClientRecord),
		phoneIndex: make(map[string]string),
		plateIndex: make(map[string]string),
		orderIndex: make(map[string]string),
	}

	for _, record := range mockClients() {
		m.addClient(record)
	}
	// Extra order aliases kept from the production mock table.
	m.orderIndex["123456"] = "12345678900"

	return m
}

func (m *MemoryStore) addClient(record *models.ClientRecord) {
	m.clients[record.CPF] = record
	if record.Phone != "" {
		m.phoneIndex[record.Phone] = record.CPF
	}
	if record.Vehicle.Plate != "" {
		m.plateIndex[record.Vehicle.Plate] = record.CPF
	}
	if record.OrderID != "" {
		m.orderIndex[record.OrderID] = record.CPF
	}
}

// GetClientByCPF returns the record for cpf, or NotFoundError.
func (m *MemoryStore) GetClientByCPF(cpf string) (*models.ClientRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	record, exists := m.clients[cpf]
	if !exists {
		return nil, &NotFoundError{Kind: models.IdentifierCPF, Value: cpf}
	}
	return record, nil
}

// GetClientByPhone resolves phone to a CPF through the index.
func (m *MemoryStore) GetClientByPhone(phone string) (*models.ClientRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	cpf, exists := m.phoneIndex[phone]
	if !exists {
		return nil, &NotFoundError{Kind: models.IdentifierPhone, Value: phone}
	}
	return m.clients[cpf], nil
}

// GetClientByPlate resolves a license plate to a CPF through the index.
func (m *MemoryStore) GetClientByPlate(plate string) (*models.ClientRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	cpf, exists := m.plateIndex[plate]
	if !exists {
		return nil, &NotFoundError{Kind: models.IdentifierPlate, Value: plate}
	}
	return m.clients[cpf], nil
}

// GetClientByOrder resolves a service-order number to a CPF through
// the index.
func (m *MemoryStore) GetClientByOrder(order string) (*models.ClientRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	cpf, exists := m.orderIndex[order]
	if !exists {
		return nil, &NotFoundError{Kind: models.IdentifierOrder, Value: order}
	}
	return m.clients[cpf], nil
}

// mockClients is the static dataset used when USE_REAL_API is off or
// the upstream is down. The CPFs here are also the validator's test
// allowlist.
func mockClients() []*models.ClientRecord {
	return []*models.ClientRecord{
		{
			Name:        "Carlos Silva",
			CPF:         "12345678900",
			Phone:       "11987654321",
			OrderID:     "ORD12345",
			Status:      "Em andamento",
			ServiceType: "Troca de Parabrisa",
			Vehicle: models.Vehicle{
				Model: "Honda Civic",
				Plate: "ABC1234",
				Year:  "2022",
			},
		},
		{
			Name:        "Maria Santos",
			CPF:         "98765432100",
			Phone:       "11976543210",
			OrderID:     "ORD67890",
			Status:      "Serviço agendado com sucesso",
			ServiceType: "Reparo de Trinca",
			Vehicle: models.Vehicle{
				Model: "Toyota Corolla",
				Plate: "DEF5678",
				Year:  "2021",
			},
		},
	}
}
