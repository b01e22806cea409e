package storage

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/Vamap91/carglass-assistente/internal/models"
)

// APIStore fetches client records from the CarGlass status API. The
// endpoint layout is {base}/{kind}/{value} and answers the same
// sucesso/dados payload the mock dataset mirrors.
type APIStore struct {
	baseURL string
	client  *http.Client
}

// NewAPIStore creates a store for the given base URL with a fixed
// request timeout.
func NewAPIStore(baseURL string, timeout time.Duration) *APIStore {
	return &APIStore{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

func (a *APIStore) GetClientByCPF(cpf string) (*models.ClientRecord, error) {
	return a.fetch(models.IdentifierCPF, cpf)
}

func (a *APIStore) GetClientByPhone(phone string) (*models.ClientRecord, error) {
	return a.fetch(models.IdentifierPhone, phone)
}

func (a *APIStore) GetClientByPlate(plate string) (*models.ClientRecord, error) {
	return a.fetch(models.IdentifierPlate, plate)
}

func (a *APIStore) GetClientByOrder(order string) (*models.ClientRecord, error) {
	return a.fetch(models.IdentifierOrder, order)
}

func (a *APIStore) fetch(kind models.IdentifierKind, value string) (*models.ClientRecord, error) {
	endpoint := fmt.Sprintf("%s/%s/%s", a.baseURL, kind, value)

	resp, err := a.client.Get(endpoint)
	if err != nil {
		return nil, fmt.Errorf("carglass api request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("carglass api returned status %d", resp.StatusCode)
	}

	var payload models.LookupResult
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("carglass api decode: %w", err)
	}

	if !payload.Found || payload.Record == nil {
		return nil, &NotFoundError{Kind: kind, Value: value}
	}
	return payload.Record, nil
}
