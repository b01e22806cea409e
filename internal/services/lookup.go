package services

import (
	"fmt"
	"log"
	"time"

	"github.com/Vamap91/carglass-assistente/internal/cache"
	"github.com/Vamap91/carglass-assistente/internal/models"
	"github.com/Vamap91/carglass-assistente/internal/storage"
)

// ClientLookup resolves a classified identifier to a client record.
// Results are memoized; when the real API errors out the mock dataset
// answers instead, and the customer never sees the difference.
type ClientLookup struct {
	cache    *cache.Cache
	api      storage.Store // nil when USE_REAL_API is off
	fallback storage.Store
	ttl      time.Duration
}

// NewClientLookup wires the lookup chain. api may be nil to serve
// exclusively from the fallback dataset.
func NewClientLookup(c *cache.Cache, api, fallback storage.Store, ttl time.Duration) *ClientLookup {
	return &ClientLookup{
		cache:    c,
		api:      api,
		fallback: fallback,
		ttl:      ttl,
	}
}

// Lookup fetches the record for an identifier, caching whatever
// outcome (hit or miss) it lands on.
func (l *ClientLookup) Lookup(kind models.IdentifierKind, value string) models.LookupResult {
	key := fmt.Sprintf("client:%s:%s", kind, value)
	if cached, ok := l.cache.Get(key); ok {
		return cached
	}

	result := l.resolve(kind, value)
	l.cache.Set(key, result, l.ttl)
	return result
}

func (l *ClientLookup) resolve(kind models.IdentifierKind, value string) models.LookupResult {
	if l.api != nil {
		record, err := fetchFrom(l.api, kind, value)
		switch {
		case err == nil:
			return models.Found(record)
		case storage.IsNotFound(err):
			return models.NotFound(err.Error())
		default:
			// Upstream down or timing out: serve mock data instead.
			log.Printf("⚠️  CarGlass API failed, using mock data: %v", err)
		}
	}

	record, err := fetchFrom(l.fallback, kind, value)
	if err != nil {
		return models.NotFound(err.Error())
	}
	return models.Found(record)
}

func fetchFrom(store storage.Store, kind models.IdentifierKind, value string) (*models.ClientRecord, error) {
	switch kind {
	case models.IdentifierCPF:
		return store.GetClientByCPF(value)
	case models.IdentifierPhone:
		return store.GetClientByPhone(value)
	case models.IdentifierPlate:
		return store.GetClientByPlate(value)
	case models.IdentifierOrder:
		return store.GetClientByOrder(value)
	}
	return nil, &storage.NotFoundError{Kind: kind, Value: value}
}
