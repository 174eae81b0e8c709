package cart

import (
	"context"
	"errors"
	"sync"

	"github.com/farm2home/storefront-backend/pkg/logger"
)

// Manager hands out one Store per customer, hydrating it from persistence the
// first time a customer shows up in this process.
type Manager struct {
	mu     sync.Mutex
	stores map[string]*Store
	repo   Repository
	logg   *logger.Logger
}

// NewManager builds a manager over the given repository.
func NewManager(repo Repository, logg *logger.Logger) (*Manager, error) {
	if repo == nil {
		return nil, errors.New("cart repository required")
	}
	return &Manager{
		stores: make(map[string]*Store),
		repo:   repo,
		logg:   logg,
	}, nil
}

// StoreFor returns the customer's store, creating and hydrating it on first use.
func (m *Manager) StoreFor(ctx context.Context, customerID string) (*Store, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if store, ok := m.stores[customerID]; ok {
		return store, nil
	}

	store, err := NewStore(customerID, m.repo, m.logg)
	if err != nil {
		return nil, err
	}
	store.Hydrate(ctx)
	m.stores[customerID] = store
	return store, nil
}
