package prefs

import (
	"context"
	"errors"
	"fmt"
	"time"

	pkgerrors "github.com/farm2home/storefront-backend/pkg/errors"
	"github.com/farm2home/storefront-backend/pkg/logger"
	f2hredis "github.com/farm2home/storefront-backend/pkg/redis"
)

// ViewMode is how the catalog page lays out products.
type ViewMode string

const (
	ViewGrid ViewMode = "grid"
	ViewList ViewMode = "list"
)

// ParseViewMode validates a raw mode value.
func ParseViewMode(value string) (ViewMode, error) {
	switch ViewMode(value) {
	case ViewGrid, ViewList:
		return ViewMode(value), nil
	default:
		return "", pkgerrors.New(pkgerrors.CodeValidation, "view mode must be grid or list").
			WithDetails(map[string]any{"view_mode": value})
	}
}

// KVStore is the slice of the redis client this service needs.
type KVStore interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	ViewPrefKey(customerID string) string
}

// Service stores per-customer display preferences.
type Service struct {
	store KVStore
	logg  *logger.Logger
}

// NewService builds the service over the shared key-value store.
func NewService(store KVStore, logg *logger.Logger) (*Service, error) {
	if store == nil {
		return nil, fmt.Errorf("preferences store required")
	}
	return &Service{store: store, logg: logg}, nil
}

// ViewMode returns the customer's saved layout, defaulting to grid when none
// is saved or the stored value is not recognized.
func (s *Service) ViewMode(ctx context.Context, customerID string) ViewMode {
	raw, err := s.store.Get(ctx, s.store.ViewPrefKey(customerID))
	if err != nil {
		if !errors.Is(err, f2hredis.ErrKeyMissing) && s.logg != nil {
			s.logg.Error(ctx, "loading view preference failed, using default", err)
		}
		return ViewGrid
	}
	mode, err := ParseViewMode(raw)
	if err != nil {
		return ViewGrid
	}
	return mode
}

// SetViewMode saves the customer's layout choice.
func (s *Service) SetViewMode(ctx context.Context, customerID string, mode ViewMode) error {
	if _, err := ParseViewMode(string(mode)); err != nil {
		return err
	}
	if err := s.store.Set(ctx, s.store.ViewPrefKey(customerID), string(mode), 0); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "store view preference")
	}
	return nil
}
