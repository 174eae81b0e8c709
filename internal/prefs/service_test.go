package prefs

import (
	"context"
	"testing"
	"time"

	f2hredis "github.com/farm2home/storefront-backend/pkg/redis"
)

type fakeKVStore struct {
	values map[string]string
}

func newFakeKVStore() *fakeKVStore {
	return &fakeKVStore{values: make(map[string]string)}
}

func (f *fakeKVStore) Set(_ context.Context, key string, value any, _ time.Duration) error {
	f.values[key] = value.(string)
	return nil
}

func (f *fakeKVStore) Get(_ context.Context, key string) (string, error) {
	value, ok := f.values[key]
	if !ok {
		return "", f2hredis.ErrKeyMissing
	}
	return value, nil
}

func (f *fakeKVStore) ViewPrefKey(customerID string) string {
	return "f2h:view_pref:" + customerID
}

func TestViewModeDefaultsToGrid(t *testing.T) {
	svc := &Service{store: newFakeKVStore()}

	if mode := svc.ViewMode(context.Background(), "cust-1"); mode != ViewGrid {
		t.Fatalf("expected grid default, got %s", mode)
	}
}

func TestSetViewModeRoundTrip(t *testing.T) {
	ctx := context.Background()
	svc := &Service{store: newFakeKVStore()}

	if err := svc.SetViewMode(ctx, "cust-1", ViewList); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mode := svc.ViewMode(ctx, "cust-1"); mode != ViewList {
		t.Fatalf("expected list, got %s", mode)
	}
}

func TestSetViewModeRejectsUnknownValue(t *testing.T) {
	svc := &Service{store: newFakeKVStore()}

	if err := svc.SetViewMode(context.Background(), "cust-1", ViewMode("mosaic")); err == nil {
		t.Fatal("expected error for unknown mode")
	}
}

func TestViewModeUnrecognizedStoredValueFallsBack(t *testing.T) {
	store := newFakeKVStore()
	store.values["f2h:view_pref:cust-1"] = "mosaic"
	svc := &Service{store: store}

	if mode := svc.ViewMode(context.Background(), "cust-1"); mode != ViewGrid {
		t.Fatalf("expected grid fallback, got %s", mode)
	}
}
