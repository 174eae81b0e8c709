package cart

import (
	"context"
	"errors"
	"testing"
	"time"

	f2hredis "github.com/farm2home/storefront-backend/pkg/redis"
	"github.com/shopspring/decimal"
)

type fakeBlobStore struct {
	blobs  map[string]string
	getErr error
	setErr error
}

func newFakeBlobStore() *fakeBlobStore {
	return &fakeBlobStore{blobs: make(map[string]string)}
}

func (f *fakeBlobStore) Set(_ context.Context, key string, value any, _ time.Duration) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.blobs[key] = value.(string)
	return nil
}

func (f *fakeBlobStore) Get(_ context.Context, key string) (string, error) {
	if f.getErr != nil {
		return "", f.getErr
	}
	blob, ok := f.blobs[key]
	if !ok {
		return "", f2hredis.ErrKeyMissing
	}
	return blob, nil
}

func (f *fakeBlobStore) CartKey(customerID string) string {
	return "f2h:cart:" + customerID
}

func TestNewRedisRepositoryRequiresClient(t *testing.T) {
	if _, err := NewRedisRepository(nil, nil); err == nil {
		t.Fatal("expected error for nil client")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newFakeBlobStore()
	repo := &RedisRepository{store: store}

	items := []LineItem{
		{ProductID: 1, Name: "Tomato", Variety: "Roma", UnitPrice: decimal.NewFromInt(80), Quantity: 3},
		{ProductID: 4, Name: "Mango", Variety: "Sindhri", UnitPrice: decimal.NewFromInt(350), Quantity: 1},
	}
	if err := repo.Save(ctx, "cust-1", items); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	loaded := repo.Load(ctx, "cust-1")
	if len(loaded) != 2 {
		t.Fatalf("expected 2 items, got %d", len(loaded))
	}
	if loaded[0].ProductID != 1 || loaded[0].Quantity != 3 || !loaded[0].UnitPrice.Equal(decimal.NewFromInt(80)) {
		t.Fatalf("unexpected first item %+v", loaded[0])
	}
	if loaded[1].Name != "Mango" {
		t.Fatalf("unexpected second item %+v", loaded[1])
	}
}

func TestSaveWritesEmptyListForNilItems(t *testing.T) {
	ctx := context.Background()
	store := newFakeBlobStore()
	repo := &RedisRepository{store: store}

	if err := repo.Save(ctx, "cust-1", nil); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	if store.blobs["f2h:cart:cust-1"] != "[]" {
		t.Fatalf("expected empty json array, got %q", store.blobs["f2h:cart:cust-1"])
	}
}

func TestLoadMissingKeyYieldsEmptyCart(t *testing.T) {
	repo := &RedisRepository{store: newFakeBlobStore()}

	loaded := repo.Load(context.Background(), "nobody")
	if loaded == nil || len(loaded) != 0 {
		t.Fatalf("expected empty slice, got %v", loaded)
	}
}

func TestLoadCorruptBlobYieldsEmptyCart(t *testing.T) {
	store := newFakeBlobStore()
	store.blobs["f2h:cart:cust-1"] = `{"not":"a list"`
	repo := &RedisRepository{store: store}

	loaded := repo.Load(context.Background(), "cust-1")
	if len(loaded) != 0 {
		t.Fatalf("expected empty cart for corrupt blob, got %v", loaded)
	}
}

func TestLoadReadFailureYieldsEmptyCart(t *testing.T) {
	store := newFakeBlobStore()
	store.getErr = errors.New("connection reset")
	repo := &RedisRepository{store: store}

	loaded := repo.Load(context.Background(), "cust-1")
	if len(loaded) != 0 {
		t.Fatalf("expected empty cart on read failure, got %v", loaded)
	}
}

func TestLoadSanitizesDuplicatesAndQuantities(t *testing.T) {
	store := newFakeBlobStore()
	store.blobs["f2h:cart:cust-1"] = `[
		{"product_id":1,"name":"Tomato","unit_price":"80","quantity":0},
		{"product_id":1,"name":"Tomato","unit_price":"80","quantity":4},
		{"product_id":0,"name":"Ghost","unit_price":"10","quantity":2},
		{"product_id":3,"name":"Mint","unit_price":"40","quantity":-2}
	]`
	repo := &RedisRepository{store: store}

	loaded := repo.Load(context.Background(), "cust-1")
	if len(loaded) != 2 {
		t.Fatalf("expected 2 sanitized items, got %+v", loaded)
	}
	if loaded[0].ProductID != 1 || loaded[0].Quantity != 1 {
		t.Fatalf("first occurrence wins with floored quantity, got %+v", loaded[0])
	}
	if loaded[1].ProductID != 3 || loaded[1].Quantity != 1 {
		t.Fatalf("negative quantity floors to 1, got %+v", loaded[1])
	}
}
