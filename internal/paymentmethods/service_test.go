package paymentmethods

import (
	"context"
	"testing"
	"time"

	pkgerrors "github.com/farm2home/storefront-backend/pkg/errors"
	f2hredis "github.com/farm2home/storefront-backend/pkg/redis"
	"github.com/go-playground/validator/v10"
)

// test card numbers that satisfy the Luhn checksum
const (
	validVisa   = "4242424242424242"
	validAmex   = "378282246310005"
	invalidCard = "4242424242424241"
)

type fakeBlobStore struct {
	blobs map[string]string
}

func newFakeBlobStore() *fakeBlobStore {
	return &fakeBlobStore{blobs: make(map[string]string)}
}

func (f *fakeBlobStore) Set(_ context.Context, key string, value any, _ time.Duration) error {
	f.blobs[key] = value.(string)
	return nil
}

func (f *fakeBlobStore) Get(_ context.Context, key string) (string, error) {
	blob, ok := f.blobs[key]
	if !ok {
		return "", f2hredis.ErrKeyMissing
	}
	return blob, nil
}

func (f *fakeBlobStore) PaymentMethodsKey(customerID string) string {
	return "f2h:payment_methods:" + customerID
}

func newTestService(t *testing.T) (*Service, *fakeBlobStore) {
	t.Helper()
	store := newFakeBlobStore()
	svc := &Service{
		store:    store,
		validate: validator.New(),
		now:      func() time.Time { return time.Date(2026, time.August, 15, 0, 0, 0, 0, time.UTC) },
	}
	return svc, store
}

func cardInput() Input {
	return Input{
		Type:       TypeDebit,
		CardNumber: validVisa,
		CardHolder: "Ayesha Khan",
		Expiry:     "09/27",
		Bank:       "HBL",
	}
}

func TestAddFirstMethodBecomesDefault(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	view, err := svc.Add(ctx, "cust-1", cardInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !view.IsDefault {
		t.Fatal("first saved method must become the default")
	}
	if view.MaskedNumber != "**** **** **** 4242" {
		t.Fatalf("unexpected masked number %q", view.MaskedNumber)
	}
}

func TestAddSecondMethodKeepsExistingDefault(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	if _, err := svc.Add(ctx, "cust-1", cardInput()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second := cardInput()
	second.CardNumber = validAmex
	view, err := svc.Add(ctx, "cust-1", second)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.IsDefault {
		t.Fatal("second method must not steal the default without the flag")
	}

	views := svc.List(ctx, "cust-1")
	if len(views) != 2 || !views[0].IsDefault || views[1].IsDefault {
		t.Fatalf("unexpected defaults %+v", views)
	}
}

func TestAddWithSetDefaultDemotesOthers(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	if _, err := svc.Add(ctx, "cust-1", cardInput()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second := cardInput()
	second.CardNumber = validAmex
	second.SetDefault = true
	if _, err := svc.Add(ctx, "cust-1", second); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	views := svc.List(ctx, "cust-1")
	if views[0].IsDefault || !views[1].IsDefault {
		t.Fatalf("expected exactly the new method as default, got %+v", views)
	}
}

func TestAddRejectsLuhnFailure(t *testing.T) {
	svc, _ := newTestService(t)

	input := cardInput()
	input.CardNumber = invalidCard
	_, err := svc.Add(context.Background(), "cust-1", input)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestAddRejectsBadExpiry(t *testing.T) {
	svc, _ := newTestService(t)

	for _, expiry := range []string{"13/27", "0927", "09/24", ""} {
		input := cardInput()
		input.Expiry = expiry
		if _, err := svc.Add(context.Background(), "cust-1", input); err == nil {
			t.Fatalf("expected rejection for expiry %q", expiry)
		}
	}
}

func TestAddWalletRequiresEmailOnly(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	_, err := svc.Add(ctx, "cust-1", Input{Type: TypeJazzCash})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for missing email, got %v", err)
	}

	view, err := svc.Add(ctx, "cust-1", Input{Type: TypeJazzCash, Email: "ayesha@example.com"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.MaskedNumber != "" || view.Email != "ayesha@example.com" {
		t.Fatalf("unexpected wallet view %+v", view)
	}
}

func TestAddRejectsUnknownType(t *testing.T) {
	svc, _ := newTestService(t)

	input := cardInput()
	input.Type = MethodType("bitcoin")
	if _, err := svc.Add(context.Background(), "cust-1", input); err == nil {
		t.Fatal("expected rejection for unknown type")
	}
}

func TestDeleteDefaultIsRejected(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	view, err := svc.Add(ctx, "cust-1", cardInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err = svc.Delete(ctx, "cust-1", view.ID)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(svc.List(ctx, "cust-1")) != 1 {
		t.Fatal("default method must survive the delete attempt")
	}
}

func TestDeleteNonDefaultAfterPromotion(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	first, _ := svc.Add(ctx, "cust-1", cardInput())
	second := cardInput()
	second.CardNumber = validAmex
	promoted, _ := svc.Add(ctx, "cust-1", second)

	if err := svc.SetDefault(ctx, "cust-1", promoted.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.Delete(ctx, "cust-1", first.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	views := svc.List(ctx, "cust-1")
	if len(views) != 1 || views[0].ID != promoted.ID || !views[0].IsDefault {
		t.Fatalf("unexpected remaining methods %+v", views)
	}
}

func TestSetDefaultUnknownMethod(t *testing.T) {
	svc, _ := newTestService(t)

	err := svc.SetDefault(context.Background(), "cust-1", "missing")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestUpdateKeepsIDAndPersists(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t)

	view, _ := svc.Add(ctx, "cust-1", cardInput())

	input := cardInput()
	input.CardHolder = "A. Khan"
	updated, err := svc.Update(ctx, "cust-1", view.ID, input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.ID != view.ID || updated.CardHolder != "A. Khan" {
		t.Fatalf("unexpected updated view %+v", updated)
	}
	if store.blobs["f2h:payment_methods:cust-1"] == "" {
		t.Fatal("update must persist the blob")
	}
}

func TestListCorruptBlobDegradesToEmpty(t *testing.T) {
	svc, store := newTestService(t)
	store.blobs["f2h:payment_methods:cust-1"] = `{"oops"`

	if views := svc.List(context.Background(), "cust-1"); len(views) != 0 {
		t.Fatalf("expected empty list, got %+v", views)
	}
}

func TestLuhnValid(t *testing.T) {
	if !luhnValid("4242 4242 4242 4242") {
		t.Fatal("formatted valid number must pass")
	}
	if luhnValid("1234") {
		t.Fatal("too-short number must fail")
	}
	if luhnValid(invalidCard) {
		t.Fatal("bad checksum must fail")
	}
}
