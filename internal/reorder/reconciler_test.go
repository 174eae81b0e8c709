package reorder

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/farm2home/storefront-backend/pkg/config"
)

func newTestReconciler(t *testing.T, handler http.HandlerFunc) *Reconciler {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	r, err := NewReconciler(config.RemoteCartConfig{AddItemURL: server.URL + "/cart/items/"}, nil, nil)
	if err != nil {
		t.Fatalf("NewReconciler returned error: %v", err)
	}
	return r
}

func TestNewReconcilerRequiresURL(t *testing.T) {
	if _, err := NewReconciler(config.RemoteCartConfig{}, nil, nil); err == nil {
		t.Fatal("expected error for empty url")
	}
}

func TestAddItemsSendsOneRequestPerItem(t *testing.T) {
	var payloads []addItemPayload
	r := newTestReconciler(t, func(w http.ResponseWriter, req *http.Request) {
		var p addItemPayload
		if err := json.NewDecoder(req.Body).Decode(&p); err != nil {
			t.Fatalf("decoding payload: %v", err)
		}
		payloads = append(payloads, p)
		w.WriteHeader(http.StatusCreated)
	})

	report := r.AddItems(context.Background(), "cust-1", []Item{
		{ProductID: 1, Name: "Tomato", Quantity: 2},
		{ProductID: 4, Name: "Mango", Quantity: 1},
	})

	if report.SuccessCount != 2 || report.FailCount != 0 {
		t.Fatalf("unexpected report %+v", report)
	}
	if len(payloads) != 2 {
		t.Fatalf("expected 2 requests, got %d", len(payloads))
	}
	if payloads[0] != (addItemPayload{CustomerID: "cust-1", ProductID: 1, Quantity: 2}) {
		t.Fatalf("unexpected first payload %+v", payloads[0])
	}
	if payloads[1].ProductID != 4 {
		t.Fatalf("items must be sent in order, got %+v", payloads)
	}
}

func TestAddItemsContinuesPastFailures(t *testing.T) {
	var calls atomic.Int32
	r := newTestReconciler(t, func(w http.ResponseWriter, req *http.Request) {
		// second item fails, the rest succeed
		if calls.Add(1) == 2 {
			http.Error(w, "out of stock", http.StatusConflict)
			return
		}
		w.WriteHeader(http.StatusCreated)
	})

	report := r.AddItems(context.Background(), "cust-1", []Item{
		{ProductID: 1, Name: "Tomato", Quantity: 1},
		{ProductID: 2, Name: "Orange", Quantity: 1},
		{ProductID: 3, Name: "Mint", Quantity: 1},
	})

	if report.SuccessCount != 2 || report.FailCount != 1 {
		t.Fatalf("unexpected report %+v", report)
	}
	if len(report.FailedNames) != 1 || report.FailedNames[0] != "Orange" {
		t.Fatalf("unexpected failed names %v", report.FailedNames)
	}
	if calls.Load() != 3 {
		t.Fatalf("a failure must not stop the run, got %d calls", calls.Load())
	}
}

func TestAddItemsUnreachableRemoteFailsAll(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close()

	r, err := NewReconciler(config.RemoteCartConfig{AddItemURL: server.URL + "/cart/items/"}, nil, nil)
	if err != nil {
		t.Fatalf("NewReconciler returned error: %v", err)
	}

	report := r.AddItems(context.Background(), "cust-1", []Item{
		{ProductID: 1, Name: "Tomato", Quantity: 1},
		{ProductID: 2, Name: "Orange", Quantity: 1},
	})

	if report.SuccessCount != 0 || report.FailCount != 2 {
		t.Fatalf("unexpected report %+v", report)
	}
}

func TestAddItemsEmptyListIsEmptyReport(t *testing.T) {
	r := newTestReconciler(t, func(w http.ResponseWriter, req *http.Request) {
		t.Fatal("no requests expected for an empty item list")
	})

	report := r.AddItems(context.Background(), "cust-1", nil)
	if report.SuccessCount != 0 || report.FailCount != 0 || report.FailedNames != nil {
		t.Fatalf("unexpected report %+v", report)
	}
}
