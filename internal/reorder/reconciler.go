package reorder

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/farm2home/storefront-backend/pkg/config"
	pkgerrors "github.com/farm2home/storefront-backend/pkg/errors"
	"github.com/farm2home/storefront-backend/pkg/logger"
	"github.com/farm2home/storefront-backend/pkg/metrics"
	"go.uber.org/multierr"
)

// Item is one product line to push to the remote cart.
type Item struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"-"`
	Quantity  int    `json:"quantity"`
}

// Report summarizes one reconciliation run. Partial success is a normal
// outcome: the caller shows both counts to the customer.
type Report struct {
	SuccessCount int      `json:"success_count"`
	FailCount    int      `json:"fail_count"`
	FailedNames  []string `json:"failed_names,omitempty"`
}

type addItemPayload struct {
	CustomerID string `json:"customer_id"`
	ProductID  int64  `json:"product_id"`
	Quantity   int    `json:"quantity"`
}

// Reconciler pushes line items to the remote cart API one request per item.
type Reconciler struct {
	addItemURL string
	http       *http.Client
	metrics    *metrics.ReconcileMetrics
	logg       *logger.Logger
}

// NewReconciler builds a reconciler from config. Metrics and logger may be nil.
func NewReconciler(cfg config.RemoteCartConfig, m *metrics.ReconcileMetrics, logg *logger.Logger) (*Reconciler, error) {
	addItemURL := strings.TrimSpace(cfg.AddItemURL)
	if addItemURL == "" {
		return nil, fmt.Errorf("remote cart add-item url required")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Reconciler{
		addItemURL: addItemURL,
		http:       &http.Client{Timeout: timeout},
		metrics:    m,
		logg:       logg,
	}, nil
}

// AddItems sends one add request per item, in order, without retries. A failed
// item does not stop the run; failures are tallied and logged as one aggregate
// at the end.
func (r *Reconciler) AddItems(ctx context.Context, customerID string, items []Item) Report {
	var report Report
	var failures error

	for _, item := range items {
		if err := r.addItem(ctx, customerID, item); err != nil {
			report.FailCount++
			report.FailedNames = append(report.FailedNames, item.Name)
			failures = multierr.Append(failures, fmt.Errorf("product %d: %w", item.ProductID, err))
			r.metrics.IncFailure()
			continue
		}
		report.SuccessCount++
		r.metrics.IncSuccess()
	}

	if failures != nil && r.logg != nil {
		ctx := r.logg.WithField(ctx, "fail_count", report.FailCount)
		r.logg.Error(ctx, "remote cart reconciliation completed with failures", failures)
	}
	return report
}

func (r *Reconciler) addItem(ctx context.Context, customerID string, item Item) error {
	body, err := json.Marshal(addItemPayload{
		CustomerID: customerID,
		ProductID:  item.ProductID,
		Quantity:   item.Quantity,
	})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode add-item payload")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.addItemURL, bytes.NewReader(body))
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build add-item request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.http.Do(req)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "post add-item")
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return pkgerrors.New(pkgerrors.CodeDependency, "remote cart rejected item").
			WithDetails(map[string]any{"status": resp.StatusCode})
	}
	return nil
}
