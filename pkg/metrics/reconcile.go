package metrics

import "github.com/prometheus/client_golang/prometheus"

// ReconcileMetrics counts per-item outcomes of remote cart reconciliation.
type ReconcileMetrics struct {
	success prometheus.Counter
	failure prometheus.Counter
}

// NewReconcileMetrics registers the reconciliation counters on the provided registerer.
func NewReconcileMetrics(reg prometheus.Registerer) *ReconcileMetrics {
	if reg == nil {
		return &ReconcileMetrics{}
	}
	success := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "reconcile_items_success",
		Help: "Cart items successfully pushed to the remote cart.",
	})
	failure := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "reconcile_items_failure",
		Help: "Cart items that failed to push to the remote cart.",
	})
	reg.MustRegister(success, failure)
	return &ReconcileMetrics{success: success, failure: failure}
}

// IncSuccess increments the success counter.
func (r *ReconcileMetrics) IncSuccess() {
	if r == nil || r.success == nil {
		return
	}
	r.success.Inc()
}

// IncFailure increments the failure counter.
func (r *ReconcileMetrics) IncFailure() {
	if r == nil || r.failure == nil {
		return
	}
	r.failure.Inc()
}
