package orders

import (
	"context"
	"fmt"

	"github.com/farm2home/storefront-backend/internal/reorder"
	pkgerrors "github.com/farm2home/storefront-backend/pkg/errors"
	"github.com/farm2home/storefront-backend/pkg/logger"
)

// OrderSource abstracts the upstream orders API.
type OrderSource interface {
	FetchOrders(ctx context.Context, customerID string) ([]Order, error)
}

type cartReconciler interface {
	AddItems(ctx context.Context, customerID string, items []reorder.Item) reorder.Report
}

// ListQuery narrows the history view to one tab and an optional search.
type ListQuery struct {
	Tab    StatusClass
	Search string
}

// ListResult is the history page payload: the narrowed list plus the tab
// totals computed over the full history.
type ListResult struct {
	Orders       []Order   `json:"orders"`
	ShowingCount int       `json:"showing_count"`
	TabCounts    TabCounts `json:"tab_counts"`
}

// Service serves order history views and replays past orders into the cart.
type Service struct {
	source     OrderSource
	reconciler cartReconciler
	logg       *logger.Logger
}

// NewService builds an orders service with the required dependencies.
func NewService(source OrderSource, reconciler cartReconciler, logg *logger.Logger) (*Service, error) {
	if source == nil {
		return nil, fmt.Errorf("order source required")
	}
	if reconciler == nil {
		return nil, fmt.Errorf("cart reconciler required")
	}
	return &Service{source: source, reconciler: reconciler, logg: logg}, nil
}

// List fetches the customer's history and narrows it to the requested tab and
// search query. Tab counts always reflect the full history so switching tabs
// never changes the numbers on the other tabs.
func (s *Service) List(ctx context.Context, customerID string, query ListQuery) (ListResult, error) {
	history, err := s.source.FetchOrders(ctx, customerID)
	if err != nil {
		return ListResult{}, err
	}

	shown := make([]Order, 0, len(history))
	for _, order := range history {
		if query.Tab != "" && order.Status.Class() != query.Tab {
			continue
		}
		if !order.Matches(query.Search) {
			continue
		}
		shown = append(shown, order)
	}

	return ListResult{
		Orders:       shown,
		ShowingCount: len(shown),
		TabCounts:    CountByClass(history),
	}, nil
}

// Reorder pushes every line of a past order back into the customer's cart.
// Only delivered orders qualify; a partial push is reported, not rolled back.
func (s *Service) Reorder(ctx context.Context, customerID string, orderID int64) (reorder.Report, error) {
	history, err := s.source.FetchOrders(ctx, customerID)
	if err != nil {
		return reorder.Report{}, err
	}

	var target *Order
	for i := range history {
		if history[i].ID == orderID {
			target = &history[i]
			break
		}
	}
	if target == nil {
		return reorder.Report{}, pkgerrors.New(pkgerrors.CodeNotFound, "order not found").
			WithDetails(map[string]any{"order_id": orderID})
	}
	if target.Status.Class() != ClassDelivered {
		return reorder.Report{}, pkgerrors.New(pkgerrors.CodeValidation, "only delivered orders can be reordered").
			WithDetails(map[string]any{"status": target.Status})
	}

	items := make([]reorder.Item, 0, len(target.Items))
	for _, line := range target.Items {
		items = append(items, reorder.Item{
			ProductID: line.ProductID,
			Name:      line.Name,
			Quantity:  line.Quantity,
		})
	}

	if s.logg != nil {
		ctx = s.logg.WithOrderID(ctx, fmt.Sprintf("%d", orderID))
		s.logg.Info(ctx, "replaying order into cart")
	}
	return s.reconciler.AddItems(ctx, customerID, items), nil
}
