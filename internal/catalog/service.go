package catalog

import (
	"context"

	"github.com/farm2home/storefront-backend/pkg/logger"
)

// ProductSource abstracts the upstream catalog API.
type ProductSource interface {
	FetchProducts(ctx context.Context) ([]Product, error)
}

// ListQuery carries the criteria the view layer sends for one catalog render.
type ListQuery struct {
	Criteria FilterCriteria
	Sort     SortKey
	Search   string
}

// ListResult is the display list plus the counters the page shows.
type ListResult struct {
	Products     []Product    `json:"products"`
	ShowingCount int          `json:"showing_count"`
	TotalCount   int          `json:"total_count"`
	FilterCounts FilterCounts `json:"filter_counts"`
}

// Service computes display lists from the upstream catalog.
type Service struct {
	source ProductSource
	logg   *logger.Logger
}

// NewService builds a catalog service over the given product source.
func NewService(source ProductSource, logg *logger.Logger) *Service {
	return &Service{source: source, logg: logg}
}

// List fetches the catalog and applies filters, sort, then search, in that
// order. Search narrows the already filtered+sorted set, so clearing it
// restores the prior filter result. An upstream failure degrades to an empty
// catalog rather than an error.
func (s *Service) List(ctx context.Context, query ListQuery) ListResult {
	products, err := s.source.FetchProducts(ctx)
	if err != nil {
		if s.logg != nil {
			s.logg.Error(ctx, "catalog unavailable, serving empty product list", err)
		}
		return ListResult{Products: []Product{}}
	}

	filtered := ApplyFilters(products, query.Criteria)
	sorted := ApplySort(filtered, query.Sort)
	shown := ApplySearch(sorted, query.Search)

	return ListResult{
		Products:     shown,
		ShowingCount: len(shown),
		TotalCount:   len(products),
		FilterCounts: CountByBucket(products),
	}
}
