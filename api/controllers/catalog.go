package controllers

import (
	"net/http"

	"github.com/farm2home/storefront-backend/api/responses"
	"github.com/farm2home/storefront-backend/api/validators"
	"github.com/farm2home/storefront-backend/internal/catalog"
	pkgerrors "github.com/farm2home/storefront-backend/pkg/errors"
	"github.com/farm2home/storefront-backend/pkg/logger"
)

// CatalogProducts serves the filtered, sorted, searched product list plus the
// counters the sidebar and toolbar show.
func CatalogProducts(svc *catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		query, err := catalogQueryFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, svc.List(r.Context(), query))
	}
}

func catalogQueryFromRequest(r *http.Request) (catalog.ListQuery, error) {
	var query catalog.ListQuery

	for _, raw := range validators.ParseQueryList(r, "season") {
		season, err := catalog.ParseSeason(raw)
		if err != nil {
			return catalog.ListQuery{}, err
		}
		query.Criteria.Seasons = append(query.Criteria.Seasons, season)
	}

	for _, raw := range validators.ParseQueryList(r, "category") {
		category, err := catalog.ParseCategory(raw)
		if err != nil {
			return catalog.ListQuery{}, err
		}
		query.Criteria.Categories = append(query.Criteria.Categories, category)
	}

	for _, raw := range validators.ParseQueryList(r, "price") {
		band, err := catalog.ParsePriceBand(raw)
		if err != nil {
			return catalog.ListQuery{}, err
		}
		query.Criteria.PriceBands = append(query.Criteria.PriceBands, band)
	}

	inSeason, err := validators.ParseQueryBool(r, "in_season")
	if err != nil {
		return catalog.ListQuery{}, err
	}
	query.Criteria.InSeasonOnly = inSeason

	sort, err := catalog.ParseSortKey(r.URL.Query().Get("sort"))
	if err != nil {
		return catalog.ListQuery{}, err
	}
	query.Sort = sort
	query.Search = r.URL.Query().Get("q")

	return query, nil
}
