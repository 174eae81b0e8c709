package catalog

import (
	"sort"
	"strings"

	pkgerrors "github.com/farm2home/storefront-backend/pkg/errors"
	"github.com/shopspring/decimal"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// PriceBand is a half-open price interval [Min, Max). A nil Max means unbounded.
type PriceBand struct {
	Min decimal.Decimal
	Max *decimal.Decimal
}

var priceBandsByLabel = func() map[string]PriceBand {
	bound := func(v int64) *decimal.Decimal {
		d := decimal.NewFromInt(v)
		return &d
	}
	return map[string]PriceBand{
		"0-100":   {Min: decimal.Zero, Max: bound(100)},
		"100-200": {Min: decimal.NewFromInt(100), Max: bound(200)},
		"200-500": {Min: decimal.NewFromInt(200), Max: bound(500)},
		"500+":    {Min: decimal.NewFromInt(500)},
	}
}()

// ParsePriceBand resolves a sidebar label like "0-100" or "500+".
func ParsePriceBand(label string) (PriceBand, error) {
	band, ok := priceBandsByLabel[strings.TrimSpace(label)]
	if !ok {
		return PriceBand{}, pkgerrors.New(pkgerrors.CodeValidation, "unknown price band").
			WithDetails(map[string]any{"band": label})
	}
	return band, nil
}

// Contains reports whether price falls inside the band.
func (b PriceBand) Contains(price decimal.Decimal) bool {
	if price.LessThan(b.Min) {
		return false
	}
	if b.Max != nil && price.GreaterThanOrEqual(*b.Max) {
		return false
	}
	return true
}

// FilterCriteria narrows a product list. An empty set on any dimension means
// that dimension does not restrict the result.
type FilterCriteria struct {
	Seasons      []Season
	Categories   []Category
	PriceBands   []PriceBand
	InSeasonOnly bool
}

// ApplyFilters returns the products passing every selected dimension.
// Dimensions combine with AND; the values inside one dimension combine with OR.
func ApplyFilters(products []Product, criteria FilterCriteria) []Product {
	filtered := make([]Product, 0, len(products))
	for _, p := range products {
		if criteria.InSeasonOnly && !p.InSeasonNow {
			continue
		}
		if len(criteria.Seasons) > 0 && !seasonSelected(p.Season, criteria.Seasons) {
			continue
		}
		if len(criteria.Categories) > 0 && !categorySelected(p.Category, criteria.Categories) {
			continue
		}
		if len(criteria.PriceBands) > 0 && !anyBandContains(p.Price, criteria.PriceBands) {
			continue
		}
		filtered = append(filtered, p)
	}
	return filtered
}

// ApplySearch narrows an already filtered (and possibly sorted) list by a
// case-insensitive substring match on name and variety. An empty term returns
// the input unchanged, so clearing the search restores the prior filter result.
func ApplySearch(products []Product, term string) []Product {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return products
	}
	matched := make([]Product, 0, len(products))
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), term) ||
			strings.Contains(strings.ToLower(p.Variety), term) {
			matched = append(matched, p)
		}
	}
	return matched
}

// SortKey selects the display ordering of the catalog.
type SortKey string

const (
	SortFeatured  SortKey = "featured"
	SortPriceAsc  SortKey = "price-low"
	SortPriceDesc SortKey = "price-high"
	SortNameAsc   SortKey = "name-asc"
	SortNameDesc  SortKey = "name-desc"
	SortNewest    SortKey = "date-new"
)

// ParseSortKey resolves the dropdown value, defaulting to featured.
func ParseSortKey(value string) (SortKey, error) {
	switch key := SortKey(strings.TrimSpace(value)); key {
	case SortPriceAsc, SortPriceDesc, SortNameAsc, SortNameDesc, SortNewest:
		return key, nil
	case SortFeatured, "":
		return SortFeatured, nil
	default:
		return SortFeatured, pkgerrors.New(pkgerrors.CodeValidation, "unknown sort key").
			WithDetails(map[string]any{"sort": value})
	}
}

// ApplySort returns a sorted copy of the list. Featured preserves input order;
// every comparator is stable so ties keep their relative positions across
// repeated re-filters.
func ApplySort(products []Product, key SortKey) []Product {
	sorted := make([]Product, len(products))
	copy(sorted, products)

	switch key {
	case SortPriceAsc:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Price.LessThan(sorted[j].Price)
		})
	case SortPriceDesc:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[j].Price.LessThan(sorted[i].Price)
		})
	case SortNameAsc:
		collator := newNameCollator()
		sort.SliceStable(sorted, func(i, j int) bool {
			return collator.CompareString(sorted[i].Name, sorted[j].Name) < 0
		})
	case SortNameDesc:
		collator := newNameCollator()
		sort.SliceStable(sorted, func(i, j int) bool {
			return collator.CompareString(sorted[j].Name, sorted[i].Name) < 0
		})
	case SortNewest:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].ID > sorted[j].ID
		})
	}

	return sorted
}

func newNameCollator() *collate.Collator {
	return collate.New(language.English, collate.IgnoreCase)
}

func seasonSelected(season Season, selected []Season) bool {
	for _, s := range selected {
		if s == season {
			return true
		}
	}
	return false
}

func categorySelected(category Category, selected []Category) bool {
	for _, c := range selected {
		if c == category {
			return true
		}
	}
	return false
}

func anyBandContains(price decimal.Decimal, bands []PriceBand) bool {
	for _, band := range bands {
		if band.Contains(price) {
			return true
		}
	}
	return false
}
