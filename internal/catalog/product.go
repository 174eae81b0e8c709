package catalog

import (
	"strings"

	pkgerrors "github.com/farm2home/storefront-backend/pkg/errors"
	"github.com/shopspring/decimal"
)

// Category groups products the way the storefront sidebar does.
type Category string

const (
	CategoryVegetables Category = "vegetables"
	CategoryFruits     Category = "fruits"
	CategoryHerbs      Category = "herbs"
)

// Season describes a product's growing season.
type Season string

const (
	SeasonSummer    Season = "summer"
	SeasonWinter    Season = "winter"
	SeasonYearRound Season = "year-round"
)

// ParseCategory resolves a sidebar category value.
func ParseCategory(value string) (Category, error) {
	switch c := Category(strings.TrimSpace(value)); c {
	case CategoryVegetables, CategoryFruits, CategoryHerbs:
		return c, nil
	default:
		return "", pkgerrors.New(pkgerrors.CodeValidation, "unknown category").
			WithDetails(map[string]any{"category": value})
	}
}

// ParseSeason resolves a sidebar season value.
func ParseSeason(value string) (Season, error) {
	switch s := Season(strings.TrimSpace(value)); s {
	case SeasonSummer, SeasonWinter, SeasonYearRound:
		return s, nil
	default:
		return "", pkgerrors.New(pkgerrors.CodeValidation, "unknown season").
			WithDetails(map[string]any{"season": value})
	}
}

// Product is a catalog record. It is read-only to this service; the upstream
// catalog API owns it.
type Product struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Variety     string          `json:"variety"`
	Category    Category        `json:"category"`
	Season      Season          `json:"season"`
	Price       decimal.Decimal `json:"price"`
	InSeasonNow bool            `json:"inSeasonNow"`
	InStock     bool            `json:"inStock"`
	Image       string          `json:"image"`
}

// FilterCounts reports how many products fall into each sidebar bucket.
type FilterCounts struct {
	Winter     int `json:"winter"`
	Summer     int `json:"summer"`
	YearRound  int `json:"year_round"`
	Vegetables int `json:"vegetables"`
	Fruits     int `json:"fruits"`
	Herbs      int `json:"herbs"`
}

// CountByBucket tallies season and category buckets over the full product list.
func CountByBucket(products []Product) FilterCounts {
	var counts FilterCounts
	for _, p := range products {
		switch p.Season {
		case SeasonWinter:
			counts.Winter++
		case SeasonSummer:
			counts.Summer++
		case SeasonYearRound:
			counts.YearRound++
		}
		switch p.Category {
		case CategoryVegetables:
			counts.Vegetables++
		case CategoryFruits:
			counts.Fruits++
		case CategoryHerbs:
			counts.Herbs++
		}
	}
	return counts
}
