package orders

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Status is the upstream order lifecycle state.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusShipped   Status = "SHIPPED"
	StatusDelivered Status = "DELIVERED"
	StatusCancelled Status = "CANCELLED"
)

// StatusClass is the coarse bucket the history page groups orders into.
type StatusClass string

const (
	ClassActive    StatusClass = "active"
	ClassDelivered StatusClass = "delivered"
	ClassCancelled StatusClass = "cancelled"
)

// Class maps a lifecycle status onto its display bucket. Anything that is not
// terminally delivered or cancelled counts as active, including statuses this
// build does not know about yet.
func (s Status) Class() StatusClass {
	switch s {
	case StatusDelivered:
		return ClassDelivered
	case StatusCancelled:
		return ClassCancelled
	default:
		return ClassActive
	}
}

// OrderItem is one product line inside a past order.
type OrderItem struct {
	ProductID int64           `json:"product_id"`
	Name      string          `json:"name"`
	Variety   string          `json:"variety"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Image     string          `json:"image"`
}

// Order is one entry in the customer's order history.
type Order struct {
	ID        int64           `json:"id"`
	Status    Status          `json:"status"`
	PlacedAt  time.Time       `json:"placed_at"`
	Total     decimal.Decimal `json:"total"`
	Items     []OrderItem     `json:"items"`
	ItemCount int             `json:"item_count"`
}

// Matches reports whether the order satisfies a free-text history search. The
// query matches the order number or any item's name, case-insensitively.
func (o Order) Matches(query string) bool {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return true
	}
	if strings.Contains(strconv.FormatInt(o.ID, 10), query) {
		return true
	}
	for _, item := range o.Items {
		if strings.Contains(strings.ToLower(item.Name), query) {
			return true
		}
	}
	return false
}

// TabCounts is the per-bucket totals shown on the history tabs.
type TabCounts struct {
	All       int `json:"all"`
	Active    int `json:"active"`
	Delivered int `json:"delivered"`
	Cancelled int `json:"cancelled"`
}

// CountByClass tallies orders into their display buckets.
func CountByClass(list []Order) TabCounts {
	counts := TabCounts{All: len(list)}
	for _, order := range list {
		switch order.Status.Class() {
		case ClassActive:
			counts.Active++
		case ClassDelivered:
			counts.Delivered++
		case ClassCancelled:
			counts.Cancelled++
		}
	}
	return counts
}
