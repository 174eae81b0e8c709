package cart

import (
	"context"
	"sync"

	"github.com/farm2home/storefront-backend/internal/catalog"
	pkgerrors "github.com/farm2home/storefront-backend/pkg/errors"
	"github.com/farm2home/storefront-backend/pkg/logger"
	"github.com/shopspring/decimal"
)

// LineItem is one product's quantity entry within a cart. The price, name and
// image are snapshots taken at first add; a later catalog price change does not
// reprice an item already in the cart.
type LineItem struct {
	ProductID int64           `json:"product_id"`
	Name      string          `json:"name"`
	Variety   string          `json:"variety"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Image     string          `json:"image"`
	Quantity  int             `json:"quantity"`
}

// LineTotal is the item's contribution to the subtotal.
func (li LineItem) LineTotal() decimal.Decimal {
	return li.UnitPrice.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// Repository persists the full line-item list as one blob per customer.
type Repository interface {
	Save(ctx context.Context, customerID string, items []LineItem) error
	Load(ctx context.Context, customerID string) []LineItem
}

// Store owns one customer's cart for the lifetime of a session. Items keep
// insertion order; a product id appears at most once. Every mutation syncs to
// the repository before returning.
type Store struct {
	mu         sync.Mutex
	customerID string
	items      []LineItem
	repo       Repository
	logg       *logger.Logger
}

// NewStore builds an empty store bound to the customer's persistence slot.
func NewStore(customerID string, repo Repository, logg *logger.Logger) (*Store, error) {
	if customerID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer id is required")
	}
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "cart repository required")
	}
	return &Store{customerID: customerID, repo: repo, logg: logg}, nil
}

// Hydrate replaces the in-memory state with whatever the repository holds.
// Called once at session start; a corrupt or absent blob yields an empty cart.
func (s *Store) Hydrate(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = s.repo.Load(ctx, s.customerID)
}

// AddItem appends a snapshot of the product or, when the product is already in
// the cart, increments the existing line's quantity. The original line keeps
// the unit price captured at first add.
func (s *Store) AddItem(ctx context.Context, product catalog.Product, quantity int) error {
	if quantity < 1 {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1").
			WithDetails(map[string]any{"quantity": quantity})
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ProductID == product.ID {
			s.items[i].Quantity += quantity
			s.sync(ctx)
			return nil
		}
	}

	s.items = append(s.items, LineItem{
		ProductID: product.ID,
		Name:      product.Name,
		Variety:   product.Variety,
		UnitPrice: product.Price,
		Image:     product.Image,
		Quantity:  quantity,
	})
	s.sync(ctx)
	return nil
}

// IncreaseQuantity bumps the line by one. An unknown product id is a logged no-op.
func (s *Store) IncreaseQuantity(ctx context.Context, productID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ProductID == productID {
			s.items[i].Quantity++
			s.sync(ctx)
			return
		}
	}
	s.warnMissing(ctx, "increase", productID)
}

// DecreaseQuantity lowers the line by one but never below one; removal is an
// explicit separate operation. An unknown product id is a logged no-op.
func (s *Store) DecreaseQuantity(ctx context.Context, productID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ProductID == productID {
			if s.items[i].Quantity > 1 {
				s.items[i].Quantity--
				s.sync(ctx)
			}
			return
		}
	}
	s.warnMissing(ctx, "decrease", productID)
}

// RemoveItem deletes the line if present; otherwise a no-op.
func (s *Store) RemoveItem(ctx context.Context, productID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ProductID == productID {
			s.items = append(s.items[:i], s.items[i+1:]...)
			s.sync(ctx)
			return
		}
	}
}

// Clear empties the cart unconditionally.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil
	s.sync(ctx)
}

// Items returns a copy of the line items in display order.
func (s *Store) Items() []LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]LineItem, len(s.items))
	copy(items, s.items)
	return items
}

// Subtotal sums unit price times quantity over all lines.
func (s *Store) Subtotal() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()

	subtotal := decimal.Zero
	for _, item := range s.items {
		subtotal = subtotal.Add(item.LineTotal())
	}
	return subtotal
}

// ItemCount sums quantities, not distinct lines.
func (s *Store) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, item := range s.items {
		count += item.Quantity
	}
	return count
}

// sync pushes the current state to the repository. Persistence is best-effort:
// a failed write is logged and the in-memory state stands.
func (s *Store) sync(ctx context.Context) {
	if err := s.repo.Save(ctx, s.customerID, s.items); err != nil && s.logg != nil {
		s.logg.Error(ctx, "cart persistence sync failed", err)
	}
}

func (s *Store) warnMissing(ctx context.Context, op string, productID int64) {
	if s.logg == nil {
		return
	}
	ctx = s.logg.WithFields(ctx, map[string]any{"op": op, "product_id": productID})
	s.logg.Warn(ctx, "cart adjustment for product not in cart")
}
