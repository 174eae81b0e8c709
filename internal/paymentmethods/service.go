package paymentmethods

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	pkgerrors "github.com/farm2home/storefront-backend/pkg/errors"
	"github.com/farm2home/storefront-backend/pkg/logger"
	f2hredis "github.com/farm2home/storefront-backend/pkg/redis"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// BlobStore is the slice of the redis client this service needs.
type BlobStore interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	PaymentMethodsKey(customerID string) string
}

// Input is the payload for adding or updating a payment method.
type Input struct {
	Type       MethodType `json:"type" validate:"required,oneof=debit credit jazzcash easypaisa"`
	CardNumber string     `json:"card_number"`
	CardHolder string     `json:"card_holder"`
	Expiry     string     `json:"expiry"`
	Bank       string     `json:"bank"`
	Email      string     `json:"email"`
	SetDefault bool       `json:"set_default"`
}

// Service manages a customer's saved payment methods as one KV blob.
type Service struct {
	store    BlobStore
	validate *validator.Validate
	logg     *logger.Logger
	now      func() time.Time
}

// NewService builds the service over the shared blob store.
func NewService(store BlobStore, logg *logger.Logger) (*Service, error) {
	if store == nil {
		return nil, fmt.Errorf("payment methods store required")
	}
	return &Service{
		store:    store,
		validate: validator.New(),
		logg:     logg,
		now:      time.Now,
	}, nil
}

// List returns the customer's methods with card numbers masked.
func (s *Service) List(ctx context.Context, customerID string) []View {
	methods := s.load(ctx, customerID)
	views := make([]View, 0, len(methods))
	for _, m := range methods {
		views = append(views, m.view())
	}
	return views
}

// Add validates and stores a new method. The first method a customer saves
// becomes the default regardless of the flag.
func (s *Service) Add(ctx context.Context, customerID string, input Input) (View, error) {
	if err := s.checkInput(input); err != nil {
		return View{}, err
	}

	methods := s.load(ctx, customerID)
	method := PaymentMethod{
		ID:         uuid.NewString(),
		Type:       input.Type,
		CardNumber: digitsOnly(input.CardNumber),
		CardHolder: strings.TrimSpace(input.CardHolder),
		Expiry:     strings.TrimSpace(input.Expiry),
		Bank:       strings.TrimSpace(input.Bank),
		Email:      strings.TrimSpace(input.Email),
		IsDefault:  input.SetDefault || len(methods) == 0,
		CreatedAt:  s.now().UTC(),
	}
	if method.Type.IsWallet() {
		method.CardNumber = ""
		method.CardHolder = ""
		method.Expiry = ""
		method.Bank = ""
	}

	if method.IsDefault {
		for i := range methods {
			methods[i].IsDefault = false
		}
	}
	methods = append(methods, method)

	if err := s.save(ctx, customerID, methods); err != nil {
		return View{}, err
	}
	return method.view(), nil
}

// Update replaces an existing method's details in place, keeping its id and
// default flag unless the input promotes it.
func (s *Service) Update(ctx context.Context, customerID, methodID string, input Input) (View, error) {
	if err := s.checkInput(input); err != nil {
		return View{}, err
	}

	methods := s.load(ctx, customerID)
	idx := indexOf(methods, methodID)
	if idx < 0 {
		return View{}, pkgerrors.New(pkgerrors.CodeNotFound, "payment method not found")
	}

	updated := methods[idx]
	updated.Type = input.Type
	updated.CardNumber = digitsOnly(input.CardNumber)
	updated.CardHolder = strings.TrimSpace(input.CardHolder)
	updated.Expiry = strings.TrimSpace(input.Expiry)
	updated.Bank = strings.TrimSpace(input.Bank)
	updated.Email = strings.TrimSpace(input.Email)
	if updated.Type.IsWallet() {
		updated.CardNumber = ""
		updated.CardHolder = ""
		updated.Expiry = ""
		updated.Bank = ""
	}
	if input.SetDefault && !updated.IsDefault {
		for i := range methods {
			methods[i].IsDefault = false
		}
		updated.IsDefault = true
	}
	methods[idx] = updated

	if err := s.save(ctx, customerID, methods); err != nil {
		return View{}, err
	}
	return updated.view(), nil
}

// Delete removes a method. The default method is protected; another method
// must be promoted first.
func (s *Service) Delete(ctx context.Context, customerID, methodID string) error {
	methods := s.load(ctx, customerID)
	idx := indexOf(methods, methodID)
	if idx < 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "payment method not found")
	}
	if methods[idx].IsDefault {
		return pkgerrors.New(pkgerrors.CodeValidation, "cannot delete the default payment method")
	}

	methods = append(methods[:idx], methods[idx+1:]...)
	return s.save(ctx, customerID, methods)
}

// SetDefault promotes one method and demotes all others.
func (s *Service) SetDefault(ctx context.Context, customerID, methodID string) error {
	methods := s.load(ctx, customerID)
	idx := indexOf(methods, methodID)
	if idx < 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "payment method not found")
	}

	for i := range methods {
		methods[i].IsDefault = i == idx
	}
	return s.save(ctx, customerID, methods)
}

func (s *Service) checkInput(input Input) error {
	if err := s.validate.Struct(input); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid payment method").
			WithDetails(map[string]any{"field": "type"})
	}

	if input.Type.IsWallet() {
		if err := s.validate.Var(input.Email, "required,email"); err != nil {
			return pkgerrors.New(pkgerrors.CodeValidation, "a valid wallet account email is required").
				WithDetails(map[string]any{"field": "email"})
		}
		return nil
	}

	if !luhnValid(input.CardNumber) {
		return pkgerrors.New(pkgerrors.CodeValidation, "card number failed validation").
			WithDetails(map[string]any{"field": "card_number"})
	}
	if strings.TrimSpace(input.CardHolder) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "card holder name is required").
			WithDetails(map[string]any{"field": "card_holder"})
	}
	if !expiryValid(input.Expiry, s.now()) {
		return pkgerrors.New(pkgerrors.CodeValidation, "expiry must be MM/YY and not in the past").
			WithDetails(map[string]any{"field": "expiry"})
	}
	return nil
}

func (s *Service) load(ctx context.Context, customerID string) []PaymentMethod {
	raw, err := s.store.Get(ctx, s.store.PaymentMethodsKey(customerID))
	if err != nil {
		if !errors.Is(err, f2hredis.ErrKeyMissing) && s.logg != nil {
			s.logg.Error(ctx, "loading payment methods failed, starting empty", err)
		}
		return nil
	}

	var methods []PaymentMethod
	if err := json.Unmarshal([]byte(raw), &methods); err != nil {
		if s.logg != nil {
			s.logg.Error(ctx, "payment methods blob is corrupt, starting empty", err)
		}
		return nil
	}
	return methods
}

func (s *Service) save(ctx context.Context, customerID string, methods []PaymentMethod) error {
	if methods == nil {
		methods = []PaymentMethod{}
	}
	payload, err := json.Marshal(methods)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode payment methods")
	}
	if err := s.store.Set(ctx, s.store.PaymentMethodsKey(customerID), string(payload), 0); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "store payment methods")
	}
	return nil
}

func indexOf(methods []PaymentMethod, id string) int {
	for i := range methods {
		if methods[i].ID == id {
			return i
		}
	}
	return -1
}
