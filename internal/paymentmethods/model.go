package paymentmethods

import (
	"strings"
	"time"
)

// MethodType distinguishes bank cards from mobile wallets.
type MethodType string

const (
	TypeDebit     MethodType = "debit"
	TypeCredit    MethodType = "credit"
	TypeJazzCash  MethodType = "jazzcash"
	TypeEasypaisa MethodType = "easypaisa"
)

// IsWallet reports whether the type is a mobile wallet rather than a card.
func (t MethodType) IsWallet() bool {
	return t == TypeJazzCash || t == TypeEasypaisa
}

// PaymentMethod is the stored record. Card numbers are kept in full in the
// blob; only the masked form ever leaves the service.
type PaymentMethod struct {
	ID         string     `json:"id"`
	Type       MethodType `json:"type"`
	CardNumber string     `json:"card_number,omitempty"`
	CardHolder string     `json:"card_holder,omitempty"`
	Expiry     string     `json:"expiry,omitempty"`
	Bank       string     `json:"bank,omitempty"`
	Email      string     `json:"email,omitempty"`
	IsDefault  bool       `json:"is_default"`
	CreatedAt  time.Time  `json:"created_at"`
}

// View is the listing shape: the same record with the card number masked down
// to its last four digits.
type View struct {
	ID           string     `json:"id"`
	Type         MethodType `json:"type"`
	MaskedNumber string     `json:"masked_number,omitempty"`
	CardHolder   string     `json:"card_holder,omitempty"`
	Expiry       string     `json:"expiry,omitempty"`
	Bank         string     `json:"bank,omitempty"`
	Email        string     `json:"email,omitempty"`
	IsDefault    bool       `json:"is_default"`
}

func (m PaymentMethod) view() View {
	return View{
		ID:           m.ID,
		Type:         m.Type,
		MaskedNumber: maskCardNumber(m.CardNumber),
		CardHolder:   m.CardHolder,
		Expiry:       m.Expiry,
		Bank:         m.Bank,
		Email:        m.Email,
		IsDefault:    m.IsDefault,
	}
}

func maskCardNumber(number string) string {
	digits := digitsOnly(number)
	if len(digits) < 4 {
		return ""
	}
	return "**** **** **** " + digits[len(digits)-4:]
}

func digitsOnly(value string) string {
	var b strings.Builder
	for _, r := range value {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
