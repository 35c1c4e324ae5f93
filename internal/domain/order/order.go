// Package order models placed orders and their live totals.
package order

import (
	"slices"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/xenking/pizzeria/internal/domain/catalog"
	"github.com/xenking/pizzeria/internal/domain/customer"
	"github.com/xenking/pizzeria/internal/pricing"
)

// Sentinel errors for order validation.
var (
	ErrEmptyItems  = errors.New("items required")
	ErrNilItem     = errors.New("item reference is nil")
	ErrNilCustomer = errors.New("customer required")
)

// DeliveryMethod is how the order reaches the customer.
type DeliveryMethod int

const (
	Pickup DeliveryMethod = iota
	Delivery
)

func (m DeliveryMethod) String() string {
	if m == Delivery {
		return "Delivery"
	}
	return "Pickup"
}

// ParseDeliveryMethod parses "Pickup" or "Delivery", case-insensitively.
func ParseDeliveryMethod(s string) (DeliveryMethod, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pickup":
		return Pickup, nil
	case "delivery":
		return Delivery, nil
	default:
		return 0, errors.Errorf("unknown delivery method %q", s)
	}
}

// Order is an immutable record of a purchase. Items are references to
// catalog items, so prices follow later component edits, and the loyalty
// discount follows the customer's current order count.
type Order struct {
	ID             string
	Customer       *customer.Customer
	Items          []*catalog.Item
	DeliveryMethod DeliveryMethod
	PlacedAt       time.Time
	Completed      bool
}

// New validates the input and builds a completed order with a fresh ID.
func New(c *customer.Customer, items []*catalog.Item, method DeliveryMethod, placedAt time.Time) (*Order, error) {
	if c == nil {
		return nil, ErrNilCustomer
	}
	if len(items) == 0 {
		return nil, ErrEmptyItems
	}
	for i, item := range items {
		if item == nil {
			return nil, errors.Wrapf(ErrNilItem, "item %d", i)
		}
	}

	return &Order{
		ID:             uuid.New().String(),
		Customer:       c,
		Items:          slices.Clone(items),
		DeliveryMethod: method,
		PlacedAt:       placedAt,
		Completed:      true,
	}, nil
}

// Quote prices the order with the default rules.
func (o *Order) Quote() pricing.Breakdown {
	return o.QuoteWith(pricing.Default)
}

// QuoteWith prices the order with the given rules, reading item prices and
// the customer's order count as they are now.
func (o *Order) QuoteWith(rules pricing.Rules) pricing.Breakdown {
	prices := make([]decimal.Decimal, len(o.Items))
	for i, item := range o.Items {
		prices[i] = item.Price()
	}
	return rules.Quote(prices, o.DeliveryMethod == Delivery, o.Customer.OrderCount())
}

// Total returns the live order total.
func (o *Order) Total() decimal.Decimal {
	return o.Quote().Total
}
