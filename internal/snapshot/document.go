// Package snapshot defines the persisted representation of a store and its
// JSON encoding.
//
// A snapshot is one JSON document per store:
//
//	{
//	  "name": "...", "address": "...",
//	  "menu":   [{"name", "size", "price", "components": [{"name", "price"}]}],
//	  "orders": [{"customer": {"name", "phone"}, "items": [{"name", "size"}],
//	              "deliveryMethod", "total", "id", "placedAt"}],
//	  "customers": [{"name", "phone"}]
//	}
//
// Order items carry only name and size; component detail lives in the menu.
// The "id", "placedAt" and "customers" fields are optional on read.
package snapshot

import (
	"time"

	"github.com/shopspring/decimal"
)

// Document is the full persisted state of a store.
type Document struct {
	Name    string
	Address string
	Menu    []MenuItem
	Orders  []Order
	// Customers is nil when the document carries no registry.
	Customers []Customer
}

// MenuItem is a catalog item with its price computed at save time.
type MenuItem struct {
	Name       string
	Size       string
	Price      decimal.Decimal
	Components []Component
}

// Component is a priced constituent of a menu item.
type Component struct {
	Name  string
	Price decimal.Decimal
}

// Customer identifies an order owner or a registered customer.
type Customer struct {
	Name  string
	Phone string
}

// ItemRef references a menu item from an order by name and size.
type ItemRef struct {
	Name string
	Size string
}

// Order is a placed order with its total computed at save time.
type Order struct {
	ID             string
	Customer       Customer
	Items          []ItemRef
	DeliveryMethod string
	Total          decimal.Decimal
	// PlacedAt is nil when the document does not record it.
	PlacedAt *time.Time
}
