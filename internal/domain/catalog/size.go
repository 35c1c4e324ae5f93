package catalog

import (
	"strings"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// Size is the size of a catalog item. It selects the item's base price.
type Size int

const (
	Small Size = iota
	Medium
	Large
)

var (
	sizeNames = map[Size]string{
		Small:  "Small",
		Medium: "Medium",
		Large:  "Large",
	}

	basePrices = map[Size]decimal.Decimal{
		Small:  decimal.NewFromInt(20),
		Medium: decimal.NewFromInt(30),
		Large:  decimal.NewFromInt(40),
	}

	// fallbackBasePrice applies to sizes outside the table above.
	fallbackBasePrice = decimal.NewFromInt(25)
)

// String returns the persisted name of the size.
func (s Size) String() string {
	if name, ok := sizeNames[s]; ok {
		return name
	}
	return "Unknown"
}

// BasePrice returns the price of an item of this size before components.
func (s Size) BasePrice() decimal.Decimal {
	if p, ok := basePrices[s]; ok {
		return p
	}
	return fallbackBasePrice
}

// ParseSize parses a size name case-insensitively.
func ParseSize(name string) (Size, error) {
	for s, n := range sizeNames {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			return s, nil
		}
	}
	return 0, errors.Errorf("unknown size %q", name)
}
