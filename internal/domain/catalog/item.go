package catalog

import (
	"slices"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/xenking/pizzeria/internal/pkg/errs"
)

// ErrNegativePrice is returned when a component is given a price below zero.
var ErrNegativePrice = errors.New("price must not be negative")

// Component is a named, priced constituent of an item, such as an ingredient.
type Component struct {
	Name  string
	price decimal.Decimal
}

// NewComponent creates a component, rejecting negative prices.
func NewComponent(name string, price decimal.Decimal) (*Component, error) {
	c := &Component{Name: name}
	if err := c.SetPrice(price); err != nil {
		return nil, err
	}
	return c, nil
}

// MustComponent is like NewComponent but panics on a negative price.
// It is intended for static menus.
func MustComponent(name string, price int64) *Component {
	c, err := NewComponent(name, decimal.NewFromInt(price))
	if err != nil {
		panic(err)
	}
	return c
}

// Price returns the current price of the component.
func (c *Component) Price() decimal.Decimal {
	return c.price
}

// SetPrice changes the component price. Items read it live on their next
// price computation.
func (c *Component) SetPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return errors.Wrapf(ErrNegativePrice, "component %q", c.Name)
	}
	c.price = price
	return nil
}

// Item is a purchasable catalog entry. Its price is never stored; it is
// derived from the size and the current components on every call.
type Item struct {
	Name       string
	Size       Size
	components []*Component
}

// NewItem creates an item with the given components. The item keeps its own
// copy of the list; the components themselves are shared.
func NewItem(name string, size Size, components ...*Component) *Item {
	return &Item{
		Name:       name,
		Size:       size,
		components: slices.Clone(components),
	}
}

// Price returns the base price for the size plus the sum of component prices.
func (i *Item) Price() decimal.Decimal {
	total := i.Size.BasePrice()
	for _, c := range i.components {
		total = total.Add(c.Price())
	}
	return total
}

// Components returns the item's components in display order.
func (i *Item) Components() []*Component {
	return i.components
}

// Component returns the first component with the given name, or nil.
func (i *Item) Component(name string) *Component {
	for _, c := range i.components {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// AddComponent appends a component. Component names are not required to be
// unique within an item.
func (i *Item) AddComponent(c *Component) {
	i.components = append(i.components, c)
}

// RemoveComponent removes the first component with the given name.
func (i *Item) RemoveComponent(name string) error {
	for idx, c := range i.components {
		if c.Name == name {
			i.components = append(i.components[:idx:idx], i.components[idx+1:]...)
			return nil
		}
	}
	return errs.NewNotFoundError("component", name)
}

// SetSize changes the item size.
func (i *Item) SetSize(s Size) {
	i.Size = s
}

// ReplaceComponents replaces the whole component list with a copy of components.
func (i *Item) ReplaceComponents(components []*Component) {
	i.components = slices.Clone(components)
}
