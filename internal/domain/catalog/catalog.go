// Package catalog models the items a store sells and their components.
package catalog

import (
	"github.com/go-faster/errors"

	"github.com/xenking/pizzeria/internal/pkg/errs"
)

// ErrDuplicateItem is returned when an item name is already in the catalog.
var ErrDuplicateItem = errors.New("item already in catalog")

// Catalog is an ordered set of items, unique by name.
type Catalog struct {
	items []*Item
}

// New creates a catalog holding the given items. Later duplicates are rejected.
func New(items ...*Item) (*Catalog, error) {
	c := &Catalog{}
	for _, item := range items {
		if err := c.Add(item); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Add appends an item to the catalog.
func (c *Catalog) Add(item *Item) error {
	if item == nil {
		return errors.New("item is nil")
	}
	if c.index(item.Name) >= 0 {
		return errors.Wrapf(ErrDuplicateItem, "item %q", item.Name)
	}
	c.items = append(c.items, item)
	return nil
}

// Remove deletes the item with the given name.
func (c *Catalog) Remove(name string) error {
	idx := c.index(name)
	if idx < 0 {
		return errs.NewNotFoundError("catalog item", name)
	}
	c.items = append(c.items[:idx:idx], c.items[idx+1:]...)
	return nil
}

// Get returns the item with the given name.
func (c *Catalog) Get(name string) (*Item, error) {
	idx := c.index(name)
	if idx < 0 {
		return nil, errs.NewNotFoundError("catalog item", name)
	}
	return c.items[idx], nil
}

// Items returns the items in insertion order.
func (c *Catalog) Items() []*Item {
	return c.items
}

// Len returns the number of items.
func (c *Catalog) Len() int {
	return len(c.items)
}

func (c *Catalog) index(name string) int {
	for i, item := range c.items {
		if item.Name == name {
			return i
		}
	}
	return -1
}
