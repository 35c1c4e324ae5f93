package store

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/xenking/pizzeria/internal/domain/catalog"
	"github.com/xenking/pizzeria/internal/domain/customer"
	"github.com/xenking/pizzeria/internal/pkg/errs"
)

// authorize rejects actors that are not administrators. The denial is
// reported to the sink and nothing else happens.
func (s *Store) authorize(ctx context.Context, actor *customer.Customer, op string) error {
	if actor.IsAdministrator() {
		return nil
	}
	s.tel.denied(ctx, op)
	s.write("Access denied: only the administrator can %s.", op)

	lg := s.lg.With(zap.String("operation", op))
	if actor != nil {
		lg = lg.With(zap.String("phone", actor.Phone))
	}
	lg.Warn("Access denied")

	return errors.Wrap(errs.ErrAccessDenied, op)
}

// reject reports a failed operation and returns err unchanged.
func (s *Store) reject(op string, err error) error {
	s.write("Cannot %s: %v.", op, err)
	s.lg.Info("Operation rejected", zap.String("operation", op), zap.Error(err))
	return err
}

// AddItem adds a new item to the catalog.
func (s *Store) AddItem(ctx context.Context, actor *customer.Customer, item *catalog.Item) error {
	const op = "add items"
	if err := s.authorize(ctx, actor, op); err != nil {
		return err
	}
	if err := s.catalog.Add(item); err != nil {
		return s.reject(op, err)
	}

	s.write("Added %s (%s) - Price: %s RON.", item.Name, item.Size, item.Price())
	s.persist(ctx)
	return nil
}

// RemoveItem removes an item from the catalog. Placed orders keep their
// reference to it.
func (s *Store) RemoveItem(ctx context.Context, actor *customer.Customer, name string) error {
	const op = "remove items"
	if err := s.authorize(ctx, actor, op); err != nil {
		return err
	}
	if err := s.catalog.Remove(name); err != nil {
		return s.reject(op, err)
	}

	s.write("Removed %s from the menu.", name)
	s.persist(ctx)
	return nil
}

// ReplaceComponents replaces the whole component list of an item.
func (s *Store) ReplaceComponents(ctx context.Context, actor *customer.Customer, itemName string, components []*catalog.Component) error {
	const op = "replace components"
	if err := s.authorize(ctx, actor, op); err != nil {
		return err
	}
	item, err := s.catalog.Get(itemName)
	if err != nil {
		return s.reject(op, err)
	}
	for i, c := range components {
		if c == nil {
			return s.reject(op, errors.Errorf("component %d is nil", i))
		}
	}

	item.ReplaceComponents(components)
	s.write("Replaced components of %s, new price: %s RON.", item.Name, item.Price())
	s.persist(ctx)
	return nil
}

// AddComponent appends a component to an item. Duplicate component names
// are allowed.
func (s *Store) AddComponent(ctx context.Context, actor *customer.Customer, itemName string, component *catalog.Component) error {
	const op = "add components"
	if err := s.authorize(ctx, actor, op); err != nil {
		return err
	}
	if component == nil {
		return s.reject(op, errors.New("component is nil"))
	}
	item, err := s.catalog.Get(itemName)
	if err != nil {
		return s.reject(op, err)
	}

	item.AddComponent(component)
	s.write("Added %s to %s, new price: %s RON.", component.Name, item.Name, item.Price())
	s.persist(ctx)
	return nil
}

// RemoveComponent removes the first component with the given name from an item.
func (s *Store) RemoveComponent(ctx context.Context, actor *customer.Customer, itemName, componentName string) error {
	const op = "remove components"
	if err := s.authorize(ctx, actor, op); err != nil {
		return err
	}
	item, err := s.catalog.Get(itemName)
	if err != nil {
		return s.reject(op, err)
	}
	if err := item.RemoveComponent(componentName); err != nil {
		return s.reject(op, err)
	}

	s.write("Removed %s from %s, new price: %s RON.", componentName, item.Name, item.Price())
	s.persist(ctx)
	return nil
}

// SetComponentPrice changes the price of a component found by name across
// the catalog. The configured PriceUpdatePolicy decides whether only the
// first match in catalog order or every match changes.
func (s *Store) SetComponentPrice(ctx context.Context, actor *customer.Customer, componentName string, price decimal.Decimal) error {
	const op = "change component prices"
	if err := s.authorize(ctx, actor, op); err != nil {
		return err
	}
	if price.IsNegative() {
		return s.reject(op, errors.Wrapf(catalog.ErrNegativePrice, "component %q", componentName))
	}

	var updated int
	for _, item := range s.catalog.Items() {
		for _, c := range item.Components() {
			if c.Name != componentName {
				continue
			}
			if err := c.SetPrice(price); err != nil {
				return s.reject(op, err)
			}
			updated++
			if s.policy == PriceUpdateFirst {
				break
			}
		}
		if updated > 0 && s.policy == PriceUpdateFirst {
			break
		}
	}
	if updated == 0 {
		return s.reject(op, errs.NewNotFoundError("component", componentName))
	}

	s.write("Price of %s set to %s RON (%d updated).", componentName, price, updated)
	s.persist(ctx)
	return nil
}

// SetItemSize changes the size of an item.
func (s *Store) SetItemSize(ctx context.Context, actor *customer.Customer, itemName string, size catalog.Size) error {
	const op = "change item sizes"
	if err := s.authorize(ctx, actor, op); err != nil {
		return err
	}
	item, err := s.catalog.Get(itemName)
	if err != nil {
		return s.reject(op, err)
	}

	item.SetSize(size)
	s.write("%s is now %s, new price: %s RON.", item.Name, item.Size, item.Price())
	s.persist(ctx)
	return nil
}

// Menu lists the catalog with live prices.
func (s *Store) Menu(ctx context.Context, actor *customer.Customer) ([]*catalog.Item, error) {
	if err := s.authorize(ctx, actor, "view the menu"); err != nil {
		return nil, err
	}

	items := s.catalog.Items()
	s.write("Menu of %s:", s.name)
	if len(items) == 0 {
		s.write("The menu is empty.")
	}
	for _, item := range items {
		s.write("%s (%s) - Price: %s RON", item.Name, item.Size, item.Price())
		for _, c := range item.Components() {
			s.write("  - %s: %s RON", c.Name, c.Price())
		}
	}
	return items, nil
}

// ComponentEntry is a component together with the item that owns it.
type ComponentEntry struct {
	Item      string
	Component *catalog.Component
}

// Components lists every component in catalog order.
func (s *Store) Components(ctx context.Context, actor *customer.Customer) ([]ComponentEntry, error) {
	if err := s.authorize(ctx, actor, "view components"); err != nil {
		return nil, err
	}

	var entries []ComponentEntry
	for _, item := range s.catalog.Items() {
		for _, c := range item.Components() {
			entries = append(entries, ComponentEntry{Item: item.Name, Component: c})
			s.write("%s: %s - %s RON", item.Name, c.Name, c.Price())
		}
	}
	if len(entries) == 0 {
		s.write("No components.")
	}
	return entries, nil
}
