package store

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/xenking/pizzeria/internal/domain/customer"
	"github.com/xenking/pizzeria/internal/domain/order"
	"github.com/xenking/pizzeria/internal/pkg/errs"
)

// DefaultPopularLimit is the number of items PopularItems returns when the
// limit is not positive.
const DefaultPopularLimit = 5

// ItemCount is how many times an item name appears across all orders.
type ItemCount struct {
	Name  string
	Count int
}

// CompletedOn returns the completed orders placed on the calendar day of
// day, in day's location.
func (s *Store) CompletedOn(ctx context.Context, actor *customer.Customer, day time.Time) ([]*order.Order, error) {
	if err := s.authorize(ctx, actor, "view daily orders"); err != nil {
		return nil, err
	}

	y, m, d := day.Date()
	var orders []*order.Order
	for _, o := range s.orders {
		oy, om, od := o.PlacedAt.In(day.Location()).Date()
		if o.Completed && oy == y && om == m && od == d {
			orders = append(orders, o)
		}
	}

	s.write("Completed orders on %s: %d", day.Format(time.DateOnly), len(orders))
	for _, o := range orders {
		s.write("  %s - %s - %s RON", o.Customer.Name, o.DeliveryMethod, s.Quote(o).Total)
	}
	return orders, nil
}

// PopularItems ranks item names by how often they were ordered. Ties keep
// the order in which names were first seen in the log.
func (s *Store) PopularItems(ctx context.Context, actor *customer.Customer, limit int) ([]ItemCount, error) {
	if err := s.authorize(ctx, actor, "view popular items"); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultPopularLimit
	}

	var counts []ItemCount
	index := make(map[string]int)
	for _, o := range s.orders {
		for _, item := range o.Items {
			i, ok := index[item.Name]
			if !ok {
				i = len(counts)
				index[item.Name] = i
				counts = append(counts, ItemCount{Name: item.Name})
			}
			counts[i].Count++
		}
	}
	slices.SortStableFunc(counts, func(a, b ItemCount) int {
		return cmp.Compare(b.Count, a.Count)
	})
	if len(counts) > limit {
		counts = counts[:limit]
	}

	s.write("Most popular items:")
	if len(counts) == 0 {
		s.write("No orders yet.")
	}
	for i, c := range counts {
		s.write("%d. %s - %d", i+1, c.Name, c.Count)
	}
	return counts, nil
}

// Revenue sums the live totals of orders placed within [from, to].
func (s *Store) Revenue(ctx context.Context, actor *customer.Customer, from, to time.Time) (decimal.Decimal, error) {
	if err := s.authorize(ctx, actor, "view revenue"); err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	var count int
	for _, o := range s.orders {
		if o.PlacedAt.Before(from) || o.PlacedAt.After(to) {
			continue
		}
		total = total.Add(s.Quote(o).Total)
		count++
	}

	s.write("Revenue from %s to %s: %s RON (%d orders)",
		from.Format(time.DateTime), to.Format(time.DateTime), total, count)
	return total, nil
}

// ExportOrders writes a plain-text report of every order to key through the
// export storage. An empty log writes nothing.
func (s *Store) ExportOrders(ctx context.Context, key string) error {
	if len(s.orders) == 0 {
		s.write("There are no orders to export.")
		s.lg.Warn("Nothing to export", zap.String("key", key))
		return nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Orders of %s\n", s.name)
	for i, o := range s.orders {
		fmt.Fprintf(&b, "Order %d (%s)\n", i+1, o.ID)
		fmt.Fprintf(&b, "Customer: %s %s\n", o.Customer.Name, o.Customer.Phone)
		fmt.Fprintf(&b, "Placed at: %s\n", o.PlacedAt.Format(time.RFC3339))
		fmt.Fprintf(&b, "Delivery method: %s\n", o.DeliveryMethod)
		b.WriteString("Items:\n")
		for _, item := range o.Items {
			fmt.Fprintf(&b, "  %s (%s) - %s RON\n", item.Name, item.Size, item.Price())
		}
		fmt.Fprintf(&b, "Total: %s RON\n\n", s.Quote(o).Total)
	}

	if err := s.exports.Write(ctx, key, []byte(b.String())); err != nil {
		err = errs.Classify(errs.ErrPersistence, errors.Wrapf(err, "export orders to %q", key))
		s.write("Export failed: %v.", err)
		s.lg.Error("Export failed", zap.String("key", key), zap.Error(err))
		return err
	}

	s.write("Exported %d orders to %s.", len(s.orders), key)
	return nil
}
