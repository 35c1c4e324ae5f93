package store

import (
	"context"

	"github.com/go-faster/errors"
	"go.uber.org/zap"

	"github.com/xenking/pizzeria/internal/domain/catalog"
	"github.com/xenking/pizzeria/internal/domain/customer"
	"github.com/xenking/pizzeria/internal/domain/order"
	"github.com/xenking/pizzeria/internal/pkg/errs"
)

// PlaceOrder records an order for a registered customer or the
// administrator. Items are not checked against the current catalog.
//
// The order joins the store log and the customer history before the
// receipt is printed, so the loyalty discount counts it.
func (s *Store) PlaceOrder(ctx context.Context, c *customer.Customer, items []*catalog.Item, method order.DeliveryMethod) (*order.Order, error) {
	const op = "place order"
	if c == nil {
		return nil, s.reject(op, order.ErrNilCustomer)
	}
	if !s.isKnown(c) {
		return nil, s.reject(op, errs.NewNotFoundError("customer", c.Phone))
	}

	o, err := order.New(c, items, method, s.now())
	if err != nil {
		return nil, s.reject(op, err)
	}

	s.orders = append(s.orders, o)
	s.byID[o.ID] = o
	c.RecordOrder(o.ID)

	quote := s.Quote(o)
	s.write("Order placed for %s.", c.Name)
	s.writeReceipt(o)
	s.tel.orderPlaced(ctx, method.String(), quote.Total)
	s.lg.Info("Order placed",
		zap.String("order_id", o.ID),
		zap.String("phone", c.Phone),
		zap.Int("items", len(o.Items)),
		zap.Stringer("delivery_method", method),
		zap.Stringer("total", quote.Total),
	)

	s.persist(ctx)
	return o, nil
}

// PlaceOrderByName resolves item names against the current catalog and
// places the order.
func (s *Store) PlaceOrderByName(ctx context.Context, c *customer.Customer, names []string, method order.DeliveryMethod) (*order.Order, error) {
	items := make([]*catalog.Item, 0, len(names))
	for _, name := range names {
		item, err := s.catalog.Get(name)
		if err != nil {
			return nil, s.reject("place order", err)
		}
		items = append(items, item)
	}
	return s.PlaceOrder(ctx, c, items, method)
}

// History prints and returns the orders of c in placement order.
func (s *Store) History(c *customer.Customer) ([]*order.Order, error) {
	if c == nil {
		return nil, s.reject("show history", order.ErrNilCustomer)
	}

	ids := c.OrderIDs()
	orders := make([]*order.Order, 0, len(ids))
	for _, id := range ids {
		o, ok := s.byID[id]
		if !ok {
			return nil, s.reject("show history", errors.Wrapf(errs.NewNotFoundError("order", id), "history of %s", c.Phone))
		}
		orders = append(orders, o)
	}

	s.write("Orders of %s (%s):", c.Name, c.Phone)
	if len(orders) == 0 {
		s.write("No orders yet.")
	}
	for _, o := range orders {
		s.writeReceipt(o)
	}
	return orders, nil
}

func (s *Store) writeReceipt(o *order.Order) {
	quote := s.Quote(o)
	s.write("Order %s - %s - %s", o.ID, o.DeliveryMethod, o.PlacedAt.Format("2006-01-02 15:04"))
	for _, item := range o.Items {
		s.write("  %s (%s) - Price: %s RON", item.Name, item.Size, item.Price())
	}
	if quote.Surcharge.IsPositive() {
		s.write("  Delivery fee: %s RON", quote.Surcharge)
	}
	if quote.Loyal() {
		s.write("  Loyalty discount: -%s RON", quote.Discount)
	}
	s.write("  Total: %s RON", quote.Total)
}
