package store

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/xenking/pizzeria/internal/domain/catalog"
	"github.com/xenking/pizzeria/internal/domain/customer"
	"github.com/xenking/pizzeria/internal/domain/order"
	"github.com/xenking/pizzeria/internal/pkg/errs"
	"github.com/xenking/pizzeria/internal/snapshot"
)

// Save writes the full store state to the snapshot storage, overwriting the
// previous snapshot. Prices and totals are computed at save time. A failure
// leaves the in-memory state untouched and is classified as
// errs.ErrPersistence.
func (s *Store) Save(ctx context.Context) (rerr error) {
	ctx, span := s.tel.start(ctx, "store.Save", s.key)
	defer func() { endSpan(span, rerr) }()

	data := snapshot.Encode(s.document())
	if err := s.storage.Write(ctx, s.key, data); err != nil {
		s.tel.snapshotFailed(ctx, "save")
		s.lg.Error("Save snapshot", zap.String("key", s.key), zap.Error(err))
		return errs.Classify(errs.ErrPersistence, errors.Wrapf(err, "save snapshot %q", s.key))
	}

	s.lg.Debug("Snapshot saved",
		zap.String("key", s.key),
		zap.Int("bytes", len(data)),
		zap.Int("orders", len(s.orders)),
	)
	return nil
}

// persist saves after a mutation. Save failures are already logged and the
// mutation stays applied.
func (s *Store) persist(ctx context.Context) {
	_ = s.Save(ctx)
}

// Load replaces the store state with the saved snapshot.
//
// A missing snapshot returns an errs.ErrNotFound error and a malformed one an
// errs.ErrDeserialization error; in both cases the current state is kept.
// Otherwise the catalog, registry and order log are rebuilt aside and
// swapped in together. Customer values are rebuilt too, so callers must
// authenticate again after a successful load.
func (s *Store) Load(ctx context.Context) (rerr error) {
	ctx, span := s.tel.start(ctx, "store.Load", s.key)
	defer func() { endSpan(span, rerr) }()

	data, err := s.storage.Read(ctx, s.key)
	switch {
	case errors.Is(err, errs.ErrNotFound):
		s.write("No saved state found at %s.", s.key)
		s.lg.Warn("Snapshot not found", zap.String("key", s.key))
		return err
	case err != nil:
		s.tel.snapshotFailed(ctx, "load")
		s.lg.Error("Read snapshot", zap.String("key", s.key), zap.Error(err))
		return errs.Classify(errs.ErrPersistence, errors.Wrapf(err, "read snapshot %q", s.key))
	}

	doc, err := snapshot.Decode(data)
	if err == nil {
		var st *state
		if st, err = s.restore(doc); err == nil {
			s.swap(st)
			s.write("Loaded %s: %d menu items, %d customers, %d orders.",
				s.name, s.catalog.Len(), s.customers.Len(), len(s.orders))
			s.lg.Info("Snapshot loaded",
				zap.String("key", s.key),
				zap.Int("items", s.catalog.Len()),
				zap.Int("orders", len(s.orders)),
			)
			return nil
		}
	}

	s.tel.snapshotFailed(ctx, "load")
	err = errs.Classify(errs.ErrDeserialization, errors.Wrapf(err, "load snapshot %q", s.key))
	s.write("Cannot load saved state: %v.", err)
	s.lg.Error("Load snapshot", zap.String("key", s.key), zap.Error(err))
	return err
}

func (s *Store) document() *snapshot.Document {
	doc := &snapshot.Document{
		Name:      s.name,
		Address:   s.address,
		Menu:      make([]snapshot.MenuItem, 0, s.catalog.Len()),
		Orders:    make([]snapshot.Order, 0, len(s.orders)),
		Customers: make([]snapshot.Customer, 0, s.customers.Len()),
	}

	for _, item := range s.catalog.Items() {
		mi := snapshot.MenuItem{
			Name:       item.Name,
			Size:       item.Size.String(),
			Price:      item.Price(),
			Components: make([]snapshot.Component, 0, len(item.Components())),
		}
		for _, c := range item.Components() {
			mi.Components = append(mi.Components, snapshot.Component{Name: c.Name, Price: c.Price()})
		}
		doc.Menu = append(doc.Menu, mi)
	}

	for _, o := range s.orders {
		placedAt := o.PlacedAt
		so := snapshot.Order{
			ID:             o.ID,
			Customer:       snapshot.Customer{Name: o.Customer.Name, Phone: o.Customer.Phone},
			Items:          make([]snapshot.ItemRef, 0, len(o.Items)),
			DeliveryMethod: o.DeliveryMethod.String(),
			Total:          s.Quote(o).Total,
			PlacedAt:       &placedAt,
		}
		for _, item := range o.Items {
			so.Items = append(so.Items, snapshot.ItemRef{Name: item.Name, Size: item.Size.String()})
		}
		doc.Orders = append(doc.Orders, so)
	}

	for _, c := range s.customers.Customers() {
		doc.Customers = append(doc.Customers, snapshot.Customer{Name: c.Name, Phone: c.Phone})
	}

	return doc
}

// state is a fully rebuilt store state waiting to be swapped in.
type state struct {
	name      string
	address   string
	admin     *customer.Customer
	catalog   *catalog.Catalog
	customers *customer.Registry
	orders    []*order.Order
	byID      map[string]*order.Order
}

func (s *Store) swap(st *state) {
	s.name = st.name
	s.address = st.address
	s.admin = st.admin
	s.catalog = st.catalog
	s.customers = st.customers
	s.orders = st.orders
	s.byID = st.byID
}

// restore rebuilds a state from doc without touching the store.
//
// Order items are stored as name and size only. Each is linked back to the
// catalog item with the same name and size so live pricing keeps working;
// items no longer on the menu become bare stand-ins without components.
func (s *Store) restore(doc *snapshot.Document) (*state, error) {
	st := &state{
		name:      doc.Name,
		address:   doc.Address,
		admin:     customer.NewAdministrator(s.admin.Name, s.admin.Phone),
		catalog:   &catalog.Catalog{},
		customers: customer.NewRegistry(),
		orders:    make([]*order.Order, 0, len(doc.Orders)),
		byID:      make(map[string]*order.Order, len(doc.Orders)),
	}

	for i, mi := range doc.Menu {
		size, err := catalog.ParseSize(mi.Size)
		if err != nil {
			return nil, errors.Wrapf(err, "menu[%d]", i)
		}
		components := make([]*catalog.Component, 0, len(mi.Components))
		for j, sc := range mi.Components {
			c, err := catalog.NewComponent(sc.Name, sc.Price)
			if err != nil {
				return nil, errors.Wrapf(err, "menu[%d].components[%d]", i, j)
			}
			components = append(components, c)
		}
		if err := st.catalog.Add(catalog.NewItem(mi.Name, size, components...)); err != nil {
			return nil, errors.Wrapf(err, "menu[%d]", i)
		}
	}

	for _, sc := range doc.Customers {
		if sc.Phone == st.admin.Phone || st.customers.Lookup(sc.Phone) != nil {
			continue
		}
		if err := st.customers.Restore(customer.New(sc.Name, sc.Phone)); err != nil {
			return nil, err
		}
	}

	now := s.now()
	for i, so := range doc.Orders {
		o, err := st.restoreOrder(so, now)
		if err != nil {
			return nil, errors.Wrapf(err, "orders[%d]", i)
		}
		st.orders = append(st.orders, o)
		st.byID[o.ID] = o
		o.Customer.RecordOrder(o.ID)
	}

	return st, nil
}

func (st *state) restoreOrder(so snapshot.Order, now time.Time) (*order.Order, error) {
	method, err := order.ParseDeliveryMethod(so.DeliveryMethod)
	if err != nil {
		return nil, err
	}

	owner := st.customerFor(so.Customer)
	if owner == nil {
		owner = customer.New(so.Customer.Name, so.Customer.Phone)
		if err := st.customers.Restore(owner); err != nil {
			return nil, err
		}
	}

	items := make([]*catalog.Item, 0, len(so.Items))
	for j, ref := range so.Items {
		size, err := catalog.ParseSize(ref.Size)
		if err != nil {
			return nil, errors.Wrapf(err, "items[%d]", j)
		}
		items = append(items, st.resolveItem(ref.Name, size))
	}

	o := &order.Order{
		ID:             so.ID,
		Customer:       owner,
		Items:          items,
		DeliveryMethod: method,
		PlacedAt:       now,
		Completed:      true,
	}
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	if _, dup := st.byID[o.ID]; dup {
		return nil, errors.Errorf("duplicate order id %q", o.ID)
	}
	if so.PlacedAt != nil {
		o.PlacedAt = *so.PlacedAt
	}
	return o, nil
}

func (st *state) customerFor(c snapshot.Customer) *customer.Customer {
	if c.Phone == st.admin.Phone {
		return st.admin
	}
	return st.customers.Lookup(c.Phone)
}

func (st *state) resolveItem(name string, size catalog.Size) *catalog.Item {
	if item, err := st.catalog.Get(name); err == nil && item.Size == size {
		return item
	}
	return catalog.NewItem(name, size)
}
