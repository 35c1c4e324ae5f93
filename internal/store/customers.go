package store

import (
	"context"

	"github.com/go-faster/errors"
	"go.uber.org/zap"

	"github.com/xenking/pizzeria/internal/domain/customer"
	"github.com/xenking/pizzeria/internal/pkg/errs"
)

// Register adds a new customer. The phone must be unused, including by the
// administrator, and match +40XXXXXXXXX; the duplicate check runs first.
func (s *Store) Register(ctx context.Context, name, phone string) (*customer.Customer, error) {
	c, err := s.register(name, phone)
	if err != nil {
		s.write("Registration failed: %v.", err)
		s.lg.Info("Registration rejected", zap.String("phone", phone), zap.Error(err))
		return nil, err
	}

	s.tel.registrations.Add(ctx, 1)
	s.write("Customer %s registered with phone %s.", c.Name, c.Phone)
	s.lg.Info("Customer registered", zap.String("phone", c.Phone))
	s.persist(ctx)
	return c, nil
}

func (s *Store) register(name, phone string) (*customer.Customer, error) {
	if phone == s.admin.Phone {
		return nil, errors.Wrapf(errs.ErrDuplicatePhone, "phone %s", phone)
	}
	return s.customers.Register(name, phone)
}

// Authenticate finds the actor for a phone. With asAdmin it returns the
// administrator when the phone matches and nil otherwise. Without it, it
// returns the first registered customer with that phone, or nil.
func (s *Store) Authenticate(phone string, asAdmin bool) *customer.Customer {
	if asAdmin {
		if s.admin.Phone == phone {
			return s.admin
		}
		return nil
	}
	return s.customers.Lookup(phone)
}

// isKnown reports whether c may place orders.
func (s *Store) isKnown(c *customer.Customer) bool {
	return c == s.admin || s.customers.Contains(c)
}
