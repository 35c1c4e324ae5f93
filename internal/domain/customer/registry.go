package customer

import (
	"github.com/bits-and-blooms/bloom/v3"
	"github.com/go-faster/errors"

	"github.com/xenking/pizzeria/internal/pkg/errs"
)

const (
	bloomCapacity = 10_000
	bloomFPR      = 0.01
)

// Registry stores customers in registration order, unique by phone.
//
// Lookups are linear scans. The bloom filter only lets Register skip the scan
// for phones that were certainly never registered; a positive answer always
// falls through to the scan.
type Registry struct {
	customers []*Customer
	phones    *bloom.BloomFilter
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		phones: bloom.NewWithEstimates(bloomCapacity, bloomFPR),
	}
}

// Register validates and appends a new customer.
// The duplicate check runs before pattern validation.
func (r *Registry) Register(name, phone string) (*Customer, error) {
	if r.mayContain(phone) && r.Lookup(phone) != nil {
		return nil, errors.Wrapf(errs.ErrDuplicatePhone, "phone %s", phone)
	}
	if !ValidatePhone(phone) {
		return nil, errors.Wrapf(errs.ErrInvalidPhone, "phone %q must match +40XXXXXXXXX", phone)
	}

	c := New(name, phone)
	r.add(c)
	return c, nil
}

// Restore appends an already built customer, keeping phone uniqueness.
// It is used when rebuilding the registry from a snapshot.
func (r *Registry) Restore(c *Customer) error {
	if r.mayContain(c.Phone) && r.Lookup(c.Phone) != nil {
		return errors.Wrapf(errs.ErrDuplicatePhone, "phone %s", c.Phone)
	}
	r.add(c)
	return nil
}

// Lookup returns the first customer with the given phone, or nil.
func (r *Registry) Lookup(phone string) *Customer {
	for _, c := range r.customers {
		if c.Phone == phone {
			return c
		}
	}
	return nil
}

// Contains reports whether c itself is registered.
func (r *Registry) Contains(c *Customer) bool {
	for _, existing := range r.customers {
		if existing == c {
			return true
		}
	}
	return false
}

// Customers returns all customers in registration order.
func (r *Registry) Customers() []*Customer {
	return r.customers
}

// Len returns the number of registered customers.
func (r *Registry) Len() int {
	return len(r.customers)
}

func (r *Registry) add(c *Customer) {
	r.customers = append(r.customers, c)
	r.phones.AddString(c.Phone)
}

func (r *Registry) mayContain(phone string) bool {
	return r.phones.TestString(phone)
}
