// Package customer holds customers, their roles and the registry that owns them.
package customer

// Role tags a customer with its authorization level.
type Role int

const (
	RoleCustomer Role = iota
	RoleAdministrator
)

func (r Role) String() string {
	if r == RoleAdministrator {
		return "administrator"
	}
	return "customer"
}

// Customer is a registered buyer. The administrator is a Customer with
// RoleAdministrator; it needs no behaviour beyond being authorized.
type Customer struct {
	Name  string
	Phone string
	Role  Role

	orders []string
}

// New creates a regular customer with an empty order history.
func New(name, phone string) *Customer {
	return &Customer{Name: name, Phone: phone, Role: RoleCustomer}
}

// NewAdministrator creates the store administrator.
func NewAdministrator(name, phone string) *Customer {
	return &Customer{Name: name, Phone: phone, Role: RoleAdministrator}
}

// IsAdministrator reports whether c may run administrator operations.
// A nil customer is never authorized.
func (c *Customer) IsAdministrator() bool {
	return c != nil && c.Role == RoleAdministrator
}

// RecordOrder appends an order ID to the customer's history.
func (c *Customer) RecordOrder(orderID string) {
	c.orders = append(c.orders, orderID)
}

// OrderIDs returns the IDs of the customer's orders, oldest first.
func (c *Customer) OrderIDs() []string {
	return c.orders
}

// OrderCount returns the number of orders the customer has placed.
func (c *Customer) OrderCount() int {
	return len(c.orders)
}
