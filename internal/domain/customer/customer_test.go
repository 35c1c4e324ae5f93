package customer

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xenking/pizzeria/internal/pkg/errs"
)

func TestValidatePhone(t *testing.T) {
	tests := []struct {
		phone string
		want  bool
	}{
		{"+40711223344", true},
		{"+40000000000", true},
		{"+4071122334", false},
		{"+407112233445", false},
		{"40711223344", false},
		{"+41711223344", false},
		{"+40 711223344", false},
		{"+4071122334a", false},
		{"", false},
		{"+40711223344\n", false},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%q", tt.phone), func(t *testing.T) {
			assert.Equal(t, tt.want, ValidatePhone(tt.phone))
		})
	}
}

func TestValidatePhoneAllDigits(t *testing.T) {
	for digit := '0'; digit <= '9'; digit++ {
		phone := "+40" + strings.Repeat(string(digit), 9)
		assert.True(t, ValidatePhone(phone), phone)
	}
}

func TestRecordOrder(t *testing.T) {
	c := New("Ion", "+40711223344")
	assert.Equal(t, 0, c.OrderCount())

	for i := range 4 {
		c.RecordOrder(fmt.Sprintf("order-%d", i))
		assert.Equal(t, i+1, c.OrderCount())
	}

	c.RecordOrder("order-last")
	assert.Equal(t, 5, c.OrderCount())
	assert.Equal(t, []string{"order-0", "order-1", "order-2", "order-3", "order-last"}, c.OrderIDs())
}

func TestRoles(t *testing.T) {
	var nobody *Customer
	assert.False(t, nobody.IsAdministrator())
	assert.False(t, New("Ion", "+40711223344").IsAdministrator())

	admin := NewAdministrator("Admin", "+40712345678")
	assert.True(t, admin.IsAdministrator())
	assert.Equal(t, "administrator", admin.Role.String())
}

func TestRegistry_Register(t *testing.T) {
	r := NewRegistry()

	ion, err := r.Register("Ion", "+40711223344")
	require.NoError(t, err)
	assert.Equal(t, 0, ion.OrderCount())

	t.Run("duplicate phone", func(t *testing.T) {
		_, err := r.Register("Someone Else", "+40711223344")
		require.ErrorIs(t, err, errs.ErrDuplicatePhone)
		assert.Equal(t, 1, r.Len())
		assert.Same(t, ion, r.Lookup("+40711223344"))
	})

	t.Run("invalid phone", func(t *testing.T) {
		_, err := r.Register("Maria", "0722334455")
		require.ErrorIs(t, err, errs.ErrInvalidPhone)
		assert.Equal(t, 1, r.Len())
	})

	t.Run("second customer", func(t *testing.T) {
		maria, err := r.Register("Maria", "+40722334455")
		require.NoError(t, err)
		assert.True(t, r.Contains(maria))
		assert.Equal(t, []*Customer{ion, maria}, r.Customers())
	})

	t.Run("lookup miss", func(t *testing.T) {
		assert.Nil(t, r.Lookup("+40799999999"))
		assert.False(t, r.Contains(New("Ion", "+40711223344")))
	})
}

func TestRegistry_ManyCustomers(t *testing.T) {
	r := NewRegistry()
	for i := range 500 {
		_, err := r.Register("c", fmt.Sprintf("+40%09d", i))
		require.NoError(t, err)
	}
	for i := range 500 {
		_, err := r.Register("dup", fmt.Sprintf("+40%09d", i))
		require.ErrorIs(t, err, errs.ErrDuplicatePhone)
	}
	assert.Equal(t, 500, r.Len())
}

func TestRegistry_Restore(t *testing.T) {
	r := NewRegistry()
	admin := NewAdministrator("Admin", "+40712345678")
	require.NoError(t, r.Restore(admin))
	require.ErrorIs(t, r.Restore(New("x", "+40712345678")), errs.ErrDuplicatePhone)
	assert.Same(t, admin, r.Lookup("+40712345678"))
}
