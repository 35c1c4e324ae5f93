package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xenking/pizzeria/internal/pkg/errs"
)

func TestCatalog(t *testing.T) {
	c, err := New(
		NewItem("Margherita", Medium),
		NewItem("Pepperoni", Small),
	)
	require.NoError(t, err)
	assert.Equal(t, 2, c.Len())

	t.Run("duplicate name rejected", func(t *testing.T) {
		err := c.Add(NewItem("Margherita", Large))
		require.ErrorIs(t, err, ErrDuplicateItem)
		assert.Equal(t, 2, c.Len())
	})

	t.Run("get", func(t *testing.T) {
		item, err := c.Get("Pepperoni")
		require.NoError(t, err)
		assert.Equal(t, Small, item.Size)

		_, err = c.Get("Hawaii")
		require.ErrorIs(t, err, errs.ErrNotFound)
	})

	t.Run("remove keeps order", func(t *testing.T) {
		require.NoError(t, c.Add(NewItem("Diavola", Large)))
		require.NoError(t, c.Remove("Pepperoni"))

		names := make([]string, 0, c.Len())
		for _, item := range c.Items() {
			names = append(names, item.Name)
		}
		assert.Equal(t, []string{"Margherita", "Diavola"}, names)

		require.ErrorIs(t, c.Remove("Pepperoni"), errs.ErrNotFound)
	})

	t.Run("nil item", func(t *testing.T) {
		assert.Error(t, c.Add(nil))
	})
}

func TestNewRejectsDuplicates(t *testing.T) {
	_, err := New(NewItem("A", Small), NewItem("A", Large))
	require.ErrorIs(t, err, ErrDuplicateItem)
}
