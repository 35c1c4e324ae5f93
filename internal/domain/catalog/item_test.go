package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xenking/pizzeria/internal/pkg/errs"
)

func d(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func TestItemPrice(t *testing.T) {
	tests := []struct {
		name       string
		size       Size
		components []*Component
		want       decimal.Decimal
	}{
		{name: "small without components", size: Small, want: d("20")},
		{name: "medium without components", size: Medium, want: d("30")},
		{name: "large without components", size: Large, want: d("40")},
		{name: "unknown size falls back", size: Size(7), want: d("25")},
		{
			name: "margherita",
			size: Medium,
			components: []*Component{
				MustComponent("Mozzarella", 10),
				MustComponent("Sauce", 5),
			},
			want: d("45"),
		},
		{
			name: "fractional component",
			size: Small,
			components: []*Component{
				{Name: "Basil", price: d("2.35")},
			},
			want: d("22.35"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := NewItem("test", tt.size, tt.components...)
			assert.True(t, tt.want.Equal(item.Price()), "expected %s, got %s", tt.want, item.Price())
		})
	}
}

func TestItemPriceIsLive(t *testing.T) {
	mozzarella := MustComponent("Mozzarella", 10)
	item := NewItem("Margherita", Medium, mozzarella, MustComponent("Sauce", 5))
	require.True(t, d("45").Equal(item.Price()))

	require.NoError(t, mozzarella.SetPrice(d("6")))
	assert.True(t, d("41").Equal(item.Price()))

	item.SetSize(Large)
	assert.True(t, d("51").Equal(item.Price()))
}

func TestNewComponentRejectsNegativePrice(t *testing.T) {
	_, err := NewComponent("Ham", d("-1"))
	require.ErrorIs(t, err, ErrNegativePrice)

	c := MustComponent("Ham", 3)
	require.ErrorIs(t, c.SetPrice(d("-0.01")), ErrNegativePrice)
	assert.True(t, d("3").Equal(c.Price()), "price must be unchanged after rejected update")
}

func TestItemComponents(t *testing.T) {
	item := NewItem("Diavola", Large,
		MustComponent("Mozzarella", 10),
		MustComponent("Spicy Salami", 20),
		MustComponent("Chili", 4),
	)

	t.Run("duplicate names are allowed", func(t *testing.T) {
		item.AddComponent(MustComponent("Chili", 4))
		assert.Len(t, item.Components(), 4)
		assert.True(t, d("78").Equal(item.Price()))
	})

	t.Run("remove takes the first match", func(t *testing.T) {
		first := item.Component("Chili")
		require.NoError(t, item.RemoveComponent("Chili"))
		assert.Len(t, item.Components(), 3)
		assert.NotSame(t, first, item.Component("Chili"))
	})

	t.Run("remove missing", func(t *testing.T) {
		err := item.RemoveComponent("Pineapple")
		require.ErrorIs(t, err, errs.ErrNotFound)
		assert.Len(t, item.Components(), 3)
	})

	t.Run("replace", func(t *testing.T) {
		components := []*Component{MustComponent("Oregano", 1)}
		item.ReplaceComponents(components)
		assert.Len(t, item.Components(), 1)
		assert.True(t, d("41").Equal(item.Price()))

		components[0] = MustComponent("Truffle", 100)
		assert.Equal(t, "Oregano", item.Components()[0].Name)
		assert.True(t, d("41").Equal(item.Price()))
	})
}

func TestNewItemCopiesComponentList(t *testing.T) {
	components := []*Component{MustComponent("Mozzarella", 10), MustComponent("Sauce", 5)}
	item := NewItem("Margherita", Medium, components...)

	components[1] = MustComponent("Truffle", 100)
	assert.Equal(t, "Sauce", item.Components()[1].Name)
	assert.True(t, d("45").Equal(item.Price()))

	// Components stay shared, so price edits still reach the item.
	require.NoError(t, components[0].SetPrice(d("12")))
	assert.True(t, d("47").Equal(item.Price()))
}

func TestParseSize(t *testing.T) {
	for _, s := range []Size{Small, Medium, Large} {
		got, err := ParseSize(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}

	got, err := ParseSize(" large ")
	require.NoError(t, err)
	assert.Equal(t, Large, got)

	_, err = ParseSize("Huge")
	assert.Error(t, err)
	assert.Equal(t, "Unknown", Size(9).String())
}
