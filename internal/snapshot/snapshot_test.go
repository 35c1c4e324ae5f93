package snapshot

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xenking/pizzeria/internal/pkg/errs"
)

func d(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func sampleDocument() *Document {
	at := time.Date(2025, 6, 15, 12, 30, 0, 0, time.UTC)
	return &Document{
		Name:    "Pizzeria Buena",
		Address: "Strada Cocorilor, nr 88",
		Menu: []MenuItem{
			{
				Name:  "Margherita",
				Size:  "Medium",
				Price: d("45"),
				Components: []Component{
					{Name: "Mozzarella", Price: d("10")},
					{Name: "Sauce", Price: d("5")},
				},
			},
			{Name: "Plain", Size: "Small", Price: d("20"), Components: []Component{}},
		},
		Orders: []Order{
			{
				ID:             "6f1c1c9e-5f0b-4c1e-9a51-1a2b3c4d5e6f",
				Customer:       Customer{Name: "Ion", Phone: "+40711223344"},
				Items:          []ItemRef{{Name: "Margherita", Size: "Medium"}},
				DeliveryMethod: "Delivery",
				Total:          d("49.5"),
				PlacedAt:       &at,
			},
		},
		Customers: []Customer{{Name: "Ion", Phone: "+40711223344"}},
	}
}

func TestEncodeDecode(t *testing.T) {
	doc := sampleDocument()

	data := Encode(doc)
	got, err := Decode(data)
	require.NoError(t, err)

	assert.Equal(t, doc.Name, got.Name)
	assert.Equal(t, doc.Address, got.Address)
	require.Len(t, got.Menu, 2)
	assert.Equal(t, "Margherita", got.Menu[0].Name)
	assert.Equal(t, "Medium", got.Menu[0].Size)
	assert.True(t, d("45").Equal(got.Menu[0].Price))
	require.Len(t, got.Menu[0].Components, 2)
	assert.Equal(t, "Sauce", got.Menu[0].Components[1].Name)
	assert.True(t, d("5").Equal(got.Menu[0].Components[1].Price))
	assert.Empty(t, got.Menu[1].Components)

	require.Len(t, got.Orders, 1)
	o := got.Orders[0]
	assert.Equal(t, doc.Orders[0].ID, o.ID)
	assert.Equal(t, doc.Orders[0].Customer, o.Customer)
	assert.Equal(t, doc.Orders[0].Items, o.Items)
	assert.Equal(t, "Delivery", o.DeliveryMethod)
	assert.True(t, d("49.5").Equal(o.Total))
	require.NotNil(t, o.PlacedAt)
	assert.True(t, doc.Orders[0].PlacedAt.Equal(*o.PlacedAt))

	assert.Equal(t, doc.Customers, got.Customers)
}

func TestEncode_Shape(t *testing.T) {
	data := string(Encode(sampleDocument()))

	for _, field := range []string{
		`"name"`,
		`"Pizzeria Buena"`,
		`"address"`,
		`"menu"`,
		`"components"`,
		`"orders"`,
		`"customer"`,
		`"deliveryMethod"`,
		`"total"`,
		`"price"`,
		`49.5`,
	} {
		assert.Contains(t, data, field)
	}
	assert.NotContains(t, data, `"49.5"`, "totals are numbers")
	assert.True(t, strings.HasPrefix(data, "{"))
	assert.Contains(t, data, "\n", "document must be indented")
}

func TestEncode_OmitsOptionalFields(t *testing.T) {
	doc := sampleDocument()
	doc.Customers = nil
	doc.Orders[0].ID = ""
	doc.Orders[0].PlacedAt = nil

	data := string(Encode(doc))
	assert.NotContains(t, data, `"customers"`)
	assert.NotContains(t, data, `"placedAt"`)
	assert.NotContains(t, data, `"id"`)

	got, err := Decode([]byte(data))
	require.NoError(t, err)
	assert.Nil(t, got.Customers)
	assert.Nil(t, got.Orders[0].PlacedAt)
}

func TestDecode_Minimal(t *testing.T) {
	got, err := Decode([]byte(`{"name":"P","address":"A","menu":[],"orders":[],"extra":{"x":[1,2]}}`))
	require.NoError(t, err)
	assert.Equal(t, "P", got.Name)
	assert.Empty(t, got.Menu)
	assert.Empty(t, got.Orders)
	assert.Nil(t, got.Customers)
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantPath string
		wantErr  error
	}{
		{
			name:     "not json",
			input:    `{"name":`,
			wantPath: "$",
		},
		{
			name:     "top level array",
			input:    `[]`,
			wantPath: "$",
		},
		{
			name:     "missing orders",
			input:    `{"name":"P","address":"A","menu":[]}`,
			wantPath: "$.orders",
			wantErr:  ErrMissingField,
		},
		{
			name:     "missing component price",
			input:    `{"name":"P","address":"A","menu":[{"name":"M","size":"Small","price":20,"components":[{"name":"x"}]}],"orders":[]}`,
			wantPath: "$.menu[0].components[0].price",
			wantErr:  ErrMissingField,
		},
		{
			name:     "price is a string",
			input:    `{"name":"P","address":"A","menu":[{"name":"M","size":"Small","price":"20","components":[]}],"orders":[]}`,
			wantPath: "$.menu[0].price",
		},
		{
			name:     "missing customer phone",
			input:    `{"name":"P","address":"A","menu":[],"orders":[{"customer":{"name":"Ion"},"items":[],"deliveryMethod":"Pickup","total":0}]}`,
			wantPath: "$.orders[0].customer.phone",
			wantErr:  ErrMissingField,
		},
		{
			name:     "missing total",
			input:    `{"name":"P","address":"A","menu":[],"orders":[{"customer":{"name":"Ion","phone":"+40711223344"},"items":[],"deliveryMethod":"Pickup"}]}`,
			wantPath: "$.orders[0].total",
			wantErr:  ErrMissingField,
		},
		{
			name:     "null name",
			input:    `{"name":null,"address":"A","menu":[],"orders":[]}`,
			wantPath: "$.name",
		},
		{
			name:     "bad placedAt",
			input:    `{"name":"P","address":"A","menu":[],"orders":[{"customer":{"name":"Ion","phone":"+40711223344"},"items":[],"deliveryMethod":"Pickup","total":0,"placedAt":"yesterday"}]}`,
			wantPath: "$.orders[0].placedAt",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.input))
			require.Error(t, err)
			assert.ErrorIs(t, err, errs.ErrDeserialization)

			var de *DecodeError
			require.ErrorAs(t, err, &de)
			assert.Equal(t, tt.wantPath, de.Path)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestMemory(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	_, err := m.Read(ctx, "state.json")
	require.ErrorIs(t, err, errs.ErrNotFound)

	content := []byte("{}")
	require.NoError(t, m.Write(ctx, "state.json", content))
	content[0] = 'x'

	got, err := m.Read(ctx, "state.json")
	require.NoError(t, err)
	assert.Equal(t, "{}", string(got))
}

type failingStorage struct {
	err error
}

func (f *failingStorage) Write(context.Context, string, []byte) error {
	return f.err
}

func (f *failingStorage) Read(context.Context, string) ([]byte, error) {
	return nil, f.err
}

func TestMirror(t *testing.T) {
	ctx := context.Background()

	t.Run("writes everywhere, reads primary", func(t *testing.T) {
		primary, mirror := NewMemory(), NewMemory()
		s := Mirror(primary, mirror)

		require.NoError(t, s.Write(ctx, "k", []byte("doc")))

		got, err := mirror.Read(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, "doc", string(got))

		got, err = s.Read(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, "doc", string(got))
	})

	t.Run("mirror failure is reported", func(t *testing.T) {
		primary := NewMemory()
		s := Mirror(primary, &failingStorage{err: errors.New("connection refused")})

		err := s.Write(ctx, "k", []byte("doc"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "mirror 0")

		_, err = primary.Read(ctx, "k")
		assert.NoError(t, err, "primary write is independent of mirror failure")
	})
}
