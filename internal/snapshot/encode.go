package snapshot

import (
	"time"

	"github.com/go-faster/jx"
	"github.com/shopspring/decimal"
)

// Encode renders the document as indented JSON.
func Encode(doc *Document) []byte {
	e := &jx.Encoder{}
	e.SetIdent(2)

	e.ObjStart()
	e.FieldStart("name")
	e.Str(doc.Name)
	e.FieldStart("address")
	e.Str(doc.Address)

	e.FieldStart("menu")
	e.ArrStart()
	for _, item := range doc.Menu {
		encodeMenuItem(e, item)
	}
	e.ArrEnd()

	e.FieldStart("orders")
	e.ArrStart()
	for _, o := range doc.Orders {
		encodeOrder(e, o)
	}
	e.ArrEnd()

	if doc.Customers != nil {
		e.FieldStart("customers")
		e.ArrStart()
		for _, c := range doc.Customers {
			encodeCustomer(e, c)
		}
		e.ArrEnd()
	}
	e.ObjEnd()

	return e.Bytes()
}

func encodeMenuItem(e *jx.Encoder, item MenuItem) {
	e.ObjStart()
	e.FieldStart("name")
	e.Str(item.Name)
	e.FieldStart("size")
	e.Str(item.Size)
	e.FieldStart("price")
	encodeDecimal(e, item.Price)
	e.FieldStart("components")
	e.ArrStart()
	for _, c := range item.Components {
		e.ObjStart()
		e.FieldStart("name")
		e.Str(c.Name)
		e.FieldStart("price")
		encodeDecimal(e, c.Price)
		e.ObjEnd()
	}
	e.ArrEnd()
	e.ObjEnd()
}

func encodeOrder(e *jx.Encoder, o Order) {
	e.ObjStart()
	if o.ID != "" {
		e.FieldStart("id")
		e.Str(o.ID)
	}
	e.FieldStart("customer")
	encodeCustomer(e, o.Customer)
	e.FieldStart("items")
	e.ArrStart()
	for _, ref := range o.Items {
		e.ObjStart()
		e.FieldStart("name")
		e.Str(ref.Name)
		e.FieldStart("size")
		e.Str(ref.Size)
		e.ObjEnd()
	}
	e.ArrEnd()
	e.FieldStart("deliveryMethod")
	e.Str(o.DeliveryMethod)
	e.FieldStart("total")
	encodeDecimal(e, o.Total)
	if o.PlacedAt != nil {
		e.FieldStart("placedAt")
		e.Str(o.PlacedAt.Format(time.RFC3339Nano))
	}
	e.ObjEnd()
}

func encodeCustomer(e *jx.Encoder, c Customer) {
	e.ObjStart()
	e.FieldStart("name")
	e.Str(c.Name)
	e.FieldStart("phone")
	e.Str(c.Phone)
	e.ObjEnd()
}

// encodeDecimal writes d as a JSON number without losing precision.
func encodeDecimal(e *jx.Encoder, d decimal.Decimal) {
	e.Raw([]byte(d.String()))
}
