package snapshot

import (
	"fmt"
	"strconv"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/shopspring/decimal"

	"github.com/xenking/pizzeria/internal/pkg/errs"
)

// ErrMissingField is returned when a mandatory field is absent.
var ErrMissingField = errors.New("missing required field")

// DecodeError reports the location of a malformed or incomplete field.
// It matches errs.ErrDeserialization.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode snapshot at %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() []error {
	return []error{errs.ErrDeserialization, e.Err}
}

// Decode parses a snapshot document. All mandatory fields must be present;
// unknown fields are skipped.
func Decode(data []byte) (*Document, error) {
	if !jx.Valid(data) {
		return nil, &DecodeError{Path: "$", Err: errors.New("invalid JSON")}
	}

	var doc Document
	err := decodeObject(jx.DecodeBytes(data), "$",
		[]string{"name", "address", "menu", "orders"},
		func(d *jx.Decoder, key, path string) (err error) {
			switch key {
			case "name":
				doc.Name, err = readStr(d, path)
			case "address":
				doc.Address, err = readStr(d, path)
			case "menu":
				doc.Menu = []MenuItem{}
				err = decodeArray(d, path, func(d *jx.Decoder, path string) error {
					item, err := decodeMenuItem(d, path)
					doc.Menu = append(doc.Menu, item)
					return err
				})
			case "orders":
				doc.Orders = []Order{}
				err = decodeArray(d, path, func(d *jx.Decoder, path string) error {
					o, err := decodeOrder(d, path)
					doc.Orders = append(doc.Orders, o)
					return err
				})
			case "customers":
				if d.Next() == jx.Null {
					return d.Null()
				}
				doc.Customers = []Customer{}
				err = decodeArray(d, path, func(d *jx.Decoder, path string) error {
					c, err := decodeCustomer(d, path)
					doc.Customers = append(doc.Customers, c)
					return err
				})
			default:
				return d.Skip()
			}
			return err
		})
	if err != nil {
		return nil, err
	}

	return &doc, nil
}

func decodeMenuItem(d *jx.Decoder, path string) (item MenuItem, err error) {
	err = decodeObject(d, path,
		[]string{"name", "size", "price", "components"},
		func(d *jx.Decoder, key, path string) (err error) {
			switch key {
			case "name":
				item.Name, err = readStr(d, path)
			case "size":
				item.Size, err = readStr(d, path)
			case "price":
				item.Price, err = readDecimal(d, path)
			case "components":
				item.Components = []Component{}
				err = decodeArray(d, path, func(d *jx.Decoder, path string) error {
					c, err := decodeComponent(d, path)
					item.Components = append(item.Components, c)
					return err
				})
			default:
				return d.Skip()
			}
			return err
		})
	return item, err
}

func decodeComponent(d *jx.Decoder, path string) (c Component, err error) {
	err = decodeObject(d, path,
		[]string{"name", "price"},
		func(d *jx.Decoder, key, path string) (err error) {
			switch key {
			case "name":
				c.Name, err = readStr(d, path)
			case "price":
				c.Price, err = readDecimal(d, path)
			default:
				return d.Skip()
			}
			return err
		})
	return c, err
}

func decodeOrder(d *jx.Decoder, path string) (o Order, err error) {
	err = decodeObject(d, path,
		[]string{"customer", "items", "deliveryMethod", "total"},
		func(d *jx.Decoder, key, path string) (err error) {
			switch key {
			case "id":
				o.ID, err = readStr(d, path)
			case "customer":
				o.Customer, err = decodeCustomer(d, path)
			case "items":
				o.Items = []ItemRef{}
				err = decodeArray(d, path, func(d *jx.Decoder, path string) error {
					ref, err := decodeItemRef(d, path)
					o.Items = append(o.Items, ref)
					return err
				})
			case "deliveryMethod":
				o.DeliveryMethod, err = readStr(d, path)
			case "total":
				o.Total, err = readDecimal(d, path)
			case "placedAt":
				var at time.Time
				at, err = readTime(d, path)
				o.PlacedAt = &at
			default:
				return d.Skip()
			}
			return err
		})
	return o, err
}

func decodeItemRef(d *jx.Decoder, path string) (ref ItemRef, err error) {
	err = decodeObject(d, path,
		[]string{"name", "size"},
		func(d *jx.Decoder, key, path string) (err error) {
			switch key {
			case "name":
				ref.Name, err = readStr(d, path)
			case "size":
				ref.Size, err = readStr(d, path)
			default:
				return d.Skip()
			}
			return err
		})
	return ref, err
}

func decodeCustomer(d *jx.Decoder, path string) (c Customer, err error) {
	err = decodeObject(d, path,
		[]string{"name", "phone"},
		func(d *jx.Decoder, key, path string) (err error) {
			switch key {
			case "name":
				c.Name, err = readStr(d, path)
			case "phone":
				c.Phone, err = readStr(d, path)
			default:
				return d.Skip()
			}
			return err
		})
	return c, err
}

// decodeObject iterates an object, calling f per key with the key's path,
// and then checks that every required key was seen.
func decodeObject(d *jx.Decoder, path string, required []string, f func(d *jx.Decoder, key, path string) error) error {
	if err := expect(d, path, jx.Object); err != nil {
		return err
	}

	seen := make(map[string]bool, len(required))
	if err := d.ObjBytes(func(d *jx.Decoder, key []byte) error {
		k := string(key)
		seen[k] = true
		return f(d, k, path+"."+k)
	}); err != nil {
		return atPath(path, err)
	}

	for _, name := range required {
		if !seen[name] {
			return &DecodeError{Path: path + "." + name, Err: ErrMissingField}
		}
	}
	return nil
}

func decodeArray(d *jx.Decoder, path string, f func(d *jx.Decoder, path string) error) error {
	if err := expect(d, path, jx.Array); err != nil {
		return err
	}

	i := 0
	if err := d.Arr(func(d *jx.Decoder) error {
		err := f(d, path+"["+strconv.Itoa(i)+"]")
		i++
		return err
	}); err != nil {
		return atPath(path, err)
	}
	return nil
}

func readStr(d *jx.Decoder, path string) (string, error) {
	if err := expect(d, path, jx.String); err != nil {
		return "", err
	}
	v, err := d.Str()
	if err != nil {
		return "", &DecodeError{Path: path, Err: err}
	}
	return v, nil
}

func readDecimal(d *jx.Decoder, path string) (decimal.Decimal, error) {
	if err := expect(d, path, jx.Number); err != nil {
		return decimal.Zero, err
	}
	n, err := d.Num()
	if err != nil {
		return decimal.Zero, &DecodeError{Path: path, Err: err}
	}
	v, err := decimal.NewFromString(n.String())
	if err != nil {
		return decimal.Zero, &DecodeError{Path: path, Err: err}
	}
	return v, nil
}

func readTime(d *jx.Decoder, path string) (time.Time, error) {
	s, err := readStr(d, path)
	if err != nil {
		return time.Time{}, err
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, &DecodeError{Path: path, Err: err}
	}
	return t, nil
}

func expect(d *jx.Decoder, path string, want jx.Type) error {
	if got := d.Next(); got != want {
		return &DecodeError{Path: path, Err: errors.Errorf("expected %s, got %s", want, got)}
	}
	return nil
}

// atPath keeps the innermost DecodeError, or attributes err to path.
func atPath(path string, err error) error {
	var de *DecodeError
	if errors.As(err, &de) {
		return de
	}
	return &DecodeError{Path: path, Err: err}
}
