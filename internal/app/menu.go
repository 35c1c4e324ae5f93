package app

import (
	"os"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/xenking/pizzeria/internal/domain/catalog"
)

// MenuFile is the YAML layout of a seed menu:
//
//	items:
//	  - name: Margherita
//	    size: Medium
//	    components:
//	      - name: Mozzarella
//	        price: 10
type MenuFile struct {
	Items []MenuItem `yaml:"items"`
}

// MenuItem is one seed menu entry.
type MenuItem struct {
	Name       string          `yaml:"name"`
	Size       string          `yaml:"size"`
	Components []MenuComponent `yaml:"components"`
}

// MenuComponent is one component of a seed menu entry.
type MenuComponent struct {
	Name  string `yaml:"name"`
	Price Price  `yaml:"price"`
}

// Price is a decimal read from a YAML scalar without going through float64.
type Price decimal.Decimal

// UnmarshalYAML implements yaml.Unmarshaler.
func (p *Price) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.ScalarNode {
		return errors.Errorf("line %d: price must be a scalar", n.Line)
	}
	d, err := decimal.NewFromString(n.Value)
	if err != nil {
		return errors.Wrapf(err, "line %d: parse price %q", n.Line, n.Value)
	}
	*p = Price(d)
	return nil
}

// DefaultMenu returns the built-in seed menu.
func DefaultMenu() []*catalog.Item {
	return []*catalog.Item{
		catalog.NewItem("Margherita", catalog.Medium,
			catalog.MustComponent("Mozzarella", 10),
			catalog.MustComponent("Sos Tomat", 5),
		),
		catalog.NewItem("Quattro Formaggi", catalog.Large,
			catalog.MustComponent("Mozzarella", 10),
			catalog.MustComponent("Parmezan", 12),
			catalog.MustComponent("Gorgonzola", 12),
			catalog.MustComponent("Cascaval", 15),
		),
		catalog.NewItem("Pepperoni", catalog.Small,
			catalog.MustComponent("Mozzarella", 10),
			catalog.MustComponent("Pepperoni", 10),
		),
		catalog.NewItem("Diavola", catalog.Large,
			catalog.MustComponent("Mozzarella", 10),
			catalog.MustComponent("Salam Picant", 20),
			catalog.MustComponent("Ardei Iute", 4),
		),
	}
}

// LoadMenu reads a seed menu file. An empty path returns DefaultMenu.
func LoadMenu(path string) ([]*catalog.Item, error) {
	if path == "" {
		return DefaultMenu(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read menu")
	}
	return ParseMenu(data)
}

// ParseMenu decodes a YAML seed menu into catalog items.
func ParseMenu(data []byte) ([]*catalog.Item, error) {
	var f MenuFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, errors.Wrap(err, "decode menu")
	}

	items := make([]*catalog.Item, 0, len(f.Items))
	for i, mi := range f.Items {
		if mi.Name == "" {
			return nil, errors.Errorf("items[%d]: name is required", i)
		}
		size, err := catalog.ParseSize(mi.Size)
		if err != nil {
			return nil, errors.Wrapf(err, "items[%d]", i)
		}
		components := make([]*catalog.Component, 0, len(mi.Components))
		for j, mc := range mi.Components {
			c, err := catalog.NewComponent(mc.Name, decimal.Decimal(mc.Price))
			if err != nil {
				return nil, errors.Wrapf(err, "items[%d].components[%d]", i, j)
			}
			components = append(components, c)
		}
		items = append(items, catalog.NewItem(mi.Name, size, components...))
	}
	return items, nil
}
