package main

import (
	"strings"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	appkg "github.com/xenking/pizzeria/internal/app"
	"github.com/xenking/pizzeria/internal/domain/catalog"
)

func (c *cli) newSeedCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Add the seed menu to the catalog",
		Long:  "Add every item of a YAML seed menu to the catalog. Items already on the menu are skipped.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if file == "" {
				file = c.app.Config.Menu
			}
			items, err := appkg.LoadMenu(file)
			if err != nil {
				return err
			}

			c.app.Sink.Heading("Seeding " + c.app.Store.Name())
			admin := c.admin()
			for _, item := range items {
				err := c.app.Store.AddItem(cmd.Context(), admin, item)
				if err != nil && !errors.Is(err, catalog.ErrDuplicateItem) {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "YAML seed menu (defaults to the configured or built-in menu)")
	return cmd
}

func (c *cli) newMenuCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "menu",
		Short: "Show the menu with current prices",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c.app.Sink.Heading(c.app.Store.Name() + ", " + c.app.Store.Address())
			_, err := c.app.Store.Menu(cmd.Context(), c.admin())
			return err
		},
	}
}

func (c *cli) newComponentsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "components",
		Short: "List every component in the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c.app.Sink.Heading("Components")
			_, err := c.app.Store.Components(cmd.Context(), c.admin())
			return err
		},
	}
}

func (c *cli) newItemCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "item",
		Short: "Change catalog items",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "add NAME SIZE [COMPONENT=PRICE...]",
			Short: "Add an item to the catalog",
			Args:  cobra.MinimumNArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				size, err := catalog.ParseSize(args[1])
				if err != nil {
					return err
				}
				components, err := parseComponents(args[2:])
				if err != nil {
					return err
				}
				return c.app.Store.AddItem(cmd.Context(), c.admin(), catalog.NewItem(args[0], size, components...))
			},
		},
		&cobra.Command{
			Use:   "remove NAME",
			Short: "Remove an item from the catalog",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return c.app.Store.RemoveItem(cmd.Context(), c.admin(), args[0])
			},
		},
		&cobra.Command{
			Use:   "size NAME SIZE",
			Short: "Change the size of an item",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				size, err := catalog.ParseSize(args[1])
				if err != nil {
					return err
				}
				return c.app.Store.SetItemSize(cmd.Context(), c.admin(), args[0], size)
			},
		},
	)
	return cmd
}

func (c *cli) newComponentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "component",
		Short: "Change item components",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "add ITEM NAME PRICE",
			Short: "Add a component to an item",
			Args:  cobra.ExactArgs(3),
			RunE: func(cmd *cobra.Command, args []string) error {
				component, err := parseComponent(args[1], args[2])
				if err != nil {
					return err
				}
				return c.app.Store.AddComponent(cmd.Context(), c.admin(), args[0], component)
			},
		},
		&cobra.Command{
			Use:   "remove ITEM NAME",
			Short: "Remove the first component with NAME from an item",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return c.app.Store.RemoveComponent(cmd.Context(), c.admin(), args[0], args[1])
			},
		},
		&cobra.Command{
			Use:   "replace ITEM [NAME=PRICE...]",
			Short: "Replace all components of an item",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				components, err := parseComponents(args[1:])
				if err != nil {
					return err
				}
				return c.app.Store.ReplaceComponents(cmd.Context(), c.admin(), args[0], components)
			},
		},
		&cobra.Command{
			Use:   "price NAME PRICE",
			Short: "Change the price of a component across the catalog",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				price, err := decimal.NewFromString(args[1])
				if err != nil {
					return errors.Wrapf(err, "parse price %q", args[1])
				}
				return c.app.Store.SetComponentPrice(cmd.Context(), c.admin(), args[0], price)
			},
		},
	)
	return cmd
}

// parseComponents parses NAME=PRICE pairs.
func parseComponents(args []string) ([]*catalog.Component, error) {
	components := make([]*catalog.Component, 0, len(args))
	for _, arg := range args {
		name, price, ok := strings.Cut(arg, "=")
		if !ok {
			return nil, errors.Errorf("component %q must be NAME=PRICE", arg)
		}
		component, err := parseComponent(name, price)
		if err != nil {
			return nil, err
		}
		components = append(components, component)
	}
	return components, nil
}

func parseComponent(name, price string) (*catalog.Component, error) {
	p, err := decimal.NewFromString(price)
	if err != nil {
		return nil, errors.Wrapf(err, "parse price of %s", name)
	}
	return catalog.NewComponent(name, p)
}
