package main

import (
	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/app"
	"github.com/go-faster/sdk/zctx"
	"github.com/spf13/cobra"

	appkg "github.com/xenking/pizzeria/internal/app"
	"github.com/xenking/pizzeria/internal/domain/customer"
)

// cli holds what every command needs once the store is open.
type cli struct {
	m   *app.Telemetry
	app *appkg.App

	adminPhone string
}

// newRootCmd builds the command tree. The logger is taken from the command
// context, see zctx.Base.
func newRootCmd(m *app.Telemetry) *cobra.Command {
	c := &cli{m: m}

	cmd := &cobra.Command{
		Use:           "pizzeria",
		Short:         "Manage a pizzeria's menu, customers and orders",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := appkg.LoadConfig()
			if err != nil {
				return err
			}
			a, err := appkg.Open(cmd.Context(), zctx.From(cmd.Context()), c.m, cfg, cmd.OutOrStdout())
			if err != nil {
				return errors.Wrap(err, "open store")
			}
			c.app = a
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if c.app != nil {
				c.app.Close()
			}
		},
	}
	cmd.PersistentFlags().StringVar(&c.adminPhone, "admin-phone", "", "Administrator phone (defaults to the configured one)")

	cmd.AddCommand(
		c.newSeedCmd(),
		c.newMenuCmd(),
		c.newComponentsCmd(),
		c.newItemCmd(),
		c.newComponentCmd(),
		c.newRegisterCmd(),
		c.newOrderCmd(),
		c.newHistoryCmd(),
		c.newReportCmd(),
		c.newExportCmd(),
	)
	return cmd
}

// admin authenticates the administrator. A wrong phone yields nil, which the
// store rejects with an access denied report.
func (c *cli) admin() *customer.Customer {
	phone := c.adminPhone
	if phone == "" {
		phone = c.app.Config.Admin.Phone
	}
	return c.app.Store.Authenticate(phone, true)
}

// actor resolves a phone to a registered customer or the administrator.
func (c *cli) actor(phone string) (*customer.Customer, error) {
	s := c.app.Store
	if a := s.Authenticate(phone, false); a != nil {
		return a, nil
	}
	if a := s.Authenticate(phone, true); a != nil {
		return a, nil
	}
	return nil, errors.Errorf("no customer with phone %s", phone)
}
