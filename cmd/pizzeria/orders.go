package main

import (
	"github.com/spf13/cobra"

	"github.com/xenking/pizzeria/internal/domain/order"
)

func (c *cli) newRegisterCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "register NAME PHONE",
		Short: "Register a customer",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := c.app.Store.Register(cmd.Context(), args[0], args[1])
			return err
		},
	}
}

func (c *cli) newOrderCmd() *cobra.Command {
	var (
		phone    string
		delivery bool
	)
	cmd := &cobra.Command{
		Use:   "order ITEM...",
		Short: "Place an order for items on the menu",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			actor, err := c.actor(phone)
			if err != nil {
				return err
			}
			method := order.Pickup
			if delivery {
				method = order.Delivery
			}
			_, err = c.app.Store.PlaceOrderByName(cmd.Context(), actor, args, method)
			return err
		},
	}
	cmd.Flags().StringVar(&phone, "phone", "", "Customer phone")
	cmd.Flags().BoolVar(&delivery, "delivery", false, "Deliver the order instead of pickup")
	_ = cmd.MarkFlagRequired("phone")
	return cmd
}

func (c *cli) newHistoryCmd() *cobra.Command {
	var phone string
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show a customer's orders",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			actor, err := c.actor(phone)
			if err != nil {
				return err
			}
			c.app.Sink.Heading("Order history")
			_, err = c.app.Store.History(actor)
			return err
		},
	}
	cmd.Flags().StringVar(&phone, "phone", "", "Customer phone")
	_ = cmd.MarkFlagRequired("phone")
	return cmd
}
