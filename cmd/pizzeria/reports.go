package main

import (
	"time"

	"github.com/go-faster/errors"
	"github.com/spf13/cobra"

	"github.com/xenking/pizzeria/internal/store"
)

func (c *cli) newReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Sales reports",
	}
	cmd.AddCommand(c.newRevenueCmd(), c.newPopularCmd(), c.newDailyCmd())
	return cmd
}

func (c *cli) newRevenueCmd() *cobra.Command {
	var from, to string
	cmd := &cobra.Command{
		Use:   "revenue",
		Short: "Total of orders placed between two dates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			start := time.Time{}
			if from != "" {
				d, err := parseDay(from)
				if err != nil {
					return err
				}
				start = d
			}
			end := time.Now()
			if to != "" {
				d, err := parseDay(to)
				if err != nil {
					return err
				}
				end = d.AddDate(0, 0, 1).Add(-time.Nanosecond)
			}

			c.app.Sink.Heading("Revenue")
			_, err := c.app.Store.Revenue(cmd.Context(), c.admin(), start, end)
			return err
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "First day, YYYY-MM-DD (default: beginning of records)")
	cmd.Flags().StringVar(&to, "to", "", "Last day, YYYY-MM-DD (default: now)")
	return cmd
}

func (c *cli) newPopularCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "popular",
		Short: "Most ordered items",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c.app.Sink.Heading("Popular items")
			_, err := c.app.Store.PopularItems(cmd.Context(), c.admin(), limit)
			return err
		},
	}
	cmd.Flags().IntVar(&limit, "limit", store.DefaultPopularLimit, "Number of items to show")
	return cmd
}

func (c *cli) newDailyCmd() *cobra.Command {
	var day string
	cmd := &cobra.Command{
		Use:   "daily",
		Short: "Orders completed on a day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d := time.Now()
			if day != "" {
				var err error
				if d, err = parseDay(day); err != nil {
					return err
				}
			}
			c.app.Sink.Heading("Daily orders")
			_, err := c.app.Store.CompletedOn(cmd.Context(), c.admin(), d)
			return err
		},
	}
	cmd.Flags().StringVar(&day, "day", "", "Day, YYYY-MM-DD (default: today)")
	return cmd
}

func (c *cli) newExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export FILE",
		Short: "Write a plain-text report of all orders",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Store.ExportOrders(cmd.Context(), args[0])
		},
	}
}

func parseDay(s string) (time.Time, error) {
	d, err := time.ParseInLocation(time.DateOnly, s, time.Local)
	if err != nil {
		return time.Time{}, errors.Wrapf(err, "parse day %q", s)
	}
	return d, nil
}
