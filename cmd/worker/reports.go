package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/itjpay/billing-dashboard/internal/reports"
)

func weeklyReportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "weekly-report",
		Short: "Build the weekly payment report now",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			rt, err := setup(ctx)
			if err != nil {
				return err
			}
			defer rt.close()

			res, err := rt.services.Reports.WeeklyReport(ctx, time.Now())
			if errors.Is(err, reports.ErrDisabled) {
				fmt.Fprintln(cmd.OutOrStdout(), "weekly reports are turned off")
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s: %d payments, $%.2f revenue, %d failed\n", res.Location, res.Payments, res.Revenue, res.Failed)
			return nil
		},
	}
}

func scheduleCmd() *cobra.Command {
	var expr string
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Run the weekly report on a cron schedule until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			rt, err := setup(ctx)
			if err != nil {
				return err
			}
			defer rt.close()

			s, err := reports.NewScheduler(rt.services.Reports, expr)
			if err != nil {
				return err
			}
			s.Run(ctx)
			return nil
		},
	}
	cmd.Flags().StringVar(&expr, "cron", reports.WeeklySchedule, "cron expression with a leading seconds field")
	return cmd
}
