package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/itjpay/billing-dashboard/internal/bootstrap"
)

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load the demo catalog into an empty database",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			rt, err := setup(ctx)
			if err != nil {
				return err
			}
			defer rt.close()
			if err := requirePersistent(rt.cfg, cmd.Name()); err != nil {
				return err
			}

			seeded, err := bootstrap.SeedDemoData(ctx, rt.stores, time.Now())
			if err != nil {
				return err
			}
			if !seeded {
				fmt.Fprintln(cmd.OutOrStdout(), "projects already exist, nothing to seed")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seeded demo data into %s storage\n", rt.cfg.Storage.Driver)
			return nil
		},
	}
}
