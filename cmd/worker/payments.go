package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func exportPaymentsCmd() *cobra.Command {
	var out, projectID, term string
	cmd := &cobra.Command{
		Use:   "export-payments",
		Short: "Write the payment history to an Excel workbook",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			rt, err := setup(ctx)
			if err != nil {
				return err
			}
			defer rt.close()

			f, err := os.Create(out)
			if err != nil {
				return err
			}
			if err := rt.services.Payments.ExportXLSX(ctx, f, projectID, term); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "payments.xlsx", "output file")
	cmd.Flags().StringVar(&projectID, "project", "", "only payments of this project")
	cmd.Flags().StringVarP(&term, "query", "q", "", "search term")
	return cmd
}
