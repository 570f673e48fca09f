package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

func importClientsCmd() *cobra.Command {
	var projectID, file string
	cmd := &cobra.Command{
		Use:   "import-clients",
		Short: "Import clients from a CSV or Excel file into a project",
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

			f, err := os.Open(file)
			if err != nil {
				return err
			}
			defer f.Close()

			added, err := rt.services.Clients.Import(ctx, projectID, filepath.Base(file), f)
			if err != nil {
				return fmt.Errorf("import %s: %w", file, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d clients into project %s\n", len(added), projectID)
			return nil
		},
	}
	cmd.Flags().StringVar(&projectID, "project", "", "project id")
	cmd.Flags().StringVar(&file, "file", "", "path to a .csv or .xlsx file")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
