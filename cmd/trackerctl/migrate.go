package main

import (
	"fmt"

	"github.com/alimgiray/coursetrack/pkg/config"
	"github.com/alimgiray/coursetrack/pkg/database"
	"github.com/spf13/cobra"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := database.Init(config.AppConfig.Database.Path); err != nil {
				return err
			}
			defer database.Close()

			fmt.Fprintln(cmd.OutOrStdout(), "migrations applied to", config.AppConfig.Database.Path)
			return nil
		},
	}
}
