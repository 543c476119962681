package main

import (
	"github.com/alimgiray/coursetrack/pkg/config"
	"github.com/alimgiray/coursetrack/pkg/logger"
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "trackerctl",
		Short:         "Administer the course project tracker",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Load(); err != nil {
				return err
			}
			logger.Init(config.AppConfig.Log.Level)
			return nil
		},
	}

	root.AddCommand(newMatchCommand())
	root.AddCommand(newImportRosterCommand())
	root.AddCommand(newMigrateCommand())
	return root
}
