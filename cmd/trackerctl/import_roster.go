package main

import (
	"fmt"
	"os"

	"github.com/alimgiray/coursetrack/internal/repositories"
	"github.com/alimgiray/coursetrack/internal/services"
	"github.com/alimgiray/coursetrack/pkg/config"
	"github.com/alimgiray/coursetrack/pkg/database"
	"github.com/spf13/cobra"
)

func newImportRosterCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import-roster <file.yaml>",
		Short: "Load students, team members and aliases into the database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			file, err := services.ParseRosterFile(f)
			if err != nil {
				return err
			}

			if err := database.Init(config.AppConfig.Database.Path); err != nil {
				return err
			}
			defer database.Close()

			roster := services.NewRosterService(
				repositories.NewStudentRepository(database.DB),
				repositories.NewTeamMemberRepository(database.DB),
				repositories.NewContributorAliasRepository(database.DB),
			)

			summary, err := roster.ImportRoster(file)
			if summary != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "students: %d, team members: %d, aliases: %d\n",
					summary.Students, summary.TeamMembers, summary.Aliases)
			}
			return err
		},
	}
}
